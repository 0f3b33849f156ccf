package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"acharya-admissions-backend/internal/domain"
	"acharya-admissions-backend/internal/repository"
)

type decisionRepository struct {
	db *sql.DB
}

func NewDecisionRepository(db *sql.DB) repository.DecisionRepository {
	return &decisionRepository{db: db}
}

const decisionColumns = `d.id, d.application_id, d.school_id, d.preference_order, d.decision,
	d.review_comments, d.reviewed_by, d.reviewed_on,
	d.enrollment_status, d.enrollment_date, d.payment_reference, d.withdrawal_date, d.withdrawal_reason,
	d.is_student_choice, d.choice_date, d.version, d.created_on, d.updated_on`

func (r *decisionRepository) Create(ctx context.Context, d *domain.SchoolDecision) error {
	query := `INSERT INTO school_decisions
	          (application_id, school_id, preference_order, decision, review_comments, reviewed_by, reviewed_on,
	           enrollment_status, is_student_choice, version, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, 1, NOW(), NOW())
	          RETURNING id, version, created_on, updated_on`
	return r.db.QueryRowContext(ctx, query,
		d.ApplicationID, d.SchoolID, d.PreferenceOrder, d.Decision, d.ReviewComments,
		d.ReviewedBy, d.ReviewedOn, d.EnrollmentStatus,
	).Scan(&d.ID, &d.Version, &d.CreatedOn, &d.UpdatedOn)
}

func (r *decisionRepository) scanOne(row *sql.Row, withName bool) (*domain.SchoolDecision, error) {
	d := &domain.SchoolDecision{}
	dest := []any{&d.ID, &d.ApplicationID, &d.SchoolID, &d.PreferenceOrder, &d.Decision,
		&d.ReviewComments, &d.ReviewedBy, &d.ReviewedOn,
		&d.EnrollmentStatus, &d.EnrollmentDate, &d.PaymentReference, &d.WithdrawalDate, &d.WithdrawalReason,
		&d.IsStudentChoice, &d.ChoiceDate, &d.Version, &d.CreatedOn, &d.UpdatedOn}
	if withName {
		dest = append(dest, &d.SchoolName)
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func (r *decisionRepository) GetByID(ctx context.Context, id int32) (*domain.SchoolDecision, error) {
	query := `SELECT ` + decisionColumns + `, s.school_name
	          FROM school_decisions d JOIN schools s ON s.id = d.school_id
	          WHERE d.id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), true)
}

func (r *decisionRepository) GetByApplicationAndSchool(ctx context.Context, applicationID, schoolID int32) (*domain.SchoolDecision, error) {
	query := `SELECT ` + decisionColumns + `, s.school_name
	          FROM school_decisions d JOIN schools s ON s.id = d.school_id
	          WHERE d.application_id = $1 AND d.school_id = $2`
	return r.scanOne(r.db.QueryRowContext(ctx, query, applicationID, schoolID), true)
}

func (r *decisionRepository) ListByApplication(ctx context.Context, applicationID int32) ([]domain.SchoolDecision, error) {
	query := `SELECT ` + decisionColumns + `, s.school_name
	          FROM school_decisions d JOIN schools s ON s.id = d.school_id
	          WHERE d.application_id = $1
	          ORDER BY d.preference_order`
	rows, err := r.db.QueryContext(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decisions []domain.SchoolDecision
	for rows.Next() {
		var d domain.SchoolDecision
		if err := rows.Scan(&d.ID, &d.ApplicationID, &d.SchoolID, &d.PreferenceOrder, &d.Decision,
			&d.ReviewComments, &d.ReviewedBy, &d.ReviewedOn,
			&d.EnrollmentStatus, &d.EnrollmentDate, &d.PaymentReference, &d.WithdrawalDate, &d.WithdrawalReason,
			&d.IsStudentChoice, &d.ChoiceDate, &d.Version, &d.CreatedOn, &d.UpdatedOn, &d.SchoolName); err != nil {
			return nil, err
		}
		decisions = append(decisions, d)
	}
	return decisions, rows.Err()
}

// Update is version-guarded: the row is written only when the stored version
// still matches d.Version. On success d.Version reflects the new version.
func (r *decisionRepository) Update(ctx context.Context, d *domain.SchoolDecision) error {
	query := `UPDATE school_decisions
	          SET decision = $1, review_comments = $2, reviewed_by = $3, reviewed_on = $4,
	              enrollment_status = $5, enrollment_date = $6, payment_reference = $7,
	              withdrawal_date = $8, withdrawal_reason = $9,
	              version = version + 1, updated_on = NOW()
	          WHERE id = $10 AND version = $11
	          RETURNING version, updated_on`
	err := r.db.QueryRowContext(ctx, query,
		d.Decision, d.ReviewComments, d.ReviewedBy, d.ReviewedOn,
		d.EnrollmentStatus, d.EnrollmentDate, d.PaymentReference,
		d.WithdrawalDate, d.WithdrawalReason,
		d.ID, d.Version,
	).Scan(&d.Version, &d.UpdatedOn)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	// No row matched: either the decision is gone or the version is stale.
	var exists bool
	if chkErr := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM school_decisions WHERE id = $1)`, d.ID).Scan(&exists); chkErr != nil {
		return chkErr
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrStaleVersion
}

func (r *decisionRepository) ClearStudentChoice(ctx context.Context, applicationID int32) error {
	query := `UPDATE school_decisions
	          SET is_student_choice = false, choice_date = NULL, version = version + 1, updated_on = NOW()
	          WHERE application_id = $1 AND is_student_choice = true`
	_, err := r.db.ExecContext(ctx, query, applicationID)
	return err
}

func (r *decisionRepository) SetStudentChoice(ctx context.Context, decisionID int32, on time.Time) error {
	query := `UPDATE school_decisions
	          SET is_student_choice = true, choice_date = $1, version = version + 1, updated_on = NOW()
	          WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, on, decisionID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Enroll runs the single-enrollment check and the enrolled flip in one
// transaction. Every decision row of the application is locked first,
// enrolled or not: locking only enrolled rows would lock nothing when no
// one has enrolled yet, and two concurrent enrollers could both pass the
// check. With all rows locked the second transaction blocks until the
// first commits, then sees its enrollment and conflicts.
func (r *decisionRepository) Enroll(ctx context.Context, d *domain.SchoolDecision) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`SELECT id FROM school_decisions WHERE application_id = $1 FOR UPDATE`,
		d.ApplicationID); err != nil {
		return err
	}

	var busy bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM school_decisions
		 WHERE application_id = $1 AND enrollment_status = 'enrolled' AND id <> $2)`,
		d.ApplicationID, d.ID).Scan(&busy); err != nil {
		return err
	}
	if busy {
		return domain.ErrConflict
	}

	query := `UPDATE school_decisions
	          SET enrollment_status = $1, enrollment_date = $2, payment_reference = $3,
	              version = version + 1, updated_on = NOW()
	          WHERE id = $4 AND version = $5
	          RETURNING version, updated_on`
	err = tx.QueryRowContext(ctx, query,
		d.EnrollmentStatus, d.EnrollmentDate, d.PaymentReference, d.ID, d.Version,
	).Scan(&d.Version, &d.UpdatedOn)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		var exists bool
		if chkErr := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM school_decisions WHERE id = $1)`, d.ID).Scan(&exists); chkErr != nil {
			return chkErr
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrStaleVersion
	}
	return tx.Commit()
}

func (r *decisionRepository) ListPendingChoiceApplications(ctx context.Context) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM admission_applications
	          WHERE id IN (
	            SELECT application_id FROM school_decisions
	            WHERE decision = 'accepted'
	            GROUP BY application_id
	            HAVING count(*) >= 2 AND bool_or(is_student_choice) = false
	          )`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(&app.ID, &app.ReferenceID, &app.ApplicantName, &app.DateOfBirth, &app.Email,
			&app.PhoneNumber, &app.Address, &app.CourseApplied, &app.Category, &app.PreviousSchool,
			&app.LastPercentage, &app.FirstPreferenceSchoolID, &app.SecondPreferenceSchoolID,
			&app.ThirdPreferenceSchoolID, &app.SubmittedOn); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}
