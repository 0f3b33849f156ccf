package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"acharya-admissions-backend/internal/domain"
	"acharya-admissions-backend/internal/repository/postgres"
)

func TestDecisionRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewDecisionRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		reviewerID := int32(9)
		now := time.Now()
		d := &domain.SchoolDecision{
			ApplicationID:    4,
			SchoolID:         11,
			PreferenceOrder:  "1st",
			Decision:         domain.DecisionAccepted,
			ReviewComments:   "good fit",
			ReviewedBy:       &reviewerID,
			ReviewedOn:       &now,
			EnrollmentStatus: domain.EnrollmentNotEnrolled,
		}

		mock.ExpectQuery("INSERT INTO school_decisions").
			WithArgs(d.ApplicationID, d.SchoolID, d.PreferenceOrder, d.Decision, d.ReviewComments,
				d.ReviewedBy, d.ReviewedOn, d.EnrollmentStatus).
			WillReturnRows(sqlmock.NewRows([]string{"id", "version", "created_on", "updated_on"}).
				AddRow(3, 1, now, now))

		err := repo.Create(ctx, d)
		assert.NoError(t, err)
		assert.Equal(t, int32(3), d.ID)
		assert.Equal(t, int32(1), d.Version)
	})
}

func TestDecisionRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewDecisionRepository(db)
	ctx := context.Background()

	columns := []string{"id", "application_id", "school_id", "preference_order", "decision",
		"review_comments", "reviewed_by", "reviewed_on",
		"enrollment_status", "enrollment_date", "payment_reference", "withdrawal_date", "withdrawal_reason",
		"is_student_choice", "choice_date", "version", "created_on", "updated_on", "school_name"}

	t.Run("Success resolves school name", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows(columns).
			AddRow(3, 4, 11, "1st", "accepted", "", nil, nil,
				"not_enrolled", nil, "", nil, "", false, nil, 1, now, now, "School A")

		mock.ExpectQuery("SELECT (.+) FROM school_decisions d JOIN schools s").
			WithArgs(int32(3)).
			WillReturnRows(rows)

		d, err := repo.GetByID(ctx, 3)
		assert.NoError(t, err)
		assert.Equal(t, "School A", d.SchoolName)
		assert.Equal(t, domain.DecisionAccepted, d.Decision)
	})

	t.Run("Missing row maps to not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM school_decisions d JOIN schools s").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows(columns))

		d, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, d)
	})
}

func TestDecisionRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewDecisionRepository(db)
	ctx := context.Background()

	base := func() *domain.SchoolDecision {
		return &domain.SchoolDecision{
			ID:               3,
			Decision:         domain.DecisionRejected,
			EnrollmentStatus: domain.EnrollmentNotEnrolled,
			Version:          2,
		}
	}

	t.Run("Version match bumps the counter", func(t *testing.T) {
		d := base()
		now := time.Now()
		mock.ExpectQuery("UPDATE school_decisions").
			WithArgs(d.Decision, d.ReviewComments, d.ReviewedBy, d.ReviewedOn,
				d.EnrollmentStatus, d.EnrollmentDate, d.PaymentReference,
				d.WithdrawalDate, d.WithdrawalReason, d.ID, int32(2)).
			WillReturnRows(sqlmock.NewRows([]string{"version", "updated_on"}).AddRow(3, now))

		err := repo.Update(ctx, d)
		assert.NoError(t, err)
		assert.Equal(t, int32(3), d.Version)
	})

	t.Run("Stale version", func(t *testing.T) {
		d := base()
		mock.ExpectQuery("UPDATE school_decisions").
			WithArgs(d.Decision, d.ReviewComments, d.ReviewedBy, d.ReviewedOn,
				d.EnrollmentStatus, d.EnrollmentDate, d.PaymentReference,
				d.WithdrawalDate, d.WithdrawalReason, d.ID, int32(2)).
			WillReturnRows(sqlmock.NewRows([]string{"version", "updated_on"}))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(d.ID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err := repo.Update(ctx, d)
		assert.ErrorIs(t, err, domain.ErrStaleVersion)
	})

	t.Run("Row gone entirely", func(t *testing.T) {
		d := base()
		mock.ExpectQuery("UPDATE school_decisions").
			WithArgs(d.Decision, d.ReviewComments, d.ReviewedBy, d.ReviewedOn,
				d.EnrollmentStatus, d.EnrollmentDate, d.PaymentReference,
				d.WithdrawalDate, d.WithdrawalReason, d.ID, int32(2)).
			WillReturnRows(sqlmock.NewRows([]string{"version", "updated_on"}))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(d.ID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		err := repo.Update(ctx, d)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDecisionRepository_Enroll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewDecisionRepository(db)
	ctx := context.Background()

	enrolling := func() *domain.SchoolDecision {
		now := time.Now()
		return &domain.SchoolDecision{
			ID: 2, ApplicationID: 4, Version: 1,
			EnrollmentStatus: domain.EnrollmentEnrolled,
			EnrollmentDate:   &now,
			PaymentReference: "PAY-123",
		}
	}

	t.Run("Locks, checks and flips in one transaction", func(t *testing.T) {
		d := enrolling()
		mock.ExpectBegin()
		mock.ExpectExec("SELECT id FROM school_decisions").
			WithArgs(d.ApplicationID).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(d.ApplicationID, d.ID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectQuery("UPDATE school_decisions").
			WithArgs(d.EnrollmentStatus, d.EnrollmentDate, d.PaymentReference, d.ID, int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"version", "updated_on"}).AddRow(2, time.Now()))
		mock.ExpectCommit()

		err := repo.Enroll(ctx, d)
		assert.NoError(t, err)
		assert.Equal(t, int32(2), d.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Sibling enrollment conflicts without writing", func(t *testing.T) {
		d := enrolling()
		mock.ExpectBegin()
		mock.ExpectExec("SELECT id FROM school_decisions").
			WithArgs(d.ApplicationID).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(d.ApplicationID, d.ID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		err := repo.Enroll(ctx, d)
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Stale version rolls back", func(t *testing.T) {
		d := enrolling()
		mock.ExpectBegin()
		mock.ExpectExec("SELECT id FROM school_decisions").
			WithArgs(d.ApplicationID).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(d.ApplicationID, d.ID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectQuery("UPDATE school_decisions").
			WithArgs(d.EnrollmentStatus, d.EnrollmentDate, d.PaymentReference, d.ID, int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"version", "updated_on"}))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(d.ID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		err := repo.Enroll(ctx, d)
		assert.ErrorIs(t, err, domain.ErrStaleVersion)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDecisionRepository_SetStudentChoice(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewDecisionRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE school_decisions").
			WithArgs(now, int32(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetStudentChoice(ctx, 2, now))
	})

	t.Run("Unknown decision", func(t *testing.T) {
		mock.ExpectExec("UPDATE school_decisions").
			WithArgs(now, int32(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.SetStudentChoice(ctx, 99, now), domain.ErrNotFound)
	})
}
