package postgres

import (
	"context"
	"database/sql"
	"errors"

	"acharya-admissions-backend/internal/domain"
	"acharya-admissions-backend/internal/repository"
)

type applicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) repository.ApplicationRepository {
	return &applicationRepository{db: db}
}

const applicationColumns = `id, reference_id, applicant_name, date_of_birth, email, phone_number, address,
	course_applied, category, previous_school, last_percentage,
	first_preference_school_id, second_preference_school_id, third_preference_school_id, submitted_on`

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	query := `INSERT INTO admission_applications
	          (reference_id, applicant_name, date_of_birth, email, phone_number, address,
	           course_applied, category, previous_school, last_percentage,
	           first_preference_school_id, second_preference_school_id, third_preference_school_id, submitted_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
	          RETURNING id, submitted_on`
	return r.db.QueryRowContext(ctx, query,
		app.ReferenceID, app.ApplicantName, app.DateOfBirth, app.Email, app.PhoneNumber, app.Address,
		app.CourseApplied, app.Category, app.PreviousSchool, app.LastPercentage,
		app.FirstPreferenceSchoolID, app.SecondPreferenceSchoolID, app.ThirdPreferenceSchoolID,
	).Scan(&app.ID, &app.SubmittedOn)
}

func (r *applicationRepository) scanOne(row *sql.Row) (*domain.Application, error) {
	app := &domain.Application{}
	err := row.Scan(&app.ID, &app.ReferenceID, &app.ApplicantName, &app.DateOfBirth, &app.Email,
		&app.PhoneNumber, &app.Address, &app.CourseApplied, &app.Category, &app.PreviousSchool,
		&app.LastPercentage, &app.FirstPreferenceSchoolID, &app.SecondPreferenceSchoolID,
		&app.ThirdPreferenceSchoolID, &app.SubmittedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return app, nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id int32) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM admission_applications WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *applicationRepository) GetByReferenceID(ctx context.Context, referenceID string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM admission_applications WHERE reference_id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, referenceID))
}

func (r *applicationRepository) ListBySchoolPreference(ctx context.Context, schoolID int32) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM admission_applications
	          WHERE first_preference_school_id = $1
	             OR second_preference_school_id = $1
	             OR third_preference_school_id = $1
	          ORDER BY submitted_on DESC`
	rows, err := r.db.QueryContext(ctx, query, schoolID)
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
