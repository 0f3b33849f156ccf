package postgres

import (
	"context"
	"database/sql"
	"errors"

	"acharya-admissions-backend/internal/domain"
	"acharya-admissions-backend/internal/repository"
)

type schoolRepository struct {
	db *sql.DB
}

func NewSchoolRepository(db *sql.DB) repository.SchoolRepository {
	return &schoolRepository{db: db}
}

const schoolColumns = `id, school_code, school_name, district, block, village, contact_email, contact_phone, address, is_active, created_on, activated_on`

func scanSchool(row interface{ Scan(...any) error }) (*domain.School, error) {
	s := &domain.School{}
	err := row.Scan(&s.ID, &s.SchoolCode, &s.SchoolName, &s.District, &s.Block, &s.Village,
		&s.ContactEmail, &s.ContactPhone, &s.Address, &s.IsActive, &s.CreatedOn, &s.ActivatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *schoolRepository) Create(ctx context.Context, s *domain.School) error {
	query := `INSERT INTO schools (school_code, school_name, district, block, village, contact_email, contact_phone, address, is_active, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW()) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query, s.SchoolCode, s.SchoolName, s.District, s.Block, s.Village,
		s.ContactEmail, s.ContactPhone, s.Address, s.IsActive).Scan(&s.ID, &s.CreatedOn)
}

func (r *schoolRepository) GetByID(ctx context.Context, id int32) (*domain.School, error) {
	query := `SELECT ` + schoolColumns + ` FROM schools WHERE id = $1`
	return scanSchool(r.db.QueryRowContext(ctx, query, id))
}

func (r *schoolRepository) GetByCode(ctx context.Context, code string) (*domain.School, error) {
	query := `SELECT ` + schoolColumns + ` FROM schools WHERE school_code = $1`
	return scanSchool(r.db.QueryRowContext(ctx, query, code))
}

func (r *schoolRepository) ListActive(ctx context.Context) ([]domain.School, error) {
	query := `SELECT ` + schoolColumns + ` FROM schools WHERE is_active = true ORDER BY district, block, school_name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schools []domain.School
	for rows.Next() {
		s, err := scanSchool(rows)
		if err != nil {
			return nil, err
		}
		schools = append(schools, *s)
	}
	return schools, rows.Err()
}
