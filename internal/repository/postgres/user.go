package postgres

import (
	"context"
	"database/sql"
	"errors"

	"acharya-admissions-backend/internal/domain"
	"acharya-admissions-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, name, password_hash, role, school_id, is_active, created_on`

func (r *userRepository) Create(ctx context.Context, u *domain.StaffUser) error {
	query := `INSERT INTO staff_users (email, name, password_hash, role, school_id, is_active, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, NOW()) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query, u.Email, u.Name, u.PasswordHash, u.Role, u.SchoolID, u.IsActive).
		Scan(&u.ID, &u.CreatedOn)
}

func (r *userRepository) scanOne(row *sql.Row) (*domain.StaffUser, error) {
	u := &domain.StaffUser{}
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.SchoolID, &u.IsActive, &u.CreatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.StaffUser, error) {
	query := `SELECT ` + userColumns + ` FROM staff_users WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.StaffUser, error) {
	query := `SELECT ` + userColumns + ` FROM staff_users WHERE email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}
