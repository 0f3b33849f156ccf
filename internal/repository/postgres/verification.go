package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"acharya-admissions-backend/internal/domain"
	"acharya-admissions-backend/internal/repository"
)

type verificationRepository struct {
	db *sql.DB
}

func NewVerificationRepository(db *sql.DB) repository.VerificationRepository {
	return &verificationRepository{db: db}
}

const verificationColumns = `id, email, otp, is_verified, attempts, created_on, expires_on`

func (r *verificationRepository) Create(ctx context.Context, v *domain.EmailVerification) error {
	query := `INSERT INTO email_verifications (email, otp, is_verified, attempts, created_on, expires_on)
	          VALUES ($1, $2, false, 0, NOW(), $3) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query, v.Email, v.OTP, v.ExpiresOn).Scan(&v.ID, &v.CreatedOn)
}

func (r *verificationRepository) scanOne(row *sql.Row) (*domain.EmailVerification, error) {
	v := &domain.EmailVerification{}
	err := row.Scan(&v.ID, &v.Email, &v.OTP, &v.IsVerified, &v.Attempts, &v.CreatedOn, &v.ExpiresOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *verificationRepository) GetLatestUnverified(ctx context.Context, email string) (*domain.EmailVerification, error) {
	query := `SELECT ` + verificationColumns + ` FROM email_verifications
	          WHERE email = $1 AND is_verified = false ORDER BY created_on DESC LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *verificationRepository) GetVerified(ctx context.Context, email, otp string) (*domain.EmailVerification, error) {
	query := `SELECT ` + verificationColumns + ` FROM email_verifications
	          WHERE email = $1 AND otp = $2 AND is_verified = true ORDER BY created_on DESC LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email, otp))
}

func (r *verificationRepository) Update(ctx context.Context, v *domain.EmailVerification) error {
	query := `UPDATE email_verifications SET is_verified = $1, attempts = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, v.IsVerified, v.Attempts, v.ID)
	return err
}

func (r *verificationRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM email_verifications WHERE is_verified = false AND expires_on < $1`
	res, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
