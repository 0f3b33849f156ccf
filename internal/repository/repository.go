package repository

import (
	"context"
	"time"

	"acharya-admissions-backend/internal/domain"
)

type SchoolRepository interface {
	Create(ctx context.Context, school *domain.School) error
	GetByID(ctx context.Context, id int32) (*domain.School, error)
	GetByCode(ctx context.Context, code string) (*domain.School, error)
	ListActive(ctx context.Context) ([]domain.School, error)
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id int32) (*domain.Application, error)
	GetByReferenceID(ctx context.Context, referenceID string) (*domain.Application, error)
	// ListBySchoolPreference returns every application naming the school in
	// any of its preference slots, newest first.
	ListBySchoolPreference(ctx context.Context, schoolID int32) ([]domain.Application, error)
}

type DecisionRepository interface {
	Create(ctx context.Context, d *domain.SchoolDecision) error
	GetByID(ctx context.Context, id int32) (*domain.SchoolDecision, error)
	GetByApplicationAndSchool(ctx context.Context, applicationID, schoolID int32) (*domain.SchoolDecision, error)
	// ListByApplication resolves school display names in the same query.
	ListByApplication(ctx context.Context, applicationID int32) ([]domain.SchoolDecision, error)
	// Update writes the row only when the stored version matches
	// d.Version, incrementing it on success. domain.ErrStaleVersion is
	// returned when someone else got there first.
	Update(ctx context.Context, d *domain.SchoolDecision) error
	ClearStudentChoice(ctx context.Context, applicationID int32) error
	SetStudentChoice(ctx context.Context, decisionID int32, on time.Time) error
	// Enroll flips d to enrolled inside one transaction that row-locks
	// every decision of the application, so at most one decision per
	// application can hold an enrollment. domain.ErrConflict is returned
	// when another decision is already enrolled, domain.ErrStaleVersion
	// when d.Version no longer matches the stored row.
	Enroll(ctx context.Context, d *domain.SchoolDecision) error
	// ListPendingChoiceApplications returns applications with two or more
	// acceptances and no recorded student choice, for the reminder job.
	ListPendingChoiceApplications(ctx context.Context) ([]domain.Application, error)
}

type FeeRepository interface {
	GetStructure(ctx context.Context, schoolID int32, course string, semester int32) (*domain.FeeStructure, error)
	CreateStructure(ctx context.Context, fs *domain.FeeStructure) error
	CreateInvoice(ctx context.Context, inv *domain.FeeInvoice) error
	MarkOverdueInvoices(ctx context.Context, asOf time.Time) (int64, error)
}

type VerificationRepository interface {
	Create(ctx context.Context, v *domain.EmailVerification) error
	GetLatestUnverified(ctx context.Context, email string) (*domain.EmailVerification, error)
	Update(ctx context.Context, v *domain.EmailVerification) error
	// GetVerified looks up a verified OTP for the email, used as the
	// submission token check.
	GetVerified(ctx context.Context, email, otp string) (*domain.EmailVerification, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.StaffUser) error
	GetByID(ctx context.Context, id int32) (*domain.StaffUser, error)
	GetByEmail(ctx context.Context, email string) (*domain.StaffUser, error)
}
