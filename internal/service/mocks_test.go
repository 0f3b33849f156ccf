package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"acharya-admissions-backend/internal/domain"
)

// MockSchoolRepo
type MockSchoolRepo struct {
	mock.Mock
}

func (m *MockSchoolRepo) Create(ctx context.Context, school *domain.School) error {
	args := m.Called(ctx, school)
	return args.Error(0)
}
func (m *MockSchoolRepo) GetByID(ctx context.Context, id int32) (*domain.School, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.School), args.Error(1)
}
func (m *MockSchoolRepo) GetByCode(ctx context.Context, code string) (*domain.School, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.School), args.Error(1)
}
func (m *MockSchoolRepo) ListActive(ctx context.Context) ([]domain.School, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.School), args.Error(1)
}

// MockApplicationRepo
type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id int32) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) GetByReferenceID(ctx context.Context, referenceID string) (*domain.Application, error) {
	args := m.Called(ctx, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) ListBySchoolPreference(ctx context.Context, schoolID int32) ([]domain.Application, error) {
	args := m.Called(ctx, schoolID)
	return args.Get(0).([]domain.Application), args.Error(1)
}

// MockDecisionRepo
type MockDecisionRepo struct {
	mock.Mock
}

func (m *MockDecisionRepo) Create(ctx context.Context, d *domain.SchoolDecision) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDecisionRepo) GetByID(ctx context.Context, id int32) (*domain.SchoolDecision, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SchoolDecision), args.Error(1)
}
func (m *MockDecisionRepo) GetByApplicationAndSchool(ctx context.Context, applicationID, schoolID int32) (*domain.SchoolDecision, error) {
	args := m.Called(ctx, applicationID, schoolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SchoolDecision), args.Error(1)
}
func (m *MockDecisionRepo) ListByApplication(ctx context.Context, applicationID int32) ([]domain.SchoolDecision, error) {
	args := m.Called(ctx, applicationID)
	return args.Get(0).([]domain.SchoolDecision), args.Error(1)
}
func (m *MockDecisionRepo) Update(ctx context.Context, d *domain.SchoolDecision) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDecisionRepo) ClearStudentChoice(ctx context.Context, applicationID int32) error {
	args := m.Called(ctx, applicationID)
	return args.Error(0)
}
func (m *MockDecisionRepo) SetStudentChoice(ctx context.Context, decisionID int32, on time.Time) error {
	args := m.Called(ctx, decisionID, on)
	return args.Error(0)
}
func (m *MockDecisionRepo) Enroll(ctx context.Context, d *domain.SchoolDecision) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDecisionRepo) ListPendingChoiceApplications(ctx context.Context) ([]domain.Application, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Application), args.Error(1)
}

// MockFeeRepo
type MockFeeRepo struct {
	mock.Mock
}

func (m *MockFeeRepo) GetStructure(ctx context.Context, schoolID int32, course string, semester int32) (*domain.FeeStructure, error) {
	args := m.Called(ctx, schoolID, course, semester)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeStructure), args.Error(1)
}
func (m *MockFeeRepo) CreateStructure(ctx context.Context, fs *domain.FeeStructure) error {
	args := m.Called(ctx, fs)
	return args.Error(0)
}
func (m *MockFeeRepo) CreateInvoice(ctx context.Context, inv *domain.FeeInvoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}
func (m *MockFeeRepo) MarkOverdueInvoices(ctx context.Context, asOf time.Time) (int64, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(int64), args.Error(1)
}

// MockVerificationRepo
type MockVerificationRepo struct {
	mock.Mock
}

func (m *MockVerificationRepo) Create(ctx context.Context, v *domain.EmailVerification) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVerificationRepo) GetLatestUnverified(ctx context.Context, email string) (*domain.EmailVerification, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmailVerification), args.Error(1)
}
func (m *MockVerificationRepo) Update(ctx context.Context, v *domain.EmailVerification) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVerificationRepo) GetVerified(ctx context.Context, email, otp string) (*domain.EmailVerification, error) {
	args := m.Called(ctx, email, otp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmailVerification), args.Error(1)
}
func (m *MockVerificationRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.StaffUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.StaffUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffUser), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.StaffUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffUser), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOTP(ctx context.Context, email, applicantName, otp string) error {
	args := m.Called(ctx, email, applicantName, otp)
	return args.Error(0)
}
func (m *MockEmailService) SendSubmissionConfirmation(ctx context.Context, app *domain.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}
func (m *MockEmailService) SendDecisionNotification(ctx context.Context, email, applicantName, schoolName string, status domain.DecisionStatus, comments string) error {
	args := m.Called(ctx, email, applicantName, schoolName, status, comments)
	return args.Error(0)
}
func (m *MockEmailService) SendEnrollmentConfirmation(ctx context.Context, email, applicantName, schoolName, paymentReference string) error {
	args := m.Called(ctx, email, applicantName, schoolName, paymentReference)
	return args.Error(0)
}
func (m *MockEmailService) SendWithdrawalConfirmation(ctx context.Context, email, applicantName, schoolName, reason string) error {
	args := m.Called(ctx, email, applicantName, schoolName, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendChoiceReminder(ctx context.Context, email, applicantName, referenceID string) error {
	args := m.Called(ctx, email, applicantName, referenceID)
	return args.Error(0)
}

// MockRateLimiter
type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) Allow(key string, limit int, window time.Duration) bool {
	args := m.Called(key, limit, window)
	return args.Bool(0)
}
