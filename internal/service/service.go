package service

import (
	"context"
	"time"

	"acharya-admissions-backend/internal/domain"
)

// SubmitApplicationInput carries a new admission application. The email must
// have been verified beforehand; VerificationToken is the OTP returned by
// ConfirmEmailVerification.
type SubmitApplicationInput struct {
	ApplicantName  string
	DateOfBirth    time.Time
	Email          string
	PhoneNumber    string
	Address        string
	CourseApplied  string
	Category       string
	PreviousSchool string
	LastPercentage *float64

	FirstPreferenceSchoolID  int32
	SecondPreferenceSchoolID *int32
	ThirdPreferenceSchoolID  *int32

	VerificationToken string
}

type AdmissionService interface {
	RequestEmailVerification(ctx context.Context, email, applicantName string) error
	// ConfirmEmailVerification returns the token to present on submission.
	ConfirmEmailVerification(ctx context.Context, email, otp string) (string, error)
	Submit(ctx context.Context, in SubmitApplicationInput) (*domain.Application, error)
	// Track is the tracking resolver: read-only snapshot of an application,
	// its decisions (school names resolved) and the derived aggregate status.
	Track(ctx context.Context, referenceID string) (*domain.TrackingResult, error)
}

// DecideInput identifies one logical accept/reject transition. DecisionID nil
// means "first decision for this (application, school) pair"; non-nil updates
// an existing row and must carry the last-seen version.
type DecideInput struct {
	ApplicationID   int32
	SchoolID        int32
	DecisionID      *int32
	NewStatus       domain.DecisionStatus
	Comments        string
	ExpectedVersion *int32
}

// SchoolReviewEntry is one row of a school's review queue: the application
// plus this school's decision for it, when one exists.
type SchoolReviewEntry struct {
	Application domain.Application     `json:"application"`
	Decision    *domain.SchoolDecision `json:"decision,omitempty"`
}

type DecisionService interface {
	Decide(ctx context.Context, reviewerID int32, in DecideInput) (*domain.SchoolDecision, error)
	ListForSchool(ctx context.Context, schoolID int32) ([]SchoolReviewEntry, error)
}

// AcceptedSchoolsResult lists the acceptances an applicant can choose from.
type AcceptedSchoolsResult struct {
	Decisions        []domain.SchoolDecision `json:"decisions"`
	HasStudentChoice bool                    `json:"has_student_choice"`
}

type EnrollmentService interface {
	AcceptedSchools(ctx context.Context, referenceID string) (*AcceptedSchoolsResult, error)
	SubmitChoice(ctx context.Context, referenceID string, chosenSchoolID int32) (*domain.SchoolDecision, error)
	QuoteFee(ctx context.Context, referenceID string, decisionID *int32) (*domain.FeeQuote, error)
	InitPayment(ctx context.Context, referenceID string, decisionID *int32) (*domain.PaymentSession, error)
	Enroll(ctx context.Context, decisionID int32, paymentReference string) (*domain.SchoolDecision, error)
	Withdraw(ctx context.Context, decisionID int32, reason string) (*domain.SchoolDecision, error)
}

type SchoolService interface {
	ListSchools(ctx context.Context) ([]domain.School, error)
	GetSchool(ctx context.Context, id int32) (*domain.School, error)
}

// TokenPair is what login and refresh hand back to the client.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*TokenPair, *domain.StaffUser, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

type EmailService interface {
	SendOTP(ctx context.Context, email, applicantName, otp string) error
	SendSubmissionConfirmation(ctx context.Context, app *domain.Application) error
	SendDecisionNotification(ctx context.Context, email, applicantName, schoolName string, status domain.DecisionStatus, comments string) error
	SendEnrollmentConfirmation(ctx context.Context, email, applicantName, schoolName, paymentReference string) error
	SendWithdrawalConfirmation(ctx context.Context, email, applicantName, schoolName, reason string) error
	SendChoiceReminder(ctx context.Context, email, applicantName, referenceID string) error
}

// RateLimiter gates repeatable public operations such as OTP requests.
type RateLimiter interface {
	Allow(key string, limit int, window time.Duration) bool
}
