package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"acharya-admissions-backend/internal/domain"
	"acharya-admissions-backend/internal/logger"
	"acharya-admissions-backend/internal/repository"
	"acharya-admissions-backend/internal/utils"
)

// otpResendWindow is the minimum gap between OTP requests per address.
const otpResendWindow = 2 * time.Minute

type admissionService struct {
	appRepo    repository.ApplicationRepository
	decRepo    repository.DecisionRepository
	schoolRepo repository.SchoolRepository
	verifRepo  repository.VerificationRepository
	emailSvc   EmailService
	limiter    RateLimiter
}

func NewAdmissionService(
	appRepo repository.ApplicationRepository,
	decRepo repository.DecisionRepository,
	schoolRepo repository.SchoolRepository,
	verifRepo repository.VerificationRepository,
	emailSvc EmailService,
	limiter RateLimiter,
) AdmissionService {
	return &admissionService{
		appRepo:    appRepo,
		decRepo:    decRepo,
		schoolRepo: schoolRepo,
		verifRepo:  verifRepo,
		emailSvc:   emailSvc,
		limiter:    limiter,
	}
}

func (s *admissionService) RequestEmailVerification(ctx context.Context, email, applicantName string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if !s.limiter.Allow("otp:"+email, 1, otpResendWindow) {
		return fmt.Errorf("%w: OTP already sent recently, wait before requesting again", domain.ErrRateLimited)
	}

	otp, err := utils.NewOTP()
	if err != nil {
		return err
	}
	v := &domain.EmailVerification{
		Email:     email,
		OTP:       otp,
		ExpiresOn: time.Now().Add(domain.OTPValidity),
	}
	if err := s.verifRepo.Create(ctx, v); err != nil {
		return err
	}
	if err := s.emailSvc.SendOTP(ctx, email, applicantName, otp); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}
	return nil
}

func (s *admissionService) ConfirmEmailVerification(ctx context.Context, email, otp string) (string, error) {
	v, err := s.verifRepo.GetLatestUnverified(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("%w: no verification request found for this email", domain.ErrNotFound)
		}
		return "", err
	}

	now := time.Now()
	switch {
	case v.IsExpired(now):
		return "", fmt.Errorf("%w: OTP has expired, request a new one", domain.ErrValidation)
	case v.Attempts >= domain.OTPMaxAttempts:
		return "", fmt.Errorf("%w: too many failed attempts, request a new OTP", domain.ErrValidation)
	case v.OTP != otp:
		v.Attempts++
		if updErr := s.verifRepo.Update(ctx, v); updErr != nil {
			logger.Error("Failed to record OTP attempt", "email", email, "error", updErr)
		}
		return "", fmt.Errorf("%w: invalid OTP", domain.ErrValidation)
	}

	v.IsVerified = true
	if err := s.verifRepo.Update(ctx, v); err != nil {
		return "", err
	}
	// The verified OTP doubles as the submission token.
	return v.OTP, nil
}

func (s *admissionService) Submit(ctx context.Context, in SubmitApplicationInput) (*domain.Application, error) {
	app := &domain.Application{
		ApplicantName:            in.ApplicantName,
		DateOfBirth:              in.DateOfBirth,
		Email:                    in.Email,
		PhoneNumber:              in.PhoneNumber,
		Address:                  in.Address,
		CourseApplied:            in.CourseApplied,
		Category:                 in.Category,
		PreviousSchool:           in.PreviousSchool,
		LastPercentage:           in.LastPercentage,
		FirstPreferenceSchoolID:  in.FirstPreferenceSchoolID,
		SecondPreferenceSchoolID: in.SecondPreferenceSchoolID,
		ThirdPreferenceSchoolID:  in.ThirdPreferenceSchoolID,
	}
	if in.ApplicantName == "" || in.Email == "" || in.CourseApplied == "" {
		return nil, fmt.Errorf("%w: applicant name, email and course are required", domain.ErrValidation)
	}
	if err := app.ValidatePreferences(); err != nil {
		return nil, fmt.Errorf("%w: preferences must be distinct schools with no gaps", domain.ErrValidation)
	}

	if _, err := s.verifRepo.GetVerified(ctx, in.Email, in.VerificationToken); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: email address is not verified", domain.ErrValidation)
		}
		return nil, err
	}

	// Every named preference must be an existing, active school.
	for _, id := range app.PreferenceIDs() {
		school, err := s.schoolRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: preference school %d does not exist", domain.ErrValidation, id)
			}
			return nil, err
		}
		if !school.IsActive {
			return nil, fmt.Errorf("%w: school %s is not accepting applications", domain.ErrValidation, school.SchoolName)
		}
	}

	referenceID, err := utils.NewReferenceID(time.Now())
	if err != nil {
		return nil, err
	}
	app.ReferenceID = referenceID

	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	if err := s.emailSvc.SendSubmissionConfirmation(ctx, app); err != nil {
		logger.Error("Failed to send submission confirmation", "reference_id", app.ReferenceID, "error", err)
	}

	logger.Info("Admission application submitted", "reference_id", app.ReferenceID, "course", app.CourseApplied)
	return app, nil
}

func (s *admissionService) Track(ctx context.Context, referenceID string) (*domain.TrackingResult, error) {
	app, err := s.appRepo.GetByReferenceID(ctx, referenceID)
	if err != nil {
		return nil, err
	}
	decisions, err := s.decRepo.ListByApplication(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	return &domain.TrackingResult{
		Application: *app,
		Decisions:   decisions,
		Status:      domain.AggregateStatus(decisions),
	}, nil
}
