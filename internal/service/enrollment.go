package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"acharya-admissions-backend/internal/domain"
	"acharya-admissions-backend/internal/logger"
	"acharya-admissions-backend/internal/repository"
	"acharya-admissions-backend/internal/utils"
)

// FeePolicy carries the fee knobs the enrollment workflow needs. Values come
// from configuration; amounts are in paise.
type FeePolicy struct {
	AdmissionFeePaise       int32
	DefaultTuitionPaise     int32
	DefaultLibraryPaise     int32
	DefaultLabPaise         int32
	DefaultExamPaise        int32
	InvoiceDueDays          int
	PaymentBeforeEnrollment bool
	PaymentSessionValidity  time.Duration
}

type enrollmentService struct {
	decRepo  repository.DecisionRepository
	appRepo  repository.ApplicationRepository
	feeRepo  repository.FeeRepository
	emailSvc EmailService
	policy   FeePolicy
}

func NewEnrollmentService(
	decRepo repository.DecisionRepository,
	appRepo repository.ApplicationRepository,
	feeRepo repository.FeeRepository,
	emailSvc EmailService,
	policy FeePolicy,
) EnrollmentService {
	return &enrollmentService{
		decRepo:  decRepo,
		appRepo:  appRepo,
		feeRepo:  feeRepo,
		emailSvc: emailSvc,
		policy:   policy,
	}
}

func (s *enrollmentService) AcceptedSchools(ctx context.Context, referenceID string) (*AcceptedSchoolsResult, error) {
	app, err := s.appRepo.GetByReferenceID(ctx, referenceID)
	if err != nil {
		return nil, err
	}
	decisions, err := s.decRepo.ListByApplication(ctx, app.ID)
	if err != nil {
		return nil, err
	}

	res := &AcceptedSchoolsResult{}
	for i := range decisions {
		if decisions[i].Decision != domain.DecisionAccepted {
			continue
		}
		res.Decisions = append(res.Decisions, decisions[i])
		if decisions[i].IsStudentChoice {
			res.HasStudentChoice = true
		}
	}
	return res, nil
}

// SubmitChoice records the applicant's single chosen school among multiple
// acceptances. Non-chosen acceptances keep their accepted status; only
// enrollment proceeds on the chosen one.
func (s *enrollmentService) SubmitChoice(ctx context.Context, referenceID string, chosenSchoolID int32) (*domain.SchoolDecision, error) {
	app, err := s.appRepo.GetByReferenceID(ctx, referenceID)
	if err != nil {
		return nil, err
	}
	decisions, err := s.decRepo.ListByApplication(ctx, app.ID)
	if err != nil {
		return nil, err
	}

	var chosen *domain.SchoolDecision
	accepted := 0
	for i := range decisions {
		if decisions[i].Decision != domain.DecisionAccepted {
			continue
		}
		accepted++
		if decisions[i].SchoolID == chosenSchoolID {
			chosen = &decisions[i]
		}
	}

	if chosen == nil {
		return nil, fmt.Errorf("%w: school %d has not accepted this application", domain.ErrInvalidChoice, chosenSchoolID)
	}
	if accepted < 2 {
		// A single acceptance needs no choice step; the school is implied.
		return nil, fmt.Errorf("%w: choice requires at least two acceptances", domain.ErrConflict)
	}

	if err := s.decRepo.ClearStudentChoice(ctx, app.ID); err != nil {
		return nil, err
	}
	now := time.Now()
	if err := s.decRepo.SetStudentChoice(ctx, chosen.ID, now); err != nil {
		return nil, err
	}

	logger.Info("Student choice recorded", "reference_id", referenceID, "school_id", chosenSchoolID)
	return s.decRepo.GetByID(ctx, chosen.ID)
}

// resolveTarget picks the decision a fee operation applies to: an explicit
// decision id when given, else the student's recorded choice, else the single
// accepted decision.
func (s *enrollmentService) resolveTarget(ctx context.Context, app *domain.Application, decisionID *int32) (*domain.SchoolDecision, error) {
	if decisionID != nil {
		d, err := s.decRepo.GetByID(ctx, *decisionID)
		if err != nil {
			return nil, err
		}
		if d.ApplicationID != app.ID || d.Decision != domain.DecisionAccepted {
			return nil, fmt.Errorf("%w: decision %d is not an acceptance of this application", domain.ErrInvalidChoice, *decisionID)
		}
		return d, nil
	}

	decisions, err := s.decRepo.ListByApplication(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	var firstAccepted *domain.SchoolDecision
	for i := range decisions {
		if decisions[i].Decision != domain.DecisionAccepted {
			continue
		}
		if decisions[i].IsStudentChoice {
			return &decisions[i], nil
		}
		if firstAccepted == nil {
			firstAccepted = &decisions[i]
		}
	}
	if firstAccepted == nil {
		return nil, fmt.Errorf("%w: no accepted school found for this application", domain.ErrConflict)
	}
	return firstAccepted, nil
}

// QuoteFee computes a point-in-time fee breakdown. No caching: fee
// structures may change between calls.
func (s *enrollmentService) QuoteFee(ctx context.Context, referenceID string, decisionID *int32) (*domain.FeeQuote, error) {
	app, err := s.appRepo.GetByReferenceID(ctx, referenceID)
	if err != nil {
		return nil, err
	}
	target, err := s.resolveTarget(ctx, app, decisionID)
	if err != nil {
		return nil, err
	}
	return s.quoteFor(ctx, app, target)
}

func (s *enrollmentService) quoteFor(ctx context.Context, app *domain.Application, d *domain.SchoolDecision) (*domain.FeeQuote, error) {
	fs, err := s.feeRepo.GetStructure(ctx, d.SchoolID, app.CourseApplied, 1)
	if errors.Is(err, domain.ErrNotFound) {
		// Seed the configured default structure so the quote can proceed.
		fs = &domain.FeeStructure{
			SchoolID:        d.SchoolID,
			Course:          app.CourseApplied,
			Semester:        1,
			TuitionFeePaise: s.policy.DefaultTuitionPaise,
			LibraryFeePaise: s.policy.DefaultLibraryPaise,
			LabFeePaise:     s.policy.DefaultLabPaise,
			ExamFeePaise:    s.policy.DefaultExamPaise,
		}
		fs.TotalFeePaise = fs.TuitionFeePaise + fs.LibraryFeePaise + fs.LabFeePaise + fs.ExamFeePaise
		if createErr := s.feeRepo.CreateStructure(ctx, fs); createErr != nil {
			return nil, createErr
		}
	} else if err != nil {
		return nil, err
	}

	return &domain.FeeQuote{
		ReferenceID:       app.ReferenceID,
		SchoolDecisionID:  d.ID,
		SchoolName:        d.SchoolName,
		Course:            app.CourseApplied,
		TuitionFeePaise:   fs.TuitionFeePaise,
		LibraryFeePaise:   fs.LibraryFeePaise,
		LabFeePaise:       fs.LabFeePaise,
		ExamFeePaise:      fs.ExamFeePaise,
		AdmissionFeePaise: s.policy.AdmissionFeePaise,
		TotalPaise:        fs.TotalFeePaise + s.policy.AdmissionFeePaise,
		DueDate:           time.Now().AddDate(0, 0, s.policy.InvoiceDueDays),
		PaymentMethods:    []string{"online", "card", "bank_transfer"},
	}, nil
}

// InitPayment opens a simulated payment session. No gateway is integrated;
// the session id serves as the payment reference on completion.
func (s *enrollmentService) InitPayment(ctx context.Context, referenceID string, decisionID *int32) (*domain.PaymentSession, error) {
	quote, err := s.QuoteFee(ctx, referenceID, decisionID)
	if err != nil {
		return nil, err
	}
	return &domain.PaymentSession{
		SessionID:   uuid.NewString(),
		ReferenceID: referenceID,
		AmountPaise: quote.TotalPaise,
		ExpiresOn:   time.Now().Add(s.policy.PaymentSessionValidity),
	}, nil
}

// Enroll commits the application to one accepted school. At most one of the
// application's decisions may hold an enrollment at a time.
func (s *enrollmentService) Enroll(ctx context.Context, decisionID int32, paymentReference string) (*domain.SchoolDecision, error) {
	d, err := s.decRepo.GetByID(ctx, decisionID)
	if err != nil {
		return nil, err
	}
	if !d.CanEnroll() {
		switch {
		case d.EnrollmentStatus != domain.EnrollmentNotEnrolled:
			return nil, fmt.Errorf("%w: already enrolled or withdrawn", domain.ErrConflict)
		default:
			return nil, fmt.Errorf("%w: cannot enroll, application %s at this school", domain.ErrConflict, d.Decision)
		}
	}
	if s.policy.PaymentBeforeEnrollment && paymentReference == "" {
		return nil, fmt.Errorf("%w: complete fee payment before enrolling", domain.ErrPaymentRequired)
	}

	now := time.Now()
	d.EnrollmentStatus = domain.EnrollmentEnrolled
	d.EnrollmentDate = &now
	d.PaymentReference = paymentReference
	// The repository checks and flips under row locks, so two concurrent
	// enrollments for the same application cannot both succeed.
	if err := s.decRepo.Enroll(ctx, d); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: already enrolled at another school, withdraw first", domain.ErrConflict)
		}
		return nil, err
	}

	app, err := s.appRepo.GetByID(ctx, d.ApplicationID)
	if err != nil {
		return nil, err
	}
	s.issueInvoice(ctx, app, d, now)

	if err := s.emailSvc.SendEnrollmentConfirmation(ctx, app.Email, app.ApplicantName, d.SchoolName, paymentReference); err != nil {
		logger.Error("Failed to send enrollment confirmation", "reference_id", app.ReferenceID, "error", err)
	}
	logger.Info("Student enrolled", "reference_id", app.ReferenceID, "school_id", d.SchoolID, "decision_id", d.ID)
	return d, nil
}

func (s *enrollmentService) issueInvoice(ctx context.Context, app *domain.Application, d *domain.SchoolDecision, now time.Time) {
	quote, err := s.quoteFor(ctx, app, d)
	if err != nil {
		logger.Error("Failed to compute invoice amount", "decision_id", d.ID, "error", err)
		return
	}
	number, err := utils.NewInvoiceNumber(now)
	if err != nil {
		logger.Error("Failed to issue invoice number", "decision_id", d.ID, "error", err)
		return
	}
	inv := &domain.FeeInvoice{
		InvoiceNumber:    number,
		SchoolDecisionID: d.ID,
		AmountPaise:      quote.TotalPaise,
		DueDate:          quote.DueDate,
		Status:           domain.InvoicePending,
	}
	if err := s.feeRepo.CreateInvoice(ctx, inv); err != nil {
		logger.Error("Failed to create fee invoice", "decision_id", d.ID, "error", err)
	}
}

// Withdraw releases an active enrollment. The decision stays accepted:
// withdrawing is not a rejection.
func (s *enrollmentService) Withdraw(ctx context.Context, decisionID int32, reason string) (*domain.SchoolDecision, error) {
	d, err := s.decRepo.GetByID(ctx, decisionID)
	if err != nil {
		return nil, err
	}
	if !d.CanWithdraw() {
		return nil, fmt.Errorf("%w: not currently enrolled", domain.ErrConflict)
	}

	now := time.Now()
	d.EnrollmentStatus = domain.EnrollmentWithdrawn
	d.WithdrawalDate = &now
	d.WithdrawalReason = reason
	if err := s.decRepo.Update(ctx, d); err != nil {
		return nil, err
	}

	if app, err := s.appRepo.GetByID(ctx, d.ApplicationID); err == nil {
		if mailErr := s.emailSvc.SendWithdrawalConfirmation(ctx, app.Email, app.ApplicantName, d.SchoolName, reason); mailErr != nil {
			logger.Error("Failed to send withdrawal confirmation", "reference_id", app.ReferenceID, "error", mailErr)
		}
	}
	logger.Info("Enrollment withdrawn", "decision_id", d.ID, "reason", reason)
	return d, nil
}
