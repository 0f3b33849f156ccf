package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"acharya-admissions-backend/internal/domain"
	"acharya-admissions-backend/internal/logger"
	"acharya-admissions-backend/internal/repository"
)

type decisionService struct {
	decRepo    repository.DecisionRepository
	appRepo    repository.ApplicationRepository
	schoolRepo repository.SchoolRepository
	emailSvc   EmailService
}

func NewDecisionService(
	decRepo repository.DecisionRepository,
	appRepo repository.ApplicationRepository,
	schoolRepo repository.SchoolRepository,
	emailSvc EmailService,
) DecisionService {
	return &decisionService{
		decRepo:    decRepo,
		appRepo:    appRepo,
		schoolRepo: schoolRepo,
		emailSvc:   emailSvc,
	}
}

// Decide applies one accept/reject transition for an (application, school)
// pair. Create and update are different wire operations but one logical
// transition: creating when a row already exists degrades to updating it.
func (s *decisionService) Decide(ctx context.Context, reviewerID int32, in DecideInput) (*domain.SchoolDecision, error) {
	if in.NewStatus != domain.DecisionAccepted && in.NewStatus != domain.DecisionRejected {
		return nil, fmt.Errorf("%w: decision must be accepted or rejected", domain.ErrValidation)
	}

	var existing *domain.SchoolDecision
	if in.DecisionID != nil {
		d, err := s.decRepo.GetByID(ctx, *in.DecisionID)
		if err != nil {
			return nil, err
		}
		existing = d
	} else {
		d, err := s.decRepo.GetByApplicationAndSchool(ctx, in.ApplicationID, in.SchoolID)
		switch {
		case err == nil:
			existing = d
		case errors.Is(err, domain.ErrNotFound):
			// First decision for this pair.
		default:
			return nil, err
		}
	}

	if existing == nil {
		return s.create(ctx, reviewerID, in)
	}
	return s.update(ctx, reviewerID, in, existing)
}

func (s *decisionService) create(ctx context.Context, reviewerID int32, in DecideInput) (*domain.SchoolDecision, error) {
	app, err := s.appRepo.GetByID(ctx, in.ApplicationID)
	if err != nil {
		return nil, err
	}
	school, err := s.schoolRepo.GetByID(ctx, in.SchoolID)
	if err != nil {
		return nil, err
	}

	prefOrder := app.PreferenceOrder(in.SchoolID)
	if prefOrder == "" {
		// A school may review an application that never listed it.
		prefOrder = "unsolicited"
	}

	now := time.Now()
	d := &domain.SchoolDecision{
		ApplicationID:    app.ID,
		SchoolID:         school.ID,
		SchoolName:       school.SchoolName,
		PreferenceOrder:  prefOrder,
		Decision:         in.NewStatus,
		ReviewComments:   in.Comments,
		ReviewedBy:       &reviewerID,
		ReviewedOn:       &now,
		EnrollmentStatus: domain.EnrollmentNotEnrolled,
	}
	if err := s.decRepo.Create(ctx, d); err != nil {
		return nil, err
	}

	s.notify(ctx, app, school.SchoolName, in.NewStatus, in.Comments)
	logger.Info("School decision recorded", "application_id", app.ID, "school_id", school.ID, "decision", in.NewStatus)
	return d, nil
}

func (s *decisionService) update(ctx context.Context, reviewerID int32, in DecideInput, d *domain.SchoolDecision) (*domain.SchoolDecision, error) {
	// A decision is only visible to the school that owns it. Reporting
	// not-found keeps other schools' decision ids unguessable.
	if d.SchoolID != in.SchoolID {
		return nil, domain.ErrNotFound
	}
	if in.ApplicationID != 0 && d.ApplicationID != in.ApplicationID {
		return nil, fmt.Errorf("%w: decision does not belong to application %d", domain.ErrConflict, in.ApplicationID)
	}

	// Repeating the same terminal status is a no-op that still succeeds.
	if d.Decision == in.NewStatus {
		return d, nil
	}

	// An enrolled decision is locked to accepted until explicit withdrawal.
	if d.EnrollmentStatus == domain.EnrollmentEnrolled && in.NewStatus == domain.DecisionRejected {
		return nil, fmt.Errorf("%w: decision has an active enrollment, withdraw before rejecting", domain.ErrConflict)
	}

	if in.ExpectedVersion == nil {
		return nil, fmt.Errorf("%w: expected_version is required when updating a decision", domain.ErrValidation)
	}
	d.Version = *in.ExpectedVersion

	now := time.Now()
	d.Decision = in.NewStatus
	if in.Comments != "" {
		d.ReviewComments = in.Comments
	}
	d.ReviewedBy = &reviewerID
	d.ReviewedOn = &now

	if err := s.decRepo.Update(ctx, d); err != nil {
		return nil, err
	}

	if app, err := s.appRepo.GetByID(ctx, d.ApplicationID); err == nil {
		s.notify(ctx, app, d.SchoolName, in.NewStatus, in.Comments)
	}
	logger.Info("School decision updated", "decision_id", d.ID, "decision", in.NewStatus, "version", d.Version)
	return d, nil
}

func (s *decisionService) notify(ctx context.Context, app *domain.Application, schoolName string, status domain.DecisionStatus, comments string) {
	if err := s.emailSvc.SendDecisionNotification(ctx, app.Email, app.ApplicantName, schoolName, status, comments); err != nil {
		logger.Error("Failed to send decision notification", "reference_id", app.ReferenceID, "error", err)
	}
}

// ListForSchool returns the review queue: every application naming the school
// in its preferences, each paired with the school's decision when one exists.
func (s *decisionService) ListForSchool(ctx context.Context, schoolID int32) ([]SchoolReviewEntry, error) {
	apps, err := s.appRepo.ListBySchoolPreference(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	entries := make([]SchoolReviewEntry, 0, len(apps))
	for i := range apps {
		entry := SchoolReviewEntry{Application: apps[i]}
		d, err := s.decRepo.GetByApplicationAndSchool(ctx, apps[i].ID, schoolID)
		switch {
		case err == nil:
			entry.Decision = d
		case errors.Is(err, domain.ErrNotFound):
			// Not reviewed yet.
		default:
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
