package domain

import "time"

type DecisionStatus string

const (
	DecisionPending  DecisionStatus = "pending"
	DecisionAccepted DecisionStatus = "accepted"
	DecisionRejected DecisionStatus = "rejected"
)

type EnrollmentStatus string

const (
	EnrollmentNotEnrolled EnrollmentStatus = "not_enrolled"
	EnrollmentEnrolled    EnrollmentStatus = "enrolled"
	EnrollmentWithdrawn   EnrollmentStatus = "withdrawn"
)

// SchoolDecision is one school's verdict for one application. At most one
// row exists per (application, school) pair. Version is a monotonic counter;
// updates must carry the last-seen version and fail on mismatch.
type SchoolDecision struct {
	ID            int32 `json:"id"`
	ApplicationID int32 `json:"application_id"`
	SchoolID      int32 `json:"school_id"`

	// SchoolName is resolved by join for display, never authoritative.
	SchoolName      string `json:"school_name,omitempty"`
	PreferenceOrder string `json:"preference_order"`

	Decision       DecisionStatus `json:"decision"`
	ReviewComments string         `json:"review_comments"`
	ReviewedBy     *int32         `json:"reviewed_by,omitempty"`
	ReviewedOn     *time.Time     `json:"reviewed_on,omitempty"`

	EnrollmentStatus EnrollmentStatus `json:"enrollment_status"`
	EnrollmentDate   *time.Time       `json:"enrollment_date,omitempty"`
	PaymentReference string           `json:"payment_reference,omitempty"`
	WithdrawalDate   *time.Time       `json:"withdrawal_date,omitempty"`
	WithdrawalReason string           `json:"withdrawal_reason,omitempty"`

	IsStudentChoice bool       `json:"is_student_choice"`
	ChoiceDate      *time.Time `json:"choice_date,omitempty"`

	Version   int32     `json:"version"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// CanEnroll reports whether this decision is eligible for enrollment on its
// own state. The caller must additionally rule out an active enrollment on a
// sibling decision of the same application.
func (d *SchoolDecision) CanEnroll() bool {
	return d.Decision == DecisionAccepted && d.EnrollmentStatus == EnrollmentNotEnrolled
}

// CanWithdraw reports whether the decision holds an active enrollment.
func (d *SchoolDecision) CanWithdraw() bool {
	return d.EnrollmentStatus == EnrollmentEnrolled
}

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
	ApplicationEnrolled ApplicationStatus = "enrolled"
)

// AggregateStatus derives the overall standing of an application from its
// decision list. It is computed on demand and never stored.
//
//   - enrolled: exactly one decision holds an active enrollment
//   - accepted: at least one acceptance exists (and nothing enrolled)
//   - rejected: decisions exist and every one of them is rejected
//   - pending:  everything else, including the empty list
func AggregateStatus(decisions []SchoolDecision) ApplicationStatus {
	if len(decisions) == 0 {
		return ApplicationPending
	}
	accepted, rejected := 0, 0
	for i := range decisions {
		if decisions[i].EnrollmentStatus == EnrollmentEnrolled {
			return ApplicationEnrolled
		}
		switch decisions[i].Decision {
		case DecisionAccepted:
			accepted++
		case DecisionRejected:
			rejected++
		}
	}
	if accepted > 0 {
		return ApplicationAccepted
	}
	if rejected == len(decisions) {
		return ApplicationRejected
	}
	return ApplicationPending
}

// TrackingResult is the full snapshot returned by the tracking resolver.
type TrackingResult struct {
	Application Application       `json:"application"`
	Decisions   []SchoolDecision  `json:"decisions"`
	Status      ApplicationStatus `json:"status"`
}
