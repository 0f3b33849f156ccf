package domain

import "time"

// Application is a single admission submission by a prospective student.
// ReferenceID is the human-facing tracking code (ADM-<year>-<6 chars>),
// immutable once issued. Applications are never deleted; terminal state is
// carried by their decisions.
type Application struct {
	ID          int32  `json:"id"`
	ReferenceID string `json:"reference_id"`

	ApplicantName string    `json:"applicant_name"`
	DateOfBirth   time.Time `json:"date_of_birth"`
	Email         string    `json:"email"`
	PhoneNumber   string    `json:"phone_number"`
	Address       string    `json:"address"`

	CourseApplied  string   `json:"course_applied"`
	Category       string   `json:"category"`
	PreviousSchool string   `json:"previous_school"`
	LastPercentage *float64 `json:"last_percentage,omitempty"`

	// Ranked school preferences. FirstPreferenceSchoolID is required;
	// the other slots may be nil but may not leave gaps.
	FirstPreferenceSchoolID  int32  `json:"first_preference_school_id"`
	SecondPreferenceSchoolID *int32 `json:"second_preference_school_id,omitempty"`
	ThirdPreferenceSchoolID  *int32 `json:"third_preference_school_id,omitempty"`

	SubmittedOn time.Time `json:"submitted_on"`
}

// PreferenceOrder returns "1st", "2nd" or "3rd" for the given school, or ""
// when the school is not among the application's preferences.
func (a *Application) PreferenceOrder(schoolID int32) string {
	switch {
	case a.FirstPreferenceSchoolID == schoolID:
		return "1st"
	case a.SecondPreferenceSchoolID != nil && *a.SecondPreferenceSchoolID == schoolID:
		return "2nd"
	case a.ThirdPreferenceSchoolID != nil && *a.ThirdPreferenceSchoolID == schoolID:
		return "3rd"
	}
	return ""
}

// PreferenceIDs returns the filled preference slots in rank order.
func (a *Application) PreferenceIDs() []int32 {
	ids := []int32{a.FirstPreferenceSchoolID}
	if a.SecondPreferenceSchoolID != nil {
		ids = append(ids, *a.SecondPreferenceSchoolID)
	}
	if a.ThirdPreferenceSchoolID != nil {
		ids = append(ids, *a.ThirdPreferenceSchoolID)
	}
	return ids
}

// ValidatePreferences enforces the preference invariants: slots are filled
// front to back with no gaps, and no school appears twice.
func (a *Application) ValidatePreferences() error {
	if a.FirstPreferenceSchoolID == 0 {
		return ErrValidation
	}
	if a.SecondPreferenceSchoolID == nil && a.ThirdPreferenceSchoolID != nil {
		return ErrValidation
	}
	seen := map[int32]bool{a.FirstPreferenceSchoolID: true}
	for _, p := range []*int32{a.SecondPreferenceSchoolID, a.ThirdPreferenceSchoolID} {
		if p == nil {
			continue
		}
		if seen[*p] {
			return ErrValidation
		}
		seen[*p] = true
	}
	return nil
}
