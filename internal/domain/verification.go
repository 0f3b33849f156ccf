package domain

import "time"

const (
	// OTPValidity is how long an issued OTP stays usable.
	OTPValidity = 10 * time.Minute
	// OTPMaxAttempts is the number of failed checks before the OTP is burned.
	OTPMaxAttempts = 3
)

// EmailVerification is one OTP issued to an applicant's email address.
// Applications may only be submitted against a verified address.
type EmailVerification struct {
	ID         int32     `json:"id"`
	Email      string    `json:"email"`
	OTP        string    `json:"-"`
	IsVerified bool      `json:"is_verified"`
	Attempts   int32     `json:"attempts"`
	CreatedOn  time.Time `json:"created_on"`
	ExpiresOn  time.Time `json:"expires_on"`
}

func (v *EmailVerification) IsExpired(now time.Time) bool {
	return now.After(v.ExpiresOn)
}
