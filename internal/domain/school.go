package domain

import "time"

type School struct {
	ID           int32      `json:"id"`
	SchoolCode   string     `json:"school_code"`
	SchoolName   string     `json:"school_name"`
	District     string     `json:"district"`
	Block        string     `json:"block"`
	Village      string     `json:"village"`
	ContactEmail string     `json:"contact_email"`
	ContactPhone string     `json:"contact_phone"`
	Address      string     `json:"address"`
	IsActive     bool       `json:"is_active"`
	CreatedOn    time.Time  `json:"created_on"`
	ActivatedOn  *time.Time `json:"activated_on,omitempty"`
}

// FullLocation renders "village, block, district" for display.
func (s *School) FullLocation() string {
	return s.Village + ", " + s.Block + ", " + s.District
}
