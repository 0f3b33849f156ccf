package http

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"acharya-admissions-backend/internal/service"
	"acharya-admissions-backend/internal/utils"
)

// AdmissionHandler serves the public application flow: email verification,
// submission and tracking. None of its routes require authentication.
type AdmissionHandler struct {
	admissions service.AdmissionService
}

func NewAdmissionHandler(admissions service.AdmissionService) *AdmissionHandler {
	return &AdmissionHandler{admissions: admissions}
}

type requestOTPRequest struct {
	Email         string `json:"email"`
	ApplicantName string `json:"applicant_name"`
}

// RequestOTP handles POST /api/admissions/verify-email/request.
func (h *AdmissionHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req requestOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidationError(w, "invalid request body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" {
		respondValidationError(w, "email is required")
		return
	}

	if err := h.admissions.RequestEmailVerification(r.Context(), req.Email, req.ApplicantName); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "OTP sent to your email")
}

type confirmOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ConfirmOTP handles POST /api/admissions/verify-email/confirm. On success
// the response carries the verification token to attach to the submission.
func (h *AdmissionHandler) ConfirmOTP(w http.ResponseWriter, r *http.Request) {
	var req confirmOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidationError(w, "invalid request body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.OTP == "" {
		respondValidationError(w, "email and otp are required")
		return
	}

	token, err := h.admissions.ConfirmEmailVerification(r.Context(), req.Email, req.OTP)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"verification_token": token})
}

type submitApplicationRequest struct {
	ApplicantName     string   `json:"applicant_name"`
	DateOfBirth       string   `json:"date_of_birth"`
	Email             string   `json:"email"`
	PhoneNumber       string   `json:"phone_number"`
	Address           string   `json:"address"`
	CourseApplied     string   `json:"course_applied"`
	Category          string   `json:"category"`
	PreviousSchool    string   `json:"previous_school"`
	LastPercentage    *float64 `json:"last_percentage"`
	FirstPreference   int32    `json:"first_preference_school_id"`
	SecondPreference  *int32   `json:"second_preference_school_id"`
	ThirdPreference   *int32   `json:"third_preference_school_id"`
	VerificationToken string   `json:"verification_token"`
}

// Submit handles POST /api/admissions/applications.
func (h *AdmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitApplicationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidationError(w, "invalid request body")
		return
	}
	if req.ApplicantName == "" || req.Email == "" || req.CourseApplied == "" {
		respondValidationError(w, "applicant_name, email and course_applied are required")
		return
	}
	dob, err := utils.ParseDate(req.DateOfBirth)
	if err != nil {
		respondValidationError(w, "date_of_birth must be in YYYY-MM-DD format")
		return
	}

	app, err := h.admissions.Submit(r.Context(), service.SubmitApplicationInput{
		ApplicantName:            req.ApplicantName,
		DateOfBirth:              dob,
		Email:                    strings.TrimSpace(strings.ToLower(req.Email)),
		PhoneNumber:              req.PhoneNumber,
		Address:                  req.Address,
		CourseApplied:            req.CourseApplied,
		Category:                 req.Category,
		PreviousSchool:           req.PreviousSchool,
		LastPercentage:           req.LastPercentage,
		FirstPreferenceSchoolID:  req.FirstPreference,
		SecondPreferenceSchoolID: req.SecondPreference,
		ThirdPreferenceSchoolID:  req.ThirdPreference,
		VerificationToken:        req.VerificationToken,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, app)
}

// Track handles GET /api/admissions/track/{referenceID}.
func (h *AdmissionHandler) Track(w http.ResponseWriter, r *http.Request) {
	referenceID := mux.Vars(r)["referenceID"]

	result, err := h.admissions.Track(r.Context(), referenceID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, result)
}
