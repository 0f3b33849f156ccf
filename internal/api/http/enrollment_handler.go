package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"acharya-admissions-backend/internal/service"
)

// EnrollmentHandler serves the applicant's post-decision flow: choosing among
// acceptances, fee quotes, payment initiation, enrollment and withdrawal.
type EnrollmentHandler struct {
	enrollment service.EnrollmentService
}

func NewEnrollmentHandler(enrollment service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollment: enrollment}
}

// AcceptedSchools handles GET /api/admissions/{referenceID}/accepted-schools.
func (h *EnrollmentHandler) AcceptedSchools(w http.ResponseWriter, r *http.Request) {
	referenceID := mux.Vars(r)["referenceID"]

	result, err := h.enrollment.AcceptedSchools(r.Context(), referenceID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, result)
}

type submitChoiceRequest struct {
	SchoolID int32 `json:"school_id"`
}

// SubmitChoice handles POST /api/admissions/{referenceID}/choice.
func (h *EnrollmentHandler) SubmitChoice(w http.ResponseWriter, r *http.Request) {
	referenceID := mux.Vars(r)["referenceID"]

	var req submitChoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidationError(w, "invalid request body")
		return
	}
	if req.SchoolID == 0 {
		respondValidationError(w, "school_id is required")
		return
	}

	decision, err := h.enrollment.SubmitChoice(r.Context(), referenceID, req.SchoolID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, decision)
}

// QuoteFee handles GET /api/admissions/{referenceID}/fee-calculation. An
// optional decision_id query parameter pins the quote to one acceptance.
func (h *EnrollmentHandler) QuoteFee(w http.ResponseWriter, r *http.Request) {
	referenceID := mux.Vars(r)["referenceID"]

	decisionID, err := optionalIDParam(r, "decision_id")
	if err != nil {
		respondValidationError(w, "decision_id must be an integer")
		return
	}

	quote, err := h.enrollment.QuoteFee(r.Context(), referenceID, decisionID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, quote)
}

type initPaymentRequest struct {
	DecisionID *int32 `json:"decision_id"`
}

// InitPayment handles POST /api/admissions/{referenceID}/fee-payment.
func (h *EnrollmentHandler) InitPayment(w http.ResponseWriter, r *http.Request) {
	referenceID := mux.Vars(r)["referenceID"]

	var req initPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidationError(w, "invalid request body")
		return
	}

	session, err := h.enrollment.InitPayment(r.Context(), referenceID, req.DecisionID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, session)
}

type enrollRequest struct {
	DecisionID       int32  `json:"decision_id"`
	PaymentReference string `json:"payment_reference"`
}

// Enroll handles POST /api/admissions/enroll.
func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	var req enrollRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidationError(w, "invalid request body")
		return
	}
	if req.DecisionID == 0 {
		respondValidationError(w, "decision_id is required")
		return
	}

	decision, err := h.enrollment.Enroll(r.Context(), req.DecisionID, req.PaymentReference)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, decision)
}

type withdrawRequest struct {
	DecisionID int32  `json:"decision_id"`
	Reason     string `json:"reason"`
}

// Withdraw handles POST /api/admissions/withdraw.
func (h *EnrollmentHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req withdrawRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidationError(w, "invalid request body")
		return
	}
	if req.DecisionID == 0 {
		respondValidationError(w, "decision_id is required")
		return
	}

	decision, err := h.enrollment.Withdraw(r.Context(), req.DecisionID, req.Reason)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, decision)
}

func optionalIDParam(r *http.Request, name string) (*int32, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return nil, err
	}
	v := int32(id)
	return &v, nil
}
