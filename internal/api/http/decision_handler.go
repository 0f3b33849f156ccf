package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"acharya-admissions-backend/internal/domain"
	"acharya-admissions-backend/internal/service"
)

// DecisionHandler serves the staff review surface. The reviewing school is
// always taken from the authenticated session, never from the payload.
type DecisionHandler struct {
	decisions service.DecisionService
}

func NewDecisionHandler(decisions service.DecisionService) *DecisionHandler {
	return &DecisionHandler{decisions: decisions}
}

// ListApplications handles GET /api/staff/applications: the review queue of
// applications that name the staff member's school as a preference.
func (h *DecisionHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	claims, ok := StaffFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, envelope{Success: false, Message: "authentication required"})
		return
	}

	entries, err := h.decisions.ListForSchool(r.Context(), claims.SchoolID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, entries)
}

type createDecisionRequest struct {
	ApplicationID int32                 `json:"application_id"`
	Decision      domain.DecisionStatus `json:"decision"`
	Comments      string                `json:"comments"`
}

// CreateDecision handles POST /api/staff/decisions: the first verdict for an
// (application, school) pair. If a decision already exists it is updated in
// place, so retried submissions stay safe.
func (h *DecisionHandler) CreateDecision(w http.ResponseWriter, r *http.Request) {
	claims, ok := StaffFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, envelope{Success: false, Message: "authentication required"})
		return
	}

	var req createDecisionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidationError(w, "invalid request body")
		return
	}
	if req.ApplicationID == 0 {
		respondValidationError(w, "application_id is required")
		return
	}

	decision, err := h.decisions.Decide(r.Context(), claims.UserID, service.DecideInput{
		ApplicationID: req.ApplicationID,
		SchoolID:      claims.SchoolID,
		NewStatus:     req.Decision,
		Comments:      req.Comments,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, decision)
}

type updateDecisionRequest struct {
	ApplicationID   int32                 `json:"application_id"`
	Decision        domain.DecisionStatus `json:"decision"`
	Comments        string                `json:"comments"`
	ExpectedVersion *int32                `json:"expected_version"`
}

// UpdateDecision handles PATCH /api/staff/decisions/{id}. The payload must
// carry the version the client last saw; a mismatch yields 409.
func (h *DecisionHandler) UpdateDecision(w http.ResponseWriter, r *http.Request) {
	claims, ok := StaffFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, envelope{Success: false, Message: "authentication required"})
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondValidationError(w, "invalid decision id")
		return
	}
	decisionID := int32(id)

	var req updateDecisionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidationError(w, "invalid request body")
		return
	}
	if req.ExpectedVersion == nil {
		respondValidationError(w, "expected_version is required")
		return
	}

	decision, err := h.decisions.Decide(r.Context(), claims.UserID, service.DecideInput{
		ApplicationID:   req.ApplicationID,
		SchoolID:        claims.SchoolID,
		DecisionID:      &decisionID,
		NewStatus:       req.Decision,
		Comments:        req.Comments,
		ExpectedVersion: req.ExpectedVersion,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, decision)
}
