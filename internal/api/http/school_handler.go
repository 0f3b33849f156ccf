package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"acharya-admissions-backend/internal/service"
)

// SchoolHandler serves the public school directory used by the application
// form's preference pickers.
type SchoolHandler struct {
	schools service.SchoolService
}

func NewSchoolHandler(schools service.SchoolService) *SchoolHandler {
	return &SchoolHandler{schools: schools}
}

// List handles GET /api/schools.
func (h *SchoolHandler) List(w http.ResponseWriter, r *http.Request) {
	schools, err := h.schools.ListSchools(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, schools)
}

// Get handles GET /api/schools/{id}.
func (h *SchoolHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondValidationError(w, "invalid school id")
		return
	}

	school, err := h.schools.GetSchool(r.Context(), int32(id))
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, school)
}
