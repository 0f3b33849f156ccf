// Package http exposes the admission workflow over a JSON REST API.
package http

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"acharya-admissions-backend/internal/domain"
	"acharya-admissions-backend/internal/security"
	"acharya-admissions-backend/internal/service"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Admissions service.AdmissionService
	Decisions  service.DecisionService
	Enrollment service.EnrollmentService
	Schools    service.SchoolService
	Auth       service.AuthService
	Tokens     security.TokenManager
	DB         *sql.DB
	Redis      *redis.Client
}

// NewRouter wires all HTTP routes. Applicant routes are public and keyed by
// reference id; staff routes require a Bearer access token.
func NewRouter(deps RouterDeps) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware, MetricsMiddleware)

	health := NewHealthHandler(deps.DB, deps.Redis)
	r.HandleFunc("/healthz", health.Check).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Public applicant surface.
	admission := NewAdmissionHandler(deps.Admissions)
	enrollment := NewEnrollmentHandler(deps.Enrollment)
	school := NewSchoolHandler(deps.Schools)

	api.HandleFunc("/admissions/verify-email/request", admission.RequestOTP).Methods(http.MethodPost)
	api.HandleFunc("/admissions/verify-email/confirm", admission.ConfirmOTP).Methods(http.MethodPost)
	api.HandleFunc("/admissions/applications", admission.Submit).Methods(http.MethodPost)
	api.HandleFunc("/admissions/track/{referenceID}", admission.Track).Methods(http.MethodGet)

	api.HandleFunc("/admissions/{referenceID}/accepted-schools", enrollment.AcceptedSchools).Methods(http.MethodGet)
	api.HandleFunc("/admissions/{referenceID}/choice", enrollment.SubmitChoice).Methods(http.MethodPost)
	api.HandleFunc("/admissions/{referenceID}/fee-calculation", enrollment.QuoteFee).Methods(http.MethodGet)
	api.HandleFunc("/admissions/{referenceID}/fee-payment", enrollment.InitPayment).Methods(http.MethodPost)
	api.HandleFunc("/admissions/enroll", enrollment.Enroll).Methods(http.MethodPost)
	api.HandleFunc("/admissions/withdraw", enrollment.Withdraw).Methods(http.MethodPost)

	api.HandleFunc("/schools", school.List).Methods(http.MethodGet)
	api.HandleFunc("/schools/{id}", school.Get).Methods(http.MethodGet)

	// Staff auth.
	auth := NewAuthHandler(deps.Auth)
	api.HandleFunc("/auth/login", auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", auth.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", auth.Logout).Methods(http.MethodPost)

	// Staff review surface. Wardens hold accounts but play no part in
	// admission review, so the subrouter is limited to admin and faculty.
	decision := NewDecisionHandler(deps.Decisions)
	staff := api.PathPrefix("/staff").Subrouter()
	staff.Use(AuthMiddleware(deps.Tokens), RequireRole(domain.RoleAdmin, domain.RoleFaculty))
	staff.HandleFunc("/applications", decision.ListApplications).Methods(http.MethodGet)
	staff.HandleFunc("/decisions", decision.CreateDecision).Methods(http.MethodPost)
	staff.HandleFunc("/decisions/{id}", decision.UpdateDecision).Methods(http.MethodPatch)

	return r
}
