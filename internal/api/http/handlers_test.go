package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpapi "acharya-admissions-backend/internal/api/http"
	"acharya-admissions-backend/internal/domain"
	"acharya-admissions-backend/internal/security"
	"acharya-admissions-backend/internal/service"
)

// MockAdmissionService
type MockAdmissionService struct {
	mock.Mock
}

func (m *MockAdmissionService) RequestEmailVerification(ctx context.Context, email, applicantName string) error {
	args := m.Called(ctx, email, applicantName)
	return args.Error(0)
}
func (m *MockAdmissionService) ConfirmEmailVerification(ctx context.Context, email, otp string) (string, error) {
	args := m.Called(ctx, email, otp)
	return args.String(0), args.Error(1)
}
func (m *MockAdmissionService) Submit(ctx context.Context, in service.SubmitApplicationInput) (*domain.Application, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockAdmissionService) Track(ctx context.Context, referenceID string) (*domain.TrackingResult, error) {
	args := m.Called(ctx, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackingResult), args.Error(1)
}

// MockEnrollmentService
type MockEnrollmentService struct {
	mock.Mock
}

func (m *MockEnrollmentService) AcceptedSchools(ctx context.Context, referenceID string) (*service.AcceptedSchoolsResult, error) {
	args := m.Called(ctx, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AcceptedSchoolsResult), args.Error(1)
}
func (m *MockEnrollmentService) SubmitChoice(ctx context.Context, referenceID string, chosenSchoolID int32) (*domain.SchoolDecision, error) {
	args := m.Called(ctx, referenceID, chosenSchoolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SchoolDecision), args.Error(1)
}
func (m *MockEnrollmentService) QuoteFee(ctx context.Context, referenceID string, decisionID *int32) (*domain.FeeQuote, error) {
	args := m.Called(ctx, referenceID, decisionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeQuote), args.Error(1)
}
func (m *MockEnrollmentService) InitPayment(ctx context.Context, referenceID string, decisionID *int32) (*domain.PaymentSession, error) {
	args := m.Called(ctx, referenceID, decisionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentSession), args.Error(1)
}
func (m *MockEnrollmentService) Enroll(ctx context.Context, decisionID int32, paymentReference string) (*domain.SchoolDecision, error) {
	args := m.Called(ctx, decisionID, paymentReference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SchoolDecision), args.Error(1)
}
func (m *MockEnrollmentService) Withdraw(ctx context.Context, decisionID int32, reason string) (*domain.SchoolDecision, error) {
	args := m.Called(ctx, decisionID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SchoolDecision), args.Error(1)
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestAdmissionHandler_Track(t *testing.T) {
	svc := new(MockAdmissionService)
	handler := httpapi.NewAdmissionHandler(svc)

	router := mux.NewRouter()
	router.HandleFunc("/api/admissions/track/{referenceID}", handler.Track).Methods("GET")

	t.Run("Success", func(t *testing.T) {
		svc.On("Track", mock.Anything, "ADM-2026-X7K2M9").Return(&domain.TrackingResult{
			Application: domain.Application{ReferenceID: "ADM-2026-X7K2M9"},
			Status:      domain.ApplicationAccepted,
		}, nil)

		req := httptest.NewRequest("GET", "/api/admissions/track/ADM-2026-X7K2M9", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, 200, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.True(t, env.Success)
		assert.Contains(t, string(env.Data), `"status":"accepted"`)
	})

	t.Run("Unknown reference maps to 404", func(t *testing.T) {
		svc.On("Track", mock.Anything, "ADM-2026-NOPE").Return(nil, domain.ErrNotFound)

		req := httptest.NewRequest("GET", "/api/admissions/track/ADM-2026-NOPE", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, 404, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
		assert.NotEmpty(t, env.Message)
	})
}

func TestEnrollmentHandler_ErrorMapping(t *testing.T) {
	svc := new(MockEnrollmentService)
	handler := httpapi.NewEnrollmentHandler(svc)

	router := mux.NewRouter()
	router.HandleFunc("/api/admissions/{referenceID}/choice", handler.SubmitChoice).Methods("POST")
	router.HandleFunc("/api/admissions/enroll", handler.Enroll).Methods("POST")

	t.Run("Invalid choice maps to 400", func(t *testing.T) {
		svc.On("SubmitChoice", mock.Anything, "ADM-2026-X7K2M9", int32(13)).
			Return(nil, domain.ErrInvalidChoice).Once()

		req := httptest.NewRequest("POST", "/api/admissions/ADM-2026-X7K2M9/choice",
			strings.NewReader(`{"school_id":13}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, 400, rec.Code)
	})

	t.Run("Conflict maps to 409", func(t *testing.T) {
		svc.On("Enroll", mock.Anything, int32(2), "PAY-1").
			Return(nil, domain.ErrConflict).Once()

		req := httptest.NewRequest("POST", "/api/admissions/enroll",
			strings.NewReader(`{"decision_id":2,"payment_reference":"PAY-1"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, 409, rec.Code)
	})

	t.Run("Payment required maps to 402", func(t *testing.T) {
		svc.On("Enroll", mock.Anything, int32(2), "").
			Return(nil, domain.ErrPaymentRequired).Once()

		req := httptest.NewRequest("POST", "/api/admissions/enroll",
			strings.NewReader(`{"decision_id":2}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, 402, rec.Code)
	})

	t.Run("Unknown body field maps to 400", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/admissions/enroll",
			strings.NewReader(`{"decision":2}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, 400, rec.Code)
	})
}

func TestStaffRoleEnforcement(t *testing.T) {
	tm := security.NewTokenManager("0123456789abcdef0123456789abcdef", 15*time.Minute, 24*time.Hour)
	chain := httpapi.AuthMiddleware(tm)(
		httpapi.RequireRole(domain.RoleAdmin, domain.RoleFaculty)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})))

	issue := func(t *testing.T, role domain.StaffRole) string {
		t.Helper()
		token, err := tm.GenerateAccessToken(&domain.StaffUser{ID: 9, SchoolID: 11, Role: role})
		assert.NoError(t, err)
		return token
	}

	t.Run("Faculty passes", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/staff/applications", nil)
		req.Header.Set("Authorization", "Bearer "+issue(t, domain.RoleFaculty))
		rec := httptest.NewRecorder()
		chain.ServeHTTP(rec, req)

		assert.Equal(t, 200, rec.Code)
	})

	t.Run("Warden is forbidden", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/staff/applications", nil)
		req.Header.Set("Authorization", "Bearer "+issue(t, domain.RoleWarden))
		rec := httptest.NewRecorder()
		chain.ServeHTTP(rec, req)

		assert.Equal(t, 403, rec.Code)
	})

	t.Run("Missing token is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/staff/applications", nil)
		rec := httptest.NewRecorder()
		chain.ServeHTTP(rec, req)

		assert.Equal(t, 401, rec.Code)
	})
}
