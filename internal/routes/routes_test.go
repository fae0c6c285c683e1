package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/testutil"
)

const secret = "test-secret"

type server struct {
	r     *gin.Engine
	token string
	salon testutil.Salon
	cut   models.Service
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	salon := testutil.SeedSalon(t, db, "ana")
	cut := testutil.SeedService(t, db, "cut", 45, 80, 0.1)

	dispatcher := audit.NewDispatcher(audit.New(db), nil)
	t.Cleanup(dispatcher.Close)

	cfg := &config.Config{
		JWTSecret:             secret,
		SlotStepMinutes:       15,
		DefaultServiceMinutes: 30,
		MaxReschedules:        3,
	}

	r := gin.New()
	RegisterRoutes(r, db, cfg, lock.NewLocal(), dispatcher)

	return &server{
		r:     r,
		token: sign(t, salon.Branch.ID, secret),
		salon: salon,
		cut:   cut,
	}
}

func sign(t *testing.T, branchID, key string) string {
	t.Helper()
	claims := middleware.Claims{
		TenantID: testutil.TenantID,
		BranchID: branchID,
		Role:     models.RoleManager,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func (s *server) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestAuthRequired(t *testing.T) {
	s := newServer(t)

	s.token = ""
	w := s.do(t, http.MethodGet, "/api/appointments?date="+testutil.Monday, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "missing_authorization_header", decode[map[string]any](t, w)["error_code"])

	s.token = sign(t, s.salon.Branch.ID, "other-secret")
	w = s.do(t, http.MethodGet, "/api/appointments?date="+testutil.Monday, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
}

func TestBookingFlow(t *testing.T) {
	s := newServer(t)

	booking := map[string]any{
		"customer_name":  "Carla",
		"customer_phone": "5551234",
		"service_ids":    []string{s.cut.ID},
		"stylist_id":     "ana",
		"date":           testutil.Monday,
		"time":           "10:00",
		"booking_type":   "phone",
	}

	w := s.do(t, http.MethodPost, "/api/appointments", booking)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	ap := decode[models.Appointment](t, w)
	assert.Equal(t, "10:45", ap.EndTime)
	assert.Equal(t, 88.0, ap.TotalAmount)

	// same slot again
	w = s.do(t, http.MethodPost, "/api/appointments", booking)
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	body := decode[map[string]any](t, w)
	assert.Equal(t, "schedule_conflict", body["error_code"])
	assert.Equal(t, "conflict", body["kind"])
	assert.Contains(t, body["entity_ids"], ap.ID)

	w = s.do(t, http.MethodGet, "/api/availability/check?stylist_id=ana&date="+testutil.Monday+"&time=10:30&duration=30", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, false, decode[map[string]any](t, w)["available"])

	w = s.do(t, http.MethodPatch, "/api/appointments/"+ap.ID+"/confirm", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "confirmed", decode[models.Appointment](t, w).Status)

	w = s.do(t, http.MethodPatch, "/api/appointments/"+ap.ID+"/start", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_transition", decode[map[string]any](t, w)["kind"])

	w = s.do(t, http.MethodGet, "/api/appointments?date="+testutil.Monday, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	list := decode[struct {
		Data  []map[string]any `json:"data"`
		Total int              `json:"total"`
	}](t, w)
	assert.Equal(t, 1, list.Total)

	w = s.do(t, http.MethodGet, "/api/appointments/"+ap.ID+"/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2.0, decode[map[string]any](t, w)["total"])
}

func TestUnknownAppointmentIsNotFound(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodGet, "/api/appointments/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvalidBody(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodPost, "/api/appointments", map[string]any{"customer_name": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", decode[map[string]any](t, w)["error_code"])
}

func TestSlotsOnClosedDay(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodGet, "/api/availability/slots?date="+testutil.Sunday+"&service_ids="+s.cut.ID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode[map[string]any](t, w)
	assert.Empty(t, body["slots"])
	assert.NotNil(t, body["slots"])
}

func TestCORSPreflight(t *testing.T) {
	s := newServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/appointments", nil)
	req.Header.Set("Origin", "https://salon.example")
	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://salon.example", w.Header().Get("Access-Control-Allow-Origin"))
}
