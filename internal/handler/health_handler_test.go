package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/dendrafalah/terencana.id/internal/domain"
	"github.com/dendrafalah/terencana.id/internal/middleware"
	"github.com/dendrafalah/terencana.id/internal/service"
	"github.com/dendrafalah/terencana.id/internal/testutil"
)

func setupDeviceContext(c echo.Context, deviceID uuid.UUID) {
	ctx := context.WithValue(c.Request().Context(), middleware.DeviceIDKey, deviceID)
	c.SetRequest(c.Request().WithContext(ctx))
}

func TestGetHealthDraft_ReturnsDefaults(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockDraftRepository()
	handler := NewHealthCheckHandler(service.NewHealthService(repo))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/financial-health-check/draft", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupDeviceContext(c, uuid.New())

	if err := handler.GetDraft(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var draft domain.HealthDraft
	if err := json.Unmarshal(rec.Body.Bytes(), &draft); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(draft.Income) == 0 || len(draft.Essentials) == 0 {
		t.Error("Expected default line items in a fresh draft")
	}
}

func TestPutHealthDraft_RejectsNegativeAmount(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockDraftRepository()
	handler := NewHealthCheckHandler(service.NewHealthService(repo))

	body := `{"income":[{"label":"Gaji","amount":"-100","period":"monthly"}]}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/financial-health-check/draft", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupDeviceContext(c, uuid.New())

	if err := handler.PutDraft(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal problem details: %v", err)
	}
	if problem.Type != ErrorTypeValidation {
		t.Errorf("Expected validation problem type, got %s", problem.Type)
	}
}

func TestHealthNext_BlockedWithoutIncome(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockDraftRepository()
	handler := NewHealthCheckHandler(service.NewHealthService(repo))
	deviceID := uuid.New()

	// Move past the profile step first
	req := httptest.NewRequest(http.MethodPost, "/api/v1/financial-health-check/draft/next", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupDeviceContext(c, deviceID)
	if err := handler.Next(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200 on profile step, got %d", rec.Code)
	}

	// The income step refuses to advance while all amounts are zero
	req = httptest.NewRequest(http.MethodPost, "/api/v1/financial-health-check/draft/next", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	setupDeviceContext(c, deviceID)
	if err := handler.Next(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected status 422, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal problem details: %v", err)
	}
	if problem.Type != ErrorTypeIncomplete {
		t.Errorf("Expected incomplete-step problem type, got %s", problem.Type)
	}
}

func TestHealthResult_NotFoundBeforeSubmit(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockDraftRepository()
	handler := NewHealthCheckHandler(service.NewHealthService(repo))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/financial-health-check/result", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupDeviceContext(c, uuid.New())

	if err := handler.GetResult(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestHealthSubmit_BlockedWithoutIncome(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockDraftRepository()
	handler := NewHealthCheckHandler(service.NewHealthService(repo))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/financial-health-check/submit", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupDeviceContext(c, uuid.New())

	// the untouched template has zero income, so submission is refused
	if err := handler.Submit(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected status 422, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal problem details: %v", err)
	}
	if problem.Type != ErrorTypeIncomplete {
		t.Errorf("Expected incomplete-step problem type, got %s", problem.Type)
	}
}

func TestHealthSubmitThenResult(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockDraftRepository()
	handler := NewHealthCheckHandler(service.NewHealthService(repo))
	deviceID := uuid.New()

	body := `{"income":[{"label":"Gaji bersih (take home)","amount":"10000000","period":"monthly"}]}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/financial-health-check/draft", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupDeviceContext(c, deviceID)
	if err := handler.PutDraft(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200 on draft save, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/financial-health-check/submit", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	setupDeviceContext(c, deviceID)
	if err := handler.Submit(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/financial-health-check/result", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	setupDeviceContext(c, deviceID)
	if err := handler.GetResult(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var result domain.HealthResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal result: %v", err)
	}
	if !result.IncomeMonthly.Equal(decimal.NewFromInt(10_000_000)) {
		t.Errorf("Expected income 10000000, got %s", result.IncomeMonthly)
	}
}

func TestHealthReset(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockDraftRepository()
	handler := NewHealthCheckHandler(service.NewHealthService(repo))
	deviceID := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/financial-health-check/reset", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupDeviceContext(c, deviceID)

	if err := handler.Reset(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
}
