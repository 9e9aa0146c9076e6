package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dendrafalah/terencana.id/internal/domain"
	"github.com/dendrafalah/terencana.id/internal/service"
	"github.com/dendrafalah/terencana.id/internal/testutil"
)

func TestGetReflectionQuestions(t *testing.T) {
	e := echo.New()
	handler := NewReflectionHandler(service.NewReflectionService(testutil.NewMockDraftRepository()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reflection/questions", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetQuestions(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var questions []domain.ReflectionQuestion
	if err := json.Unmarshal(rec.Body.Bytes(), &questions); err != nil {
		t.Fatalf("Failed to unmarshal questions: %v", err)
	}
	if len(questions) != len(domain.ReflectionQuestions) {
		t.Errorf("Expected %d questions, got %d", len(domain.ReflectionQuestions), len(questions))
	}
}

func TestSubmitReflection_Success(t *testing.T) {
	e := echo.New()
	handler := NewReflectionHandler(service.NewReflectionService(testutil.NewMockDraftRepository()))

	body := `{"answers":{"q1":2,"q2":2,"q3":2,"q4":2,"q5":2,"q6":2,"q7":2,"q8":2,"q9":2,"q10":2,"q11":2}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reflection/submit", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupDeviceContext(c, uuid.New())

	if err := handler.Submit(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var result domain.ReflectionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal result: %v", err)
	}
	if result.Key != "singa" {
		t.Errorf("Expected animal 'singa', got %q", result.Key)
	}
	if result.Total != 22 {
		t.Errorf("Expected total 22, got %d", result.Total)
	}
}

func TestSubmitReflection_InvalidAnswer(t *testing.T) {
	e := echo.New()
	handler := NewReflectionHandler(service.NewReflectionService(testutil.NewMockDraftRepository()))

	body := `{"answers":{"q1":5}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reflection/submit", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupDeviceContext(c, uuid.New())

	if err := handler.Submit(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestReflectionResult_NotFound(t *testing.T) {
	e := echo.New()
	handler := NewReflectionHandler(service.NewReflectionService(testutil.NewMockDraftRepository()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reflection/result", nil)
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
