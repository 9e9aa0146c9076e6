package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/dendrafalah/terencana.id/internal/domain"
	"github.com/dendrafalah/terencana.id/internal/middleware"
	"github.com/dendrafalah/terencana.id/internal/service"
)

// ReflectionHandler handles reflection quiz HTTP requests
type ReflectionHandler struct {
	reflectionService *service.ReflectionService
}

// NewReflectionHandler creates a new ReflectionHandler
func NewReflectionHandler(reflectionService *service.ReflectionService) *ReflectionHandler {
	return &ReflectionHandler{reflectionService: reflectionService}
}

// SubmitReflectionRequest carries the quiz answers keyed by question ID
type SubmitReflectionRequest struct {
	Answers domain.ReflectionAnswers `json:"answers"`
}

// GetQuestions handles GET /reflection/questions
func (h *ReflectionHandler) GetQuestions(c echo.Context) error {
	return c.JSON(http.StatusOK, h.reflectionService.Questions())
}

// Submit handles POST /reflection/submit
func (h *ReflectionHandler) Submit(c echo.Context) error {
	deviceID := middleware.GetDeviceID(c)

	var req SubmitReflectionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	result, err := h.reflectionService.Submit(deviceID, req.Answers)
	if err != nil {
		if errors.Is(err, domain.ErrAnswerValueInvalid) {
			return NewValidationError(c, "Jawaban harus 0, 1, atau 2", nil)
		}
		log.Error().Err(err).Str("device_id", deviceID.String()).Msg("Failed to submit reflection")
		return NewInternalError(c, "Failed to submit reflection")
	}

	log.Info().Str("device_id", deviceID.String()).Str("animal", result.Key).Msg("Reflection submitted")

	return c.JSON(http.StatusOK, result)
}

// GetResult handles GET /reflection/result
func (h *ReflectionHandler) GetResult(c echo.Context) error {
	deviceID := middleware.GetDeviceID(c)

	result, err := h.reflectionService.Result(deviceID)
	if err != nil {
		if errors.Is(err, domain.ErrResultNotFound) {
			return NewNotFoundError(c, "Reflection result not found")
		}
		log.Error().Err(err).Str("device_id", deviceID.String()).Msg("Failed to load reflection result")
		return NewInternalError(c, "Failed to load result")
	}
	return c.JSON(http.StatusOK, result)
}

// Reset handles POST /reflection/reset
func (h *ReflectionHandler) Reset(c echo.Context) error {
	deviceID := middleware.GetDeviceID(c)

	if err := h.reflectionService.Reset(deviceID); err != nil {
		log.Error().Err(err).Str("device_id", deviceID.String()).Msg("Failed to reset reflection")
		return NewInternalError(c, "Failed to reset")
	}
	return c.NoContent(http.StatusNoContent)
}
