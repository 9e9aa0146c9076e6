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

// HealthCheckHandler handles financial health check HTTP requests
type HealthCheckHandler struct {
	healthService *service.HealthService
}

// NewHealthCheckHandler creates a new HealthCheckHandler
func NewHealthCheckHandler(healthService *service.HealthService) *HealthCheckHandler {
	return &HealthCheckHandler{healthService: healthService}
}

// StepsResponse lists the wizard step keys in order
type StepsResponse struct {
	Steps []string `json:"steps"`
}

// GetSteps handles GET /financial-health-check/steps
func (h *HealthCheckHandler) GetSteps(c echo.Context) error {
	return c.JSON(http.StatusOK, StepsResponse{Steps: h.healthService.Steps()})
}

// GetDraft handles GET /financial-health-check/draft
func (h *HealthCheckHandler) GetDraft(c echo.Context) error {
	deviceID := middleware.GetDeviceID(c)

	draft, err := h.healthService.Draft(deviceID)
	if err != nil {
		log.Error().Err(err).Str("device_id", deviceID.String()).Msg("Failed to load health draft")
		return NewInternalError(c, "Failed to load draft")
	}
	return c.JSON(http.StatusOK, draft)
}

// PutDraft handles PUT /financial-health-check/draft
func (h *HealthCheckHandler) PutDraft(c echo.Context) error {
	deviceID := middleware.GetDeviceID(c)

	var draft domain.HealthDraft
	if err := c.Bind(&draft); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	saved, err := h.healthService.PutDraft(deviceID, &draft)
	if err != nil {
		if errors.Is(err, domain.ErrAmountNegative) || errors.Is(err, domain.ErrInvalidPeriod) {
			return NewValidationError(c, err.Error(), nil)
		}
		log.Error().Err(err).Str("device_id", deviceID.String()).Msg("Failed to save health draft")
		return NewInternalError(c, "Failed to save draft")
	}
	return c.JSON(http.StatusOK, saved)
}

// Next handles POST /financial-health-check/draft/next
func (h *HealthCheckHandler) Next(c echo.Context) error {
	deviceID := middleware.GetDeviceID(c)

	draft, err := h.healthService.Next(deviceID)
	if err != nil {
		if errors.Is(err, domain.ErrIncomeRequired) {
			return NewIncompleteStepError(c, "Isi dulu penghasilan bulananmu", []ValidationError{
				{Field: "income", Message: "Penghasilan bulanan harus lebih dari nol"},
			})
		}
		log.Error().Err(err).Str("device_id", deviceID.String()).Msg("Failed to advance health draft")
		return NewInternalError(c, "Failed to advance draft")
	}
	return c.JSON(http.StatusOK, draft)
}

// Back handles POST /financial-health-check/draft/back
func (h *HealthCheckHandler) Back(c echo.Context) error {
	deviceID := middleware.GetDeviceID(c)

	draft, err := h.healthService.Back(deviceID)
	if err != nil {
		log.Error().Err(err).Str("device_id", deviceID.String()).Msg("Failed to rewind health draft")
		return NewInternalError(c, "Failed to rewind draft")
	}
	return c.JSON(http.StatusOK, draft)
}

// Submit handles POST /financial-health-check/submit
func (h *HealthCheckHandler) Submit(c echo.Context) error {
	deviceID := middleware.GetDeviceID(c)

	result, err := h.healthService.Submit(deviceID)
	if err != nil {
		if errors.Is(err, domain.ErrIncomeRequired) {
			return NewIncompleteStepError(c, "Isi dulu penghasilan bulananmu", []ValidationError{
				{Field: "income", Message: "Penghasilan bulanan harus lebih dari nol"},
			})
		}
		log.Error().Err(err).Str("device_id", deviceID.String()).Msg("Failed to submit health check")
		return NewInternalError(c, "Failed to submit health check")
	}

	log.Info().Str("device_id", deviceID.String()).Str("status", result.Overall.Label).Msg("Health check submitted")

	return c.JSON(http.StatusOK, result)
}

// GetResult handles GET /financial-health-check/result
func (h *HealthCheckHandler) GetResult(c echo.Context) error {
	deviceID := middleware.GetDeviceID(c)

	result, err := h.healthService.Result(deviceID)
	if err != nil {
		if errors.Is(err, domain.ErrResultNotFound) {
			return NewNotFoundError(c, "Health check result not found")
		}
		log.Error().Err(err).Str("device_id", deviceID.String()).Msg("Failed to load health result")
		return NewInternalError(c, "Failed to load result")
	}
	return c.JSON(http.StatusOK, result)
}

// Reset handles POST /financial-health-check/reset
func (h *HealthCheckHandler) Reset(c echo.Context) error {
	deviceID := middleware.GetDeviceID(c)

	if err := h.healthService.Reset(deviceID); err != nil {
		log.Error().Err(err).Str("device_id", deviceID.String()).Msg("Failed to reset health check")
		return NewInternalError(c, "Failed to reset")
	}
	return c.NoContent(http.StatusNoContent)
}
