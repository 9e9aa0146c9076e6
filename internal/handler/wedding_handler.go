package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/dendrafalah/terencana.id/internal/domain"
	"github.com/dendrafalah/terencana.id/internal/middleware"
	"github.com/dendrafalah/terencana.id/internal/service"
	"github.com/dendrafalah/terencana.id/internal/wizard"
)

// WeddingHandler handles wedding planner HTTP requests
type WeddingHandler struct {
	weddingService *service.WeddingService
}

// NewWeddingHandler creates a new WeddingHandler
func NewWeddingHandler(weddingService *service.WeddingService) *WeddingHandler {
	return &WeddingHandler{weddingService: weddingService}
}

// GetDraft handles GET /rencana-nikah/draft
func (h *WeddingHandler) GetDraft(c echo.Context) error {
	deviceID := middleware.GetDeviceID(c)

	draft, err := h.weddingService.Draft(deviceID)
	if err != nil {
		log.Error().Err(err).Str("device_id", deviceID.String()).Msg("Failed to load wedding draft")
		return NewInternalError(c, "Failed to load draft")
	}
	return c.JSON(http.StatusOK, draft)
}

// PutDraft handles PUT /rencana-nikah/draft
func (h *WeddingHandler) PutDraft(c echo.Context) error {
	deviceID := middleware.GetDeviceID(c)

	var draft domain.WeddingDraft
	if err := c.Bind(&draft); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	saved, err := h.weddingService.PutDraft(deviceID, &draft)
	if err != nil {
		if errors.Is(err, domain.ErrScaleAnswerInvalid) || errors.Is(err, domain.ErrAmountNegative) {
			return NewValidationError(c, err.Error(), nil)
		}
		log.Error().Err(err).Str("device_id", deviceID.String()).Msg("Failed to save wedding draft")
		return NewInternalError(c, "Failed to save draft")
	}
	return c.JSON(http.StatusOK, saved)
}

// Next handles POST /rencana-nikah/draft/next
func (h *WeddingHandler) Next(c echo.Context) error {
	deviceID := middleware.GetDeviceID(c)

	draft, err := h.weddingService.Next(deviceID)
	if err != nil {
		var missing *wizard.MissingFieldsError
		if errors.As(err, &missing) {
			return NewIncompleteStepError(c, "Jawab dulu pertanyaan di langkah ini", missingFieldErrors(missing))
		}
		if errors.Is(err, domain.ErrScenarioNotPicked) {
			return NewIncompleteStepError(c, "Pilih dulu salah satu strategi", []ValidationError{
				{Field: "pickedScenarioKey", Message: "Pilih salah satu skenario sebelum lanjut"},
			})
		}
		log.Error().Err(err).Str("device_id", deviceID.String()).Msg("Failed to advance wedding draft")
		return NewInternalError(c, "Failed to advance draft")
	}
	return c.JSON(http.StatusOK, draft)
}

// Back handles POST /rencana-nikah/draft/back
func (h *WeddingHandler) Back(c echo.Context) error {
	deviceID := middleware.GetDeviceID(c)

	draft, err := h.weddingService.Back(deviceID)
	if err != nil {
		log.Error().Err(err).Str("device_id", deviceID.String()).Msg("Failed to rewind wedding draft")
		return NewInternalError(c, "Failed to rewind draft")
	}
	return c.JSON(http.StatusOK, draft)
}

// GetBreakdown handles GET /rencana-nikah/breakdown
func (h *WeddingHandler) GetBreakdown(c echo.Context) error {
	deviceID := middleware.GetDeviceID(c)

	breakdown, err := h.weddingService.Breakdown(deviceID)
	if err != nil {
		log.Error().Err(err).Str("device_id", deviceID.String()).Msg("Failed to build wedding breakdown")
		return NewInternalError(c, "Failed to build breakdown")
	}
	return c.JSON(http.StatusOK, breakdown)
}

// Submit handles POST /rencana-nikah/submit
func (h *WeddingHandler) Submit(c echo.Context) error {
	deviceID := middleware.GetDeviceID(c)

	result, err := h.weddingService.Submit(deviceID)
	if err != nil {
		var missing *wizard.MissingFieldsError
		if errors.As(err, &missing) {
			return NewIncompleteStepError(c, "Jawab dulu pertanyaan gambaran pernikahanmu", missingFieldErrors(missing))
		}
		log.Error().Err(err).Str("device_id", deviceID.String()).Msg("Failed to submit wedding plan")
		return NewInternalError(c, "Failed to submit wedding plan")
	}

	log.Info().Str("device_id", deviceID.String()).Str("status", result.Snapshot.Status).Msg("Wedding plan submitted")

	return c.JSON(http.StatusOK, result)
}

// GetResult handles GET /rencana-nikah/result
func (h *WeddingHandler) GetResult(c echo.Context) error {
	deviceID := middleware.GetDeviceID(c)

	result, err := h.weddingService.Result(deviceID)
	if err != nil {
		if errors.Is(err, domain.ErrResultNotFound) {
			return NewNotFoundError(c, "Wedding plan result not found")
		}
		log.Error().Err(err).Str("device_id", deviceID.String()).Msg("Failed to load wedding result")
		return NewInternalError(c, "Failed to load result")
	}
	return c.JSON(http.StatusOK, result)
}

// Reset handles POST /rencana-nikah/reset
func (h *WeddingHandler) Reset(c echo.Context) error {
	deviceID := middleware.GetDeviceID(c)

	if err := h.weddingService.Reset(deviceID); err != nil {
		log.Error().Err(err).Str("device_id", deviceID.String()).Msg("Failed to reset wedding plan")
		return NewInternalError(c, "Failed to reset")
	}
	return c.NoContent(http.StatusNoContent)
}

func missingFieldErrors(missing *wizard.MissingFieldsError) []ValidationError {
	out := make([]ValidationError, 0, len(missing.Fields))
	for _, field := range missing.Fields {
		out = append(out, ValidationError{Field: field, Message: "Pertanyaan ini belum dijawab"})
	}
	return out
}
