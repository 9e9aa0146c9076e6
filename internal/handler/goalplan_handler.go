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

// GoalPlanHandler handles goal plan simulator HTTP requests
type GoalPlanHandler struct {
	goalPlanService *service.GoalPlanService
}

// NewGoalPlanHandler creates a new GoalPlanHandler
func NewGoalPlanHandler(goalPlanService *service.GoalPlanService) *GoalPlanHandler {
	return &GoalPlanHandler{goalPlanService: goalPlanService}
}

// GetTemplates handles GET /goal-plan/templates
func (h *GoalPlanHandler) GetTemplates(c echo.Context) error {
	return c.JSON(http.StatusOK, domain.GoalTemplates)
}

// GetDraft handles GET /goal-plan/draft
func (h *GoalPlanHandler) GetDraft(c echo.Context) error {
	deviceID := middleware.GetDeviceID(c)

	draft, err := h.goalPlanService.Draft(deviceID)
	if err != nil {
		log.Error().Err(err).Str("device_id", deviceID.String()).Msg("Failed to load goal plan draft")
		return NewInternalError(c, "Failed to load draft")
	}
	return c.JSON(http.StatusOK, draft)
}

// PutDraft handles PUT /goal-plan/draft
func (h *GoalPlanHandler) PutDraft(c echo.Context) error {
	deviceID := middleware.GetDeviceID(c)

	var draft domain.GoalPlanDraft
	if err := c.Bind(&draft); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	saved, err := h.goalPlanService.PutDraft(deviceID, &draft)
	if err != nil {
		if isGoalValidationError(err) {
			return NewValidationError(c, err.Error(), nil)
		}
		log.Error().Err(err).Str("device_id", deviceID.String()).Msg("Failed to save goal plan draft")
		return NewInternalError(c, "Failed to save draft")
	}
	return c.JSON(http.StatusOK, saved)
}

// Next handles POST /goal-plan/draft/next
func (h *GoalPlanHandler) Next(c echo.Context) error {
	deviceID := middleware.GetDeviceID(c)

	draft, err := h.goalPlanService.Next(deviceID)
	if err != nil {
		if errors.Is(err, domain.ErrGoalsRequired) {
			return NewIncompleteStepError(c, "Tambahkan minimal satu tujuan dulu", []ValidationError{
				{Field: "goals", Message: "Minimal satu tujuan diperlukan"},
			})
		}
		log.Error().Err(err).Str("device_id", deviceID.String()).Msg("Failed to advance goal plan draft")
		return NewInternalError(c, "Failed to advance draft")
	}
	return c.JSON(http.StatusOK, draft)
}

// Back handles POST /goal-plan/draft/back
func (h *GoalPlanHandler) Back(c echo.Context) error {
	deviceID := middleware.GetDeviceID(c)

	draft, err := h.goalPlanService.Back(deviceID)
	if err != nil {
		log.Error().Err(err).Str("device_id", deviceID.String()).Msg("Failed to rewind goal plan draft")
		return NewInternalError(c, "Failed to rewind draft")
	}
	return c.JSON(http.StatusOK, draft)
}

// Scenario handles POST /goal-plan/scenario
func (h *GoalPlanHandler) Scenario(c echo.Context) error {
	deviceID := middleware.GetDeviceID(c)

	var input domain.ScenarioInput
	if err := c.Bind(&input); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	outcome, err := h.goalPlanService.Scenario(deviceID, input)
	if err != nil {
		if errors.Is(err, domain.ErrGoalsRequired) {
			return NewIncompleteStepError(c, "Tambahkan minimal satu tujuan dulu", nil)
		}
		log.Error().Err(err).Str("device_id", deviceID.String()).Msg("Failed to run goal plan scenario")
		return NewInternalError(c, "Failed to run scenario")
	}
	return c.JSON(http.StatusOK, outcome)
}

// Submit handles POST /goal-plan/submit
func (h *GoalPlanHandler) Submit(c echo.Context) error {
	deviceID := middleware.GetDeviceID(c)

	result, err := h.goalPlanService.Submit(deviceID)
	if err != nil {
		if errors.Is(err, domain.ErrGoalsRequired) {
			return NewIncompleteStepError(c, "Tambahkan minimal satu tujuan dulu", []ValidationError{
				{Field: "goals", Message: "Minimal satu tujuan diperlukan"},
			})
		}
		log.Error().Err(err).Str("device_id", deviceID.String()).Msg("Failed to submit goal plan")
		return NewInternalError(c, "Failed to submit goal plan")
	}

	log.Info().Str("device_id", deviceID.String()).Int("goals", len(result.Goals)).Msg("Goal plan submitted")

	return c.JSON(http.StatusOK, result)
}

// GetResult handles GET /goal-plan/result
func (h *GoalPlanHandler) GetResult(c echo.Context) error {
	deviceID := middleware.GetDeviceID(c)

	result, err := h.goalPlanService.Result(deviceID)
	if err != nil {
		if errors.Is(err, domain.ErrResultNotFound) {
			return NewNotFoundError(c, "Goal plan result not found")
		}
		log.Error().Err(err).Str("device_id", deviceID.String()).Msg("Failed to load goal plan result")
		return NewInternalError(c, "Failed to load result")
	}
	return c.JSON(http.StatusOK, result)
}

// Reset handles POST /goal-plan/reset
func (h *GoalPlanHandler) Reset(c echo.Context) error {
	deviceID := middleware.GetDeviceID(c)

	if err := h.goalPlanService.Reset(deviceID); err != nil {
		log.Error().Err(err).Str("device_id", deviceID.String()).Msg("Failed to reset goal plan")
		return NewInternalError(c, "Failed to reset")
	}
	return c.NoContent(http.StatusNoContent)
}

func isGoalValidationError(err error) bool {
	return errors.Is(err, domain.ErrGoalNameRequired) ||
		errors.Is(err, domain.ErrGoalTypeInvalid) ||
		errors.Is(err, domain.ErrGoalYearsInvalid) ||
		errors.Is(err, domain.ErrGoalPriorityRange) ||
		errors.Is(err, domain.ErrGoalAmountInvalid) ||
		errors.Is(err, domain.ErrAmountNegative)
}
