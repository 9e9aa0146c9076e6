package domain

import "errors"

// Domain errors
var (
	ErrDraftNotFound  = errors.New("draft not found")
	ErrResultNotFound = errors.New("result not found")

	ErrAmountNegative = errors.New("amount must not be negative")
	ErrInvalidPeriod  = errors.New("period must be monthly or yearly")

	ErrIncomeRequired = errors.New("at least one income item with a positive amount is required")

	ErrGoalNameRequired   = errors.New("goal name is required")
	ErrGoalTypeInvalid    = errors.New("goal type is invalid")
	ErrGoalYearsInvalid   = errors.New("goal duration must be between 1 and 30 years")
	ErrGoalPriorityRange  = errors.New("goal priority must be between 1 and 5")
	ErrGoalAmountInvalid  = errors.New("goal amount must be positive")
	ErrGoalsRequired      = errors.New("at least one goal is required")
	ErrScaleAnswerInvalid = errors.New("scale answers must be between 1 and 5")
	ErrScenarioNotPicked  = errors.New("a scenario must be picked before continuing")

	ErrAnswerValueInvalid = errors.New("answer value must be 0, 1 or 2")
)
