// Package wizard drives multi-step form flows. A Flow owns an ordered list
// of steps; drafts carry the current index and steps can gate advancement
// with a validator.
package wizard

import (
	"fmt"
	"strings"
)

// Step is one screen of a flow. Validate, when set, runs before the visitor
// may advance past this step.
type Step[D any] struct {
	Key      string
	Title    string
	Validate func(draft *D) error
}

// Flow is an ordered, immutable list of steps.
type Flow[D any] struct {
	steps []Step[D]
}

func NewFlow[D any](steps ...Step[D]) *Flow[D] {
	return &Flow[D]{steps: steps}
}

func (f *Flow[D]) Len() int { return len(f.steps) }

// Clamp pins an index into the valid range.
func (f *Flow[D]) Clamp(index int) int {
	if index < 0 {
		return 0
	}
	if index >= len(f.steps) {
		return len(f.steps) - 1
	}
	return index
}

// Step returns the step at a clamped index.
func (f *Flow[D]) Step(index int) Step[D] {
	return f.steps[f.Clamp(index)]
}

// Advance validates the current step and returns the next index, saturating
// at the last step.
func (f *Flow[D]) Advance(index int, draft *D) (int, error) {
	index = f.Clamp(index)
	if v := f.steps[index].Validate; v != nil {
		if err := v(draft); err != nil {
			return index, err
		}
	}
	if index+1 >= len(f.steps) {
		return index, nil
	}
	return index + 1, nil
}

// Retreat returns the previous index, saturating at the first step. Going
// back never validates.
func (f *Flow[D]) Retreat(index int) int {
	return f.Clamp(f.Clamp(index) - 1)
}

// MissingFieldsError reports which inputs block a step from advancing.
type MissingFieldsError struct {
	StepKey string
	Fields  []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("step %s incomplete: %s", e.StepKey, strings.Join(e.Fields, ", "))
}
