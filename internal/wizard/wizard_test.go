package wizard

import (
	"errors"
	"testing"
)

type draft struct {
	Name string
}

func testFlow() *Flow[draft] {
	return NewFlow(
		Step[draft]{Key: "intro"},
		Step[draft]{Key: "name", Validate: func(d *draft) error {
			if d.Name == "" {
				return &MissingFieldsError{StepKey: "name", Fields: []string{"name"}}
			}
			return nil
		}},
		Step[draft]{Key: "review"},
	)
}

func TestAdvanceValidates(t *testing.T) {
	f := testFlow()
	d := &draft{}

	next, err := f.Advance(0, d)
	if err != nil || next != 1 {
		t.Fatalf("Advance(0) = %d, %v; want 1, nil", next, err)
	}

	next, err = f.Advance(1, d)
	if err == nil {
		t.Fatal("expected validation error on empty name")
	}
	if next != 1 {
		t.Fatalf("index moved to %d on failed validation", next)
	}
	var mf *MissingFieldsError
	if !errors.As(err, &mf) || mf.StepKey != "name" {
		t.Fatalf("unexpected error: %v", err)
	}

	d.Name = "Dina"
	next, err = f.Advance(1, d)
	if err != nil || next != 2 {
		t.Fatalf("Advance(1) = %d, %v; want 2, nil", next, err)
	}
}

func TestAdvanceSaturatesAtLastStep(t *testing.T) {
	f := testFlow()
	d := &draft{Name: "Dina"}

	next, err := f.Advance(2, d)
	if err != nil || next != 2 {
		t.Fatalf("Advance(last) = %d, %v; want 2, nil", next, err)
	}
	next, err = f.Advance(99, d)
	if err != nil || next != 2 {
		t.Fatalf("Advance(out of range) = %d, %v; want 2, nil", next, err)
	}
}

func TestRetreatSaturatesAtZero(t *testing.T) {
	f := testFlow()
	if got := f.Retreat(2); got != 1 {
		t.Fatalf("Retreat(2) = %d, want 1", got)
	}
	if got := f.Retreat(0); got != 0 {
		t.Fatalf("Retreat(0) = %d, want 0", got)
	}
	if got := f.Retreat(-5); got != 0 {
		t.Fatalf("Retreat(-5) = %d, want 0", got)
	}
}
