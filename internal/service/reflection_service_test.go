package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/dendrafalah/terencana.id/internal/domain"
	"github.com/dendrafalah/terencana.id/internal/testutil"
)

func allAnswers(value int) domain.ReflectionAnswers {
	a := make(domain.ReflectionAnswers, len(domain.ReflectionQuestions))
	for _, q := range domain.ReflectionQuestions {
		a[q.ID] = value
	}
	return a
}

func TestReflectionArchetypeBands(t *testing.T) {
	cases := []struct {
		total int
		key   string
	}{
		{22, "singa"},
		{20, "singa"},
		{19, "gajah"},
		{17, "gajah"},
		{16, "serigala"},
		{14, "serigala"},
		{13, "rubah"},
		{11, "rubah"},
		{10, "kura"},
		{8, "kura"},
		{7, "tupai"},
		{5, "tupai"},
		{4, "ikan"},
		{0, "ikan"},
	}
	for _, tc := range cases {
		if got := domain.PickArchetype(tc.total); got.Key != tc.key {
			t.Errorf("PickArchetype(%d) = %q, want %q", tc.total, got.Key, tc.key)
		}
	}
}

func TestReflectionSubmitPerfectScore(t *testing.T) {
	svc := NewReflectionService(testutil.NewMockDraftRepository())
	deviceID := uuid.New()

	result, err := svc.Submit(deviceID, allAnswers(2))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.Total != 22 || result.Max != 22 {
		t.Fatalf("Total/Max = %d/%d, want 22/22", result.Total, result.Max)
	}
	if result.Key != "singa" {
		t.Fatalf("Key = %q, want singa", result.Key)
	}
	// all answers good: strengths cap at three, focus gets the fallback
	if len(result.Strengths) != 3 {
		t.Fatalf("Strengths = %d, want 3", len(result.Strengths))
	}
	if len(result.Focus) != 1 || result.Focus[0] != "Tinggal dipoles konsistensinya agar lebih terasa aman." {
		t.Fatalf("Focus = %v, want fallback line", result.Focus)
	}
	if len(result.Steps) != 3 {
		t.Fatalf("Steps = %d, want 3", len(result.Steps))
	}
}

func TestReflectionSubmitWorstScore(t *testing.T) {
	svc := NewReflectionService(testutil.NewMockDraftRepository())
	deviceID := uuid.New()

	result, err := svc.Submit(deviceID, allAnswers(0))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.Key != "ikan" {
		t.Fatalf("Key = %q, want ikan", result.Key)
	}
	if len(result.Focus) != 3 {
		t.Fatalf("Focus = %d, want 3", len(result.Focus))
	}
	if len(result.Strengths) != 1 {
		t.Fatalf("Strengths = %v, want single fallback line", result.Strengths)
	}
}

func TestReflectionPartialAnswersCountAsZero(t *testing.T) {
	svc := NewReflectionService(testutil.NewMockDraftRepository())
	deviceID := uuid.New()

	answers := domain.ReflectionAnswers{"q1": 2, "q2": 2, "q5": 1}
	result, err := svc.Submit(deviceID, answers)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.Total != 5 {
		t.Fatalf("Total = %d, want 5", result.Total)
	}
	if result.Key != "tupai" {
		t.Fatalf("Key = %q, want tupai", result.Key)
	}
	// unanswered questions stay out of the focus list
	for _, f := range result.Focus {
		if f == "" {
			t.Fatal("empty focus line")
		}
	}
}

func TestReflectionRejectsOutOfRangeAnswer(t *testing.T) {
	svc := NewReflectionService(testutil.NewMockDraftRepository())

	_, err := svc.Submit(uuid.New(), domain.ReflectionAnswers{"q1": 3})
	if !errors.Is(err, domain.ErrAnswerValueInvalid) {
		t.Fatalf("Submit = %v, want ErrAnswerValueInvalid", err)
	}
}

func TestReflectionResultRoundTripAndReset(t *testing.T) {
	svc := NewReflectionService(testutil.NewMockDraftRepository())
	deviceID := uuid.New()

	submitted, err := svc.Submit(deviceID, allAnswers(1))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	got, err := svc.Result(deviceID)
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if got.Key != submitted.Key || got.Total != submitted.Total {
		t.Fatalf("stored result %q/%d, want %q/%d", got.Key, got.Total, submitted.Key, submitted.Total)
	}

	if err := svc.Reset(deviceID); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if _, err := svc.Result(deviceID); !errors.Is(err, domain.ErrResultNotFound) {
		t.Fatalf("Result after reset = %v, want ErrResultNotFound", err)
	}
}
