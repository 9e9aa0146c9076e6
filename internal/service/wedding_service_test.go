package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dendrafalah/terencana.id/internal/domain"
	"github.com/dendrafalah/terencana.id/internal/testutil"
	"github.com/dendrafalah/terencana.id/internal/wizard"
)

func answeredWeddingDraft(now time.Time) *domain.WeddingDraft {
	d := domain.DefaultWeddingDraft(now)
	d.Answers = domain.WeddingAnswers{
		Scale: 2, Venue: 2, Adat: 2, Docs: 2, Experience: 2, Priority: 2, Support: 2,
	}
	return &d
}

func TestWeddingBreakdownFallsBackToMiddleChoice(t *testing.T) {
	b := domain.BuildBreakdown(domain.WeddingAnswers{}, nil, 0)

	// unanswered questions read as choice 3
	if b.GuestCount != 250 {
		t.Fatalf("GuestCount = %d, want 250", b.GuestCount)
	}
	if !b.VenueCost.Equal(decimal.NewFromInt(30_000_000)) {
		t.Fatalf("VenueCost = %s, want 30000000", b.VenueCost)
	}
	// q1=3 triggers the organizer heuristic: 8jt + 3*1.5jt
	if !b.OrganizerCost.Equal(decimal.NewFromInt(12_500_000)) {
		t.Fatalf("OrganizerCost = %s, want 12500000", b.OrganizerCost)
	}
	if b.PersonalTotal.IsNegative() {
		t.Fatal("PersonalTotal must never be negative")
	}
}

func TestWeddingBreakdownSmallestVenue(t *testing.T) {
	answers := domain.WeddingAnswers{Scale: 1, Venue: 1, Adat: 1, Docs: 1, Experience: 1, Priority: 1, Support: 1}
	b := domain.BuildBreakdown(answers, nil, 0)

	if !b.VenueCost.Equal(decimal.NewFromInt(3_000_000)) {
		t.Fatalf("VenueCost = %s, want 3000000", b.VenueCost)
	}
	// small event everywhere, no organizer
	if !b.OrganizerCost.IsZero() {
		t.Fatalf("OrganizerCost = %s, want 0", b.OrganizerCost)
	}
	// decor is 30% of venue
	if !b.DecorBase.Equal(decimal.NewFromInt(900_000)) {
		t.Fatalf("DecorBase = %s, want 900000", b.DecorBase)
	}
}

func TestWeddingBreakdownFullSupportZeroesPersonalTotal(t *testing.T) {
	b := domain.BuildBreakdown(domain.WeddingAnswers{}, nil, 100)
	if !b.PersonalTotal.IsZero() {
		t.Fatalf("PersonalTotal = %s, want 0 at 100%% family support", b.PersonalTotal)
	}
	// overshooting the slider clamps instead of going negative
	b = domain.BuildBreakdown(domain.WeddingAnswers{}, nil, 150)
	if b.PersonalTotal.IsNegative() {
		t.Fatal("PersonalTotal went negative on support > 100")
	}
}

func TestWeddingSnapshotThresholds(t *testing.T) {
	expense := decimal.NewFromInt(1_000_000)
	finance := func(savings int64) domain.WeddingFinance {
		return domain.WeddingFinance{SavingsNow: decimal.NewFromInt(savings)}
	}
	cost := decimal.NewFromInt(10_000_000)

	cases := []struct {
		name    string
		savings int64
		status  string
	}{
		{"six months left", 16_000_000, domain.StatusAman},
		{"three months left", 13_000_000, domain.StatusKetat},
		{"one month left", 11_000_000, domain.StatusBerisiko},
		{"savings fall short", 4_000_000, domain.StatusBerisiko},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := domain.ComputeSnapshot(finance(tc.savings), cost, expense)
			if snap.Status != tc.status {
				t.Fatalf("Status = %q, want %q", snap.Status, tc.status)
			}
		})
	}

	// zero expense leaves the months ratio unknown rather than infinite
	snap := domain.ComputeSnapshot(finance(16_000_000), cost, decimal.Zero)
	if snap.WeddingExpenseMonths.Valid {
		t.Fatal("WeddingExpenseMonths must be invalid on zero expense")
	}
	if snap.SafeMonthsAfter != 0 {
		t.Fatalf("SafeMonthsAfter = %f, want 0", snap.SafeMonthsAfter)
	}
}

func TestWeddingRealityCheckMarginBands(t *testing.T) {
	living := domain.LivingCosts{Housing: decimal.NewFromInt(9_000_000)}

	// margin 3jt on 12jt income is 25%, comfortably above the 15% band
	finance := domain.WeddingFinance{IncomeMonthly: decimal.NewFromInt(12_000_000)}
	if got := domain.ComputeReality(finance, living); got.First6MonthsRisk != domain.StatusAman {
		t.Fatalf("risk = %q, want AMAN", got.First6MonthsRisk)
	}

	// margin 1jt on 10jt income is 10%, inside the tight band
	finance.IncomeMonthly = decimal.NewFromInt(10_000_000)
	if got := domain.ComputeReality(finance, living); got.First6MonthsRisk != domain.StatusKetat {
		t.Fatalf("risk = %q, want KETAT", got.First6MonthsRisk)
	}

	// debt pushes the margin negative
	finance.DebtMonthly = decimal.NewFromInt(2_000_000)
	if got := domain.ComputeReality(finance, living); got.First6MonthsRisk != domain.StatusBerat {
		t.Fatalf("risk = %q, want BERAT", got.First6MonthsRisk)
	}
}

func TestWeddingScenariosReduceAndPostpone(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	d := answeredWeddingDraft(now)
	d.ScenarioReducePct = 25
	d.Finance.WeddingMonth = "2027-01" // 10 months out
	d.ScenarioPostponeMonth = "2027-07"

	breakdown := domain.BuildBreakdown(d.Answers, d.Overrides, d.Finance.FamilySupportPct)
	reality := domain.ComputeReality(d.Finance, d.Living)
	snapshot := domain.ComputeSnapshot(d.Finance, breakdown.PersonalTotal, reality.LivingMonthlyTotal)

	scenarios := ComputeWeddingScenarios(d, breakdown, snapshot, reality.LivingMonthlyTotal, now)
	if len(scenarios) != 3 {
		t.Fatalf("scenarios = %d, want 3", len(scenarios))
	}
	a, b, c := scenarios[0], scenarios[1], scenarios[2]

	if !a.PersonalWeddingCost.Equal(breakdown.PersonalTotal) {
		t.Fatalf("A cost = %s, want %s", a.PersonalWeddingCost, breakdown.PersonalTotal)
	}
	wantReduced := breakdown.PersonalTotal.Mul(decimal.NewFromFloat(0.75))
	if !b.PersonalWeddingCost.Equal(wantReduced) {
		t.Fatalf("B cost = %s, want %s", b.PersonalWeddingCost, wantReduced)
	}
	if !c.PersonalWeddingCost.Equal(b.PersonalWeddingCost) {
		t.Fatal("C cost must match B cost")
	}
	// same shortfall over 16 months instead of 10
	if !c.SavingPerMonth.LessThan(b.SavingPerMonth) {
		t.Fatalf("C saving %s not lighter than B saving %s", c.SavingPerMonth, b.SavingPerMonth)
	}
	if a.ImpactStatus != snapshot.Status {
		t.Fatalf("A status = %q, want %q", a.ImpactStatus, snapshot.Status)
	}
}

func TestWeddingScenariosFullyFundedNeedNoSaving(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	d := answeredWeddingDraft(now)
	d.ScenarioReducePct = 25
	d.Finance.WeddingMonth = "2027-01"
	d.ScenarioPostponeMonth = "2027-07"
	// savings already dwarf any personal share of the cost
	d.Finance.SavingsNow = decimal.NewFromInt(1_000_000_000)

	breakdown := domain.BuildBreakdown(d.Answers, d.Overrides, d.Finance.FamilySupportPct)
	reality := domain.ComputeReality(d.Finance, d.Living)
	snapshot := domain.ComputeSnapshot(d.Finance, breakdown.PersonalTotal, reality.LivingMonthlyTotal)

	scenarios := ComputeWeddingScenarios(d, breakdown, snapshot, reality.LivingMonthlyTotal, now)
	if len(scenarios) != 3 {
		t.Fatalf("scenarios = %d, want 3", len(scenarios))
	}
	for _, sc := range scenarios {
		if !sc.SavingPerMonth.IsZero() {
			t.Fatalf("scenario %s SavingPerMonth = %s, want 0", sc.Key, sc.SavingPerMonth)
		}
	}
}

func TestWeddingNextValidatesAnswersStep(t *testing.T) {
	repo := testutil.NewMockDraftRepository()
	svc := NewWeddingService(repo)
	deviceID := uuid.New()

	draft, err := svc.Draft(deviceID)
	if err != nil {
		t.Fatalf("Draft: %v", err)
	}
	draft.StepIndex = 2
	if _, err := svc.PutDraft(deviceID, draft); err != nil {
		t.Fatalf("PutDraft: %v", err)
	}

	_, err = svc.Next(deviceID)
	var mf *wizard.MissingFieldsError
	if !errors.As(err, &mf) {
		t.Fatalf("Next = %v, want MissingFieldsError", err)
	}
	if len(mf.Fields) != 7 {
		t.Fatalf("missing fields = %d, want 7", len(mf.Fields))
	}
}

func TestWeddingNextValidatesScenarioPick(t *testing.T) {
	repo := testutil.NewMockDraftRepository()
	svc := NewWeddingService(repo)
	deviceID := uuid.New()

	draft := answeredWeddingDraft(time.Now())
	draft.StepIndex = 8
	if _, err := svc.PutDraft(deviceID, draft); err != nil {
		t.Fatalf("PutDraft: %v", err)
	}
	if _, err := svc.Next(deviceID); !errors.Is(err, domain.ErrScenarioNotPicked) {
		t.Fatalf("Next = %v, want ErrScenarioNotPicked", err)
	}

	draft.PickedScenario = "B"
	if _, err := svc.PutDraft(deviceID, draft); err != nil {
		t.Fatalf("PutDraft: %v", err)
	}
	got, err := svc.Next(deviceID)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got.StepIndex != 9 {
		t.Fatalf("StepIndex = %d, want 9", got.StepIndex)
	}
}

func TestWeddingSupportAnswerSeedsSupportPct(t *testing.T) {
	repo := testutil.NewMockDraftRepository()
	svc := NewWeddingService(repo)
	deviceID := uuid.New()

	draft := answeredWeddingDraft(time.Now())
	draft.Answers.Support = 4
	saved, err := svc.PutDraft(deviceID, draft)
	if err != nil {
		t.Fatalf("PutDraft: %v", err)
	}
	if saved.Finance.FamilySupportPct != 70 {
		t.Fatalf("FamilySupportPct = %f, want 70", saved.Finance.FamilySupportPct)
	}

	// explicit slider change in the same payload wins over the lookup
	saved.Answers.Support = 2
	saved.Finance.FamilySupportPct = 33
	saved, err = svc.PutDraft(deviceID, saved)
	if err != nil {
		t.Fatalf("PutDraft: %v", err)
	}
	if saved.Finance.FamilySupportPct != 33 {
		t.Fatalf("FamilySupportPct = %f, want 33", saved.Finance.FamilySupportPct)
	}
}

func TestWeddingSubmitBundlesEverything(t *testing.T) {
	repo := testutil.NewMockDraftRepository()
	svc := NewWeddingService(repo)
	deviceID := uuid.New()

	draft := answeredWeddingDraft(time.Now())
	draft.PickedScenario = "C"
	if _, err := svc.PutDraft(deviceID, draft); err != nil {
		t.Fatalf("PutDraft: %v", err)
	}

	result, err := svc.Submit(deviceID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(result.Scenarios) != 3 {
		t.Fatalf("Scenarios = %d, want 3", len(result.Scenarios))
	}
	if result.PickedScenario != "C" {
		t.Fatalf("PickedScenario = %q, want C", result.PickedScenario)
	}
	if result.Breakdown.PersonalTotal.IsNegative() {
		t.Fatal("PersonalTotal negative in result")
	}

	got, err := svc.Result(deviceID)
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if !got.Breakdown.PersonalTotal.Equal(result.Breakdown.PersonalTotal) {
		t.Fatal("stored result does not match submitted result")
	}
}

func TestWeddingSubmitRejectsUnansweredQuestions(t *testing.T) {
	repo := testutil.NewMockDraftRepository()
	svc := NewWeddingService(repo)
	deviceID := uuid.New()

	if _, err := svc.Submit(deviceID); err == nil {
		t.Fatal("Submit on empty draft must fail")
	}
}
