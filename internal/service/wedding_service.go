package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dendrafalah/terencana.id/internal/domain"
	"github.com/dendrafalah/terencana.id/internal/money"
	"github.com/dendrafalah/terencana.id/internal/wizard"
)

// WeddingService drives the wedding planning wizard.
type WeddingService struct {
	drafts domain.DraftRepository
	flow   *wizard.Flow[domain.WeddingDraft]
	now    func() time.Time
}

// NewWeddingService creates a new WeddingService
func NewWeddingService(drafts domain.DraftRepository) *WeddingService {
	flow := wizard.NewFlow(
		wizard.Step[domain.WeddingDraft]{Key: "intro", Title: "Rencana Persiapan Nikah"},
		wizard.Step[domain.WeddingDraft]{Key: "konteks", Title: "Konteks dulu"},
		wizard.Step[domain.WeddingDraft]{
			Key:   "gambaran",
			Title: "Gambaran pernikahan",
			Validate: func(d *domain.WeddingDraft) error {
				if missing := d.Answers.Missing(); len(missing) > 0 {
					return &wizard.MissingFieldsError{StepKey: "gambaran", Fields: missing}
				}
				return nil
			},
		},
		wizard.Step[domain.WeddingDraft]{Key: "estimasi", Title: "Estimasi biaya nikah"},
		wizard.Step[domain.WeddingDraft]{Key: "keuangan", Title: "Kondisi keuangan saat ini"},
		wizard.Step[domain.WeddingDraft]{Key: "biayahidup", Title: "Biaya hidup setelah nikah"},
		wizard.Step[domain.WeddingDraft]{Key: "snapshot", Title: "Snapshot dampak"},
		wizard.Step[domain.WeddingDraft]{Key: "realitycheck", Title: "Reality check"},
		wizard.Step[domain.WeddingDraft]{
			Key:   "strategi",
			Title: "Pilih strategi yang paling bisa kamu jalani",
			Validate: func(d *domain.WeddingDraft) error {
				if d.PickedScenario == "" {
					return domain.ErrScenarioNotPicked
				}
				return nil
			},
		},
		wizard.Step[domain.WeddingDraft]{Key: "rencana", Title: "Rencana bulanan"},
	)
	return &WeddingService{drafts: drafts, flow: flow, now: time.Now}
}

// Draft returns the stored draft, or the seeded template when none exists.
func (s *WeddingService) Draft(deviceID uuid.UUID) (*domain.WeddingDraft, error) {
	draft := domain.DefaultWeddingDraft(s.now())

	raw, err := s.drafts.Load(deviceID, domain.SlotWeddingDraft)
	if errors.Is(err, domain.ErrDraftNotFound) {
		return &draft, nil
	}
	if err != nil {
		return nil, err
	}

	domain.DecodeDraft(raw, &draft)
	draft.StepIndex = s.flow.Clamp(draft.StepIndex)
	return &draft, nil
}

// PutDraft validates and stores the full draft. Answering the family-support
// question reseeds the support percentage from the lookup; a manual slider
// change in the same payload wins.
func (s *WeddingService) PutDraft(deviceID uuid.UUID, draft *domain.WeddingDraft) (*domain.WeddingDraft, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	prev, err := s.Draft(deviceID)
	if err != nil {
		return nil, err
	}
	if draft.Answers.Support != prev.Answers.Support &&
		draft.Finance.FamilySupportPct == prev.Finance.FamilySupportPct {
		draft.Finance.FamilySupportPct = domain.DefaultSupportPct(draft.Answers.Support)
	}

	draft.ScenarioReducePct = money.Clamp(draft.ScenarioReducePct, 0, 60)
	if draft.ScenarioPostponeMonth == "" {
		draft.ScenarioPostponeMonth = domain.AddMonthsYM(s.now(), draft.Finance.WeddingMonth, 6)
	}
	draft.StepIndex = s.flow.Clamp(draft.StepIndex)
	if err := s.drafts.Save(deviceID, domain.SlotWeddingDraft, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Next advances the wizard one step.
func (s *WeddingService) Next(deviceID uuid.UUID) (*domain.WeddingDraft, error) {
	draft, err := s.Draft(deviceID)
	if err != nil {
		return nil, err
	}
	next, err := s.flow.Advance(draft.StepIndex, draft)
	if err != nil {
		return draft, err
	}
	draft.StepIndex = next
	if err := s.drafts.Save(deviceID, domain.SlotWeddingDraft, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Back moves the wizard one step back.
func (s *WeddingService) Back(deviceID uuid.UUID) (*domain.WeddingDraft, error) {
	draft, err := s.Draft(deviceID)
	if err != nil {
		return nil, err
	}
	draft.StepIndex = s.flow.Retreat(draft.StepIndex)
	if err := s.drafts.Save(deviceID, domain.SlotWeddingDraft, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Breakdown derives the live cost estimate from the current draft.
func (s *WeddingService) Breakdown(deviceID uuid.UUID) (*domain.WeddingBreakdown, error) {
	draft, err := s.Draft(deviceID)
	if err != nil {
		return nil, err
	}
	b := domain.BuildBreakdown(draft.Answers, draft.Overrides, draft.Finance.FamilySupportPct)
	return &b, nil
}

// Submit bundles the breakdown, the snapshot, the reality check and the
// three scenarios into the final result.
func (s *WeddingService) Submit(deviceID uuid.UUID) (*domain.WeddingResult, error) {
	draft, err := s.Draft(deviceID)
	if err != nil {
		return nil, err
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	if missing := draft.Answers.Missing(); len(missing) > 0 {
		return nil, &wizard.MissingFieldsError{StepKey: "gambaran", Fields: missing}
	}

	result := ComputeWeddingResult(draft, s.now().UTC())
	if err := s.drafts.Save(deviceID, domain.SlotWeddingFinal, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Result returns the stored final bundle.
func (s *WeddingService) Result(deviceID uuid.UUID) (*domain.WeddingResult, error) {
	raw, err := s.drafts.Load(deviceID, domain.SlotWeddingFinal)
	if errors.Is(err, domain.ErrDraftNotFound) {
		return nil, domain.ErrResultNotFound
	}
	if err != nil {
		return nil, err
	}
	var result domain.WeddingResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode wedding result: %w", err)
	}
	return &result, nil
}

// Reset drops both the draft and the result.
func (s *WeddingService) Reset(deviceID uuid.UUID) error {
	if err := s.drafts.Delete(deviceID, domain.SlotWeddingDraft); err != nil {
		return err
	}
	return s.drafts.Delete(deviceID, domain.SlotWeddingFinal)
}

// ComputeWeddingResult derives every figure the result page shows.
func ComputeWeddingResult(d *domain.WeddingDraft, now time.Time) *domain.WeddingResult {
	breakdown := domain.BuildBreakdown(d.Answers, d.Overrides, d.Finance.FamilySupportPct)
	reality := domain.ComputeReality(d.Finance, d.Living)
	snapshot := domain.ComputeSnapshot(d.Finance, breakdown.PersonalTotal, reality.LivingMonthlyTotal)
	scenarios := ComputeWeddingScenarios(d, breakdown, snapshot, reality.LivingMonthlyTotal, now)

	return &domain.WeddingResult{
		Answers: d.Answers,
		Finance: d.Finance,
		Living:  d.Living,

		ScenarioReducePct:     d.ScenarioReducePct,
		ScenarioPostponeMonth: d.ScenarioPostponeMonth,

		Breakdown: breakdown,
		Snapshot:  snapshot,
		Reality:   reality,
		Scenarios: scenarios,

		PickedScenario: d.PickedScenario,
		SubmittedAt:    now,
	}
}

// monthsToTarget falls back to ten months when the target month is unset or
// already past.
func monthsToTarget(now time.Time, ym string) int {
	m := domain.MonthsUntil(now, ym)
	if m == 0 {
		m = 10
	}
	if m < 1 {
		return 1
	}
	return m
}

// savingPerMonth assumes current savings go toward the wedding first; only
// the shortfall is spread over the months left.
func savingPerMonth(finance domain.WeddingFinance, personalCost decimal.Decimal, months int) decimal.Decimal {
	savings := money.MaxZero(finance.SavingsNow)
	needed := money.MaxZero(personalCost.Sub(savings))
	if months < 1 {
		months = 1
	}
	return needed.Div(decimal.NewFromInt(int64(months)))
}

// ComputeWeddingScenarios builds the three strategies: keep the plan, scale
// it down, or scale down and postpone.
func ComputeWeddingScenarios(d *domain.WeddingDraft, breakdown domain.WeddingBreakdown, snapshot domain.WeddingSnapshot, monthlyExpense decimal.Decimal, now time.Time) []domain.WeddingScenario {
	baseMonths := monthsToTarget(now, d.Finance.WeddingMonth)

	reducePct := money.Clamp(d.ScenarioReducePct, 0, 60)
	postponeMonth := d.ScenarioPostponeMonth
	if postponeMonth == "" {
		postponeMonth = d.Finance.WeddingMonth
	}
	postponeMonths := monthsToTarget(now, postponeMonth)

	expense := money.MaxZero(monthlyExpense)
	base := breakdown.PersonalTotal
	reduced := base.Mul(decimal.NewFromFloat(1 - reducePct/100))

	aCost := base
	bCost := reduced
	cCost := reduced

	return []domain.WeddingScenario{
		{
			Key:                 "A",
			Title:               "Tetap rencana awal",
			Subtitle:            "Tanpa turunkan gaya & tanpa mundur tanggal.",
			PersonalWeddingCost: aCost,
			SavingPerMonth:      savingPerMonth(d.Finance, aCost, baseMonths),
			ImpactStatus:        snapshot.Status,
		},
		{
			Key:                 "B",
			Title:               fmt.Sprintf("Turunkan gaya nikah (%.0f%%)", reducePct),
			Subtitle:            "Kamu bebas atur persen penurunannya.",
			PersonalWeddingCost: bCost,
			SavingPerMonth:      savingPerMonth(d.Finance, bCost, baseMonths),
			ImpactStatus:        domain.ComputeSnapshot(d.Finance, bCost, expense).Status,
		},
		{
			Key:                 "C",
			Title:               "Kombinasi: turunkan + mundurkan",
			Subtitle:            "Lebih ringan karena biaya turun dan waktu persiapan lebih panjang.",
			PersonalWeddingCost: cCost,
			SavingPerMonth:      savingPerMonth(d.Finance, cCost, postponeMonths),
			ImpactStatus:        domain.ComputeSnapshot(d.Finance, cCost, expense).Status,
		},
	}
}
