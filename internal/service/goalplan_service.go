package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dendrafalah/terencana.id/internal/domain"
	"github.com/dendrafalah/terencana.id/internal/money"
	"github.com/dendrafalah/terencana.id/internal/wizard"
)

// GoalPlanService drives the multi-goal allocation simulator.
type GoalPlanService struct {
	drafts domain.DraftRepository
	flow   *wizard.Flow[domain.GoalPlanDraft]
}

// NewGoalPlanService creates a new GoalPlanService
func NewGoalPlanService(drafts domain.DraftRepository) *GoalPlanService {
	flow := wizard.NewFlow(
		wizard.Step[domain.GoalPlanDraft]{Key: "cashflow", Title: "Kondisi keuangan bulanan"},
		wizard.Step[domain.GoalPlanDraft]{Key: "savings", Title: "Tabungan awal"},
		wizard.Step[domain.GoalPlanDraft]{Key: "assumptions", Title: "Asumsi return"},
		wizard.Step[domain.GoalPlanDraft]{
			Key:   "goals",
			Title: "Daftar goal",
			Validate: func(d *domain.GoalPlanDraft) error {
				if len(d.Goals) == 0 {
					return domain.ErrGoalsRequired
				}
				return nil
			},
		},
		wizard.Step[domain.GoalPlanDraft]{Key: "review", Title: "Hasil simulasi"},
	)
	return &GoalPlanService{drafts: drafts, flow: flow}
}

// Draft returns the stored draft, or the seeded template when none exists.
func (s *GoalPlanService) Draft(deviceID uuid.UUID) (*domain.GoalPlanDraft, error) {
	draft := domain.DefaultGoalPlanDraft()

	raw, err := s.drafts.Load(deviceID, domain.SlotGoalPlanDraft)
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

// PutDraft validates and stores the full draft. Goals arriving without an ID
// get one assigned.
func (s *GoalPlanService) PutDraft(deviceID uuid.UUID, draft *domain.GoalPlanDraft) (*domain.GoalPlanDraft, error) {
	for i := range draft.Goals {
		if draft.Goals[i].ID == uuid.Nil {
			draft.Goals[i].ID = uuid.New()
		}
		if strings.TrimSpace(draft.Goals[i].Name) == "" {
			draft.Goals[i].Name = draft.Goals[i].Type.Label()
		}
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	draft.StepIndex = s.flow.Clamp(draft.StepIndex)
	if err := s.drafts.Save(deviceID, domain.SlotGoalPlanDraft, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Next advances the wizard one step.
func (s *GoalPlanService) Next(deviceID uuid.UUID) (*domain.GoalPlanDraft, error) {
	draft, err := s.Draft(deviceID)
	if err != nil {
		return nil, err
	}
	next, err := s.flow.Advance(draft.StepIndex, draft)
	if err != nil {
		return draft, err
	}
	draft.StepIndex = next
	if err := s.drafts.Save(deviceID, domain.SlotGoalPlanDraft, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Back moves the wizard one step back.
func (s *GoalPlanService) Back(deviceID uuid.UUID) (*domain.GoalPlanDraft, error) {
	draft, err := s.Draft(deviceID)
	if err != nil {
		return nil, err
	}
	draft.StepIndex = s.flow.Retreat(draft.StepIndex)
	if err := s.drafts.Save(deviceID, domain.SlotGoalPlanDraft, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Submit runs the simulation on the current draft and stores the result.
func (s *GoalPlanService) Submit(deviceID uuid.UUID) (*domain.GoalPlanResult, error) {
	draft, err := s.Draft(deviceID)
	if err != nil {
		return nil, err
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	if len(draft.Goals) == 0 {
		return nil, domain.ErrGoalsRequired
	}

	result := ComputeGoalPlan(draft, time.Now().UTC())
	if err := s.drafts.Save(deviceID, domain.SlotGoalPlanFinal, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Result returns the stored simulation result.
func (s *GoalPlanService) Result(deviceID uuid.UUID) (*domain.GoalPlanResult, error) {
	raw, err := s.drafts.Load(deviceID, domain.SlotGoalPlanFinal)
	if errors.Is(err, domain.ErrDraftNotFound) {
		return nil, domain.ErrResultNotFound
	}
	if err != nil {
		return nil, err
	}
	var result domain.GoalPlanResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode goal plan result: %w", err)
	}
	return &result, nil
}

// Reset drops both the draft and the result.
func (s *GoalPlanService) Reset(deviceID uuid.UUID) error {
	if err := s.drafts.Delete(deviceID, domain.SlotGoalPlanDraft); err != nil {
		return err
	}
	return s.drafts.Delete(deviceID, domain.SlotGoalPlanFinal)
}

// Scenario runs a custom what-if against the current draft without storing
// anything.
func (s *GoalPlanService) Scenario(deviceID uuid.UUID, input domain.ScenarioInput) (*domain.ScenarioOutcome, error) {
	draft, err := s.Draft(deviceID)
	if err != nil {
		return nil, err
	}
	if input.IncomeFactor <= 0 {
		input.IncomeFactor = 1
	}
	if input.LifestyleFactor < 0 {
		input.LifestyleFactor = 1
	}
	plan := newPlanState(draft)
	outcome := plan.scenario(input)
	return &outcome, nil
}

// planState carries the intermediate allocation figures shared between the
// full simulation and the what-if scenarios.
type planState struct {
	draft *domain.GoalPlanDraft

	savingCapacity decimal.Decimal
	monthlyRate    float64

	enriched []enrichedGoal

	// totalRequired is the summed monthly requirement after starting
	// savings have been allocated by priority.
	totalRequired decimal.Decimal
	// corpusRatio is the share of the plan already carried by starting
	// savings, 0..1.
	corpusRatio       float64
	remainingCapacity decimal.Decimal
	overallRatio      float64
}

type enrichedGoal struct {
	goal domain.Goal

	months       int
	effInflation float64
	futureCost   decimal.Decimal
	// factor is the future value of 1/month over the horizon, zero when
	// the return assumption is zero.
	factor decimal.Decimal

	required decimal.Decimal
	fvFromPV decimal.Decimal
	assigned decimal.Decimal
	coverage float64
}

func one() decimal.Decimal { return decimal.NewFromInt(1) }

// growth is (1+rate)^periods.
func growth(rate float64, periods int) decimal.Decimal {
	base := one().Add(decimal.NewFromFloat(rate))
	return base.Pow(decimal.NewFromInt(int64(periods)))
}

func newPlanState(d *domain.GoalPlanDraft) *planState {
	p := &planState{
		draft:          d,
		savingCapacity: d.SavingCapacity(),
	}
	if d.AnnualReturn > 0 {
		p.monthlyRate = d.AnnualReturn / 12
	}
	p.run()
	return p
}

func (p *planState) run() {
	d := p.draft
	if len(d.Goals) == 0 {
		p.remainingCapacity = p.savingCapacity
		return
	}

	mr := p.monthlyRate
	mrDec := decimal.NewFromFloat(mr)

	p.enriched = make([]enrichedGoal, len(d.Goals))
	for i, g := range d.Goals {
		years := g.Years
		if years < 1 {
			years = 1
		}
		months := 12 * years
		infl := g.EffectiveInflation()
		futureCost := g.Amount.Mul(growth(infl, years))

		factor := decimal.Zero
		if mr > 0 {
			factor = growth(mr, months).Sub(one()).Div(mrDec)
		}
		p.enriched[i] = enrichedGoal{
			goal:         g,
			months:       months,
			effInflation: infl,
			futureCost:   futureCost,
			factor:       factor,
		}
	}

	// Full monthly requirement per goal, before starting savings help out.
	fullRequired := decimal.Zero
	for i := range p.enriched {
		e := &p.enriched[i]
		var req decimal.Decimal
		if mr > 0 && e.factor.IsPositive() {
			req = e.futureCost.Div(e.factor)
		} else {
			req = e.futureCost.Div(decimal.NewFromInt(int64(e.months)))
		}
		fullRequired = fullRequired.Add(req)
	}

	// Starting savings buy down the highest-priority goals first.
	order := make([]*enrichedGoal, len(p.enriched))
	for i := range p.enriched {
		order[i] = &p.enriched[i]
	}
	sort.SliceStable(order, func(a, b int) bool {
		return order[a].goal.Priority < order[b].goal.Priority
	})

	pv := p.draft.StartingSavings
	requiredAfterPV := decimal.Zero
	for _, e := range order {
		var pvNeed decimal.Decimal
		if mr > 0 {
			pvNeed = e.futureCost.Div(growth(mr, e.months))
		} else {
			pvNeed = e.futureCost
		}
		usedPV := decimal.Zero
		if pv.IsPositive() {
			usedPV = decimal.Min(pv, pvNeed)
		}
		pv = pv.Sub(usedPV)

		if mr > 0 {
			e.fvFromPV = usedPV.Mul(growth(mr, e.months))
			fvRemaining := money.MaxZero(e.futureCost.Sub(e.fvFromPV))
			switch {
			case !fvRemaining.IsPositive():
				e.required = decimal.Zero
			case e.factor.IsPositive():
				e.required = fvRemaining.Div(e.factor)
			default:
				e.required = fvRemaining.Div(decimal.NewFromInt(int64(e.months)))
			}
		} else {
			e.fvFromPV = usedPV
			fvRemaining := money.MaxZero(e.futureCost.Sub(usedPV))
			e.required = fvRemaining.Div(decimal.NewFromInt(int64(e.months)))
		}
		requiredAfterPV = requiredAfterPV.Add(e.required)
	}

	// Monthly capacity fills goals in the same priority order.
	capacity := p.savingCapacity
	for _, e := range order {
		take := money.MaxZero(decimal.Min(e.required, capacity))
		capacity = capacity.Sub(take)
		e.assigned = take
	}
	p.remainingCapacity = capacity

	h := 0.0
	if requiredAfterPV.IsPositive() {
		h, _ = p.savingCapacity.Div(requiredAfterPV).Float64()
	}

	pRatio := 0.0
	if fullRequired.IsPositive() {
		f, _ := requiredAfterPV.Div(fullRequired).Float64()
		pRatio = money.Clamp(1-f, 0, 1)
	} else if p.draft.StartingSavings.IsPositive() {
		pRatio = 1
	}

	p.totalRequired = requiredAfterPV
	p.corpusRatio = pRatio
	p.overallRatio = money.Clamp(pRatio+(1-pRatio)*h, 0, 1)

	for i := range p.enriched {
		e := &p.enriched[i]
		var fvFromMonthly decimal.Decimal
		if mr > 0 && e.factor.IsPositive() {
			fvFromMonthly = e.assigned.Mul(e.factor)
		} else {
			fvFromMonthly = e.assigned.Mul(decimal.NewFromInt(int64(e.months)))
		}
		fvTotal := e.fvFromPV.Add(fvFromMonthly)

		ratio := 0.0
		if e.futureCost.IsPositive() {
			ratio, _ = fvTotal.Div(e.futureCost).Float64()
		}
		e.coverage = money.Clamp(ratio, 0, 2)
	}
}

func goalStatus(coveragePct float64) string {
	switch {
	case coveragePct >= 100:
		return "On track / sudah tertutup"
	case coveragePct >= 60:
		return "Mendekati, perlu sedikit penyesuaian"
	case coveragePct > 0:
		return "Sebagian sudah tertutup, tapi masih jauh dari target"
	default:
		return "Belum ada alokasi"
	}
}

// scenario recomputes the coverage with scaled income and lifestyle, keeping
// the corpus contribution fixed.
func (p *planState) scenario(input domain.ScenarioInput) domain.ScenarioOutcome {
	d := p.draft
	incomeSc := d.IncomeMonthly.Mul(decimal.NewFromFloat(input.IncomeFactor))
	lifestyleSc := d.LifestyleMonthly.Mul(decimal.NewFromFloat(input.LifestyleFactor))
	capacitySc := money.MaxZero(incomeSc.Sub(d.NeedsMonthly).Sub(lifestyleSc))

	coverage := 0.0
	if p.totalRequired.IsPositive() {
		h, _ := capacitySc.Div(p.totalRequired).Float64()
		coverage = money.Clamp(100*(p.corpusRatio+(1-p.corpusRatio)*h), 0, 100)
	} else if len(d.Goals) > 0 && d.StartingSavings.IsPositive() {
		coverage = 100
	}

	var msg string
	switch {
	case coverage >= 100:
		msg = "Dengan skenario ini, secara matematis kamu aman untuk semua goal (kalau disiplin dengan rencana)."
	case coverage >= 70:
		msg = "Skenario ini cukup membantu, beberapa goal mungkin masih sedikit tertinggal."
	default:
		msg = "Bahkan dengan skenario ini, masih cukup jauh dari target. Butuh kombinasi naik penghasilan & turunkan lifestyle."
	}

	return domain.ScenarioOutcome{
		IncomeMonthly:    incomeSc,
		LifestyleMonthly: lifestyleSc,
		SavingCapacity:   capacitySc,
		CoveragePct:      coverage,
		Message:          msg,
	}
}

// ComputeGoalPlan runs the full allocation simulation.
func ComputeGoalPlan(d *domain.GoalPlanDraft, now time.Time) *domain.GoalPlanResult {
	p := newPlanState(d)

	goals := make([]domain.GoalProjection, len(p.enriched))
	for i, e := range p.enriched {
		coveragePct := 100 * e.coverage
		goals[i] = domain.GoalProjection{
			Goal:            e.goal,
			Months:          e.months,
			EffInflation:    e.effInflation,
			FutureCost:      e.futureCost,
			RequiredMonthly: e.required,
			FVFromSavings:   e.fvFromPV,
			AssignedMonthly: e.assigned,
			CoveragePct:     coveragePct,
			Status:          goalStatus(coveragePct),
		}
	}

	overBudget := d.NeedsMonthly.Add(d.LifestyleMonthly).GreaterThan(d.IncomeMonthly)

	needsRatio, lifestyleRatio, savingRatio := 0.0, 0.0, 0.0
	if d.IncomeMonthly.IsPositive() {
		needsRatio, _ = d.NeedsMonthly.Div(d.IncomeMonthly).Float64()
		lifestyleRatio, _ = d.LifestyleMonthly.Div(d.IncomeMonthly).Float64()
		savingRatio, _ = p.savingCapacity.Div(d.IncomeMonthly).Float64()
	}

	lifestyleDown := p.scenario(domain.ScenarioInput{IncomeFactor: 1, LifestyleFactor: 0.9})
	lifestyleDown.Title = "Skenario 1: Turunkan lifestyle 10%"
	lifestyleDown.Description = "Penghasilan tetap, gaya hidup dipangkas sedikit."

	incomeUp := p.scenario(domain.ScenarioInput{IncomeFactor: 1.2, LifestyleFactor: 1})
	incomeUp.Title = "Skenario 2: Naikkan penghasilan 20%"
	incomeUp.Description = "Gaya hidup tetap, penghasilan naik."

	return &domain.GoalPlanResult{
		IncomeMonthly:    d.IncomeMonthly,
		NeedsMonthly:     d.NeedsMonthly,
		LifestyleMonthly: d.LifestyleMonthly,
		StartingSavings:  d.StartingSavings,
		AnnualReturn:     d.AnnualReturn,

		SavingCapacity: p.savingCapacity,
		OverBudget:     overBudget,
		Composition: domain.Composition{
			NeedsPct:     100 * needsRatio,
			LifestylePct: 100 * lifestyleRatio,
			SavingPct:    100 * savingRatio,
		},
		Advice: incomeAdvice(needsRatio, lifestyleRatio, savingRatio),

		Goals: goals,

		TotalRequiredMonthly:    p.totalRequired,
		RemainingCapacity:       p.remainingCapacity,
		CorpusContributionRatio: p.corpusRatio,
		OverallCoveragePct:      money.Clamp(100*p.overallRatio, 0, 100),

		ScenarioLifestyleDown: lifestyleDown,
		ScenarioIncomeUp:      incomeUp,

		SubmittedAt: now,
	}
}

// incomeAdvice grades the income split one sentence per bucket.
func incomeAdvice(needsRatio, lifestyleRatio, savingRatio float64) string {
	var r []string

	switch {
	case needsRatio > 0.6:
		r = append(r, "Porsi kebutuhan di atas 60% dari penghasilan, cukup berat. Coba cek apakah ada biaya tetap yang bisa dikurangi atau dinegosiasi.")
	case needsRatio >= 0.4:
		r = append(r, "Porsi kebutuhan sekitar 40–60% dari penghasilan, ini umumnya masih cukup sehat.")
	default:
		r = append(r, "Porsi kebutuhan di bawah 40%, cukup ramping. Pastikan kualitas hidup tetap terjaga (makan, tempat tinggal, kesehatan).")
	}

	switch {
	case lifestyleRatio > 0.3:
		r = append(r, "Bagian gaya hidup cukup besar (>30%). Kalau tabungan masih tipis, area ini biasanya yang paling mudah dipangkas.")
	case lifestyleRatio >= 0.2:
		r = append(r, "Gaya hidup di kisaran 20–30%. Masih oke selama tabungan juga sehat.")
	default:
		r = append(r, "Gaya hidup relatif terkendali (<20%), ini memberi ruang lebih besar untuk nabung/investasi.")
	}

	switch {
	case savingRatio >= 0.2:
		r = append(r, "Tabungan ≥20% dari penghasilan, ini sudah sangat bagus untuk tujuan jangka panjang.")
	case savingRatio >= 0.1:
		r = append(r, "Tabungan 10–20% lumayan, tapi kalau ingin kejar banyak goal sekaligus, coba perlahan naikkan mendekati 20%.")
	case savingRatio > 0:
		r = append(r, "Tabungan masih di bawah 10%. Risiko tujuan jangka panjang lebih sulit tercapai, pertimbangkan kurangi lifestyle atau naikkan penghasilan.")
	default:
		r = append(r, "Belum ada sisa untuk tabungan, artinya kebutuhan + lifestyle sedang menghabiskan seluruh penghasilan.")
	}

	return strings.Join(r, " ")
}
