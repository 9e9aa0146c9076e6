package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dendrafalah/terencana.id/internal/money"
)

// GoalType selects the default inflation assumption and the quick templates.
type GoalType string

const (
	GoalEducation  GoalType = "education"
	GoalHouse      GoalType = "house"
	GoalRetirement GoalType = "retirement"
	GoalWedding    GoalType = "wedding"
	GoalTravel     GoalType = "travel"
	GoalCustom     GoalType = "custom"
)

var goalTypeLabels = map[GoalType]string{
	GoalEducation:  "Dana Pendidikan Anak",
	GoalHouse:      "DP Rumah",
	GoalRetirement: "Dana Pensiun",
	GoalWedding:    "Biaya Menikah",
	GoalTravel:     "Dana Liburan",
	GoalCustom:     "Goal Kustom",
}

// DefaultInflationByType is the per-year inflation assumption applied when a
// goal has no explicit override.
var DefaultInflationByType = map[GoalType]float64{
	GoalEducation:  0.08,
	GoalHouse:      0.06,
	GoalRetirement: 0.05,
	GoalWedding:    0.05,
	GoalTravel:     0.04,
	GoalCustom:     0.05,
}

func (t GoalType) Valid() bool {
	_, ok := goalTypeLabels[t]
	return ok
}

func (t GoalType) Label() string {
	return goalTypeLabels[t]
}

// Goal is one savings target inside the plan.
type Goal struct {
	ID       uuid.UUID       `json:"id"`
	Type     GoalType        `json:"type"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"` // present-day cost
	Years    int             `json:"years"`
	Priority int             `json:"priority"` // 1 = most important
	// Inflation overrides the per-type default when set.
	Inflation *float64 `json:"inflation,omitempty"`
}

func (g *Goal) Validate() error {
	if g.Name == "" {
		return ErrGoalNameRequired
	}
	if !g.Type.Valid() {
		return ErrGoalTypeInvalid
	}
	if g.Years < 1 || g.Years > 30 {
		return ErrGoalYearsInvalid
	}
	if g.Priority < 1 || g.Priority > 5 {
		return ErrGoalPriorityRange
	}
	if g.Amount.IsNegative() {
		return ErrGoalAmountInvalid
	}
	if g.Inflation != nil && (*g.Inflation < 0 || *g.Inflation > 1) {
		return ErrGoalAmountInvalid
	}
	return nil
}

// EffectiveInflation resolves the override, the per-type default, then 5%.
func (g *Goal) EffectiveInflation() float64 {
	if g.Inflation != nil {
		return *g.Inflation
	}
	if v, ok := DefaultInflationByType[g.Type]; ok {
		return v
	}
	return 0.05
}

// GoalTemplate is a quick-fill preset for a goal type.
type GoalTemplate struct {
	Key    string          `json:"key"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Years  int             `json:"years"`
}

// GoalTemplates lists the quick templates per goal type. Custom goals have
// none.
var GoalTemplates = map[GoalType][]GoalTemplate{
	GoalEducation: {
		{Key: "negeri", Label: "Negeri", Amount: decimal.NewFromInt(10_000_000), Years: 10},
		{Key: "swasta", Label: "Swasta", Amount: decimal.NewFromInt(35_000_000), Years: 10},
		{Key: "premium", Label: "Premium", Amount: decimal.NewFromInt(120_000_000), Years: 12},
	},
	GoalHouse: {
		{Key: "subsidi", Label: "Subsidi", Amount: decimal.NewFromInt(50_000_000), Years: 5},
		{Key: "cluster", Label: "Cluster", Amount: decimal.NewFromInt(250_000_000), Years: 8},
		{Key: "premium", Label: "Premium", Amount: decimal.NewFromInt(700_000_000), Years: 10},
	},
	GoalRetirement: {
		{Key: "minimalis", Label: "Minimalis", Amount: decimal.NewFromInt(500_000_000), Years: 20},
		{Key: "nyaman", Label: "Nyaman", Amount: decimal.NewFromInt(1_000_000_000), Years: 25},
		{Key: "sangat_nyaman", Label: "Sangat nyaman", Amount: decimal.NewFromInt(2_000_000_000), Years: 30},
	},
	GoalWedding: {
		{Key: "sederhana", Label: "Sederhana", Amount: decimal.NewFromInt(35_000_000), Years: 3},
		{Key: "menengah", Label: "Menengah", Amount: decimal.NewFromInt(250_000_000), Years: 4},
		{Key: "besar", Label: "Resepsi besar", Amount: decimal.NewFromInt(700_000_000), Years: 5},
	},
	GoalTravel: {
		{Key: "domestik", Label: "Domestik", Amount: decimal.NewFromInt(10_000_000), Years: 2},
		{Key: "asia", Label: "Asia", Amount: decimal.NewFromInt(25_000_000), Years: 3},
		{Key: "eropa", Label: "Eropa", Amount: decimal.NewFromInt(60_000_000), Years: 4},
	},
}

// GoalPlanDraft is the in-progress goal-plan wizard state.
type GoalPlanDraft struct {
	StepIndex int `json:"stepIndex"`

	IncomeMonthly    decimal.Decimal `json:"incomeMonthly"`
	NeedsMonthly     decimal.Decimal `json:"needsMonthly"`
	LifestyleMonthly decimal.Decimal `json:"lifestyleMonthly"`
	StartingSavings  decimal.Decimal `json:"startingSavings"`

	// AnnualReturn is the assumed return on the savings, per year.
	AnnualReturn float64 `json:"annualReturn"`

	Goals []Goal `json:"goals"`
}

// DefaultGoalPlanDraft seeds the simulator with a typical two-goal setup so
// the first render already shows a meaningful allocation.
func DefaultGoalPlanDraft() GoalPlanDraft {
	eduInfl := DefaultInflationByType[GoalEducation]
	houseInfl := DefaultInflationByType[GoalHouse]
	return GoalPlanDraft{
		IncomeMonthly:    decimal.NewFromInt(8_000_000),
		NeedsMonthly:     decimal.NewFromInt(3_500_000),
		LifestyleMonthly: decimal.NewFromInt(2_500_000),
		StartingSavings:  decimal.Zero,
		AnnualReturn:     0.01,
		Goals: []Goal{
			{
				ID:        uuid.New(),
				Type:      GoalEducation,
				Name:      "Pendidikan Anak",
				Amount:    decimal.NewFromInt(50_000_000),
				Years:     10,
				Priority:  2,
				Inflation: &eduInfl,
			},
			{
				ID:        uuid.New(),
				Type:      GoalHouse,
				Name:      "DP Rumah",
				Amount:    decimal.NewFromInt(300_000_000),
				Years:     8,
				Priority:  3,
				Inflation: &houseInfl,
			},
		},
	}
}

func (d *GoalPlanDraft) Validate() error {
	for _, a := range []decimal.Decimal{d.IncomeMonthly, d.NeedsMonthly, d.LifestyleMonthly, d.StartingSavings} {
		if a.IsNegative() {
			return ErrAmountNegative
		}
	}
	if d.AnnualReturn < 0 || d.AnnualReturn > 1 {
		return ErrAmountNegative
	}
	for i := range d.Goals {
		if err := d.Goals[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SavingCapacity is income minus needs minus lifestyle, floored at zero.
func (d *GoalPlanDraft) SavingCapacity() decimal.Decimal {
	return money.MaxZero(d.IncomeMonthly.Sub(d.NeedsMonthly).Sub(d.LifestyleMonthly))
}

// GoalProjection is one goal enriched with the simulation output.
type GoalProjection struct {
	Goal

	Months       int     `json:"months"`
	EffInflation float64 `json:"effInflation"`

	FutureCost      decimal.Decimal `json:"futureCost"`
	RequiredMonthly decimal.Decimal `json:"requiredMonthly"`
	FVFromSavings   decimal.Decimal `json:"fvFromSavings"`
	AssignedMonthly decimal.Decimal `json:"assignedMonthly"`

	CoveragePct float64 `json:"coveragePct"` // 0..200
	Status      string  `json:"status"`
}

// Composition is the income split shown alongside the advice text.
type Composition struct {
	NeedsPct     float64 `json:"needsPct"`
	LifestylePct float64 `json:"lifestylePct"`
	SavingPct    float64 `json:"savingPct"`
}

// ScenarioInput scales the base numbers for a what-if run.
type ScenarioInput struct {
	IncomeFactor    float64 `json:"incomeFactor"`
	LifestyleFactor float64 `json:"lifestyleFactor"`
}

// ScenarioOutcome is the result of a what-if run.
type ScenarioOutcome struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	IncomeMonthly    decimal.Decimal `json:"incomeMonthly"`
	LifestyleMonthly decimal.Decimal `json:"lifestyleMonthly"`
	SavingCapacity   decimal.Decimal `json:"savingCapacity"`

	CoveragePct float64 `json:"coveragePct"` // 0..100
	Message     string  `json:"message"`
}

// GoalPlanResult is the full simulation bundle.
type GoalPlanResult struct {
	IncomeMonthly    decimal.Decimal `json:"incomeMonthly"`
	NeedsMonthly     decimal.Decimal `json:"needsMonthly"`
	LifestyleMonthly decimal.Decimal `json:"lifestyleMonthly"`
	StartingSavings  decimal.Decimal `json:"startingSavings"`
	AnnualReturn     float64         `json:"annualReturn"`

	SavingCapacity decimal.Decimal `json:"savingCapacity"`
	OverBudget     bool            `json:"overBudget"`
	Composition    Composition     `json:"composition"`
	Advice         string          `json:"advice"`

	Goals []GoalProjection `json:"goals"`

	// TotalRequiredMonthly is the monthly need after starting savings have
	// been allocated by priority.
	TotalRequiredMonthly decimal.Decimal `json:"totalRequiredMonthly"`
	RemainingCapacity    decimal.Decimal `json:"remainingCapacity"`

	// CorpusContributionRatio is the share of the plan already carried by
	// starting savings, 0..1.
	CorpusContributionRatio float64 `json:"corpusContributionRatio"`
	OverallCoveragePct      float64 `json:"overallCoveragePct"` // 0..100

	ScenarioLifestyleDown ScenarioOutcome `json:"scenarioLifestyleDown"`
	ScenarioIncomeUp      ScenarioOutcome `json:"scenarioIncomeUp"`

	SubmittedAt time.Time `json:"submittedAt"`
}
