package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dendrafalah/terencana.id/internal/money"
)

// WeddingAnswers holds the seven style questions. Answers are on a 1..5
// scale, 0 means not answered yet.
type WeddingAnswers struct {
	Scale      int `json:"q1_scale"`
	Venue      int `json:"q2_venue"`
	Adat       int `json:"q3_adat"`
	Docs       int `json:"q4_docs"`
	Experience int `json:"q5_experience"`
	Priority   int `json:"q6_priority"`
	Support    int `json:"q7_support"`
}

func (a *WeddingAnswers) Validate() error {
	for _, v := range []int{a.Scale, a.Venue, a.Adat, a.Docs, a.Experience, a.Priority, a.Support} {
		if v < 0 || v > 5 {
			return ErrScaleAnswerInvalid
		}
	}
	return nil
}

// Missing lists the questions that still have no answer.
func (a *WeddingAnswers) Missing() []string {
	var out []string
	add := func(v int, label string) {
		if v == 0 {
			out = append(out, label)
		}
	}
	add(a.Scale, "skala acara")
	add(a.Venue, "venue")
	add(a.Adat, "adat")
	add(a.Docs, "dokumentasi")
	add(a.Experience, "pengalaman tamu")
	add(a.Priority, "prioritas")
	add(a.Support, "dukungan keluarga")
	return out
}

// Cost lookups indexed by the 1..5 answer. Index 0 is unused.
var (
	guestCountByScale    = [6]int{0, 40, 100, 250, 500, 900}
	cateringPriceByScale = [6]int64{0, 60_000, 90_000, 125_000, 175_000, 250_000}
	venueCostByChoice    = [6]int64{0, 3_000_000, 15_000_000, 30_000_000, 65_000_000, 120_000_000}
	adatCostByChoice     = [6]int64{0, 6_000_000, 10_000_000, 16_000_000, 25_000_000, 40_000_000}
	docsCostByChoice     = [6]int64{0, 7_000_000, 11_000_000, 16_000_000, 22_000_000, 32_000_000}
	expCostByChoice      = [6]int64{0, 4_000_000, 6_500_000, 10_000_000, 16_000_000, 25_000_000}
	supportPctByChoice   = [6]float64{0, 0, 15, 40, 70, 90}
)

// DefaultSupportPct maps the family-support answer to a starting percentage
// the visitor can still override.
func DefaultSupportPct(q7 int) float64 {
	if q7 < 1 || q7 > 5 {
		return 0
	}
	return supportPctByChoice[q7]
}

// DefaultBufferRate is the contingency slice added on top of the raw total.
const DefaultBufferRate = 0.08

// WeddingFinance is the couple's combined money picture.
type WeddingFinance struct {
	IncomeMonthly decimal.Decimal `json:"income_monthly"`
	SavingsNow    decimal.Decimal `json:"savings_now"`
	DebtMonthly   decimal.Decimal `json:"debt_monthly"`
	WeddingMonth  string          `json:"wedding_month"` // YYYY-MM
	// FamilySupportPct is the share of the wedding cost carried by family,
	// 0..100.
	FamilySupportPct float64 `json:"family_support_pct"`
}

func (f *WeddingFinance) Validate() error {
	for _, a := range []decimal.Decimal{f.IncomeMonthly, f.SavingsNow, f.DebtMonthly} {
		if a.IsNegative() {
			return ErrAmountNegative
		}
	}
	return nil
}

// LivingCosts is the projected monthly budget after the wedding.
type LivingCosts struct {
	Housing     decimal.Decimal `json:"housing_monthly"`
	Food        decimal.Decimal `json:"food_monthly"`
	Transport   decimal.Decimal `json:"transport_monthly"`
	Utilities   decimal.Decimal `json:"utilities_monthly"`
	Lifestyle   decimal.Decimal `json:"lifestyle_monthly"`
	Parents     decimal.Decimal `json:"parents_monthly"`
	Insurance   decimal.Decimal `json:"insurance_monthly"`
	JointSaving decimal.Decimal `json:"joint_saving_monthly"`
}

// Sum excludes debt. Debt is carried on WeddingFinance and added separately.
func (l *LivingCosts) Sum() decimal.Decimal {
	return l.Housing.Add(l.Food).Add(l.Transport).Add(l.Utilities).
		Add(l.Lifestyle).Add(l.Parents).Add(l.Insurance).Add(l.JointSaving)
}

// DefaultLivingCosts seeds the budget as fixed shares of income.
func DefaultLivingCosts(income decimal.Decimal) LivingCosts {
	base := money.MaxZero(income)
	pct := func(p float64) decimal.Decimal {
		return base.Mul(decimal.NewFromFloat(p))
	}
	return LivingCosts{
		Housing:     pct(0.18),
		Food:        pct(0.15),
		Transport:   pct(0.08),
		Utilities:   pct(0.05),
		Lifestyle:   pct(0.06),
		Parents:     pct(0.03),
		Insurance:   pct(0.03),
		JointSaving: pct(0.07),
	}
}

// BreakdownOverrides lets the visitor pin individual cost lines. Nil fields
// keep the derived default.
type BreakdownOverrides struct {
	CateringCost    *decimal.Decimal `json:"catering_cost,omitempty"`
	VenueCost       *decimal.Decimal `json:"venue_cost,omitempty"`
	DecorBase       *decimal.Decimal `json:"decor_base,omitempty"`
	AdatCost        *decimal.Decimal `json:"adat_cost,omitempty"`
	DocsCost        *decimal.Decimal `json:"documentation_cost,omitempty"`
	ExperienceCost  *decimal.Decimal `json:"guest_experience_cost,omitempty"`
	OrganizerCost   *decimal.Decimal `json:"wo_cost,omitempty"`
	BufferRate      *float64         `json:"buffer_rate,omitempty"`
}

// WeddingBreakdown is the itemized cost estimate.
type WeddingBreakdown struct {
	GuestCount    int             `json:"guest_count"`
	CateringPrice decimal.Decimal `json:"catering_price"`
	CateringCost  decimal.Decimal `json:"catering_cost"`

	VenueCost decimal.Decimal `json:"venue_cost"`
	DecorBase decimal.Decimal `json:"decor_base"`

	AdatCost       decimal.Decimal `json:"adat_cost"`
	DocsCost       decimal.Decimal `json:"documentation_cost"`
	ExperienceCost decimal.Decimal `json:"guest_experience_cost"`

	OrganizerCost decimal.Decimal `json:"wo_cost"`

	BufferRate float64         `json:"buffer_rate"`
	BufferCost decimal.Decimal `json:"buffer_cost"`

	// TotalBeforeSupport already includes the buffer.
	TotalBeforeSupport decimal.Decimal `json:"total_before_support"`
	// SupportFactor is the share the couple carries themselves, 0..1.
	SupportFactor float64         `json:"support_factor"`
	PersonalTotal decimal.Decimal `json:"personal_total"`
}

// BuildBreakdown derives the cost estimate from the style answers.
// Unanswered questions fall back to the middle choice.
func BuildBreakdown(answers WeddingAnswers, overrides *BreakdownOverrides, familySupportPct float64) WeddingBreakdown {
	pick := func(v int) int {
		if v < 1 || v > 5 {
			return 3
		}
		return v
	}
	q1 := pick(answers.Scale)
	q2 := pick(answers.Venue)
	q3 := pick(answers.Adat)
	q4 := pick(answers.Docs)
	q5 := pick(answers.Experience)

	guestCount := guestCountByScale[q1]
	cateringPrice := decimal.NewFromInt(cateringPriceByScale[q1])

	cateringCost := cateringPrice.Mul(decimal.NewFromInt(int64(guestCount)))
	venueCost := decimal.NewFromInt(venueCostByChoice[q2])
	decorBase := venueCost.Mul(decimal.NewFromFloat(0.3))
	adatCost := decimal.NewFromInt(adatCostByChoice[q3])
	docsCost := decimal.NewFromInt(docsCostByChoice[q4])
	expCost := decimal.NewFromInt(expCostByChoice[q5])

	// Organizer kicks in once the event gets big enough to need one.
	organizerCost := decimal.Zero
	if q1 >= 3 || q2 >= 3 || q3 >= 3 {
		organizerCost = decimal.NewFromInt(8_000_000 + int64(q1)*1_500_000)
	}

	bufferRate := DefaultBufferRate
	if overrides != nil {
		if overrides.CateringCost != nil {
			cateringCost = *overrides.CateringCost
		}
		if overrides.VenueCost != nil {
			venueCost = *overrides.VenueCost
		}
		if overrides.DecorBase != nil {
			decorBase = *overrides.DecorBase
		}
		if overrides.AdatCost != nil {
			adatCost = *overrides.AdatCost
		}
		if overrides.DocsCost != nil {
			docsCost = *overrides.DocsCost
		}
		if overrides.ExperienceCost != nil {
			expCost = *overrides.ExperienceCost
		}
		if overrides.OrganizerCost != nil {
			organizerCost = *overrides.OrganizerCost
		}
		if overrides.BufferRate != nil {
			bufferRate = *overrides.BufferRate
		}
	}
	bufferRate = money.Clamp(bufferRate, 0, 0.2)

	totalBeforeBuffer := cateringCost.Add(venueCost).Add(decorBase).
		Add(adatCost).Add(docsCost).Add(expCost).Add(organizerCost)
	bufferCost := totalBeforeBuffer.Mul(decimal.NewFromFloat(bufferRate))
	totalBeforeSupport := totalBeforeBuffer.Add(bufferCost)

	pctFamily := money.Clamp(familySupportPct, 0, 100)
	supportFactor := money.Clamp((100-pctFamily)/100, 0, 1)
	personalTotal := totalBeforeSupport.Mul(decimal.NewFromFloat(supportFactor))

	return WeddingBreakdown{
		GuestCount:    guestCount,
		CateringPrice: cateringPrice,
		CateringCost:  cateringCost,

		VenueCost: venueCost,
		DecorBase: decorBase,

		AdatCost:       adatCost,
		DocsCost:       docsCost,
		ExperienceCost: expCost,

		OrganizerCost: organizerCost,

		BufferRate: bufferRate,
		BufferCost: bufferCost,

		TotalBeforeSupport: totalBeforeSupport,
		SupportFactor:      supportFactor,
		PersonalTotal:      personalTotal,
	}
}

// WeddingSnapshot answers "after paying for the wedding, how many months of
// living cost does the remaining savings cover".
type WeddingSnapshot struct {
	// WeddingExpenseMonths is the wedding cost expressed in months of
	// living cost. Invalid when living cost is zero.
	WeddingExpenseMonths Metric          `json:"wedding_expense_months"`
	SavingsAfterWedding  decimal.Decimal `json:"savings_after_wedding"`
	SafeMonthsAfter      float64         `json:"safe_months_after"`
	Status               string          `json:"status"` // AMAN | KETAT | BERISIKO
}

const (
	StatusAman     = "AMAN"
	StatusKetat    = "KETAT"
	StatusBerisiko = "BERISIKO"
	StatusBerat    = "BERAT"
)

// ComputeSnapshot compares savings against the personal wedding cost and the
// monthly spend. SafeMonthsAfter is zero when expense is zero and can be
// negative when savings fall short.
func ComputeSnapshot(finance WeddingFinance, personalCost, monthlyExpense decimal.Decimal) WeddingSnapshot {
	savings := money.MaxZero(finance.SavingsNow)
	expense := money.MaxZero(monthlyExpense)

	savingsAfter := savings.Sub(personalCost)

	safeMonths := 0.0
	if expense.IsPositive() {
		safeMonths, _ = savingsAfter.Div(expense).Float64()
	}

	status := StatusBerisiko
	switch {
	case safeMonths >= 6:
		status = StatusAman
	case safeMonths >= 3:
		status = StatusKetat
	}

	return WeddingSnapshot{
		WeddingExpenseMonths: Ratio(personalCost, expense),
		SavingsAfterWedding:  savingsAfter,
		SafeMonthsAfter:      safeMonths,
		Status:               status,
	}
}

// RealityCheck is the post-wedding monthly budget verdict.
type RealityCheck struct {
	LivingMonthlyTotal decimal.Decimal `json:"living_monthly_total"`
	MonthlyMargin      decimal.Decimal `json:"monthly_margin"`
	First6MonthsRisk   string          `json:"first_6_months_risk"` // AMAN | KETAT | BERAT
}

// ComputeReality totals the living budget plus debt and grades the margin.
// Anything under 15% of income counts as tight.
func ComputeReality(finance WeddingFinance, living LivingCosts) RealityCheck {
	total := living.Sum().Add(finance.DebtMonthly)
	margin := finance.IncomeMonthly.Sub(total)

	risk := StatusAman
	threshold := finance.IncomeMonthly.Mul(decimal.NewFromFloat(0.15))
	switch {
	case margin.IsNegative():
		risk = StatusBerat
	case margin.LessThan(threshold):
		risk = StatusKetat
	}

	return RealityCheck{
		LivingMonthlyTotal: total,
		MonthlyMargin:      margin,
		First6MonthsRisk:   risk,
	}
}

// WeddingScenario is one of the three saving strategies.
type WeddingScenario struct {
	Key      string `json:"key"` // A | B | C
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`

	PersonalWeddingCost decimal.Decimal `json:"personal_wedding_cost"`
	SavingPerMonth      decimal.Decimal `json:"saving_per_month"`
	ImpactStatus        string          `json:"impact_status"`
}

// WeddingDraft is the in-progress wedding wizard state.
type WeddingDraft struct {
	StepIndex int                 `json:"step"`
	Answers   WeddingAnswers      `json:"answers"`
	Finance   WeddingFinance      `json:"finance"`
	Living    LivingCosts         `json:"living"`
	Overrides *BreakdownOverrides `json:"breakdownOverrides,omitempty"`

	ScenarioReducePct     float64 `json:"scenario_reduce_pct"`
	ScenarioPostponeMonth string  `json:"scenario_postpone_month"` // YYYY-MM
	PickedScenario        string  `json:"pickedScenarioKey"`       // A | B | C
}

// DefaultWeddingDraft seeds the wizard with a wedding ten months out and a
// combo scenario six months after that.
func DefaultWeddingDraft(now time.Time) WeddingDraft {
	income := decimal.NewFromInt(12_000_000)
	weddingMonth := MonthDefault(now, 10)
	return WeddingDraft{
		Finance: WeddingFinance{
			IncomeMonthly: income,
			SavingsNow:    decimal.NewFromInt(15_000_000),
			DebtMonthly:   decimal.Zero,
			WeddingMonth:  weddingMonth,
		},
		Living:                DefaultLivingCosts(income),
		ScenarioReducePct:     25,
		ScenarioPostponeMonth: AddMonthsYM(now, weddingMonth, 6),
	}
}

func (d *WeddingDraft) Validate() error {
	if err := d.Answers.Validate(); err != nil {
		return err
	}
	if err := d.Finance.Validate(); err != nil {
		return err
	}
	return nil
}

// WeddingResult is the finalized bundle.
type WeddingResult struct {
	Answers WeddingAnswers `json:"answers"`
	Finance WeddingFinance `json:"finance"`
	Living  LivingCosts    `json:"living"`

	ScenarioReducePct     float64 `json:"scenario_reduce_pct"`
	ScenarioPostponeMonth string  `json:"scenario_postpone_month"`

	Breakdown WeddingBreakdown  `json:"breakdown"`
	Snapshot  WeddingSnapshot   `json:"snapshot"`
	Reality   RealityCheck      `json:"reality"`
	Scenarios []WeddingScenario `json:"scenarios"`

	PickedScenario string    `json:"pickedScenarioKey"`
	SubmittedAt    time.Time `json:"submittedAt"`
}

// MonthsUntil counts whole months from now to a YYYY-MM target. Zero when the
// value does not parse.
func MonthsUntil(now time.Time, ym string) int {
	var y, m int
	if _, err := fmt.Sscanf(ym, "%4d-%2d", &y, &m); err != nil || y == 0 || m == 0 {
		return 0
	}
	return (y-now.Year())*12 + (m - int(now.Month()))
}

// MonthDefault formats now plus an offset of months as YYYY-MM.
func MonthDefault(now time.Time, offsetMonths int) string {
	d := now.AddDate(0, offsetMonths, 0)
	return fmt.Sprintf("%04d-%02d", d.Year(), int(d.Month()))
}

// AddMonthsYM shifts a YYYY-MM value forward. A malformed input falls back to
// ten months from now.
func AddMonthsYM(now time.Time, ym string, add int) string {
	var y, m int
	if _, err := fmt.Sscanf(ym, "%4d-%2d", &y, &m); err != nil || y == 0 || m == 0 {
		return MonthDefault(now, 10)
	}
	d := time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC).AddDate(0, add, 0)
	return fmt.Sprintf("%04d-%02d", d.Year(), int(d.Month()))
}
