package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Commitment tags. The default template puts each tag on exactly one row.
const (
	CommitDebtPay = "debtpay"
	CommitPremium = "premium"
	CommitSaving  = "saving"
	CommitInvest  = "invest"
	CommitOther   = "other"
)

// Asset/debt tags.
const (
	AssetLiquid = "liquid"
	AssetInvest = "invest"
	AssetOther  = "other"
	DebtShort   = "short"
	DebtLong    = "long"
)

// HealthProfile is the short intake at the top of the health-check wizard.
type HealthProfile struct {
	Name                      string `json:"name"`
	MaritalStatus             string `json:"maritalStatus"` // single | menikah | menikah_anak
	Dependents                int    `json:"dependents"`
	EmergencyFundTargetMonths int    `json:"emergencyFundTargetMonths"`
	Notes                     string `json:"notes,omitempty"`
	PlanNext12Months          string `json:"planNext12Months,omitempty"`
}

// HealthDraft is the in-progress health-check wizard state.
type HealthDraft struct {
	StepIndex   int           `json:"stepIndex"`
	Profile     HealthProfile `json:"profile"`
	Income      []LineItem    `json:"income"`
	Essentials  []LineItem    `json:"essentials"`
	Lifestyle   []LineItem    `json:"lifestyle"`
	Commitments []LineItem    `json:"commitments"`
	Assets      []LineItem    `json:"assets"`
	Debts       []LineItem    `json:"debts"`
}

// DefaultHealthDraft returns the wizard's starting template. Fixed rows cannot
// be removed by the visitor, only zeroed.
func DefaultHealthDraft() HealthDraft {
	m := func(label string) LineItem {
		return LineItem{Label: label, Period: PeriodMonthly, Fixed: true}
	}
	y := func(label string) LineItem {
		return LineItem{Label: label, Period: PeriodYearly, Fixed: true}
	}
	tagged := func(label, tag string) LineItem {
		return LineItem{Label: label, Period: PeriodMonthly, Tag: tag, Fixed: true}
	}

	return HealthDraft{
		Profile: HealthProfile{
			MaritalStatus:             "single",
			EmergencyFundTargetMonths: 3,
		},
		Income: []LineItem{
			m("Gaji bersih (take home)"),
			m("Penghasilan tambahan"),
			y("Bonus/THR (jika ada)"),
		},
		Essentials: []LineItem{
			m("Tempat tinggal (kos/sewa/KPR)"),
			m("Makan & kebutuhan rumah"),
			m("Transport"),
			m("Listrik/air/internet"),
			m("Kesehatan rutin"),
			m("Bantuan keluarga/orang tua"),
			y("Biaya wajib tahunan (pajak, dll)"),
		},
		Lifestyle: []LineItem{
			m("Jajan/ngopi"),
			m("Makan di luar"),
			m("Hiburan/langganan"),
			m("Belanja/shopping"),
			y("Liburan"),
		},
		Commitments: []LineItem{
			tagged("Cicilan total per bulan", CommitDebtPay),
			tagged("Premi proteksi (jika bayar sendiri)", CommitPremium),
			tagged("Tabungan rutin", CommitSaving),
			tagged("Investasi rutin", CommitInvest),
			tagged("Komitmen lain (arisan/iuran)", CommitOther),
		},
		Assets: []LineItem{
			tagged("Uang tunai / tabungan (likuid)", AssetLiquid),
			tagged("Dana darurat (jika terpisah)", AssetLiquid),
			tagged("Investasi (reksa dana/saham/emas)", AssetInvest),
			tagged("Aset lain (opsional)", AssetOther),
		},
		Debts: []LineItem{
			tagged("Utang jangka pendek (CC/PayLater/Pinjaman)", DebtShort),
			tagged("Utang jangka panjang (KPR/KKB)", DebtLong),
		},
	}
}

func (d *HealthDraft) Validate() error {
	lists := [][]LineItem{d.Income, d.Essentials, d.Lifestyle, d.Commitments, d.Assets, d.Debts}
	for _, list := range lists {
		for i := range list {
			if err := list[i].Validate(); err != nil {
				return err
			}
		}
	}
	if d.Profile.EmergencyFundTargetMonths <= 0 {
		d.Profile.EmergencyFundTargetMonths = 3
	}
	if d.Profile.Dependents < 0 {
		d.Profile.Dependents = 0
	}
	return nil
}

// IncomeMonthly is the monthly-equivalent income total, the gate for both
// step advancement past the income step and final submission.
func (d *HealthDraft) IncomeMonthly() decimal.Decimal {
	return SumMonthly(d.Income)
}

// StatusLevel buckets a health indicator.
type StatusLevel string

const (
	LevelGood    StatusLevel = "good"
	LevelWarn    StatusLevel = "warn"
	LevelBad     StatusLevel = "bad"
	LevelUnknown StatusLevel = "unknown" // metric not computable yet
)

// IndicatorStatus is one classified metric with its visitor-facing label.
type IndicatorStatus struct {
	Level StatusLevel `json:"level"`
	Label string      `json:"label"`
}

// OverallStatus is the headline verdict of the health check.
type OverallStatus struct {
	Label string `json:"label"`
	Note  string `json:"note"`
	Tone  string `json:"tone"` // green | yellow | red
}

// HealthResult is the finalized health-check bundle. It carries every derived
// figure so the result view never recomputes from raw answers.
type HealthResult struct {
	Profile HealthProfile `json:"profile"`

	IncomeMonthly        decimal.Decimal `json:"incomeMonthly"`
	EssentialMonthly     decimal.Decimal `json:"essentialMonthly"`
	DiscretionaryMonthly decimal.Decimal `json:"discretionaryMonthly"`
	LivingMonthly        decimal.Decimal `json:"livingMonthly"`

	DebtPayMonthly decimal.Decimal `json:"debtPayMonthly"`
	PremiumMonthly decimal.Decimal `json:"premiumMonthly"`
	SavingMonthly  decimal.Decimal `json:"savingMonthly"`
	InvestMonthly  decimal.Decimal `json:"investMonthly"`
	OtherMonthly   decimal.Decimal `json:"otherMonthly"`

	TrueCashLeft decimal.Decimal `json:"trueCashLeft"`

	AssetsTotal  decimal.Decimal `json:"assetsTotal"`
	DebtsTotal   decimal.Decimal `json:"debtsTotal"`
	NetWorth     decimal.Decimal `json:"netWorth"`
	LiquidAssets decimal.Decimal `json:"liquidAssets"`

	EmergencyFundMonths Metric `json:"emergencyFundMonths"`
	EmergencyFundTarget int    `json:"emergencyFundTarget"`
	SavingsRate         Metric `json:"savingsRate"`
	DebtRatio           Metric `json:"debtRatio"`

	Cashflow      IndicatorStatus `json:"cashflow"`
	Debt          IndicatorStatus `json:"debt"`
	EmergencyFund IndicatorStatus `json:"emergencyFund"`
	Savings       IndicatorStatus `json:"savings"`

	Overall   OverallStatus `json:"overall"`
	NextSteps []string      `json:"nextSteps"`

	SubmittedAt time.Time `json:"submittedAt"`
}
