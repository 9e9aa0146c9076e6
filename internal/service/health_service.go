package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dendrafalah/terencana.id/internal/domain"
	"github.com/dendrafalah/terencana.id/internal/wizard"
)

// HealthService drives the financial health check wizard and derives the
// indicator report from the answers.
type HealthService struct {
	drafts domain.DraftRepository
	flow   *wizard.Flow[domain.HealthDraft]
}

// NewHealthService creates a new HealthService
func NewHealthService(drafts domain.DraftRepository) *HealthService {
	flow := wizard.NewFlow(
		wizard.Step[domain.HealthDraft]{Key: "profil", Title: "Profil singkat"},
		wizard.Step[domain.HealthDraft]{
			Key:   "pemasukan",
			Title: "Pemasukan",
			Validate: func(d *domain.HealthDraft) error {
				if !d.IncomeMonthly().IsPositive() {
					return domain.ErrIncomeRequired
				}
				return nil
			},
		},
		wizard.Step[domain.HealthDraft]{Key: "wajib", Title: "Pengeluaran wajib"},
		wizard.Step[domain.HealthDraft]{Key: "opsional", Title: "Pengeluaran opsional"},
		wizard.Step[domain.HealthDraft]{Key: "komitmen", Title: "Komitmen bulanan"},
		wizard.Step[domain.HealthDraft]{Key: "asetutang", Title: "Aset & utang"},
	)
	return &HealthService{drafts: drafts, flow: flow}
}

// Steps returns the wizard step metadata for rendering progress.
func (s *HealthService) Steps() []string {
	keys := make([]string, 0, s.flow.Len())
	for i := 0; i < s.flow.Len(); i++ {
		keys = append(keys, s.flow.Step(i).Key)
	}
	return keys
}

// Draft returns the stored draft, or a fresh template when none exists.
// Stored payloads from older versions merge onto the current template so a
// schema change never breaks a returning visitor.
func (s *HealthService) Draft(deviceID uuid.UUID) (*domain.HealthDraft, error) {
	draft := domain.DefaultHealthDraft()

	raw, err := s.drafts.Load(deviceID, domain.SlotHealthDraft)
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

// PutDraft validates and stores the full draft.
func (s *HealthService) PutDraft(deviceID uuid.UUID, draft *domain.HealthDraft) (*domain.HealthDraft, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	draft.StepIndex = s.flow.Clamp(draft.StepIndex)
	if err := s.drafts.Save(deviceID, domain.SlotHealthDraft, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Next advances the wizard one step, running the current step's validation.
func (s *HealthService) Next(deviceID uuid.UUID) (*domain.HealthDraft, error) {
	draft, err := s.Draft(deviceID)
	if err != nil {
		return nil, err
	}
	next, err := s.flow.Advance(draft.StepIndex, draft)
	if err != nil {
		return draft, err
	}
	draft.StepIndex = next
	if err := s.drafts.Save(deviceID, domain.SlotHealthDraft, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Back moves the wizard one step back without validation.
func (s *HealthService) Back(deviceID uuid.UUID) (*domain.HealthDraft, error) {
	draft, err := s.Draft(deviceID)
	if err != nil {
		return nil, err
	}
	draft.StepIndex = s.flow.Retreat(draft.StepIndex)
	if err := s.drafts.Save(deviceID, domain.SlotHealthDraft, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Submit derives the report from the current draft and stores it as the
// final result. The draft survives so the visitor can tweak and resubmit.
// Like the income step, submission needs a positive monthly income; the
// engine itself still classifies incomplete data as "Belum lengkap" for
// drafts that lost their income fields across schema versions.
func (s *HealthService) Submit(deviceID uuid.UUID) (*domain.HealthResult, error) {
	draft, err := s.Draft(deviceID)
	if err != nil {
		return nil, err
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	if !draft.IncomeMonthly().IsPositive() {
		return nil, domain.ErrIncomeRequired
	}

	result := DeriveHealthResult(draft, time.Now().UTC())
	if err := s.drafts.Save(deviceID, domain.SlotHealthFinal, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Result returns the stored final report.
func (s *HealthService) Result(deviceID uuid.UUID) (*domain.HealthResult, error) {
	raw, err := s.drafts.Load(deviceID, domain.SlotHealthFinal)
	if errors.Is(err, domain.ErrDraftNotFound) {
		return nil, domain.ErrResultNotFound
	}
	if err != nil {
		return nil, err
	}
	var result domain.HealthResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode health result: %w", err)
	}
	return &result, nil
}

// Reset drops both the draft and the final result.
func (s *HealthService) Reset(deviceID uuid.UUID) error {
	if err := s.drafts.Delete(deviceID, domain.SlotHealthDraft); err != nil {
		return err
	}
	return s.drafts.Delete(deviceID, domain.SlotHealthFinal)
}

// DeriveHealthResult computes every indicator from the draft. Ratios that
// cannot be computed yet come back invalid and classify as unknown.
func DeriveHealthResult(d *domain.HealthDraft, now time.Time) *domain.HealthResult {
	income := domain.SumMonthly(d.Income)
	essential := domain.SumMonthly(d.Essentials)
	discretionary := domain.SumMonthly(d.Lifestyle)
	living := essential.Add(discretionary)

	debtPay := domain.FirstTagMonthly(d.Commitments, domain.CommitDebtPay)
	premium := domain.FirstTagMonthly(d.Commitments, domain.CommitPremium)
	saving := domain.FirstTagMonthly(d.Commitments, domain.CommitSaving)
	invest := domain.FirstTagMonthly(d.Commitments, domain.CommitInvest)
	otherC := domain.FirstTagMonthly(d.Commitments, domain.CommitOther)

	trueCashLeft := income.Sub(living).Sub(debtPay).Sub(premium).Sub(saving).Sub(invest).Sub(otherC)

	assetsTotal := domain.SumAmounts(d.Assets)
	debtsTotal := domain.SumAmounts(d.Debts)
	netWorth := assetsTotal.Sub(debtsTotal)
	liquid := domain.SumAmountsTagged(d.Assets, domain.AssetLiquid)

	efTarget := d.Profile.EmergencyFundTargetMonths
	if efTarget <= 0 {
		efTarget = 3
	}

	// Emergency fund runway measures liquid assets against essentials only.
	efMonths := domain.Ratio(liquid, essential)
	savingsRate := domain.Ratio(saving.Add(invest), income)
	debtRatio := domain.Ratio(debtPay, income)

	cashflow := classifyCashflow(trueCashLeft, income)
	debt := classifyDebt(debtRatio)
	emergency := classifyEmergency(efMonths, efTarget)
	savings := classifySavings(savingsRate)

	overall := overallStatus(income, cashflow, debt, emergency)

	result := &domain.HealthResult{
		Profile: d.Profile,

		IncomeMonthly:        income,
		EssentialMonthly:     essential,
		DiscretionaryMonthly: discretionary,
		LivingMonthly:        living,

		DebtPayMonthly: debtPay,
		PremiumMonthly: premium,
		SavingMonthly:  saving,
		InvestMonthly:  invest,
		OtherMonthly:   otherC,

		TrueCashLeft: trueCashLeft,

		AssetsTotal:  assetsTotal,
		DebtsTotal:   debtsTotal,
		NetWorth:     netWorth,
		LiquidAssets: liquid,

		EmergencyFundMonths: efMonths,
		EmergencyFundTarget: efTarget,
		SavingsRate:         savingsRate,
		DebtRatio:           debtRatio,

		Cashflow:      cashflow,
		Debt:          debt,
		EmergencyFund: emergency,
		Savings:       savings,

		Overall:     overall,
		SubmittedAt: now,
	}
	result.NextSteps = buildNextSteps(result)
	return result
}

func classifyCashflow(trueCashLeft, income decimal.Decimal) domain.IndicatorStatus {
	if !trueCashLeft.IsNegative() {
		return domain.IndicatorStatus{Level: domain.LevelGood, Label: "Sehat"}
	}
	if income.IsPositive() {
		threshold := income.Mul(decimal.NewFromFloat(-0.05))
		if trueCashLeft.GreaterThanOrEqual(threshold) {
			return domain.IndicatorStatus{Level: domain.LevelWarn, Label: "Tipis"}
		}
	}
	return domain.IndicatorStatus{Level: domain.LevelBad, Label: "Defisit"}
}

func classifyDebt(ratio domain.Metric) domain.IndicatorStatus {
	if !ratio.Valid {
		return domain.IndicatorStatus{Level: domain.LevelUnknown, Label: "Belum dihitung"}
	}
	switch {
	case ratio.Value <= 0.3:
		return domain.IndicatorStatus{Level: domain.LevelGood, Label: "Aman"}
	case ratio.Value <= 0.4:
		return domain.IndicatorStatus{Level: domain.LevelWarn, Label: "Berat"}
	default:
		return domain.IndicatorStatus{Level: domain.LevelBad, Label: "Terlalu tinggi"}
	}
}

func classifyEmergency(months domain.Metric, target int) domain.IndicatorStatus {
	if !months.Valid {
		return domain.IndicatorStatus{Level: domain.LevelUnknown, Label: "Belum dihitung"}
	}
	switch {
	case months.Value >= float64(target):
		return domain.IndicatorStatus{Level: domain.LevelGood, Label: "Aman"}
	case months.Value >= 1:
		return domain.IndicatorStatus{Level: domain.LevelWarn, Label: "Belum ideal"}
	default:
		return domain.IndicatorStatus{Level: domain.LevelBad, Label: "Belum aman"}
	}
}

func classifySavings(rate domain.Metric) domain.IndicatorStatus {
	if !rate.Valid {
		return domain.IndicatorStatus{Level: domain.LevelUnknown, Label: "Belum dihitung"}
	}
	switch {
	case rate.Value >= 0.2:
		return domain.IndicatorStatus{Level: domain.LevelGood, Label: "Bagus"}
	case rate.Value >= 0.1:
		return domain.IndicatorStatus{Level: domain.LevelWarn, Label: "Rendah"}
	default:
		return domain.IndicatorStatus{Level: domain.LevelBad, Label: "Sangat rendah"}
	}
}

// overallStatus tallies the cashflow, debt and emergency-fund indicators.
// Savings rate informs suggestions but does not drag the headline down.
// Unknown indicators stay out of the tally.
func overallStatus(income decimal.Decimal, statuses ...domain.IndicatorStatus) domain.OverallStatus {
	if !income.IsPositive() {
		return domain.OverallStatus{
			Label: "Belum lengkap",
			Note:  "Pemasukan masih kosong.",
			Tone:  "yellow",
		}
	}

	red, yellow := 0, 0
	for _, st := range statuses {
		switch st.Level {
		case domain.LevelBad:
			red++
		case domain.LevelWarn:
			yellow++
		}
	}

	switch {
	case red >= 2:
		return domain.OverallStatus{
			Label: "Perlu perhatian",
			Note:  "Ada indikator berisiko.",
			Tone:  "red",
		}
	case red == 1 || yellow >= 2:
		return domain.OverallStatus{
			Label: "Perlu dirapikan",
			Note:  "Ada area yang perlu distabilkan.",
			Tone:  "yellow",
		}
	default:
		return domain.OverallStatus{
			Label: "Relatif sehat",
			Note:  "Kondisi dasar cukup stabil. Fokus ke konsistensi dan tujuan.",
			Tone:  "green",
		}
	}
}

// buildNextSteps picks one suggestion per area in a fixed order, capped at
// five lines.
func buildNextSteps(r *domain.HealthResult) []string {
	var steps []string

	fivePct := r.IncomeMonthly.Mul(decimal.NewFromFloat(0.05))
	switch {
	case r.TrueCashLeft.IsNegative():
		steps = append(steps, "Stabilkan arus kas: cari 1–2 pengeluaran terbesar yang bisa diturunkan dulu (bukan yang kecil-kecil).")
	case r.IncomeMonthly.IsPositive() && r.TrueCashLeft.LessThan(fivePct):
		steps = append(steps, "Biar tidak 'tipis': buat buffer minimal 5–10% dari pemasukan (sisihkan di awal, bukan sisa di akhir).")
	default:
		steps = append(steps, "Pertahankan cashflow positif: otomatisasikan alokasi (tabungan/investasi/tujuan) begitu gajian masuk.")
	}

	if r.DebtRatio.Valid && r.DebtRatio.Value > 0.35 {
		steps = append(steps, "Rapikan cicilan: hentikan utang konsumtif baru, dan prioritaskan lunasi bunga tertinggi dulu.")
	} else {
		steps = append(steps, "Kalau cicilan sudah aman: arahkan 'ruang' yang ada untuk percepat dana darurat/tujuan besar.")
	}

	if r.EmergencyFundMonths.Valid {
		switch {
		case r.EmergencyFundMonths.Value < 1:
			steps = append(steps, "Bangun dana darurat tahap 1: kumpulkan dulu 1 bulan kebutuhan pokok, baru naik bertahap.")
		case r.EmergencyFundMonths.Value < float64(r.EmergencyFundTarget):
			steps = append(steps, fmt.Sprintf("Naikkan dana darurat sampai %d bulan (auto-transfer kecil tapi rutin).", r.EmergencyFundTarget))
		default:
			steps = append(steps, "Dana darurat sudah aman: pisahkan rekeningnya dan jangan dicampur dengan tabungan tujuan.")
		}
	}

	if r.SavingsRate.Valid {
		switch {
		case r.SavingsRate.Value < 0.1 && r.TrueCashLeft.IsPositive():
			steps = append(steps, "Naikkan rasio menabung: target awal 10% dulu (konsisten > besar).")
		case r.SavingsRate.Value >= 0.2:
			steps = append(steps, "Tabungan/investasi sudah bagus: lanjutkan dan mapping tujuan (6–24 bulan) biar makin terarah.")
		default:
			steps = append(steps, "Kalau menabung sudah jalan: coba naikkan sedikit tiap 3 bulan (+1–2%).")
		}
	}

	if len(steps) > 5 {
		steps = steps[:5]
	}
	return steps
}
