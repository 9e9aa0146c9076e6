package domain

import (
	"github.com/dendrafalah/terencana.id/internal/money"
	"github.com/shopspring/decimal"
)

// Period is how often a line item's amount recurs.
type Period string

const (
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// LineItem is one income/expense/asset/debt entry in a wizard. Template items
// (Fixed=true) cannot be removed, only zeroed. Yearly items are normalized to
// a monthly equivalent (amount / 12) wherever lists are aggregated.
type LineItem struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Period Period          `json:"period"`
	Tag    string          `json:"tag,omitempty"`
	Fixed  bool            `json:"fixed"`
}

func (li *LineItem) Validate() error {
	if li.Amount.IsNegative() {
		return ErrAmountNegative
	}
	switch li.Period {
	case PeriodMonthly, PeriodYearly:
		return nil
	case "":
		// Drafts saved before the period field existed default to monthly.
		li.Period = PeriodMonthly
		return nil
	default:
		return ErrInvalidPeriod
	}
}

// Monthly returns the monthly-equivalent amount.
func (li LineItem) Monthly() decimal.Decimal {
	return money.MonthlyEquivalent(li.Amount, li.Period == PeriodYearly)
}

// SumMonthly totals the monthly equivalents of a list.
func SumMonthly(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Monthly())
	}
	return total
}

// SumAmounts totals raw amounts (used for asset/debt snapshots, which are
// point-in-time values rather than flows).
func SumAmounts(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	return total
}

// SumAmountsTagged totals raw amounts of items carrying the given tag.
func SumAmountsTagged(items []LineItem, tag string) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		if it.Tag == tag {
			total = total.Add(it.Amount)
		}
	}
	return total
}

// FirstTagMonthly returns the monthly equivalent of the first item carrying
// the given tag, or zero if absent. Template construction puts each tag on at
// most one row, but the caller must not rely on that.
func FirstTagMonthly(items []LineItem, tag string) decimal.Decimal {
	for _, it := range items {
		if it.Tag == tag {
			return it.Monthly()
		}
	}
	return decimal.Zero
}
