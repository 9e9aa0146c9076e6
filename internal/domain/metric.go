package domain

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"
)

// Metric is a derived ratio that may be "not computable" because its
// denominator was zero or negative. An invalid Metric marshals to JSON null;
// it is never represented as NaN or ±Inf so that formatting and comparisons
// downstream stay explicit.
type Metric struct {
	Value float64
	Valid bool
}

// MetricOf wraps a computed value. Non-finite inputs become invalid.
func MetricOf(v float64) Metric {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Metric{}
	}
	return Metric{Value: v, Valid: true}
}

// Ratio divides num by den, returning an invalid Metric when den is zero or
// negative.
func Ratio(num, den decimal.Decimal) Metric {
	if !den.IsPositive() {
		return Metric{}
	}
	return MetricOf(num.Div(den).InexactFloat64())
}

func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

func (m *Metric) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Metric{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = MetricOf(v)
	return nil
}
