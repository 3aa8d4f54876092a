package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain/biometric"
)

const (
	DirectionIncreasing   = "increasing"
	DirectionDecreasing   = "decreasing"
	DirectionNeutral      = "neutral"
	TrendInsufficientData = "insufficient_data"
)

// neutralBandPercent is the largest relative change still reported as flat.
const neutralBandPercent = 1.0

type TrendResult struct {
	Field         biometric.Field `json:"field"`
	Trend         string          `json:"trend"`
	Direction     string          `json:"direction"`
	Change        float64         `json:"change"`
	ChangePercent float64         `json:"changePercent"`
	Volatility    float64         `json:"volatility"`
	DataPoints    int             `json:"dataPoints"`
	Timespan      *Timespan       `json:"timespan,omitempty"`
}

type point struct {
	rec   Record
	value float64
}

func series(records []Record, field biometric.Field) []point {
	var pts []point
	for _, r := range chronological(records) {
		v, ok := r.Values[field]
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		pts = append(pts, point{rec: r, value: v})
	}
	return pts
}

func percentChange(first, change float64) float64 {
	if first == 0 {
		return 0
	}
	return change / first * 100
}

// ComputeTrend compares the first and last finite values of field. Volatility is the
// population standard deviation of every qualifying value.
func (e *Engine) ComputeTrend(records []Record, field biometric.Field) (TrendResult, error) {
	if !field.IsKnown() {
		return TrendResult{}, &ValidationError{Param: "field", Value: string(field), Err: ErrUnknownField}
	}

	pts := series(records, field)
	if len(pts) < 2 {
		return TrendResult{
			Field:      field,
			Trend:      TrendInsufficientData,
			Direction:  DirectionNeutral,
			DataPoints: len(pts),
		}, nil
	}

	first, last := pts[0], pts[len(pts)-1]
	change := last.value - first.value
	pct := percentChange(first.value, change)

	direction := DirectionNeutral
	switch {
	case math.Abs(pct) <= neutralBandPercent:
	case change > 0:
		direction = DirectionIncreasing
	case change < 0:
		direction = DirectionDecreasing
	}

	values := make([]float64, len(pts))
	for i, p := range pts {
		values[i] = p.value
	}
	_, std := stat.PopMeanStdDev(values, nil)

	return TrendResult{
		Field:         field,
		Trend:         direction,
		Direction:     direction,
		Change:        round2(change),
		ChangePercent: round2(pct),
		Volatility:    round2(std),
		DataPoints:    len(pts),
		Timespan:      &Timespan{Start: first.rec.Timestamp, End: last.rec.Timestamp},
	}, nil
}

// AnalyzeTrends runs ComputeTrend for each field; nil fields means the defaults.
func (e *Engine) AnalyzeTrends(records []Record, fields []biometric.Field) (map[biometric.Field]TrendResult, error) {
	fields, err := checkFields(fields)
	if err != nil {
		return nil, err
	}
	out := make(map[biometric.Field]TrendResult, len(fields))
	for _, f := range fields {
		tr, err := e.ComputeTrend(records, f)
		if err != nil {
			return nil, err
		}
		out[f] = tr
	}
	return out, nil
}
