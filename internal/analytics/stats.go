package analytics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain/biometric"
)

type FieldStats struct {
	Current       float64 `json:"current"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	Average       float64 `json:"average"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Count         int     `json:"count"`
}

type Statistics struct {
	TotalEntries int                            `json:"totalEntries"`
	DateRange    *Timespan                      `json:"dateRange,omitempty"`
	Fields       map[biometric.Field]FieldStats `json:"fields"`
}

// ComputeStatistics summarises each field over the records. Change is last minus
// first in time order, not max minus min. Fields without any value are omitted.
func (e *Engine) ComputeStatistics(records []Record, fields []biometric.Field) (*Statistics, error) {
	fields, err := checkFields(fields)
	if err != nil {
		return nil, err
	}

	out := &Statistics{
		TotalEntries: len(records),
		Fields:       make(map[biometric.Field]FieldStats),
	}
	if len(records) == 0 {
		return out, nil
	}

	sorted := chronological(records)
	out.DateRange = &Timespan{Start: sorted[0].Timestamp, End: sorted[len(sorted)-1].Timestamp}

	for _, f := range fields {
		pts := series(sorted, f)
		if len(pts) == 0 {
			continue
		}
		values := make([]float64, len(pts))
		for i, p := range pts {
			values[i] = p.value
		}
		first, last := values[0], values[len(values)-1]
		change := last - first

		out.Fields[f] = FieldStats{
			Current:       round2(last),
			Min:           round2(floats.Min(values)),
			Max:           round2(floats.Max(values)),
			Average:       round2(stat.Mean(values, nil)),
			Change:        round2(change),
			ChangePercent: round2(percentChange(first, change)),
			Count:         len(values),
		}
	}
	return out, nil
}
