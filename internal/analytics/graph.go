package analytics

import (
	"time"

	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain/biometric"
)

type GraphPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Interval  string    `json:"interval"`
	Value     float64   `json:"value"`
}

// BuildGraphSeries buckets the records and projects each field into its own ordered
// series. Buckets where the field did not survive averaging contribute no point.
func (e *Engine) BuildGraphSeries(records []Record, timeline Timeline, fields []biometric.Field) (map[biometric.Field][]GraphPoint, error) {
	fields, err := checkFields(fields)
	if err != nil {
		return nil, err
	}
	buckets, err := e.GroupByInterval(records, timeline)
	if err != nil {
		return nil, err
	}

	out := make(map[biometric.Field][]GraphPoint, len(fields))
	for _, f := range fields {
		pts := make([]GraphPoint, 0, len(buckets))
		for _, b := range buckets {
			v, ok := b.Data[f]
			if !ok {
				continue
			}
			pts = append(pts, GraphPoint{Timestamp: b.Timestamp, Interval: b.Interval, Value: v})
		}
		out[f] = pts
	}
	return out, nil
}
