// Package analytics shapes body-composition time series for graphs and reports:
// date-range resolution, interval bucketing, trend detection and summary statistics.
//
// All operations are pure functions of the records passed in. Empty input yields
// empty results; only malformed period/timeline keys and unknown fields are errors.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain/biometric"
)

type Options struct {
	// Location anchors calendar buckets and "today". Defaults to time.Local.
	Location *time.Location
	// Now defaults to time.Now.
	Now func() time.Time
}

type Engine struct {
	loc *time.Location
	now func() time.Time
}

func NewEngine(opts Options) *Engine {
	e := &Engine{loc: opts.Location, now: opts.Now}
	if e.loc == nil {
		e.loc = time.Local
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

func (e *Engine) Location() *time.Location {
	return e.loc
}

// Record is one dated sample. Values only holds measurements that were present.
type Record struct {
	Timestamp time.Time
	Values    map[biometric.Field]float64
}

func FromReadings(readings []*biometric.Reading) []Record {
	out := make([]Record, 0, len(readings))
	for _, r := range readings {
		out = append(out, Record{Timestamp: r.Time(), Values: r.Values()})
	}
	return out
}

type Timespan struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ResolveFields validates caller-supplied field names, accepting aliases. An empty
// list resolves to the default graph fields.
func ResolveFields(names []string) ([]biometric.Field, error) {
	if len(names) == 0 {
		return append([]biometric.Field(nil), biometric.DefaultGraphFields...), nil
	}
	out := make([]biometric.Field, 0, len(names))
	seen := make(map[biometric.Field]bool, len(names))
	for _, n := range names {
		f, ok := biometric.ParseField(n)
		if !ok {
			return nil, &ValidationError{Param: "field", Value: n, Err: ErrUnknownField}
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

func checkFields(fields []biometric.Field) ([]biometric.Field, error) {
	if len(fields) == 0 {
		return biometric.DefaultGraphFields, nil
	}
	for _, f := range fields {
		if !f.IsKnown() {
			return nil, &ValidationError{Param: "field", Value: string(f), Err: ErrUnknownField}
		}
	}
	return fields, nil
}

// chronological returns a time-ordered copy; the input slice is left untouched.
func chronological(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
