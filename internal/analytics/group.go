package analytics

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain/biometric"
)

// denseMonthThreshold is the record count above which a monthly timeline switches
// from per-day to per-week buckets.
const denseMonthThreshold = 60

type Bucket struct {
	Interval  string                      `json:"interval"`
	Timestamp time.Time                   `json:"timestamp"`
	Count     int                         `json:"count"`
	Data      map[biometric.Field]float64 `json:"data"`
}

type bucketKeyFunc func(t time.Time) (label string, start time.Time)

func (e *Engine) keyFunc(timeline Timeline, n int) bucketKeyFunc {
	switch timeline {
	case TimelineDaily:
		return func(t time.Time) (string, time.Time) {
			return t.Format("2006-01-02 15:04:05"), t.Truncate(time.Second)
		}
	case TimelineWeekly:
		return dayKey
	case TimelineMonthly:
		if n <= denseMonthThreshold {
			return dayKey
		}
		return func(t time.Time) (string, time.Time) {
			start := startOfWeek(t)
			return start.Format("2006-01-02"), start
		}
	default:
		return func(t time.Time) (string, time.Time) {
			return t.Format("2006-01"), startOfMonth(t)
		}
	}
}

func dayKey(t time.Time) (string, time.Time) {
	return t.Format("2006-01-02"), startOfDay(t)
}

// GroupByInterval buckets records by the timeline's calendar unit and averages each
// bucket. Buckets come back in ascending time order.
func (e *Engine) GroupByInterval(records []Record, timeline Timeline) ([]Bucket, error) {
	if !timeline.IsValid() {
		return nil, &ValidationError{Param: "timeline", Value: string(timeline), Allowed: "daily, weekly, monthly, yearly", Err: ErrInvalidTimeline}
	}
	if len(records) == 0 {
		return []Bucket{}, nil
	}

	key := e.keyFunc(timeline, len(records))

	type group struct {
		start   time.Time
		members []Record
	}
	var order []string
	groups := make(map[string]*group)

	for _, r := range records {
		label, start := key(r.Timestamp.In(e.loc))
		g, ok := groups[label]
		if !ok {
			g = &group{start: start}
			groups[label] = g
			order = append(order, label)
		}
		g.members = append(g.members, r)
	}

	buckets := make([]Bucket, 0, len(order))
	for _, label := range order {
		g := groups[label]
		buckets = append(buckets, Bucket{
			Interval:  label,
			Timestamp: g.start,
			Count:     len(g.members),
			Data:      averageMembers(g.members),
		})
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Timestamp.Before(buckets[j].Timestamp)
	})
	return buckets, nil
}

// averageMembers averages the fields every member carries. A field missing from any
// member is left out of the bucket entirely.
func averageMembers(members []Record) map[biometric.Field]float64 {
	out := make(map[biometric.Field]float64)
	if len(members) == 1 {
		for f, v := range members[0].Values {
			out[f] = v
		}
		return out
	}

	values := make([]float64, len(members))
	for f := range members[0].Values {
		shared := true
		for i, m := range members {
			v, ok := m.Values[f]
			if !ok {
				shared = false
				break
			}
			values[i] = v
		}
		if shared {
			out[f] = round2(stat.Mean(values, nil))
		}
	}
	return out
}
