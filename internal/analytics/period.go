package analytics

import (
	"strings"
	"time"
)

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
	Period1D      Period = "1d"
	Period7D      Period = "7d"
	Period30D     Period = "30d"
	Period90D     Period = "90d"
	Period1Y      Period = "1y"
)

const allowedPeriods = "daily, weekly, monthly, yearly, 1d, 7d, 30d, 90d, 1y"

func ParsePeriod(raw string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(raw)))
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly,
		Period1D, Period7D, Period30D, Period90D, Period1Y:
		return p, nil
	}
	return "", &ValidationError{Param: "period", Value: raw, Allowed: allowedPeriods, Err: ErrInvalidPeriod}
}

// DefaultTimeline is the bucketing granularity that suits a period's span.
func (p Period) DefaultTimeline() Timeline {
	switch p {
	case PeriodDaily, Period1D:
		return TimelineDaily
	case PeriodWeekly, Period7D:
		return TimelineWeekly
	case PeriodYearly, Period1Y:
		return TimelineYearly
	}
	return TimelineMonthly
}

type Timeline string

const (
	TimelineDaily   Timeline = "daily"
	TimelineWeekly  Timeline = "weekly"
	TimelineMonthly Timeline = "monthly"
	TimelineYearly  Timeline = "yearly"
)

func (t Timeline) IsValid() bool {
	switch t {
	case TimelineDaily, TimelineWeekly, TimelineMonthly, TimelineYearly:
		return true
	}
	return false
}

func ParseTimeline(raw string) (Timeline, error) {
	t := Timeline(strings.ToLower(strings.TrimSpace(raw)))
	if !t.IsValid() {
		return "", &ValidationError{Param: "timeline", Value: raw, Allowed: "daily, weekly, monthly, yearly", Err: ErrInvalidTimeline}
	}
	return t, nil
}

type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// ResolveDateRange maps a period key onto a window ending now. Daily windows start
// at local midnight rather than 24 hours ago.
func (e *Engine) ResolveDateRange(period string) (TimeWindow, error) {
	p, err := ParsePeriod(period)
	if err != nil {
		return TimeWindow{}, err
	}
	return e.window(p), nil
}

func (e *Engine) window(p Period) TimeWindow {
	now := e.now().In(e.loc)

	var start time.Time
	switch p {
	case PeriodDaily, Period1D:
		start = startOfDay(now)
	case PeriodWeekly, Period7D:
		start = now.AddDate(0, 0, -7)
	case PeriodMonthly, Period30D:
		start = now.AddDate(0, 0, -30)
	case Period90D:
		start = now.AddDate(0, 0, -90)
	case PeriodYearly, Period1Y:
		start = now.AddDate(-1, 0, 0)
	}
	return TimeWindow{Start: start, End: now}
}

// FilterWindow keeps the records whose timestamp lies inside w, bounds included.
func FilterWindow(records []Record, w TimeWindow) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if w.Contains(r.Timestamp) {
			out = append(out, r)
		}
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// startOfWeek returns midnight of the Sunday on or before t.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}
