package analytics

import (
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain/biometric"
)

type Report struct {
	Period     Period                           `json:"period"`
	Timeline   Timeline                         `json:"timeline"`
	Window     TimeWindow                       `json:"window"`
	Fields     []biometric.Field                `json:"fields"`
	Series     map[biometric.Field][]GraphPoint `json:"series"`
	Trends     map[biometric.Field]TrendResult  `json:"trends"`
	Statistics *Statistics                      `json:"statistics"`
}

// Summarize builds the full analytics view over records, restricted to window.
func (e *Engine) Summarize(records []Record, period Period, window TimeWindow, timeline Timeline, fields []biometric.Field) (*Report, error) {
	fields, err := checkFields(fields)
	if err != nil {
		return nil, err
	}
	inWindow := FilterWindow(records, window)

	series, err := e.BuildGraphSeries(inWindow, timeline, fields)
	if err != nil {
		return nil, err
	}
	trends, err := e.AnalyzeTrends(inWindow, fields)
	if err != nil {
		return nil, err
	}
	stats, err := e.ComputeStatistics(inWindow, fields)
	if err != nil {
		return nil, err
	}

	return &Report{
		Period:     period,
		Timeline:   timeline,
		Window:     window,
		Fields:     fields,
		Series:     series,
		Trends:     trends,
		Statistics: stats,
	}, nil
}
