// Package risk maps biometric readings onto per-disease risk contributions and
// folds them into a composite wellness score.
package risk

import (
	"fmt"
	"math"
)

type Metric string

const (
	MetricBodyFat         Metric = "bodyFat"
	MetricBMI             Metric = "bmi"
	MetricBodyWater       Metric = "bodyWater"
	MetricBoneMass        Metric = "boneMass"
	MetricMuscleVolume    Metric = "muscleVolume"
	MetricBloodPressure   Metric = "bloodPressure"
	MetricHeartRate       Metric = "heartRate"
	MetricHRV             Metric = "hrv"
	MetricSpO2            Metric = "spo2"
	MetricRespirationRate Metric = "respirationRate"
)

// Metrics is the optional input set for a score. BodyWeight and Height are companions:
// they are never scored on their own, only used to pick the bone-mass and muscle bands.
type Metrics struct {
	BodyFat         *float64 `json:"bodyFat,omitempty"`
	BMI             *float64 `json:"bmi,omitempty"`
	BodyWater       *float64 `json:"bodyWater,omitempty"`
	BodyWeight      *float64 `json:"bodyWeight,omitempty"`
	BoneMass        *float64 `json:"boneMass,omitempty"`
	Height          *float64 `json:"height,omitempty"`
	MuscleVolume    *float64 `json:"muscleVolume,omitempty"`
	BloodPressure   *float64 `json:"bloodPressure,omitempty"`
	HeartRate       *float64 `json:"heartRate,omitempty"`
	HRV             *float64 `json:"hrv,omitempty"`
	SpO2            *float64 `json:"spo2,omitempty"`
	RespirationRate *float64 `json:"respirationRate,omitempty"`
}

func (m Metrics) validate() error {
	fields := []struct {
		name string
		v    *float64
	}{
		{"bodyFat", m.BodyFat},
		{"bmi", m.BMI},
		{"bodyWater", m.BodyWater},
		{"bodyWeight", m.BodyWeight},
		{"boneMass", m.BoneMass},
		{"height", m.Height},
		{"muscleVolume", m.MuscleVolume},
		{"bloodPressure", m.BloodPressure},
		{"heartRate", m.HeartRate},
		{"hrv", m.HRV},
		{"spo2", m.SpO2},
		{"respirationRate", m.RespirationRate},
	}
	for _, f := range fields {
		if f.v != nil && (math.IsNaN(*f.v) || math.IsInf(*f.v, 0)) {
			return &ValidationError{Field: f.name, Reason: "must be a finite number"}
		}
	}
	return nil
}

// Contribution records which bracket a metric fell into and what it added to the sum.
type Contribution struct {
	Metric  Metric  `json:"metric"`
	Value   float64 `json:"value"`
	Bracket string  `json:"bracket"`
	Vector  Vector  `json:"vector"`
}

type Result struct {
	Scores         Vector         `json:"scores"`
	TotalRiskScore float64        `json:"totalRiskScore"`
	WellnessScore  float64        `json:"wellnessScore"`
	MetricsUsed    int            `json:"metricsUsed"`
	Breakdown      []Contribution `json:"breakdown"`
}

// Engine scores metric sets against the static calibration tables. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	tables *tableSet
}

func NewEngine() (*Engine, error) {
	t := newTableSet()
	if err := t.check(); err != nil {
		return nil, fmt.Errorf("risk tables: %w", err)
	}
	return &Engine{tables: t}, nil
}

// Classify returns the bracket a single value falls into. Bone mass and muscle volume
// need the companion measurement (body weight and height respectively); it is ignored
// for every other metric.
func (e *Engine) Classify(metric Metric, gender Gender, value, companion float64) (Bracket, error) {
	if !gender.IsValid() {
		return Bracket{}, &ValidationError{Field: "gender", Reason: fmt.Sprintf("%q is not one of male, female", gender)}
	}
	t := e.tables
	switch metric {
	case MetricBodyFat:
		return t.bodyFat[gender].classify(value), nil
	case MetricBodyWater:
		return t.bodyWater[gender].classify(value), nil
	case MetricBoneMass:
		return t.boneMass[gender].classify(companion, value), nil
	case MetricMuscleVolume:
		return t.muscleVolume[gender].classify(companion, value), nil
	case MetricBMI:
		return t.bmi.classify(value), nil
	case MetricBloodPressure:
		return t.bloodPressure.classify(value), nil
	case MetricHeartRate:
		return t.heartRate.classify(value), nil
	case MetricHRV:
		return t.hrv.classify(value), nil
	case MetricSpO2:
		return t.spo2.classify(value), nil
	case MetricRespirationRate:
		return t.respirationRate.classify(value), nil
	}
	return Bracket{}, &ValidationError{Field: "metric", Reason: fmt.Sprintf("%q is not a scored metric", metric)}
}

// CalculateRisk averages the risk vectors of every supplied metric. Paired metrics are
// skipped unless both halves are present.
func (e *Engine) CalculateRisk(gender Gender, m Metrics) (*Result, error) {
	if !gender.IsValid() {
		return nil, &ValidationError{Field: "gender", Reason: fmt.Sprintf("%q is not one of male, female", gender)}
	}
	if err := m.validate(); err != nil {
		return nil, err
	}

	var (
		sum       Vector
		breakdown []Contribution
	)
	add := func(metric Metric, value, companion float64) {
		br, _ := e.Classify(metric, gender, value, companion)
		sum = sum.Add(br.Vector)
		breakdown = append(breakdown, Contribution{
			Metric:  metric,
			Value:   value,
			Bracket: br.Label,
			Vector:  br.Vector,
		})
	}

	if m.BodyFat != nil {
		add(MetricBodyFat, *m.BodyFat, 0)
	}
	if m.BMI != nil {
		add(MetricBMI, *m.BMI, 0)
	}
	if m.BodyWater != nil {
		add(MetricBodyWater, *m.BodyWater, 0)
	}
	if m.BoneMass != nil && m.BodyWeight != nil {
		add(MetricBoneMass, *m.BoneMass, *m.BodyWeight)
	}
	if m.MuscleVolume != nil && m.Height != nil {
		add(MetricMuscleVolume, *m.MuscleVolume, *m.Height)
	}
	if m.BloodPressure != nil {
		add(MetricBloodPressure, *m.BloodPressure, 0)
	}
	if m.HeartRate != nil {
		add(MetricHeartRate, *m.HeartRate, 0)
	}
	if m.HRV != nil {
		add(MetricHRV, *m.HRV, 0)
	}
	if m.SpO2 != nil {
		add(MetricSpO2, *m.SpO2, 0)
	}
	if m.RespirationRate != nil {
		add(MetricRespirationRate, *m.RespirationRate, 0)
	}

	if len(breakdown) == 0 {
		return nil, ErrInsufficientData
	}

	scores := sum.Scale(1 / float64(len(breakdown))).round()
	total := round1(scores.Mean())

	return &Result{
		Scores:         scores,
		TotalRiskScore: total,
		WellnessScore:  round1(100 - total),
		MetricsUsed:    len(breakdown),
		Breakdown:      breakdown,
	}, nil
}
