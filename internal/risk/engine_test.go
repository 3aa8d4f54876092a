package risk

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine()
	require.NoError(t, err)
	return e
}

func TestEngine_CalculateRisk_SingleMetric(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name    string
		gender  Gender
		metrics Metrics
		want    Vector
		bracket string
	}{
		{
			name:    "male standard body fat",
			gender:  GenderMale,
			metrics: Metrics{BodyFat: f(15)},
			want:    Vector{Cardiac: 5, Kidney: 6, Diabetes: 3, Neurological: 2, Cancer: 8, COPD: 2, Mental: 4, Gastrointestinal: 4},
			bracket: LevelStandard,
		},
		{
			name:    "male high bmi",
			gender:  GenderMale,
			metrics: Metrics{BMI: f(30)},
			want:    bmiHigh,
			bracket: LevelHigh,
		},
		{
			name:    "female body fat below standard",
			gender:  GenderFemale,
			metrics: Metrics{BodyFat: f(15)},
			want:    bodyFatLow,
			bracket: LevelLow,
		},
		{
			name:    "spo2 critical",
			gender:  GenderFemale,
			metrics: Metrics{SpO2: f(88)},
			want:    spo2Critical,
			bracket: LevelCritical,
		},
		{
			name:    "stage 2 pressure",
			gender:  GenderMale,
			metrics: Metrics{BloodPressure: f(150)},
			want:    pressureStage2,
			bracket: LevelStage2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.CalculateRisk(tt.gender, tt.metrics)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Scores)
			assert.Equal(t, 1, res.MetricsUsed)
			require.Len(t, res.Breakdown, 1)
			assert.Equal(t, tt.bracket, res.Breakdown[0].Bracket)
			assert.Equal(t, round1(tt.want.Mean()), res.TotalRiskScore)
		})
	}
}

func TestEngine_CalculateRisk_BracketBoundaries(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name   string
		metric Metric
		gender Gender
		value  float64
		comp   float64
		want   string
	}{
		{"bmi just below 18.5", MetricBMI, GenderMale, 18.49, 0, LevelLow},
		{"bmi at 18.5", MetricBMI, GenderMale, 18.5, 0, LevelStandard},
		{"bmi at 26", MetricBMI, GenderFemale, 26, 0, LevelHigh},
		{"male body fat at 21", MetricBodyFat, GenderMale, 21, 0, LevelHigh},
		{"female body fat at 36", MetricBodyFat, GenderFemale, 36, 0, LevelVeryHigh},
		{"male body water at 50", MetricBodyWater, GenderMale, 50, 0, LevelStandard},
		{"female body water 44.9", MetricBodyWater, GenderFemale, 44.9, 0, LevelLow},
		{"heart rate at 100", MetricHeartRate, GenderMale, 100, 0, LevelHigh},
		{"hrv at 20", MetricHRV, GenderMale, 20, 0, LevelLow},
		{"spo2 at 95", MetricSpO2, GenderMale, 95, 0, LevelNormal},
		{"respiration at 12", MetricRespirationRate, GenderMale, 12, 0, LevelNormal},
		{"pressure at 120", MetricBloodPressure, GenderMale, 120, 0, LevelElevated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			br, err := e.Classify(tt.metric, tt.gender, tt.value, tt.comp)
			require.NoError(t, err)
			assert.Equal(t, tt.want, br.Label)
		})
	}
}

func TestEngine_Classify_CompanionBands(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name      string
		metric    Metric
		gender    Gender
		value     float64
		companion float64
		want      string
	}{
		// 2.8 kg of bone is standard for a 65 kg man but low for an 80 kg man.
		{"male bone 60-75kg band", MetricBoneMass, GenderMale, 2.8, 65, LevelStandard},
		{"male bone >=75kg band", MetricBoneMass, GenderMale, 2.8, 80, LevelLow},
		{"male bone weight at 60", MetricBoneMass, GenderMale, 2.7, 60, LevelStandard},
		{"male bone <60kg band high", MetricBoneMass, GenderMale, 2.7, 59.9, LevelHigh},
		{"female bone <45kg band", MetricBoneMass, GenderFemale, 1.6, 44, LevelLow},
		{"male muscle 160-170 band", MetricMuscleVolume, GenderMale, 45, 165, LevelStandard},
		{"male muscle >=170 band", MetricMuscleVolume, GenderMale, 45, 170, LevelLow},
		{"female muscle <150 band", MetricMuscleVolume, GenderFemale, 35, 149, LevelHigh},
		{"female muscle >=160 band", MetricMuscleVolume, GenderFemale, 40, 165, LevelStandard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			br, err := e.Classify(tt.metric, tt.gender, tt.value, tt.companion)
			require.NoError(t, err)
			assert.Equal(t, tt.want, br.Label)
		})
	}
}

func TestEngine_CalculateRisk_PairedMetricsNeedBothHalves(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.CalculateRisk(GenderMale, Metrics{BoneMass: f(3)})
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = e.CalculateRisk(GenderFemale, Metrics{Height: f(165)})
	assert.ErrorIs(t, err, ErrInsufficientData)

	res, err := e.CalculateRisk(GenderMale, Metrics{BMI: f(22), MuscleVolume: f(50)})
	require.NoError(t, err)
	assert.Equal(t, 1, res.MetricsUsed)
	assert.Equal(t, bmiStandard, res.Scores)
}

func TestEngine_CalculateRisk_Averaging(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.CalculateRisk(GenderMale, Metrics{
		BodyFat: f(15), // {5,6,3,2,8,2,4,4}
		BMI:     f(30), // {28,18,35,10,16,14,14,15}
	})
	require.NoError(t, err)

	want := Vector{Cardiac: 16.5, Kidney: 12, Diabetes: 19, Neurological: 6, Cancer: 12, COPD: 8, Mental: 9, Gastrointestinal: 9.5}
	assert.Equal(t, want, res.Scores)
	assert.Equal(t, 11.5, res.TotalRiskScore)
	assert.Equal(t, 88.5, res.WellnessScore)
	assert.Equal(t, 2, res.MetricsUsed)
}

func TestEngine_CalculateRisk_ScoresSumToHundred(t *testing.T) {
	e := newTestEngine(t)

	inputs := []Metrics{
		{BodyFat: f(28), BMI: f(31), BodyWater: f(48), BodyWeight: f(90), BoneMass: f(3.1)},
		{Height: f(175), MuscleVolume: f(52), BloodPressure: f(135), HeartRate: f(88)},
		{HRV: f(15), SpO2: f(93), RespirationRate: f(22)},
		{BodyFat: f(9), BMI: f(17), BodyWater: f(70), HRV: f(120), SpO2: f(99), RespirationRate: f(10)},
	}

	for _, g := range []Gender{GenderMale, GenderFemale} {
		for i, in := range inputs {
			res, err := e.CalculateRisk(g, in)
			require.NoError(t, err, "input %d", i)
			assert.InDelta(t, 100, res.WellnessScore+res.TotalRiskScore, 1e-9, "input %d", i)
		}
	}
}

func TestEngine_CalculateRisk_Errors(t *testing.T) {
	e := newTestEngine(t)

	t.Run("no metrics", func(t *testing.T) {
		res, err := e.CalculateRisk(GenderMale, Metrics{})
		assert.Nil(t, res)
		assert.True(t, errors.Is(err, ErrInsufficientData))
	})

	t.Run("invalid gender", func(t *testing.T) {
		_, err := e.CalculateRisk(Gender("other"), Metrics{BMI: f(22)})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "gender", verr.Field)
	})

	t.Run("non-finite value", func(t *testing.T) {
		_, err := e.CalculateRisk(GenderFemale, Metrics{HeartRate: f(math.NaN())})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "heartRate", verr.Field)
	})

	t.Run("unknown metric", func(t *testing.T) {
		_, err := e.Classify(Metric("glucose"), GenderMale, 5, 0)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestParseGender(t *testing.T) {
	g, err := ParseGender("  Female ")
	require.NoError(t, err)
	assert.Equal(t, GenderFemale, g)

	_, err = ParseGender("unknown")
	assert.Error(t, err)
}

func TestTables_AreOrderedAndClosed(t *testing.T) {
	require.NoError(t, newTableSet().check())

	broken := scale{upTo(10, LevelLow, bmiLow), upTo(5, LevelHigh, bmiHigh)}
	assert.Error(t, broken.check())

	open := scale{upTo(10, LevelLow, bmiLow)}
	assert.Error(t, open.check())
}
