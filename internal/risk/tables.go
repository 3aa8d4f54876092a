package risk

import (
	"fmt"
	"math"
)

// Bracket labels shared by the calibration tables.
const (
	LevelLow      = "low"
	LevelStandard = "standard"
	LevelHigh     = "high"
	LevelVeryHigh = "very_high"
	LevelVeryLow  = "very_low"

	LevelNormal   = "normal"
	LevelElevated = "elevated"
	LevelStage1   = "stage_1"
	LevelStage2   = "stage_2"
	LevelCritical = "critical"
)

var inf = math.Inf(1)

// Bracket is one calibrated range of a metric together with the risk vector it contributes.
type Bracket struct {
	Label  string `json:"label"`
	Vector Vector `json:"vector"`
	upper  float64
}

// scale is an ordered list of brackets. A value falls into the first bracket whose
// upper bound it is strictly below; the final bracket is unbounded.
type scale []Bracket

func (s scale) classify(v float64) Bracket {
	for _, b := range s {
		if v < b.upper {
			return b
		}
	}
	return s[len(s)-1]
}

// band selects a scale by a companion measurement (body weight for bone mass, height for muscle).
type band struct {
	upper float64
	scale scale
}

type bandedScale []band

func (bs bandedScale) classify(companion, v float64) Bracket {
	for _, b := range bs {
		if companion < b.upper {
			return b.scale.classify(v)
		}
	}
	return bs[len(bs)-1].scale.classify(v)
}

type tableSet struct {
	bodyFat      map[Gender]scale
	bodyWater    map[Gender]scale
	boneMass     map[Gender]bandedScale
	muscleVolume map[Gender]bandedScale

	bmi             scale
	bloodPressure   scale
	heartRate       scale
	hrv             scale
	spo2            scale
	respirationRate scale
}

// Calibration vectors, in category order
// cardiac, kidney, diabetes, neurological, cancer, copd, mental, gastrointestinal.
var (
	bodyFatLow      = Vector{12, 10, 6, 8, 10, 6, 14, 12}
	bodyFatStandard = Vector{5, 6, 3, 2, 8, 2, 4, 4}
	bodyFatHigh     = Vector{22, 14, 25, 8, 15, 10, 12, 12}
	bodyFatVeryHigh = Vector{38, 22, 42, 12, 24, 18, 18, 20}

	bmiLow      = Vector{15, 8, 5, 10, 12, 10, 18, 16}
	bmiStandard = Vector{4, 4, 4, 3, 6, 3, 5, 4}
	bmiHigh     = Vector{28, 18, 35, 10, 16, 14, 14, 15}

	bodyWaterLow      = Vector{14, 20, 10, 10, 6, 6, 8, 14}
	bodyWaterStandard = Vector{4, 4, 3, 3, 4, 2, 3, 3}
	bodyWaterHigh     = Vector{10, 12, 4, 6, 4, 4, 4, 6}

	boneMassLow      = Vector{8, 6, 4, 6, 6, 4, 6, 6}
	boneMassStandard = Vector{3, 3, 2, 2, 3, 2, 2, 2}
	boneMassHigh     = Vector{5, 8, 3, 3, 4, 2, 2, 3}

	muscleLow      = Vector{16, 10, 18, 10, 8, 8, 12, 8}
	muscleStandard = Vector{4, 3, 3, 2, 4, 2, 3, 3}
	muscleHigh     = Vector{3, 5, 2, 2, 3, 2, 2, 2}

	pressureLow      = Vector{14, 10, 4, 12, 2, 4, 8, 6}
	pressureNormal   = Vector{3, 3, 2, 2, 2, 2, 2, 2}
	pressureElevated = Vector{12, 8, 6, 6, 3, 3, 5, 3}
	pressureStage1   = Vector{24, 16, 10, 12, 4, 5, 8, 4}
	pressureStage2   = Vector{40, 28, 16, 22, 6, 8, 12, 6}

	heartRateLow      = Vector{12, 4, 3, 8, 2, 3, 4, 3}
	heartRateNormal   = Vector{3, 2, 2, 2, 2, 2, 2, 2}
	heartRateElevated = Vector{12, 6, 8, 4, 4, 6, 10, 6}
	heartRateHigh     = Vector{30, 10, 14, 8, 6, 12, 18, 10}

	hrvVeryLow = Vector{30, 12, 18, 16, 8, 10, 28, 14}
	hrvLow     = Vector{14, 6, 8, 8, 4, 5, 14, 8}
	hrvNormal  = Vector{4, 3, 3, 3, 3, 2, 4, 3}
	hrvHigh    = Vector{6, 3, 2, 3, 3, 2, 3, 3}

	spo2Critical = Vector{36, 18, 10, 28, 10, 42, 16, 8}
	spo2Low      = Vector{18, 8, 6, 12, 5, 24, 8, 5}
	spo2Normal   = Vector{3, 2, 2, 2, 2, 2, 2, 2}

	respirationLow      = Vector{12, 6, 4, 14, 4, 14, 8, 4}
	respirationNormal   = Vector{3, 3, 2, 2, 2, 2, 2, 2}
	respirationElevated = Vector{14, 8, 6, 8, 4, 20, 10, 6}
	respirationHigh     = Vector{26, 14, 10, 14, 6, 36, 16, 10}
)

func upTo(upper float64, label string, v Vector) Bracket {
	return Bracket{Label: label, Vector: v, upper: upper}
}

func threeWay(low, high float64, lowV, stdV, highV Vector) scale {
	return scale{
		upTo(low, LevelLow, lowV),
		upTo(high, LevelStandard, stdV),
		upTo(inf, LevelHigh, highV),
	}
}

func bodyFatScale(standardFrom, highFrom, veryHighFrom float64) scale {
	return scale{
		upTo(standardFrom, LevelLow, bodyFatLow),
		upTo(highFrom, LevelStandard, bodyFatStandard),
		upTo(veryHighFrom, LevelHigh, bodyFatHigh),
		upTo(inf, LevelVeryHigh, bodyFatVeryHigh),
	}
}

func boneScale(low, high float64) scale {
	return threeWay(low, high, boneMassLow, boneMassStandard, boneMassHigh)
}

func muscleScale(low, high float64) scale {
	return threeWay(low, high, muscleLow, muscleStandard, muscleHigh)
}

func newTableSet() *tableSet {
	return &tableSet{
		bodyFat: map[Gender]scale{
			GenderMale:   bodyFatScale(10, 21, 26),
			GenderFemale: bodyFatScale(20, 31, 36),
		},
		bodyWater: map[Gender]scale{
			GenderMale:   threeWay(50, 65, bodyWaterLow, bodyWaterStandard, bodyWaterHigh),
			GenderFemale: threeWay(45, 60, bodyWaterLow, bodyWaterStandard, bodyWaterHigh),
		},
		// Banded by body weight (kg).
		boneMass: map[Gender]bandedScale{
			GenderMale: {
				{upper: 60, scale: boneScale(2.3, 2.7)},
				{upper: 75, scale: boneScale(2.7, 3.1)},
				{upper: inf, scale: boneScale(3.0, 3.4)},
			},
			GenderFemale: {
				{upper: 45, scale: boneScale(1.7, 2.1)},
				{upper: 60, scale: boneScale(2.0, 2.4)},
				{upper: inf, scale: boneScale(2.3, 2.7)},
			},
		},
		// Banded by height (cm).
		muscleVolume: map[Gender]bandedScale{
			GenderMale: {
				{upper: 160, scale: muscleScale(38, 46.5)},
				{upper: 170, scale: muscleScale(44, 52.5)},
				{upper: inf, scale: muscleScale(49.5, 59.5)},
			},
			GenderFemale: {
				{upper: 150, scale: muscleScale(29, 34.5)},
				{upper: 160, scale: muscleScale(32.9, 37.5)},
				{upper: inf, scale: muscleScale(36.5, 42.5)},
			},
		},
		bmi: threeWay(18.5, 26, bmiLow, bmiStandard, bmiHigh),
		// Systolic, mmHg.
		bloodPressure: scale{
			upTo(90, LevelLow, pressureLow),
			upTo(120, LevelNormal, pressureNormal),
			upTo(130, LevelElevated, pressureElevated),
			upTo(140, LevelStage1, pressureStage1),
			upTo(inf, LevelStage2, pressureStage2),
		},
		heartRate: scale{
			upTo(60, LevelLow, heartRateLow),
			upTo(80, LevelNormal, heartRateNormal),
			upTo(100, LevelElevated, heartRateElevated),
			upTo(inf, LevelHigh, heartRateHigh),
		},
		// RMSSD, ms.
		hrv: scale{
			upTo(20, LevelVeryLow, hrvVeryLow),
			upTo(50, LevelLow, hrvLow),
			upTo(100, LevelNormal, hrvNormal),
			upTo(inf, LevelHigh, hrvHigh),
		},
		spo2: scale{
			upTo(90, LevelCritical, spo2Critical),
			upTo(95, LevelLow, spo2Low),
			upTo(inf, LevelNormal, spo2Normal),
		},
		respirationRate: scale{
			upTo(12, LevelLow, respirationLow),
			upTo(20, LevelNormal, respirationNormal),
			upTo(25, LevelElevated, respirationElevated),
			upTo(inf, LevelHigh, respirationHigh),
		},
	}
}

func (s scale) check() error {
	if len(s) == 0 {
		return fmt.Errorf("empty scale")
	}
	for i := 1; i < len(s); i++ {
		if s[i].upper <= s[i-1].upper {
			return fmt.Errorf("bracket %q bound %v does not increase", s[i].Label, s[i].upper)
		}
	}
	if !math.IsInf(s[len(s)-1].upper, 1) {
		return fmt.Errorf("last bracket %q is bounded", s[len(s)-1].Label)
	}
	return nil
}

func (bs bandedScale) check() error {
	for i, bd := range bs {
		if i > 0 && bd.upper <= bs[i-1].upper {
			return fmt.Errorf("band %d bound %v does not increase", i, bd.upper)
		}
		if err := bd.scale.check(); err != nil {
			return fmt.Errorf("band %d: %w", i, err)
		}
	}
	if len(bs) == 0 || !math.IsInf(bs[len(bs)-1].upper, 1) {
		return fmt.Errorf("last band is bounded")
	}
	return nil
}

// check verifies every table is ordered and closed so classification is total.
func (t *tableSet) check() error {
	plain := map[Metric]scale{
		MetricBMI:             t.bmi,
		MetricBloodPressure:   t.bloodPressure,
		MetricHeartRate:       t.heartRate,
		MetricHRV:             t.hrv,
		MetricSpO2:            t.spo2,
		MetricRespirationRate: t.respirationRate,
	}
	for m, s := range plain {
		if err := s.check(); err != nil {
			return fmt.Errorf("%s: %w", m, err)
		}
	}
	for _, g := range []Gender{GenderMale, GenderFemale} {
		if err := t.bodyFat[g].check(); err != nil {
			return fmt.Errorf("%s/%s: %w", MetricBodyFat, g, err)
		}
		if err := t.bodyWater[g].check(); err != nil {
			return fmt.Errorf("%s/%s: %w", MetricBodyWater, g, err)
		}
		if err := t.boneMass[g].check(); err != nil {
			return fmt.Errorf("%s/%s: %w", MetricBoneMass, g, err)
		}
		if err := t.muscleVolume[g].check(); err != nil {
			return fmt.Errorf("%s/%s: %w", MetricMuscleVolume, g, err)
		}
	}
	return nil
}
