package biometric

import (
	"strings"
)

// Field names a numeric body-composition or vital-sign measurement.
type Field string

const (
	FieldWeight          Field = "weight"
	FieldHeight          Field = "height"
	FieldBMI             Field = "bmi"
	FieldBodyFat         Field = "bodyFat"
	FieldBodyWater       Field = "bodyWater"
	FieldBoneMass        Field = "boneMass"
	FieldMuscleVolume    Field = "muscleVolume"
	FieldBloodPressure   Field = "bloodPressure"
	FieldHeartRate       Field = "heartRate"
	FieldHRV             Field = "hrv"
	FieldSpO2            Field = "spo2"
	FieldRespirationRate Field = "respirationRate"

	FieldSubcutaneousFat Field = "subcutaneousFat"
	FieldVisceralFat     Field = "visceralFat"
	FieldMuscleRate      Field = "muscleRate"
	FieldBMR             Field = "bmr"
	FieldMetabolicAge    Field = "metabolicAge"
	FieldProtein         Field = "protein"
	FieldFatFreeWeight   Field = "fatFreeWeight"
	FieldFatMass         Field = "fatMass"
	FieldLeanBodyMass    Field = "leanBodyMass"
	FieldWaterMass       Field = "waterMass"
	FieldIdealWeight     Field = "idealWeight"
	FieldBodyScore       Field = "bodyScore"
	FieldWaistHipRatio   Field = "waistHipRatio"
	FieldSMI             Field = "smi"
	FieldLeftArmFat      Field = "leftArmFat"
	FieldRightArmFat     Field = "rightArmFat"
	FieldLeftLegFat      Field = "leftLegFat"
	FieldRightLegFat     Field = "rightLegFat"
	FieldTrunkFat        Field = "trunkFat"
	FieldLeftArmMuscle   Field = "leftArmMuscle"
	FieldRightArmMuscle  Field = "rightArmMuscle"
	FieldLeftLegMuscle   Field = "leftLegMuscle"
	FieldRightLegMuscle  Field = "rightLegMuscle"
	FieldTrunkMuscle     Field = "trunkMuscle"
)

// fieldRef binds a field name to its storage slot on a Reading.
type fieldRef struct {
	name Field
	slot func(r *Reading) **float64
}

var fieldRefs = []fieldRef{
	{FieldWeight, func(r *Reading) **float64 { return &r.Weight }},
	{FieldHeight, func(r *Reading) **float64 { return &r.Height }},
	{FieldBMI, func(r *Reading) **float64 { return &r.BMI }},
	{FieldBodyFat, func(r *Reading) **float64 { return &r.BodyFat }},
	{FieldBodyWater, func(r *Reading) **float64 { return &r.BodyWater }},
	{FieldBoneMass, func(r *Reading) **float64 { return &r.BoneMass }},
	{FieldMuscleVolume, func(r *Reading) **float64 { return &r.MuscleVolume }},
	{FieldBloodPressure, func(r *Reading) **float64 { return &r.BloodPressure }},
	{FieldHeartRate, func(r *Reading) **float64 { return &r.HeartRate }},
	{FieldHRV, func(r *Reading) **float64 { return &r.HRV }},
	{FieldSpO2, func(r *Reading) **float64 { return &r.SpO2 }},
	{FieldRespirationRate, func(r *Reading) **float64 { return &r.RespirationRate }},
	{FieldSubcutaneousFat, func(r *Reading) **float64 { return &r.SubcutaneousFat }},
	{FieldVisceralFat, func(r *Reading) **float64 { return &r.VisceralFat }},
	{FieldMuscleRate, func(r *Reading) **float64 { return &r.MuscleRate }},
	{FieldBMR, func(r *Reading) **float64 { return &r.BMR }},
	{FieldMetabolicAge, func(r *Reading) **float64 { return &r.MetabolicAge }},
	{FieldProtein, func(r *Reading) **float64 { return &r.Protein }},
	{FieldFatFreeWeight, func(r *Reading) **float64 { return &r.FatFreeWeight }},
	{FieldFatMass, func(r *Reading) **float64 { return &r.FatMass }},
	{FieldLeanBodyMass, func(r *Reading) **float64 { return &r.LeanBodyMass }},
	{FieldWaterMass, func(r *Reading) **float64 { return &r.WaterMass }},
	{FieldIdealWeight, func(r *Reading) **float64 { return &r.IdealWeight }},
	{FieldBodyScore, func(r *Reading) **float64 { return &r.BodyScore }},
	{FieldWaistHipRatio, func(r *Reading) **float64 { return &r.WaistHipRatio }},
	{FieldSMI, func(r *Reading) **float64 { return &r.SMI }},
	{FieldLeftArmFat, func(r *Reading) **float64 { return &r.LeftArmFat }},
	{FieldRightArmFat, func(r *Reading) **float64 { return &r.RightArmFat }},
	{FieldLeftLegFat, func(r *Reading) **float64 { return &r.LeftLegFat }},
	{FieldRightLegFat, func(r *Reading) **float64 { return &r.RightLegFat }},
	{FieldTrunkFat, func(r *Reading) **float64 { return &r.TrunkFat }},
	{FieldLeftArmMuscle, func(r *Reading) **float64 { return &r.LeftArmMuscle }},
	{FieldRightArmMuscle, func(r *Reading) **float64 { return &r.RightArmMuscle }},
	{FieldLeftLegMuscle, func(r *Reading) **float64 { return &r.LeftLegMuscle }},
	{FieldRightLegMuscle, func(r *Reading) **float64 { return &r.RightLegMuscle }},
	{FieldTrunkMuscle, func(r *Reading) **float64 { return &r.TrunkMuscle }},
}

var fieldIndex = func() map[Field]fieldRef {
	idx := make(map[Field]fieldRef, len(fieldRefs))
	for _, ref := range fieldRefs {
		idx[ref.name] = ref
	}
	return idx
}()

// Legacy device payloads report muscle volume under a different key.
var fieldAliases = map[string]Field{
	"skeletal_muscle": FieldMuscleVolume,
	"skeletalMuscle":  FieldMuscleVolume,
}

// DefaultGraphFields are plotted when a caller does not ask for specific fields.
var DefaultGraphFields = []Field{
	FieldWeight,
	FieldBMI,
	FieldBodyFat,
	FieldBodyWater,
	FieldBoneMass,
	FieldMuscleVolume,
	FieldVisceralFat,
	FieldSubcutaneousFat,
	FieldBMR,
	FieldProtein,
	FieldMetabolicAge,
	FieldMuscleRate,
	FieldFatFreeWeight,
}

// Fields returns every known field in declaration order.
func Fields() []Field {
	out := make([]Field, len(fieldRefs))
	for i, ref := range fieldRefs {
		out[i] = ref.name
	}
	return out
}

func (f Field) IsKnown() bool {
	_, ok := fieldIndex[f]
	return ok
}

// ParseField resolves a field name or one of its aliases.
func ParseField(raw string) (Field, bool) {
	name := strings.TrimSpace(raw)
	if alias, ok := fieldAliases[name]; ok {
		return alias, true
	}
	f := Field(name)
	return f, f.IsKnown()
}
