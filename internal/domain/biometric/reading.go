package biometric

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale:
		return true
	}
	return false
}

// Source records how a reading entered the system.
type Source string

const (
	SourceManual Source = "manual"
	SourceDevice Source = "device"
)

func (s Source) IsValid() bool {
	switch s {
	case SourceManual, SourceDevice:
		return true
	}
	return false
}

// Reading is one body-composition / vitals sample. Every measurement is nullable:
// an absent value is never the same as zero.
type Reading struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt *time.Time `gorm:"index" json:"-"`

	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index:idx_readings_owner_time,priority:1" json:"userId"`
	ProfileID *uuid.UUID `gorm:"column:profile_id;type:uuid;index:idx_readings_owner_time,priority:2" json:"profileId,omitempty"`

	// Unix seconds as reported by the scale or the user.
	Timestamp       int64     `gorm:"column:timestamp;not null;index:idx_readings_owner_time,priority:3" json:"timestamp"`
	MeasurementDate time.Time `gorm:"column:measurement_date;not null" json:"measurementDate"`
	Gender          Gender    `gorm:"column:gender;type:varchar(10)" json:"gender,omitempty"`
	Source          Source    `gorm:"column:source;type:varchar(20);not null;default:'manual'" json:"source"`

	Weight          *float64 `gorm:"column:weight" json:"weight,omitempty"`
	Height          *float64 `gorm:"column:height" json:"height,omitempty"`
	BMI             *float64 `gorm:"column:bmi" json:"bmi,omitempty"`
	BodyFat         *float64 `gorm:"column:body_fat" json:"bodyFat,omitempty"`
	BodyWater       *float64 `gorm:"column:body_water" json:"bodyWater,omitempty"`
	BoneMass        *float64 `gorm:"column:bone_mass" json:"boneMass,omitempty"`
	MuscleVolume    *float64 `gorm:"column:muscle_volume" json:"muscleVolume,omitempty"`
	BloodPressure   *float64 `gorm:"column:blood_pressure" json:"bloodPressure,omitempty"`
	HeartRate       *float64 `gorm:"column:heart_rate" json:"heartRate,omitempty"`
	HRV             *float64 `gorm:"column:hrv" json:"hrv,omitempty"`
	SpO2            *float64 `gorm:"column:spo2" json:"spo2,omitempty"`
	RespirationRate *float64 `gorm:"column:respiration_rate" json:"respirationRate,omitempty"`

	SubcutaneousFat *float64 `gorm:"column:subcutaneous_fat" json:"subcutaneousFat,omitempty"`
	VisceralFat     *float64 `gorm:"column:visceral_fat" json:"visceralFat,omitempty"`
	MuscleRate      *float64 `gorm:"column:muscle_rate" json:"muscleRate,omitempty"`
	BMR             *float64 `gorm:"column:bmr" json:"bmr,omitempty"`
	MetabolicAge    *float64 `gorm:"column:metabolic_age" json:"metabolicAge,omitempty"`
	Protein         *float64 `gorm:"column:protein" json:"protein,omitempty"`
	FatFreeWeight   *float64 `gorm:"column:fat_free_weight" json:"fatFreeWeight,omitempty"`
	FatMass         *float64 `gorm:"column:fat_mass" json:"fatMass,omitempty"`
	LeanBodyMass    *float64 `gorm:"column:lean_body_mass" json:"leanBodyMass,omitempty"`
	WaterMass       *float64 `gorm:"column:water_mass" json:"waterMass,omitempty"`
	IdealWeight     *float64 `gorm:"column:ideal_weight" json:"idealWeight,omitempty"`
	BodyScore       *float64 `gorm:"column:body_score" json:"bodyScore,omitempty"`
	WaistHipRatio   *float64 `gorm:"column:waist_hip_ratio" json:"waistHipRatio,omitempty"`
	SMI             *float64 `gorm:"column:smi" json:"smi,omitempty"`

	LeftArmFat     *float64 `gorm:"column:left_arm_fat" json:"leftArmFat,omitempty"`
	RightArmFat    *float64 `gorm:"column:right_arm_fat" json:"rightArmFat,omitempty"`
	LeftLegFat     *float64 `gorm:"column:left_leg_fat" json:"leftLegFat,omitempty"`
	RightLegFat    *float64 `gorm:"column:right_leg_fat" json:"rightLegFat,omitempty"`
	TrunkFat       *float64 `gorm:"column:trunk_fat" json:"trunkFat,omitempty"`
	LeftArmMuscle  *float64 `gorm:"column:left_arm_muscle" json:"leftArmMuscle,omitempty"`
	RightArmMuscle *float64 `gorm:"column:right_arm_muscle" json:"rightArmMuscle,omitempty"`
	LeftLegMuscle  *float64 `gorm:"column:left_leg_muscle" json:"leftLegMuscle,omitempty"`
	RightLegMuscle *float64 `gorm:"column:right_leg_muscle" json:"rightLegMuscle,omitempty"`
	TrunkMuscle    *float64 `gorm:"column:trunk_muscle" json:"trunkMuscle,omitempty"`

	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid;not null" json:"-"`
}

func (Reading) TableName() string {
	return "health.readings"
}

// TimestampToDate converts a unix-seconds timestamp to the measurement date.
func TimestampToDate(ts int64) time.Time {
	return time.Unix(ts, 0)
}

func (r *Reading) Time() time.Time {
	return TimestampToDate(r.Timestamp)
}

// Value returns the field's value when it is present and finite.
func (r *Reading) Value(f Field) (float64, bool) {
	ref, ok := fieldIndex[f]
	if !ok {
		return 0, false
	}
	p := *ref.slot(r)
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return 0, false
	}
	return *p, true
}

// Set stores v in the named field. It reports false for unknown fields.
func (r *Reading) Set(f Field, v float64) bool {
	ref, ok := fieldIndex[f]
	if !ok {
		return false
	}
	*ref.slot(r) = &v
	return true
}

// Values collects every present, finite measurement keyed by field.
func (r *Reading) Values() map[Field]float64 {
	out := make(map[Field]float64)
	for _, ref := range fieldRefs {
		if v, ok := r.Value(ref.name); ok {
			out[ref.name] = v
		}
	}
	return out
}

type CreateReadingCommand struct {
	UserID    uuid.UUID
	ProfileID *uuid.UUID
	Timestamp int64
	Gender    Gender
	Source    Source
	Metrics   map[string]float64
	CreatedBy uuid.UUID
}

type ListReadingsQuery struct {
	UserID    uuid.UUID
	ProfileID *uuid.UUID
	From      *time.Time
	To        *time.Time
	Page      int
	PageSize  int
}

type PagedReadings struct {
	Readings   []*Reading
	TotalCount int64
	Page       int
	PageSize   int
	TotalPages int
}
