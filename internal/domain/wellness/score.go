package wellness

import (
	"time"

	"github.com/google/uuid"
)

// Nudge mirrors the generator's output so score snapshots stay readable even if the
// messaging changes later.
type Nudge struct {
	Metric        string `json:"metric"`
	Message       string `json:"message"`
	Value         int    `json:"value"`
	Unit          string `json:"unit"`
	ActionMessage string `json:"actionMessage"`
	PlanCode      string `json:"planCode"`
}

// Score is an immutable snapshot of a computed risk profile for one reading.
type Score struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ComputedAt time.Time `gorm:"column:computed_at;autoCreateTime;index" json:"computedAt"`

	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index" json:"userId"`
	ProfileID *uuid.UUID `gorm:"column:profile_id;type:uuid;index" json:"profileId,omitempty"`
	ReadingID uuid.UUID  `gorm:"column:reading_id;type:uuid;not null;index" json:"readingId"`

	Cardiac          float64 `gorm:"column:cardiac" json:"cardiac"`
	Kidney           float64 `gorm:"column:kidney" json:"kidney"`
	Diabetes         float64 `gorm:"column:diabetes" json:"diabetes"`
	Neurological     float64 `gorm:"column:neurological" json:"neurological"`
	Cancer           float64 `gorm:"column:cancer" json:"cancer"`
	COPD             float64 `gorm:"column:copd" json:"copd"`
	Mental           float64 `gorm:"column:mental" json:"mental"`
	Gastrointestinal float64 `gorm:"column:gastrointestinal" json:"gastrointestinal"`

	TotalRiskScore float64 `gorm:"column:total_risk_score;not null" json:"totalRiskScore"`
	WellnessScore  float64 `gorm:"column:wellness_score;not null" json:"wellnessScore"`
	MetricsUsed    int     `gorm:"column:metrics_used;not null" json:"metricsUsed"`

	Nudges []Nudge `gorm:"column:nudges;type:jsonb;serializer:json" json:"nudges"`

	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid;not null" json:"-"`
}

func (Score) TableName() string {
	return "health.wellness_scores"
}

type ListScoresQuery struct {
	UserID    uuid.UUID
	ProfileID *uuid.UUID
	Page      int
	PageSize  int
}

type PagedScores struct {
	Scores     []*Score
	TotalCount int64
	Page       int
	PageSize   int
	TotalPages int
}
