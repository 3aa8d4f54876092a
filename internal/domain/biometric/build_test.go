package biometric

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReading(t *testing.T) {
	user := uuid.New()
	r, err := NewReading(&CreateReadingCommand{
		UserID:    user,
		Timestamp: 1_700_000_000,
		Gender:    GenderFemale,
		Metrics:   map[string]float64{"weight": 61.2, "skeletal_muscle": 24, "bodyFat": 27.5},
		CreatedBy: user,
	})
	require.NoError(t, err)

	assert.Equal(t, SourceManual, r.Source)
	assert.Equal(t, int64(1_700_000_000), r.MeasurementDate.Unix())
	assert.Equal(t, map[Field]float64{
		FieldWeight:       61.2,
		FieldMuscleVolume: 24,
		FieldBodyFat:      27.5,
	}, r.Values())
}

func TestNewReading_CollectsEveryProblem(t *testing.T) {
	_, err := NewReading(&CreateReadingCommand{
		Timestamp: 0,
		Gender:    "other",
		Metrics:   map[string]float64{"wingspan": 180, "bmi": math.NaN(), "weight": -1},
	})
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrInvalidTimestamp)
	assert.ErrorIs(t, err, ErrInvalidGender)
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Len(t, err.(interface{ Unwrap() []error }).Unwrap(), 5)
}

func TestNewReading_Empty(t *testing.T) {
	_, err := NewReading(&CreateReadingCommand{Timestamp: 1})
	assert.ErrorIs(t, err, ErrEmptyReading)
}

func TestNewReading_TimestampRange(t *testing.T) {
	tests := []struct {
		name string
		ts   int64
		ok   bool
	}{
		{"seconds", 1_700_000_000, true},
		{"last encodable second", 253402300799, true},
		{"milliseconds", 1_700_000_000_000, false},
		{"overflowing", 9_300_000_000_000_000, false},
		{"negative", -5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReading(&CreateReadingCommand{
				Timestamp: tt.ts,
				Metrics:   map[string]float64{"weight": 80},
			})
			if !tt.ok {
				assert.ErrorIs(t, err, ErrInvalidTimestamp)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ts, r.MeasurementDate.Unix())
			_, err = json.Marshal(r)
			assert.NoError(t, err)
		})
	}
}

func TestNewReading_NormalisesGender(t *testing.T) {
	r, err := NewReading(&CreateReadingCommand{
		Timestamp: 1_700_000_000,
		Gender:    " Male ",
		Metrics:   map[string]float64{"weight": 80},
	})
	require.NoError(t, err)
	assert.Equal(t, GenderMale, r.Gender)
}
