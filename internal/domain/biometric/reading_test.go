package biometric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReading_SetAndValues(t *testing.T) {
	var r Reading

	require.True(t, r.Set(FieldWeight, 72.5))
	require.True(t, r.Set(FieldTrunkMuscle, 24))
	assert.False(t, r.Set(Field("glucose"), 5))

	require.NotNil(t, r.Weight)
	assert.Equal(t, 72.5, *r.Weight)

	assert.Equal(t, map[Field]float64{FieldWeight: 72.5, FieldTrunkMuscle: 24}, r.Values())
}

func TestReading_ValueSkipsNonFinite(t *testing.T) {
	nan := math.NaN()
	r := Reading{BMI: &nan}

	_, ok := r.Value(FieldBMI)
	assert.False(t, ok)

	_, ok = r.Value(FieldBodyFat)
	assert.False(t, ok)
}

func TestParseField(t *testing.T) {
	tests := []struct {
		raw  string
		want Field
		ok   bool
	}{
		{"bodyFat", FieldBodyFat, true},
		{" spo2 ", FieldSpO2, true},
		{"skeletal_muscle", FieldMuscleVolume, true},
		{"glucose", Field("glucose"), false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseField(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldRegistry(t *testing.T) {
	seen := make(map[Field]bool)
	for _, f := range Fields() {
		assert.False(t, seen[f], "duplicate field %s", f)
		seen[f] = true

		var r Reading
		require.True(t, r.Set(f, 1))
		assert.Len(t, r.Values(), 1, "field %s does not round through its slot", f)
	}
	for _, f := range DefaultGraphFields {
		assert.True(t, f.IsKnown(), "graph field %s", f)
	}
	assert.Len(t, DefaultGraphFields, 13)
}

func TestTimestampToDate(t *testing.T) {
	d := TimestampToDate(1_700_000_000)
	assert.Equal(t, int64(1_700_000_000_000), d.UnixMilli())
}
