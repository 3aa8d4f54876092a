package risk

import (
	"fmt"
	"math"
	"strings"
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

// ParseGender normalises case and surrounding whitespace before validating.
func ParseGender(raw string) (Gender, error) {
	g := Gender(strings.ToLower(strings.TrimSpace(raw)))
	if !g.IsValid() {
		return "", &ValidationError{Field: "gender", Reason: fmt.Sprintf("%q is not one of male, female", raw)}
	}
	return g, nil
}

// Vector holds a risk contribution (0-100) for each of the eight tracked disease categories.
type Vector struct {
	Cardiac          float64 `json:"cardiac"`
	Kidney           float64 `json:"kidney"`
	Diabetes         float64 `json:"diabetes"`
	Neurological     float64 `json:"neurological"`
	Cancer           float64 `json:"cancer"`
	COPD             float64 `json:"copd"`
	Mental           float64 `json:"mental"`
	Gastrointestinal float64 `json:"gastrointestinal"`
}

func (v Vector) Add(o Vector) Vector {
	return Vector{
		Cardiac:          v.Cardiac + o.Cardiac,
		Kidney:           v.Kidney + o.Kidney,
		Diabetes:         v.Diabetes + o.Diabetes,
		Neurological:     v.Neurological + o.Neurological,
		Cancer:           v.Cancer + o.Cancer,
		COPD:             v.COPD + o.COPD,
		Mental:           v.Mental + o.Mental,
		Gastrointestinal: v.Gastrointestinal + o.Gastrointestinal,
	}
}

func (v Vector) Scale(f float64) Vector {
	return Vector{
		Cardiac:          v.Cardiac * f,
		Kidney:           v.Kidney * f,
		Diabetes:         v.Diabetes * f,
		Neurological:     v.Neurological * f,
		Cancer:           v.Cancer * f,
		COPD:             v.COPD * f,
		Mental:           v.Mental * f,
		Gastrointestinal: v.Gastrointestinal * f,
	}
}

// Mean is the unweighted average over the eight categories.
func (v Vector) Mean() float64 {
	return (v.Cardiac + v.Kidney + v.Diabetes + v.Neurological +
		v.Cancer + v.COPD + v.Mental + v.Gastrointestinal) / 8
}

func (v Vector) round() Vector {
	return Vector{
		Cardiac:          round1(v.Cardiac),
		Kidney:           round1(v.Kidney),
		Diabetes:         round1(v.Diabetes),
		Neurological:     round1(v.Neurological),
		Cancer:           round1(v.Cancer),
		COPD:             round1(v.COPD),
		Mental:           round1(v.Mental),
		Gastrointestinal: round1(v.Gastrointestinal),
	}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
