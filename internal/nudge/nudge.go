// Package nudge turns a reading that is over the reference standards into
// actionable prompts for the user.
package nudge

import "math"

const PlanCodeConditional = "conditionalPlan"

type Standards struct {
	Weight  float64
	BMI     float64
	BodyFat float64
}

func DefaultStandards() Standards {
	return Standards{Weight: 85, BMI: 22, BodyFat: 20}
}

// Reading is the subset of a body-composition sample the generator looks at.
type Reading struct {
	Weight  *float64
	BMI     *float64
	BodyFat *float64
}

type Nudge struct {
	Metric        string `json:"metric"`
	Message       string `json:"message"`
	Value         int    `json:"value"`
	Unit          string `json:"unit"`
	ActionMessage string `json:"actionMessage"`
	PlanCode      string `json:"planCode"`
}

type Generator struct {
	standards Standards
}

func NewGenerator(standards Standards) *Generator {
	return &Generator{standards: standards}
}

func (g *Generator) Standards() Standards {
	return g.standards
}

// Generate emits one nudge per metric strictly above its standard, in the order
// weight, BMI, body fat.
func (g *Generator) Generate(r Reading) []Nudge {
	nudges := make([]Nudge, 0, 3)

	if r.Weight != nil && *r.Weight > g.standards.Weight {
		nudges = append(nudges, Nudge{
			Metric:        "weight",
			Message:       "Your weight is above the recommended range",
			Value:         int(math.Round(*r.Weight)),
			Unit:          "kg",
			ActionMessage: "Start a guided plan to bring your weight back on track",
			PlanCode:      PlanCodeConditional,
		})
	}
	if r.BMI != nil && *r.BMI > g.standards.BMI {
		nudges = append(nudges, Nudge{
			Metric:        "bmi",
			Message:       "Your BMI is higher than the healthy standard",
			Value:         int(math.Round(*r.BMI)),
			Unit:          "kg/m²",
			ActionMessage: "Follow a balanced diet and activity plan to lower your BMI",
			PlanCode:      PlanCodeConditional,
		})
	}
	if r.BodyFat != nil && *r.BodyFat > g.standards.BodyFat {
		nudges = append(nudges, Nudge{
			Metric:        "bodyFat",
			Message:       "Your body fat percentage is above the recommended level",
			Value:         int(math.Round(*r.BodyFat)),
			Unit:          "%",
			ActionMessage: "Add strength training to reduce body fat",
			PlanCode:      PlanCodeConditional,
		})
	}

	return nudges
}
