package warmup

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrUnknownArchetype = errors.New("unknown warm-up archetype")
	ErrExerciseRequired = errors.New("exercise name or archetype required")
)

// Archetype is a category of warm-up ramp behavior, tied to equipment type.
type Archetype string

const (
	ArchetypeHeavyBarbell    Archetype = "heavy_barbell"
	ArchetypeHeavyDumbbell   Archetype = "heavy_dumbbell"
	ArchetypeMachineCompound Archetype = "machine_compound"
	ArchetypeBodyweight      Archetype = "bodyweight"
	ArchetypeIsolation       Archetype = "isolation"
	ArchetypeNone            Archetype = "none"
)

// Archetypes lists all known archetypes in display order.
var Archetypes = []Archetype{
	ArchetypeHeavyBarbell,
	ArchetypeHeavyDumbbell,
	ArchetypeMachineCompound,
	ArchetypeBodyweight,
	ArchetypeIsolation,
	ArchetypeNone,
}

// ParseArchetype accepts snake case ("heavy_barbell") and CamelCase ("HeavyBarbell") names.
func ParseArchetype(s string) (Archetype, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("_", "", "-", "", " ", "").Replace(normalized)
	for _, a := range Archetypes {
		if strings.ReplaceAll(string(a), "_", "") == normalized {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownArchetype, s)
}

func (a Archetype) Valid() bool {
	for _, known := range Archetypes {
		if a == known {
			return true
		}
	}
	return false
}

// minIncrement is the smallest loadable step for an archetype. Percent steps
// rounding to zero or below are clamped to it.
func (a Archetype) minIncrement() float64 {
	switch a {
	case ArchetypeHeavyDumbbell, ArchetypeIsolation:
		return 2.5
	default:
		return 5
	}
}

type StepKind string

const (
	StepKindPercent StepKind = "percent"
	StepKindLabel   StepKind = "label"
)

// AppliesTo tells whether a percent step is taken from the total working weight
// or, for bodyweight work, from the added weight only.
type AppliesTo string

const (
	AppliesToTotal AppliesTo = "total"
	AppliesToAdded AppliesTo = "added"
)

// StepSpec is one entry of an archetype's warm-up template, in ramp order.
type StepSpec struct {
	Kind       StepKind  `json:"kind" yaml:"kind"`
	Percent    float64   `json:"percent,omitempty" yaml:"percent,omitempty"`
	TargetReps string    `json:"targetReps" yaml:"target_reps"`
	Rest       string    `json:"rest" yaml:"rest"`
	AppliesTo  AppliesTo `json:"appliesTo,omitempty" yaml:"applies_to,omitempty"`
	Label      string    `json:"label,omitempty" yaml:"label,omitempty"`
	Note       string    `json:"note,omitempty" yaml:"note,omitempty"`
}

func (s StepSpec) Validate() error {
	switch s.Kind {
	case StepKindPercent:
		if math.IsNaN(s.Percent) || math.IsInf(s.Percent, 0) || s.Percent <= 0 || s.Percent > 1 {
			return fmt.Errorf("percent step: percent %v not in (0,1]", s.Percent)
		}
	case StepKindLabel:
		if strings.TrimSpace(s.Label) == "" {
			return errors.New("label step: empty label")
		}
	default:
		return fmt.Errorf("unknown step kind %q", s.Kind)
	}

	switch s.AppliesTo {
	case "", AppliesToTotal, AppliesToAdded:
	default:
		return fmt.Errorf("unknown appliesTo %q", s.AppliesTo)
	}

	return nil
}

// ExerciseConfig is the per-exercise warm-up configuration supplied by the data layer.
type ExerciseConfig struct {
	Archetype          Archetype `json:"archetype"`
	IsLowerBodyBarbell bool      `json:"isLowerBodyBarbell,omitempty"`
	// Deprecated: weighted bodyweight work is inferred from the working weight.
	// The generator ignores this flag.
	IsWeightedBodyweight bool       `json:"isWeightedBodyweight,omitempty"`
	OverrideSteps        []StepSpec `json:"overrideSteps,omitempty"`
}

// Step is one prescribed warm-up set.
type Step struct {
	Label       string  `json:"label"`
	WeightTotal float64 `json:"weightTotal"`
	Reps        string  `json:"reps"`
	Rest        string  `json:"rest"`
	Note        string  `json:"note,omitempty"`
}
