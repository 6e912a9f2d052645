package warmup

import (
	"strings"
)

// Equipment is the explicit equipment tag an exercise record may carry.
// Untagged (legacy) records fall back to name keywords.
type Equipment string

const (
	EquipmentUnknown    Equipment = ""
	EquipmentBarbell    Equipment = "barbell"
	EquipmentDumbbell   Equipment = "dumbbell"
	EquipmentKettlebell Equipment = "kettlebell"
	EquipmentMachine    Equipment = "machine"
	EquipmentSmith      Equipment = "smith"
	EquipmentCable      Equipment = "cable"
	EquipmentBodyweight Equipment = "bodyweight"
	EquipmentNone       Equipment = "none"
)

func ParseEquipment(s string) (Equipment, bool) {
	e := Equipment(strings.ToLower(strings.TrimSpace(s)))
	switch e {
	case EquipmentUnknown, EquipmentBarbell, EquipmentDumbbell, EquipmentKettlebell,
		EquipmentMachine, EquipmentSmith, EquipmentCable, EquipmentBodyweight, EquipmentNone:
		return e, true
	default:
		return EquipmentUnknown, false
	}
}

type Classification struct {
	Archetype          Archetype `json:"archetype"`
	IsLowerBodyBarbell bool      `json:"isLowerBodyBarbell"`
	// Always false here, the generator infers weighted bodyweight work from the working weight.
	IsWeightedBodyweight bool `json:"isWeightedBodyweight"`
	// FromName is set when the archetype came from name keywords rather than an equipment tag.
	FromName bool `json:"fromName"`
}

// Exercise is the subset of an exercise record needed to pick a warm-up archetype.
type Exercise struct {
	Name      string    `json:"name"`
	Equipment Equipment `json:"equipment,omitempty"`
	// Isolation marks single-joint movements (curls, raises, extensions).
	Isolation bool `json:"isolation,omitempty"`
	LowerBody bool `json:"lowerBody,omitempty"`
}

type keywordRule struct {
	archetype Archetype
	keywords  []string
}

// order matters: "Dumbbell Squat" is a dumbbell lift, not a barbell one
var keywordRules = []keywordRule{
	{ArchetypeHeavyDumbbell, []string{"dumbbell", "db"}},
	{ArchetypeBodyweight, []string{"pull-up", "chin-up", "dip", "push-up", "leg raise"}},
	{ArchetypeHeavyBarbell, []string{"barbell", "squat", "deadlift", "rdl", "ohp", "bench"}},
	{ArchetypeMachineCompound, []string{"machine", "smith", "leg press", "chest press", "seated row", "shoulder press", "hack squat"}},
}

var lowerBodyBarbellKeywords = []string{"squat", "deadlift", "rdl"}

// Classify infers the archetype from the exercise name alone.
func Classify(name string) Classification {
	lower := strings.ToLower(name)
	for _, rule := range keywordRules {
		if !containsAny(lower, rule.keywords) {
			continue
		}
		c := Classification{
			Archetype: rule.archetype,
			FromName:  true,
		}
		if rule.archetype == ArchetypeHeavyBarbell {
			c.IsLowerBodyBarbell = containsAny(lower, lowerBodyBarbellKeywords)
		}
		return c
	}

	return Classification{
		Archetype: ArchetypeIsolation,
		FromName:  true,
	}
}

// ClassifyExercise uses the equipment tag when present and falls back to
// Classify for untagged records.
func ClassifyExercise(ex Exercise) Classification {
	if ex.Equipment == EquipmentUnknown {
		return Classify(ex.Name)
	}

	if ex.Equipment == EquipmentNone {
		return Classification{Archetype: ArchetypeNone}
	}
	if ex.Isolation && ex.Equipment != EquipmentBodyweight {
		return Classification{Archetype: ArchetypeIsolation}
	}

	switch ex.Equipment {
	case EquipmentBarbell:
		return Classification{
			Archetype:          ArchetypeHeavyBarbell,
			IsLowerBodyBarbell: ex.LowerBody || containsAny(strings.ToLower(ex.Name), lowerBodyBarbellKeywords),
		}
	case EquipmentDumbbell, EquipmentKettlebell:
		return Classification{Archetype: ArchetypeHeavyDumbbell}
	case EquipmentMachine, EquipmentSmith:
		return Classification{Archetype: ArchetypeMachineCompound}
	case EquipmentBodyweight:
		return Classification{Archetype: ArchetypeBodyweight}
	case EquipmentCable:
		return Classification{Archetype: ArchetypeIsolation}
	default:
		return Classify(ex.Name)
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
