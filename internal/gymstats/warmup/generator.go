package warmup

import (
	"math"
	"strconv"

	"github.com/Dalmiro47/GymTrackerv2-sub001/pkg"
)

const (
	emptyBarWeight = 20.0
	emptyBarLabel  = "Empty Bar"
	emptyBarReps   = "10-15"
	emptyBarRest   = "45s"

	assistedLabel = "Light/assisted"
	assistedReps  = "10-12"
	assistedRest  = "45s"
)

// Generator turns a working weight into a warm-up ramp using a template catalog.
// It holds no mutable state and is safe for concurrent use.
type Generator struct {
	catalog *Catalog
}

func NewGenerator(catalog *Catalog) *Generator {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Generator{
		catalog: catalog,
	}
}

func (g *Generator) Catalog() *Catalog {
	return g.catalog
}

var defaultGenerator = NewGenerator(nil)

// Compute runs the default catalog generator.
func Compute(cfg ExerciseConfig, workingWeight float64) []Step {
	return defaultGenerator.Compute(cfg, workingWeight)
}

// Compute returns the warm-up sets leading up to workingWeight. Every returned
// step is lighter than workingWeight, except for unweighted bodyweight work
// (bodyweight archetype at working weight 0) where nothing is filtered.
// Unknown archetypes, empty or malformed templates and non-finite working
// weights yield an empty list.
func (g *Generator) Compute(cfg ExerciseConfig, workingWeight float64) []Step {
	steps := []Step{}

	archetype := cfg.Archetype
	if archetype == ArchetypeNone || !archetype.Valid() {
		return steps
	}
	if math.IsNaN(workingWeight) || math.IsInf(workingWeight, 0) {
		return steps
	}

	specs := cfg.OverrideSteps
	if len(specs) == 0 {
		var ok bool
		specs, ok = g.catalog.Steps(archetype)
		if !ok {
			return steps
		}
	}
	if len(specs) == 0 {
		return steps
	}
	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return steps
		}
	}

	minIncrement := archetype.minIncrement()
	unweightedBodyweight := archetype == ArchetypeBodyweight && workingWeight == 0

	if archetype == ArchetypeHeavyBarbell && cfg.IsLowerBodyBarbell {
		steps = append(steps, Step{
			Label:       emptyBarLabel,
			WeightTotal: emptyBarWeight,
			Reps:        emptyBarReps,
			Rest:        emptyBarRest,
		})
	}

	for _, spec := range specs {
		switch spec.Kind {
		case StepKindLabel:
			if unweightedBodyweight {
				steps = append(steps, Step{
					Label: assistedLabel,
					Reps:  assistedReps,
					Rest:  assistedRest,
					Note:  spec.Note,
				})
				continue
			}
			steps = append(steps, Step{
				Label: spec.Label,
				Reps:  spec.TargetReps,
				Rest:  spec.Rest,
				Note:  spec.Note,
			})

		case StepKindPercent:
			note := spec.Note
			if archetype == ArchetypeBodyweight && spec.AppliesTo == AppliesToAdded {
				// working weight is the added load here
				if workingWeight <= 0 {
					continue
				}
				note = joinNotes(note, "of +"+pkg.FormatWeight(workingWeight)+" kg added")
			}

			weight := pkg.RoundToGymHalf(workingWeight * spec.Percent)
			if weight <= 0 {
				weight = minIncrement
			}

			steps = append(steps, Step{
				Label:       percentLabel(spec.Percent),
				WeightTotal: weight,
				Reps:        spec.TargetReps,
				Rest:        spec.Rest,
				Note:        note,
			})
		}
	}

	if unweightedBodyweight {
		return steps
	}

	filtered := steps[:0]
	for _, s := range steps {
		if s.WeightTotal < workingWeight {
			filtered = append(filtered, s)
		}
	}

	return filtered
}

func percentLabel(percent float64) string {
	// 0.65*100 is 65.00000000000001, keep one decimal at most
	p := math.Round(percent*1000) / 10
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}

func joinNotes(a, b string) string {
	if a == "" {
		return b
	}
	return a + "; " + b
}
