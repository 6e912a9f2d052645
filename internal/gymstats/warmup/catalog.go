package warmup

import (
	"fmt"
	"os"
	"sort"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

const DefaultCatalogVersion = "2024.1"

var defaultTemplates = map[Archetype][]StepSpec{
	ArchetypeHeavyBarbell: {
		{Kind: StepKindPercent, Percent: 0.40, TargetReps: "12", Rest: "30-45s"},
		{Kind: StepKindPercent, Percent: 0.65, TargetReps: "8", Rest: "60s"},
		{Kind: StepKindPercent, Percent: 0.80, TargetReps: "4-6", Rest: "90s"},
	},
	ArchetypeHeavyDumbbell: {
		{Kind: StepKindPercent, Percent: 0.50, TargetReps: "12", Rest: "45s"},
		{Kind: StepKindPercent, Percent: 0.70, TargetReps: "6-8", Rest: "60-75s"},
	},
	ArchetypeMachineCompound: {
		{Kind: StepKindPercent, Percent: 0.50, TargetReps: "12", Rest: "45s"},
		{Kind: StepKindPercent, Percent: 0.70, TargetReps: "6-8", Rest: "60-75s"},
	},
	ArchetypeBodyweight: {
		{Kind: StepKindLabel, Label: "Bodyweight", TargetReps: "8-10", Rest: "60s"},
		{Kind: StepKindPercent, Percent: 0.50, TargetReps: "5", Rest: "90s", AppliesTo: AppliesToAdded},
	},
	ArchetypeIsolation: {
		{Kind: StepKindPercent, Percent: 0.50, TargetReps: "10-12", Rest: "30s"},
	},
	ArchetypeNone: {},
}

// Catalog maps each archetype to its ordered warm-up template.
// It is read-only once built and safe for concurrent use.
type Catalog struct {
	version   string
	templates map[Archetype][]StepSpec
}

func DefaultCatalog() *Catalog {
	return &Catalog{
		version:   DefaultCatalogVersion,
		templates: cloneTemplates(defaultTemplates),
	}
}

func (c *Catalog) Version() string {
	return c.version
}

// Steps returns a copy of the template for the archetype.
func (c *Catalog) Steps(a Archetype) ([]StepSpec, bool) {
	steps, ok := c.templates[a]
	if !ok {
		return nil, false
	}
	return cloneSteps(steps), true
}

// Templates returns a copy of all templates.
func (c *Catalog) Templates() map[Archetype][]StepSpec {
	return cloneTemplates(c.templates)
}

type catalogFile struct {
	Version   string                `yaml:"version"`
	Templates map[string][]StepSpec `yaml:"templates"`
}

// LoadCatalog reads a YAML catalog file. Archetypes present in the file replace
// the default template, the rest keep their defaults. All invalid entries are
// reported in a single error.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}

	catalog := DefaultCatalog()
	if file.Version != "" {
		catalog.version = file.Version
	}

	// sorted so errors and duplicate detection do not depend on map order
	names := make([]string, 0, len(file.Templates))
	for name := range file.Templates {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs error
	seen := make(map[Archetype]string, len(names))
	for _, name := range names {
		steps := file.Templates[name]
		archetype, err := ParseArchetype(name)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if prev, ok := seen[archetype]; ok {
			errs = multierr.Append(errs, fmt.Errorf("archetype %s defined twice (%q and %q)", archetype, prev, name))
			continue
		}
		seen[archetype] = name
		if archetype == ArchetypeNone && len(steps) > 0 {
			errs = multierr.Append(errs, fmt.Errorf("archetype %s cannot have steps", archetype))
			continue
		}
		for i, step := range steps {
			if err := step.Validate(); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("%s step %d: %w", archetype, i, err))
			}
		}
		catalog.templates[archetype] = cloneSteps(steps)
	}
	if errs != nil {
		return nil, fmt.Errorf("invalid catalog: %w", errs)
	}

	return catalog, nil
}

func cloneSteps(steps []StepSpec) []StepSpec {
	out := make([]StepSpec, len(steps))
	copy(out, steps)
	return out
}

func cloneTemplates(templates map[Archetype][]StepSpec) map[Archetype][]StepSpec {
	out := make(map[Archetype][]StepSpec, len(templates))
	for a, steps := range templates {
		out[a] = cloneSteps(steps)
	}
	return out
}
