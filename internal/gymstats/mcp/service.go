package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dalmiro47/GymTrackerv2-sub001/internal/gymstats/warmup"
	"github.com/Dalmiro47/GymTrackerv2-sub001/pkg"
)

// warmupService is implemented by *warmup.Service.
type warmupService interface {
	Prescribe(ctx context.Context, req warmup.PrescribeRequest) (*warmup.Prescription, error)
	Classify(ctx context.Context, ex warmup.Exercise) warmup.Classification
	Templates(ctx context.Context) warmup.TemplatesResponse
}

// toolService renders warm-up data as markdown for MCP clients.
// Used by Handler for testability.
type toolService interface {
	Prescription(ctx context.Context, req warmup.PrescribeRequest) (string, error)
	Classification(ctx context.Context, ex warmup.Exercise) string
	Templates(ctx context.Context) string
}

// ToolService turns warm-up service results into text for LLM clients.
type ToolService struct {
	warmup warmupService
}

func NewToolService(warmupService warmupService) *ToolService {
	return &ToolService{
		warmup: warmupService,
	}
}

// Prescription returns the warm-up ramp for one exercise as a markdown table.
func (s *ToolService) Prescription(ctx context.Context, req warmup.PrescribeRequest) (string, error) {
	p, err := s.warmup.Prescribe(ctx, req)
	if err != nil {
		return "", err
	}
	return formatPrescription(p), nil
}

func (s *ToolService) Classification(ctx context.Context, ex warmup.Exercise) string {
	c := s.warmup.Classify(ctx, ex)

	source := "equipment tag"
	if c.FromName {
		source = "name keywords"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Warm-up archetype: %s\n\n", ex.Name)
	fmt.Fprintf(&b, "- archetype: %s\n", c.Archetype)
	fmt.Fprintf(&b, "- lower body barbell: %t\n", c.IsLowerBodyBarbell)
	fmt.Fprintf(&b, "- classified from: %s\n", source)
	return b.String()
}

// Templates returns every archetype's step template, in archetype order.
func (s *ToolService) Templates(ctx context.Context) string {
	t := s.warmup.Templates(ctx)

	var b strings.Builder
	fmt.Fprintf(&b, "# Warm-up templates (catalog %s)\n", t.Version)
	for _, archetype := range warmup.Archetypes {
		steps := t.Templates[archetype]
		fmt.Fprintf(&b, "\n## %s\n\n", archetype)
		if len(steps) == 0 {
			b.WriteString("No warm-up sets.\n")
			continue
		}
		b.WriteString("| # | Step | Reps | Rest | Applies to | Note |\n|---|------|------|------|------------|------|\n")
		for i, spec := range steps {
			step := spec.Label
			if spec.Kind == warmup.StepKindPercent {
				step = pkg.FormatWeight(spec.Percent*100) + "%"
			}
			appliesTo := spec.AppliesTo
			if appliesTo == "" {
				appliesTo = warmup.AppliesToTotal
			}
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s |\n",
				i+1, step, spec.TargetReps, spec.Rest, appliesTo, spec.Note)
		}
	}
	return b.String()
}

func formatPrescription(p *warmup.Prescription) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Warm-up: %s (%s, %s kg)\n\n", p.Exercise, p.Archetype, pkg.FormatWeight(p.WorkingWeight))

	if len(p.Steps) == 0 {
		b.WriteString("No warm-up sets needed, start with the working sets.\n")
		return b.String()
	}

	b.WriteString("| # | Set | Weight | Reps | Rest | Note |\n|---|-----|--------|------|------|------|\n")
	for i, s := range p.Steps {
		weight := "-"
		if s.WeightTotal > 0 {
			weight = pkg.FormatWeight(s.WeightTotal) + " kg"
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s |\n", i+1, s.Label, weight, s.Reps, s.Rest, s.Note)
	}
	return b.String()
}
