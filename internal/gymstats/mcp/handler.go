package mcp

import (
	"context"
	"encoding/json"
	"math"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Dalmiro47/GymTrackerv2-sub001/internal/gymstats/warmup"
	"github.com/Dalmiro47/GymTrackerv2-sub001/internal/telemetry/metrics"
	"github.com/Dalmiro47/GymTrackerv2-sub001/pkg"
)

// Handler handles MCP tool requests and responses: parses input, calls the service, formats MCP result.
type Handler struct {
	service        toolService
	metricsManager *metrics.Manager
}

// NewHandler builds a handler with the given service. metricsManager may be nil.
func NewHandler(service toolService, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
	}
}

// PrescriptionInput is the input for get_warmup_prescription.
type PrescriptionInput struct {
	Exercise      string  `json:"exercise" jsonschema:"Exercise name (e.g. Back Squat, Incline DB Press)"`
	WorkingWeight float64 `json:"working_weight" jsonschema:"Top set weight in kg. For bodyweight exercises the added weight, 0 when unweighted"`
	Equipment     string  `json:"equipment,omitempty" jsonschema:"Optional equipment tag: barbell, dumbbell, kettlebell, machine, smith, cable, bodyweight, none"`
	Archetype     string  `json:"archetype,omitempty" jsonschema:"Optional explicit archetype: heavy_barbell, heavy_dumbbell, machine_compound, bodyweight, isolation, none"`
	LowerBody     bool    `json:"lower_body,omitempty" jsonschema:"Set for lower body barbell lifts (adds an empty bar set)"`
	Isolation     bool    `json:"isolation,omitempty" jsonschema:"Set for single-joint movements"`
}

// GetWarmupPrescriptionTool returns the MCP tool handler for get_warmup_prescription.
func (h *Handler) GetWarmupPrescriptionTool() func(context.Context, *mcp.CallToolRequest, PrescriptionInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in PrescriptionInput) (*mcp.CallToolResult, any, error) {
		h.countCall("get_warmup_prescription")

		if math.IsNaN(in.WorkingWeight) || math.IsInf(in.WorkingWeight, 0) || in.WorkingWeight < 0 {
			return errorResult("Invalid working_weight: use a non-negative number of kg"), nil, nil
		}

		text, err := h.service.Prescription(ctx, warmup.PrescribeRequest{
			Exercise:      in.Exercise,
			Equipment:     warmup.Equipment(in.Equipment),
			Archetype:     in.Archetype,
			LowerBody:     in.LowerBody,
			Isolation:     in.Isolation,
			WorkingWeight: in.WorkingWeight,
		})
		if err != nil {
			return errorResult("Error computing warm-up: " + err.Error()), nil, nil
		}
		return textResult(text), nil, nil
	}
}

// ClassifyInput is the input for classify_exercise.
type ClassifyInput struct {
	Exercise  string `json:"exercise" jsonschema:"Exercise name (e.g. Romanian Deadlift)"`
	Equipment string `json:"equipment,omitempty" jsonschema:"Optional equipment tag: barbell, dumbbell, kettlebell, machine, smith, cable, bodyweight, none"`
	LowerBody bool   `json:"lower_body,omitempty" jsonschema:"Set for lower body lifts"`
	Isolation bool   `json:"isolation,omitempty" jsonschema:"Set for single-joint movements"`
}

// ClassifyExerciseTool returns the MCP tool handler for classify_exercise.
func (h *Handler) ClassifyExerciseTool() func(context.Context, *mcp.CallToolRequest, ClassifyInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ClassifyInput) (*mcp.CallToolResult, any, error) {
		h.countCall("classify_exercise")

		if in.Exercise == "" {
			return errorResult("Invalid exercise: name is required"), nil, nil
		}
		equipment, ok := warmup.ParseEquipment(in.Equipment)
		if !ok {
			return errorResult("Invalid equipment: " + in.Equipment), nil, nil
		}

		return textResult(h.service.Classification(ctx, warmup.Exercise{
			Name:      in.Exercise,
			Equipment: equipment,
			LowerBody: in.LowerBody,
			Isolation: in.Isolation,
		})), nil, nil
	}
}

// TemplatesInput is the (empty) input for get_warmup_templates.
type TemplatesInput struct{}

// GetWarmupTemplatesTool returns the MCP tool handler for get_warmup_templates.
func (h *Handler) GetWarmupTemplatesTool() func(context.Context, *mcp.CallToolRequest, TemplatesInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ TemplatesInput) (*mcp.CallToolResult, any, error) {
		h.countCall("get_warmup_templates")
		return textResult(h.service.Templates(ctx)), nil, nil
	}
}

// RoundInput is the input for round_weight.
type RoundInput struct {
	Value float64 `json:"value" jsonschema:"Weight in kg to round"`
	Step  float64 `json:"step,omitempty" jsonschema:"Optional plate step in kg (e.g. 2.5). Without it the weight is rounded to the gym half kilo"`
	Mode  string  `json:"mode,omitempty" jsonschema:"Optional snap mode with step: nearest (default), floor, ceil"`
}

// RoundWeightTool returns the MCP tool handler for round_weight.
func (h *Handler) RoundWeightTool() func(context.Context, *mcp.CallToolRequest, RoundInput) (*mcp.CallToolResult, any, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, in RoundInput) (*mcp.CallToolResult, any, error) {
		h.countCall("round_weight")

		if math.IsNaN(in.Value) || math.IsInf(in.Value, 0) {
			return errorResult("Invalid value: use a finite number of kg"), nil, nil
		}
		if in.Step < 0 {
			return errorResult("Invalid step: must be positive"), nil, nil
		}

		resp := warmup.RoundResponse{Value: in.Value}
		if in.Step > 0 {
			mode := pkg.ParseSnapMode(in.Mode)
			resp.Step = in.Step
			resp.Mode = string(mode)
			resp.Rounded = pkg.SnapToStep(in.Value, in.Step, mode)
		} else {
			resp.Rounded = pkg.RoundToGymHalf(in.Value)
		}

		raw, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return errorResult("Error encoding response: " + err.Error()), nil, nil
		}
		return textResult(string(raw)), nil, nil
	}
}

func (h *Handler) countCall(tool string) {
	if h.metricsManager != nil {
		h.metricsManager.CounterMCPToolCalls.WithLabelValues(tool).Inc()
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
