package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Dalmiro47/GymTrackerv2-sub001/internal/gymstats/warmup"
	"github.com/Dalmiro47/GymTrackerv2-sub001/internal/telemetry/metrics"
)

const (
	ServerName    = "gymstats-warmup"
	ServerVersion = "1.0.0"
)

// NewServer builds an MCP server with the warm-up tools: prescription, classification,
// templates and weight rounding.
// Used by the main backend when mounting MCP at /mcp (internal/server) and by cmd/warmup_mcp over stdio.
func NewServer(warmupService *warmup.Service, metricsManager *metrics.Manager) *mcp.Server {
	h := NewHandler(NewToolService(warmupService), metricsManager)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_warmup_prescription",
		Description: "Returns the warm-up sets (label, weight in kg, reps, rest, note) leading up to a working weight for an exercise. Args: exercise, working_weight (kg; added weight for bodyweight exercises); optional: equipment, archetype, lower_body, isolation. Use when planning how to ramp up to a top set.",
	}, h.GetWarmupPrescriptionTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "classify_exercise",
		Description: "Returns the warm-up archetype (heavy_barbell, heavy_dumbbell, machine_compound, bodyweight, isolation, none) of an exercise and whether it is a lower body barbell lift. Arg: exercise; optional: equipment, lower_body, isolation.",
	}, h.ClassifyExerciseTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_warmup_templates",
		Description: "Returns the warm-up step templates (percent of working weight, reps, rest) of every archetype in the active catalog. Use when you need to explain how warm-ups are built.",
	}, h.GetWarmupTemplatesTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "round_weight",
		Description: "Rounds a weight in kg to a loadable value: to the gym half kilo by default, or to a plate step (e.g. 2.5) with mode nearest, floor or ceil.",
	}, h.RoundWeightTool())

	return s
}
