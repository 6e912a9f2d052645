package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Dalmiro47/GymTrackerv2-sub001/internal/gymstats/warmup"
	"github.com/Dalmiro47/GymTrackerv2-sub001/pkg"
)

type prescribeOptions struct {
	weight    float64
	equipment string
	archetype string
	lowerBody bool
	isolation bool
	asJSON    bool
}

func newPrescribeCmd(root *rootOptions) *cobra.Command {
	opts := &prescribeOptions{}

	cmd := &cobra.Command{
		Use:   "prescribe <exercise>",
		Short: "Print the warm-up sets for an exercise",
		Long: `Print the warm-up sets leading up to the working weight.

For bodyweight exercises --weight is the added weight (0 when unweighted).

Examples:
  warmup prescribe "Back Squat" --weight 100
  warmup prescribe "Incline DB Press" --weight 32.5 --equipment dumbbell
  warmup prescribe "Weighted Dips" --weight 20 --archetype bodyweight`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrescribe(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().Float64VarP(&opts.weight, "weight", "w", 0, "working weight in kg")
	cmd.Flags().StringVar(&opts.equipment, "equipment", "", "equipment tag: barbell, dumbbell, kettlebell, machine, smith, cable, bodyweight, none")
	cmd.Flags().StringVar(&opts.archetype, "archetype", "", "explicit archetype, skips classification")
	cmd.Flags().BoolVar(&opts.lowerBody, "lower-body", false, "lower body lift (barbell lifts get an empty bar set)")
	cmd.Flags().BoolVar(&opts.isolation, "isolation", false, "single-joint movement")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the prescription as JSON")

	return cmd
}

func runPrescribe(cmd *cobra.Command, root *rootOptions, opts *prescribeOptions, exercise string) error {
	if opts.weight < 0 {
		return fmt.Errorf("invalid weight %v: must not be negative", opts.weight)
	}

	service, err := root.service()
	if err != nil {
		return err
	}

	prescription, err := service.Prescribe(cmd.Context(), warmup.PrescribeRequest{
		Exercise:      exercise,
		Equipment:     warmup.Equipment(opts.equipment),
		Archetype:     opts.archetype,
		LowerBody:     opts.lowerBody,
		Isolation:     opts.isolation,
		WorkingWeight: opts.weight,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(prescription)
	}

	fmt.Fprintf(out, "%s (%s) - working weight %s kg\n\n",
		prescription.Exercise, prescription.Archetype, pkg.FormatWeight(prescription.WorkingWeight))
	if len(prescription.Steps) == 0 {
		fmt.Fprintln(out, "No warm-up sets needed, start with the working sets.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSET\tWEIGHT\tREPS\tREST\tNOTE")
	for i, step := range prescription.Steps {
		weight := "-"
		if step.WeightTotal > 0 {
			weight = pkg.FormatWeight(step.WeightTotal) + " kg"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", i+1, step.Label, weight, step.Reps, step.Rest, step.Note)
	}
	return tw.Flush()
}
