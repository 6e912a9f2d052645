package cli

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Dalmiro47/GymTrackerv2-sub001/pkg"
)

func newRoundCmd() *cobra.Command {
	var (
		step float64
		mode string
	)

	cmd := &cobra.Command{
		Use:   "round <kg>",
		Short: "Round a weight to a loadable value",
		Long: `Round a weight to the gym half kilo, or with --step to a multiple of the plate step.

Examples:
  warmup round 41.3
  warmup round 44.9 --step 2.5 --mode floor`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
				return fmt.Errorf("invalid weight %q", args[0])
			}
			if step < 0 || math.IsNaN(step) || math.IsInf(step, 0) {
				return fmt.Errorf("invalid step %v: must be positive", step)
			}

			rounded := pkg.RoundToGymHalf(value)
			if step > 0 {
				rounded = pkg.SnapToStep(value, step, pkg.ParseSnapMode(mode))
			}
			fmt.Fprintln(cmd.OutOrStdout(), pkg.FormatWeight(rounded))
			return nil
		},
	}

	cmd.Flags().Float64Var(&step, "step", 0, "plate step in kg, e.g. 2.5")
	cmd.Flags().StringVar(&mode, "mode", string(pkg.SnapNearest), "snap mode with --step: nearest, floor, ceil")

	return cmd
}
