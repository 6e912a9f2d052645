package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dalmiro47/GymTrackerv2-sub001/internal/gymstats/warmup"
)

func newClassifyCmd() *cobra.Command {
	var (
		equipment string
		lowerBody bool
		isolation bool
	)

	cmd := &cobra.Command{
		Use:   "classify <exercise>",
		Short: "Print the warm-up archetype of an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eq, ok := warmup.ParseEquipment(equipment)
			if !ok {
				return fmt.Errorf("%w: %s", warmup.ErrUnknownEquipment, equipment)
			}

			c := warmup.ClassifyExercise(warmup.Exercise{
				Name:      args[0],
				Equipment: eq,
				LowerBody: lowerBody,
				Isolation: isolation,
			})

			source := "equipment tag"
			if c.FromName {
				source = "name keywords"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "archetype:          %s\n", c.Archetype)
			fmt.Fprintf(out, "lower body barbell: %t\n", c.IsLowerBodyBarbell)
			fmt.Fprintf(out, "classified from:    %s\n", source)
			return nil
		},
	}

	cmd.Flags().StringVar(&equipment, "equipment", "", "equipment tag (name keywords are used when empty)")
	cmd.Flags().BoolVar(&lowerBody, "lower-body", false, "lower body lift")
	cmd.Flags().BoolVar(&isolation, "isolation", false, "single-joint movement")

	return cmd
}
