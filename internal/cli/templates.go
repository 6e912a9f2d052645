package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Dalmiro47/GymTrackerv2-sub001/internal/gymstats/warmup"
	"github.com/Dalmiro47/GymTrackerv2-sub001/pkg"
)

func newTemplatesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "templates [archetype]",
		Short: "Print the warm-up templates of the catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			archetypes := warmup.Archetypes
			if len(args) == 1 {
				archetype, err := warmup.ParseArchetype(args[0])
				if err != nil {
					return err
				}
				archetypes = []warmup.Archetype{archetype}
			}

			service, err := root.service()
			if err != nil {
				return err
			}
			templates := service.Templates(cmd.Context())

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "catalog %s\n", templates.Version)
			for _, archetype := range archetypes {
				fmt.Fprintf(out, "\n%s\n", archetype)
				steps := templates.Templates[archetype]
				if len(steps) == 0 {
					fmt.Fprintln(out, "  no warm-up sets")
					continue
				}

				tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "  #\tSTEP\tREPS\tREST\tAPPLIES TO")
				for i, spec := range steps {
					step := spec.Label
					if spec.Kind == warmup.StepKindPercent {
						step = pkg.FormatWeight(spec.Percent*100) + "%"
					}
					appliesTo := spec.AppliesTo
					if appliesTo == "" {
						appliesTo = warmup.AppliesToTotal
					}
					fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\t%s\n", i+1, step, spec.TargetReps, spec.Rest, appliesTo)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
