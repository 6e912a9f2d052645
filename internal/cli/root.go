// Package cli implements the warmup command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dalmiro47/GymTrackerv2-sub001/internal/gymstats/warmup"
)

var version = "dev"

// SetVersionInfo sets the version reported by --version.
func SetVersionInfo(v string) {
	version = v
}

type rootOptions struct {
	catalogPath string
}

// NewRootCmd builds the warmup command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "warmup",
		Short: "Warm-up set prescriptions for gym exercises",
		Long: `Warmup computes the warm-up sets leading up to a working weight, classifies
exercises into warm-up archetypes and rounds weights to loadable values.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "YAML warm-up catalog (built-in catalog when empty)")

	rootCmd.AddCommand(newPrescribeCmd(opts))
	rootCmd.AddCommand(newClassifyCmd())
	rootCmd.AddCommand(newTemplatesCmd(opts))
	rootCmd.AddCommand(newRoundCmd())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *rootOptions) service() (*warmup.Service, error) {
	catalog := warmup.DefaultCatalog()
	if o.catalogPath != "" {
		var err error
		catalog, err = warmup.LoadCatalog(o.catalogPath)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
	}
	return warmup.NewService(warmup.NewGenerator(catalog), nil, nil), nil
}
