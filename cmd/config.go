package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/splitview/pkg/settings"
	"github.com/oakwood-commons/splitview/pkg/splitview"
)

var configOutput string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the merged configuration",
	Long: `config prints the embedded defaults merged with the config file and flag
overrides, after values were clamped the same way a controller clamps them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadRunConfig(settings.FromContextOrDefault(rootCtx))
		if err != nil {
			return err
		}
		return writeConfig(cmd.OutOrStdout(), configOutput, cfg)
	},
}

func init() {
	configCmd.Flags().StringVarP(&configOutput, "output", "o", "yaml", "output format: yaml|json|toml")
}

// writeConfig prints cfg with the split thresholds normalized. Clamped
// fields are listed on a trailing comment line for yaml output.
func writeConfig(w io.Writer, format string, cfg splitview.FileConfig) error {
	normalized, clamped := cfg.Split.Normalize()
	cfg.Split = normalized
	if err := writeStructured(w, format, cfg); err != nil {
		return err
	}
	if (format == "yaml" || format == "yml") && len(clamped) > 0 {
		_, err := fmt.Fprintf(w, "# clamped: %v\n", clamped)
		return err
	}
	return nil
}
