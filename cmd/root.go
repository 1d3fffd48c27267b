package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/splitview/internal/demo"
	"github.com/oakwood-commons/splitview/pkg/logger"
	"github.com/oakwood-commons/splitview/pkg/settings"
	"github.com/oakwood-commons/splitview/pkg/splitview"
)

var (
	configFile string
	debug      bool
	noColor    bool
	maxColumns int
	demoWidth  int
	demoHeight int
)

var rootCtx = context.Background()

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName,
	Short: "Preview and simulate a three column split layout",
	Long: `splitview shows up to three panes (primary, secondary, detail) side by side
and collapses them into fewer panes as the terminal narrows.

Run without a subcommand to open the interactive demo. Use tab and shift+tab
to move focus, enter to open a page in place, s and d to show a page in the
secondary or detail column, esc to go back and q to quit.`,
	Example:       "\n  splitview\n  splitview simulate --widths 1200,760,500,1200\n  splitview config -o json\n",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		run := settings.NewCliParams()
		run.MinLogLevel = settings.LogLevel(debug)
		run.ConfigPath = configFile
		run.MaxColumns = maxColumns
		run.NoColor = noColor

		lgr := logger.Get(run.MinLogLevel)
		lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
		rootCtx = logger.WithLogger(context.Background(), lgr)
		rootCtx = settings.IntoContext(rootCtx, run)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return runDemo(rootCtx)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config-file", "", "path to a YAML config file (default $XDG_CONFIG_HOME/splitview/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().IntVar(&maxColumns, "max-columns", 0, "override maximum_number_of_columns (1-3)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable color output")
	rootCmd.Flags().IntVar(&demoWidth, "width", 0, "demo width in cells (default: terminal width)")
	rootCmd.Flags().IntVar(&demoHeight, "height", 0, "demo height in rows (default: terminal height)")

	rootCmd.AddCommand(simulateCmd, configCmd, versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// runDemo opens the interactive demo: three sample pages in a split model.
func runDemo(ctx context.Context) error {
	run := settings.FromContextOrDefault(ctx)
	lgr := logger.FromContext(ctx)

	cfg, err := loadRunConfig(run)
	if err != nil {
		return err
	}
	opts, err := controllerOptions(ctx, cfg)
	if err != nil {
		return err
	}

	maker := demo.NewMaker()
	contents := demo.Seed(maker)
	for _, c := range contents {
		if p, ok := c.(*demo.Page); ok {
			p.SetNoColor(run.NoColor)
		}
	}
	c := splitview.New(0, contents, opts...)
	lgr.V(1).Info("starting demo", logger.ContainerKey, c.ID().String())

	m := splitview.NewModel(c,
		splitview.WithNoColor(run.NoColor),
		splitview.WithHelpKeys(demo.DefaultKeys().Bindings()...),
		splitview.WithStatusBar(fmt.Sprintf("%s %s", settings.CliBinaryName, settings.VersionInformation.BuildVersion)),
	)
	return splitview.Run(m, demoWidth, demoHeight)
}

// loadRunConfig merges the resolved config file over the embedded defaults
// and applies flag overrides.
func loadRunConfig(run *settings.Run) (splitview.FileConfig, error) {
	cfg, err := splitview.LoadConfig(resolveConfigPath(run.ConfigPath))
	if err != nil {
		return cfg, err
	}
	if run.MaxColumns != 0 {
		if run.MaxColumns < 1 || run.MaxColumns > 3 {
			return cfg, fmt.Errorf("--max-columns must be between 1 and 3, got %d", run.MaxColumns)
		}
		cfg.Split.MaximumNumberOfColumns = run.MaxColumns
	}
	return cfg, nil
}

// controllerOptions turns a file config into controller options, compiling
// any configured rules into a delegate.
func controllerOptions(ctx context.Context, cfg splitview.FileConfig) ([]splitview.Option, error) {
	opts := []splitview.Option{
		splitview.WithConfig(cfg.Split),
		splitview.WithLogger(*logger.FromContext(ctx)),
	}
	d, err := splitview.RulesDelegate(cfg.Rules)
	if err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}
	if d != nil {
		opts = append(opts, splitview.WithDelegate(d))
	}
	return opts, nil
}

// resolveConfigPath returns the explicit path if set, otherwise the XDG path
// ($XDG_CONFIG_HOME/splitview/config.yaml) or ~/.config/splitview/config.yaml
// if present.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	xdg := os.Getenv("XDG_CONFIG_HOME")
	candidate := ""
	if xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}
