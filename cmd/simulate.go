package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oakwood-commons/splitview/internal/demo"
	"github.com/oakwood-commons/splitview/pkg/logger"
	"github.com/oakwood-commons/splitview/pkg/settings"
	"github.com/oakwood-commons/splitview/pkg/splitview"
)

var (
	simWidths []float64
	simCells  bool
	simOutput string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a controller over a sequence of widths and print each step",
	Long: `simulate feeds each width to a controller holding three sample pages and
prints the column count, the visible columns, their widths and the back
stacks after every step.

Without --widths the current terminal width is used.`,
	Example: "\n  splitview simulate --widths 1200,760,500,1200\n  splitview simulate --cells --widths 150,95,62 -o yaml\n",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		widths, cells := simulationWidths(simWidths, simCells, cmd.OutOrStdout())
		steps, err := simulate(rootCtx, widths, cells)
		if err != nil {
			return err
		}
		return writeSimulation(cmd.OutOrStdout(), simOutput, steps, settings.FromContextOrDefault(rootCtx).NoColor)
	},
}

func init() {
	simulateCmd.Flags().Float64SliceVar(&simWidths, "widths", nil, "comma separated widths to apply in order")
	simulateCmd.Flags().BoolVar(&simCells, "cells", false, "treat widths as terminal cells instead of units")
	simulateCmd.Flags().StringVarP(&simOutput, "output", "o", "table", "output format: table|yaml|json|toml")
}

// simulationStep is the controller state after one width was applied.
type simulationStep struct {
	Width   float64             `yaml:"width" json:"width" toml:"width"`
	Columns int                 `yaml:"columns" json:"columns" toml:"columns"`
	Visible []string            `yaml:"visible" json:"visible" toml:"visible"`
	Widths  map[string]float64  `yaml:"widths" json:"widths" toml:"widths"`
	Stacks  map[string][]string `yaml:"stacks" json:"stacks" toml:"stacks"`
	Events  []string            `yaml:"events,omitempty" json:"events,omitempty" toml:"events,omitempty"`
	Error   string              `yaml:"error,omitempty" json:"error,omitempty" toml:"error,omitempty"`
}

type simulation struct {
	Steps []simulationStep `yaml:"steps" json:"steps" toml:"steps"`
}

// simulate builds a controller from the run config and applies widths in
// order. When cells is set every width is multiplied by units_per_cell.
func simulate(ctx context.Context, widths []float64, cells bool) ([]simulationStep, error) {
	run := settings.FromContextOrDefault(ctx)
	lgr := logger.FromContext(ctx)

	cfg, err := loadRunConfig(run)
	if err != nil {
		return nil, err
	}
	opts, err := controllerOptions(ctx, cfg)
	if err != nil {
		return nil, err
	}

	c := splitview.New(0, demo.Seed(demo.NewMaker()), opts...)
	defer c.Close()

	var events []string
	unsubscribe := c.Subscribe(func(ev splitview.Event) {
		switch ev.Type {
		case splitview.EventColumnsChanged:
			events = append(events, fmt.Sprintf("%s %d->%d", ev.Type, ev.From, ev.To))
		default:
			events = append(events, fmt.Sprintf("%s %s", ev.Type, ev.Column))
		}
	})
	defer unsubscribe()

	units := c.Config().UnitsPerCell
	steps := make([]simulationStep, 0, len(widths))
	for _, w := range widths {
		if cells {
			w *= units
		}
		events = nil
		stepErr := c.SetWidth(w)
		step := snapshot(c)
		step.Events = events
		if stepErr != nil {
			step.Error = stepErr.Error()
			lgr.V(1).Info("simulation step failed", logger.WidthKey, w, "error", stepErr.Error())
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func snapshot(c *splitview.Controller) simulationStep {
	step := simulationStep{
		Width:   c.Width(),
		Columns: c.Count(),
		Widths:  map[string]float64{},
		Stacks:  map[string][]string{},
	}
	for _, k := range c.VisibleKinds() {
		step.Visible = append(step.Visible, k.String())
		step.Widths[k.String()] = c.ColumnWidth(k)
	}
	for _, k := range []splitview.ColumnKind{splitview.Primary, splitview.Secondary, splitview.Detail} {
		titles := []string{}
		for _, it := range c.Items(k) {
			titles = append(titles, contentTitle(it))
		}
		step.Stacks[k.String()] = titles
	}
	return step
}

func contentTitle(c splitview.Content) string {
	if t, ok := c.(splitview.Titled); ok {
		return t.Title()
	}
	return fmt.Sprintf("%T", c)
}

func writeSimulation(w io.Writer, format string, steps []simulationStep, noColor bool) error {
	if strings.EqualFold(format, "table") {
		_, err := fmt.Fprintln(w, simulationTable(steps, noColor))
		return err
	}
	return writeStructured(w, format, simulation{Steps: steps})
}

func simulationTable(steps []simulationStep, noColor bool) string {
	border := lipgloss.NewStyle()
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	if !noColor {
		border = border.Foreground(lipgloss.Color("62"))
		header = header.Foreground(lipgloss.Color("230"))
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(border).
		Headers("width", "columns", "visible", "widths", "primary", "secondary", "detail").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, s := range steps {
		widths := make([]string, 0, len(s.Visible))
		for _, k := range s.Visible {
			widths = append(widths, formatWidth(s.Widths[k]))
		}
		columns := strconv.Itoa(s.Columns)
		if s.Error != "" {
			columns += " !"
		}
		t.Row(
			formatWidth(s.Width),
			columns,
			strings.Join(s.Visible, ","),
			strings.Join(widths, "/"),
			strings.Join(s.Stacks["primary"], " > "),
			strings.Join(s.Stacks["secondary"], " > "),
			strings.Join(s.Stacks["detail"], " > "),
		)
	}
	return t.String()
}

func formatWidth(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// simulationWidths falls back to the terminal width, in cells, when no
// widths were given.
func simulationWidths(widths []float64, cells bool, out io.Writer) ([]float64, bool) {
	if len(widths) == 0 {
		return []float64{terminalCells(out)}, true
	}
	return widths, cells
}

// terminalCells reports the width of out in cells, or 80 when it is not a
// terminal.
func terminalCells(out io.Writer) float64 {
	if f, ok := out.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return float64(w)
		}
	}
	return 80
}
