package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/unitlab/internal/config"
	"github.com/san-kum/unitlab/internal/physics"
	"github.com/san-kum/unitlab/internal/store"
	"github.com/san-kum/unitlab/internal/tui"
	"github.com/san-kum/unitlab/internal/unit"
	"github.com/san-kum/unitlab/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	modelName  string
	preset     string
	logLevel   string
	theme      string
	precision  int

	lo      float64
	hi      float64
	samples int
	height  int
	width   int
	csvPath string
	outPath string

	cfg = config.DefaultConfig()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, viz.RenderError(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "unitlab",
		Short:             "dimensional analysis and unit conversion lab",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.RunConverter(cmd.Context(), "", "")
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&modelName, "model", "", "physical model")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "unit preset to load")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "lab",
		"color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	rootCmd.PersistentFlags().IntVar(&precision, "precision", 0, "significant digits")

	convertCmd := &cobra.Command{
		Use:     "convert [value] [from] [to]",
		Short:   "convert a value between units",
		Example: "  unitlab convert 100 °C °F\n  unitlab convert -- -40 °F °C",
		Args:    cobra.ExactArgs(3),
		RunE:    runConvert,
	}

	dimCmd := &cobra.Command{
		Use:   "dim [unit...]",
		Short: "show the structure and dimension of units",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runDim,
	}

	unitsCmd := &cobra.Command{
		Use:   "units [unit]",
		Short: "list registered units, or those commensurable with a unit",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listUnits,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [from] [to]",
		Short: "plot a conversion curve",
		Args:  cobra.ExactArgs(2),
		RunE:  plotConversion,
	}
	plotCmd.Flags().Float64Var(&lo, "lo", 0, "first sample")
	plotCmd.Flags().Float64Var(&hi, "hi", 100, "last sample")
	plotCmd.Flags().IntVar(&samples, "samples", 0, "number of samples")
	plotCmd.Flags().IntVar(&height, "height", 12, "plot height")
	plotCmd.Flags().IntVar(&width, "width", 70, "plot width")
	plotCmd.Flags().StringVar(&csvPath, "csv", "", "also write samples to csv")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "export the unit catalog as json",
		RunE:  exportCatalog,
	}
	exportCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list physical models",
		RunE:  listModels,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list unit presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tMODEL\tUNITS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				symbols := make([]string, len(p.Units))
				for i, u := range p.Units {
					symbols[i] = u.Symbol
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, orDash(p.Model), strings.Join(symbols, " "))
			}
			return w.Flush()
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui [from] [to]",
		Short: "interactive converter",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var from, to string
			if len(args) > 0 {
				from = args[0]
			}
			if len(args) > 1 {
				to = args[1]
			}
			return tui.RunConverter(cmd.Context(), from, to)
		},
	}

	rootCmd.AddCommand(convertCmd, dimCmd, unitsCmd, plotCmd, exportCmd, modelsCmd, presetsCmd, tuiCmd)
	return rootCmd
}

// setup loads the config, applies presets and flag overrides, and selects
// the physical model on the command context.
func setup(cmd *cobra.Command, args []string) error {
	cfg = config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Merge(p)
	}
	if modelName != "" {
		cfg.Model = modelName
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if precision > 0 {
		cfg.Precision = precision
	}

	if !slices.Contains(viz.ThemeNames(), theme) {
		return fmt.Errorf("unknown theme: %s (available: %v)", theme, viz.ThemeNames())
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)
	viz.SetTheme(theme)

	if err := cfg.Apply(); err != nil {
		return err
	}
	m, err := cfg.ActiveModel()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(physics.Select(ctx, m))

	logger.Debug("config applied",
		"model", m.Name(),
		"dimensions", len(cfg.Dimensions),
		"units", len(cfg.Units),
		"models", len(cfg.Models),
	)
	return nil
}

func newLogger(level string) *slog.Logger {
	var slogLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel})
	return slog.New(handler)
}

func lookup(symbol string) (*unit.Unit, error) {
	u, ok := unit.Lookup(symbol)
	if !ok {
		return nil, fmt.Errorf("unknown unit: %s (see 'unitlab units')", symbol)
	}
	return u, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("bad value %q: %w", args[0], err)
	}
	from, err := lookup(args[1])
	if err != nil {
		return err
	}
	to, err := lookup(args[2])
	if err != nil {
		return err
	}

	c, err := unit.ConverterTo(cmd.Context(), from, to)
	if err != nil {
		return err
	}
	slog.Debug("converter", "from", from.String(), "to", to.String(), "chain", c.String())

	fmt.Fprintln(cmd.OutOrStdout(), viz.RenderConversion(v, args[1], c.Convert(v), args[2], cfg.Precision))
	return nil
}

func runDim(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	for i, sym := range args {
		u, err := lookup(sym)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), viz.Separator(40))
		}
		fmt.Fprintln(cmd.OutOrStdout(), viz.RenderUnit(store.Describe(ctx, sym, u)))

		if c, err := unit.ToStandard(ctx, u); err == nil {
			std, _ := unit.StandardUnit(unit.Dimension(ctx, u))
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %s %s\n", viz.Label.Render("standard"), std, viz.Subtle.Render(c.String()))
		} else {
			slog.Debug("no standard unit", "unit", sym, "error", err)
		}
	}
	return nil
}

func listUnits(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	var ref *unit.Unit
	if len(args) == 1 {
		u, err := lookup(args[0])
		if err != nil {
			return err
		}
		ref = u
	}

	entries := store.BuildCatalog(ctx).Units
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tKIND\tDIMENSION\tSYSTEM\tTO SYSTEM")
	for _, e := range entries {
		if ref != nil {
			u, _ := unit.Lookup(e.Symbol)
			if !unit.Commensurable(ctx, ref, u) {
				continue
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Symbol, e.Kind, e.Dimension, e.SystemUnit, orDash(e.ToSystem))
	}
	return w.Flush()
}

func plotConversion(cmd *cobra.Command, args []string) error {
	from, err := lookup(args[0])
	if err != nil {
		return err
	}
	to, err := lookup(args[1])
	if err != nil {
		return err
	}

	n := samples
	if n <= 0 {
		n = cfg.Samples
	}
	t, err := store.Sample(cmd.Context(), from, to, store.Linspace(lo, hi, n))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), viz.PlotConversion(t, height, width))
	if csvPath != "" {
		if err := store.SaveCSV(csvPath, t); err != nil {
			return err
		}
		slog.Info("samples written", "path", csvPath, "rows", len(t.In))
	}
	return nil
}

func exportCatalog(cmd *cobra.Command, args []string) error {
	c := store.BuildCatalog(cmd.Context())
	if outPath == "" {
		return store.WriteJSON(cmd.OutOrStdout(), c)
	}
	if err := store.ExportJSON(outPath, c); err != nil {
		return err
	}
	slog.Info("catalog exported", "path", outPath, "units", len(c.Units))
	return nil
}

func listModels(cmd *cobra.Command, args []string) error {
	active := physics.Active(cmd.Context()).Name()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tACTIVE\tOVERRIDES")
	for _, name := range physics.Names() {
		m, _ := physics.Lookup(name)
		mark := ""
		if name == active {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, mark, orDash(overrides(m)))
	}
	return w.Flush()
}

// overrides describes the base units whose mapping differs from the
// standard model.
func overrides(m physics.Model) string {
	var parts []string
	for _, sym := range unit.Symbols() {
		u, _ := unit.Lookup(sym)
		if u.Kind() != unit.KindBase {
			continue
		}
		d, t := m.Dimension(sym), m.Transform(sym)
		if d.Equal(physics.Standard.Dimension(sym)) && t.IsIdentity() {
			continue
		}
		part := sym + "→" + d.String()
		if !t.IsIdentity() {
			part += " (" + t.String() + ")"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
