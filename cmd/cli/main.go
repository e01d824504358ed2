package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"edadash/adapters/echarts"
	"edadash/adapters/export"
	"edadash/adapters/render"
	"edadash/app"
	"edadash/domain/chart"
	"edadash/domain/dataset"
	"edadash/internal/config"
	"edadash/internal/logging"
)

// sourceFlags are the data-source and selector flags shared by every command
type sourceFlags struct {
	sample bool
	path   string
	x      string
	y      string
	color  string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.sample, "sample", false, "use the built-in sample data")
	cmd.Flags().StringVar(&f.path, "path", "", "path to a .csv or .xlsx file (defaults to DATA_PATH)")
	cmd.Flags().StringVar(&f.x, "x", "", "X-axis column")
	cmd.Flags().StringVar(&f.y, "y", "", "Y-axis column")
	cmd.Flags().StringVar(&f.color, "color", "", "color grouping column")
}

// run loads configuration and executes one dashboard run
func (f *sourceFlags) run(ctx context.Context) (*app.View, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if level, err := logging.ParseLevel(cfg.Server.LogLevel); err == nil {
		logging.SetDefaultLevel(level)
	}
	path := f.path
	if path == "" {
		path = cfg.Data.DefaultPath
	}

	dashboard := app.NewDashboard(app.SchemaFromConfig(cfg.Columns))
	view, err := dashboard.Run(ctx,
		app.Source{UseSample: f.sample, Path: path},
		app.Selection{X: f.x, Y: f.y, Color: f.color})
	if err != nil {
		return nil, err
	}
	if view.Halted {
		return nil, fmt.Errorf("%s", view.Advisory)
	}
	return view, nil
}

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:          "edadash-cli",
		Short:        "Session interval EDA from the command line",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newSummaryCmd(),
		newExportCmd(),
		newChartCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSummaryCmd() *cobra.Command {
	var flags sourceFlags

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the summary metrics and the daily totals",
		Long: `Load a dataset and print total records, unique sessions and unique dates.

Example: edadash-cli summary --path sessions.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := flags.run(cmd.Context())
			if err != nil {
				return err
			}
			printView(cmd.OutOrStdout(), view)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newExportCmd() *cobra.Command {
	var flags sourceFlags
	var outDir string
	var parallel int64

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every chart as PNG plus the dataset and summary files",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := flags.run(cmd.Context())
			if err != nil {
				return err
			}
			if !view.Ready() {
				return fmt.Errorf("%s", view.Error)
			}

			paths, err := render.NewRenderer().WriteAll(cmd.Context(), outDir, view.Charts, parallel)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return writeExports(cmd.OutOrStdout(), outDir, view)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&outDir, "out", "charts", "output directory")
	cmd.Flags().Int64Var(&parallel, "parallel", 3, "charts rendered concurrently")
	return cmd
}

func newChartCmd() *cobra.Command {
	var flags sourceFlags

	cmd := &cobra.Command{
		Use:       "chart [scatter|bar|pie|line|box]",
		Short:     "Print the ECharts option of one chart as JSON",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"scatter", "bar", "pie", "line", "box"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := chart.ParseKind(args[0])
			if !ok {
				return fmt.Errorf("unknown chart %q", args[0])
			}
			view, err := flags.run(cmd.Context())
			if err != nil {
				return err
			}
			if !view.Ready() {
				return fmt.Errorf("%s", view.Error)
			}
			option, err := echarts.NewGenerator(nil).Generate(view.Charts, kind)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), option)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func printView(w io.Writer, view *app.View) {
	fmt.Fprintf(w, "Data: %s\n", view.Source)
	for _, warning := range view.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", warning)
	}
	if view.Error != "" {
		fmt.Fprintf(w, "Error: %s\n", view.Error)
	}

	if view.Summary != nil {
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Metric", "Value"})
		table.Append([]string{"Total Records", strconv.Itoa(view.Summary.TotalRecords)})
		table.Append([]string{"Unique Sessions", strconv.Itoa(view.Summary.UniqueSessions)})
		table.Append([]string{"Unique Dates", strconv.Itoa(view.Summary.UniqueDates)})
		table.Render()
	}

	if view.Charts != nil && view.Charts.Line != nil && len(view.Charts.Line.Points) > 0 {
		line := view.Charts.Line
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{line.XLabel, line.YLabel})
		for _, p := range line.Points {
			table.Append([]string{p.Date.Format(dataset.DateLayout), strconv.FormatFloat(p.Value, 'f', -1, 64)})
		}
		table.Render()
	}
}

func writeExports(w io.Writer, dir string, view *app.View) error {
	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"dataset.csv", func(out io.Writer) error { return export.WriteCSV(out, view.Dataset) }},
		{"summary.xlsx", func(out io.Writer) error { return export.WriteXLSX(out, export.NewWorkbook(view)) }},
	}

	for _, file := range files {
		path := filepath.Join(dir, file.name)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := file.write(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintln(w, path)
	}
	return nil
}
