package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/san-kum/fieldcalc/internal/config"
	"github.com/san-kum/fieldcalc/internal/storage"
	"github.com/san-kum/fieldcalc/internal/study"
	"github.com/san-kum/fieldcalc/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// run
	configFile  string
	preset      string
	metric      string
	workers     int
	start       int
	stop        int
	step        int
	resolutions []int
	profileMode string
	save        bool

	// tune
	tuneMethod string
	tuneParams []string

	// export
	outFile   string
	svgWidth  int
	svgHeight int

	// integrate / heatmap
	rule      string
	component string
)

// main registers the fieldcalc commands and exits with status 1 if the
// selected command fails. With no subcommand it opens the study browser.
func main() {
	rootCmd := &cobra.Command{
		Use:           "fieldcalc",
		Short:         "quadrature and finite-difference convergence lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	rootCmd.PersistentFlags().String("data", "~/.fieldcalc", "data directory (env FIELDCALC_DATA)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "only print tables (env FIELDCALC_QUIET)")
	bindEnv(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run [study]",
		Short: "run a convergence study",
		Args:  cobra.ExactArgs(1),
		RunE:  runStudy,
	}
	addStudyFlags(runCmd)
	runCmd.Flags().StringVar(&profileMode, "profile", "", "write a cpu or mem profile")
	runCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")

	tuneCmd := &cobra.Command{
		Use:   "tune [study]",
		Short: "grid-search study parameters for the smallest final error",
		Args:  cobra.ExactArgs(1),
		RunE:  tuneStudy,
	}
	addStudyFlags(tuneCmd)
	tuneCmd.Flags().StringVar(&tuneMethod, "method", "", "method whose final error is minimised")
	tuneCmd.Flags().StringArrayVar(&tuneParams, "param", nil, "parameter values, e.g. --param pipe.clip=0.3,0.5,0.7")
	_ = tuneCmd.MarkFlagRequired("method")
	_ = tuneCmd.MarkFlagRequired("param")

	studiesCmd := &cobra.Command{
		Use:   "studies",
		Short: "list available studies",
		RunE:  listStudies,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [study]",
		Short: "list presets for a study",
		Args:  cobra.ExactArgs(1),
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print the report of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a log-log convergence plot as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 640, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 480, "image height")

	integrateCmd := &cobra.Command{
		Use:   "integrate",
		Short: "integrate the sine depth profile with one or all rules",
		RunE:  integrateDepth,
	}
	integrateCmd.Flags().StringVar(&rule, "rule", "all", "quadrature rule or all")
	addGridFlags(integrateCmd, 0, 10)

	deriveCmd := &cobra.Command{
		Use:   "derive",
		Short: "differentiate the sine depth profile with the boundary-aware stencil",
		RunE:  deriveDepth,
	}
	addGridFlags(deriveCmd, 0.3, 2.5)

	gridCmd := &cobra.Command{
		Use:   "grid",
		Short: "print the nodes and widths of a 1-D grid",
		RunE:  showGrid,
	}
	addGridFlags(gridCmd, -0.5, 0.5)

	heatmapCmd := &cobra.Command{
		Use:   "heatmap [taylor-green|poiseuille]",
		Short: "shade an analytic field sampled on a grid",
		Args:  cobra.ExactArgs(1),
		RunE:  showHeatmap,
	}
	heatmapCmd.Flags().Int("n", 33, "nodes per axis")
	heatmapCmd.Flags().StringVar(&component, "component", "vorticity", "taylor-green field: u, v, speed, vorticity")

	sectionCmd := &cobra.Command{
		Use:   "section [file]",
		Short: "analyse a cross-section JSON file",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeSection,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "browse and run studies interactively",
		RunE:  runTUI,
	}

	rootCmd.AddCommand(runCmd, tuneCmd, studiesCmd, presetsCmd, listCmd, showCmd, exportJSONCmd, exportSVGCmd,
		integrateCmd, deriveCmd, gridCmd, heatmapCmd, sectionCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// addStudyFlags registers the config layering flags shared by run and tune.
func addStudyFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&metric, "metric", "max", "error metric for field studies (max, rms, mean)")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel resolutions (0 = GOMAXPROCS)")
	cmd.Flags().IntVar(&start, "start", 0, "first resolution")
	cmd.Flags().IntVar(&stop, "stop", 0, "last resolution (inclusive)")
	cmd.Flags().IntVar(&step, "step", 0, "resolution step")
	cmd.Flags().IntSliceVar(&resolutions, "n", nil, "explicit resolutions, e.g. --n 11,21,41")
}

// addGridFlags registers the 1-D grid flags read back by gridFromFlags.
// Defaults differ per command, so they are not bound to shared variables.
func addGridFlags(cmd *cobra.Command, a, b float64) {
	cmd.Flags().String("grid", "uniform", "grid kind: uniform, clustered, quadratic")
	cmd.Flags().Int("n", 11, "number of nodes")
	cmd.Flags().Float64("a", a, "lower bound")
	cmd.Flags().Float64("b", b, "upper bound")
	cmd.Flags().Float64("clip", config.DefaultClip, "clustered grids: tanh clip radius in (0, 1)")
}

// bindEnv lets FIELDCALC_DATA and FIELDCALC_QUIET stand in for the
// persistent flags. An explicit flag still wins.
func bindEnv(root *cobra.Command) {
	viper.SetEnvPrefix("fieldcalc")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("data", root.PersistentFlags().Lookup("data"))
	_ = viper.BindPFlag("quiet", root.PersistentFlags().Lookup("quiet"))
}

func dataDir() string { return viper.GetString("data") }
func quiet() bool     { return viper.GetBool("quiet") }

func openStore() (*storage.Store, error) {
	st, err := storage.New(dataDir())
	if err != nil {
		return nil, err
	}
	return st, st.Init()
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runTUI(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()
	return tui.RunInteractive(ctx, study.NewRegistry(), st)
}
