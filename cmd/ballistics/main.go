package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/ballistics/internal/config"
	"github.com/san-kum/ballistics/internal/drag"
	"github.com/san-kum/ballistics/internal/engine"
	"github.com/san-kum/ballistics/internal/export"
	"github.com/san-kum/ballistics/internal/log"
	"github.com/san-kum/ballistics/internal/storage"
	"github.com/san-kum/ballistics/internal/traj"
	"github.com/san-kum/ballistics/internal/viz"
)

var (
	dataDir    string
	debug      bool
	configFile string
	preset     string

	stepperName string
	rangeYd     float64
	stepYd      float64
	timeStep    float64
	muzzleVel   float64
	bc          float64
	dragModel   string
	sightHeight float64
	zeroDist    float64
	windSpeed   float64
	windDir     float64
	altitude    float64
	temperature float64
	lookAngle   float64
	cantAngle   float64

	outJSON bool
	outCSV  bool
	svgPath string
	save    bool

	chartWidth  int
	chartHeight int
)

func main() {
	defer log.Sync()

	rootCmd := &cobra.Command{
		Use:   "ballistics",
		Short: "exterior ballistics trajectory calculator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetDebug(debug)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ballistics", "data directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "cartridge preset (e.g. 308win/match)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "compute a trajectory table",
		RunE:  runTrajectory,
	}
	addShotFlags(runCmd)
	runCmd.Flags().BoolVar(&outJSON, "json", false, "print JSON instead of a table")
	runCmd.Flags().BoolVar(&outCSV, "csv", false, "print CSV instead of a table")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "also write the drop curve to an SVG file")
	runCmd.Flags().BoolVar(&save, "save", false, "archive the run in the data directory")

	zeroCmd := &cobra.Command{
		Use:   "zero",
		Short: "find the barrel elevation for the zero distance",
		RunE:  runZero,
	}
	addShotFlags(zeroCmd)

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "run the same shot with every stepper",
		RunE:  runCompare,
	}
	addShotFlags(compareCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "replay the trajectory in the terminal",
		RunE:  runLive,
	}
	addShotFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list archived runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "chart an archived run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&chartWidth, "width", 80, "chart width")
	plotCmd.Flags().IntVar(&chartHeight, "height", 10, "chart height")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "print an archived run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportArchivedJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "print an archived run as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportArchivedCSV,
	}

	dragCmd := &cobra.Command{
		Use:   "drag [model]",
		Short: "chart a drag curve against Mach number",
		Args:  cobra.ExactArgs(1),
		RunE:  plotDrag,
	}
	dragCmd.Flags().Float64Var(&bc, "bc", 0.3, "ballistic coefficient")
	dragCmd.Flags().IntVar(&chartWidth, "width", 80, "chart width")
	dragCmd.Flags().IntVar(&chartHeight, "height", 12, "chart height")

	presetsCmd := &cobra.Command{
		Use:   "presets [cartridge]",
		Short: "list available presets for a cartridge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for cartridge: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, zeroCmd, compareCmd, liveCmd, listCmd, plotCmd,
		exportJSONCmd, exportCSVCmd, dragCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addShotFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&stepperName, "stepper", "", "stepper: euler, rk4, rkf45")
	cmd.Flags().Float64Var(&rangeYd, "range", 0, "maximum range, yd")
	cmd.Flags().Float64Var(&stepYd, "step", 0, "reporting step, yd")
	cmd.Flags().Float64Var(&timeStep, "time-step", 0, "additional reporting step, s")
	cmd.Flags().Float64Var(&muzzleVel, "mv", 0, "muzzle velocity, fps")
	cmd.Flags().Float64Var(&bc, "bc", 0, "ballistic coefficient")
	cmd.Flags().StringVar(&dragModel, "drag-model", "", "drag model: g1, g7")
	cmd.Flags().Float64Var(&sightHeight, "sight-height", 0, "sight height, in")
	cmd.Flags().Float64Var(&zeroDist, "zero", 0, "zero distance, yd")
	cmd.Flags().Float64Var(&windSpeed, "wind-speed", 0, "wind speed, mph")
	cmd.Flags().Float64Var(&windDir, "wind-dir", 0, "wind bearing, degrees (0 = from behind)")
	cmd.Flags().Float64Var(&altitude, "altitude", 0, "firing altitude, ft")
	cmd.Flags().Float64Var(&temperature, "temp", 59, "air temperature, F")
	cmd.Flags().Float64Var(&lookAngle, "look", 0, "look angle, degrees")
	cmd.Flags().Float64Var(&cantAngle, "cant", 0, "cant angle, degrees")
}

// buildConfig layers preset, config file and changed flags, in that order.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cartridge, scenario := preset, "match"
		for i := range preset {
			if preset[i] == '/' {
				cartridge, scenario = preset[:i], preset[i+1:]
				break
			}
		}
		p := config.GetPreset(cartridge, scenario)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cartridge))
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("stepper") {
		cfg.Stepper = stepperName
	}
	if cmd.Flags().Changed("range") {
		cfg.Chart.RangeYd = rangeYd
	}
	if cmd.Flags().Changed("step") {
		cfg.Chart.StepYd = stepYd
	}
	if cmd.Flags().Changed("time-step") {
		cfg.Chart.TimeStepS = timeStep
	}
	if cmd.Flags().Changed("mv") {
		cfg.Ammo.MuzzleVelocityFPS = muzzleVel
	}
	if cmd.Flags().Changed("bc") {
		cfg.Ammo.BC = bc
	}
	if cmd.Flags().Changed("drag-model") {
		cfg.Ammo.DragModel = dragModel
	}
	if cmd.Flags().Changed("sight-height") {
		cfg.Weapon.SightHeightIn = sightHeight
	}
	if cmd.Flags().Changed("zero") {
		cfg.Weapon.ZeroDistanceYd = zeroDist
	}
	if cmd.Flags().Changed("wind-speed") || cmd.Flags().Changed("wind-dir") {
		cfg.Winds = []config.WindConfig{{SpeedMPH: windSpeed, DirectionDeg: windDir}}
	}
	if cmd.Flags().Changed("altitude") {
		cfg.Atmosphere.AltitudeFt = altitude
	}
	if cmd.Flags().Changed("temp") {
		cfg.Atmosphere.TemperatureF = temperature
	}
	if cmd.Flags().Changed("look") {
		cfg.Chart.LookAngleDeg = lookAngle
	}
	if cmd.Flags().Changed("cant") {
		cfg.Chart.CantAngleDeg = cantAngle
	}

	return cfg, nil
}

// solve builds the engine and shot, zeroes the rifle, and computes the full
// trajectory.
func solve(cfg *config.Config) (*engine.Result, error) {
	e, err := cfg.BuildEngine()
	if err != nil {
		return nil, err
	}
	s, err := cfg.BuildShot()
	if err != nil {
		return nil, err
	}

	if zd := cfg.ZeroDistanceFt(); zd > 0 {
		elevation, err := e.ZeroAngle(s, zd)
		if err != nil {
			return nil, err
		}
		s.Weapon.ZeroElevation = elevation
		log.Debugw("zeroed", "distance_ft", zd, "elevation_rad", elevation)
	}

	return e.Run(&s, cfg.RangeFt(), cfg.StepFt(), cfg.Chart.TimeStepS, traj.FlagAll)
}

func runTrajectory(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := solve(cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	rows := export.Rows(result, cfg.Ammo.BulletWeightGr)

	switch {
	case outJSON:
		if err := export.WriteJSON(os.Stdout, export.NewData("", cfg.Stepper, result, cfg.Ammo.BulletWeightGr)); err != nil {
			return err
		}
	case outCSV:
		if err := export.WriteCSV(os.Stdout, rows); err != nil {
			return err
		}
	default:
		printTable(rows)
		fmt.Printf("\n%s in %v, %d rows\n", result.Status, elapsed, len(rows))
		if result.Status == engine.Terminated {
			fmt.Printf("stopped early: %s\n", result.Reason)
		}
	}

	if svgPath != "" {
		if err := export.ExportSVG(svgPath, rows, 800, 400); err != nil {
			return err
		}
		fmt.Printf("svg written to %s\n", svgPath)
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(presetName(), cfg.Stepper, cfg.Ammo.BulletWeightGr, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	return nil
}

func presetName() string {
	if preset == "" {
		return "custom"
	}
	for i := range preset {
		if preset[i] == '/' {
			return preset[:i]
		}
	}
	return preset
}

func printTable(rows []export.Row) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "RANGE\tHEIGHT\tDROP\tWIND\tVEL\tMACH\tENERGY\tTIME\tEVENT\t")
	fmt.Fprintln(w, "(yd)\t(in)\t(moa)\t(in)\t(fps)\t\t(ftlb)\t(s)\t\t")
	for _, r := range rows {
		event := ""
		if r.Flags != "range" && r.Flags != "none" {
			event = r.Flags
		}
		fmt.Fprintf(w, "%.0f\t%.1f\t%.1f\t%.1f\t%.0f\t%.2f\t%.0f\t%.3f\t%s\t\n",
			r.RangeYd, r.HeightIn, r.DropAdjMOA, r.WindageIn,
			r.VelocityFPS, r.Mach, r.EnergyFtLb, r.TimeS, event)
	}
	w.Flush()
}

func runZero(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.ZeroDistanceFt() <= 0 {
		return fmt.Errorf("zero distance not set (--zero)")
	}

	e, err := cfg.BuildEngine()
	if err != nil {
		return err
	}
	s, err := cfg.BuildShot()
	if err != nil {
		return err
	}

	elevation, err := e.ZeroAngle(s, cfg.ZeroDistanceFt())
	if err != nil {
		return err
	}

	const moaPerRad = 60 * 180 / math.Pi
	fmt.Printf("zero distance: %.0f yd\n", cfg.Weapon.ZeroDistanceYd)
	fmt.Printf("barrel elevation: %.6f rad (%.2f moa, %.4f deg)\n",
		elevation, elevation*moaPerRad, elevation*180/math.Pi)
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("comparing steppers over %.0f yd\n\n", cfg.Chart.RangeYd)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEPPER\tDROP (in)\tWIND (in)\tVEL (fps)\tTIME (s)\tWALL")

	for _, name := range []string{"euler", "rk4", "rkf45"} {
		cfg.Stepper = name

		start := time.Now()
		result, err := solve(cfg)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}
		elapsed := time.Since(start)

		rows := export.Rows(result, cfg.Ammo.BulletWeightGr)
		if len(rows) == 0 {
			fmt.Fprintf(w, "%s\tno rows\n", name)
			continue
		}
		last := rows[len(rows)-1]
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.0f\t%.3f\t%v\n",
			name, last.HeightIn, last.WindageIn, last.VelocityFPS, last.TimeS, elapsed)
	}

	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	result, err := solve(cfg)
	if err != nil {
		return err
	}
	rows := export.Rows(result, cfg.Ammo.BulletWeightGr)
	if len(rows) == 0 {
		return fmt.Errorf("no trajectory rows to replay")
	}

	m := viz.NewModel(presetName(), rows)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCARTRIDGE\tTIME\tSTEPPER\tSTATUS\tROWS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			run.ID,
			run.Cartridge,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Stepper,
			run.Status,
			run.RowCount,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	rows, err := st.LoadRows(runID)
	if err != nil {
		return err
	}
	if len(rows) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("cartridge: %s (%s)\n\n", meta.Cartridge, meta.Stepper)
	fmt.Println(viz.DropChart(rows, chartWidth, chartHeight))
	fmt.Println()
	fmt.Println(viz.VelocityChart(rows, chartWidth, chartHeight))
	return nil
}

func exportArchivedJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	rows, err := st.LoadRows(args[0])
	if err != nil {
		return err
	}
	data := export.Data{
		Cartridge: meta.Cartridge,
		Stepper:   meta.Stepper,
		Status:    meta.Status,
		Reason:    meta.Reason,
		RowCount:  len(rows),
		Rows:      rows,
	}
	return export.WriteJSON(os.Stdout, data)
}

func exportArchivedCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	rows, err := st.LoadRows(args[0])
	if err != nil {
		return err
	}
	return export.WriteCSV(os.Stdout, rows)
}

func plotDrag(cmd *cobra.Command, args []string) error {
	curve, ok := drag.ByName(args[0])
	if !ok {
		return fmt.Errorf("unknown drag model %q", args[0])
	}
	fn := curve(bc)

	const minMach, maxMach, points = 0.0, 4.0, 160
	series := make([]float64, points)
	for i := range series {
		mach := minMach + (maxMach-minMach)*float64(i)/float64(points-1)
		series[i] = fn(mach)
	}

	graph := asciigraph.Plot(series,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Caption(fmt.Sprintf("%s drag factor, bc %.3f, mach %.0f-%.0f", args[0], bc, minMach, maxMach)),
	)
	fmt.Println(graph)
	return nil
}
