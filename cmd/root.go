package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/collision-sim/sim"
	"github.com/inference-sim/collision-sim/sim/render"
	"github.com/inference-sim/collision-sim/sim/scenario"
)

var (
	configPath      string        // YAML run configuration
	particlesPath   string        // particle file (.txt or scenario .yaml)
	randomCount     int           // number of random particles when no file is given
	seed            int64         // master seed for random particles
	horizon         float64       // simulation time limit
	tickHz          float64       // observer ticks per unit time
	boundsTolerance float64       // slack around the unit square
	renderEnabled   bool          // draw ticks to the terminal
	frameDelay      time.Duration // pause after each drawn frame
	tracePath       string        // event trace JSON output
	traceMaxRecords int           // cap on recorded events
	metricsOutPath  string        // metrics JSON output
	logLevel        string        // log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "collision-sim",
	Short: "Event-driven simulator for elastic particle collisions",
}

// runCmd executes the simulation using parameters from the config file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the collision simulation",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := resolveRunConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		states, err := loadStates(cfg.Seed)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		var observer sim.Observer
		var screen tcell.Screen
		if renderEnabled {
			if screen, err = render.OpenScreen(); err != nil {
				logrus.Fatalf("Cannot render: %v", err)
			}
			observer = render.NewTerminal(screen, frameDelay)
		}

		startTime := time.Now()
		engine, err := runSimulation(cfg, states, observer)
		// restore the terminal before any log output
		if screen != nil {
			screen.Fini()
		}
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Infof("Simulation complete in %v", time.Since(startTime))

		engine.Metrics.SaveResults(metricsOutPath)
	},
}

// resolveRunConfig loads the config file (if any) and overlays every flag the
// user set explicitly.
func resolveRunConfig(cmd *cobra.Command) (*sim.RunConfig, error) {
	cfg := sim.DefaultRunConfig()
	if configPath != "" {
		loaded, err := sim.LoadRunConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("horizon") {
		cfg.Horizon = horizon
	}
	if flags.Changed("tick-hz") {
		cfg.TickHz = tickHz
	}
	if flags.Changed("tolerance") {
		cfg.BoundsTolerance = boundsTolerance
	}
	if tracePath != "" && (cfg.Trace.Level == "" || cfg.Trace.Level == "none") {
		cfg.Trace.Level = "events"
	}
	if flags.Changed("trace-max-records") {
		cfg.Trace.MaxRecords = traceMaxRecords
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run config: %w", err)
	}
	return &cfg, nil
}

// loadStates reads the particle file, or generates randomCount particles.
func loadStates(masterSeed int64) ([]sim.ParticleState, error) {
	switch {
	case particlesPath != "":
		return scenario.Load(particlesPath)
	case randomCount > 0:
		states, err := scenario.Generate(scenario.DefaultRandomSpec(randomCount), masterSeed)
		if err != nil {
			return nil, err
		}
		logrus.Infof("Generated %d random particles (seed=%d)", len(states), masterSeed)
		return states, nil
	default:
		return nil, fmt.Errorf("either --particles or --random must be provided")
	}
}

// runSimulation builds and runs one engine, then writes the trace if requested.
func runSimulation(cfg *sim.RunConfig, states []sim.ParticleState, observer sim.Observer) (*sim.Engine, error) {
	engineCfg := cfg.EngineConfig(observer)
	engine, err := sim.NewEngine(states, engineCfg)
	if err != nil {
		return nil, err
	}
	if err := engine.Simulate(cfg.Horizon); err != nil {
		return nil, err
	}
	if engineCfg.Trace != nil && tracePath != "" {
		if err := engineCfg.Trace.WriteJSON(tracePath); err != nil {
			return nil, fmt.Errorf("writing trace: %w", err)
		}
		logrus.Infof("Event trace written to: %s", tracePath)
	}
	return engine, nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addRunFlags binds the run flags to c.
func addRunFlags(c *cobra.Command) {
	defaults := sim.DefaultRunConfig()

	c.Flags().StringVar(&configPath, "config", "", "Path to YAML run configuration")
	c.Flags().StringVar(&particlesPath, "particles", "", "Path to particle file (.txt, or scenario .yaml)")
	c.Flags().IntVar(&randomCount, "random", 0, "Generate this many random particles instead of reading a file")
	c.Flags().Int64Var(&seed, "seed", defaults.Seed, "Seed for random particle generation")
	c.Flags().Float64Var(&horizon, "horizon", defaults.Horizon, "Simulation time limit")
	c.Flags().Float64Var(&tickHz, "tick-hz", defaults.TickHz, "Observer ticks per unit of simulated time")
	c.Flags().Float64Var(&boundsTolerance, "tolerance", defaults.BoundsTolerance, "Allowed slack around the unit square")
	c.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Output
	c.Flags().BoolVar(&renderEnabled, "render", false, "Draw the simulation in the terminal")
	c.Flags().DurationVar(&frameDelay, "frame-delay", render.DefaultFrameDelay, "Pause after each rendered frame")
	c.Flags().StringVar(&tracePath, "trace", "", "Write the event trace and its summary as JSON to this path")
	c.Flags().IntVar(&traceMaxRecords, "trace-max-records", 0, "Maximum events kept in the trace (0 = unlimited)")
	c.Flags().StringVar(&metricsOutPath, "metrics-out", "", "Write run metrics as JSON to this path")

	c.MarkFlagsMutuallyExclusive("particles", "random")
}

// init sets up CLI flags and subcommands
func init() {
	addRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}
