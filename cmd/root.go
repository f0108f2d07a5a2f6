package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/factory-sim/factory-sim/sim"
)

var (
	// CLI flags for the factory parameters
	dcult        int     // Code distance during cultivation
	dm           int     // Code distance after growing
	patches      int     // Patch count per group
	psuccCult    float64 // Cultivation success probability
	tcult        int     // Cultivation attempt duration in raw time units
	postSelected bool    // Post-select growth outcomes on the logical gap
	psuccGrowing float64 // Growing success probability
	numStages    int     // Number of consumed pairs to simulate
	seed         int64   // Seed for the run's outcome source
	logLevel     string  // Log verbosity level
	verbose      bool    // Per-tick diagnostic logging
	getAll       bool    // Print raw samples instead of reduced statistics
	intervalsOut string  // File to dump raw interval samples to
	idleOut      string  // File to dump raw idle-time samples to
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "factory-sim",
	Short: "Discrete-tick simulator for magic-state factory cycle timing",
}

// runCmd executes one simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the factory cycle simulation",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		if verbose && level < logrus.InfoLevel {
			level = logrus.InfoLevel
		}
		logrus.SetLevel(level)

		cfg := buildConfig()
		s, err := sim.NewSimulator(cfg)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		logrus.Infof("Starting simulation: dcult=%d dm=%d patches=%d stages=%d seed=%d",
			cfg.DCult, cfg.DM, cfg.NumPatches, cfg.NumStages, cfg.Seed)

		s.Run()

		if intervalsOut != "" {
			s.Metrics.SaveToFile(s.Metrics.Raw().Intervals, intervalsOut)
		}
		if idleOut != "" {
			s.Metrics.SaveToFile(s.Metrics.Raw().IdleTimes, idleOut)
		}

		if getAll {
			raw := s.Metrics.Raw()
			fmt.Println("intervals:", raw.Intervals)
			fmt.Println("idle times:", raw.IdleTimes)
		} else {
			reduced, err := s.Metrics.Reduce()
			if err != nil {
				logrus.Fatalf("Unable to reduce samples: %v", err)
			}
			reduced.Print()
		}
		if s.Metrics.Displaced > 0 {
			logrus.Infof("Displaced %d idling patches before pairing", s.Metrics.Displaced)
		}

		logrus.Info("Simulation complete.")
	},
}

// buildConfig assembles a sim.Config from the CLI flags.
func buildConfig() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.DCult = dcult
	cfg.DM = dm
	cfg.NumPatches = patches
	cfg.PSuccCult = psuccCult
	cfg.TCultRaw = tcult
	cfg.PostSelectedGrowing = postSelected
	cfg.PSuccGrowing = psuccGrowing
	cfg.NumStages = numStages
	cfg.Seed = seed
	cfg.Verbose = verbose
	return cfg
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().IntVar(&dcult, "dcult", 0, "Code distance of each patch during cultivation")
	runCmd.Flags().IntVar(&dm, "dm", 0, "Code distance of each patch after growing")
	runCmd.Flags().IntVar(&patches, "patches", 1, "Number of cultivation patches per group")
	runCmd.Flags().Float64Var(&psuccCult, "psucc-cult", 0, "Cultivation success probability")
	runCmd.Flags().IntVar(&tcult, "t-cult", 0, "Cultivation attempt duration in raw time units")
	runCmd.Flags().BoolVar(&postSelected, "post-selected-growing", true, "Post-select growth outcomes on the logical gap")
	runCmd.Flags().Float64Var(&psuccGrowing, "psucc-growing", 0, "Growing success probability (required when dm > dcult)")
	runCmd.Flags().IntVar(&numStages, "stages", sim.DefaultNumStages, "Number of consumed pairs to simulate")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for the run's outcome source")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().BoolVar(&verbose, "verbose", false, "Log per-tick patch status snapshots")
	runCmd.Flags().BoolVar(&getAll, "all", false, "Print raw sample streams instead of reduced statistics")
	runCmd.Flags().StringVar(&intervalsOut, "intervals-out", "", "File to write raw interval samples to")
	runCmd.Flags().StringVar(&idleOut, "idle-out", "", "File to write raw idle-time samples to")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
