package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/factory-sim/factory-sim/sim"
)

var sweepPlanPath string // Path to the YAML sweep plan

// sweepCmd runs every entry of a YAML sweep plan as an independent
// simulation, in parallel, and reports reduced statistics per entry.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a parameter sweep from a YAML plan",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		plan, err := sim.LoadSweepPlan(sweepPlanPath)
		if err != nil {
			logrus.Fatalf("Unable to load sweep plan: %v", err)
		}
		if err := plan.Validate(); err != nil {
			logrus.Fatalf("Invalid sweep plan: %v", err)
		}

		logrus.Infof("Running sweep with %d entries", len(plan.Runs))
		results := sim.RunSweep(plan)

		for i, res := range results {
			name := res.Entry.Name
			if name == "" {
				name = fmt.Sprintf("run %d", i)
			}
			if res.Err != nil {
				logrus.Errorf("%s: %v", name, res.Err)
				continue
			}
			fmt.Printf("%-20s interval %.4f ± %.4f ticks, idle %.4f ± %.4f ticks\n",
				name, res.Reduced.MeanInterval, res.Reduced.SEInterval,
				res.Reduced.MeanIdle, res.Reduced.SEIdle)
		}
	},
}

func init() {
	sweepCmd.Flags().StringVar(&sweepPlanPath, "plan", "", "Path to the YAML sweep plan file")
	sweepCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	if err := sweepCmd.MarkFlagRequired("plan"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(sweepCmd)
}
