package sim

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// SweepEntry is one parameter set in a sweep plan, loadable from YAML.
// Nil pointer fields mean "not set in YAML" and fall back to the
// control-flow defaults.
type SweepEntry struct {
	Name                string   `yaml:"name"`
	DCult               int      `yaml:"dcult"`
	DM                  int      `yaml:"dm"`
	NumPatches          int      `yaml:"patches"`
	PSuccCult           float64  `yaml:"psucc_cult"`
	TCultRaw            int      `yaml:"t_cult"`
	PostSelectedGrowing *bool    `yaml:"post_selected_growing"`
	PSuccGrowing        *float64 `yaml:"psucc_growing"`
	NumStages           *int     `yaml:"num_stages"`
	Seed                int64    `yaml:"seed"`
}

// SweepPlan is a list of independent simulation runs.
type SweepPlan struct {
	Runs []SweepEntry `yaml:"runs"`
}

// Config converts the entry to a run configuration, applying defaults for
// fields the YAML left unset.
func (e SweepEntry) Config() Config {
	cfg := DefaultConfig()
	cfg.DCult = e.DCult
	cfg.DM = e.DM
	cfg.NumPatches = e.NumPatches
	cfg.PSuccCult = e.PSuccCult
	cfg.TCultRaw = e.TCultRaw
	cfg.Seed = e.Seed
	if e.PostSelectedGrowing != nil {
		cfg.PostSelectedGrowing = *e.PostSelectedGrowing
	}
	if e.PSuccGrowing != nil {
		cfg.PSuccGrowing = *e.PSuccGrowing
	}
	if e.NumStages != nil {
		cfg.NumStages = *e.NumStages
	}
	return cfg
}

// LoadSweepPlan reads and parses a YAML sweep plan file.
func LoadSweepPlan(path string) (*SweepPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sweep plan: %w", err)
	}
	var plan SweepPlan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parsing sweep plan: %w", err)
	}
	return &plan, nil
}

// Validate checks every entry's derived configuration before any run starts.
func (p *SweepPlan) Validate() error {
	if len(p.Runs) == 0 {
		return fmt.Errorf("%w: sweep plan has no runs", ErrInvalidParameter)
	}
	for i, entry := range p.Runs {
		if err := entry.Config().Validate(); err != nil {
			return fmt.Errorf("run %d (%s): %w", i, entry.Name, err)
		}
	}
	return nil
}

// SweepResult pairs a plan entry with its reduced statistics.
type SweepResult struct {
	Entry   SweepEntry
	Reduced ReducedResult
	Err     error
}

// RunSweep executes every entry of the plan as an independent simulation,
// one goroutine per run. Runs share no state (each owns its generator,
// patches, and clocks), so no locking is needed. Results come back in plan
// order regardless of completion order.
func RunSweep(plan *SweepPlan) []SweepResult {
	results := make([]SweepResult, len(plan.Runs))
	var wg sync.WaitGroup
	for i, entry := range plan.Runs {
		wg.Add(1)
		go func(i int, entry SweepEntry) {
			defer wg.Done()
			reduced, err := SimulateReduced(entry.Config())
			results[i] = SweepResult{Entry: entry, Reduced: reduced, Err: err}
		}(i, entry)
	}
	wg.Wait()
	return results
}
