package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter reports a configuration rejected by Validate before
// the simulation loop starts.
var ErrInvalidParameter = errors.New("invalid parameter")

// TickGranularity is the number of raw time units per simulation tick.
// Cultivation durations are quoted in raw units and converted to ticks at
// this fixed resolution.
const TickGranularity = 8

// ceilEpsilon guards the duration conversion against floating rounding
// pushing an exact multiple of the granularity up by one tick.
const ceilEpsilon = 1e-6

const (
	// DefaultNumStages is the stage-count default the reference control
	// flow actually uses.
	DefaultNumStages = 1000
	// DocumentedNumStages is the stage-count default the reference
	// documents. The two disagree; callers choose explicitly.
	DocumentedNumStages = 10000
)

// Config holds the user-facing parameters of one simulation run.
type Config struct {
	// DCult is the code distance of each patch during cultivation.
	DCult int
	// DM is the code distance after growing. It doubles as the causal
	// post-selection distance and the base of the consumed-patch cooldown.
	DM int
	// NumPatches is the patch count per group; the layout holds twice this.
	NumPatches int
	// PSuccCult is the cultivation success probability, in (0, 1].
	PSuccCult float64
	// TCultRaw is the duration of one cultivation attempt in raw time
	// units, excluding growing.
	TCultRaw int
	// PostSelectedGrowing requests post-selection of growth outcomes. It
	// only takes effect when growth is actually needed (DM > DCult).
	PostSelectedGrowing bool
	// PSuccGrowing is the growth success probability, in (0, 1]. Required
	// whenever growth outcomes are drawn.
	PSuccGrowing float64
	// NumStages is the number of consumed pairs to simulate.
	NumStages int
	// Seed seeds the run's outcome source. Runs with the same seed and
	// config reproduce bit-identically.
	Seed int64
	// Verbose enables per-tick diagnostic logging.
	Verbose bool
}

// DefaultConfig returns a Config with the reference control-flow defaults
// filled in. Physical parameters have no sensible defaults and stay zero.
func DefaultConfig() Config {
	return Config{
		PostSelectedGrowing: true,
		NumStages:           DefaultNumStages,
	}
}

// NeedGrowing reports whether a growing stage exists at all.
func (c Config) NeedGrowing() bool {
	return c.DM > c.DCult
}

// Validate checks the configuration before the loop starts, so a missing
// growth probability fails fast instead of mid-simulation. Note a success
// probability is allowed to be arbitrarily small but not zero; very small
// values make termination the caller's problem, as in the reference.
func (c Config) Validate() error {
	if c.DCult <= 0 {
		return fmt.Errorf("%w: dcult must be positive, got %d", ErrInvalidParameter, c.DCult)
	}
	if c.DM <= 0 {
		return fmt.Errorf("%w: dm must be positive, got %d", ErrInvalidParameter, c.DM)
	}
	if c.NumPatches <= 0 {
		return fmt.Errorf("%w: patch count must be positive, got %d", ErrInvalidParameter, c.NumPatches)
	}
	if c.TCultRaw <= 0 {
		return fmt.Errorf("%w: cultivation time must be positive, got %d", ErrInvalidParameter, c.TCultRaw)
	}
	if c.NumStages <= 0 {
		return fmt.Errorf("%w: stage count must be positive, got %d", ErrInvalidParameter, c.NumStages)
	}
	if c.PSuccCult <= 0 || c.PSuccCult > 1 {
		return fmt.Errorf("%w: cultivation success probability must be in (0, 1], got %v", ErrInvalidParameter, c.PSuccCult)
	}
	if c.NeedGrowing() && (c.PSuccGrowing <= 0 || c.PSuccGrowing > 1) {
		return fmt.Errorf("%w: growing success probability must be in (0, 1] when dm > dcult, got %v", ErrInvalidParameter, c.PSuccGrowing)
	}
	return nil
}

// DerivedParams are the integer tick-based constants the loop runs on.
type DerivedParams struct {
	// TCult is the cultivation duration in ticks.
	TCult int
	// NeedGrowing is true when DM > DCult.
	NeedGrowing bool
	// Tm is the stagger interval: a group starts at most one new
	// cultivation attempt every Tm ticks.
	Tm int
	// PostSelectedGrowing is the effective post-selection flag (requested
	// AND growth actually needed).
	PostSelectedGrowing bool
	// TGrowing is the growing duration in ticks: DM when post-selected,
	// else a nominal pass-through tick.
	TGrowing int
}

// Derive converts the raw configuration into tick-based loop constants.
func (c Config) Derive() DerivedParams {
	d := DerivedParams{
		TCult:       int(math.Ceil(float64(c.TCultRaw)/TickGranularity - ceilEpsilon)),
		NeedGrowing: c.NeedGrowing(),
	}
	d.Tm = (d.TCult + c.NumPatches - 1) / c.NumPatches
	d.PostSelectedGrowing = c.PostSelectedGrowing && d.NeedGrowing
	if d.PostSelectedGrowing {
		d.TGrowing = c.DM
	} else {
		d.TGrowing = 1
	}
	return d
}
