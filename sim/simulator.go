// sim/simulator.go
package sim

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Simulator is the core object that holds the factory state and the tick
// loop. One tick covers TickGranularity raw time units; all clocks count
// ticks.
//
// The loop is single-threaded and fully sequential. Every tick it advances
// all clocks, applies the transition rule to every patch in a fixed order
// (group 0 in index order, then group 1), and consumes a pair when both
// groups hold an idling patch inside the consumability window. Mutations
// made early in a pass, notably idling-slot displacement, are visible to
// patches processed later in the same pass. That ordering also fixes the
// sequence of random draws, so it is load-bearing for reproducibility.
type Simulator struct {
	Config Config
	Params DerivedParams

	// Clock counts ticks since simulation start.
	Clock int64
	// StageClock counts ticks since the last consumption event.
	StageClock int
	// CultClock counts, per group, ticks since a cultivation attempt last
	// started in that group. No patch may start cultivating while its
	// group's counter is below the stagger interval Tm.
	CultClock [2]int
	// Patches is the flat arena: [0, Nm) is group 0, [Nm, 2*Nm) group 1.
	Patches []Patch
	// Idling holds, per group, the arena index of the patch currently in
	// idling status, or noPatch. At most one patch per group idles at a
	// time; a newer success displaces the previous occupant.
	Idling [2]int

	Metrics *Metrics

	outcomes *OutcomeSource
}

// NewSimulator validates the configuration, derives the tick constants, and
// builds the initial layout: all patches empty except the first of each
// group, which starts cultivating at once.
func NewSimulator(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Simulator{
		Config:   cfg,
		Params:   cfg.Derive(),
		Patches:  newPatchArena(cfg.NumPatches),
		Idling:   [2]int{noPatch, noPatch},
		Metrics:  NewMetrics(),
		outcomes: NewOutcomeSource(cfg.Seed),
	}, nil
}

// attemptSchedule starts a new cultivation attempt on the patch if its
// group's stagger window has elapsed; otherwise the patch goes (or stays)
// empty and waits its turn.
func (s *Simulator) attemptSchedule(idx int) {
	p := &s.Patches[idx]
	if s.CultClock[p.Group] >= s.Params.Tm {
		p.ChangeStatus(StatusCultivating)
		s.CultClock[p.Group] = 0
	} else if p.Status != StatusNone {
		p.ChangeStatus(StatusNone)
	}
}

// occupyIdlingSlot moves a freshly successful patch into its group's idling
// slot. A previous occupant is displaced first: it is recycled through
// attemptSchedule and its finished state is silently lost, which the
// Displaced counter makes visible.
func (s *Simulator) occupyIdlingSlot(idx int) {
	p := &s.Patches[idx]
	if prev := s.Idling[p.Group]; prev != noPatch {
		s.attemptSchedule(prev)
		s.Metrics.Displaced++
	}
	p.ChangeStatus(StatusIdling)
	s.Idling[p.Group] = idx
}

// stepPatch applies the per-tick transition rule to one patch. Outcomes of
// a gating stage are drawn only inside a consumable window; outside it the
// draw is skipped entirely and the outcome forced to failure, which keeps
// the random sequence aligned with the reference.
func (s *Simulator) stepPatch(idx int, consumable bool) {
	p := &s.Patches[idx]
	switch p.Status {
	case StatusNone:
		s.attemptSchedule(idx)

	case StatusCultivating:
		if p.Clock != s.Params.TCult {
			return
		}
		// An intermediate cultivation (one feeding a growing stage) is
		// drawn even outside the window, since growing itself is gated.
		success := false
		if consumable || s.Params.NeedGrowing {
			success = s.outcomes.Bernoulli(s.Config.PSuccCult)
		}
		if !success {
			s.attemptSchedule(idx)
			return
		}
		if s.Params.NeedGrowing {
			p.ChangeStatus(StatusGrowing)
		} else {
			s.occupyIdlingSlot(idx)
		}

	case StatusGrowing:
		if p.Clock != s.Params.TGrowing {
			return
		}
		success := false
		if consumable {
			success = s.outcomes.Bernoulli(s.Config.PSuccGrowing)
		}
		if success {
			s.occupyIdlingSlot(idx)
		} else {
			s.attemptSchedule(idx)
		}

	case StatusConsumed:
		if p.Clock == s.Config.DM+1 {
			s.attemptSchedule(idx)
		}

	case StatusIdling:
		// Only consumption or displacement moves an idling patch.
	}
}

// Step advances the simulation by one tick.
func (s *Simulator) Step() {
	s.Clock++
	s.StageClock++
	s.CultClock[0]++
	s.CultClock[1]++
	for i := range s.Patches {
		s.Patches[i].Clock++
	}

	// The first window is always consumable: with no prior consumption
	// there is nothing to be causally close to. Later windows open only
	// once the stage clock exceeds the post-selection distance.
	consumable := s.StageClock > s.Config.DM || len(s.Metrics.Intervals) == 0

	for i := range s.Patches {
		s.stepPatch(i, consumable)
	}

	if consumable && s.Idling[0] != noPatch && s.Idling[1] != noPatch {
		for group := 0; group < 2; group++ {
			p := &s.Patches[s.Idling[group]]
			s.Metrics.IdleTimes = append(s.Metrics.IdleTimes, p.Clock)
			p.ChangeStatus(StatusConsumed)
			s.Idling[group] = noPatch
		}
		s.Metrics.Intervals = append(s.Metrics.Intervals, s.StageClock)
		s.StageClock = 0
	}

	if s.Config.Verbose {
		s.logSnapshot(consumable)
	}
}

// Run executes ticks until the configured number of stages has been
// consumed. Degenerate parameters that can never produce a pair make this
// loop non-terminating; guarding against that is the caller's job.
func (s *Simulator) Run() {
	if s.Config.Verbose {
		s.logDerived()
	}
	for len(s.Metrics.Intervals) < s.Config.NumStages {
		s.Step()
	}
	logrus.Debugf("[tick %07d] Simulation ended after %d stages", s.Clock, len(s.Metrics.Intervals))
}

func (s *Simulator) logDerived() {
	logrus.Infof("dm = %d", s.Config.DM)
	logrus.Infof("dcult = %d", s.Config.DCult)
	logrus.Infof("Number of patches = %d", s.Config.NumPatches)
	logrus.Infof("Cultivation success probability = %v", s.Config.PSuccCult)
	logrus.Infof("Cultivation rounds = %d", s.Params.TCult)
	logrus.Infof("Cultivation interval = %d", s.Params.Tm)
	logrus.Infof("Growing success probability = %v", s.Config.PSuccGrowing)
}

func (s *Simulator) logSnapshot(consumable bool) {
	logrus.Infof("[tick %07d] stage clock=%d cult clocks=%v consumable=%v", s.Clock, s.StageClock, s.CultClock, consumable)
	nm := s.Config.NumPatches
	logrus.Infof("[tick %07d] left:  %s", s.Clock, formatPatches(s.Patches[:nm]))
	logrus.Infof("[tick %07d] right: %s", s.Clock, formatPatches(s.Patches[nm:]))
}

func formatPatches(patches []Patch) string {
	var sb strings.Builder
	for i, p := range patches {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%s(%d)", p.Status, p.Clock)
	}
	return sb.String()
}
