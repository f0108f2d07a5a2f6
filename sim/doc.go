// Package sim simulates the operational timing of a magic-state factory:
// two groups of cultivation patches stochastically produce magic states,
// which are paired across the groups and consumed under a causal
// post-selection gate.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - patch.go: the patch state machine (none → cult → growing → idling → consumed)
//   - config.go: user-facing parameters and the derived tick constants
//   - simulator.go: the tick loop, transition rule, and pair consumption
//
// # Determinism
//
// A run is a pure function of its Config and Seed. Patches are processed
// in a fixed order every tick (group 0 in index order, then group 1), and
// the single OutcomeSource is consulted only at the two stage-completion
// decision points, so equal inputs reproduce bit-identical sample streams.
// Independent runs share no state; sweep.go exploits this to run plan
// entries in parallel.
package sim
