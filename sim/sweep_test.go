package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sweepYAML = `
runs:
  - name: narrow
    dcult: 3
    dm: 5
    patches: 1
    psucc_cult: 0.6
    t_cult: 32
    psucc_growing: 0.7
    num_stages: 100
    seed: 1
  - name: wide
    dcult: 3
    dm: 5
    patches: 4
    psucc_cult: 0.6
    t_cult: 32
    psucc_growing: 0.7
    num_stages: 100
    seed: 1
`

func writeSweepPlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSweepPlan(t *testing.T) {
	plan, err := LoadSweepPlan(writeSweepPlan(t, sweepYAML))
	require.NoError(t, err)
	require.Len(t, plan.Runs, 2)

	assert.Equal(t, "narrow", plan.Runs[0].Name)
	assert.Equal(t, 1, plan.Runs[0].NumPatches)
	assert.Equal(t, 4, plan.Runs[1].NumPatches)
	require.NoError(t, plan.Validate())
}

func TestLoadSweepPlan_MissingFile(t *testing.T) {
	_, err := LoadSweepPlan(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadSweepPlan_Malformed(t *testing.T) {
	_, err := LoadSweepPlan(writeSweepPlan(t, "runs: [not: {a list"))
	assert.Error(t, err)
}

func TestSweepEntry_Defaults(t *testing.T) {
	entry := SweepEntry{
		DCult:      3,
		DM:         5,
		NumPatches: 2,
		PSuccCult:  0.5,
		TCultRaw:   32,
	}
	cfg := entry.Config()

	// Unset YAML fields fall back to the control-flow defaults.
	assert.True(t, cfg.PostSelectedGrowing)
	assert.Equal(t, DefaultNumStages, cfg.NumStages)

	off := false
	stages := 50
	entry.PostSelectedGrowing = &off
	entry.NumStages = &stages
	cfg = entry.Config()
	assert.False(t, cfg.PostSelectedGrowing)
	assert.Equal(t, 50, cfg.NumStages)
}

func TestSweepPlanValidate_NamesBadEntry(t *testing.T) {
	plan, err := LoadSweepPlan(writeSweepPlan(t, sweepYAML))
	require.NoError(t, err)
	plan.Runs[1].PSuccCult = 0

	err = plan.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.Contains(t, err.Error(), "run 1 (wide)")
}

func TestSweepPlanValidate_Empty(t *testing.T) {
	plan := &SweepPlan{}
	assert.ErrorIs(t, plan.Validate(), ErrInvalidParameter)
}

func TestRunSweep_OrderAndDeterminism(t *testing.T) {
	plan, err := LoadSweepPlan(writeSweepPlan(t, sweepYAML))
	require.NoError(t, err)

	first := RunSweep(plan)
	second := RunSweep(plan)

	require.Len(t, first, 2)
	assert.Equal(t, "narrow", first[0].Entry.Name)
	assert.Equal(t, "wide", first[1].Entry.Name)
	for i := range first {
		require.NoError(t, first[i].Err)
		// Each entry owns its generator, so parallel execution does not
		// perturb per-entry results.
		assert.Equal(t, first[i].Reduced, second[i].Reduced)
	}
}
