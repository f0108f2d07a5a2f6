package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"

	sim "github.com/factory-sim/factory-sim/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildConfig_FlagDefaults(t *testing.T) {
	// GIVEN the registered flag defaults
	cfg := buildConfig()

	// THEN the assembled config carries them through
	assert.Equal(t, 1, cfg.NumPatches)
	assert.True(t, cfg.PostSelectedGrowing)
	assert.Equal(t, sim.DefaultNumStages, cfg.NumStages)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.False(t, cfg.Verbose)
}

func TestReducedResult_PrintedToStdout(t *testing.T) {
	reduced := sim.ReducedResult{MeanInterval: 6.0, SEInterval: 0.1, MeanIdle: 1.5, SEIdle: 0.05}

	// Capture stdout
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	reduced.Print()

	_ = w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	output := buf.String()

	assert.Contains(t, output, "Factory Cycle Metrics")
	assert.Contains(t, output, "Mean interval")
}

func TestCommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["run"], "run subcommand missing")
	assert.True(t, names["sweep"], "sweep subcommand missing")
}
