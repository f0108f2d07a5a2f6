package sim

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRaw_DropsWarmupInterval(t *testing.T) {
	m := NewMetrics()
	m.Intervals = []int{1, 7, 8, 9}
	m.IdleTimes = []int{0, 2, 1, 0, 3, 1, 0, 2}

	raw := m.Raw()
	assert.Equal(t, []int{7, 8, 9}, raw.Intervals)
	// Idle times are kept in full, first stage included.
	assert.Equal(t, m.IdleTimes, raw.IdleTimes)
}

func TestMeanAndSE(t *testing.T) {
	mean, se, err := meanAndSE([]int{2, 4, 6, 8})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, mean, 1e-12)
	// Sample stddev of {2,4,6,8} is sqrt(20/3); SE divides by sqrt(4).
	assert.InDelta(t, math.Sqrt(20.0/3.0)/2.0, se, 1e-12)
}

func TestMeanAndSE_ConstantSamples(t *testing.T) {
	mean, se, err := meanAndSE([]int{5, 5, 5, 5, 5})
	require.NoError(t, err)
	assert.Equal(t, 5.0, mean)
	assert.Zero(t, se)
}

func TestReduce_InsufficientSamples(t *testing.T) {
	tests := []struct {
		name      string
		intervals []int
		idles     []int
	}{
		{"empty run", []int{1}, nil},
		{"single post-warmup interval", []int{1, 7}, []int{0, 1, 0, 2}},
		{"single idle sample", []int{1, 7, 8}, []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMetrics()
			m.Intervals = tt.intervals
			m.IdleTimes = tt.idles
			_, err := m.Reduce()
			assert.ErrorIs(t, err, ErrInsufficientSamples)
		})
	}
}

func TestReduce_MatchesStreamStatistics(t *testing.T) {
	m := NewMetrics()
	m.Intervals = []int{1, 6, 8, 10}
	m.IdleTimes = []int{0, 2, 4, 6}

	reduced, err := m.Reduce()
	require.NoError(t, err)
	assert.InDelta(t, 8.0, reduced.MeanInterval, 1e-12)
	assert.InDelta(t, 2.0/math.Sqrt(3.0), reduced.SEInterval, 1e-12)
	assert.InDelta(t, 3.0, reduced.MeanIdle, 1e-12)
}

func TestSaveToFile(t *testing.T) {
	m := NewMetrics()
	path := filepath.Join(t.TempDir(), "intervals.txt")

	m.SaveToFile([]int{7, 8, 9}, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "7, 8, 9, ", string(data))
}
