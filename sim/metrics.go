// Collects the sample streams produced by the simulation and reduces them
// to summary statistics for final reporting.

package sim

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// ErrInsufficientSamples reports a reduction attempted over a sample stream
// with fewer than two elements, where the standard error is undefined.
var ErrInsufficientSamples = errors.New("insufficient samples")

// Metrics accumulates the simulation's sample streams. Both streams are
// append-only: one interval per consumed pair, two idle times per consumed
// pair (one patch from each group).
type Metrics struct {
	// Intervals holds, per stage, the ticks elapsed since the previous
	// consumption. The first entry is a warm-up transient from the empty
	// initial layout and is dropped before reporting.
	Intervals []int
	// IdleTimes holds, per consumed patch, the ticks it spent idling
	// between finishing its state and being consumed.
	IdleTimes []int
	// Displaced counts idling patches that were bumped out of their
	// group's slot by a newer success before ever being paired. Purely
	// diagnostic; it does not affect the sampled data.
	Displaced int
}

// NewMetrics creates an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RawResult is the raw output mode: the post-warm-up interval stream and
// the full idle-time stream.
type RawResult struct {
	Intervals []int
	IdleTimes []int
}

// ReducedResult is the reduced output mode: mean and standard error of the
// mean for each stream.
type ReducedResult struct {
	MeanInterval float64
	SEInterval   float64
	MeanIdle     float64
	SEIdle       float64
}

// Raw returns the raw sample streams with the warm-up interval dropped.
func (m *Metrics) Raw() RawResult {
	intervals := m.Intervals
	if len(intervals) > 0 {
		intervals = intervals[1:]
	}
	return RawResult{
		Intervals: intervals,
		IdleTimes: m.IdleTimes,
	}
}

// Reduce collapses both streams to mean and standard error of the mean.
// The warm-up interval is dropped first, exactly as in Raw.
func (m *Metrics) Reduce() (ReducedResult, error) {
	raw := m.Raw()
	meanIntv, seIntv, err := meanAndSE(raw.Intervals)
	if err != nil {
		return ReducedResult{}, fmt.Errorf("intervals: %w", err)
	}
	meanIdle, seIdle, err := meanAndSE(raw.IdleTimes)
	if err != nil {
		return ReducedResult{}, fmt.Errorf("idle times: %w", err)
	}
	return ReducedResult{
		MeanInterval: meanIntv,
		SEInterval:   seIntv,
		MeanIdle:     meanIdle,
		SEIdle:       seIdle,
	}, nil
}

// meanAndSE computes the arithmetic mean and the standard error of the mean
// (sample standard deviation with Bessel's correction over sqrt(n)).
func meanAndSE(samples []int) (float64, float64, error) {
	if len(samples) < 2 {
		return 0, 0, fmt.Errorf("%w: need at least 2, got %d", ErrInsufficientSamples, len(samples))
	}
	xs := make([]float64, len(samples))
	for i, v := range samples {
		xs[i] = float64(v)
	}
	mean := stat.Mean(xs, nil)
	se := stat.StdDev(xs, nil) / math.Sqrt(float64(len(xs)))
	return mean, se, nil
}

// Print displays the reduced statistics at the end of a run.
func (r ReducedResult) Print() {
	fmt.Println("=== Factory Cycle Metrics ===")
	fmt.Printf("Mean interval        : %.4f ± %.4f ticks\n", r.MeanInterval, r.SEInterval)
	fmt.Printf("Mean idle time       : %.4f ± %.4f ticks\n", r.MeanIdle, r.SEIdle)
}

// SaveToFile writes a raw sample stream to a file as comma-separated values.
func (m *Metrics) SaveToFile(data []int, fileName string) {
	file, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0777)
	if err != nil {
		logrus.Fatalf("Error creating file %s: %v\n", fileName, err)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logrus.Fatalf("Error closing file %s: %v\n", fileName, closeErr)
		}
	}()

	writer := bufio.NewWriter(file)

	defer func() {
		if flushErr := writer.Flush(); flushErr != nil {
			logrus.Fatalf("Error flushing writer for file %s: %v\n", fileName, flushErr)
		}
	}()

	for _, v := range data {
		if _, writeErr := fmt.Fprint(writer, v, ", "); writeErr != nil {
			logrus.Fatalf("Error writing int %d to file: %v\n", v, writeErr)
			return
		}
	}

	logrus.Debugf("Successfully wrote to '%s'\n", fileName)
}
