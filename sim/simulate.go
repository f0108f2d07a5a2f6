package sim

// Simulate runs one full simulation and returns the raw sample streams:
// NumStages-1 intervals (the warm-up interval is dropped) and 2*NumStages
// idle times.
func Simulate(cfg Config) (RawResult, error) {
	s, err := NewSimulator(cfg)
	if err != nil {
		return RawResult{}, err
	}
	s.Run()
	return s.Metrics.Raw(), nil
}

// SimulateReduced runs one full simulation and reduces both sample streams
// to mean and standard error of the mean.
func SimulateReduced(cfg Config) (ReducedResult, error) {
	s, err := NewSimulator(cfg)
	if err != nil {
		return ReducedResult{}, err
	}
	s.Run()
	return s.Metrics.Reduce()
}
