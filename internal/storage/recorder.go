package storage

import "cellsociety/internal/runner"

// Recorder ties population samples to one run.
type Recorder struct {
	store *Store
	runID int64
}

// Recorder returns a runner.Recorder writing to runID.
func (s *Store) Recorder(runID int64) *Recorder {
	return &Recorder{store: s, runID: runID}
}

// RunID returns the run the recorder writes to.
func (r *Recorder) RunID() int64 { return r.runID }

// Record implements runner.Recorder.
func (r *Recorder) Record(generation int, counts map[string]int) error {
	return r.store.RecordPopulation(r.runID, generation, counts)
}

// Finish implements runner.Recorder.
func (r *Recorder) Finish(steps int) error {
	return r.store.FinishRun(r.runID, steps)
}

var _ runner.Recorder = (*Recorder)(nil)
