package simulation

import "time"

// Recorder receives scheduler measurements. internal/metrics implements it
// with Prometheus.
type Recorder interface {
	ObserveTick(d time.Duration, population int)
	IncReassignments()
	SetPopulation(n int)
	SetSpeedMultiplier(x float64)
	SetSeparationLosses(n int)
}

type noopRecorder struct{}

func (noopRecorder) ObserveTick(time.Duration, int) {}
func (noopRecorder) IncReassignments()              {}
func (noopRecorder) SetPopulation(int)              {}
func (noopRecorder) SetSpeedMultiplier(float64)     {}
func (noopRecorder) SetSeparationLosses(int)        {}
