package domain

import "time"

// GateStatus represents the lifecycle state of a gate within a run.
type GateStatus string

const (
	// StatusPending indicates the gate is waiting to be executed.
	StatusPending GateStatus = "Pending"
	// StatusRunning indicates the gate is currently executing.
	StatusRunning GateStatus = "Running"
	// StatusSucceeded indicates every step of the gate exited zero.
	StatusSucceeded GateStatus = "Succeeded"
	// StatusFailed indicates a step of the gate exited non-zero.
	StatusFailed GateStatus = "Failed"
)

// Terminal reports whether the status is an end state.
func (s GateStatus) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// StepResult records the outcome of a single executed step.
type StepResult struct {
	Name     string        `json:"name"`
	ExitCode int           `json:"exit_code"`
	Duration time.Duration `json:"duration"`
}

// GateResult records the outcome of one gate within a run.
type GateResult struct {
	Gate    string     `json:"gate"`
	Status  GateStatus `json:"status"`
	// Steps holds results for the steps that actually ran. A fail-fast abort
	// leaves the remaining steps unrecorded.
	Steps    []StepResult  `json:"steps,omitempty"`
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}

// RunReport is the persisted record of a full pipeline run.
type RunReport struct {
	ID       string       `json:"id"`
	Event    Event        `json:"event"`
	CacheKey string       `json:"cache_key,omitempty"`
	Started  time.Time    `json:"started"`
	Duration time.Duration `json:"duration"`
	Results  []GateResult `json:"results"`
}

// Failed reports whether any gate in the run failed.
func (r *RunReport) Failed() bool {
	for _, res := range r.Results {
		if res.Status == StatusFailed {
			return true
		}
	}
	return false
}
