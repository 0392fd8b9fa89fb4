package models

// WorkflowExecution is one end-to-end run of a pipeline, keyed by the
// engine's opaque session identifier. Created once per run and immutable
// afterwards.
type WorkflowExecution struct {
	ID              string  `json:"id"`
	StartTime       float64 `json:"start_time"`
	Duration        float64 `json:"duration"`
	RunName         string  `json:"run_name"`
	NextflowVersion *string `json:"nextflow_version"`
	FinalState      string  `json:"final_state"`
	RevisionID      string  `json:"revision_id"`
}
