package models

// ProcessExecution is one task instance within a workflow execution, keyed
// by the engine's short step hash. Requested-resource fields are pointers:
// the engine omits them when a process declared no request, and the store
// keeps that distinction as NULL.
type ProcessExecution struct {
	ID                  string   `json:"id"`
	WorkflowExecutionID string   `json:"workflow_execution_id"`
	ProcessName         string   `json:"process_name"`
	ModuleName          string   `json:"module_name"`
	ContainerName       string   `json:"container_name"`
	FinalStatus         string   `json:"final_status"`
	ExitCode            int      `json:"exit_code"`
	StartTime           float64  `json:"start_time"`
	Duration            float64  `json:"duration"`
	CPUsRequested       *float64 `json:"cpus_requested"`
	TimeRequested       *float64 `json:"time_requested"`
	StorageRequested    *float64 `json:"storage_requested"`
	MemoryRequested     *float64 `json:"memory_requested"`
	Realtime            float64  `json:"realtime"`
	QueueName           string   `json:"queue_name"`
	PercentCPU          float64  `json:"percent_cpu"`
	PercentMemory       float64  `json:"percent_memory"`
	PeakRSS             *float64 `json:"peak_rss"`
	PeakVmem            *float64 `json:"peak_vmem"`
	ReadChar            *float64 `json:"read_char"`
	WriteChar           *float64 `json:"write_char"`
}
