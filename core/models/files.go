package models

// ParameterInput is one named input parameter of a process execution.
// The pair (process execution, parameter name) is unique.
type ParameterInput struct {
	ProcessExecutionID string `json:"process_execution_id"`
	ParameterName      string `json:"parameter_name"`
	ParameterValue     string `json:"parameter_value"`
}

// ExecutionFile is a file consumed or produced by a process execution.
// Filename keeps the original URI from the provenance document. XXHash128
// is nil when the referenced path could not be resolved on disk at
// extraction time.
type ExecutionFile struct {
	ProcessExecutionID string  `json:"process_execution_id"`
	Filename           string  `json:"filename"`
	XXHash128          *string `json:"xxhash128"`
}
