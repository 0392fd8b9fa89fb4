package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"nf-provenance/core/models"
)

// BCODocument is the subset of a BioCompute Object provenance document the
// extractor reads.
type BCODocument struct {
	ExecutionDomain   ExecutionDomain   `json:"execution_domain"`
	DescriptionDomain DescriptionDomain `json:"description_domain"`
}

// ExecutionDomain carries the software environment of the run.
type ExecutionDomain struct {
	SoftwarePrerequisites []SoftwarePrerequisite `json:"software_prerequisites"`
}

// SoftwarePrerequisite names one tool of the software environment.
type SoftwarePrerequisite struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// DescriptionDomain carries the ordered pipeline steps.
type DescriptionDomain struct {
	PipelineSteps []PipelineStep `json:"pipeline_steps"`
}

// PipelineStep is one declared step with its input and output artifacts.
type PipelineStep struct {
	Name       string          `json:"name"`
	InputList  []FileReference `json:"input_list"`
	OutputList []FileReference `json:"output_list"`
}

// FileReference points at one declared artifact.
type FileReference struct {
	URI string `json:"uri"`
}

// LoadBCO reads and decodes a BCO provenance document.
func LoadBCO(path string) (*BCODocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Source: path, Err: fmt.Errorf("%w: %v", ErrSourceUnavailable, err)}
	}

	var doc BCODocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &Error{Source: path, Err: fmt.Errorf("%w: %v", ErrFormat, err)}
	}
	return &doc, nil
}

// NextflowVersion returns the version of the "Nextflow" entry in the
// document's software prerequisites, or nil if no such entry exists.
func NextflowVersion(doc *BCODocument) *string {
	for _, p := range doc.ExecutionDomain.SoftwarePrerequisites {
		if p.Name == "Nextflow" {
			v := p.Version
			return &v
		}
	}
	return nil
}

// ExecutionFiles walks the document's pipeline steps and returns the input
// and output file records, each fingerprinted via the content
// fingerprinter. A reference that cannot be resolved on disk gets an absent
// fingerprint and a warning instead of failing the extraction.
func ExecutionFiles(doc *BCODocument) (inputs, outputs []models.ExecutionFile) {
	for _, step := range doc.DescriptionDomain.PipelineSteps {
		processID := processExecutionID(step.Name)

		for _, ref := range step.InputList {
			inputs = append(inputs, fileRecord(processID, ref.URI))
		}
		for _, ref := range step.OutputList {
			outputs = append(outputs, fileRecord(processID, ref.URI))
		}
	}
	return inputs, outputs
}

func fileRecord(processID, uri string) models.ExecutionFile {
	record := models.ExecutionFile{
		ProcessExecutionID: processID,
		Filename:           uri,
	}

	digest, err := FingerprintReference(uri)
	switch {
	case errors.Is(err, ErrUnresolvedReference):
		slog.Warn("provenance reference does not resolve to a local path", "uri", uri, "process", processID)
	case err != nil:
		slog.Warn("failed to fingerprint provenance reference", "uri", uri, "process", processID, "error", err)
	default:
		record.XXHash128 = &digest
	}
	return record
}

// processExecutionID derives the trace-file process identifier from a BCO
// step name. The engine names each task working directory by the first two
// hash characters and the next six, joined with a slash; this is the single
// place that convention is encoded.
func processExecutionID(name string) string {
	if len(name) <= 2 {
		return name
	}
	if len(name) < 8 {
		return name[:2] + "/" + name[2:]
	}
	return name[:2] + "/" + name[2:8]
}
