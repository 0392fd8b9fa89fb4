// Package submit sequences extraction and pushes the resulting records to
// the provenance store.
package submit

import (
	"context"
	"errors"
	"log/slog"

	"nf-provenance/core/extract"
	"nf-provenance/core/models"
)

// Store is the slice of the storage API the driver needs.
type Store interface {
	CreateWorkflow(ctx context.Context, w *models.WorkflowExecution) (*models.WorkflowExecution, error)
	CreateProcess(ctx context.Context, p *models.ProcessExecution) (*models.ProcessExecution, error)
	CreateInputFile(ctx context.Context, f *models.ExecutionFile) (*models.ExecutionFile, error)
	CreateOutputFile(ctx context.Context, f *models.ExecutionFile) (*models.ExecutionFile, error)
}

// Driver extracts provenance from one engine run and submits it: the
// workflow record first, then its process executions in trace order, then
// input and output files.
//
// Failure policy: extraction failures abort, submission failures do not.
// A record the store rejects is logged and collected while the remaining
// records still go through, uniformly for all three record kinds;
// resubmitting later cannot corrupt anything because every record carries
// its natural key. The collected errors come back joined.
type Driver struct {
	store   Store
	history extract.HistorySource
	logger  *slog.Logger
}

// NewDriver creates a submission driver.
func NewDriver(store Store, history extract.HistorySource, logger *slog.Logger) *Driver {
	return &Driver{store: store, history: history, logger: logger}
}

// Submit extracts and submits the provenance of the run described by the
// engine log and the BCO provenance document.
func (d *Driver) Submit(ctx context.Context, logPath, bcoPath string) error {
	doc, err := extract.LoadBCO(bcoPath)
	if err != nil {
		return err
	}

	history, err := d.history(ctx)
	if err != nil {
		return err
	}
	workflow, err := extract.LatestWorkflowExecution(history, "run history", doc)
	history.Close()
	if err != nil {
		return err
	}

	var failures []error
	if _, err := d.store.CreateWorkflow(ctx, workflow); err != nil {
		d.logger.Error("failed to submit workflow execution", "workflow", workflow.ID, "error", err)
		failures = append(failures, err)
	} else {
		d.logger.Info("workflow execution submitted", "workflow", workflow.ID, "run_name", workflow.RunName)
	}

	tracePath, err := extract.TraceFilePath(logPath)
	if err != nil {
		return errors.Join(append(failures, err)...)
	}
	d.logger.Info("processing trace file", "path", tracePath)

	processes, err := extract.TraceFile(tracePath, workflow.ID)
	if err != nil {
		return errors.Join(append(failures, err)...)
	}
	for i := range processes {
		p := &processes[i]
		if _, err := d.store.CreateProcess(ctx, p); err != nil {
			d.logger.Error("failed to submit process execution", "process", p.ProcessName, "id", p.ID, "error", err)
			failures = append(failures, err)
			continue
		}
		d.logger.Info("process execution submitted", "process", p.ProcessName, "id", p.ID)
	}

	d.logger.Info("processing provenance file", "path", bcoPath)
	inputs, outputs := extract.ExecutionFiles(doc)
	for i := range inputs {
		f := &inputs[i]
		if _, err := d.store.CreateInputFile(ctx, f); err != nil {
			d.logger.Error("failed to submit input file", "filename", f.Filename, "error", err)
			failures = append(failures, err)
			continue
		}
		d.logger.Info("input file submitted", "filename", f.Filename)
	}
	for i := range outputs {
		f := &outputs[i]
		if _, err := d.store.CreateOutputFile(ctx, f); err != nil {
			d.logger.Error("failed to submit output file", "filename", f.Filename, "error", err)
			failures = append(failures, err)
			continue
		}
		d.logger.Info("output file submitted", "filename", f.Filename)
	}

	return errors.Join(failures...)
}
