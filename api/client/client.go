// Package client is the HTTP client for the provenance store API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"nf-provenance/core/models"
)

// ErrNotFound indicates the requested record does not exist on the server.
var ErrNotFound = errors.New("record not found")

// Client talks to the provenance store REST API. The base URL is explicit
// configuration; there is no package-level default.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a client for the API at baseURL, e.g. "http://localhost:8000".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateWorkflow submits a workflow execution record and returns the stored
// record (the server may have assigned the id).
func (c *Client) CreateWorkflow(ctx context.Context, w *models.WorkflowExecution) (*models.WorkflowExecution, error) {
	var created models.WorkflowExecution
	if err := c.post(ctx, "/workflows/", w, &created); err != nil {
		return nil, fmt.Errorf("create workflow execution %q: %w", w.ID, err)
	}
	return &created, nil
}

// Workflow reads a workflow execution by id.
func (c *Client) Workflow(ctx context.Context, id string) (*models.WorkflowExecution, error) {
	var w models.WorkflowExecution
	if err := c.get(ctx, "/workflows/"+id, &w); err != nil {
		return nil, fmt.Errorf("read workflow execution %q: %w", id, err)
	}
	return &w, nil
}

// DeleteWorkflow removes a workflow execution and everything it owns.
func (c *Client) DeleteWorkflow(ctx context.Context, id string) error {
	if err := c.del(ctx, "/workflows/"+id); err != nil {
		return fmt.Errorf("delete workflow execution %q: %w", id, err)
	}
	return nil
}

// ProcessesByWorkflow lists the process executions of a workflow execution.
func (c *Client) ProcessesByWorkflow(ctx context.Context, workflowID string) ([]*models.ProcessExecution, error) {
	var processes []*models.ProcessExecution
	if err := c.get(ctx, "/workflows/"+workflowID+"/processes", &processes); err != nil {
		return nil, fmt.Errorf("list process executions of workflow %q: %w", workflowID, err)
	}
	return processes, nil
}

// CreateProcess submits a process execution record.
func (c *Client) CreateProcess(ctx context.Context, p *models.ProcessExecution) (*models.ProcessExecution, error) {
	var created models.ProcessExecution
	if err := c.post(ctx, "/processes/", p, &created); err != nil {
		return nil, fmt.Errorf("create process execution %q: %w", p.ID, err)
	}
	return &created, nil
}

// Process reads a process execution by id.
func (c *Client) Process(ctx context.Context, id string) (*models.ProcessExecution, error) {
	var p models.ProcessExecution
	if err := c.get(ctx, "/processes/"+id, &p); err != nil {
		return nil, fmt.Errorf("read process execution %q: %w", id, err)
	}
	return &p, nil
}

// DeleteProcess removes a process execution.
func (c *Client) DeleteProcess(ctx context.Context, id string) error {
	if err := c.del(ctx, "/processes/"+id); err != nil {
		return fmt.Errorf("delete process execution %q: %w", id, err)
	}
	return nil
}

// CreateParameter submits a parameter input record.
func (c *Client) CreateParameter(ctx context.Context, p *models.ParameterInput) (*models.ParameterInput, error) {
	var created models.ParameterInput
	if err := c.post(ctx, "/parameters/", p, &created); err != nil {
		return nil, fmt.Errorf("create parameter %q of process %q: %w", p.ParameterName, p.ProcessExecutionID, err)
	}
	return &created, nil
}

// ParametersByProcess lists the parameters of a process execution.
func (c *Client) ParametersByProcess(ctx context.Context, processID string) ([]models.ParameterInput, error) {
	var params []models.ParameterInput
	if err := c.get(ctx, "/processes/"+processID+"/parameters", &params); err != nil {
		return nil, fmt.Errorf("list parameters of process %q: %w", processID, err)
	}
	return params, nil
}

// CreateInputFile submits an input file record.
func (c *Client) CreateInputFile(ctx context.Context, f *models.ExecutionFile) (*models.ExecutionFile, error) {
	var created models.ExecutionFile
	if err := c.post(ctx, "/input_files/", f, &created); err != nil {
		return nil, fmt.Errorf("create input file %q of process %q: %w", f.Filename, f.ProcessExecutionID, err)
	}
	return &created, nil
}

// CreateOutputFile submits an output file record.
func (c *Client) CreateOutputFile(ctx context.Context, f *models.ExecutionFile) (*models.ExecutionFile, error) {
	var created models.ExecutionFile
	if err := c.post(ctx, "/output_files/", f, &created); err != nil {
		return nil, fmt.Errorf("create output file %q of process %q: %w", f.Filename, f.ProcessExecutionID, err)
	}
	return &created, nil
}

// InputFilesByProcess lists the input files of a process execution.
func (c *Client) InputFilesByProcess(ctx context.Context, processID string) ([]models.ExecutionFile, error) {
	var files []models.ExecutionFile
	if err := c.get(ctx, "/processes/"+processID+"/input_files", &files); err != nil {
		return nil, fmt.Errorf("list input files of process %q: %w", processID, err)
	}
	return files, nil
}

// OutputFilesByProcess lists the output files of a process execution.
func (c *Client) OutputFilesByProcess(ctx context.Context, processID string) ([]models.ExecutionFile, error) {
	var files []models.ExecutionFile
	if err := c.get(ctx, "/processes/"+processID+"/output_files", &files); err != nil {
		return nil, fmt.Errorf("list output files of process %q: %w", processID, err)
	}
	return files, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) del(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
