package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nf-provenance/core/models"
)

// fakeStore is an in-memory stand-in for the provenance store API,
// wired to the same routes the real server registers.
type fakeStore struct {
	workflows map[string]models.WorkflowExecution
	processes map[string]models.ProcessExecution
	inputs    map[string][]models.ExecutionFile
	outputs   map[string][]models.ExecutionFile
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		workflows: map[string]models.WorkflowExecution{},
		processes: map[string]models.ProcessExecution{},
		inputs:    map[string][]models.ExecutionFile{},
		outputs:   map[string][]models.ExecutionFile{},
	}
}

func (s *fakeStore) handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/workflows/", func(w http.ResponseWriter, req *http.Request) {
		var record models.WorkflowExecution
		json.NewDecoder(req.Body).Decode(&record)
		s.workflows[record.ID] = record
		writeJSON(w, http.StatusCreated, record)
	}).Methods("POST")
	r.HandleFunc("/workflows/{id}", func(w http.ResponseWriter, req *http.Request) {
		record, ok := s.workflows[mux.Vars(req)["id"]]
		if !ok {
			http.Error(w, "Workflow execution not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}).Methods("GET")
	r.HandleFunc("/workflows/{id}", func(w http.ResponseWriter, req *http.Request) {
		id := mux.Vars(req)["id"]
		if _, ok := s.workflows[id]; !ok {
			http.Error(w, "Workflow execution not found", http.StatusNotFound)
			return
		}
		delete(s.workflows, id)
		writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
	}).Methods("DELETE")
	r.HandleFunc("/processes/", func(w http.ResponseWriter, req *http.Request) {
		var record models.ProcessExecution
		json.NewDecoder(req.Body).Decode(&record)
		s.processes[record.ID] = record
		writeJSON(w, http.StatusCreated, record)
	}).Methods("POST")
	r.HandleFunc("/processes/{id}", func(w http.ResponseWriter, req *http.Request) {
		record, ok := s.processes[mux.Vars(req)["id"]]
		if !ok {
			http.Error(w, "Process execution not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}).Methods("GET")
	r.HandleFunc("/input_files/", func(w http.ResponseWriter, req *http.Request) {
		var record models.ExecutionFile
		json.NewDecoder(req.Body).Decode(&record)
		s.inputs[record.ProcessExecutionID] = append(s.inputs[record.ProcessExecutionID], record)
		writeJSON(w, http.StatusCreated, record)
	}).Methods("POST")
	r.HandleFunc("/processes/{id}/input_files", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, s.inputs[mux.Vars(req)["id"]])
	}).Methods("GET")
	r.HandleFunc("/output_files/", func(w http.ResponseWriter, req *http.Request) {
		var record models.ExecutionFile
		json.NewDecoder(req.Body).Decode(&record)
		s.outputs[record.ProcessExecutionID] = append(s.outputs[record.ProcessExecutionID], record)
		writeJSON(w, http.StatusCreated, record)
	}).Methods("POST")
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	server := httptest.NewServer(newFakeStore().handler())
	t.Cleanup(server.Close)
	return New(server.URL)
}

func TestWorkflowRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	version := "23.10.1"
	workflow := &models.WorkflowExecution{
		ID:              "session-two",
		StartTime:       1716300129,
		Duration:        7380,
		RunName:         "clever_wilson",
		NextflowVersion: &version,
		FinalState:      "OK",
		RevisionID:      "def456",
	}

	created, err := c.CreateWorkflow(ctx, workflow)
	require.NoError(t, err)
	assert.Equal(t, workflow, created)

	read, err := c.Workflow(ctx, "session-two")
	require.NoError(t, err)
	assert.Equal(t, workflow, read, "read-back record equals the submitted one field-wise")
}

func TestProcessRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	cpus := 4.0
	process := &models.ProcessExecution{
		ID:                  "aa/bb0001",
		WorkflowExecutionID: "session-two",
		ProcessName:         "align_reads",
		FinalStatus:         "COMPLETED",
		ExitCode:            0,
		StartTime:           1716300129.123,
		Duration:            65,
		CPUsRequested:       &cpus,
		Realtime:            62.1,
		PercentCPU:          98.2,
		PercentMemory:       12.4,
	}

	_, err := c.CreateProcess(ctx, process)
	require.NoError(t, err)

	read, err := c.Process(ctx, "aa/bb0001")
	require.NoError(t, err)
	assert.Equal(t, process, read)
	assert.Nil(t, read.MemoryRequested, "absent optional field stays absent")
}

func TestWorkflowNotFound(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Workflow(context.Background(), "no-such-session")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteWorkflow(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	_, err := c.CreateWorkflow(ctx, &models.WorkflowExecution{ID: "session-two"})
	require.NoError(t, err)

	require.NoError(t, c.DeleteWorkflow(ctx, "session-two"))

	err = c.DeleteWorkflow(ctx, "session-two")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileRecords(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	digest := "0123456789abcdef0123456789abcdef"
	input := &models.ExecutionFile{
		ProcessExecutionID: "aa/bb0001",
		Filename:           "/in/reads.fastq",
		XXHash128:          &digest,
	}
	_, err := c.CreateInputFile(ctx, input)
	require.NoError(t, err)

	unresolved := &models.ExecutionFile{
		ProcessExecutionID: "aa/bb0001",
		Filename:           "/in/missing.fastq",
	}
	_, err = c.CreateInputFile(ctx, unresolved)
	require.NoError(t, err)

	files, err := c.InputFilesByProcess(ctx, "aa/bb0001")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, *input, files[0])
	assert.Nil(t, files[1].XXHash128)
}
