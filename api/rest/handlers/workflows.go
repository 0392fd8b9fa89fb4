package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"nf-provenance/core/models"
	"nf-provenance/core/repository"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// WorkflowHandler handles workflow execution HTTP requests
type WorkflowHandler struct {
	workflows *repository.WorkflowRepository
	processes *repository.ProcessRepository
}

// NewWorkflowHandler creates a new workflow handler
func NewWorkflowHandler(
	workflows *repository.WorkflowRepository,
	processes *repository.ProcessRepository,
) *WorkflowHandler {
	return &WorkflowHandler{workflows: workflows, processes: processes}
}

// CreateWorkflow handles POST /workflows/
func (h *WorkflowHandler) CreateWorkflow(w http.ResponseWriter, r *http.Request) {
	var record models.WorkflowExecution
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Clients normally supply the engine's session identifier; assign one
	// only when it is missing.
	if record.ID == "" {
		record.ID = uuid.New().String()
	}

	if err := h.workflows.CreateWorkflow(&record); err != nil {
		http.Error(w, "Failed to create workflow execution: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

// GetWorkflow handles GET /workflows/{id}
func (h *WorkflowHandler) GetWorkflow(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	record, err := h.workflows.GetWorkflow(id)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "Workflow execution not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to read workflow execution: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// DeleteWorkflow handles DELETE /workflows/{id}
func (h *WorkflowHandler) DeleteWorkflow(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	err := h.workflows.DeleteWorkflow(id)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "Workflow execution not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to delete workflow execution: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Workflow execution deleted successfully"})
}

// ListProcesses handles GET /workflows/{id}/processes
func (h *WorkflowHandler) ListProcesses(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	processes, err := h.processes.ProcessesByWorkflow(id)
	if err != nil {
		http.Error(w, "Failed to list process executions: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if processes == nil {
		processes = []*models.ProcessExecution{}
	}

	writeJSON(w, http.StatusOK, processes)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
