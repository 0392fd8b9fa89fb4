package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"nf-provenance/core/models"
	"nf-provenance/core/repository"

	"github.com/gorilla/mux"
)

// ProcessHandler handles process execution HTTP requests
type ProcessHandler struct {
	processes *repository.ProcessRepository
}

// NewProcessHandler creates a new process handler
func NewProcessHandler(processes *repository.ProcessRepository) *ProcessHandler {
	return &ProcessHandler{processes: processes}
}

// CreateProcess handles POST /processes/
func (h *ProcessHandler) CreateProcess(w http.ResponseWriter, r *http.Request) {
	var record models.ProcessExecution
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if record.ID == "" || record.WorkflowExecutionID == "" {
		http.Error(w, "id and workflow_execution_id are required", http.StatusBadRequest)
		return
	}

	if err := h.processes.CreateProcess(&record); err != nil {
		http.Error(w, "Failed to create process execution: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

// GetProcess handles GET /processes/{id}
func (h *ProcessHandler) GetProcess(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	record, err := h.processes.GetProcess(id)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "Process execution not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to read process execution: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// DeleteProcess handles DELETE /processes/{id}
func (h *ProcessHandler) DeleteProcess(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	err := h.processes.DeleteProcess(id)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "Process execution not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to delete process execution: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Process execution deleted successfully"})
}
