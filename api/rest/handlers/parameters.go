package handlers

import (
	"encoding/json"
	"net/http"

	"nf-provenance/core/models"
	"nf-provenance/core/repository"

	"github.com/gorilla/mux"
)

// ParameterHandler handles parameter input HTTP requests
type ParameterHandler struct {
	parameters *repository.ParameterRepository
}

// NewParameterHandler creates a new parameter handler
func NewParameterHandler(parameters *repository.ParameterRepository) *ParameterHandler {
	return &ParameterHandler{parameters: parameters}
}

// CreateParameter handles POST /parameters/
func (h *ParameterHandler) CreateParameter(w http.ResponseWriter, r *http.Request) {
	var record models.ParameterInput
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if record.ProcessExecutionID == "" || record.ParameterName == "" {
		http.Error(w, "process_execution_id and parameter_name are required", http.StatusBadRequest)
		return
	}

	if err := h.parameters.CreateParameter(&record); err != nil {
		http.Error(w, "Failed to create parameter: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

// ListParameters handles GET /processes/{id}/parameters
func (h *ParameterHandler) ListParameters(w http.ResponseWriter, r *http.Request) {
	processID := mux.Vars(r)["id"]

	params, err := h.parameters.ParametersByProcess(processID)
	if err != nil {
		http.Error(w, "Failed to list parameters: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if params == nil {
		params = []models.ParameterInput{}
	}

	writeJSON(w, http.StatusOK, params)
}

// DeleteParameters handles DELETE /processes/{id}/parameters
func (h *ParameterHandler) DeleteParameters(w http.ResponseWriter, r *http.Request) {
	processID := mux.Vars(r)["id"]

	if err := h.parameters.DeleteParameters(processID); err != nil {
		http.Error(w, "Failed to delete parameters: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Parameters deleted successfully"})
}
