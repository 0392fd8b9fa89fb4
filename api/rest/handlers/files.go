package handlers

import (
	"encoding/json"
	"net/http"

	"nf-provenance/core/models"
	"nf-provenance/core/repository"

	"github.com/gorilla/mux"
)

// FileHandler handles input/output file HTTP requests. Input and output
// files share a shape, so one handler serves both routes.
type FileHandler struct {
	files *repository.FileRepository
}

// NewFileHandler creates a new file handler
func NewFileHandler(files *repository.FileRepository) *FileHandler {
	return &FileHandler{files: files}
}

// CreateInputFile handles POST /input_files/
func (h *FileHandler) CreateInputFile(w http.ResponseWriter, r *http.Request) {
	h.createFile(w, r, h.files.CreateInputFile)
}

// CreateOutputFile handles POST /output_files/
func (h *FileHandler) CreateOutputFile(w http.ResponseWriter, r *http.Request) {
	h.createFile(w, r, h.files.CreateOutputFile)
}

// ListInputFiles handles GET /processes/{id}/input_files
func (h *FileHandler) ListInputFiles(w http.ResponseWriter, r *http.Request) {
	h.listFiles(w, r, h.files.InputFilesByProcess)
}

// ListOutputFiles handles GET /processes/{id}/output_files
func (h *FileHandler) ListOutputFiles(w http.ResponseWriter, r *http.Request) {
	h.listFiles(w, r, h.files.OutputFilesByProcess)
}

// DeleteInputFiles handles DELETE /processes/{id}/input_files
func (h *FileHandler) DeleteInputFiles(w http.ResponseWriter, r *http.Request) {
	h.deleteFiles(w, r, h.files.DeleteInputFiles)
}

// DeleteOutputFiles handles DELETE /processes/{id}/output_files
func (h *FileHandler) DeleteOutputFiles(w http.ResponseWriter, r *http.Request) {
	h.deleteFiles(w, r, h.files.DeleteOutputFiles)
}

func (h *FileHandler) createFile(w http.ResponseWriter, r *http.Request, create func(*models.ExecutionFile) error) {
	var record models.ExecutionFile
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if record.ProcessExecutionID == "" || record.Filename == "" {
		http.Error(w, "process_execution_id and filename are required", http.StatusBadRequest)
		return
	}

	if err := create(&record); err != nil {
		http.Error(w, "Failed to create file record: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

func (h *FileHandler) listFiles(w http.ResponseWriter, r *http.Request, list func(string) ([]models.ExecutionFile, error)) {
	processID := mux.Vars(r)["id"]

	files, err := list(processID)
	if err != nil {
		http.Error(w, "Failed to list file records: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if files == nil {
		files = []models.ExecutionFile{}
	}

	writeJSON(w, http.StatusOK, files)
}

func (h *FileHandler) deleteFiles(w http.ResponseWriter, r *http.Request, del func(string) error) {
	processID := mux.Vars(r)["id"]

	if err := del(processID); err != nil {
		http.Error(w, "Failed to delete file records: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "File records deleted successfully"})
}
