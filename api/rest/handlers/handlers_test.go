package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Validation rejects bad payloads before any repository is touched, so
// these tests run against handlers with no database behind them.

func TestCreateProcessRejectsInvalidBody(t *testing.T) {
	h := NewProcessHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/processes/", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	h.CreateProcess(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateProcessRequiresIdentity(t *testing.T) {
	h := NewProcessHandler(nil)

	body := `{"process_name": "align_reads"}`
	req := httptest.NewRequest(http.MethodPost, "/processes/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateProcess(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "workflow_execution_id")
}

func TestCreateParameterRequiresName(t *testing.T) {
	h := NewParameterHandler(nil)

	body := `{"process_execution_id": "aa/bb0001", "parameter_value": "x"}`
	req := httptest.NewRequest(http.MethodPost, "/parameters/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateParameter(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "parameter_name")
}

func TestCreateInputFileRequiresFilename(t *testing.T) {
	h := NewFileHandler(nil)

	body := `{"process_execution_id": "aa/bb0001"}`
	req := httptest.NewRequest(http.MethodPost, "/input_files/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateInputFile(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "filename")
}

func TestCreateWorkflowRejectsInvalidBody(t *testing.T) {
	h := NewWorkflowHandler(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/workflows/", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	h.CreateWorkflow(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
