package routes

import (
	"nf-provenance/api/rest/handlers"
	"nf-provenance/core/repository"

	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *mux.Router, db *repository.DB) {
	workflowRepo := repository.NewWorkflowRepository(db)
	processRepo := repository.NewProcessRepository(db)
	parameterRepo := repository.NewParameterRepository(db)
	fileRepo := repository.NewFileRepository(db)

	workflowHandler := handlers.NewWorkflowHandler(workflowRepo, processRepo)
	processHandler := handlers.NewProcessHandler(processRepo)
	parameterHandler := handlers.NewParameterHandler(parameterRepo)
	fileHandler := handlers.NewFileHandler(fileRepo)

	// Workflow execution endpoints
	r.HandleFunc("/workflows/", workflowHandler.CreateWorkflow).Methods("POST")
	r.HandleFunc("/workflows/{id}", workflowHandler.GetWorkflow).Methods("GET")
	r.HandleFunc("/workflows/{id}", workflowHandler.DeleteWorkflow).Methods("DELETE")
	r.HandleFunc("/workflows/{id}/processes", workflowHandler.ListProcesses).Methods("GET")

	// Process execution endpoints
	r.HandleFunc("/processes/", processHandler.CreateProcess).Methods("POST")
	r.HandleFunc("/processes/{id}", processHandler.GetProcess).Methods("GET")
	r.HandleFunc("/processes/{id}", processHandler.DeleteProcess).Methods("DELETE")

	// Parameter endpoints
	r.HandleFunc("/parameters/", parameterHandler.CreateParameter).Methods("POST")
	r.HandleFunc("/processes/{id}/parameters", parameterHandler.ListParameters).Methods("GET")
	r.HandleFunc("/processes/{id}/parameters", parameterHandler.DeleteParameters).Methods("DELETE")

	// Input/output file endpoints
	r.HandleFunc("/input_files/", fileHandler.CreateInputFile).Methods("POST")
	r.HandleFunc("/processes/{id}/input_files", fileHandler.ListInputFiles).Methods("GET")
	r.HandleFunc("/processes/{id}/input_files", fileHandler.DeleteInputFiles).Methods("DELETE")
	r.HandleFunc("/output_files/", fileHandler.CreateOutputFile).Methods("POST")
	r.HandleFunc("/processes/{id}/output_files", fileHandler.ListOutputFiles).Methods("GET")
	r.HandleFunc("/processes/{id}/output_files", fileHandler.DeleteOutputFiles).Methods("DELETE")
}
