package repository

import (
	"database/sql"
	"errors"

	"nf-provenance/core/models"
)

// WorkflowRepository handles database operations for workflow executions
type WorkflowRepository struct {
	db *DB
}

// NewWorkflowRepository creates a new workflow repository
func NewWorkflowRepository(db *DB) *WorkflowRepository {
	return &WorkflowRepository{db: db}
}

// CreateWorkflow inserts a workflow execution record
func (r *WorkflowRepository) CreateWorkflow(w *models.WorkflowExecution) error {
	query := `
		INSERT INTO workflow_execution (
			id, start_time, duration, run_name, nextflow_version, final_state, revision_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	var version sql.NullString
	if w.NextflowVersion != nil {
		version = sql.NullString{String: *w.NextflowVersion, Valid: true}
	}

	_, err := r.db.Exec(query,
		w.ID,
		w.StartTime,
		w.Duration,
		w.RunName,
		version,
		w.FinalState,
		w.RevisionID,
	)
	return err
}

// GetWorkflow retrieves a workflow execution by ID
func (r *WorkflowRepository) GetWorkflow(id string) (*models.WorkflowExecution, error) {
	query := `
		SELECT id, start_time, duration, run_name, nextflow_version, final_state, revision_id
		FROM workflow_execution
		WHERE id = $1
	`

	var w models.WorkflowExecution
	var startTime sql.NullFloat64
	var duration sql.NullFloat64
	var runName sql.NullString
	var version sql.NullString
	var finalState sql.NullString
	var revisionID sql.NullString

	err := r.db.QueryRow(query, id).Scan(
		&w.ID,
		&startTime,
		&duration,
		&runName,
		&version,
		&finalState,
		&revisionID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	w.StartTime = startTime.Float64
	w.Duration = duration.Float64
	w.RunName = runName.String
	w.FinalState = finalState.String
	w.RevisionID = revisionID.String
	if version.Valid {
		w.NextflowVersion = &version.String
	}

	return &w, nil
}

// DeleteWorkflow removes a workflow execution; process executions and their
// parameters and files go with it through the schema cascade
func (r *WorkflowRepository) DeleteWorkflow(id string) error {
	result, err := r.db.Exec(`DELETE FROM workflow_execution WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
