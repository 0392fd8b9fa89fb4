package repository

import (
	"nf-provenance/core/models"
)

// ParameterRepository handles database operations for process parameters
type ParameterRepository struct {
	db *DB
}

// NewParameterRepository creates a new parameter repository
func NewParameterRepository(db *DB) *ParameterRepository {
	return &ParameterRepository{db: db}
}

// CreateParameter inserts a parameter record. Re-submitting the same
// (process, name) pair is a no-op, so replayed submissions stay clean.
func (r *ParameterRepository) CreateParameter(p *models.ParameterInput) error {
	query := `
		INSERT INTO process_execution_parameter_input (
			process_execution_id, parameter_name, parameter_value
		) VALUES ($1, $2, $3)
		ON CONFLICT (process_execution_id, parameter_name) DO NOTHING
	`

	_, err := r.db.Exec(query, p.ProcessExecutionID, p.ParameterName, p.ParameterValue)
	return err
}

// ParametersByProcess lists the parameters of a process execution
func (r *ParameterRepository) ParametersByProcess(processID string) ([]models.ParameterInput, error) {
	query := `
		SELECT process_execution_id, parameter_name, parameter_value
		FROM process_execution_parameter_input
		WHERE process_execution_id = $1
		ORDER BY parameter_name
	`

	rows, err := r.db.Query(query, processID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var params []models.ParameterInput
	for rows.Next() {
		var p models.ParameterInput
		if err := rows.Scan(&p.ProcessExecutionID, &p.ParameterName, &p.ParameterValue); err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, rows.Err()
}

// DeleteParameters removes all parameters of a process execution
func (r *ParameterRepository) DeleteParameters(processID string) error {
	_, err := r.db.Exec(
		`DELETE FROM process_execution_parameter_input WHERE process_execution_id = $1`,
		processID,
	)
	return err
}
