package repository

import (
	"database/sql"
	"errors"

	"nf-provenance/core/models"
)

// ProcessRepository handles database operations for process executions
type ProcessRepository struct {
	db *DB
}

// NewProcessRepository creates a new process repository
func NewProcessRepository(db *DB) *ProcessRepository {
	return &ProcessRepository{db: db}
}

// CreateProcess inserts a process execution record
func (r *ProcessRepository) CreateProcess(p *models.ProcessExecution) error {
	query := `
		INSERT INTO process_execution (
			id, workflow_execution_id, process_name, module_name, container_name,
			final_status, exit_code, start_time, duration,
			cpus_requested, time_requested, storage_requested, memory_requested,
			realtime, queue_name, percent_cpu, percent_memory,
			peak_rss, peak_vmem, read_char, write_char
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19, $20, $21
		)
	`

	_, err := r.db.Exec(query,
		p.ID,
		p.WorkflowExecutionID,
		p.ProcessName,
		p.ModuleName,
		p.ContainerName,
		p.FinalStatus,
		p.ExitCode,
		p.StartTime,
		p.Duration,
		nullFloat(p.CPUsRequested),
		nullFloat(p.TimeRequested),
		nullFloat(p.StorageRequested),
		nullFloat(p.MemoryRequested),
		p.Realtime,
		p.QueueName,
		p.PercentCPU,
		p.PercentMemory,
		nullFloat(p.PeakRSS),
		nullFloat(p.PeakVmem),
		nullFloat(p.ReadChar),
		nullFloat(p.WriteChar),
	)
	return err
}

// GetProcess retrieves a process execution by ID
func (r *ProcessRepository) GetProcess(id string) (*models.ProcessExecution, error) {
	query := selectProcessQuery + ` WHERE id = $1`

	row := r.db.QueryRow(query, id)
	p, err := scanProcess(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ProcessesByWorkflow lists the process executions owned by a workflow
// execution, in insertion order
func (r *ProcessRepository) ProcessesByWorkflow(workflowID string) ([]*models.ProcessExecution, error) {
	query := selectProcessQuery + ` WHERE workflow_execution_id = $1 ORDER BY start_time, id`

	rows, err := r.db.Query(query, workflowID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var processes []*models.ProcessExecution
	for rows.Next() {
		p, err := scanProcess(rows)
		if err != nil {
			return nil, err
		}
		processes = append(processes, p)
	}
	return processes, rows.Err()
}

// DeleteProcess removes a process execution and, through the schema
// cascade, its parameters and files
func (r *ProcessRepository) DeleteProcess(id string) error {
	result, err := r.db.Exec(`DELETE FROM process_execution WHERE id = $1`, id)
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

const selectProcessQuery = `
	SELECT id, workflow_execution_id, process_name, module_name, container_name,
		final_status, exit_code, start_time, duration,
		cpus_requested, time_requested, storage_requested, memory_requested,
		realtime, queue_name, percent_cpu, percent_memory,
		peak_rss, peak_vmem, read_char, write_char
	FROM process_execution`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProcess(row rowScanner) (*models.ProcessExecution, error) {
	var p models.ProcessExecution
	var moduleName, containerName, queueName sql.NullString
	var cpus, timeReq, storage, memory sql.NullFloat64
	var peakRSS, peakVmem, readChar, writeChar sql.NullFloat64

	err := row.Scan(
		&p.ID,
		&p.WorkflowExecutionID,
		&p.ProcessName,
		&moduleName,
		&containerName,
		&p.FinalStatus,
		&p.ExitCode,
		&p.StartTime,
		&p.Duration,
		&cpus,
		&timeReq,
		&storage,
		&memory,
		&p.Realtime,
		&queueName,
		&p.PercentCPU,
		&p.PercentMemory,
		&peakRSS,
		&peakVmem,
		&readChar,
		&writeChar,
	)
	if err != nil {
		return nil, err
	}

	p.ModuleName = moduleName.String
	p.ContainerName = containerName.String
	p.QueueName = queueName.String
	p.CPUsRequested = floatPtr(cpus)
	p.TimeRequested = floatPtr(timeReq)
	p.StorageRequested = floatPtr(storage)
	p.MemoryRequested = floatPtr(memory)
	p.PeakRSS = floatPtr(peakRSS)
	p.PeakVmem = floatPtr(peakVmem)
	p.ReadChar = floatPtr(readChar)
	p.WriteChar = floatPtr(writeChar)

	return &p, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
