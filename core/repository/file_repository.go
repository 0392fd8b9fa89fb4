package repository

import (
	"database/sql"
	"fmt"

	"nf-provenance/core/models"
)

// File tables share one shape; the direction picks the table.
const (
	inputFileTable  = "process_execution_input_file"
	outputFileTable = "process_execution_output_file"
)

// FileRepository handles database operations for process input/output files
type FileRepository struct {
	db *DB
}

// NewFileRepository creates a new file repository
func NewFileRepository(db *DB) *FileRepository {
	return &FileRepository{db: db}
}

// CreateInputFile records a file consumed by a process execution
func (r *FileRepository) CreateInputFile(f *models.ExecutionFile) error {
	return r.create(inputFileTable, f)
}

// CreateOutputFile records a file produced by a process execution
func (r *FileRepository) CreateOutputFile(f *models.ExecutionFile) error {
	return r.create(outputFileTable, f)
}

// InputFilesByProcess lists the input files of a process execution
func (r *FileRepository) InputFilesByProcess(processID string) ([]models.ExecutionFile, error) {
	return r.listByProcess(inputFileTable, processID)
}

// OutputFilesByProcess lists the output files of a process execution
func (r *FileRepository) OutputFilesByProcess(processID string) ([]models.ExecutionFile, error) {
	return r.listByProcess(outputFileTable, processID)
}

// DeleteInputFiles removes all input file records of a process execution
func (r *FileRepository) DeleteInputFiles(processID string) error {
	return r.deleteByProcess(inputFileTable, processID)
}

// DeleteOutputFiles removes all output file records of a process execution
func (r *FileRepository) DeleteOutputFiles(processID string) error {
	return r.deleteByProcess(outputFileTable, processID)
}

func (r *FileRepository) create(table string, f *models.ExecutionFile) error {
	// An unresolved fingerprint is stored as the empty string: the digest is
	// part of the primary key and may not be NULL.
	digest := ""
	if f.XXHash128 != nil {
		digest = *f.XXHash128
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (process_execution_id, filename, xxhash128)
		VALUES ($1, $2, $3)
		ON CONFLICT (process_execution_id, filename, xxhash128) DO NOTHING
	`, table)

	_, err := r.db.Exec(query, f.ProcessExecutionID, f.Filename, digest)
	return err
}

func (r *FileRepository) listByProcess(table, processID string) ([]models.ExecutionFile, error) {
	query := fmt.Sprintf(`
		SELECT process_execution_id, filename, xxhash128
		FROM %s
		WHERE process_execution_id = $1
		ORDER BY filename
	`, table)

	rows, err := r.db.Query(query, processID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []models.ExecutionFile
	for rows.Next() {
		var f models.ExecutionFile
		var digest sql.NullString
		if err := rows.Scan(&f.ProcessExecutionID, &f.Filename, &digest); err != nil {
			return nil, err
		}
		if digest.Valid && digest.String != "" {
			f.XXHash128 = &digest.String
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (r *FileRepository) deleteByProcess(table, processID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE process_execution_id = $1`, table)
	_, err := r.db.Exec(query, processID)
	return err
}
