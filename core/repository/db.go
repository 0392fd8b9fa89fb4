package repository

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// DB wraps the underlying sql.DB handle shared by all repositories
type DB struct {
	*sql.DB
}

// NewDB opens a Postgres connection and ensures the schema exists
func NewDB(databaseURL string) (*DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	wrapped := &DB{db}
	if err := wrapped.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return wrapped, nil
}

// initSchema creates the provenance tables. Deleting a workflow execution
// cascades to its process executions and their parameters and files.
func (db *DB) initSchema() error {
	for _, query := range schemaStatements() {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

func schemaStatements() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS workflow_execution (
			id TEXT PRIMARY KEY,
			start_time DOUBLE PRECISION,
			duration DOUBLE PRECISION,
			run_name TEXT,
			nextflow_version TEXT,
			final_state TEXT,
			revision_id TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS process_execution (
			id TEXT PRIMARY KEY,
			workflow_execution_id TEXT NOT NULL REFERENCES workflow_execution(id) ON DELETE CASCADE,
			process_name TEXT NOT NULL,
			module_name TEXT,
			container_name TEXT,
			final_status TEXT NOT NULL,
			exit_code INTEGER NOT NULL,
			start_time DOUBLE PRECISION NOT NULL,
			duration DOUBLE PRECISION NOT NULL,
			cpus_requested DOUBLE PRECISION,
			time_requested DOUBLE PRECISION,
			storage_requested DOUBLE PRECISION,
			memory_requested DOUBLE PRECISION,
			realtime DOUBLE PRECISION NOT NULL,
			queue_name TEXT,
			percent_cpu DOUBLE PRECISION NOT NULL,
			percent_memory DOUBLE PRECISION NOT NULL,
			peak_rss DOUBLE PRECISION,
			peak_vmem DOUBLE PRECISION,
			read_char DOUBLE PRECISION,
			write_char DOUBLE PRECISION
		)`,
		`CREATE TABLE IF NOT EXISTS process_execution_parameter_input (
			process_execution_id TEXT NOT NULL REFERENCES process_execution(id) ON DELETE CASCADE,
			parameter_name TEXT NOT NULL,
			parameter_value TEXT NOT NULL,
			PRIMARY KEY (process_execution_id, parameter_name)
		)`,
		`CREATE TABLE IF NOT EXISTS process_execution_input_file (
			process_execution_id TEXT NOT NULL REFERENCES process_execution(id) ON DELETE CASCADE,
			filename TEXT NOT NULL,
			xxhash128 TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (process_execution_id, filename, xxhash128)
		)`,
		`CREATE TABLE IF NOT EXISTS process_execution_output_file (
			process_execution_id TEXT NOT NULL REFERENCES process_execution(id) ON DELETE CASCADE,
			filename TEXT NOT NULL,
			xxhash128 TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (process_execution_id, filename, xxhash128)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_process_execution_workflow
			ON process_execution(workflow_execution_id)`,
	}
}
