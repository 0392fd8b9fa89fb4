package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaTables(t *testing.T) {
	schema := strings.Join(schemaStatements(), "\n")

	for _, table := range []string{
		"workflow_execution",
		"process_execution",
		"process_execution_parameter_input",
		"process_execution_input_file",
		"process_execution_output_file",
	} {
		assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS "+table, "schema should create %s", table)
	}
}

func TestSchemaCascadesOwnership(t *testing.T) {
	// Deleting a workflow must take its processes, parameters and files
	// with it; every ownership edge carries ON DELETE CASCADE.
	var cascades int
	for _, stmt := range schemaStatements() {
		cascades += strings.Count(stmt, "ON DELETE CASCADE")
	}
	assert.Equal(t, 4, cascades, "process, parameter, input file and output file foreign keys")
}

func TestSchemaCompositeKeys(t *testing.T) {
	schema := strings.Join(schemaStatements(), "\n")

	assert.Contains(t, schema, "PRIMARY KEY (process_execution_id, parameter_name)")
	assert.Contains(t, schema, "PRIMARY KEY (process_execution_id, filename, xxhash128)")
}

func TestSchemaOptionalResourceColumnsNullable(t *testing.T) {
	var processTable string
	for _, stmt := range schemaStatements() {
		if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS process_execution (") {
			processTable = stmt
		}
	}
	require.NotEmpty(t, processTable)

	// Required terminal-record fields reject NULL; requested resources and
	// peak/IO counters accept it.
	for _, col := range []string{"exit_code", "start_time", "duration", "realtime", "percent_cpu", "percent_memory"} {
		assert.Regexp(t, col+`\s+\w+(\s+\w+)*\s+NOT NULL`, processTable, "column %s should be NOT NULL", col)
	}
	for _, col := range []string{"cpus_requested", "time_requested", "storage_requested", "memory_requested", "peak_rss", "peak_vmem", "read_char", "write_char"} {
		assert.NotRegexp(t, col+`\s+DOUBLE PRECISION\s+NOT NULL`, processTable, "column %s should be nullable", col)
	}
}
