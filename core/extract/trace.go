package extract

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"nf-provenance/core/models"
)

// Layout of start times in trace files; the engine reports millisecond
// precision.
const traceTimeLayout = "2006-01-02 15:04:05.000"

// The engine writes its trace file path into the run log.
var traceFilePattern = regexp.MustCompile(`trace file: (/.+\.txt)`)

// TraceFilePath scans a run log for the trace file location.
func TraceFilePath(logPath string) (string, error) {
	f, err := os.Open(logPath)
	if err != nil {
		return "", &Error{Source: logPath, Err: fmt.Errorf("%w: %v", ErrSourceUnavailable, err)}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if match := traceFilePattern.FindStringSubmatch(scanner.Text()); match != nil {
			return match[1], nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", &Error{Source: logPath, Err: fmt.Errorf("%w: %v", ErrSourceUnavailable, err)}
	}
	return "", &Error{Source: logPath, Err: fmt.Errorf("%w: no trace file location in log", ErrMissingField)}
}

// TraceFile extracts the process executions recorded in a trace file,
// attributing them to the given workflow execution.
func TraceFile(path, workflowID string) ([]models.ProcessExecution, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Source: path, Err: fmt.Errorf("%w: %v", ErrSourceUnavailable, err)}
	}
	defer f.Close()

	return ParseTrace(f, path, workflowID)
}

// ParseTrace reads a tab-separated trace table and returns one process
// execution per data row, in file order. Identity, status, timing and
// utilization columns are required; a malformed value there fails the
// extraction naming the row and column. Requested-resource columns are
// decoded leniently and stay absent when the engine provides no value.
func ParseTrace(r io.Reader, source, workflowID string) ([]models.ProcessExecution, error) {
	headers, rows, err := readTable(r, source)
	if err != nil {
		return nil, err
	}

	schema := make(map[string]int, len(headers))
	for i, h := range headers {
		schema[h] = i
	}

	processes := make([]models.ProcessExecution, 0, len(rows))
	for i, cells := range rows {
		row := traceRow{source: source, num: i + 1, schema: schema, cells: cells}

		p, err := row.process(workflowID)
		if err != nil {
			return nil, err
		}
		processes = append(processes, *p)
	}
	return processes, nil
}

type traceRow struct {
	source string
	num    int
	schema map[string]int
	cells  []string
}

func (row *traceRow) process(workflowID string) (*models.ProcessExecution, error) {
	id, err := row.require("hash")
	if err != nil {
		return nil, err
	}

	exitText, err := row.require("exit")
	if err != nil {
		return nil, err
	}
	exitCode, err := strconv.Atoi(exitText)
	if err != nil {
		return nil, row.fail("exit", fmt.Errorf("%w: %q", ErrFormat, exitText))
	}

	startText, err := row.require("start")
	if err != nil {
		return nil, err
	}
	started, err := time.ParseInLocation(traceTimeLayout, startText, time.Local)
	if err != nil {
		return nil, row.fail("start", fmt.Errorf("%w: %q", ErrFormat, startText))
	}

	durationText, err := row.require("duration")
	if err != nil {
		return nil, err
	}
	duration, err := ParseDuration(durationText)
	if err != nil {
		return nil, row.fail("duration", err)
	}

	realtime, err := row.requireSuffixed("realtime", "s")
	if err != nil {
		return nil, err
	}
	percentCPU, err := row.requireSuffixed("%cpu", "%")
	if err != nil {
		return nil, err
	}
	percentMemory, err := row.requireSuffixed("%mem", "%")
	if err != nil {
		return nil, err
	}

	return &models.ProcessExecution{
		ID:                  id,
		WorkflowExecutionID: workflowID,
		ProcessName:         row.lookup("process"),
		ModuleName:          row.lookup("module"),
		ContainerName:       row.lookup("container"),
		FinalStatus:         row.lookup("status"),
		ExitCode:            exitCode,
		StartTime:           float64(started.UnixMilli()) / 1000,
		Duration:            duration,
		CPUsRequested:       row.lenientNumber("cpus"),
		TimeRequested:       row.lenientDuration("time"),
		StorageRequested:    ParseMemory(row.lookup("disk")),
		MemoryRequested:     ParseMemory(row.lookup("memory")),
		Realtime:            realtime,
		QueueName:           row.lookup("queue"),
		PercentCPU:          percentCPU,
		PercentMemory:       percentMemory,
		PeakRSS:             ParseMemory(row.lookup("peak_rss")),
		PeakVmem:            ParseMemory(row.lookup("peak_vmem")),
		ReadChar:            ParseMemory(row.lookup("rchar")),
		WriteChar:           ParseMemory(row.lookup("wchar")),
	}, nil
}

// lookup returns the row's value for a column, or "" when the trace file
// does not carry that column.
func (row *traceRow) lookup(col string) string {
	i, ok := row.schema[col]
	if !ok || i >= len(row.cells) {
		return ""
	}
	return row.cells[i]
}

func (row *traceRow) require(col string) (string, error) {
	i, ok := row.schema[col]
	if !ok || i >= len(row.cells) {
		return "", row.fail(col, ErrMissingField)
	}
	return row.cells[i], nil
}

// requireSuffixed parses a required numeric column whose values carry a
// unit suffix, e.g. "98.2%" or "12.5s".
func (row *traceRow) requireSuffixed(col, suffix string) (float64, error) {
	text, err := row.require(col)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(text, suffix), 64)
	if err != nil {
		return 0, row.fail(col, fmt.Errorf("%w: %q", ErrFormat, text))
	}
	return v, nil
}

func (row *traceRow) lenientNumber(col string) *float64 {
	v, err := strconv.ParseFloat(row.lookup(col), 64)
	if err != nil {
		return nil
	}
	return &v
}

func (row *traceRow) lenientDuration(col string) *float64 {
	text := row.lookup(col)
	if text == "" || text == "-" {
		return nil
	}
	v, err := ParseDuration(text)
	if err != nil {
		return nil
	}
	return &v
}

func (row *traceRow) fail(col string, err error) error {
	return &Error{Source: row.source, Row: row.num, Field: col, Err: err}
}
