package extract

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"nf-provenance/core/models"
)

// Layout of TIMESTAMP values in `nextflow log` output.
const historyTimeLayout = "2006-01-02 15:04:05"

// HistorySource produces the engine's run-history table.
type HistorySource func(ctx context.Context) (io.ReadCloser, error)

// CommandHistory runs `nextflow log` and returns its output. A failing or
// missing command is a source-unavailable error.
func CommandHistory() HistorySource {
	return commandHistory("nextflow", "log")
}

func commandHistory(name string, args ...string) HistorySource {
	source := strings.Join(append([]string{name}, args...), " ")
	return func(ctx context.Context) (io.ReadCloser, error) {
		out, err := exec.CommandContext(ctx, name, args...).Output()
		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				if stderr := bytes.TrimSpace(exitErr.Stderr); len(stderr) > 0 {
					err = fmt.Errorf("%v: %s", err, stderr)
				}
			}
			return nil, &Error{Source: source, Err: fmt.Errorf("%w: %v", ErrSourceUnavailable, err)}
		}
		return io.NopCloser(bytes.NewReader(out)), nil
	}
}

// FileHistory reads a previously captured run-history table from a file.
func FileHistory(path string) HistorySource {
	return func(ctx context.Context) (io.ReadCloser, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, &Error{Source: path, Err: fmt.Errorf("%w: %v", ErrSourceUnavailable, err)}
		}
		return f, nil
	}
}

// LatestWorkflowExecution parses the run-history table and returns the most
// recent run as a workflow execution record. The table is chronological, so
// the last data row is the latest run; rows are not re-sorted. The engine
// version comes from the provenance document, which is the only place the
// engine reports it.
func LatestWorkflowExecution(r io.Reader, source string, doc *BCODocument) (*models.WorkflowExecution, error) {
	headers, rows, err := readTable(r, source)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &Error{Source: source, Err: fmt.Errorf("%w: history table has no data rows", ErrSourceUnavailable)}
	}

	latest := rows[len(rows)-1]
	row := make(map[string]string, len(headers))
	for i, h := range headers {
		if i < len(latest) {
			row[h] = latest[i]
		}
	}

	timestamp, ok := row["TIMESTAMP"]
	if !ok {
		return nil, &Error{Source: source, Row: len(rows), Field: "TIMESTAMP", Err: ErrMissingField}
	}
	started, err := time.ParseInLocation(historyTimeLayout, timestamp, time.Local)
	if err != nil {
		return nil, &Error{Source: source, Row: len(rows), Field: "TIMESTAMP", Err: fmt.Errorf("%w: %q", ErrFormat, timestamp)}
	}

	duration, err := ParseDuration(row["DURATION"])
	if err != nil {
		return nil, &Error{Source: source, Row: len(rows), Field: "DURATION", Err: err}
	}

	return &models.WorkflowExecution{
		ID:              row["SESSION ID"],
		StartTime:       float64(started.Unix()),
		Duration:        duration,
		RunName:         row["RUN NAME"],
		NextflowVersion: NextflowVersion(doc),
		FinalState:      row["STATUS"],
		RevisionID:      row["REVISION ID"],
	}, nil
}

// readTable splits a tab-separated table into trimmed header names and data
// rows, dropping blank lines.
func readTable(r io.Reader, source string) (headers []string, rows [][]string, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := strings.Split(line, "\t")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		if headers == nil {
			headers = cells
			continue
		}
		rows = append(rows, cells)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, &Error{Source: source, Err: fmt.Errorf("%w: %v", ErrSourceUnavailable, err)}
	}
	if headers == nil {
		return nil, nil, &Error{Source: source, Err: fmt.Errorf("%w: empty table", ErrSourceUnavailable)}
	}
	return headers, rows, nil
}
