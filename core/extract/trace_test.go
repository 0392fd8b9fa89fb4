package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const traceHeader = "hash\tprocess\tmodule\tcontainer\tstatus\texit\tstart\tduration\t" +
	"cpus\ttime\tdisk\tmemory\trealtime\tqueue\t%cpu\t%mem\tpeak_rss\tpeak_vmem\trchar\twchar"

func traceRowLine(hash, process string) string {
	return strings.Join([]string{
		hash, process, "module_a", "quay.io/biocontainers/tool:1.0", "COMPLETED", "0",
		"2024-05-21 14:02:09.123", "1m 5s",
		"4", "2h", "10 GB", "8 GB", "62.1s", "normal", "98.2%", "12.4%",
		"512 MB", "1 GB", "100 MB", "50 MB",
	}, "\t")
}

func TestParseTraceRowCount(t *testing.T) {
	var b strings.Builder
	b.WriteString(traceHeader + "\n")
	for i := 0; i < 3; i++ {
		b.WriteString(traceRowLine(fmt.Sprintf("a%d/bcdef%d", i, i), fmt.Sprintf("step_%d", i)) + "\n")
	}

	processes, err := ParseTrace(strings.NewReader(b.String()), "trace.txt", "session-two")
	require.NoError(t, err)
	require.Len(t, processes, 3)

	for i, p := range processes {
		assert.Equal(t, "session-two", p.WorkflowExecutionID)
		assert.Equal(t, fmt.Sprintf("a%d/bcdef%d", i, i), p.ID, "file order preserved")
	}
}

func TestParseTraceFieldMapping(t *testing.T) {
	table := traceHeader + "\n" + traceRowLine("aa/bbccdd", "align_reads") + "\n"

	processes, err := ParseTrace(strings.NewReader(table), "trace.txt", "wf")
	require.NoError(t, err)
	require.Len(t, processes, 1)
	p := processes[0]

	assert.Equal(t, "aa/bbccdd", p.ID)
	assert.Equal(t, "align_reads", p.ProcessName)
	assert.Equal(t, "module_a", p.ModuleName)
	assert.Equal(t, "quay.io/biocontainers/tool:1.0", p.ContainerName)
	assert.Equal(t, "COMPLETED", p.FinalStatus)
	assert.Equal(t, 0, p.ExitCode)
	assert.Equal(t, float64(65), p.Duration)
	assert.Equal(t, 62.1, p.Realtime, "trailing s stripped")
	assert.Equal(t, "normal", p.QueueName)
	assert.Equal(t, 98.2, p.PercentCPU, "trailing percent sign stripped")
	assert.Equal(t, 12.4, p.PercentMemory)

	started, err := time.ParseInLocation(traceTimeLayout, "2024-05-21 14:02:09.123", time.Local)
	require.NoError(t, err)
	assert.Equal(t, float64(started.UnixMilli())/1000, p.StartTime, "sub-second precision kept")

	require.NotNil(t, p.CPUsRequested)
	assert.Equal(t, float64(4), *p.CPUsRequested)
	require.NotNil(t, p.TimeRequested)
	assert.Equal(t, float64(7200), *p.TimeRequested)
	require.NotNil(t, p.StorageRequested)
	assert.Equal(t, float64(10*1024), *p.StorageRequested)
	require.NotNil(t, p.MemoryRequested)
	assert.Equal(t, float64(8*1024), *p.MemoryRequested)
	require.NotNil(t, p.PeakRSS)
	assert.Equal(t, float64(512), *p.PeakRSS)
	require.NotNil(t, p.PeakVmem)
	assert.Equal(t, float64(1024), *p.PeakVmem)
	require.NotNil(t, p.ReadChar)
	assert.Equal(t, float64(100), *p.ReadChar)
	require.NotNil(t, p.WriteChar)
	assert.Equal(t, float64(50), *p.WriteChar)
}

func TestParseTraceOptionalFieldsAbsent(t *testing.T) {
	row := strings.Join([]string{
		"aa/bbccdd", "align_reads", "module_a", "-", "COMPLETED", "0",
		"2024-05-21 14:02:09.123", "1m 5s",
		"-", "-", "-", "-", "62.1s", "-", "98.2%", "12.4%",
		"-", "-", "-", "-",
	}, "\t")
	table := traceHeader + "\n" + row + "\n"

	processes, err := ParseTrace(strings.NewReader(table), "trace.txt", "wf")
	require.NoError(t, err)
	p := processes[0]

	// Requested resources and IO counters degrade to absent, not zero.
	assert.Nil(t, p.CPUsRequested)
	assert.Nil(t, p.TimeRequested)
	assert.Nil(t, p.StorageRequested)
	assert.Nil(t, p.MemoryRequested)
	assert.Nil(t, p.PeakRSS)
	assert.Nil(t, p.PeakVmem)
	assert.Nil(t, p.ReadChar)
	assert.Nil(t, p.WriteChar)
}

func TestParseTraceMalformedRequiredField(t *testing.T) {
	row := traceRowLine("aa/bbccdd", "align_reads")
	row = strings.Replace(row, "\t0\t", "\t-\t", 1) // exit column

	table := traceHeader + "\n" + row + "\n"
	_, err := ParseTrace(strings.NewReader(table), "trace.txt", "wf")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFormat)
	assert.Contains(t, err.Error(), "exit")
	assert.Contains(t, err.Error(), "row 1")
}

func TestParseTraceMissingRequiredColumn(t *testing.T) {
	table := "hash\tprocess\naa/bbccdd\talign_reads\n"
	_, err := ParseTrace(strings.NewReader(table), "trace.txt", "wf")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestTraceFilePath(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "nextflow.log")
	content := "May-21 14:02:09.100 [main] DEBUG nextflow.Session - Session start\n" +
		"May-21 14:02:09.200 [main] DEBUG nextflow.trace.TraceFileObserver - Workflow started -- trace file: /work/results/pipeline_trace.txt\n"
	require.NoError(t, os.WriteFile(logPath, []byte(content), 0o644))

	path, err := TraceFilePath(logPath)
	require.NoError(t, err)
	assert.Equal(t, "/work/results/pipeline_trace.txt", path)
}

func TestTraceFilePathAbsent(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "nextflow.log")
	require.NoError(t, os.WriteFile(logPath, []byte("no trace here\n"), 0o644))

	_, err := TraceFilePath(logPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestTraceFilePathMissingLog(t *testing.T) {
	_, err := TraceFilePath(filepath.Join(t.TempDir(), "absent.log"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}
