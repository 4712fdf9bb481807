package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/config"
	"github.com/AntonStoeckl/library-circulation-go/core"
)

func validConfig() *Config {
	return &Config{
		LogFormat:      logFormatText,
		LogLevel:       "info",
		Journal:        journalPostgres,
		PostgresDriver: driverSQLX,
	}
}

func Test_Config_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown journal", mutate: func(c *Config) { c.Journal = "redis" }, wantErr: ErrUnknownJournal},
		{name: "unknown driver", mutate: func(c *Config) { c.PostgresDriver = "odbc" }, wantErr: ErrUnknownDriver},
		{name: "driver ignored without postgres", mutate: func(c *Config) {
			c.Journal = journalKafka
			c.PostgresDriver = "odbc"
		}},
		{name: "unknown log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: ErrUnknownLogLevel},
		{name: "unknown log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: ErrUnknownLogFormat},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)

			err := cfg.Validate()

			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func Test_ParseLogLevel(t *testing.T) {
	level, err := parseLogLevel("WARNING")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	level, err = parseLogLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func Test_NewLogger_RespectsFormatAndLevel(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	cfg := validConfig()
	cfg.LogFormat = logFormatJSON
	cfg.LogLevel = "warn"

	// act
	logger := newLogger(cfg, &buf)
	logger.Info("hidden")
	logger.Warn("shown", "record_id", 7)

	// assert
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"record_id":7`)
}

func Test_Config_KafkaBrokers(t *testing.T) {
	cfg := &Config{KafkaBrokers: " kafka-1:9092, ,kafka-2:9092 "}

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.kafkaBrokers())
}

func Test_HistoryFilter(t *testing.T) {
	all := historyFilter(7, nil)
	assert.ElementsMatch(t, core.EventTypes(), all.EventTypes())
	require.Len(t, all.Predicates(), 1)
	assert.Equal(t, "RecordID", all.Predicates()[0].Key())
	assert.Equal(t, 7, all.Predicates()[0].Val())

	some := historyFilter(7, []string{core.RecordLentToPatronEventType})
	assert.Equal(t, []string{core.RecordLentToPatronEventType}, some.EventTypes())
}

func Test_Describe(t *testing.T) {
	now := time.Now()

	assert.Equal(t, `title="Dune" author="Herbert" available=true`,
		describe(core.BuildRecordAddedToCatalog(1, "Dune", "Herbert", true, now)))
	assert.Equal(t, "patron=5 priority=2 arrival=9",
		describe(core.BuildClaimQueuedForRecord(1, 5, 2, 9, now)))
	assert.Equal(t, "cancelled=[4 3]",
		describe(core.BuildRecordRemovedFromCatalog(1, []int{4, 3}, now)))
}

func Test_RunCommand_WritesReportNextToInput(t *testing.T) {
	// arrange
	dir := t.TempDir()
	input := filepath.Join(dir, "session.txt")
	require.NoError(t, os.WriteFile(input, []byte(
		"InsertBook(3, \"Book3\", \"Author3\", \"Yes\")\n"+
			"BorrowBook(120, 3, 1)\n"+
			"ColorFlipCount()\n"+
			"Quit()\n",
	), 0o600))

	cmd := newRootCommand()
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"run", input, "--journal", journalMemory})

	// act
	err := cmd.Execute()

	// assert
	require.NoError(t, err)
	report, err := os.ReadFile(filepath.Join(dir, "session_output_file.txt"))
	require.NoError(t, err)
	assert.Equal(t, ""+
		"\nBook 3 Borrowed by Patron 120\n"+
		"\nColour Flip Count: 2\n"+
		"\nProgram Terminated!!\n", string(report))
}

func Test_RunCommand_RejectsUnknownJournal(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "missing.txt", "--journal", "redis"})

	err := cmd.Execute()

	assert.ErrorIs(t, err, ErrUnknownJournal)
}

func Test_HistoryCommand_RequiresQueryableJournal(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"history", "--record-id", "1"})

	err := cmd.Execute()

	assert.ErrorIs(t, err, ErrJournalNotQueryable)
}

func Test_Environment_WithOTLP_LogsOperationsThroughLoggerProvider(t *testing.T) {
	// arrange
	exporter := &logExporterSpy{}
	var stderr bytes.Buffer
	env := &environment{
		logger: newLogger(validConfig(), &stderr),
		providers: &config.ObservabilityProviders{
			LoggerProvider: sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewSimpleProcessor(exporter))),
		},
	}

	lib, err := env.newLibrary()
	require.NoError(t, err)

	// act
	lib.Execute(context.Background(), circulation.AddRecord{RecordID: 1, Availability: circulation.AvailabilityYes})

	// assert
	bodies := exporter.Bodies()
	assert.Contains(t, bodies, circulation.LogMsgOperationCompleted)
	assert.NotContains(t, stderr.String(), circulation.LogMsgOperationCompleted)
}

type logExporterSpy struct {
	mu     sync.Mutex
	bodies []string
}

func (e *logExporterSpy) Export(_ context.Context, records []sdklog.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, record := range records {
		e.bodies = append(e.bodies, record.Body().AsString())
	}

	return nil
}

func (e *logExporterSpy) Shutdown(context.Context) error {
	return nil
}

func (e *logExporterSpy) ForceFlush(context.Context) error {
	return nil
}

func (e *logExporterSpy) Bodies() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]string(nil), e.bodies...)
}
