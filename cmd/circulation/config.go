package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/AntonStoeckl/library-circulation-go/config"
)

const (
	serviceName    = "library-circulation"
	serviceVersion = "dev"

	journalNone     = "none"
	journalMemory   = "memory"
	journalPostgres = "postgres"
	journalKafka    = "kafka"

	driverPGX  = "pgx"
	driverSQL  = "sql"
	driverSQLX = "sqlx"

	logFormatText = "text"
	logFormatJSON = "json"

	defaultJournalTable = "circulation_journal"
	defaultKafkaTopic   = "circulation-events"
	defaultKafkaBrokers = "localhost:9092"
	defaultServeAddr    = ":8080"
	defaultQueueSize    = 64
)

var (
	ErrUnknownJournal   = errors.New("unknown journal")
	ErrUnknownDriver    = errors.New("unknown postgres driver")
	ErrUnknownLogFormat = errors.New("unknown log format")
	ErrUnknownLogLevel  = errors.New("unknown log level")
)

// Config holds the settings shared by all subcommands.
type Config struct {
	LogFormat    string
	LogLevel     string
	OTLPEndpoint string

	Journal        string
	PostgresDSN    string
	PostgresDriver string
	JournalTable   string
	CreateTable    bool
	KafkaBrokers   string
	KafkaTopic     string
}

func (c *Config) bindFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.LogFormat, "log-format", logFormatText, "log format: text or json")
	flags.StringVar(&c.LogLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flags.StringVar(&c.OTLPEndpoint, "otlp-endpoint", "", "OTLP gRPC endpoint (host:port); empty disables export")

	flags.StringVar(&c.Journal, "journal", journalNone, "event journal: none, memory, postgres or kafka")
	flags.StringVar(&c.PostgresDSN, "postgres-dsn", config.DefaultPostgresDSN, "PostgreSQL connection string")
	flags.StringVar(&c.PostgresDriver, "postgres-driver", driverPGX, "PostgreSQL driver: pgx, sql or sqlx")
	flags.StringVar(&c.JournalTable, "journal-table", defaultJournalTable, "PostgreSQL journal table name")
	flags.BoolVar(&c.CreateTable, "create-table", false, "create the PostgreSQL journal table if it does not exist")
	flags.StringVar(&c.KafkaBrokers, "kafka-brokers", defaultKafkaBrokers, "comma separated Kafka brokers")
	flags.StringVar(&c.KafkaTopic, "kafka-topic", defaultKafkaTopic, "Kafka topic for journal events")
}

// Validate checks the enumerated settings before anything is opened.
func (c *Config) Validate() error {
	switch c.Journal {
	case journalNone, journalMemory, journalKafka:
	case journalPostgres:
		switch c.PostgresDriver {
		case driverPGX, driverSQL, driverSQLX:
		default:
			return fmt.Errorf("%w: %q (supported: pgx, sql, sqlx)", ErrUnknownDriver, c.PostgresDriver)
		}
	default:
		return fmt.Errorf("%w: %q (supported: none, memory, postgres, kafka)", ErrUnknownJournal, c.Journal)
	}

	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return err
	}

	switch c.LogFormat {
	case logFormatText, logFormatJSON:
	default:
		return fmt.Errorf("%w: %q (supported: text, json)", ErrUnknownLogFormat, c.LogFormat)
	}

	return nil
}

func (c *Config) kafkaBrokers() []string {
	var brokers []string
	for _, broker := range strings.Split(c.KafkaBrokers, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}

	return brokers
}

func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLogLevel, level)
	}
}

// newLogger builds the slog.Logger for w. The config must have been validated.
func newLogger(c *Config, w io.Writer) *slog.Logger {
	level, _ := parseLogLevel(c.LogLevel)
	opts := &slog.HandlerOptions{Level: level}

	if c.LogFormat == logFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}
