package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/AntonStoeckl/library-circulation-go/config"
	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/journal/kafkajournal"
	"github.com/AntonStoeckl/library-circulation-go/journal/postgresjournal"
)

// ErrJournalNotQueryable is returned when history is requested from a write-only journal.
var ErrJournalNotQueryable = errors.New("journal can not be queried")

// openedJournal is a journal backend plus the resources to release after use.
// reader is nil for write-only backends.
type openedJournal struct {
	appender journal.Appender
	reader   journal.Reader
	close    func() error
}

func (j openedJournal) Close() error {
	if j.close == nil {
		return nil
	}

	return j.close()
}

// openJournal opens the configured backend. It returns a zero openedJournal for journalNone.
func openJournal(ctx context.Context, cfg *Config, logger *slog.Logger) (openedJournal, error) {
	switch cfg.Journal {
	case journalMemory:
		memory := journal.NewMemoryJournal()
		return openedJournal{appender: memory, reader: memory}, nil

	case journalPostgres:
		return openPostgresJournal(ctx, cfg, logger)

	case journalKafka:
		writer, err := kafkajournal.NewWriter(cfg.kafkaBrokers(), cfg.KafkaTopic)
		if err != nil {
			return openedJournal{}, err
		}

		kafka, err := kafkajournal.NewJournal(writer, cfg.KafkaTopic, kafkajournal.WithLogger(logger))
		if err != nil {
			return openedJournal{}, errors.Join(err, writer.Close())
		}

		return openedJournal{appender: kafka, close: kafka.Close}, nil

	default:
		return openedJournal{}, nil
	}
}

func openPostgresJournal(ctx context.Context, cfg *Config, logger *slog.Logger) (openedJournal, error) {
	pool := config.DefaultPostgresPool()
	options := []postgresjournal.Option{
		postgresjournal.WithTableName(cfg.JournalTable),
		postgresjournal.WithLogger(logger),
	}

	var pg *postgresjournal.Journal
	var closeFn func() error

	switch cfg.PostgresDriver {
	case driverSQL:
		db, err := config.OpenSQLDB(ctx, cfg.PostgresDSN, pool)
		if err != nil {
			return openedJournal{}, err
		}

		closeFn = db.Close
		pg, err = postgresjournal.NewJournalFromSQLDB(db, options...)
		if err != nil {
			return openedJournal{}, errors.Join(err, closeFn())
		}

	case driverSQLX:
		db, err := config.OpenSQLX(ctx, cfg.PostgresDSN, pool)
		if err != nil {
			return openedJournal{}, err
		}

		closeFn = db.Close
		pg, err = postgresjournal.NewJournalFromSQLX(db, options...)
		if err != nil {
			return openedJournal{}, errors.Join(err, closeFn())
		}

	default:
		db, err := config.NewPGXPool(ctx, cfg.PostgresDSN, pool)
		if err != nil {
			return openedJournal{}, err
		}

		closeFn = func() error {
			db.Close()
			return nil
		}
		pg, err = postgresjournal.NewJournalFromPGXPool(db, options...)
		if err != nil {
			return openedJournal{}, errors.Join(err, closeFn())
		}
	}

	if cfg.CreateTable {
		if err := pg.CreateTable(ctx); err != nil {
			return openedJournal{}, errors.Join(err, closeFn())
		}
	}

	logger.Info("postgres journal opened", "driver", cfg.PostgresDriver, "table", cfg.JournalTable)

	return openedJournal{appender: pg, reader: pg, close: closeFn}, nil
}
