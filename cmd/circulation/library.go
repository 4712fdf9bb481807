package main

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/config"
	"github.com/AntonStoeckl/library-circulation-go/oteladapters"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

const instrumentationName = "github.com/AntonStoeckl/library-circulation-go"

// environment is everything a subcommand needs to build a Library, plus its cleanup.
type environment struct {
	logger    *slog.Logger
	journal   openedJournal
	providers *config.ObservabilityProviders
}

func newEnvironment(ctx context.Context, cfg *Config, logger *slog.Logger) (*environment, error) {
	env := &environment{logger: logger}

	if cfg.OTLPEndpoint != "" {
		providers, err := config.NewObservabilityProviders(ctx, serviceName, serviceVersion, cfg.OTLPEndpoint)
		if err != nil {
			return nil, err
		}

		env.providers = providers
		logger.Info("OTLP export enabled", "endpoint", cfg.OTLPEndpoint)
	}

	opened, err := openJournal(ctx, cfg, logger)
	if err != nil {
		env.close()
		return nil, err
	}

	env.journal = opened

	return env, nil
}

// libraryOptions wires logging, the journal, and, with OTLP enabled, metrics and tracing.
// With OTLP enabled the Library's operation logs go to the OTLP log pipeline with trace correlation;
// the stderr logger keeps the journal and startup messages.
func (env *environment) libraryOptions() ([]circulation.Option, error) {
	options := []circulation.Option{circulation.WithLogger(env.logger)}

	if env.providers != nil {
		options = append(options,
			circulation.WithContextualLogger(
				oteladapters.NewSlogBridgeLoggerWithProvider(instrumentationName, env.providers.LoggerProvider),
			),
			circulation.WithMetrics(oteladapters.NewMetricsCollector(otel.Meter(instrumentationName))),
			circulation.WithTracing(oteladapters.NewTracingCollector(otel.Tracer(instrumentationName))),
		)
	}

	if env.journal.appender != nil {
		recorder, err := shell.NewJournalRecorder(env.journal.appender)
		if err != nil {
			return nil, err
		}

		options = append(options, circulation.WithJournal(recorder))
	}

	return options, nil
}

func (env *environment) newLibrary() (*circulation.Library, error) {
	options, err := env.libraryOptions()
	if err != nil {
		return nil, err
	}

	return circulation.NewLibrary(options...)
}

func (env *environment) close() {
	if err := env.journal.Close(); err != nil {
		env.logger.Error("closing journal failed", "error", err.Error())
	}

	if env.providers != nil {
		if err := env.providers.Shutdown(); err != nil {
			env.logger.Error("shutting down observability providers failed", "error", err.Error())
		}
	}
}
