package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"voicescribe/internal/api/middleware"
	"voicescribe/internal/api/server"
	"voicescribe/internal/api/v1/routes"
	"voicescribe/internal/api/v1/services"
	"voicescribe/internal/app/api/assemblyai"
	"voicescribe/internal/app/repository"
	"voicescribe/internal/app/repository/fallback"
	"voicescribe/internal/app/repository/pg"
	"voicescribe/internal/config"
	"voicescribe/internal/metrics"
)

func provideMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.DefaultRegisterer)
}

// provideFacade builds the dual-backend store. A missing or unreachable
// primary is not fatal: the service comes up on the fallback store alone.
func provideFacade(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (*repository.Facade, func(), error) {
	var primary repository.TranscriptionDAO
	if cfg.DatabaseURL != "" {
		primary = openPrimary(cfg.DatabaseURL, logger)
	} else {
		logger.Info("no DATABASE_URL set, using fallback store only")
	}

	store, err := fallback.NewStore(cfg.FallbackDBPath)
	if err != nil {
		if primary != nil {
			primary.Close()
		}
		return nil, nil, err
	}

	facade := repository.NewFacade(primary, store, logger, m)
	cleanup := func() {
		if err := facade.Close(); err != nil {
			logger.Warn("closing stores", "error", err)
		}
	}
	return facade, cleanup, nil
}

func openPrimary(databaseURL string, logger *slog.Logger) repository.TranscriptionDAO {
	pdb, err := pg.NewPostgresDB(databaseURL)
	if err != nil {
		logger.Warn("primary store unavailable, falling back", "error", err)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := pdb.Ping(ctx); err != nil {
		logger.Warn("primary store unreachable, falling back", "error", err)
		pdb.Close()
		return nil
	}
	if err := pdb.EnsureSchema(ctx); err != nil {
		logger.Warn("primary schema setup failed, falling back", "error", err)
		pdb.Close()
		return nil
	}

	logger.Info("primary store connected")
	return pdb
}

func provideTranscriber(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) services.AudioTranscriber {
	return assemblyai.NewClient(assemblyai.Config{
		APIKey:       cfg.AssemblyAIAPIKey,
		BaseURL:      cfg.AssemblyAIBaseURL,
		PollInterval: cfg.PollInterval,
		PollTimeout:  cfg.PollTimeout,
	}, logger, m)
}

func provideContainer(
	cfg *config.Config,
	transcriber services.AudioTranscriber,
	facade *repository.Facade,
	logger *slog.Logger,
	m *metrics.Metrics,
) *routes.ServiceContainer {
	return &routes.ServiceContainer{
		TranscriptionService: services.NewTranscriptionService(transcriber, facade, cfg.ProviderKeyPresent, logger, m),
		HistoryService:       services.NewHistoryService(facade, logger),
		ProviderKeyPresent:   cfg.ProviderKeyPresent,
	}
}

func provideServerConfig(cfg *config.Config) server.Config {
	return server.Config{
		Addr:         cfg.Addr(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		Environment:  cfg.Environment,
	}
}

// provideIdentityResolver is a placeholder until a real token verifier is
// wired in. A nil resolver means every caller is anonymous.
func provideIdentityResolver() middleware.IdentityResolver {
	return nil
}
