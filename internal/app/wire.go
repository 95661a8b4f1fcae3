//go:build wireinject
// +build wireinject

package app

import (
	"log/slog"

	"github.com/google/wire"

	"voicescribe/internal/api/server"
	"voicescribe/internal/config"
)

// InitializeServer assembles the HTTP server from configuration. The returned
// cleanup closes the stores.
func InitializeServer(cfg *config.Config, logger *slog.Logger) (*server.Server, func(), error) {
	wire.Build(
		provideMetrics,
		provideFacade,
		provideTranscriber,
		provideContainer,
		provideServerConfig,
		provideIdentityResolver,
		server.NewServer,
	)
	return nil, nil, nil
}
