package fx

import (
	"go.uber.org/fx"

	"valorant-accounts/internal/config"
	"valorant-accounts/internal/database"
	"valorant-accounts/internal/importer"
	"valorant-accounts/internal/logger"
	"valorant-accounts/internal/rank"
	"valorant-accounts/internal/repository"
	"valorant-accounts/internal/server"
	"valorant-accounts/internal/service"
	"valorant-accounts/internal/vault"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// storage
	fx.Provide(vault.NewStore),
	fx.Provide(repository.NewRankHistoryRepository),
	// extraction + enrichment
	fx.Provide(importer.New),
	fx.Provide(rank.NewClient),
	fx.Provide(rank.NewEnricher),
	// svc
	fx.Provide(service.NewAccountService),
	fx.Provide(service.NewAuthService),
	// server
	fx.Provide(server.New),
)
