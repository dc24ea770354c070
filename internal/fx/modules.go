package fx

import (
	"database/sql"

	"hockeycap/internal/api"
	"hockeycap/internal/assistant"
	"hockeycap/internal/config"
	"hockeycap/internal/database"
	"hockeycap/internal/db"
	"hockeycap/internal/logger"
	"hockeycap/internal/repository"
	"hockeycap/internal/server"
	"hockeycap/internal/service"
	"hockeycap/internal/source"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewTeamRepository),
	// api clients
	fx.Provide(api.NewNHLClient),
	fx.Provide(api.NewCapWagesClient),
	fx.Provide(assistant.New),
	// roster source
	fx.Provide(source.NewFixtureSource),
	fx.Provide(source.New),
	// svc
	fx.Provide(service.NewTeamService),
	fx.Provide(service.NewSandboxService),
	fx.Provide(service.NewChatService),
	// server
	fx.Provide(server.NewCapServer),
)
