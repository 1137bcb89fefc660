package main

import (
	"os"

	"github.com/DRSN-tech/production-admin/internal/app"
	config "github.com/DRSN-tech/production-admin/internal/cfg"
	"github.com/DRSN-tech/production-admin/pkg/logger"
	"github.com/joho/godotenv"
)

//	@title			Production Admin API
//	@version		1.0
//	@description	BFF админки производства поверх инвентарного API
//	@BasePath		/api/v1
func main() {
	// slog нужен до того, как прочитаны настройки zap.
	bootstrap := logger.NewSlogLogger()

	if err := godotenv.Load(); err != nil {
		bootstrap.Infof("no .env file loaded, using process environment")
	}

	logCfg := config.LoadLogCfg()
	log, err := logger.NewZapLogger(logCfg.Level, logCfg.Development)
	if err != nil {
		bootstrap.Errorf(err, "failed to initialize zap logger")
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		log.Sync()
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		log.Sync()
		os.Exit(1)
	}
}
