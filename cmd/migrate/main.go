package main

import (
	"github.com/SeakMengs/DocCollect/internal/config"
	"github.com/SeakMengs/DocCollect/internal/database"
	"github.com/SeakMengs/DocCollect/internal/env"
	"github.com/SeakMengs/DocCollect/internal/util"
)

func init() {
	env.LoadEnv(".env")
}

func main() {
	cfg := config.GetConfig()
	logger := util.NewLogger(cfg.ENV).With("cmd", "migrate")
	defer logger.Sync()

	logger.Infof("Migrating %s database %s", cfg.DB.DRIVER, cfg.DB.DB_DATABASE)

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Panic(err)
	}

	if migrateErr := database.Migrate(db); migrateErr != nil {
		logger.Panic(migrateErr)
	}

	logger.Info("Migration finished")
}
