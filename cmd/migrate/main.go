package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/grpaccess/backend/internal/config"
	"github.com/grpaccess/backend/internal/docstore/migrate"
	"github.com/grpaccess/backend/internal/logging"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	_ = godotenv.Load("../.env")

	direction := flag.String("direction", "up", "migration direction: up or down")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: migrate [-direction up|down]

Creates or drops the document collections in DATABASE_URL (schema DB_NAME).`)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	if err := migrate.Run(cfg.DatabaseURL, cfg.DBName, *direction); err != nil {
		logging.Fatal("migration failed", "direction", *direction, "error", err)
	}
	slog.Info("migrations completed", "direction", *direction, "schema", cfg.DBName)
}
