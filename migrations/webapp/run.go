// Command webapp applies the users and products schema. Run it before
// starting cmd/api or cmd/worker: go run ./migrations/webapp
package main

import (
	"context"
	"embed"
	"log/slog"
	"os"

	"github.com/ghuser/webapp/pkg/config"
	"github.com/ghuser/webapp/pkg/logger"
	"github.com/ghuser/webapp/pkg/migrator"
)

//go:embed *.sql
var MigrationsFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg).With("component", "migrator")

	if err := migrator.RunMigrations(context.Background(), cfg.DatabaseURL, MigrationsFS, log); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}
}
