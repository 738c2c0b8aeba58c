package migrate

import (
	"context"
	"fmt"

	"github.com/helphub/helphub-backend/pkg/db"
	"github.com/helphub/helphub-backend/pkg/logger"
)

// Initialize ensures the schema exists. Every statement is guarded with
// IF NOT EXISTS, so it is safe to call on each process start and it adopts
// tables created by older builds.
func Initialize(ctx context.Context, client *db.Client, logg *logger.Logger) error {
	if client == nil {
		return fmt.Errorf("db client is required")
	}

	sqlDB, err := client.SQLDB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{"dialect": client.Dialect(), "dir": DirFor(client.Dialect())})
		logg.Info(ctx, "ensuring schema")
	}

	if err := Run(ctx, sqlDB, client.Dialect(), "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "schema ready")
	}
	return nil
}
