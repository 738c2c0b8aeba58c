package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/helphub/helphub-backend/internal/helphub"
	"github.com/helphub/helphub-backend/pkg/config"
	"github.com/helphub/helphub-backend/pkg/logger"
	"github.com/helphub/helphub-backend/pkg/security"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	password := flag.String("password", "", "password for every demo account (generated when empty)")
	allowProd := flag.Bool("allow-prod", false, "seed even when HELPHUB_APP_ENV is prod")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "driver": cfg.DB.Driver})

	if cfg.App.IsProd() && !*allowProd {
		fmt.Fprintln(os.Stderr, "refusing to load demo accounts into a prod store (pass -allow-prod to override)")
		os.Exit(1)
	}

	if *password == "" {
		*password, err = security.GenerateTempPassword(12)
		requireResource(ctx, logg, "password generator", err)
	}

	module, err := helphub.Open(ctx, *cfg, logg)
	requireResource(ctx, logg, "store", err)
	defer module.Close()

	requireResource(ctx, logg, "schema", module.Initialize(ctx))

	summary, err := loadDemoData(ctx, module, *password, logg)
	if err != nil {
		logg.Error(ctx, "seed failed", err)
		os.Exit(1)
	}
	if summary.Skipped {
		fmt.Println("store already holds reports; nothing seeded")
		return
	}
	logg.Info(logg.WithFields(ctx, map[string]any{
		"users":      summary.Users,
		"volunteers": summary.Volunteers,
		"reports":    summary.Reports,
	}), "seed complete")
	fmt.Println("demo account password:", *password)
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
