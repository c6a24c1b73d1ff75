// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/resumekit/resumekit/internal/config"
	"github.com/resumekit/resumekit/internal/database"
	"github.com/resumekit/resumekit/internal/server"
	"github.com/urfave/cli/v3"
)

// Version information (set via ldflags during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	cmd := &cli.Command{
		Name:    "resumekit",
		Usage:   "Resume builder API server",
		Version: fmt.Sprintf("%s (built %s)", Version, BuildTime),
		Flags:   config.Flags(),
		Action:  server.Run,
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Manage database migrations",
				Flags: config.Flags(),
				Commands: []*cli.Command{
					{
						Name:   "down",
						Usage:  "Roll back the last migration",
						Flags:  config.Flags(),
						Action: migrateDown,
					},
					{
						Name:   "reset",
						Usage:  "Roll back all migrations",
						Flags:  config.Flags(),
						Action: migrateReset,
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func migrateDown(_ context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close()
	return database.MigrateDown(db.DB)
}

func migrateReset(_ context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close()
	return database.MigrateReset(db.DB)
}
