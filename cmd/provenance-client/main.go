package main

import (
	"context"
	"fmt"
	"os"

	apiclient "nf-provenance/api/client"
	"nf-provenance/core/extract"
	"nf-provenance/core/submit"
	applog "nf-provenance/pkg/log"

	"github.com/joho/godotenv"
	cli "github.com/urfave/cli/v3"
)

func main() {
	_ = godotenv.Load()

	cmd := &cli.Command{
		Name:      "provenance-client",
		Usage:     "Submit Nextflow workflow and process execution provenance to the provenance store",
		ArgsUsage: "<log-file> <bco-file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Usage:   "Base URL of the provenance store API",
				Value:   "http://localhost:8000",
				Sources: cli.EnvVars("PROVENANCE_API_URL"),
			},
			&cli.StringFlag{
				Name:  "history-file",
				Usage: "Read the run-history table from a file instead of running 'nextflow log'",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			// Setup first: loggers bind the default handler when created,
			// so one built earlier would ignore the configured level.
			applog.Setup(command.String("log-level"))
			logger := applog.WithModule("client")

			if command.Args().Len() != 2 {
				return fmt.Errorf("expected <log-file> <bco-file>, got %d arguments", command.Args().Len())
			}
			logFile := command.Args().Get(0)
			bcoFile := command.Args().Get(1)

			history := extract.CommandHistory()
			if path := command.String("history-file"); path != "" {
				history = extract.FileHistory(path)
			}

			store := apiclient.New(command.String("api-url"))
			driver := submit.NewDriver(store, history, logger)

			if err := driver.Submit(ctx, logFile, bcoFile); err != nil {
				return err
			}
			logger.InfoContext(ctx, "all provenance records submitted")
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		applog.WithModule("client").Error("submission failed", "error", err)
		os.Exit(1)
	}
}
