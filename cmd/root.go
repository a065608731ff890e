package cmd

import (
	"fmt"
	"log"

	"users-api/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var envFile string

// NewRootCmd builds the CLI. Running it without a subcommand starts the server.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "users-api",
		Short:         "HTTP CRUD service for users",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to an optional .env file")

	root.AddCommand(newServeCmd())
	root.AddCommand(newMigrateCmd())

	return root
}

// bootstrap loads the config and builds the logger shared by every command
func bootstrap() (*utils.Config, *zap.Logger, error) {
	config, err := utils.LoadConfig(envFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using production logger.", err)
		logger, _ = zap.NewProduction()
	}

	return config, logger, nil
}
