package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	config "log-owl.com/log-owl/internal/configs"
	"log-owl.com/log-owl/internal/constants"
	"log-owl.com/log-owl/internal/liveness"
	"log-owl.com/log-owl/internal/logger"
	"log-owl.com/log-owl/internal/migrations"
	repository "log-owl.com/log-owl/internal/repositories"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show schema version, running entries and the last heartbeat",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		database, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore(database)

		version, err := migrations.CurrentVersion(ctx, database)
		if err != nil {
			return err
		}
		open, err := repository.NewTimeEntryRepository(database).ListOpen(ctx)
		if err != nil {
			return err
		}
		lastSeen, found, err := repository.NewAppStateRepository(database).Get(ctx, constants.LastSeenKey)
		if err != nil {
			return err
		}
		if !found {
			lastSeen = "never"
		}

		fmt.Fprintf(out, "database:       %s\n", cfg.DatabasePath)
		fmt.Fprintf(out, "schema version: %d\n", version)
		fmt.Fprintf(out, "running:        %d\n", len(open))
		fmt.Fprintf(out, "last seen:      %s\n", lastSeen)

		if cfg.RedisAddr == "" {
			return nil
		}
		client, err := config.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			logger.Warn("Liveness: redis unavailable", zap.Error(err))
			fmt.Fprintf(out, "redis:          unavailable\n")
			return nil
		}
		defer client.Close()

		mirrored, alive, err := liveness.NewRedisPublisher(client, cfg.RedisLivenessKey, cfg.RedisLivenessTTL()).LastSeen(ctx)
		switch {
		case err != nil:
			fmt.Fprintf(out, "redis:          error: %v\n", err)
		case !alive:
			fmt.Fprintf(out, "redis:          no live heartbeat\n")
		default:
			fmt.Fprintf(out, "redis:          alive, last seen %s\n", mirrored)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
