package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"log-owl.com/log-owl/internal/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		database, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore(database)

		version, err := migrations.CurrentVersion(ctx, database)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
