package main

import (
	"github.com/solsticehq/lumen/internal/cli"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			cmd.Println(cli.SuccessStyle.Render("✓ Database schema is up to date"))
			return nil
		},
	}
}
