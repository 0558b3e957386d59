package cli

import (
	"fmt"
	"log"

	"minblog/internal/posts"
	"minblog/internal/storage"

	"github.com/spf13/cobra"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the posts table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			db, err := storage.Open(cmd.Context(), storage.Options{
				Driver: cfg.DatabaseDriver,
				DSN:    cfg.DatabaseDSN,
				Debug:  cfg.DatabaseDebug,
			})
			if err != nil {
				return err
			}
			defer func() { _ = storage.Close(db) }()

			if err := posts.Migrate(cmd.Context(), db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			log.Printf("migrated %s database", cfg.DatabaseDriver)
			return nil
		},
	}
}
