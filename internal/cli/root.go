// Package cli exposes the blog binary's commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"minblog/internal/config"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	envFile string
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "minblog",
		Short:         "Minimal markdown blog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file merged into the environment when present")

	root.AddCommand(newServeCommand(opts), newMigrateCommand(opts))
	return root
}

func (o *rootOptions) loadConfig() (config.Config, error) {
	cfg, err := config.Load(o.envFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func Execute(ctx context.Context) int {
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "minblog: %v\n", err)
		return 1
	}
	return 0
}
