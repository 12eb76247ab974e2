// cmd/seed/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"card-rewards/internal/config"
	"card-rewards/internal/database"
	"card-rewards/internal/logger"
	"card-rewards/internal/seed"
	"card-rewards/internal/storage/postgres"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		file   string
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Load banks, cards and category bonuses from a YAML file",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := seed.ReadFile(file)
			if err != nil {
				return err
			}

			if dryRun {
				if err := f.Validate(); err != nil {
					return err
				}
				banks, cards, categories := f.Counts()
				fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d banks, %d cards, %d category bonuses\n",
					file, banks, cards, categories)
				return nil
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cfg := config.MustLoad()
			log := logger.New(cfg.Log)

			db, err := database.New(ctx, cfg.Database, log)
			if err != nil {
				return err
			}
			defer db.Close()

			store := postgres.NewStorage(db.Pool)
			res, err := seed.NewLoader(store.Banks, store.Cards, log).Load(ctx, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "banks: %d created, %d existing; cards: %d created, %d existing; category bonuses: %d created\n",
				res.BanksCreated, res.BanksExisting, res.CardsCreated, res.CardsExisting, res.CategoriesCreated)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "data/cards.yaml", "seed file to load")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and validate the file without touching the database")
	return cmd
}
