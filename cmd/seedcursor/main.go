// Command seedcursor creates, resets or shows the shared page cursor record.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jpo/jpo/backend/item-service/internal/config"
	"github.com/jpo/jpo/backend/item-service/internal/cursor"
	"github.com/jpo/jpo/backend/item-service/internal/database"
	"github.com/jpo/jpo/backend/item-service/internal/models"
	"github.com/jpo/jpo/backend/item-service/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(connect).Execute(); err != nil {
		os.Exit(1)
	}
}

// cursorStore is what the subcommands need from the cursor record.
type cursorStore interface {
	cursor.Seeder
	Peek(ctx context.Context) (int64, error)
}

type connectFunc func(ctx context.Context) (cursorStore, func(), error)

func connect(ctx context.Context) (cursorStore, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger.Init(cfg.Log.Level)
	client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		return nil, nil, err
	}
	store := database.NewStore(models.DatabaseName)
	store.Attach(client)
	closeFn := func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Warnf("mongo disconnect: %v", err)
		}
	}
	return cursor.NewMongoAllocator(store, cursor.StrategyAtomic), closeFn, nil
}

func newRootCmd(open connectFunc) *cobra.Command {
	root := &cobra.Command{
		Use:           "seedcursor",
		Short:         "Manage the shared page cursor used by GET /item",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	var initValue int64
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the cursor record if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, open, func(ctx context.Context, s cursorStore) error {
				created, err := s.Seed(ctx, initValue, false)
				if err != nil {
					return err
				}
				if !created {
					cur, err := s.Peek(ctx)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "cursor already exists at %d\n", cur)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "cursor created at %d\n", initValue)
				return nil
			})
		},
	}
	initCmd.Flags().Int64Var(&initValue, "value", 0, "initial offset")

	var resetValue int64
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Overwrite the cursor with --value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if resetValue < 0 {
				return fmt.Errorf("--value must not be negative, got %d", resetValue)
			}
			return withStore(cmd, open, func(ctx context.Context, s cursorStore) error {
				if _, err := s.Seed(ctx, resetValue, true); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "cursor set to %d\n", resetValue)
				return nil
			})
		},
	}
	resetCmd.Flags().Int64Var(&resetValue, "value", 0, "new offset")
	_ = resetCmd.MarkFlagRequired("value")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current cursor value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, open, func(ctx context.Context, s cursorStore) error {
				cur, err := s.Peek(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cur)
				return nil
			})
		},
	}

	root.AddCommand(initCmd, resetCmd, showCmd)
	return root
}

func withStore(cmd *cobra.Command, open connectFunc, fn func(context.Context, cursorStore) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, closeFn, err := open(ctx)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(ctx, s)
}
