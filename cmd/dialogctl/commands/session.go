package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"taskvoice/internal/config"
	"taskvoice/internal/session"
)

// NewSessionCmd creates the session command
func NewSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect and manage dialog sessions",
		Long:  "Inspect, clear, and mint identifiers for dialog sessions in the configured backend",
	}

	cmd.AddCommand(newSessionGetCmd())
	cmd.AddCommand(newSessionClearCmd())
	cmd.AddCommand(newSessionNewCmd())

	return cmd
}

func newSessionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <session-id>",
		Short: "Print the stored conversation state for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore(store)

			state, err := store.Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to read session: %w", err)
			}
			if state == nil {
				fmt.Println("No state stored for this session")
				return nil
			}

			data, err := json.MarshalIndent(state, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode state: %w", err)
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

func newSessionClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <session-id>",
		Short: "Drop the stored conversation state for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore(store)

			if err := store.Clear(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			fmt.Println("Session cleared")
			return nil
		},
	}
}

func newSessionNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Mint a fresh session identifier",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(uuid.NewString())
			return nil
		},
	}
}

func openStore() (session.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		return session.NewRedisStore(cfg.RedisURL, cfg.SessionTTL)
	case config.SessionBackendPostgres:
		return session.NewPostgresStore(cfg.DatabaseURL, cfg.SessionTTL)
	default:
		return nil, fmt.Errorf("session backend %q has no shared state to inspect", cfg.SessionBackend)
	}
}

func closeStore(store session.Store) {
	if closer, ok := store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close store: %v\n", err)
		}
	}
}
