package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/folio/pkg/audit"
	"github.com/doodlesbykumbi/folio/pkg/config"
	"github.com/doodlesbykumbi/folio/pkg/server"
	"github.com/doodlesbykumbi/folio/pkg/server/endpoints"
	"github.com/doodlesbykumbi/folio/pkg/token"
)

const shutdownTimeout = 15 * time.Second

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the folio API server",
	Long: `Run the folio API server.

The server requires FOLIO_TOKEN_SECRET. With the postgres store (the default)
it also requires DATABASE_URL, and database migrations are run on startup.
Use --no-migrate to skip them.

Example:
  folioctl server
  folioctl server --store memory --port 3000`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadServerConfig(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
			os.Exit(1)
		}

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if err := runServer(cmd.Context(), cfg, !noMigrate); err != nil {
			fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().IntP("port", "p", 0, "server listen port (overrides configuration)")
	serverCmd.Flags().StringP("bind-address", "b", "", "server bind address (overrides configuration)")
	serverCmd.Flags().String("store", "", "persistence backend: postgres or memory (overrides configuration)")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}

// loadServerConfig loads the configuration and applies command line overrides.
func loadServerConfig(cmd *cobra.Command) (*config.FolioConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("bind-address") {
		cfg.BindAddress, _ = cmd.Flags().GetString("bind-address")
	}
	if cmd.Flags().Changed("store") {
		cfg.Store, _ = cmd.Flags().GetString("store")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServer(ctx context.Context, cfg *config.FolioConfig, migrate bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := cfg.NewLogger(os.Stderr)

	secret, err := cfg.TokenSecret()
	if err != nil {
		return err
	}
	tokens, err := token.NewService(secret, token.WithTTL(cfg.TokenTTL), token.WithIssuer(cfg.TokenIssuer))
	if err != nil {
		return err
	}

	if migrate && cfg.Store == config.StorePostgres {
		logger.Info("running database migrations")
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	stores, closeStores, err := openStores(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStores()

	audit.SetEnabled(cfg.AuditEnabled)
	if cfg.AuditEnabled {
		auditStore, err := audit.NewStore(cfg.AuditDatabaseURL())
		if err != nil {
			return fmt.Errorf("audit store: %w", err)
		}
		if auditStore != nil {
			audit.SetStore(auditStore)
			defer func() { _ = auditStore.Close() }()
		}
	}

	s, err := server.NewServer(cfg, stores, tokens, logger)
	if err != nil {
		return err
	}
	endpoints.RegisterAll(s)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() { errs <- s.Start() }()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return <-errs
}
