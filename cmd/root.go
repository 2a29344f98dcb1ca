package cmd

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/carril/internal/config"
	"github.com/thenoetrevino/carril/internal/database"
	"github.com/thenoetrevino/carril/internal/logging"
	"github.com/thenoetrevino/carril/internal/server"
	"github.com/thenoetrevino/carril/internal/services/client"
)

var (
	flagAddr string
	flagDB   string
)

var rootCmd = &cobra.Command{
	Use:   "carril",
	Short: "Carril - an HTTP service for tracking clients across board lanes",
	Long: `Carril serves a kanban-style board of clients over HTTP. Clients live in
three status lanes (backlog, in-progress, complete); each lane keeps a
dense 1-based ordering that is rebalanced whenever a client changes lane
or priority.`,
	RunE: runServe,
}

func init() {
	rootCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (overrides config)")
	rootCmd.Flags().StringVar(&flagDB, "db", "", "path to the client database (overrides config)")
}

func Execute() error {
	return rootCmd.Execute()
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flagAddr != "" {
		cfg.ListenAddr = flagAddr
	}
	if flagDB != "" {
		cfg.DatabasePath = flagDB
	}

	logging.Init(cfg.LogLevel)

	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		cmd.Context(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	db, err := database.InitDB(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing db", "error", closeErr)
		}
	}()

	repo := database.NewRepository(db)
	svc := client.NewService(repo)
	srv := server.NewServer(cfg.ListenAddr, svc)

	slog.Info("carril starting", "addr", cfg.ListenAddr, "db", cfg.DatabasePath)

	// Start the server (blocks until shutdown)
	if err := srv.Start(ctx); err != nil {
		return err
	}

	slog.Info("carril shut down gracefully")
	return nil
}
