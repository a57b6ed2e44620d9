package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dialogiq/dialogiq/internal/api"
	"github.com/dialogiq/dialogiq/internal/config"
	"github.com/dialogiq/dialogiq/internal/store"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the CRUD REST backend",
	Run:   runServer,
}

func runServer(cmd *cobra.Command, args []string) {
	printHeader("🗄️ DialogIQ Backend")

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Config warning: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Server.DBPath), 0o755); err != nil {
		fmt.Printf("Error: cannot create data directory: %v\n", err)
		os.Exit(1)
	}
	st, err := store.Open(cfg.Server.DBPath)
	if err != nil {
		fmt.Printf("Error: cannot open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{Addr: addr, Handler: api.NewServer(cfg, st)}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Backend listening", "addr", addr, "db", cfg.Server.DBPath)
		fmt.Printf("🚀 Listening on http://%s\n", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		fmt.Println("\n👋 Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Shutdown failed", "error", err)
		}
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)
		}
	}
}
