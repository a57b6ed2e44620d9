package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dialogiq/dialogiq/internal/backend"
	"github.com/dialogiq/dialogiq/internal/config"
	"github.com/dialogiq/dialogiq/internal/dialogue"
	"github.com/dialogiq/dialogiq/internal/gateway"
	"github.com/dialogiq/dialogiq/internal/nlu"
	"github.com/dialogiq/dialogiq/internal/session"
)

var gatewayCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Run the conversational gateway (webhook + enabled channels)",
	Run:   runGateway,
}

func runGateway(cmd *cobra.Command, args []string) {
	printHeader("🌐 DialogIQ Gateway")

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Config warning: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}

	engine := dialogue.NewEngine(
		backend.New(cfg.Backend),
		nlu.NewKeywordResolver(),
		session.NewManager(),
		cfg.Assistant,
	)
	gw := gateway.New(cfg, engine)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("🚀 Gateway on http://%s:%d\n", cfg.Gateway.Host, cfg.Gateway.Port)
	if cfg.Channels.Slack.Enabled {
		fmt.Println("💬 Slack channel enabled")
	}
	if err := gw.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Printf("Gateway error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("\n👋 Shutting down...")
}
