package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dialogiq/dialogiq/internal/backend"
	"github.com/dialogiq/dialogiq/internal/config"
	"github.com/dialogiq/dialogiq/internal/dialogue"
	"github.com/dialogiq/dialogiq/internal/nlu"
	"github.com/dialogiq/dialogiq/internal/session"
)

var (
	assistantMessage   string
	assistantSessionID string
)

var assistantCmd = &cobra.Command{
	Use:   "assistant",
	Short: "Chat with the assistant directly in CLI",
	Run:   runAssistant,
}

func init() {
	assistantCmd.Flags().StringVarP(&assistantMessage, "message", "m", "", "Message to send to the assistant")
	assistantCmd.Flags().StringVarP(&assistantSessionID, "session", "s", "cli:default", "Session ID")
}

func runAssistant(cmd *cobra.Command, args []string) {
	if assistantMessage == "" {
		fmt.Println("Error: --message is required")
		os.Exit(1)
	}

	printHeader("🤖 DialogIQ Assistant")

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

	replies := engine.HandleTurn(context.Background(), assistantSessionID, assistantMessage)
	for _, reply := range replies {
		fmt.Println(reply)
	}
}
