package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dialogiq/dialogiq/internal/backend"
	"github.com/dialogiq/dialogiq/internal/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		printHeader("🏷️ DialogIQ Version")
		fmt.Printf("Version: %s\n", version)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status",
	Run: func(cmd *cobra.Command, args []string) {
		printHeader("📊 DialogIQ Status")
		fmt.Printf("Version: %s\n", version)

		configPath, _ := config.ConfigPath()
		if _, err := os.Stat(configPath); err == nil {
			fmt.Println("Config:  ✓ Found (" + configPath + ")")
		} else {
			fmt.Println("Config:  ✗ Not found (using defaults)")
		}

		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("Config:  ? Unable to load (%v)\n", err)
			cfg = config.DefaultConfig()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := backend.New(cfg.Backend).Health(ctx); err == nil {
			fmt.Println("Backend: ✓ Reachable (" + cfg.Backend.BaseURL + ")")
		} else {
			fmt.Println("Backend: ✗ Unreachable (" + cfg.Backend.BaseURL + ")")
		}

		if cfg.Channels.Slack.Enabled {
			fmt.Println("Slack:   ✓ Enabled")
		} else {
			fmt.Println("Slack:   ✗ Disabled")
		}

		fmt.Println("Status:  Ready")
	},
}
