package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// version can be overridden at build time via:
	// go build -ldflags "-X github.com/dialogiq/dialogiq/internal/cli.version=1.2.3"
	version = "1.0.0"
	logo    = "\n" +
		"     _ _       _             ___ ___\n" +
		"  __| (_) __ _| | ___   __ _|_ _/ _ \\\n" +
		" / _` | |/ _` | |/ _ \\ / _` || | | | |\n" +
		"| (_| | | (_| | | (_) | (_| || | |_| |\n" +
		" \\__,_|_|\\__,_|_|\\___/ \\__, |___\\__\\_\\\n" +
		"                       |___/\n"
)

var rootCmd = &cobra.Command{
	Use:   "dialogiq",
	Short: "DialogIQ - Conversational workforce assistant",
	Long:  color.CyanString(logo) + "\nA slot-filling assistant and CRUD backend for timesheets, leaves, emails, tasks, and jobs.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(assistantCmd)
	rootCmd.AddCommand(gatewayCmd)
}
