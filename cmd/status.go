package cmd

import (
	"StorWatch/internal/utils/daemon"
	"fmt"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the status of the StorWatch agent",
	Long:  `Check if the StorWatch monitoring agent is currently running.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Check if the service is running
		running, pid := daemon.GetStatus(pidFile)
		if running {
			fmt.Printf("StorWatch agent is running (PID: %d)\n", pid)
		} else {
			fmt.Println("StorWatch agent is not running")
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
