package cmd

import (
	"StorWatch/internal/utils/daemon"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the StorWatch agent",
	Long:  `Stop the running StorWatch monitoring agent.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Try to stop the service
		pid, err := daemon.StopProcess(pidFile)
		if err != nil {
			fmt.Printf("Failed to stop StorWatch agent: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("StorWatch agent (PID: %d) has been stopped\n", pid)
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
