package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"StorWatch/internal/pkg/paths"
	"StorWatch/internal/startup"

	"github.com/spf13/cobra"
)

var (
	configPath string
	pidFile    = filepath.Join(paths.RuntimeDir(), "storwatch.pid")
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "storwatch",
	Short: "A disk I/O and battery monitoring agent",
	Long: `StorWatch is a monitoring agent that samples disk I/O and battery
counters and serves rate snapshots over HTTP and WebSocket.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Initialize default logger for early startup
	startup.SetupDefaultLogger()

	// Define flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "conf/config.yaml", "Path to configuration file")
}
