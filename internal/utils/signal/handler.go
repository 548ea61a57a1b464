package signal

import (
	"StorWatch/internal/api/router"
	"StorWatch/internal/app"
	"StorWatch/internal/pkg/logger"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var (
	cleanupMu    sync.Mutex
	cleanupFuncs []func()
)

// RegisterCleanupFunc registers a function to run before the process exits
// on a termination signal.
func RegisterCleanupFunc(fn func()) {
	cleanupMu.Lock()
	defer cleanupMu.Unlock()
	cleanupFuncs = append(cleanupFuncs, fn)
}

func runCleanupFuncs() {
	cleanupMu.Lock()
	defer cleanupMu.Unlock()
	for _, fn := range cleanupFuncs {
		fn()
	}
}

// HandleSignals sets up signal handling for graceful shutdown
func HandleSignals(application *app.Application, builder *router.Builder) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	for {
		sig := <-sigChan
		switch sig {
		case syscall.SIGINT, syscall.SIGTERM:
			logger.Info("Received termination signal, shutting down...",
				logger.String("signal", sig.String()))

			// Shutdown all resources
			builder.Shutdown()
			application.Shutdown()
			runCleanupFuncs()
			os.Exit(0)
		case syscall.SIGHUP:
			logger.Info("Received SIGHUP signal, triggering config reload...")
			// The watcher will handle the actual reload
		}
	}
}
