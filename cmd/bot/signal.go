package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

var shutdownSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// WaitForShutdown blocks until a shutdown signal arrives or ctx is done. It
// returns the signal, or nil when ctx ended the wait.
func WaitForShutdown(ctx context.Context) os.Signal {
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, shutdownSignals...)
	defer signal.Stop(sc)

	select {
	case sig := <-sc:
		slog.Info("Shutdown signal received", "signal", sig.String())
		return sig
	case <-ctx.Done():
		slog.Info("Shutdown requested", "cause", context.Cause(ctx))
		return nil
	}
}
