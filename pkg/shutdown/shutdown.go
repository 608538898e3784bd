package shutdown

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marcodd23/go-duckdb-core/pkg/logx"
	"github.com/pkg/errors"
)

// WaitForShutdown blocks until SIGINT or SIGTERM is received, then runs cleanupCallback
// within a context bounded by timeout.
//
// The error returned by cleanupCallback is returned; if the timeout expires first,
// context.DeadlineExceeded is returned and the callback keeps running in the background.
//
// Usage:
//
//	err := shutdown.WaitForShutdown(context.Background(), 5*time.Second, func(timeoutCtx context.Context) error {
//	    return mgr.Close()
//	})
func WaitForShutdown(rootCtx context.Context, timeout time.Duration, cleanupCallback func(timeoutCtx context.Context) error) error {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	return waitAndCleanUp(rootCtx, signals, timeout, cleanupCallback)
}

func waitAndCleanUp(rootCtx context.Context, signals <-chan os.Signal, timeout time.Duration, cleanupCallback func(timeoutCtx context.Context) error) error {
	select {
	case sig := <-signals:
		logx.GetLogger().LogDebug(rootCtx, fmt.Sprintf("Interrupt signal captured: %s", sig.String()))
	case <-rootCtx.Done():
		logx.GetLogger().LogDebug(rootCtx, "Root context done, shutting down")
	}

	// rootCtx may already be cancelled here, cleanup still gets its full timeout.
	timeoutCtx, cancel := context.WithTimeout(context.WithoutCancel(rootCtx), timeout)
	defer cancel()

	return cleanUp(timeoutCtx, cleanupCallback)
}

// cleanUp runs the callback and waits for it or for the context deadline, whichever comes first.
func cleanUp(timeoutCtx context.Context, cleanupCallback func(timeoutCtx context.Context) error) error {
	logx.GetLogger().LogInfo(timeoutCtx, "Cleaning up all resources ....")

	done := make(chan error, 1)

	go func() {
		defer close(done)
		if cleanupCallback != nil {
			done <- cleanupCallback(timeoutCtx)
		}
	}()

	select {
	case <-timeoutCtx.Done():
		logx.GetLogger().LogError(timeoutCtx, "Deadline exceeded during cleanup", timeoutCtx.Err())
		return errors.WithStack(timeoutCtx.Err())
	case err := <-done:
		if err != nil {
			logx.GetLogger().LogError(timeoutCtx, "Error cleaning up resources", err)
			return err
		}
		logx.GetLogger().LogInfo(timeoutCtx, "All resources cleaned up")
		return nil
	}
}
