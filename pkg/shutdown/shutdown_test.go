package shutdown

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestCleanupRunsAfterSignal(t *testing.T) {
	signals := make(chan os.Signal, 1)
	signals <- syscall.SIGTERM

	called := false
	err := waitAndCleanUp(context.Background(), signals, time.Second, func(ctx context.Context) error {
		called = true
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, called)
}

func TestCleanupErrorIsReturned(t *testing.T) {
	errClose := errors.New("close failed")
	signals := make(chan os.Signal, 1)
	signals <- syscall.SIGINT

	err := waitAndCleanUp(context.Background(), signals, time.Second, func(context.Context) error {
		return errClose
	})

	assert.Same(t, errClose, err)
}

func TestCleanupTimesOut(t *testing.T) {
	signals := make(chan os.Signal, 1)
	signals <- syscall.SIGTERM
	release := make(chan struct{})
	defer close(release)

	err := waitAndCleanUp(context.Background(), signals, 10*time.Millisecond, func(context.Context) error {
		<-release
		return nil
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCancelledRootStillGetsCleanupWindow(t *testing.T) {
	rootCtx, cancel := context.WithCancel(context.Background())
	cancel()

	err := waitAndCleanUp(rootCtx, make(chan os.Signal), time.Second, func(ctx context.Context) error {
		return ctx.Err()
	})

	assert.NoError(t, err)
}

func TestNilCleanup(t *testing.T) {
	signals := make(chan os.Signal, 1)
	signals <- syscall.SIGTERM

	assert.NoError(t, waitAndCleanUp(context.Background(), signals, time.Second, nil))
}
