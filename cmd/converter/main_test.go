package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubCloser struct {
	closed atomic.Bool
	err    error
}

func (c *stubCloser) Close() error {
	c.closed.Store(true)
	return c.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCloseAfterPipeline_WaitsForPipeline(t *testing.T) {
	writer := &stubCloser{}
	done := make(chan struct{})
	returned := make(chan struct{})

	go func() {
		closeAfterPipeline(context.Background(), done, discardLogger(), namedCloser{"kafka writer", writer})
		close(returned)
	}()

	// An in-flight batch is still loading: the writer must stay open.
	time.Sleep(50 * time.Millisecond)
	assert.False(t, writer.closed.Load())

	close(done)
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("closeAfterPipeline did not return after the pipeline stopped")
	}
	assert.True(t, writer.closed.Load())
}

func TestCloseAfterPipeline_ShutdownTimeout(t *testing.T) {
	reader := &stubCloser{}
	writer := &stubCloser{err: errors.New("already closed")}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	closeAfterPipeline(ctx, make(chan struct{}), discardLogger(),
		namedCloser{"kafka reader", reader}, namedCloser{"kafka writer", writer})

	assert.True(t, reader.closed.Load())
	assert.True(t, writer.closed.Load())
}
