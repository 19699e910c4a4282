package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeServer struct {
	listening chan struct{}
	stop      chan struct{}
	listenErr error
	shutdown  bool
}

func newFakeServer() *fakeServer {
	return &fakeServer{listening: make(chan struct{}), stop: make(chan struct{})}
}

func (f *fakeServer) Listen(string) error {
	if f.listenErr != nil {
		return f.listenErr
	}
	close(f.listening)
	<-f.stop
	return nil
}

func (f *fakeServer) ShutdownWithTimeout(time.Duration) error {
	f.shutdown = true
	close(f.stop)
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := newFakeServer()
	done := make(chan error, 1)
	go func() { done <- serve(ctx, quietLogger(), ":0", srv) }()

	<-srv.listening
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
		assert.True(t, srv.shutdown)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancellation")
	}
}

func TestServe_ListenError(t *testing.T) {
	srv := newFakeServer()
	srv.listenErr = errors.New("address in use")

	err := serve(context.Background(), quietLogger(), ":0", srv)
	assert.EqualError(t, err, "address in use")
	assert.False(t, srv.shutdown)
}

func TestRun_InvalidConfig(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATABASE_DRIVER", "oracle")

	err := run(context.Background())
	assert.ErrorContains(t, err, "failed to load application configuration")
}
