package signal

import (
	"bytes"
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestHandler_InitialState(t *testing.T) {
	h := NewHandler(context.Background())
	defer h.Stop()

	require.NoError(t, h.Context().Err())
	assert.False(t, isClosed(h.Interrupted()))
	assert.Nil(t, h.Signal())
}

func TestHandler_DeliverCancelsContext(t *testing.T) {
	h := NewHandler(context.Background())
	defer h.Stop()

	h.deliver(syscall.SIGTERM)

	require.ErrorIs(t, h.Context().Err(), context.Canceled)
	assert.True(t, isClosed(h.Interrupted()))
	assert.Equal(t, syscall.SIGTERM, h.Signal())
}

func TestHandler_FirstSignalWins(t *testing.T) {
	h := NewHandler(context.Background())
	defer h.Stop()

	h.deliver(syscall.SIGINT)
	h.deliver(syscall.SIGTERM)

	assert.Equal(t, syscall.SIGINT, h.Signal())
}

func TestHandler_LogsCaughtSignal(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	h := NewHandler(logger.WithContext(context.Background()))
	defer h.Stop()

	h.deliver(syscall.SIGINT)

	assert.Contains(t, buf.String(), `"signal":"interrupt"`)
	assert.Contains(t, buf.String(), "shutdown requested")
}

func TestHandler_SignalChannelDelivers(t *testing.T) {
	h := NewHandler(context.Background())
	defer h.Stop()

	h.sigs <- syscall.SIGTERM

	require.Eventually(t, func() bool {
		return isClosed(h.Interrupted())
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, syscall.SIGTERM, h.Signal())
}

func TestHandler_Stop(t *testing.T) {
	h := NewHandler(context.Background())

	h.Stop()
	h.Stop()

	require.ErrorIs(t, h.Context().Err(), context.Canceled)
	assert.False(t, isClosed(h.Interrupted()), "stop is not an interrupt")
	assert.Nil(t, h.Signal())
}

func TestHandler_ParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	h := NewHandler(parent)
	defer h.Stop()

	cancel()

	require.Error(t, h.Context().Err())
	assert.Nil(t, h.Signal())
}

func TestHandler_CustomSignals(t *testing.T) {
	h := NewHandler(context.Background(), syscall.SIGHUP)
	defer h.Stop()

	h.sigs <- syscall.SIGHUP

	require.Eventually(t, func() bool {
		return h.Context().Err() != nil
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, syscall.SIGHUP, h.Signal())
}
