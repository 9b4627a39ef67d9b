// Package signal cancels a command context on SIGINT or SIGTERM so long-running
// commands such as "rcli http serve" can shut down gracefully.
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog"
)

// Handler derives a context that is canceled by the first shutdown signal.
// Later signals are drained and ignored.
type Handler struct {
	ctx      context.Context //nolint:containedctx // the handler owns this context's lifetime
	cancel   context.CancelFunc
	log      *zerolog.Logger
	caught   chan struct{}
	stopped  chan struct{}
	sigs     chan os.Signal
	mu       sync.Mutex
	received os.Signal
	stopOnce sync.Once
}

// NewHandler starts listening for sigs, or SIGINT and SIGTERM when none are
// given. The logger carried by parent, if any, records the caught signal.
//
//	h := signal.NewHandler(ctx)
//	defer h.Stop()
//	err := serve(h.Context())
func NewHandler(parent context.Context, sigs ...os.Signal) *Handler {
	if len(sigs) == 0 {
		sigs = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}

	ctx, cancel := context.WithCancel(parent)
	h := &Handler{
		ctx:     ctx,
		cancel:  cancel,
		log:     zerolog.Ctx(parent),
		caught:  make(chan struct{}),
		stopped: make(chan struct{}),
		// signal.Notify never blocks, so an unbuffered channel could miss a signal.
		sigs: make(chan os.Signal, 1),
	}

	signal.Notify(h.sigs, sigs...)
	go h.listen()

	return h
}

// Context returns the context canceled on the first signal or on Stop.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// Interrupted is closed once a signal has been caught.
func (h *Handler) Interrupted() <-chan struct{} {
	return h.caught
}

// Signal returns the signal that canceled the context, or nil.
func (h *Handler) Signal() os.Signal {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.received
}

// Stop unregisters the handler and cancels its context. Safe to call repeatedly.
func (h *Handler) Stop() {
	h.stopOnce.Do(func() {
		signal.Stop(h.sigs)
		close(h.stopped)
		h.cancel()
	})
}

func (h *Handler) deliver(sig os.Signal) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.received != nil {
		return
	}
	h.received = sig

	h.log.Info().Str("signal", sig.String()).Msg("shutdown requested")
	h.cancel()
	close(h.caught)
}

func (h *Handler) listen() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case <-h.stopped:
			return
		case sig := <-h.sigs:
			if sig != nil {
				h.deliver(sig)
			}
		}
	}
}
