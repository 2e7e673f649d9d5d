package cli

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/commit-assistant/caa/internal/ui"
)

// InterruptHandler cancels the in-flight request when the user presses Ctrl+C
type InterruptHandler struct {
	cancel      context.CancelFunc
	sigChan     chan os.Signal
	done        chan struct{}
	stopOnce    sync.Once
	printer     *ui.StreamPrinter
	interrupted atomic.Bool
}

// NewInterruptHandler creates a handler that calls cancel on SIGINT or SIGTERM
func NewInterruptHandler(cancel context.CancelFunc, printer *ui.StreamPrinter) *InterruptHandler {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	return &InterruptHandler{
		cancel:  cancel,
		sigChan: sigChan,
		done:    make(chan struct{}),
		printer: printer,
	}
}

// Start starts the interrupt handler in a goroutine
func (h *InterruptHandler) Start() {
	go h.handleSignals()
}

func (h *InterruptHandler) handleSignals() {
	select {
	case <-h.sigChan:
	case <-h.done:
		return
	}

	h.interrupted.Store(true)
	if h.printer != nil {
		_ = h.printer.Newline()
		_ = h.printer.PrintWarning("Received interrupt signal, cancelling request...")
	}
	h.cancel()
}

// IsInterrupted returns whether the handler has been interrupted
func (h *InterruptHandler) IsInterrupted() bool {
	return h.interrupted.Load()
}

// Stop stops the signal handling
func (h *InterruptHandler) Stop() {
	h.stopOnce.Do(func() {
		signal.Stop(h.sigChan)
		close(h.done)
	})
}
