// Package fault is the fail-stop boundary around the controller. The first
// error or panic paints the crash pattern and halts everything after it.
package fault

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/coreman2200/proxiglow/internal/color"
	"github.com/coreman2200/proxiglow/internal/diagnostics"
	"github.com/coreman2200/proxiglow/internal/frame"
	"github.com/coreman2200/proxiglow/internal/led"
)

// ErrHalted is returned by Guard once a fault has been handled.
var ErrHalted = errors.New("fault: halted")

// PanicError carries a recovered panic and the stack it was raised on.
type PanicError struct {
	Value any
	stack []byte
}

func (e *PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }

func (e *PanicError) Stack() []byte { return e.stack }

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

type Handler struct {
	Sink led.PixelSink
	// A and B alternate along the strip once halted.
	A, B color.RGB
	Log  zerolog.Logger
	// Count is the number of faults handled; never more than one.
	Count int

	halted bool
	cause  error
}

func New(sink led.PixelSink, log zerolog.Logger) *Handler {
	return &Handler{
		Sink: sink,
		A:    color.CrashRed,
		B:    color.CrashYellow,
		Log:  log.With().Str("component", "fault").Logger(),
	}
}

// Guard runs fn unless already halted. A nil result or context cancellation
// passes through; anything else, panics included, is handled once and
// returned.
func (h *Handler) Guard(fn func() error) error {
	if h.halted {
		return ErrHalted
	}
	err := recovered(fn)
	if err == nil || errors.Is(err, context.Canceled) {
		return err
	}
	h.fail(err)
	return err
}

func (h *Handler) Halted() bool { return h.halted }

// Cause is the error that halted the handler.
func (h *Handler) Cause() error { return h.cause }

func recovered(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, stack: debug.Stack()}
		}
	}()
	return fn()
}

func (h *Handler) fail(err error) {
	h.Count++
	h.cause = err
	h.halted = true
	diagnostics.Emit(h.Log, diagnostics.FromError(err))

	if h.Sink == nil {
		return
	}
	if perr := recovered(func() error {
		pattern := frame.New(h.Sink.Len())
		pattern.Alternate(h.A, h.B)
		for i, c := range pattern {
			h.Sink.SetPixel(i, c)
		}
		return h.Sink.Show()
	}); perr != nil {
		h.Log.Error().Err(perr).Msg("could not show fault pattern")
	}
}
