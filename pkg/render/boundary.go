// Package render provides a fallback boundary for view rendering: a failed
// render is replaced by a fallback panel instead of taking down the caller.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultMaxAttempts = 3
	defaultBackoffStep = time.Second
)

// Func renders a view into w.
type Func func(w io.Writer) error

// FallbackFunc renders the panel shown in place of a failed view.
type FallbackFunc func(w io.Writer, err error)

// Transient marks a render failure as safe to retry, e.g. a view whose
// backing data was swapped out while it was being drawn.
type Transient interface {
	error
	Transient() bool
}

// TransientError wraps err as a retryable render failure.
func TransientError(err error) error {
	return &transientError{err: err}
}

type transientError struct{ err error }

func (e *transientError) Error() string   { return e.err.Error() }
func (e *transientError) Unwrap() error   { return e.err }
func (e *transientError) Transient() bool { return true }

// IsTransient reports whether err, or anything it wraps, is classified retryable.
func IsTransient(err error) bool {
	var t Transient
	return errors.As(err, &t) && t.Transient()
}

// PanicError carries a value recovered from a panicking render.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string { return fmt.Sprintf("render panic: %v", e.Value) }

// Boundary catches render failures. Output is buffered per attempt so a
// failed attempt never leaks partial output.
type Boundary struct {
	Name        string
	Fallback    FallbackFunc
	MaxAttempts int
	BackoffStep time.Duration
	Log         zerolog.Logger

	sleep func(ctx context.Context, d time.Duration) error
}

// NewBoundary returns a Boundary with the default retry policy: up to 3
// attempts, waiting 1s, then 2s, between them.
func NewBoundary(name string, fallback FallbackFunc, log zerolog.Logger) *Boundary {
	return &Boundary{
		Name:        name,
		Fallback:    fallback,
		MaxAttempts: defaultMaxAttempts,
		BackoffStep: defaultBackoffStep,
		Log:         log,
	}
}

// Render runs fn and copies its output to w. On failure the fallback panel
// is written instead and the final error is returned for the caller's
// records; it is never re-panicked.
func (b *Boundary) Render(ctx context.Context, w io.Writer, fn Func) error {
	maxAttempts := b.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var buf bytes.Buffer
		err = safeRender(&buf, fn)
		if err == nil {
			_, werr := buf.WriteTo(w)
			return werr
		}

		if !IsTransient(err) || attempt == maxAttempts {
			break
		}

		wait := time.Duration(attempt) * b.backoffStep()
		b.Log.Warn().Err(err).Str("view", b.Name).Int("attempt", attempt).Dur("retry_in", wait).Msg("transient render failure")
		if serr := b.wait(ctx, wait); serr != nil {
			err = serr
			break
		}
	}

	b.Log.Error().Err(err).Str("view", b.Name).Msg("render failed, showing fallback")
	if b.Fallback != nil {
		b.Fallback(w, err)
	} else {
		DefaultFallback(w, err)
	}
	return err
}

// DefaultFallback writes a one-line error panel.
func DefaultFallback(w io.Writer, err error) {
	fmt.Fprintf(w, "[view unavailable: %v]\n", err)
}

func (b *Boundary) backoffStep() time.Duration {
	if b.BackoffStep <= 0 {
		return defaultBackoffStep
	}
	return b.BackoffStep
}

func (b *Boundary) wait(ctx context.Context, d time.Duration) error {
	if b.sleep != nil {
		return b.sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func safeRender(w io.Writer, fn Func) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return fn(w)
}
