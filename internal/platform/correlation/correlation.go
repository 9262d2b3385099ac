// Package correlation carries a per-request ID through context.Context, stamps it on
// every slog record emitted with that context, and forwards it on outbound calls so the
// backend and the AI service log the same ID for one user request.
package correlation

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// Header carries the correlation ID between services. Echo's RequestID middleware reads
// and writes the same header, so an inbound ID is kept.
const Header = "X-Request-ID"

// LogKey is the slog attribute name for the correlation ID.
const LogKey = "correlation_id"

type contextKey struct{}

// NewID generates a random UUID string.
func NewID() string {
	return uuid.NewString()
}

// WithID returns a new context carrying the given correlation ID.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// ID extracts the correlation ID from ctx, returning ("", false) if not present.
func ID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	return id, ok && id != ""
}

// Propagate copies the correlation ID of req's context onto its Header.
// Requests whose context has no ID are left untouched.
func Propagate(req *http.Request) {
	if id, ok := ID(req.Context()); ok {
		req.Header.Set(Header, id)
	}
}

// Handler is a slog.Handler decorator adding LogKey to records whose context has an ID.
type Handler struct {
	next slog.Handler
}

func NewHandler(next slog.Handler) *Handler {
	return &Handler{next: next}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	id, ok := ID(ctx)
	if ok {
		r.AddAttrs(slog.String(LogKey, id))
	}
	if err := h.next.Handle(ctx, r); err != nil {
		return fmt.Errorf("correlation handler: %w", err)
	}
	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewHandler(h.next.WithAttrs(attrs))
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return NewHandler(h.next.WithGroup(name))
}
