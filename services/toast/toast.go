// Package toast collects transient user notifications raised while a request is handled.
// The queue lives in the request context so the data-access layer can report failures
// itself; middleware.Toasts turns the queue into an HX-Trigger header.
package toast

import (
	"context"
	"encoding/json"
	"sync"
)

// Levels understood by the browser toast container
const (
	LevelSuccess = "success"
	LevelError   = "error"
	LevelInfo    = "info"
)

// TriggerEvent is the htmx event name dispatched for every queued toast
const TriggerEvent = "showToast"

// Toast is a single notification
type Toast struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Queue holds the toasts of one request
type Queue struct {
	mu     sync.Mutex
	toasts []Toast
}

// Push appends a toast to the queue
func (q *Queue) Push(level, message string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.toasts = append(q.toasts, Toast{Level: level, Message: message})
}

// All returns a copy of the queued toasts
func (q *Queue) All() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Toast, len(q.toasts))
	copy(out, q.toasts)
	return out
}

// Len returns the number of queued toasts
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.toasts)
}

// TriggerHeader renders the HX-Trigger value, or "" when nothing is queued
func (q *Queue) TriggerHeader() (string, error) {
	toasts := q.All()
	if len(toasts) == 0 {
		return "", nil
	}

	b, err := json.Marshal(map[string][]Toast{TriggerEvent: toasts})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type contextKey struct{}

// WithQueue attaches a fresh queue to ctx
func WithQueue(ctx context.Context) (context.Context, *Queue) {
	q := &Queue{}
	return context.WithValue(ctx, contextKey{}, q), q
}

// FromContext returns the queue attached to ctx, if any
func FromContext(ctx context.Context) *Queue {
	q, _ := ctx.Value(contextKey{}).(*Queue)
	return q
}

// Push queues a toast on the request in ctx. It is a no-op without a queue.
func Push(ctx context.Context, level, message string) {
	if q := FromContext(ctx); q != nil {
		q.Push(level, message)
	}
}

// Error queues an error toast
func Error(ctx context.Context, message string) {
	Push(ctx, LevelError, message)
}
