// Package notify holds the sinks for user-visible cart warnings.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dwikikusuma/shoping-cart/internal/cart/domain"
)

type Notifier interface {
	Warn(ctx context.Context, w domain.Warning)
}

type Func func(ctx context.Context, w domain.Warning)

func (f Func) Warn(ctx context.Context, w domain.Warning) { f(ctx, w) }

// Nop drops warnings.
var Nop Notifier = Func(func(context.Context, domain.Warning) {})

// Log writes each warning as a structured log line.
type Log struct {
	log *slog.Logger
}

func NewLog(log *slog.Logger) *Log {
	return &Log{log: log}
}

func (l *Log) Warn(ctx context.Context, w domain.Warning) {
	l.log.WarnContext(ctx, w.Message,
		slog.String("kind", string(w.Kind)),
		slog.String("op", string(w.Op)),
		slog.Int64("product_id", w.ProductID),
	)
}

// Recorder collects the warnings raised while serving one call.
type Recorder struct {
	mu       sync.Mutex
	warnings []domain.Warning
}

func (r *Recorder) Warn(_ context.Context, w domain.Warning) {
	r.mu.Lock()
	r.warnings = append(r.warnings, w)
	r.mu.Unlock()
}

func (r *Recorder) Warnings() []domain.Warning {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Warning, len(r.warnings))
	copy(out, r.warnings)
	return out
}

type recorderKey struct{}

// WithRecorder returns a context carrying a fresh Recorder. Record calls made
// with the returned context land in it.
func WithRecorder(ctx context.Context) (context.Context, *Recorder) {
	rec := &Recorder{}
	return context.WithValue(ctx, recorderKey{}, rec), rec
}

// Record adds w to the Recorder carried by ctx, if any.
func Record(ctx context.Context, w domain.Warning) {
	if rec, ok := ctx.Value(recorderKey{}).(*Recorder); ok {
		rec.Warn(ctx, w)
	}
}
