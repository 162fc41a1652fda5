// Package analytics provides sinks for reader usage events.
package analytics

import (
	"context"
	"sort"

	"github.com/yaegashi/readerops/adapters/store/rdb"
	"github.com/yaegashi/readerops/domain/model"
	"github.com/yaegashi/readerops/internal/logging"
)

// LogSink writes events to the context logger.
type LogSink struct{}

func (LogSink) Track(ctx context.Context, event string, props map[string]any) {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	kv := make([]any, 0, 2+2*len(keys))
	kv = append(kv, "event", event)
	for _, k := range keys {
		kv = append(kv, k, props[k])
	}
	logging.FromContext(ctx).Info(ctx, "analytics event", kv...)
}

// EventStore persists events.
type EventStore interface {
	Append(ctx context.Context, event string, props map[string]any) (*rdb.AnalyticsEvent, error)
}

// RecordSink persists events. Store failures are logged, never returned.
type RecordSink struct {
	Store EventStore
}

func (s *RecordSink) Track(ctx context.Context, event string, props map[string]any) {
	if _, err := s.Store.Append(ctx, event, props); err != nil {
		logging.FromContext(ctx).Warn(ctx, "analytics event not stored", "event", event, "err", err)
	}
}

// Multi fans an event out to every sink in order.
type Multi []model.AnalyticsPort

func (m Multi) Track(ctx context.Context, event string, props map[string]any) {
	for _, sink := range m {
		if sink != nil {
			sink.Track(ctx, event, props)
		}
	}
}

var (
	_ model.AnalyticsPort = LogSink{}
	_ model.AnalyticsPort = (*RecordSink)(nil)
	_ model.AnalyticsPort = Multi(nil)
)
