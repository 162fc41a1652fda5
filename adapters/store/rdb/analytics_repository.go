package rdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnalyticsEvent is a tracked event as stored.
type AnalyticsEvent struct {
	ID        string         `json:"id"`
	Event     string         `json:"event"`
	Props     map[string]any `json:"props,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// AnalyticsEventRepository appends and lists tracked events.
type AnalyticsEventRepository struct{ db *gorm.DB }

func NewAnalyticsEventRepository(db *gorm.DB) *AnalyticsEventRepository {
	return &AnalyticsEventRepository{db: db}
}

// Append stores an event under a fresh ID and returns it.
func (r *AnalyticsEventRepository) Append(ctx context.Context, event string, props map[string]any) (*AnalyticsEvent, error) {
	rec := &AnalyticsEventRecord{ID: "evt-" + uuid.NewString(), Event: event, CreatedAt: time.Now().UTC()}
	if len(props) > 0 {
		b, err := json.Marshal(props)
		if err != nil {
			return nil, fmt.Errorf("encode props: %w", err)
		}
		rec.Props = string(b)
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return &AnalyticsEvent{ID: rec.ID, Event: event, Props: props, CreatedAt: rec.CreatedAt}, nil
}

// List returns events oldest first; an empty name matches every event.
func (r *AnalyticsEventRepository) List(ctx context.Context, event string) ([]*AnalyticsEvent, error) {
	q := r.db.WithContext(ctx).Order("created_at ASC, id ASC")
	if event != "" {
		q = q.Where("event = ?", event)
	}
	var recs []AnalyticsEventRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*AnalyticsEvent, 0, len(recs))
	for i := range recs {
		ev := &AnalyticsEvent{ID: recs[i].ID, Event: recs[i].Event, CreatedAt: recs[i].CreatedAt}
		if recs[i].Props != "" {
			if err := json.Unmarshal([]byte(recs[i].Props), &ev.Props); err != nil {
				return nil, fmt.Errorf("decode props of %s: %w", ev.ID, err)
			}
		}
		out = append(out, ev)
	}
	return out, nil
}
