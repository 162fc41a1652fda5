package inmem

import (
	"context"
	"sync"

	"github.com/yaegashi/readerops/domain"
	"github.com/yaegashi/readerops/domain/model"
)

// ReminderRepository keeps reminder schedules by blog.
type ReminderRepository struct {
	mu        sync.RWMutex
	schedules map[int64]*model.ReminderSchedule
}

func NewReminderRepository() *ReminderRepository {
	return &ReminderRepository{schedules: make(map[int64]*model.ReminderSchedule)}
}

func (r *ReminderRepository) Get(_ context.Context, blogID int64) (*model.ReminderSchedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schedules[blogID]
	if !ok {
		return nil, model.ErrReminderNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *ReminderRepository) Put(_ context.Context, s *model.ReminderSchedule) error {
	if s == nil || s.BlogID == 0 {
		return model.ErrReminderInvalid
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.schedules[s.BlogID] = &cp
	return nil
}

var _ domain.ReminderRepository = (*ReminderRepository)(nil)
