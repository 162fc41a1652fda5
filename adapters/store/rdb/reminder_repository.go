package rdb

import (
	"context"
	"errors"

	"github.com/yaegashi/readerops/domain"
	"github.com/yaegashi/readerops/domain/model"
	"gorm.io/gorm"
)

type ReminderRepository struct{ db *gorm.DB }

func NewReminderRepository(db *gorm.DB) *ReminderRepository { return &ReminderRepository{db: db} }

func (r *ReminderRepository) Get(ctx context.Context, blogID int64) (*model.ReminderSchedule, error) {
	var rec ReminderRecord
	if err := r.db.WithContext(ctx).First(&rec, "blog_id = ?", blogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrReminderNotFound
		}
		return nil, err
	}
	s := &model.ReminderSchedule{BlogID: rec.BlogID, Hour: rec.Hour, Minute: rec.Minute, UpdatedAt: rec.UpdatedAt}
	s.SetMask(rec.DaysMask)
	return s, nil
}

func (r *ReminderRepository) Put(ctx context.Context, s *model.ReminderSchedule) error {
	if s == nil || s.BlogID == 0 {
		return model.ErrReminderInvalid
	}
	rec := &ReminderRecord{BlogID: s.BlogID, DaysMask: s.Mask(), Hour: s.Hour, Minute: s.Minute, UpdatedAt: s.UpdatedAt}
	return r.db.WithContext(ctx).Save(rec).Error
}

var _ domain.ReminderRepository = (*ReminderRepository)(nil)
