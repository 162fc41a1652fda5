package readercfg

import (
	"fmt"
	"time"

	"github.com/yaegashi/readerops/domain/model"
)

// Models holds the domain entities described by a configuration.
type Models struct {
	Blogs     []*model.Blog
	Posts     []*model.Post
	Reminders []*model.ReminderSchedule
}

// ToModels converts the configuration to domain models.
func (r *Root) ToModels() (*Models, error) {
	now := time.Now().UTC()
	out := &Models{}
	for _, b := range r.Blogs {
		out.Blogs = append(out.Blogs, &model.Blog{
			ID:          b.ID,
			Name:        b.Name,
			URL:         b.URL,
			IsFollowing: b.Following,
			IsBlocked:   b.Blocked,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	for _, p := range r.Posts {
		out.Posts = append(out.Posts, &model.Post{
			ID:           p.ID,
			BlogID:       p.BlogID,
			Title:        p.Title,
			URL:          p.URL,
			IsLiked:      p.Liked,
			LikeCount:    p.LikeCount,
			IsBookmarked: p.Bookmarked,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	for i, rem := range r.Reminders {
		s, err := rem.toModel()
		if err != nil {
			return nil, fmt.Errorf("reminders[%d]: %w", i, err)
		}
		s.UpdatedAt = now
		out.Reminders = append(out.Reminders, s)
	}
	return out, nil
}

func (r Reminder) toModel() (*model.ReminderSchedule, error) {
	if r.BlogID <= 0 {
		return nil, fmt.Errorf("%w: blogId must be positive", model.ErrReminderInvalid)
	}
	s := model.NewReminderSchedule(r.BlogID)
	for _, d := range r.Days {
		wd, err := model.ParseWeekday(d)
		if err != nil {
			return nil, err
		}
		if !s.Toggle(wd) {
			return nil, fmt.Errorf("%w: duplicate day %q", model.ErrReminderInvalid, d)
		}
	}
	if r.Time != "" {
		h, m, err := ParseClock(r.Time)
		if err != nil {
			return nil, err
		}
		if err := s.SetTime(h, m); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ParseClock parses HH:MM.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: time %q must be HH:MM", model.ErrReminderInvalid, s)
	}
	return t.Hour(), t.Minute(), nil
}
