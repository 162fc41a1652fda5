package reminder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/yaegashi/readerops/domain/model"
	"github.com/yaegashi/readerops/internal/htmlmsg"
)

// Output describes a schedule the way the day selector shows it.
type Output struct {
	Schedule *model.ReminderSchedule `json:"schedule"`
	Items    []model.DayItem         `json:"items"`
	Summary  htmlmsg.Message         `json:"summary"`
}

func (u *UseCase) output(s *model.ReminderSchedule) *Output {
	return &Output{Schedule: s, Items: s.Items(), Summary: u.Summary(s)}
}

func (u *UseCase) load(ctx context.Context, blogID int64) (*model.ReminderSchedule, error) {
	s, err := u.Repos.Reminder.Get(ctx, blogID)
	if errors.Is(err, model.ErrReminderNotFound) {
		return model.NewReminderSchedule(blogID), nil
	}
	return s, err
}

func (u *UseCase) save(ctx context.Context, s *model.ReminderSchedule) error {
	s.UpdatedAt = time.Now().UTC()
	if err := u.Repos.Reminder.Put(ctx, s); err != nil {
		return fmt.Errorf("save reminders of blog %d: %w", s.BlogID, err)
	}
	return nil
}

// GetInput identifies a blog.
type GetInput struct {
	BlogID int64 `json:"blog_id"`
}

// Get returns the schedule of a blog, an empty one if none was saved.
func (u *UseCase) Get(ctx context.Context, in *GetInput) (*Output, error) {
	if in == nil || in.BlogID <= 0 {
		return nil, model.ErrReminderInvalid
	}
	s, err := u.load(ctx, in.BlogID)
	if err != nil {
		return nil, err
	}
	return u.output(s), nil
}

// ToggleDayInput flips one day.
type ToggleDayInput struct {
	BlogID int64        `json:"blog_id"`
	Day    time.Weekday `json:"day"`
}

// ToggleDay flips a day of the schedule and saves it.
func (u *UseCase) ToggleDay(ctx context.Context, in *ToggleDayInput) (*Output, error) {
	if in == nil || in.BlogID <= 0 || in.Day < time.Sunday || in.Day > time.Saturday {
		return nil, model.ErrReminderInvalid
	}
	s, err := u.load(ctx, in.BlogID)
	if err != nil {
		return nil, err
	}
	s.Toggle(in.Day)
	if err := u.save(ctx, s); err != nil {
		return nil, err
	}
	return u.output(s), nil
}

// UpdateInput replaces the schedule. Days lists the selected days.
type UpdateInput struct {
	BlogID int64          `json:"blog_id"`
	Days   []time.Weekday `json:"days"`
	Hour   int            `json:"hour"`
	Minute int            `json:"minute"`
}

// Update replaces the selected days and time of a schedule.
func (u *UseCase) Update(ctx context.Context, in *UpdateInput) (*Output, error) {
	if in == nil || in.BlogID <= 0 {
		return nil, model.ErrReminderInvalid
	}
	s := model.NewReminderSchedule(in.BlogID)
	for _, d := range in.Days {
		if d < time.Sunday || d > time.Saturday {
			return nil, fmt.Errorf("%w: day %d", model.ErrReminderInvalid, d)
		}
		if !s.Toggle(d) {
			s.Toggle(d)
		}
	}
	if err := s.SetTime(in.Hour, in.Minute); err != nil {
		return nil, err
	}
	if err := u.save(ctx, s); err != nil {
		return nil, err
	}
	return u.output(s), nil
}

// Summary describes the schedule in one sentence with the count, days and
// time emphasized.
func (u *UseCase) Summary(s *model.ReminderSchedule) htmlmsg.Message {
	f := u.Formatter
	if f == nil {
		f = htmlmsg.NewFormatter(language.English)
	}
	at := fmt.Sprintf("%02d:%02d", s.Hour, s.Minute)
	var labels []string
	for _, it := range s.Items() {
		if it.Selected {
			labels = append(labels, it.Label)
		}
	}
	days := strings.Join(labels, ", ")

	switch n := len(labels); n {
	case 0:
		return htmlmsg.Message{Text: f.String(htmlmsg.KeyRemindersNone)}
	case 1:
		return htmlmsg.Emphasize(f.String(htmlmsg.KeyRemindersOnce, days, at), days, at)
	case 7:
		return htmlmsg.Emphasize(f.String(htmlmsg.KeyRemindersDaily, at), at)
	default:
		times := f.String(htmlmsg.KeyRemindersTimes, n)
		return htmlmsg.Emphasize(f.String(htmlmsg.KeyRemindersSummary, times, days, at), times, days, at)
	}
}
