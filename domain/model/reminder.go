package model

import (
	"fmt"
	"strings"
	"time"
)

// Weekdays in reminder order. Index 0 is Monday.
var reminderWeekdays = [7]time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// ReminderSchedule holds the blogging reminder days and time for a blog.
type ReminderSchedule struct {
	BlogID    int64     `json:"blogId"`
	Days      [7]bool   `json:"days"` // Monday..Sunday
	Hour      int       `json:"hour"`
	Minute    int       `json:"minute"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DayItem is one positional entry of the day selector.
type DayItem struct {
	Day      time.Weekday `json:"day"`
	Label    string       `json:"label"`
	Selected bool         `json:"selected"`
}

// NewReminderSchedule returns an empty schedule firing at 10:00.
func NewReminderSchedule(blogID int64) *ReminderSchedule {
	return &ReminderSchedule{BlogID: blogID, Hour: 10}
}

// Items returns the seven day items in positional order.
func (s *ReminderSchedule) Items() []DayItem {
	items := make([]DayItem, 0, len(reminderWeekdays))
	for i, d := range reminderWeekdays {
		items = append(items, DayItem{Day: d, Label: d.String()[:3], Selected: s.Days[i]})
	}
	return items
}

// SelectedDays returns the selected weekdays in positional order.
func (s *ReminderSchedule) SelectedDays() []time.Weekday {
	var out []time.Weekday
	for i, d := range reminderWeekdays {
		if s.Days[i] {
			out = append(out, d)
		}
	}
	return out
}

// Count returns how many days are selected.
func (s *ReminderSchedule) Count() int {
	n := 0
	for _, on := range s.Days {
		if on {
			n++
		}
	}
	return n
}

// Toggle flips the given day and returns its new state.
func (s *ReminderSchedule) Toggle(day time.Weekday) bool {
	i := dayIndex(day)
	s.Days[i] = !s.Days[i]
	return s.Days[i]
}

// SetTime validates and sets the reminder time of day.
func (s *ReminderSchedule) SetTime(hour, minute int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("%w: time %02d:%02d out of range", ErrReminderInvalid, hour, minute)
	}
	s.Hour, s.Minute = hour, minute
	return nil
}

// Mask encodes Days as a bit set (bit 0 is Monday).
func (s *ReminderSchedule) Mask() uint8 {
	var m uint8
	for i, on := range s.Days {
		if on {
			m |= 1 << i
		}
	}
	return m
}

// SetMask decodes a bit set produced by Mask.
func (s *ReminderSchedule) SetMask(m uint8) {
	for i := range s.Days {
		s.Days[i] = m&(1<<i) != 0
	}
}

func dayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// ParseWeekday accepts full or three-letter English day names.
func ParseWeekday(s string) (time.Weekday, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, d := range reminderWeekdays {
		name := strings.ToLower(d.String())
		if v == name || v == name[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown weekday %q", ErrReminderInvalid, s)
}
