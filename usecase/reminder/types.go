package reminder

import (
	"github.com/yaegashi/readerops/domain"
	"github.com/yaegashi/readerops/internal/htmlmsg"
)

// Repos holds repositories needed for reminder use cases.
type Repos struct {
	Reminder domain.ReminderRepository
}

// UseCase manages blogging reminder schedules.
type UseCase struct {
	Repos *Repos
	// Formatter renders summaries; nil means English.
	Formatter *htmlmsg.Formatter
}
