package domain

import (
	"context"
	"errors"

	"github.com/yaegashi/readerops/domain/model"
)

// PostRepository stores and retrieves cached reader posts.
type PostRepository interface {
	Create(ctx context.Context, p *model.Post) error
	Get(ctx context.Context, key model.PostKey) (*model.Post, error)
	List(ctx context.Context) ([]*model.Post, error)
	ListByBlog(ctx context.Context, blogID int64) ([]*model.Post, error)
	Update(ctx context.Context, p *model.Post) error
	Delete(ctx context.Context, key model.PostKey) error
}

// BlogRepository stores and retrieves reader blogs.
type BlogRepository interface {
	Create(ctx context.Context, b *model.Blog) error
	Get(ctx context.Context, id int64) (*model.Blog, error)
	List(ctx context.Context) ([]*model.Blog, error)
	Update(ctx context.Context, b *model.Blog) error
	Delete(ctx context.Context, id int64) error
}

// NoteRepository caches notifications.
type NoteRepository interface {
	// Put inserts or replaces a note. Notes without an ID get a generated one.
	Put(ctx context.Context, n *model.Note) error
	Get(ctx context.Context, id string) (*model.Note, error)
	// Latest returns up to limit notes, newest first.
	Latest(ctx context.Context, limit int) ([]*model.Note, error)
	DeletePlaceholders(ctx context.Context) error
	Clear(ctx context.Context) error
}

// ReminderRepository stores blogging reminder schedules.
type ReminderRepository interface {
	Get(ctx context.Context, blogID int64) (*model.ReminderSchedule, error)
	Put(ctx context.Context, s *model.ReminderSchedule) error
}

// UnitOfWork coordinates transactional operations.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos *Repositories) error) error
}

// Repositories groups repository interfaces for use inside UnitOfWork.
type Repositories struct {
	Post     PostRepository
	Blog     BlogRepository
	Note     NoteRepository
	Reminder ReminderRepository
}

var ErrUnitOfWorkNotSupported = errors.New("unit of work not supported")
