package inmem

import (
	"context"
	"maps"
	"sync"

	"github.com/yaegashi/readerops/config/readercfg"
	"github.com/yaegashi/readerops/domain"
	"github.com/yaegashi/readerops/domain/model"
)

// Store provides a unified interface for all in-memory repositories.
type Store struct {
	PostRepo     *PostRepository
	BlogRepo     *BlogRepository
	NoteRepo     *NoteRepository
	ReminderRepo *ReminderRepository

	// uow serializes units of work.
	uow sync.Mutex
}

// NewStore creates a new in-memory store with all repositories.
func NewStore() *Store {
	return &Store{
		PostRepo:     NewPostRepository(),
		BlogRepo:     NewBlogRepository(),
		NoteRepo:     NewNoteRepository(),
		ReminderRepo: NewReminderRepository(),
	}
}

// Repositories returns the store's repositories as domain interfaces.
func (s *Store) Repositories() *domain.Repositories {
	return &domain.Repositories{
		Post:     s.PostRepo,
		Blog:     s.BlogRepo,
		Note:     s.NoteRepo,
		Reminder: s.ReminderRepo,
	}
}

// Do runs fn with the store's repositories. Units of work run one at a time;
// when fn fails the repositories are restored to their state before fn ran.
// Writes made outside a unit of work while it runs are not isolated.
func (s *Store) Do(ctx context.Context, fn func(repos *domain.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.uow.Lock()
	defer s.uow.Unlock()
	snap := s.snapshot()
	if err := fn(s.Repositories()); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type storeSnapshot struct {
	posts     map[model.PostKey]*model.Post
	blogs     map[int64]*model.Blog
	notes     map[string]*model.Note
	schedules map[int64]*model.ReminderSchedule
}

// snapshot copies the maps; stored values are never mutated in place.
func (s *Store) snapshot() storeSnapshot {
	var snap storeSnapshot
	s.PostRepo.mu.RLock()
	snap.posts = maps.Clone(s.PostRepo.posts)
	s.PostRepo.mu.RUnlock()
	s.BlogRepo.mu.RLock()
	snap.blogs = maps.Clone(s.BlogRepo.blogs)
	s.BlogRepo.mu.RUnlock()
	s.NoteRepo.mu.RLock()
	snap.notes = maps.Clone(s.NoteRepo.notes)
	s.NoteRepo.mu.RUnlock()
	s.ReminderRepo.mu.RLock()
	snap.schedules = maps.Clone(s.ReminderRepo.schedules)
	s.ReminderRepo.mu.RUnlock()
	return snap
}

func (s *Store) restore(snap storeSnapshot) {
	s.PostRepo.mu.Lock()
	s.PostRepo.posts = snap.posts
	s.PostRepo.mu.Unlock()
	s.BlogRepo.mu.Lock()
	s.BlogRepo.blogs = snap.blogs
	s.BlogRepo.mu.Unlock()
	s.NoteRepo.mu.Lock()
	s.NoteRepo.notes = snap.notes
	s.NoteRepo.mu.Unlock()
	s.ReminderRepo.mu.Lock()
	s.ReminderRepo.schedules = snap.schedules
	s.ReminderRepo.mu.Unlock()
}

// LoadFromConfig loads a readerops.yml configuration into the memory store.
func (s *Store) LoadFromConfig(ctx context.Context, cfg *readercfg.Root) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	m, err := cfg.ToModels()
	if err != nil {
		return err
	}
	return s.Do(ctx, func(repos *domain.Repositories) error {
		for _, b := range m.Blogs {
			if err := repos.Blog.Create(ctx, b); err != nil {
				return err
			}
		}
		for _, p := range m.Posts {
			if err := repos.Post.Create(ctx, p); err != nil {
				return err
			}
		}
		for _, r := range m.Reminders {
			if err := repos.Reminder.Put(ctx, r); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadFromFile loads a readerops.yml file into the memory store.
func (s *Store) LoadFromFile(ctx context.Context, path string) error {
	cfg, err := readercfg.Load(path)
	if err != nil {
		return err
	}
	return s.LoadFromConfig(ctx, cfg)
}

// Compile-time assertions
var _ domain.UnitOfWork = (*Store)(nil)
