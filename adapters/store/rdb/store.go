package rdb

import (
	"context"

	"github.com/yaegashi/readerops/domain"
	"gorm.io/gorm"
)

// Store bundles the gorm-backed repositories over one database.
type Store struct {
	DB *gorm.DB
}

// Open opens dbURL and applies migrations.
func Open(dbURL string) (*Store, error) {
	db, err := OpenFromURL(dbURL)
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return &Store{DB: db}, nil
}

// Repositories returns repositories bound to the store's database.
func (s *Store) Repositories() *domain.Repositories {
	return repositoriesFor(s.DB)
}

// Analytics returns the analytics event repository.
func (s *Store) Analytics() *AnalyticsEventRepository {
	return NewAnalyticsEventRepository(s.DB)
}

// Do runs fn inside a database transaction.
func (s *Store) Do(ctx context.Context, fn func(repos *domain.Repositories) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repositoriesFor(tx))
	})
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func repositoriesFor(db *gorm.DB) *domain.Repositories {
	return &domain.Repositories{
		Post:     NewPostRepository(db),
		Blog:     NewBlogRepository(db),
		Note:     NewNoteRepository(db),
		Reminder: NewReminderRepository(db),
	}
}

var _ domain.UnitOfWork = (*Store)(nil)
