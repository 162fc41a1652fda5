package note

import (
	"context"

	"github.com/yaegashi/readerops/domain"
)

// DefaultLatestLimit is the number of notes returned when no limit is given.
const DefaultLatestLimit = 20

// Repos holds repositories needed for note use cases.
type Repos struct {
	Note domain.NoteRepository
	// UoW makes Save atomic. When nil Save writes straight to Note.
	UoW domain.UnitOfWork
}

// UseCase exposes the notification cache.
type UseCase struct {
	Repos *Repos
}

func (u *UseCase) do(ctx context.Context, fn func(repo domain.NoteRepository) error) error {
	if u.Repos.UoW != nil {
		return u.Repos.UoW.Do(ctx, func(repos *domain.Repositories) error { return fn(repos.Note) })
	}
	return fn(u.Repos.Note)
}
