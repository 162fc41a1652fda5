package blog

import (
	"context"
	"sync"

	"github.com/yaegashi/readerops/domain"
	"github.com/yaegashi/readerops/domain/model"
	"github.com/yaegashi/readerops/usecase/toggle"
)

// EventBlocked is tracked for every block attempt that passes the network check.
const EventBlocked = "reader_blog_blocked"

// Repos holds repositories needed for blog use cases.
type Repos struct {
	Blog domain.BlogRepository
	Post domain.PostRepository
	// UoW groups the multi-entity writes of block and undo. When nil the
	// writes go straight to Blog and Post.
	UoW domain.UnitOfWork
}

// UseCase wires repositories and ports for blog use cases.
// Blocking runs behind a single-flight guard: a second block while one is
// pending is rejected so that the pending one can still be undone.
type UseCase struct {
	Repos          *Repos
	BlogActionPort model.BlogActionPort
	Network        model.NetworkPort
	Analytics      model.AnalyticsPort

	once  sync.Once
	block *toggle.Coordinator[*model.BlockedBlogResult]
}

func (u *UseCase) init() {
	u.once.Do(func() {
		u.block = toggle.New(u.blockAction(), u.Network, u.Analytics)
	})
}

func (u *UseCase) do(ctx context.Context, fn func(repos *domain.Repositories) error) error {
	if u.Repos.UoW != nil {
		return u.Repos.UoW.Do(ctx, fn)
	}
	return fn(&domain.Repositories{Blog: u.Repos.Blog, Post: u.Repos.Post})
}
