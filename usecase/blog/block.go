package blog

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/yaegashi/readerops/domain"
	"github.com/yaegashi/readerops/domain/model"
	"github.com/yaegashi/readerops/usecase/toggle"
)

// BlockInput identifies the blog to block.
type BlockInput struct {
	BlogID int64 `json:"blog_id"`
	// Force blocks again even when the blog is already blocked locally.
	Force bool `json:"force,omitempty"`
}

// Block hides a blog from the reader. Locally the blog is marked blocked and
// unfollowed and its cached posts are removed; the LocalStateRecorded outcome
// carries what was removed so UndoBlock can restore it.
func (u *UseCase) Block(ctx context.Context, in *BlockInput) (iter.Seq[toggle.Outcome[*model.BlockedBlogResult]], error) {
	if in == nil || in.BlogID <= 0 {
		return nil, model.ErrBlogInvalid
	}
	u.init()
	return u.block.Execute(ctx, toggle.Request{EntityID: in.BlogID, Desired: true, Force: in.Force}), nil
}

// InFlight reports whether a block is waiting for the remote.
func (u *UseCase) InFlight() bool {
	u.init()
	return u.block.InFlight()
}

func (u *UseCase) blockAction() toggle.Action[*model.BlockedBlogResult] {
	return toggle.Action[*model.BlockedBlogResult]{
		Name: "blog.block",
		Event: func(req toggle.Request) (string, map[string]any) {
			return EventBlocked, map[string]any{"blog_id": req.EntityID}
		},
		Read: func(ctx context.Context, req toggle.Request) (bool, error) {
			b, err := u.Repos.Blog.Get(ctx, req.EntityID)
			if errors.Is(err, model.ErrBlogNotFound) {
				return false, nil
			}
			if err != nil {
				return false, err
			}
			return b.IsBlocked, nil
		},
		Write: func(ctx context.Context, req toggle.Request) (*model.BlockedBlogResult, error) {
			var result *model.BlockedBlogResult
			err := u.do(ctx, func(repos *domain.Repositories) error {
				r, err := blockLocal(ctx, repos, req.EntityID)
				result = r
				return err
			})
			if err != nil {
				return nil, err
			}
			return result, nil
		},
		Remote: func(ctx context.Context, _ toggle.Request, result *model.BlockedBlogResult, done model.RemoteDone) {
			u.BlogActionPort.Block(ctx, result, done)
		},
	}
}

// blockLocal applies the local side of a block. Blogs unknown to the store
// are recorded as blocked so that later fetches can skip them.
func blockLocal(ctx context.Context, repos *domain.Repositories, blogID int64) (*model.BlockedBlogResult, error) {
	now := time.Now().UTC()
	result := &model.BlockedBlogResult{BlogID: blogID}

	b, err := repos.Blog.Get(ctx, blogID)
	switch {
	case errors.Is(err, model.ErrBlogNotFound):
		if err := repos.Blog.Create(ctx, &model.Blog{ID: blogID, IsBlocked: true, CreatedAt: now, UpdatedAt: now}); err != nil {
			return nil, fmt.Errorf("record blocked blog %d: %w", blogID, err)
		}
		result.CreatedBlog = true
	case err != nil:
		return nil, err
	default:
		result.WasFollowing = b.IsFollowing
		b.IsFollowing = false
		b.IsBlocked = true
		b.UpdatedAt = now
		if err := repos.Blog.Update(ctx, b); err != nil {
			return nil, fmt.Errorf("update blog %d: %w", blogID, err)
		}
	}

	posts, err := repos.Post.ListByBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		if err := repos.Post.Delete(ctx, p.Key()); err != nil {
			return nil, fmt.Errorf("remove post %d/%d: %w", p.BlogID, p.ID, err)
		}
	}
	result.RemovedPosts = posts
	return result, nil
}
