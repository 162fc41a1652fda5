package blog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yaegashi/readerops/domain"
	"github.com/yaegashi/readerops/domain/model"
	"github.com/yaegashi/readerops/internal/logging"
)

// UndoBlockInput carries the snapshot produced by Block.
type UndoBlockInput struct {
	Result *model.BlockedBlogResult `json:"result"`
}

// UndoBlockOutput reports whether the remote unblock went through.
type UndoBlockOutput struct {
	BlogID          int64 `json:"blog_id"`
	RestoredPosts   int   `json:"restored_posts"`
	RemoteSucceeded bool  `json:"remote_succeeded"`
}

// UndoBlock restores what Block removed and asks the remote to unblock the
// blog. Only local failures are returned as errors; a failed or abandoned
// remote unblock is logged and reported in the output.
func (u *UseCase) UndoBlock(ctx context.Context, in *UndoBlockInput) (*UndoBlockOutput, error) {
	if in == nil || in.Result == nil || in.Result.BlogID <= 0 {
		return nil, model.ErrBlogInvalid
	}
	res := in.Result
	logger := logging.FromContext(ctx).With("blogId", res.BlogID)

	if err := u.do(ctx, func(repos *domain.Repositories) error {
		return undoLocal(ctx, repos, res)
	}); err != nil {
		return nil, err
	}
	out := &UndoBlockOutput{BlogID: res.BlogID, RestoredPosts: len(res.RemovedPosts)}

	if u.BlogActionPort == nil {
		return out, nil
	}
	results := make(chan bool, 1)
	u.BlogActionPort.Unblock(ctx, res.BlogID, func(ok bool) {
		select {
		case results <- ok:
		default:
		}
	})
	select {
	case ok := <-results:
		out.RemoteSucceeded = ok
		if !ok {
			logger.Warn(ctx, "remote unblock failed")
		}
	case <-ctx.Done():
		logger.Warn(ctx, "remote unblock abandoned", "err", ctx.Err())
	}
	return out, nil
}

func undoLocal(ctx context.Context, repos *domain.Repositories, res *model.BlockedBlogResult) error {
	now := time.Now().UTC()
	b, err := repos.Blog.Get(ctx, res.BlogID)
	switch {
	case res.CreatedBlog:
		if err := repos.Blog.Delete(ctx, res.BlogID); err != nil && !errors.Is(err, model.ErrBlogNotFound) {
			return fmt.Errorf("remove blocked blog %d: %w", res.BlogID, err)
		}
	case errors.Is(err, model.ErrBlogNotFound):
		b = &model.Blog{ID: res.BlogID, IsFollowing: res.WasFollowing, CreatedAt: now, UpdatedAt: now}
		if err := repos.Blog.Create(ctx, b); err != nil {
			return fmt.Errorf("restore blog %d: %w", res.BlogID, err)
		}
	case err != nil:
		return err
	default:
		b.IsBlocked = false
		b.IsFollowing = res.WasFollowing
		b.UpdatedAt = now
		if err := repos.Blog.Update(ctx, b); err != nil {
			return fmt.Errorf("restore blog %d: %w", res.BlogID, err)
		}
	}
	for _, p := range res.RemovedPosts {
		if p == nil {
			continue
		}
		if err := repos.Post.Create(ctx, p); err != nil {
			return fmt.Errorf("restore post %d/%d: %w", p.BlogID, p.ID, err)
		}
	}
	return nil
}
