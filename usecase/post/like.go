package post

import (
	"context"
	"iter"
	"time"

	"github.com/yaegashi/readerops/domain/model"
	"github.com/yaegashi/readerops/internal/logging"
	"github.com/yaegashi/readerops/usecase/toggle"
)

// LikeInput identifies the post and the requested like state.
type LikeInput struct {
	BlogID int64 `json:"blog_id"`
	PostID int64 `json:"post_id"`
	Liked  bool  `json:"liked"`
	// Force re-sends the request even when the cached state already matches.
	Force bool `json:"force,omitempty"`
}

// Like sets the like state of a post. The local copy is updated before the
// remote call and is not rolled back if the remote call fails.
func (u *UseCase) Like(ctx context.Context, in *LikeInput) (iter.Seq[toggle.Outcome[*model.Post]], error) {
	if in == nil || in.BlogID == 0 || in.PostID == 0 {
		return nil, model.ErrPostInvalid
	}
	u.init()
	return u.like.Execute(ctx, toggle.Request{
		EntityID:    in.PostID,
		SecondaryID: in.BlogID,
		Desired:     in.Liked,
		Force:       in.Force,
	}), nil
}

func (u *UseCase) likeAction() toggle.Action[*model.Post] {
	return toggle.Action[*model.Post]{
		Name: "post.like",
		Event: func(req toggle.Request) (string, map[string]any) {
			event := EventUnliked
			if req.Desired {
				event = EventLiked
			}
			return event, map[string]any{"blog_id": req.SecondaryID, "post_id": req.EntityID}
		},
		Read: func(ctx context.Context, req toggle.Request) (bool, error) {
			p, err := u.Repos.Post.Get(ctx, keyOf(req))
			if err != nil {
				return false, err
			}
			return p.IsLiked, nil
		},
		Write: func(ctx context.Context, req toggle.Request) (*model.Post, error) {
			p, err := u.Repos.Post.Get(ctx, keyOf(req))
			if err != nil {
				return nil, err
			}
			wasLiked := p.IsLiked
			if p.SetLiked(req.Desired) {
				p.UpdatedAt = time.Now().UTC()
				if err := u.Repos.Post.Update(ctx, p); err != nil {
					return nil, err
				}
			}
			// Page views count only when a post becomes liked.
			if req.Desired && !wasLiked {
				if err := u.PostActionPort.BumpPageView(ctx, p); err != nil {
					logging.FromContext(ctx).Warn(ctx, "page view bump failed", "blogId", p.BlogID, "postId", p.ID, "err", err)
				}
			}
			return p, nil
		},
		Remote: func(ctx context.Context, req toggle.Request, p *model.Post, done model.RemoteDone) {
			u.PostActionPort.Like(ctx, p, req.Desired, u.UserID, done)
		},
	}
}
