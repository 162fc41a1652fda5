package post

import (
	"context"
	"iter"
	"time"

	"github.com/yaegashi/readerops/domain/model"
	"github.com/yaegashi/readerops/internal/logging"
	"github.com/yaegashi/readerops/usecase/toggle"
)

// BookmarkInput identifies the post to bookmark or unbookmark.
type BookmarkInput struct {
	BlogID int64 `json:"blog_id"`
	PostID int64 `json:"post_id"`
	// FromBookmarkList is set when acting from the saved posts list, where
	// content is already available.
	FromBookmarkList bool `json:"from_bookmark_list,omitempty"`
}

// ToggleBookmark flips the bookmark state of a post. The current state is
// read when the sequence runs. Bookmarking outside the saved posts list emits
// PreloadContent and downloads the post body for offline reading; that
// download decides Success or RequestFailed.
func (u *UseCase) ToggleBookmark(ctx context.Context, in *BookmarkInput) (iter.Seq[toggle.Outcome[*model.Post]], error) {
	if in == nil || in.BlogID == 0 || in.PostID == 0 {
		return nil, model.ErrPostInvalid
	}
	u.init()
	key := model.PostKey{BlogID: in.BlogID, PostID: in.PostID}
	seq := u.bookmark.Execute(ctx, toggle.Request{
		EntityID:    in.PostID,
		SecondaryID: in.BlogID,
		Flip:        true,
		FromList:    in.FromBookmarkList,
	})
	return func(yield func(toggle.Outcome[*model.Post]) bool) {
		for o := range seq {
			if !yield(o) {
				return
			}
			if o.Kind == toggle.LocalStateRecorded && o.Snapshot != nil && o.Snapshot.IsBookmarked && !in.FromBookmarkList {
				if !yield(toggle.Outcome[*model.Post]{Kind: toggle.PreloadContent, Post: key}) {
					return
				}
			}
		}
	}, nil
}

func needsPreload(req toggle.Request) bool {
	return req.Desired && !req.FromList
}

func (u *UseCase) bookmarkAction() toggle.Action[*model.Post] {
	return toggle.Action[*model.Post]{
		Name: "post.bookmark",
		Event: func(req toggle.Request) (string, map[string]any) {
			event := EventUnsaved
			if req.Desired {
				event = EventSaved
			}
			source := "other"
			if req.FromList {
				source = "bookmark_list"
			}
			return event, map[string]any{"blog_id": req.SecondaryID, "post_id": req.EntityID, "source": source}
		},
		Read: func(ctx context.Context, req toggle.Request) (bool, error) {
			p, err := u.Repos.Post.Get(ctx, keyOf(req))
			if err != nil {
				return false, err
			}
			return p.IsBookmarked, nil
		},
		Write: func(ctx context.Context, req toggle.Request) (*model.Post, error) {
			p, err := u.Repos.Post.Get(ctx, keyOf(req))
			if err != nil {
				return nil, err
			}
			p.IsBookmarked = req.Desired
			p.UpdatedAt = time.Now().UTC()
			if err := u.Repos.Post.Update(ctx, p); err != nil {
				return nil, err
			}
			return p, nil
		},
		NeedsRemote: func(req toggle.Request, _ *model.Post) bool {
			return needsPreload(req)
		},
		Remote: func(ctx context.Context, req toggle.Request, p *model.Post, done model.RemoteDone) {
			u.PostActionPort.FetchContent(ctx, p.Key(), func(content string, err error) {
				if err != nil {
					logging.FromContext(ctx).Warn(ctx, "content preload failed", "blogId", p.BlogID, "postId", p.ID, "err", err)
					done(false)
					return
				}
				done(u.storeContent(ctx, p.Key(), content) == nil)
			})
		},
	}
}

func (u *UseCase) storeContent(ctx context.Context, key model.PostKey, content string) error {
	p, err := u.Repos.Post.Get(ctx, key)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	p.Content = content
	p.ContentFetchedAt = &now
	p.UpdatedAt = now
	if err := u.Repos.Post.Update(ctx, p); err != nil {
		logging.FromContext(ctx).Warn(ctx, "storing preloaded content failed", "blogId", key.BlogID, "postId", key.PostID, "err", err)
		return err
	}
	return nil
}
