package post

import (
	"context"

	"github.com/yaegashi/readerops/domain/model"
)

// ListInput optionally restricts the listing to one blog.
type ListInput struct {
	BlogID int64 `json:"blog_id,omitempty"`
	// BookmarkedOnly limits the result to saved posts.
	BookmarkedOnly bool `json:"bookmarked_only,omitempty"`
}

// ListOutput wraps listed posts.
type ListOutput struct {
	Posts []*model.Post `json:"posts"`
}

// List returns cached posts.
func (u *UseCase) List(ctx context.Context, in *ListInput) (*ListOutput, error) {
	if in == nil {
		in = &ListInput{}
	}
	var (
		items []*model.Post
		err   error
	)
	if in.BlogID != 0 {
		items, err = u.Repos.Post.ListByBlog(ctx, in.BlogID)
	} else {
		items, err = u.Repos.Post.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	if in.BookmarkedOnly {
		kept := items[:0]
		for _, p := range items {
			if p.IsBookmarked {
				kept = append(kept, p)
			}
		}
		items = kept
	}
	return &ListOutput{Posts: items}, nil
}

// GetInput identifies a post.
type GetInput struct {
	BlogID int64 `json:"blog_id"`
	PostID int64 `json:"post_id"`
}

// GetOutput wraps the retrieved post.
type GetOutput struct {
	Post *model.Post `json:"post"`
}

// Get retrieves a cached post.
func (u *UseCase) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if in == nil || in.BlogID == 0 || in.PostID == 0 {
		return nil, model.ErrPostInvalid
	}
	p, err := u.Repos.Post.Get(ctx, model.PostKey{BlogID: in.BlogID, PostID: in.PostID})
	if err != nil {
		return nil, err
	}
	return &GetOutput{Post: p}, nil
}
