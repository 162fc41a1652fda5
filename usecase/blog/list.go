package blog

import (
	"context"

	"github.com/yaegashi/readerops/domain/model"
)

// ListInput filters the blog listing.
type ListInput struct {
	BlockedOnly bool `json:"blocked_only,omitempty"`
}

// ListOutput wraps listed blogs.
type ListOutput struct {
	Blogs []*model.Blog `json:"blogs"`
}

// List returns known blogs ordered by ID.
func (u *UseCase) List(ctx context.Context, in *ListInput) (*ListOutput, error) {
	items, err := u.Repos.Blog.List(ctx)
	if err != nil {
		return nil, err
	}
	if in != nil && in.BlockedOnly {
		kept := make([]*model.Blog, 0, len(items))
		for _, b := range items {
			if b.IsBlocked {
				kept = append(kept, b)
			}
		}
		items = kept
	}
	return &ListOutput{Blogs: items}, nil
}

// GetInput identifies a blog.
type GetInput struct {
	BlogID int64 `json:"blog_id"`
}

// GetOutput wraps the retrieved blog.
type GetOutput struct {
	Blog *model.Blog `json:"blog"`
}

// Get retrieves a blog.
func (u *UseCase) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if in == nil || in.BlogID <= 0 {
		return nil, model.ErrBlogInvalid
	}
	b, err := u.Repos.Blog.Get(ctx, in.BlogID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Blog: b}, nil
}
