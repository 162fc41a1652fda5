package inmem

import (
	"context"
	"sort"
	"sync"

	"github.com/yaegashi/readerops/domain"
	"github.com/yaegashi/readerops/domain/model"
)

// BlogRepository is a thread-safe in-memory implementation.
type BlogRepository struct {
	mu    sync.RWMutex
	blogs map[int64]*model.Blog
}

func NewBlogRepository() *BlogRepository {
	return &BlogRepository{blogs: make(map[int64]*model.Blog)}
}

func (r *BlogRepository) Create(_ context.Context, b *model.Blog) error {
	if b.ID == 0 {
		return model.ErrBlogInvalid
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.blogs[b.ID] = &cp
	return nil
}

func (r *BlogRepository) Get(_ context.Context, id int64) (*model.Blog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.blogs[id]
	if !ok {
		return nil, model.ErrBlogNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *BlogRepository) List(_ context.Context) ([]*model.Blog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Blog, 0, len(r.blogs))
	for _, b := range r.blogs {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *BlogRepository) Update(_ context.Context, b *model.Blog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.blogs[b.ID]
	if !ok {
		return model.ErrBlogNotFound
	}
	cp := *b
	cp.CreatedAt = existing.CreatedAt
	r.blogs[b.ID] = &cp
	return nil
}

func (r *BlogRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.blogs[id]; !ok {
		return model.ErrBlogNotFound
	}
	delete(r.blogs, id)
	return nil
}

var _ domain.BlogRepository = (*BlogRepository)(nil)
