package inmem

import (
	"context"
	"sort"
	"sync"

	"github.com/yaegashi/readerops/domain"
	"github.com/yaegashi/readerops/domain/model"
)

// PostRepository is a thread-safe in-memory implementation.
type PostRepository struct {
	mu    sync.RWMutex
	posts map[model.PostKey]*model.Post
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[model.PostKey]*model.Post)}
}

func copyPost(p *model.Post) *model.Post {
	cp := *p
	if p.ContentFetchedAt != nil {
		t := *p.ContentFetchedAt
		cp.ContentFetchedAt = &t
	}
	return &cp
}

// Create stores p, replacing any post with the same key.
func (r *PostRepository) Create(_ context.Context, p *model.Post) error {
	if p.ID == 0 || p.BlogID == 0 {
		return model.ErrPostInvalid
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts[p.Key()] = copyPost(p)
	return nil
}

func (r *PostRepository) Get(_ context.Context, key model.PostKey) (*model.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.posts[key]
	if !ok {
		return nil, model.ErrPostNotFound
	}
	return copyPost(p), nil
}

func (r *PostRepository) List(_ context.Context) ([]*model.Post, error) {
	return r.filter(func(*model.Post) bool { return true }), nil
}

func (r *PostRepository) ListByBlog(_ context.Context, blogID int64) ([]*model.Post, error) {
	return r.filter(func(p *model.Post) bool { return p.BlogID == blogID }), nil
}

// filter returns copies ordered by (BlogID, ID).
func (r *PostRepository) filter(keep func(*model.Post) bool) []*model.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Post, 0, len(r.posts))
	for _, p := range r.posts {
		if keep(p) {
			out = append(out, copyPost(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BlogID != out[j].BlogID {
			return out[i].BlogID < out[j].BlogID
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *PostRepository) Update(_ context.Context, p *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.posts[p.Key()]
	if !ok {
		return model.ErrPostNotFound
	}
	cp := copyPost(p)
	cp.CreatedAt = existing.CreatedAt
	r.posts[p.Key()] = cp
	return nil
}

func (r *PostRepository) Delete(_ context.Context, key model.PostKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[key]; !ok {
		return model.ErrPostNotFound
	}
	delete(r.posts, key)
	return nil
}

var _ domain.PostRepository = (*PostRepository)(nil)
