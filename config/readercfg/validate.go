package readercfg

import (
	"fmt"

	"github.com/yaegashi/readerops/domain/model"
)

// Validate performs semantic validation on the configuration tree.
func (r *Root) Validate() error {
	if r.Version != 1 {
		return fmt.Errorf("version: unsupported version %d", r.Version)
	}
	blogs := make(map[int64]struct{}, len(r.Blogs))
	for i, b := range r.Blogs {
		if b.ID <= 0 {
			return fmt.Errorf("blogs[%d].id: must be positive", i)
		}
		if _, dup := blogs[b.ID]; dup {
			return fmt.Errorf("blogs[%d].id: duplicate blog id %d", i, b.ID)
		}
		blogs[b.ID] = struct{}{}
	}
	posts := make(map[model.PostKey]struct{}, len(r.Posts))
	for i, p := range r.Posts {
		if p.ID <= 0 || p.BlogID <= 0 {
			return fmt.Errorf("posts[%d]: id and blogId must be positive", i)
		}
		if p.LikeCount < 0 {
			return fmt.Errorf("posts[%d].likeCount: must not be negative", i)
		}
		key := model.PostKey{BlogID: p.BlogID, PostID: p.ID}
		if _, dup := posts[key]; dup {
			return fmt.Errorf("posts[%d]: duplicate post %d/%d", i, p.BlogID, p.ID)
		}
		posts[key] = struct{}{}
	}
	for i, rem := range r.Reminders {
		if _, err := rem.toModel(); err != nil {
			return fmt.Errorf("reminders[%d]: %w", i, err)
		}
	}
	return nil
}
