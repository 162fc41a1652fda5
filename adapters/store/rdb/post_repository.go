package rdb

import (
	"context"
	"errors"

	"github.com/yaegashi/readerops/domain"
	"github.com/yaegashi/readerops/domain/model"
	"gorm.io/gorm"
)

type PostRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) *PostRepository { return &PostRepository{db: db} }

func postToRecord(p *model.Post) *PostRecord {
	return &PostRecord{
		BlogID:           p.BlogID,
		ID:               p.ID,
		Title:            p.Title,
		URL:              p.URL,
		IsLiked:          p.IsLiked,
		LikeCount:        p.LikeCount,
		IsBookmarked:     p.IsBookmarked,
		Content:          p.Content,
		ContentFetchedAt: p.ContentFetchedAt,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func postToModel(r *PostRecord) *model.Post {
	return &model.Post{
		ID:               r.ID,
		BlogID:           r.BlogID,
		Title:            r.Title,
		URL:              r.URL,
		IsLiked:          r.IsLiked,
		LikeCount:        r.LikeCount,
		IsBookmarked:     r.IsBookmarked,
		Content:          r.Content,
		ContentFetchedAt: r.ContentFetchedAt,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// Create stores p, replacing any post with the same key.
func (r *PostRepository) Create(ctx context.Context, p *model.Post) error {
	if p.ID == 0 || p.BlogID == 0 {
		return model.ErrPostInvalid
	}
	return r.db.WithContext(ctx).Save(postToRecord(p)).Error
}

func (r *PostRepository) Get(ctx context.Context, key model.PostKey) (*model.Post, error) {
	var rec PostRecord
	if err := r.db.WithContext(ctx).First(&rec, "blog_id = ? AND id = ?", key.BlogID, key.PostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrPostNotFound
		}
		return nil, err
	}
	return postToModel(&rec), nil
}

func (r *PostRepository) List(ctx context.Context) ([]*model.Post, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *PostRepository) ListByBlog(ctx context.Context, blogID int64) ([]*model.Post, error) {
	return r.find(r.db.WithContext(ctx).Where("blog_id = ?", blogID))
}

func (r *PostRepository) find(q *gorm.DB) ([]*model.Post, error) {
	var recs []PostRecord
	if err := q.Order("blog_id ASC, id ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Post, 0, len(recs))
	for i := range recs {
		out = append(out, postToModel(&recs[i]))
	}
	return out, nil
}

// Update writes every column but the key and created_at.
func (r *PostRepository) Update(ctx context.Context, p *model.Post) error {
	rec := postToRecord(p)
	res := r.db.WithContext(ctx).Model(&PostRecord{}).
		Where("blog_id = ? AND id = ?", rec.BlogID, rec.ID).
		Select("*").Omit("blog_id", "id", "created_at").Updates(rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, key model.PostKey) error {
	res := r.db.WithContext(ctx).Delete(&PostRecord{}, "blog_id = ? AND id = ?", key.BlogID, key.PostID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

var _ domain.PostRepository = (*PostRepository)(nil)
