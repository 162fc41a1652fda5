package rdb

import (
	"context"
	"errors"

	"github.com/yaegashi/readerops/domain"
	"github.com/yaegashi/readerops/domain/model"
	"gorm.io/gorm"
)

type BlogRepository struct{ db *gorm.DB }

func NewBlogRepository(db *gorm.DB) *BlogRepository { return &BlogRepository{db: db} }

func blogToRecord(b *model.Blog) *BlogRecord {
	return &BlogRecord{ID: b.ID, Name: b.Name, URL: b.URL, IsFollowing: b.IsFollowing, IsBlocked: b.IsBlocked, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt}
}
func blogToModel(r *BlogRecord) *model.Blog {
	return &model.Blog{ID: r.ID, Name: r.Name, URL: r.URL, IsFollowing: r.IsFollowing, IsBlocked: r.IsBlocked, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

// Create stores b, replacing any blog with the same ID.
func (r *BlogRepository) Create(ctx context.Context, b *model.Blog) error {
	if b.ID == 0 {
		return model.ErrBlogInvalid
	}
	return r.db.WithContext(ctx).Save(blogToRecord(b)).Error
}

func (r *BlogRepository) Get(ctx context.Context, id int64) (*model.Blog, error) {
	var rec BlogRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrBlogNotFound
		}
		return nil, err
	}
	return blogToModel(&rec), nil
}

func (r *BlogRepository) List(ctx context.Context) ([]*model.Blog, error) {
	var recs []BlogRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Blog, 0, len(recs))
	for i := range recs {
		out = append(out, blogToModel(&recs[i]))
	}
	return out, nil
}

// Update writes every column but created_at, so false and zero values stick.
func (r *BlogRepository) Update(ctx context.Context, b *model.Blog) error {
	rec := blogToRecord(b)
	res := r.db.WithContext(ctx).Model(&BlogRecord{}).Where("id = ?", rec.ID).Select("*").Omit("id", "created_at").Updates(rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrBlogNotFound
	}
	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&BlogRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrBlogNotFound
	}
	return nil
}

var _ domain.BlogRepository = (*BlogRepository)(nil)
