package rdb

import (
	"context"
	"errors"
	"strconv"

	"github.com/yaegashi/readerops/domain"
	"github.com/yaegashi/readerops/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NoteRepository struct{ db *gorm.DB }

func NewNoteRepository(db *gorm.DB) *NoteRepository { return &NoteRepository{db: db} }

func noteToRecord(n *model.Note) *NoteRecord {
	id := n.ID
	if id == "" || id == "0" {
		id = strconv.FormatInt(int64(model.GenerateNoteID(n)), 10)
	}
	return &NoteRecord{
		NoteID:      id,
		Type:        n.Type(),
		RawNoteData: n.Raw,
		Timestamp:   n.Timestamp(),
		Placeholder: n.Placeholder,
	}
}

func noteToModel(r *NoteRecord) *model.Note {
	return &model.Note{ID: r.NoteID, Raw: r.RawNoteData, Placeholder: r.Placeholder}
}

// Put upserts on note_id.
func (r *NoteRepository) Put(ctx context.Context, n *model.Note) error {
	if n == nil {
		return model.ErrNoteInvalid
	}
	rec := noteToRecord(n)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "note_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"type", "raw_note_data", "timestamp", "placeholder"}),
	}).Create(rec).Error
}

func (r *NoteRepository) Get(ctx context.Context, id string) (*model.Note, error) {
	var rec NoteRecord
	if err := r.db.WithContext(ctx).First(&rec, "note_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNoteNotFound
		}
		return nil, err
	}
	return noteToModel(&rec), nil
}

func (r *NoteRepository) Latest(ctx context.Context, limit int) ([]*model.Note, error) {
	q := r.db.WithContext(ctx).Order("timestamp DESC, note_id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var recs []NoteRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Note, 0, len(recs))
	for i := range recs {
		out = append(out, noteToModel(&recs[i]))
	}
	return out, nil
}

func (r *NoteRepository) DeletePlaceholders(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("placeholder = ?", true).Delete(&NoteRecord{}).Error
}

func (r *NoteRepository) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&NoteRecord{}).Error
}

var _ domain.NoteRepository = (*NoteRepository)(nil)
