package inmem

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/yaegashi/readerops/domain"
	"github.com/yaegashi/readerops/domain/model"
)

// NoteRepository is a thread-safe in-memory notification cache.
type NoteRepository struct {
	mu    sync.RWMutex
	notes map[string]*model.Note
}

func NewNoteRepository() *NoteRepository {
	return &NoteRepository{notes: make(map[string]*model.Note)}
}

func (r *NoteRepository) Put(_ context.Context, n *model.Note) error {
	if n == nil {
		return model.ErrNoteInvalid
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *n
	if cp.ID == "" || cp.ID == "0" {
		cp.ID = strconv.FormatInt(int64(model.GenerateNoteID(n)), 10)
	}
	r.notes[cp.ID] = &cp
	return nil
}

func (r *NoteRepository) Get(_ context.Context, id string) (*model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.notes[id]
	if !ok {
		return nil, model.ErrNoteNotFound
	}
	cp := *n
	return &cp, nil
}

func (r *NoteRepository) Latest(_ context.Context, limit int) ([]*model.Note, error) {
	r.mu.RLock()
	out := make([]*model.Note, 0, len(r.notes))
	for _, n := range r.notes {
		cp := *n
		out = append(out, &cp)
	}
	r.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].Timestamp(), out[j].Timestamp()
		if ti != tj {
			return ti > tj
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *NoteRepository) DeletePlaceholders(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, n := range r.notes {
		if n.Placeholder {
			delete(r.notes, id)
		}
	}
	return nil
}

func (r *NoteRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = make(map[string]*model.Note)
	return nil
}

var _ domain.NoteRepository = (*NoteRepository)(nil)
