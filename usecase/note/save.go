package note

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/yaegashi/readerops/domain"
	"github.com/yaegashi/readerops/domain/model"
)

// SaveInput carries notes to cache.
type SaveInput struct {
	Notes []*model.Note `json:"notes"`
	// ClearBeforeSaving drops every cached note first.
	ClearBeforeSaving bool `json:"clear_before_saving,omitempty"`
}

// SaveOutput reports how many notes were written.
type SaveOutput struct {
	Saved int `json:"saved"`
}

// Save stores notes in one unit of work.
func (u *UseCase) Save(ctx context.Context, in *SaveInput) (*SaveOutput, error) {
	if in == nil {
		return nil, model.ErrNoteInvalid
	}
	saved := 0
	err := u.do(ctx, func(repo domain.NoteRepository) error {
		if in.ClearBeforeSaving {
			if err := repo.Clear(ctx); err != nil {
				return fmt.Errorf("clear notes: %w", err)
			}
		}
		for _, n := range in.Notes {
			if n == nil {
				continue
			}
			if err := repo.Put(ctx, n); err != nil {
				return fmt.Errorf("save note %q: %w", n.ID, err)
			}
			saved++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &SaveOutput{Saved: saved}, nil
}

// ImportInput carries a notifications API payload: either an array of notes
// or an object with a "notes" array.
type ImportInput struct {
	Payload           string `json:"payload"`
	ClearBeforeSaving bool   `json:"clear_before_saving,omitempty"`
}

// Import parses a payload and saves its notes.
func (u *UseCase) Import(ctx context.Context, in *ImportInput) (*SaveOutput, error) {
	if in == nil || !gjson.Valid(in.Payload) {
		return nil, fmt.Errorf("%w: payload is not valid JSON", model.ErrNoteInvalid)
	}
	list := gjson.Parse(in.Payload)
	if !list.IsArray() {
		list = list.Get("notes")
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: payload has no notes array", model.ErrNoteInvalid)
	}
	var notes []*model.Note
	var perr error
	list.ForEach(func(i, v gjson.Result) bool {
		n, err := model.NewNote(v.Raw)
		if err != nil {
			perr = fmt.Errorf("notes[%d]: %w", i.Int(), err)
			return false
		}
		notes = append(notes, n)
		return true
	})
	if perr != nil {
		return nil, perr
	}
	return u.Save(ctx, &SaveInput{Notes: notes, ClearBeforeSaving: in.ClearBeforeSaving})
}
