package note

import (
	"context"
	"time"

	"github.com/tidwall/gjson"

	"github.com/yaegashi/readerops/domain/model"
	"github.com/yaegashi/readerops/internal/logging"
)

// View is the list representation of a cached note.
type View struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	Title          string `json:"title,omitempty"`
	Subject        string `json:"subject,omitempty"`
	CommentSubject string `json:"comment_subject,omitempty"`
	Author         string `json:"author,omitempty"`
	Unread         bool   `json:"unread"`
	Timestamp      int64  `json:"timestamp"`
	Group          string `json:"group"`
	Placeholder    bool   `json:"placeholder,omitempty"`
}

func newView(n *model.Note, now time.Time) View {
	v := View{
		ID:          n.ID,
		Type:        n.Type(),
		Title:       n.Title(),
		Subject:     n.SubjectText(),
		Unread:      n.IsUnread(),
		Timestamp:   n.Timestamp(),
		Placeholder: n.Placeholder,
	}
	v.Group = model.TimeGroupFor(v.Timestamp, now).String()
	if n.IsCommentType() {
		v.CommentSubject = n.CommentSubject()
		v.Author = n.CommentAuthorName()
	}
	return v
}

// LatestInput bounds the listing; Limit <= 0 means DefaultLatestLimit.
type LatestInput struct {
	Limit int `json:"limit,omitempty"`
}

// LatestOutput lists notes newest first.
type LatestOutput struct {
	Notes []View `json:"notes"`
}

// Latest returns the most recent cached notes. Rows whose document cannot be
// parsed are skipped.
func (u *UseCase) Latest(ctx context.Context, in *LatestInput) (*LatestOutput, error) {
	limit := DefaultLatestLimit
	if in != nil && in.Limit > 0 {
		limit = in.Limit
	}
	notes, err := u.Repos.Note.Latest(ctx, limit)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := &LatestOutput{Notes: make([]View, 0, len(notes))}
	for _, n := range notes {
		if !gjson.Valid(n.Raw) {
			logging.FromContext(ctx).Warn(ctx, "skipping unparsable note", "noteId", n.ID)
			continue
		}
		out.Notes = append(out.Notes, newView(n, now))
	}
	return out, nil
}

// GetInput identifies a note.
type GetInput struct {
	ID string `json:"id"`
}

// GetOutput carries the note document and its summary.
type GetOutput struct {
	Note View   `json:"note"`
	Raw  string `json:"raw"`
}

// Get returns one cached note.
func (u *UseCase) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if in == nil || in.ID == "" {
		return nil, model.ErrNoteInvalid
	}
	n, err := u.Repos.Note.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Note: newView(n, time.Now()), Raw: n.Raw}, nil
}

// RemovePlaceholders drops placeholder notes.
func (u *UseCase) RemovePlaceholders(ctx context.Context) error {
	return u.Repos.Note.DeletePlaceholders(ctx)
}
