package note

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/yaegashi/readerops/adapters/store/inmem"
	"github.com/yaegashi/readerops/domain/model"
)

func newTestUseCase() (*UseCase, *inmem.Store) {
	store := inmem.NewStore()
	return &UseCase{Repos: &Repos{Note: store.NoteRepo, UoW: store}}, store
}

func mustNote(t *testing.T, raw string) *model.Note {
	t.Helper()
	n, err := model.NewNote(raw)
	if err != nil {
		t.Fatalf("NewNote(%s): %v", raw, err)
	}
	return n
}

func TestSave_ClearBeforeSaving(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase()
	if _, err := uc.Save(ctx, &SaveInput{Notes: []*model.Note{mustNote(t, `{"id":"old","type":"like"}`)}}); err != nil {
		t.Fatal(err)
	}
	out, err := uc.Save(ctx, &SaveInput{
		Notes:             []*model.Note{mustNote(t, `{"id":"new","type":"like"}`), nil},
		ClearBeforeSaving: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Saved != 1 {
		t.Errorf("Saved = %d, want 1", out.Saved)
	}
	if _, err := uc.Get(ctx, &GetInput{ID: "old"}); !errors.Is(err, model.ErrNoteNotFound) {
		t.Errorf("old note survived clear: %v", err)
	}
}

func TestLatest_DefaultLimitAndOrder(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase()
	var notes []*model.Note
	for i := 1; i <= 25; i++ {
		raw := fmt.Sprintf(`{"id":"%d","type":"like","timestamp":"2024-01-%02dT00:00:00Z"}`, i, i)
		notes = append(notes, mustNote(t, raw))
	}
	if _, err := uc.Save(ctx, &SaveInput{Notes: notes}); err != nil {
		t.Fatal(err)
	}
	out, err := uc.Latest(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Notes) != DefaultLatestLimit {
		t.Fatalf("len = %d, want %d", len(out.Notes), DefaultLatestLimit)
	}
	if out.Notes[0].ID != "25" || out.Notes[19].ID != "6" {
		t.Errorf("order: first=%s last=%s", out.Notes[0].ID, out.Notes[19].ID)
	}
	small, _ := uc.Latest(ctx, &LatestInput{Limit: 3})
	if len(small.Notes) != 3 {
		t.Errorf("Limit 3 returned %d", len(small.Notes))
	}
}

func TestLatest_SkipsUnparsable(t *testing.T) {
	ctx := context.Background()
	uc, store := newTestUseCase()
	if err := store.NoteRepo.Put(ctx, &model.Note{ID: "bad", Raw: "{not json"}); err != nil {
		t.Fatal(err)
	}
	if err := store.NoteRepo.Put(ctx, mustNote(t, `{"id":"good","type":"follow"}`)); err != nil {
		t.Fatal(err)
	}
	out, err := uc.Latest(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Notes) != 1 || out.Notes[0].ID != "good" {
		t.Errorf("notes = %+v", out.Notes)
	}
}

func TestGet_CommentView(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase()
	raw := `{"id":"7","type":"comment","read":0,"subject":[{"text":"Ann commented"},{"text":"Nice post"}],
		"body":[{"type":"post","text":"p"},{"type":"user","text":"Ann"}],"meta":{"ids":{"comment":5}}}`
	if _, err := uc.Save(ctx, &SaveInput{Notes: []*model.Note{mustNote(t, raw)}}); err != nil {
		t.Fatal(err)
	}
	got, err := uc.Get(ctx, &GetInput{ID: "7"})
	if err != nil {
		t.Fatal(err)
	}
	v := got.Note
	if v.Subject != "Ann commented" || v.CommentSubject != "Nice post" || v.Author != "Ann" || !v.Unread {
		t.Errorf("view = %+v", v)
	}
	if _, err := uc.Get(ctx, &GetInput{}); !errors.Is(err, model.ErrNoteInvalid) {
		t.Errorf("Get empty id = %v", err)
	}
}

func TestImport(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		saved   int
		wantErr bool
	}{
		{"array", `[{"id":"1"},{"id":"2"}]`, 2, false},
		{"object", `{"last_seen_time":"1","notes":[{"id":"1"}]}`, 1, false},
		{"no notes", `{"other":[]}`, 0, true},
		{"invalid", `[{"id":`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newTestUseCase()
			out, err := uc.Import(context.Background(), &ImportInput{Payload: tt.payload})
			if tt.wantErr {
				if !errors.Is(err, model.ErrNoteInvalid) {
					t.Fatalf("expected ErrNoteInvalid, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if out.Saved != tt.saved {
				t.Errorf("Saved = %d, want %d", out.Saved, tt.saved)
			}
		})
	}
}

func TestRemovePlaceholders(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase()
	ph := mustNote(t, `{"id":"p","type":"like"}`)
	ph.Placeholder = true
	if _, err := uc.Save(ctx, &SaveInput{Notes: []*model.Note{ph, mustNote(t, `{"id":"r"}`)}}); err != nil {
		t.Fatal(err)
	}
	if err := uc.RemovePlaceholders(ctx); err != nil {
		t.Fatal(err)
	}
	out, _ := uc.Latest(ctx, nil)
	if len(out.Notes) != 1 || out.Notes[0].ID != "r" {
		t.Errorf("notes = %+v", out.Notes)
	}
}
