package post

import (
	"context"
	"errors"
	"iter"
	"slices"
	"sync"
	"testing"

	"github.com/yaegashi/readerops/adapters/store/inmem"
	"github.com/yaegashi/readerops/domain/model"
	"github.com/yaegashi/readerops/usecase/toggle"
)

type staticNetwork bool

func (n staticNetwork) Available(context.Context) bool { return bool(n) }

type mockAnalytics struct {
	mu     sync.Mutex
	events []string
	props  []map[string]any
}

func (m *mockAnalytics) Track(_ context.Context, event string, props map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	m.props = append(m.props, props)
}

type mockPostActions struct {
	mu          sync.Mutex
	likeCalls   []bool
	fetchCalls  []model.PostKey
	bumps       int
	LikeFunc    func(done model.RemoteDone)
	FetchFunc   func(done func(string, error))
	BumpPageErr error
	likeUserIDs []int64
}

func (m *mockPostActions) Like(_ context.Context, _ *model.Post, liked bool, userID int64, done model.RemoteDone) {
	m.mu.Lock()
	m.likeCalls = append(m.likeCalls, liked)
	m.likeUserIDs = append(m.likeUserIDs, userID)
	m.mu.Unlock()
	if m.LikeFunc != nil {
		m.LikeFunc(done)
		return
	}
	go done(true)
}

func (m *mockPostActions) FetchContent(_ context.Context, key model.PostKey, done func(string, error)) {
	m.mu.Lock()
	m.fetchCalls = append(m.fetchCalls, key)
	m.mu.Unlock()
	if m.FetchFunc != nil {
		m.FetchFunc(done)
		return
	}
	go done("<p>content</p>", nil)
}

func (m *mockPostActions) BumpPageView(context.Context, *model.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bumps++
	return m.BumpPageErr
}

type fixture struct {
	uc        *UseCase
	store     *inmem.Store
	ports     *mockPostActions
	analytics *mockAnalytics
}

func newFixture(t *testing.T, online bool, seed ...*model.Post) *fixture {
	t.Helper()
	store := inmem.NewStore()
	for _, p := range seed {
		if err := store.PostRepo.Create(context.Background(), p); err != nil {
			t.Fatal(err)
		}
	}
	f := &fixture{store: store, ports: &mockPostActions{}, analytics: &mockAnalytics{}}
	f.uc = &UseCase{
		Repos:          &Repos{Post: store.PostRepo},
		PostActionPort: f.ports,
		Network:        staticNetwork(online),
		Analytics:      f.analytics,
		UserID:         100,
	}
	return f
}

func (f *fixture) post(t *testing.T) *model.Post {
	t.Helper()
	p, err := f.store.PostRepo.Get(context.Background(), model.PostKey{BlogID: 10, PostID: 1})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func kinds[S any](t *testing.T, seq iter.Seq[toggle.Outcome[S]], err error) []toggle.Kind {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return toggle.Kinds(slices.Collect(seq))
}

func TestLike_Scenarios(t *testing.T) {
	tests := []struct {
		name       string
		online     bool
		liked      bool
		desired    bool
		remoteOK   bool
		want       []toggle.Kind
		wantLiked  bool
		wantCount  int
		wantBumps  int
		wantRemote int
	}{
		{"no network", false, false, true, true, []toggle.Kind{toggle.NoNetwork}, false, 5, 0, 0},
		{"already liked", true, true, true, true, []toggle.Kind{toggle.Unchanged}, true, 5, 0, 0},
		{"like succeeds", true, false, true, true, []toggle.Kind{toggle.LocalStateRecorded, toggle.Success}, true, 6, 1, 1},
		{"unlike succeeds", true, true, false, true, []toggle.Kind{toggle.LocalStateRecorded, toggle.Success}, false, 4, 0, 1},
		{"remote failure keeps local", true, false, true, false, []toggle.Kind{toggle.LocalStateRecorded, toggle.RequestFailed}, true, 6, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.online, &model.Post{ID: 1, BlogID: 10, IsLiked: tt.liked, LikeCount: 5})
			ok := tt.remoteOK
			f.ports.LikeFunc = func(done model.RemoteDone) { go done(ok) }

			seq, err := f.uc.Like(context.Background(), &LikeInput{BlogID: 10, PostID: 1, Liked: tt.desired})
			got := kinds(t, seq, err)

			if !slices.Equal(got, tt.want) {
				t.Fatalf("outcomes = %v, want %v", got, tt.want)
			}
			p := f.post(t)
			if p.IsLiked != tt.wantLiked || p.LikeCount != tt.wantCount {
				t.Errorf("post liked=%v count=%d, want %v/%d", p.IsLiked, p.LikeCount, tt.wantLiked, tt.wantCount)
			}
			if f.ports.bumps != tt.wantBumps {
				t.Errorf("page view bumps = %d, want %d", f.ports.bumps, tt.wantBumps)
			}
			if len(f.ports.likeCalls) != tt.wantRemote {
				t.Errorf("remote calls = %d, want %d", len(f.ports.likeCalls), tt.wantRemote)
			}
		})
	}
}

func TestLike_SnapshotAndUser(t *testing.T) {
	f := newFixture(t, true, &model.Post{ID: 1, BlogID: 10})
	seq, err := f.uc.Like(context.Background(), &LikeInput{BlogID: 10, PostID: 1, Liked: true})
	if err != nil {
		t.Fatal(err)
	}
	out := slices.Collect(seq)
	if out[0].Snapshot == nil || !out[0].Snapshot.IsLiked {
		t.Errorf("LocalStateRecorded snapshot = %+v", out[0].Snapshot)
	}
	if !slices.Equal(f.ports.likeUserIDs, []int64{100}) {
		t.Errorf("user ids = %v", f.ports.likeUserIDs)
	}
	if !slices.Equal(f.analytics.events, []string{EventLiked}) {
		t.Errorf("analytics = %v", f.analytics.events)
	}
}

func TestLike_Idempotent(t *testing.T) {
	f := newFixture(t, true, &model.Post{ID: 1, BlogID: 10, IsLiked: true, LikeCount: 1})
	for i := 0; i < 2; i++ {
		seq, err := f.uc.Like(context.Background(), &LikeInput{BlogID: 10, PostID: 1, Liked: true})
		if got := kinds(t, seq, err); !slices.Equal(got, []toggle.Kind{toggle.Unchanged}) {
			t.Fatalf("attempt %d: %v", i, got)
		}
	}
	if len(f.ports.likeCalls) != 0 {
		t.Errorf("remote called %d times", len(f.ports.likeCalls))
	}
}

func TestLike_Force(t *testing.T) {
	f := newFixture(t, true, &model.Post{ID: 1, BlogID: 10, IsLiked: true, LikeCount: 1})
	seq, err := f.uc.Like(context.Background(), &LikeInput{BlogID: 10, PostID: 1, Liked: true, Force: true})
	if got := kinds(t, seq, err); !slices.Equal(got, []toggle.Kind{toggle.LocalStateRecorded, toggle.Success}) {
		t.Fatalf("outcomes = %v", got)
	}
	if p := f.post(t); p.LikeCount != 1 {
		t.Errorf("forced resend changed count to %d", p.LikeCount)
	}
	if f.ports.bumps != 0 {
		t.Errorf("bump on forced resend of an existing like")
	}
}

func TestLike_BumpFailureIsNotFatal(t *testing.T) {
	f := newFixture(t, true, &model.Post{ID: 1, BlogID: 10})
	f.ports.BumpPageErr = errors.New("pixel down")
	seq, err := f.uc.Like(context.Background(), &LikeInput{BlogID: 10, PostID: 1, Liked: true})
	if got := kinds(t, seq, err); !slices.Equal(got, []toggle.Kind{toggle.LocalStateRecorded, toggle.Success}) {
		t.Fatalf("outcomes = %v", got)
	}
}

func TestLike_MissingPost(t *testing.T) {
	f := newFixture(t, true)
	seq, err := f.uc.Like(context.Background(), &LikeInput{BlogID: 10, PostID: 1, Liked: true})
	if err != nil {
		t.Fatal(err)
	}
	out := slices.Collect(seq)
	if len(out) != 1 || out[0].Kind != toggle.LocalWriteFailed || !errors.Is(out[0].Err, model.ErrPostNotFound) {
		t.Fatalf("outcomes = %v", out)
	}
	if _, err := f.uc.Like(context.Background(), &LikeInput{PostID: 1}); !errors.Is(err, model.ErrPostInvalid) {
		t.Errorf("missing blog id = %v", err)
	}
}

func TestToggleBookmark(t *testing.T) {
	tests := []struct {
		name       string
		online     bool
		bookmarked bool
		fromList   bool
		fetchErr   error
		want       []toggle.Kind
		wantSaved  bool
		wantFetch  int
		wantEvent  string
	}{
		{
			name: "bookmark preloads content", online: true,
			want:      []toggle.Kind{toggle.LocalStateRecorded, toggle.PreloadContent, toggle.Success},
			wantSaved: true, wantFetch: 1, wantEvent: EventSaved,
		},
		{
			name: "bookmark from list skips preload", online: true, fromList: true,
			want:      []toggle.Kind{toggle.LocalStateRecorded, toggle.Success},
			wantSaved: true, wantEvent: EventSaved,
		},
		{
			name: "unbookmark", online: true, bookmarked: true,
			want:      []toggle.Kind{toggle.LocalStateRecorded, toggle.Success},
			wantSaved: false, wantEvent: EventUnsaved,
		},
		{
			name: "preload failure", online: true, fetchErr: errors.New("404"),
			want:      []toggle.Kind{toggle.LocalStateRecorded, toggle.PreloadContent, toggle.RequestFailed},
			wantSaved: true, wantFetch: 1, wantEvent: EventSaved,
		},
		{
			name: "no network", online: false,
			want: []toggle.Kind{toggle.NoNetwork},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.online, &model.Post{ID: 1, BlogID: 10, IsBookmarked: tt.bookmarked})
			fetchErr := tt.fetchErr
			f.ports.FetchFunc = func(done func(string, error)) {
				if fetchErr != nil {
					go done("", fetchErr)
					return
				}
				go done("<p>offline</p>", nil)
			}

			seq, err := f.uc.ToggleBookmark(context.Background(), &BookmarkInput{BlogID: 10, PostID: 1, FromBookmarkList: tt.fromList})
			got := kinds(t, seq, err)

			if !slices.Equal(got, tt.want) {
				t.Fatalf("outcomes = %v, want %v", got, tt.want)
			}
			p := f.post(t)
			if tt.online && p.IsBookmarked != tt.wantSaved {
				t.Errorf("bookmarked = %v, want %v", p.IsBookmarked, tt.wantSaved)
			}
			if len(f.ports.fetchCalls) != tt.wantFetch {
				t.Errorf("fetch calls = %d, want %d", len(f.ports.fetchCalls), tt.wantFetch)
			}
			if tt.wantFetch == 1 && tt.fetchErr == nil && (p.Content != "<p>offline</p>" || p.ContentFetchedAt == nil) {
				t.Errorf("content not stored: %+v", p)
			}
			if tt.wantEvent != "" && !slices.Equal(f.analytics.events, []string{tt.wantEvent}) {
				t.Errorf("analytics = %v", f.analytics.events)
			}
		})
	}
}

func TestToggleBookmark_PreloadOutcomeCarriesPost(t *testing.T) {
	f := newFixture(t, true, &model.Post{ID: 1, BlogID: 10})
	seq, err := f.uc.ToggleBookmark(context.Background(), &BookmarkInput{BlogID: 10, PostID: 1})
	if err != nil {
		t.Fatal(err)
	}
	out := slices.Collect(seq)
	if out[1].Kind != toggle.PreloadContent || out[1].Post != (model.PostKey{BlogID: 10, PostID: 1}) {
		t.Errorf("preload outcome = %+v", out[1])
	}
	if src := f.analytics.props[0]["source"]; src != "other" {
		t.Errorf("source = %v", src)
	}
}

func TestToggleBookmark_MissingPost(t *testing.T) {
	f := newFixture(t, true)
	seq, err := f.uc.ToggleBookmark(context.Background(), &BookmarkInput{BlogID: 10, PostID: 1})
	if err != nil {
		t.Fatalf("ToggleBookmark: %v", err)
	}
	out := slices.Collect(seq)
	if got := toggle.Kinds(out); !slices.Equal(got, []toggle.Kind{toggle.LocalWriteFailed}) {
		t.Fatalf("outcomes = %v", got)
	}
	if !errors.Is(out[0].Err, model.ErrPostNotFound) {
		t.Errorf("err = %v", out[0].Err)
	}
	if len(f.ports.fetchCalls) != 0 || len(f.analytics.events) != 0 {
		t.Errorf("fetch=%d analytics=%v, want none", len(f.ports.fetchCalls), f.analytics.events)
	}
}

func TestToggleBookmark_ReadsStateWhenIterated(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true, &model.Post{ID: 1, BlogID: 10})
	seq, err := f.uc.ToggleBookmark(ctx, &BookmarkInput{BlogID: 10, PostID: 1})
	if err != nil {
		t.Fatal(err)
	}

	// Saved elsewhere between building and running the sequence.
	p := f.post(t)
	p.IsBookmarked = true
	if err := f.store.PostRepo.Update(ctx, p); err != nil {
		t.Fatal(err)
	}

	got := toggle.Kinds(slices.Collect(seq))
	if !slices.Equal(got, []toggle.Kind{toggle.LocalStateRecorded, toggle.Success}) {
		t.Fatalf("outcomes = %v", got)
	}
	if f.post(t).IsBookmarked {
		t.Error("post should be unbookmarked")
	}
	if !slices.Equal(f.analytics.events, []string{EventUnsaved}) {
		t.Errorf("analytics = %v", f.analytics.events)
	}
	if len(f.ports.fetchCalls) != 0 {
		t.Errorf("fetch calls = %d, want 0", len(f.ports.fetchCalls))
	}
}

func TestList(t *testing.T) {
	f := newFixture(t, true,
		&model.Post{ID: 1, BlogID: 10, IsBookmarked: true},
		&model.Post{ID: 2, BlogID: 10},
		&model.Post{ID: 3, BlogID: 20, IsBookmarked: true},
	)
	ctx := context.Background()
	all, _ := f.uc.List(ctx, nil)
	if len(all.Posts) != 3 {
		t.Errorf("all = %d", len(all.Posts))
	}
	byBlog, _ := f.uc.List(ctx, &ListInput{BlogID: 10})
	if len(byBlog.Posts) != 2 {
		t.Errorf("blog 10 = %d", len(byBlog.Posts))
	}
	saved, _ := f.uc.List(ctx, &ListInput{BookmarkedOnly: true})
	if len(saved.Posts) != 2 {
		t.Errorf("saved = %d", len(saved.Posts))
	}
	got, err := f.uc.Get(ctx, &GetInput{BlogID: 20, PostID: 3})
	if err != nil || got.Post.ID != 3 {
		t.Errorf("Get = %+v, %v", got, err)
	}
}
