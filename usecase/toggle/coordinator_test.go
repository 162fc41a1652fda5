package toggle

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"github.com/yaegashi/readerops/domain/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type staticNetwork bool

func (n staticNetwork) Available(context.Context) bool { return bool(n) }

type recordingAnalytics struct {
	mu     sync.Mutex
	events []string
}

func (a *recordingAnalytics) Track(_ context.Context, event string, _ map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
}

// flagHarness is an in-memory flag store plus a scriptable remote.
type flagHarness struct {
	mu       sync.Mutex
	state    map[int64]bool
	readErr  error
	writeErr error
	writes   int

	remoteCalls atomic.Int32
	remote      func(done model.RemoteDone)
}

func newHarness() *flagHarness {
	return &flagHarness{
		state:  map[int64]bool{},
		remote: func(done model.RemoteDone) { done(true) },
	}
}

func (h *flagHarness) get(id int64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state[id]
}

func (h *flagHarness) writeCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.writes
}

func (h *flagHarness) action() Action[bool] {
	return Action[bool]{
		Name: "test",
		Event: func(req Request) (string, map[string]any) {
			return "flag_set", map[string]any{"id": req.EntityID}
		},
		Read: func(_ context.Context, req Request) (bool, error) {
			h.mu.Lock()
			defer h.mu.Unlock()
			if h.readErr != nil {
				return false, h.readErr
			}
			return h.state[req.EntityID], nil
		},
		Write: func(_ context.Context, req Request) (bool, error) {
			h.mu.Lock()
			defer h.mu.Unlock()
			if h.writeErr != nil {
				return false, h.writeErr
			}
			h.writes++
			h.state[req.EntityID] = req.Desired
			return req.Desired, nil
		},
		Remote: func(_ context.Context, _ Request, _ bool, done model.RemoteDone) {
			h.remoteCalls.Add(1)
			h.remote(done)
		},
	}
}

func collect(ctx context.Context, c *Coordinator[bool], req Request) []Outcome[bool] {
	return slices.Collect(c.Execute(ctx, req))
}

func assertKinds(t *testing.T, got []Outcome[bool], want ...Kind) {
	t.Helper()
	if !slices.Equal(Kinds(got), want) {
		t.Fatalf("outcomes = %v, want %v", Kinds(got), want)
	}
}

func TestExecute_NoNetwork(t *testing.T) {
	h := newHarness()
	an := &recordingAnalytics{}
	c := New(h.action(), staticNetwork(false), an)

	out := collect(context.Background(), c, Request{EntityID: 1, Desired: true})

	assertKinds(t, out, NoNetwork)
	if h.writes != 0 || h.remoteCalls.Load() != 0 {
		t.Errorf("writes=%d remote=%d, want none", h.writes, h.remoteCalls.Load())
	}
	if len(an.events) != 0 {
		t.Errorf("analytics should not be tracked without network, got %v", an.events)
	}
	if c.InFlight() {
		t.Error("guard should be released")
	}
}

func TestExecute_Unchanged(t *testing.T) {
	h := newHarness()
	h.state[1] = true
	an := &recordingAnalytics{}
	c := New(h.action(), staticNetwork(true), an)

	for i := 0; i < 2; i++ {
		out := collect(context.Background(), c, Request{EntityID: 1, Desired: true})
		assertKinds(t, out, Unchanged)
	}
	if h.writes != 0 || h.remoteCalls.Load() != 0 {
		t.Errorf("writes=%d remote=%d, want none", h.writes, h.remoteCalls.Load())
	}
	if len(an.events) != 2 {
		t.Errorf("attempts should be tracked regardless of result, got %v", an.events)
	}
}

func TestExecute_ForceSkipsUnchanged(t *testing.T) {
	h := newHarness()
	h.state[1] = true
	c := New(h.action(), staticNetwork(true), nil)

	out := collect(context.Background(), c, Request{EntityID: 1, Desired: true, Force: true})

	assertKinds(t, out, LocalStateRecorded, Success)
	if h.remoteCalls.Load() != 1 {
		t.Errorf("remote calls = %d, want 1", h.remoteCalls.Load())
	}
}

func TestExecute_RemoteResult(t *testing.T) {
	tests := []struct {
		name    string
		initial bool
		desired bool
		remote  bool
		want    Kind
	}{
		{"set succeeds", false, true, true, Success},
		{"clear succeeds", true, false, true, Success},
		{"set fails without rollback", false, true, false, RequestFailed},
		{"clear fails without rollback", true, false, false, RequestFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			h.state[7] = tt.initial
			h.remote = func(done model.RemoteDone) { done(tt.remote) }
			c := New(h.action(), staticNetwork(true), nil)

			out := collect(context.Background(), c, Request{EntityID: 7, Desired: tt.desired})

			assertKinds(t, out, LocalStateRecorded, tt.want)
			if out[0].Snapshot != tt.desired {
				t.Errorf("snapshot = %v, want %v", out[0].Snapshot, tt.desired)
			}
			if got := h.get(7); got != tt.desired {
				t.Errorf("local state = %v, want %v", got, tt.desired)
			}
			if c.InFlight() {
				t.Error("guard should be released after callback")
			}
		})
	}
}

func TestExecute_AsyncCallback(t *testing.T) {
	h := newHarness()
	h.remote = func(done model.RemoteDone) {
		go func() {
			time.Sleep(10 * time.Millisecond)
			done(true)
		}()
	}
	c := New(h.action(), staticNetwork(true), nil)

	out := collect(context.Background(), c, Request{EntityID: 3, Desired: true})
	assertKinds(t, out, LocalStateRecorded, Success)
}

func TestExecute_AlreadyRunning(t *testing.T) {
	h := newHarness()
	invoked := make(chan struct{})
	var invokedOnce sync.Once
	release := make(chan struct{})
	h.remote = func(done model.RemoteDone) {
		invokedOnce.Do(func() { close(invoked) })
		go func() {
			<-release
			done(true)
		}()
	}
	c := New(h.action(), staticNetwork(true), nil)
	ctx := context.Background()

	first := make(chan []Outcome[bool], 1)
	go func() { first <- collect(ctx, c, Request{EntityID: 1, Desired: true}) }()
	<-invoked

	var g errgroup.Group
	var rejected atomic.Int32
	for i := int64(0); i < 8; i++ {
		g.Go(func() error {
			out := collect(ctx, c, Request{EntityID: 100 + i, Desired: true})
			if !slices.Equal(Kinds(out), []Kind{AlreadyRunning}) {
				return fmt.Errorf("expected [AlreadyRunning], got %v", Kinds(out))
			}
			rejected.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	if rejected.Load() != 8 {
		t.Errorf("rejected = %d, want 8", rejected.Load())
	}
	if w := h.writeCount(); w != 1 {
		t.Errorf("rejected invocations must not write, writes=%d", w)
	}

	close(release)
	assertKinds(t, <-first, LocalStateRecorded, Success)

	// The guard is free again once the callback has fired.
	assertKinds(t, collect(ctx, c, Request{EntityID: 2, Desired: true}), LocalStateRecorded, Success)
}

func TestExecute_ConcurrentEntryAdmitsOne(t *testing.T) {
	h := newHarness()
	release := make(chan struct{})
	h.remote = func(done model.RemoteDone) {
		go func() {
			<-release
			done(true)
		}()
	}
	c := New(h.action(), staticNetwork(true), nil)

	var g errgroup.Group
	var recorded, rejected atomic.Int32
	start := make(chan struct{})
	for i := int64(0); i < 16; i++ {
		g.Go(func() error {
			<-start
			for o := range c.Execute(context.Background(), Request{EntityID: i, Desired: true}) {
				switch o.Kind {
				case LocalStateRecorded:
					recorded.Add(1)
				case AlreadyRunning:
					rejected.Add(1)
				}
			}
			return nil
		})
	}
	close(start)
	// Hold the remote until every rejected caller has returned.
	for recorded.Load()+rejected.Load() < 16 {
		time.Sleep(time.Millisecond)
	}
	close(release)
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	if recorded.Load() != 1 || rejected.Load() != 15 {
		t.Errorf("recorded=%d rejected=%d, want 1 and 15", recorded.Load(), rejected.Load())
	}
}

func TestExecute_LocalFailures(t *testing.T) {
	boom := errors.New("disk full")

	t.Run("read", func(t *testing.T) {
		h := newHarness()
		h.readErr = model.ErrPostNotFound
		c := New(h.action(), staticNetwork(true), nil)
		out := collect(context.Background(), c, Request{EntityID: 1, Desired: true})
		assertKinds(t, out, LocalWriteFailed)
		if !errors.Is(out[0].Err, model.ErrPostNotFound) {
			t.Errorf("err = %v", out[0].Err)
		}
		if h.remoteCalls.Load() != 0 || c.InFlight() {
			t.Error("no remote call and guard released expected")
		}
	})

	t.Run("write", func(t *testing.T) {
		h := newHarness()
		h.writeErr = boom
		c := New(h.action(), staticNetwork(true), nil)
		out := collect(context.Background(), c, Request{EntityID: 1, Desired: true})
		assertKinds(t, out, LocalWriteFailed)
		if !errors.Is(out[0].Err, boom) {
			t.Errorf("err = %v", out[0].Err)
		}
		if h.remoteCalls.Load() != 0 || c.InFlight() {
			t.Error("no remote call and guard released expected")
		}
	})
}

func TestExecute_NoRemoteNeeded(t *testing.T) {
	h := newHarness()
	a := h.action()
	a.NeedsRemote = func(req Request, _ bool) bool { return req.Desired }
	c := New(a, staticNetwork(true), nil)

	h.state[1] = true
	assertKinds(t, collect(context.Background(), c, Request{EntityID: 1, Desired: false}), LocalStateRecorded, Success)
	if h.remoteCalls.Load() != 0 || c.InFlight() {
		t.Error("no remote call and guard released expected")
	}
}

func TestExecute_FlipDerivesDesiredFromLocalState(t *testing.T) {
	tests := []struct {
		name    string
		initial bool
		event   string
	}{
		{"set", false, "flag_set:true"},
		{"clear", true, "flag_set:false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			h.state[5] = tt.initial
			an := &recordingAnalytics{}
			a := h.action()
			a.Event = func(req Request) (string, map[string]any) {
				return fmt.Sprintf("flag_set:%v", req.Desired), nil
			}
			c := New(a, staticNetwork(true), an)

			// Desired is ignored for Flip requests.
			out := collect(context.Background(), c, Request{EntityID: 5, Desired: tt.initial, Flip: true})

			assertKinds(t, out, LocalStateRecorded, Success)
			if got := h.get(5); got == tt.initial {
				t.Errorf("local state = %v, want %v", got, !tt.initial)
			}
			if !slices.Equal(an.events, []string{tt.event}) {
				t.Errorf("analytics = %v, want [%s]", an.events, tt.event)
			}
		})
	}

	t.Run("read failure tracks nothing", func(t *testing.T) {
		h := newHarness()
		h.readErr = model.ErrPostNotFound
		an := &recordingAnalytics{}
		c := New(h.action(), staticNetwork(true), an)
		assertKinds(t, collect(context.Background(), c, Request{EntityID: 5, Flip: true}), LocalWriteFailed)
		if len(an.events) != 0 {
			t.Errorf("analytics = %v", an.events)
		}
	})
}

func TestExecute_DuplicateCallbackIgnored(t *testing.T) {
	h := newHarness()
	h.remote = func(done model.RemoteDone) {
		done(false)
		done(true)
	}
	c := New(h.action(), staticNetwork(true), nil)

	out := collect(context.Background(), c, Request{EntityID: 1, Desired: true})
	assertKinds(t, out, LocalStateRecorded, RequestFailed)
}

func TestExecute_ContextCancelledWhileWaiting(t *testing.T) {
	h := newHarness()
	var pending model.RemoteDone
	h.remote = func(done model.RemoteDone) { pending = done }
	c := New(h.action(), staticNetwork(true), nil)

	ctx, cancel := context.WithCancel(context.Background())
	var out []Outcome[bool]
	for o := range c.Execute(ctx, Request{EntityID: 1, Desired: true}) {
		out = append(out, o)
		if o.Kind == LocalStateRecorded {
			cancel()
		}
	}
	assertKinds(t, out, LocalStateRecorded, RequestFailed)
	if !errors.Is(out[1].Err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", out[1].Err)
	}
	if !c.InFlight() {
		t.Fatal("guard must stay held while the remote call is outstanding")
	}
	assertKinds(t, collect(context.Background(), c, Request{EntityID: 2, Desired: true}), AlreadyRunning)

	pending(true)
	if c.InFlight() {
		t.Error("late callback should release the guard")
	}
}

func TestExecute_EarlyStopReleasesGuard(t *testing.T) {
	h := newHarness()
	c := New(h.action(), staticNetwork(true), nil)

	for o := range c.Execute(context.Background(), Request{EntityID: 1, Desired: true}) {
		if o.Kind == LocalStateRecorded {
			break
		}
	}
	if h.remoteCalls.Load() != 0 {
		t.Error("remote must not start after the consumer stopped")
	}
	if c.InFlight() {
		t.Error("guard should be released")
	}
}

func TestExecute_NotRestartable(t *testing.T) {
	h := newHarness()
	c := New(h.action(), staticNetwork(true), nil)
	seq := c.Execute(context.Background(), Request{EntityID: 1, Desired: true})

	assertKinds(t, slices.Collect(seq), LocalStateRecorded, Success)
	if again := slices.Collect(seq); len(again) != 0 {
		t.Errorf("second iteration yielded %v", Kinds(again))
	}
	if h.writes != 1 {
		t.Errorf("writes = %d, want 1", h.writes)
	}
}

func TestKindTerminal(t *testing.T) {
	for _, k := range []Kind{NoNetwork, AlreadyRunning, Unchanged, Success, RequestFailed, LocalWriteFailed} {
		if !k.Terminal() {
			t.Errorf("%v should be terminal", k)
		}
	}
	for _, k := range []Kind{LocalStateRecorded, PreloadContent} {
		if k.Terminal() {
			t.Errorf("%v should not be terminal", k)
		}
	}
}

func TestKindFailed(t *testing.T) {
	for _, k := range []Kind{NoNetwork, AlreadyRunning, RequestFailed, LocalWriteFailed} {
		if !k.Failed() {
			t.Errorf("%v should be a failure", k)
		}
	}
	for _, k := range []Kind{LocalStateRecorded, PreloadContent, Unchanged, Success} {
		if k.Failed() {
			t.Errorf("%v should not be a failure", k)
		}
	}
	b, err := Success.MarshalText()
	if err != nil || string(b) != "Success" {
		t.Errorf("MarshalText = %q, %v", b, err)
	}
}
