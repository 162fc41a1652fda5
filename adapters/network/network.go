// Package network reports connectivity for remote reader actions.
package network

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/yaegashi/readerops/domain/model"
	"github.com/yaegashi/readerops/internal/logging"
)

// Static always reports the same availability.
type Static bool

func (s Static) Available(context.Context) bool { return bool(s) }

// Probe reports the network available when a TCP connection to Addr can be
// opened. Results are cached for TTL.
type Probe struct {
	Addr    string
	TTL     time.Duration
	Timeout time.Duration

	// dial is replaced in tests.
	dial func(ctx context.Context, network, addr string) (net.Conn, error)
	now  func() time.Time

	mu      sync.Mutex
	checked time.Time
	ok      bool
}

// NewProbe returns a Probe dialing addr.
func NewProbe(addr string, ttl time.Duration) *Probe {
	d := &net.Dialer{}
	return &Probe{Addr: addr, TTL: ttl, Timeout: 3 * time.Second, dial: d.DialContext, now: time.Now}
}

// Available dials Addr unless a cached result is still fresh.
func (p *Probe) Available(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.now()
	if !p.checked.IsZero() && now.Sub(p.checked) < p.TTL {
		return p.ok
	}
	dctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()
	conn, err := p.dial(dctx, "tcp", p.Addr)
	if err != nil {
		logging.FromContext(ctx).Debug(ctx, "network probe failed", "addr", p.Addr, "err", err)
		p.ok = false
	} else {
		_ = conn.Close()
		p.ok = true
	}
	p.checked = now
	return p.ok
}

// Invalidate drops the cached result.
func (p *Probe) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.checked = time.Time{}
}

var (
	_ model.NetworkPort = Static(true)
	_ model.NetworkPort = (*Probe)(nil)
)
