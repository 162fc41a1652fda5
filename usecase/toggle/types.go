package toggle

import (
	"context"

	"github.com/yaegashi/readerops/domain/model"
)

// Request asks for a flag transition on one entity.
type Request struct {
	// EntityID identifies the entity (post, blog).
	EntityID int64 `json:"entity_id"`
	// SecondaryID scopes the entity when needed (blog of a post).
	SecondaryID int64 `json:"secondary_id,omitempty"`
	// Desired is the requested flag value.
	Desired bool `json:"desired"`
	// Force skips the Unchanged short-circuit.
	Force bool `json:"force,omitempty"`
	// Flip ignores Desired and requests the negation of the local flag as
	// read during execution. The analytics event is then tracked after the
	// read, once the direction is known.
	Flip bool `json:"flip,omitempty"`
	// FromList marks requests made from a list that already reflects the
	// desired state (e.g. the saved posts list).
	FromList bool `json:"from_list,omitempty"`
}

// Action binds a Coordinator to one remote-backed flag.
type Action[S any] struct {
	// Name is used for logging.
	Name string
	// Event returns the analytics event and properties for an attempt.
	Event func(req Request) (string, map[string]any)
	// Read returns the current local flag value.
	Read func(ctx context.Context, req Request) (bool, error)
	// Write stores req.Desired locally and returns the resulting snapshot.
	Write func(ctx context.Context, req Request) (S, error)
	// NeedsRemote decides whether a remote call follows the local write.
	// Nil means always.
	NeedsRemote func(req Request, snap S) bool
	// Remote starts the remote call. done must be called exactly once.
	Remote func(ctx context.Context, req Request, snap S, done model.RemoteDone)
}
