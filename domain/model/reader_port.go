package model

import "context"

// RemoteDone receives the outcome of an asynchronous remote action.
// Implementations must call it exactly once, from any goroutine.
type RemoteDone func(succeeded bool)

// PostActionPort is the remote side of post actions.
type PostActionPort interface {
	// Like sets the like state of a post for the given user.
	Like(ctx context.Context, post *Post, liked bool, userID int64, done RemoteDone)
	// FetchContent downloads the post body for offline reading.
	FetchContent(ctx context.Context, key PostKey, done func(content string, err error))
	// BumpPageView records a page view for the post.
	BumpPageView(ctx context.Context, post *Post) error
}

// BlogActionPort is the remote side of blog actions.
type BlogActionPort interface {
	Block(ctx context.Context, result *BlockedBlogResult, done RemoteDone)
	Unblock(ctx context.Context, blogID int64, done RemoteDone)
}

// NetworkPort reports connectivity. Available has no side effects.
type NetworkPort interface {
	Available(ctx context.Context) bool
}

// AnalyticsPort records usage events. Track never fails; sinks swallow
// and log their own errors.
type AnalyticsPort interface {
	Track(ctx context.Context, event string, props map[string]any)
}
