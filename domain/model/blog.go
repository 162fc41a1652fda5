package model

import "time"

// Blog is a site followed or browsed in the reader.
type Blog struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url,omitempty"`
	IsFollowing bool      `json:"isFollowing"`
	IsBlocked   bool      `json:"isBlocked"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BlockedBlogResult captures the local state removed by a block so that it
// can be restored by an undo.
type BlockedBlogResult struct {
	BlogID       int64 `json:"blogId"`
	WasFollowing bool  `json:"wasFollowing"`
	// CreatedBlog is set when the block recorded a blog the store did not
	// know; undo removes that row again.
	CreatedBlog  bool    `json:"createdBlog,omitempty"`
	RemovedPosts []*Post `json:"removedPosts,omitempty"`
}
