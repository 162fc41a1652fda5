package model

import "time"

// PostKey identifies a post within its blog.
type PostKey struct {
	BlogID int64 `json:"blogId"`
	PostID int64 `json:"postId"`
}

// Post is a reader post cached locally.
type Post struct {
	ID               int64      `json:"id"`
	BlogID           int64      `json:"blogId"`
	Title            string     `json:"title,omitempty"`
	URL              string     `json:"url,omitempty"`
	IsLiked          bool       `json:"isLiked"`
	LikeCount        int        `json:"likeCount"`
	IsBookmarked     bool       `json:"isBookmarked"`
	Content          string     `json:"content,omitempty"`
	ContentFetchedAt *time.Time `json:"contentFetchedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// Key returns the (blog, post) pair identifying the post.
func (p *Post) Key() PostKey {
	return PostKey{BlogID: p.BlogID, PostID: p.ID}
}

// SetLiked records the like state and keeps LikeCount consistent with it.
// It reports whether the state changed.
func (p *Post) SetLiked(liked bool) bool {
	if p.IsLiked == liked {
		return false
	}
	p.IsLiked = liked
	if liked {
		p.LikeCount++
	} else if p.LikeCount > 0 {
		p.LikeCount--
	}
	return true
}
