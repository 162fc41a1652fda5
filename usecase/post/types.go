package post

import (
	"sync"

	"github.com/yaegashi/readerops/domain"
	"github.com/yaegashi/readerops/domain/model"
	"github.com/yaegashi/readerops/usecase/toggle"
)

// Analytics events recorded by post actions.
const (
	EventLiked   = "reader_article_liked"
	EventUnliked = "reader_article_unliked"
	EventSaved   = "reader_post_saved"
	EventUnsaved = "reader_post_unsaved"
)

// Repos holds repositories needed for post use cases.
type Repos struct {
	Post domain.PostRepository
}

// UseCase wires repositories and ports for post use cases.
// Like and bookmark each run behind their own single-flight guard, created
// on first use; a UseCase must not be copied after use.
type UseCase struct {
	Repos          *Repos
	PostActionPort model.PostActionPort
	Network        model.NetworkPort
	Analytics      model.AnalyticsPort
	// UserID is the account the remote like is recorded for.
	UserID int64

	once     sync.Once
	like     *toggle.Coordinator[*model.Post]
	bookmark *toggle.Coordinator[*model.Post]
}

func (u *UseCase) init() {
	u.once.Do(func() {
		u.like = toggle.New(u.likeAction(), u.Network, u.Analytics)
		u.bookmark = toggle.New(u.bookmarkAction(), u.Network, u.Analytics)
	})
}

func keyOf(req toggle.Request) model.PostKey {
	return model.PostKey{BlogID: req.SecondaryID, PostID: req.EntityID}
}
