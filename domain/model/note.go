package model

import (
	"crypto/md5"
	"encoding/binary"
	"time"

	"github.com/tidwall/gjson"
)

// Note types reported by the notifications API.
const (
	NoteTypeFollow      = "follow"
	NoteTypeLike        = "like"
	NoteTypeComment     = "comment"
	NoteTypeMatcher     = "automattcher"
	NoteTypeCommentLike = "comment_like"
	NoteTypeReblog      = "reblog"
	NoteTypeUnknown     = "unknown"
)

// maxCommentPreviewLength bounds CommentSubject.
const maxCommentPreviewLength = 200

// Note is a cached notification. Raw holds the schema-less JSON document
// returned by the API; the accessors below query it lazily.
type Note struct {
	ID          string
	Raw         string
	Placeholder bool
}

// NewNote wraps a raw notification document. The ID is read from the
// document's "id" field.
func NewNote(raw string) (*Note, error) {
	if !gjson.Valid(raw) {
		return nil, ErrNoteInvalid
	}
	return &Note{ID: gjson.Get(raw, "id").String(), Raw: raw}, nil
}

func (n *Note) get(path string) gjson.Result {
	return gjson.Get(n.Raw, path)
}

// Type returns the note type, NoteTypeUnknown when absent.
func (n *Note) Type() string {
	if t := n.get("type"); t.Exists() {
		return t.String()
	}
	return NoteTypeUnknown
}

func (n *Note) IsCommentType() bool {
	if n.Type() == NoteTypeMatcher {
		if c := n.get("meta.ids.comment"); c.Exists() && c.Int() != -1 {
			return true
		}
	}
	return n.Type() == NoteTypeComment
}

func (n *Note) IsFollowType() bool      { return n.Type() == NoteTypeFollow }
func (n *Note) IsLikeType() bool        { return n.Type() == NoteTypeLike }
func (n *Note) IsCommentLikeType() bool { return n.Type() == NoteTypeCommentLike }
func (n *Note) IsReblogType() bool      { return n.Type() == NoteTypeReblog }

// IsCommentReplyType reports a comment note answering another comment.
func (n *Note) IsCommentReplyType() bool {
	return n.IsCommentType() && n.ParentCommentID() > 0
}

// Subject returns the raw JSON of the first subject block, or "null".
func (n *Note) Subject() string {
	if s := n.get("subject.0"); s.Exists() {
		return s.Raw
	}
	return "null"
}

func (n *Note) SubjectText() string { return n.get("subject.0.text").String() }
func (n *Note) Title() string       { return n.get("title").String() }
func (n *Note) IconURL() string     { return n.get("icon").String() }
func (n *Note) URL() string         { return n.get("url").String() }

// CommentSubject returns the comment preview from the second subject block,
// truncated for display.
func (n *Note) CommentSubject() string {
	s := n.get("subject.1.text").String()
	if len([]rune(s)) > maxCommentPreviewLength {
		s = string([]rune(s)[:maxCommentPreviewLength-1])
	}
	return s
}

// CommentAuthorName returns the text of the first "user" body block.
func (n *Note) CommentAuthorName() string {
	return n.get(`body.#(type=="user").text`).String()
}

func (n *Note) SiteID() int64          { return n.get("meta.ids.site").Int() }
func (n *Note) PostID() int64          { return n.get("meta.ids.post").Int() }
func (n *Note) CommentID() int64       { return n.get("meta.ids.comment").Int() }
func (n *Note) ParentCommentID() int64 { return n.get("meta.ids.parent_comment").Int() }

// IsUnread is true unless the document marks the note read (read == 1).
func (n *Note) IsUnread() bool { return n.get("read").Int() != 1 }

// UnreadCount is a string in the API payload.
func (n *Note) UnreadCount() string {
	if u := n.get("unread"); u.Exists() {
		return u.String()
	}
	return "0"
}

// TimestampString returns the ISO 8601 timestamp as sent by the API.
func (n *Note) TimestampString() string { return n.get("timestamp").String() }

// Timestamp returns the note time in Unix seconds, 0 when unparsable.
func (n *Note) Timestamp() int64 {
	t, err := time.Parse(time.RFC3339, n.TimestampString())
	if err != nil {
		return 0
	}
	return t.Unix()
}

// GenerateNoteID derives a stable identifier for notes that arrive without
// one: the low 32 bits of MD5(subject + type).
func GenerateNoteID(n *Note) int32 {
	if n == nil {
		return 0
	}
	sum := md5.Sum([]byte(n.Subject() + n.Type()))
	return int32(binary.BigEndian.Uint32(sum[12:]))
}

// NoteTimeGroup buckets notes for list section headers.
type NoteTimeGroup int

const (
	NoteGroupToday NoteTimeGroup = iota
	NoteGroupYesterday
	NoteGroupOlderTwoDays
	NoteGroupOlderWeek
	NoteGroupOlderMonth
)

func (g NoteTimeGroup) String() string {
	switch g {
	case NoteGroupToday:
		return "today"
	case NoteGroupYesterday:
		return "yesterday"
	case NoteGroupOlderTwoDays:
		return "older-two-days"
	case NoteGroupOlderWeek:
		return "older-week"
	case NoteGroupOlderMonth:
		return "older-month"
	default:
		return "unknown"
	}
}

// TimeGroupFor returns the group of a Unix timestamp relative to now.
func TimeGroupFor(timestamp int64, now time.Time) NoteTimeGroup {
	then := time.Unix(timestamp, 0).In(now.Location())
	twoDaysAgo := now.AddDate(0, 0, -2)
	switch {
	case then.Before(now.AddDate(0, -1, 0)):
		return NoteGroupOlderMonth
	case then.Before(now.AddDate(0, 0, -7)):
		return NoteGroupOlderWeek
	case then.Before(twoDaysAgo) || sameDay(twoDaysAgo, then):
		return NoteGroupOlderTwoDays
	case sameDay(now.AddDate(0, 0, -1), then):
		return NoteGroupYesterday
	default:
		return NoteGroupToday
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
