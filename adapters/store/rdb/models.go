package rdb

import "time"

// BlogRecord is the RDB persistence model for domain Blog.
// Table name: blogs
type BlogRecord struct {
	ID          int64     `gorm:"primaryKey;autoIncrement:false"`
	Name        string    `gorm:"type:text;not null"`
	URL         string    `gorm:"type:text"`
	IsFollowing bool      `gorm:"not null"`
	IsBlocked   bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (BlogRecord) TableName() string { return "blogs" }

// PostRecord persistence model, keyed by (blog_id, id).
type PostRecord struct {
	BlogID           int64  `gorm:"primaryKey;autoIncrement:false"`
	ID               int64  `gorm:"primaryKey;autoIncrement:false"`
	Title            string `gorm:"type:text"`
	URL              string `gorm:"type:text"`
	IsLiked          bool   `gorm:"not null"`
	LikeCount        int    `gorm:"not null"`
	IsBookmarked     bool   `gorm:"not null;index"`
	Content          string `gorm:"type:text"`
	ContentFetchedAt *time.Time
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

func (PostRecord) TableName() string { return "posts" }

// NoteRecord persistence model. RawNoteData holds the API document as-is.
type NoteRecord struct {
	RowID       uint   `gorm:"column:id;primaryKey"`
	NoteID      string `gorm:"type:text;not null;uniqueIndex"`
	Type        string `gorm:"type:text"`
	RawNoteData string `gorm:"type:text;not null"`
	Timestamp   int64  `gorm:"not null;index"`
	Placeholder bool   `gorm:"not null"`
}

func (NoteRecord) TableName() string { return "notes" }

// ReminderRecord persistence model. DaysMask bit 0 is Monday.
type ReminderRecord struct {
	BlogID    int64     `gorm:"primaryKey;autoIncrement:false"`
	DaysMask  uint8     `gorm:"not null"`
	Hour      int       `gorm:"not null"`
	Minute    int       `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ReminderRecord) TableName() string { return "reminders" }

// AnalyticsEventRecord persistence model for tracked usage events.
type AnalyticsEventRecord struct {
	ID        string    `gorm:"primaryKey;type:text;not null"`
	Event     string    `gorm:"type:text;not null;index"`
	Props     string    `gorm:"type:text"` // JSON encoded map[string]any
	CreatedAt time.Time `gorm:"not null"`
}

func (AnalyticsEventRecord) TableName() string { return "analytics_events" }
