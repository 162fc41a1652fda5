// Package readercfg defines the readerops.yml schema used to seed the
// in-memory store and account settings.
package readercfg

// DefaultConfigPath is used when no file is named.
const DefaultConfigPath = "readerops.yml"

// Root is the root structure of readerops.yml.
// Example:
// version: 1
// account: { userId: 100 }
// blogs: [ { id: 10, name: Daily Prompt, following: true } ]
// posts: [ { id: 1, blogId: 10, title: Hello } ]
// reminders: [ { blogId: 10, days: [mon, thu], time: "09:30" } ]
type Root struct {
	Version   int        `yaml:"version"`
	Account   Account    `yaml:"account"`
	API       API        `yaml:"api,omitempty"`
	Blogs     []Blog     `yaml:"blogs,omitempty"`
	Posts     []Post     `yaml:"posts,omitempty"`
	Reminders []Reminder `yaml:"reminders,omitempty"`
}

// Account identifies the signed-in reader.
type Account struct {
	UserID int64 `yaml:"userId"`
}

// API overrides the REST endpoint; the token comes from the environment.
type API struct {
	BaseURL string `yaml:"baseUrl,omitempty"`
}

// Blog seeds a reader blog.
type Blog struct {
	ID        int64  `yaml:"id"`
	Name      string `yaml:"name"`
	URL       string `yaml:"url,omitempty"`
	Following bool   `yaml:"following,omitempty"`
	Blocked   bool   `yaml:"blocked,omitempty"`
}

// Post seeds a cached reader post.
type Post struct {
	ID         int64  `yaml:"id"`
	BlogID     int64  `yaml:"blogId"`
	Title      string `yaml:"title,omitempty"`
	URL        string `yaml:"url,omitempty"`
	Liked      bool   `yaml:"liked,omitempty"`
	LikeCount  int    `yaml:"likeCount,omitempty"`
	Bookmarked bool   `yaml:"bookmarked,omitempty"`
}

// Reminder seeds a blogging reminder schedule.
type Reminder struct {
	BlogID int64    `yaml:"blogId"`
	Days   []string `yaml:"days"`           // mon..sun or full names
	Time   string   `yaml:"time,omitempty"` // HH:MM, default 10:00
}
