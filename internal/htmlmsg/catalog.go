package htmlmsg

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Catalog keys.
const (
	KeyRemindersNone     = "reminders.summary.none"
	KeyRemindersTimes    = "reminders.times"
	KeyRemindersOnce     = "reminders.summary.once"
	KeyRemindersSummary  = "reminders.summary"
	KeyRemindersDaily    = "reminders.summary.daily"
	KeyPostLiked         = "post.liked"
	KeyPostUnliked       = "post.unliked"
	KeyPostSaved         = "post.saved"
	KeyPostUnsaved       = "post.unsaved"
	KeyBlogBlocked       = "blog.blocked"
	KeyBlogUnblocked     = "blog.unblocked"
	KeyNoNetwork         = "error.no_network"
	KeyRequestFailed     = "error.request_failed"
	KeyAlreadyInProgress = "error.already_running"
)

func init() {
	lang := language.English

	message.SetString(lang, KeyRemindersNone, "You have no reminders set.")
	message.SetString(lang, KeyRemindersTimes, "%d times")
	message.SetString(lang, KeyRemindersOnce, "You'll get a reminder to blog once a week on %s at %s.")
	message.SetString(lang, KeyRemindersSummary, "You'll get reminders to blog %s a week on %s at %s.")
	message.SetString(lang, KeyRemindersDaily, "You'll get reminders to blog every day at %s.")
	message.SetString(lang, KeyPostLiked, "Liked <b>%s</b>.")
	message.SetString(lang, KeyPostUnliked, "Removed your like from <b>%s</b>.")
	message.SetString(lang, KeyPostSaved, "Saved <b>%s</b> for later.")
	message.SetString(lang, KeyPostUnsaved, "Removed <b>%s</b> from saved posts.")
	message.SetString(lang, KeyBlogBlocked, "Blocked <b>%s</b>. You will no longer see posts from this site.")
	message.SetString(lang, KeyBlogUnblocked, "Unblocked <b>%s</b>.")
	message.SetString(lang, KeyNoNetwork, "No network available.")
	message.SetString(lang, KeyRequestFailed, "The request failed. Your local change was kept.")
	message.SetString(lang, KeyAlreadyInProgress, "Another request is still in progress.")
}
