package model

import (
	"testing"
	"time"
)

func TestGenerateNoteID(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int32
	}{
		// MD5 = 2616edbaf0e14f01ddb154a6df70d070, last four bytes df70d070
		{"subject and type", `{"type":"like","subject":[{"text":"Ann liked your post"}]}`, -546254736},
		// MD5("nullunknown") = c8a2143b6d49ad2b3b3ad585d67cd67f
		{"no subject no type", `{}`, -696461697},
		{"only first subject counts", `{"type":"like","subject":[{"text":"x"},{"text":"y"}]}`, 75308033},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewNote(tt.raw)
			if err != nil {
				t.Fatalf("NewNote: %v", err)
			}
			if got := GenerateNoteID(n); got != tt.want {
				t.Errorf("GenerateNoteID = %d, want %d", got, tt.want)
			}
		})
	}
	if got := GenerateNoteID(nil); got != 0 {
		t.Errorf("GenerateNoteID(nil) = %d", got)
	}
}

func TestTimeGroupFor(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	at := func(month time.Month, day, hour, min int) int64 {
		return time.Date(2024, month, day, hour, min, 0, 0, time.UTC).Unix()
	}
	tests := []struct {
		name string
		ts   int64
		want NoteTimeGroup
	}{
		{"now", now.Unix(), NoteGroupToday},
		{"start of today", at(3, 15, 0, 0), NoteGroupToday},
		{"future", at(3, 16, 9, 0), NoteGroupToday},
		{"end of yesterday", at(3, 14, 23, 59), NoteGroupYesterday},
		{"start of yesterday", at(3, 14, 0, 0), NoteGroupYesterday},
		{"same day as two days ago, later hour", at(3, 13, 23, 0), NoteGroupOlderTwoDays},
		{"same day as two days ago, earlier hour", at(3, 13, 8, 0), NoteGroupOlderTwoDays},
		{"six days ago", at(3, 9, 12, 0), NoteGroupOlderTwoDays},
		{"exactly a week ago", at(3, 8, 12, 0), NoteGroupOlderTwoDays},
		{"just over a week ago", at(3, 8, 11, 59), NoteGroupOlderWeek},
		{"exactly a month ago", at(2, 15, 12, 0), NoteGroupOlderWeek},
		{"just over a month ago", at(2, 15, 11, 59), NoteGroupOlderMonth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimeGroupFor(tt.ts, now); got != tt.want {
				t.Errorf("TimeGroupFor = %v, want %v", got, tt.want)
			}
		})
	}
}
