package model

import "errors"

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrPostInvalid      = errors.New("post invalid")
	ErrBlogNotFound     = errors.New("blog not found")
	ErrBlogInvalid      = errors.New("blog invalid")
	ErrNoteNotFound     = errors.New("note not found")
	ErrNoteInvalid      = errors.New("note invalid")
	ErrReminderNotFound = errors.New("reminder schedule not found")
	ErrReminderInvalid  = errors.New("reminder schedule invalid")
)
