package ui

import (
	"github.com/vmsouza/musicctl/internal/models"
)

// pageLoadedMsg carries one fetched page of the active catalog.
type pageLoadedMsg struct {
	page models.Page
	err  error
}

// deletedLoadedMsg carries one fetched page of the deleted records.
type deletedLoadedMsg struct {
	page models.Page
	err  error
}

// countLoadedMsg carries the current number of soft-deleted records.
type countLoadedMsg struct {
	count int
	err   error
}

// loginDoneMsg carries the outcome of a login attempt.
type loginDoneMsg struct {
	session models.Session
	err     error
}

// mutationDoneMsg carries the outcome of an add, edit, delete, or
// recover call, with the success message to toast.
type mutationDoneMsg struct {
	message string
	err     error
}

// noticeMsg is a channel notice forwarded into the program loop.
type noticeMsg string
