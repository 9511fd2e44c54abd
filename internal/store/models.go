package store

import (
	"strings"
	"time"
)

// Task is a task record as written by the external task application. The
// dispatch core only ever reads tasks; writes arrive through the ingest API.
type Task struct {
	ID         string
	Title      string
	AssignedTo string
	CreatedBy  string
	Completed  bool
	DueDate    *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// User maps a username to its registered device token. An empty token is a
// valid state: the user simply has no device to deliver to.
type User struct {
	Username    string
	DeviceToken string
	UpdatedAt   time.Time
}

// HasToken reports whether the user can receive deliveries.
func (u *User) HasToken() bool {
	return u != nil && strings.TrimSpace(u.DeviceToken) != ""
}

// Counts aggregates store contents for status reporting.
type Counts struct {
	Tasks      int `json:"tasks"`
	Open       int `json:"open"`
	Completed  int `json:"completed"`
	Users      int `json:"users"`
	Registered int `json:"registered"`
}
