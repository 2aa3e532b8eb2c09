package model

import "time"

// TodoID uniquely identifies a todo
type TodoID int64

// Todo is a user-owned task. OwnerID is set at creation and immutable;
// every access is checked against it before the todo is served.
type Todo struct {
	ID        TodoID
	Title     string
	Content   string
	Completed bool
	OwnerID   UserID
	CreatedAt time.Time
}
