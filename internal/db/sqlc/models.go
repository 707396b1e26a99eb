package sqlc

import (
	"time"
)

type Note struct {
	ID        int64
	UserID    int64
	Content   string
	Category  string
	Tags      string
	CreatedAt time.Time
}

type Task struct {
	ID        int64
	UserID    int64
	Content   string
	DueDate   string
	Priority  int64
	Completed bool
	CreatedAt time.Time
}

type User struct {
	ID        int64
	Username  string
	Password  string
	CreatedAt time.Time
}
