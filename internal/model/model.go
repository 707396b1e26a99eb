package model

import (
	"strings"
	"time"
)

const (
	MinPriority = 1
	MaxPriority = 5
)

type User struct {
	ID        int64
	Username  string
	CreatedAt time.Time
}

// Session identifies the authenticated user. Every store call that touches
// per-user data takes one explicitly.
type Session struct {
	UserID   int64
	Username string
}

func (s Session) Valid() bool {
	return s.UserID > 0
}

type Note struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Tags      string    `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// TagList splits the comma-separated tag text, dropping blanks.
func (n Note) TagList() []string {
	parts := strings.Split(n.Tags, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		result = append(result, trimmed)
	}
	return result
}

type Task struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	DueDate   string    `json:"due_date"`
	Priority  int64     `json:"priority"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// ReportRow is one note joined to the username of its author.
type ReportRow struct {
	Username  string
	HasAuthor bool
	Content   string
	Category  string
	Tags      string
}
