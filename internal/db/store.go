package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Joseda-hg/notebook/internal/auth"
	sqlc "github.com/Joseda-hg/notebook/internal/db/sqlc"
	"github.com/Joseda-hg/notebook/internal/model"
)

type Store struct {
	DB      *sql.DB
	Queries *sqlc.Queries

	hasher auth.Hasher
	logger *slog.Logger
}

type NoteInput struct {
	Content  string
	Category string
	Tags     string
}

type TaskInput struct {
	Content  string
	DueDate  string
	Priority int64
}

// NewStore wraps db. A nil hasher compares passwords as plain text.
func NewStore(db *sql.DB, hasher auth.Hasher) *Store {
	if hasher == nil {
		hasher = auth.PlainHasher{}
	}
	return &Store{
		DB:      db,
		Queries: sqlc.New(db),
		hasher:  hasher,
		logger:  slog.Default().With("component", "store"),
	}
}

func (s *Store) Register(ctx context.Context, username, password string) (model.User, error) {
	stored, err := s.hasher.Hash(password)
	if err != nil {
		return model.User{}, err
	}

	id, err := s.Queries.CreateUser(ctx, sqlc.CreateUserParams{Username: username, Password: stored})
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, ErrDuplicateUsername
		}
		return model.User{}, fmt.Errorf("create user: %w", err)
	}
	s.logger.Debug("registered user", "user_id", id, "username", username)

	return s.GetUser(ctx, id)
}

func (s *Store) Validate(ctx context.Context, username, password string) (model.User, error) {
	row, err := s.Queries.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, fmt.Errorf("lookup user: %w", err)
	}

	if !s.hasher.Matches(row.Password, password) {
		return model.User{}, ErrInvalidCredentials
	}

	return mapUser(row), nil
}

func (s *Store) GetUser(ctx context.Context, userID int64) (model.User, error) {
	row, err := s.Queries.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return model.User{}, err
	}
	return mapUser(row), nil
}

func (s *Store) AddNote(ctx context.Context, userID int64, input NoteInput) (model.Note, error) {
	id, err := s.Queries.CreateNote(ctx, sqlc.CreateNoteParams{
		UserID:   userID,
		Content:  input.Content,
		Category: input.Category,
		Tags:     input.Tags,
	})
	if err != nil {
		return model.Note{}, fmt.Errorf("create note: %w", err)
	}

	row, err := s.Queries.GetNote(ctx, id)
	if err != nil {
		return model.Note{}, err
	}
	s.logger.Debug("added note", "user_id", userID, "note_id", id)
	return mapNote(row), nil
}

func (s *Store) ListNotes(ctx context.Context, userID int64) ([]model.Note, error) {
	rows, err := s.Queries.ListNotesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	notes := make([]model.Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, mapNote(row))
	}
	return notes, nil
}

// DeleteNote removes one note owned by userID. A missing note is not an error.
func (s *Store) DeleteNote(ctx context.Context, userID, noteID int64) error {
	affected, err := s.Queries.DeleteNote(ctx, sqlc.DeleteNoteParams{UserID: userID, ID: noteID})
	if err != nil {
		return fmt.Errorf("delete note %d: %w", noteID, err)
	}
	s.logger.Debug("deleted note", "user_id", userID, "note_id", noteID, "rows", affected)
	return nil
}

// DeleteNoteByContent removes every note of userID whose content matches
// exactly and reports how many rows went.
func (s *Store) DeleteNoteByContent(ctx context.Context, userID int64, content string) (int64, error) {
	affected, err := s.Queries.DeleteNotesByContent(ctx, sqlc.DeleteNotesByContentParams{UserID: userID, Content: content})
	if err != nil {
		return 0, fmt.Errorf("delete notes by content: %w", err)
	}
	return affected, nil
}

func (s *Store) AddTask(ctx context.Context, userID int64, input TaskInput) (model.Task, error) {
	id, err := s.Queries.CreateTask(ctx, sqlc.CreateTaskParams{
		UserID:   userID,
		Content:  input.Content,
		DueDate:  input.DueDate,
		Priority: input.Priority,
	})
	if err != nil {
		return model.Task{}, fmt.Errorf("create task: %w", err)
	}

	row, err := s.Queries.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	s.logger.Debug("added task", "user_id", userID, "task_id", id, "priority", input.Priority)
	return mapTask(row), nil
}

func (s *Store) ListTasks(ctx context.Context, userID int64) ([]model.Task, error) {
	rows, err := s.Queries.ListTasksByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	tasks := make([]model.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTask(row))
	}
	return tasks, nil
}

// CompleteTask marks one task of userID as done. A missing task is not an error.
func (s *Store) CompleteTask(ctx context.Context, userID, taskID int64) error {
	affected, err := s.Queries.CompleteTask(ctx, sqlc.CompleteTaskParams{UserID: userID, ID: taskID})
	if err != nil {
		return fmt.Errorf("complete task %d: %w", taskID, err)
	}
	s.logger.Debug("completed task", "user_id", userID, "task_id", taskID, "rows", affected)
	return nil
}

func (s *Store) CompleteTaskByContent(ctx context.Context, userID int64, content string) (int64, error) {
	affected, err := s.Queries.CompleteTasksByContent(ctx, sqlc.CompleteTasksByContentParams{UserID: userID, Content: content})
	if err != nil {
		return 0, fmt.Errorf("complete tasks by content: %w", err)
	}
	return affected, nil
}

// ReportRows returns every note across all users with the author's name.
// Notes whose user is gone come back with HasAuthor=false.
func (s *Store) ReportRows(ctx context.Context) ([]model.ReportRow, error) {
	rows, err := s.Queries.ListReportRows(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.ReportRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, model.ReportRow{
			Username:  row.Username,
			HasAuthor: row.HasUser,
			Content:   row.Content,
			Category:  row.Category,
			Tags:      row.Tags,
		})
	}
	return result, nil
}

func mapUser(row sqlc.User) model.User {
	return model.User{ID: row.ID, Username: row.Username, CreatedAt: row.CreatedAt}
}

func mapNote(row sqlc.Note) model.Note {
	return model.Note{
		ID:        row.ID,
		UserID:    row.UserID,
		Content:   row.Content,
		Category:  row.Category,
		Tags:      row.Tags,
		CreatedAt: row.CreatedAt,
	}
}

func mapTask(row sqlc.Task) model.Task {
	return model.Task{
		ID:        row.ID,
		UserID:    row.UserID,
		Content:   row.Content,
		DueDate:   row.DueDate,
		Priority:  row.Priority,
		Completed: row.Completed,
		CreatedAt: row.CreatedAt,
	}
}
