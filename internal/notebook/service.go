package notebook

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Joseda-hg/notebook/internal/db"
	"github.com/Joseda-hg/notebook/internal/model"
	"github.com/Joseda-hg/notebook/internal/report"
)

// Service is the boundary every interaction surface talks to. It checks
// input before delegating to the store.
type Service struct {
	store  *db.Store
	report *report.Generator
	dbPath string
	logger *slog.Logger
}

// MaxPasswordBytes is the longest password bcrypt accepts. It applies to the
// plain scheme too so a database can switch schemes without stranding users.
const MaxPasswordBytes = 72

type Option func(*Service)

// WithDatabasePath makes ExportReport open its own connection to path for
// each export instead of reading through the shared store.
func WithDatabasePath(path string) Option {
	return func(s *Service) {
		s.dbPath = path
	}
}

func NewService(store *db.Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		report: report.NewGenerator(store),
		logger: slog.Default().With("component", "notebook"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Register(ctx context.Context, username, password string) (model.User, error) {
	username, password, err := credentials(username, password)
	if err != nil {
		return model.User{}, err
	}

	user, err := s.store.Register(ctx, username, password)
	if err != nil {
		return model.User{}, err
	}
	s.logger.Info("user registered", "username", user.Username)
	return user, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (model.Session, error) {
	username, password, err := credentials(username, password)
	if err != nil {
		return model.Session{}, err
	}

	user, err := s.store.Validate(ctx, username, password)
	if err != nil {
		return model.Session{}, err
	}
	return model.Session{UserID: user.ID, Username: user.Username}, nil
}

func (s *Service) AddNote(ctx context.Context, session model.Session, content, category, tags string) (model.Note, error) {
	if !session.Valid() {
		return model.Note{}, ErrNoSession
	}
	if strings.TrimSpace(content) == "" {
		return model.Note{}, &ValidationError{Field: "content", Reason: "is required"}
	}

	return s.store.AddNote(ctx, session.UserID, db.NoteInput{
		Content:  content,
		Category: category,
		Tags:     tags,
	})
}

func (s *Service) Notes(ctx context.Context, session model.Session) ([]model.Note, error) {
	if !session.Valid() {
		return nil, ErrNoSession
	}
	return s.store.ListNotes(ctx, session.UserID)
}

func (s *Service) DeleteNote(ctx context.Context, session model.Session, noteID int64) error {
	if !session.Valid() {
		return ErrNoSession
	}
	return s.store.DeleteNote(ctx, session.UserID, noteID)
}

func (s *Service) AddTask(ctx context.Context, session model.Session, content, dueDate string, priority int64) (model.Task, error) {
	if !session.Valid() {
		return model.Task{}, ErrNoSession
	}
	if strings.TrimSpace(content) == "" {
		return model.Task{}, &ValidationError{Field: "content", Reason: "is required"}
	}
	if priority < model.MinPriority || priority > model.MaxPriority {
		return model.Task{}, &ValidationError{
			Field:  "priority",
			Reason: fmt.Sprintf("must be between %d and %d", model.MinPriority, model.MaxPriority),
		}
	}

	return s.store.AddTask(ctx, session.UserID, db.TaskInput{
		Content:  content,
		DueDate:  dueDate,
		Priority: priority,
	})
}

func (s *Service) Tasks(ctx context.Context, session model.Session) ([]model.Task, error) {
	if !session.Valid() {
		return nil, ErrNoSession
	}
	return s.store.ListTasks(ctx, session.UserID)
}

func (s *Service) CompleteTask(ctx context.Context, session model.Session, taskID int64) error {
	if !session.Valid() {
		return ErrNoSession
	}
	return s.store.CompleteTask(ctx, session.UserID, taskID)
}

// ExportReport writes every user's notes to dest.
func (s *Service) ExportReport(ctx context.Context, dest string) (report.Summary, error) {
	var (
		summary report.Summary
		err     error
	)
	if s.dbPath != "" {
		summary, err = report.ExportDatabase(ctx, s.dbPath, dest)
	} else {
		summary, err = s.report.Export(ctx, dest)
	}
	if err != nil {
		return report.Summary{}, err
	}
	s.logger.Info("report exported", "path", summary.Path, "rows", summary.Rows)
	return summary, nil
}

func credentials(username, password string) (string, string, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" {
		return "", "", &ValidationError{Field: "username", Reason: "is required"}
	}
	if password == "" {
		return "", "", &ValidationError{Field: "password", Reason: "is required"}
	}
	if len(password) > MaxPasswordBytes {
		return "", "", &ValidationError{Field: "password", Reason: fmt.Sprintf("must be at most %d bytes", MaxPasswordBytes)}
	}
	return username, password, nil
}
