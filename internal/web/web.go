package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Joseda-hg/notebook/internal/model"
	"github.com/Joseda-hg/notebook/internal/notebook"
	"github.com/rs/cors"
)

// Server exposes the notebook over JSON. Every request carries its own
// credentials via HTTP Basic auth; no session state lives on the server.
type Server struct {
	svc        *notebook.Service
	reportPath string
	logger     *slog.Logger
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type noteRequest struct {
	Content  string `json:"content"`
	Category string `json:"category"`
	Tags     string `json:"tags"`
}

type taskRequest struct {
	Content  string `json:"content"`
	DueDate  string `json:"due_date"`
	Priority *int64 `json:"priority"`
}

type reportResponse struct {
	Path string `json:"path"`
	Rows int    `json:"rows"`
}

func NewServer(svc *notebook.Service, reportPath string) *Server {
	return &Server{
		svc:        svc,
		reportPath: reportPath,
		logger:     slog.Default().With("component", "web"),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/register", s.registerHandler)
	mux.HandleFunc("/api/notes", s.notesHandler)
	mux.HandleFunc("/api/notes/", s.noteHandler)
	mux.HandleFunc("/api/tasks", s.tasksHandler)
	mux.HandleFunc("/api/tasks/", s.taskHandler)
	mux.HandleFunc("/api/report", s.reportHandler)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	return c.Handler(mux)
}

func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req credentialsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	user, err := s.svc.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		s.fail(w, err)
		return
	}

	writeJSONStatus(w, http.StatusCreated, struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}{ID: user.ID, Username: user.Username})
}

func (s *Server) notesHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		notes, err := s.svc.Notes(r.Context(), session)
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, notes)
	case http.MethodPost:
		var req noteRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		note, err := s.svc.AddNote(r.Context(), session, req.Content, req.Category, req.Tags)
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSONStatus(w, http.StatusCreated, note)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) noteHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, http.MethodDelete)
		return
	}
	id, err := parseID(r.URL.Path, "/api/notes/")
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	session, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	if err := s.svc.DeleteNote(r.Context(), session, id); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) tasksHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		tasks, err := s.svc.Tasks(r.Context(), session)
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, tasks)
	case http.MethodPost:
		var req taskRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		priority := int64(model.MinPriority)
		if req.Priority != nil {
			priority = *req.Priority
		}
		task, err := s.svc.AddTask(r.Context(), session, req.Content, req.DueDate, priority)
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSONStatus(w, http.StatusCreated, task)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) taskHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/complete") {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown task action"))
		return
	}
	id, err := parseID(strings.TrimSuffix(r.URL.Path, "/complete"), "/api/tasks/")
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	session, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	if err := s.svc.CompleteTask(r.Context(), session, id); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) reportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	if _, ok := s.authenticate(w, r); !ok {
		return
	}

	summary, err := s.svc.ExportReport(r.Context(), s.reportPath)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, reportResponse{Path: summary.Path, Rows: summary.Rows})
}

func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (model.Session, bool) {
	username, password, ok := r.BasicAuth()
	if !ok {
		w.Header().Set("WWW-Authenticate", `Basic realm="notebook"`)
		writeError(w, http.StatusUnauthorized, notebook.ErrNoSession)
		return model.Session{}, false
	}

	session, err := s.svc.Login(r.Context(), username, password)
	if err != nil {
		if notebook.IsValidation(err) || errors.Is(err, notebook.ErrInvalidCredentials) {
			w.Header().Set("WWW-Authenticate", `Basic realm="notebook"`)
			writeError(w, http.StatusUnauthorized, notebook.ErrInvalidCredentials)
			return model.Session{}, false
		}
		s.fail(w, err)
		return model.Session{}, false
	}
	return session, true
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeError(w, status, err)
}

func statusFor(err error) int {
	switch {
	case notebook.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, notebook.ErrDuplicateUsername):
		return http.StatusConflict
	case errors.Is(err, notebook.ErrInvalidCredentials), errors.Is(err, notebook.ErrNoSession):
		return http.StatusUnauthorized
	case errors.Is(err, notebook.ErrNoData):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, dest any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func parseID(path, prefix string) (int64, error) {
	if !strings.HasPrefix(path, prefix) {
		return 0, fmt.Errorf("invalid path")
	}
	value := strings.TrimPrefix(path, prefix)
	value = strings.Trim(value, "/")
	if value == "" {
		return 0, fmt.Errorf("missing id")
	}
	return strconv.ParseInt(value, 10, 64)
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
}

func writeJSON(w http.ResponseWriter, payload any) {
	writeJSONStatus(w, http.StatusOK, payload)
}

func writeJSONStatus(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.WriteHeader(status)
	_, _ = w.Write([]byte(err.Error()))
}
