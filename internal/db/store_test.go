package db

import (
	"context"
	"errors"
	"testing"

	"github.com/Joseda-hg/notebook/internal/auth"
	"golang.org/x/crypto/bcrypt"
	"pgregory.net/rapid"
)

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	first, err := store.Register(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if first.ID == 0 {
		t.Fatalf("expected user ID to be set")
	}

	_, err = store.Register(context.Background(), "alice", "other")
	if !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	user, err := store.Validate(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("validate original password: %v", err)
	}
	if user.ID != first.ID {
		t.Fatalf("expected original user %d, got %d", first.ID, user.ID)
	}
	if _, err := store.Validate(context.Background(), "alice", "other"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected second password to be rejected, got %v", err)
	}
}

func TestValidateReturnsStableID(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	registered, err := store.Register(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	for i := 0; i < 3; i++ {
		user, err := store.Validate(context.Background(), "alice", "pw1")
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		if user.ID != registered.ID {
			t.Fatalf("expected user ID %d, got %d", registered.ID, user.ID)
		}
		if user.Username != "alice" {
			t.Fatalf("expected username 'alice', got %q", user.Username)
		}
	}

	if _, err := store.Validate(context.Background(), "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := store.Validate(context.Background(), "bob", "pw1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestValidateWithBcrypt(t *testing.T) {
	sqlDB, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqlDB.Close()
	store := NewStore(sqlDB, auth.BcryptHasher{Cost: bcrypt.MinCost})

	registered, err := store.Register(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	var stored string
	if err := sqlDB.QueryRow("SELECT password FROM users WHERE id = ?", registered.ID).Scan(&stored); err != nil {
		t.Fatalf("read password column: %v", err)
	}
	if stored == "pw1" {
		t.Fatalf("expected password to be hashed")
	}

	user, err := store.Validate(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("expected user ID %d, got %d", registered.ID, user.ID)
	}
	if _, err := store.Validate(context.Background(), "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAddNoteThenList(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	userID := mustRegister(t, store, "alice")

	created, err := store.AddNote(context.Background(), userID, NoteInput{
		Content:  "Buy milk",
		Category: "errands",
		Tags:     "shopping,home",
	})
	if err != nil {
		t.Fatalf("add note: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected note ID to be set")
	}

	notes, err := store.ListNotes(context.Background(), userID)
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
	got := notes[0]
	if got.Content != "Buy milk" || got.Category != "errands" || got.Tags != "shopping,home" {
		t.Fatalf("unexpected note %+v", got)
	}
	if tags := got.TagList(); len(tags) != 2 || tags[0] != "shopping" || tags[1] != "home" {
		t.Fatalf("unexpected tag list %v", tags)
	}
}

func TestListNotesIsScopedToUser(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	alice := mustRegister(t, store, "alice")
	bob := mustRegister(t, store, "bob")

	if _, err := store.AddNote(context.Background(), alice, NoteInput{Content: "alice note"}); err != nil {
		t.Fatalf("add note: %v", err)
	}

	notes, err := store.ListNotes(context.Background(), bob)
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 0 {
		t.Fatalf("expected bob to see no notes, got %d", len(notes))
	}
}

func TestAddNoteRequiresExistingUser(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	if _, err := store.AddNote(context.Background(), 42, NoteInput{Content: "orphan"}); err == nil {
		t.Fatalf("expected foreign key violation for unknown user")
	}
}

func TestDeleteNote(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	userID := mustRegister(t, store, "alice")

	first, err := store.AddNote(context.Background(), userID, NoteInput{Content: "same"})
	if err != nil {
		t.Fatalf("add note: %v", err)
	}
	second, err := store.AddNote(context.Background(), userID, NoteInput{Content: "same"})
	if err != nil {
		t.Fatalf("add note: %v", err)
	}

	t.Run("missing note is a no-op", func(t *testing.T) {
		if err := store.DeleteNote(context.Background(), userID, second.ID+100); err != nil {
			t.Fatalf("delete missing note: %v", err)
		}
		notes, err := store.ListNotes(context.Background(), userID)
		if err != nil {
			t.Fatalf("list notes: %v", err)
		}
		if len(notes) != 2 {
			t.Fatalf("expected 2 notes, got %d", len(notes))
		}
	})

	t.Run("delete by id keeps duplicates", func(t *testing.T) {
		if err := store.DeleteNote(context.Background(), userID, first.ID); err != nil {
			t.Fatalf("delete note: %v", err)
		}
		notes, err := store.ListNotes(context.Background(), userID)
		if err != nil {
			t.Fatalf("list notes: %v", err)
		}
		if len(notes) != 1 || notes[0].ID != second.ID {
			t.Fatalf("expected only note %d to remain, got %+v", second.ID, notes)
		}
	})

	t.Run("delete by content removes every match", func(t *testing.T) {
		if _, err := store.AddNote(context.Background(), userID, NoteInput{Content: "same"}); err != nil {
			t.Fatalf("add note: %v", err)
		}
		affected, err := store.DeleteNoteByContent(context.Background(), userID, "same")
		if err != nil {
			t.Fatalf("delete by content: %v", err)
		}
		if affected != 2 {
			t.Fatalf("expected 2 rows removed, got %d", affected)
		}
		affected, err = store.DeleteNoteByContent(context.Background(), userID, "same")
		if err != nil {
			t.Fatalf("delete by content again: %v", err)
		}
		if affected != 0 {
			t.Fatalf("expected no rows removed, got %d", affected)
		}
	})

	t.Run("other users cannot delete", func(t *testing.T) {
		kept, err := store.AddNote(context.Background(), userID, NoteInput{Content: "mine"})
		if err != nil {
			t.Fatalf("add note: %v", err)
		}
		bob := mustRegister(t, store, "bob")
		if err := store.DeleteNote(context.Background(), bob, kept.ID); err != nil {
			t.Fatalf("delete note: %v", err)
		}
		notes, err := store.ListNotes(context.Background(), userID)
		if err != nil {
			t.Fatalf("list notes: %v", err)
		}
		if len(notes) != 1 {
			t.Fatalf("expected note to survive, got %d notes", len(notes))
		}
	})
}

func TestCompleteTaskLeavesOthersUnchanged(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	userID := mustRegister(t, store, "alice")

	first, err := store.AddTask(context.Background(), userID, TaskInput{Content: "Write report", DueDate: "2024-05-01 10:00", Priority: 3})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	if first.Completed {
		t.Fatalf("expected new task to be open")
	}
	second, err := store.AddTask(context.Background(), userID, TaskInput{Content: "Call bob", DueDate: "tomorrow", Priority: 1})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}

	if err := store.CompleteTask(context.Background(), userID, first.ID); err != nil {
		t.Fatalf("complete task: %v", err)
	}

	tasks, err := store.ListTasks(context.Background(), userID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	for _, task := range tasks {
		switch task.ID {
		case first.ID:
			if !task.Completed {
				t.Fatalf("expected task %d to be completed", task.ID)
			}
			if task.DueDate != "2024-05-01 10:00" || task.Priority != 3 {
				t.Fatalf("unexpected task fields %+v", task)
			}
		case second.ID:
			if task.Completed {
				t.Fatalf("expected task %d to stay open", task.ID)
			}
		default:
			t.Fatalf("unexpected task %d", task.ID)
		}
	}
}

func TestCompleteTaskByContent(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	userID := mustRegister(t, store, "alice")

	for _, content := range []string{"dup", "dup", "other"} {
		if _, err := store.AddTask(context.Background(), userID, TaskInput{Content: content, Priority: 2}); err != nil {
			t.Fatalf("add task: %v", err)
		}
	}

	affected, err := store.CompleteTaskByContent(context.Background(), userID, "dup")
	if err != nil {
		t.Fatalf("complete by content: %v", err)
	}
	if affected != 2 {
		t.Fatalf("expected 2 rows updated, got %d", affected)
	}

	tasks, err := store.ListTasks(context.Background(), userID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	for _, task := range tasks {
		if task.Completed != (task.Content == "dup") {
			t.Fatalf("unexpected completion state for %+v", task)
		}
	}
}

func TestSchemaRejectsPriorityOutOfRange(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	userID := mustRegister(t, store, "alice")

	for _, priority := range []int64{0, 6} {
		if _, err := store.AddTask(context.Background(), userID, TaskInput{Content: "bad", Priority: priority}); err == nil {
			t.Fatalf("expected priority %d to be rejected", priority)
		}
	}
}

func TestReportRowsToleratesMissingUser(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	userID := mustRegister(t, store, "alice")

	if _, err := store.AddNote(context.Background(), userID, NoteInput{Content: "kept", Category: "c", Tags: "t"}); err != nil {
		t.Fatalf("add note: %v", err)
	}
	if _, err := store.DB.Exec("PRAGMA foreign_keys = OFF"); err != nil {
		t.Fatalf("disable foreign keys: %v", err)
	}
	if _, err := store.DB.Exec("INSERT INTO notes (user_id, content) VALUES (999, 'dangling')"); err != nil {
		t.Fatalf("insert dangling note: %v", err)
	}

	rows, err := store.ReportRows(context.Background())
	if err != nil {
		t.Fatalf("report rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if !rows[0].HasAuthor || rows[0].Username != "alice" {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	if rows[1].HasAuthor {
		t.Fatalf("expected dangling note to have no author, got %+v", rows[1])
	}
}

func TestAddListPreservesEveryNote(t *testing.T) {
	text := rapid.StringMatching(`[A-Za-z0-9 ,.!?-]{0,24}`)

	rapid.Check(t, func(rt *rapid.T) {
		sqlDB, err := Open(":memory:")
		if err != nil {
			rt.Fatalf("open db: %v", err)
		}
		defer sqlDB.Close()
		store := NewStore(sqlDB, nil)

		user, err := store.Register(context.Background(), "alice", "pw1")
		if err != nil {
			rt.Fatalf("register: %v", err)
		}

		inputs := rapid.SliceOfN(rapid.Custom(func(t *rapid.T) NoteInput {
			return NoteInput{
				Content:  text.Draw(t, "content"),
				Category: text.Draw(t, "category"),
				Tags:     text.Draw(t, "tags"),
			}
		}), 0, 12).Draw(rt, "notes")

		for _, input := range inputs {
			if _, err := store.AddNote(context.Background(), user.ID, input); err != nil {
				rt.Fatalf("add note: %v", err)
			}
		}

		notes, err := store.ListNotes(context.Background(), user.ID)
		if err != nil {
			rt.Fatalf("list notes: %v", err)
		}
		if len(notes) != len(inputs) {
			rt.Fatalf("expected %d notes, got %d", len(inputs), len(notes))
		}
		for i, input := range inputs {
			got := notes[i]
			if got.Content != input.Content || got.Category != input.Category || got.Tags != input.Tags {
				rt.Fatalf("note %d: expected %+v, got %+v", i, input, got)
			}
		}
	})
}

func mustRegister(t *testing.T, store *Store, username string) int64 {
	t.Helper()
	user, err := store.Register(context.Background(), username, "pw")
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user.ID
}

func newTestStore(t *testing.T) (*Store, func()) {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return NewStore(db, nil), func() {
		_ = db.Close()
	}
}
