package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Joseda-hg/notebook/internal/model"
)

type formKind int

const (
	formLogin formKind = iota
	formRegister
	formNote
	formTask
)

type formField struct {
	Label  string
	Value  string
	Secret bool
}

const (
	fieldUsername = iota
	fieldPassword
)

const (
	fieldNoteContent = iota
	fieldNoteCategory
	fieldNoteTags
)

const (
	fieldTaskContent = iota
	fieldTaskDue
	fieldTaskPriority
)

type formState struct {
	kind   formKind
	fields []formField
	index  int
}

func newForm(kind formKind) *formState {
	return &formState{kind: kind, fields: buildFormFields(kind)}
}

func buildFormFields(kind formKind) []formField {
	switch kind {
	case formNote:
		return []formField{
			{Label: "Note"},
			{Label: "Category"},
			{Label: "Tags (comma separated)"},
		}
	case formTask:
		return []formField{
			{Label: "Task"},
			{Label: "Due (YYYY-MM-DD HH:MM)"},
			{Label: fmt.Sprintf("Priority (%d-%d)", model.MinPriority, model.MaxPriority), Value: strconv.Itoa(model.MinPriority)},
		}
	default:
		return []formField{
			{Label: "Username"},
			{Label: "Password", Secret: true},
		}
	}
}

func (f *formState) title() string {
	switch f.kind {
	case formRegister:
		return "Register"
	case formNote:
		return "New Note"
	case formTask:
		return "New Task"
	default:
		return "Login"
	}
}

func (f *formState) value(index int) string {
	return f.fields[index].Value
}

type taskForm struct {
	Content  string
	DueDate  string
	Priority int64
}

func parseTaskForm(fields []formField) (taskForm, error) {
	priority, err := parsePriority(fields[fieldTaskPriority].Value)
	if err != nil {
		return taskForm{}, err
	}
	return taskForm{
		Content:  fields[fieldTaskContent].Value,
		DueDate:  strings.TrimSpace(fields[fieldTaskDue].Value),
		Priority: priority,
	}, nil
}

func parsePriority(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return model.MinPriority, nil
	}
	parsed, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid priority")
	}
	return parsed, nil
}

func maskValue(field formField) string {
	if field.Secret {
		return strings.Repeat("*", len([]rune(field.Value)))
	}
	return field.Value
}
