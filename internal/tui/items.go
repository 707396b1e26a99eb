package tui

import (
	"fmt"
	"strings"

	"github.com/Joseda-hg/notebook/internal/model"
)

func formatNoteSummary(note model.Note) string {
	category := note.Category
	if strings.TrimSpace(category) == "" {
		category = "-"
	}
	tags := strings.Join(note.TagList(), ",")
	if tags == "" {
		tags = "no tags"
	}
	return fmt.Sprintf("%s | %s | %s", note.Content, category, tags)
}

func formatTaskSummary(task model.Task) string {
	marker := "[ ]"
	if task.Completed {
		marker = "[x]"
	}
	due := task.DueDate
	if strings.TrimSpace(due) == "" {
		due = "no due date"
	}
	return fmt.Sprintf("%s %s | %s | p%d", marker, task.Content, due, task.Priority)
}
