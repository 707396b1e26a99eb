package tui

import "testing"

func TestParsePriority(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"", 1, false},
		{" 3 ", 3, false},
		{"6", 6, false},
		{"high", 0, true},
	}
	for _, tc := range cases {
		got, err := parsePriority(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parsePriority(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parsePriority(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parsePriority(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseTaskFormKeepsContent(t *testing.T) {
	fields := buildFormFields(formTask)
	fields[fieldTaskContent].Value = "  Write report "
	fields[fieldTaskDue].Value = " 2024-05-01 "

	input, err := parseTaskForm(fields)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if input.Content != "  Write report " {
		t.Fatalf("expected content untouched, got %q", input.Content)
	}
	if input.DueDate != "2024-05-01" || input.Priority != 1 {
		t.Fatalf("unexpected input %+v", input)
	}
}

func TestMaskValue(t *testing.T) {
	if got := maskValue(formField{Value: "pwé", Secret: true}); got != "***" {
		t.Fatalf("expected three stars, got %q", got)
	}
	if got := maskValue(formField{Value: "alice"}); got != "alice" {
		t.Fatalf("expected plain value, got %q", got)
	}
}

func TestFormTitles(t *testing.T) {
	if newForm(formLogin).title() != "Login" || newForm(formTask).title() != "New Task" {
		t.Fatalf("unexpected form titles")
	}
}
