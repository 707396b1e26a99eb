package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Joseda-hg/notebook/internal/model"
	"github.com/Joseda-hg/notebook/internal/notebook"
	"github.com/Joseda-hg/notebook/internal/report"
	goerrors "github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"
)

const (
	viewHeader = "header"
	viewFooter = "footer"
	viewAuth   = "auth"
	viewNotes  = "notes"
	viewTasks  = "tasks"
	viewForm   = "form"
)

type Options struct {
	ReportPath string
	OpenReport bool
}

type UI struct {
	svc  *notebook.Service
	opts Options
	gui  *gocui.Gui

	session model.Session
	auth    *formState

	notes []model.Note
	tasks []model.Task

	selectedNotes int
	selectedTasks int
	focus         string

	form       *formState
	formEditor *formEditor
	status     string

	openReport func(path string) error
}

type formEditor struct {
	ui *UI
}

func Run(svc *notebook.Service, opts Options) error {
	gui, err := gocui.NewGui(gocui.NewGuiOpts{OutputMode: gocui.OutputNormal})
	if err != nil {
		return err
	}
	defer gui.Close()

	ui := newUI(svc, opts)
	ui.gui = gui
	gui.Mouse = false
	gui.Cursor = true

	gui.SetManagerFunc(ui.layout)
	if err := ui.bindKeys(gui); err != nil {
		return err
	}

	if err := gui.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}

	return nil
}

func newUI(svc *notebook.Service, opts Options) *UI {
	ui := &UI{
		svc:        svc,
		opts:       opts,
		auth:       newForm(formLogin),
		focus:      viewNotes,
		openReport: report.Open,
	}
	ui.formEditor = &formEditor{ui: ui}
	return ui
}

func (u *UI) bindKeys(gui *gocui.Gui) error {
	bindings := []struct {
		view    string
		key     interface{}
		handler func(*gocui.Gui, *gocui.View) error
	}{
		{"", gocui.KeyCtrlC, u.quit},
		{"", 'q', u.quitIfIdle},
		{"", 'a', u.addNote},
		{"", 't', u.addTask},
		{"", 'd', u.deleteNote},
		{"", 'x', u.completeTask},
		{"", 'e', u.exportReport},
		{"", 'r', u.reload},
		{"", 'L', u.logout},
		{"", gocui.KeyTab, u.switchFocus},
		{viewNotes, gocui.KeyArrowDown, u.moveDown},
		{viewNotes, 'j', u.moveDown},
		{viewNotes, gocui.KeyArrowUp, u.moveUp},
		{viewNotes, 'k', u.moveUp},
		{viewTasks, gocui.KeyArrowDown, u.moveDown},
		{viewTasks, 'j', u.moveDown},
		{viewTasks, gocui.KeyArrowUp, u.moveUp},
		{viewTasks, 'k', u.moveUp},
		{viewAuth, gocui.KeyEnter, u.submitAuth},
		{viewAuth, gocui.KeyTab, u.nextFormField},
		{viewAuth, gocui.KeyArrowDown, u.nextFormField},
		{viewAuth, gocui.KeyArrowUp, u.prevFormField},
		{viewAuth, gocui.KeyCtrlR, u.toggleRegister},
		{viewAuth, gocui.KeyEsc, u.backToLogin},
		{viewForm, gocui.KeyEnter, u.submitForm},
		{viewForm, gocui.KeyTab, u.nextFormField},
		{viewForm, gocui.KeyArrowDown, u.nextFormField},
		{viewForm, gocui.KeyArrowUp, u.prevFormField},
		{viewForm, gocui.KeyEsc, u.cancelForm},
	}

	for _, binding := range bindings {
		if err := gui.SetKeybinding(binding.view, binding.key, gocui.ModNone, binding.handler); err != nil {
			return err
		}
	}
	return nil
}

func (u *UI) layout(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	if maxX <= 0 || maxY <= 0 {
		return nil
	}

	headerView, err := gui.SetView(viewHeader, 0, 0, maxX-1, 0, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	headerView.Frame = false
	u.renderHeader(headerView)

	footerY1 := max(maxY-1, 2)
	footerY0 := max(footerY1-2, 1)
	footerView, err := gui.SetView(viewFooter, 0, footerY0, maxX-1, footerY1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	footerView.Frame = false
	footerView.Wrap = true
	footerView.FgColor = gocui.ColorDefault | gocui.AttrDim
	u.renderFooter(footerView)

	if !u.session.Valid() {
		_ = gui.DeleteView(viewNotes)
		_ = gui.DeleteView(viewTasks)
		_ = gui.DeleteView(viewForm)
		return u.showAuth(gui)
	}
	_ = gui.DeleteView(viewAuth)

	bodyTop := 1
	bodyBottom := footerY0 - 1
	if bodyBottom <= bodyTop {
		return nil
	}
	split := maxX / 2

	notesView, err := gui.SetView(viewNotes, 0, bodyTop, split-1, bodyBottom, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	notesView.Title = "Notes"
	applyViewStyle(notesView, u.focus == viewNotes)
	u.renderNotes(notesView)

	tasksView, err := gui.SetView(viewTasks, split, bodyTop, maxX-1, bodyBottom, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	tasksView.Title = "Tasks"
	applyViewStyle(tasksView, u.focus == viewTasks)
	u.renderTasks(tasksView)

	if u.form != nil {
		return u.showForm(gui)
	}
	_ = gui.DeleteView(viewForm)
	if current := gui.CurrentView(); current == nil || current.Name() != u.focus {
		_, _ = gui.SetCurrentView(u.focus)
	}
	return nil
}

func (u *UI) showAuth(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	width := min(50, maxX-2)
	x0 := (maxX - width) / 2
	y0 := max(maxY/2-3, 1)

	view, err := gui.SetView(viewAuth, x0, y0, x0+width, y0+4, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	view.Title = u.auth.title()
	view.Editable = true
	view.KeybindOnEdit = true
	view.Editor = u.formEditor
	u.renderForm(view, u.auth)
	_, _ = gui.SetCurrentView(viewAuth)
	return nil
}

func (u *UI) showForm(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	width := max(60, maxX/2)
	height := len(u.form.fields) + 1
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2

	view, err := gui.SetView(viewForm, x0, y0, x0+width, y0+height, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	view.Title = u.form.title()
	view.Wrap = true
	view.Editable = true
	view.KeybindOnEdit = true
	view.Editor = u.formEditor
	u.renderForm(view, u.form)
	_, _ = gui.SetCurrentView(viewForm)
	return nil
}

func (u *UI) renderHeader(view *gocui.View) {
	view.Clear()
	if !u.session.Valid() {
		fmt.Fprint(view, "Notebook")
		return
	}
	fmt.Fprintf(view, "Notebook | %s | %d notes | %d tasks", u.session.Username, len(u.notes), len(u.tasks))
}

func (u *UI) renderFooter(view *gocui.View) {
	view.Clear()
	if u.session.Valid() {
		fmt.Fprintln(view, "a add note | t add task | d delete note | x complete task | e export report | tab pane | L logout | q quit")
	} else {
		fmt.Fprintln(view, "enter submit | tab next field | ctrl+r login/register | esc back | ctrl+c quit")
	}
	if u.status != "" {
		fmt.Fprint(view, u.status)
	}
}

func (u *UI) renderNotes(view *gocui.View) {
	view.Clear()
	if len(u.notes) == 0 {
		fmt.Fprintln(view, "  no notes yet, press a to add one")
		return
	}
	for i, note := range u.notes {
		fmt.Fprintf(view, "%s %s\n", selectionPrefix(i == u.selectedNotes, u.focus == viewNotes), formatNoteSummary(note))
	}
	if u.focus == viewNotes {
		view.SetCursor(0, u.selectedNotes)
	}
}

func (u *UI) renderTasks(view *gocui.View) {
	view.Clear()
	if len(u.tasks) == 0 {
		fmt.Fprintln(view, "  no tasks")
		return
	}
	for i, task := range u.tasks {
		fmt.Fprintf(view, "%s %s\n", selectionPrefix(i == u.selectedTasks, u.focus == viewTasks), formatTaskSummary(task))
	}
	if u.focus == viewTasks {
		view.SetCursor(0, u.selectedTasks)
	}
}

func (u *UI) renderForm(view *gocui.View, form *formState) {
	if form == nil || view == nil {
		return
	}
	view.Clear()
	for index, field := range form.fields {
		prefix := "  "
		if index == form.index {
			prefix = "> "
		}
		fmt.Fprintf(view, "%s%s: %s\n", prefix, field.Label, maskValue(field))
	}
	current := form.fields[form.index]
	cursorX := len([]rune(current.Label)) + len([]rune(current.Value)) + 4
	view.SetCursor(cursorX, form.index)
}

// activeForm is the form receiving keystrokes, if any.
func (u *UI) activeForm() *formState {
	if !u.session.Valid() {
		return u.auth
	}
	return u.form
}

func (u *UI) inputActive() bool {
	return u.activeForm() != nil
}

func (u *UI) loadEntries() error {
	notes, err := u.svc.Notes(context.Background(), u.session)
	if err != nil {
		return err
	}
	tasks, err := u.svc.Tasks(context.Background(), u.session)
	if err != nil {
		return err
	}
	u.notes = notes
	u.tasks = tasks

	if u.selectedNotes >= len(u.notes) {
		u.selectedNotes = max(len(u.notes)-1, 0)
	}
	if u.selectedTasks >= len(u.tasks) {
		u.selectedTasks = max(len(u.tasks)-1, 0)
	}
	return nil
}

func (u *UI) submitAuth(gui *gocui.Gui, _ *gocui.View) error {
	if u.session.Valid() {
		return nil
	}
	username := u.auth.value(fieldUsername)
	password := u.auth.value(fieldPassword)

	if u.auth.kind == formRegister {
		if _, err := u.svc.Register(context.Background(), username, password); err != nil {
			u.status = describeError(err)
			return nil
		}
		u.auth = newForm(formLogin)
		u.auth.fields[fieldUsername].Value = strings.TrimSpace(username)
		u.auth.index = fieldPassword
		u.status = "Registered, you can log in now"
		return nil
	}

	session, err := u.svc.Login(context.Background(), username, password)
	if err != nil {
		u.status = describeError(err)
		return nil
	}
	u.session = session
	u.auth = nil
	u.focus = viewNotes
	u.status = ""
	return u.loadEntries()
}

func (u *UI) toggleRegister(gui *gocui.Gui, _ *gocui.View) error {
	if u.session.Valid() {
		return nil
	}
	if u.auth.kind == formRegister {
		u.auth = newForm(formLogin)
	} else {
		u.auth = newForm(formRegister)
	}
	u.status = ""
	return nil
}

func (u *UI) backToLogin(gui *gocui.Gui, _ *gocui.View) error {
	if u.session.Valid() || u.auth.kind == formLogin {
		return nil
	}
	u.auth = newForm(formLogin)
	u.status = ""
	return nil
}

func (u *UI) logout(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	u.session = model.Session{}
	u.notes = nil
	u.tasks = nil
	u.selectedNotes = 0
	u.selectedTasks = 0
	u.auth = newForm(formLogin)
	u.status = ""
	return nil
}

func (u *UI) addNote(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	u.form = newForm(formNote)
	return nil
}

func (u *UI) addTask(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	u.form = newForm(formTask)
	return nil
}

func (u *UI) submitForm(gui *gocui.Gui, _ *gocui.View) error {
	if u.form == nil {
		return nil
	}

	switch u.form.kind {
	case formNote:
		content := u.form.value(fieldNoteContent)
		if _, err := u.svc.AddNote(context.Background(), u.session, content, u.form.value(fieldNoteCategory), u.form.value(fieldNoteTags)); err != nil {
			u.status = describeError(err)
			return nil
		}
		u.status = "Note added"
	case formTask:
		input, err := parseTaskForm(u.form.fields)
		if err != nil {
			u.status = err.Error()
			return nil
		}
		if _, err := u.svc.AddTask(context.Background(), u.session, input.Content, input.DueDate, input.Priority); err != nil {
			u.status = describeError(err)
			return nil
		}
		u.status = "Task added"
	}

	u.closeForm(gui)
	return u.loadEntries()
}

func (u *UI) cancelForm(gui *gocui.Gui, _ *gocui.View) error {
	u.closeForm(gui)
	return nil
}

func (u *UI) closeForm(gui *gocui.Gui) {
	u.form = nil
	if gui != nil {
		_ = gui.DeleteView(viewForm)
		_, _ = gui.SetCurrentView(u.focus)
	}
}

func (u *UI) nextFormField(gui *gocui.Gui, view *gocui.View) error {
	form := u.activeForm()
	if form == nil {
		return nil
	}
	form.index = (form.index + 1) % len(form.fields)
	u.renderForm(view, form)
	return nil
}

func (u *UI) prevFormField(gui *gocui.Gui, view *gocui.View) error {
	form := u.activeForm()
	if form == nil {
		return nil
	}
	form.index = (form.index - 1 + len(form.fields)) % len(form.fields)
	u.renderForm(view, form)
	return nil
}

func (e *formEditor) Edit(view *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) bool {
	ui := e.ui
	if ui == nil || view == nil {
		return false
	}
	form := ui.activeForm()
	if form == nil {
		return false
	}
	field := &form.fields[form.index]

	switch key {
	case gocui.KeyBackspace, gocui.KeyBackspace2:
		runes := []rune(field.Value)
		if len(runes) > 0 {
			field.Value = string(runes[:len(runes)-1])
		}
	case gocui.KeySpace:
		field.Value += " "
	case gocui.KeyCtrlU:
		field.Value = ""
	}

	if ch != 0 && ch != '\n' && ch != '\r' && mod == 0 {
		field.Value += string(ch)
	}

	ui.renderForm(view, form)
	return true
}

func (u *UI) selectedNote() *model.Note {
	if u.selectedNotes >= 0 && u.selectedNotes < len(u.notes) {
		return &u.notes[u.selectedNotes]
	}
	return nil
}

func (u *UI) selectedTask() *model.Task {
	if u.selectedTasks >= 0 && u.selectedTasks < len(u.tasks) {
		return &u.tasks[u.selectedTasks]
	}
	return nil
}

func (u *UI) deleteNote(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	selected := u.selectedNote()
	if selected == nil {
		u.status = "Select a note to delete"
		return nil
	}
	if err := u.svc.DeleteNote(context.Background(), u.session, selected.ID); err != nil {
		u.status = describeError(err)
		return nil
	}
	u.status = "Note deleted"
	return u.loadEntries()
}

func (u *UI) completeTask(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	selected := u.selectedTask()
	if selected == nil {
		u.status = "Select a task to complete"
		return nil
	}
	if err := u.svc.CompleteTask(context.Background(), u.session, selected.ID); err != nil {
		u.status = describeError(err)
		return nil
	}
	u.status = "Task completed"
	return u.loadEntries()
}

func (u *UI) exportReport(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	summary, err := u.svc.ExportReport(context.Background(), u.opts.ReportPath)
	if err != nil {
		u.status = describeError(err)
		return nil
	}
	u.status = fmt.Sprintf("Exported %d notes to %s", summary.Rows, summary.Path)

	if u.opts.OpenReport && u.openReport != nil {
		if err := u.openReport(summary.Path); err != nil {
			slog.Warn("open report", "path", summary.Path, "error", err)
		}
	}
	return nil
}

func (u *UI) reload(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	if err := u.loadEntries(); err != nil {
		u.status = describeError(err)
	}
	return nil
}

func (u *UI) switchFocus(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	if u.focus == viewNotes {
		u.focus = viewTasks
	} else {
		u.focus = viewNotes
	}
	if gui != nil {
		_, _ = gui.SetCurrentView(u.focus)
	}
	return nil
}

func (u *UI) moveDown(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	switch u.focus {
	case viewNotes:
		if u.selectedNotes < len(u.notes)-1 {
			u.selectedNotes++
		}
	case viewTasks:
		if u.selectedTasks < len(u.tasks)-1 {
			u.selectedTasks++
		}
	}
	return nil
}

func (u *UI) moveUp(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	switch u.focus {
	case viewNotes:
		if u.selectedNotes > 0 {
			u.selectedNotes--
		}
	case viewTasks:
		if u.selectedTasks > 0 {
			u.selectedTasks--
		}
	}
	return nil
}

func (u *UI) quitIfIdle(gui *gocui.Gui, view *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	return u.quit(gui, view)
}

func (u *UI) quit(_ *gocui.Gui, _ *gocui.View) error {
	return gocui.ErrQuit
}

func describeError(err error) string {
	var validationErr *notebook.ValidationError
	var storageErr *report.StorageError
	switch {
	case errors.As(err, &validationErr):
		return "Invalid input: " + validationErr.Error()
	case errors.Is(err, notebook.ErrDuplicateUsername):
		return "A user with that name already exists"
	case errors.Is(err, notebook.ErrInvalidCredentials):
		return "Wrong username or password"
	case errors.Is(err, notebook.ErrNoData):
		return "There are no notes to export"
	case errors.As(err, &storageErr):
		return "Export failed: " + storageErr.Error()
	default:
		return err.Error()
	}
}

func selectionPrefix(selected, focused bool) string {
	if !selected {
		return " "
	}
	if focused {
		return ">"
	}
	return "*"
}

func applyViewStyle(view *gocui.View, focused bool) {
	view.Frame = true
	view.Highlight = focused
	view.SelBgColor = gocui.ColorBlue
	view.SelFgColor = gocui.ColorBlack
	if focused {
		view.FrameColor = gocui.ColorCyan
		view.TitleColor = gocui.ColorCyan
	} else {
		view.FrameColor = gocui.ColorDefault
		view.TitleColor = gocui.ColorDefault
	}
}
