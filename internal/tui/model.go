// Package tui renders the list editor as a bubbletea program.
//
// The Model owns an editor.Editor and only touches it from Update. Store
// and retrieve run as tea.Cmds against a snapshot copy; their results come
// back as messages and are applied through the editor's Finish methods.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/mesh-intelligence/todos/internal/editor"
	"github.com/mesh-intelligence/todos/pkg/types"
)

// inputMode says what the text input is being used for.
type inputMode int

const (
	modeBrowse inputMode = iota
	modeAdd
	modeEdit
)

// taskPrefixWidth is the cursor marker plus the "[ ] " checkbox.
const taskPrefixWidth = 6

// storeDoneMsg carries the outcome of a store command.
type storeDoneMsg struct {
	snapshot []types.Task
	err      error
}

// retrieveDoneMsg carries the outcome of a retrieve command.
type retrieveDoneMsg struct {
	tasks []types.Task
	err   error
}

// Model is the bubbletea model for the list editor.
type Model struct {
	ctx    context.Context
	editor *editor.Editor
	keys   KeyMap
	theme  Theme

	input     textinput.Model
	mode      inputMode
	editingID int64
	cursor    int
	notice    editor.Notice

	width  int
	height int
}

// NewModel creates a Model over ed. Store and retrieve commands run with ctx.
func NewModel(ctx context.Context, ed *editor.Editor) Model {
	input := textinput.New()
	input.Placeholder = "Add a new task"
	input.Prompt = "› "
	return Model{
		ctx:    ctx,
		editor: ed,
		keys:   DefaultKeyMap,
		theme:  DefaultTheme,
		input:  input,
	}
}

// Editor returns the underlying editor.
func (model Model) Editor() *editor.Editor { return model.editor }

// Notice returns the most recent store/retrieve outcome.
func (model Model) Notice() editor.Notice { return model.notice }

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		return model, nil

	case storeDoneMsg:
		model.notice = model.editor.FinishStore(message.snapshot, message.err)
		return model, nil

	case retrieveDoneMsg:
		model.notice = model.editor.FinishRetrieve(message.tasks, message.err)
		model.clampCursor()
		return model, nil

	case tea.KeyMsg:
		if message.Type == tea.KeyCtrlC {
			return model, tea.Quit
		}
		if model.editor.Gate().Pending() {
			return model.handleGateKeys(message)
		}
		if model.mode != modeBrowse {
			return model.handleInputKeys(message)
		}
		return model.handleBrowseKeys(message)
	}
	return model, nil
}

func (model Model) handleBrowseKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}

	case key.Matches(message, model.keys.Down):
		if model.cursor < model.editor.Len()-1 {
			model.cursor++
		}

	case key.Matches(message, model.keys.Add):
		model.mode = modeAdd
		model.input.SetValue("")
		return model, model.input.Focus()

	case key.Matches(message, model.keys.Edit):
		task, ok := model.selected()
		if !ok {
			return model, nil
		}
		model.mode = modeEdit
		model.editingID = task.ID
		model.input.SetValue(task.Text)
		model.input.CursorEnd()
		return model, model.input.Focus()

	case key.Matches(message, model.keys.Toggle):
		if task, ok := model.selected(); ok {
			model.editor.ToggleComplete(task.ID)
		}

	case key.Matches(message, model.keys.Delete):
		if task, ok := model.selected(); ok {
			model.editor.Delete(task.ID)
			model.clampCursor()
		}

	case key.Matches(message, model.keys.Store):
		return model.startStore()

	case key.Matches(message, model.keys.Retrieve):
		if !model.editor.Busy() {
			model.editor.RequestRetrieve()
		}
	}
	return model, nil
}

func (model Model) handleInputKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Cancel):
		model.leaveInput()
		return model, nil

	case key.Matches(message, model.keys.Submit):
		value := model.input.Value()
		if model.mode == modeEdit {
			model.editor.EditText(model.editingID, value)
			model.leaveInput()
			return model, nil
		}
		if _, ok := model.editor.Add(value); ok {
			model.cursor = model.editor.Len() - 1
		}
		model.input.SetValue("")
		return model, nil
	}

	var command tea.Cmd
	model.input, command = model.input.Update(message)
	return model, command
}

func (model Model) handleGateKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Confirm):
		if model.editor.ConfirmAction() == editor.ActionRetrieve {
			return model.startRetrieve()
		}
	case key.Matches(message, model.keys.Decline):
		model.editor.Cancel()
	}
	return model, nil
}

func (model Model) startStore() (tea.Model, tea.Cmd) {
	snapshot, err := model.editor.BeginStore()
	if err != nil {
		return model, nil
	}
	ctx, store := model.ctx, model.editor.Remote()
	return model, func() tea.Msg {
		return storeDoneMsg{snapshot: snapshot, err: editor.ReplaceRemote(ctx, store, snapshot)}
	}
}

func (model Model) startRetrieve() (tea.Model, tea.Cmd) {
	if err := model.editor.BeginRetrieve(); err != nil {
		return model, nil
	}
	ctx, store := model.ctx, model.editor.Remote()
	return model, func() tea.Msg {
		tasks, err := editor.ReadRemote(ctx, store)
		return retrieveDoneMsg{tasks: tasks, err: err}
	}
}

func (model *Model) leaveInput() {
	model.mode = modeBrowse
	model.editingID = 0
	model.input.SetValue("")
	model.input.Blur()
}

func (model Model) selected() (types.Task, bool) {
	tasks := model.editor.Tasks()
	if model.cursor < 0 || model.cursor >= len(tasks) {
		return types.Task{}, false
	}
	return tasks[model.cursor], true
}

func (model *Model) clampCursor() {
	if n := model.editor.Len(); model.cursor >= n {
		model.cursor = n - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
}

// View implements tea.Model.
func (model Model) View() string {
	var b strings.Builder

	b.WriteString(model.theme.Title.Render("To-Do List"))
	b.WriteString("\n\n")

	if model.mode != modeBrowse {
		b.WriteString(model.input.View())
		b.WriteString("\n\n")
	}

	tasks := model.editor.Tasks()
	if len(tasks) == 0 {
		b.WriteString(model.theme.Muted.Render("No tasks. Press a to add one."))
		b.WriteString("\n")
	}
	for i, task := range tasks {
		b.WriteString(model.renderTask(i, task))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(model.statusLine())
	b.WriteString("\n")
	b.WriteString(model.helpLine())

	view := b.String()
	if model.editor.Gate().Pending() {
		return model.overlayModal(view)
	}
	return view
}

func (model Model) renderTask(index int, task types.Task) string {
	marker := "  "
	style := model.theme.Task
	if index == model.cursor && model.mode == modeBrowse {
		marker = model.theme.Selected.Render("› ")
	}
	check := "[ ]"
	if task.Completed {
		check = "[x]"
		style = model.theme.Completed
	}
	text := task.Text
	if model.width > taskPrefixWidth {
		text = ansi.Truncate(text, model.width-taskPrefixWidth, "…")
	}
	return marker + check + " " + style.Render(text)
}

func (model Model) statusLine() string {
	var parts []string
	if model.editor.Busy() {
		parts = append(parts, model.theme.Muted.Render("syncing…"))
	} else if model.notice.Kind == editor.NoticeSuccess {
		parts = append(parts, model.theme.Success.Render(model.notice.Text))
	} else if model.notice.Kind == editor.NoticeFailure {
		parts = append(parts, model.theme.Failure.Render(model.notice.Text))
	}
	if model.editor.Dirty() {
		parts = append(parts, model.theme.Muted.Render("● modified"))
	}
	return strings.Join(parts, "  ")
}

func (model Model) helpLine() string {
	bindings := model.keys.browseHelp()
	if model.mode != modeBrowse {
		bindings = model.keys.inputHelp()
	}
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, fmt.Sprintf("%s %s", help.Key, help.Desc))
	}
	return model.theme.Muted.Render(strings.Join(parts, " · "))
}

// overlayModal draws the confirmation gate. With a known window size the
// modal is centered over a blank screen; otherwise it is appended.
func (model Model) overlayModal(background string) string {
	gate := model.editor.Gate()
	confirm, decline := model.keys.Confirm.Help(), model.keys.Decline.Help()
	modal := model.theme.Modal.Render(fmt.Sprintf("%s\n\n%s %s · %s %s",
		gate.Message(), confirm.Key, confirm.Desc, decline.Key, decline.Desc))

	if model.width == 0 || model.height == 0 {
		return background + "\n\n" + modal
	}
	return lipgloss.Place(model.width, model.height, lipgloss.Center, lipgloss.Center, modal)
}
