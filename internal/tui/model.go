// Package tui implements the Bubble Tea terminal UI for taskdue.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/taskdue/internal/core/notify"
	"github.com/colonyops/taskdue/internal/core/styles"
	"github.com/colonyops/taskdue/internal/core/task"
	"github.com/colonyops/taskdue/internal/core/validate"
	"github.com/colonyops/taskdue/internal/tracker"
	"github.com/colonyops/taskdue/internal/tui/components"
)

type viewMode int

const (
	modeList viewMode = iota
	modeForm
	modeConfirm
)

// sortCycle is the order the sort key rotates through.
var sortCycle = []task.SortKey{task.SortPriority, task.SortDueDate, task.SortNone}

type (
	tasksMsg       []task.Task
	fileChangedMsg struct{}
	// mutationMsg reports the outcome of a store operation.
	mutationMsg struct {
		status string
		err    error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	ctx context.Context
	app *tracker.App

	keys keyMap
	list list.Model
	help help.Model

	sortKey       task.SortKey
	showCompleted bool

	mode      viewMode
	form      *huh.Form
	formInput *validate.Input
	editing   task.Task // zero ID when adding

	confirm   components.ConfirmModal
	confirmID int

	toasts  *toastStack
	inbox   *NotificationInbox
	changes <-chan struct{}

	status        string
	width, height int
}

// New creates the root model. changes may be nil when the task file is not watched.
func New(ctx context.Context, app *tracker.App, inbox *NotificationInbox, changes <-chan struct{}) Model {
	l := list.New(nil, taskDelegate{now: time.Now}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("task", "tasks")
	l.DisableQuitKeybindings()

	return Model{
		ctx:           ctx,
		app:           app,
		keys:          defaultKeyMap(),
		list:          l,
		help:          help.New(),
		sortKey:       app.Config.DefaultSort,
		showCompleted: app.Config.TUI.ShowsCompleted(),
		toasts:        &toastStack{},
		inbox:         inbox,
		changes:       changes,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadTasks(), m.inbox.Wait(), m.waitForChange())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()
		if m.form != nil {
			m.form = m.form.WithWidth(min(msg.Width-4, 72))
		}
		return m, nil

	case tasksMsg:
		m.setTasks(msg)
		return m, nil

	case mutationMsg:
		if msg.err != nil {
			m.pushToast(notify.Notification{Level: notify.LevelError, Message: msg.err.Error()})
			return m, m.startToastTicker()
		}
		m.status = msg.status
		return m, m.loadTasks()

	case fileChangedMsg:
		return m, tea.Batch(m.reload(), m.waitForChange())

	case drainNotificationsMsg:
		for _, n := range m.inbox.Drain() {
			m.pushToast(n)
		}
		return m, tea.Batch(m.startToastTicker(), m.inbox.Wait())

	case toastTickMsg:
		m.toasts.tick(toastTickInterval)
		m.resize()
		if m.toasts.empty() {
			m.toasts.ticking = false
			return m, nil
		}
		return m, scheduleToastTick()
	}

	switch m.mode {
	case modeForm:
		return m.updateForm(msg)
	case modeConfirm:
		return m.updateConfirm(msg)
	default:
		return m.updateList(msg)
	}
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	case key.Matches(keyMsg, m.keys.Dismiss) && !m.toasts.empty():
		m.toasts.dismiss()
		m.resize()
		return m, nil
	case key.Matches(keyMsg, m.keys.Add):
		return m, m.openForm(task.Task{})
	case key.Matches(keyMsg, m.keys.Sort):
		m.sortKey = nextSortKey(m.sortKey)
		m.status = "Sorted by " + sortLabel(m.sortKey)
		return m, m.loadTasks()
	case key.Matches(keyMsg, m.keys.Completed):
		m.showCompleted = !m.showCompleted
		return m, m.loadTasks()
	case key.Matches(keyMsg, m.keys.Remind):
		return m, m.scanNow()
	}

	if selected, ok := m.selected(); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Edit):
			return m, m.openForm(selected)
		case key.Matches(keyMsg, m.keys.Toggle):
			return m, m.toggle(selected.ID)
		case key.Matches(keyMsg, m.keys.Delete):
			m.confirm = components.NewConfirmModal(fmt.Sprintf("Delete task %d %q?", selected.ID, selected.Title))
			m.confirmID = selected.ID
			m.mode = modeConfirm
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.closeForm()
		m.status = "Cancelled"
		return m, nil
	}

	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		in, editing := *m.formInput, m.editing
		m.closeForm()
		return m, m.submit(editing, in)
	case huh.StateAborted:
		m.closeForm()
		m.status = "Cancelled"
		return m, nil
	}

	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.confirm, _ = m.confirm.Update(msg)

	switch {
	case m.confirm.Confirmed():
		m.mode = modeList
		return m, m.delete(m.confirmID)
	case m.confirm.Cancelled():
		m.mode = modeList
		m.status = "Delete cancelled"
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var body string
	switch m.mode {
	case modeForm:
		body = styles.ModalStyle.Render(m.form.View())
	case modeConfirm:
		body = m.confirm.View()
	default:
		body = m.list.View()
	}

	parts := []string{m.header(), body}
	if m.status != "" {
		parts = append(parts, styles.StatusBarStyle.Render(m.status))
	}
	if !m.toasts.empty() {
		parts = append(parts, m.toasts.view(m.width))
	}
	if m.mode == modeList {
		parts = append(parts, m.help.View(m.keys))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) header() string {
	title := styles.TitleStyle.Render("taskdue")

	done := "shown"
	if !m.showCompleted {
		done = "hidden"
	}
	info := styles.MutedStyle.Render(fmt.Sprintf("  sort: %s  •  completed: %s", sortLabel(m.sortKey), done))

	return title + info
}

// resize fits the list between the header and the footer lines.
func (m *Model) resize() {
	if m.width == 0 {
		return
	}

	footer := 2 // header + status
	footer += lipgloss.Height(m.help.View(m.keys))
	if !m.toasts.empty() {
		footer += lipgloss.Height(m.toasts.view(m.width))
	}

	m.list.SetSize(m.width, max(m.height-footer, 3))
}

func (m *Model) setTasks(tasks []task.Task) {
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed && !m.showCompleted {
			continue
		}
		items = append(items, taskItem{t})
	}

	idx := m.list.Index()
	m.list.SetItems(items)
	if idx >= len(items) {
		idx = max(len(items)-1, 0)
	}
	m.list.Select(idx)
}

func (m Model) selected() (task.Task, bool) {
	it, ok := m.list.SelectedItem().(taskItem)
	if !ok {
		return task.Task{}, false
	}
	return it.Task, true
}

func (m *Model) pushToast(n notify.Notification) {
	m.toasts.push(n)
	m.resize()
}

func (m *Model) startToastTicker() tea.Cmd {
	if m.toasts.ticking || m.toasts.empty() {
		return nil
	}
	m.toasts.ticking = true
	return scheduleToastTick()
}

func (m *Model) openForm(t task.Task) tea.Cmd {
	in := &validate.Input{}
	heading := "New task"
	if t.ID != 0 {
		in.Title = t.Title
		in.Priority = string(t.Priority)
		in.DueDate = string(t.DueDate)
		heading = fmt.Sprintf("Edit task %d", t.ID)
	}

	m.formInput = in
	m.editing = t
	m.form = components.NewTaskForm(heading, in)
	if m.width > 0 {
		m.form = m.form.WithWidth(min(m.width-4, 72))
	}
	m.mode = modeForm
	return m.form.Init()
}

func (m *Model) closeForm() {
	m.form = nil
	m.formInput = nil
	m.editing = task.Task{}
	m.mode = modeList
}

func (m Model) loadTasks() tea.Cmd {
	tasks, sortKey := m.app.Tasks, m.sortKey
	return func() tea.Msg {
		return tasksMsg(tasks.List(sortKey))
	}
}

func (m Model) reload() tea.Cmd {
	ctx, tasks, sortKey := m.ctx, m.app.Tasks, m.sortKey
	return func() tea.Msg {
		if !tasks.Reload(ctx) {
			return nil
		}
		return tasksMsg(tasks.List(sortKey))
	}
}

func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	changes := m.changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

func (m Model) submit(editing task.Task, in validate.Input) tea.Cmd {
	ctx, tasks := m.ctx, m.app.Tasks
	return func() tea.Msg {
		if editing.ID == 0 {
			t, err := tasks.Add(ctx, in)
			if err != nil {
				return mutationMsg{err: err}
			}
			return mutationMsg{status: fmt.Sprintf("Added task %d", t.ID)}
		}

		patch, err := in.PatchFor(editing)
		if err != nil {
			return mutationMsg{err: err}
		}
		if patch.IsEmpty() {
			return mutationMsg{status: "Nothing changed"}
		}
		if _, err := tasks.Update(ctx, editing.ID, patch); err != nil {
			return mutationMsg{err: err}
		}
		return mutationMsg{status: fmt.Sprintf("Updated task %d", editing.ID)}
	}
}

func (m Model) toggle(id int) tea.Cmd {
	ctx, tasks := m.ctx, m.app.Tasks
	return func() tea.Msg {
		t, err := tasks.Toggle(ctx, id)
		if err != nil {
			return mutationMsg{err: err}
		}
		return mutationMsg{status: fmt.Sprintf("Task %d marked %s", t.ID, strings.ToLower(t.Status()))}
	}
}

func (m Model) delete(id int) tea.Cmd {
	ctx, tasks := m.ctx, m.app.Tasks
	return func() tea.Msg {
		if err := tasks.Delete(ctx, id); err != nil {
			return mutationMsg{err: err}
		}
		return mutationMsg{status: fmt.Sprintf("Deleted task %d", id)}
	}
}

// scanNow runs one reminder scan. Due tasks arrive as toasts through the
// notification inbox.
func (m Model) scanNow() tea.Cmd {
	ctx, loop := m.ctx, m.app.Reminders
	return func() tea.Msg {
		n := len(loop.Scan(ctx))
		if n == 0 {
			return mutationMsg{status: "No tasks due soon"}
		}
		return mutationMsg{status: fmt.Sprintf("%d task(s) due soon", n)}
	}
}

func nextSortKey(k task.SortKey) task.SortKey {
	for i, s := range sortCycle {
		if s == k {
			return sortCycle[(i+1)%len(sortCycle)]
		}
	}
	return sortCycle[0]
}

func sortLabel(k task.SortKey) string {
	switch k {
	case task.SortPriority:
		return "priority"
	case task.SortDueDate:
		return "due date"
	default:
		return "added"
	}
}
