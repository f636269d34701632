package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/progress/internal/gantt"
	"github.com/sadopc/progress/internal/store"
)

// browse level within the projects view.
type browseLevel int

const (
	levelProjects browseLevel = iota
	levelIssues
	levelTasks
)

type projectsModel struct {
	store  *store.Store
	width  int
	height int

	level       browseLevel
	projects    []store.Project
	issues      []store.Issue
	tasks       []store.Task
	cursor      int
	issueCursor int
	taskCursor  int

	formActive bool
	form       *huh.Form
	formType   string // "project", "edit_project", "issue", "edit_issue", "task", "edit_task"

	// Form field pointers (survive value copies)
	formName       *string
	formColor      *string
	formStatus     *string
	formImportance *string
	formStart      *string
	formEnd        *string

	editingID int64
}

func newProjectsModel(s *store.Store) projectsModel {
	name, color, status, importance, start, end := "", "", store.StatusNotStarted, store.ImportanceMedium, "", ""
	return projectsModel{
		store:          s,
		formName:       &name,
		formColor:      &color,
		formStatus:     &status,
		formImportance: &importance,
		formStart:      &start,
		formEnd:        &end,
	}
}

func (p *projectsModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p projectsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		projects, _ := p.store.ListProjects(false)
		return projectsDataMsg{projects: projects}
	}
}

func (p projectsModel) refreshIssues() tea.Cmd {
	if p.cursor >= len(p.projects) {
		return nil
	}
	pid := p.projects[p.cursor].ID
	return func() tea.Msg {
		issues, _ := p.store.ListIssues(pid, false)
		return issuesDataMsg{issues: issues}
	}
}

func (p projectsModel) refreshTasks() tea.Cmd {
	if p.issueCursor >= len(p.issues) {
		return nil
	}
	iid := p.issues[p.issueCursor].ID
	return func() tea.Msg {
		tasks, _ := p.store.ListTasks(iid, false)
		return tasksDataMsg{tasks: tasks}
	}
}

func (p projectsModel) update(msg tea.Msg) (projectsModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case projectsDataMsg:
		p.projects = msg.projects
		if p.cursor >= len(p.projects) {
			p.cursor = clampCursor(len(p.projects))
		}
		return p, nil

	case issuesDataMsg:
		p.issues = msg.issues
		if p.issueCursor >= len(p.issues) {
			p.issueCursor = clampCursor(len(p.issues))
		}
		return p, nil

	case tasksDataMsg:
		p.tasks = msg.tasks
		if p.taskCursor >= len(p.tasks) {
			p.taskCursor = clampCursor(len(p.tasks))
		}
		return p, nil

	case tea.KeyMsg:
		switch p.level {
		case levelIssues:
			return p.updateIssueList(msg)
		case levelTasks:
			return p.updateTaskList(msg)
		}
		return p.updateProjectList(msg)
	}
	return p, nil
}

func clampCursor(n int) int {
	if n == 0 {
		return 0
	}
	return n - 1
}

func (p projectsModel) updateProjectList(msg tea.KeyMsg) (projectsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, keys.Down):
		if p.cursor < len(p.projects)-1 {
			p.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(p.projects) > 0 {
			p.level = levelIssues
			p.issueCursor = 0
			return p, p.refreshIssues()
		}
	case key.Matches(msg, keys.New):
		return p.showProjectForm(false)
	case key.Matches(msg, keys.Edit):
		if len(p.projects) > 0 {
			return p.showProjectForm(true)
		}
	case key.Matches(msg, keys.Delete):
		if len(p.projects) > 0 {
			p.store.ArchiveProject(p.projects[p.cursor].ID)
			return p, p.refresh()
		}
	}
	return p, nil
}

func (p projectsModel) updateIssueList(msg tea.KeyMsg) (projectsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		p.level = levelProjects
		return p, nil
	case key.Matches(msg, keys.Up):
		if p.issueCursor > 0 {
			p.issueCursor--
		}
	case key.Matches(msg, keys.Down):
		if p.issueCursor < len(p.issues)-1 {
			p.issueCursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(p.issues) > 0 {
			p.level = levelTasks
			p.taskCursor = 0
			return p, p.refreshTasks()
		}
	case key.Matches(msg, keys.New):
		return p.showIssueForm(false)
	case key.Matches(msg, keys.Edit):
		if len(p.issues) > 0 {
			return p.showIssueForm(true)
		}
	case key.Matches(msg, keys.Delete):
		if len(p.issues) > 0 {
			p.store.ArchiveIssue(p.issues[p.issueCursor].ID)
			return p, p.refreshIssues()
		}
	}
	return p, nil
}

func (p projectsModel) updateTaskList(msg tea.KeyMsg) (projectsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		p.level = levelIssues
		return p, nil
	case key.Matches(msg, keys.Up):
		if p.taskCursor > 0 {
			p.taskCursor--
		}
	case key.Matches(msg, keys.Down):
		if p.taskCursor < len(p.tasks)-1 {
			p.taskCursor++
		}
	case key.Matches(msg, keys.New):
		return p.showTaskForm(false)
	case key.Matches(msg, keys.Edit):
		if len(p.tasks) > 0 {
			return p.showTaskForm(true)
		}
	case key.Matches(msg, keys.Delete):
		if len(p.tasks) > 0 {
			p.store.ArchiveTask(p.tasks[p.taskCursor].ID)
			return p, p.refreshTasks()
		}
	}
	return p, nil
}

func colorOptions() []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("auto", "")}
	for _, c := range gantt.Palette {
		opts = append(opts, huh.NewOption(fmt.Sprintf("● %s", c), c))
	}
	return opts
}

func statusOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(store.Statuses))
	for i, s := range store.Statuses {
		opts[i] = huh.NewOption(statusLabel(s), s)
	}
	return opts
}

func importanceOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(store.Importances))
	for i, s := range store.Importances {
		opts[i] = huh.NewOption(s, s)
	}
	return opts
}

// validateDate accepts blank or a YYYY-MM-DD day.
func validateDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(store.DateLayout, s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func (p projectsModel) showProjectForm(edit bool) (projectsModel, tea.Cmd) {
	*p.formName = ""
	*p.formColor = ""
	p.formType = "project"
	if edit {
		proj := p.projects[p.cursor]
		*p.formName = proj.Name
		*p.formColor = proj.Color
		p.formType = "edit_project"
		p.editingID = proj.ID
	}

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Project Name").Value(p.formName),
			huh.NewSelect[string]().Title("Color").Options(colorOptions()...).Value(p.formColor),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p projectsModel) showIssueForm(edit bool) (projectsModel, tea.Cmd) {
	*p.formName = ""
	*p.formColor = ""
	*p.formStatus = store.StatusNotStarted
	p.formType = "issue"
	if edit {
		issue := p.issues[p.issueCursor]
		*p.formName = issue.Title
		*p.formColor = issue.Color
		*p.formStatus = issue.Status
		p.formType = "edit_issue"
		p.editingID = issue.ID
	}

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Issue Title").Value(p.formName),
			huh.NewSelect[string]().Title("Color").Options(colorOptions()...).Value(p.formColor),
			huh.NewSelect[string]().Title("Status").Options(statusOptions()...).Value(p.formStatus),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p projectsModel) showTaskForm(edit bool) (projectsModel, tea.Cmd) {
	*p.formName = ""
	*p.formStart = ""
	*p.formEnd = ""
	*p.formStatus = store.StatusNotStarted
	*p.formImportance = store.ImportanceMedium
	*p.formColor = ""
	p.formType = "task"
	if edit {
		task := p.tasks[p.taskCursor]
		*p.formName = task.Name
		if task.StartDate != nil {
			*p.formStart = task.StartDate.Format(store.DateLayout)
		}
		if task.EndDate != nil {
			*p.formEnd = task.EndDate.Format(store.DateLayout)
		}
		*p.formStatus = task.Status
		*p.formImportance = task.Importance
		*p.formColor = task.Color
		p.formType = "edit_task"
		p.editingID = task.ID
	}

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task Name").Value(p.formName),
			huh.NewInput().Title("Start (YYYY-MM-DD, blank for none)").Value(p.formStart).Validate(validateDate),
			huh.NewInput().Title("End (YYYY-MM-DD, blank for none)").Value(p.formEnd).Validate(validateDate),
			huh.NewSelect[string]().Title("Status").Options(statusOptions()...).Value(p.formStatus),
			huh.NewSelect[string]().Title("Importance").Options(importanceOptions()...).Value(p.formImportance),
			huh.NewSelect[string]().Title("Color").Options(colorOptions()...).Value(p.formColor),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func parseFormDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	d, err := time.Parse(store.DateLayout, s)
	if err != nil {
		return nil
	}
	return &d
}

func (p projectsModel) updateForm(msg tea.Msg) (projectsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		switch p.formType {
		case "project":
			if *p.formName != "" {
				p.store.CreateProject(*p.formName, *p.formColor)
			}
			return p, p.refresh()
		case "edit_project":
			if *p.formName != "" {
				p.store.UpdateProject(p.editingID, *p.formName, *p.formColor)
			}
			return p, p.refresh()
		case "issue":
			if *p.formName != "" && p.cursor < len(p.projects) {
				p.store.CreateIssue(p.projects[p.cursor].ID, *p.formName, *p.formColor, *p.formStatus)
			}
			return p, p.refreshIssues()
		case "edit_issue":
			if *p.formName != "" {
				p.store.UpdateIssue(p.editingID, *p.formName, *p.formColor, *p.formStatus)
			}
			return p, p.refreshIssues()
		case "task":
			if *p.formName != "" && p.issueCursor < len(p.issues) {
				p.store.CreateTask(p.issues[p.issueCursor].ID, *p.formName,
					parseFormDate(*p.formStart), parseFormDate(*p.formEnd),
					*p.formStatus, *p.formImportance, *p.formColor)
			}
			return p, p.refreshTasks()
		case "edit_task":
			if *p.formName != "" {
				p.store.UpdateTask(p.editingID, *p.formName,
					parseFormDate(*p.formStart), parseFormDate(*p.formEnd),
					*p.formStatus, *p.formImportance, *p.formColor)
			}
			return p, p.refreshTasks()
		}
	}

	return p, cmd
}

func (p projectsModel) view() string {
	if p.formActive && p.form != nil {
		title := map[string]string{
			"project":      "New Project",
			"edit_project": "Edit Project",
			"issue":        "New Issue",
			"edit_issue":   "Edit Issue",
			"task":         "New Task",
			"edit_task":    "Edit Task",
		}[p.formType]
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", p.form.View())
		return panelStyle.Width(p.width - 4).Render(content)
	}

	switch p.level {
	case levelIssues:
		return p.renderIssueList()
	case levelTasks:
		return p.renderTaskList()
	}
	return p.renderProjectList()
}

func (p projectsModel) renderProjectList() string {
	w := p.width - 4
	title := titleStyle.Render("Projects")

	if len(p.projects) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No projects yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title, "")

	for i, proj := range p.projects {
		dot := colorDot(proj.Color, gantt.FallbackColor(proj.ID, 0, proj.Name))
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s", cursor, dot, proj.Name)))
	}

	rows = append(rows, "", mutedStyle.Render("  n: new  e: edit  d: archive  enter: issues"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (p projectsModel) renderIssueList() string {
	w := p.width - 4
	proj := p.projects[p.cursor]
	title := titleStyle.Render(fmt.Sprintf("%s — Issues", proj.Name))

	if len(p.issues) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No issues. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title, "")

	for i, issue := range p.issues {
		dot := colorDot(issue.Color, gantt.FallbackColor(issue.ProjectID, issue.ID, issue.Title))
		cursor := "  "
		style := normalItemStyle
		if i == p.issueCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %-32s", cursor, dot, issue.Title))+
			mutedStyle.Render(statusLabel(issue.Status)))
	}

	rows = append(rows, "", mutedStyle.Render("  n: new  e: edit  d: archive  enter: tasks  esc: back"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (p projectsModel) renderTaskList() string {
	w := p.width - 4
	issue := p.issues[p.issueCursor]
	title := titleStyle.Render(fmt.Sprintf("%s — Tasks", issue.Title))

	if len(p.tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-28s %-12s %-12s %-10s %s", "Name", "Start", "End", "Status", "Importance"))
	rows = append(rows, header)

	for i, task := range p.tasks {
		cursor := "  "
		style := normalItemStyle
		if i == p.taskCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-28s %-12s %-12s %-10s %s",
			cursor, task.Name, formatDatePtr(task.StartDate), formatDatePtr(task.EndDate),
			statusLabel(task.Status), task.Importance)))
	}

	rows = append(rows, "", mutedStyle.Render("  n: new  e: edit  d: archive  esc: back"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func colorDot(color, fallback string) string {
	if color == "" {
		color = fallback
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}
