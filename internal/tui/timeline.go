package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/progress/internal/gantt"
	"github.com/sadopc/progress/internal/store"
)

const (
	dayWidth   = 3  // cells per day column
	labelWidth = 28 // left column with project/issue/task names
)

// taskRow is one renderable row of the timeline: a task with its context.
type taskRow struct {
	group gantt.TaskGroup
	task  store.Task
}

type timelineModel struct {
	store   *store.Store
	loc     *time.Location
	holiday gantt.HolidayFunc
	now     func() time.Time

	width  int
	height int

	hier     *gantt.Hierarchy
	visible  []gantt.TaskGroup
	timeline *gantt.Timeline
	interact *gantt.Interaction
	coord    *gantt.Coordinator

	selectedProject *int64
	scrollLeft      int
	activeMonth     string
	loadErr         bool

	filterPicking bool
	filterCursor  int

	dayHover   bool
	taskCursor int

	detailOpen bool
	detail     taskRow
}

func newTimelineModel(s *store.Store, loc *time.Location, holiday gantt.HolidayFunc) timelineModel {
	m := timelineModel{
		store:    s,
		loc:      loc,
		holiday:  holiday,
		now:      time.Now,
		interact: gantt.NewInteraction(),
		coord:    gantt.NewCoordinator(),
	}

	// Persisted viewport state is read at construction; the scroll offset is
	// queued as a pending target until the view can actually scroll.
	if st, ok := gantt.LoadViewState(s); ok {
		m.selectedProject = st.SelectedProjectID
		m.coord.QueueRestore(st.ScrollLeft)
	}

	// The grid exists before any data arrives: default window around today.
	m.timeline = gantt.BuildTimeline(nil, m.now(), m.holiday, m.loc)
	return m
}

func (m *timelineModel) setSize(w, h int) {
	m.width = w
	m.height = h
	if !m.coord.Mounted() && w > 0 {
		m.scrollLeft = m.coord.Mount(m.metrics(), m.timeline)
		m.updateMonth()
	}
}

func (m timelineModel) metrics() gantt.Metrics {
	vw := m.width - labelWidth - 6
	if vw < dayWidth {
		vw = dayWidth
	}
	return gantt.Metrics{DayWidth: dayWidth, ViewportWidth: vw, TotalDays: m.timeline.TotalDays}
}

func (m timelineModel) refresh() tea.Cmd {
	return func() tea.Msg {
		groups, err := loadGroups(m.store)
		return ganttDataMsg{groups: groups, err: err}
	}
}

// rebuild recomputes the visible groups and the day grid, then lets the
// scroll coordinator resolve the viewport offset. filterChanged additionally
// queues the one-shot focus jump to the first dated task.
func (m *timelineModel) rebuild(filterChanged bool) {
	if m.hier != nil {
		m.visible = m.hier.Visible(m.selectedProject)
	} else {
		m.visible = nil
	}
	m.interact.Revalidate(m.visible)

	if filterChanged {
		if fd := gantt.FocusDate(m.visible); fd != nil {
			m.coord.RequestFocus(*fd)
		}
	}

	m.timeline = gantt.BuildTimeline(gantt.RelevantDates(m.visible), m.now(), m.holiday, m.loc)

	if rows := len(m.rows()); m.taskCursor >= rows {
		m.taskCursor = rows - 1
	}
	if m.taskCursor < 0 {
		m.taskCursor = 0
	}

	m.scrollLeft = m.coord.Rebuild(m.metrics(), m.timeline, m.scrollLeft, gantt.CountTasks(m.visible) == 0)
	m.updateMonth()
}

func (m *timelineModel) updateMonth() {
	if label, changed := m.coord.ActiveMonth(m.timeline, m.metrics(), m.scrollLeft); changed {
		m.activeMonth = label
	}
}

// rows flattens the visible hierarchy into renderable task rows.
func (m timelineModel) rows() []taskRow {
	var out []taskRow
	for _, g := range m.visible {
		for _, t := range g.Tasks {
			out = append(out, taskRow{group: g, task: t})
		}
	}
	return out
}

// persistCmd saves the viewport state. Persistence is best-effort: a failure
// becomes a status line, never an interruption.
func (m timelineModel) persistCmd() tea.Cmd {
	st := gantt.ViewState{SelectedProjectID: m.selectedProject, ScrollLeft: m.scrollLeft}
	s := m.store
	return func() tea.Msg {
		if err := gantt.SaveViewState(s, st); err != nil {
			return statusMsg{text: fmt.Sprintf("Could not save view state: %v", err), isError: true}
		}
		return nil
	}
}

func (m *timelineModel) scrollTo(offset int) tea.Cmd {
	m.scrollLeft = m.metrics().Clamp(offset)
	m.updateMonth()
	return m.persistCmd()
}

func (m *timelineModel) scrollBy(cells int) tea.Cmd {
	return m.scrollTo(m.scrollLeft + cells)
}

func (m timelineModel) update(msg tea.Msg) (timelineModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ganttDataMsg:
		if msg.err != nil {
			// Keep the last-known-good grid and hierarchy.
			m.loadErr = true
			return m, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Load failed: %v", msg.err), isError: true}
			}
		}
		m.loadErr = false
		hier, dropped := gantt.Assemble(msg.groups)
		m.hier = hier
		m.rebuild(false)
		if dropped > 0 {
			return m, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Skipped %d groups with missing identifiers", dropped), isError: true}
			}
		}
		return m, nil

	case tea.KeyMsg:
		if m.filterPicking {
			return m.updateFilterPicker(msg)
		}
		if m.detailOpen {
			if key.Matches(msg, keys.Back) {
				m.detailOpen = false
			}
			return m, nil
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m timelineModel) updateKeys(msg tea.KeyMsg) (timelineModel, tea.Cmd) {
	rows := m.rows()
	met := m.metrics()

	switch {
	case key.Matches(msg, keys.Left):
		if m.dayHover {
			return m.moveDayHover(-1)
		}
		return m, m.scrollBy(-dayWidth)

	case key.Matches(msg, keys.Right):
		if m.dayHover {
			return m.moveDayHover(1)
		}
		return m, m.scrollBy(dayWidth)

	case key.Matches(msg, keys.WeekBack):
		return m, m.scrollBy(-7 * dayWidth)

	case key.Matches(msg, keys.WeekFwd):
		return m, m.scrollBy(7 * dayWidth)

	case key.Matches(msg, keys.MonthBack):
		return m.jumpMonths(-1)

	case key.Matches(msg, keys.MonthFwd):
		return m.jumpMonths(1)

	case key.Matches(msg, keys.Today):
		return m, m.scrollTo(met.CenterOn(m.timeline.TodayIndex()))

	case key.Matches(msg, keys.Up):
		if len(rows) == 0 {
			return m, nil
		}
		if m.taskCursor > 0 {
			m.taskCursor--
		}
		m.dayHover = false
		t := rows[m.taskCursor].task
		m.interact.HoverTask(&t, m.timeline)
		return m, nil

	case key.Matches(msg, keys.Down):
		if len(rows) == 0 {
			return m, nil
		}
		if m.taskCursor < len(rows)-1 {
			m.taskCursor++
		}
		m.dayHover = false
		t := rows[m.taskCursor].task
		m.interact.HoverTask(&t, m.timeline)
		return m, nil

	case key.Matches(msg, keys.DayHover):
		m.dayHover = !m.dayHover
		if m.dayHover {
			m.interact.HoverDay(met.CenterIndex(m.scrollLeft))
		} else {
			m.interact.HoverDay(-1)
		}
		return m, nil

	case key.Matches(msg, keys.Filter):
		m.filterPicking = true
		m.filterCursor = 0
		return m, nil

	case key.Matches(msg, keys.Enter):
		if len(rows) == 0 || m.taskCursor >= len(rows) {
			return m, nil
		}
		row := rows[m.taskCursor]
		m.interact.Select(row.group.Project.ID, row.group.Issue.ID, row.task.ID)
		// Navigation to the detail uses the selection just recorded.
		m.detail = row
		m.detailOpen = true
		return m, nil
	}
	return m, nil
}

// moveDayHover shifts the hovered day and keeps it inside the viewport.
func (m timelineModel) moveDayHover(delta int) (timelineModel, tea.Cmd) {
	idx := m.interact.HoveredDay()
	if idx < 0 {
		idx = m.metrics().CenterIndex(m.scrollLeft)
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx > m.timeline.TotalDays-1 {
		idx = m.timeline.TotalDays - 1
	}
	m.interact.HoverDay(idx)

	first := m.scrollLeft / dayWidth
	visDays := m.metrics().ViewportWidth / dayWidth
	if idx < first {
		return m, m.scrollTo(idx * dayWidth)
	}
	if idx >= first+visDays {
		return m, m.scrollTo((idx - visDays + 1) * dayWidth)
	}
	return m, nil
}

func (m timelineModel) jumpMonths(n int) (timelineModel, tea.Cmd) {
	met := m.metrics()
	center := m.timeline.Days[met.CenterIndex(m.scrollLeft)].Date
	target := center.AddDate(0, n, 0)
	return m, m.scrollTo(met.CenterOn(m.timeline.IndexOf(target)))
}

func (m timelineModel) updateFilterPicker(msg tea.KeyMsg) (timelineModel, tea.Cmd) {
	var projects []store.Project
	if m.hier != nil {
		projects = m.hier.Projects()
	}
	// Option 0 is "All projects".
	switch {
	case key.Matches(msg, keys.Up):
		if m.filterCursor > 0 {
			m.filterCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.filterCursor < len(projects) {
			m.filterCursor++
		}
	case key.Matches(msg, keys.Enter):
		m.filterPicking = false
		if m.filterCursor == 0 {
			m.selectedProject = nil
		} else {
			id := projects[m.filterCursor-1].ID
			m.selectedProject = &id
		}
		m.rebuild(true)
		return m, m.persistCmd()
	case key.Matches(msg, keys.Back):
		m.filterPicking = false
	}
	return m, nil
}

// --- Rendering ---

func (m timelineModel) view() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.detailOpen {
		return m.renderDetail()
	}
	if m.filterPicking {
		return m.renderFilterPicker()
	}

	var rows []string
	rows = append(rows, m.renderTitle())
	rows = append(rows, "")
	rows = append(rows, m.renderMonthRow())
	rows = append(rows, m.renderWeekdayRow())
	rows = append(rows, m.renderDayRow())
	rows = append(rows, m.renderTaskRows()...)

	return panelStyle.Width(m.width - 2).Render(strings.Join(rows, "\n"))
}

func (m timelineModel) renderTitle() string {
	filter := "all projects"
	if m.selectedProject != nil && m.hier != nil {
		for _, p := range m.hier.Projects() {
			if p.ID == *m.selectedProject {
				filter = p.Name
				break
			}
		}
	}
	title := titleStyle.Render("Timeline") + "  " + highlightStyle.Render(m.activeMonth) +
		"  " + mutedStyle.Render("["+filter+"]")
	if m.loadErr {
		title += "  " + errorStyle.Render("(load error, showing last data)")
	}
	return title
}

// visibleRange returns the first visible day index and the count of visible
// day columns at the current scroll offset.
func (m timelineModel) visibleRange() (int, int) {
	first := m.scrollLeft / dayWidth
	count := m.metrics().ViewportWidth / dayWidth
	if first > m.timeline.TotalDays-1 {
		first = m.timeline.TotalDays - 1
	}
	if first < 0 {
		first = 0
	}
	if first+count > len(m.timeline.Days) {
		count = len(m.timeline.Days) - first
	}
	return first, count
}

func (m timelineModel) renderMonthRow() string {
	first, count := m.visibleRange()
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", labelWidth))

	for i := first; i < first+count; {
		label := m.timeline.Days[i].Date.Format("Jan 2006")
		run := 0
		for i+run < first+count && m.timeline.Days[i+run].Date.Format("Jan 2006") == label {
			run++
		}
		w := run * dayWidth
		if len(label) > w {
			label = label[:w]
		}
		b.WriteString(highlightStyle.Render(label + strings.Repeat(" ", w-len(label))))
		i += run
	}
	return b.String()
}

func (m timelineModel) dayStyle(idx int) lipgloss.Style {
	d := m.timeline.Days[idx]
	switch {
	case m.interact.DayHighlighted(idx):
		return gridHoverStyle
	case d.Today:
		return gridTodayStyle
	case d.Holiday:
		return gridHolidayStyle
	case d.Weekend:
		return gridWeekendStyle
	}
	return gridDayStyle
}

func (m timelineModel) renderWeekdayRow() string {
	first, count := m.visibleRange()
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", labelWidth))
	for i := first; i < first+count; i++ {
		cell := fmt.Sprintf("%-*s", dayWidth, m.timeline.Days[i].WeekdayLabel)
		b.WriteString(m.dayStyle(i).Render(cell))
	}
	return b.String()
}

func (m timelineModel) renderDayRow() string {
	first, count := m.visibleRange()
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", labelWidth))
	for i := first; i < first+count; i++ {
		cell := fmt.Sprintf("%-*s", dayWidth, m.timeline.Days[i].Label)
		b.WriteString(m.dayStyle(i).Render(cell))
	}
	return b.String()
}

func (m timelineModel) renderTaskRows() []string {
	rows := m.rows()
	if len(rows) == 0 {
		return []string{"", mutedStyle.Render("  No tasks in view. Press f to change the project filter.")}
	}

	maxRows := m.height - 10
	if maxRows < 1 {
		maxRows = 1
	}
	start := 0
	if m.taskCursor >= maxRows {
		start = m.taskCursor - maxRows + 1
	}
	end := start + maxRows
	if end > len(rows) {
		end = len(rows)
	}

	first, count := m.visibleRange()
	sel, hasSel := m.interact.Selected()

	var out []string
	for ri := start; ri < end; ri++ {
		row := rows[ri]
		bar := gantt.Geometry(row.task, m.timeline)
		highlighted := m.interact.TaskHighlighted(row.task, m.timeline)

		label := fmt.Sprintf("%s/%s/%s", row.group.Project.Name, row.group.Issue.Title, row.task.Name)
		if len(label) > labelWidth-3 {
			label = label[:labelWidth-3]
		}
		cursor := "  "
		style := normalItemStyle
		if ri == m.taskCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		if hasSel && sel.TaskID == row.task.ID {
			style = style.Underline(true)
		}
		if highlighted {
			style = style.Bold(true)
		}
		left := style.Render(fmt.Sprintf("%s%-*s", cursor, labelWidth-2, label))

		barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(gantt.TaskColor(row.task, row.group)))
		if highlighted {
			barStyle = barStyle.Bold(true).Background(colorSubtle)
		}

		var cells strings.Builder
		for i := first; i < first+count; i++ {
			switch {
			case bar.StartIndex >= 0 && i >= bar.StartIndex && i <= bar.EndIndex:
				cells.WriteString(barStyle.Render(strings.Repeat("█", dayWidth)))
			case m.interact.DayHighlighted(i):
				cells.WriteString(gridHoverStyle.Render(strings.Repeat(" ", dayWidth)))
			case m.timeline.Days[i].Weekend:
				cells.WriteString(gridWeekendStyle.Render(" · "))
			default:
				cells.WriteString("   ")
			}
		}
		out = append(out, left+cells.String())
	}
	return out
}

func (m timelineModel) renderFilterPicker() string {
	var projects []store.Project
	if m.hier != nil {
		projects = m.hier.Projects()
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Filter by project"))
	rows = append(rows, "")

	options := []string{"All projects"}
	for _, p := range projects {
		options = append(options, p.Name)
	}
	for i, o := range options {
		cursor := "  "
		style := normalItemStyle
		if i == m.filterCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+o))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: apply  esc: cancel"))

	return activePanelStyle.Width(m.width - 4).Render(strings.Join(rows, "\n"))
}

func (m timelineModel) renderDetail() string {
	t := m.detail.task
	importance := statusLabel(t.Importance)
	var impStyle lipgloss.Style
	switch t.Importance {
	case store.ImportanceCritical:
		impStyle = errorStyle
	case store.ImportanceHigh:
		impStyle = warningStyle
	default:
		impStyle = mutedStyle
	}

	var rows []string
	rows = append(rows, titleStyle.Render(t.Name))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("Project    ")+normalItemStyle.Render(m.detail.group.Project.Name))
	rows = append(rows, mutedStyle.Render("Issue      ")+normalItemStyle.Render(m.detail.group.Issue.Title))
	rows = append(rows, mutedStyle.Render("Start      ")+normalItemStyle.Render(formatDatePtr(t.StartDate)))
	rows = append(rows, mutedStyle.Render("End        ")+normalItemStyle.Render(formatDatePtr(t.EndDate)))
	rows = append(rows, mutedStyle.Render("Status     ")+normalItemStyle.Render(statusLabel(t.Status)))
	rows = append(rows, mutedStyle.Render("Importance ")+impStyle.Render(importance))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  esc: back"))

	return activePanelStyle.Width(m.width - 4).Render(strings.Join(rows, "\n"))
}
