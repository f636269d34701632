package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/progress/internal/store"
)

// dueWindowDays is how far ahead the due-soon list looks.
const dueWindowDays = 14

type dashboardModel struct {
	store  *store.Store
	width  int
	height int

	statuses []store.StatusCount
	projects []store.ProjectCount
	dueSoon  []store.DueTask
	loadErr  bool

	chart barchart.Model
}

func newDashboardModel(s *store.Store) dashboardModel {
	return dashboardModel{
		store: s,
		chart: barchart.New(40, 10),
	}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dashboardModel) refresh() tea.Cmd {
	return func() tea.Msg {
		statuses, err := d.store.CountTasksByStatus()
		if err != nil {
			return dashboardDataMsg{err: err}
		}
		projects, err := d.store.CountTasksPerProject()
		if err != nil {
			return dashboardDataMsg{err: err}
		}
		today := time.Now().UTC().Truncate(24 * time.Hour)
		dueSoon, err := d.store.DueSoon(today, today.AddDate(0, 0, dueWindowDays), 8)
		if err != nil {
			return dashboardDataMsg{err: err}
		}
		return dashboardDataMsg{statuses: statuses, projects: projects, dueSoon: dueSoon}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		if msg.err != nil {
			d.loadErr = true
			return d, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Dashboard load failed: %v", msg.err), isError: true}
			}
		}
		d.loadErr = false
		d.statuses = msg.statuses
		d.projects = msg.projects
		d.dueSoon = msg.dueSoon
		d.buildChart()
		return d, nil
	}
	return d, nil
}

var statusChartColors = map[string]string{
	store.StatusNotStarted: "#666666",
	store.StatusInProgress: "#7AA2F7",
	store.StatusCompleted:  "#2ECC71",
	store.StatusOnHold:     "#F39C12",
	store.StatusDiscarded:  "#E74C3C",
}

func (d *dashboardModel) buildChart() {
	chartWidth := d.width/2 - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if d.height > 30 {
		chartHeight = 14
	}

	d.chart = barchart.New(chartWidth, chartHeight)
	for _, sc := range d.statuses {
		color := statusChartColors[sc.Status]
		if color == "" {
			color = "#666666"
		}
		d.chart.Push(barchart.BarData{
			Label: statusLabel(sc.Status),
			Values: []barchart.BarValue{
				{Name: sc.Status, Value: float64(sc.Count), Style: lipgloss.NewStyle().Foreground(lipgloss.Color(color))},
			},
		})
	}
	d.chart.Draw()
}

func (d dashboardModel) view() string {
	w := d.width - 4
	title := titleStyle.Render("Dashboard")
	if d.loadErr {
		title += "  " + errorStyle.Render("(load error)")
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Tasks by status"),
		"",
		d.chart.View(),
	)

	var dueRows []string
	dueRows = append(dueRows, titleStyle.Render(fmt.Sprintf("Due within %d days", dueWindowDays)), "")
	if len(d.dueSoon) == 0 {
		dueRows = append(dueRows, mutedStyle.Render("Nothing due. Enjoy the quiet."))
	}
	for _, due := range d.dueSoon {
		style := normalItemStyle
		if due.Task.Importance == store.ImportanceCritical {
			style = errorStyle
		} else if due.Task.Importance == store.ImportanceHigh {
			style = warningStyle
		}
		dueRows = append(dueRows, fmt.Sprintf("%s %s",
			mutedStyle.Render(formatDatePtr(due.Task.EndDate)),
			style.Render(fmt.Sprintf("%s/%s/%s", due.ProjectName, due.IssueTitle, due.Task.Name))))
	}

	dueRows = append(dueRows, "", titleStyle.Render("Open tasks per project"), "")
	if len(d.projects) == 0 {
		dueRows = append(dueRows, mutedStyle.Render("No projects yet."))
	}
	for _, pc := range d.projects {
		dot := colorDot(pc.Color, "#666666")
		dueRows = append(dueRows, fmt.Sprintf("%s %-24s %s", dot, pc.ProjectName,
			highlightStyle.Render(fmt.Sprintf("%d", pc.Count))))
	}
	right := strings.Join(dueRows, "\n")

	gap := lipgloss.NewStyle().Width(4).Render("")
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, gap, right)
	content := lipgloss.JoinVertical(lipgloss.Left, title, "", body)
	return panelStyle.Width(w).Render(content)
}
