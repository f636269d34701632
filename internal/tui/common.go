package tui

import (
	"strings"
	"time"

	"github.com/sadopc/progress/internal/gantt"
	"github.com/sadopc/progress/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimeline viewState = iota
	viewProjects
	viewBoard
	viewDashboard
)

var viewNames = []string{"Timeline", "Projects", "Board", "Dashboard"}

// --- Messages ---

type ganttDataMsg struct {
	groups []gantt.TaskGroup
	err    error
}

type projectsDataMsg struct {
	projects []store.Project
}

type issuesDataMsg struct {
	issues []store.Issue
}

type tasksDataMsg struct {
	tasks []store.Task
}

type notesDataMsg struct {
	notes []store.Note
}

type dashboardDataMsg struct {
	statuses []store.StatusCount
	projects []store.ProjectCount
	dueSoon  []store.DueTask
	err      error
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatDatePtr(d *time.Time) string {
	if d == nil {
		return "—"
	}
	return d.Format(store.DateLayout)
}

func statusLabel(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}

// loadGroups pulls the full project → issue → task forest from the store.
// Used by both the timeline and dashboard refresh commands.
func loadGroups(s *store.Store) ([]gantt.TaskGroup, error) {
	projects, err := s.ListProjects(false)
	if err != nil {
		return nil, err
	}
	var groups []gantt.TaskGroup
	for _, p := range projects {
		issues, err := s.ListIssues(p.ID, false)
		if err != nil {
			return nil, err
		}
		for _, i := range issues {
			tasks, err := s.ListTasks(i.ID, false)
			if err != nil {
				return nil, err
			}
			groups = append(groups, gantt.TaskGroup{Project: p, Issue: i, Tasks: tasks})
		}
	}
	return groups, nil
}
