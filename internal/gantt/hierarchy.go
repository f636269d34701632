package gantt

import (
	"time"

	"github.com/sadopc/progress/internal/store"
)

// TaskGroup is one (project, issue, tasks) triple as loaded from the store.
type TaskGroup struct {
	Project store.Project
	Issue   store.Issue
	Tasks   []store.Task
}

// Hierarchy is the assembled project → issue → task tree.
type Hierarchy struct {
	Groups []TaskGroup
}

// Assemble builds the hierarchy from flat groups. Groups missing a project or
// issue identifier cannot be placed in the tree and are dropped; the count of
// dropped groups is returned so the caller can report it. Assembly never
// fails outright.
func Assemble(groups []TaskGroup) (*Hierarchy, int) {
	h := &Hierarchy{}
	dropped := 0
	for _, g := range groups {
		if g.Project.ID == 0 || g.Issue.ID == 0 {
			dropped++
			continue
		}
		h.Groups = append(h.Groups, g)
	}
	return h, dropped
}

// Visible returns the groups matching the project filter, or all groups when
// no filter is set. A group whose project has no identifier is visible only
// without a filter.
func (h *Hierarchy) Visible(selectedProjectID *int64) []TaskGroup {
	if selectedProjectID == nil {
		return h.Groups
	}
	var out []TaskGroup
	for _, g := range h.Groups {
		if g.Project.ID != 0 && g.Project.ID == *selectedProjectID {
			out = append(out, g)
		}
	}
	return out
}

// Projects returns the distinct projects of the hierarchy in group order.
func (h *Hierarchy) Projects() []store.Project {
	seen := make(map[int64]bool)
	var out []store.Project
	for _, g := range h.Groups {
		if seen[g.Project.ID] {
			continue
		}
		seen[g.Project.ID] = true
		out = append(out, g.Project)
	}
	return out
}

// RelevantDates collects every start and end date carried by the tasks of
// the given groups. The result feeds BuildTimeline.
func RelevantDates(groups []TaskGroup) []time.Time {
	var dates []time.Time
	for _, g := range groups {
		for _, t := range g.Tasks {
			if t.StartDate != nil {
				dates = append(dates, *t.StartDate)
			}
			if t.EndDate != nil {
				dates = append(dates, *t.EndDate)
			}
		}
	}
	return dates
}

// CountTasks reports the number of tasks across the given groups.
func CountTasks(groups []TaskGroup) int {
	n := 0
	for _, g := range groups {
		n += len(g.Tasks)
	}
	return n
}

// FocusDate picks the date the viewport should jump to after a filter
// change: the first task with a full start..end range wins with its start
// date; failing that, the first task with a single date wins with that date.
func FocusDate(groups []TaskGroup) *time.Time {
	var single *time.Time
	for _, g := range groups {
		for _, t := range g.Tasks {
			if t.StartDate != nil && t.EndDate != nil {
				d := *t.StartDate
				return &d
			}
			if single == nil {
				if t.StartDate != nil {
					d := *t.StartDate
					single = &d
				} else if t.EndDate != nil {
					d := *t.EndDate
					single = &d
				}
			}
		}
	}
	return single
}
