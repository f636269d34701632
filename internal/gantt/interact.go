package gantt

import "github.com/sadopc/progress/internal/store"

// Selection identifies a selected task together with its owning issue and
// project. A selection is all-or-nothing: it only exists while all three
// resolve inside the visible hierarchy.
type Selection struct {
	ProjectID int64
	IssueID   int64
	TaskID    int64
}

// Interaction tracks hover and selection state for the timeline. Hovering a
// day and hovering a task are mutually exclusive. The state outlives grid
// rebuilds; Revalidate reconciles it against the visible hierarchy.
type Interaction struct {
	hoveredDay  int // -1 = none
	hoveredTask *store.Task
	rangeStart  int
	rangeEnd    int
	sel         *Selection
}

func NewInteraction() *Interaction {
	return &Interaction{hoveredDay: -1, rangeStart: -1, rangeEnd: -1}
}

// HoverDay sets the hovered day index (-1 clears). A real index clears any
// hovered task.
func (in *Interaction) HoverDay(index int) {
	in.hoveredDay = index
	if index >= 0 {
		in.hoveredTask = nil
		in.rangeStart, in.rangeEnd = -1, -1
	}
}

// HoverTask sets the hovered task (nil clears) and derives the day range it
// spans on the given timeline. A real task clears any hovered day.
func (in *Interaction) HoverTask(t *store.Task, tl *Timeline) {
	in.hoveredTask = t
	in.rangeStart, in.rangeEnd = -1, -1
	if t == nil {
		return
	}
	in.hoveredDay = -1
	if tl != nil {
		bar := Geometry(*t, tl)
		in.rangeStart, in.rangeEnd = bar.StartIndex, bar.EndIndex
	}
}

func (in *Interaction) HoveredDay() int { return in.hoveredDay }

func (in *Interaction) HoveredTask() *store.Task { return in.hoveredTask }

// DayHighlighted reports whether a day column should render highlighted:
// either it is the hovered day, or it falls inside the hovered task's span.
func (in *Interaction) DayHighlighted(index int) bool {
	if index == in.hoveredDay && index >= 0 {
		return true
	}
	return in.rangeStart >= 0 && index >= in.rangeStart && index <= in.rangeEnd
}

// TaskHighlighted reports whether a task's bar should render highlighted:
// either it is the hovered task, or the hovered day falls inside its span.
func (in *Interaction) TaskHighlighted(t store.Task, tl *Timeline) bool {
	if in.hoveredTask != nil && in.hoveredTask.ID == t.ID {
		return true
	}
	if in.hoveredDay < 0 || tl == nil {
		return false
	}
	bar := Geometry(t, tl)
	return bar.StartIndex >= 0 && in.hoveredDay >= bar.StartIndex && in.hoveredDay <= bar.EndIndex
}

// Select records the selection triple. It does not navigate; opening the
// task detail is a separate explicit action.
func (in *Interaction) Select(projectID, issueID, taskID int64) {
	in.sel = &Selection{ProjectID: projectID, IssueID: issueID, TaskID: taskID}
}

func (in *Interaction) Selected() (Selection, bool) {
	if in.sel == nil {
		return Selection{}, false
	}
	return *in.sel, true
}

func (in *Interaction) ClearSelection() {
	in.sel = nil
}

// Revalidate drops the selection (and hover state) when the selected task is
// no longer present in the visible groups. A selection whose task survives a
// re-filter is left untouched.
func (in *Interaction) Revalidate(visible []TaskGroup) {
	if in.sel == nil {
		return
	}
	for _, g := range visible {
		if g.Project.ID != in.sel.ProjectID || g.Issue.ID != in.sel.IssueID {
			continue
		}
		for _, t := range g.Tasks {
			if t.ID == in.sel.TaskID {
				return
			}
		}
	}
	in.sel = nil
	in.hoveredDay = -1
	in.hoveredTask = nil
	in.rangeStart, in.rangeEnd = -1, -1
}
