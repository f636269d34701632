package gantt

import (
	"testing"
	"time"

	"github.com/sadopc/progress/internal/store"
)

func group(projectID, issueID int64, tasks ...store.Task) TaskGroup {
	return TaskGroup{
		Project: store.Project{ID: projectID, Name: "P"},
		Issue:   store.Issue{ID: issueID, ProjectID: projectID, Title: "I"},
		Tasks:   tasks,
	}
}

// ============================================================
// Assembly
// ============================================================

func TestAssembleDropsGroupsWithoutIDs(t *testing.T) {
	groups := []TaskGroup{
		group(1, 1),
		group(0, 2), // missing project id
		group(2, 0), // missing issue id
		group(2, 3),
	}

	h, dropped := Assemble(groups)
	if dropped != 2 {
		t.Fatalf("dropped = %d, want 2", dropped)
	}
	if len(h.Groups) != 2 {
		t.Fatalf("kept %d groups, want 2", len(h.Groups))
	}
}

func TestVisibleNoFilter(t *testing.T) {
	h, _ := Assemble([]TaskGroup{group(1, 1), group(2, 2)})
	if got := len(h.Visible(nil)); got != 2 {
		t.Fatalf("visible = %d, want 2", got)
	}
}

func TestVisibleWithFilter(t *testing.T) {
	h, _ := Assemble([]TaskGroup{group(1, 1), group(2, 2), group(2, 3)})
	id := int64(2)
	vis := h.Visible(&id)
	if len(vis) != 2 {
		t.Fatalf("visible = %d, want 2", len(vis))
	}
	for _, g := range vis {
		if g.Project.ID != 2 {
			t.Fatalf("unexpected project %d in filtered view", g.Project.ID)
		}
	}
}

func TestProjectsDeduplicates(t *testing.T) {
	h, _ := Assemble([]TaskGroup{group(1, 1), group(1, 2), group(2, 3)})
	if got := len(h.Projects()); got != 2 {
		t.Fatalf("projects = %d, want 2", got)
	}
}

// ============================================================
// Date extraction and focus
// ============================================================

func TestRelevantDates(t *testing.T) {
	g := group(1, 1,
		store.Task{ID: 1, StartDate: datePtr(2024, time.January, 1), EndDate: datePtr(2024, time.January, 5)},
		store.Task{ID: 2, EndDate: datePtr(2024, time.March, 1)},
		store.Task{ID: 3},
	)

	dates := RelevantDates([]TaskGroup{g})
	if len(dates) != 3 {
		t.Fatalf("dates = %d, want 3", len(dates))
	}
}

func TestFocusDatePrefersFullRange(t *testing.T) {
	g := group(1, 1,
		store.Task{ID: 1, EndDate: datePtr(2024, time.March, 1)},
		store.Task{ID: 2, StartDate: datePtr(2024, time.April, 2), EndDate: datePtr(2024, time.April, 9)},
	)

	fd := FocusDate([]TaskGroup{g})
	if fd == nil {
		t.Fatal("expected a focus date")
	}
	if !fd.Equal(day(2024, time.April, 2)) {
		t.Fatalf("focus = %s, want full-range task's start", fd)
	}
}

func TestFocusDateFallsBackToSingleDate(t *testing.T) {
	g := group(1, 1,
		store.Task{ID: 1},
		store.Task{ID: 2, EndDate: datePtr(2024, time.March, 1)},
		store.Task{ID: 3, StartDate: datePtr(2024, time.May, 1)},
	)

	fd := FocusDate([]TaskGroup{g})
	if fd == nil {
		t.Fatal("expected a focus date")
	}
	if !fd.Equal(day(2024, time.March, 1)) {
		t.Fatalf("focus = %s, want first single-dated task's date", fd)
	}
}

func TestFocusDateNone(t *testing.T) {
	if fd := FocusDate([]TaskGroup{group(1, 1, store.Task{ID: 1})}); fd != nil {
		t.Fatalf("expected nil focus, got %s", fd)
	}
}

func TestCountTasks(t *testing.T) {
	groups := []TaskGroup{
		group(1, 1, store.Task{ID: 1}, store.Task{ID: 2}),
		group(2, 2, store.Task{ID: 3}),
	}
	if got := CountTasks(groups); got != 3 {
		t.Fatalf("count = %d, want 3", got)
	}
}
