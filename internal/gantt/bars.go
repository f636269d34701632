package gantt

import (
	"time"

	"github.com/sadopc/progress/internal/store"
)

// Bar is a task's geometry against the current timeline. Percentages are in
// [0, 100]; StartIndex/EndIndex are inclusive day indices for highlighting.
type Bar struct {
	OffsetPercent float64
	WidthPercent  float64
	StartIndex    int
	EndIndex      int
}

// EffectiveBounds resolves the dates used for positioning a task. A task
// with a single date anchors a zero-duration bar at that date; a task with
// no dates has no bar (ok is false).
func EffectiveBounds(t store.Task) (start, end time.Time, ok bool) {
	switch {
	case t.StartDate != nil && t.EndDate != nil:
		return civil(*t.StartDate), civil(*t.EndDate), true
	case t.StartDate != nil:
		d := civil(*t.StartDate)
		return d, d, true
	case t.EndDate != nil:
		d := civil(*t.EndDate)
		return d, d, true
	}
	return time.Time{}, time.Time{}, false
}

// Geometry maps a task onto the timeline. Offsets clamp to the grid, widths
// clamp so no bar overflows the right edge, and every bar keeps a one-day
// minimum width. offset + width never exceeds 100%.
func Geometry(t store.Task, tl *Timeline) Bar {
	start, end, ok := EffectiveBounds(t)
	if !ok {
		return Bar{StartIndex: -1, EndIndex: -1}
	}

	total := tl.TotalDays
	offsetDays := DaysBetween(start, tl.Start)
	if offsetDays < 0 {
		offsetDays = 0
	}
	if offsetDays > total-1 {
		offsetDays = total - 1
	}

	duration := DaysBetween(end, start) + 1
	if duration < 1 {
		duration = 1
	}
	if duration > total-offsetDays {
		duration = total - offsetDays
	}
	if duration < 1 {
		duration = 1
	}

	return Bar{
		OffsetPercent: float64(offsetDays) / float64(total) * 100,
		WidthPercent:  float64(duration) / float64(total) * 100,
		StartIndex:    offsetDays,
		EndIndex:      offsetDays + duration - 1,
	}
}
