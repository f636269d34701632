package gantt

import (
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/sadopc/progress/internal/store"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

// ============================================================
// Effective bounds
// ============================================================

func TestEffectiveBoundsBothDates(t *testing.T) {
	task := store.Task{StartDate: datePtr(2024, time.January, 10), EndDate: datePtr(2024, time.January, 12)}
	start, end, ok := EffectiveBounds(task)
	if !ok {
		t.Fatal("expected bounds")
	}
	if !start.Equal(day(2024, time.January, 10)) || !end.Equal(day(2024, time.January, 12)) {
		t.Fatalf("got [%s, %s]", start, end)
	}
}

func TestEffectiveBoundsSingleDate(t *testing.T) {
	onlyEnd := store.Task{EndDate: datePtr(2024, time.June, 1)}
	start, end, ok := EffectiveBounds(onlyEnd)
	if !ok {
		t.Fatal("expected bounds")
	}
	if !start.Equal(end) {
		t.Fatal("single date should anchor both bounds")
	}

	onlyStart := store.Task{StartDate: datePtr(2024, time.June, 1)}
	start, end, ok = EffectiveBounds(onlyStart)
	if !ok || !start.Equal(end) {
		t.Fatal("start-only task should anchor both bounds")
	}
}

func TestEffectiveBoundsNoDates(t *testing.T) {
	_, _, ok := EffectiveBounds(store.Task{})
	if ok {
		t.Fatal("dateless task should have no bounds")
	}
}

// ============================================================
// Geometry
// ============================================================

func TestGeometryKnownOffsets(t *testing.T) {
	today := day(2024, time.January, 10)
	tl := BuildTimeline(nil, today, noHolidays, time.UTC)
	// 2024-01-08 is a Monday two days before the task start.
	monday := tl.IndexOf(day(2024, time.January, 8))

	task := store.Task{StartDate: datePtr(2024, time.January, 10), EndDate: datePtr(2024, time.January, 12)}
	bar := Geometry(task, tl)

	if bar.StartIndex != monday+2 {
		t.Fatalf("StartIndex = %d, want %d", bar.StartIndex, monday+2)
	}
	if bar.EndIndex != monday+4 {
		t.Fatalf("EndIndex = %d, want %d (3-day duration)", bar.EndIndex, monday+4)
	}

	wantOffset := float64(monday+2) / float64(tl.TotalDays) * 100
	if bar.OffsetPercent != wantOffset {
		t.Fatalf("OffsetPercent = %f, want %f", bar.OffsetPercent, wantOffset)
	}
	wantWidth := 3.0 / float64(tl.TotalDays) * 100
	if bar.WidthPercent != wantWidth {
		t.Fatalf("WidthPercent = %f, want %f", bar.WidthPercent, wantWidth)
	}
}

func TestGeometrySingleDateMinimumWidth(t *testing.T) {
	tl := BuildTimeline(nil, day(2024, time.June, 12), noHolidays, time.UTC)
	task := store.Task{EndDate: datePtr(2024, time.June, 1)}

	bar := Geometry(task, tl)
	if bar.StartIndex != bar.EndIndex {
		t.Fatalf("single-date bar should span one day, got [%d, %d]", bar.StartIndex, bar.EndIndex)
	}
	minWidth := 1.0 / float64(tl.TotalDays) * 100
	if bar.WidthPercent < minWidth {
		t.Fatalf("WidthPercent = %f below one-day floor %f", bar.WidthPercent, minWidth)
	}
}

func TestGeometryDatelessTask(t *testing.T) {
	tl := BuildTimeline(nil, day(2024, time.June, 12), noHolidays, time.UTC)
	bar := Geometry(store.Task{}, tl)
	if bar.OffsetPercent != 0 || bar.WidthPercent != 0 {
		t.Fatalf("dateless task should have zero geometry, got %+v", bar)
	}
	if bar.StartIndex != -1 {
		t.Fatal("dateless task should have no day range")
	}
}

func TestGeometryClampsBeforeGrid(t *testing.T) {
	tl := BuildTimeline(nil, day(2024, time.June, 12), noHolidays, time.UTC)

	// Entirely before the grid: clamps to the left edge, stays visible.
	task := store.Task{
		StartDate: datePtr(1990, time.January, 1),
		EndDate:   datePtr(1990, time.January, 5),
	}
	bar := Geometry(task, tl)
	if bar.StartIndex != 0 {
		t.Fatalf("StartIndex = %d, want 0", bar.StartIndex)
	}
	if bar.WidthPercent <= 0 {
		t.Fatal("clamped bar should stay visible")
	}
}

func TestGeometryClampsAfterGrid(t *testing.T) {
	tl := BuildTimeline(nil, day(2024, time.June, 12), noHolidays, time.UTC)

	// Entirely after the grid: clamps to the right edge.
	start := tl.End.AddDate(0, 1, 0)
	end := tl.End.AddDate(0, 2, 0)
	task := store.Task{StartDate: &start, EndDate: &end}

	bar := Geometry(task, tl)
	if bar.StartIndex != tl.TotalDays-1 {
		t.Fatalf("StartIndex = %d, want %d", bar.StartIndex, tl.TotalDays-1)
	}
	if bar.EndIndex != tl.TotalDays-1 {
		t.Fatalf("EndIndex = %d, want %d", bar.EndIndex, tl.TotalDays-1)
	}
	if bar.OffsetPercent+bar.WidthPercent > 100 {
		t.Fatalf("offset+width = %f overflows", bar.OffsetPercent+bar.WidthPercent)
	}
}

func TestGeometryProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		today := day(2024, time.June, 12)
		tl := BuildTimeline(nil, today, noHolidays, time.UTC)

		startOff := rapid.IntRange(-3000, 3000).Draw(t, "startOff")
		durDays := rapid.IntRange(0, 3000).Draw(t, "durDays")
		start := today.AddDate(0, 0, startOff)
		end := start.AddDate(0, 0, durDays)
		task := store.Task{StartDate: &start, EndDate: &end}

		bar := Geometry(task, tl)

		if bar.OffsetPercent < 0 || bar.WidthPercent <= 0 {
			t.Fatalf("degenerate geometry: %+v", bar)
		}
		if bar.OffsetPercent+bar.WidthPercent > 100 {
			t.Fatalf("offset+width = %f > 100", bar.OffsetPercent+bar.WidthPercent)
		}
		if bar.WidthPercent < 1.0/float64(tl.TotalDays)*100 {
			t.Fatalf("width %f below one-day floor", bar.WidthPercent)
		}
		if bar.StartIndex < 0 || bar.EndIndex > tl.TotalDays-1 || bar.StartIndex > bar.EndIndex {
			t.Fatalf("bad day range [%d, %d]", bar.StartIndex, bar.EndIndex)
		}
	})
}
