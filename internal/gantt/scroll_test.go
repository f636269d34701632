package gantt

import (
	"testing"
	"time"
)

func testMetrics(tl *Timeline) Metrics {
	return Metrics{DayWidth: 3, ViewportWidth: 120, TotalDays: tl.TotalDays}
}

// ============================================================
// Metrics
// ============================================================

func TestMetricsClamp(t *testing.T) {
	m := Metrics{DayWidth: 3, ViewportWidth: 120, TotalDays: 100}

	if got := m.Clamp(-50); got != 0 {
		t.Fatalf("Clamp(-50) = %d, want 0", got)
	}
	if got := m.Clamp(10); got != 10 {
		t.Fatalf("Clamp(10) = %d, want 10", got)
	}
	max := m.MaxOffset()
	if got := m.Clamp(max + 500); got != max {
		t.Fatalf("Clamp over = %d, want %d", got, max)
	}
}

func TestMetricsMaxOffsetNarrowContent(t *testing.T) {
	// Content narrower than viewport: no scrolling possible.
	m := Metrics{DayWidth: 3, ViewportWidth: 1000, TotalDays: 10}
	if got := m.MaxOffset(); got != 0 {
		t.Fatalf("MaxOffset = %d, want 0", got)
	}
}

func TestMetricsCenterRoundTrip(t *testing.T) {
	m := Metrics{DayWidth: 3, ViewportWidth: 120, TotalDays: 4000}
	idx := 2000
	off := m.CenterOn(idx)
	if got := m.CenterIndex(off); got != idx {
		t.Fatalf("CenterIndex(CenterOn(%d)) = %d", idx, got)
	}
}

// ============================================================
// Mount sequencing
// ============================================================

func TestMountAppliesPendingTarget(t *testing.T) {
	tl := BuildTimeline(nil, day(2024, time.June, 12), noHolidays, time.UTC)
	m := testMetrics(tl)

	c := NewCoordinator()
	c.QueueRestore(840)

	got := c.Mount(m, tl)
	if got != 840 {
		t.Fatalf("mount offset = %d, want restored 840", got)
	}

	// The today jump must not also fire afterwards: a rebuild preserves.
	after := c.Rebuild(m, tl, got, false)
	if after != 840 {
		t.Fatalf("offset after rebuild = %d, want preserved 840", after)
	}
}

func TestMountClampsPendingTarget(t *testing.T) {
	tl := BuildTimeline(nil, day(2024, time.June, 12), noHolidays, time.UTC)
	m := testMetrics(tl)

	c := NewCoordinator()
	c.QueueRestore(m.MaxOffset() + 9999)

	if got := c.Mount(m, tl); got != m.MaxOffset() {
		t.Fatalf("mount offset = %d, want clamped %d", got, m.MaxOffset())
	}
}

func TestMountWithoutPendingScrollsToToday(t *testing.T) {
	tl := BuildTimeline(nil, day(2024, time.June, 12), noHolidays, time.UTC)
	m := testMetrics(tl)

	c := NewCoordinator()
	got := c.Mount(m, tl)
	if got != m.CenterOn(tl.TodayIndex()) {
		t.Fatalf("mount offset = %d, want today-centered %d", got, m.CenterOn(tl.TodayIndex()))
	}
}

func TestQueueRestoreOverwrites(t *testing.T) {
	tl := BuildTimeline(nil, day(2024, time.June, 12), noHolidays, time.UTC)
	m := testMetrics(tl)

	c := NewCoordinator()
	c.QueueRestore(100)
	c.QueueRestore(200) // superseded target is overwritten, not queued

	if got := c.Mount(m, tl); got != 200 {
		t.Fatalf("mount offset = %d, want newest target 200", got)
	}
}

// ============================================================
// Rebuild decisions
// ============================================================

func TestRebuildBeforeMountLeavesOffset(t *testing.T) {
	tl := BuildTimeline(nil, day(2024, time.June, 12), noHolidays, time.UTC)
	m := testMetrics(tl)

	c := NewCoordinator()
	c.QueueRestore(300)
	// Grid rebuilt before the view can scroll: the pending target must not
	// be consumed yet.
	if got := c.Rebuild(m, tl, 77, false); got != 77 {
		t.Fatalf("offset = %d, want untouched 77", got)
	}
	if got := c.Mount(m, tl); got != 300 {
		t.Fatalf("mount offset = %d, pending target was lost", got)
	}
}

func TestRebuildFocusDateWinsOnce(t *testing.T) {
	tl := BuildTimeline(nil, day(2024, time.June, 12), noHolidays, time.UTC)
	m := testMetrics(tl)

	c := NewCoordinator()
	c.Mount(m, tl)

	target := day(2024, time.September, 2)
	c.RequestFocus(target)

	want := m.CenterOn(tl.IndexOf(target))
	if got := c.Rebuild(m, tl, 0, false); got != want {
		t.Fatalf("offset = %d, want focused %d", got, want)
	}

	// One-shot: the next rebuild preserves instead.
	if got := c.Rebuild(m, tl, want, false); got != want {
		t.Fatalf("second rebuild moved to %d, want preserved %d", got, want)
	}
}

func TestRebuildEmptyVisibleSetScrollsToToday(t *testing.T) {
	tl := BuildTimeline(nil, day(2024, time.June, 12), noHolidays, time.UTC)
	m := testMetrics(tl)

	c := NewCoordinator()
	c.Mount(m, tl)

	got := c.Rebuild(m, tl, 4242, true)
	if got != m.CenterOn(tl.TodayIndex()) {
		t.Fatalf("offset = %d, want today-centered", got)
	}
}

func TestRebuildPreservesAndReclamps(t *testing.T) {
	tl := BuildTimeline(nil, day(2024, time.June, 12), noHolidays, time.UTC)
	m := testMetrics(tl)

	c := NewCoordinator()
	c.Mount(m, tl)

	// Plain data refresh: keep the offset.
	if got := c.Rebuild(m, tl, 555, false); got != 555 {
		t.Fatalf("offset = %d, want preserved 555", got)
	}

	// A rebuild that shrinks the grid re-clamps the stale offset.
	small := Metrics{DayWidth: 3, ViewportWidth: 120, TotalDays: 50}
	if got := c.Rebuild(small, tl, 99999, false); got != small.MaxOffset() {
		t.Fatalf("offset = %d, want re-clamped %d", got, small.MaxOffset())
	}
}

func TestRebuildPendingBeatsFocus(t *testing.T) {
	tl := BuildTimeline(nil, day(2024, time.June, 12), noHolidays, time.UTC)
	m := testMetrics(tl)

	c := NewCoordinator()
	c.Mount(m, tl)
	c.RequestFocus(day(2024, time.September, 2))
	c.QueueRestore(123)

	if got := c.Rebuild(m, tl, 0, false); got != 123 {
		t.Fatalf("offset = %d, pending target should win", got)
	}
	// The focus request does not linger after being outranked.
	if got := c.Rebuild(m, tl, 123, false); got != 123 {
		t.Fatalf("offset = %d, want preserved", got)
	}
}

// ============================================================
// Month label tracking
// ============================================================

func TestActiveMonthReportsChangesOnly(t *testing.T) {
	tl := BuildTimeline(nil, day(2024, time.June, 12), noHolidays, time.UTC)
	m := testMetrics(tl)
	c := NewCoordinator()

	off := m.CenterOn(tl.IndexOf(day(2024, time.June, 12)))
	label, changed := c.ActiveMonth(tl, m, off)
	if !changed {
		t.Fatal("first derivation should report a change")
	}
	if label != "Jun 2024" {
		t.Fatalf("label = %q, want Jun 2024", label)
	}

	// Same viewport: no change.
	if _, changed := c.ActiveMonth(tl, m, off); changed {
		t.Fatal("unchanged label should not report a change")
	}

	// Scroll into the next month.
	off2 := m.CenterOn(tl.IndexOf(day(2024, time.July, 15)))
	label2, changed := c.ActiveMonth(tl, m, off2)
	if !changed || label2 != "Jul 2024" {
		t.Fatalf("label = %q changed = %v, want Jul 2024 change", label2, changed)
	}
}
