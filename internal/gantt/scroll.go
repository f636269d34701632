package gantt

import "time"

// Metrics describes the horizontal geometry of the rendered grid: how many
// terminal cells one day column occupies and how wide the viewport is.
// Scroll offsets are measured in cells from the left edge of the grid.
type Metrics struct {
	DayWidth      int
	ViewportWidth int
	TotalDays     int
}

func (m Metrics) ContentWidth() int {
	return m.TotalDays * m.DayWidth
}

// MaxOffset is the largest valid scroll offset.
func (m Metrics) MaxOffset() int {
	max := m.ContentWidth() - m.ViewportWidth
	if max < 0 {
		return 0
	}
	return max
}

// Clamp bounds a scroll target to [0, MaxOffset].
func (m Metrics) Clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if max := m.MaxOffset(); offset > max {
		return max
	}
	return offset
}

// CenterOn returns the clamped offset that puts a day index at the middle of
// the viewport.
func (m Metrics) CenterOn(index int) int {
	return m.Clamp(index*m.DayWidth + m.DayWidth/2 - m.ViewportWidth/2)
}

// CenterIndex is the day index nearest the horizontal center of the viewport
// at a given offset.
func (m Metrics) CenterIndex(offset int) int {
	if m.DayWidth <= 0 {
		return 0
	}
	idx := (offset + m.ViewportWidth/2) / m.DayWidth
	if idx < 0 {
		idx = 0
	}
	if idx > m.TotalDays-1 {
		idx = m.TotalDays - 1
	}
	return idx
}

// Coordinator sequences scroll application against view readiness. A scroll
// target queued before the view can scroll (e.g. the offset restored from
// persisted state at startup) is held pending and consumed on mount; after
// that, every grid rebuild resolves to exactly one scroll decision:
//
//	pending target > first-time today jump > one-shot focus date >
//	empty-grid today jump > preserve current offset (re-clamped)
//
// A superseded pending target is overwritten, never queued twice.
type Coordinator struct {
	mounted    bool
	restored   bool // initial restoration (or today fallback) has run
	pending    int
	hasPending bool
	focus      *time.Time
	lastMonth  string
}

func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// QueueRestore records a persisted scroll offset to apply once the view is
// mounted. Safe to call in any state; the newest target wins.
func (c *Coordinator) QueueRestore(offset int) {
	c.pending = offset
	c.hasPending = true
}

// RequestFocus queues a one-shot jump to a date, applied on the next rebuild.
func (c *Coordinator) RequestFocus(d time.Time) {
	day := civil(d)
	c.focus = &day
}

func (c *Coordinator) Mounted() bool { return c.mounted }

// Mount marks the view as capable of scrolling and returns the initial
// offset: the pending restored target when one exists, otherwise today
// centered in the viewport. Either way initial restoration is complete and
// the today jump will not fire again.
func (c *Coordinator) Mount(m Metrics, tl *Timeline) int {
	c.mounted = true
	if c.hasPending {
		c.hasPending = false
		c.restored = true
		return m.Clamp(c.pending)
	}
	if !c.restored {
		c.restored = true
		return m.CenterOn(tl.TodayIndex())
	}
	return 0
}

// Rebuild resolves the scroll offset after the grid has been rebuilt. The
// caller passes the current offset and whether the visible task set is
// empty; the decision order is documented on Coordinator.
func (c *Coordinator) Rebuild(m Metrics, tl *Timeline, current int, visibleEmpty bool) int {
	if !c.mounted {
		return current
	}
	if c.hasPending {
		c.hasPending = false
		c.restored = true
		c.focus = nil
		return m.Clamp(c.pending)
	}
	if !c.restored {
		c.restored = true
		c.focus = nil
		return m.CenterOn(tl.TodayIndex())
	}
	if c.focus != nil {
		target := *c.focus
		c.focus = nil
		return m.CenterOn(tl.IndexOf(target))
	}
	if visibleEmpty {
		return m.CenterOn(tl.TodayIndex())
	}
	return m.Clamp(current)
}

// ActiveMonth derives the month label at the viewport center. It reports
// changed=false while the label is the same as last time, so the caller only
// repaints the tracker when the label actually moves.
func (c *Coordinator) ActiveMonth(tl *Timeline, m Metrics, offset int) (label string, changed bool) {
	idx := m.CenterIndex(offset)
	if idx >= len(tl.Days) {
		return c.lastMonth, false
	}
	label = tl.Days[idx].Date.Format("Jan 2006")
	if label == c.lastMonth {
		return label, false
	}
	c.lastMonth = label
	return label, true
}
