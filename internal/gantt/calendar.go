// Package gantt implements the timeline engine behind the Gantt view:
// calendar grid construction, hierarchy grouping, bar geometry, hover and
// selection state, and the viewport scroll coordinator.
//
// All date math runs on normalized calendar days: year/month/day are taken in
// a single configured timezone, then pinned to midnight UTC so day arithmetic
// is exact regardless of DST or host locale.
package gantt

import (
	"sort"
	"strconv"
	"time"
)

// HolidayFunc reports whether a calendar day is a holiday. Implementations
// must be pure; the grid builder calls it once per day.
type HolidayFunc func(time.Time) bool

// windowYears is the half-width of the default grid window around today.
const windowYears = 5

// Day is one calendar day's metadata in the timeline grid.
type Day struct {
	Date         time.Time
	Weekend      bool
	Holiday      bool
	Today        bool
	Label        string // day of month, e.g. "7"
	WeekdayLabel string // two-letter weekday, e.g. "Mo"
}

// MonthSegment is a run of consecutive days sharing a calendar month. The
// segments of a timeline partition its days exactly.
type MonthSegment struct {
	Label string // e.g. "Jan 2026"
	Span  int
}

// Timeline is the full day grid. It is rebuilt wholesale whenever the set of
// relevant dates changes; a built Timeline is never mutated.
type Timeline struct {
	Start     time.Time
	End       time.Time
	Days      []Day
	Months    []MonthSegment
	TotalDays int
}

var weekdayLabels = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// Normalize drops time-of-day: the civil day of the instant t in loc, pinned
// to midnight UTC so that day differences are exact multiples of 24h.
func Normalize(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// civil pins an already date-only value to midnight UTC without rebucketing
// it through another zone. Stored task dates carry no instant semantics, so
// their own year/month/day is authoritative.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole days from b to a (positive when a is later).
// Both must be normalized days.
func DaysBetween(a, b time.Time) int {
	return int(a.Sub(b).Hours() / 24)
}

// startOfWeek snaps a normalized day back to its Monday.
func startOfWeek(d time.Time) time.Time {
	back := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -back)
}

// endOfWeek snaps a normalized day forward to its Sunday.
func endOfWeek(d time.Time) time.Time {
	fwd := (7 - int(d.Weekday())) % 7
	return d.AddDate(0, 0, fwd)
}

// BuildTimeline produces the day grid covering the default window (today ± 5
// years) widened to include every input date, with both bounds snapped
// outward to full Monday..Sunday weeks. The input date set may be empty.
// Building twice from the same inputs yields identical timelines.
func BuildTimeline(dates []time.Time, today time.Time, isHoliday HolidayFunc, loc *time.Location) *Timeline {
	if loc == nil {
		loc = time.UTC
	}
	todayDay := Normalize(today, loc)

	start := startOfWeek(todayDay.AddDate(-windowYears, 0, 0))
	end := endOfWeek(todayDay.AddDate(windowYears, 0, 0))

	if len(dates) > 0 {
		norm := make([]time.Time, len(dates))
		for i, d := range dates {
			norm[i] = civil(d)
		}
		sort.Slice(norm, func(i, j int) bool { return norm[i].Before(norm[j]) })
		if lo := startOfWeek(norm[0]); lo.Before(start) {
			start = lo
		}
		if hi := endOfWeek(norm[len(norm)-1]); hi.After(end) {
			end = hi
		}
	}

	tl := &Timeline{Start: start, End: end}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		day := Day{
			Date:         d,
			Weekend:      wd == time.Saturday || wd == time.Sunday,
			Today:        d.Equal(todayDay),
			Label:        strconv.Itoa(d.Day()),
			WeekdayLabel: weekdayLabels[wd],
		}
		if isHoliday != nil {
			day.Holiday = isHoliday(d)
		}
		tl.Days = append(tl.Days, day)
	}

	// Run-length encode (year, month) over the day sequence.
	for i := 0; i < len(tl.Days); {
		y, m, _ := tl.Days[i].Date.Date()
		j := i
		for j < len(tl.Days) {
			yy, mm, _ := tl.Days[j].Date.Date()
			if yy != y || mm != m {
				break
			}
			j++
		}
		tl.Months = append(tl.Months, MonthSegment{
			Label: tl.Days[i].Date.Format("Jan 2006"),
			Span:  j - i,
		})
		i = j
	}

	// Never zero, so percentage math stays defined.
	tl.TotalDays = len(tl.Days)
	if tl.TotalDays < 1 {
		tl.TotalDays = 1
	}
	return tl
}

// IndexOf returns the day index of a normalized date, clamped to the grid.
func (tl *Timeline) IndexOf(date time.Time) int {
	idx := DaysBetween(date, tl.Start)
	if idx < 0 {
		return 0
	}
	if idx > tl.TotalDays-1 {
		return tl.TotalDays - 1
	}
	return idx
}

// TodayIndex returns the index of the day flagged as today, or 0 when the
// grid has none.
func (tl *Timeline) TodayIndex() int {
	for i, d := range tl.Days {
		if d.Today {
			return i
		}
	}
	return 0
}
