// Package interval implements the arithmetic used for reporting: merging
// overlapping intervals, clipping them to a window and summing their
// duration in whole minutes. All functions are pure and leave their input
// untouched.
package interval

import (
	"sort"
	"time"
)

// Interval is a span of time. A nil End means the interval is still open.
type Interval struct {
	Start time.Time
	End   *time.Time
}

// Closed builds an interval with both bounds set.
func Closed(start, end time.Time) Interval {
	return Interval{Start: start, End: &end}
}

// Open builds an interval that has not ended yet.
func Open(start time.Time) Interval {
	return Interval{Start: start}
}

func (i Interval) IsOpen() bool {
	return i.End == nil
}

// Duration is zero for open intervals.
func (i Interval) Duration() time.Duration {
	if i.End == nil {
		return 0
	}
	return i.End.Sub(i.Start)
}

// Merge drops open intervals, sorts the rest by start and collapses every
// pair that overlaps or touches. The result is in start order and no two
// elements overlap or touch.
func Merge(intervals []Interval) []Interval {
	closed := make([]Interval, 0, len(intervals))
	for _, in := range intervals {
		if in.End == nil {
			continue
		}
		closed = append(closed, Closed(in.Start, *in.End))
	}
	if len(closed) == 0 {
		return []Interval{}
	}

	sort.SliceStable(closed, func(a, b int) bool {
		return closed[a].Start.Before(closed[b].Start)
	})

	merged := []Interval{closed[0]}
	for _, next := range closed[1:] {
		last := &merged[len(merged)-1]
		if !next.Start.After(*last.End) {
			if next.End.After(*last.End) {
				end := *next.End
				last.End = &end
			}
			continue
		}
		merged = append(merged, next)
	}
	return merged
}

// ClipToRange cuts every interval to [from, to]. An open interval is billed
// up to to. Segments that end up empty are dropped; output order follows
// input order.
func ClipToRange(intervals []Interval, from, to time.Time) []Interval {
	clipped := make([]Interval, 0, len(intervals))
	for _, in := range intervals {
		end := to
		if in.End != nil {
			end = *in.End
		}

		start := in.Start
		if from.After(start) {
			start = from
		}
		if to.Before(end) {
			end = to
		}

		if start.Before(end) {
			clipped = append(clipped, Closed(start, end))
		}
	}
	return clipped
}

// TotalMinutes merges the intervals and returns their combined duration in
// minutes, always rounded up: any fraction of a minute counts as a minute.
func TotalMinutes(intervals []Interval) int64 {
	var total time.Duration
	for _, m := range Merge(intervals) {
		total += m.End.Sub(m.Start)
	}
	if total <= 0 {
		return 0
	}
	return int64((total + time.Minute - 1) / time.Minute)
}
