// Package callayout packs overlapping calendar events into non-overlapping
// visual columns. It is pure and deterministic: the same input always yields
// the same layout, so it can be called directly from presentation code.
package callayout

import (
	"sort"
	"time"
)

// Default geometry values used when Options fields are zero.
const (
	DefaultHourHeight     = 60.0
	DefaultMinEventHeight = 44.0
)

// Event is a time-ranged calendar item to be laid out. The interval is
// half-open: [Start, End). Events touching at a boundary do not overlap.
type Event struct {
	ID    string
	Start time.Time
	End   time.Time
}

// LayoutEvent is an Event with computed display geometry.
// Top and Height are in pixels relative to the grid origin (StartHour).
// Left and Width are fractions of the full column width in [0, 1].
type LayoutEvent struct {
	Event

	Top    float64
	Height float64
	Left   float64
	Width  float64

	Column  int // column index within the event's overlap cluster
	Columns int // total columns in the cluster
}

// Options controls the grid geometry.
type Options struct {
	StartHour      int     // hour of day at the top of the grid
	HourHeight     float64 // pixels per hour; DefaultHourHeight when zero
	MinEventHeight float64 // floor so short events stay tappable; DefaultMinEventHeight when zero
}

// Layout assigns columns and geometry to events.
//
// Events are sorted by start ascending (ties: longer event first), then
// greedily grouped into overlap clusters: an event joins the current cluster
// while it starts before the cluster's running maximum end. Within a cluster
// each event takes the first column whose previous occupant ends at or before
// the event's start; otherwise a new column opens. The number of columns in a
// cluster therefore equals the cluster's maximum simultaneous overlap.
func Layout(events []Event, opts Options) []LayoutEvent {
	if opts.HourHeight == 0 {
		opts.HourHeight = DefaultHourHeight
	}
	if opts.MinEventHeight == 0 {
		opts.MinEventHeight = DefaultMinEventHeight
	}

	if len(events) == 0 {
		return []LayoutEvent{}
	}

	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].Start.Before(sorted[j].Start)
		}
		return sorted[i].End.After(sorted[j].End)
	})

	result := make([]LayoutEvent, 0, len(sorted))

	cluster := make([]Event, 0, len(sorted))
	clusterMaxEnd := sorted[0].End

	flush := func() {
		result = append(result, layoutCluster(cluster, opts)...)
		cluster = cluster[:0]
	}

	for _, ev := range sorted {
		if len(cluster) > 0 && !ev.Start.Before(clusterMaxEnd) {
			flush()
			clusterMaxEnd = ev.End
		}
		cluster = append(cluster, ev)
		if ev.End.After(clusterMaxEnd) {
			clusterMaxEnd = ev.End
		}
	}
	flush()

	return result
}

// layoutCluster assigns columns within a single overlap cluster and computes
// geometry once the total column count is known.
func layoutCluster(cluster []Event, opts Options) []LayoutEvent {
	// columnEnds[i] holds the end time of the last event placed in column i.
	columnEnds := make([]time.Time, 0, 4)
	placed := make([]LayoutEvent, len(cluster))

	for i, ev := range cluster {
		col := -1
		for c, end := range columnEnds {
			if !end.After(ev.Start) {
				col = c
				break
			}
		}
		if col == -1 {
			col = len(columnEnds)
			columnEnds = append(columnEnds, ev.End)
		} else {
			columnEnds[col] = ev.End
		}
		placed[i] = LayoutEvent{Event: ev, Column: col}
	}

	numColumns := len(columnEnds)
	for i := range placed {
		placed[i].Columns = numColumns
		placed[i].Left = float64(placed[i].Column) / float64(numColumns)
		placed[i].Width = 1.0 / float64(numColumns)
		placed[i].Top = minutesSinceGridStart(placed[i].Start, opts.StartHour) * opts.HourHeight / 60.0

		height := placed[i].End.Sub(placed[i].Start).Minutes() * opts.HourHeight / 60.0
		if height < opts.MinEventHeight {
			height = opts.MinEventHeight
		}
		placed[i].Height = height
	}

	return placed
}

func minutesSinceGridStart(t time.Time, startHour int) float64 {
	return float64((t.Hour()-startHour)*60 + t.Minute())
}
