package callayout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestLayout_Empty(t *testing.T) {
	result := Layout(nil, Options{})
	assert.Empty(t, result)
}

func TestLayout_SingleEventFullWidth(t *testing.T) {
	events := []Event{{ID: "a", Start: at(10, 0), End: at(11, 0)}}

	result := Layout(events, Options{StartHour: 8, HourHeight: 60})

	require.Len(t, result, 1)
	assert.Equal(t, 0, result[0].Column)
	assert.Equal(t, 1, result[0].Columns)
	assert.Equal(t, 0.0, result[0].Left)
	assert.Equal(t, 1.0, result[0].Width)
	assert.Equal(t, 120.0, result[0].Top) // 2 hours after grid start
	assert.Equal(t, 60.0, result[0].Height)
}

func TestLayout_ThreeOverlappingGetThreeColumns(t *testing.T) {
	events := []Event{
		{ID: "a", Start: at(10, 0), End: at(11, 0)},
		{ID: "b", Start: at(10, 15), End: at(11, 15)},
		{ID: "c", Start: at(10, 30), End: at(11, 30)},
	}

	result := Layout(events, Options{StartHour: 8, HourHeight: 60})

	require.Len(t, result, 3)
	seenColumns := map[int]bool{}
	for _, ev := range result {
		assert.Equal(t, 3, ev.Columns)
		assert.InDelta(t, 1.0/3.0, ev.Width, 1e-9)
		seenColumns[ev.Column] = true
	}
	assert.Len(t, seenColumns, 3, "all three events must land in distinct columns")
}

func TestLayout_LaterEventStartsNewCluster(t *testing.T) {
	events := []Event{
		{ID: "a", Start: at(10, 0), End: at(11, 0)},
		{ID: "b", Start: at(10, 15), End: at(11, 15)},
		{ID: "c", Start: at(10, 30), End: at(11, 30)},
		// starts after all three end -> own cluster, full width
		{ID: "d", Start: at(12, 0), End: at(13, 0)},
	}

	result := Layout(events, Options{StartHour: 8, HourHeight: 60})

	require.Len(t, result, 4)
	var d LayoutEvent
	for _, ev := range result {
		if ev.ID == "d" {
			d = ev
		}
	}
	assert.Equal(t, 1, d.Columns)
	assert.Equal(t, 1.0, d.Width)
	assert.Equal(t, 0.0, d.Left)
}

func TestLayout_TouchingEventsShareColumn(t *testing.T) {
	// b starts exactly when a ends: no overlap, same column is reused
	events := []Event{
		{ID: "a", Start: at(10, 0), End: at(10, 30)},
		{ID: "x", Start: at(10, 0), End: at(11, 0)},
		{ID: "b", Start: at(10, 30), End: at(11, 0)},
	}

	result := Layout(events, Options{StartHour: 8, HourHeight: 60})

	require.Len(t, result, 3)
	byID := map[string]LayoutEvent{}
	for _, ev := range result {
		byID[ev.ID] = ev
	}
	assert.Equal(t, 2, byID["a"].Columns)
	assert.Equal(t, byID["a"].Column, byID["b"].Column, "b reuses a's column after it ends")
	assert.NotEqual(t, byID["x"].Column, byID["b"].Column)
}

func TestLayout_NoOverlapWithinSameColumn(t *testing.T) {
	events := []Event{
		{ID: "a", Start: at(9, 0), End: at(10, 0)},
		{ID: "b", Start: at(9, 10), End: at(9, 40)},
		{ID: "c", Start: at(9, 20), End: at(10, 30)},
		{ID: "d", Start: at(9, 45), End: at(10, 15)},
		{ID: "e", Start: at(10, 40), End: at(11, 0)},
	}

	result := Layout(events, Options{StartHour: 9, HourHeight: 60})
	require.Len(t, result, 5)

	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			a, b := result[i], result[j]
			if a.Column == b.Column && a.Columns == b.Columns {
				overlaps := a.Start.Before(b.End) && b.Start.Before(a.End)
				if overlaps && a.Columns > 1 {
					t.Fatalf("events %s and %s overlap in the same column %d", a.ID, b.ID, a.Column)
				}
			}
		}
	}
}

func TestLayout_MinHeightFloor(t *testing.T) {
	events := []Event{{ID: "short", Start: at(10, 0), End: at(10, 5)}}

	result := Layout(events, Options{StartHour: 8, HourHeight: 60})

	require.Len(t, result, 1)
	// 5 minutes at 60px/h would be 5px; floored to the default 44
	assert.Equal(t, DefaultMinEventHeight, result[0].Height)
}

func TestLayout_LongerEventFirstAmongSameStart(t *testing.T) {
	events := []Event{
		{ID: "short", Start: at(10, 0), End: at(10, 30)},
		{ID: "long", Start: at(10, 0), End: at(12, 0)},
	}

	result := Layout(events, Options{StartHour: 8, HourHeight: 60})

	require.Len(t, result, 2)
	assert.Equal(t, "long", result[0].ID)
	assert.Equal(t, 0, result[0].Column)
	assert.Equal(t, "short", result[1].ID)
	assert.Equal(t, 1, result[1].Column)
}
