package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(hour, min int) time.Time {
	return time.Date(2026, 4, 1, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"identical intervals", ts(10, 0), ts(11, 0), ts(10, 0), ts(11, 0), true},
		{"partial overlap", ts(10, 0), ts(11, 0), ts(10, 30), ts(11, 30), true},
		{"contained interval", ts(10, 0), ts(12, 0), ts(10, 30), ts(11, 0), true},
		{"touching boundary is not overlap", ts(10, 0), ts(11, 0), ts(11, 0), ts(12, 0), false},
		{"touching boundary reversed", ts(11, 0), ts(12, 0), ts(10, 0), ts(11, 0), false},
		{"disjoint intervals", ts(8, 0), ts(9, 0), ts(10, 0), ts(11, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// симметричность
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestComputeEnd(t *testing.T) {
	start := ts(10, 0)
	assert.Equal(t, ts(11, 0), ComputeEnd(start, 60))
	assert.Equal(t, ts(10, 45), ComputeEnd(start, 45))
	assert.Equal(t, start, ComputeEnd(start, 0))
}

func TestDayBounds(t *testing.T) {
	start, end := DayBounds(ts(15, 30))
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC), end)
}

func TestSameDay(t *testing.T) {
	assert.True(t, SameDay(ts(0, 0), ts(23, 59)))
	assert.False(t, SameDay(ts(23, 59), ts(23, 59).Add(time.Minute)))
}
