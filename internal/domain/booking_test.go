package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBooking_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusNoShow, true},
		{StatusPending, StatusInProgress, false},
		{StatusPending, StatusCompleted, false},

		{StatusConfirmed, StatusInProgress, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusCompleted, false},
		{StatusConfirmed, StatusPending, false},

		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusInProgress, StatusNoShow, false},

		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusNoShow, StatusConfirmed, false},

		// переход в тот же статус запрещен
		{StatusPending, StatusPending, false},
		{StatusConfirmed, StatusConfirmed, false},
		{StatusCancelled, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			b := &Booking{Status: tt.from}
			assert.Equal(t, tt.want, b.CanTransitionTo(tt.to))
		})
	}
}

func TestBooking_IsBlocking(t *testing.T) {
	blocking := []BookingStatus{StatusPending, StatusConfirmed, StatusInProgress}
	for _, s := range blocking {
		b := &Booking{Status: s}
		assert.True(t, b.IsBlocking(), "status %s must block the slot", s)
	}

	nonBlocking := []BookingStatus{StatusCompleted, StatusCancelled, StatusNoShow}
	for _, s := range nonBlocking {
		b := &Booking{Status: s}
		assert.False(t, b.IsBlocking(), "status %s must not block the slot", s)
	}
}

func TestBooking_Terminality(t *testing.T) {
	for _, s := range TerminalStatuses {
		b := &Booking{Status: s}
		assert.True(t, b.IsTerminal())
		for _, next := range []BookingStatus{StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow} {
			assert.False(t, b.CanTransitionTo(next), "terminal %s must not reach %s", s, next)
		}
	}
}

func TestWaitlistEntry_MatchesDay(t *testing.T) {
	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	slotOnDay := time.Date(2026, 4, 1, 14, 0, 0, 0, time.UTC)
	slotOtherDay := time.Date(2026, 4, 2, 14, 0, 0, 0, time.UTC)

	withDate := &WaitlistEntry{PreferredDate: &day}
	assert.True(t, withDate.MatchesDay(slotOnDay))
	assert.False(t, withDate.MatchesDay(slotOtherDay))

	anyDay := &WaitlistEntry{}
	assert.True(t, anyDay.MatchesDay(slotOnDay))
	assert.True(t, anyDay.MatchesDay(slotOtherDay))
}
