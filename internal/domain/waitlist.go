package domain

import "time"

// WaitlistStatus represents the status of a waitlist entry
type WaitlistStatus string

const (
	WaitlistStatusWaiting   WaitlistStatus = "waiting"
	WaitlistStatusOffered   WaitlistStatus = "offered"
	WaitlistStatusConfirmed WaitlistStatus = "confirmed"
	WaitlistStatusExpired   WaitlistStatus = "expired"
	WaitlistStatusCancelled WaitlistStatus = "cancelled"
)

// WaitlistEntry represents a client waiting for a freed slot of a service.
// Entries are ordered FIFO by CreatedAt within the same (BusinessID, ServiceID)
// bucket: first waiting, first offered.
type WaitlistEntry struct {
	ID         int64
	BusinessID int64
	ClientID   int64
	ServiceID  int64

	// PreferredDate ограничивает подбор освободившихся слотов конкретным
	// календарным днём; nil — подходит любой день
	PreferredDate *time.Time

	Status WaitlistStatus

	// Offer details, заполняются при переходе waiting -> offered
	OfferStaffID   *int64
	OfferBranchID  *int64
	OfferStartTime *time.Time
	OfferExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsWaiting returns true if the entry is still eligible for promotion
func (e *WaitlistEntry) IsWaiting() bool {
	return e.Status == WaitlistStatusWaiting
}

// IsTerminal returns true if the entry will never be offered a slot again
func (e *WaitlistEntry) IsTerminal() bool {
	return e.Status == WaitlistStatusConfirmed ||
		e.Status == WaitlistStatusExpired ||
		e.Status == WaitlistStatusCancelled
}

// MatchesDay returns true if the entry accepts a slot on the given day.
// Entries without a preferred date match any day.
func (e *WaitlistEntry) MatchesDay(day time.Time) bool {
	if e.PreferredDate == nil {
		return true
	}
	return SameDay(*e.PreferredDate, day)
}

// IsValidWaitlistStatus returns true if s is a known waitlist status
func IsValidWaitlistStatus(s WaitlistStatus) bool {
	switch s {
	case WaitlistStatusWaiting, WaitlistStatusOffered, WaitlistStatusConfirmed,
		WaitlistStatusExpired, WaitlistStatusCancelled:
		return true
	}
	return false
}
