package notifyservice

import "time"

// SlotOfferedNotification уведомление "освободился слот" для записи листа ожидания
type SlotOfferedNotification struct {
	EventID        string    `json:"event_id"`
	WaitlistID     int64     `json:"waitlist_id"`
	BusinessID     int64     `json:"business_id"`
	ClientID       int64     `json:"client_id"`
	ServiceID      int64     `json:"service_id"`
	BranchID       int64     `json:"branch_id"`
	StaffID        int64     `json:"staff_id"`
	SlotStartTime  time.Time `json:"slot_start_time"`
	SlotEndTime    time.Time `json:"slot_end_time"`
	OfferExpiresAt time.Time `json:"offer_expires_at"`
}

// BookingCancelledNotification уведомление об отмене бронирования
type BookingCancelledNotification struct {
	EventID    string    `json:"event_id"`
	BookingID  int64     `json:"booking_id"`
	BusinessID int64     `json:"business_id"`
	ClientID   int64     `json:"client_id"`
	ServiceID  int64     `json:"service_id"`
	StartTime  time.Time `json:"start_time"`
	Reason     *string   `json:"reason,omitempty"`
}
