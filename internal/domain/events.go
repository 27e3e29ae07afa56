package domain

import (
	"time"

	"github.com/google/uuid"
)

// SlotFreedEvent доменное событие: отмена бронирования освободила слот.
// Эмитится синхронным переходом в cancelled и обрабатывается каскадом
// продвижения листа ожидания отдельно от запроса отмены.
type SlotFreedEvent struct {
	EventID    string
	BookingID  int64
	BusinessID int64
	BranchID   int64
	StaffID    int64
	ServiceID  int64
	StartTime  time.Time
	EndTime    time.Time
	FreedAt    time.Time
}

// NewSlotFreedEvent создает событие освобождения слота из отмененного бронирования
func NewSlotFreedEvent(b *Booking, freedAt time.Time) SlotFreedEvent {
	return SlotFreedEvent{
		EventID:    uuid.NewString(),
		BookingID:  b.ID,
		BusinessID: b.BusinessID,
		BranchID:   b.BranchID,
		StaffID:    b.StaffID,
		ServiceID:  b.ServiceID,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		FreedAt:    freedAt,
	}
}

// SlotOfferedEvent доменное событие: запись листа ожидания получила предложение слота.
// Передается внешнему сервису уведомлений fire-and-forget.
type SlotOfferedEvent struct {
	EventID        string
	WaitlistID     int64
	BusinessID     int64
	ClientID       int64
	ServiceID      int64
	BranchID       int64
	StaffID        int64
	SlotStartTime  time.Time
	SlotEndTime    time.Time
	OfferExpiresAt time.Time
}
