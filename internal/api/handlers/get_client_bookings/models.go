package get_client_bookings

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// BookingItem элемент списка бронирований
type BookingItem struct {
	ID              int64   `json:"id"`
	BusinessID      int64   `json:"businessId"`
	BranchID        int64   `json:"branchId"`
	ServiceID       int64   `json:"serviceId"`
	StaffID         int64   `json:"staffId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// BookingsResponse HTTP response model
type BookingsResponse struct {
	Bookings []BookingItem `json:"bookings"`
}

// FromDomain конвертирует список доменных моделей в HTTP response
func FromDomain(bookings []*domain.Booking) *BookingsResponse {
	items := make([]BookingItem, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, BookingItem{
			ID:              b.ID,
			BusinessID:      b.BusinessID,
			BranchID:        b.BranchID,
			ServiceID:       b.ServiceID,
			StaffID:         b.StaffID,
			Date:            b.StartTime.Format(domain.DateFormat),
			StartTime:       b.StartTime.Format(domain.TimeFormat),
			EndTime:         b.EndTime.Format(domain.TimeFormat),
			DurationMinutes: b.DurationMinutes,
			Status:          string(b.Status),
			ServiceName:     b.ServiceName,
			Notes:           b.ClientNotes,
			CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		})
	}
	return &BookingsResponse{Bookings: items}
}
