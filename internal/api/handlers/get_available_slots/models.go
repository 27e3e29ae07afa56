package get_available_slots

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// SlotItem свободный слот в ответе
type SlotItem struct {
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	StaffID         int64  `json:"staffId"`
}

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date  string     `json:"date"`
	Slots []SlotItem `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotItem, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotItem{
			StartTime:       s.StartTime.String(),
			DurationMinutes: s.DurationMinutes,
			StaffID:         s.StaffID,
		})
	}
	return &SlotsResponse{
		Date:  resp.Date.Format(domain.DateFormat),
		Slots: slots,
	}
}
