package get_waitlist

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// WaitlistEntryItem элемент листа ожидания в ответе
type WaitlistEntryItem struct {
	ID            int64   `json:"id"`
	ClientID      int64   `json:"clientId"`
	ServiceID     int64   `json:"serviceId"`
	PreferredDate *string `json:"preferredDate,omitempty"`
	Status        string  `json:"status"`

	OfferStaffID   *int64  `json:"offerStaffId,omitempty"`
	OfferBranchID  *int64  `json:"offerBranchId,omitempty"`
	OfferStartTime *string `json:"offerStartTime,omitempty"`
	OfferExpiresAt *string `json:"offerExpiresAt,omitempty"`

	CreatedAt string `json:"createdAt"`
}

// WaitlistResponse HTTP response model
type WaitlistResponse struct {
	Entries []WaitlistEntryItem `json:"entries"`
}

// FromDomain конвертирует список доменных моделей в HTTP response
func FromDomain(entries []*domain.WaitlistEntry) *WaitlistResponse {
	items := make([]WaitlistEntryItem, 0, len(entries))
	for _, e := range entries {
		item := WaitlistEntryItem{
			ID:            e.ID,
			ClientID:      e.ClientID,
			ServiceID:     e.ServiceID,
			Status:        string(e.Status),
			OfferStaffID:  e.OfferStaffID,
			OfferBranchID: e.OfferBranchID,
			CreatedAt:     e.CreatedAt.Format(time.RFC3339),
		}
		if e.PreferredDate != nil {
			preferredDate := e.PreferredDate.Format(domain.DateFormat)
			item.PreferredDate = &preferredDate
		}
		if e.OfferStartTime != nil {
			offerStart := e.OfferStartTime.Format(time.RFC3339)
			item.OfferStartTime = &offerStart
		}
		if e.OfferExpiresAt != nil {
			offerExpires := e.OfferExpiresAt.Format(time.RFC3339)
			item.OfferExpiresAt = &offerExpires
		}
		items = append(items, item)
	}
	return &WaitlistResponse{Entries: items}
}
