package join_waitlist

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// JoinWaitlistRequest HTTP request model
type JoinWaitlistRequest struct {
	BusinessID    int64   `json:"businessId"`
	ServiceID     int64   `json:"serviceId"`
	PreferredDate *string `json:"preferredDate,omitempty"` // "2025-10-15"; отсутствует = любой день
}

// WaitlistEntryResponse HTTP response model
type WaitlistEntryResponse struct {
	ID            int64   `json:"id"`
	BusinessID    int64   `json:"businessId"`
	ClientID      int64   `json:"clientId"`
	ServiceID     int64   `json:"serviceId"`
	PreferredDate *string `json:"preferredDate,omitempty"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
}

// FromDomain конвертирует доменную модель в HTTP response
func FromDomain(e *domain.WaitlistEntry) *WaitlistEntryResponse {
	resp := &WaitlistEntryResponse{
		ID:         e.ID,
		BusinessID: e.BusinessID,
		ClientID:   e.ClientID,
		ServiceID:  e.ServiceID,
		Status:     string(e.Status),
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
	}
	if e.PreferredDate != nil {
		preferredDate := e.PreferredDate.Format(domain.DateFormat)
		resp.PreferredDate = &preferredDate
	}
	return resp
}
