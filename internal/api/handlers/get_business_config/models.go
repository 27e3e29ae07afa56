package get_business_config

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// ConfigItem конфигурация одного уровня иерархии
type ConfigItem struct {
	ID                      int64  `json:"id"`
	BranchID                *int64 `json:"branchId,omitempty"`
	ServiceID               *int64 `json:"serviceId,omitempty"`
	MinBookingNoticeMinutes int    `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int    `json:"advanceBookingDays"`
	OfferResponseMinutes    int    `json:"offerResponseMinutes"`
	CreatedAt               string `json:"createdAt"`
	UpdatedAt               string `json:"updatedAt"`
}

// ConfigsResponse HTTP response model
type ConfigsResponse struct {
	BusinessID int64        `json:"businessId"`
	Configs    []ConfigItem `json:"configs"`
}

// FromDomain конвертирует список конфигураций в HTTP response
func FromDomain(businessID int64, configs []*domain.SchedulingConfig) *ConfigsResponse {
	items := make([]ConfigItem, 0, len(configs))
	for _, c := range configs {
		items = append(items, ConfigItem{
			ID:                      c.ID,
			BranchID:                c.BranchID,
			ServiceID:               c.ServiceID,
			MinBookingNoticeMinutes: c.MinBookingNoticeMinutes,
			AdvanceBookingDays:      c.AdvanceBookingDays,
			OfferResponseMinutes:    c.OfferResponseMinutes,
			CreatedAt:               c.CreatedAt.Format(time.RFC3339),
			UpdatedAt:               c.UpdatedAt.Format(time.RFC3339),
		})
	}
	return &ConfigsResponse{BusinessID: businessID, Configs: items}
}
