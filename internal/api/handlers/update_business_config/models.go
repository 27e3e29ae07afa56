package update_business_config

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// UpdateConfigRequest HTTP request model
type UpdateConfigRequest struct {
	BranchID                *int64 `json:"branchId,omitempty"`
	ServiceID               *int64 `json:"serviceId,omitempty"`
	MinBookingNoticeMinutes int    `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int    `json:"advanceBookingDays"`
	OfferResponseMinutes    int    `json:"offerResponseMinutes"`
}

// ToDomain конвертирует HTTP request в доменную модель
func (r *UpdateConfigRequest) ToDomain(businessID int64) *domain.SchedulingConfig {
	return &domain.SchedulingConfig{
		BusinessID:              businessID,
		BranchID:                r.BranchID,
		ServiceID:               r.ServiceID,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
		OfferResponseMinutes:    r.OfferResponseMinutes,
	}
}

// UpdateConfigResponse HTTP response model
type UpdateConfigResponse struct {
	ID                      int64  `json:"id"`
	BusinessID              int64  `json:"businessId"`
	BranchID                *int64 `json:"branchId,omitempty"`
	ServiceID               *int64 `json:"serviceId,omitempty"`
	MinBookingNoticeMinutes int    `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int    `json:"advanceBookingDays"`
	OfferResponseMinutes    int    `json:"offerResponseMinutes"`
	CreatedAt               string `json:"createdAt"`
	UpdatedAt               string `json:"updatedAt"`
}

// FromDomain конвертирует доменную модель в HTTP response
func FromDomain(cfg *domain.SchedulingConfig) *UpdateConfigResponse {
	return &UpdateConfigResponse{
		ID:                      cfg.ID,
		BusinessID:              cfg.BusinessID,
		BranchID:                cfg.BranchID,
		ServiceID:               cfg.ServiceID,
		MinBookingNoticeMinutes: cfg.MinBookingNoticeMinutes,
		AdvanceBookingDays:      cfg.AdvanceBookingDays,
		OfferResponseMinutes:    cfg.OfferResponseMinutes,
		CreatedAt:               cfg.CreatedAt.Format(time.RFC3339),
		UpdatedAt:               cfg.UpdatedAt.Format(time.RFC3339),
	}
}
