package domain

import "time"

// SchedulingConfig represents the scheduling policy for a business
// Supports hierarchical configuration:
// 1. Service at specific branch (business_id, branch_id, service_id)
// 2. Branch-wide (business_id, branch_id, NULL)
// 3. Business-wide (business_id, NULL, NULL)
type SchedulingConfig struct {
	ID         int64
	BusinessID int64
	BranchID   *int64 // NULL = config for all branches
	ServiceID  *int64 // NULL = config for all services

	MinBookingNoticeMinutes int
	AdvanceBookingDays      int // 0 = unlimited
	OfferResponseMinutes    int // окно ответа на предложение слота из листа ожидания

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsGlobalConfig returns true if this is a business-wide configuration
func (c *SchedulingConfig) IsGlobalConfig() bool {
	return c.BranchID == nil && c.ServiceID == nil
}

// IsBranchSpecific returns true if this configuration is for a specific branch
func (c *SchedulingConfig) IsBranchSpecific() bool {
	return c.BranchID != nil && c.ServiceID == nil
}

// IsServiceSpecific returns true if this configuration is for a specific service (branch-wide)
func (c *SchedulingConfig) IsServiceSpecific() bool {
	return c.BranchID == nil && c.ServiceID != nil
}

// OfferResponseDuration returns the acceptance window for waitlist offers
func (c *SchedulingConfig) OfferResponseDuration() time.Duration {
	return time.Duration(c.OfferResponseMinutes) * time.Minute
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (c *SchedulingConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// DefaultSchedulingConfig returns the fallback policy used when a business
// has no stored configuration
func DefaultSchedulingConfig(businessID int64) *SchedulingConfig {
	return &SchedulingConfig{
		BusinessID:              businessID,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		OfferResponseMinutes:    DefaultOfferResponseMinutes,
	}
}
