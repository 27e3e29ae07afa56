package domain

// Default configuration values
const (
	DefaultMinBookingNoticeMinutes = 60  // 1 hour
	DefaultAdvanceBookingDays      = 0   // 0 = unlimited
	DefaultOfferResponseMinutes    = 120 // 2 hours to accept a waitlist offer
)

// Business validation constants
const (
	MinBookingNoticeMinutes = 0
	MaxBookingNoticeMinutes = 10080 // 1 week
	MinAdvanceBookingDays   = 0
	MaxAdvanceBookingDays   = 365 // 1 year
	MinOfferResponseMinutes = 5
	MaxOfferResponseMinutes = 10080 // 1 week
	MaxNotesLength          = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses статусы, учитываемые при поиске конфликтов слотов
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}

// TerminalStatuses статусы, из которых бронирование уже не переходит дальше
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
