package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
)

// Directory интерфейс клиента DirectoryService
type Directory interface {
	GetBusiness(ctx context.Context, businessID int64) (*directoryservice.Business, error)
	GetService(ctx context.Context, businessID, serviceID int64) (*directoryservice.Service, error)
	GetStaff(ctx context.Context, businessID, staffID int64) (*directoryservice.Staff, error)
	ListQualifiedStaff(ctx context.Context, businessID, branchID, serviceID int64) ([]directoryservice.Staff, error)
}

// BookingRepo интерфейс репозитория бронирований для конфликтной выборки
type BookingRepo interface {
	GetBlocking(ctx context.Context, filter domain.BlockingBookingsFilter) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// CheckSlotRequest запрос на проверку доступности слота
type CheckSlotRequest struct {
	BusinessID int64
	BranchID   int64
	ServiceID  int64

	// StaffID конкретный сотрудник; nil означает "любой свободный"
	StaffID *int64

	StartTime time.Time

	// ExcludeBookingID собственное бронирование, не считающееся конфликтом
	// Используется при переносе
	ExcludeBookingID *int64
}

// DaySlotsRequest запрос сетки свободных слотов на день
type DaySlotsRequest struct {
	BusinessID int64
	BranchID   int64
	ServiceID  int64
	StaffID    *int64
	Date       time.Time
}
