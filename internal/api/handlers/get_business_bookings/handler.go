package get_business_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingsService "github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidFilter     = "некорректные параметры фильтра"
	msgPermissionDenied  = "просмотр бронирований доступен только менеджеру бизнеса"
	msgUnauthorized      = "пользователь не аутентифицирован"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/bookings?branchId=&staffId=&startDate=&endDate=&status=&includeInactive=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	businessID, err := strconv.ParseInt(mux.Vars(r)["businessId"], 10, 64)
	if err != nil || businessID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	filter, err := parseFilter(businessID, r)
	if err != nil {
		h.logger.Warn("GET /businesses/%d/bookings - Invalid filter: %v", businessID, err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	bookings, err := h.service.GetBusinessBookings(r.Context(), filter, userID)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrPermissionDenied):
			handlers.RespondForbidden(w, msgPermissionDenied)

		default:
			h.logger.Error("GET /businesses/%d/bookings - Failed: user_id=%d, error=%v", businessID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(bookings))
}

// parseFilter собирает фильтр бронирований из query-параметров
func parseFilter(businessID int64, r *http.Request) (domain.BusinessBookingsFilter, error) {
	filter := domain.BusinessBookingsFilter{BusinessID: businessID}
	query := r.URL.Query()

	if raw := query.Get("branchId"); raw != "" {
		branchID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || branchID <= 0 {
			return filter, errors.New("invalid branchId")
		}
		filter.BranchID = &branchID
	}

	if raw := query.Get("staffId"); raw != "" {
		staffID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || staffID <= 0 {
			return filter, errors.New("invalid staffId")
		}
		filter.StaffID = &staffID
	}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &endDate
	}

	if raw := query.Get("status"); raw != "" {
		status := domain.BookingStatus(raw)
		if !domain.IsValidStatus(status) {
			return filter, errors.New("invalid status")
		}
		filter.Status = &status
	}

	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, err
		}
		filter.IncludeInactive = includeInactive
	}

	return filter, nil
}
