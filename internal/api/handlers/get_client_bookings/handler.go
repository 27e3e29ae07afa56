package get_client_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingsService "github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
)

const (
	msgInvalidClientID  = "некорректный ID клиента"
	msgInvalidStatus    = "некорректный статус бронирования"
	msgPermissionDenied = "клиент может просматривать только свои бронирования"
	msgUnauthorized     = "пользователь не аутентифицирован"
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

// Handle GET /api/v1/clients/{clientId}/bookings?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	clientID, err := strconv.ParseInt(mux.Vars(r)["clientId"], 10, 64)
	if err != nil || clientID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	var status *domain.BookingStatus
	if rawStatus := r.URL.Query().Get("status"); rawStatus != "" {
		s := domain.BookingStatus(rawStatus)
		if !domain.IsValidStatus(s) {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		status = &s
	}

	bookings, err := h.service.GetClientBookings(r.Context(), clientID, userID, status)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrPermissionDenied):
			handlers.RespondForbidden(w, msgPermissionDenied)

		default:
			h.logger.Error("GET /clients/%d/bookings - Failed: user_id=%d, error=%v", clientID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(bookings))
}
