package join_waitlist

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	directoryClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
	waitlistService "github.com/m04kA/SMC-SchedulingService/internal/service/waitlist"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidIDs         = "businessId и serviceId должны быть положительными"
	msgBusinessNotFound   = "бизнес не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgClientNotFound     = "клиент не найден"
	msgServiceInactive    = "услуга недоступна"
	msgClientInactive     = "клиент заблокирован"
	msgUnauthorized       = "пользователь не аутентифицирован"
)

type Handler struct {
	service WaitlistService
	logger  Logger
}

func NewHandler(service WaitlistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/waitlist
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req JoinWaitlistRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /waitlist - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.BusinessID <= 0 || req.ServiceID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidIDs)
		return
	}

	var preferredDate *time.Time
	if req.PreferredDate != nil {
		parsed, err := time.Parse(domain.DateFormat, *req.PreferredDate)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		preferredDate = &parsed
	}

	entry, err := h.service.Join(r.Context(), waitlistService.JoinRequest{
		BusinessID:    req.BusinessID,
		ClientID:      clientID,
		ServiceID:     req.ServiceID,
		PreferredDate: preferredDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, directoryClient.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, directoryClient.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, directoryClient.ErrClientNotFound):
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, waitlistService.ErrServiceInactive):
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, waitlistService.ErrClientInactive):
			handlers.RespondForbidden(w, msgClientInactive)

		default:
			h.logger.Error("POST /waitlist - Failed: client_id=%d, business_id=%d, error=%v",
				clientID, req.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /waitlist - Entry created: entry_id=%d, client_id=%d, business_id=%d",
		entry.ID, clientID, req.BusinessID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomain(entry))
}
