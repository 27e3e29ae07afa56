package get_waitlist

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	directoryClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
	waitlistService "github.com/m04kA/SMC-SchedulingService/internal/service/waitlist"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidStatus     = "некорректный статус листа ожидания"
	msgBusinessNotFound  = "бизнес не найден"
	msgPermissionDenied  = "просмотр листа ожидания доступен только менеджеру бизнеса"
	msgUnauthorized      = "пользователь не аутентифицирован"
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

// Handle GET /api/v1/businesses/{businessId}/waitlist?status=
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

	var status *domain.WaitlistStatus
	if rawStatus := r.URL.Query().Get("status"); rawStatus != "" {
		s := domain.WaitlistStatus(rawStatus)
		if !domain.IsValidWaitlistStatus(s) {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		status = &s
	}

	entries, err := h.service.ListForBusiness(r.Context(), businessID, userID, status)
	if err != nil {
		switch {
		case errors.Is(err, directoryClient.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, waitlistService.ErrPermissionDenied):
			handlers.RespondForbidden(w, msgPermissionDenied)

		default:
			h.logger.Error("GET /businesses/%d/waitlist - Failed: user_id=%d, error=%v", businessID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(entries))
}
