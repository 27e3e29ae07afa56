package update_business_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	directoryClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
	configService "github.com/m04kA/SMC-SchedulingService/internal/service/schedconfig"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidBody       = "некорректное тело запроса"
	msgInvalidConfig     = "параметры конфигурации вне допустимых границ"
	msgBusinessNotFound  = "бизнес не найден"
	msgPermissionDenied  = "изменение конфигурации доступно только менеджеру бизнеса"
	msgUnauthorized      = "пользователь не аутентифицирован"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/businesses/{businessId}/config
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

	var req UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	saved, err := h.service.Save(r.Context(), req.ToDomain(businessID), userID)
	if err != nil {
		switch {
		case errors.Is(err, configService.ErrInvalidConfig):
			handlers.RespondBadRequest(w, msgInvalidConfig)

		case errors.Is(err, directoryClient.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, configService.ErrPermissionDenied):
			handlers.RespondForbidden(w, msgPermissionDenied)

		default:
			h.logger.Error("PUT /businesses/%d/config - Failed: user_id=%d, error=%v", businessID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /businesses/%d/config - Saved: config_id=%d, user_id=%d", businessID, saved.ID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(saved))
}
