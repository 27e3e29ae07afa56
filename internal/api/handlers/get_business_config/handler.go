package get_business_config

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
	msgBusinessNotFound  = "бизнес не найден"
	msgPermissionDenied  = "просмотр конфигурации доступен только менеджеру бизнеса"
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

// Handle GET /api/v1/businesses/{businessId}/config
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

	configs, err := h.service.ListForBusiness(r.Context(), businessID, userID)
	if err != nil {
		switch {
		case errors.Is(err, directoryClient.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, configService.ErrPermissionDenied):
			handlers.RespondForbidden(w, msgPermissionDenied)

		default:
			h.logger.Error("GET /businesses/%d/config - Failed: user_id=%d, error=%v", businessID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(businessID, configs))
}
