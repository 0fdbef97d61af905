package get_bookings

import (
	"net/http"

	"github.com/m04kA/TDS-BookingService/internal/api/handlers"
	"github.com/m04kA/TDS-BookingService/internal/api/middleware"
)

const (
	msgMissingStaffID = "отсутствует идентификатор сотрудника"
	msgInvalidParams  = "некорректные параметры запроса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings
// Query params: dateFrom, dateTo, completed, includeDeleted, limit, offset (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем staffID из контекста (через middleware StaffAuth)
	staffID, ok := middleware.GetStaffID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings - Missing staff ID")
		handlers.RespondUnauthorized(w, msgMissingStaffID)
		return
	}

	// Получаем опциональные query параметры
	query := r.URL.Query()

	// Формируем запрос к сервису
	serviceReq, err := ToServiceRequest(
		query.Get("dateFrom"),
		query.Get("dateTo"),
		query.Get("completed"),
		query.Get("includeDeleted"),
		query.Get("limit"),
		query.Get("offset"),
	)
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Получаем заявки
	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		h.logger.Error("GET /bookings - Failed to get bookings: staff_id=%d, error=%v", staffID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: staff_id=%d, count=%d",
		staffID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
