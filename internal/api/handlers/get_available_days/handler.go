package get_available_days

import (
	"errors"
	"net/http"

	"github.com/m04kA/TDS-BookingService/internal/api/handlers"
	getAvailableDays "github.com/m04kA/TDS-BookingService/internal/usecase/get_available_days"
)

const (
	msgMissingMonth = "месяц обязателен"
	msgInvalidMonth = "некорректный формат месяца, ожидается YYYY-MM"
)

type Handler struct {
	useCase GetAvailableDaysUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDaysUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/days
// Query params: month (required, YYYY-MM)
// Публичный endpoint - вызывается виджетом записи без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем month из query параметров
	monthStr := r.URL.Query().Get("month")
	if monthStr == "" {
		h.logger.Warn("GET /availability/days - Missing month")
		handlers.RespondBadRequest(w, msgMissingMonth)
		return
	}

	// Формируем запрос к use case (с парсингом месяца)
	useCaseReq, err := ToUseCaseRequest(monthStr)
	if err != nil {
		h.logger.Warn("GET /availability/days - Invalid month format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDays.ErrInvalidInput):
			h.logger.Warn("GET /availability/days - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		default:
			h.logger.Error("GET /availability/days - Failed to get days: month=%s, error=%v", monthStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /availability/days - Days retrieved successfully: month=%s, days_count=%d",
		monthStr, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, response)
}
