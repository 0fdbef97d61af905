package watch_settings

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/m04kA/TDS-BookingService/internal/api/handlers"
	"github.com/m04kA/TDS-BookingService/internal/api/middleware"
	"github.com/m04kA/TDS-BookingService/internal/service/settings/models"
)

const (
	msgMissingStaffID        = "отсутствует идентификатор сотрудника"
	msgStreamingNotSupported = "потоковая передача не поддерживается"
	settingsEventName        = "settings"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/settings/events
// SSE поток изменений настроек. Первым событием уходит текущий документ,
// дальше каждое успешное сохранение. Открытые вкладки админки получают
// обновления без перезапроса.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем staffID из контекста (через middleware StaffAuth)
	staffID, ok := middleware.GetStaffID(r.Context())
	if !ok {
		h.logger.Warn("GET /settings/events - Missing staff ID")
		handlers.RespondUnauthorized(w, msgMissingStaffID)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.logger.Error("GET /settings/events - Response writer does not support flushing")
		handlers.RespondError(w, http.StatusInternalServerError, msgStreamingNotSupported)
		return
	}

	// Подписываемся до снимка, чтобы не потерять обновление между чтением
	// текущего документа и началом прослушивания
	updates, cancel := h.service.Subscribe(r.Context())
	defer cancel()

	current, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /settings/events - Failed to get settings snapshot: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	h.logger.Info("GET /settings/events - Subscriber connected: staff_id=%d", staffID)

	// Первое событие - текущее состояние настроек
	if err := writeEvent(w, current); err != nil {
		h.logger.Warn("GET /settings/events - Failed to write snapshot: staff_id=%d, error=%v", staffID, err)
		return
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			h.logger.Info("GET /settings/events - Subscriber disconnected: staff_id=%d", staffID)
			return

		case updated, open := <-updates:
			if !open {
				h.logger.Info("GET /settings/events - Subscription closed: staff_id=%d", staffID)
				return
			}

			if err := writeEvent(w, models.FromDomainSettings(updated)); err != nil {
				h.logger.Warn("GET /settings/events - Failed to write event: staff_id=%d, error=%v", staffID, err)
				return
			}
			flusher.Flush()
		}
	}
}

// writeEvent сериализует настройки в одно SSE событие
func writeEvent(w io.Writer, settings *models.SettingsResponse) error {
	payload, err := json.Marshal(settings)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", settingsEventName, payload)
	return err
}
