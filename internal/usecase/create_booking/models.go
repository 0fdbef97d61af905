package create_booking

import (
	"errors"
	"time"

	"github.com/m04kA/TDS-BookingService/internal/integrations/smsgate"
	"github.com/m04kA/TDS-BookingService/pkg/types"
)

// Request модель запроса на создание заявки
type Request struct {
	ClientName string           // Имя клиента
	Phone      string           // Телефон в произвольном формате
	Address    *string          // Адрес выезда (опционально)
	OS         *string          // Операционная система клиента (опционально)
	Comment    *string          // Комментарий клиента (опционально)
	Date       time.Time        // Дата записи (без времени)
	StartTime  types.TimeString // Время слота (например, "10:00")
}

// Response модель ответа с созданной заявкой
type Response struct {
	ID              int64     // ID созданной заявки
	ClientName      string    // Имя клиента
	Phone           string    // Нормализованный телефон (+7...)
	Address         *string   // Адрес выезда
	OS              *string   // Операционная система
	Comment         *string   // Комментарий клиента
	AppointmentDate time.Time // Дата и время записи
	Completed       bool      // Признак выполненной заявки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления

	// Результат отправки SMS подтверждения, nil если отправка выключена
	Notification *NotificationResult
}

// NotificationResult результат попытки отправить SMS подтверждение
type NotificationResult struct {
	DispatchID string  // Идентификатор попытки отправки
	Sent       bool    // Принято ли сообщение провайдером
	Warning    *string // Предупреждение, если отправка не удалась
}

// notificationWarning превращает ошибку отправки в текст предупреждения
func notificationWarning(err error) string {
	switch {
	case errors.Is(err, smsgate.ErrRejected):
		return "Заявка сохранена, но SMS отклонено провайдером"
	case errors.Is(err, smsgate.ErrServiceDegraded):
		return "Заявка сохранена, но сервис SMS недоступен"
	default:
		return "Заявка сохранена, но SMS подтверждение не отправлено"
	}
}
