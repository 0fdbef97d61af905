package get_available_slots

import (
	"time"

	"github.com/m04kA/TDS-BookingService/pkg/types"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	Date time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date      time.Time // Дата, на которую запрашивались слоты
	Available bool      // Открыта ли дата для записи
	Slots     []Slot    // Список свободных слотов, пустой для отключенной даты
}

// Slot модель временного слота
type Slot struct {
	StartTime types.TimeString // Время начала слота (например, "10:00")
}
