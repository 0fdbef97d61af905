package get_available_slots

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

// snapshotWindow возвращает границы выборки заявок вокруг даты.
// Окно расширено на минимальный интервал в обе стороны, чтобы заявки
// соседних дней тоже участвовали в проверке интервала.
func snapshotWindow(date time.Time, minIntervalHours int) (time.Time, time.Time) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	interval := time.Duration(minIntervalHours) * time.Hour
	return dayStart.Add(-interval), dayEnd.Add(interval)
}
