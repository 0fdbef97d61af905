package get_available_days

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Month.IsZero() {
		return fmt.Errorf("%w: month is required", ErrInvalidInput)
	}
	return nil
}

// monthWindow возвращает границы выборки заявок для месяца.
// Окно расширено на минимальный интервал в обе стороны, чтобы заявки
// соседних месяцев тоже участвовали в проверке интервала для крайних дней.
func monthWindow(monthStart, nextMonth time.Time, minIntervalHours int) (time.Time, time.Time) {
	interval := time.Duration(minIntervalHours) * time.Hour
	return monthStart.Add(-interval), nextMonth.Add(interval)
}
