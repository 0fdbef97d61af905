package get_available_days

import "time"

// monthFormat формат месяца в запросе ("2026-03")
const monthFormat = "2006-01"

// Request модель запроса на получение доступности дней
type Request struct {
	Month time.Time // Любой день запрашиваемого месяца (обычно первое число)
}

// Response модель ответа с доступностью дней месяца
type Response struct {
	Month time.Time // Первое число запрошенного месяца
	Days  []Day     // Вердикт для каждого дня месяца по порядку
}

// Day доступность одного дня календаря
type Day struct {
	Date      time.Time // Дата дня
	Available bool      // Можно ли записаться на этот день
}
