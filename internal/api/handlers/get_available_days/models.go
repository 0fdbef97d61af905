package get_available_days

import (
	"time"

	"github.com/m04kA/TDS-BookingService/internal/domain"
	getAvailableDays "github.com/m04kA/TDS-BookingService/internal/usecase/get_available_days"
)

// monthFormat формат месяца в query параметре
const monthFormat = "2006-01"

// AvailableDaysResponse HTTP response model
type AvailableDaysResponse struct {
	Month string         `json:"month"`
	Days  []AvailableDay `json:"days"`
}

// AvailableDay вердикт доступности одного дня
type AvailableDay struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(monthStr string) (*getAvailableDays.Request, error) {
	// Парсим месяц
	month, err := time.Parse(monthFormat, monthStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableDays.Request{Month: month}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableDays.Response) *AvailableDaysResponse {
	days := make([]AvailableDay, len(resp.Days))
	for i, day := range resp.Days {
		days[i] = AvailableDay{
			Date:      day.Date.Format(domain.DateFormat),
			Available: day.Available,
		}
	}

	return &AvailableDaysResponse{
		Month: resp.Month.Format(monthFormat),
		Days:  days,
	}
}
