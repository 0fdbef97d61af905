package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/TDS-BookingService/internal/domain"
	"github.com/m04kA/TDS-BookingService/pkg/types"
)

// validateRequest проверяет обязательные поля и ограничения длины
func validateRequest(req *Request) error {
	if err := validateClientName(req.ClientName); err != nil {
		return err
	}
	if err := validatePhone(req.Phone); err != nil {
		return err
	}
	if err := validateDate(req.Date); err != nil {
		return err
	}
	if err := validateStartTime(req.StartTime); err != nil {
		return err
	}
	if err := validateOptionalField(req.Address, domain.MaxAddressLength, "address"); err != nil {
		return err
	}
	if err := validateOptionalField(req.OS, domain.MaxOSLength, "os"); err != nil {
		return err
	}
	if err := validateOptionalField(req.Comment, domain.MaxCommentLength, "comment"); err != nil {
		return err
	}
	return nil
}

func validateClientName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: client name exceeds %d characters", ErrInvalidInput, domain.MaxClientNameLength)
	}
	return nil
}

func validatePhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	return nil
}

func validateDate(date time.Time) error {
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

func validateStartTime(startTime types.TimeString) error {
	if startTime == "" {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}
	if err := startTime.Validate(); err != nil {
		return fmt.Errorf("%w: time must be in HH:MM format", ErrInvalidInput)
	}
	return nil
}

func validateOptionalField(value *string, maxLen int, field string) error {
	if value == nil {
		return nil
	}
	if len(*value) > maxLen {
		return fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidInput, field, maxLen)
	}
	return nil
}

// slotOnLadder проверяет, что время попадает в сетку слотов рабочего дня
func slotOnLadder(startTime types.TimeString, settings domain.Settings) bool {
	for _, slot := range domain.GenerateTimeSlots(settings.WorkStartTime, settings.WorkEndTime) {
		if slot == startTime {
			return true
		}
	}
	return false
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
