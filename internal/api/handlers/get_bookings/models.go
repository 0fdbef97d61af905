package get_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/TDS-BookingService/internal/domain"
	"github.com/m04kA/TDS-BookingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	dateFromStr string,
	dateToStr string,
	completedStr string,
	includeDeletedStr string,
	limitStr string,
	offsetStr string,
) (*models.GetBookingsRequest, error) {
	req := &models.GetBookingsRequest{}

	// Парсим dateFrom если указан
	if dateFromStr != "" {
		dateFrom, err := time.Parse(domain.DateFormat, dateFromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid dateFrom value: %w", err)
		}
		req.DateFrom = &dateFrom
	}

	// Парсим dateTo если указан, конец дня включительно
	if dateToStr != "" {
		dateTo, err := time.Parse(domain.DateFormat, dateToStr)
		if err != nil {
			return nil, fmt.Errorf("invalid dateTo value: %w", err)
		}
		endOfDay := dateTo.AddDate(0, 0, 1).Add(-time.Second)
		req.DateTo = &endOfDay
	}

	// Парсим completed если указан
	if completedStr != "" {
		completed, err := strconv.ParseBool(completedStr)
		if err != nil {
			return nil, fmt.Errorf("invalid completed value: %w", err)
		}
		req.Completed = &completed
	}

	// Парсим includeDeleted если указан
	if includeDeletedStr != "" {
		includeDeleted, err := strconv.ParseBool(includeDeletedStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeDeleted value: %w", err)
		}
		req.IncludeDeleted = includeDeleted
	}

	// Парсим limit если указан
	if limitStr != "" {
		limit, err := strconv.ParseUint(limitStr, 10, 64)
		if err != nil || limit == 0 {
			return nil, fmt.Errorf("invalid limit value: %q", limitStr)
		}
		req.Limit = &limit
	}

	// Парсим offset если указан
	if offsetStr != "" {
		offset, err := strconv.ParseUint(offsetStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid offset value: %q", offsetStr)
		}
		req.Offset = &offset
	}

	return req, nil
}
