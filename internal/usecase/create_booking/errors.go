package create_booking

import "errors"

var (
	// ErrInvalidDate возвращается, когда дата записи в прошлом
	ErrInvalidDate = errors.New("create_booking: date is in the past")

	// ErrDateDisabled возвращается, когда запись на дату закрыта настройками или лимитами
	ErrDateDisabled = errors.New("create_booking: date is not available for booking")

	// ErrSlotNotAvailable возвращается, когда слот нарушает минимальный интервал между заявками
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidTimeSlot возвращается, когда время вне сетки слотов рабочего дня
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
