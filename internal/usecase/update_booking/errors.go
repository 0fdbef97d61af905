package update_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда заявка не найдена или удалена
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
