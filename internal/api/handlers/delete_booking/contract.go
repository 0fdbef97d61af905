package delete_booking

import (
	"context"
)

// BookingService интерфейс сервиса заявок
type BookingService interface {
	SoftDelete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
