package get_available_days

import (
	"context"

	getAvailableDays "github.com/m04kA/TDS-BookingService/internal/usecase/get_available_days"
)

type GetAvailableDaysUseCase interface {
	Execute(ctx context.Context, req *getAvailableDays.Request) (*getAvailableDays.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
