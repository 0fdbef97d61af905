package get_available_days

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/TDS-BookingService/internal/domain"
	settingsRepo "github.com/m04kA/TDS-BookingService/internal/infra/storage/settings"
)

// UseCase use case для получения доступности дней месяца
type UseCase struct {
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступности дней.
// Для каждого дня месяца вычисляется вердикт "можно ли записаться",
// по которому виджет календаря закрашивает недоступные даты.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableDays: month=%s", req.Month.Format(monthFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableDays: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Загружаем настройки календаря
	settings, err := uc.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	// 4. Получаем снимок заявок на месяц с запасом по краям
	monthStart := time.Date(req.Month.Year(), req.Month.Month(), 1, 0, 0, 0, 0, req.Month.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)

	from, to := monthWindow(monthStart, nextMonth, settings.MinIntervalHours)
	instants, err := uc.bookingRepo.ListInstants(ctx, &from, &to)
	if err != nil {
		uc.logger.Error("GetAvailableDays: failed to load booking instants: %v", err)
		return nil, fmt.Errorf("%w: failed to load booking instants: %v", ErrInternal, err)
	}

	// 5. Вычисляем вердикт для каждого дня месяца
	days := make([]Day, 0, 31)
	for date := monthStart; date.Before(nextMonth); date = date.AddDate(0, 0, 1) {
		disabled := domain.IsDateDisabled(date, settings, instants, now)
		days = append(days, Day{
			Date:      date,
			Available: !disabled,
		})
	}

	uc.logger.Info("GetAvailableDays: computed %d days for month=%s", len(days), req.Month.Format(monthFormat))

	return &Response{
		Month: monthStart,
		Days:  days,
	}, nil
}

// loadSettings читает документ настроек и сливает его с дефолтами
func (uc *UseCase) loadSettings(ctx context.Context) (domain.Settings, error) {
	patch, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return domain.DefaultSettings(), nil
		}
		uc.logger.Error("GetAvailableDays: failed to load settings: %v", err)
		return domain.Settings{}, fmt.Errorf("%w: failed to load settings: %v", ErrInternal, err)
	}
	return domain.MergeWithDefaults(*patch), nil
}
