package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TDS-BookingService/internal/domain"
	settingsRepo "github.com/m04kA/TDS-BookingService/internal/infra/storage/settings"
)

// UseCase use case для получения свободных слотов на дату
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

// Execute выполняет use case получения свободных слотов.
// Чтение идет без блокировок: ответ это снимок на момент запроса,
// финальная проверка доступности выполняется при создании заявки.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Загружаем настройки календаря
	settings, err := uc.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	// 4. Получаем снимок заявок вокруг даты
	from, to := snapshotWindow(req.Date, settings.MinIntervalHours)
	instants, err := uc.bookingRepo.ListInstants(ctx, &from, &to)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load booking instants: %v", err)
		return nil, fmt.Errorf("%w: failed to load booking instants: %v", ErrInternal, err)
	}

	// 5. Отключенная дата отдается с пустым списком слотов
	if domain.IsDateDisabled(req.Date, settings, instants, now) {
		uc.logger.Info("GetAvailableSlots: date %s is disabled", req.Date.Format(domain.DateFormat))
		return &Response{
			Date:      req.Date,
			Available: false,
			Slots:     []Slot{},
		}, nil
	}

	// 6. Вычисляем свободные слоты
	free := domain.FreeSlots(req.Date, settings, instants)

	slots := make([]Slot, 0, len(free))
	for _, slot := range free {
		slots = append(slots, Slot{StartTime: slot})
	}

	uc.logger.Info("GetAvailableSlots: %d free slots for date=%s", len(slots), req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		Available: true,
		Slots:     slots,
	}, nil
}

// loadSettings читает документ настроек и сливает его с дефолтами
func (uc *UseCase) loadSettings(ctx context.Context) (domain.Settings, error) {
	patch, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return domain.DefaultSettings(), nil
		}
		uc.logger.Error("GetAvailableSlots: failed to load settings: %v", err)
		return domain.Settings{}, fmt.Errorf("%w: failed to load settings: %v", ErrInternal, err)
	}
	return domain.MergeWithDefaults(*patch), nil
}
