package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/TDS-BookingService/internal/domain"
	settingsRepo "github.com/m04kA/TDS-BookingService/internal/infra/storage/settings"
	"github.com/m04kA/TDS-BookingService/internal/service/settings/models"
)

// Service сервис для работы с настройками календаря
type Service struct {
	settingsRepo SettingsRepository
	watcher      *Watcher
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, watcher *Watcher, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		watcher:      watcher,
		logger:       logger,
	}
}

// Get возвращает текущие настройки календаря.
// Отсутствующий или частично заполненный документ чинится слиянием
// с дефолтами, поле за полем: поле из хранилища побеждает, отсутствующее
// берётся из domain.DefaultSettings.
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	merged, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSettings(merged), nil
}

// Update применяет изменения настроек.
// Порядок строгий: слияние с текущими, валидация, запись, публикация.
// Ничего не публикуется и не сохраняется, если валидация не прошла.
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating scheduling settings")

	// 1. Загружаем текущие настройки
	current, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	// 2. Накладываем переданные поля
	updated := req.ToDomainPatch().ApplyTo(current)

	// 3. Валидируем результат целиком
	if err := s.validateSettings(updated); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	// 4. Сохраняем полный документ
	if err := s.settingsRepo.Upsert(ctx, updated); err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 5. Публикуем новые настройки подписчикам
	s.watcher.Publish(updated)

	s.logger.Info("Update: successfully updated settings, notified %d subscribers", s.watcher.SubscriberCount())
	return models.FromDomainSettings(updated), nil
}

// Subscribe подписывает на изменения настроек.
// Канал получает каждый успешно сохранённый документ до вызова cancel
// или отмены контекста. Медленный подписчик пропускает промежуточные
// обновления, но никогда не блокирует запись.
func (s *Service) Subscribe(ctx context.Context) (<-chan domain.Settings, func()) {
	return s.watcher.Subscribe(ctx)
}

// load читает документ и сливает его с дефолтами
func (s *Service) load(ctx context.Context) (domain.Settings, error) {
	patch, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			// Документ ещё не записан - работаем на дефолтах
			return domain.DefaultSettings(), nil
		}
		s.logger.Error("load: repository error: %v", err)
		return domain.Settings{}, fmt.Errorf("%w: load - repository error: %v", ErrInternal, err)
	}

	return domain.MergeWithDefaults(*patch), nil
}

// validateSettings валидирует документ настроек целиком
func (s *Service) validateSettings(settings domain.Settings) error {
	// Проверяем firstDayOfWeek
	if settings.FirstDayOfWeek < 0 || settings.FirstDayOfWeek > 6 {
		return fmt.Errorf("%w: firstDayOfWeek must be between 0 and 6", ErrInvalidInput)
	}

	// Проверяем дни недели
	for _, wd := range settings.DisabledWeekdays {
		if wd < 0 || wd > 6 {
			return fmt.Errorf("%w: disabledWeekdays values must be between 0 and 6", ErrInvalidInput)
		}
	}

	// Проверяем формат отключённых дат
	for _, d := range settings.DisabledDates {
		if _, err := time.Parse(domain.DateFormat, d); err != nil {
			return fmt.Errorf("%w: disabledDates must use the %s format", ErrInvalidInput, domain.DateFormat)
		}
	}

	// Проверяем минимальный интервал между записями
	if settings.MinIntervalHours < domain.MinIntervalHoursMin {
		return fmt.Errorf("%w: minIntervalHours must be at least %d", ErrInvalidInput, domain.MinIntervalHoursMin)
	}

	// Проверяем рабочие часы
	if err := settings.WorkStartTime.Validate(); err != nil {
		return fmt.Errorf("%w: workStartTime must use the HH:MM format", ErrInvalidInput)
	}
	if err := settings.WorkEndTime.Validate(); err != nil {
		return fmt.Errorf("%w: workEndTime must use the HH:MM format", ErrInvalidInput)
	}
	if !settings.WorkStartTime.IsBefore(settings.WorkEndTime) {
		return fmt.Errorf("%w: workStartTime must be before workEndTime", ErrInvalidInput)
	}

	// Проверяем дневной лимит
	if settings.MaxBookingsPerDay != nil && *settings.MaxBookingsPerDay < domain.MaxBookingsPerDayMin {
		return fmt.Errorf("%w: maxBookingsPerDay must be at least %d", ErrInvalidInput, domain.MaxBookingsPerDayMin)
	}

	return nil
}
