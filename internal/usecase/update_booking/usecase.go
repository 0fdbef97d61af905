package update_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/TDS-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/TDS-BookingService/internal/infra/storage/booking"
	settingsRepo "github.com/m04kA/TDS-BookingService/internal/infra/storage/settings"
)

// UseCase use case для частичного редактирования заявки
type UseCase struct {
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case редактирования заявки.
// Каждое присланное поле проходит отдельный цикл правки: валидное значение
// фиксируется, невалидное откатывается к сохраненному, и в ответе для каждого
// поля сообщается итог. Откат одного поля не блокирует остальные и не
// завершает запрос ошибкой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: id=%d", req.ID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее состояние заявки
	current, err := uc.bookingRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("UpdateBooking: booking id=%d not found", req.ID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", req.ID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Получаем текущее время
	now := uc.timeProvider.Now()

	// 4. Прогоняем простые поля через цикл правки
	update := domain.BookingUpdate{}
	outcomes := uc.commitSimpleFields(req, current, &update)

	// 5. Смена даты требует повторной проверки доступности, поэтому
	// фиксируется и сохраняется в сериализуемой транзакции
	if req.AppointmentDate != nil {
		var dateOutcome FieldOutcome

		err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			settings, err := uc.loadSettings(txCtx)
			if err != nil {
				return err
			}

			// 5.1. Снимок заявок вокруг новой даты с блокировкой (FOR UPDATE)
			from, to := snapshotWindow(*req.AppointmentDate, settings.MinIntervalHours)
			instants, err := uc.bookingRepo.ListInstants(txCtx, &from, &to)
			if err != nil {
				uc.logger.Error("UpdateBooking: failed to load booking instants: %v", err)
				return fmt.Errorf("%w: failed to load booking instants: %v", ErrInternal, err)
			}

			// 5.2. Собственный текущий слот заявки не участвует в проверке
			instants = withoutInstant(instants, current.AppointmentDate)

			// 5.3. Цикл правки для даты с проверкой доступности
			value, outcome := commitField(fieldAppointmentDate, current.AppointmentDate, *req.AppointmentDate,
				func(v time.Time) error {
					return validateAppointment(v, settings, instants, now)
				})
			update.AppointmentDate = value
			dateOutcome = outcome

			// 5.4. Сохраняем зафиксированные поля в той же транзакции
			if update.IsEmpty() {
				return nil
			}
			return uc.applyUpdate(txCtx, req.ID, update)
		})
		if err != nil {
			return nil, err
		}

		outcomes = append(outcomes, dateOutcome)
	} else if !update.IsEmpty() {
		if err := uc.applyUpdate(ctx, req.ID, update); err != nil {
			return nil, err
		}
	}

	// 6. Перечитываем заявку, чтобы вернуть актуальное состояние
	updated, err := uc.bookingRepo.GetByID(ctx, req.ID)
	if err != nil {
		uc.logger.Error("UpdateBooking: failed to reload booking id=%d: %v", req.ID, err)
		return nil, fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
	}

	uc.logger.Info("UpdateBooking: id=%d committed=%d reverted=%d",
		req.ID, countByStatus(outcomes, StatusCommitted), countByStatus(outcomes, StatusReverted))

	return buildResponse(updated, outcomes), nil
}

// applyUpdate сохраняет зафиксированные поля и маппит ошибки репозитория
func (uc *UseCase) applyUpdate(ctx context.Context, id int64, update domain.BookingUpdate) error {
	if err := uc.bookingRepo.Update(ctx, id, update); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		uc.logger.Error("UpdateBooking: failed to update booking id=%d: %v", id, err)
		return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
	}
	return nil
}

// loadSettings читает документ настроек и сливает его с дефолтами
func (uc *UseCase) loadSettings(ctx context.Context) (domain.Settings, error) {
	patch, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return domain.DefaultSettings(), nil
		}
		uc.logger.Error("UpdateBooking: failed to load settings: %v", err)
		return domain.Settings{}, fmt.Errorf("%w: failed to load settings: %v", ErrInternal, err)
	}
	return domain.MergeWithDefaults(*patch), nil
}
