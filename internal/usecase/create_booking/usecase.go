package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TDS-BookingService/internal/domain"
	settingsRepo "github.com/m04kA/TDS-BookingService/internal/infra/storage/settings"
)

// UseCase use case для создания заявки на запись
type UseCase struct {
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	smsClient    SMSClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	smsClient SMSClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		smsClient:    smsClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания заявки.
// Проверка доступности и вставка выполняются в сериализуемой транзакции
// на свежем снимке заявок, чтобы конкурентные записи не заняли один слот.
// SMS уведомление отправляется после коммита и не влияет на результат.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%q, date=%s, time=%s",
		req.ClientName, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Нормализуем телефон
	phone, err := domain.NormalizePhone(req.Phone)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid phone %q", req.Phone)
		return nil, fmt.Errorf("%w: phone cannot be normalized", ErrInvalidInput)
	}

	// 3. Получаем текущее время
	now := uc.timeProvider.Now()

	// 4. Дата не должна быть в прошлом (сравнение только по дате)
	if domain.IsDateInPast(req.Date, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	var (
		result   *domain.Booking
		settings domain.Settings
	)

	// 5. Выполняем проверку доступности и вставку в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Загружаем настройки календаря
		settings, err = uc.loadSettings(txCtx)
		if err != nil {
			return err
		}

		// 5.2. Слот должен принадлежать сетке рабочего дня
		if !slotOnLadder(req.StartTime, settings) {
			uc.logger.Warn("CreateBooking: time %s is not on the slot ladder", req.StartTime)
			return ErrInvalidTimeSlot
		}

		// 5.3. Получаем снимок заявок вокруг даты с блокировкой (FOR UPDATE)
		from, to := snapshotWindow(req.Date, settings.MinIntervalHours)
		instants, err := uc.bookingRepo.ListInstants(txCtx, &from, &to)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to load booking instants: %v", err)
			return fmt.Errorf("%w: failed to load booking instants: %v", ErrInternal, err)
		}

		// 5.4. Дата не должна быть отключена
		if domain.IsDateDisabled(req.Date, settings, instants, now) {
			uc.logger.Warn("CreateBooking: date %s is disabled", req.Date.Format(domain.DateFormat))
			return ErrDateDisabled
		}

		// 5.5. Слот должен выдерживать минимальный интервал
		appointment := req.StartTime.At(req.Date)
		if !domain.IsSlotAvailable(appointment, instants, settings.MinIntervalHours) {
			uc.logger.Warn("CreateBooking: slot %s %s is not available",
				req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotNotAvailable
		}

		// 5.6. Создаем заявку
		booking := &domain.Booking{
			ClientName:      req.ClientName,
			Phone:           phone,
			Address:         req.Address,
			OS:              req.OS,
			Comment:         req.Comment,
			AppointmentDate: appointment,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 6. Отправляем подтверждение после коммита: сбой не откатывает заявку
	notification := uc.dispatchConfirmation(ctx, settings, result)

	return &Response{
		ID:              result.ID,
		ClientName:      result.ClientName,
		Phone:           result.Phone,
		Address:         result.Address,
		OS:              result.OS,
		Comment:         result.Comment,
		AppointmentDate: result.AppointmentDate,
		Completed:       result.Completed,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
		Notification:    notification,
	}, nil
}

// dispatchConfirmation отправляет SMS подтверждение, если оно включено.
// Любая ошибка отправки превращается в предупреждение в ответе: заявка
// уже сохранена, повторной отправки и компенсации нет.
func (uc *UseCase) dispatchConfirmation(ctx context.Context, settings domain.Settings, booking *domain.Booking) *NotificationResult {
	if !settings.SendSMS {
		return nil
	}

	dispatchID := uuid.New().String()
	text := confirmationText(booking.AppointmentDate)

	uc.logger.Info("CreateBooking: dispatching confirmation sms dispatch_id=%s booking_id=%d",
		dispatchID, booking.ID)

	resp, err := uc.smsClient.SendMessage(ctx, booking.Phone, text)
	if err != nil {
		warning := notificationWarning(err)
		uc.logger.Warn("CreateBooking: confirmation sms failed dispatch_id=%s booking_id=%d: %v",
			dispatchID, booking.ID, err)
		return &NotificationResult{
			DispatchID: dispatchID,
			Sent:       false,
			Warning:    &warning,
		}
	}

	uc.logger.Info("CreateBooking: confirmation sms accepted dispatch_id=%s provider_id=%s",
		dispatchID, resp.ID)
	return &NotificationResult{
		DispatchID: dispatchID,
		Sent:       true,
	}
}

// confirmationText собирает текст SMS подтверждения
func confirmationText(appointment time.Time) string {
	return fmt.Sprintf("Вы записаны на %s в %s. Если планы изменятся, пожалуйста, предупредите нас.",
		appointment.Format("02.01.2006"), appointment.Format("15:04"))
}

// loadSettings читает документ настроек и сливает его с дефолтами
func (uc *UseCase) loadSettings(ctx context.Context) (domain.Settings, error) {
	patch, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return domain.DefaultSettings(), nil
		}
		uc.logger.Error("CreateBooking: failed to load settings: %v", err)
		return domain.Settings{}, fmt.Errorf("%w: failed to load settings: %v", ErrInternal, err)
	}
	return domain.MergeWithDefaults(*patch), nil
}
