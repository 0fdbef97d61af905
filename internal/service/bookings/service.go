package bookings

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/m04kA/TDS-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/TDS-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с заявками
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает заявку по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает заявки с гибкой фильтрацией
// Поддерживает фильтрацию по периоду визита, статусу выполнения и включению
// мягко удалённых заявок; результат отсортирован по дате визита, сначала новые.
func (s *Service) List(ctx context.Context, req *models.GetBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := "List: fetching bookings"
	if req.DateFrom != nil && req.DateTo != nil {
		logMsg += fmt.Sprintf(", period=%s to %s",
			req.DateFrom.Format("2006-01-02"), req.DateTo.Format("2006-01-02"))
	}
	if req.Completed != nil {
		logMsg += fmt.Sprintf(", completed=%t", *req.Completed)
	}
	if req.IncludeDeleted {
		logMsg += ", includeDeleted=true"
	}
	s.logger.Info(logMsg)

	bookings, err := s.bookingRepo.List(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// SoftDelete помечает заявку удалённой
// Удалённая заявка исчезает из списков и из снимков фильтра доступности,
// строка в таблице остаётся. Повторное удаление отвечает как "не найдено".
func (s *Service) SoftDelete(ctx context.Context, id int64) error {
	s.logger.Info("SoftDelete: deleting booking id=%d", id)

	if err := s.bookingRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("SoftDelete: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("SoftDelete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: SoftDelete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SoftDelete: successfully deleted booking id=%d", id)
	return nil
}
