package create_booking

import (
	"time"

	"github.com/m04kA/TDS-BookingService/internal/domain"
	createBooking "github.com/m04kA/TDS-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/TDS-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ClientName string  `json:"clientName"`
	Phone      string  `json:"phone"`
	Address    *string `json:"address,omitempty"`
	OS         *string `json:"os,omitempty"`
	Comment    *string `json:"comment,omitempty"`
	Date       string  `json:"date"` // "2026-03-20"
	Time       string  `json:"time"` // "10:00"
}

// NotificationResponse итог отправки SMS подтверждения
type NotificationResponse struct {
	DispatchID string  `json:"dispatchId"`
	Sent       bool    `json:"sent"`
	Warning    *string `json:"warning,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         int64   `json:"id"`
	ClientName string  `json:"clientName"`
	Phone      string  `json:"phone"`
	Address    *string `json:"address,omitempty"`
	OS         *string `json:"os,omitempty"`
	Comment    *string `json:"comment,omitempty"`
	Date       string  `json:"date"`
	Time       string  `json:"time"`
	Completed  bool    `json:"completed"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`

	Notification *NotificationResponse `json:"notification,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ClientName: r.ClientName,
		Phone:      r.Phone,
		Address:    r.Address,
		OS:         r.OS,
		Comment:    r.Comment,
		Date:       date,
		StartTime:  startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:         resp.ID,
		ClientName: resp.ClientName,
		Phone:      resp.Phone,
		Address:    resp.Address,
		OS:         resp.OS,
		Comment:    resp.Comment,
		Date:       resp.AppointmentDate.Format(domain.DateFormat),
		Time:       types.NewTimeString(resp.AppointmentDate).String(),
		Completed:  resp.Completed,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}

	if resp.Notification != nil {
		out.Notification = &NotificationResponse{
			DispatchID: resp.Notification.DispatchID,
			Sent:       resp.Notification.Sent,
			Warning:    resp.Notification.Warning,
		}
	}

	return out
}
