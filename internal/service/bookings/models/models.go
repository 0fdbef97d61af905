package models

import (
	"time"

	"github.com/m04kA/TDS-BookingService/internal/domain"
)

// Request модели

// GetBookingsRequest запрос на получение списка заявок
type GetBookingsRequest struct {
	DateFrom       *time.Time `json:"dateFrom,omitempty"`       // Начало периода (опционально)
	DateTo         *time.Time `json:"dateTo,omitempty"`         // Конец периода (опционально)
	Completed      *bool      `json:"completed,omitempty"`      // Фильтр по статусу выполнения (опционально)
	IncludeDeleted bool       `json:"includeDeleted,omitempty"` // Включить удалённые заявки
	Limit          *uint64    `json:"limit,omitempty"`
	Offset         *uint64    `json:"offset,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBookingsRequest) ToDomainFilter() domain.BookingsFilter {
	return domain.BookingsFilter{
		DateFrom:       r.DateFrom,
		DateTo:         r.DateTo,
		Completed:      r.Completed,
		IncludeDeleted: r.IncludeDeleted,
		Limit:          r.Limit,
		Offset:         r.Offset,
	}
}

// Response модели

// BookingResponse ответ с данными заявки
type BookingResponse struct {
	ID              int64   `json:"id"`
	ClientName      string  `json:"clientName"`
	Phone           string  `json:"phone"`
	Address         *string `json:"address,omitempty"`
	OS              *string `json:"os,omitempty"`
	Comment         *string `json:"comment,omitempty"`
	AppointmentDate string  `json:"appointmentDate"` // ISO 8601, момент визита
	Completed       bool    `json:"completed"`
	TechnicianNotes *string `json:"technicianNotes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	DeletedAt *string   `json:"deletedAt,omitempty"` // ISO 8601, только для includeDeleted выборок
}

// BookingListResponse ответ со списком заявок
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		ClientName:      b.ClientName,
		Phone:           b.Phone,
		Address:         b.Address,
		OS:              b.OS,
		Comment:         b.Comment,
		AppointmentDate: b.AppointmentDate.Format(time.RFC3339),
		Completed:       b.Completed,
		TechnicianNotes: b.TechnicianNotes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	// Конвертируем DeletedAt в строку ISO 8601
	if b.DeletedAt != nil {
		deletedStr := b.DeletedAt.Format(time.RFC3339)
		resp.DeletedAt = &deletedStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}
