package update_booking

import (
	"errors"
	"time"

	"github.com/m04kA/TDS-BookingService/internal/domain"
	updateBooking "github.com/m04kA/TDS-BookingService/internal/usecase/update_booking"
	"github.com/m04kA/TDS-BookingService/pkg/types"
)

// errDateTimePair возвращается, когда date и time переданы не парой.
var errDateTimePair = errors.New("date and time must be provided together")

// UpdateBookingRequest HTTP запрос на частичное изменение заявки.
// Все поля опциональны, перенос записи требует date и time одновременно.
type UpdateBookingRequest struct {
	ClientName      *string `json:"clientName,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Address         *string `json:"address,omitempty"`
	OS              *string `json:"os,omitempty"`
	Comment         *string `json:"comment,omitempty"`
	Date            *string `json:"date,omitempty"` // Формат: "2026-03-20"
	Time            *string `json:"time,omitempty"` // Формат: "15:00"
	Completed       *bool   `json:"completed,omitempty"`
	TechnicianNotes *string `json:"technicianNotes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
func (r *UpdateBookingRequest) ToUseCaseRequest(bookingID int64) (*updateBooking.Request, error) {
	req := &updateBooking.Request{
		ID:              bookingID,
		ClientName:      r.ClientName,
		Phone:           r.Phone,
		Address:         r.Address,
		OS:              r.OS,
		Comment:         r.Comment,
		Completed:       r.Completed,
		TechnicianNotes: r.TechnicianNotes,
	}

	if (r.Date == nil) != (r.Time == nil) {
		return nil, errDateTimePair
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}

		startTime, err := types.NewTimeStringFromString(*r.Time)
		if err != nil {
			return nil, err
		}

		instant := startTime.At(date)
		req.AppointmentDate = &instant
	}

	return req, nil
}

// FieldOutcomeResponse итог обработки одного поля запроса.
type FieldOutcomeResponse struct {
	Field  string  `json:"field"`
	Status string  `json:"status"` // "committed" или "reverted"
	Reason *string `json:"reason,omitempty"`
}

// UpdateBookingResponse HTTP ответ с актуальным состоянием заявки.
type UpdateBookingResponse struct {
	ID              int64                  `json:"id"`
	ClientName      string                 `json:"clientName"`
	Phone           string                 `json:"phone"`
	Address         *string                `json:"address,omitempty"`
	OS              *string                `json:"os,omitempty"`
	Comment         *string                `json:"comment,omitempty"`
	Date            string                 `json:"date"` // Формат: "2026-03-20"
	Time            string                 `json:"time"` // Формат: "15:00"
	Completed       bool                   `json:"completed"`
	TechnicianNotes *string                `json:"technicianNotes,omitempty"`
	CreatedAt       string                 `json:"createdAt"`
	UpdatedAt       string                 `json:"updatedAt"`
	Fields          []FieldOutcomeResponse `json:"fields"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель.
func FromUseCaseResponse(resp *updateBooking.Response) *UpdateBookingResponse {
	fields := make([]FieldOutcomeResponse, 0, len(resp.Fields))
	for _, f := range resp.Fields {
		fields = append(fields, FieldOutcomeResponse{
			Field:  f.Field,
			Status: f.Status,
			Reason: f.Reason,
		})
	}

	return &UpdateBookingResponse{
		ID:              resp.ID,
		ClientName:      resp.ClientName,
		Phone:           resp.Phone,
		Address:         resp.Address,
		OS:              resp.OS,
		Comment:         resp.Comment,
		Date:            resp.AppointmentDate.Format(domain.DateFormat),
		Time:            types.NewTimeString(resp.AppointmentDate).String(),
		Completed:       resp.Completed,
		TechnicianNotes: resp.TechnicianNotes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
		Fields:          fields,
	}
}
