package update_booking

import (
	"time"

	"github.com/m04kA/TDS-BookingService/internal/domain"
)

// Статусы поля в отчете о правке
const (
	StatusCommitted = "committed"
	StatusReverted  = "reverted"
)

// Request модель запроса на частичное редактирование заявки.
// Nil поля не редактируются.
type Request struct {
	ID int64 // ID заявки

	ClientName      *string
	Phone           *string
	Address         *string
	OS              *string
	Comment         *string
	AppointmentDate *time.Time
	Completed       *bool
	TechnicianNotes *string
}

// hasFields возвращает true, если запрос содержит хотя бы одну правку
func (r *Request) hasFields() bool {
	return r.ClientName != nil ||
		r.Phone != nil ||
		r.Address != nil ||
		r.OS != nil ||
		r.Comment != nil ||
		r.AppointmentDate != nil ||
		r.Completed != nil ||
		r.TechnicianNotes != nil
}

// FieldOutcome итог правки одного поля
type FieldOutcome struct {
	Field  string  // Имя поля из запроса
	Status string  // committed или reverted
	Reason *string // Причина отката, только для reverted
}

// Response модель ответа: актуальное состояние заявки плюс отчет по полям
type Response struct {
	ID              int64
	ClientName      string
	Phone           string
	Address         *string
	OS              *string
	Comment         *string
	AppointmentDate time.Time
	Completed       bool
	TechnicianNotes *string

	CreatedAt time.Time
	UpdatedAt time.Time

	Fields []FieldOutcome // Итог по каждому присланному полю
}

// buildResponse собирает ответ из перечитанной заявки и отчета по полям
func buildResponse(booking *domain.Booking, outcomes []FieldOutcome) *Response {
	return &Response{
		ID:              booking.ID,
		ClientName:      booking.ClientName,
		Phone:           booking.Phone,
		Address:         booking.Address,
		OS:              booking.OS,
		Comment:         booking.Comment,
		AppointmentDate: booking.AppointmentDate,
		Completed:       booking.Completed,
		TechnicianNotes: booking.TechnicianNotes,
		CreatedAt:       booking.CreatedAt,
		UpdatedAt:       booking.UpdatedAt,
		Fields:          outcomes,
	}
}
