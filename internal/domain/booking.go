package domain

import (
	"time"
)

// Booking represents a client appointment for a technician visit
type Booking struct {
	ID         int64
	ClientName string
	Phone      string

	// Optional details collected on the booking form
	Address *string
	OS      *string // операционная система клиента (для выездной диагностики)
	Comment *string

	// AppointmentDate holds the booked slot as a timezone-aware instant
	AppointmentDate time.Time

	Completed       bool
	TechnicianNotes *string

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// IsDeleted returns true if the booking has been soft-deleted
func (b *Booking) IsDeleted() bool {
	return b.DeletedAt != nil
}

// IsPast returns true if the appointment instant is strictly before now
func (b *Booking) IsPast(now time.Time) bool {
	return b.AppointmentDate.Before(now)
}

// BookingsFilter фильтр для выборки заявок
type BookingsFilter struct {
	DateFrom       *time.Time // Начало периода (опционально, если nil - без ограничения)
	DateTo         *time.Time // Конец периода (опционально, если nil - без ограничения)
	Completed      *bool      // Фильтр по статусу выполнения (опционально)
	IncludeDeleted bool       // Включать ли удалённые заявки
	Limit          *uint64    // Размер страницы (опционально)
	Offset         *uint64    // Смещение (опционально)
}

// BookingUpdate carries the fields of a partial booking update. Nil fields
// keep their current values.
type BookingUpdate struct {
	ClientName      *string
	Phone           *string
	Address         *string
	OS              *string
	Comment         *string
	AppointmentDate *time.Time
	Completed       *bool
	TechnicianNotes *string
}

// IsEmpty returns true if the update carries no changes
func (u BookingUpdate) IsEmpty() bool {
	return u.ClientName == nil &&
		u.Phone == nil &&
		u.Address == nil &&
		u.OS == nil &&
		u.Comment == nil &&
		u.AppointmentDate == nil &&
		u.Completed == nil &&
		u.TechnicianNotes == nil
}
