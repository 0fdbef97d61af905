package update_booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/TDS-BookingService/internal/domain"
	"github.com/m04kA/TDS-BookingService/pkg/fieldedit"
	"github.com/m04kA/TDS-BookingService/pkg/types"
)

// Имена редактируемых полей в том виде, в котором они приходят в запросе
const (
	fieldClientName      = "clientName"
	fieldPhone           = "phone"
	fieldAddress         = "address"
	fieldOS              = "os"
	fieldComment         = "comment"
	fieldAppointmentDate = "appointmentDate"
	fieldCompleted       = "completed"
	fieldTechnicianNotes = "technicianNotes"
)

// commitField прогоняет одно значение через цикл правки: Begin переводит поле
// в Dirty, Commit либо фиксирует новое значение, либо откатывает его к
// сохраненному. Возвращает зафиксированное значение (nil при откате) и итог
// для отчета.
func commitField[T any](name string, committed T, pending T, validate func(T) error) (*T, FieldOutcome) {
	fld := fieldedit.New(committed)

	if err := fld.Begin(pending); err != nil {
		reason := err.Error()
		return nil, FieldOutcome{Field: name, Status: StatusReverted, Reason: &reason}
	}

	if err := fld.Commit(validate); err != nil {
		reason := err.Error()
		return nil, FieldOutcome{Field: name, Status: StatusReverted, Reason: &reason}
	}

	value := fld.Value()
	return &value, FieldOutcome{Field: name, Status: StatusCommitted}
}

// commitSimpleFields проводит все присланные поля, кроме даты, через цикл
// правки и собирает зафиксированные значения в update
func (uc *UseCase) commitSimpleFields(req *Request, current *domain.Booking, update *domain.BookingUpdate) []FieldOutcome {
	outcomes := make([]FieldOutcome, 0, 8)

	if req.ClientName != nil {
		value, outcome := commitField(fieldClientName, current.ClientName, *req.ClientName, validateClientName)
		update.ClientName = value
		outcomes = append(outcomes, outcome)
	}

	if req.Phone != nil {
		// Валидатор заодно нормализует телефон, сохраняется каноничная форма
		var normalized string
		value, outcome := commitField(fieldPhone, current.Phone, *req.Phone, func(v string) error {
			n, err := domain.NormalizePhone(v)
			if err != nil {
				return err
			}
			normalized = n
			return nil
		})
		if value != nil {
			update.Phone = &normalized
		}
		outcomes = append(outcomes, outcome)
	}

	if req.Address != nil {
		value, outcome := commitField(fieldAddress, strOrEmpty(current.Address), *req.Address,
			optionalFieldValidator(fieldAddress, domain.MaxAddressLength))
		update.Address = value
		outcomes = append(outcomes, outcome)
	}

	if req.OS != nil {
		value, outcome := commitField(fieldOS, strOrEmpty(current.OS), *req.OS,
			optionalFieldValidator(fieldOS, domain.MaxOSLength))
		update.OS = value
		outcomes = append(outcomes, outcome)
	}

	if req.Comment != nil {
		value, outcome := commitField(fieldComment, strOrEmpty(current.Comment), *req.Comment,
			optionalFieldValidator(fieldComment, domain.MaxCommentLength))
		update.Comment = value
		outcomes = append(outcomes, outcome)
	}

	if req.Completed != nil {
		value, outcome := commitField(fieldCompleted, current.Completed, *req.Completed, nil)
		update.Completed = value
		outcomes = append(outcomes, outcome)
	}

	if req.TechnicianNotes != nil {
		value, outcome := commitField(fieldTechnicianNotes, strOrEmpty(current.TechnicianNotes), *req.TechnicianNotes,
			optionalFieldValidator(fieldTechnicianNotes, domain.MaxTechnicianNotesLength))
		update.TechnicianNotes = value
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

func validateClientName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("client name is required")
	}
	if len(name) > domain.MaxClientNameLength {
		return fmt.Errorf("client name exceeds %d characters", domain.MaxClientNameLength)
	}
	return nil
}

func optionalFieldValidator(field string, maxLen int) func(string) error {
	return func(v string) error {
		if len(v) > maxLen {
			return fmt.Errorf("%s exceeds %d characters", field, maxLen)
		}
		return nil
	}
}

// validateAppointment проверяет новый слот так же, как при создании заявки
func validateAppointment(v time.Time, settings domain.Settings, instants []time.Time, now time.Time) error {
	if v.IsZero() {
		return errors.New("appointment date is required")
	}
	if domain.IsDateInPast(v, now) {
		return errors.New("date is in the past")
	}
	if !slotOnLadder(types.NewTimeString(v), settings) {
		return errors.New("time is not on the slot ladder")
	}
	if domain.IsDateDisabled(v, settings, instants, now) {
		return errors.New("date is not available for booking")
	}
	if !domain.IsSlotAvailable(v, instants, settings.MinIntervalHours) {
		return errors.New("slot is not available")
	}
	return nil
}

// slotOnLadder проверяет, что время попадает в сетку слотов рабочего дня
func slotOnLadder(startTime types.TimeString, settings domain.Settings) bool {
	for _, slot := range domain.GenerateTimeSlots(settings.WorkStartTime, settings.WorkEndTime) {
		if slot == startTime {
			return true
		}
	}
	return false
}

// withoutInstant возвращает снимок без одного вхождения instant: при переносе
// заявки её собственный слот не должен блокировать соседние времена
func withoutInstant(instants []time.Time, instant time.Time) []time.Time {
	out := make([]time.Time, 0, len(instants))
	skipped := false
	for _, t := range instants {
		if !skipped && t.Equal(instant) {
			skipped = true
			continue
		}
		out = append(out, t)
	}
	return out
}

func strOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func countByStatus(outcomes []FieldOutcome, status string) int {
	n := 0
	for _, o := range outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}
