package domain

import (
	"time"

	"github.com/m04kA/TDS-BookingService/pkg/types"
)

// GenerateTimeSlots builds the ladder of candidate slots between start and
// end with a fixed step of SlotStepMinutes. Both endpoints are inclusive:
// the last slot is the largest generated value not after end. Returns an
// empty slice if start is after end.
func GenerateTimeSlots(start, end types.TimeString) []types.TimeString {
	slots := make([]types.TimeString, 0)

	current := start
	for !current.IsAfter(end) {
		slots = append(slots, current)

		next, err := current.AddMinutes(SlotStepMinutes)
		if err != nil {
			// Переход через полночь - дальше слотов нет
			break
		}
		current = next
	}

	return slots
}

// IsSlotAvailable reports whether the candidate instant keeps the minimum
// interval to every existing booking instant. A distance exactly equal to
// the interval is allowed, only strictly smaller distances block the slot.
// With no existing bookings every candidate is available.
func IsSlotAvailable(candidate time.Time, existing []time.Time, minIntervalHours int) bool {
	minInterval := time.Duration(minIntervalHours) * time.Hour

	for _, booked := range existing {
		diff := candidate.Sub(booked)
		if diff < 0 {
			diff = -diff
		}
		if diff < minInterval {
			return false
		}
	}

	return true
}

// FreeSlots returns the slots of the working day that keep the minimum
// interval to every instant in bookings. The result preserves generation
// order and is never nil.
func FreeSlots(date time.Time, settings Settings, bookings []time.Time) []types.TimeString {
	slots := GenerateTimeSlots(settings.WorkStartTime, settings.WorkEndTime)

	free := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if IsSlotAvailable(slot.At(date), bookings, settings.MinIntervalHours) {
			free = append(free, slot)
		}
	}

	return free
}

// IsDateDisabled reports whether the date must be blocked in the calendar.
// Bookings must cover at least the calendar day of date, widened by the
// minimum interval on both sides.
func IsDateDisabled(date time.Time, settings Settings, bookings []time.Time, now time.Time) bool {
	// 1. Прошедшие даты
	if IsDateInPast(date, now) {
		return true
	}

	// 2. Отключённые дни недели
	if settings.IsWeekdayDisabled(int(date.Weekday())) {
		return true
	}

	// 3. Отключённые даты
	if settings.IsDateDisabledExplicitly(date.Format(DateFormat)) {
		return true
	}

	// 4. Дневной лимит записей
	if settings.MaxBookingsPerDay != nil && CountBookingsOnDay(date, bookings) >= *settings.MaxBookingsPerDay {
		return true
	}

	// 5. Нет ни одного свободного слота (проверяется последней)
	return len(FreeSlots(date, settings, bookings)) == 0
}

// IsDateInPast reports whether the calendar day of date is strictly before
// the calendar day of now. Time-of-day components are ignored.
func IsDateInPast(date, now time.Time) bool {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return d.Before(n)
}

// CountBookingsOnDay counts the instants that fall on the calendar day of
// date, from 00:00:00 through 23:59:59 in the date's location.
func CountBookingsOnDay(date time.Time, bookings []time.Time) int {
	count := 0
	for _, b := range bookings {
		if sameDay(b.In(date.Location()), date) {
			count++
		}
	}
	return count
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
