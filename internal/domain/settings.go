package domain

import "github.com/m04kA/TDS-BookingService/pkg/types"

// Settings - настройки календаря записи.
//
// Settings are persisted as a single JSON document, so the struct carries
// the serialized field names directly. Weekdays are indexed 0 (Sunday)
// through 6 (Saturday).
type Settings struct {
	FirstDayOfWeek    int              `json:"firstDayOfWeek"`
	DisabledWeekdays  []int            `json:"disabledWeekdays"`
	DisabledDates     []string         `json:"disabledDates"` // даты в формате YYYY-MM-DD
	MinIntervalHours  int              `json:"minIntervalHours"`
	WorkStartTime     types.TimeString `json:"workStartTime"`
	WorkEndTime       types.TimeString `json:"workEndTime"`
	MaxBookingsPerDay *int             `json:"maxBookingsPerDay,omitempty"` // nil - без лимита
	SendSMS           bool             `json:"sendSMS"`
}

// SettingsPatch is a partially populated settings document. Nil fields mean
// "not present" and keep their previous value when the patch is applied.
type SettingsPatch struct {
	FirstDayOfWeek    *int              `json:"firstDayOfWeek,omitempty"`
	DisabledWeekdays  *[]int            `json:"disabledWeekdays,omitempty"`
	DisabledDates     *[]string         `json:"disabledDates,omitempty"`
	MinIntervalHours  *int              `json:"minIntervalHours,omitempty"`
	WorkStartTime     *types.TimeString `json:"workStartTime,omitempty"`
	WorkEndTime       *types.TimeString `json:"workEndTime,omitempty"`
	MaxBookingsPerDay *int              `json:"maxBookingsPerDay,omitempty"`
	SendSMS           *bool             `json:"sendSMS,omitempty"`
}

// DefaultSettings returns the built-in scheduling settings used when the
// store holds no document yet or the stored document misses some fields.
func DefaultSettings() Settings {
	return Settings{
		FirstDayOfWeek:    1, // понедельник
		DisabledWeekdays:  []int{},
		DisabledDates:     []string{},
		MinIntervalHours:  DefaultMinIntervalHours,
		WorkStartTime:     types.TimeString(DefaultWorkStartTime),
		WorkEndTime:       types.TimeString(DefaultWorkEndTime),
		MaxBookingsPerDay: nil,
		SendSMS:           false,
	}
}

// ApplyTo overlays the non-nil patch fields on top of base and returns the
// result. Base is not modified, slices are copied.
func (p SettingsPatch) ApplyTo(base Settings) Settings {
	result := base

	if p.FirstDayOfWeek != nil {
		result.FirstDayOfWeek = *p.FirstDayOfWeek
	}
	if p.DisabledWeekdays != nil {
		result.DisabledWeekdays = append([]int{}, (*p.DisabledWeekdays)...)
	}
	if p.DisabledDates != nil {
		result.DisabledDates = append([]string{}, (*p.DisabledDates)...)
	}
	if p.MinIntervalHours != nil {
		result.MinIntervalHours = *p.MinIntervalHours
	}
	if p.WorkStartTime != nil {
		result.WorkStartTime = *p.WorkStartTime
	}
	if p.WorkEndTime != nil {
		result.WorkEndTime = *p.WorkEndTime
	}
	if p.MaxBookingsPerDay != nil {
		limit := *p.MaxBookingsPerDay
		result.MaxBookingsPerDay = &limit
	}
	if p.SendSMS != nil {
		result.SendSMS = *p.SendSMS
	}

	return result
}

// MergeWithDefaults repairs a partially shaped stored document by filling
// every missing field from DefaultSettings.
func MergeWithDefaults(p SettingsPatch) Settings {
	return p.ApplyTo(DefaultSettings())
}

// IsWeekdayDisabled reports whether the given weekday index is disabled.
func (s Settings) IsWeekdayDisabled(weekday int) bool {
	for _, wd := range s.DisabledWeekdays {
		if wd == weekday {
			return true
		}
	}
	return false
}

// IsDateDisabledExplicitly reports whether the date is listed in DisabledDates.
func (s Settings) IsDateDisabledExplicitly(date string) bool {
	for _, d := range s.DisabledDates {
		if d == date {
			return true
		}
	}
	return false
}
