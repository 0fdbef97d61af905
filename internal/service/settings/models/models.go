package models

import (
	"github.com/m04kA/TDS-BookingService/internal/domain"
	"github.com/m04kA/TDS-BookingService/pkg/types"
)

// Request модели

// UpdateSettingsRequest запрос на изменение настроек календаря.
// Указанные поля заменяют текущие значения, отсутствующие не трогаются.
type UpdateSettingsRequest struct {
	FirstDayOfWeek    *int      `json:"firstDayOfWeek,omitempty"`
	DisabledWeekdays  *[]int    `json:"disabledWeekdays,omitempty"`
	DisabledDates     *[]string `json:"disabledDates,omitempty"`
	MinIntervalHours  *int      `json:"minIntervalHours,omitempty"`
	WorkStartTime     *string   `json:"workStartTime,omitempty"`
	WorkEndTime       *string   `json:"workEndTime,omitempty"`
	MaxBookingsPerDay *int      `json:"maxBookingsPerDay,omitempty"`
	SendSMS           *bool     `json:"sendSMS,omitempty"`
}

// ToDomainPatch конвертирует request в domain патч
func (r *UpdateSettingsRequest) ToDomainPatch() domain.SettingsPatch {
	patch := domain.SettingsPatch{
		FirstDayOfWeek:    r.FirstDayOfWeek,
		DisabledWeekdays:  r.DisabledWeekdays,
		DisabledDates:     r.DisabledDates,
		MinIntervalHours:  r.MinIntervalHours,
		MaxBookingsPerDay: r.MaxBookingsPerDay,
		SendSMS:           r.SendSMS,
	}

	if r.WorkStartTime != nil {
		start := types.TimeString(*r.WorkStartTime)
		patch.WorkStartTime = &start
	}
	if r.WorkEndTime != nil {
		end := types.TimeString(*r.WorkEndTime)
		patch.WorkEndTime = &end
	}

	return patch
}

// Response модели

// SettingsResponse ответ с настройками календаря
type SettingsResponse struct {
	FirstDayOfWeek    int      `json:"firstDayOfWeek"`
	DisabledWeekdays  []int    `json:"disabledWeekdays"`
	DisabledDates     []string `json:"disabledDates"`
	MinIntervalHours  int      `json:"minIntervalHours"`
	WorkStartTime     string   `json:"workStartTime"`
	WorkEndTime       string   `json:"workEndTime"`
	MaxBookingsPerDay *int     `json:"maxBookingsPerDay"`
	SendSMS           bool     `json:"sendSMS"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s domain.Settings) *SettingsResponse {
	return &SettingsResponse{
		FirstDayOfWeek:    s.FirstDayOfWeek,
		DisabledWeekdays:  s.DisabledWeekdays,
		DisabledDates:     s.DisabledDates,
		MinIntervalHours:  s.MinIntervalHours,
		WorkStartTime:     s.WorkStartTime.String(),
		WorkEndTime:       s.WorkEndTime.String(),
		MaxBookingsPerDay: s.MaxBookingsPerDay,
		SendSMS:           s.SendSMS,
	}
}
