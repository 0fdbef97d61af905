package update_settings

import (
	"github.com/m04kA/TDS-BookingService/internal/service/settings/models"
)

// UpdateSettingsRequest HTTP запрос на изменение настроек календаря
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

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest() *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		FirstDayOfWeek:    r.FirstDayOfWeek,
		DisabledWeekdays:  r.DisabledWeekdays,
		DisabledDates:     r.DisabledDates,
		MinIntervalHours:  r.MinIntervalHours,
		WorkStartTime:     r.WorkStartTime,
		WorkEndTime:       r.WorkEndTime,
		MaxBookingsPerDay: r.MaxBookingsPerDay,
		SendSMS:           r.SendSMS,
	}
}
