package domain

// Default scheduling settings values
const (
	DefaultMinIntervalHours = 2
	DefaultWorkStartTime    = "09:00"
	DefaultWorkEndTime      = "20:00"
)

// Business validation constants
const (
	MinIntervalHoursMin = 1

	MaxBookingsPerDayMin = 1

	MaxClientNameLength      = 200
	MaxAddressLength         = 300
	MaxOSLength              = 100
	MaxCommentLength         = 500
	MaxTechnicianNotesLength = 1000
)

// SlotStepMinutes шаг генерации слотов: ровно один час
const SlotStepMinutes = 60

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// SettingsKey ключ, под которым блоб настроек хранится в tds_settings
const SettingsKey = "scheduling"
