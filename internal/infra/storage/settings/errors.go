package settings

import "errors"

var (
	// ErrSettingsNotFound возвращается, когда документ настроек ещё не записан
	ErrSettingsNotFound = errors.New("settings.repository: settings not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("settings.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("settings.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("settings.repository: failed to scan row")

	// ErrEncodeValue возвращается при ошибке сериализации документа настроек
	ErrEncodeValue = errors.New("settings.repository: failed to encode settings document")

	// ErrDecodeValue возвращается, когда сохранённый документ не читается как JSON
	ErrDecodeValue = errors.New("settings.repository: failed to decode settings document")
)
