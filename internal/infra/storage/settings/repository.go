package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/TDS-BookingService/internal/domain"
	"github.com/m04kA/TDS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/TDS-BookingService/pkg/psqlbuilder"
)

const table = "tds_settings"

// Repository репозиторий для работы с настройками календаря.
// Настройки хранятся одним JSONB документом под известным ключом,
// отдельные поля колонками не раскладываются.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get читает сохранённый документ настроек.
// Возвращает ErrSettingsNotFound, если документ ещё не записан.
// Документ возвращается как есть, частично заполненным: слияние
// с дефолтами выполняет сервисный слой.
func (r *Repository) Get(ctx context.Context) (*domain.SettingsPatch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("value").
		From(table).
		Where(squirrel.Eq{"key": domain.SettingsKey}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var raw []byte
	err = executor.QueryRowContext(ctx, query, args...).Scan(&raw)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan value: %v", ErrScanRow, err)
	}

	var patch domain.SettingsPatch
	if err := json.Unmarshal(raw, &patch); err != nil {
		return nil, fmt.Errorf("%w: Get - decode stored document: %v", ErrDecodeValue, err)
	}

	return &patch, nil
}

// Upsert записывает полный документ настроек, перезаписывая предыдущий
func (r *Repository) Upsert(ctx context.Context, settings domain.Settings) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("%w: Upsert - encode document: %v", ErrEncodeValue, err)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("key", "value").
		Values(domain.SettingsKey, raw).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}
