package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/TDS-BookingService/internal/domain"
	"github.com/m04kA/TDS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/TDS-BookingService/pkg/psqlbuilder"
)

const table = "tds_bookings"

var bookingColumns = []string{
	"id",
	"client_name",
	"phone",
	"address",
	"os",
	"comment",
	"appointment_date",
	"completed",
	"technician_notes",
	"created_at",
	"updated_at",
	"deleted_at",
}

// Repository репозиторий для работы с заявками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую заявку
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Иначе выполняет обычный запрос без транзакции.
//
// Транзакция нужна при создании заявки с проверкой доступности слота,
// чтобы исключить гонку между конкурентными записями на одну дату.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"client_name",
			"phone",
			"address",
			"os",
			"comment",
			"appointment_date",
			"completed",
			"technician_notes",
		).
		Values(
			booking.ClientName,
			booking.Phone,
			booking.Address,
			booking.OS,
			booking.Comment,
			booking.AppointmentDate,
			booking.Completed,
			booking.TechnicianNotes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает заявку по ID
// Мягко удалённые заявки считаются отсутствующими.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		Where("deleted_at IS NULL").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List получает заявки с гибкой фильтрацией
// Поддерживает фильтрацию по:
// - Периоду появления в расписании (DateFrom, DateTo) - опционально
// - Статусу выполнения (Completed) - опционально
// - Включению мягко удалённых заявок (IncludeDeleted)
// Результат отсортирован по дате визита, сначала новые.
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(table)

	// Фильтрация по периоду
	if filter.DateFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": *filter.DateTo})
	}

	// Фильтрация по статусу выполнения
	if filter.Completed != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"completed": *filter.Completed})
	}

	// Мягко удалённые заявки по умолчанию скрыты
	if !filter.IncludeDeleted {
		selectBuilder = selectBuilder.Where("deleted_at IS NULL")
	}

	selectBuilder = selectBuilder.OrderBy("appointment_date DESC")

	if filter.Limit != nil {
		selectBuilder = selectBuilder.Limit(*filter.Limit)
	}
	if filter.Offset != nil {
		selectBuilder = selectBuilder.Offset(*filter.Offset)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListInstants получает моменты визитов всех не удалённых заявок за период.
// Это снимок для фильтра доступности: ему нужны только инстанты, не полные строки.
//
// Если вызов идёт внутри транзакции, строки блокируются через FOR UPDATE,
// чтобы конкурентное создание заявки не прошло проверку на устаревшем снимке.
func (r *Repository) ListInstants(ctx context.Context, from, to *time.Time) ([]time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("appointment_date").
		From(table).
		Where("deleted_at IS NULL")

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": *from})
	}
	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": *to})
	}

	selectBuilder = selectBuilder.OrderBy("appointment_date ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListInstants - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListInstants - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	instants := make([]time.Time, 0)
	for rows.Next() {
		var instant time.Time
		if err := rows.Scan(&instant); err != nil {
			return nil, fmt.Errorf("%w: ListInstants - scan appointment_date: %v", ErrScanRow, err)
		}
		instants = append(instants, instant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListInstants - rows error: %v", ErrScanRow, err)
	}

	return instants, nil
}

// Update обновляет только переданные поля заявки
func (r *Repository) Update(ctx context.Context, id int64, update domain.BookingUpdate) error {
	if update.IsEmpty() {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(table).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where("deleted_at IS NULL")

	if update.ClientName != nil {
		updateBuilder = updateBuilder.Set("client_name", *update.ClientName)
	}
	if update.Phone != nil {
		updateBuilder = updateBuilder.Set("phone", *update.Phone)
	}
	if update.Address != nil {
		updateBuilder = updateBuilder.Set("address", *update.Address)
	}
	if update.OS != nil {
		updateBuilder = updateBuilder.Set("os", *update.OS)
	}
	if update.Comment != nil {
		updateBuilder = updateBuilder.Set("comment", *update.Comment)
	}
	if update.AppointmentDate != nil {
		updateBuilder = updateBuilder.Set("appointment_date", *update.AppointmentDate)
	}
	if update.Completed != nil {
		updateBuilder = updateBuilder.Set("completed", *update.Completed)
	}
	if update.TechnicianNotes != nil {
		updateBuilder = updateBuilder.Set("technician_notes", *update.TechnicianNotes)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// SoftDelete помечает заявку удалённой, строка остаётся в таблице.
// Физическое удаление сервис не выполняет.
func (r *Repository) SoftDelete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("deleted_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where("deleted_at IS NULL").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SoftDelete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в заявку
func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ClientName,
		&booking.Phone,
		&booking.Address,
		&booking.OS,
		&booking.Comment,
		&booking.AppointmentDate,
		&booking.Completed,
		&booking.TechnicianNotes,
		&createdAt,
		&updatedAt,
		&booking.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс заявок
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
