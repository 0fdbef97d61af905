package get_available_days

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TDS-BookingService/internal/domain"
	"github.com/m04kA/TDS-BookingService/internal/infra/storage/settings"
	"github.com/m04kA/TDS-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	instants []time.Time
	err      error
}

func (f *fakeBookingRepo) ListInstants(_ context.Context, _, _ *time.Time) ([]time.Time, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.instants, nil
}

type fakeSettingsRepo struct {
	patch *domain.SettingsPatch
	err   error
}

func (f *fakeSettingsRepo) Get(_ context.Context) (*domain.SettingsPatch, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.patch, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(repo *fakeBookingRepo, cfg *fakeSettingsRepo) *UseCase {
	uc := NewUseCase(repo, cfg, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	return uc
}

func march2026() *Request {
	return &Request{Month: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}
}

// dayByDate ищет вердикт для конкретного дня месяца
func dayByDate(t *testing.T, days []Day, dayOfMonth int) Day {
	t.Helper()
	for _, d := range days {
		if d.Date.Day() == dayOfMonth {
			return d
		}
	}
	t.Fatalf("day %d not found in response", dayOfMonth)
	return Day{}
}

func TestGetAvailableDaysMarksPastDays(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeSettingsRepo{err: settings.ErrSettingsNotFound})

	resp, err := uc.Execute(context.Background(), march2026())
	require.NoError(t, err)

	require.Len(t, resp.Days, 31)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), resp.Month)

	// Дни до "сегодня" закрыты, сегодня и дальше открыты
	assert.False(t, dayByDate(t, resp.Days, 9).Available)
	assert.True(t, dayByDate(t, resp.Days, 10).Available)
	assert.True(t, dayByDate(t, resp.Days, 31).Available)
}

func TestGetAvailableDaysDisabledWeekday(t *testing.T) {
	// Воскресенья марта 2026: 1, 8, 15, 22, 29
	cfg := &fakeSettingsRepo{patch: &domain.SettingsPatch{
		DisabledWeekdays: &[]int{0},
	}}
	uc := newTestUseCase(&fakeBookingRepo{}, cfg)

	resp, err := uc.Execute(context.Background(), march2026())
	require.NoError(t, err)

	assert.False(t, dayByDate(t, resp.Days, 15).Available)
	assert.False(t, dayByDate(t, resp.Days, 22).Available)
	assert.True(t, dayByDate(t, resp.Days, 16).Available)
}

func TestGetAvailableDaysExplicitDisabledDate(t *testing.T) {
	cfg := &fakeSettingsRepo{patch: &domain.SettingsPatch{
		DisabledDates: &[]string{"2026-03-20"},
	}}
	uc := newTestUseCase(&fakeBookingRepo{}, cfg)

	resp, err := uc.Execute(context.Background(), march2026())
	require.NoError(t, err)

	assert.False(t, dayByDate(t, resp.Days, 20).Available)
	assert.True(t, dayByDate(t, resp.Days, 21).Available)
}

func TestGetAvailableDaysDailyCap(t *testing.T) {
	repo := &fakeBookingRepo{instants: []time.Time{
		time.Date(2026, 3, 20, 15, 0, 0, 0, time.UTC),
	}}
	cfg := &fakeSettingsRepo{patch: &domain.SettingsPatch{
		MaxBookingsPerDay: intPtr(1),
	}}
	uc := newTestUseCase(repo, cfg)

	resp, err := uc.Execute(context.Background(), march2026())
	require.NoError(t, err)

	assert.False(t, dayByDate(t, resp.Days, 20).Available)
	assert.True(t, dayByDate(t, resp.Days, 21).Available)
}

func TestGetAvailableDaysFullyBookedDay(t *testing.T) {
	// Рабочий день 10:00-12:00, интервал 2 часа: заявки на 10:30 и 12:30
	// перекрывают все три слота, день закрывается без явных ограничений
	repo := &fakeBookingRepo{instants: []time.Time{
		time.Date(2026, 3, 20, 10, 30, 0, 0, time.UTC),
		time.Date(2026, 3, 20, 12, 30, 0, 0, time.UTC),
	}}
	cfg := &fakeSettingsRepo{patch: &domain.SettingsPatch{
		WorkStartTime: timeStrPtr("10:00"),
		WorkEndTime:   timeStrPtr("12:00"),
	}}
	uc := newTestUseCase(repo, cfg)

	resp, err := uc.Execute(context.Background(), march2026())
	require.NoError(t, err)

	assert.False(t, dayByDate(t, resp.Days, 20).Available)
	assert.True(t, dayByDate(t, resp.Days, 21).Available)
}

func TestGetAvailableDaysShorterMonth(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeSettingsRepo{err: settings.ErrSettingsNotFound})

	resp, err := uc.Execute(context.Background(), &Request{
		Month: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Len(t, resp.Days, 30)
}

func TestGetAvailableDaysErrors(t *testing.T) {
	t.Run("zero month", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeSettingsRepo{err: settings.ErrSettingsNotFound})

		_, err := uc.Execute(context.Background(), &Request{})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("settings repository failure", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeSettingsRepo{err: errors.New("connection refused")})

		_, err := uc.Execute(context.Background(), march2026())
		require.ErrorIs(t, err, ErrInternal)
	})

	t.Run("booking repository failure", func(t *testing.T) {
		repo := &fakeBookingRepo{err: errors.New("connection refused")}
		uc := newTestUseCase(repo, &fakeSettingsRepo{err: settings.ErrSettingsNotFound})

		_, err := uc.Execute(context.Background(), march2026())
		require.ErrorIs(t, err, ErrInternal)
	})
}

func intPtr(v int) *int { return &v }

func timeStrPtr(s string) *types.TimeString {
	ts := types.TimeString(s)
	return &ts
}
