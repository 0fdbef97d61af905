package get_available_slots

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

func slotTimes(slots []Slot) []types.TimeString {
	out := make([]types.TimeString, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.StartTime)
	}
	return out
}

func TestGetAvailableSlotsEmptyCalendar(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeSettingsRepo{err: settings.ErrSettingsNotFound})

	resp, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.True(t, resp.Available)
	require.Len(t, resp.Slots, 12)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("20:00"), resp.Slots[11].StartTime)
}

func TestGetAvailableSlotsExcludesIntervalAroundBooking(t *testing.T) {
	repo := &fakeBookingRepo{instants: []time.Time{
		time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC),
	}}
	uc := newTestUseCase(repo, &fakeSettingsRepo{err: settings.ErrSettingsNotFound})

	resp, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	times := slotTimes(resp.Slots)
	assert.NotContains(t, times, types.TimeString("11:00"))
	assert.NotContains(t, times, types.TimeString("12:00"))
	assert.NotContains(t, times, types.TimeString("13:00"))
	assert.Contains(t, times, types.TimeString("10:00"))
	assert.Contains(t, times, types.TimeString("14:00"))
	assert.Len(t, times, 9)
}

func TestGetAvailableSlotsDisabledDate(t *testing.T) {
	t.Run("past date", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeSettingsRepo{err: settings.ErrSettingsNotFound})

		resp, err := uc.Execute(context.Background(), &Request{
			Date: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		assert.False(t, resp.Available)
		assert.Empty(t, resp.Slots)
		assert.NotNil(t, resp.Slots, "slots must serialize as [] rather than null")
	})

	t.Run("disabled weekday", func(t *testing.T) {
		// 2026-03-20 это пятница (weekday 5)
		cfg := &fakeSettingsRepo{patch: &domain.SettingsPatch{
			DisabledWeekdays: &[]int{5},
		}}
		uc := newTestUseCase(&fakeBookingRepo{}, cfg)

		resp, err := uc.Execute(context.Background(), &Request{
			Date: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		assert.False(t, resp.Available)
		assert.Empty(t, resp.Slots)
	})

	t.Run("daily cap reached", func(t *testing.T) {
		repo := &fakeBookingRepo{instants: []time.Time{
			time.Date(2026, 3, 20, 15, 0, 0, 0, time.UTC),
		}}
		cfg := &fakeSettingsRepo{patch: &domain.SettingsPatch{
			MaxBookingsPerDay: intPtr(1),
		}}
		uc := newTestUseCase(repo, cfg)

		resp, err := uc.Execute(context.Background(), &Request{
			Date: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		assert.False(t, resp.Available)
		assert.Empty(t, resp.Slots)
	})
}

func TestGetAvailableSlotsErrors(t *testing.T) {
	t.Run("zero date", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeSettingsRepo{err: settings.ErrSettingsNotFound})

		_, err := uc.Execute(context.Background(), &Request{})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("settings repository failure", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeSettingsRepo{err: errors.New("connection refused")})

		_, err := uc.Execute(context.Background(), &Request{
			Date: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		})
		require.ErrorIs(t, err, ErrInternal)
	})

	t.Run("booking repository failure", func(t *testing.T) {
		repo := &fakeBookingRepo{err: errors.New("connection refused")}
		uc := newTestUseCase(repo, &fakeSettingsRepo{err: settings.ErrSettingsNotFound})

		_, err := uc.Execute(context.Background(), &Request{
			Date: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		})
		require.ErrorIs(t, err, ErrInternal)
	})
}

func intPtr(v int) *int { return &v }
