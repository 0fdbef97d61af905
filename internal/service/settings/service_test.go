package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TDS-BookingService/internal/domain"
	settingsRepo "github.com/m04kA/TDS-BookingService/internal/infra/storage/settings"
	"github.com/m04kA/TDS-BookingService/internal/service/settings/models"
	"github.com/m04kA/TDS-BookingService/pkg/ptr"
)

type fakeRepo struct {
	patch    *domain.SettingsPatch
	getErr   error
	upserted []domain.Settings
}

func (f *fakeRepo) Get(ctx context.Context) (*domain.SettingsPatch, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.patch, nil
}

func (f *fakeRepo) Upsert(ctx context.Context, settings domain.Settings) error {
	f.upserted = append(f.upserted, settings)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, NewWatcher(), nopLogger{})
}

func TestServiceGet(t *testing.T) {
	t.Run("missing document falls back to defaults", func(t *testing.T) {
		svc := newTestService(&fakeRepo{getErr: settingsRepo.ErrSettingsNotFound})

		got, err := svc.Get(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "09:00", got.WorkStartTime)
		assert.Equal(t, "20:00", got.WorkEndTime)
		assert.Equal(t, 2, got.MinIntervalHours)
		assert.Nil(t, got.MaxBookingsPerDay)
	})

	t.Run("partially shaped document is repaired field by field", func(t *testing.T) {
		svc := newTestService(&fakeRepo{patch: &domain.SettingsPatch{
			MinIntervalHours: ptr.Ptr(3),
			DisabledWeekdays: ptr.Ptr([]int{6}),
		}})

		got, err := svc.Get(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 3, got.MinIntervalHours)
		assert.Equal(t, []int{6}, got.DisabledWeekdays)
		assert.Equal(t, "09:00", got.WorkStartTime)
	})

	t.Run("repository failure maps to internal error", func(t *testing.T) {
		svc := newTestService(&fakeRepo{getErr: settingsRepo.ErrExecQuery})

		_, err := svc.Get(context.Background())

		require.ErrorIs(t, err, ErrInternal)
	})
}

func TestServiceUpdate(t *testing.T) {
	t.Run("persists the merged document and publishes it", func(t *testing.T) {
		repo := &fakeRepo{getErr: settingsRepo.ErrSettingsNotFound}
		svc := newTestService(repo)

		events, cancel := svc.Subscribe(context.Background())
		defer cancel()

		resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
			MinIntervalHours: ptr.Ptr(3),
			WorkStartTime:    ptr.Ptr("08:00"),
		})

		require.NoError(t, err)
		assert.Equal(t, 3, resp.MinIntervalHours)
		assert.Equal(t, "08:00", resp.WorkStartTime)
		assert.Equal(t, "20:00", resp.WorkEndTime)

		require.Len(t, repo.upserted, 1)
		assert.Equal(t, 3, repo.upserted[0].MinIntervalHours)

		select {
		case got := <-events:
			assert.Equal(t, 3, got.MinIntervalHours)
			assert.Equal(t, "08:00", got.WorkStartTime.String())
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive the committed settings")
		}
	})

	t.Run("validation failure persists and publishes nothing", func(t *testing.T) {
		repo := &fakeRepo{getErr: settingsRepo.ErrSettingsNotFound}
		svc := newTestService(repo)

		events, cancel := svc.Subscribe(context.Background())
		defer cancel()

		tests := []struct {
			name string
			req  *models.UpdateSettingsRequest
		}{
			{
				name: "work start after work end",
				req:  &models.UpdateSettingsRequest{WorkStartTime: ptr.Ptr("21:00")},
			},
			{
				name: "zero interval",
				req:  &models.UpdateSettingsRequest{MinIntervalHours: ptr.Ptr(0)},
			},
			{
				name: "weekday out of range",
				req:  &models.UpdateSettingsRequest{DisabledWeekdays: ptr.Ptr([]int{7})},
			},
			{
				name: "malformed disabled date",
				req:  &models.UpdateSettingsRequest{DisabledDates: ptr.Ptr([]string{"05-01-2026"})},
			},
			{
				name: "malformed work start time",
				req:  &models.UpdateSettingsRequest{WorkStartTime: ptr.Ptr("9am")},
			},
			{
				name: "zero daily cap",
				req:  &models.UpdateSettingsRequest{MaxBookingsPerDay: ptr.Ptr(0)},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Update(context.Background(), tt.req)
				require.ErrorIs(t, err, ErrInvalidInput)
			})
		}

		assert.Empty(t, repo.upserted)

		select {
		case got := <-events:
			t.Fatalf("rejected update was published: %+v", got)
		default:
		}
	})

	t.Run("update applies on top of the stored document", func(t *testing.T) {
		repo := &fakeRepo{patch: &domain.SettingsPatch{
			MinIntervalHours: ptr.Ptr(4),
			SendSMS:          ptr.Ptr(true),
		}}
		svc := newTestService(repo)

		resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
			MaxBookingsPerDay: ptr.Ptr(2),
		})

		require.NoError(t, err)
		assert.Equal(t, 4, resp.MinIntervalHours)
		assert.True(t, resp.SendSMS)
		require.NotNil(t, resp.MaxBookingsPerDay)
		assert.Equal(t, 2, *resp.MaxBookingsPerDay)
	})
}
