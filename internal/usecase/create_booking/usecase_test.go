package create_booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TDS-BookingService/internal/domain"
	"github.com/m04kA/TDS-BookingService/internal/infra/storage/settings"
	"github.com/m04kA/TDS-BookingService/internal/integrations/smsgate"
	"github.com/m04kA/TDS-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	instants []time.Time
	listErr  error

	created   []*domain.Booking
	createErr error
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	stored := *booking
	stored.ID = int64(len(f.created) + 1)
	stored.CreatedAt = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	stored.UpdatedAt = stored.CreatedAt
	f.created = append(f.created, &stored)
	return &stored, nil
}

func (f *fakeBookingRepo) ListInstants(_ context.Context, _, _ *time.Time) ([]time.Time, error) {
	if f.listErr != nil {
		return nil, f.listErr
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

type smsCall struct {
	to   string
	text string
}

type fakeSMSClient struct {
	resp  *smsgate.MessageResponse
	err   error
	calls []smsCall
}

func (f *fakeSMSClient) SendMessage(_ context.Context, to, text string) (*smsgate.MessageResponse, error) {
	f.calls = append(f.calls, smsCall{to: to, text: text})
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

// now is fixed to 2026-03-10 12:00 UTC for every test in this file.
func newTestUseCase(bookingRepo *fakeBookingRepo, settingsRepo *fakeSettingsRepo, sms *fakeSMSClient) *UseCase {
	uc := NewUseCase(bookingRepo, settingsRepo, sms, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	return uc
}

func validRequest() *Request {
	return &Request{
		ClientName: "Иван Петров",
		Phone:      "8 (912) 345-67-89",
		Address:    strPtr("ул. Ленина, 10"),
		Date:       time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		StartTime:  types.TimeString("10:00"),
	}
}

func TestCreateBookingSuccess(t *testing.T) {
	repo := &fakeBookingRepo{}
	cfg := &fakeSettingsRepo{err: settings.ErrSettingsNotFound}
	sms := &fakeSMSClient{}
	uc := newTestUseCase(repo, cfg, sms)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "+79123456789", resp.Phone)
	assert.Equal(t, "Иван Петров", resp.ClientName)
	assert.False(t, resp.Completed)

	require.Len(t, repo.created, 1)
	created := repo.created[0]
	assert.Equal(t, time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC), created.AppointmentDate)

	// SendSMS выключен по умолчанию
	assert.Nil(t, resp.Notification)
	assert.Empty(t, sms.calls)
}

func TestCreateBookingSendsConfirmation(t *testing.T) {
	repo := &fakeBookingRepo{}
	cfg := &fakeSettingsRepo{patch: &domain.SettingsPatch{SendSMS: boolPtr(true)}}
	sms := &fakeSMSClient{resp: &smsgate.MessageResponse{ID: "msg-1", Status: "accepted"}}
	uc := newTestUseCase(repo, cfg, sms)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.NotNil(t, resp.Notification)
	assert.True(t, resp.Notification.Sent)
	assert.NotEmpty(t, resp.Notification.DispatchID)
	assert.Nil(t, resp.Notification.Warning)

	require.Len(t, sms.calls, 1)
	assert.Equal(t, "+79123456789", sms.calls[0].to)
	assert.Contains(t, sms.calls[0].text, "20.03.2026")
	assert.Contains(t, sms.calls[0].text, "10:00")
}

func TestCreateBookingSMSFailureIsNonFatal(t *testing.T) {
	tests := []struct {
		name    string
		sendErr error
	}{
		{name: "provider degraded", sendErr: smsgate.ErrServiceDegraded},
		{name: "message rejected", sendErr: smsgate.ErrRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeBookingRepo{}
			cfg := &fakeSettingsRepo{patch: &domain.SettingsPatch{SendSMS: boolPtr(true)}}
			sms := &fakeSMSClient{err: tt.sendErr}
			uc := newTestUseCase(repo, cfg, sms)

			resp, err := uc.Execute(context.Background(), validRequest())
			require.NoError(t, err, "sms failure must not fail the booking")

			require.Len(t, repo.created, 1)
			require.NotNil(t, resp.Notification)
			assert.False(t, resp.Notification.Sent)
			require.NotNil(t, resp.Notification.Warning)
			assert.Contains(t, *resp.Notification.Warning, "Заявка сохранена")
		})
	}
}

func TestCreateBookingDateDisabled(t *testing.T) {
	t.Run("explicitly disabled date", func(t *testing.T) {
		repo := &fakeBookingRepo{}
		cfg := &fakeSettingsRepo{patch: &domain.SettingsPatch{
			DisabledDates: &[]string{"2026-03-20"},
		}}
		uc := newTestUseCase(repo, cfg, &fakeSMSClient{})

		_, err := uc.Execute(context.Background(), validRequest())
		require.ErrorIs(t, err, ErrDateDisabled)
		assert.Empty(t, repo.created)
	})

	t.Run("disabled weekday", func(t *testing.T) {
		repo := &fakeBookingRepo{}
		// 2026-03-20 это пятница (weekday 5)
		cfg := &fakeSettingsRepo{patch: &domain.SettingsPatch{
			DisabledWeekdays: &[]int{5},
		}}
		uc := newTestUseCase(repo, cfg, &fakeSMSClient{})

		_, err := uc.Execute(context.Background(), validRequest())
		require.ErrorIs(t, err, ErrDateDisabled)
	})

	t.Run("daily cap reached", func(t *testing.T) {
		repo := &fakeBookingRepo{instants: []time.Time{
			time.Date(2026, 3, 20, 15, 0, 0, 0, time.UTC),
		}}
		cfg := &fakeSettingsRepo{patch: &domain.SettingsPatch{
			MaxBookingsPerDay: intPtr(1),
		}}
		uc := newTestUseCase(repo, cfg, &fakeSMSClient{})

		_, err := uc.Execute(context.Background(), validRequest())
		require.ErrorIs(t, err, ErrDateDisabled)
	})
}

func TestCreateBookingSlotConflicts(t *testing.T) {
	t.Run("existing booking closer than interval", func(t *testing.T) {
		repo := &fakeBookingRepo{instants: []time.Time{
			time.Date(2026, 3, 20, 11, 0, 0, 0, time.UTC),
		}}
		cfg := &fakeSettingsRepo{err: settings.ErrSettingsNotFound}
		uc := newTestUseCase(repo, cfg, &fakeSMSClient{})

		_, err := uc.Execute(context.Background(), validRequest())
		require.ErrorIs(t, err, ErrSlotNotAvailable)
		assert.Empty(t, repo.created)
	})

	t.Run("distance equal to interval is bookable", func(t *testing.T) {
		repo := &fakeBookingRepo{instants: []time.Time{
			time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC),
		}}
		cfg := &fakeSettingsRepo{err: settings.ErrSettingsNotFound}
		uc := newTestUseCase(repo, cfg, &fakeSMSClient{})

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
	})
}

func TestCreateBookingTimeOutsideLadder(t *testing.T) {
	tests := []struct {
		name      string
		startTime types.TimeString
	}{
		{name: "between slots", startTime: types.TimeString("10:30")},
		{name: "before working hours", startTime: types.TimeString("08:00")},
		{name: "after working hours", startTime: types.TimeString("21:00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeBookingRepo{}
			cfg := &fakeSettingsRepo{err: settings.ErrSettingsNotFound}
			uc := newTestUseCase(repo, cfg, &fakeSMSClient{})

			req := validRequest()
			req.StartTime = tt.startTime

			_, err := uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidTimeSlot)
		})
	}
}

func TestCreateBookingPastDate(t *testing.T) {
	repo := &fakeBookingRepo{}
	cfg := &fakeSettingsRepo{err: settings.ErrSettingsNotFound}
	uc := newTestUseCase(repo, cfg, &fakeSMSClient{})

	req := validRequest()
	req.Date = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidDate)
	assert.Empty(t, repo.created)
}

func TestCreateBookingValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{name: "empty client name", mutate: func(req *Request) { req.ClientName = "  " }},
		{name: "too long client name", mutate: func(req *Request) { req.ClientName = strings.Repeat("a", domain.MaxClientNameLength+1) }},
		{name: "empty phone", mutate: func(req *Request) { req.Phone = "" }},
		{name: "phone without digits", mutate: func(req *Request) { req.Phone = "call me" }},
		{name: "zero date", mutate: func(req *Request) { req.Date = time.Time{} }},
		{name: "empty time", mutate: func(req *Request) { req.StartTime = "" }},
		{name: "malformed time", mutate: func(req *Request) { req.StartTime = types.TimeString("25:00") }},
		{name: "too long comment", mutate: func(req *Request) { req.Comment = strPtr(strings.Repeat("a", domain.MaxCommentLength+1)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeBookingRepo{}
			cfg := &fakeSettingsRepo{err: settings.ErrSettingsNotFound}
			uc := newTestUseCase(repo, cfg, &fakeSMSClient{})

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, repo.created)
		})
	}
}

func boolPtr(v bool) *bool { return &v }
