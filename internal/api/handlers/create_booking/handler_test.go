package create_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createBooking "github.com/m04kA/TDS-BookingService/internal/usecase/create_booking"
)

type fakeUseCase struct {
	resp *createBooking.Response
	err  error

	gotReq *createBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func postBooking(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestHandler_Created(t *testing.T) {
	created := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	warning := "Заявка сохранена, но SMS подтверждение не отправлено"

	uc := &fakeUseCase{
		resp: &createBooking.Response{
			ID:              12,
			ClientName:      "Иван Петров",
			Phone:           "+79123456789",
			AppointmentDate: time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC),
			CreatedAt:       created,
			UpdatedAt:       created,
			Notification: &createBooking.NotificationResult{
				DispatchID: "d-1",
				Sent:       false,
				Warning:    &warning,
			},
		},
	}
	h := NewHandler(uc, nopLogger{})

	rec := postBooking(h, `{
		"clientName": "Иван Петров",
		"phone": "8 (912) 345-67-89",
		"date": "2026-03-20",
		"time": "10:00"
	}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(12), resp.ID)
	assert.Equal(t, "2026-03-20", resp.Date)
	assert.Equal(t, "10:00", resp.Time)
	assert.Equal(t, "+79123456789", resp.Phone)
	require.NotNil(t, resp.Notification)
	assert.False(t, resp.Notification.Sent)
	require.NotNil(t, resp.Notification.Warning)
	assert.Equal(t, warning, *resp.Notification.Warning)

	// Дата и время дошли до use case уже распарсенными
	require.NotNil(t, uc.gotReq)
	assert.Equal(t, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), uc.gotReq.Date)
	assert.Equal(t, "10:00", uc.gotReq.StartTime.String())
}

func TestHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{
			name:    "malformed json",
			body:    `{"clientName": `,
			wantMsg: msgInvalidRequestBody,
		},
		{
			name:    "wrong date format",
			body:    `{"clientName": "Иван", "phone": "+79123456789", "date": "20.03.2026", "time": "10:00"}`,
			wantMsg: msgInvalidDate,
		},
		{
			name:    "wrong time format",
			body:    `{"clientName": "Иван", "phone": "+79123456789", "date": "2026-03-20", "time": "10:70"}`,
			wantMsg: msgInvalidTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{}, nopLogger{})

			rec := postBooking(h, tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantMsg, decodeError(t, rec))
		})
	}
}

func TestHandler_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "invalid input",
			err:        createBooking.ErrInvalidInput,
			wantStatus: http.StatusBadRequest,
			wantMsg:    msgInvalidInput,
		},
		{
			name:       "date in the past",
			err:        createBooking.ErrInvalidDate,
			wantStatus: http.StatusBadRequest,
			wantMsg:    msgPastDate,
		},
		{
			name:       "time off the ladder",
			err:        createBooking.ErrInvalidTimeSlot,
			wantStatus: http.StatusBadRequest,
			wantMsg:    msgInvalidTimeSlot,
		},
		{
			name:       "date disabled",
			err:        createBooking.ErrDateDisabled,
			wantStatus: http.StatusConflict,
			wantMsg:    msgDateNotAvailable,
		},
		{
			name:       "slot taken",
			err:        createBooking.ErrSlotNotAvailable,
			wantStatus: http.StatusConflict,
			wantMsg:    msgSlotNotAvailable,
		},
		{
			name:       "storage failure",
			err:        errors.New("db is down"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "внутренняя ошибка сервера",
		},
	}

	body := `{"clientName": "Иван Петров", "phone": "+79123456789", "date": "2026-03-20", "time": "10:00"}`

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, nopLogger{})

			rec := postBooking(h, body)

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, decodeError(t, rec))
		})
	}
}
