package get_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TDS-BookingService/internal/api/middleware"
	"github.com/m04kA/TDS-BookingService/internal/service/bookings"
	"github.com/m04kA/TDS-BookingService/internal/service/bookings/models"
)

type fakeService struct {
	resp *models.BookingResponse
	err  error

	gotID int64
}

func (f *fakeService) GetByID(_ context.Context, id int64) (*models.BookingResponse, error) {
	f.gotID = id
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// newTestRouter собирает маршрут так же, как main: staff endpoints
// за StaffAuth middleware.
func newTestRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	staff := router.PathPrefix("/api/v1").Subrouter()
	staff.Use(middleware.StaffAuth(nopLogger{}))
	staff.HandleFunc("/bookings/{bookingId}", h.Handle).Methods(http.MethodGet)
	return router
}

func getBooking(router *mux.Router, path string, staffID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if staffID != "" {
		req.Header.Set(middleware.StaffIDHeader, staffID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_ReturnsBooking(t *testing.T) {
	svc := &fakeService{
		resp: &models.BookingResponse{
			ID:              7,
			ClientName:      "Иван Петров",
			Phone:           "+79123456789",
			AppointmentDate: "2026-03-20T12:00:00Z",
			CreatedAt:       time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
			UpdatedAt:       time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		},
	}
	router := newTestRouter(NewHandler(svc, nopLogger{}))

	rec := getBooking(router, "/api/v1/bookings/7", "42")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), svc.gotID)

	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "Иван Петров", resp.ClientName)
	assert.Equal(t, "2026-03-20T12:00:00Z", resp.AppointmentDate)
}

func TestHandler_MissingStaffHeader(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(NewHandler(svc, nopLogger{}))

	rec := getBooking(router, "/api/v1/bookings/7", "")

	// Middleware отклоняет запрос до обращения к сервису
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, svc.gotID)
}

func TestHandler_InvalidBookingID(t *testing.T) {
	router := newTestRouter(NewHandler(&fakeService{}, nopLogger{}))

	rec := getBooking(router, "/api/v1/bookings/abc", "42")

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, msgInvalidBookingID, resp.Error)
}

func TestHandler_NotFound(t *testing.T) {
	svc := &fakeService{err: bookings.ErrBookingNotFound}
	router := newTestRouter(NewHandler(svc, nopLogger{}))

	rec := getBooking(router, "/api/v1/bookings/404", "42")

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_StorageFailure(t *testing.T) {
	svc := &fakeService{err: errors.New("db is down")}
	router := newTestRouter(NewHandler(svc, nopLogger{}))

	rec := getBooking(router, "/api/v1/bookings/7", "42")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
