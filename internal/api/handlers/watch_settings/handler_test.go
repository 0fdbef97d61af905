package watch_settings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TDS-BookingService/internal/api/middleware"
	"github.com/m04kA/TDS-BookingService/internal/domain"
	"github.com/m04kA/TDS-BookingService/internal/service/settings/models"
)

type fakeSettingsService struct {
	snapshot *models.SettingsResponse
	updates  chan domain.Settings

	cancelled bool
}

func (f *fakeSettingsService) Get(_ context.Context) (*models.SettingsResponse, error) {
	return f.snapshot, nil
}

func (f *fakeSettingsService) Subscribe(_ context.Context) (<-chan domain.Settings, func()) {
	return f.updates, func() { f.cancelled = true }
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	staff := router.PathPrefix("/api/v1").Subrouter()
	staff.Use(middleware.StaffAuth(nopLogger{}))
	staff.HandleFunc("/settings/events", h.Handle).Methods(http.MethodGet)
	return router
}

func TestHandler_StreamsSnapshotAndUpdates(t *testing.T) {
	updated := domain.DefaultSettings()
	updated.MinIntervalHours = 5

	// Предзаполненный закрытый канал: handler отдаёт снимок, одно
	// обновление и завершает поток
	updates := make(chan domain.Settings, 1)
	updates <- updated
	close(updates)

	svc := &fakeSettingsService{
		snapshot: models.FromDomainSettings(domain.DefaultSettings()),
		updates:  updates,
	}
	router := newTestRouter(NewHandler(svc, nopLogger{}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/settings/events", nil)
	req.Header.Set(middleware.StaffIDHeader, "42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.True(t, rec.Flushed)
	assert.True(t, svc.cancelled)

	frames := strings.Split(strings.TrimSuffix(rec.Body.String(), "\n\n"), "\n\n")
	require.Len(t, frames, 2)

	// Первое событие - текущий документ, второе - опубликованное обновление
	assert.True(t, strings.HasPrefix(frames[0], "event: settings\n"))
	assert.Contains(t, frames[0], `"minIntervalHours":2`)
	assert.True(t, strings.HasPrefix(frames[1], "event: settings\n"))
	assert.Contains(t, frames[1], `"minIntervalHours":5`)
}

func TestHandler_MissingStaffHeader(t *testing.T) {
	svc := &fakeSettingsService{updates: make(chan domain.Settings)}
	router := newTestRouter(NewHandler(svc, nopLogger{}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/settings/events", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, svc.cancelled)
}
