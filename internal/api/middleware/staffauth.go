package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/TDS-BookingService/internal/api/handlers"
)

// StaffIDHeader заголовок с идентификатором сотрудника
const StaffIDHeader = "X-Staff-ID"

const msgMissingStaffID = "отсутствует или некорректен идентификатор сотрудника"

type contextKey string

const staffIDKey contextKey = "staffID"

// StaffAuth пропускает запрос дальше только при валидном X-Staff-ID.
// Идентификатор кладется в контекст и доступен через GetStaffID.
func StaffAuth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(StaffIDHeader)

			staffID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || staffID <= 0 {
				logger.Warn("StaffAuth: rejected request %s %s with %s=%q", r.Method, r.URL.Path, StaffIDHeader, raw)
				handlers.RespondUnauthorized(w, msgMissingStaffID)
				return
			}

			ctx := context.WithValue(r.Context(), staffIDKey, staffID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetStaffID достает идентификатор сотрудника из контекста
func GetStaffID(ctx context.Context) (int64, bool) {
	staffID, ok := ctx.Value(staffIDKey).(int64)
	return staffID, ok
}
