package middleware

import (
	"context"
	"net/http"
	"strconv"
)

// HeaderUserID заголовок с ID аутентифицированного пользователя.
// Заполняется API gateway после проверки токена.
const HeaderUserID = "X-User-ID"

type ctxKey string

const userIDKey ctxKey = "userID"

// Auth извлекает ID пользователя из заголовка и кладет его в контекст запроса.
// Запросы без корректного заголовка пропускаются дальше: обязательность
// аутентификации решает каждый handler самостоятельно через GetUserID.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := r.Header.Get(HeaderUserID); raw != "" {
			if userID, err := strconv.ParseInt(raw, 10, 64); err == nil && userID > 0 {
				r = r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
			}
		}

		next.ServeHTTP(w, r)
	})
}

// GetUserID возвращает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
