package router

import (
	"net/http"

	"lumine-kitchen/internal/pkg/common"

	"go.uber.org/zap"
)

// responseWriter 響應記錄器
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader 實現 http.ResponseWriter 介面
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// WithRecovery 包住整個處理鏈的最外層防線：
// 攔截漏出 gin Recovery 的 panic，並記錄 5xx 回應
func WithRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				common.LogError("Server panic recovered",
					zap.Any("error", err),
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
				)
				common.WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error")
			}
		}()

		// 創建響應記錄器
		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		// 處理請求
		next.ServeHTTP(rw, r)

		if rw.statusCode >= http.StatusInternalServerError {
			common.LogWarn("伺服器錯誤回應",
				zap.Int("status", rw.statusCode),
				zap.String("path", r.URL.Path),
				zap.String("method", r.Method),
			)
		}
	})
}
