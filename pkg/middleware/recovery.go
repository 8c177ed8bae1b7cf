package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"strategic-planning-backend/pkg/config"
	"strategic-planning-backend/pkg/utils"
)

// Recovery 恢复中间件，处理panic并返回友好的错误信息
func Recovery(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					slog.Error("panic recovered",
						"error", err,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)

					if cfg.IsDevelopment() {
						// 开发环境：显示详细错误信息
						utils.WriteErrorResponse(w, http.StatusInternalServerError,
							fmt.Sprintf("Internal server error: %v", err))
					} else {
						// 生产环境：隐藏详细错误信息
						utils.WriteInternalServerErrorResponse(w, "Internal server error occurred")
					}
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
