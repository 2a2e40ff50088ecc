package middleware

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"agrosmart/pkg/metrics"
)

// AccessLog writes one line per request and feeds the request counters.
// /metrics and /health are counted but not logged.
func AccessLog(log *zap.Logger) echo.MiddlewareFunc {
	httpLog := log.Named("http")
	return echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			metrics.ObserveHTTP(v.Method, v.RoutePath, v.Status, v.Latency)
			if v.RoutePath == "/metrics" || v.RoutePath == "/health" {
				return nil
			}

			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				httpLog.Error("request", fields...)
			case v.Status >= 400:
				httpLog.Warn("request", fields...)
			default:
				httpLog.Info("request", fields...)
			}
			return nil
		},
	})
}
