package middleware

import (
	"strings"
	"time"

	"shareholder-backend/pkg/id"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// RequestLogger emits one structured entry per request. The request id is the
// client's Ax-Request-Id when sent, otherwise a fresh one, and is echoed back
// in X-Request-Id.
func RequestLogger(log logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			rid := strings.TrimSpace(req.Header.Get(HeaderRequestID))
			if rid == "" {
				rid = id.NewRequestID()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, rid)

			err := next(c)

			status := statusOf(c, err)
			entry := log.WithFields(logrus.Fields{
				"request_id": rid,
				"method":     req.Method,
				"route":      c.Path(),
				"uri":        req.RequestURI,
				"status":     status,
				"latency_ms": time.Since(start).Milliseconds(),
				"remote_ip":  c.RealIP(),
			})
			switch {
			case status >= 500:
				entry.Error("request")
			case status >= 400:
				entry.Warn("request")
			default:
				entry.Info("request")
			}
			return err
		}
	}
}
