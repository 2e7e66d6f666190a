package http

import (
	"net/http"
	"strconv"

	"shareholder-backend/internal/domain/errs"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Result is the envelope every JSON endpoint answers with.
type Result struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Code    string       `json:"code,omitempty"`
	Data    any          `json:"data,omitempty"`
	Details []FieldError `json:"details,omitempty"`
}

func ok(c echo.Context, status int, data any) error {
	return c.JSON(status, Result{Success: true, Data: data})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, Result{Message: msg, Code: "bad_request"})
}

func invalid(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, Result{
		Message: "validation failed",
		Code:    "validation_failed",
		Details: ToFieldErrors(err),
	})
}

func statusFor(k errs.Kind) int {
	switch k {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict:
		return http.StatusConflict
	case errs.KindUnauthorized:
		return http.StatusUnauthorized
	case errs.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

// fail turns a usecase error into a response. Declines are expected and
// logged at info; anything else is a fault and hides its cause.
func fail(c echo.Context, log logrus.FieldLogger, err error) error {
	entry := log.WithFields(logrus.Fields{
		"method": c.Request().Method,
		"route":  c.Path(),
	})
	if d, isDecline := errs.AsDecline(err); isDecline {
		entry.WithField("code", d.Code).Info(d.Message)
		return c.JSON(statusFor(d.Kind), Result{Message: d.Message, Code: d.Code})
	}
	entry.WithError(err).Error("request failed")
	return c.JSON(http.StatusInternalServerError, Result{Message: "internal server error", Code: "internal"})
}

// bindValid binds the body into req and validates it. It writes the error
// response itself and reports whether the handler may continue.
func bindValid(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, badRequest(c, "invalid body")
	}
	if err := c.Validate(req); err != nil {
		return false, invalid(c, err)
	}
	return true, nil
}

func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}
