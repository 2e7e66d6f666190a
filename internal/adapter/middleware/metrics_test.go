package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestMetrics_LabelsByRouteTemplate(t *testing.T) {
	reg := prometheus.NewRegistry()
	e := echo.New()
	e.Use(Metrics(reg))
	e.GET("/shareholders/:id", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/boom", func(echo.Context) error { return errors.New("boom") })

	for _, path := range []string{"/shareholders/1", "/shareholders/2", "/boom"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	expected := `
# HELP http_requests_total Total number of HTTP requests processed
# TYPE http_requests_total counter
http_requests_total{method="GET",route="/boom",status="500"} 1
http_requests_total{method="GET",route="/shareholders/:id",status="200"} 2
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "http_requests_total"); err != nil {
		t.Fatal(err)
	}
	if n := testutil.CollectAndCount(reg, "http_request_duration_seconds"); n != 2 {
		t.Fatalf("histogram series = %d, want 2", n)
	}
}

func TestMetrics_InFlightReturnsToZero(t *testing.T) {
	reg := prometheus.NewRegistry()
	e := echo.New()
	e.Use(Metrics(reg))
	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	expected := `
# HELP http_inflight_requests Number of HTTP requests currently being served
# TYPE http_inflight_requests gauge
http_inflight_requests 0
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "http_inflight_requests"); err != nil {
		t.Fatal(err)
	}
}

func TestStatusOf(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	_ = c.NoContent(http.StatusAccepted)

	if got := statusOf(c, nil); got != http.StatusAccepted {
		t.Fatalf("recorded status = %d", got)
	}
	if got := statusOf(c, echo.NewHTTPError(http.StatusTooManyRequests)); got != http.StatusTooManyRequests {
		t.Fatalf("http error status = %d", got)
	}
	if got := statusOf(c, errors.New("x")); got != http.StatusInternalServerError {
		t.Fatalf("plain error status = %d", got)
	}
}

func TestRequestLogger(t *testing.T) {
	log, hook := test.NewNullLogger()
	e := echo.New()
	e.Use(RequestLogger(log))
	e.POST("/shareholders", func(c echo.Context) error { return c.NoContent(http.StatusConflict) })
	e.GET("/stages", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/shareholders", nil)
	req.Header.Set(HeaderRequestID, testReqID)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := rec.Header().Get(echo.HeaderXRequestID); got != testReqID {
		t.Fatalf("X-Request-Id = %q, want client id", got)
	}
	entry := hook.LastEntry()
	if entry.Level != logrus.WarnLevel || entry.Data["request_id"] != testReqID ||
		entry.Data["route"] != "/shareholders" || entry.Data["status"] != http.StatusConflict {
		t.Fatalf("unexpected entry: level=%v data=%v", entry.Level, entry.Data)
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stages", nil))
	generated := rec.Header().Get(echo.HeaderXRequestID)
	if len(generated) != 36 {
		t.Fatalf("generated request id = %q", generated)
	}
	if hook.LastEntry().Level != logrus.InfoLevel || hook.LastEntry().Data["request_id"] != generated {
		t.Fatalf("unexpected entry: %+v", hook.LastEntry())
	}
}
