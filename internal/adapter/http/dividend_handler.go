package http

import (
	"net/http"
	"time"

	"shareholder-backend/internal/usecase/dividend"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DividendHandler struct {
	uc  *dividend.Usecase
	log logrus.FieldLogger
	now func() time.Time
}

func NewDividendHandler(uc *dividend.Usecase, log logrus.FieldLogger) *DividendHandler {
	return &DividendHandler{uc: uc, log: log, now: time.Now}
}

type payOneReq struct {
	ShareholderID uint64          `json:"shareholder_id" validate:"required"`
	Month         string          `json:"month"          validate:"required,max=32"`
	Gross         decimal.Decimal `json:"gross"          validate:"gt=0,dec2"`
	GSTRate       decimal.Decimal `json:"gst_rate"       validate:"lte=100"`
	PaymentMethod string          `json:"payment_method" validate:"max=64"`
}

func (h *DividendHandler) PayOne(c echo.Context) error {
	var req payOneReq
	if next, err := bindValid(c, &req); !next {
		return err
	}
	dto, err := h.uc.PayOne(c.Request().Context(), dividend.PayOneInput(req))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusCreated, dto)
}

type payAllReq struct {
	Month         string          `json:"month"          validate:"required,max=32"`
	TotalGross    decimal.Decimal `json:"total_gross"    validate:"gt=0,dec2"`
	GSTRate       decimal.Decimal `json:"gst_rate"       validate:"lte=100"`
	PaymentMethod string          `json:"payment_method" validate:"max=64"`
}

func (h *DividendHandler) PayAll(c echo.Context) error {
	var req payAllReq
	if next, err := bindValid(c, &req); !next {
		return err
	}
	res, err := h.uc.PayAll(c.Request().Context(), dividend.PayAllInput(req))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusCreated, res)
}

func (h *DividendHandler) ListByShareholder(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return badRequest(c, "invalid shareholder id")
	}
	out, err := h.uc.ListByShareholder(c.Request().Context(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusOK, out)
}

func (h *DividendHandler) Export(c echo.Context) error {
	data, err := h.uc.ExportLedger(c.Request().Context())
	if err != nil {
		return fail(c, h.log, err)
	}
	name := "dividend-ledger-" + h.now().UTC().Format("20060102") + ".xlsx"
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Blob(http.StatusOK, mimeXLSX, data)
}
