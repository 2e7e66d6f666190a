package http

import (
	"net/http"

	"shareholder-backend/internal/domain/shareholder"
	"shareholder-backend/internal/usecase/pricing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type PricingHandler struct {
	uc  *pricing.Usecase
	log logrus.FieldLogger
}

func NewPricingHandler(uc *pricing.Usecase, log logrus.FieldLogger) *PricingHandler {
	return &PricingHandler{uc: uc, log: log}
}

func (h *PricingHandler) ListRolePrices(c echo.Context) error {
	out, err := h.uc.ListRolePrices(c.Request().Context())
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusOK, out)
}

type rolePriceReq struct {
	Role  string          `param:"role" json:"-"`
	Price decimal.Decimal `json:"price" validate:"gte=0,dec2"`
}

func (h *PricingHandler) SetRolePrice(c echo.Context) error {
	var req rolePriceReq
	if next, err := bindValid(c, &req); !next {
		return err
	}
	p, err := h.uc.SetRolePrice(c.Request().Context(), shareholder.Role(req.Role), req.Price)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusOK, p)
}

func (h *PricingHandler) ListSubscriberCounts(c echo.Context) error {
	out, err := h.uc.ListSubscriberCounts(c.Request().Context())
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusOK, out)
}

type subscriberCountReq struct {
	Role  string `param:"role" json:"-"`
	Count int64  `json:"count" validate:"gte=0"`
}

func (h *PricingHandler) SetSubscriberCount(c echo.Context) error {
	var req subscriberCountReq
	if next, err := bindValid(c, &req); !next {
		return err
	}
	sc, err := h.uc.SetSubscriberCount(c.Request().Context(), shareholder.Role(req.Role), req.Count)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusOK, sc)
}
