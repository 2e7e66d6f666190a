package http

import (
	"net/http"
	"strconv"

	domain "shareholder-backend/internal/domain/stage"
	"shareholder-backend/internal/usecase/stage"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type StageHandler struct {
	uc  *stage.Usecase
	log logrus.FieldLogger
}

func NewStageHandler(uc *stage.Usecase, log logrus.FieldLogger) *StageHandler {
	return &StageHandler{uc: uc, log: log}
}

// List answers every stage, or with ?subscribers=N only those whose band holds N.
func (h *StageHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	if raw := c.QueryParam("subscribers"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return badRequest(c, "subscribers must be a non-negative integer")
		}
		out, err := h.uc.ListApplicable(ctx, n)
		if err != nil {
			return fail(c, h.log, err)
		}
		return ok(c, http.StatusOK, out)
	}
	out, err := h.uc.ListStages(ctx)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusOK, out)
}

func (h *StageHandler) Running(c echo.Context) error {
	dto, err := h.uc.GetRunningStage(c.Request().Context())
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusOK, dto)
}

type upsertStageReq struct {
	Stage           int              `json:"stage"            validate:"required,gte=1"`
	Name            *string          `json:"name"             validate:"omitempty,max=191"`
	PricePerShare   *decimal.Decimal `json:"price_per_share"  validate:"omitempty,dec2"`
	Status          *string          `json:"status"`
	SharesAvailable *int             `json:"shares_available"`
	MinSubscribers  *int             `json:"min_subscribers"`
	MaxSubscribers  *int             `json:"max_subscribers"`
}

func (h *StageHandler) Upsert(c echo.Context) error {
	var req upsertStageReq
	if next, err := bindValid(c, &req); !next {
		return err
	}
	in := stage.UpsertInput{
		Stage:           req.Stage,
		Name:            req.Name,
		PricePerShare:   req.PricePerShare,
		SharesAvailable: req.SharesAvailable,
		MinSubscribers:  req.MinSubscribers,
		MaxSubscribers:  req.MaxSubscribers,
	}
	if req.Status != nil {
		st := domain.Status(*req.Status)
		in.Status = &st
	}
	s, err := h.uc.UpsertStage(c.Request().Context(), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusOK, s)
}
