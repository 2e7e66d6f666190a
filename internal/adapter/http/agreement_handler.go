package http

import (
	"net/http"
	"strconv"

	"shareholder-backend/internal/usecase/agreement"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type AgreementHandler struct {
	uc  *agreement.Usecase
	log logrus.FieldLogger
}

func NewAgreementHandler(uc *agreement.Usecase, log logrus.FieldLogger) *AgreementHandler {
	return &AgreementHandler{uc: uc, log: log}
}

// Download streams the agreement PDF. ?inline=1 asks the browser to display it.
func (h *AgreementHandler) Download(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return badRequest(c, "invalid shareholder id")
	}
	doc, err := h.uc.Render(c.Request().Context(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	disposition := "attachment"
	if c.QueryParam("inline") == "1" {
		disposition = "inline"
	}
	hdr := c.Response().Header()
	hdr.Set(echo.HeaderContentDisposition, disposition+`; filename="`+doc.Filename+`"`)
	hdr.Set("X-Page-Count", strconv.Itoa(doc.Pages))
	return c.Blob(http.StatusOK, "application/pdf", doc.Data)
}
