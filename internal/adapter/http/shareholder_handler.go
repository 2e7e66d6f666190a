package http

import (
	"net/http"

	domain "shareholder-backend/internal/domain/shareholder"
	"shareholder-backend/internal/usecase/shareholder"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type ShareholderHandler struct {
	uc  *shareholder.Usecase
	log logrus.FieldLogger
}

func NewShareholderHandler(uc *shareholder.Usecase, log logrus.FieldLogger) *ShareholderHandler {
	return &ShareholderHandler{uc: uc, log: log}
}

type registerReq struct {
	Username      string `json:"username"       validate:"required,username"`
	Email         string `json:"email"          validate:"required,email,max=191"`
	Password      string `json:"password"       validate:"required,min=8,max=72"`
	FullName      string `json:"full_name"      validate:"required,max=191"`
	Phone         string `json:"phone"          validate:"max=32"`
	Address       string `json:"address"`
	NomineeName   string `json:"nominee_name"   validate:"max=191"`
	PhotoPath     string `json:"photo_path"     validate:"max=255"`
	SignaturePath string `json:"signature_path" validate:"max=255"`
	SignatureText string `json:"signature_text" validate:"max=191"`
	Role          string `json:"role"           validate:"required"`
	NumShares     int64  `json:"num_shares"`
}

func (h *ShareholderHandler) Register(c echo.Context) error {
	var req registerReq
	if next, err := bindValid(c, &req); !next {
		return err
	}
	s, err := h.uc.Register(c.Request().Context(), shareholder.RegisterInput{
		Username:      req.Username,
		Email:         req.Email,
		Password:      req.Password,
		FullName:      req.FullName,
		Phone:         req.Phone,
		Address:       req.Address,
		NomineeName:   req.NomineeName,
		PhotoPath:     req.PhotoPath,
		SignaturePath: req.SignaturePath,
		SignatureText: req.SignatureText,
		Role:          domain.Role(req.Role),
		NumShares:     req.NumShares,
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusCreated, s)
}

type loginReq struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

type loginResp struct {
	ID       uint64        `json:"id"`
	Username string        `json:"username"`
	Role     domain.Role   `json:"role"`
	Status   domain.Status `json:"status"`
}

func (h *ShareholderHandler) Login(c echo.Context) error {
	var req loginReq
	if next, err := bindValid(c, &req); !next {
		return err
	}
	s, err := h.uc.Authenticate(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusOK, loginResp{ID: s.ID, Username: s.Username, Role: s.Role, Status: s.Status})
}

func (h *ShareholderHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), domain.Status(c.QueryParam("status")))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusOK, out)
}

func (h *ShareholderHandler) Get(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return badRequest(c, "invalid shareholder id")
	}
	s, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusOK, s)
}

type statusReq struct {
	Status string `json:"status" validate:"required"`
}

func (h *ShareholderHandler) SetStatus(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return badRequest(c, "invalid shareholder id")
	}
	var req statusReq
	if next, err := bindValid(c, &req); !next {
		return err
	}
	s, err := h.uc.SetStatus(c.Request().Context(), id, domain.Status(req.Status))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusOK, s)
}

type credentialsReq struct {
	Username *string `json:"username" validate:"omitempty,username"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
}

func (h *ShareholderHandler) UpdateCredentials(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return badRequest(c, "invalid shareholder id")
	}
	var req credentialsReq
	if next, err := bindValid(c, &req); !next {
		return err
	}
	s, err := h.uc.UpdateCredentials(c.Request().Context(), id, shareholder.CredentialsInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusOK, s)
}

func (h *ShareholderHandler) Delete(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return badRequest(c, "invalid shareholder id")
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusOK, map[string]uint64{"deleted": id})
}
