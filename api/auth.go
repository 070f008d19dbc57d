package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/motuslabs/rehab/audit"
	"github.com/motuslabs/rehab/auth"
	errs "github.com/motuslabs/rehab/errors"
	"github.com/motuslabs/rehab/users"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token    string     `json:"token"`
	Username string     `json:"username"`
	Role     users.Role `json:"role"`
}

type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// (POST /auth/login)
func (h *Handler) Login(ec echo.Context) error {
	req := &LoginRequest{}
	if err := ec.Bind(req); err != nil {
		return errs.BadRequest
	}

	ctx := ec.Request().Context()
	user, err := h.users.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return asHTTPError(err)
	}

	token, err := h.authenticator.IssueToken(user)
	if err != nil {
		return err
	}

	h.audit.Record(ctx, audit.Entry{
		Actor:  user.Username,
		Role:   user.Role,
		Action: audit.ActionLogin,
	})

	return ec.JSON(http.StatusOK, LoginResponse{
		Token:    token,
		Username: user.Username,
		Role:     user.Role,
	})
}

// (POST /auth/register)
// Self-service registration always creates patient accounts; doctor and
// manager accounts are created by an operator (see rehabctl).
func (h *Handler) Register(ec echo.Context) error {
	if !h.allowSignup {
		return errs.Forbidden
	}

	req := &RegisterRequest{}
	if err := ec.Bind(req); err != nil {
		return errs.BadRequest
	}

	ctx := ec.Request().Context()
	user, err := h.users.Register(ctx, users.Registration{
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            users.RolePatient,
	})
	if err != nil {
		return asHTTPError(err)
	}

	h.audit.Record(ctx, audit.Entry{
		Actor:   user.Username,
		Role:    user.Role,
		Action:  audit.ActionRegister,
		Subject: user.Username,
	})

	return ec.JSON(http.StatusCreated, LoginResponse{
		Username: user.Username,
		Role:     user.Role,
	})
}

func requestAuth(ec echo.Context) *auth.Auth {
	return auth.GetAuthData(ec.Request().Context())
}
