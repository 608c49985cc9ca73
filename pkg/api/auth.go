package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trussworks/bookclub/pkg/domain"
)

// Register  POST /register
func (ct *Controller) Register(c echo.Context) error {
	var req CredentialsReq
	if err := c.Bind(&req); err != nil {
		ct.log.Warn("bind failed", "path", c.Path(), "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Username and password are required")
	}

	err := ct.users.Register(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyExists):
			return echo.NewHTTPError(http.StatusBadRequest, "User already exists!")
		case errors.Is(err, domain.ErrMissingField):
			return echo.NewHTTPError(http.StatusBadRequest, "Username and password are required")
		default:
			return ct.internalError(c, "register failed", err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "User successfully registered. Now you can login",
	})
}

// Login  POST /login
func (ct *Controller) Login(c echo.Context) error {
	var req CredentialsReq
	if err := c.Bind(&req); err != nil {
		ct.log.Warn("bind failed", "path", c.Path(), "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Username and password are required")
	}

	grant, err := ct.sessions.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Login. Check username and password")
		}
		return ct.internalError(c, "login failed", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":     "User successfully logged in",
		"accessToken": grant.Token,
		"expiresAt":   grant.ExpiresAt,
	})
}

// Logout  POST /logout
func (ct *Controller) Logout(c echo.Context) error {
	if err := ct.sessions.Logout(c.Request().Context()); err != nil {
		return ct.internalError(c, "logout failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User successfully logged out"})
}

func (ct *Controller) internalError(c echo.Context, msg string, err error) error {
	rid := c.Response().Header().Get(echo.HeaderXRequestID)
	ct.log.Error(msg,
		"err", err,
		"req_id", rid,
		"path", c.Path(),
		"method", c.Request().Method,
	)
	return echo.NewHTTPError(http.StatusInternalServerError, msg)
}
