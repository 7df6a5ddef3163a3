package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"soilsync/pkg/middleware"
)

type AuthCtrl struct{ devLogin bool }

// New builds the auth handlers. DevLogin answers 404 unless devLogin is set.
func New(devLogin bool) *AuthCtrl { return &AuthCtrl{devLogin: devLogin} }

func (h *AuthCtrl) DevLogin(c echo.Context) error {
	if !h.devLogin {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	uid := c.QueryParam("uid")
	if uid == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "uid is required"})
	}
	c.SetCookie(&http.Cookie{Name: middleware.ActorCookie, Value: uid, Path: "/", HttpOnly: true})
	return c.JSON(http.StatusOK, map[string]string{"uid": uid})
}

func (h *AuthCtrl) WhoAmI(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing user"})
	}
	return c.JSON(http.StatusOK, map[string]string{"uid": uid})
}
