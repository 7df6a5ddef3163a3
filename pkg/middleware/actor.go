package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	ActorHeader = "X-User-Id"
	ActorCookie = "SOILSYNC_UID"
)

// Actor resolves the calling user from the X-User-Id header, then the
// SOILSYNC_UID cookie, then a uid query param, and stores it under "uid". A
// uid query param is remembered in the cookie.
func Actor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := strings.TrimSpace(c.Request().Header.Get(ActorHeader))
			if uid == "" {
				if ck, err := c.Cookie(ActorCookie); err == nil {
					uid = ck.Value
				}
			}
			if uid == "" {
				if q := strings.TrimSpace(c.QueryParam("uid")); q != "" {
					c.SetCookie(&http.Cookie{Name: ActorCookie, Value: q, Path: "/", HttpOnly: true})
					uid = q
				}
			}
			if uid != "" {
				c.Set("uid", uid)
			}
			return next(c)
		}
	}
}

// RequireActor answers 401 when Actor found no user.
func RequireActor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if uid, _ := c.Get("uid").(string); uid == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing user"})
			}
			return next(c)
		}
	}
}
