package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	svc "soilsync/pkg/sitedata/service"
)

type SiteDataCtrl struct{ s svc.Service }

func New(s svc.Service) *SiteDataCtrl { return &SiteDataCtrl{s: s} }

func (h *SiteDataCtrl) Push(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	var req svc.PushRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	resp, err := h.s.Push(c.Request().Context(), uid, req)
	if errors.Is(err, svc.ErrEmptyPush) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, resp)
}
