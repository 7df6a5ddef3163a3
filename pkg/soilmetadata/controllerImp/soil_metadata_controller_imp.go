package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	svc "soilsync/pkg/soilmetadata/service"
)

type SoilMetadataCtrl struct{ s svc.Service }

func New(s svc.Service) *SoilMetadataCtrl { return &SoilMetadataCtrl{s: s} }

type pushReq struct {
	Entries []svc.PushEntry `json:"entries"`
}

func (h *SoilMetadataCtrl) Push(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	var req pushReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	results, err := h.s.PushBatch(c.Request().Context(), uid, req.Entries)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"results": results})
}

func (h *SoilMetadataCtrl) Get(c echo.Context) error {
	m, err := h.s.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if m == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no soil metadata"})
	}
	return c.JSON(http.StatusOK, m)
}
