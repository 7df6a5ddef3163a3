package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	svc "soilsync/pkg/soildata/service"
)

type SoilDataCtrl struct{ s svc.Service }

func New(s svc.Service) *SoilDataCtrl { return &SoilDataCtrl{s: s} }

type pushReq struct {
	Entries []svc.PushEntry `json:"entries"`
}

type pushResp struct {
	Results []svc.PushResult `json:"results"`
}

func (h *SoilDataCtrl) Push(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	var req pushReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	results, err := h.s.PushBatch(c.Request().Context(), uid, req.Entries)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, pushResp{Results: results})
}

func (h *SoilDataCtrl) Get(c echo.Context) error {
	sd, err := h.s.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if sd == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no soil data"})
	}
	return c.JSON(http.StatusOK, sd)
}
