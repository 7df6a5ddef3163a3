package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"soilsync/pkg/soilid"
	svc "soilsync/pkg/soilid/service"
	"soilsync/pkg/validation"
)

type SoilIDCtrl struct{ s svc.Service }

func New(s svc.Service) *SoilIDCtrl { return &SoilIDCtrl{s: s} }

func coordinates(latRaw, lonRaw string) (float64, float64, bool) {
	lat, err1 := strconv.ParseFloat(latRaw, 64)
	lon, err2 := strconv.ParseFloat(lonRaw, 64)
	if err1 != nil || err2 != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, false
	}
	return lat, lon, true
}

// LocationMatches handles GET ?latitude=&longitude=.
func (h *SoilIDCtrl) LocationMatches(c echo.Context) error {
	lat, lon, ok := coordinates(c.QueryParam("latitude"), c.QueryParam("longitude"))
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "latitude and longitude are required"})
	}
	return c.JSON(http.StatusOK, h.s.LocationMatches(c.Request().Context(), lat, lon))
}

type dataReq struct {
	Latitude  float64          `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64          `json:"longitude" validate:"gte=-180,lte=180"`
	Data      soilid.InputData `json:"data"`
}

func (h *SoilIDCtrl) DataMatches(c echo.Context) error {
	var req dataReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := validation.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, h.s.DataMatches(c.Request().Context(), req.Latitude, req.Longitude, req.Data))
}
