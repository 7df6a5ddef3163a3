package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"soilsync/pkg/depth"
	"soilsync/pkg/project/repository"
	svc "soilsync/pkg/project/service"
	"soilsync/pkg/validation"
)

type ProjectCtrl struct{ s svc.Service }

func New(s svc.Service) *ProjectCtrl { return &ProjectCtrl{s: s} }

func status(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrIntervalNotFound):
		return http.StatusNotFound
	case errors.Is(err, svc.ErrNotAllowed):
		return http.StatusForbidden
	case errors.Is(err, svc.ErrNotCustom):
		return http.StatusConflict
	case validation.IsInvalid(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func fail(c echo.Context, err error) error {
	return c.JSON(status(err), map[string]string{"error": err.Error()})
}

func (h *ProjectCtrl) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}
	p, err := h.s.Create(c.Request().Context(), uid, req.Name)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProjectCtrl) AddMember(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	var req struct {
		UserID string `json:"userId"`
		Role   string `json:"role"`
	}
	if err := c.Bind(&req); err != nil || req.UserID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "userId is required"})
	}
	m, err := h.s.AddMember(c.Request().Context(), uid, c.Param("id"), req.UserID, req.Role)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *ProjectCtrl) GetSettings(c echo.Context) error {
	s, err := h.s.Settings(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *ProjectCtrl) UpdateSettings(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	var patch svc.SettingsPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	s, err := h.s.UpdateSettings(c.Request().Context(), uid, c.Param("id"), patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *ProjectCtrl) UpdateDepthInterval(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	var in svc.IntervalInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	s, err := h.s.UpdateDepthInterval(c.Request().Context(), uid, c.Param("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// DeleteDepthInterval takes the interval from the start and end query params.
func (h *ProjectCtrl) DeleteDepthInterval(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	start, err1 := strconv.Atoi(c.QueryParam("start"))
	end, err2 := strconv.Atoi(c.QueryParam("end"))
	if err1 != nil || err2 != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "start and end are required"})
	}
	s, err := h.s.DeleteDepthInterval(c.Request().Context(), uid, c.Param("id"), depth.Interval{Start: start, End: end})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, s)
}
