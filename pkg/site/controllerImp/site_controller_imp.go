package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"soilsync/entities"
	"soilsync/pkg/permission"
	"soilsync/pkg/site/repository"
)

type SiteCtrl struct {
	repo  repository.SiteRepository
	perms permission.Checker
}

func New(repo repository.SiteRepository, perms permission.Checker) *SiteCtrl {
	return &SiteCtrl{repo: repo, perms: perms}
}

type createReq struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	ProjectID *string  `json:"projectId"`
}

func (h *SiteCtrl) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.Latitude == nil || req.Longitude == nil || *req.Latitude < -90 || *req.Latitude > 90 ||
		*req.Longitude < -180 || *req.Longitude > 180 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "latitude and longitude are required"})
	}
	if req.ProjectID != nil && *req.ProjectID != "" {
		ok, err := h.perms.Check(uid, permission.EnterData, permission.Context{ProjectID: *req.ProjectID})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		if !ok {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "not allowed"})
		}
	} else {
		req.ProjectID = nil
	}
	s := &entities.Site{Name: req.Name, Latitude: *req.Latitude, Longitude: *req.Longitude, OwnerID: uid, ProjectID: req.ProjectID}
	if err := h.repo.Create(s); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *SiteCtrl) Get(c echo.Context) error {
	s, err := h.repo.FindByID(c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, s)
}
