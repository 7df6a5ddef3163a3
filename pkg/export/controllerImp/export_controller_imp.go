package controllerImp

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"soilsync/entities"
	"soilsync/pkg/export"
	siteRepo "soilsync/pkg/site/repository"
	soilDataSvc "soilsync/pkg/soildata/service"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportCtrl struct {
	sites    siteRepo.SiteRepository
	soilData soilDataSvc.Service
	sheet    string
}

func New(sites siteRepo.SiteRepository, soilData soilDataSvc.Service, sheet string) *ExportCtrl {
	return &ExportCtrl{sites: sites, soilData: soilData, sheet: sheet}
}

func (h *ExportCtrl) Site(c echo.Context) error {
	s, err := h.sites.FindByID(c.Param("id"))
	if errors.Is(err, siteRepo.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return h.write(c, "site-"+s.ID, []entities.Site{*s})
}

func (h *ExportCtrl) Project(c echo.Context) error {
	sites, err := h.sites.ListByProject(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return h.write(c, "project-"+c.Param("id"), sites)
}

func (h *ExportCtrl) write(c echo.Context, name string, sites []entities.Site) error {
	rows := make([]export.SiteSoilData, 0, len(sites))
	for _, s := range sites {
		sd, err := h.soilData.Get(c.Request().Context(), s.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		rows = append(rows, export.SiteSoilData{Site: s, SoilData: sd})
	}
	var buf bytes.Buffer
	if err := export.WriteSites(&buf, h.sheet, rows); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.xlsx"`, name))
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}
