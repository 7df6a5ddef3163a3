package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"soilsync/entities"
	"soilsync/pkg/history/repository"
)

const defaultPendingAge = 15 * time.Minute

type HistoryCtrl struct {
	repo repository.HistoryRepository
}

func New(repo repository.HistoryRepository) *HistoryCtrl { return &HistoryCtrl{repo: repo} }

// Pending lists the actor's push entries still pending after olderThan
// (a duration, default 15m). These are entries a crashed push never resolved.
func (h *HistoryCtrl) Pending(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	age := defaultPendingAge
	if v := c.QueryParam("olderThan"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "olderThan must be a non-negative duration"})
		}
		age = d
	}
	rows, err := h.repo.ListPending(time.Now().Add(-age))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	own := make([]entities.SoilDataHistory, 0, len(rows))
	for _, r := range rows {
		if r.ChangedBy == uid {
			own = append(own, r)
		}
	}
	return c.JSON(http.StatusOK, map[string]any{"pending": own})
}
