package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var appStart = time.Now()

type HealthCtrl struct {
	db         *gorm.DB
	engineMode string
}

// New reports on the database and which soil id engine ("http" or "mock") the
// process was started with.
func New(db *gorm.DB, engineMode string) *HealthCtrl {
	return &HealthCtrl{db: db, engineMode: engineMode}
}

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) pingDB(ctx context.Context) check {
	if h.db == nil {
		return check{Err: "gorm db is nil"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := h.pingDB(ctx)
	status := http.StatusOK
	if !db.OK {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]any{
		"ok":          db.OK,
		"uptime_sec":  int(time.Since(appStart).Seconds()),
		"database":    db,
		"soil_engine": h.engineMode,
		"time":        time.Now().UTC().Format(time.RFC3339),
	})
}
