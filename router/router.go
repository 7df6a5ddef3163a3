package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"soilsync/pkg/middleware"
)

type handler = func(echo.Context) error

func New(
	e *echo.Echo,
	gatherer prometheus.Gatherer,
	authCtrl interface{ DevLogin(echo.Context) error; WhoAmI(echo.Context) error },
	healthCtrl interface{ Health(echo.Context) error },
	siteCtrl interface{ Create(echo.Context) error; Get(echo.Context) error },
	projectCtrl interface {
		Create(echo.Context) error
		AddMember(echo.Context) error
		GetSettings(echo.Context) error
		UpdateSettings(echo.Context) error
		UpdateDepthInterval(echo.Context) error
		DeleteDepthInterval(echo.Context) error
	},
	soilDataCtrl interface{ Push(echo.Context) error; Get(echo.Context) error },
	metadataCtrl interface{ Push(echo.Context) error; Get(echo.Context) error },
	siteDataPush handler,
	historyCtrl interface{ Pending(echo.Context) error },
	soilIDCtrl interface{ LocationMatches(echo.Context) error; DataMatches(echo.Context) error },
	exportCtrl interface{ Site(echo.Context) error; Project(echo.Context) error },
) *echo.Echo {
	e.Use(middleware.Actor())
	write := middleware.RequireActor()

	e.GET("/health", healthCtrl.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	e.GET("/whoami", authCtrl.WhoAmI)
	e.GET("/devlogin", authCtrl.DevLogin)

	e.POST("/sites", siteCtrl.Create, write)
	e.GET("/sites/:id", siteCtrl.Get)
	e.GET("/sites/:id/soil-data", soilDataCtrl.Get)
	e.GET("/sites/:id/soil-metadata", metadataCtrl.Get)
	e.GET("/sites/:id/export.xlsx", exportCtrl.Site)

	e.POST("/projects", projectCtrl.Create, write)
	e.POST("/projects/:id/members", projectCtrl.AddMember, write)
	e.GET("/projects/:id/soil-settings", projectCtrl.GetSettings)
	e.PATCH("/projects/:id/soil-settings", projectCtrl.UpdateSettings, write)
	e.PUT("/projects/:id/depth-intervals", projectCtrl.UpdateDepthInterval, write)
	e.DELETE("/projects/:id/depth-intervals", projectCtrl.DeleteDepthInterval, write)
	e.GET("/projects/:id/export.xlsx", exportCtrl.Project)

	push := e.Group("", write)
	push.POST("/soil-data/push", soilDataCtrl.Push)
	push.POST("/soil-metadata/push", metadataCtrl.Push)
	push.POST("/site-data/push", siteDataPush)
	push.GET("/soil-data/history/pending", historyCtrl.Pending)

	e.GET("/soil-id/location-matches", soilIDCtrl.LocationMatches)
	e.POST("/soil-id/data-matches", soilIDCtrl.DataMatches)
	return e
}
