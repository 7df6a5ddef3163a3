package main

import (
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"soilsync/config"
	"soilsync/database"
	"soilsync/pkg/metrics"
	"soilsync/pkg/permission"
	"soilsync/router"

	// Auth + Health
	authCtrlImp "soilsync/pkg/auth/controllerImp"
	healthCtrlImp "soilsync/pkg/health/controllerImp"

	// Sites + history
	historyCtrlImp "soilsync/pkg/history/controllerImp"
	historyRepoImp "soilsync/pkg/history/repositoryImp"
	siteCtrlImp "soilsync/pkg/site/controllerImp"
	siteRepoImp "soilsync/pkg/site/repositoryImp"

	// Soil data, metadata and the combined push
	siteDataCtrlImp "soilsync/pkg/sitedata/controllerImp"
	siteDataSvcImp "soilsync/pkg/sitedata/serviceImp"
	soilDataCtrlImp "soilsync/pkg/soildata/controllerImp"
	soilDataRepoImp "soilsync/pkg/soildata/repositoryImp"
	soilDataSvcImp "soilsync/pkg/soildata/serviceImp"
	metadataCtrlImp "soilsync/pkg/soilmetadata/controllerImp"
	metadataRepoImp "soilsync/pkg/soilmetadata/repositoryImp"
	metadataSvcImp "soilsync/pkg/soilmetadata/serviceImp"

	// Projects
	projectCtrlImp "soilsync/pkg/project/controllerImp"
	projectRepoImp "soilsync/pkg/project/repositoryImp"
	projectSvcImp "soilsync/pkg/project/serviceImp"

	// Soil matching
	"soilsync/pkg/soilid"
	soilIDCache "soilsync/pkg/soilid/cache"
	soilIDCtrlImp "soilsync/pkg/soilid/controllerImp"
	soilIDEngine "soilsync/pkg/soilid/engine"
	soilIDRepoImp "soilsync/pkg/soilid/repositoryImp"
	soilIDSvcImp "soilsync/pkg/soilid/serviceImp"

	// Export
	exportCtrlImp "soilsync/pkg/export/controllerImp"
)

func main() {
	// 1) Config + logger
	cfg := config.Load()
	logger := config.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	// 2) DB (sqlite) + migrations
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		logger.Error("open database", "path", cfg.DBPath, "err", err)
		os.Exit(1)
	}

	// 3) Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// 4) Repos
	perms := permission.New(db)
	sites := siteRepoImp.New(db)
	history := historyRepoImp.New(db)
	soilDataRepo := soilDataRepoImp.New(db)
	metadataRepo := metadataRepoImp.New(db)
	projectRepo := projectRepoImp.New(db)

	// 5) Services
	soilDataSvc := soilDataSvcImp.New(db, sites, soilDataRepo, history, perms, m, logger)
	metadataSvc := metadataSvcImp.New(db, sites, metadataRepo, history, perms, m, logger)
	siteDataSvc := siteDataSvcImp.New(soilDataSvc, metadataSvc, logger)
	projectSvc := projectSvcImp.New(db, projectRepo, sites, soilDataRepo, perms, logger)

	// 6) Soil id engine (mock fallback)
	var engine soilid.Engine
	engineMode := "mock"
	if cfg.SoilIDEndpoint != "" {
		engine = soilIDEngine.NewHTTP(cfg.SoilIDEndpoint, cfg.SoilIDAPIKey, cfg.SoilIDTimeout)
		engineMode = "http"
	} else {
		engine = soilIDEngine.NewMock()
		logger.Warn("SOIL_ID_ENDPOINT not set, serving sample soil matches")
	}
	soilIDSvc := soilIDSvcImp.New(engine, soilIDCache.New(soilIDRepoImp.New(db), m), m, logger)

	// 7) Echo + router
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())

	r := router.New(
		e,
		reg,
		authCtrlImp.New(cfg.DevLogin),
		healthCtrlImp.New(db, engineMode),
		siteCtrlImp.New(sites, perms),
		projectCtrlImp.New(projectSvc),
		soilDataCtrlImp.New(soilDataSvc),
		metadataCtrlImp.New(metadataSvc),
		siteDataCtrlImp.New(siteDataSvc).Push,
		historyCtrlImp.New(history),
		soilIDCtrlImp.New(soilIDSvc),
		exportCtrlImp.New(sites, soilDataSvc, cfg.ExportSheet),
	)

	// 8) Start
	logger.Info("listening", "port", cfg.Port, "soil_engine", engineMode)
	if err := r.Start(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
