package main

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"agrosmart/config"
	"agrosmart/router"

	"agrosmart/pkg/advisory"
	"agrosmart/pkg/export"
	"agrosmart/pkg/metrics"
	"agrosmart/pkg/upload"
	"agrosmart/pkg/web"

	// Farmer
	farmerCtrlImp "agrosmart/pkg/farmer/controllerImp"
	farmerRepoImp "agrosmart/pkg/farmer/repositoryImp"
	farmerSvcImp "agrosmart/pkg/farmer/serviceImp"

	// Location
	locCtrlImp "agrosmart/pkg/location/controllerImp"
	locRepoImp "agrosmart/pkg/location/repositoryImp"
	locSvcImp "agrosmart/pkg/location/serviceImp"

	// Weather
	weatherCtrlImp "agrosmart/pkg/weather/controllerImp"
	weatherRepoImp "agrosmart/pkg/weather/repositoryImp"
	weatherSvcImp "agrosmart/pkg/weather/serviceImp"

	// Geo
	geoCtrlImp "agrosmart/pkg/geo/controllerImp"
	geoRepoImp "agrosmart/pkg/geo/repositoryImp"
	geoSvcImp "agrosmart/pkg/geo/serviceImp"

	// Health
	healthCtrlImp "agrosmart/pkg/health/controllerImp"
)

// buildServer wires repositories, services and controllers onto a new echo
// instance. The database must already be migrated.
func buildServer(cfg config.AppConfig, db *gorm.DB, log *zap.Logger) (*echo.Echo, error) {
	metrics.Init()

	store, err := upload.NewStore(cfg.UploadDir, cfg.MaxUploadBytes())
	if err != nil {
		return nil, err
	}

	locSvc := locSvcImp.NewLocationService(locRepoImp.New(db), cfg.CatalogCacheTTL)

	weatherRepo := weatherRepoImp.New(db)
	weatherSvc := weatherSvcImp.NewWeatherService(weatherRepo)

	advisor, err := advisory.New(cfg.AdvisoryMode, cfg.AdvisoryRules, weatherRepo, log.Named("advisory"))
	if err != nil {
		return nil, err
	}

	farmerSvc := farmerSvcImp.NewFarmerService(farmerRepoImp.New(db), store, advisor, log.Named("farmer"))
	geoSvc := geoSvcImp.NewGeoService(geoRepoImp.New(db))

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer

	return router.New(
		e,
		cfg,
		log,
		farmerCtrlImp.New(farmerSvc, locSvc, advisor, log.Named("farmer")),
		locCtrlImp.New(locSvc, log.Named("location")),
		weatherCtrlImp.New(weatherSvc, locSvc, log.Named("weather")),
		geoCtrlImp.New(geoSvc, log.Named("geo")),
		export.NewController(farmerSvc, log.Named("export")),
		store,
		healthCtrlImp.NewHealthCtrl(db, cfg.UploadDir),
	), nil
}
