package router

import (
	"fmt"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"agrosmart/config"
	exportCtrl "agrosmart/pkg/export"
	farmerCtrl "agrosmart/pkg/farmer/controller"
	geoCtrl "agrosmart/pkg/geo/controller"
	locationCtrl "agrosmart/pkg/location/controller"
	"agrosmart/pkg/middleware"
	weatherCtrl "agrosmart/pkg/weather/controller"
)

func New(
	e *echo.Echo,
	cfg config.AppConfig,
	log *zap.Logger,
	farmers farmerCtrl.FarmerController,
	locations locationCtrl.LocationController,
	weather weatherCtrl.WeatherController,
	geo geoCtrl.GeoController,
	exports *exportCtrl.Controller,
	uploads interface{ Serve(echo.Context) error },
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.AccessLog(log))
	// two photos per registration plus form fields
	e.Use(echoMiddleware.BodyLimit(fmt.Sprintf("%dM", 2*cfg.MaxUploadMB+1)))
	e.Use(middleware.Lang(cfg.DefaultLang))

	e.GET("/health", healthCtrl.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// pages
	e.GET("/", farmers.Home)
	e.POST("/", farmers.Register)
	e.GET("/register", farmers.RegisterForm)
	e.POST("/register", farmers.Register)
	e.GET("/form", farmers.RegisterForm)
	e.POST("/form", farmers.Register)
	e.GET("/dashboard", farmers.Dashboard)
	e.GET("/admin", farmers.Admin)
	e.GET("/lga/:state/:lga", farmers.LGA)
	e.GET("/add_weather", weather.Form)
	e.POST("/add_weather", weather.Submit)
	e.GET("/map", geo.Map)
	e.GET("/uploads/:filename", uploads.Serve)

	// downloads
	e.GET("/download", exports.All)
	e.GET("/download/all", exports.All)
	e.GET("/download/state/:state", exports.ByState)
	e.GET("/download/lga/:state/:lga", exports.ByLGA)

	api := e.Group("/api")
	api.GET("/states", locations.States)
	api.GET("/lgas", locations.LGAs)
	api.GET("/lgas/:state", locations.LGAsByState)
	api.GET("/farmers", farmers.List)
	api.GET("/map_data", geo.Data)
	api.GET("/map_data.geojson", geo.GeoJSON)
	return e
}
