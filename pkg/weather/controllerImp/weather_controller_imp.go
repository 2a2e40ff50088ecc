package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	locsvc "agrosmart/pkg/location/service"
	"agrosmart/pkg/weather/service"
	"agrosmart/pkg/weather/serviceImp"
	"agrosmart/pkg/web"
)

type WeatherCtrl struct {
	svc  service.WeatherService
	locs locsvc.LocationService
	log  *zap.Logger
}

func New(svc service.WeatherService, locs locsvc.LocationService, log *zap.Logger) *WeatherCtrl {
	return &WeatherCtrl{svc: svc, locs: locs, log: log}
}

func (h *WeatherCtrl) Form(c echo.Context) error {
	ctx := c.Request().Context()
	states, err := h.locs.States(ctx)
	if err != nil {
		h.log.Error("list states", zap.Error(err))
		return web.Error(c, http.StatusInternalServerError, "could not load states")
	}
	recent, err := h.svc.Recent(ctx, "", 10)
	if err != nil {
		h.log.Error("list observations", zap.Error(err))
		return web.Error(c, http.StatusInternalServerError, "could not load observations")
	}
	return web.Render(c, http.StatusOK, "add_weather.html", echo.Map{
		"States": states,
		"Recent": recent,
		"Saved":  c.QueryParam("saved") == "1",
	})
}

func (h *WeatherCtrl) Submit(c echo.Context) error {
	in := service.ObservationInput{
		State:       c.FormValue("state"),
		LGA:         c.FormValue("lga"),
		Crop:        c.FormValue("crop"),
		Temperature: c.FormValue("temperature"),
		Rainfall:    c.FormValue("rainfall"),
		Season:      c.FormValue("season"),
	}
	o, err := h.svc.Record(c.Request().Context(), in)
	if err != nil {
		if errors.Is(err, serviceImp.ErrInvalidInput) {
			return web.Error(c, http.StatusBadRequest, err.Error())
		}
		h.log.Error("record observation", zap.Error(err))
		return web.Error(c, http.StatusInternalServerError, "could not save observation")
	}
	h.log.Info("weather observation recorded",
		zap.Uint("id", o.ID), zap.String("state", o.State), zap.String("lga", o.LGA), zap.Float64("rainfall", o.Rainfall))
	return c.Redirect(http.StatusSeeOther, "/add_weather?saved=1")
}
