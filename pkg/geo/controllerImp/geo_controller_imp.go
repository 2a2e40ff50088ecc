package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"agrosmart/pkg/geo/service"
	"agrosmart/pkg/web"
)

type GeoCtrl struct {
	svc service.GeoService
	log *zap.Logger
}

func New(svc service.GeoService, log *zap.Logger) *GeoCtrl { return &GeoCtrl{svc: svc, log: log} }

func (h *GeoCtrl) Map(c echo.Context) error {
	return web.Render(c, http.StatusOK, "map.html", nil)
}

// Data serves GET /api/map_data?crop=.
func (h *GeoCtrl) Data(c echo.Context) error {
	pts, err := h.svc.Points(c.Request().Context(), c.QueryParam("crop"))
	if err != nil {
		h.log.Error("map data", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load map data"})
	}
	return c.JSON(http.StatusOK, pts)
}

func (h *GeoCtrl) GeoJSON(c echo.Context) error {
	fc, err := h.svc.FeatureCollection(c.Request().Context(), c.QueryParam("crop"))
	if err != nil {
		h.log.Error("map geojson", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load map data"})
	}
	b, err := fc.MarshalJSON()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.Blob(http.StatusOK, "application/geo+json", b)
}
