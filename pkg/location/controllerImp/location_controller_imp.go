package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"agrosmart/pkg/location/service"
)

type LocationCtrl struct {
	svc service.LocationService
	log *zap.Logger
}

func New(svc service.LocationService, log *zap.Logger) *LocationCtrl {
	return &LocationCtrl{svc: svc, log: log}
}

func (h *LocationCtrl) States(c echo.Context) error {
	states, err := h.svc.States(c.Request().Context())
	if err != nil {
		h.log.Error("list states", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load states"})
	}
	return c.JSON(http.StatusOK, echo.Map{"states": states})
}

// LGAs serves GET /api/lgas?state=<name>.
func (h *LocationCtrl) LGAs(c echo.Context) error {
	return h.respond(c, c.QueryParam("state"))
}

// LGAsByState serves GET /api/lgas/:state.
func (h *LocationCtrl) LGAsByState(c echo.Context) error {
	return h.respond(c, c.Param("state"))
}

func (h *LocationCtrl) respond(c echo.Context, state string) error {
	lgas, err := h.svc.LGAs(c.Request().Context(), state)
	if err != nil {
		h.log.Error("list lgas", zap.String("state", state), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load lgas"})
	}
	return c.JSON(http.StatusOK, echo.Map{"lgas": lgas})
}
