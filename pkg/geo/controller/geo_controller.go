package controller

import "github.com/labstack/echo/v4"

type GeoController interface {
	Map(c echo.Context) error
	Data(c echo.Context) error
	GeoJSON(c echo.Context) error
}
