package controller

import "github.com/labstack/echo/v4"

type LocationController interface {
	States(c echo.Context) error
	LGAs(c echo.Context) error
	LGAsByState(c echo.Context) error
}
