package controller

import "github.com/labstack/echo/v4"

type WeatherController interface {
	Form(c echo.Context) error
	Submit(c echo.Context) error
}
