package controller

import "github.com/labstack/echo/v4"

type FarmerController interface {
	Home(c echo.Context) error
	RegisterForm(c echo.Context) error
	Register(c echo.Context) error
	Dashboard(c echo.Context) error
	Admin(c echo.Context) error
	LGA(c echo.Context) error
	List(c echo.Context) error
}
