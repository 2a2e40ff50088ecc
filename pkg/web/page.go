package web

import (
	"net/url"

	"github.com/labstack/echo/v4"
)

// View wraps handler data with what the shared layout needs.
type View struct {
	Lang    string
	Locales []Locale
	Path    string
	Data    any
}

func (v View) T(key string) string { return T(v.Lang, key) }

// Lang returns the language resolved for this request, English if unset.
func Lang(c echo.Context) string {
	if l, ok := c.Get(LangKey).(string); ok && l != "" {
		return l
	}
	return LangEnglish
}

func Render(c echo.Context, status int, name string, data any) error {
	return c.Render(status, name, View{
		Lang:    Lang(c),
		Locales: Locales,
		Path:    c.Request().URL.Path,
		Data:    data,
	})
}

// Error writes the plain text error page used by HTML routes.
func Error(c echo.Context, status int, msg string) error {
	return c.String(status, msg)
}

// PathParam returns a route parameter with percent escapes decoded. echo
// matches on the raw path when it holds an escaped slash, so LGA names like
// "Urue-Offong/Oruko" arrive still encoded.
func PathParam(c echo.Context, name string) string {
	v := c.Param(name)
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}
