package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"agrosmart/pkg/web"
)

const langCookie = "lang"

// Lang resolves the page language: ?lang= (remembered in a cookie), then the
// cookie, then Accept-Language, then def.
func Lang(def string) echo.MiddlewareFunc {
	if !web.Supported(def) {
		def = web.LangEnglish
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lang := ""
			if q := strings.ToLower(c.QueryParam("lang")); web.Supported(q) {
				lang = q
				c.SetCookie(&http.Cookie{Name: langCookie, Value: q, Path: "/", MaxAge: 365 * 24 * 3600})
			}
			if lang == "" {
				if ck, err := c.Cookie(langCookie); err == nil && web.Supported(ck.Value) {
					lang = ck.Value
				}
			}
			if lang == "" {
				lang = web.MatchAcceptLanguage(c.Request().Header.Get("Accept-Language"))
			}
			if lang == "" {
				lang = def
			}
			c.Set(web.LangKey, lang)
			return next(c)
		}
	}
}
