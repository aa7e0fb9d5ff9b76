package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/thanhpk/randstr"
)

const (
	// VisitorCookie carries the anonymous visitor identifier. Records a
	// visitor submits are stamped with it, nothing else depends on it.
	VisitorCookie = "skyhub_uid"

	visitorContextKey = "visitor_id"
	visitorCookieTTL  = 365 * 24 * time.Hour
)

// VisitorIdentity assigns every client an opaque visitor id on first
// contact and keeps it on the context for handlers.
func VisitorIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if cookie, err := c.Cookie(VisitorCookie); err == nil && cookie.Value != "" {
				id = cookie.Value
			} else {
				id = "visitor:" + randstr.Hex(16)
				c.SetCookie(&http.Cookie{
					Name:     VisitorCookie,
					Value:    id,
					Path:     "/",
					Expires:  time.Now().Add(visitorCookieTTL),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set(visitorContextKey, id)
			return next(c)
		}
	}
}

// VisitorID reads the visitor id stored by VisitorIdentity.
func VisitorID(c echo.Context) string {
	if id, ok := c.Get(visitorContextKey).(string); ok {
		return id
	}
	return "visitor:unknown"
}
