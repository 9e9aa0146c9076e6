package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// DeviceIDKey is the context key for the device ID
const DeviceIDKey contextKey = "device_id"

// DeviceCookieName is the cookie that carries the device ID across visits
const DeviceCookieName = "tid_device"

// deviceCookieMaxAge keeps the device ID for one year
const deviceCookieMaxAge = 365 * 24 * time.Hour

// DeviceID returns an Echo middleware that resolves the caller's device ID.
// Clients may send it via the X-Device-ID header or the tid_device cookie;
// first-time visitors get a fresh ID and a Set-Cookie in the response.
func DeviceID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			deviceID, found := resolveDeviceID(c)
			if !found {
				deviceID = uuid.New()
				c.SetCookie(&http.Cookie{
					Name:     DeviceCookieName,
					Value:    deviceID.String(),
					Path:     "/",
					MaxAge:   int(deviceCookieMaxAge.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(c.Request().Context(), DeviceIDKey, deviceID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

func resolveDeviceID(c echo.Context) (uuid.UUID, bool) {
	if header := c.Request().Header.Get("X-Device-ID"); header != "" {
		if id, err := uuid.Parse(header); err == nil {
			return id, true
		}
	}
	if cookie, err := c.Cookie(DeviceCookieName); err == nil && cookie.Value != "" {
		if id, err := uuid.Parse(cookie.Value); err == nil {
			return id, true
		}
	}
	return uuid.Nil, false
}

// GetDeviceID extracts the device ID from the context
func GetDeviceID(c echo.Context) uuid.UUID {
	if id, ok := c.Request().Context().Value(DeviceIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
