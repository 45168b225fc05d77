package controller

import (
	"github.com/google/uuid"
	"github.com/labstack/echo"
)

// RequestId tags every response with an X-Request-ID for log correlation,
// keeping a caller-supplied id when present.
func RequestId(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Request().Header.Get(echo.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Response().Header().Set(echo.HeaderXRequestID, id)

		return next(c)
	}
}
