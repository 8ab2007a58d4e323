package middleware

import (
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/logger"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/toast"

	"github.com/labstack/echo/v4"
)

// Toasts attaches a toast queue to every request and, right before the response is
// written, emits the queued toasts as an HX-Trigger header.
func Toasts() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, queue := toast.WithQueue(c.Request().Context())
			c.SetRequest(c.Request().WithContext(ctx))

			c.Response().Before(func() {
				trigger, err := queue.TriggerHeader()
				if err != nil {
					log := logger.WithComponent("toast")
					log.Error().Err(err).Msg("Failed to encode toasts")
					return
				}
				if trigger != "" {
					c.Response().Header().Set("HX-Trigger", trigger)
				}
			})

			return next(c)
		}
	}
}
