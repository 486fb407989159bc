package router

import (
	"github.com/labstack/echo/v4"

	"github.com/barsan/reservation-api/internal/handler"
	"github.com/barsan/reservation-api/internal/middleware"
)

// RegisterAccount registers the reservation views for signed-in users.
func RegisterAccount(e *echo.Echo, h *handler.AccountHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER", "ADMIN"),
	)
	g.GET("/my-reservations", h.ListMyReservations)
}
