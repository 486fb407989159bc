package router

import (
	"github.com/labstack/echo/v4"

	"github.com/barsan/reservation-api/internal/handler"
	"github.com/barsan/reservation-api/internal/middleware"
)

// RegisterAdmin registers the staff endpoints under /v1/admin.  Every
// route requires a valid access token carrying the ADMIN role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)
	g.GET("/venues/:id/dashboard", h.Dashboard)
	g.GET("/venues/:id/reservations", h.ListReservations)
	g.GET("/venues/:id/tables", h.ListTables)
	g.PATCH("/reservations/:id", h.UpdateReservation)
}
