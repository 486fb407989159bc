package router

import (
	"github.com/labstack/echo/v4"

	"github.com/barsan/reservation-api/internal/handler"
)

// RegisterPublic registers the guest-facing browse and booking
// endpoints.  rateMW applies to everything here; cacheMW only to the
// read-mostly catalog and availability GETs, where a short TTL is
// acceptable because confirmation re-validates under a lock anyway.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, b *handler.BookingHandler, rateMW, cacheMW echo.MiddlewareFunc) {
	g := e.Group("/v1", rateMW)

	g.GET("/venues", p.ListVenues, cacheMW)
	g.GET("/venues/:id", p.GetVenue, cacheMW)
	g.GET("/venues/:id/availability", b.GetAvailability, cacheMW)
	g.GET("/venues/:id/zones/:zoneID/tables", b.ZoneTables, cacheMW)

	g.POST("/venues/:id/holds", b.CreateHold)
	g.POST("/reservations", b.ConfirmReservation)
	g.GET("/reservations/:number", b.GetReservationByNumber)
	g.POST("/reservations/:number/cancel", b.CancelReservation)
}
