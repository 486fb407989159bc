package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/barsan/reservation-api/internal/model"
	"github.com/barsan/reservation-api/internal/repository"
)

// AccountHandler serves reservation views for authenticated customers.
type AccountHandler struct {
	Reservations *repository.ReservationRepo
}

func NewAccountHandler(reservations *repository.ReservationRepo) *AccountHandler {
	if reservations == nil {
		panic("nil repository passed to NewAccountHandler")
	}
	return &AccountHandler{Reservations: reservations}
}

// ListMyReservations handles GET /v1/my-reservations.  Supports an
// optional status filter plus limit/offset pagination; newest first.
func (h *AccountHandler) ListMyReservations(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	status := c.QueryParam("status")
	if status != "" && !model.ValidStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	offset := 0
	if v := c.QueryParam("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	items, err := h.Reservations.ListByUser(c.Request().Context(), userID, status, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	views := make([]reservationView, 0, len(items))
	for _, r := range items {
		views = append(views, viewReservation(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": views})
}
