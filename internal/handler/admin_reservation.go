package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/barsan/reservation-api/internal/model"
	"github.com/barsan/reservation-api/internal/queue"
	"github.com/barsan/reservation-api/internal/repository"
	queue_publisher "github.com/barsan/reservation-api/internal/service"
)

// AdminHandler serves staff endpoints: the per-venue dashboard,
// reservation management and the table inventory.  Role enforcement is
// middleware's job; these handlers assume an ADMIN caller.
type AdminHandler struct {
	Venues       *repository.VenueRepo
	Tables       *repository.TableRepo
	Reservations *repository.ReservationRepo
}

func NewAdminHandler(venues *repository.VenueRepo, tables *repository.TableRepo, reservations *repository.ReservationRepo) *AdminHandler {
	if venues == nil || tables == nil || reservations == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Venues: venues, Tables: tables, Reservations: reservations}
}

// adminReservationView includes the contact and audit fields hidden
// from the public lookup.
type adminReservationView struct {
	ID              uint64     `json:"id"`
	Number          string     `json:"reservation_number"`
	UserID          *uint64    `json:"user_id,omitempty"`
	VenueID         uint64     `json:"venue_id"`
	TableID         *uint64    `json:"table_id,omitempty"`
	GuestName       string     `json:"guest_name"`
	GuestEmail      string     `json:"guest_email"`
	GuestPhone      string     `json:"guest_phone"`
	Date            string     `json:"date"`
	Time            string     `json:"time"`
	Guests          int        `json:"guests"`
	Duration        int        `json:"duration"`
	Status          string     `json:"status"`
	SpecialRequests *string    `json:"special_requests,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	Source          string     `json:"source"`
	ConfirmedAt     *time.Time `json:"confirmed_at,omitempty"`
	SeatedAt        *time.Time `json:"seated_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func viewAdminReservation(r model.Reservation) adminReservationView {
	return adminReservationView{
		ID:              r.ID,
		Number:          r.Number,
		UserID:          r.UserID,
		VenueID:         r.VenueID,
		TableID:         r.TableID,
		GuestName:       r.GuestName,
		GuestEmail:      r.GuestEmail,
		GuestPhone:      r.GuestPhone,
		Date:            r.Date,
		Time:            r.Time,
		Guests:          r.Guests,
		Duration:        r.Duration,
		Status:          r.Status,
		SpecialRequests: r.SpecialRequests,
		Notes:           r.Notes,
		Source:          r.Source,
		ConfirmedAt:     r.ConfirmedAt,
		SeatedAt:        r.SeatedAt,
		CompletedAt:     r.CompletedAt,
		CancelledAt:     r.CancelledAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// Dashboard handles GET /v1/admin/venues/:id/dashboard.  It returns
// today's reservation count, the pending backlog, the table inventory
// and the ten most recent reservations.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	venueID, ok := queryUint(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Venues.GetActive(ctx, venueID); err != nil {
		if err == repository.ErrVenueNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	today := time.Now().UTC().Format("2006-01-02")
	todayCount, err := h.Reservations.CountByVenueDate(ctx, venueID, today)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	pending, err := h.Reservations.CountPendingByVenue(ctx, venueID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	available, total, err := h.Tables.CountByVenue(ctx, venueID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	recent, err := h.Reservations.RecentByVenue(ctx, venueID, 10)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	recentViews := make([]adminReservationView, 0, len(recent))
	for _, r := range recent {
		recentViews = append(recentViews, viewAdminReservation(r))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"today_reservations": todayCount,
		"pending":            pending,
		"tables_available":   available,
		"tables_total":       total,
		"recent":             recentViews,
	})
}

// ListReservations handles GET /v1/admin/venues/:id/reservations with
// optional status and date filters plus page/per_page pagination.
func (h *AdminHandler) ListReservations(c echo.Context) error {
	venueID, ok := queryUint(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	status := c.QueryParam("status")
	if status != "" && !model.ValidStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	date := c.QueryParam("date")
	if date != "" && !validDate(date) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	page := 1
	if v := c.QueryParam("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	perPage := 20
	if v := c.QueryParam("per_page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			perPage = n
		}
	}

	items, totalCount, err := h.Reservations.ListByVenue(c.Request().Context(), venueID, status, date, perPage, (page-1)*perPage)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	views := make([]adminReservationView, 0, len(items))
	for _, r := range items {
		views = append(views, viewAdminReservation(r))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":    views,
		"total":    totalCount,
		"page":     page,
		"per_page": perPage,
	})
}

type updateReservationReq struct {
	Status  string  `json:"status"`
	TableID *uint64 `json:"table_id"`
	Notes   *string `json:"notes"`
}

// UpdateReservation handles PATCH /v1/admin/reservations/:id.  Staff
// can move a reservation through the state machine, assign a table and
// edit notes.  A transition into confirmed publishes a
// reservation.confirmed event; publish failures are logged by the
// publisher and never fail the update.
func (h *AdminHandler) UpdateReservation(c echo.Context) error {
	resID, ok := queryUint(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req updateReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !model.ValidStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	if req.TableID != nil {
		if _, err := h.Tables.GetByID(c.Request().Context(), *req.TableID); err != nil {
			if err == repository.ErrTableNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}

	res, err := h.Reservations.UpdateStatus(c.Request().Context(), resID, req.Status, req.TableID, req.Notes)
	if err != nil {
		if err == repository.ErrReservationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if res.Status == model.StatusConfirmed && res.ConfirmedAt != nil {
		ev := queue.ReservationConfirmedEvent{
			ReservationID: res.ID,
			Number:        res.Number,
			VenueID:       res.VenueID,
			TableID:       res.TableID,
			GuestName:     res.GuestName,
			Date:          res.Date,
			Time:          res.Time,
			Guests:        res.Guests,
			ConfirmedAt:   res.ConfirmedAt.UTC().Format(time.RFC3339),
		}
		if res.UserID != nil {
			ev.UserID = *res.UserID
		}
		_ = queue_publisher.PublishReservationConfirmed(c.Request().Context(), ev)
	}

	return c.JSON(http.StatusOK, echo.Map{"item": viewAdminReservation(*res)})
}

// ListTables handles GET /v1/admin/venues/:id/tables, returning every
// table of the venue including inactive ones.
func (h *AdminHandler) ListTables(c echo.Context) error {
	venueID, ok := queryUint(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	tables, err := h.Tables.ListByVenue(c.Request().Context(), venueID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	type adminTableView struct {
		tableView
		IsActive  bool `json:"is_active"`
		SortOrder int  `json:"sort_order"`
	}
	items := make([]adminTableView, 0, len(tables))
	for _, t := range tables {
		items = append(items, adminTableView{tableView: viewTable(t), IsActive: t.IsActive, SortOrder: t.SortOrder})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
