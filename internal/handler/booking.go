package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/barsan/reservation-api/internal/availability"
	"github.com/barsan/reservation-api/internal/config"
	"github.com/barsan/reservation-api/internal/model"
	"github.com/barsan/reservation-api/internal/repository"
	"github.com/barsan/reservation-api/internal/timeslot"
	"github.com/barsan/reservation-api/internal/utils"
)

// BookingHandler drives the guest-facing reservation flow: availability
// lookup, slot holds, hold-to-reservation confirmation, lookup by
// number and guest cancellation.  Holds and confirmations run their
// critical sections inside explicit transactions; the availability
// lookup reads without locks because confirmation re-validates under a
// row lock anyway.
type BookingHandler struct {
	Cfg          config.Config
	Venues       *repository.VenueRepo
	Zones        *repository.ZoneRepo
	Tables       *repository.TableRepo
	Holds        *repository.HoldRepo
	Reservations *repository.ReservationRepo
}

// NewBookingHandler constructs a BookingHandler; all repositories must
// be non-nil.
func NewBookingHandler(cfg config.Config, venues *repository.VenueRepo, zones *repository.ZoneRepo,
	tables *repository.TableRepo, holds *repository.HoldRepo, reservations *repository.ReservationRepo) *BookingHandler {
	if venues == nil || zones == nil || tables == nil || holds == nil || reservations == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{
		Cfg:          cfg,
		Venues:       venues,
		Zones:        zones,
		Tables:       tables,
		Holds:        holds,
		Reservations: reservations,
	}
}

func (h *BookingHandler) slotCfg() availability.Config {
	b := h.Cfg.Booking
	return availability.Config{
		Open:     b.OpenMinutes,
		Close:    b.CloseMinutes,
		Step:     b.StepMinutes,
		Duration: b.DurationMinutes,
	}
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// onGrid reports whether t (minutes since midnight) is one of the
// offered slot times.
func (h *BookingHandler) onGrid(t int) bool {
	b := h.Cfg.Booking
	if t < b.OpenMinutes || t > b.CloseMinutes {
		return false
	}
	return (t-b.OpenMinutes)%b.StepMinutes == 0
}

func (h *BookingHandler) validGuests(n int) bool {
	return n >= 1 && n <= h.Cfg.Booking.MaxGuests
}

// GetAvailability handles GET /v1/venues/:id/availability.  Query
// parameters: date (YYYY-MM-DD, required), guests (required) and an
// optional zone_id to narrow the table pool.  The response is the slot
// grid for the day plus per-zone counts of tables that can serve the
// party.
func (h *BookingHandler) GetAvailability(c echo.Context) error {
	venueID, ok := queryUint(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	date := c.QueryParam("date")
	if !validDate(date) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	guests, ok := queryUint(c.QueryParam("guests"))
	if !ok || !h.validGuests(int(guests)) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guests"})
	}
	var zoneID *uint64
	if z := c.QueryParam("zone_id"); z != "" {
		id, ok := queryUint(z)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid zone_id"})
		}
		zoneID = &id
	}

	ctx := c.Request().Context()
	if _, err := h.Venues.GetActive(ctx, venueID); err != nil {
		if err == repository.ErrVenueNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	suitable, err := h.Tables.ListSuitable(ctx, venueID, zoneID, int(guests))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	reservations, err := h.Reservations.ListActiveByVenueDate(ctx, venueID, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	slots := h.slotCfg().SlotGrid(availability.BookingsFrom(reservations), len(suitable))

	// Per-zone counts of tables able to serve the party.
	perZone := make(map[uint64]int)
	for _, t := range suitable {
		perZone[t.ZoneID]++
	}
	zones, err := h.Zones.ListActiveByVenue(ctx, venueID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	type zoneCount struct {
		ID             uint64 `json:"id"`
		Name           string `json:"name"`
		SuitableTables int    `json:"suitable_tables"`
	}
	zoneCounts := make([]zoneCount, 0, len(zones))
	for _, z := range zones {
		zoneCounts = append(zoneCounts, zoneCount{ID: z.ID, Name: z.Name, SuitableTables: perZone[z.ID]})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"venue_id": venueID,
		"date":     date,
		"guests":   guests,
		"slots":    slots,
		"zones":    zoneCounts,
	})
}

// ZoneTables handles GET /v1/venues/:id/zones/:zoneID/tables.  It lists
// the zone's suitable tables that are free at the requested date and
// time, letting a guest pick a specific table before holding.
func (h *BookingHandler) ZoneTables(c echo.Context) error {
	venueID, ok := queryUint(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	zoneID, ok := queryUint(c.Param("zoneID"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid zone id"})
	}
	date := c.QueryParam("date")
	if !validDate(date) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	at := c.QueryParam("time")
	start, err := timeslot.Parse(at)
	if err != nil || !h.onGrid(start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid time"})
	}
	guests, ok := queryUint(c.QueryParam("guests"))
	if !ok || !h.validGuests(int(guests)) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guests"})
	}

	ctx := c.Request().Context()
	if _, err := h.Venues.GetActive(ctx, venueID); err != nil {
		if err == repository.ErrVenueNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if _, err := h.Zones.GetActive(ctx, venueID, zoneID); err != nil {
		if err == repository.ErrZoneNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "zone not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	tables, err := h.Tables.ListSuitable(ctx, venueID, &zoneID, int(guests))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	reservations, err := h.Reservations.ListActiveByVenueDate(ctx, venueID, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	free, err := availability.FreeTables(tables, reservations, at, h.Cfg.Booking.DurationMinutes, int(guests))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid time"})
	}

	items := make([]tableView, 0, len(free))
	for _, t := range free {
		items = append(items, viewTable(t))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"venue_id": venueID,
		"zone_id":  zoneID,
		"date":     date,
		"time":     timeslot.Format(start),
		"items":    items,
	})
}

type holdReq struct {
	SessionKey string  `json:"session_key"`
	Date       string  `json:"date"`
	Time       string  `json:"time"`
	Guests     int     `json:"guests"`
	ZoneID     *uint64 `json:"zone_id"`
	TableID    *uint64 `json:"table_id"`
}

// CreateHold handles POST /v1/venues/:id/holds.  It places a temporary
// reservation on a slot for the caller's checkout session.  Any earlier
// hold of the same session is replaced atomically, so a session never
// reserves more than one slot.  Guests may hold without an account; a
// bearer token, when present, links the hold to the user.
func (h *BookingHandler) CreateHold(c echo.Context) error {
	venueID, ok := queryUint(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	var req holdReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.SessionKey = strings.TrimSpace(req.SessionKey)
	if req.SessionKey == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "session_key is required"})
	}
	if !validDate(req.Date) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	start, err := timeslot.Parse(req.Time)
	if err != nil || !h.onGrid(start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid time"})
	}
	if !h.validGuests(req.Guests) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guests"})
	}

	ctx := c.Request().Context()
	if _, err := h.Venues.GetActive(ctx, venueID); err != nil {
		if err == repository.ErrVenueNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if req.ZoneID != nil {
		if _, err := h.Zones.GetActive(ctx, venueID, *req.ZoneID); err != nil {
			if err == repository.ErrZoneNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "zone not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}
	if req.TableID != nil {
		t, err := h.Tables.GetByID(ctx, *req.TableID)
		if err != nil {
			if err == repository.ErrTableNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		if t.VenueID != venueID || !t.SuitableFor(req.Guests) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "table cannot serve this party"})
		}
	}

	// Advisory check only: the authoritative re-check happens under a
	// row lock at confirmation.
	suitable, err := h.Tables.ListSuitable(ctx, venueID, req.ZoneID, req.Guests)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	reservations, err := h.Reservations.ListActiveByVenueDate(ctx, venueID, req.Date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if len(suitable) == 0 || !availability.SlotFree(start, h.Cfg.Booking.DurationMinutes, availability.BookingsFrom(reservations)) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "time slot not available"})
	}

	hold := &model.Hold{
		UserID:     bearerUserID(c, h.Cfg.JWTSecret),
		VenueID:    venueID,
		Date:       req.Date,
		Time:       timeslot.Format(start),
		Guests:     req.Guests,
		ZoneID:     req.ZoneID,
		TableID:    req.TableID,
		SessionKey: req.SessionKey,
		ExpiresAt:  time.Now().UTC().Add(h.Cfg.Booking.HoldTTL),
	}
	if err := h.Holds.ReplaceForSession(ctx, hold); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create hold"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"hold_id":    hold.ID,
		"expires_at": hold.ExpiresAt.Format(time.RFC3339),
	})
}

type confirmReq struct {
	HoldID          uint64 `json:"hold_id"`
	SessionKey      string `json:"session_key"`
	GuestName       string `json:"guest_name"`
	GuestEmail      string `json:"guest_email"`
	GuestPhone      string `json:"guest_phone"`
	SpecialRequests string `json:"special_requests"`
}

// ConfirmReservation handles POST /v1/reservations.  It promotes a live
// hold into a pending reservation: within one transaction the hold is
// locked and lazily expired, the venue's active reservations for the
// date are locked and the overlap check re-run, a table is assigned,
// the reservation row is inserted with a fresh number and the hold is
// deleted.  Competing confirmations for the same slot serialize on the
// row locks, so at most one of them succeeds.
func (h *BookingHandler) ConfirmReservation(c echo.Context) error {
	var req confirmReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.HoldID == 0 || strings.TrimSpace(req.SessionKey) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hold_id and session_key are required"})
	}

	name := utils.SanitizeString(req.GuestName)
	if len(name) < 2 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "guest_name must be at least 2 characters"})
	}
	email := strings.ToLower(strings.TrimSpace(req.GuestEmail))
	if !utils.ValidEmail(email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest_email"})
	}
	if !utils.ValidPhone(req.GuestPhone) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest_phone"})
	}
	phone := utils.NormalizePhone(req.GuestPhone)

	ctx := c.Request().Context()
	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	hold, err := h.Holds.GetForUpdateTx(ctx, tx, req.HoldID)
	if err != nil {
		switch err {
		case repository.ErrHoldNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hold not found"})
		case repository.ErrHoldExpired:
			// Commit so the lazy expiry delete sticks.
			if err := tx.Commit(); err == nil {
				committed = true
			}
			return c.JSON(http.StatusGone, echo.Map{"error": "hold expired"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if hold.SessionKey != strings.TrimSpace(req.SessionKey) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "hold not found"})
	}

	// Lock the venue's active ledger rows for the date and re-run the
	// overlap check against the locked snapshot.
	duration := h.Cfg.Booking.DurationMinutes
	existing, err := h.Reservations.EnsureSlotFreeTx(ctx, tx, hold.VenueID, hold.Date, hold.Time, duration)
	if err != nil {
		if err == repository.ErrSlotUnavailable {
			return c.JSON(http.StatusConflict, echo.Map{"error": repository.ErrSlotUnavailable.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	suitable, err := h.Tables.ListSuitable(ctx, hold.VenueID, hold.ZoneID, hold.Guests)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	free, err := availability.FreeTables(suitable, existing, hold.Time, duration, hold.Guests)
	if err != nil || len(free) == 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": repository.ErrSlotUnavailable.Error()})
	}
	var tableID *uint64
	if hold.TableID != nil {
		for _, t := range free {
			if t.ID == *hold.TableID {
				tableID = hold.TableID
				break
			}
		}
		if tableID == nil {
			return c.JSON(http.StatusConflict, echo.Map{"error": "requested table no longer available"})
		}
	} else {
		tableID = &free[0].ID
	}

	res := &model.Reservation{
		UserID:     hold.UserID,
		VenueID:    hold.VenueID,
		TableID:    tableID,
		GuestName:  name,
		GuestEmail: email,
		GuestPhone: phone,
		Date:       hold.Date,
		Time:       hold.Time,
		Guests:     hold.Guests,
		Duration:   duration,
		Status:     model.StatusPending,
		Source:     "website",
	}
	if sr := utils.SanitizeString(req.SpecialRequests); sr != "" {
		res.SpecialRequests = &sr
	}
	if err := h.Reservations.CreateTx(ctx, tx, res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}
	if err := h.Holds.DeleteTx(ctx, tx, hold.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to consume hold"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	return c.JSON(http.StatusCreated, echo.Map{
		"reservation_number": res.Number,
		"status":             res.Status,
		"date":               res.Date,
		"time":               res.Time,
		"guests":             res.Guests,
		"table_id":           res.TableID,
	})
}

type reservationView struct {
	Number    string  `json:"reservation_number"`
	VenueID   uint64  `json:"venue_id"`
	TableID   *uint64 `json:"table_id,omitempty"`
	GuestName string  `json:"guest_name"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Guests    int     `json:"guests"`
	Duration  int     `json:"duration"`
	Status    string  `json:"status"`
}

func viewReservation(r model.Reservation) reservationView {
	return reservationView{
		Number:    r.Number,
		VenueID:   r.VenueID,
		TableID:   r.TableID,
		GuestName: r.GuestName,
		Date:      r.Date,
		Time:      r.Time,
		Guests:    r.Guests,
		Duration:  r.Duration,
		Status:    r.Status,
	}
}

// GetReservationByNumber handles GET /v1/reservations/:number.  The
// number alone suffices for lookup; the response omits contact details
// beyond the guest name.
func (h *BookingHandler) GetReservationByNumber(c echo.Context) error {
	number := strings.ToUpper(strings.TrimSpace(c.Param("number")))
	if number == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation number is required"})
	}
	res, err := h.Reservations.GetByNumber(c.Request().Context(), number)
	if err != nil {
		if err == repository.ErrReservationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": viewReservation(*res)})
}

type cancelReq struct {
	Email string `json:"email"`
}

// CancelReservation handles POST /v1/reservations/:number/cancel.  A
// guest proves ownership with the contact email; only pending and
// confirmed reservations outside the cancellation window qualify.
func (h *BookingHandler) CancelReservation(c echo.Context) error {
	number := strings.ToUpper(strings.TrimSpace(c.Param("number")))
	var req cancelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if number == "" || !utils.ValidEmail(email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation number and email are required"})
	}

	err := h.Reservations.CancelByGuest(c.Request().Context(), number, email, h.Cfg.Booking.CancelWindow)
	if err != nil {
		switch err {
		case repository.ErrReservationNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case repository.ErrCancelTooLate:
			return c.JSON(http.StatusConflict, echo.Map{"error": "too late to cancel"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": model.StatusCancelled})
}
