package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/barsan/reservation-api/internal/model"
	"github.com/barsan/reservation-api/internal/repository"
)

// PublicHandler serves the unauthenticated browse endpoints: venue
// listing and venue detail with zones and tables.  These are the
// read-mostly endpoints fronted by the Redis response cache.
type PublicHandler struct {
	Venues *repository.VenueRepo
	Zones  *repository.ZoneRepo
	Tables *repository.TableRepo
}

func NewPublicHandler(venues *repository.VenueRepo, zones *repository.ZoneRepo, tables *repository.TableRepo) *PublicHandler {
	if venues == nil || zones == nil || tables == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Venues: venues, Zones: zones, Tables: tables}
}

type venueView struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Description *string `json:"description,omitempty"`
	Address     *string `json:"address,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
}

type tableView struct {
	ID        uint64   `json:"id"`
	Number    int      `json:"number"`
	Seats     int      `json:"seats"`
	MinGuests int      `json:"min_guests"`
	MaxGuests int      `json:"max_guests"`
	Location  *string  `json:"location,omitempty"`
	Features  []string `json:"features,omitempty"`
	Status    string   `json:"status"`
}

type zoneView struct {
	ID          uint64      `json:"id"`
	Name        string      `json:"name"`
	Description *string     `json:"description,omitempty"`
	Tables      []tableView `json:"tables"`
}

func viewVenue(v model.Venue) venueView {
	return venueView{
		ID:          v.ID,
		Name:        v.Name,
		DisplayName: v.DisplayName,
		Description: v.Description,
		Address:     v.Address,
		Phone:       v.Phone,
		Email:       v.Email,
	}
}

func viewTable(t model.Table) tableView {
	return tableView{
		ID:        t.ID,
		Number:    t.Number,
		Seats:     t.Seats,
		MinGuests: t.MinGuests,
		MaxGuests: t.MaxGuests,
		Location:  t.Location,
		Features:  t.Features,
		Status:    t.Status,
	}
}

// ListVenues handles GET /v1/venues.
func (h *PublicHandler) ListVenues(c echo.Context) error {
	venues, err := h.Venues.ListActive(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items := make([]venueView, 0, len(venues))
	for _, v := range venues {
		items = append(items, viewVenue(v))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetVenue handles GET /v1/venues/:id.  The detail response nests the
// venue's active zones with their active tables so a client can render
// the whole floor in one request.
func (h *PublicHandler) GetVenue(c echo.Context) error {
	venueID, ok := queryUint(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	ctx := c.Request().Context()

	venue, err := h.Venues.GetActive(ctx, venueID)
	if err != nil {
		if err == repository.ErrVenueNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	zones, err := h.Zones.ListActiveByVenue(ctx, venueID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	tables, err := h.Tables.ListByVenue(ctx, venueID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	byZone := make(map[uint64][]tableView)
	for _, t := range tables {
		if !t.IsActive {
			continue
		}
		byZone[t.ZoneID] = append(byZone[t.ZoneID], viewTable(t))
	}
	zoneViews := make([]zoneView, 0, len(zones))
	for _, z := range zones {
		tv := byZone[z.ID]
		if tv == nil {
			tv = []tableView{}
		}
		zoneViews = append(zoneViews, zoneView{
			ID:          z.ID,
			Name:        z.Name,
			Description: z.Description,
			Tables:      tv,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"venue": viewVenue(*venue),
		"zones": zoneViews,
	})
}
