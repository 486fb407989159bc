package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/barsan/reservation-api/internal/model"
	"github.com/barsan/reservation-api/internal/timeslot"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Required variables are enforced by must()
// and missing values cause the program to exit with a fatal log message.
type Config struct {
	Env            string  // application environment (e.g. "dev", "prod")
	Port           string  // HTTP port to listen on
	DBUser         string  // database username
	DBPass         string  // database password (optional)
	DBHost         string  // database host address
	DBPort         string  // database port number
	DBName         string  // database name
	JWTSecret      string  // secret used to sign JWTs
	AccessTTLMin   int     // access token time-to-live in minutes
	RefreshTTLDays int     // refresh token time-to-live in days
	BcryptCost     int     // bcrypt cost for password hashing
	Booking        Booking // slot grid and reservation policy
}

// Booking carries the reservation policy for all venues.  The values
// mirror the defaults of the original service (17:00-23:00 grid in
// 30-minute steps, two-hour seatings, 15-minute holds, two-hour
// cancellation window) but every knob can be overridden from the
// environment.
type Booking struct {
	OpenMinutes     int           // first offered slot, minutes since midnight
	CloseMinutes    int           // last offered slot (inclusive)
	StepMinutes     int           // slot grid step
	DurationMinutes int           // service duration per reservation
	HoldTTL         time.Duration // how long a checkout hold lives
	CancelWindow    time.Duration // minimum lead time for guest cancellation
	MaxGuests       int           // upper bound on party size
}

// Load reads configuration values from environment variables and
// returns a Config.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),
		Booking:        loadBooking(),
	}
}

func loadBooking() Booking {
	return Booking{
		OpenMinutes:     clockEnv("BOOKING_OPEN", "17:00"),
		CloseMinutes:    clockEnv("BOOKING_CLOSE", "23:00"),
		StepMinutes:     intEnv("BOOKING_SLOT_MIN", 30),
		DurationMinutes: intEnv("BOOKING_DURATION_MIN", 120),
		HoldTTL:         time.Duration(intEnv("HOLD_TTL_MIN", int(model.HoldTTL/time.Minute))) * time.Minute,
		CancelWindow:    time.Duration(intEnv("CANCEL_WINDOW_HOURS", 2)) * time.Hour,
		MaxGuests:       intEnv("BOOKING_MAX_GUESTS", 20),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and
// exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an
// integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// intEnv reads an optional integer variable, falling back to def.
func intEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}

// clockEnv reads an optional "HH:MM" variable and returns it as minutes
// since midnight.
func clockEnv(key, def string) int {
	v := os.Getenv(key)
	if v == "" {
		v = def
	}
	m, err := timeslot.Parse(v)
	if err != nil {
		log.Fatalf("invalid time for %s: %q", key, v)
	}
	return m
}
