package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// currentUserID renders the authenticated user for rate-limit keys.
// Requests without a resolvable identity share the "anon" bucket.
func currentUserID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case nil:
		return "anon"
	case string:
		if v != "" {
			return v
		}
	case float64:
		return fmt.Sprintf("%.0f", v)
	case uint64:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	}
	return "anon"
}
