package middleware

// identity.go defines helper functions shared across middleware files. It
// provides a userID extraction function that reads the identity stored by
// JWTAuth in the Echo context. When no user is authenticated, "guest" is
// returned so rate-limit and cache keys stay well-formed.

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// userID extracts a user identifier from the Echo context. JWTAuth stores
// the JWT subject claim under "user_id"; anonymous requests yield "guest".
func userID(c echo.Context) string {
	v := c.Get("user_id")
	if v == nil {
		return "guest"
	}
	switch id := v.(type) {
	case string:
		if id != "" {
			return id
		}
	case float64:
		return fmt.Sprintf("%.0f", id)
	case uint64:
		return fmt.Sprintf("%d", id)
	}
	return "guest"
}
