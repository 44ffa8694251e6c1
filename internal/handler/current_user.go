package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Theshakkymeister/Bitrader-sub001/internal/middleware"
)

// GetCurrentUser pulls the authenticated user the middleware attached to
// the request context.
func GetCurrentUser(c *gin.Context) (*middleware.UserContext, error) {
	v, ok := c.Get("user")
	if !ok || v == nil {
		return nil, errors.New("user not found in context")
	}

	if uc, ok := v.(middleware.UserContext); ok {
		return &uc, nil
	}

	return nil, errors.New("invalid user type in context")
}
