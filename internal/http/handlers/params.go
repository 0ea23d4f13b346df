package handlers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/courseforge-backend/internal/platform/apierr"
)

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, apierr.Validation("invalid id", err)
	}
	return id, nil
}

// bindJSON decodes the request body. An empty body is a validation error.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apierr.Validation("request body is required", err)
		}
		return apierr.Validation("invalid request body", err)
	}
	return nil
}
