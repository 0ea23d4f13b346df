package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/courseforge-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError writes err in the error envelope. Unclassified errors are
// reported as persistence failures without leaking their text.
func RespondError(c *gin.Context, err error) {
	kind := apierr.KindOf(err)
	msg := "Internal server error"
	if e, ok := apierr.As(err); ok && e.Message != "" {
		msg = e.Message
	}
	c.AbortWithStatusJSON(kind.Status(), ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    string(kind),
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}
