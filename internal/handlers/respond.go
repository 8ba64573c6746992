package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/team-collab-api/internal/constants"
	apierrors "github.com/yukikurage/team-collab-api/internal/errors"
	"github.com/yukikurage/team-collab-api/internal/logging"
	"github.com/yukikurage/team-collab-api/internal/middleware"
)

// respondInternalError logs err and sends a generic 500 that leaks nothing.
func respondInternalError(c *gin.Context, log logging.Logger, err error) {
	log.Error(c.Request.Context(), "request failed",
		"error", err,
		"request_id", c.GetString(constants.ContextKeyRequestID),
		"path", c.Request.URL.Path,
	)
	apierrors.InternalError(c, "")
}

// actingUser returns the authenticated user ID, answering 401 when absent.
func actingUser(c *gin.Context) (uint64, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return 0, false
	}
	return userID, true
}

// idParam returns the ID parsed by middleware.RequireIDParam.
func idParam(c *gin.Context, name string) (uint64, bool) {
	id, ok := middleware.GetIDParam(c, name)
	if !ok {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

const invalidBodyMessage = "Invalid request body"

// FieldError names a request field that failed a binding rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// respondBindError answers a failed ShouldBindJSON. Rule violations are sent
// with message and the offending fields; anything else is a malformed body.
func respondBindError(c *gin.Context, err error, message string) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		apierrors.BadRequest(c, invalidBodyMessage)
		return
	}

	details := make([]FieldError, len(verrs))
	for i, fe := range verrs {
		details[i] = FieldError{Field: fe.Field(), Rule: fe.Tag()}
	}
	apierrors.BadRequestWithDetails(c, message, details)
}
