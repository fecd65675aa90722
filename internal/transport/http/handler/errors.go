package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ErlanBelekov/league-manager/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/samber/oops"
)

const (
	codeBadRequest      = "BAD_REQUEST"
	codeValidation      = "VALIDATION_FAILED"
	codeUnauthenticated = "UNAUTHENTICATED"
	codeForbidden       = "FORBIDDEN"
	codeNotFound        = "NOT_FOUND"
	codeConflict        = "CONFLICT"
	codeInternal        = "INTERNAL"
)

const (
	errInternalServer     = "Internal server error"
	errMalformedBody      = "Request body is not valid JSON for this endpoint"
	errInvalidID          = "Path id must be a positive integer"
	errValidation         = "Validation failed"
	errUnauthorized       = "Unauthorized"
	errInvalidCredentials = "Invalid email or password"
	errForbidden          = "You are not allowed to perform this action"
	errUserNotFound       = "User not found"
	errTeamNotFound       = "Team not found"
	errGameNotFound       = "Game not found"
	errNotFound           = "Resource not found"
	errEmailTaken         = "A user with this email already exists"
	errUserReferenced     = "User still coaches a team"
	errTeamReferenced     = "Team is still scheduled in a game"
	errDanglingReference  = "A referenced entity no longer exists"
	errConflict           = "Request conflicts with the current state"
)

type errorResponse struct {
	Code       string             `json:"code"`
	Error      string             `json:"error"`
	Violations []domain.Violation `json:"violations,omitempty"`
}

// writeError maps the domain error taxonomy to a status and a stable code.
// Anything unrecognised is logged and reported as a generic 500.
func writeError(c *gin.Context, logger *slog.Logger, op string, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, errorResponse{Code: codeValidation, Error: errValidation, Violations: verr.Violations})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, errorResponse{Code: codeUnauthenticated, Error: errInvalidCredentials})
	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, errorResponse{Code: codeUnauthenticated, Error: errUnauthorized})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, errorResponse{Code: codeForbidden, Error: errForbidden})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Code: codeNotFound, Error: notFoundMessage(err)})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse{Code: codeConflict, Error: conflictMessage(err)})
	default:
		logError(c, logger, op, err)
		c.JSON(http.StatusInternalServerError, errorResponse{Code: codeInternal, Error: errInternalServer})
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return errUserNotFound
	case errors.Is(err, domain.ErrTeamNotFound):
		return errTeamNotFound
	case errors.Is(err, domain.ErrGameNotFound):
		return errGameNotFound
	}
	return errNotFound
}

func conflictMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		return errEmailTaken
	case errors.Is(err, domain.ErrUserReferenced):
		return errUserReferenced
	case errors.Is(err, domain.ErrTeamReferenced):
		return errTeamReferenced
	case errors.Is(err, domain.ErrDanglingReference):
		return errDanglingReference
	}
	return errConflict
}

// logError adds the oops code and context when the error carries them.
func logError(c *gin.Context, logger *slog.Logger, op string, err error) {
	ctx := c.Request.Context()
	if oopsErr, ok := oops.AsOops(err); ok {
		attrs := []any{"error", err.Error()}
		if code := oopsErr.Code(); code != nil {
			attrs = append(attrs, "code", code)
		}
		if oc := oopsErr.Context(); len(oc) > 0 {
			attrs = append(attrs, "context", oc)
		}
		logger.ErrorContext(ctx, op, attrs...)
		return
	}
	logger.ErrorContext(ctx, op, "error", err)
}

func badBody(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{Code: codeBadRequest, Error: errMalformedBody + ": " + err.Error()})
}

// pathID parses the :id parameter, writing a 400 when it is not a positive integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Code: codeBadRequest, Error: errInvalidID})
		return 0, false
	}
	return id, true
}
