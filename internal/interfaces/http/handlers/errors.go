package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "garagesale.backend/internal/domain/errors"
	"garagesale.backend/internal/interfaces/http/response"
)

// fail maps usecase errors onto HTTP responses. Usecases return either an
// *AppError, which already carries its status, or one of the sentinel domain
// errors mapped here.
func fail(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		response.Error(c, appErr)
		return
	}

	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		response.Error(c, domainerrors.NotFound("resource not found"))
	case errors.Is(err, domainerrors.ErrForbidden):
		response.Error(c, domainerrors.Forbidden("you do not have access to this resource"))
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		response.Error(c, domainerrors.Conflict(err.Error()))
	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		response.Error(c, domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeInvalidCredentials, "Invalid email or password", err))
	case errors.Is(err, domainerrors.ErrAccountDisabled):
		response.Error(c, domainerrors.NewAppError(http.StatusForbidden, domainerrors.CodeForbidden, "Account is disabled", err))
	case errors.Is(err, domainerrors.ErrNotVerified):
		response.Error(c, domainerrors.NewAppError(http.StatusForbidden, domainerrors.CodeNotVerified, "Verification required", err))
	case errors.Is(err, domainerrors.ErrAllotmentExceeded):
		response.Error(c, domainerrors.NewAppError(http.StatusForbidden, domainerrors.CodeAllotmentExceeded, "Monthly item limit reached", err))
	case errors.Is(err, domainerrors.ErrItemNotAvailable):
		response.Error(c, domainerrors.Conflict("item is not available"))
	case errors.Is(err, domainerrors.ErrInvalidTransition):
		response.Error(c, domainerrors.Conflict("action is not possible in the current state"))
	case errors.Is(err, domainerrors.ErrInvalidInput), errors.Is(err, domainerrors.ErrBadRequest):
		response.Error(c, domainerrors.BadRequest(err.Error()))
	case errors.Is(err, domainerrors.ErrUnauthorized):
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
	default:
		response.Error(c, err)
	}
}
