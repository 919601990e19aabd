package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"retailpulse/internal/common"
)

// respondError maps domain errors onto the standard error body. Anything
// unrecognised is logged and reported as a 500 without details.
func respondError(c echo.Context, err error, resource string) error {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return common.SendNotFoundError(c, resource)
	case errors.Is(err, common.ErrEmailTaken):
		return common.SendConflictError(c, common.ErrEmailTaken.Error())
	case errors.Is(err, common.ErrDuplicate):
		return common.SendConflictError(c, resource+" already exists")
	case errors.Is(err, common.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, common.CreateErrorResponse("INVALID_CREDENTIALS", common.ErrInvalidCredentials.Error(), nil))
	case errors.Is(err, common.ErrRateLimited):
		return common.SendTooManyRequestsError(c)
	case errors.Is(err, common.ErrInvalidInput):
		msg := strings.TrimPrefix(err.Error(), common.ErrInvalidInput.Error()+": ")
		return common.SendClientError(c, msg)
	}

	zerolog.Ctx(c.Request().Context()).Error().Err(err).Str("path", c.Path()).Msg("request failed")
	return common.SendServerError(c, "Internal server error")
}

// bindAndValidate binds the body into req and runs the registered validator.
// A non-nil response error means the reply has already been written.
func bindAndValidate(c echo.Context, req interface{}) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(req); err != nil {
		return false, common.SendValidationErrors(c, err)
	}
	return true, nil
}

func pagination(c echo.Context) (int, int, error) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	return common.ValidatePaginationParams(limit, offset)
}
