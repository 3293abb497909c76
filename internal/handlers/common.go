package handlers

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/styoin/styo-server/internal/types"
	"github.com/styoin/styo-server/internal/utils"
)

// validate is shared by every handler; request DTOs carry validate tags.
var validate = validator.New()

// callerPrincipal extracts the caller identity set by the auth middleware.
func callerPrincipal(c *fiber.Ctx) (string, error) {
	principal, ok := c.Locals("principal").(string)
	if !ok || principal == "" {
		return "", types.ErrUnauthenticated
	}
	return principal, nil
}

// callerIsAdmin reports whether the request passed the admin middleware.
func callerIsAdmin(c *fiber.Ctx) bool {
	admin, _ := c.Locals("isAdmin").(bool)
	return admin
}

// parseID parses a numeric path parameter.
func parseID(c *fiber.Ctx, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, types.ErrInvalidInput
	}
	return id, nil
}

// serviceError maps service-layer sentinel errors onto the response
// envelope. Unrecognized errors become 500s.
func serviceError(c *fiber.Ctx, err error, op string) error {
	switch {
	case errors.Is(err, types.ErrNotFound):
		return utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, types.ErrInvalidInput):
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, op)
	case errors.Is(err, types.ErrUnauthenticated):
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, op)
	case errors.Is(err, types.ErrUnauthorized):
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, op)
	case errors.Is(err, types.ErrRateLimited):
		return utils.ErrorResponse(c, err.Error(), fiber.StatusTooManyRequests, op)
	case errors.Is(err, types.ErrConflict):
		return utils.ConflictResponse(c, err.Error())
	}
	return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, op)
}
