// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"errors"

	"zogakzip/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Presentational paging values. Listings always return the full match
// set; clients render these fixed page numbers.
const (
	listCurrentPage = 1
	listTotalPages  = 5
)

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "groupId" -> "group ID", "commentId" -> "comment ID".
func humanizeParam(param string) string {
	switch param {
	case "groupId":
		return "group ID"
	case "postId":
		return "post ID"
	case "commentId":
		return "comment ID"
	default:
		return "ID"
	}
}

// mapServiceError writes the failure envelope for a service error.
// Anything that is not an explicit AppError is treated as a bad request
// so that unexpected faults never leak stack detail with a 500.
func mapServiceError(c *fiber.Ctx, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	status := fiber.StatusBadRequest
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			status = fiber.StatusNotFound
		case "FORBIDDEN":
			status = fiber.StatusForbidden
		case "UNAUTHORIZED":
			status = fiber.StatusUnauthorized
		}
	}
	return models.RespondWithError(c, status, err)
}

// parseBoolQuery returns a pointer to the parsed boolean query value, or
// nil when the parameter is absent.
func parseBoolQuery(c *fiber.Ctx, key string) *bool {
	switch c.Query(key) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	default:
		return nil
	}
}

// listEnvelope wraps listing data in the paged response shape.
func listEnvelope(total int64, data any) fiber.Map {
	return fiber.Map{
		"currentPage":    listCurrentPage,
		"totalPages":     listTotalPages,
		"totalItemCount": total,
		"data":           data,
	}
}
