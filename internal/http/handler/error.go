package handler

import "github.com/gofiber/fiber/v2"

// errorPayload is the error body the UI consumes: {"detail": "..."}.
// The detail string is shown to the user verbatim, so it must stay
// human-readable and free of internal specifics.
type errorPayload struct {
	Detail string `json:"detail"`
}

// writeError writes a standardized JSON error response.
func writeError(c *fiber.Ctx, status int, detail string) error {
	return c.Status(status).JSON(errorPayload{Detail: detail})
}

// ErrorHandler returns a Fiber global error handler that standardizes error
// responses for errors that escape the route handlers.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "file too large")
		default:
			return writeError(c, status, "internal server error")
		}
	}
}
