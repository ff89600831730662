// Package web is the HTTP surface of the back office: session lifecycle,
// route guards, and one set of JSON endpoints per entity listing. Handlers
// stay thin; all behavior lives in the controller layer.
package web

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"pannel_backoffice/internal/common"
)

// JSONResponse writes data with an explicit utf-8 charset so accented
// French text renders correctly everywhere.
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// HandleResponse normalizes every handler's reply into the envelope
// {code, message, data, status}.
func HandleResponse(c fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		return HandleErrorResponse(c, err)
	}
	return JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": "OK",
		"data":    data,
		"status":  "success",
	})
}

// HandleErrorResponse maps an error to its JSON shape. Normalized errors
// keep their status code and taxonomy code; anything else becomes a 500.
func HandleErrorResponse(c fiber.Ctx, err error) error {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		status := customErr.StatusCode
		if status == 0 {
			status = common.StatusBadGateway
		}
		return JSONResponse(c, status, fiber.Map{
			"code":    customErr.Code.Code,
			"message": customErr.Notification(),
			"details": customErr.ResponseData,
			"status":  "error",
		})
	}
	return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
		"code":    common.ErrCodeInternal.Code,
		"message": err.Error(),
		"status":  "error",
	})
}
