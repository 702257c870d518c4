package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	inventoryService "inventory.GO/service/inventory"
	"inventory.GO/service/reconcile"
	reportService "inventory.GO/service/report"
	"inventory.GO/service/square"
)

// StatusFor maps a service error to an HTTP status code.
func StatusFor(err error) int {
	var ve *inventoryService.ValidationError
	switch {
	case errors.As(err, &ve), errors.Is(err, reportService.ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, inventoryService.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, inventoryService.ErrDuplicateSubcomponent),
		errors.Is(err, inventoryService.ErrInsufficientStock),
		errors.Is(err, reconcile.ErrSyncInProgress),
		errors.Is(err, reconcile.ErrCheckpointMoved):
		return http.StatusConflict
	case errors.Is(err, square.ErrServiceUnavailable),
		errors.Is(err, reconcile.ErrUnresolvedLocation):
		return http.StatusBadGateway
	case errors.Is(err, reconcile.ErrSourceNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as {"error": msg} with the mapped status.
func Error(c echo.Context, err error) error {
	return c.JSON(StatusFor(err), echo.Map{"error": err.Error()})
}
