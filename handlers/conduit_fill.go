package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ohmnibid/services"
)

// HandleConduitFill validates a wire/conduit combination against the sizing
// table. The result is three-valued: valid, invalid with a recommendation,
// or null when the table has no data for the inputs.
func HandleConduitFill(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req services.ConduitFillRequest
		if err := decodeJSON(e, &req); err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}
		if req.WireSize == "" {
			return apiError(e, http.StatusBadRequest, "wireSize is required")
		}
		if req.ConductorCount <= 0 {
			return apiError(e, http.StatusBadRequest, "conductorCount must be positive")
		}

		return e.JSON(http.StatusOK, services.ValidateConduitFill(req))
	}
}
