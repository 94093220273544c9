package assignments

import (
	"net/http"

	"github.com/orderdesk/backoffice-backend/api/responses"
	"github.com/orderdesk/backoffice-backend/api/validators"
	internalassignments "github.com/orderdesk/backoffice-backend/internal/assignments"
	pkgerrors "github.com/orderdesk/backoffice-backend/pkg/errors"
	"github.com/orderdesk/backoffice-backend/pkg/logger"
)

type updateStatusRequest struct {
	Status            string  `json:"status" validate:"required"`
	ConfirmedQuantity *int    `json:"confirmedQuantity,omitempty"`
	VendorRemarks     *string `json:"vendorRemarks,omitempty"`
}

// UpdateStatus applies a vendor's confirm or decline decision to one assigned
// order item. Status values the engine does not recognize come back as
// validation errors, not transport errors.
func UpdateStatus(svc internalassignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assignments service unavailable"))
			return
		}

		assignmentID, err := validators.ParseURLUUID(r, "assignmentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateStatus(r.Context(), internalassignments.UpdateStatusInput{
			AssignmentID:      assignmentID,
			Status:            payload.Status,
			ConfirmedQuantity: payload.ConfirmedQuantity,
			VendorRemarks:     payload.VendorRemarks,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
