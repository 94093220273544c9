package vendororders

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/orderdesk/backoffice-backend/api/responses"
	"github.com/orderdesk/backoffice-backend/api/validators"
	internalvendororders "github.com/orderdesk/backoffice-backend/internal/vendororders"
	pkgerrors "github.com/orderdesk/backoffice-backend/pkg/errors"
	"github.com/orderdesk/backoffice-backend/pkg/logger"
)

// ListVendorAssignments serves one vendor's assignment groups across all
// decision states.
func ListVendorAssignments(svc internalvendororders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor orders service unavailable"))
			return
		}

		vendorID, err := validators.ParseURLUUID(r, "vendorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters, err := buildFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListVendorAssignments(r.Context(), vendorID, filters, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ListConfirmedVendorOrders serves the accounts dashboard: confirmed groups
// across every vendor.
func ListConfirmedVendorOrders(svc internalvendororders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor orders service unavailable"))
			return
		}

		filters, err := buildFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListConfirmedVendorOrders(r.Context(), filters, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// GetVendorOrder resolves a single derived vendor order by its composite id.
func GetVendorOrder(svc internalvendororders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor orders service unavailable"))
			return
		}

		raw := strings.TrimSpace(chi.URLParam(r, "vendorOrderId"))
		key, err := internalvendororders.ParseKey(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vendor order id"))
			return
		}

		view, err := svc.GetVendorOrder(r.Context(), key)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if view == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "vendor order not found"))
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func buildFilters(r *http.Request) (internalvendororders.Filters, error) {
	var filters internalvendororders.Filters

	filters.OrderNumberQuery = strings.TrimSpace(r.URL.Query().Get("orderNumber"))
	filters.VendorNameQuery = strings.TrimSpace(r.URL.Query().Get("vendorName"))
	filters.OrderStatus = strings.TrimSpace(r.URL.Query().Get("orderStatus"))
	filters.POStatus = strings.TrimSpace(r.URL.Query().Get("poStatus"))
	filters.InvoiceStatus = strings.TrimSpace(r.URL.Query().Get("invoiceStatus"))

	from, err := validators.ParseQueryDate(r, "dateFrom")
	if err != nil {
		return filters, err
	}
	filters.ActionFrom = from

	to, err := validators.ParseQueryDateEnd(r, "dateTo")
	if err != nil {
		return filters, err
	}
	filters.ActionTo = to

	return filters, nil
}
