package controllers

import (
	"net/http"

	"github.com/angelmondragon/salesdash-backend/api/responses"
	"github.com/angelmondragon/salesdash-backend/internal/sales"
	pkgerrors "github.com/angelmondragon/salesdash-backend/pkg/errors"
	"github.com/angelmondragon/salesdash-backend/pkg/logger"
)

// ListSales returns the filtered, sorted page of records. The response
// carries the dashboard's contract shape directly, no envelope.
func ListSales(svc *sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		result, err := svc.ListSales(r.Context(), buildListInput(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteRaw(w, http.StatusOK, result)
	}
}

// SalesMetrics returns the aggregate totals over the filtered subset.
func SalesMetrics(svc *sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		metrics, err := svc.Metrics(r.Context(), buildFilterSpec(r, false))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteRaw(w, http.StatusOK, metrics)
	}
}

// SalesFilterOptions returns the facet catalog for the filter controls,
// always computed over the unfiltered record set.
func SalesFilterOptions(svc *sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		facets, err := svc.FilterOptions(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteRaw(w, http.StatusOK, facets)
	}
}
