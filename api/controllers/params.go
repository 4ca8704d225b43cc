package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/salesdash-backend/api/validators"
	"github.com/angelmondragon/salesdash-backend/internal/sales"
	"github.com/angelmondragon/salesdash-backend/pkg/pagination"
)

const maxSearchLen = 200

// splitList accepts a multi-value dimension either as repeated query
// parameters or as one comma-joined value. Blank entries are dropped.
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// buildFilterSpec reads the shared filter parameters. Non-numeric age
// bounds are dropped rather than rejected. The metrics endpoint does not
// honor search, so it is opt-in.
func buildFilterSpec(r *http.Request, includeSearch bool) sales.FilterSpec {
	query := r.URL.Query()
	spec := sales.FilterSpec{
		Regions:        splitList(query["regions"]),
		Genders:        splitList(query["genders"]),
		AgeMin:         sales.CoerceInt(query.Get("ageMin")),
		AgeMax:         sales.CoerceInt(query.Get("ageMax")),
		Categories:     splitList(query["categories"]),
		Tags:           splitList(query["tags"]),
		PaymentMethods: splitList(query["paymentMethods"]),
		DateFrom:       strings.TrimSpace(query.Get("dateFrom")),
		DateTo:         strings.TrimSpace(query.Get("dateTo")),
	}
	if includeSearch {
		spec.Search = validators.SanitizeString(query.Get("search"), maxSearchLen)
	}
	return spec
}

func buildListInput(r *http.Request) sales.ListInput {
	query := r.URL.Query()
	return sales.ListInput{
		Filter: buildFilterSpec(r, true),
		Sort: sales.SortSpec{
			Field: strings.TrimSpace(query.Get("sortBy")),
			Order: strings.TrimSpace(query.Get("sortOrder")),
		},
		Page: pagination.Params{
			Page:  sales.CoerceIntDefault(query.Get("page"), pagination.DefaultPage),
			Limit: sales.CoerceIntDefault(query.Get("limit"), pagination.DefaultLimit),
		},
	}
}
