package sales

import (
	"context"
	"fmt"
	"sort"
	"strings"

	pkgerrors "github.com/angelmondragon/salesdash-backend/pkg/errors"
	"github.com/angelmondragon/salesdash-backend/pkg/pagination"
)

const (
	defaultAgeMin = 0
	defaultAgeMax = 100
)

// Store is the record store surface the query engine consumes.
type Store interface {
	Count(ctx context.Context, p Predicate) (int64, error)
	Find(ctx context.Context, p Predicate, sort SortSpec, offset, limit int) ([]SalesRecord, error)
	Aggregate(ctx context.Context, p Predicate) (*AggregateRow, error)
	DistinctValues(ctx context.Context, field string) ([]string, error)
	TagStrings(ctx context.Context) ([]string, error)
	AgeRange(ctx context.Context) (*int, *int, error)
	DateRange(ctx context.Context) (*string, *string, error)
}

// Service answers the three dashboard questions: which records match a
// filter, what totals hold for that subset, and what filter values exist.
// It holds no state between calls; consistency is whatever the store
// provides.
type Service struct {
	store Store
}

// NewService constructs the sales query service.
func NewService(store Store) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("sales store required")
	}
	return &Service{store: store}, nil
}

// ListInput captures one list request after boundary parsing.
type ListInput struct {
	Filter FilterSpec
	Sort   SortSpec
	Page   pagination.Params
}

// ListSales returns one page of matching records plus the total count.
//
// The count and the page fetch are two independent reads; under concurrent
// ingestion the total and the page may disagree. Accepted trade-off.
func (s *Service) ListSales(ctx context.Context, input ListInput) (*ListResult, error) {
	pred := Compile(input.Filter)
	page := pagination.Normalize(input.Page)

	total, err := s.store.Count(ctx, pred)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "counting sales records")
	}

	rows, err := s.store.Find(ctx, pred, input.Sort, page.Offset(), page.Limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetching sales records")
	}

	views := make([]RecordView, 0, len(rows))
	for _, row := range rows {
		views = append(views, row.toView())
	}

	return &ListResult{
		Data: views,
		Pagination: PageMeta{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      total,
			TotalPages: pagination.TotalPages(total, page.Limit),
		},
	}, nil
}

// Metrics aggregates every record matching the filter. The discount total
// is computed against totalAmount, not finalAmount.
func (s *Service) Metrics(ctx context.Context, filter FilterSpec) (*MetricsResult, error) {
	row, err := s.store.Aggregate(ctx, Compile(filter))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregating sales metrics")
	}

	return &MetricsResult{
		TotalUnits:        row.TotalUnits,
		TotalAmount:       row.TotalAmount,
		TotalDiscount:     row.TotalDiscount,
		TotalTransactions: row.TotalTransactions,
		TotalSalesReps:    row.TotalSalesReps,
	}, nil
}

// FilterOptions derives the facet catalog from the entire record set. It
// never looks at the active filters: facets bound what a filter may ask
// for, so they come from everything.
func (s *Service) FilterOptions(ctx context.Context) (*FacetSet, error) {
	facets := &FacetSet{
		AgeRange: AgeRange{Min: defaultAgeMin, Max: defaultAgeMax},
	}

	dims := []struct {
		field string
		dest  *[]string
	}{
		{"customerRegion", &facets.Regions},
		{"gender", &facets.Genders},
		{"productCategory", &facets.Categories},
		{"paymentMethod", &facets.PaymentMethods},
	}
	for _, dim := range dims {
		values, err := s.store.DistinctValues(ctx, dim.field)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing "+dim.field+" facet")
		}
		*dim.dest = values
	}

	raw, err := s.store.TagStrings(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing tag facet")
	}
	facets.Tags = tokenizeTags(raw)

	minAge, maxAge, err := s.store.AgeRange(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "computing age range")
	}
	if minAge != nil && maxAge != nil {
		facets.AgeRange = AgeRange{Min: *minAge, Max: *maxAge}
	}

	minDate, maxDate, err := s.store.DateRange(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "computing date range")
	}
	facets.DateRange = DateRange{Min: minDate, Max: maxDate}

	return facets, nil
}

// tokenizeTags splits comma-separated tag strings, trims each token, drops
// empties, and returns the distinct tokens ascending.
func tokenizeTags(raw []string) []string {
	seen := make(map[string]struct{})
	for _, value := range raw {
		for _, token := range strings.Split(value, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			seen[token] = struct{}{}
		}
	}

	tokens := make([]string, 0, len(seen))
	for token := range seen {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}
