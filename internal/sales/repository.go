package sales

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository is the record store: every read the query engine performs and
// the two writes the ingester needs.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// facetColumns whitelists the dimensions DistinctValues may touch; the
// column name is interpolated into SQL and must never come from a request.
var facetColumns = map[string]string{
	"customerRegion":  "customer_region",
	"gender":          "gender",
	"productCategory": "product_category",
	"paymentMethod":   "payment_method",
}

func (r *Repository) scoped(ctx context.Context, p Predicate) *gorm.DB {
	qb := r.db.WithContext(ctx).Model(&SalesRecord{})
	if clause, args := p.SQL(); clause != "" {
		qb = qb.Where(clause, args...)
	}
	return qb
}

// Count returns how many records satisfy the predicate.
func (r *Repository) Count(ctx context.Context, p Predicate) (int64, error) {
	var total int64
	if err := r.scoped(ctx, p).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Find returns one page of records satisfying the predicate in the
// requested order.
func (r *Repository) Find(ctx context.Context, p Predicate, sort SortSpec, offset, limit int) ([]SalesRecord, error) {
	var rows []SalesRecord
	err := r.scoped(ctx, p).
		Order(sort.OrderClause()).
		Offset(offset).
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}

// AggregateRow carries the raw aggregate values for one predicate.
type AggregateRow struct {
	TotalTransactions int64
	TotalUnits        int64
	TotalAmount       decimal.Decimal
	TotalDiscount     decimal.Decimal
	TotalSalesReps    int64
}

// Aggregate computes all metric sums in a single read. NULL sums coalesce
// to zero so an empty match yields an all-zero row.
func (r *Repository) Aggregate(ctx context.Context, p Predicate) (*AggregateRow, error) {
	var row AggregateRow
	err := r.scoped(ctx, p).
		Select(
			"COUNT(*) AS total_transactions, " +
				"COALESCE(SUM(quantity), 0) AS total_units, " +
				"COALESCE(SUM(total_amount), 0) AS total_amount, " +
				"COALESCE(SUM(total_amount * discount_percentage / 100.0), 0) AS total_discount, " +
				"COUNT(DISTINCT salesperson_id) AS total_sales_reps",
		).
		Scan(&row).
		Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// DistinctValues lists the distinct non-null, non-empty values of a
// filterable dimension, ascending.
func (r *Repository) DistinctValues(ctx context.Context, field string) ([]string, error) {
	column, ok := facetColumns[field]
	if !ok {
		return nil, fmt.Errorf("unknown facet field %q", field)
	}

	values := make([]string, 0)
	err := r.db.WithContext(ctx).
		Model(&SalesRecord{}).
		Distinct(column).
		Where(column + " IS NOT NULL AND " + column + " <> ''").
		Order(column + " ASC").
		Pluck(column, &values).
		Error
	return values, err
}

// TagStrings returns every raw comma-separated tags value present in the
// table. Tokenization happens in the service; the token universe is small.
func (r *Repository) TagStrings(ctx context.Context) ([]string, error) {
	values := make([]string, 0)
	err := r.db.WithContext(ctx).
		Model(&SalesRecord{}).
		Where("tags IS NOT NULL AND tags <> ''").
		Pluck("tags", &values).
		Error
	return values, err
}

// AgeRange returns the min and max non-null ages, nil when no ages exist.
func (r *Repository) AgeRange(ctx context.Context) (*int, *int, error) {
	var row struct {
		MinAge *int
		MaxAge *int
	}
	err := r.db.WithContext(ctx).
		Model(&SalesRecord{}).
		Select("MIN(age) AS min_age, MAX(age) AS max_age").
		Where("age IS NOT NULL").
		Scan(&row).
		Error
	if err != nil {
		return nil, nil, err
	}
	return row.MinAge, row.MaxAge, nil
}

// DateRange returns the min and max non-null dates as stored, nil when no
// dates exist. ISO-8601 strings order lexicographically.
func (r *Repository) DateRange(ctx context.Context) (*string, *string, error) {
	var row struct {
		MinDate *string
		MaxDate *string
	}
	err := r.db.WithContext(ctx).
		Model(&SalesRecord{}).
		Select("MIN(date) AS min_date, MAX(date) AS max_date").
		Where("date IS NOT NULL").
		Scan(&row).
		Error
	if err != nil {
		return nil, nil, err
	}
	return row.MinDate, row.MaxDate, nil
}

// DeleteAll clears the table ahead of a reseed. Ingester only.
func (r *Repository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&SalesRecord{}).
		Error
}

// BulkInsert writes a batch of records. Ingester only.
func (r *Repository) BulkInsert(ctx context.Context, records []SalesRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&records).Error
}
