package sales

import (
	"context"
	"testing"

	"github.com/angelmondragon/salesdash-backend/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, seed bool) *Service {
	t.Helper()
	db := setupSalesTestDB(t)
	if seed {
		seedFixtures(t, db)
	}
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc
}

func TestNewServiceRequiresStore(t *testing.T) {
	_, err := NewService(nil)
	require.Error(t, err)
}

func TestListSalesDefaultsAndMetadata(t *testing.T) {
	svc := newTestService(t, true)

	result, err := svc.ListSales(context.Background(), ListInput{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Pagination.Page)
	assert.Equal(t, 10, result.Pagination.Limit)
	assert.Equal(t, int64(5), result.Pagination.Total)
	assert.Equal(t, int64(1), result.Pagination.TotalPages)
	assert.Len(t, result.Data, 5)

	// Default ordering is date descending; the dated records come first,
	// newest to oldest.
	require.NotNil(t, result.Data[0].Date)
	assert.Equal(t, "2024-03-10", *result.Data[0].Date)
	require.NotNil(t, result.Data[1].Date)
	assert.Equal(t, "2024-03-05", *result.Data[1].Date)
}

func TestListSalesPaginationCoversEveryRecordOnce(t *testing.T) {
	svc := newTestService(t, true)
	ctx := context.Background()

	seen := map[int64]int{}
	var pages int64
	for page := 1; ; page++ {
		result, err := svc.ListSales(ctx, ListInput{Page: pagination.Params{Page: page, Limit: 2}})
		require.NoError(t, err)
		if pages == 0 {
			pages = result.Pagination.TotalPages
			assert.Equal(t, int64(3), pages)
		}
		if int64(page) > pages {
			assert.Empty(t, result.Data)
			break
		}
		for _, view := range result.Data {
			require.NotNil(t, view.TransactionID)
			seen[*view.TransactionID]++
		}
	}

	assert.Len(t, seen, 5, "every record appears")
	for id, count := range seen {
		assert.Equal(t, 1, count, "record %d duplicated", id)
	}
}

func TestListSalesBogusSortMatchesDateDesc(t *testing.T) {
	svc := newTestService(t, true)
	ctx := context.Background()

	bogus, err := svc.ListSales(ctx, ListInput{Sort: SortSpec{Field: "bogus", Order: "asc"}})
	require.NoError(t, err)
	byDate, err := svc.ListSales(ctx, ListInput{Sort: SortSpec{Field: "date", Order: "desc"}})
	require.NoError(t, err)

	assert.Equal(t, byDate.Data, bogus.Data)
}

func TestListSalesEmptyPageIsNotAnError(t *testing.T) {
	svc := newTestService(t, false)

	result, err := svc.ListSales(context.Background(), ListInput{})
	require.NoError(t, err)
	assert.NotNil(t, result.Data)
	assert.Empty(t, result.Data)
	assert.Zero(t, result.Pagination.Total)
	assert.Zero(t, result.Pagination.TotalPages)
}

func TestMetricsComputesDiscountAgainstTotalAmount(t *testing.T) {
	svc := newTestService(t, true)

	metrics, err := svc.Metrics(context.Background(), FilterSpec{
		Regions: []string{"North", "South"},
		AgeMin:  intPtr(30),
		AgeMax:  intPtr(45),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), metrics.TotalTransactions)
	assert.Equal(t, int64(8), metrics.TotalUnits)
	assert.Equal(t, "350", metrics.TotalAmount.String())
	assert.Equal(t, "20", metrics.TotalDiscount.String())
	assert.Equal(t, int64(2), metrics.TotalSalesReps)
}

func TestMetricsEmptyMatchIsAllZeros(t *testing.T) {
	svc := newTestService(t, true)

	metrics, err := svc.Metrics(context.Background(), FilterSpec{Search: "no-such-customer"})
	require.NoError(t, err)

	assert.Zero(t, metrics.TotalTransactions)
	assert.Zero(t, metrics.TotalUnits)
	assert.True(t, metrics.TotalAmount.IsZero())
	assert.True(t, metrics.TotalDiscount.IsZero())
	assert.Zero(t, metrics.TotalSalesReps)
}

func TestFilterOptionsDerivesFacets(t *testing.T) {
	svc := newTestService(t, true)

	facets, err := svc.FilterOptions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"North", "South", "West"}, facets.Regions)
	assert.Equal(t, []string{"Female", "Male"}, facets.Genders)
	assert.Equal(t, []string{"Beauty", "Clothing", "Electronics"}, facets.Categories)
	assert.Equal(t, []string{"Card", "Cash", "UPI"}, facets.PaymentMethods)
	// Tokens stay case-sensitive, so VIP and vip both survive.
	assert.Equal(t, []string{"Eco", "Premium", "Sale", "VIP", "vip"}, facets.Tags)

	assert.Equal(t, AgeRange{Min: 30, Max: 62}, facets.AgeRange)
	require.NotNil(t, facets.DateRange.Min)
	require.NotNil(t, facets.DateRange.Max)
	assert.Equal(t, "2024-01-15", *facets.DateRange.Min)
	assert.Equal(t, "2024-03-10", *facets.DateRange.Max)
}

func TestFilterOptionsEmptyStoreDefaults(t *testing.T) {
	svc := newTestService(t, false)

	facets, err := svc.FilterOptions(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, facets.Regions)
	assert.Empty(t, facets.Regions)
	assert.Empty(t, facets.Tags)

	// Age defaults to a usable slider range; dates stay null.
	assert.Equal(t, AgeRange{Min: 0, Max: 100}, facets.AgeRange)
	assert.Nil(t, facets.DateRange.Min)
	assert.Nil(t, facets.DateRange.Max)
}

func TestTokenizeTags(t *testing.T) {
	tokens := tokenizeTags([]string{"Eco, Premium ,Eco", "Sale", " , "})
	assert.Equal(t, []string{"Eco", "Premium", "Sale"}, tokens)

	assert.Empty(t, tokenizeTags(nil))
}
