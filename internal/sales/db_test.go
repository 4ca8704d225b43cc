package sales

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupSalesTestDB opens a named in-memory sqlite database so every test
// gets its own isolated store while GORM's pool still shares one handle.
func setupSalesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS sales_records (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  transaction_id INTEGER UNIQUE,
  date TEXT,
  customer_id TEXT,
  customer_name TEXT,
  phone_number TEXT,
  gender TEXT,
  age INTEGER,
  customer_region TEXT,
  customer_type TEXT,
  product_id TEXT,
  product_name TEXT,
  brand TEXT,
  product_category TEXT,
  tags TEXT,
  quantity INTEGER,
  price_per_unit NUMERIC,
  discount_percentage NUMERIC,
  total_amount NUMERIC,
  final_amount NUMERIC,
  payment_method TEXT,
  order_status TEXT,
  delivery_type TEXT,
  store_id TEXT,
  store_location TEXT,
  salesperson_id TEXT,
  employee_name TEXT
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func strPtr(v string) *string { return &v }

func i64Ptr(v int64) *int64 { return &v }

func decPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

type fixtureRecord struct {
	tx       int64
	date     *string
	name     string
	phone    string
	gender   string
	age      *int
	region   string
	category string
	tags     *string
	quantity int
	total    string
	discount string
	payment  string
	rep      *string
}

func (f fixtureRecord) toModel() SalesRecord {
	return SalesRecord{
		TransactionID:      i64Ptr(f.tx),
		Date:               f.date,
		CustomerID:         strPtr(fmt.Sprintf("C%03d", f.tx)),
		CustomerName:       strPtr(f.name),
		PhoneNumber:        strPtr(f.phone),
		Gender:             strPtr(f.gender),
		Age:                f.age,
		CustomerRegion:     strPtr(f.region),
		ProductCategory:    strPtr(f.category),
		Tags:               f.tags,
		Quantity:           &f.quantity,
		TotalAmount:        decPtr(f.total),
		DiscountPercentage: decPtr(f.discount),
		PaymentMethod:      strPtr(f.payment),
		SalespersonID:      f.rep,
	}
}

// seedFixtures loads the standard five-record fixture used across the
// repository and service tests.
func seedFixtures(t *testing.T, db *gorm.DB) {
	t.Helper()

	fixtures := []fixtureRecord{
		{tx: 1, date: strPtr("2024-01-15"), name: "Alice Johnson", phone: "555-0101", gender: "Female",
			age: intPtr(30), region: "North", category: "Electronics", tags: strPtr("Eco, Premium"),
			quantity: 2, total: "100", discount: "10", payment: "Cash", rep: strPtr("S1")},
		{tx: 2, date: strPtr("2024-02-20"), name: "Bob Smith", phone: "555-0202", gender: "Male",
			age: intPtr(45), region: "South", category: "Clothing", tags: strPtr("Sale"),
			quantity: 5, total: "200", discount: "5", payment: "Card", rep: strPtr("S2")},
		{tx: 3, date: strPtr("2024-03-05"), name: "John Carter", phone: "555-0303", gender: "Male",
			age: intPtr(30), region: "North", category: "Electronics", tags: strPtr("VIP"),
			quantity: 1, total: "50", discount: "0", payment: "Cash", rep: strPtr("S1")},
		{tx: 4, date: strPtr("2024-03-10"), name: "Dana Reed", phone: "555-0404", gender: "Female",
			age: nil, region: "West", category: "Beauty", tags: strPtr("vip, Eco"),
			quantity: 3, total: "80", discount: "25", payment: "UPI", rep: strPtr("S3")},
		{tx: 5, date: nil, name: "Johnny Cash", phone: "555-0505", gender: "Male",
			age: intPtr(62), region: "North", category: "Electronics", tags: nil,
			quantity: 4, total: "120", discount: "50", payment: "Cash", rep: nil},
	}

	for _, f := range fixtures {
		record := f.toModel()
		require.NoError(t, db.Create(&record).Error)
	}
}

func transactionIDs(rows []SalesRecord) []int64 {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		if row.TransactionID != nil {
			ids = append(ids, *row.TransactionID)
		}
	}
	return ids
}
