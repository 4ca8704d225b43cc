package sales

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Money fields serialize as JSON numbers, matching the public API shape.
	decimal.MarshalJSONWithoutQuotes = true
}

// SalesRecord is one retail transaction row. Records are written only by the
// ingester; the query side treats the table as read-only. Every business
// field is nullable because source exports routinely omit values.
type SalesRecord struct {
	ID                 int64            `gorm:"column:id;primaryKey;autoIncrement"`
	TransactionID      *int64           `gorm:"column:transaction_id;uniqueIndex:idx_sales_records_transaction_id"`
	Date               *string          `gorm:"column:date"`
	CustomerID         *string          `gorm:"column:customer_id"`
	CustomerName       *string          `gorm:"column:customer_name"`
	PhoneNumber        *string          `gorm:"column:phone_number"`
	Gender             *string          `gorm:"column:gender"`
	Age                *int             `gorm:"column:age"`
	CustomerRegion     *string          `gorm:"column:customer_region"`
	CustomerType       *string          `gorm:"column:customer_type"`
	ProductID          *string          `gorm:"column:product_id"`
	ProductName        *string          `gorm:"column:product_name"`
	Brand              *string          `gorm:"column:brand"`
	ProductCategory    *string          `gorm:"column:product_category"`
	Tags               *string          `gorm:"column:tags"`
	Quantity           *int             `gorm:"column:quantity"`
	PricePerUnit       *decimal.Decimal `gorm:"column:price_per_unit;type:numeric(12,2)"`
	DiscountPercentage *decimal.Decimal `gorm:"column:discount_percentage;type:numeric(5,2)"`
	TotalAmount        *decimal.Decimal `gorm:"column:total_amount;type:numeric(14,2)"`
	FinalAmount        *decimal.Decimal `gorm:"column:final_amount;type:numeric(14,2)"`
	PaymentMethod      *string          `gorm:"column:payment_method"`
	OrderStatus        *string          `gorm:"column:order_status"`
	DeliveryType       *string          `gorm:"column:delivery_type"`
	StoreID            *string          `gorm:"column:store_id"`
	StoreLocation      *string          `gorm:"column:store_location"`
	SalespersonID      *string          `gorm:"column:salesperson_id"`
	EmployeeName       *string          `gorm:"column:employee_name"`
}

// TableName pins the table the migrations create.
func (SalesRecord) TableName() string {
	return "sales_records"
}
