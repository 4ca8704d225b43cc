package sales

import (
	"github.com/shopspring/decimal"
)

// RecordView is the public projection of a SalesRecord. Field order is the
// API contract, not the table's column order.
type RecordView struct {
	TransactionID      *int64           `json:"transactionId"`
	Date               *string          `json:"date"`
	CustomerID         *string          `json:"customerId"`
	CustomerName       *string          `json:"customerName"`
	PhoneNumber        *string          `json:"phoneNumber"`
	Gender             *string          `json:"gender"`
	Age                *int             `json:"age"`
	CustomerRegion     *string          `json:"customerRegion"`
	CustomerType       *string          `json:"customerType"`
	ProductID          *string          `json:"productId"`
	ProductName        *string          `json:"productName"`
	Brand              *string          `json:"brand"`
	ProductCategory    *string          `json:"productCategory"`
	Tags               *string          `json:"tags"`
	Quantity           *int             `json:"quantity"`
	PricePerUnit       *decimal.Decimal `json:"pricePerUnit"`
	DiscountPercentage *decimal.Decimal `json:"discountPercentage"`
	TotalAmount        *decimal.Decimal `json:"totalAmount"`
	FinalAmount        *decimal.Decimal `json:"finalAmount"`
	PaymentMethod      *string          `json:"paymentMethod"`
	OrderStatus        *string          `json:"orderStatus"`
	DeliveryType       *string          `json:"deliveryType"`
	StoreID            *string          `json:"storeId"`
	StoreLocation      *string          `json:"storeLocation"`
	SalespersonID      *string          `json:"salespersonId"`
	EmployeeName       *string          `json:"employeeName"`
}

func (r SalesRecord) toView() RecordView {
	return RecordView{
		TransactionID:      r.TransactionID,
		Date:               r.Date,
		CustomerID:         r.CustomerID,
		CustomerName:       r.CustomerName,
		PhoneNumber:        r.PhoneNumber,
		Gender:             r.Gender,
		Age:                r.Age,
		CustomerRegion:     r.CustomerRegion,
		CustomerType:       r.CustomerType,
		ProductID:          r.ProductID,
		ProductName:        r.ProductName,
		Brand:              r.Brand,
		ProductCategory:    r.ProductCategory,
		Tags:               r.Tags,
		Quantity:           r.Quantity,
		PricePerUnit:       r.PricePerUnit,
		DiscountPercentage: r.DiscountPercentage,
		TotalAmount:        r.TotalAmount,
		FinalAmount:        r.FinalAmount,
		PaymentMethod:      r.PaymentMethod,
		OrderStatus:        r.OrderStatus,
		DeliveryType:       r.DeliveryType,
		StoreID:            r.StoreID,
		StoreLocation:      r.StoreLocation,
		SalespersonID:      r.SalespersonID,
		EmployeeName:       r.EmployeeName,
	}
}

// PageMeta describes the slice of results a list response carries.
type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// ListResult is the page of records plus pagination metadata.
type ListResult struct {
	Data       []RecordView `json:"data"`
	Pagination PageMeta     `json:"pagination"`
}

// MetricsResult aggregates the filtered subset. All fields are zero when no
// records match.
type MetricsResult struct {
	TotalUnits        int64           `json:"totalUnits"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	TotalDiscount     decimal.Decimal `json:"totalDiscount"`
	TotalTransactions int64           `json:"totalTransactions"`
	TotalSalesReps    int64           `json:"totalSalesReps"`
}

// AgeRange bounds the age filter control. Defaults to 0..100 when no record
// carries an age.
type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// DateRange bounds the date filter control. Both ends are null when no
// record carries a date.
type DateRange struct {
	Min *string `json:"min"`
	Max *string `json:"max"`
}

// FacetSet lists the legal values for every filterable dimension, computed
// over the entire record set regardless of active filters.
type FacetSet struct {
	Regions        []string  `json:"regions"`
	Genders        []string  `json:"genders"`
	Categories     []string  `json:"categories"`
	PaymentMethods []string  `json:"paymentMethods"`
	Tags           []string  `json:"tags"`
	AgeRange       AgeRange  `json:"ageRange"`
	DateRange      DateRange `json:"dateRange"`
}

// SortSpec selects the list ordering. Unrecognized fields fall back to
// date descending.
type SortSpec struct {
	Field string
	Order string
}

var sortColumns = map[string]string{
	"date":         "date",
	"quantity":     "quantity",
	"customerName": "customer_name",
}

// OrderClause renders the sort selection as a SQL ORDER BY body. A trailing id
// tiebreaker keeps pagination stable across equal sort keys.
func (s SortSpec) OrderClause() string {
	column, ok := sortColumns[s.Field]
	if !ok {
		return "date DESC, id ASC"
	}
	direction := "DESC"
	if s.Order == "asc" {
		direction = "ASC"
	}
	return column + " " + direction + ", id ASC"
}
