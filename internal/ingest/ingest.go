// Package ingest loads the sales dataset from CSV into the relational store.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/salesdash-backend/internal/sales"
	"github.com/angelmondragon/salesdash-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/salesdash-backend/pkg/errors"
	"github.com/angelmondragon/salesdash-backend/pkg/logger"
)

// DefaultBatchSize keeps individual INSERT statements small enough for the
// driver's parameter limits.
const DefaultBatchSize = 1000

// Store is the slice of the sales repository the importer needs.
type Store interface {
	DeleteAll(ctx context.Context) error
	BulkInsert(ctx context.Context, records []sales.SalesRecord) error
}

// Summary reports what a run did.
type Summary struct {
	Read     int
	Inserted int
	Skipped  int
}

// Importer replaces the sales_records table with the contents of a CSV
// export. Batches that fail to insert are skipped, not fatal, so one bad
// row cannot sink a multi-thousand-row load.
type Importer struct {
	store     Store
	log       *logger.Logger
	batchSize int
}

func NewImporter(store Store, log *logger.Logger, batchSize int) (*Importer, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "ingest: store is required")
	}
	if log == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "ingest: logger is required")
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Importer{store: store, log: log, batchSize: batchSize}, nil
}

// ImportFile runs Import against a CSV file on disk.
func (i *Importer) ImportFile(ctx context.Context, path string) (Summary, error) {
	file, err := os.Open(path)
	if err != nil {
		return Summary{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "ingest: open csv")
	}
	defer file.Close()
	return i.Import(ctx, file)
}

// Import reads the CSV stream, clears the existing records, and inserts the
// parsed rows in batches.
func (i *Importer) Import(ctx context.Context, r io.Reader) (Summary, error) {
	records, err := parseCSV(r)
	if err != nil {
		return Summary{}, err
	}
	i.log.Info(i.log.WithField(ctx, "rows", len(records)), "parsed csv")

	if err := i.store.DeleteAll(ctx); err != nil {
		return Summary{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "ingest: clear sales records")
	}

	summary := Summary{Read: len(records)}
	for start := 0; start < len(records); start += i.batchSize {
		end := start + i.batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]
		if err := i.store.BulkInsert(ctx, batch); err != nil {
			summary.Skipped += len(batch)
			batchCtx := i.log.WithFields(ctx, map[string]any{
				"from": start,
				"to":   end,
			})
			if db.IsUniqueViolation(err, "") {
				i.log.Warn(batchCtx, "batch skipped, duplicate transaction ids")
			} else {
				i.log.Error(batchCtx, "batch insert failed, continuing", err)
			}
			continue
		}
		summary.Inserted += len(batch)
		i.log.Info(i.log.WithField(ctx, "inserted", summary.Inserted),
			fmt.Sprintf("inserted %d/%d records", summary.Inserted, len(records)))
	}

	if summary.Skipped > 0 {
		i.log.Warn(i.log.WithField(ctx, "skipped", summary.Skipped), "some rows were not inserted")
	}
	return summary, nil
}

// Column headers as the dataset export writes them.
const (
	colTransactionID      = "Transaction ID"
	colDate               = "Date"
	colCustomerID         = "Customer ID"
	colCustomerName       = "Customer Name"
	colPhoneNumber        = "Phone Number"
	colGender             = "Gender"
	colAge                = "Age"
	colCustomerRegion     = "Customer Region"
	colCustomerType       = "Customer Type"
	colProductID          = "Product ID"
	colProductName        = "Product Name"
	colBrand              = "Brand"
	colProductCategory    = "Product Category"
	colTags               = "Tags"
	colQuantity           = "Quantity"
	colPricePerUnit       = "Price per Unit"
	colDiscountPercentage = "Discount Percentage"
	colTotalAmount        = "Total Amount"
	colFinalAmount        = "Final Amount"
	colPaymentMethod      = "Payment Method"
	colOrderStatus        = "Order Status"
	colDeliveryType       = "Delivery Type"
	colStoreID            = "Store ID"
	colStoreLocation      = "Store Location"
	colSalespersonID      = "Salesperson ID"
	colEmployeeName       = "Employee Name"
)

func parseCSV(r io.Reader) ([]sales.SalesRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "ingest: read csv header")
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var records []sales.SalesRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "ingest: read csv row")
		}
		records = append(records, parseRow(index, row))
	}
	return records, nil
}

// parseRow maps one CSV row onto a SalesRecord. Blank or unparseable cells
// become NULLs rather than failing the row.
func parseRow(index map[string]int, row []string) sales.SalesRecord {
	cell := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	return sales.SalesRecord{
		TransactionID:      int64OrNil(cell(colTransactionID)),
		Date:               strOrNil(cell(colDate)),
		CustomerID:         strOrNil(cell(colCustomerID)),
		CustomerName:       strOrNil(cell(colCustomerName)),
		PhoneNumber:        strOrNil(cell(colPhoneNumber)),
		Gender:             strOrNil(cell(colGender)),
		Age:                intOrNil(cell(colAge)),
		CustomerRegion:     strOrNil(cell(colCustomerRegion)),
		CustomerType:       strOrNil(cell(colCustomerType)),
		ProductID:          strOrNil(cell(colProductID)),
		ProductName:        strOrNil(cell(colProductName)),
		Brand:              strOrNil(cell(colBrand)),
		ProductCategory:    strOrNil(cell(colProductCategory)),
		Tags:               strOrNil(cell(colTags)),
		Quantity:           intOrNil(cell(colQuantity)),
		PricePerUnit:       decimalOrNil(cell(colPricePerUnit)),
		DiscountPercentage: decimalOrNil(cell(colDiscountPercentage)),
		TotalAmount:        decimalOrNil(cell(colTotalAmount)),
		FinalAmount:        decimalOrNil(cell(colFinalAmount)),
		PaymentMethod:      strOrNil(cell(colPaymentMethod)),
		OrderStatus:        strOrNil(cell(colOrderStatus)),
		DeliveryType:       strOrNil(cell(colDeliveryType)),
		StoreID:            strOrNil(cell(colStoreID)),
		StoreLocation:      strOrNil(cell(colStoreLocation)),
		SalespersonID:      strOrNil(cell(colSalespersonID)),
		EmployeeName:       strOrNil(cell(colEmployeeName)),
	}
}

func strOrNil(raw string) *string {
	if raw == "" {
		return nil
	}
	return &raw
}

func intOrNil(raw string) *int {
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}

func int64OrNil(raw string) *int64 {
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &value
}

func decimalOrNil(raw string) *decimal.Decimal {
	if raw == "" {
		return nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &value
}
