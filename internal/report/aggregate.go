package report

import (
	"github.com/shopspring/decimal"

	"github.com/hongminglow/pos-audit-be/internal/models"
)

const notAvailable = "N/A"

// saleKey identifies an aggregate. Rows whose sale is missing share the null key.
type saleKey struct {
	id    int64
	valid bool
}

// orderedSales is a map of aggregates that iterates in insertion order.
type orderedSales struct {
	index map[saleKey]int
	sales []models.SaleAggregate
}

func newOrderedSales(capacity int) *orderedSales {
	return &orderedSales{index: make(map[saleKey]int, capacity)}
}

// getOrCreate returns the aggregate for row's sale, creating it from row the first time.
func (o *orderedSales) getOrCreate(row models.SaleItemRow) *models.SaleAggregate {
	key := saleKey{id: row.SaleID.Int64, valid: row.SaleID.Valid}
	if i, ok := o.index[key]; ok {
		return &o.sales[i]
	}
	agg := models.SaleAggregate{
		PaidAmount:    orZero(row.PaidAmount),
		GrandTotal:    orZero(row.GrandTotal),
		Discount:      orZero(row.SaleDiscount),
		PaymentStatus: orNA(row.PaymentStatus.String),
		PaymentType:   orNA(row.PaymentType.String),
		SaleItems:     []models.SaleItemEntry{},
	}
	if key.valid {
		id := key.id
		agg.SaleID = &id
	}
	o.index[key] = len(o.sales)
	o.sales = append(o.sales, agg)
	return &o.sales[len(o.sales)-1]
}

// FoldSales groups flat sale-item rows under their sale. Aggregates appear in the order their
// sale is first seen and items keep row order. Rows without a sale item still create the sale.
func FoldSales(rows []models.SaleItemRow) []models.SaleAggregate {
	sales := newOrderedSales(len(rows))
	for _, row := range rows {
		agg := sales.getOrCreate(row)
		if !row.SaleItemID.Valid {
			continue
		}
		entry := models.SaleItemEntry{
			SaleItemID:    row.SaleItemID.Int64,
			NetUnitPrice:  orZero(row.SaleNetUnitPrice),
			Quantity:      orZero(row.SaleQuantity).InexactFloat64(),
			ProductCost:   orZero(row.ProductCost),
			StockQuantity: orZero(row.StockQuantity).InexactFloat64(),
		}
		if row.SaleItemCreatedAt.Valid {
			created := row.SaleItemCreatedAt.String
			entry.CreatedAt = &created
		}
		agg.SaleItems = append(agg.SaleItems, entry)
	}
	if sales.sales == nil {
		return []models.SaleAggregate{}
	}
	return sales.sales
}

// SummarizeStock converts stock rows, defaulting missing numbers to 0.
func SummarizeStock(rows []models.StockRow) []models.StockSummary {
	out := make([]models.StockSummary, 0, len(rows))
	for _, row := range rows {
		s := models.StockSummary{
			ProductCost:   orZero(row.ProductCost).InexactFloat64(),
			StockQuantity: orZero(row.StockQuantity).InexactFloat64(),
		}
		if row.ProductID.Valid && row.ProductID.Int64 != 0 {
			id := row.ProductID.Int64
			s.ProductID = &id
		}
		out = append(out, s)
	}
	return out
}

func orZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
