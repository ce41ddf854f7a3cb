package query

// DateRange bounds the interface report. Either side may be absent.
type DateRange struct {
	Start string
	End   string
}

// RangeMode is the shape of a DateRange.
type RangeMode int

const (
	RangeNone RangeMode = iota
	RangeFrom
	RangeUntil
	RangeBetween
)

func (r DateRange) Mode() RangeMode {
	switch {
	case r.Start != "" && r.End != "":
		return RangeBetween
	case r.Start != "":
		return RangeFrom
	case r.End != "":
		return RangeUntil
	default:
		return RangeNone
	}
}

const saleItemReportBase = `SELECT
	s.id AS sale_id,
	s.paid_amount,
	s.grand_total,
	s.discount AS sale_discount,
	s.payment_status,
	s.payment_type,
	si.id AS sale_item_id,
	si.net_unit_price AS sale_net_unit_price,
	si.quantity AS sale_quantity,
	si.created_at AS sale_item_created_at,
	p.product_cost,
	COALESCE(ms.quantity, 0) AS stock_quantity
FROM sale_items si
LEFT JOIN sales s ON si.sale_id = s.id
LEFT JOIN products p ON si.product_id = p.id
LEFT JOIN manage_stocks ms ON p.id = ms.product_id`

// Both the sale and the item timestamp are tested; a row matches when either falls in range.
var saleItemReportTemplates = [4]string{
	RangeNone:    saleItemReportBase,
	RangeFrom:    saleItemReportBase + "\nWHERE (s.created_at >= ? OR si.created_at >= ?)",
	RangeUntil:   saleItemReportBase + "\nWHERE (s.created_at <= ? OR si.created_at <= ?)",
	RangeBetween: saleItemReportBase + "\nWHERE (s.created_at BETWEEN ? AND ? OR si.created_at BETWEEN ? AND ?)",
}

// SaleItemReport returns the flat sale-item query of the interface report.
func SaleItemReport(r DateRange) Statement {
	mode := r.Mode()
	var args []any
	switch mode {
	case RangeFrom:
		args = []any{r.Start, r.Start}
	case RangeUntil:
		args = []any{r.End, r.End}
	case RangeBetween:
		args = []any{r.Start, r.End, r.Start, r.End}
	}
	return Statement{SQL: saleItemReportTemplates[mode], Args: args}
}

const stockLevelsSQL = `SELECT
	p.id AS product_id,
	p.product_cost,
	COALESCE(ms.quantity, 0) AS stock_quantity
FROM products p
LEFT JOIN manage_stocks ms ON p.id = ms.product_id`

// StockLevels returns the unfiltered per-product stock query.
func StockLevels() Statement {
	return Statement{SQL: stockLevelsSQL}
}
