package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// SaleItemRow is one flat row of the interface report query: a sale item joined to its sale,
// product and stock. Every column may be NULL because of the LEFT JOIN chain.
type SaleItemRow struct {
	SaleID            sql.NullInt64       `db:"sale_id"`
	PaidAmount        decimal.NullDecimal `db:"paid_amount"`
	GrandTotal        decimal.NullDecimal `db:"grand_total"`
	SaleDiscount      decimal.NullDecimal `db:"sale_discount"`
	PaymentStatus     sql.NullString      `db:"payment_status"`
	PaymentType       sql.NullString      `db:"payment_type"`
	SaleItemID        sql.NullInt64       `db:"sale_item_id"`
	SaleNetUnitPrice  decimal.NullDecimal `db:"sale_net_unit_price"`
	SaleQuantity      decimal.NullDecimal `db:"sale_quantity"`
	SaleItemCreatedAt sql.NullString      `db:"sale_item_created_at"`
	ProductCost       decimal.NullDecimal `db:"product_cost"`
	StockQuantity     decimal.NullDecimal `db:"stock_quantity"`
}

// StockRow is one product with its current on-hand quantity.
type StockRow struct {
	ProductID     sql.NullInt64       `db:"product_id"`
	ProductCost   decimal.NullDecimal `db:"product_cost"`
	StockQuantity decimal.NullDecimal `db:"stock_quantity"`
}
