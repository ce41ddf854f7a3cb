package models

import "github.com/shopspring/decimal"

// SaleAggregate groups a sale header with the items that reference it.
type SaleAggregate struct {
	SaleID        *int64          `json:"sale_id"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	Discount      decimal.Decimal `json:"discount"`
	PaymentStatus string          `json:"payment_status"`
	PaymentType   string          `json:"payment_type"`
	SaleItems     []SaleItemEntry `json:"sale_items"`
}

// SaleItemEntry is one line of a SaleAggregate.
type SaleItemEntry struct {
	SaleItemID    int64           `json:"sale_item_id"`
	NetUnitPrice  decimal.Decimal `json:"net_unit_price"`
	Quantity      float64         `json:"quantity"`
	CreatedAt     *string         `json:"created_at"`
	ProductCost   decimal.Decimal `json:"product_cost"`
	StockQuantity float64         `json:"stock_quantity"`
}

// StockSummary is the cost and current stock level of one product.
type StockSummary struct {
	ProductID     *int64  `json:"product_id"`
	ProductCost   float64 `json:"product_cost"`
	StockQuantity float64 `json:"stock_quantity"`
}

// InterfaceReport is the payload of the interface endpoint. The two collections are independent.
type InterfaceReport struct {
	SalesData []SaleAggregate `json:"salesData"`
	StockData []StockSummary  `json:"stockData"`
}
