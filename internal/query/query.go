// Package query builds the parameterized SQL statements behind the reporting endpoints.
//
// Every statement is selected from a fixed set of templates keyed by the combination of active
// filters, so request input only ever reaches the database as bound arguments. Placeholders are
// written as "?"; stores rebind them to their own dialect.
package query

import (
	"fmt"
	"strings"
)

// Statement is a SQL text together with its ordered arguments.
type Statement struct {
	SQL  string
	Args []any
}

// Listing identifies one of the raw listing endpoints.
type Listing int

const (
	Sales Listing = iota
	SaleItems
	Stocks
)

func (l Listing) String() string {
	switch l {
	case Sales:
		return "sales"
	case SaleItems:
		return "sale_items"
	case Stocks:
		return "stocks"
	default:
		return fmt.Sprintf("listing(%d)", int(l))
	}
}

// Filter holds the optional listing filters. Empty strings mean "absent".
type Filter struct {
	Search    string
	StartDate string
	EndDate   string
}

// Mode is the combination of filters active on a listing.
type Mode int

const (
	ModeNone Mode = iota
	ModeSearch
	ModeDate
	ModeBoth
)

// Mode reports which filters are active. The date filter needs both bounds.
func (f Filter) Mode() Mode {
	search := f.Search != ""
	date := f.StartDate != "" && f.EndDate != ""
	switch {
	case search && date:
		return ModeBoth
	case search:
		return ModeSearch
	case date:
		return ModeDate
	default:
		return ModeNone
	}
}

type listingDef struct {
	base        string
	searchCond  string
	searchSlots int
	dateCond    string
}

var listingDefs = map[Listing]listingDef{
	Sales: {
		base:        `SELECT * FROM sales`,
		searchCond:  `(CAST(id AS TEXT) LIKE ? ESCAPE '\' OR reference_code LIKE ? ESCAPE '\')`,
		searchSlots: 2,
		dateCond:    `created_at BETWEEN ? AND ?`,
	},
	SaleItems: {
		base: `SELECT
	si.id AS sale_item_id,
	si.sale_id,
	si.net_unit_price AS sale_net_unit_price,
	si.quantity AS sale_quantity,
	si.discount_amount AS sale_discount_amount,
	si.sub_total AS sale_sub_total,
	si.created_at AS sale_created_at,
	s.reference_code,
	s.payment_status,
	s.payment_type,
	p.name AS product_name,
	p.product_cost
FROM sale_items si
JOIN sales s ON si.sale_id = s.id
JOIN products p ON si.product_id = p.id`,
		searchCond:  `(s.reference_code LIKE ? ESCAPE '\' OR p.name LIKE ? ESCAPE '\' OR CAST(si.id AS TEXT) LIKE ? ESCAPE '\')`,
		searchSlots: 3,
		dateCond:    `si.created_at BETWEEN ? AND ?`,
	},
	Stocks: {
		base: `SELECT
	ms.id AS manage_stock_id,
	ms.product_id,
	ms.quantity AS stock_quantity,
	ms.updated_at AS stock_updated_at,
	p.name AS product_name,
	p.product_cost,
	b.id AS brand_id,
	b.name AS brand_name
FROM manage_stocks ms
JOIN products p ON ms.product_id = p.id
JOIN brands b ON p.brand_id = b.id`,
		searchCond:  `(p.name LIKE ? ESCAPE '\' OR CAST(ms.id AS TEXT) LIKE ? ESCAPE '\')`,
		searchSlots: 2,
		dateCond:    `ms.updated_at BETWEEN ? AND ?`,
	},
}

// listingTemplates is indexed by listing then mode.
var listingTemplates = func() map[Listing][4]string {
	out := make(map[Listing][4]string, len(listingDefs))
	for l, def := range listingDefs {
		out[l] = [4]string{
			ModeNone:   def.base,
			ModeSearch: def.base + "\nWHERE " + def.searchCond,
			ModeDate:   def.base + "\nWHERE " + def.dateCond,
			ModeBoth:   def.base + "\nWHERE " + def.searchCond + " AND " + def.dateCond,
		}
	}
	return out
}()

// Build returns the statement for a listing under the given filter.
func Build(l Listing, f Filter) (Statement, error) {
	def, ok := listingDefs[l]
	if !ok {
		return Statement{}, fmt.Errorf("unknown listing %s", l)
	}
	mode := f.Mode()
	args := make([]any, 0, def.searchSlots+2)
	if mode == ModeSearch || mode == ModeBoth {
		pattern := ContainsPattern(f.Search)
		for i := 0; i < def.searchSlots; i++ {
			args = append(args, pattern)
		}
	}
	if mode == ModeDate || mode == ModeBoth {
		args = append(args, f.StartDate, f.EndDate)
	}
	return Statement{SQL: listingTemplates[l][mode], Args: args}, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern returns a LIKE pattern matching term literally anywhere in a value.
// It must be paired with ESCAPE '\'.
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
