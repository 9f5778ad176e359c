package pipeline

import (
	"github.com/shopspring/decimal"

	"retailetl/pkg/contracts/domain"
)

var hundred = decimal.NewFromInt(100)

// Derive computes the derived monetary and temporal fields of a single
// order. It is a pure function: no cross-row state, no mutation of the
// input.
//
//	discount      = list_price * discount_percent / 100
//	sale_price    = list_price - discount
//	profit        = sale_price - cost_price
//	profit_margin = round(profit / sale_price * 100, 2)
//
// A zero sale price yields profit_margin = 0. That is a business rule,
// not an omission: downstream AVG(profit_margin) aggregates depend on a
// concrete number, so it must never become null or an error.
func Derive(o domain.Order) domain.Order {
	o.Discount = o.ListPrice.Mul(o.DiscountPercent).Div(hundred)
	o.SalePrice = o.ListPrice.Sub(o.Discount)
	o.Profit = o.SalePrice.Sub(o.CostPrice)

	if o.SalePrice.IsZero() {
		o.ProfitMargin = decimal.Zero
	} else {
		o.ProfitMargin = o.Profit.Div(o.SalePrice).Mul(hundred).Round(2)
	}

	o.Year = o.OrderDate.Year()
	o.Month = int(o.OrderDate.Month())
	o.MonthName = o.OrderDate.Month().String()
	o.Quarter = (o.Month-1)/3 + 1

	return o
}

// DeriveAll applies Derive to every order in place and returns the slice
func DeriveAll(orders []domain.Order) []domain.Order {
	for i := range orders {
		orders[i] = Derive(orders[i])
	}
	return orders
}
