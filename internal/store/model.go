package store

import (
	"time"

	"github.com/shopspring/decimal"

	"retailetl/pkg/contracts/domain"
)

// Order is the persistence model for one row of the orders table. Column
// names and semantics follow the cleaned export schema exactly; the
// reporting queries are written against these columns.
type Order struct {
	OrderID     string    `gorm:"column:order_id;index"`
	OrderDate   time.Time `gorm:"column:order_date;type:date;index"`
	ShipMode    string    `gorm:"column:ship_mode"`
	Segment     string    `gorm:"column:segment;index"`
	Country     string    `gorm:"column:country"`
	City        string    `gorm:"column:city"`
	State       string    `gorm:"column:state"`
	PostalCode  string    `gorm:"column:postal_code"`
	Region      string    `gorm:"column:region;index"`
	Category    string    `gorm:"column:category;index"`
	SubCategory string    `gorm:"column:sub_category"`
	ProductID   string    `gorm:"column:product_id"`

	CostPrice       decimal.Decimal `gorm:"column:cost_price;type:numeric(14,4)"`
	ListPrice       decimal.Decimal `gorm:"column:list_price;type:numeric(14,4)"`
	Quantity        int64           `gorm:"column:quantity"`
	DiscountPercent decimal.Decimal `gorm:"column:discount_percent;type:numeric(7,4)"`
	Discount        decimal.Decimal `gorm:"column:discount;type:numeric(14,4)"`
	SalePrice       decimal.Decimal `gorm:"column:sale_price;type:numeric(14,4)"`
	Profit          decimal.Decimal `gorm:"column:profit;type:numeric(14,4)"`
	ProfitMargin    decimal.Decimal `gorm:"column:profit_margin;type:numeric(7,2)"`

	Year      int    `gorm:"column:year;index"`
	Month     int    `gorm:"column:month"`
	MonthName string `gorm:"column:month_name"`
	Quarter   int    `gorm:"column:quarter"`
}

// TableName pins the gorm table name to the loader contract
func (Order) TableName() string {
	return "orders"
}

// fromDomain converts a cleaned order into its persistence model
func fromDomain(o domain.Order) Order {
	return Order{
		OrderID:         o.OrderID,
		OrderDate:       o.OrderDate,
		ShipMode:        o.ShipMode,
		Segment:         o.Segment,
		Country:         o.Country,
		City:            o.City,
		State:           o.State,
		PostalCode:      o.PostalCode,
		Region:          o.Region,
		Category:        o.Category,
		SubCategory:     o.SubCategory,
		ProductID:       o.ProductID,
		CostPrice:       o.CostPrice,
		ListPrice:       o.ListPrice,
		Quantity:        o.Quantity,
		DiscountPercent: o.DiscountPercent,
		Discount:        o.Discount,
		SalePrice:       o.SalePrice,
		Profit:          o.Profit,
		ProfitMargin:    o.ProfitMargin,
		Year:            o.Year,
		Month:           o.Month,
		MonthName:       o.MonthName,
		Quarter:         o.Quarter,
	}
}
