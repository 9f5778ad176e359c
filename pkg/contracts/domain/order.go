package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order represents a single retail order line after cleaning. Categorical
// fields use the empty string as the missing-value marker established at
// ingestion; derived fields are computed by the pipeline and never supplied
// by the source.
type Order struct {
	OrderID    string    `json:"order_id" db:"order_id"`
	OrderDate  time.Time `json:"order_date" db:"order_date"`
	ShipMode   string    `json:"ship_mode,omitempty" db:"ship_mode"`
	Segment    string    `json:"segment" db:"segment"`
	Country    string    `json:"country" db:"country"`
	City       string    `json:"city" db:"city"`
	State      string    `json:"state" db:"state"`
	PostalCode string    `json:"postal_code" db:"postal_code"`
	Region     string    `json:"region" db:"region"`
	Category   string    `json:"category" db:"category"`
	SubCategory string   `json:"sub_category" db:"sub_category"`
	ProductID  string    `json:"product_id" db:"product_id"`

	CostPrice       decimal.Decimal `json:"cost_price" db:"cost_price"`
	ListPrice       decimal.Decimal `json:"list_price" db:"list_price"`
	Quantity        int64           `json:"quantity" db:"quantity"`
	DiscountPercent decimal.Decimal `json:"discount_percent" db:"discount_percent"`

	// Derived monetary fields, see Derive.
	Discount     decimal.Decimal `json:"discount" db:"discount"`
	SalePrice    decimal.Decimal `json:"sale_price" db:"sale_price"`
	Profit       decimal.Decimal `json:"profit" db:"profit"`
	ProfitMargin decimal.Decimal `json:"profit_margin" db:"profit_margin"`

	// Derived temporal fields from OrderDate.
	Year      int    `json:"year" db:"year"`
	Month     int    `json:"month" db:"month"`
	MonthName string `json:"month_name" db:"month_name"`
	Quarter   int    `json:"quarter" db:"quarter"`
}

// CanonicalColumns is the exact column set and ordering of the cleaned
// export file. The loader and every reporting query depend on this list;
// changing it is a breaking schema change.
var CanonicalColumns = []string{
	"order_id", "order_date", "ship_mode", "segment", "country",
	"city", "state", "postal_code", "region", "category",
	"sub_category", "product_id", "cost_price", "list_price",
	"quantity", "discount_percent", "discount", "sale_price",
	"profit", "profit_margin", "year", "month", "month_name", "quarter",
}

// RawColumns lists the canonical names a raw extract must provide after
// header normalization. Derived columns are intentionally absent.
var RawColumns = []string{
	"order_id", "order_date", "ship_mode", "segment", "country",
	"city", "state", "postal_code", "region", "category",
	"sub_category", "product_id", "cost_price", "list_price",
	"quantity", "discount_percent",
}

// DateLayout is the unambiguous year-month-day format used for both sides
// of the pipeline: parsing order_date from the raw extract and rendering it
// in the export.
const DateLayout = "2006-01-02"
