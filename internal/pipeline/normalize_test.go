package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "retailetl/internal/errors"
)

func TestCanonicalizeHeader(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Order Date", "order_date"},
		{"List Price", "list_price"},
		{"cost price", "cost_price"},
		{"Sub Category", "sub_category"},
		{"ORDER ID", "order_id"},
		{"  Postal Code  ", "postal_code"},
		{"quantity", "quantity"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanonicalizeHeader(tt.raw), "raw header %q", tt.raw)
	}
}

func sampleTable(t *testing.T) *RawTable {
	t.Helper()
	table, err := LoadRaw(writeSampleCSV(t, sampleRawCSV))
	require.NoError(t, err)
	return table
}

func TestNormalize_ParsesTypedRows(t *testing.T) {
	orders, err := Normalize(sampleTable(t))
	require.NoError(t, err)
	require.Len(t, orders, 5)

	first := orders[0]
	assert.Equal(t, "1", first.OrderID)
	assert.Equal(t, time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC), first.OrderDate)
	assert.Equal(t, "Second Class", first.ShipMode)
	assert.Equal(t, "42420", first.PostalCode)
	assert.Equal(t, "240", first.CostPrice.String())
	assert.Equal(t, "260", first.ListPrice.String())
	assert.Equal(t, int64(2), first.Quantity)
	assert.Equal(t, "2", first.DiscountPercent.String())

	// Missing ship_mode stays the empty marker
	assert.Equal(t, "", orders[2].ShipMode)
}

func TestNormalize_MissingColumns(t *testing.T) {
	table := &RawTable{
		Headers: []string{"Order Id", "Order Date"},
		Rows:    [][]string{{"1", "2023-01-01"}},
	}
	_, err := Normalize(table)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))

	appErr := err.(*apperrors.AppError)
	assert.Contains(t, appErr.Context["missing_columns"], "list_price")
	assert.Contains(t, appErr.Context["missing_columns"], "region")
}

func TestNormalize_MalformedDate(t *testing.T) {
	tests := []struct {
		name string
		date string
	}{
		{"wrong format", "03/01/2023"},
		{"nonsense", "soon"},
		{"missing", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			csv := "Order Id,Order Date,Ship Mode,Segment,Country,City,State,Postal Code,Region,Category,Sub Category,Product Id,cost price,List Price,Quantity,Discount Percent\n" +
				"1,2023-01-01,Standard Class,Consumer,US,City,State,1,South,Furniture,Chairs,P-1,100,150,1,10\n" +
				"2," + tt.date + ",Standard Class,Consumer,US,City,State,1,South,Furniture,Chairs,P-2,100,150,1,10\n"
			table, err := LoadRaw(writeSampleCSV(t, csv))
			require.NoError(t, err)

			_, err = Normalize(table)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrTypeMalformedDate))

			appErr := err.(*apperrors.AppError)
			assert.Equal(t, 2, appErr.Context["row"], "error should identify the offending row")
		})
	}
}

func TestNormalize_MalformedNumeric(t *testing.T) {
	csv := "Order Id,Order Date,Ship Mode,Segment,Country,City,State,Postal Code,Region,Category,Sub Category,Product Id,cost price,List Price,Quantity,Discount Percent\n" +
		"1,2023-01-01,Standard Class,Consumer,US,City,State,1,South,Furniture,Chairs,P-1,abc,150,1,10\n"
	table, err := LoadRaw(writeSampleCSV(t, csv))
	require.NoError(t, err)

	_, err = Normalize(table)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeMalformedValue))

	appErr := err.(*apperrors.AppError)
	assert.Equal(t, "cost_price", appErr.Context["column"])
	assert.Equal(t, 1, appErr.Context["row"])
}

func TestNormalize_QuantityAcceptsIntegralFloats(t *testing.T) {
	csv := "Order Id,Order Date,Ship Mode,Segment,Country,City,State,Postal Code,Region,Category,Sub Category,Product Id,cost price,List Price,Quantity,Discount Percent\n" +
		"1,2023-01-01,Standard Class,Consumer,US,City,State,1,South,Furniture,Chairs,P-1,100,150,3.0,10\n"
	table, err := LoadRaw(writeSampleCSV(t, csv))
	require.NoError(t, err)

	orders, err := Normalize(table)
	require.NoError(t, err)
	assert.Equal(t, int64(3), orders[0].Quantity)
}

func TestNormalize_QuantityRejectsFractions(t *testing.T) {
	csv := "Order Id,Order Date,Ship Mode,Segment,Country,City,State,Postal Code,Region,Category,Sub Category,Product Id,cost price,List Price,Quantity,Discount Percent\n" +
		"1,2023-01-01,Standard Class,Consumer,US,City,State,1,South,Furniture,Chairs,P-1,100,150,2.5,10\n"
	table, err := LoadRaw(writeSampleCSV(t, csv))
	require.NoError(t, err)

	_, err = Normalize(table)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeMalformedValue))
}
