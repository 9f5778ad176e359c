package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"retailetl/pkg/contracts/domain"
)

func TestCleanCategorical(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{" office supplies ", "Office Supplies"},
		{"FURNITURE", "Furniture"},
		{"south", "South"},
		{"Office Supplies", "Office Supplies"},
		{"  bookcases", "Bookcases"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanCategorical(tt.in), "input %q", tt.in)
	}
}

func TestCleanCategoricals_TouchesOnlyCategoryFields(t *testing.T) {
	orders := []domain.Order{{
		City:        "los angeles",
		State:       "california",
		Segment:     "consumer",
		ShipMode:    "second class",
		Category:    " office supplies ",
		SubCategory: "labels ",
		Region:      " west",
	}}

	out := CleanCategoricals(orders)

	assert.Equal(t, "Office Supplies", out[0].Category)
	assert.Equal(t, "Labels", out[0].SubCategory)
	assert.Equal(t, "West", out[0].Region)

	// No other field receives case normalization
	assert.Equal(t, "los angeles", out[0].City)
	assert.Equal(t, "california", out[0].State)
	assert.Equal(t, "consumer", out[0].Segment)
	assert.Equal(t, "second class", out[0].ShipMode)
}

func TestCleanCategoricals_MissingStaysMissing(t *testing.T) {
	orders := CleanCategoricals([]domain.Order{{Category: "", SubCategory: "", Region: ""}})
	assert.Equal(t, "", orders[0].Category)
	assert.Equal(t, "", orders[0].SubCategory)
	assert.Equal(t, "", orders[0].Region)
}
