package pricing

import (
	"github.com/shopspring/decimal"
)

// Ids used by LoadExampleProduct, handy for building selections in demos.
const (
	ExampleEngravingFieldID = "example-engraving"
	ExampleSizeFieldID      = "example-size"
	ExampleQuantityFieldID  = "example-quantity"

	ExampleSizeSmallID  = "example-size-small"
	ExampleSizeMediumID = "example-size-medium"
	ExampleSizeLargeID  = "example-size-large"
)

// LoadExampleProduct returns a canned, valid product: a custom mug with an
// engraving priced per character, a size dropdown and extra units.
func LoadExampleProduct() Product {
	maxEngraving := 20

	return Product{
		Name:                 "Custom Engraved Mug",
		Description:          "Ceramic mug with optional engraving and size upgrade.",
		BasePrice:            decimal.RequireFromString("25.00"),
		SpecialFieldsEnabled: true,
		SpecialFields: []SpecialField{
			{
				ID:    ExampleEngravingFieldID,
				Label: "Engraving text",
				Price: decimal.RequireFromString("0.50"),
				Spec: TextSpec{
					Pricing:   TextPerCharacter,
					MaxLength: &maxEngraving,
				},
			},
			{
				ID:    ExampleSizeFieldID,
				Label: "Size",
				Price: decimal.Zero,
				Spec: DropdownSpec{Options: []DropdownOption{
					{ID: ExampleSizeSmallID, Name: "Small", Price: decimal.Zero},
					{ID: ExampleSizeMediumID, Name: "Medium", Price: decimal.RequireFromString("2.00")},
					{ID: ExampleSizeLargeID, Name: "Large", Price: decimal.RequireFromString("4.00")},
				}},
			},
			{
				ID:    ExampleQuantityFieldID,
				Label: "Extra mugs",
				Price: decimal.RequireFromString("12.00"),
				Spec: NumberSpec{
					Pricing:  NumberPerUnit,
					MinValue: decimalPtr(decimal.Zero),
					MaxValue: decimalPtr(decimal.NewFromInt(10)),
				},
			},
		},
	}
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
