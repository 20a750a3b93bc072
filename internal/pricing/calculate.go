package pricing

import (
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Line is the contribution of one special field to the total.
type Line struct {
	FieldID      string          `json:"fieldId"`
	Label        string          `json:"label"`
	Type         FieldType       `json:"type"`
	Model        PricingModel    `json:"pricingModel,omitempty"`
	Contribution decimal.Decimal `json:"contribution"`
}

type Breakdown struct {
	BasePrice decimal.Decimal `json:"basePrice"`
	Lines     []Line          `json:"lines"`
	Total     decimal.Decimal `json:"total"`
}

// CalculateTotalPrice returns the base price plus every special field's
// contribution. Missing or mismatched answers contribute zero, so a partially
// filled form always prices.
func CalculateTotalPrice(p Product, sel Selections) decimal.Decimal {
	return CalculateBreakdown(p, sel).Total
}

func CalculateBreakdown(p Product, sel Selections) Breakdown {
	b := Breakdown{
		BasePrice: p.BasePrice,
		Lines:     make([]Line, 0, len(p.SpecialFields)),
		Total:     p.BasePrice,
	}

	for _, f := range p.SpecialFields {
		v, answered := sel[f.ID]
		c := decimal.Zero
		if answered {
			c = contribution(f, v)
		}

		b.Lines = append(b.Lines, Line{
			FieldID:      f.ID,
			Label:        f.Label,
			Type:         f.Type(),
			Model:        f.PricingModel(),
			Contribution: c,
		})
		b.Total = b.Total.Add(c)
	}

	return b
}

func contribution(f SpecialField, v Selection) decimal.Decimal {
	switch s := f.spec().(type) {
	case TextSpec:
		text, ok := v.Text()
		if !ok {
			return decimal.Zero
		}
		if s.Pricing == TextPerCharacter {
			return f.Price.Mul(decimal.NewFromInt(int64(utf8.RuneCountInString(text))))
		}
		if text == "" {
			return decimal.Zero
		}
		return f.Price

	case NumberSpec:
		n, ok := v.Number()
		if !ok {
			return decimal.Zero
		}
		if s.Pricing == NumberPerUnit {
			return f.Price.Mul(n)
		}
		return f.Price

	case DropdownSpec:
		optionID, ok := v.Text()
		if !ok {
			return decimal.Zero
		}
		if j := s.optionIndex(optionID); j >= 0 {
			return s.Options[j].Price
		}
	}

	return decimal.Zero
}
