package pricing

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// specialFieldJSON is the flat wire form of a SpecialField. Only the
// attributes that belong to Type are written.
type specialFieldJSON struct {
	ID              string           `json:"id"`
	Label           string           `json:"label"`
	Type            FieldType        `json:"type"`
	PricingModel    PricingModel     `json:"pricingModel"`
	Price           decimal.Decimal  `json:"price"`
	MinLength       *int             `json:"minLength,omitempty"`
	MaxLength       *int             `json:"maxLength,omitempty"`
	MinValue        *decimal.Decimal `json:"minValue,omitempty"`
	MaxValue        *decimal.Decimal `json:"maxValue,omitempty"`
	DropdownOptions []DropdownOption `json:"dropdownOptions,omitempty"`
}

func (f SpecialField) MarshalJSON() ([]byte, error) {
	out := specialFieldJSON{
		ID:           f.ID,
		Label:        f.Label,
		Type:         f.Type(),
		PricingModel: f.PricingModel(),
		Price:        f.Price,
	}

	switch s := f.spec().(type) {
	case TextSpec:
		out.MinLength = s.MinLength
		out.MaxLength = s.MaxLength
	case NumberSpec:
		out.MinValue = s.MinValue
		out.MaxValue = s.MaxValue
	case DropdownSpec:
		out.DropdownOptions = s.Options
		if out.DropdownOptions == nil {
			out.DropdownOptions = []DropdownOption{}
		}
	}

	return json.Marshal(out)
}

func (f *SpecialField) UnmarshalJSON(data []byte) error {
	var in specialFieldJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	model := in.PricingModel
	if model == "" {
		model = PricingBase
	}

	var spec FieldSpec
	switch in.Type {
	case FieldTypeText:
		if model != PricingBase && model != PricingPerCharacter {
			return fmt.Errorf("special field %q: pricing model %q is not valid for text", in.ID, model)
		}
		spec = TextSpec{Pricing: TextPricing(model), MinLength: in.MinLength, MaxLength: in.MaxLength}
	case FieldTypeNumber:
		if model != PricingBase && model != PricingPerUnit {
			return fmt.Errorf("special field %q: pricing model %q is not valid for number", in.ID, model)
		}
		spec = NumberSpec{Pricing: NumberPricing(model), MinValue: in.MinValue, MaxValue: in.MaxValue}
	case FieldTypeDropdown:
		if model != PricingBase {
			return fmt.Errorf("special field %q: pricing model %q is not valid for dropdown", in.ID, model)
		}
		if len(in.DropdownOptions) == 0 {
			return fmt.Errorf("special field %q: dropdown needs at least one option", in.ID)
		}
		spec = DropdownSpec{Options: in.DropdownOptions}
	default:
		return fmt.Errorf("special field %q: unknown type %q", in.ID, in.Type)
	}

	*f = SpecialField{
		ID:    in.ID,
		Label: in.Label,
		Price: in.Price,
		Spec:  spec,
	}
	return nil
}

// UnmarshalJSON rejects products carrying more than MaxSpecialFields fields.
func (p *Product) UnmarshalJSON(data []byte) error {
	type plain Product
	var in plain
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if len(in.SpecialFields) > MaxSpecialFields {
		return fmt.Errorf("product %q has %d special fields: %w", in.Name, len(in.SpecialFields), ErrLimitExceeded)
	}
	*p = Product(in)
	return nil
}

// MarshalJSON writes strings as JSON strings and numbers as bare JSON numbers,
// which keeps the two kinds apart on decode.
func (s Selection) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case selectionString:
		return json.Marshal(s.text)
	case selectionNumber:
		return []byte(s.number.String()), nil
	}
	return []byte("null"), nil
}

func (s *Selection) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*s = Selection{}
	case len(data) > 0 && data[0] == '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = TextValue(text)
	default:
		n, err := decimal.NewFromString(string(data))
		if err != nil {
			return fmt.Errorf("selection must be a string or a number: %w", err)
		}
		*s = NumberValue(n)
	}

	return nil
}
