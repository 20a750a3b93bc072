// Package pricing holds the special-field product model, the total price
// calculation and the save-time configuration checks. Everything here is pure:
// values in, new values out.
package pricing

import (
	"github.com/shopspring/decimal"
)

// MaxSpecialFields is how many special fields a product may carry.
const MaxSpecialFields = 4

type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDropdown FieldType = "dropdown"
)

// PricingModel describes how a field's price combines with the customer input.
type PricingModel string

const (
	PricingBase         PricingModel = "base"
	PricingPerCharacter PricingModel = "per_character"
	PricingPerUnit      PricingModel = "per_unit"
)

type TextPricing string

const (
	TextBase         TextPricing = TextPricing(PricingBase)
	TextPerCharacter TextPricing = TextPricing(PricingPerCharacter)
)

type NumberPricing string

const (
	NumberBase    NumberPricing = NumberPricing(PricingBase)
	NumberPerUnit NumberPricing = NumberPricing(PricingPerUnit)
)

type Product struct {
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	BasePrice            decimal.Decimal `json:"basePrice"`
	SpecialFieldsEnabled bool            `json:"specialFieldsEnabled"`
	SpecialFields        []SpecialField  `json:"specialFields"`
}

type SpecialField struct {
	ID    string
	Label string
	Price decimal.Decimal
	Spec  FieldSpec
}

// FieldSpec is the type-specific payload of a special field. It is one of
// TextSpec, NumberSpec or DropdownSpec.
type FieldSpec interface {
	fieldType() FieldType
	clone() FieldSpec
}

type TextSpec struct {
	Pricing   TextPricing
	MinLength *int
	MaxLength *int
}

type NumberSpec struct {
	Pricing  NumberPricing
	MinValue *decimal.Decimal
	MaxValue *decimal.Decimal
}

type DropdownSpec struct {
	Options []DropdownOption
}

type DropdownOption struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

func (TextSpec) fieldType() FieldType     { return FieldTypeText }
func (NumberSpec) fieldType() FieldType   { return FieldTypeNumber }
func (DropdownSpec) fieldType() FieldType { return FieldTypeDropdown }

func (s TextSpec) clone() FieldSpec {
	return TextSpec{
		Pricing:   s.Pricing,
		MinLength: copyPtr(s.MinLength),
		MaxLength: copyPtr(s.MaxLength),
	}
}

func (s NumberSpec) clone() FieldSpec {
	return NumberSpec{
		Pricing:  s.Pricing,
		MinValue: copyPtr(s.MinValue),
		MaxValue: copyPtr(s.MaxValue),
	}
}

func (s DropdownSpec) clone() FieldSpec {
	if s.Options == nil {
		return DropdownSpec{}
	}
	opts := make([]DropdownOption, len(s.Options))
	copy(opts, s.Options)
	return DropdownSpec{Options: opts}
}

// spec returns the field's variant. A field without a spec is a base-priced
// Text field everywhere it is read.
func (f SpecialField) spec() FieldSpec {
	if f.Spec == nil {
		return TextSpec{Pricing: TextBase}
	}
	return f.Spec
}

func (f SpecialField) Type() FieldType {
	return f.spec().fieldType()
}

func (f SpecialField) PricingModel() PricingModel {
	switch s := f.spec().(type) {
	case TextSpec:
		if s.Pricing == TextPerCharacter {
			return PricingPerCharacter
		}
	case NumberSpec:
		if s.Pricing == NumberPerUnit {
			return PricingPerUnit
		}
	}
	return PricingBase
}

// Options returns the dropdown options, or nil for non-dropdown fields.
func (f SpecialField) Options() []DropdownOption {
	if s, ok := f.spec().(DropdownSpec); ok {
		return s.Options
	}
	return nil
}

func (f SpecialField) Clone() SpecialField {
	out := f
	if f.Spec != nil {
		out.Spec = f.Spec.clone()
	}
	return out
}

// Clone returns a deep copy; the result shares no slices or pointers with p.
func (p Product) Clone() Product {
	out := p
	if p.SpecialFields != nil {
		out.SpecialFields = make([]SpecialField, len(p.SpecialFields))
		for i, f := range p.SpecialFields {
			out.SpecialFields[i] = f.Clone()
		}
	}
	return out
}

// Field looks a special field up by id.
func (p Product) Field(id string) (SpecialField, bool) {
	i := p.fieldIndex(id)
	if i < 0 {
		return SpecialField{}, false
	}
	return p.SpecialFields[i], true
}

func (p Product) fieldIndex(id string) int {
	for i, f := range p.SpecialFields {
		if f.ID == id {
			return i
		}
	}
	return -1
}

func (s DropdownSpec) optionIndex(id string) int {
	for i, o := range s.Options {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func copyPtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
