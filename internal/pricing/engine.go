package pricing

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrLimitExceeded is returned when a product already has MaxSpecialFields fields.
var ErrLimitExceeded = errors.New("special field limit exceeded")

// Engine owns the special-field editing rules. Every method takes a Product by
// value and returns a new one; the argument is never modified.
type Engine struct {
	newID func() string
}

type EngineOption func(*Engine)

// WithIDGenerator replaces the uuid generator used for new fields and options.
func WithIDGenerator(fn func() string) EngineOption {
	return func(e *Engine) {
		e.newID = fn
	}
}

func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddSpecialField appends a blank Text field priced at zero.
func (e *Engine) AddSpecialField(p Product) (Product, error) {
	if len(p.SpecialFields) >= MaxSpecialFields {
		return p, ErrLimitExceeded
	}

	out := p.Clone()
	out.SpecialFields = append(out.SpecialFields, SpecialField{
		ID:    e.newID(),
		Price: decimal.Zero,
		Spec:  TextSpec{Pricing: TextBase},
	})
	return out, nil
}

// RemoveSpecialField drops the field and the customer's answer for it.
// Unknown ids are ignored.
func (e *Engine) RemoveSpecialField(p Product, sel Selections, fieldID string) (Product, Selections) {
	sel = sel.Without(fieldID)

	i := p.fieldIndex(fieldID)
	if i < 0 {
		return p.Clone(), sel
	}

	out := p.Clone()
	out.SpecialFields = append(out.SpecialFields[:i], out.SpecialFields[i+1:]...)
	return out, sel
}

// FieldChange is one attribute change applied by UpdateSpecialField.
type FieldChange struct {
	apply   func(f *SpecialField)
	setType *FieldType
}

func WithLabel(label string) FieldChange {
	return FieldChange{apply: func(f *SpecialField) {
		f.Label = label
	}}
}

func WithPrice(price decimal.Decimal) FieldChange {
	return FieldChange{apply: func(f *SpecialField) {
		f.Price = price
	}}
}

// WithType switches the field variant. Attributes that do not belong to the
// new variant are reset; a new Dropdown starts with one blank option.
func WithType(t FieldType) FieldChange {
	return FieldChange{setType: &t}
}

// WithPricingModel is ignored when the field's type cannot carry the model.
func WithPricingModel(m PricingModel) FieldChange {
	return FieldChange{apply: func(f *SpecialField) {
		switch s := f.spec().(type) {
		case TextSpec:
			switch m {
			case PricingBase:
				s.Pricing = TextBase
			case PricingPerCharacter:
				s.Pricing = TextPerCharacter
			default:
				return
			}
			f.Spec = s
		case NumberSpec:
			switch m {
			case PricingBase:
				s.Pricing = NumberBase
			case PricingPerUnit:
				s.Pricing = NumberPerUnit
			default:
				return
			}
			f.Spec = s
		}
	}}
}

// WithLengthLimits sets the Text length bounds; nil clears a bound.
func WithLengthLimits(minLen, maxLen *int) FieldChange {
	return FieldChange{apply: func(f *SpecialField) {
		if s, ok := f.spec().(TextSpec); ok {
			s.MinLength = copyPtr(minLen)
			s.MaxLength = copyPtr(maxLen)
			f.Spec = s
		}
	}}
}

// WithValueLimits sets the Number value bounds; nil clears a bound.
func WithValueLimits(minVal, maxVal *decimal.Decimal) FieldChange {
	return FieldChange{apply: func(f *SpecialField) {
		if s, ok := f.spec().(NumberSpec); ok {
			s.MinValue = copyPtr(minVal)
			s.MaxValue = copyPtr(maxVal)
			f.Spec = s
		}
	}}
}

// UpdateSpecialField merges the changes into the identified field. A type
// change is applied before any other change so that, for example,
// WithPricingModel(PricingPerUnit) lands on a field that just became Number.
func (e *Engine) UpdateSpecialField(p Product, fieldID string, changes ...FieldChange) Product {
	out := p.Clone()
	i := out.fieldIndex(fieldID)
	if i < 0 {
		return out
	}

	f := out.SpecialFields[i]
	for _, c := range changes {
		if c.setType != nil {
			e.switchType(&f, *c.setType)
		}
	}
	for _, c := range changes {
		if c.apply != nil {
			c.apply(&f)
		}
	}
	out.SpecialFields[i] = f
	return out
}

func (e *Engine) switchType(f *SpecialField, t FieldType) {
	if f.Spec != nil && f.Type() == t {
		return
	}
	switch t {
	case FieldTypeText:
		f.Spec = TextSpec{Pricing: TextBase}
	case FieldTypeNumber:
		f.Spec = NumberSpec{Pricing: NumberBase}
	case FieldTypeDropdown:
		f.Spec = DropdownSpec{Options: []DropdownOption{e.blankOption()}}
	}
}

func (e *Engine) blankOption() DropdownOption {
	return DropdownOption{ID: e.newID(), Price: decimal.Zero}
}

// AddDropdownOption appends a blank option to a Dropdown field.
func (e *Engine) AddDropdownOption(p Product, fieldID string) Product {
	return e.editDropdown(p, fieldID, func(s DropdownSpec) DropdownSpec {
		s.Options = append(s.Options, e.blankOption())
		return s
	})
}

// RemoveDropdownOption deletes an option. The last remaining option is kept.
func (e *Engine) RemoveDropdownOption(p Product, fieldID, optionID string) Product {
	return e.editDropdown(p, fieldID, func(s DropdownSpec) DropdownSpec {
		if len(s.Options) <= 1 {
			return s
		}
		if j := s.optionIndex(optionID); j >= 0 {
			s.Options = append(s.Options[:j], s.Options[j+1:]...)
		}
		return s
	})
}

type OptionChange func(o *DropdownOption)

func WithOptionName(name string) OptionChange {
	return func(o *DropdownOption) {
		o.Name = name
	}
}

func WithOptionPrice(price decimal.Decimal) OptionChange {
	return func(o *DropdownOption) {
		o.Price = price
	}
}

func (e *Engine) UpdateDropdownOption(p Product, fieldID, optionID string, changes ...OptionChange) Product {
	return e.editDropdown(p, fieldID, func(s DropdownSpec) DropdownSpec {
		j := s.optionIndex(optionID)
		if j < 0 {
			return s
		}
		for _, c := range changes {
			c(&s.Options[j])
		}
		return s
	})
}

// editDropdown runs fn on a private copy of the field's options. Non-dropdown
// and missing fields are left alone.
func (e *Engine) editDropdown(p Product, fieldID string, fn func(DropdownSpec) DropdownSpec) Product {
	out := p.Clone()
	i := out.fieldIndex(fieldID)
	if i < 0 {
		return out
	}
	s, ok := out.SpecialFields[i].Spec.(DropdownSpec)
	if !ok {
		return out
	}
	out.SpecialFields[i].Spec = fn(s)
	return out
}

// SetSpecialFieldsEnabled toggles whether the special fields section is active.
func (e *Engine) SetSpecialFieldsEnabled(p Product, enabled bool) Product {
	out := p.Clone()
	out.SpecialFieldsEnabled = enabled
	return out
}
