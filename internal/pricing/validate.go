package pricing

import (
	"fmt"
	"strings"
)

// Rule names the validation check a product failed.
type Rule string

const (
	RuleNameRequired        Rule = "name_required"
	RuleBasePriceNegative   Rule = "base_price_negative"
	RuleLabelRequired       Rule = "label_required"
	RuleLabelDuplicate      Rule = "label_duplicate"
	RuleFieldPriceNegative  Rule = "field_price_negative"
	RuleOptionsRequired     Rule = "options_required"
	RuleOptionNameRequired  Rule = "option_name_required"
	RuleOptionNameDuplicate Rule = "option_name_duplicate"
	RuleOptionPriceNegative Rule = "option_price_negative"
	RuleTooManyFields       Rule = "too_many_fields"
)

// ValidationError is the first rule a product violates. FieldID and OptionID
// are set when the rule concerns a particular field or option.
type ValidationError struct {
	Rule     Rule
	FieldID  string
	OptionID string
	Message  string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateProduct runs the save-time checks in order and stops at the first
// failure. A nil result means the product is valid.
func ValidateProduct(p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{
			Rule:    RuleNameRequired,
			Message: "product name is required",
		}
	}

	if p.BasePrice.IsNegative() {
		return &ValidationError{
			Rule:    RuleBasePriceNegative,
			Message: fmt.Sprintf("base price must not be negative, got %s", p.BasePrice.StringFixed(2)),
		}
	}

	if p.SpecialFieldsEnabled {
		if err := validateLabels(p.SpecialFields); err != nil {
			return err
		}
	}

	for i, f := range p.SpecialFields {
		if f.Price.IsNegative() {
			return &ValidationError{
				Rule:    RuleFieldPriceNegative,
				FieldID: f.ID,
				Message: fmt.Sprintf("special field %d (%q): price must not be negative", i+1, f.Label),
			}
		}
	}

	for i, f := range p.SpecialFields {
		s, ok := f.Spec.(DropdownSpec)
		if !ok {
			continue
		}
		if err := validateOptions(i, f, s.Options); err != nil {
			return err
		}
	}

	if len(p.SpecialFields) > MaxSpecialFields {
		return &ValidationError{
			Rule:    RuleTooManyFields,
			Message: fmt.Sprintf("at most %d special fields are allowed, got %d", MaxSpecialFields, len(p.SpecialFields)),
		}
	}

	return nil
}

func validateLabels(fields []SpecialField) error {
	for i, f := range fields {
		if strings.TrimSpace(f.Label) == "" {
			return &ValidationError{
				Rule:    RuleLabelRequired,
				FieldID: f.ID,
				Message: fmt.Sprintf("special field %d: label is required", i+1),
			}
		}
	}

	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		key := normalizeName(f.Label)
		if _, dup := seen[key]; dup {
			return &ValidationError{
				Rule:    RuleLabelDuplicate,
				FieldID: f.ID,
				Message: fmt.Sprintf("special field labels must be unique, %q is repeated", strings.TrimSpace(f.Label)),
			}
		}
		seen[key] = struct{}{}
	}

	return nil
}

func validateOptions(index int, f SpecialField, opts []DropdownOption) error {
	if len(opts) == 0 {
		return &ValidationError{
			Rule:    RuleOptionsRequired,
			FieldID: f.ID,
			Message: fmt.Sprintf("special field %d (%q): a dropdown needs at least one option", index+1, f.Label),
		}
	}

	for _, o := range opts {
		if strings.TrimSpace(o.Name) == "" {
			return &ValidationError{
				Rule:     RuleOptionNameRequired,
				FieldID:  f.ID,
				OptionID: o.ID,
				Message:  fmt.Sprintf("special field %d (%q): every option needs a name", index+1, f.Label),
			}
		}
	}

	seen := make(map[string]struct{}, len(opts))
	for _, o := range opts {
		key := normalizeName(o.Name)
		if _, dup := seen[key]; dup {
			return &ValidationError{
				Rule:     RuleOptionNameDuplicate,
				FieldID:  f.ID,
				OptionID: o.ID,
				Message:  fmt.Sprintf("special field %d (%q): option names must be unique, %q is repeated", index+1, f.Label, strings.TrimSpace(o.Name)),
			}
		}
		seen[key] = struct{}{}
	}

	for _, o := range opts {
		if o.Price.IsNegative() {
			return &ValidationError{
				Rule:     RuleOptionPriceNegative,
				FieldID:  f.ID,
				OptionID: o.ID,
				Message:  fmt.Sprintf("special field %d (%q): option %q price must not be negative", index+1, f.Label, o.Name),
			}
		}
	}

	return nil
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
