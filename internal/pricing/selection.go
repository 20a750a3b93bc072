package pricing

import (
	"github.com/shopspring/decimal"
)

type selectionKind uint8

const (
	selectionString selectionKind = iota + 1
	selectionNumber
)

// Selection is one customer answer: a string (text value or dropdown option
// id) or a number. The zero value holds nothing.
type Selection struct {
	kind   selectionKind
	text   string
	number decimal.Decimal
}

func TextValue(s string) Selection {
	return Selection{kind: selectionString, text: s}
}

// OptionValue selects a dropdown option by id.
func OptionValue(optionID string) Selection {
	return Selection{kind: selectionString, text: optionID}
}

func NumberValue(n decimal.Decimal) Selection {
	return Selection{kind: selectionNumber, number: n}
}

// Text returns the string payload and whether the selection holds one.
func (s Selection) Text() (string, bool) {
	return s.text, s.kind == selectionString
}

func (s Selection) Number() (decimal.Decimal, bool) {
	return s.number, s.kind == selectionNumber
}

// Selections maps a special field id to the customer's answer for it.
// A missing key means the field is not answered yet.
type Selections map[string]Selection

// Set returns a copy of s with fieldID answered by v.
func (s Selections) Set(fieldID string, v Selection) Selections {
	out := make(Selections, len(s)+1)
	for k, val := range s {
		out[k] = val
	}
	out[fieldID] = v
	return out
}

// Without returns a copy of s lacking fieldID.
func (s Selections) Without(fieldID string) Selections {
	out := make(Selections, len(s))
	for k, val := range s {
		if k != fieldID {
			out[k] = val
		}
	}
	return out
}

// Prune drops answers whose field no longer exists in p.
func (s Selections) Prune(p Product) Selections {
	out := make(Selections, len(s))
	for k, val := range s {
		if _, ok := p.Field(k); ok {
			out[k] = val
		}
	}
	return out
}
