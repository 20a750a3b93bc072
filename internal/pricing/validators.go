package pricing

import (
	"fmt"
	"unicode/utf8"
)

type IssueKind string

const (
	IssueTooShort      IssueKind = "too_short"
	IssueTooLong       IssueKind = "too_long"
	IssueBelowMinimum  IssueKind = "below_minimum"
	IssueAboveMaximum  IssueKind = "above_maximum"
	IssueUnknownOption IssueKind = "unknown_option"
	IssueWrongKind     IssueKind = "wrong_kind"
)

// SelectionIssue describes a customer answer that falls outside what the
// merchant configured for the field.
type SelectionIssue struct {
	FieldID string
	Kind    IssueKind
	Message string
}

// CheckSelections reports answers that break a field's limits, name an
// unknown dropdown option or carry the wrong kind of value. Unanswered fields
// and answers for unknown field ids are not reported. Pricing never depends on
// this result.
func CheckSelections(p Product, sel Selections) []SelectionIssue {
	var issues []SelectionIssue

	for _, f := range p.SpecialFields {
		v, ok := sel[f.ID]
		if !ok {
			continue
		}
		if issue, bad := checkSelection(f, v); bad {
			issues = append(issues, issue)
		}
	}

	return issues
}

func checkSelection(f SpecialField, v Selection) (SelectionIssue, bool) {
	issue := SelectionIssue{FieldID: f.ID}

	switch s := f.spec().(type) {
	case TextSpec:
		text, ok := v.Text()
		if !ok {
			issue.Kind = IssueWrongKind
			issue.Message = fmt.Sprintf("%s: expected text", f.Label)
			return issue, true
		}
		n := utf8.RuneCountInString(text)
		if s.MinLength != nil && n < *s.MinLength {
			issue.Kind = IssueTooShort
			issue.Message = fmt.Sprintf("%s: at least %d characters required, got %d", f.Label, *s.MinLength, n)
			return issue, true
		}
		if s.MaxLength != nil && n > *s.MaxLength {
			issue.Kind = IssueTooLong
			issue.Message = fmt.Sprintf("%s: at most %d characters allowed, got %d", f.Label, *s.MaxLength, n)
			return issue, true
		}

	case NumberSpec:
		n, ok := v.Number()
		if !ok {
			issue.Kind = IssueWrongKind
			issue.Message = fmt.Sprintf("%s: expected a number", f.Label)
			return issue, true
		}
		if s.MinValue != nil && n.LessThan(*s.MinValue) {
			issue.Kind = IssueBelowMinimum
			issue.Message = fmt.Sprintf("%s: minimum is %s, got %s", f.Label, s.MinValue.String(), n.String())
			return issue, true
		}
		if s.MaxValue != nil && n.GreaterThan(*s.MaxValue) {
			issue.Kind = IssueAboveMaximum
			issue.Message = fmt.Sprintf("%s: maximum is %s, got %s", f.Label, s.MaxValue.String(), n.String())
			return issue, true
		}

	case DropdownSpec:
		id, ok := v.Text()
		if !ok {
			issue.Kind = IssueWrongKind
			issue.Message = fmt.Sprintf("%s: expected an option", f.Label)
			return issue, true
		}
		if s.optionIndex(id) < 0 {
			issue.Kind = IssueUnknownOption
			issue.Message = fmt.Sprintf("%s: unknown option %q", f.Label, id)
			return issue, true
		}
	}

	return SelectionIssue{}, false
}
