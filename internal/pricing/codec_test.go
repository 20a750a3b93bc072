package pricing

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestProductJSON(t *testing.T) {
	p := LoadExampleProduct()

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var got Product
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if len(got.SpecialFields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(got.SpecialFields))
	}
	engraving, _ := got.Field(ExampleEngravingFieldID)
	if s, ok := engraving.Spec.(TextSpec); !ok || s.Pricing != TextPerCharacter || s.MaxLength == nil || *s.MaxLength != 20 {
		t.Errorf("engraving field decoded wrong: %+v", engraving.Spec)
	}
	size, _ := got.Field(ExampleSizeFieldID)
	if len(size.Options()) != 3 || !size.Options()[2].Price.Equal(dec("4")) {
		t.Errorf("size options decoded wrong: %+v", size.Options())
	}

	sel := Selections{
		ExampleEngravingFieldID: TextValue("HELLO"),
		ExampleSizeFieldID:      OptionValue(ExampleSizeLargeID),
	}
	if !CalculateTotalPrice(got, sel).Equal(CalculateTotalPrice(p, sel)) {
		t.Errorf("decoded product prices differently")
	}
}

func TestSpecialFieldJSON_OmitsForeignAttributes(t *testing.T) {
	f := SpecialField{ID: "f", Label: "Note", Spec: TextSpec{Pricing: TextBase}}

	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(data), "dropdownOptions") {
		t.Errorf("text field must not carry dropdownOptions: %s", data)
	}
	if !strings.Contains(string(data), `"type":"text"`) {
		t.Errorf("missing type: %s", data)
	}
}

func TestSpecialFieldJSON_RejectsInvalidCombinations(t *testing.T) {
	inputs := []string{
		`{"id":"a","type":"text","pricingModel":"per_unit","price":"1"}`,
		`{"id":"a","type":"number","pricingModel":"per_character","price":"1"}`,
		`{"id":"a","type":"dropdown","pricingModel":"per_unit","price":"1"}`,
		`{"id":"a","type":"color","price":"1"}`,
		`{"id":"a","type":"dropdown","price":"0","dropdownOptions":[]}`,
		`{"id":"a","type":"dropdown","price":"0"}`,
	}

	for _, in := range inputs {
		var f SpecialField
		if err := json.Unmarshal([]byte(in), &f); err == nil {
			t.Errorf("expected error for %s", in)
		}
	}
}

func TestSelectionsJSON(t *testing.T) {
	in := `{"a":"HELLO","b":2.5,"c":null}`

	var sel Selections
	if err := json.Unmarshal([]byte(in), &sel); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if s, ok := sel["a"].Text(); !ok || s != "HELLO" {
		t.Errorf("expected text HELLO, got %q/%v", s, ok)
	}
	if n, ok := sel["b"].Number(); !ok || !n.Equal(dec("2.5")) {
		t.Errorf("expected number 2.5, got %s/%v", n, ok)
	}
	if _, ok := sel["c"].Text(); ok {
		t.Errorf("null should decode to an empty selection")
	}

	out, err := json.Marshal(Selections{"b": NumberValue(dec("2.5"))})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != `{"b":2.5}` {
		t.Errorf("unexpected encoding %s", out)
	}
}

func TestSelectionJSON_RejectsBool(t *testing.T) {
	var s Selection
	if err := json.Unmarshal([]byte("true"), &s); err == nil {
		t.Errorf("expected error for boolean selection")
	}
}

func TestProductJSON_RejectsTooManyFields(t *testing.T) {
	fields := make([]string, MaxSpecialFields+1)
	for i := range fields {
		fields[i] = fmt.Sprintf(`{"id":"f%d","label":"L%d","type":"text","price":"0"}`, i, i)
	}
	in := fmt.Sprintf(`{"name":"Mug","basePrice":"1","specialFields":[%s]}`, strings.Join(fields, ","))

	var p Product
	err := json.Unmarshal([]byte(in), &p)
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}
	if len(p.SpecialFields) != 0 {
		t.Errorf("target must stay untouched, got %d fields", len(p.SpecialFields))
	}

	in = fmt.Sprintf(`{"name":"Mug","basePrice":"1","specialFields":[%s]}`, strings.Join(fields[:MaxSpecialFields], ","))
	if err := json.Unmarshal([]byte(in), &p); err != nil {
		t.Fatalf("unmarshal of %d fields failed: %v", MaxSpecialFields, err)
	}
	if len(p.SpecialFields) != MaxSpecialFields {
		t.Errorf("expected %d fields, got %d", MaxSpecialFields, len(p.SpecialFields))
	}
}

func TestSpecialFieldJSON_NilSpecEncodesAsTextBase(t *testing.T) {
	data, err := json.Marshal(SpecialField{ID: "f", Label: "Note"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var back SpecialField
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if s, ok := back.Spec.(TextSpec); !ok || s.Pricing != TextBase {
		t.Errorf("expected text/base spec, got %#v (%s)", back.Spec, data)
	}
}
