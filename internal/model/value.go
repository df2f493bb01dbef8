// Package model holds the immutable problem and constraint data types:
// items, members, values, and the constraint rule tagged union.
package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ValueKind discriminates the Value tagged union.
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueNumber
	ValueDate
)

// Value is a tagged union over the three field-value variants the
// evaluator understands. Dates are plain lexicographically-orderable
// strings (e.g. "HH:MM" or ISO-8601); callers guarantee comparable
// formats, the kernel never parses them as calendar dates.
type Value struct {
	Kind ValueKind
	Str  string
	Num  int32
}

func NewStringValue(s string) Value { return Value{Kind: ValueString, Str: s} }
func NewNumberValue(n int32) Value  { return Value{Kind: ValueNumber, Num: n} }
func NewDateValue(d string) Value   { return Value{Kind: ValueDate, Str: d} }

// MarshalJSON renders the value as a single-key object keyed by its
// variant name — `{"String":"Monday"}`, `{"Number":90}`,
// `{"Date":"08:00"}` — matching serde's default externally-tagged
// representation for the original implementation's un-annotated
// `enum Value` (`_examples/original_source/src/domain/item.rs`).
// A bare scalar cannot round-trip a Date, which is exactly the shape
// spec.md §6 requires for the `ProblemDataFile` import/export format.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueString:
		return json.Marshal(map[string]string{"String": v.Str})
	case ValueNumber:
		return json.Marshal(map[string]int32{"Number": v.Num})
	case ValueDate:
		return json.Marshal(map[string]string{"Date": v.Str})
	default:
		return nil, fmt.Errorf("model: unknown value kind %d", v.Kind)
	}
}

// UnmarshalJSON accepts the single-key `{"String":...}` /
// `{"Number":...}` / `{"Date":...}` shape MarshalJSON produces.
func (v *Value) UnmarshalJSON(data []byte) error {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("model: value must be a {\"String\"|\"Number\"|\"Date\": ...} object: %w", err)
	}
	if len(tagged) != 1 {
		return fmt.Errorf("model: value object must have exactly one variant key, got %d", len(tagged))
	}

	if raw, ok := tagged["String"]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("model: String value: %w", err)
		}
		*v = NewStringValue(s)
		return nil
	}
	if raw, ok := tagged["Number"]; ok {
		var n int32
		if err := json.Unmarshal(raw, &n); err != nil {
			return fmt.Errorf("model: Number value: %w", err)
		}
		*v = NewNumberValue(n)
		return nil
	}
	if raw, ok := tagged["Date"]; ok {
		var d string
		if err := json.Unmarshal(raw, &d); err != nil {
			return fmt.Errorf("model: Date value: %w", err)
		}
		*v = NewDateValue(d)
		return nil
	}
	return fmt.Errorf("model: unrecognized value variant")
}

// RetagAsDate returns a copy of v with Kind forced to ValueDate,
// keeping its string payload. Used when ingesting members against a
// schema that marks the field FieldType DateTime.
func (v Value) RetagAsDate() Value {
	if v.Kind == ValueNumber {
		return NewDateValue(strconv.Itoa(int(v.Num)))
	}
	return Value{Kind: ValueDate, Str: v.Str}
}

// ApplyFieldSchema retags every field whose schema entry declares
// FieldDateTime but whose incoming Value isn't already ValueDate — the
// belt-and-suspenders path for clients that send a plain tagged
// String where a DateTime was declared. The HTTP member handlers
// (addMember/updateMember) call it, so GlobalTemporalPrecedence
// (internal/evaluator/global_rules.go) can fire on CRUD-sourced data.
// Problem files read by the solve command are not passed through it;
// their DateTime fields must already arrive tagged as Date.
func ApplyFieldSchema(fields map[string]Value, schema map[string]FieldSchema) map[string]Value {
	if len(schema) == 0 || len(fields) == 0 {
		return fields
	}
	out := make(map[string]Value, len(fields))
	for key, v := range fields {
		if s, ok := schema[key]; ok && s.FieldType == FieldDateTime && v.Kind != ValueDate {
			v = v.RetagAsDate()
		}
		out[key] = v
	}
	return out
}

// FieldType is an advisory schema type tag. The evaluator trusts the
// Value variant actually carried at runtime, not this tag.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldInteger  FieldType = "integer"
	FieldDateTime FieldType = "datetime"
)

// FieldSchema documents one field of an item category.
type FieldSchema struct {
	FieldName  string    `json:"field_name"`
	FieldType  FieldType `json:"field_type"`
	IsRequired bool      `json:"is_required"`
}
