package model

import "strings"

// ComparisonOperator is the operator half of a Condition.
type ComparisonOperator string

const (
	OpIn                 ComparisonOperator = "in"
	OpNotIn              ComparisonOperator = "not_in"
	OpEqual              ComparisonOperator = "equal"
	OpNotEqual           ComparisonOperator = "not_equal"
	OpGreaterThan        ComparisonOperator = "greater_than"
	OpLessThan           ComparisonOperator = "less_than"
	OpGreaterThanOrEqual ComparisonOperator = "greater_than_or_equal"
	OpLessThanOrEqual    ComparisonOperator = "less_than_or_equal"
	OpBefore             ComparisonOperator = "before"
	OpAfter              ComparisonOperator = "after"
	OpOverlap            ComparisonOperator = "overlap"
	OpNoOverlap          ComparisonOperator = "no_overlap"
)

// LogicalOperator combines Condition results within a
// MultiAssignmentCheck.
type LogicalOperator string

const (
	LogicalAnd LogicalOperator = "and"
	LogicalOr  LogicalOperator = "or"
)

// ConstraintMode decides how a combined MultiAssignmentCheck predicate
// turns into a violation count.
type ConstraintMode string

const (
	ModeForbid  ConstraintMode = "forbid"
	ModeRequire ConstraintMode = "require"
)

// ItemField is a parsed "<ItemName>:<field_key>" reference, split once
// at constraint-ingest time so the hot evaluator path never re-splits
// the string per assignment (spec design note: "parse once per
// constraint, not per assignment").
type ItemField struct {
	ItemName string `json:"-"`
	FieldKey string `json:"-"`
	Raw      string `json:"raw"`
}

// ParseItemField splits the "<ItemName>:<field_key>" mini-syntax. The
// pseudo-field "id" means the member's ItemId rendered as a decimal
// integer.
func ParseItemField(raw string) ItemField {
	itemName, fieldKey, _ := strings.Cut(raw, ":")
	return ItemField{ItemName: itemName, FieldKey: fieldKey, Raw: raw}
}

// MarshalText/UnmarshalText on the wire use the raw "<Item>:<field>"
// string; ItemField is only ever constructed through ParseItemField so
// that the split is cached for the evaluator.
func (f ItemField) MarshalText() ([]byte, error) { return []byte(f.Raw), nil }

func (f *ItemField) UnmarshalText(text []byte) error {
	*f = ParseItemField(string(text))
	return nil
}

// Condition is a predicate on one assignment: resolve one field of one
// item and compare it against a list of target strings.
type Condition struct {
	ItemName     string             `json:"item_name"`
	FieldKey     string             `json:"field_key"`
	Operator     ComparisonOperator `json:"operator"`
	TargetValues []string           `json:"target_values"`
}

// RuleKind discriminates the ConstraintRule tagged union.
type RuleKind int

const (
	RuleMultiAssignmentCheck RuleKind = iota
	RuleGlobalAllDifferent
	RuleGlobalCardinality
	RuleGlobalTemporalPrecedence
)

// ConstraintRule is a closed sum over the four rule variants. Only the
// fields relevant to Kind are populated; the evaluator's per-variant
// arms are its specification (spec.md §9 Design Notes).
type ConstraintRule struct {
	Kind RuleKind `json:"kind"`

	// MultiAssignmentCheck
	Conditions []Condition      `json:"conditions,omitempty"`
	LogicalOp  LogicalOperator  `json:"logical_op,omitempty"`
	Mode       ConstraintMode   `json:"mode,omitempty"`

	// GlobalAllDifferent
	UniqueItemField ItemField `json:"unique_item_field,omitzero"`
	GroupItemField  ItemField `json:"group_item_field,omitzero"`

	// GlobalCardinality
	TargetItemField ItemField    `json:"target_item_field,omitzero"`
	MaxCount        uint32       `json:"max_count,omitempty"`
	ScopeConditions []Condition  `json:"scope_conditions,omitempty"`

	// GlobalTemporalPrecedence
	GroupingItemField ItemField          `json:"grouping_item_field,omitzero"`
	FirstConditions   []Condition        `json:"first_conditions,omitempty"`
	SecondConditions  []Condition        `json:"second_conditions,omitempty"`
	TemporalRelation  ComparisonOperator `json:"temporal_relation,omitempty"`
	TemporalFields    []string           `json:"temporal_fields,omitempty"`
}

// Constraint is a named, weighted rule. Name is a human/CRUD handle,
// not required to be globally unique by the evaluator.
type Constraint struct {
	Name   string          `json:"name"`
	Weight uint32          `json:"weight"`
	Rule   ConstraintRule  `json:"rule"`
}
