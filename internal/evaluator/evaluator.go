// Package evaluator implements the constraint DSL semantics: mapping a
// (Schedule, ProblemData, []Constraint) triple to a weighted violation
// cost. The evaluator is total — it never errors; missing references,
// wrong types, and empty target lists all collapse to "predicate
// false" / "violation counted as described", per spec.md §7.
package evaluator

import (
	"strconv"

	"github.com/khryptorgraphics/schedcore/internal/model"
)

// EvaluateSchedule computes cost = Σ_c (violations(c.rule) × c.weight)
// using a 64-bit accumulator so |constraints| × max_weight ×
// |assignments|² cannot silently wrap for any problem size this engine
// is meant to handle.
func EvaluateSchedule(schedule model.Schedule, problem model.ProblemData, constraints []model.Constraint) uint64 {
	var total uint64
	for _, c := range constraints {
		violations := evaluateRule(c.Rule, schedule, problem)
		total += violations * uint64(c.Weight)
	}
	return total
}

func evaluateRule(rule model.ConstraintRule, schedule model.Schedule, problem model.ProblemData) uint64 {
	switch rule.Kind {
	case model.RuleMultiAssignmentCheck:
		return evaluateMultiAssignment(schedule, problem, rule.Conditions, rule.LogicalOp, rule.Mode)
	case model.RuleGlobalAllDifferent:
		return evaluateAllDifferent(schedule, problem, rule.UniqueItemField, rule.GroupItemField)
	case model.RuleGlobalCardinality:
		return evaluateCardinality(schedule, problem, rule.TargetItemField, rule.MaxCount, rule.ScopeConditions)
	case model.RuleGlobalTemporalPrecedence:
		return evaluateTemporalPrecedence(schedule, problem, rule.GroupingItemField, rule.FirstConditions, rule.SecondConditions, rule.TemporalRelation, rule.TemporalFields)
	default:
		return 0
	}
}

func evaluateMultiAssignment(schedule model.Schedule, problem model.ProblemData, conditions []model.Condition, logicalOp model.LogicalOperator, mode model.ConstraintMode) uint64 {
	var violations uint64
	for _, a := range schedule.Assignments {
		combined := combineConditions(conditions, logicalOp, a, problem)
		switch mode {
		case model.ModeForbid:
			if combined {
				violations++
			}
		case model.ModeRequire:
			if !combined {
				violations++
			}
		}
	}
	return violations
}

func combineConditions(conditions []model.Condition, op model.LogicalOperator, a model.Assignment, problem model.ProblemData) bool {
	if op == model.LogicalOr {
		for _, c := range conditions {
			if evaluateCondition(c, a, problem) {
				return true
			}
		}
		return false
	}
	// LogicalAnd is the default, matching Rust's exhaustive match where
	// And is listed first and conditions=[] vacuously satisfies "all".
	for _, c := range conditions {
		if !evaluateCondition(c, a, problem) {
			return false
		}
	}
	return true
}

// evaluateCondition implements the §4.2.1 resolution steps.
func evaluateCondition(c model.Condition, a model.Assignment, problem model.ProblemData) bool {
	memberID, ok := resolveMemberID(c.ItemName, a)
	if !ok {
		return false
	}
	item, ok := problem.ItemCategories[c.ItemName]
	if !ok {
		return false
	}
	member, ok := item.FindMember(memberID)
	if !ok {
		return false
	}
	var value model.Value
	if c.FieldKey == "id" {
		value = model.NewNumberValue(int32(member.ID))
	} else {
		v, ok := member.Fields[c.FieldKey]
		if !ok {
			return false
		}
		value = v
	}
	return compareValue(value, c.Operator, c.TargetValues)
}

func resolveMemberID(itemName string, a model.Assignment) (model.ItemId, bool) {
	if itemName == a.TaskItemName {
		return a.TaskID, true
	}
	id, ok := a.Resources[itemName]
	return id, ok
}

// compareValue implements the §4.2.2 operator table, dispatched by the
// Value variant actually carried at runtime.
func compareValue(value model.Value, op model.ComparisonOperator, targets []string) bool {
	switch value.Kind {
	case model.ValueNumber:
		return compareNumber(value.Num, op, targets)
	case model.ValueString:
		return compareLex(value.Str, op, targets, false)
	case model.ValueDate:
		return compareLex(value.Str, op, targets, true)
	default:
		return false
	}
}

func compareNumber(n int32, op model.ComparisonOperator, targets []string) bool {
	parsed := make([]int32, 0, len(targets))
	for _, t := range targets {
		v, err := strconv.ParseInt(t, 10, 32)
		if err != nil {
			continue
		}
		parsed = append(parsed, int32(v))
	}
	if len(parsed) == 0 {
		return false
	}
	switch op {
	case model.OpEqual, model.OpIn:
		for _, t := range parsed {
			if n == t {
				return true
			}
		}
		return false
	case model.OpNotEqual, model.OpNotIn:
		for _, t := range parsed {
			if n == t {
				return false
			}
		}
		return true
	case model.OpGreaterThan:
		for _, t := range parsed {
			if n > t {
				return true
			}
		}
		return false
	case model.OpGreaterThanOrEqual:
		for _, t := range parsed {
			if n >= t {
				return true
			}
		}
		return false
	case model.OpLessThan:
		for _, t := range parsed {
			if n < t {
				return true
			}
		}
		return false
	case model.OpLessThanOrEqual:
		for _, t := range parsed {
			if n <= t {
				return true
			}
		}
		return false
	default:
		// Before/After/Overlap/NoOverlap have no numeric meaning.
		return false
	}
}

// compareLex implements the String and Date rows of the operator
// table, which are identical: every operator compares lexicographically,
// and Before/After are plain < / > for both variants.
func compareLex(s string, op model.ComparisonOperator, targets []string, _isDate bool) bool {
	if len(targets) == 0 {
		return false
	}
	switch op {
	case model.OpEqual, model.OpIn:
		for _, t := range targets {
			if s == t {
				return true
			}
		}
		return false
	case model.OpNotEqual, model.OpNotIn:
		for _, t := range targets {
			if s == t {
				return false
			}
		}
		return true
	case model.OpGreaterThan:
		for _, t := range targets {
			if s > t {
				return true
			}
		}
		return false
	case model.OpGreaterThanOrEqual:
		for _, t := range targets {
			if s >= t {
				return true
			}
		}
		return false
	case model.OpLessThan:
		for _, t := range targets {
			if s < t {
				return true
			}
		}
		return false
	case model.OpLessThanOrEqual:
		for _, t := range targets {
			if s <= t {
				return true
			}
		}
		return false
	case model.OpBefore:
		for _, t := range targets {
			if s < t {
				return true
			}
		}
		return false
	case model.OpAfter:
		for _, t := range targets {
			if s > t {
				return true
			}
		}
		return false
	case model.OpOverlap:
		min, max := minMax(targets)
		return s >= min && s <= max
	case model.OpNoOverlap:
		min, max := minMax(targets)
		return s < min || s > max
	default:
		return false
	}
}

func minMax(targets []string) (string, string) {
	min, max := targets[0], targets[0]
	for _, t := range targets[1:] {
		if t < min {
			min = t
		}
		if t > max {
			max = t
		}
	}
	return min, max
}

// extractFieldValue renders a field value as a string for grouping and
// counting purposes. Missing fields/members/categories yield "", which
// acts as a shared bucket per spec.md §4.2.4.
func extractFieldValue(a model.Assignment, problem model.ProblemData, itemName, fieldKey string) string {
	memberID, ok := resolveMemberID(itemName, a)
	if !ok {
		return ""
	}
	item, ok := problem.ItemCategories[itemName]
	if !ok {
		return ""
	}
	member, ok := item.FindMember(memberID)
	if !ok {
		return ""
	}
	if fieldKey == "id" {
		return strconv.FormatUint(uint64(member.ID), 10)
	}
	v, ok := member.Fields[fieldKey]
	if !ok {
		return ""
	}
	switch v.Kind {
	case model.ValueNumber:
		return strconv.FormatInt(int64(v.Num), 10)
	default:
		return v.Str
	}
}

func conditionsHold(conditions []model.Condition, a model.Assignment, problem model.ProblemData) bool {
	for _, c := range conditions {
		if !evaluateCondition(c, a, problem) {
			return false
		}
	}
	return true
}
