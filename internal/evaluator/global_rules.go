package evaluator

import "github.com/khryptorgraphics/schedcore/internal/model"

// evaluateAllDifferent implements GlobalAllDifferent (spec.md §4.2.4):
// partition assignments by the grouping field's string rendering, then
// within each group count len(values) - #distinct(values).
func evaluateAllDifferent(schedule model.Schedule, problem model.ProblemData, uniqueField, groupField model.ItemField) uint64 {
	groups := make(map[string][]string)
	for _, a := range schedule.Assignments {
		groupValue := extractFieldValue(a, problem, groupField.ItemName, groupField.FieldKey)
		uniqueValue := extractFieldValue(a, problem, uniqueField.ItemName, uniqueField.FieldKey)
		groups[groupValue] = append(groups[groupValue], uniqueValue)
	}

	var violations uint64
	for _, values := range groups {
		seen := make(map[string]struct{}, len(values))
		for _, v := range values {
			seen[v] = struct{}{}
		}
		if len(seen) < len(values) {
			violations += uint64(len(values) - len(seen))
		}
	}
	return violations
}

// evaluateCardinality implements GlobalCardinality (spec.md §4.2.5):
// optionally filter assignments by scope_conditions, count occurrences
// of the extracted target value, each value contributes
// max(0, count-max_count) violations.
func evaluateCardinality(schedule model.Schedule, problem model.ProblemData, targetField model.ItemField, maxCount uint32, scopeConditions []model.Condition) uint64 {
	counts := make(map[string]uint64)
	for _, a := range schedule.Assignments {
		if scopeConditions != nil && !conditionsHold(scopeConditions, a, problem) {
			continue
		}
		value := extractFieldValue(a, problem, targetField.ItemName, targetField.FieldKey)
		counts[value]++
	}

	var violations uint64
	for _, count := range counts {
		if count > uint64(maxCount) {
			violations += count - uint64(maxCount)
		}
	}
	return violations
}

// evaluateTemporalPrecedence implements GlobalTemporalPrecedence
// (spec.md §4.2.6): partition by grouping field, form F/S subsets
// within each group, count every ordered pair in F×S (including f==s)
// that fails the temporal check.
func evaluateTemporalPrecedence(
	schedule model.Schedule,
	problem model.ProblemData,
	groupingField model.ItemField,
	firstConditions, secondConditions []model.Condition,
	temporalRelation model.ComparisonOperator,
	temporalFields []string,
) uint64 {
	groups := make(map[string][]model.Assignment)
	for _, a := range schedule.Assignments {
		groupValue := extractFieldValue(a, problem, groupingField.ItemName, groupingField.FieldKey)
		groups[groupValue] = append(groups[groupValue], a)
	}

	var violations uint64
	for _, groupAssignments := range groups {
		var firsts, seconds []model.Assignment
		for _, a := range groupAssignments {
			if conditionsHold(firstConditions, a, problem) {
				firsts = append(firsts, a)
			}
			if conditionsHold(secondConditions, a, problem) {
				seconds = append(seconds, a)
			}
		}
		for _, first := range firsts {
			for _, second := range seconds {
				if !checkTemporalRelation(first, second, problem, temporalRelation, temporalFields) {
					violations++
				}
			}
		}
	}
	return violations
}

// checkTemporalRelation reads the hard-wired "TimeSlot" resource of
// each assignment and compares start/end strings per spec.md §4.2.6.
func checkTemporalRelation(first, second model.Assignment, problem model.ProblemData, relation model.ComparisonOperator, temporalFields []string) bool {
	if len(temporalFields) == 0 || len(temporalFields) > 2 {
		return false
	}

	firstStart, firstEnd, ok := temporalBounds(first, problem, temporalFields)
	if !ok {
		return false
	}
	secondStart, secondEnd, ok := temporalBounds(second, problem, temporalFields)
	if !ok {
		return false
	}

	switch relation {
	case model.OpBefore:
		return firstEnd < secondStart
	case model.OpAfter:
		return firstStart > secondEnd
	case model.OpOverlap:
		return firstStart < secondEnd && secondStart < firstEnd
	case model.OpNoOverlap:
		return !(firstStart < secondEnd && secondStart < firstEnd)
	case model.OpEqual:
		return firstStart == secondStart
	case model.OpNotEqual:
		return firstStart != secondStart
	case model.OpGreaterThan:
		return firstStart > secondStart
	case model.OpGreaterThanOrEqual:
		return firstStart >= secondStart
	case model.OpLessThan:
		return firstStart < secondStart
	case model.OpLessThanOrEqual:
		return firstStart <= secondStart
	default:
		return false
	}
}

// temporalBounds resolves the (start, end) date strings for an
// assignment's "TimeSlot" resource. A single temporal field means a
// point in time: start == end == that field.
func temporalBounds(a model.Assignment, problem model.ProblemData, temporalFields []string) (start, end string, ok bool) {
	timeID, ok := a.Resources["TimeSlot"]
	if !ok {
		return "", "", false
	}
	timeItem, ok := problem.ItemCategories["TimeSlot"]
	if !ok {
		return "", "", false
	}
	member, ok := timeItem.FindMember(timeID)
	if !ok {
		return "", "", false
	}

	fieldAsDate := func(field string) (string, bool) {
		v, ok := member.Fields[field]
		if !ok || v.Kind != model.ValueDate {
			return "", false
		}
		return v.Str, true
	}

	if len(temporalFields) == 1 {
		v, ok := fieldAsDate(temporalFields[0])
		if !ok {
			return "", "", false
		}
		return v, v, true
	}

	s, ok := fieldAsDate(temporalFields[0])
	if !ok {
		return "", "", false
	}
	e, ok := fieldAsDate(temporalFields[1])
	if !ok {
		return "", "", false
	}
	return s, e, true
}
