package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khryptorgraphics/schedcore/internal/model"
)

func workerTaskProblem(workerIDs ...model.ItemId) model.ProblemData {
	taskMembers := []model.Member{
		{ID: 1, Fields: map[string]model.Value{}},
		{ID: 2, Fields: map[string]model.Value{}},
		{ID: 3, Fields: map[string]model.Value{}},
	}
	workerMembers := make([]model.Member, len(workerIDs))
	for i, id := range workerIDs {
		workerMembers[i] = model.Member{ID: id, Fields: map[string]model.Value{}}
	}
	return model.ProblemData{
		ItemCategories: map[string]model.Item{
			"Task":   {Name: "Task", ItemSetType: model.BSet, Members: taskMembers},
			"Worker": {Name: "Worker", ItemSetType: model.ESet, Members: workerMembers},
		},
	}
}

func assignAllTo(taskIDs []model.ItemId, worker model.ItemId) model.Schedule {
	var assignments []model.Assignment
	for _, id := range taskIDs {
		assignments = append(assignments, model.Assignment{
			TaskID: id, TaskItemName: "Task",
			Resources: map[string]model.ItemId{"Worker": worker},
		})
	}
	return model.Schedule{Assignments: assignments}
}

// P1: evaluate_schedule(s, p, []) = 0 for every s, p.
func TestEvaluateSchedule_NoConstraints_IsZero(t *testing.T) {
	problem := workerTaskProblem(9)
	schedule := assignAllTo([]model.ItemId{1, 2, 3}, 9)
	require.Equal(t, uint64(0), EvaluateSchedule(schedule, problem, nil))
}

// P2: cost is the weighted sum of per-constraint violations.
func TestEvaluateSchedule_WeightedSum(t *testing.T) {
	problem := workerTaskProblem(9)
	schedule := assignAllTo([]model.ItemId{1, 2, 3}, 9)

	constraints := []model.Constraint{
		{Name: "cap", Weight: 10, Rule: model.ConstraintRule{
			Kind:            model.RuleGlobalCardinality,
			TargetItemField: model.ParseItemField("Worker:id"),
			MaxCount:        1,
		}},
	}
	// S2: count=3 on worker 9, max 1 -> 2 violations * weight 10 = 20.
	assert.Equal(t, uint64(20), EvaluateSchedule(schedule, problem, constraints))
}

func TestCompareValue_NumberOperators(t *testing.T) {
	n := model.NewNumberValue(5)
	assert.True(t, compareValue(n, model.OpEqual, []string{"5"}))
	assert.False(t, compareValue(n, model.OpEqual, []string{"6"}))
	assert.True(t, compareValue(n, model.OpGreaterThan, []string{"1", "100"}))
	assert.False(t, compareValue(n, model.OpEqual, []string{"not-a-number"}))
	assert.False(t, compareValue(n, model.OpBefore, []string{"5"}))
}

func TestCompareValue_StringOverlap(t *testing.T) {
	s := model.NewStringValue("12:00")
	assert.True(t, compareValue(s, model.OpOverlap, []string{"09:00", "13:30"}))
	assert.False(t, compareValue(s, model.OpOverlap, []string{"13:00", "13:30"}))
	assert.True(t, compareValue(s, model.OpNoOverlap, []string{"13:00", "13:30"}))
}

func TestCompareValue_EmptyTargets(t *testing.T) {
	assert.False(t, compareValue(model.NewStringValue("x"), model.OpEqual, nil))
	assert.False(t, compareValue(model.NewNumberValue(1), model.OpEqual, nil))
}

// P4: GlobalAllDifferent yields 0 iff within every group all extracted
// unique values are distinct.
func TestGlobalAllDifferent_FeasibleIsZero(t *testing.T) {
	problem := model.ProblemData{ItemCategories: map[string]model.Item{
		"Task": {Name: "Task", ItemSetType: model.BSet, Members: []model.Member{{ID: 1}, {ID: 2}}},
		"Slot": {Name: "Slot", ItemSetType: model.ESet, Members: []model.Member{{ID: 1}, {ID: 2}}},
	}}
	schedule := model.Schedule{Assignments: []model.Assignment{
		{TaskID: 1, TaskItemName: "Task", Resources: map[string]model.ItemId{"Slot": 1}},
		{TaskID: 2, TaskItemName: "Task", Resources: map[string]model.ItemId{"Slot": 2}},
	}}
	rule := model.ConstraintRule{
		Kind:            model.RuleGlobalAllDifferent,
		UniqueItemField: model.ParseItemField("Slot:id"),
		GroupItemField:  model.ParseItemField("Task:id"),
	}
	assert.Equal(t, uint64(0), evaluateRule(rule, schedule, problem))
}

func TestGlobalAllDifferent_Collision(t *testing.T) {
	problem := model.ProblemData{ItemCategories: map[string]model.Item{
		"Task": {Name: "Task", ItemSetType: model.BSet, Members: []model.Member{{ID: 1}, {ID: 2}}},
		"Slot": {Name: "Slot", ItemSetType: model.ESet, Members: []model.Member{{ID: 1}}},
	}}
	schedule := model.Schedule{Assignments: []model.Assignment{
		{TaskID: 1, TaskItemName: "Task", Resources: map[string]model.ItemId{"Slot": 1}},
		{TaskID: 2, TaskItemName: "Task", Resources: map[string]model.ItemId{"Slot": 1}},
	}}
	rule := model.ConstraintRule{
		Kind: model.RuleGlobalAllDifferent,
		// group on a constant field (pseudo field "id" of Slot groups
		// by the same Slot) - use a grouping field that buckets both
		// assignments together: group by a missing field yields "" for
		// both, the same shared bucket.
		UniqueItemField: model.ParseItemField("Slot:id"),
		GroupItemField:  model.ParseItemField("Task:missing"),
	}
	assert.Equal(t, uint64(1), evaluateRule(rule, schedule, problem))
}

// P5: GlobalCardinality is monotone: removing an assignment cannot
// increase its violation count.
func TestGlobalCardinality_Monotone(t *testing.T) {
	problem := workerTaskProblem(9)
	rule := model.ConstraintRule{
		Kind:            model.RuleGlobalCardinality,
		TargetItemField: model.ParseItemField("Worker:id"),
		MaxCount:        1,
	}

	full := assignAllTo([]model.ItemId{1, 2, 3}, 9)
	reduced := assignAllTo([]model.ItemId{1, 2}, 9)

	fullViolations := evaluateRule(rule, full, problem)
	reducedViolations := evaluateRule(rule, reduced, problem)
	assert.LessOrEqual(t, reducedViolations, fullViolations)
}

func TestGlobalCardinality_ScopeConditions(t *testing.T) {
	problem := workerTaskProblem(9)
	schedule := assignAllTo([]model.ItemId{1, 2, 3}, 9)
	rule := model.ConstraintRule{
		Kind:            model.RuleGlobalCardinality,
		TargetItemField: model.ParseItemField("Worker:id"),
		MaxCount:        0,
		ScopeConditions: []model.Condition{
			{ItemName: "Task", FieldKey: "id", Operator: model.OpEqual, TargetValues: []string{"999"}},
		},
	}
	// scope excludes every assignment -> no violations.
	assert.Equal(t, uint64(0), evaluateRule(rule, schedule, problem))
}

func timeSlotProblem() model.ProblemData {
	return model.ProblemData{ItemCategories: map[string]model.Item{
		"Course": {Name: "Course", ItemSetType: model.BSet, Members: []model.Member{{ID: 1}, {ID: 2}}},
		"TimeSlot": {Name: "TimeSlot", ItemSetType: model.ESet, Members: []model.Member{
			{ID: 1, Fields: map[string]model.Value{"start": model.NewDateValue("08:00"), "end": model.NewDateValue("09:30")}},
			{ID: 2, Fields: map[string]model.Value{"start": model.NewDateValue("10:00"), "end": model.NewDateValue("11:30")}},
		}},
	}}
}

// S5: temporal precedence, ordered pair succeeds.
func TestGlobalTemporalPrecedence_BeforeSatisfied(t *testing.T) {
	problem := timeSlotProblem()
	schedule := model.Schedule{Assignments: []model.Assignment{
		{TaskID: 1, TaskItemName: "Course", Resources: map[string]model.ItemId{"TimeSlot": 1}},
		{TaskID: 2, TaskItemName: "Course", Resources: map[string]model.ItemId{"TimeSlot": 2}},
	}}
	rule := model.ConstraintRule{
		Kind:              model.RuleGlobalTemporalPrecedence,
		GroupingItemField: model.ParseItemField("Course:missing"), // same bucket for both
		FirstConditions:   []model.Condition{{ItemName: "Course", FieldKey: "id", Operator: model.OpIn, TargetValues: []string{"1"}}},
		SecondConditions:  []model.Condition{{ItemName: "Course", FieldKey: "id", Operator: model.OpIn, TargetValues: []string{"2"}}},
		TemporalRelation:  model.OpBefore,
		TemporalFields:    []string{"start", "end"},
	}
	assert.Equal(t, uint64(0), evaluateRule(rule, schedule, problem))
}

// S5: reversed assignment, same pair now fails.
func TestGlobalTemporalPrecedence_BeforeViolated(t *testing.T) {
	problem := timeSlotProblem()
	schedule := model.Schedule{Assignments: []model.Assignment{
		{TaskID: 1, TaskItemName: "Course", Resources: map[string]model.ItemId{"TimeSlot": 2}},
		{TaskID: 2, TaskItemName: "Course", Resources: map[string]model.ItemId{"TimeSlot": 1}},
	}}
	rule := model.ConstraintRule{
		Kind:              model.RuleGlobalTemporalPrecedence,
		GroupingItemField: model.ParseItemField("Course:missing"),
		FirstConditions:   []model.Condition{{ItemName: "Course", FieldKey: "id", Operator: model.OpIn, TargetValues: []string{"1"}}},
		SecondConditions:  []model.Condition{{ItemName: "Course", FieldKey: "id", Operator: model.OpIn, TargetValues: []string{"2"}}},
		TemporalRelation:  model.OpBefore,
		TemporalFields:    []string{"start", "end"},
	}
	assert.Equal(t, uint64(1), evaluateRule(rule, schedule, problem))
}

// P6: GlobalTemporalPrecedence with Overlap is symmetric in
// (first, second) condition sets.
func TestGlobalTemporalPrecedence_OverlapSymmetric(t *testing.T) {
	problem := timeSlotProblem()
	schedule := model.Schedule{Assignments: []model.Assignment{
		{TaskID: 1, TaskItemName: "Course", Resources: map[string]model.ItemId{"TimeSlot": 1}},
		{TaskID: 2, TaskItemName: "Course", Resources: map[string]model.ItemId{"TimeSlot": 1}},
	}}
	ruleForward := model.ConstraintRule{
		Kind:              model.RuleGlobalTemporalPrecedence,
		GroupingItemField: model.ParseItemField("Course:missing"),
		FirstConditions:   []model.Condition{{ItemName: "Course", FieldKey: "id", Operator: model.OpIn, TargetValues: []string{"1"}}},
		SecondConditions:  []model.Condition{{ItemName: "Course", FieldKey: "id", Operator: model.OpIn, TargetValues: []string{"2"}}},
		TemporalRelation:  model.OpOverlap,
		TemporalFields:    []string{"start", "end"},
	}
	ruleReversed := ruleForward
	ruleReversed.FirstConditions, ruleReversed.SecondConditions = ruleForward.SecondConditions, ruleForward.FirstConditions

	assert.Equal(t, evaluateRule(ruleForward, schedule, problem), evaluateRule(ruleReversed, schedule, problem))
}

func TestCheckTemporalRelation_MissingTimeSlotIsViolation(t *testing.T) {
	problem := timeSlotProblem()
	first := model.Assignment{TaskID: 1, TaskItemName: "Course", Resources: map[string]model.ItemId{}}
	second := model.Assignment{TaskID: 2, TaskItemName: "Course", Resources: map[string]model.ItemId{"TimeSlot": 1}}
	assert.False(t, checkTemporalRelation(first, second, problem, model.OpBefore, []string{"start", "end"}))
}

func TestCheckTemporalRelation_BadFieldCountIsViolation(t *testing.T) {
	problem := timeSlotProblem()
	a := model.Assignment{TaskID: 1, TaskItemName: "Course", Resources: map[string]model.ItemId{"TimeSlot": 1}}
	assert.False(t, checkTemporalRelation(a, a, problem, model.OpEqual, []string{}))
	assert.False(t, checkTemporalRelation(a, a, problem, model.OpEqual, []string{"a", "b", "c"}))
}
