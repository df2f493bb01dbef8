package anneal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khryptorgraphics/schedcore/internal/model"
)

func cardinalityProblem() (model.ProblemData, []model.Constraint) {
	problem := model.ProblemData{ItemCategories: map[string]model.Item{
		"Task":   {Name: "Task", ItemSetType: model.BSet, Members: []model.Member{{ID: 1}, {ID: 2}, {ID: 3}}},
		"Worker": {Name: "Worker", ItemSetType: model.ESet, Members: []model.Member{{ID: 9}}},
	}}
	constraints := []model.Constraint{{
		Name: "max-one-per-worker", Weight: 10,
		Rule: model.ConstraintRule{
			Kind:            model.RuleGlobalCardinality,
			TargetItemField: model.ParseItemField("Worker:id"),
			MaxCount:        1,
		},
	}}
	return problem, constraints
}

func initialSchedule(problem model.ProblemData) model.Schedule {
	var assignments []model.Assignment
	for _, m := range problem.ItemCategories["Task"].Members {
		assignments = append(assignments, model.Assignment{
			TaskID: m.ID, TaskItemName: "Task",
			Resources: map[string]model.ItemId{"Worker": 9},
		})
	}
	return model.Schedule{Assignments: assignments}
}

// S2: single worker, single cardinality constraint — optimum cost is
// 20 regardless of how the solver shuffles assignments (only one
// worker exists, so every schedule has the same cost).
func TestSolve_SingleCardinalityViolation(t *testing.T) {
	problem, constraints := cardinalityProblem()
	schedule := initialSchedule(problem)

	result := Solve(problem, constraints, schedule, Params{
		InitialTemperature: 1.0,
		CoolingRate:        0.9,
		MaxIterations:      10,
		Rand:               NewSeededRand(1, 1),
	})
	assert.Equal(t, uint64(20), result.Cost)
}

// P7: best-so-far is non-increasing; best_cost <= initial_cost.
func TestSolve_BestCostNeverWorseThanInitial(t *testing.T) {
	problem := model.ProblemData{ItemCategories: map[string]model.Item{
		"Course":   {Name: "Course", ItemSetType: model.BSet, Members: []model.Member{{ID: 1}, {ID: 2}}},
		"TimeSlot": {Name: "TimeSlot", ItemSetType: model.ESet, Members: []model.Member{{ID: 1}, {ID: 2}, {ID: 3}}},
	}}
	constraints := []model.Constraint{{
		Name: "forbid-slot-2", Weight: 50,
		Rule: model.ConstraintRule{
			Kind: model.RuleMultiAssignmentCheck,
			Conditions: []model.Condition{
				{ItemName: "TimeSlot", FieldKey: "id", Operator: model.OpIn, TargetValues: []string{"2"}},
			},
			LogicalOp: model.LogicalOr,
			Mode:      model.ModeForbid,
		},
	}}
	schedule := model.Schedule{Assignments: []model.Assignment{
		{TaskID: 1, TaskItemName: "Course", Resources: map[string]model.ItemId{"TimeSlot": 2}},
		{TaskID: 2, TaskItemName: "Course", Resources: map[string]model.ItemId{"TimeSlot": 2}},
	}}

	var bestSoFar []uint64
	result := Solve(problem, constraints, schedule, Params{
		InitialTemperature: 5.0,
		CoolingRate:        0.95,
		MaxIterations:      300,
		Rand:               NewSeededRand(2, 3),
		OnIteration: func(_ uint32, _ uint64, bestCost uint64) {
			bestSoFar = append(bestSoFar, bestCost)
		},
	})

	initialCost := uint64(100) // both assignments forbidden -> 2 * 50
	require.LessOrEqual(t, result.Cost, initialCost)
	for i := 1; i < len(bestSoFar); i++ {
		assert.LessOrEqual(t, bestSoFar[i], bestSoFar[i-1])
	}
	// S4: enough iterations must reach the feasible optimum of 0.
	assert.Equal(t, uint64(0), result.Cost)
}

// P8: with cooling_rate = 0, temperature collapses after the first
// step and SA degenerates to pure greedy descent: never accepts
// delta >= 0 after the first step.
func TestSolve_ZeroCoolingRateIsGreedyAfterFirstStep(t *testing.T) {
	problem := model.ProblemData{ItemCategories: map[string]model.Item{
		"Task":   {Name: "Task", ItemSetType: model.BSet, Members: []model.Member{{ID: 1}}},
		"Worker": {Name: "Worker", ItemSetType: model.ESet, Members: []model.Member{{ID: 1}, {ID: 2}, {ID: 3}}},
	}}
	constraints := []model.Constraint{{
		Name: "forbid-worker-2", Weight: 1,
		Rule: model.ConstraintRule{
			Kind: model.RuleMultiAssignmentCheck,
			Conditions: []model.Condition{
				{ItemName: "Worker", FieldKey: "id", Operator: model.OpEqual, TargetValues: []string{"2"}},
			},
			LogicalOp: model.LogicalAnd,
			Mode:      model.ModeForbid,
		},
	}}
	schedule := model.Schedule{Assignments: []model.Assignment{
		{TaskID: 1, TaskItemName: "Task", Resources: map[string]model.ItemId{"Worker": 1}},
	}}

	var costs []uint64
	Solve(problem, constraints, schedule, Params{
		InitialTemperature: 10.0,
		CoolingRate:        0,
		MaxIterations:      500,
		Rand:               NewSeededRand(4, 5),
		OnIteration: func(_ uint32, currentCost uint64, _ uint64) {
			costs = append(costs, currentCost)
		},
	})
	// after the very first iteration's temperature*=0 collapse, current
	// cost must never strictly worsen from one observed point to the next.
	for i := 2; i < len(costs); i++ {
		assert.LessOrEqual(t, costs[i], costs[i-1])
	}
}

// S6: identical seed + problem + constraints + params -> identical
// output.
func TestSolve_DeterministicForFixedSeed(t *testing.T) {
	problem, constraints := cardinalityProblem()
	schedule := initialSchedule(problem)
	params := Params{InitialTemperature: 2.0, CoolingRate: 0.85, MaxIterations: 40, Rand: NewSeededRand(123, 456)}

	a := Solve(problem, constraints, schedule, params)
	params.Rand = NewSeededRand(123, 456)
	b := Solve(problem, constraints, schedule, params)

	assert.Equal(t, a, b)
}

// S1: empty problem, any constraints, solve returns empty schedule and
// zero cost.
func TestSolve_EmptyProblem(t *testing.T) {
	problem := model.ProblemData{ItemCategories: map[string]model.Item{}}
	result := Solve(problem, nil, model.Schedule{}, Params{
		InitialTemperature: 1.0,
		CoolingRate:        0.9,
		MaxIterations:      10,
		Rand:               NewSeededRand(7, 7),
	})
	assert.Equal(t, 0, result.Schedule.Len())
	assert.Equal(t, uint64(0), result.Cost)
}
