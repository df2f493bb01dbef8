// Package builder constructs the initial random schedule (C7) handed
// to the annealing driver as its starting point.
package builder

import (
	"github.com/khryptorgraphics/schedcore/internal/model"
	"github.com/khryptorgraphics/schedcore/internal/neighborhood"
)

// RandomSchedule selects one B_Set category (the first encountered in
// problem's map iteration order — an intentionally unresolved
// tie-break, per spec.md §4.5 and its Open Question in §9) and, for
// each of its members, binds one uniformly random member id from every
// E_Set category. Returns an empty schedule if no B_Set category
// exists.
func RandomSchedule(problem model.ProblemData, rng neighborhood.Rand) model.Schedule {
	taskItem, ok := firstBSet(problem)
	if !ok {
		return model.Schedule{}
	}

	eSetItems := eSetItems(problem)

	assignments := make([]model.Assignment, 0, len(taskItem.Members))
	for _, task := range taskItem.Members {
		resources := make(map[string]model.ItemId, len(eSetItems))
		for _, eItem := range eSetItems {
			if len(eItem.Members) == 0 {
				continue
			}
			member := eItem.Members[rng.IntN(len(eItem.Members))]
			resources[eItem.Name] = member.ID
		}
		assignments = append(assignments, model.Assignment{
			TaskID:       task.ID,
			TaskItemName: taskItem.Name,
			Resources:    resources,
		})
	}

	return model.Schedule{Assignments: assignments}
}

func firstBSet(problem model.ProblemData) (model.Item, bool) {
	for _, item := range problem.ItemCategories {
		if item.ItemSetType == model.BSet {
			return item, true
		}
	}
	return model.Item{}, false
}

// eSetItems returns every E_Set category in a fixed order (sorted by
// name) so that, for a fixed ProblemData and Rand sequence, the number
// and order of rng draws made per task is reproducible — Go's map
// iteration order is randomized per process and would otherwise break
// scenario S6 (determinism) even though firstBSet's tie-break is
// deliberately left unresolved.
func eSetItems(problem model.ProblemData) []model.Item {
	var items []model.Item
	for _, item := range problem.ItemCategories {
		if item.ItemSetType == model.ESet {
			items = append(items, item)
		}
	}
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && items[j-1].Name > items[j].Name; j-- {
			items[j-1], items[j] = items[j], items[j-1]
		}
	}
	return items
}
