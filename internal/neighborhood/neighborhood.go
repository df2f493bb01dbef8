// Package neighborhood produces structured perturbations of a
// schedule for the simulated-annealing driver to explore.
package neighborhood

import "github.com/khryptorgraphics/schedcore/internal/model"

// Rand is the pluggable randomness source every move draws from, so
// callers (and tests) can inject a seeded generator for deterministic
// runs (spec.md §8 scenario S6).
type Rand interface {
	// Float64 returns a pseudo-random number in [0, 1).
	Float64() float64
	// IntN returns a pseudo-random number in [0, n).
	IntN(n int) int
}

const reassignProbability = 0.7

// Neighbor produces a fresh schedule by exactly one of two moves,
// drawing r ~ U[0,1) once to pick between them (spec.md §4.3).
func Neighbor(schedule model.Schedule, problem model.ProblemData, rng Rand) model.Schedule {
	next := schedule.Clone()
	if rng.Float64() < reassignProbability {
		reassign(&next, problem, rng)
	} else {
		swap(&next, rng)
	}
	return next
}

// reassign picks a uniformly random assignment and resource key on it,
// then overwrites that resource with a uniformly random member from
// the category (if it still exists in problem_data).
func reassign(schedule *model.Schedule, problem model.ProblemData, rng Rand) {
	if len(schedule.Assignments) == 0 {
		return
	}
	idx := rng.IntN(len(schedule.Assignments))
	assignment := &schedule.Assignments[idx]

	resourceKeys := sortedKeys(assignment.Resources)
	if len(resourceKeys) == 0 {
		return
	}
	key := resourceKeys[rng.IntN(len(resourceKeys))]

	item, ok := problem.ItemCategories[key]
	if !ok || len(item.Members) == 0 {
		return
	}
	member := item.Members[rng.IntN(len(item.Members))]
	assignment.Resources[key] = member.ID
}

// swap exchanges one resource id between two distinct assignments,
// only when both hold the chosen resource key.
func swap(schedule *model.Schedule, rng Rand) {
	if len(schedule.Assignments) < 2 {
		return
	}
	i := rng.IntN(len(schedule.Assignments))
	j := rng.IntN(len(schedule.Assignments))
	if i == j {
		return
	}

	resourceKeys := sortedKeys(schedule.Assignments[i].Resources)
	if len(resourceKeys) == 0 {
		return
	}
	key := resourceKeys[rng.IntN(len(resourceKeys))]

	idI, okI := schedule.Assignments[i].Resources[key]
	idJ, okJ := schedule.Assignments[j].Resources[key]
	if !okI || !okJ {
		return
	}
	schedule.Assignments[i].Resources[key] = idJ
	schedule.Assignments[j].Resources[key] = idI
}

// sortedKeys gives a deterministic ordering over a resource map's keys
// so that, given the same Rand sequence, Neighbor is reproducible
// regardless of Go's randomized map iteration order.
func sortedKeys(m map[string]model.ItemId) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Simple insertion sort: resource maps are tiny (one entry per
	// resource category), so this avoids importing "sort" for a handful
	// of elements while keeping determinism.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}
