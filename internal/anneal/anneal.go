// Package anneal implements the simulated-annealing driver (C6):
// accept/reject loop, temperature schedule, best-so-far tracking.
package anneal

import (
	"math"
	"math/rand/v2"

	"github.com/khryptorgraphics/schedcore/internal/evaluator"
	"github.com/khryptorgraphics/schedcore/internal/model"
	"github.com/khryptorgraphics/schedcore/internal/neighborhood"
)

// acceptanceFloor is the temperature below which the Metropolis
// criterion is never evaluated and only strictly-improving moves are
// accepted (spec.md §4.4 step 4).
const acceptanceFloor = 1e-10

// Rand is the randomness source the driver hands to the neighborhood
// generator and uses for Metropolis acceptance draws.
type Rand = neighborhood.Rand

// mathRand adapts math/rand/v2 to the neighborhood.Rand interface.
type mathRand struct{ r *rand.Rand }

func (m mathRand) Float64() float64 { return m.r.Float64() }
func (m mathRand) IntN(n int) int   { return m.r.IntN(n) }

// NewSeededRand returns a Rand deterministic for a given seed, the
// mechanism scenario S6 (determinism) relies on.
func NewSeededRand(seed1, seed2 uint64) Rand {
	return mathRand{r: rand.New(rand.NewPCG(seed1, seed2))}
}

// Params holds the tunables a SolveRequest carries.
type Params struct {
	InitialTemperature float64
	CoolingRate        float64
	MaxIterations      uint32

	// Rand defaults to a process-seeded source when nil; callers that
	// need reproducible runs (tests, S6) must supply one explicitly.
	Rand Rand

	// OnIteration, if set, is called every 100 iterations with the
	// current/best cost so far — the structured-logging equivalent of
	// the original implementation's periodic stdout progress line.
	OnIteration func(iteration uint32, currentCost, bestCost uint64)
}

// Result is what Solve returns: the best schedule found and its cost.
type Result struct {
	Schedule model.Schedule
	Cost     uint64
}

// Solve runs the annealing loop described in spec.md §4.4 starting
// from initialSchedule, and returns the best schedule encountered.
func Solve(problem model.ProblemData, constraints []model.Constraint, initialSchedule model.Schedule, params Params) Result {
	rng := params.Rand
	if rng == nil {
		rng = mathRand{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
	}

	current := initialSchedule
	currentCost := evaluator.EvaluateSchedule(current, problem, constraints)
	best := current
	bestCost := currentCost

	temperature := params.InitialTemperature

	for iteration := uint32(0); iteration < params.MaxIterations; iteration++ {
		candidate := neighborhood.Neighbor(current, problem, rng)
		candidateCost := evaluator.EvaluateSchedule(candidate, problem, constraints)

		delta := int64(candidateCost) - int64(currentCost)
		if delta < 0 || shouldAccept(delta, temperature, rng) {
			current = candidate
			currentCost = candidateCost

			if currentCost < bestCost {
				best = current
				bestCost = currentCost
			}
		}

		temperature *= params.CoolingRate

		if params.OnIteration != nil && iteration%100 == 0 {
			params.OnIteration(iteration, currentCost, bestCost)
		}
	}

	return Result{Schedule: best, Cost: bestCost}
}

// shouldAccept implements the Metropolis criterion: never accept a
// worsening move once temperature has collapsed below the floor,
// otherwise accept with probability exp(-delta/temperature).
func shouldAccept(delta int64, temperature float64, rng Rand) bool {
	if temperature < acceptanceFloor {
		return false
	}
	probability := math.Exp(-float64(delta) / temperature)
	return rng.Float64() < probability
}
