package main

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/khryptorgraphics/schedcore/internal/anneal"
	"github.com/khryptorgraphics/schedcore/internal/builder"
	"github.com/khryptorgraphics/schedcore/internal/model"
	"github.com/khryptorgraphics/schedcore/internal/seed"
)

// problemFile is the on-disk shape a "solve" invocation reads: a
// problem plus its constraints plus optional solver overrides,
// sibling to the JSON bodies internal/api/handlers.go accepts over
// HTTP but read from a file instead of a request.
type problemFile struct {
	Problem            model.ProblemData  `json:"problem"`
	Constraints        []model.Constraint `json:"constraints"`
	InitialTemperature float64            `json:"initial_temperature"`
	CoolingRate        float64            `json:"cooling_rate"`
	MaxIterations      uint32             `json:"max_iterations"`
}

type solveOutput struct {
	Schedule model.Schedule `json:"schedule"`
	Cost     uint64         `json:"final_cost"`
}

func buildSolveCmd(app *application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Run one annealing pass against a problem file and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runSolve(cmd)
		},
	}

	cmd.Flags().String("problem", "", "path to a JSON problem file (see problemFile)")
	cmd.Flags().Bool("seed-sample", false, "solve the built-in sample timetabling problem instead of a file")
	return cmd
}

func (app *application) runSolve(cmd *cobra.Command) error {
	seedSample, _ := cmd.Flags().GetBool("seed-sample")
	path, _ := cmd.Flags().GetString("problem")

	var pf problemFile
	switch {
	case seedSample:
		pf = problemFile{Problem: seed.Problem(), Constraints: seed.Constraints()}
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read problem file: %w", err)
		}
		if err := json.Unmarshal(data, &pf); err != nil {
			return fmt.Errorf("parse problem file: %w", err)
		}
	default:
		return fmt.Errorf("either --problem or --seed-sample is required")
	}

	if pf.InitialTemperature == 0 {
		pf.InitialTemperature = app.config.Solver.InitialTemperature
	}
	if pf.CoolingRate == 0 {
		pf.CoolingRate = app.config.Solver.CoolingRate
	}
	if pf.MaxIterations == 0 {
		pf.MaxIterations = app.config.Solver.MaxIterations
	}

	app.logger.Info().
		Uint32("max_iterations", pf.MaxIterations).
		Float64("initial_temperature", pf.InitialTemperature).
		Float64("cooling_rate", pf.CoolingRate).
		Msg("starting solve")

	initial := builder.RandomSchedule(pf.Problem, anneal.NewSeededRand(rand.Uint64(), rand.Uint64()))
	result := anneal.Solve(pf.Problem, pf.Constraints, initial, anneal.Params{
		InitialTemperature: pf.InitialTemperature,
		CoolingRate:        pf.CoolingRate,
		MaxIterations:      pf.MaxIterations,
		OnIteration: func(iteration uint32, currentCost, bestCost uint64) {
			app.logger.Debug().
				Uint32("iteration", iteration).
				Uint64("current_cost", currentCost).
				Uint64("best_cost", bestCost).
				Msg("annealing progress")
		},
	})

	app.logger.Info().Uint64("final_cost", result.Cost).Msg("solve complete")

	out, err := json.MarshalIndent(solveOutput{Schedule: result.Schedule, Cost: result.Cost}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
