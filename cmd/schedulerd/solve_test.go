package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khryptorgraphics/schedcore/internal/config"
	"github.com/khryptorgraphics/schedcore/internal/logging"
	"github.com/khryptorgraphics/schedcore/internal/model"
)

func testApplication() *application {
	return &application{
		config: config.Default(),
		logger: logging.New(logging.Config{Level: logging.LevelError, Format: logging.FormatJSON}),
	}
}

func TestRunSolve_SeedSample(t *testing.T) {
	app := testApplication()
	app.config.Solver.MaxIterations = 5

	cmd := buildSolveCmd(app)
	require.NoError(t, cmd.Flags().Set("seed-sample", "true"))

	err := app.runSolve(cmd)
	assert.NoError(t, err)
}

func TestRunSolve_RequiresProblemOrSeed(t *testing.T) {
	app := testApplication()
	cmd := buildSolveCmd(app)
	err := app.runSolve(cmd)
	assert.Error(t, err)
}

func TestRunSolve_ReadsProblemFile(t *testing.T) {
	app := testApplication()
	app.config.Solver.MaxIterations = 5

	pf := problemFile{
		Problem: model.ProblemData{ItemCategories: map[string]model.Item{
			"Task": {Name: "Task", ItemSetType: model.BSet, Members: []model.Member{{ID: 1}}},
		}},
	}
	data, err := json.Marshal(pf)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "problem.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cmd := buildSolveCmd(app)
	require.NoError(t, cmd.Flags().Set("problem", path))

	assert.NoError(t, app.runSolve(cmd))
}
