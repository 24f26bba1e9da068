package cover

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/bf-s1-mosaic/geometry"
	"github.com/venicegeo/bf-s1-mosaic/model"
)

var windowStart = time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)

var testWindow = model.TimeWindow{
	Start: windowStart,
	End:   windowStart.Add(30 * 24 * time.Hour),
}

func strip(t *testing.T, engine geometry.Engine, id string, minX, maxX float64, acquiredOffset time.Duration) model.ShrunkFootprint {
	data := []byte(fmt.Sprintf(`{"type":"Polygon","coordinates":[[[%v,0],[%v,0],[%v,10],[%v,10],[%v,0]]]}`,
		minX, maxX, maxX, minX, minX))
	g, err := engine.ParseGeoJSON(data)
	assert.Nil(t, err)
	return model.ShrunkFootprint{
		SourceID:     id,
		AcquiredDate: windowStart.Add(acquiredOffset),
		Geometry:     g,
	}
}

func testRegion(t *testing.T, engine geometry.Engine) geometry.Geometry {
	region, err := engine.ParseGeoJSON([]byte(`{"type":"Polygon","coordinates":[[[0,0],[10,0],[10,10],[0,10],[0,0]]]}`))
	assert.Nil(t, err)
	return region
}

func TestSolve_PicksMinimalOverlappingSubset(t *testing.T) {
	// Mock: three strips, each covering 60% of the region. The first two
	// combined leave a gap; the first and third cover everything.
	engine := geometry.NewEngine()
	region := testRegion(t, engine)
	candidates := []model.ShrunkFootprint{
		strip(t, engine, "S1A_STRIP_A", 0, 6, 0),
		strip(t, engine, "S1A_STRIP_B", 2, 8, 48*time.Hour),
		strip(t, engine, "S1A_STRIP_C", 4, 10, 24*time.Hour),
	}

	// Tested code
	result, err := Solve(context.Background(), engine, region, candidates, testWindow, Options{})

	// Asserts
	assert.Nil(t, err)
	assert.True(t, result.Covered)
	assert.Equal(t, []string{"S1A_STRIP_A", "S1A_STRIP_C"}, result.Selected)
	assert.Equal(t, 2, result.Iterations)
	assert.Equal(t, 0.0, result.ResidualArea)
	assert.True(t, result.Residual.IsEmpty())
}

func TestSolve_TieBreakPrefersWindowStartThenGranuleID(t *testing.T) {
	// Mock: both strips fully cover the region, so the gains tie. The one
	// acquired closer to the window start must win.
	engine := geometry.NewEngine()
	region := testRegion(t, engine)
	byDate := []model.ShrunkFootprint{
		strip(t, engine, "S1A_STRIP_LATE", 0, 10, 72*time.Hour),
		strip(t, engine, "S1A_STRIP_EARLY", 0, 10, 12*time.Hour),
	}
	byID := []model.ShrunkFootprint{
		strip(t, engine, "S1A_STRIP_B", 0, 10, 12*time.Hour),
		strip(t, engine, "S1A_STRIP_A", 0, 10, 12*time.Hour),
	}

	// Tested code
	dateResult, dateErr := Solve(context.Background(), engine, region, byDate, testWindow, Options{})
	idResult, idErr := Solve(context.Background(), engine, region, byID, testWindow, Options{})

	// Asserts
	assert.Nil(t, dateErr)
	assert.Equal(t, []string{"S1A_STRIP_EARLY"}, dateResult.Selected)
	assert.Nil(t, idErr)
	assert.Equal(t, []string{"S1A_STRIP_A"}, idResult.Selected)
}

func TestSolve_Deterministic(t *testing.T) {
	// Mock
	engine := geometry.NewEngine()
	region := testRegion(t, engine)
	candidates := []model.ShrunkFootprint{
		strip(t, engine, "S1A_STRIP_A", 0, 6, 0),
		strip(t, engine, "S1A_STRIP_B", 2, 8, 48*time.Hour),
		strip(t, engine, "S1A_STRIP_C", 4, 10, 24*time.Hour),
	}

	// Tested code: identical inputs over different worker counts
	first, firstErr := Solve(context.Background(), engine, region, candidates, testWindow, Options{Workers: 1})
	second, secondErr := Solve(context.Background(), engine, region, candidates, testWindow, Options{Workers: 4})

	// Asserts
	assert.Nil(t, firstErr)
	assert.Nil(t, secondErr)
	assert.Equal(t, first.Selected, second.Selected)
	assert.Equal(t, first.Iterations, second.Iterations)
}

func TestSolve_ExactTiling(t *testing.T) {
	// Mock: three disjoint strips tile the region exactly, so all three are
	// required and each is selected exactly once
	engine := geometry.NewEngine()
	region := testRegion(t, engine)
	candidates := []model.ShrunkFootprint{
		strip(t, engine, "S1A_TILE_A", 0, 3, 0),
		strip(t, engine, "S1A_TILE_B", 3, 6, time.Hour),
		strip(t, engine, "S1A_TILE_C", 6, 10, 2*time.Hour),
	}

	// Tested code
	result, err := Solve(context.Background(), engine, region, candidates, testWindow, Options{})

	// Asserts
	assert.Nil(t, err)
	assert.True(t, result.Covered)
	assert.Len(t, result.Selected, 3)
	seen := map[string]bool{}
	for _, id := range result.Selected {
		assert.False(t, seen[id], "granule %v selected twice", id)
		seen[id] = true
	}
}

func TestSolve_CoverageNotAchievable(t *testing.T) {
	// Mock: the candidates only reach x=6, leaving a 4x10 gap
	engine := geometry.NewEngine()
	region := testRegion(t, engine)
	candidates := []model.ShrunkFootprint{
		strip(t, engine, "S1A_STRIP_A", 0, 4, 0),
		strip(t, engine, "S1A_STRIP_B", 2, 6, time.Hour),
	}

	// Tested code
	result, err := Solve(context.Background(), engine, region, candidates, testWindow, Options{})

	// Asserts
	assert.Nil(t, err)
	assert.False(t, result.Covered)
	assert.Equal(t, ReasonNotAchievable, result.Reason)
	assert.Empty(t, result.Selected)
	assert.InDelta(t, 40, result.ResidualArea, 1e-9)
	assert.False(t, result.Residual.IsEmpty())
}

func TestSolve_BudgetExceeded(t *testing.T) {
	// Mock: full coverage needs three strips but the budget allows one step
	engine := geometry.NewEngine()
	region := testRegion(t, engine)
	candidates := []model.ShrunkFootprint{
		strip(t, engine, "S1A_STRIP_A", 0, 4, 0),
		strip(t, engine, "S1A_STRIP_B", 3, 7, time.Hour),
		strip(t, engine, "S1A_STRIP_C", 6, 10, 2*time.Hour),
	}

	// Tested code
	result, err := Solve(context.Background(), engine, region, candidates, testWindow, Options{MaxIterations: 1})

	// Asserts
	assert.Nil(t, err)
	assert.False(t, result.Covered)
	assert.Equal(t, ReasonBudgetExceeded, result.Reason)
	assert.Len(t, result.Selected, 1)
	assert.Equal(t, 1, result.Iterations)
	assert.True(t, result.ResidualArea > 0)
}

func TestSolve_Cancellation(t *testing.T) {
	// Mock
	engine := geometry.NewEngine()
	region := testRegion(t, engine)
	candidates := []model.ShrunkFootprint{
		strip(t, engine, "S1A_STRIP_A", 0, 10, 0),
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Tested code
	result, err := Solve(ctx, engine, region, candidates, testWindow, Options{})

	// Asserts
	assert.Nil(t, result)
	assert.Equal(t, context.Canceled, err)
}

func TestSolve_EmptyCandidateSet(t *testing.T) {
	// Mock
	engine := geometry.NewEngine()
	region := testRegion(t, engine)

	// Tested code
	result, err := Solve(context.Background(), engine, region, nil, testWindow, Options{})

	// Asserts
	assert.Nil(t, err)
	assert.False(t, result.Covered)
	assert.Equal(t, ReasonNotAchievable, result.Reason)
	assert.InDelta(t, 100, result.ResidualArea, 1e-9)
}
