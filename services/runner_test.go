package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barrier-backend/models"
)

func TestRunScenarioFrameCountersSum(t *testing.T) {
	for _, sc := range SampleScenarios().Scenarios {
		result := RunScenario(sc, nil)
		sum := result.SafeFrames + result.MildUnsafeFrames + result.UnsafeFrames
		assert.Equal(t, result.TotalFrames, sum, "test %d", sc.ID)
	}
}

func TestRunScenarioStraightLine(t *testing.T) {
	result := RunScenario(models.Scenario{
		ID:          1,
		Start:       models.Point{X: 0, Y: 0},
		End:         models.Point{X: 1, Y: 0},
		Speed:       0.5,
		Barrier:     1.0,
		Description: "straight",
	}, nil)

	// 도착 스텝(false 반환)은 프레임으로 세지 않는다
	assert.Equal(t, 1, result.TotalFrames)
	assert.Equal(t, 1, result.SafeFrames)
	assert.Equal(t, "SAFE", result.Status)
	assert.True(t, math.IsInf(float64(result.MinDistance), 1))
	assert.False(t, result.Incomplete())
}

func TestRunScenarioAvoidance(t *testing.T) {
	result := RunScenario(models.Scenario{
		ID:        1,
		Start:     models.Point{X: 0, Y: 0},
		End:       models.Point{X: 10, Y: 8},
		Obstacles: []models.Point{{X: 5, Y: 4}},
		Barrier:   1.0,
		Speed:     0.02,
	}, nil)

	// 세그먼트 3개 × 스텝 약 50개
	assert.InDelta(t, 150, result.TotalFrames, 5)
	assert.Equal(t, "SAFE", result.Status)
	assert.Equal(t, 0, result.UnsafeFrames)
	assert.GreaterOrEqual(t, float64(result.MinDistance), 1.0)
	assert.False(t, result.Incomplete())
}

// 속도 0이면 영원히 이동 중이라 스텝 상한에서 잘린다
func TestRunScenarioStepCap(t *testing.T) {
	result := RunScenario(models.Scenario{
		Start:   models.Point{X: 0, Y: 0},
		End:     models.Point{X: 1, Y: 0},
		Speed:   0,
		Barrier: 1.0,
	}, nil)

	assert.Equal(t, models.MaxSimulationSteps, result.TotalFrames)
	assert.True(t, result.Incomplete())
}

func TestRunScenarioObserver(t *testing.T) {
	var observed []models.FrameObservation
	result := RunScenario(models.Scenario{
		Start:   models.Point{X: 0, Y: 0},
		End:     models.Point{X: 1, Y: 0},
		Speed:   0.25,
		Barrier: 1.0,
	}, func(obs models.FrameObservation) {
		observed = append(observed, obs)
	})

	require.Len(t, observed, result.TotalFrames)
	for i, obs := range observed {
		assert.Equal(t, i, obs.Frame)
	}
}

// 배리어가 커질수록 같은 기하에서 비-SAFE 프레임이 줄어들 수 없다
func TestRunScenarioMonotonicInBarrier(t *testing.T) {
	barriers := []float64{0.5, 1.0, 1.5, 2.0, 2.5, 3.0}
	prevNotSafe := -1

	for _, barrier := range barriers {
		result := RunScenario(models.Scenario{
			Start:     models.Point{X: 0, Y: 0},
			End:       models.Point{X: 20, Y: 20},
			Obstacles: []models.Point{{X: 10, Y: 10}},
			Barrier:   barrier,
			Speed:     0.02,
		}, nil)

		notSafe := result.MildUnsafeFrames + result.UnsafeFrames
		if prevNotSafe >= 0 {
			assert.GreaterOrEqual(t, notSafe, prevNotSafe, "barrier %.1f", barrier)
		}
		prevNotSafe = notSafe
	}
}

func TestBatchRunnerParallelMatchesSequential(t *testing.T) {
	scenarios := ComprehensiveScenarios().Scenarios

	sequential := NewBatchRunner(1).Run(scenarios)
	parallel := NewBatchRunner(4).Run(scenarios)

	require.Len(t, parallel, len(scenarios))
	assert.Equal(t, sequential, parallel)
}

func TestBatchRunnerPreservesOrder(t *testing.T) {
	scenarios := SampleScenarios().Scenarios
	results := NewBatchRunner(4).Run(scenarios)

	require.Len(t, results, len(scenarios))
	for i, r := range results {
		assert.Equal(t, scenarios[i].ID, r.TestID)
		assert.Equal(t, scenarios[i].Barrier, r.BarrierDistance)
	}
}

func TestAggregateOptimalBarrier(t *testing.T) {
	results := []models.TestResult{
		{TestID: 1, BarrierDistance: 1.0, SafeFrames: 100, Description: "g"},
		{TestID: 2, BarrierDistance: 2.0, SafeFrames: 100, Description: "g"},
		{TestID: 3, BarrierDistance: 0.5, SafeFrames: 90, UnsafeFrames: 10, Description: "g"},
	}

	report := Aggregate(results)

	require.Len(t, report.Groups, 1)
	group := report.Groups[0]
	assert.Equal(t, 3, group.TotalTests)
	assert.Equal(t, 2, group.SafeCount)
	assert.Equal(t, 1, group.UnsafeCount)

	// SAFE 판정 중 최소 배리어 거리
	require.NotNil(t, group.OptimalBarrier)
	assert.Equal(t, 1.0, *group.OptimalBarrier)
	assert.Nil(t, group.FallbackBarrier)
}

func TestAggregateFallbackFewestUnsafeFrames(t *testing.T) {
	results := []models.TestResult{
		{TestID: 1, BarrierDistance: 0.5, UnsafeFrames: 5, Description: "g"},
		{TestID: 2, BarrierDistance: 1.0, UnsafeFrames: 3, Description: "g"},
		{TestID: 3, BarrierDistance: 1.5, UnsafeFrames: 3, Description: "g"},
	}

	report := Aggregate(results)

	require.Len(t, report.Groups, 1)
	group := report.Groups[0]
	assert.Nil(t, group.OptimalBarrier)

	// 동률이면 먼저 온 쪽이 이긴다
	require.NotNil(t, group.FallbackBarrier)
	assert.Equal(t, 1.0, *group.FallbackBarrier)
	assert.Equal(t, 3, group.FallbackUnsafeFrames)
}

func TestAggregateGroupsInFirstEncounterOrder(t *testing.T) {
	results := []models.TestResult{
		{BarrierDistance: 1.0, SafeFrames: 1, Description: "beta"},
		{BarrierDistance: 1.0, SafeFrames: 1, Description: "alpha"},
		{BarrierDistance: 2.0, SafeFrames: 1, Description: "beta"},
	}

	report := Aggregate(results)

	require.Len(t, report.Groups, 2)
	assert.Equal(t, "beta", report.Groups[0].Description)
	assert.Equal(t, "alpha", report.Groups[1].Description)
	assert.Equal(t, 3, report.TotalTests)
	assert.Equal(t, 3, report.Overall.TotalTests)
}

func TestAggregatePercentages(t *testing.T) {
	results := []models.TestResult{
		{BarrierDistance: 1.0, SafeFrames: 10, Description: "g"},
		{BarrierDistance: 1.0, MildUnsafeFrames: 10, Description: "g"},
		{BarrierDistance: 1.0, UnsafeFrames: 10, Description: "g"},
		{BarrierDistance: 1.0, SafeFrames: 10, Description: "g"},
	}

	report := Aggregate(results)

	group := report.Groups[0]
	assert.InDelta(t, 50.0, group.SafePercent, 1e-9)
	assert.InDelta(t, 25.0, group.MildUnsafePercent, 1e-9)
	assert.InDelta(t, 25.0, group.UnsafePercent, 1e-9)
}

func TestAggregateEmpty(t *testing.T) {
	report := Aggregate(nil)

	assert.Equal(t, 0, report.TotalTests)
	assert.Empty(t, report.Groups)
	assert.NotEmpty(t, report.RunID)
}
