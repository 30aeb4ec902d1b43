package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifySafety(t *testing.T) {
	testCases := []struct {
		name     string
		distance float64
		barrier  float64
		expected SafetyState
	}{
		{"inside_obstacle", 0.3, 1.0, StateUnsafe},
		{"just_under_radius", 0.499, 1.0, StateUnsafe},
		{"at_radius", 0.5, 1.0, StateMildUnsafe},
		{"inside_barrier", 0.9, 1.0, StateMildUnsafe},
		{"at_barrier", 1.0, 1.0, StateSafe},
		{"outside_barrier", 3.0, 1.0, StateSafe},
		{"no_obstacle_infinite", math.Inf(1), 1.0, StateSafe},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ClassifySafety(tc.distance, tc.barrier))
		})
	}
}

// 배리어가 커지면 같은 거리에서 비-SAFE 판정이 줄어들 수 없다
func TestClassifySafetyMonotonicInBarrier(t *testing.T) {
	distances := []float64{0.2, 0.4, 0.6, 0.8, 1.0, 1.3, 1.7, 2.2, 3.0, math.Inf(1)}
	barriers := []float64{0.5, 1.0, 1.5, 2.0, 2.5}

	countNotSafe := func(barrier float64) int {
		n := 0
		for _, d := range distances {
			if ClassifySafety(d, barrier) != StateSafe {
				n++
			}
		}
		return n
	}

	for i := 1; i < len(barriers); i++ {
		smaller := countNotSafe(barriers[i-1])
		larger := countNotSafe(barriers[i])
		assert.GreaterOrEqual(t, larger, smaller,
			"barrier %.1f → %.1f", barriers[i-1], barriers[i])
	}
}

func TestSafetyStateJSON(t *testing.T) {
	data, err := json.Marshal(StateMildUnsafe)
	require.NoError(t, err)
	assert.Equal(t, `"MILD_UNSAFE"`, string(data))
}

func TestDistanceMarshalsInfiniteAsNull(t *testing.T) {
	obs := FrameObservation{
		Frame:    0,
		Position: Point{X: 1, Y: 2},
		Distance: Distance(math.Inf(1)),
		State:    StateSafe,
	}

	data, err := json.Marshal(obs)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"distance_to_obstacle":null`)
	assert.Contains(t, string(data), `"safety_state":"SAFE"`)
}

func TestTestResultWorstStatusWins(t *testing.T) {
	testCases := []struct {
		name     string
		result   TestResult
		expected SafetyState
	}{
		{"all_safe", TestResult{SafeFrames: 100}, StateSafe},
		{"one_mild", TestResult{SafeFrames: 99, MildUnsafeFrames: 1}, StateMildUnsafe},
		{"one_unsafe_beats_majority", TestResult{SafeFrames: 999, UnsafeFrames: 1}, StateUnsafe},
		{"empty", TestResult{}, StateSafe},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.result.SafetyStatus())
		})
	}
}

func TestScenarioNormalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		sc := Scenario{
			Start: Point{X: 0, Y: 0},
			End:   Point{X: 10, Y: 10},
		}
		require.NoError(t, sc.Normalize())
		assert.Equal(t, MinBarrierDistance, sc.Barrier)
		assert.Equal(t, DefaultSpeed, sc.Speed)
		assert.Equal(t, DefaultDescription, sc.Description)
	})

	t.Run("clamps", func(t *testing.T) {
		sc := Scenario{
			End:     Point{X: 1, Y: 1},
			Barrier: -2.0,
			Speed:   0.7,
		}
		require.NoError(t, sc.Normalize())
		assert.Equal(t, 0.5, sc.Barrier)
		assert.Equal(t, 0.1, sc.Speed)

		sc = Scenario{End: Point{X: 1, Y: 1}, Barrier: math.NaN(), Speed: 0.0001}
		require.NoError(t, sc.Normalize())
		assert.Equal(t, 0.5, sc.Barrier)
		assert.Equal(t, 0.001, sc.Speed)
	})

	t.Run("rejects_non_finite_coordinates", func(t *testing.T) {
		sc := Scenario{Start: Point{X: math.NaN(), Y: 0}, End: Point{X: 1, Y: 1}}
		assert.Error(t, sc.Normalize())

		sc = Scenario{
			Start:     Point{},
			End:       Point{X: 1, Y: 1},
			Obstacles: []Point{{X: math.Inf(1), Y: 0}},
		}
		assert.Error(t, sc.Normalize())
	})
}
