package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barrier-backend/models"
)

func TestHeadlessSimulatorStraightLine(t *testing.T) {
	sim := NewHeadlessSimulator(models.Scenario{
		Start: models.Point{X: 0, Y: 0},
		End:   models.Point{X: 1, Y: 0},
		Speed: 0.5,
	})

	// 장애물이 없으면 경로는 [시작, 끝] 2점
	require.Len(t, sim.Path(), 2)

	// 첫 스텝: 중간 지점, 아직 이동 중
	require.True(t, sim.Step())
	assert.InDelta(t, 0.5, sim.Position().X, 1e-9)
	assert.False(t, sim.HasReachedEnd())

	// 둘째 스텝: 진행률 1.0 도달, 끝점에 고정
	require.False(t, sim.Step())
	assert.True(t, sim.HasReachedEnd())
	assert.Equal(t, models.Point{X: 1, Y: 0}, sim.Position())

	// 도착 후 추가 스텝은 false만 돌려준다
	assert.False(t, sim.Step())
	assert.Equal(t, models.Point{X: 1, Y: 0}, sim.Position())
}

func TestHeadlessSimulatorNoObstaclesInfiniteDistance(t *testing.T) {
	sim := NewHeadlessSimulator(models.Scenario{
		Start: models.Point{X: 0, Y: 0},
		End:   models.Point{X: 1, Y: 0},
		Speed: 0.5,
	})

	sim.Step()
	assert.True(t, math.IsInf(sim.DistanceToObstacles(), 1))
	assert.Equal(t, models.StateSafe, sim.SafetyState())
}

// 세그먼트 전환 프레임의 위치는 전환 전 세그먼트 기준이다.
// 진행률이 1.0에 닿는 스텝에서 위치는 이전 세그먼트 시작점으로 계산된다.
func TestHeadlessSimulatorSegmentTransitionFrame(t *testing.T) {
	sim := &HeadlessSimulator{
		path: []models.Point{
			{X: 0, Y: 0},
			{X: 1, Y: 0},
			{X: 1, Y: 1},
		},
		position: models.Point{X: 0, Y: 0},
		speed:    0.5,
		barrier:  1.0,
	}

	// 스텝 1: 첫 세그먼트 중간
	require.True(t, sim.Step())
	assert.Equal(t, models.Point{X: 0.5, Y: 0}, sim.Position())

	// 스텝 2: 진행률 1.0, 인덱스는 넘어가지만 위치는 이전 세그먼트의
	// 진행률 0 지점, 즉 (0,0)으로 돌아간다
	require.True(t, sim.Step())
	assert.Equal(t, models.Point{X: 0, Y: 0}, sim.Position())

	// 스텝 3: 둘째 세그먼트 중간
	require.True(t, sim.Step())
	assert.Equal(t, models.Point{X: 1, Y: 0.5}, sim.Position())

	// 스텝 4: 마지막 세그먼트 경계, 도착
	require.False(t, sim.Step())
	assert.True(t, sim.HasReachedEnd())
	assert.Equal(t, models.Point{X: 1, Y: 1}, sim.Position())
}

// 경로가 점 1개로 퇴화하면 제자리에 머물며 true를 돌려준다.
// 종료는 호출자의 스텝 상한이 담당한다
func TestHeadlessSimulatorDegeneratePathNeverFinishes(t *testing.T) {
	sim := &HeadlessSimulator{
		path:     []models.Point{{X: 3, Y: 3}},
		position: models.Point{X: 3, Y: 3},
		speed:    0.5,
		barrier:  1.0,
	}

	for i := 0; i < 10; i++ {
		assert.True(t, sim.Step())
	}
	assert.Equal(t, models.Point{X: 3, Y: 3}, sim.Position())
	assert.False(t, sim.HasReachedEnd())
}

func TestHeadlessSimulatorAvoidsObstacle(t *testing.T) {
	sim := NewHeadlessSimulator(models.Scenario{
		Start:     models.Point{X: 0, Y: 0},
		End:       models.Point{X: 10, Y: 8},
		Obstacles: []models.Point{{X: 5, Y: 4}},
		Barrier:   1.0,
		Speed:     0.02,
	})

	require.Greater(t, len(sim.Path()), 2)

	minDistance := math.Inf(1)
	steps := 0
	for sim.Step() && steps < models.MaxSimulationSteps {
		if d := sim.DistanceToObstacles(); d < minDistance {
			minDistance = d
		}
		steps++
	}

	// 경로를 따라가는 동안 배리어 침범이 없어야 한다
	assert.True(t, sim.HasReachedEnd())
	assert.GreaterOrEqual(t, minDistance, 1.0)
	assert.Equal(t, models.Point{X: 10, Y: 8}, sim.Position())
}
