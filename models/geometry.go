package models

import "math"

// ========================================
// 시뮬레이션 공통 상수
// ========================================
const (
	// ObstacleRadius - 장애물 물리 반경. 이 거리 안쪽은 충돌로 간주
	ObstacleRadius = 0.5

	// MinBarrierDistance - 배리어 거리 하한 (이보다 작으면 0.5로 보정)
	MinBarrierDistance = 0.5

	// DedupThreshold - 인접 웨이포인트 중복 제거 임계값
	DedupThreshold = 0.1

	// MaxSimulationSteps - 시뮬레이션 스텝 상한 (speed=0 같은 무한 루프 방지)
	MaxSimulationSteps = 1000

	// 속도 기본값/범위 (세그먼트 진행률 증가량)
	DefaultSpeed = 0.02
	MinSpeed     = 0.001
	MaxSpeed     = 0.1
)

// ========================================
// 2차원 좌표
// ========================================

// Point - 2차원 좌표. 시작점/끝점/장애물/웨이포인트 공용 값 타입
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add - 벡터 합
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub - 벡터 차 (p - q)
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale - 스칼라 배
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Norm - 벡터 크기
func (p Point) Norm() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Dist - 두 점 사이 유클리드 거리
func (p Point) Dist(q Point) float64 {
	return p.Sub(q).Norm()
}

// Normalize - 단위 벡터. 영벡터는 그대로 반환 (0으로 나누지 않음)
func (p Point) Normalize() Point {
	n := p.Norm()
	if n == 0 {
		return p
	}
	return Point{X: p.X / n, Y: p.Y / n}
}

// Perp - 반시계 방향 수직 벡터 (-y, x)
func (p Point) Perp() Point {
	return Point{X: -p.Y, Y: p.X}
}

// IsFinite - 좌표가 NaN/Inf가 아닌지 검사
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// MinObstacleDistance - 가장 가까운 장애물까지의 거리. 장애물이 없으면 +Inf
func MinObstacleDistance(p Point, obstacles []Point) float64 {
	minDist := math.Inf(1)
	for _, obs := range obstacles {
		if d := p.Dist(obs); d < minDist {
			minDist = d
		}
	}
	return minDist
}
