package services

import (
	"barrier-backend/algorithms"
	"barrier-backend/models"
)

// HeadlessSimulator - 렌더링 없는 시뮬레이터
//
// 경로는 생성 시 한 번만 계산하고 이동 중에는 다시 계획하지 않는다.
// 실행 1회가 상태를 독점하므로 락이 필요 없다.
type HeadlessSimulator struct {
	start     models.Point
	end       models.Point
	obstacles []models.Point
	barrier   float64
	speed     float64

	path          []models.Point
	pathIndex     int     // 현재 세그먼트 인덱스
	progress      float64 // 현재 세그먼트 진행률 [0, 1)
	position      models.Point
	hasReachedEnd bool
}

// NewHeadlessSimulator - 시나리오로 시뮬레이터 생성 (경로 계획 포함)
func NewHeadlessSimulator(sc models.Scenario) *HeadlessSimulator {
	barrier := algorithms.ClampBarrierDistance(sc.Barrier)
	return &HeadlessSimulator{
		start:     sc.Start,
		end:       sc.End,
		obstacles: sc.Obstacles,
		barrier:   barrier,
		speed:     sc.Speed,
		path:      algorithms.PlanSafePath(sc.Start, sc.End, sc.Obstacles, barrier),
		position:  sc.Start,
	}
}

// Step - 시뮬레이션 1스텝 진행. 아직 이동 중이면 true, 도착했으면 false
//
// 진행률이 1.0을 넘으면 0으로 되돌리고 다음 세그먼트로 넘어간다. 마지막
// 세그먼트 경계에 닿으면 도착 상태가 되고 위치는 경로의 마지막 점에 고정된다.
// 세그먼트 전환 프레임의 위치는 전환 전 세그먼트 기준으로 계산한다.
func (s *HeadlessSimulator) Step() bool {
	if s.hasReachedEnd {
		return false
	}

	if s.pathIndex < len(s.path)-1 {
		segStart := s.path[s.pathIndex]
		segEnd := s.path[s.pathIndex+1]

		s.progress += s.speed

		if s.progress >= 1.0 {
			s.progress = 0.0
			s.pathIndex++
			if s.pathIndex >= len(s.path)-1 {
				s.hasReachedEnd = true
				s.position = s.path[len(s.path)-1]
			}
		}

		if !s.hasReachedEnd {
			s.position = segStart.Add(segEnd.Sub(segStart).Scale(s.progress))
		}
	}
	// 경로가 점 1개로 퇴화하면 이동할 세그먼트가 없어 제자리에 머문다.
	// 이 경우 종료는 호출자의 스텝 상한이 담당한다

	return !s.hasReachedEnd
}

// DistanceToObstacles - 현재 위치에서 가장 가까운 장애물까지의 거리
func (s *HeadlessSimulator) DistanceToObstacles() float64 {
	return models.MinObstacleDistance(s.position, s.obstacles)
}

// SafetyState - 현재 위치의 안전 상태. 매번 위치에서 다시 계산한다
func (s *HeadlessSimulator) SafetyState() models.SafetyState {
	return models.ClassifySafety(s.DistanceToObstacles(), s.barrier)
}

// Position - 현재 위치
func (s *HeadlessSimulator) Position() models.Point {
	return s.position
}

// Path - 계획된 경로 (읽기 전용으로 사용할 것)
func (s *HeadlessSimulator) Path() []models.Point {
	return s.path
}

// HasReachedEnd - 도착 여부
func (s *HeadlessSimulator) HasReachedEnd() bool {
	return s.hasReachedEnd
}
