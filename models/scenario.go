package models

import (
	"fmt"
	"math"
)

// Scenario - 시나리오 입력 레코드 (CSV 파서/핸들러가 공급)
type Scenario struct {
	ID          int     `json:"test_id"`
	Start       Point   `json:"start"`
	End         Point   `json:"end"`
	Obstacles   []Point `json:"obstacles"`
	Barrier     float64 `json:"barrier_distance"`
	Speed       float64 `json:"speed"`
	Description string  `json:"description"`
}

// DefaultDescription - 설명이 없는 시나리오의 대체 라벨
const DefaultDescription = "unnamed_test"

// Normalize - 시나리오 파라미터 검증/보정
//
// 좌표에 NaN/Inf가 있으면 에러. 배리어 거리는 0.5 미만(NaN 포함)이면 0.5로,
// 속도는 [0.001, 0.1] 범위로 보정하고 0/NaN이면 기본값 0.02를 쓴다.
// 설명이 비어 있으면 대체 라벨을 넣는다.
func (s *Scenario) Normalize() error {
	if !s.Start.IsFinite() {
		return fmt.Errorf("시작 좌표가 유효하지 않습니다: %+v", s.Start)
	}
	if !s.End.IsFinite() {
		return fmt.Errorf("끝 좌표가 유효하지 않습니다: %+v", s.End)
	}
	for i, obs := range s.Obstacles {
		if !obs.IsFinite() {
			return fmt.Errorf("장애물[%d] 좌표가 유효하지 않습니다: %+v", i, obs)
		}
	}

	if math.IsNaN(s.Barrier) || math.IsInf(s.Barrier, 0) || s.Barrier < MinBarrierDistance {
		s.Barrier = MinBarrierDistance
	}

	if math.IsNaN(s.Speed) || math.IsInf(s.Speed, 0) || s.Speed == 0 {
		s.Speed = DefaultSpeed
	}
	s.Speed = math.Max(MinSpeed, math.Min(MaxSpeed, s.Speed))

	if s.Description == "" {
		s.Description = DefaultDescription
	}

	return nil
}
