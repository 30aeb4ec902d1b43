package models

import (
	"encoding/json"
	"math"
	"time"
)

// Distance - 장애물까지의 거리. 장애물이 없을 때의 +Inf는 JSON에서 null로 내보낸다
type Distance float64

// MarshalJSON - +Inf → null
func (d Distance) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(d), 0) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(d))
}

// FrameObservation - 시뮬레이션 프레임 1개의 관측값 (로깅/스트리밍 콜백용)
type FrameObservation struct {
	Frame    int         `json:"frame"`
	Position Point       `json:"position"`
	Distance Distance    `json:"distance_to_obstacle"`
	State    SafetyState `json:"safety_state"`
}

// ========================================
// 시나리오 1회 실행 결과
// ========================================

// TestResult - 시나리오 1회 실행의 요약. 생성 후 읽기 전용
type TestResult struct {
	TestID           int      `json:"test_id"`
	BarrierDistance  float64  `json:"barrier_distance"`
	TotalFrames      int      `json:"total_frames"`
	SafeFrames       int      `json:"safe_frames"`
	MildUnsafeFrames int      `json:"mild_unsafe_frames"`
	UnsafeFrames     int      `json:"unsafe_frames"`
	MinDistance      Distance `json:"min_distance_observed"`
	Description      string   `json:"description"`
	Status           string   `json:"safety_status"`
}

// SafetyStatus - 전체 상태 판정. 관측된 최악 상태가 이긴다 (다수결 아님)
func (r TestResult) SafetyStatus() SafetyState {
	if r.UnsafeFrames > 0 {
		return StateUnsafe
	}
	if r.MildUnsafeFrames > 0 {
		return StateMildUnsafe
	}
	return StateSafe
}

// Incomplete - 스텝 상한(1000)에 걸려 끝까지 못 간 실행인지 여부
func (r TestResult) Incomplete() bool {
	return r.TotalFrames >= MaxSimulationSteps
}

// ========================================
// 집계 리포트
// ========================================

// GroupSummary - 설명(라벨)별 그룹 통계
type GroupSummary struct {
	Description       string   `json:"description"`
	TotalTests        int      `json:"total_tests"`
	SafeCount         int      `json:"safe_count"`
	MildUnsafeCount   int      `json:"mild_unsafe_count"`
	UnsafeCount       int      `json:"unsafe_count"`
	SafePercent       float64  `json:"safe_percent"`
	MildUnsafePercent float64  `json:"mild_unsafe_percent"`
	UnsafePercent     float64  `json:"unsafe_percent"`

	// SAFE 테스트 중 최소 배리어 거리. SAFE가 하나도 없으면 nil이고
	// 대신 UNSAFE 프레임이 가장 적은 테스트가 Fallback으로 들어간다
	OptimalBarrier       *float64 `json:"optimal_barrier_distance,omitempty"`
	FallbackBarrier      *float64 `json:"fallback_barrier_distance,omitempty"`
	FallbackUnsafeFrames int      `json:"fallback_unsafe_frames,omitempty"`
}

// AggregateReport - 배치 전체 집계. 읽기 전용 뷰
type AggregateReport struct {
	RunID      string         `json:"run_id"`
	CreatedAt  time.Time      `json:"created_at"`
	TotalTests int            `json:"total_tests"`
	Overall    GroupSummary   `json:"overall"`
	Groups     []GroupSummary `json:"groups"`
}
