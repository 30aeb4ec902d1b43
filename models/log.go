package models

import (
	"time"
)

// SimulationLog - 프레임 단위 주행 로그 (상세 데이터)
type SimulationLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	RunID  string `gorm:"index" json:"run_id"` // 배치 실행 ID
	TestID int    `json:"test_id"`
	Frame  int    `json:"frame"`

	PositionX float64 `json:"position_x"`
	PositionY float64 `json:"position_y"`

	// 장애물이 없으면 nil (거리 +Inf)
	Distance *float64 `json:"distance_to_obstacle"`

	SafetyState string `json:"safety_state"` // "SAFE" | "MILD_UNSAFE" | "UNSAFE"
	Label       string `gorm:"index" json:"label"`
}

// TestRecord - 시나리오 1회 실행 결과 영속화 레코드
type TestRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	RunID  string `gorm:"index" json:"run_id"`
	TestID int    `json:"test_id"`
	Label  string `gorm:"index" json:"label"`

	BarrierDistance float64 `json:"barrier_distance"`

	TotalFrames      int `json:"total_frames"`
	SafeFrames       int `json:"safe_frames"`
	MildUnsafeFrames int `json:"mild_unsafe_frames"`
	UnsafeFrames     int `json:"unsafe_frames"`

	MinDistance *float64 `json:"min_distance_observed"` // 장애물이 없으면 nil
	Status      string   `json:"safety_status"`
}
