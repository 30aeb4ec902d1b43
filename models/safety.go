package models

import "fmt"

// ========================================
// 안전 상태
// ========================================

// SafetyState - 차량 위치의 3단계 안전 상태
type SafetyState int

const (
	StateSafe       SafetyState = iota // 배리어 바깥
	StateMildUnsafe                    // 배리어 안, 장애물 밖
	StateUnsafe                        // 장애물 물리 반경 안 (충돌)
)

// String - 텍스트 표현
func (s SafetyState) String() string {
	switch s {
	case StateSafe:
		return "SAFE"
	case StateMildUnsafe:
		return "MILD_UNSAFE"
	case StateUnsafe:
		return "UNSAFE"
	default:
		return fmt.Sprintf("SafetyState(%d)", int(s))
	}
}

// MarshalJSON - JSON에는 텍스트로 내보낸다
func (s SafetyState) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// ClassifySafety - 장애물까지의 거리로 안전 상태 판정
//
// distance < 물리 반경(0.5)   → UNSAFE
// distance < barrierDistance → MILD_UNSAFE
// 그 외                      → SAFE (장애물이 없으면 distance=+Inf라 항상 SAFE)
func ClassifySafety(distance, barrierDistance float64) SafetyState {
	if distance < ObstacleRadius {
		return StateUnsafe
	}
	if distance < barrierDistance {
		return StateMildUnsafe
	}
	return StateSafe
}
