package models

// ========================================
// 메시지 타입 상수
// ========================================
const (
	// Server → Web
	MessageTypeFrame         = "frame"          // 프레임 관측값 (위치 + 안전 상태)
	MessageTypePathUpdate    = "path_update"    // 계획된 경로
	MessageTypeTestResult    = "test_result"    // 시나리오 1개 결과
	MessageTypeBatchComplete = "batch_complete" // 배치 집계 리포트
	MessageTypeSystemInfo    = "system_info"    // 시스템 정보

	// Web → Server
	MessageTypeCommand = "command" // 라이브 실행 시작/중지
)

// ========================================
// 공통 WebSocket 메시지 형식
// ========================================
type WebSocketMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"` // Unix timestamp (ms)
}

// PathUpdateData - 경로 브로드캐스트 데이터
type PathUpdateData struct {
	ScenarioID int     `json:"scenario_id"`
	Points     []Point `json:"points"`
	Barrier    float64 `json:"barrier_distance"`
}

// LiveCommand - 웹에서 보내는 라이브 실행 명령
type LiveCommand struct {
	Action   string   `json:"action"` // "start" | "stop"
	Scenario Scenario `json:"scenario"`
}
