package services

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"barrier-backend/models"
)

// LiveSimulator - 웹 뷰어용 실시간 시뮬레이터
//
// 시나리오 1개를 10Hz 틱으로 진행하면서 프레임 관측값을 브로드캐스트한다.
// 헤드리스 배치 실행과 같은 스테퍼를 쓰고, 스텝 상한(1000)도 동일하게 적용된다.
type LiveSimulator struct {
	broadcastFunc func(models.WebSocketMessage)

	mu       sync.RWMutex
	running  bool
	runID    string
	scenario models.Scenario
	sim      *HeadlessSimulator

	frame            int
	safeFrames       int
	mildUnsafeFrames int
	unsafeFrames     int
	minDistance      float64

	stopChan chan bool
}

// NewLiveSimulator - 라이브 시뮬레이터 생성
func NewLiveSimulator(broadcastFunc func(models.WebSocketMessage)) *LiveSimulator {
	return &LiveSimulator{
		broadcastFunc: broadcastFunc,
	}
}

// Start - 라이브 실행 시작. 이미 실행 중이면 에러
func (s *LiveSimulator) Start(sc models.Scenario) error {
	if err := sc.Normalize(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("라이브 시뮬레이션이 이미 실행 중입니다")
	}

	s.running = true
	s.runID = uuid.New().String()
	s.scenario = sc
	s.sim = NewHeadlessSimulator(sc)
	s.frame = 0
	s.safeFrames = 0
	s.mildUnsafeFrames = 0
	s.unsafeFrames = 0
	s.minDistance = math.Inf(1)
	// 루프가 스스로 끝난 뒤의 Stop이 블록되지 않게 버퍼 1
	s.stopChan = make(chan bool, 1)
	s.mu.Unlock()

	log.Printf("🚀 라이브 시뮬레이션 시작 (test_id=%d, barrier=%.2f)", sc.ID, sc.Barrier)

	// 계획된 경로를 먼저 알려준다
	s.broadcast(models.WebSocketMessage{
		Type: models.MessageTypePathUpdate,
		Data: models.PathUpdateData{
			ScenarioID: sc.ID,
			Points:     s.sim.Path(),
			Barrier:    sc.Barrier,
		},
		Timestamp: time.Now().UnixMilli(),
	})

	go s.run()
	return nil
}

// Stop - 라이브 실행 중지
func (s *LiveSimulator) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stopChan := s.stopChan
	s.mu.Unlock()

	stopChan <- true
	log.Println("🛑 라이브 시뮬레이션 중지")
}

// run - 틱 루프. 도착하거나 스텝 상한에 걸리면 결과를 내보내고 끝난다
func (s *LiveSimulator) run() {
	ticker := time.NewTicker(100 * time.Millisecond) // 10Hz 업데이트
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			if !s.step() {
				s.finish()
				return
			}
		}
	}
}

// step - 1프레임 진행 + 브로드캐스트. 계속 돌아야 하면 true
func (s *LiveSimulator) step() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return false
	}

	moving := s.sim.Step()
	if !moving || s.frame >= models.MaxSimulationSteps {
		return false
	}

	distance := s.sim.DistanceToObstacles()
	if distance < s.minDistance {
		s.minDistance = distance
	}

	state := s.sim.SafetyState()
	switch state {
	case models.StateSafe:
		s.safeFrames++
	case models.StateMildUnsafe:
		s.mildUnsafeFrames++
	case models.StateUnsafe:
		s.unsafeFrames++
	}

	obs := models.FrameObservation{
		Frame:    s.frame,
		Position: s.sim.Position(),
		Distance: models.Distance(distance),
		State:    state,
	}
	s.frame++

	LogFrame(s.runID, s.scenario.ID, s.scenario.Description, obs)

	if s.broadcastFunc != nil {
		s.broadcastFunc(models.WebSocketMessage{
			Type:      models.MessageTypeFrame,
			Data:      obs,
			Timestamp: time.Now().UnixMilli(),
		})
	}

	return true
}

// finish - 최종 결과 브로드캐스트 후 종료 상태로 전환
func (s *LiveSimulator) finish() {
	s.mu.Lock()

	result := models.TestResult{
		TestID:           s.scenario.ID,
		BarrierDistance:  s.scenario.Barrier,
		TotalFrames:      s.frame,
		SafeFrames:       s.safeFrames,
		MildUnsafeFrames: s.mildUnsafeFrames,
		UnsafeFrames:     s.unsafeFrames,
		MinDistance:      models.Distance(s.minDistance),
		Description:      s.scenario.Description,
	}
	result.Status = result.SafetyStatus().String()

	s.running = false
	s.mu.Unlock()

	log.Printf("🎉 라이브 시뮬레이션 완료 (frames=%d, status=%s)", result.TotalFrames, result.Status)

	s.broadcast(models.WebSocketMessage{
		Type:      models.MessageTypeTestResult,
		Data:      result,
		Timestamp: time.Now().UnixMilli(),
	})
}

// broadcast - nil 가드 포함 브로드캐스트
func (s *LiveSimulator) broadcast(msg models.WebSocketMessage) {
	if s.broadcastFunc != nil {
		s.broadcastFunc(msg)
	}
}

// Status - 현재 상태 반환
func (s *LiveSimulator) Status() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := map[string]interface{}{
		"running": s.running,
		"frame":   s.frame,
	}
	if s.sim != nil {
		status["position"] = s.sim.Position()
		status["reached_end"] = s.sim.HasReachedEnd()
		status["test_id"] = s.scenario.ID
	}
	return status
}
