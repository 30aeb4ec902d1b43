package services

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"barrier-backend/models"
)

// 로깅 버퍼 (비동기 일괄 처리)
type LogBuffer struct {
	logs      []models.SimulationLog
	mu        sync.Mutex
	flushSize int           // 일괄 저장 크기
	flushTime time.Duration // 자동 플러시 시간
	stopChan  chan bool
}

var logBuffer *LogBuffer

// InitLogging - 로깅 시스템 초기화
func InitLogging(flushSize int, flushInterval time.Duration) {
	logBuffer = &LogBuffer{
		logs:      make([]models.SimulationLog, 0, flushSize*2),
		flushSize: flushSize,
		flushTime: flushInterval,
		stopChan:  make(chan bool),
	}

	go logBuffer.autoFlush()

	log.Printf("✅ 로깅 시스템 초기화 완료 (flushSize: %d, flushInterval: %v)", flushSize, flushInterval)
}

// autoFlush - 주기적 로그 저장
func (lb *LogBuffer) autoFlush() {
	ticker := time.NewTicker(lb.flushTime)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			lb.Flush()
		case <-lb.stopChan:
			lb.Flush() // 종료 시 남은 로그 저장
			return
		}
	}
}

// AddLog - 로그 버퍼에 추가 (비동기)
func AddLog(logEntry models.SimulationLog) {
	if logBuffer == nil {
		return
	}

	logBuffer.mu.Lock()
	logBuffer.logs = append(logBuffer.logs, logEntry)
	size := len(logBuffer.logs)
	logBuffer.mu.Unlock()

	// 버퍼 크기가 차면 즉시 플러시
	if size >= logBuffer.flushSize {
		go logBuffer.Flush()
	}
}

// Flush - 버퍼의 모든 로그를 DB에 저장
func (lb *LogBuffer) Flush() {
	lb.mu.Lock()
	if len(lb.logs) == 0 {
		lb.mu.Unlock()
		return
	}

	logsToSave := make([]models.SimulationLog, len(lb.logs))
	copy(logsToSave, lb.logs)
	lb.logs = lb.logs[:0]
	lb.mu.Unlock()

	if db != nil {
		err := db.CreateInBatches(logsToSave, 100).Error
		if err != nil {
			log.Printf("❌ 로그 저장 실패: %v", err)
		}
	}
}

// StopLogging - 로깅 시스템 종료 (남은 로그 저장)
func StopLogging() {
	if logBuffer != nil {
		logBuffer.stopChan <- true
		log.Println("🛑 로깅 시스템 종료")
	}
}

// finiteOrNil - +Inf(장애물 없음)는 DB에 NULL로 저장
func finiteOrNil(d float64) *float64 {
	if math.IsInf(d, 0) || math.IsNaN(d) {
		return nil
	}
	return &d
}

// LogFrame - 프레임 관측값 로그
func LogFrame(runID string, testID int, label string, obs models.FrameObservation) {
	AddLog(models.SimulationLog{
		CreatedAt:   time.Now(),
		RunID:       runID,
		TestID:      testID,
		Frame:       obs.Frame,
		PositionX:   obs.Position.X,
		PositionY:   obs.Position.Y,
		Distance:    finiteOrNil(float64(obs.Distance)),
		SafetyState: obs.State.String(),
		Label:       label,
	})
}

// SaveTestResults - 배치 결과 일괄 저장
func SaveTestResults(runID string, results []models.TestResult) error {
	if db == nil {
		return fmt.Errorf("DB가 초기화되지 않았습니다")
	}
	if len(results) == 0 {
		return nil
	}

	records := make([]models.TestRecord, 0, len(results))
	for _, r := range results {
		records = append(records, models.TestRecord{
			CreatedAt:        time.Now(),
			RunID:            runID,
			TestID:           r.TestID,
			Label:            r.Description,
			BarrierDistance:  r.BarrierDistance,
			TotalFrames:      r.TotalFrames,
			SafeFrames:       r.SafeFrames,
			MildUnsafeFrames: r.MildUnsafeFrames,
			UnsafeFrames:     r.UnsafeFrames,
			MinDistance:      finiteOrNil(float64(r.MinDistance)),
			Status:           r.SafetyStatus().String(),
		})
	}

	if err := db.CreateInBatches(records, 100).Error; err != nil {
		return fmt.Errorf("결과 저장 실패: %v", err)
	}
	log.Printf("💾 테스트 결과 %d개 저장 완료 (run=%s)", len(records), runID)
	return nil
}

// GetRecentResults - 최근 테스트 결과 조회
func GetRecentResults(limit int) ([]models.TestRecord, error) {
	var records []models.TestRecord
	err := db.Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// GetResultsByLabel - 라벨별 테스트 결과 조회
func GetResultsByLabel(label string, limit int) ([]models.TestRecord, error) {
	var records []models.TestRecord
	err := db.Where("label = ?", label).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// GetResultStats - 저장된 결과 통계
func GetResultStats(hours int) (map[string]interface{}, error) {
	since := time.Now().Add(-time.Duration(hours) * time.Hour)

	var totalRecords int64
	db.Model(&models.TestRecord{}).
		Where("created_at >= ?", since).
		Count(&totalRecords)

	// 판정별 카운트
	var statusCounts []struct {
		Status string
		Count  int64
	}
	db.Model(&models.TestRecord{}).
		Select("status, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("status").
		Scan(&statusCounts)

	statusMap := make(map[string]int64)
	for _, sc := range statusCounts {
		statusMap[sc.Status] = sc.Count
	}

	return map[string]interface{}{
		"total_results": totalRecords,
		"status_counts": statusMap,
		"time_range":    fmt.Sprintf("Last %d hours", hours),
	}, nil
}
