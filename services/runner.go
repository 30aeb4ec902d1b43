package services

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"barrier-backend/models"
)

// FrameObserver - 프레임 관측 콜백. 로깅/스트리밍 협력자가 구독한다
type FrameObserver func(obs models.FrameObservation)

// RunScenario - 시나리오 1개를 끝까지(또는 스텝 상한까지) 실행
//
// 프레임마다 안전 상태를 세고 최소 거리를 추적한다. observer가 nil이 아니면
// 매 프레임 관측값을 넘긴다. 프레임 카운터 합은 항상 TotalFrames와 같다.
func RunScenario(sc models.Scenario, observer FrameObserver) models.TestResult {
	sim := NewHeadlessSimulator(sc)

	var safeFrames, mildUnsafeFrames, unsafeFrames int
	minDistance := math.Inf(1)
	frameCount := 0

	for sim.Step() && frameCount < models.MaxSimulationSteps {
		distance := sim.DistanceToObstacles()
		if distance < minDistance {
			minDistance = distance
		}

		state := sim.SafetyState()
		switch state {
		case models.StateSafe:
			safeFrames++
		case models.StateMildUnsafe:
			mildUnsafeFrames++
		case models.StateUnsafe:
			unsafeFrames++
		}

		if observer != nil {
			observer(models.FrameObservation{
				Frame:    frameCount,
				Position: sim.Position(),
				Distance: models.Distance(distance),
				State:    state,
			})
		}

		frameCount++
	}

	result := models.TestResult{
		TestID:           sc.ID,
		BarrierDistance:  sc.Barrier,
		TotalFrames:      frameCount,
		SafeFrames:       safeFrames,
		MildUnsafeFrames: mildUnsafeFrames,
		UnsafeFrames:     unsafeFrames,
		MinDistance:      models.Distance(minDistance),
		Description:      sc.Description,
	}
	result.Status = result.SafetyStatus().String()
	return result
}

// BatchRunner - 시나리오 배치 실행기
type BatchRunner struct {
	Workers  int           // 동시 실행 워커 수 (1이면 순차 실행)
	Observer FrameObserver // 모든 시나리오에 공유되는 관측 콜백 (동시 호출 가능해야 함)
}

// NewBatchRunner - 배치 실행기 생성
func NewBatchRunner(workers int) *BatchRunner {
	if workers < 1 {
		workers = 1
	}
	return &BatchRunner{Workers: workers}
}

// Run - 배치 실행. 결과는 시나리오 입력 순서 그대로 돌아온다
//
// 시나리오 실행끼리는 공유 상태가 없어서 워커로 나눠 돌려도 안전하다.
// 결과 슬라이스는 인덱스로만 쓰기 때문에 입력 순서가 보존되고, 이후
// 집계의 "먼저 온 쪽이 이긴다" 동률 처리도 그대로 성립한다.
func (b *BatchRunner) Run(scenarios []models.Scenario) []models.TestResult {
	results := make([]models.TestResult, len(scenarios))

	if b.Workers <= 1 {
		for i, sc := range scenarios {
			results[i] = RunScenario(sc, b.Observer)
		}
		return results
	}

	jobs := make(chan int, len(scenarios))
	var wg sync.WaitGroup

	for w := 0; w < b.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = RunScenario(scenarios[i], b.Observer)
			}
		}()
	}

	for i := range scenarios {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// Aggregate - 테스트 결과를 라벨별로 묶어 집계 리포트 생성
//
// 그룹은 처음 등장한 순서를 유지한다. 그룹별 최적 배리어 거리는 SAFE 판정
// 테스트 중 최소 배리어 거리이고, SAFE가 없으면 UNSAFE 프레임이 가장 적은
// 테스트로 대신한다. 동률 비교는 부동소수점 등호 대신 엄격한 미만 비교만
// 쓰므로 먼저 온 쪽이 이긴다. 결과가 없으면 빈 리포트를 돌려준다.
func Aggregate(results []models.TestResult) models.AggregateReport {
	report := models.AggregateReport{
		RunID:      uuid.New().String(),
		CreatedAt:  time.Now(),
		TotalTests: len(results),
	}

	if len(results) == 0 {
		return report
	}

	grouped := make(map[string][]models.TestResult)
	var order []string
	for _, r := range results {
		if _, seen := grouped[r.Description]; !seen {
			order = append(order, r.Description)
		}
		grouped[r.Description] = append(grouped[r.Description], r)
	}

	for _, label := range order {
		report.Groups = append(report.Groups, summarizeGroup(label, grouped[label]))
	}
	report.Overall = summarizeGroup("overall", results)

	return report
}

// summarizeGroup - 그룹 1개의 통계 계산
func summarizeGroup(label string, results []models.TestResult) models.GroupSummary {
	summary := models.GroupSummary{
		Description: label,
		TotalTests:  len(results),
	}

	for _, r := range results {
		switch r.SafetyStatus() {
		case models.StateSafe:
			summary.SafeCount++
		case models.StateMildUnsafe:
			summary.MildUnsafeCount++
		case models.StateUnsafe:
			summary.UnsafeCount++
		}
	}

	total := float64(len(results))
	summary.SafePercent = float64(summary.SafeCount) / total * 100
	summary.MildUnsafePercent = float64(summary.MildUnsafeCount) / total * 100
	summary.UnsafePercent = float64(summary.UnsafeCount) / total * 100

	if summary.SafeCount > 0 {
		var optimal float64
		found := false
		for _, r := range results {
			if r.SafetyStatus() != models.StateSafe {
				continue
			}
			if !found || r.BarrierDistance < optimal {
				optimal = r.BarrierDistance
				found = true
			}
		}
		summary.OptimalBarrier = &optimal
	} else {
		best := results[0]
		for _, r := range results[1:] {
			if r.UnsafeFrames < best.UnsafeFrames {
				best = r
			}
		}
		barrier := best.BarrierDistance
		summary.FallbackBarrier = &barrier
		summary.FallbackUnsafeFrames = best.UnsafeFrames
	}

	return summary
}
