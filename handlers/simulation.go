package handlers

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"barrier-backend/algorithms"
	"barrier-backend/models"
	"barrier-backend/services"
)

// BatchWorkers - 배치 실행 워커 수
const BatchWorkers = 4

type PlanRequest struct {
	Start     models.Point   `json:"start"`
	End       models.Point   `json:"end"`
	Obstacles []models.Point `json:"obstacles"`
	Barrier   float64        `json:"barrier_distance"`
}

type PlanResponse struct {
	Success bool           `json:"success"`
	Path    []models.Point `json:"path,omitempty"`
	Message string         `json:"message,omitempty"`
}

// HandlePlanPath - 경로 계획만 수행 (시뮬레이션 없음)
func HandlePlanPath(c *fiber.Ctx) error {
	var req PlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(PlanResponse{
			Success: false,
			Message: "잘못된 요청 형식입니다",
		})
	}

	sc := models.Scenario{
		Start:     req.Start,
		End:       req.End,
		Obstacles: req.Obstacles,
		Barrier:   req.Barrier,
	}
	if err := sc.Normalize(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(PlanResponse{
			Success: false,
			Message: err.Error(),
		})
	}

	path := algorithms.PlanSafePath(sc.Start, sc.End, sc.Obstacles, sc.Barrier)

	log.Printf("📍 경로 계획: (%.1f, %.1f) → (%.1f, %.1f), 장애물 %d개, 웨이포인트 %d개",
		sc.Start.X, sc.Start.Y, sc.End.X, sc.End.Y, len(sc.Obstacles), len(path))

	return c.JSON(PlanResponse{
		Success: true,
		Path:    path,
	})
}

type SimulateRequest struct {
	Scenario      models.Scenario `json:"scenario"`
	IncludeFrames bool            `json:"include_frames"`
}

// HandleSimulate - 시나리오 1개 헤드리스 실행
func HandleSimulate(c *fiber.Ctx) error {
	var req SimulateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "잘못된 요청 형식입니다",
		})
	}

	sc := req.Scenario
	if err := sc.Normalize(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	var frames []models.FrameObservation
	var observer services.FrameObserver
	if req.IncludeFrames {
		observer = func(obs models.FrameObservation) {
			frames = append(frames, obs)
		}
	}

	result := services.RunScenario(sc, observer)

	resp := fiber.Map{
		"success": true,
		"result":  result,
	}
	if req.IncludeFrames {
		resp["frames"] = frames
	}
	return c.JSON(resp)
}

type BatchRequest struct {
	Scenarios []models.Scenario `json:"scenarios"`
}

// HandleBatch - 시나리오 배치 실행 + 집계 리포트
func HandleBatch(c *fiber.Ctx) error {
	var req BatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "잘못된 요청 형식입니다",
		})
	}

	normalized := make([]models.Scenario, 0, len(req.Scenarios))
	var rowErrors []string
	for i, sc := range req.Scenarios {
		if err := sc.Normalize(); err != nil {
			// 깨진 시나리오만 건너뛰고 배치는 계속한다
			rowErrors = append(rowErrors, err.Error())
			log.Printf("⚠️ 시나리오[%d] 제외: %v", i, err)
			continue
		}
		normalized = append(normalized, sc)
	}

	return runBatch(c, normalized, rowErrors)
}

// HandleBatchCSV - CSV 본문으로 배치 실행
func HandleBatchCSV(c *fiber.Ctx) error {
	scenarios, rowErrs := services.LoadScenariosCSV(strings.NewReader(string(c.Body())))

	var rowErrors []string
	for _, re := range rowErrs {
		rowErrors = append(rowErrors, re.Error())
	}

	return runBatch(c, scenarios, rowErrors)
}

// runBatch - 배치 실행 공통 처리: 실행, 집계, 저장, 브로드캐스트
func runBatch(c *fiber.Ctx, scenarios []models.Scenario, rowErrors []string) error {
	runner := services.NewBatchRunner(BatchWorkers)
	results := runner.Run(scenarios)
	report := services.Aggregate(results)

	// 프레임 로그는 양이 많아 배치에서는 결과만 저장한다
	if services.GetDB() != nil {
		if err := services.SaveTestResults(report.RunID, results); err != nil {
			log.Printf("❌ 결과 저장 실패: %v", err)
		}
	}

	Manager.BroadcastMessage(models.WebSocketMessage{
		Type:      models.MessageTypeBatchComplete,
		Data:      report,
		Timestamp: time.Now().UnixMilli(),
	})

	log.Printf("🧪 배치 완료: 테스트 %d개, 제외 %d개 (run=%s)",
		len(results), len(rowErrors), report.RunID)

	return c.JSON(fiber.Map{
		"success":    true,
		"report":     report,
		"results":    results,
		"row_errors": rowErrors,
	})
}

// HandleScenarioSet - 내장 시나리오 세트 반환
func HandleScenarioSet(c *fiber.Ctx) error {
	var set services.ScenarioSet

	switch c.Params("name") {
	case "sample":
		set = services.SampleScenarios()
	case "comprehensive":
		set = services.ComprehensiveScenarios()
	case "advanced":
		set = services.AdvancedScenarios()
	default:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "알 수 없는 시나리오 세트입니다 (sample | comprehensive | advanced)",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"set":     set,
		"count":   len(set.Scenarios),
	})
}
