package main

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"

	"barrier-backend/handlers"
	"barrier-backend/services"
)

func main() {
	// .env 파일 로드
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env 파일을 찾을 수 없습니다.")
	}

	// MySQL 연결 (없어도 시뮬레이션 자체는 동작, 결과 영속화만 비활성)
	if err := services.InitDatabase(); err != nil {
		log.Printf("⚠️  DB 초기화 실패 (결과 저장 비활성): %v", err)
	}

	// 로깅 시스템 초기화
	// flushSize: 200 (프레임 로그 200개마다 일괄 저장)
	// flushInterval: 10초 (매 10초마다 자동 저장)
	services.InitLogging(200, 10*time.Second)
	defer services.StopLogging() // 종료 시 남은 로그 저장

	// 라이브 시뮬레이터 초기화 (웹소켓 브로드캐스트 연결)
	handlers.LiveSim = services.NewLiveSimulator(handlers.Manager.BroadcastMessage)

	app := fiber.New()

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:5173, http://localhost:3000",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	go handlers.Manager.Start()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("배리어 시뮬레이션 서버가 실행 중입니다.")
	})

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "OK",
			"clients": handlers.Manager.GetClientCount(),
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	// 경로 계획 / 시뮬레이션
	api.Post("/plan", handlers.HandlePlanPath)
	api.Post("/simulate", handlers.HandleSimulate)
	api.Post("/batch", handlers.HandleBatch)
	api.Post("/batch/csv", handlers.HandleBatchCSV)

	// 내장 시나리오 세트
	api.Get("/scenarios/:name", handlers.HandleScenarioSet)

	// 라이브 실행 제어
	api.Post("/live/start", handlers.HandleLiveStart)
	api.Post("/live/stop", handlers.HandleLiveStop)
	api.Get("/live/status", handlers.HandleLiveStatus)

	// 저장된 결과 조회 API
	resultsAPI := api.Group("/results")
	resultsAPI.Get("/recent", handlers.HandleGetRecentResults)    // 최근 결과
	resultsAPI.Get("/by-label", handlers.HandleGetResultsByLabel) // 라벨별
	resultsAPI.Get("/stats", handlers.HandleGetResultStats)       // 통계

	// WebSocket
	app.Use("/websocket", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/websocket/viewer", websocket.New(handlers.HandleViewerWebSocket))

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 서버 시작: http://localhost:%s", port)
	log.Printf("📡 WebSocket: ws://localhost:%s/websocket/viewer", port)
	log.Printf("🧪 배치 실행: POST http://localhost:%s/api/batch", port)
	log.Fatal(app.Listen(":" + port))
}
