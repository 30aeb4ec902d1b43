package handlers

import (
	"github.com/gofiber/fiber/v2"

	"barrier-backend/models"
	"barrier-backend/services"
)

// LiveSim - 라이브 시뮬레이터 (main.go에서 초기화)
var LiveSim *services.LiveSimulator

// HandleLiveStart - 라이브 시뮬레이션 시작
func HandleLiveStart(c *fiber.Ctx) error {
	if LiveSim == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"message": "라이브 시뮬레이터가 초기화되지 않았습니다",
		})
	}

	var sc models.Scenario
	if err := c.BodyParser(&sc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "잘못된 요청 형식입니다",
		})
	}

	if err := LiveSim.Start(sc); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "라이브 시뮬레이션 시작",
	})
}

// HandleLiveStop - 라이브 시뮬레이션 중지
func HandleLiveStop(c *fiber.Ctx) error {
	if LiveSim == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"message": "라이브 시뮬레이터가 초기화되지 않았습니다",
		})
	}

	LiveSim.Stop()

	return c.JSON(fiber.Map{
		"success": true,
		"message": "라이브 시뮬레이션 중지",
	})
}

// HandleLiveStatus - 라이브 시뮬레이션 상태 조회
func HandleLiveStatus(c *fiber.Ctx) error {
	if LiveSim == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"message": "라이브 시뮬레이터가 초기화되지 않았습니다",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"status":  LiveSim.Status(),
	})
}
