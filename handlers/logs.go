package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"barrier-backend/services"
)

// dbUnavailable - DB 미연결 공통 응답
func dbUnavailable(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": "DB가 초기화되지 않았습니다",
	})
}

// HandleGetRecentResults - 최근 테스트 결과 조회
func HandleGetRecentResults(c *fiber.Ctx) error {
	if services.GetDB() == nil {
		return dbUnavailable(c)
	}

	limitStr := c.Query("limit", "100")

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 100
	}

	records, err := services.GetRecentResults(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch results",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(records),
		"results": records,
	})
}

// HandleGetResultsByLabel - 라벨별 테스트 결과 조회
func HandleGetResultsByLabel(c *fiber.Ctx) error {
	if services.GetDB() == nil {
		return dbUnavailable(c)
	}

	label := c.Query("label")
	limitStr := c.Query("limit", "100")

	if label == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "label parameter is required",
		})
	}

	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 {
		limit = 100
	}

	records, err := services.GetResultsByLabel(label, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch results",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(records),
		"label":   label,
		"results": records,
	})
}

// HandleGetResultStats - 저장된 결과 통계 조회
func HandleGetResultStats(c *fiber.Ctx) error {
	if services.GetDB() == nil {
		return dbUnavailable(c)
	}

	hoursStr := c.Query("hours", "24")

	hours, err := strconv.Atoi(hoursStr)
	if err != nil || hours <= 0 {
		hours = 24
	}

	stats, err := services.GetResultStats(hours)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch stats",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stats":   stats,
	})
}
