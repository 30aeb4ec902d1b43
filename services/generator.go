package services

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"barrier-backend/models"
)

// ScenarioSet is a named collection of test scenarios
type ScenarioSet struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Scenarios []models.Scenario `json:"scenarios"`
}

// obstacleConfig pairs a group label with its obstacle layout
type obstacleConfig struct {
	name      string
	obstacles []models.Point
}

// SampleScenarios returns the small demonstration set: one obstacle,
// five barrier distances
func SampleScenarios() ScenarioSet {
	set := ScenarioSet{ID: uuid.New().String(), Name: "sample"}

	barriers := []float64{1.0, 1.5, 2.0, 2.5, 3.0}
	for i, barrier := range barriers {
		set.Scenarios = append(set.Scenarios, models.Scenario{
			ID:          i + 1,
			Start:       models.Point{X: 0, Y: 0},
			End:         models.Point{X: 10, Y: 8},
			Obstacles:   []models.Point{{X: 5, Y: 4}},
			Barrier:     barrier,
			Speed:       models.DefaultSpeed,
			Description: "Single obstacle at (5,4)",
		})
	}

	return set
}

// ComprehensiveScenarios returns the large sweep over obstacle layouts and
// the critical barrier distance range
func ComprehensiveScenarios() ScenarioSet {
	configs := []obstacleConfig{
		{"1_obstacle_after_10", []models.Point{{X: 15, Y: 15}}},
		{"2_obstacles_after_10", []models.Point{{X: 12, Y: 12}, {X: 17, Y: 17}}},
		{"3_obstacles_after_10", []models.Point{{X: 11, Y: 11}, {X: 15, Y: 15}, {X: 18, Y: 18}}},
		{"clustered_obstacles_after_10", []models.Point{{X: 13, Y: 13}, {X: 14, Y: 14}, {X: 15, Y: 15}}},
		{"diagonal_obstacles_after_10", []models.Point{{X: 12, Y: 8}, {X: 15, Y: 15}, {X: 18, Y: 12}}},
		{"dense_obstacles_after_10", []models.Point{{X: 11, Y: 11}, {X: 12, Y: 12}, {X: 13, Y: 13}, {X: 14, Y: 14}, {X: 15, Y: 15}}},
		{"scattered_obstacles_after_10", []models.Point{{X: 11, Y: 9}, {X: 13, Y: 16}, {X: 15, Y: 11}, {X: 17, Y: 18}, {X: 19, Y: 13}}},
		{"narrow_path_obstacles", []models.Point{{X: 12, Y: 10}, {X: 12, Y: 14}, {X: 16, Y: 10}, {X: 16, Y: 14}}},
	}
	barriers := []float64{0.5, 1.0, 1.5, 2.0, 2.5, 3.0, 3.5, 4.0}

	return buildSweep("comprehensive", configs, barriers)
}

// AdvancedScenarios returns layouts with specific obstacle patterns over the
// critical barrier distances
func AdvancedScenarios() ScenarioSet {
	configs := []obstacleConfig{
		{"single_center_obstacle", []models.Point{{X: 15, Y: 15}}},
		{"double_symmetric_obstacles", []models.Point{{X: 12, Y: 12}, {X: 17, Y: 17}}},
		{"triangular_obstacles", []models.Point{{X: 11, Y: 11}, {X: 15, Y: 15}, {X: 18, Y: 18}}},
		{"wall_of_obstacles", []models.Point{{X: 13, Y: 10}, {X: 13, Y: 12}, {X: 13, Y: 14}, {X: 13, Y: 16}, {X: 13, Y: 18}}},
		{"checkerboard_obstacles", []models.Point{{X: 12, Y: 12}, {X: 12, Y: 16}, {X: 16, Y: 12}, {X: 16, Y: 16}}},
	}
	barriers := []float64{0.5, 1.0, 1.5, 2.0, 2.5, 3.0}

	return buildSweep("advanced", configs, barriers)
}

// buildSweep generates one scenario per (config, barrier, obstacle) triple,
// matching the original test file layout: each obstacle of a layout becomes
// its own single-obstacle scenario under the layout's label
func buildSweep(name string, configs []obstacleConfig, barriers []float64) ScenarioSet {
	set := ScenarioSet{ID: uuid.New().String(), Name: name}

	start := models.Point{X: 0, Y: 0}
	end := models.Point{X: 20, Y: 20}

	testID := 1
	for _, config := range configs {
		for _, barrier := range barriers {
			for _, obstacle := range config.obstacles {
				set.Scenarios = append(set.Scenarios, models.Scenario{
					ID:          testID,
					Start:       start,
					End:         end,
					Obstacles:   []models.Point{obstacle},
					Barrier:     barrier,
					Speed:       models.DefaultSpeed,
					Description: config.name,
				})
				testID++
			}
		}
	}

	return set
}

// CustomScenarios generates a sweep over a caller-supplied barrier range
func CustomScenarios(start, end models.Point, obstacles []models.Point, speed, minBarrier, maxBarrier, step float64) (ScenarioSet, error) {
	if step <= 0 || math.IsNaN(step) {
		return ScenarioSet{}, fmt.Errorf("step은 양수여야 합니다: %v", step)
	}
	if maxBarrier < minBarrier {
		return ScenarioSet{}, fmt.Errorf("배리어 범위가 잘못되었습니다: [%v, %v]", minBarrier, maxBarrier)
	}

	set := ScenarioSet{ID: uuid.New().String(), Name: "custom"}

	testID := 1
	for barrier := minBarrier; barrier <= maxBarrier+1e-9; barrier += step {
		rounded := math.Round(barrier*100) / 100
		for _, obstacle := range obstacles {
			set.Scenarios = append(set.Scenarios, models.Scenario{
				ID:          testID,
				Start:       start,
				End:         end,
				Obstacles:   []models.Point{obstacle},
				Barrier:     rounded,
				Speed:       speed,
				Description: fmt.Sprintf("Custom_test_%d", testID),
			})
			testID++
		}
	}

	return set, nil
}
