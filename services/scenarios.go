package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"barrier-backend/models"
)

// 시나리오 CSV 컬럼 (원본 테스트 설정 파일 형식)
// test_id, start_x, start_y, end_x, end_y, obstacle_x, obstacle_y,
// barrier_distance, speed, description

// RowError - 시나리오 행 파싱 에러. 해당 행만 건너뛰고 배치는 계속된다
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("행 %d: %v", e.Row, e.Err)
}

// LoadScenariosCSV - CSV에서 시나리오 목록 로드
//
// 숫자 필드가 깨진 행은 RowError로 모아서 돌려주고 나머지 행은 계속 읽는다.
// speed가 비어 있으면 0.02, description이 비어 있으면 대체 라벨을 쓴다.
func LoadScenariosCSV(r io.Reader) ([]models.Scenario, []RowError) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, []RowError{{Row: 0, Err: fmt.Errorf("헤더를 읽을 수 없습니다: %w", err)}}
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	var scenarios []models.Scenario
	var rowErrors []RowError

	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrors = append(rowErrors, RowError{Row: row, Err: err})
			continue
		}

		sc, err := parseScenarioRow(col, record)
		if err != nil {
			rowErrors = append(rowErrors, RowError{Row: row, Err: err})
			continue
		}
		scenarios = append(scenarios, sc)
	}

	return scenarios, rowErrors
}

// parseScenarioRow - CSV 행 1개를 시나리오로 변환
func parseScenarioRow(col map[string]int, record []string) (models.Scenario, error) {
	field := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	num := func(name string) (float64, error) {
		raw := field(name)
		if raw == "" {
			return 0, fmt.Errorf("필수 필드 %q가 비어 있습니다", name)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, fmt.Errorf("필드 %q가 숫자가 아닙니다: %q", name, raw)
		}
		return v, nil
	}

	var sc models.Scenario
	var err error

	if raw := field("test_id"); raw != "" {
		if sc.ID, err = strconv.Atoi(raw); err != nil {
			return sc, fmt.Errorf("test_id가 정수가 아닙니다: %q", raw)
		}
	}

	if sc.Start.X, err = num("start_x"); err != nil {
		return sc, err
	}
	if sc.Start.Y, err = num("start_y"); err != nil {
		return sc, err
	}
	if sc.End.X, err = num("end_x"); err != nil {
		return sc, err
	}
	if sc.End.Y, err = num("end_y"); err != nil {
		return sc, err
	}

	var obs models.Point
	if obs.X, err = num("obstacle_x"); err != nil {
		return sc, err
	}
	if obs.Y, err = num("obstacle_y"); err != nil {
		return sc, err
	}
	sc.Obstacles = []models.Point{obs}

	if sc.Barrier, err = num("barrier_distance"); err != nil {
		return sc, err
	}

	// speed는 선택 필드: 비어 있으면 Normalize가 기본값 0.02를 채운다
	if raw := field("speed"); raw != "" {
		if sc.Speed, err = strconv.ParseFloat(raw, 64); err != nil {
			return sc, fmt.Errorf("speed가 숫자가 아닙니다: %q", raw)
		}
	}

	sc.Description = field("description")

	if err := sc.Normalize(); err != nil {
		return sc, err
	}

	return sc, nil
}
