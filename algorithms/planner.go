package algorithms

import (
	"barrier-backend/models"
)

const (
	// 회피점: 장애물에서 수직 방향으로 배리어의 1.5배
	avoidanceScale = 1.5
	// 접근점: 장애물에서 진행 역방향 + 수직 방향으로 배리어의 1.2배
	approachScale = 1.2
)

// PlanSafePath - 시작점에서 끝점까지 장애물을 우회하는 웨이포인트 경로 계산
//
// 장애물을 입력 순서대로 하나씩 처리한다. 각 장애물마다 접근점과 회피점을
// 만들고, 회피점은 끝점에 더 가까운 쪽 수직 방향을 고른다. 진행 방향은
// 시작→끝에서 한 번만 구하고 부분 경로에서 다시 구하지 않는다.
// 장애물이 없으면 경로는 [시작점, 끝점] 그대로다.
//
// 순수 함수: 같은 입력에는 항상 같은 경로를 돌려준다.
func PlanSafePath(start, end models.Point, obstacles []models.Point, barrier float64) []models.Point {
	barrier = ClampBarrierDistance(barrier)

	if len(obstacles) == 0 {
		return []models.Point{start, end}
	}

	path := []models.Point{start}
	current := start

	// 주 진행 방향 (시작→끝). 시작==끝이면 영벡터 그대로
	mainDir := end.Sub(start).Normalize()
	perp := mainDir.Perp()

	for _, obstacle := range obstacles {
		// 수직 방향 양쪽 후보 중 끝점에 가까운 쪽을 회피점으로
		side1 := obstacle.Add(perp.Scale(barrier * avoidanceScale))
		side2 := obstacle.Sub(perp.Scale(barrier * avoidanceScale))

		bestSide := side2
		sign := -1.0
		if end.Dist(side1) < end.Dist(side2) {
			bestSide = side1
			sign = 1.0
		}
		if side1 == side2 {
			// 시작==끝 퇴화 케이스: 양쪽 후보가 같으면 방향 부호도 없다
			sign = 0
		}

		// 접근점: 장애물 앞쪽에서 회피 방향으로 비켜선 지점
		approach := obstacle.
			Sub(mainDir.Scale(barrier * approachScale)).
			Add(perp.Scale(sign * barrier * approachScale))

		approach = EnsureSafePoint(approach, obstacles, barrier)
		if approach.Dist(current) > models.DedupThreshold {
			path = append(path, approach)
			current = approach
		}

		avoidance := EnsureSafePoint(bestSide, obstacles, barrier)
		if avoidance.Dist(current) > models.DedupThreshold {
			path = append(path, avoidance)
			current = avoidance
		}
	}

	// 최종 목적지 (필요하면 배리어 바깥으로 보정)
	final := EnsureSafePoint(end, obstacles, barrier)
	if final.Dist(current) > models.DedupThreshold {
		path = append(path, final)
	}

	return dedupPath(path)
}

// dedupPath - 인접한 근접 중복 웨이포인트 제거
func dedupPath(path []models.Point) []models.Point {
	clean := make([]models.Point, 0, len(path))
	for _, p := range path {
		if len(clean) == 0 || p.Dist(clean[len(clean)-1]) > models.DedupThreshold {
			clean = append(clean, p)
		}
	}
	return clean
}
