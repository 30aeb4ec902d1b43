package algorithms

import (
	"math"

	"barrier-backend/models"
)

// 보정 계수. 배리어를 침범한 점은 배리어의 1.1배 거리로 밀어낸다
const safeCorrectionScale = 1.1

// ClampBarrierDistance - 배리어 거리 보정. NaN/Inf이거나 0.5 미만이면 0.5
func ClampBarrierDistance(barrier float64) float64 {
	if math.IsNaN(barrier) || math.IsInf(barrier, 0) || barrier < models.MinBarrierDistance {
		return models.MinBarrierDistance
	}
	return barrier
}

// EnsureSafePoint - 점을 모든 장애물의 배리어 바깥으로 보정
//
// 장애물을 입력 순서대로 한 번씩만 훑는다. 점이 장애물의 배리어 안에 있으면
// (점 - 장애물) 방향으로 배리어 거리의 1.1배만큼 밀어낸다. 점이 장애물과
// 정확히 겹치면 방향 벡터가 영벡터라 그대로 둔다 (문서화된 한계).
//
// 뒤쪽 장애물 보정이 앞쪽 장애물의 배리어를 다시 침범할 수 있지만
// 재검증하지 않는다. 원래 동작을 그대로 유지한 근사다.
func EnsureSafePoint(p models.Point, obstacles []models.Point, barrier float64) models.Point {
	safe := p
	for _, obs := range obstacles {
		if safe.Dist(obs) >= barrier {
			continue
		}
		away := safe.Sub(obs)
		if away.Norm() == 0 {
			continue
		}
		safe = obs.Add(away.Normalize().Scale(barrier * safeCorrectionScale))
	}
	return safe
}
