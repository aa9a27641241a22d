package clickmap

import "sort"

// Metric - способ измерения расстояния между submitted и reference точками
type Metric string

const (
	// MetricEuclidean - евклидово расстояние (по умолчанию)
	MetricEuclidean Metric = "euclidean"
	// MetricChebyshev - покоординатное расстояние (max по осям)
	MetricChebyshev Metric = "chebyshev"
)

// Valid проверяет, что метрика известна
func (m Metric) Valid() bool {
	return m == MetricEuclidean || m == MetricChebyshev
}

// candidate - допустимая пара (submitted, reference) с ее расстоянием
type candidate struct {
	dist int64
	sub  int
	ref  int
}

// Matches решает, воспроизводит ли submitted сохраненный reference click-map.
//
// Правила:
//   - несовпадение размеров - немедленный отказ, точки не сравниваются;
//   - наборы сравниваются как неупорядоченные мультимножества: каждая
//     submitted точка может закрыть любую reference точку в пределах
//     tolerance пикселей;
//   - консумация инъективна: одна reference точка закрывается максимум
//     одной submitted точкой, поэтому дубликат в submitted не может
//     закрыть два слота;
//   - true только при полном назначении (все reference точки закрыты).
//
// Назначение жадное по возрастанию расстояния. Наборы единичного размера
// (N <= MaxPoints), так что O(N^2 log N) здесь ни о чем.
// tolerance = 0 - валидный частный случай точного совпадения.
func Matches(submitted, reference []Point, tolerance int, metric Metric) bool {
	if len(submitted) != len(reference) {
		return false
	}
	if len(reference) == 0 || tolerance < 0 {
		return false
	}

	// Собираем все пары в пределах tolerance
	candidates := make([]candidate, 0, len(submitted)*len(reference))
	for i, s := range submitted {
		for j, r := range reference {
			d, ok := within(s, r, tolerance, metric)
			if ok {
				candidates = append(candidates, candidate{dist: d, sub: i, ref: j})
			}
		}
	}

	sort.Slice(candidates, func(a, b int) bool {
		return candidates[a].dist < candidates[b].dist
	})

	// Жадно закрываем ближайшие свободные пары
	subUsed := make([]bool, len(submitted))
	refUsed := make([]bool, len(reference))
	matched := 0

	for _, c := range candidates {
		if subUsed[c.sub] || refUsed[c.ref] {
			continue
		}
		subUsed[c.sub] = true
		refUsed[c.ref] = true
		matched++
		if matched == len(reference) {
			return true
		}
	}

	return false
}

// within возвращает расстояние между точками и признак попадания в tolerance.
// Для евклидовой метрики сравниваются квадраты - никакой плавающей точки.
func within(a, b Point, tolerance int, metric Metric) (int64, bool) {
	dx := int64(a.X - b.X)
	dy := int64(a.Y - b.Y)
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	switch metric {
	case MetricChebyshev:
		d := dx
		if dy > d {
			d = dy
		}
		return d, d <= int64(tolerance)
	default:
		// Евклид по умолчанию
		d2 := dx*dx + dy*dy
		t := int64(tolerance)
		return d2, d2 <= t*t
	}
}
