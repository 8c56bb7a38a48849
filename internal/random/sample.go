package random

import "errors"

// ErrEmptyPool indicates a draw was attempted over zero items. Upstream
// filtering should make this unreachable; it is a programmer error.
var ErrEmptyPool = errors.New("random: empty pool")

// Choose draws one item using the generator's next value and the parallel
// weights slice. The draw lands on the first item whose cumulative weight
// exceeds r = Next() * total. An all-zero weight slice falls back to a
// uniform pick over items, consuming the same single draw, so pools with
// unknown popularity still select deterministically.
func Choose[T any](g *Generator, items []T, weights []float64) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrEmptyPool
	}

	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return items[g.IntN(0, len(items))], nil
	}

	r := g.Next() * total
	var cum float64
	for i, w := range weights {
		cum += w
		if r < cum {
			return items[i], nil
		}
	}
	// r can only reach the end of the last band through float rounding.
	return items[len(items)-1], nil
}
