package progress

import (
	"math"
	"sort"
)

// rateWindow keeps the most recent N rate samples in a ring buffer and
// answers interpolated quantile queries over them.
type rateWindow struct {
	buf   []float64
	next  int
	count int
}

func newRateWindow(size int) *rateWindow {
	if size < 1 {
		size = 1
	}
	return &rateWindow{buf: make([]float64, size)}
}

func (w *rateWindow) Add(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	w.buf[w.next] = v
	w.next = (w.next + 1) % len(w.buf)
	if w.count < len(w.buf) {
		w.count++
	}
}

// Quantile returns the q-quantile of the retained samples with linear
// interpolation between the two nearest order statistics.
func (w *rateWindow) Quantile(q float64) float64 {
	if w.count == 0 {
		return 0
	}
	sorted := make([]float64, w.count)
	copy(sorted, w.buf[:w.count])
	sort.Float64s(sorted)

	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[lo+1]*frac
}
