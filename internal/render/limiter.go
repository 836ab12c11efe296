package render

import (
	"math"

	"github.com/coreman2200/proxiglow/internal/frame"
)

// Limiter keeps the estimated supply current of a frame under budget.
//
// WhiteCap bounds R+G+B of a single pixel in full-scale channels (3 means no
// cap). ChanMA is the draw of one channel at full scale (WS2812 is about 20 mA).
// Above Knee*BudgetMA the excess is compressed so the estimate approaches
// but never passes the budget. A zero budget disables the limiter.
type Limiter struct {
	WhiteCap float64
	ChanMA   float64
	BudgetMA float64
	Knee     float64
}

// EstimateMA is the frame's current draw under the linear channel model.
func (l Limiter) EstimateMA(f frame.Frame) float64 {
	chanMA := l.ChanMA
	if chanMA <= 0 {
		chanMA = 20
	}
	var total float64
	for _, c := range f {
		total += float64(int(c.R)+int(c.G)+int(c.B)) / 255 * chanMA
	}
	return total
}

// Apply caps each pixel, then scales f in place to the budget and returns
// the global factor used.
func (l Limiter) Apply(f frame.Frame) float64 {
	if l.WhiteCap > 0 && l.WhiteCap < 3 {
		capSum := l.WhiteCap * 255
		for i, c := range f {
			if sum := float64(int(c.R) + int(c.G) + int(c.B)); sum > capSum {
				f[i] = c.Scale(capSum / sum)
			}
		}
	}
	if l.BudgetMA <= 0 {
		return 1
	}
	knee := l.Knee
	if knee <= 0 || knee >= 1 {
		knee = 0.9
	}
	total := l.EstimateMA(f)
	if total <= 0 {
		return 1
	}
	kneeMA := knee * l.BudgetMA
	if total <= kneeMA {
		return 1
	}
	// compress the excess above the knee so the output approaches the budget
	headroom := l.BudgetMA - kneeMA
	out := kneeMA + headroom*(1-math.Exp(-(total-kneeMA)/headroom))
	s := out / total
	if s >= 1 {
		return 1
	}
	for i, c := range f {
		f[i] = c.Scale(s)
	}
	return s
}
