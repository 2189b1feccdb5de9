package timeline

import "math"

// DefaultEdgeBand 分区淡入淡出边带的默认宽度（进度单位）。
const DefaultEdgeBand = 0.025

// PhaseWindow 叙事分区的可见窗口配置。
// Checkpoints 是分区内部的子检查点阈值（如逐行文字显示），
// 以分区局部进度 (p-Enter)/(Exit-Enter) 计。
type PhaseWindow struct {
	Label       string
	Enter       float64
	Exit        float64
	Checkpoints []float64
}

// PhaseState 分区在当前进度下的派生状态，每帧重算，从不持久化。
type PhaseState struct {
	Label             string
	Opacity           float64
	ActiveCheckpoints int
}

// Gate 把连续进度转换为分区透明度与离散检查点计数。
// 记录上一帧的检查点计数，保证跨越阈值只上报一次，
// 不逐帧重发相同的值。
type Gate struct {
	window    PhaseWindow
	band      float64
	lastCount int
}

// NewGate 创建分区门控。band <= 0 时使用 DefaultEdgeBand。
func NewGate(window PhaseWindow, band float64) *Gate {
	if band <= 0 {
		band = DefaultEdgeBand
	}
	return &Gate{window: window, band: band}
}

// Window 返回该门控的窗口配置。
func (g *Gate) Window() PhaseWindow {
	return g.window
}

// Update 计算当前进度下的分区状态。
// 透明度在 Enter 处的边带内从 0 线性升到 1，内部保持 1，
// 在 Exit 前的边带内降回 0；窗口之外恒为 0。
// changed 仅在检查点计数与上一帧不同的那一帧为 true。
func (g *Gate) Update(p float64) (state PhaseState, changed bool) {
	w := g.window

	rise := Clamp01((p - w.Enter) / g.band)
	fall := Clamp01((w.Exit - p) / g.band)
	opacity := math.Min(rise, fall)

	count := 0
	if span := w.Exit - w.Enter; span > 0 {
		local := (p - w.Enter) / span
		for _, cp := range w.Checkpoints {
			if local >= cp {
				count++
			}
		}
	}

	changed = count != g.lastCount
	g.lastCount = count

	return PhaseState{
		Label:             w.Label,
		Opacity:           opacity,
		ActiveCheckpoints: count,
	}, changed
}
