// Package utils 提供查看器侧的通用工具函数
package utils

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// WheelPulse 一次离散的滚动脉冲。
// Magnitude 为非负强度，Direction 为 +1（前进）或 -1（后退）。
type WheelPulse struct {
	Magnitude float64
	Direction int
}

// 触摸拖拽换算成脉冲的比例：每垂直拖动 1 像素折合的强度
const dragPulseScale = 0.05

// PulseSource 把滚轮和触摸拖拽统一成脉冲序列。
// 每帧调用一次 Poll，返回本帧产生的全部脉冲。
type PulseSource struct {
	// 触摸拖拽跟踪状态
	dragging bool
	touchID  ebiten.TouchID
	isTouch  bool
	lastY    int
}

// NewPulseSource 创建脉冲源。
func NewPulseSource() *PulseSource {
	return &PulseSource{touchID: -1}
}

// Poll 采集本帧输入并返回脉冲列表（可能为空）。
//
// 约定：滚轮向下（yoff < 0）和拖拽向上（内容上移）都是前进方向。
func (ps *PulseSource) Poll() []WheelPulse {
	var pulses []WheelPulse

	// 滚轮输入
	_, yoff := ebiten.Wheel()
	if yoff != 0 {
		direction := 1
		if yoff > 0 {
			direction = -1
		}
		pulses = append(pulses, WheelPulse{
			Magnitude: math.Abs(yoff),
			Direction: direction,
		})
	}

	// 触摸/鼠标拖拽输入
	if pulse, ok := ps.pollDrag(); ok {
		pulses = append(pulses, pulse)
	}

	return pulses
}

// pollDrag 跟踪垂直拖拽并把每帧位移换算成脉冲。
func (ps *PulseSource) pollDrag() (WheelPulse, bool) {
	if !ps.dragging {
		ps.checkDragStart()
		return WheelPulse{}, false
	}

	if ps.checkDragEnd() {
		ps.reset()
		return WheelPulse{}, false
	}

	y := ps.currentY()
	dy := y - ps.lastY
	ps.lastY = y
	if dy == 0 {
		return WheelPulse{}, false
	}

	// 拖拽向上（dy < 0）为前进
	direction := 1
	if dy > 0 {
		direction = -1
	}
	return WheelPulse{
		Magnitude: math.Abs(float64(dy)) * dragPulseScale,
		Direction: direction,
	}, true
}

// checkDragStart 检测拖拽开始（触摸优先于鼠标）
func (ps *PulseSource) checkDragStart() {
	justPressedTouchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(justPressedTouchIDs) > 0 {
		touchID := justPressedTouchIDs[0]
		_, y := ebiten.TouchPosition(touchID)
		ps.dragging = true
		ps.touchID = touchID
		ps.isTouch = true
		ps.lastY = y
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		_, y := ebiten.CursorPosition()
		ps.dragging = true
		ps.touchID = -1
		ps.isTouch = false
		ps.lastY = y
	}
}

// checkDragEnd 检测拖拽结束
func (ps *PulseSource) checkDragEnd() bool {
	if ps.isTouch {
		for _, id := range ebiten.AppendTouchIDs(nil) {
			if id == ps.touchID {
				return false // 触摸仍然活跃
			}
		}
		return true
	}

	return !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// currentY 获取当前指针的垂直坐标
func (ps *PulseSource) currentY() int {
	if ps.isTouch {
		for _, id := range ebiten.AppendTouchIDs(nil) {
			if id == ps.touchID {
				_, y := ebiten.TouchPosition(id)
				return y
			}
		}
		return ps.lastY
	}

	_, y := ebiten.CursorPosition()
	return y
}

// reset 重置拖拽跟踪状态
func (ps *PulseSource) reset() {
	ps.dragging = false
	ps.touchID = -1
	ps.isTouch = false
}
