// Package timeline 实现滚动驱动的时间线序列器核心。
//
// 核心与渲染引擎完全解耦：输入是归一化的滚动进度与帧间隔，
// 输出是每帧的参数快照（相机位姿、分区状态、速度估计等），
// 由外部的展示层消费。所有可变状态只在 Tick 内部变化。
package timeline

import "math"

// Damp 帧率无关的指数阻尼。
// 返回 current 向 target 逼近一步后的新值：
//
//	next = target + (current - target) * exp(-rate * dt)
//
// 与步长划分无关：总时长相同时，一次大步长与多次小步长的结果一致。
// 边界情况：dt <= 0 返回 current 不变；rate <= 0 直接返回 target（无平滑）。
func Damp(current, target, rate, dt float64) float64 {
	if dt <= 0 {
		return current
	}
	if rate <= 0 {
		return target
	}
	return target + (current-target)*math.Exp(-rate*dt)
}

// Clamp01 将 v 限制在 [0, 1] 范围内。
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// SmoothStep 平滑阶梯缓动 f(x) = x²(3-2x)。
// 序列器内部所有插值只使用这一条曲线。
func SmoothStep(x float64) float64 {
	x = Clamp01(x)
	return x * x * (3 - 2*x)
}
