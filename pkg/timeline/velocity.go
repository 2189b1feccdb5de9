package timeline

import "math"

// 速度估计的数值防护与默认参数。
const (
	velocityEpsilon = 1e-6

	DefaultVelocityScale = 0.4  // 原始速率（进度/秒）映射到 [0,1] 的系数
	DefaultVelocityRise  = 30.0 // 上冲阻尼速率：快速响应滚动
	DefaultVelocityFall  = 6.0  // 衰减阻尼速率：停止输入后约 300ms 内归零
)

// VelocityEstimator 估计进度标量的平滑变化率。
// 输出限制在 [0, 1]：滚动越快越接近 1，输入停止后指数衰减回 0。
// 用于驱动视场角冲量、畸变强度等随滚动速度变化的次级效果。
type VelocityEstimator struct {
	scale float64
	rise  float64
	fall  float64

	prev     float64
	hasPrev  bool
	estimate float64
}

// NewVelocityEstimator 创建速度估计器，参数 <= 0 时使用默认值。
func NewVelocityEstimator(scale, rise, fall float64) *VelocityEstimator {
	if scale <= 0 {
		scale = DefaultVelocityScale
	}
	if rise <= 0 {
		rise = DefaultVelocityRise
	}
	if fall <= 0 {
		fall = DefaultVelocityFall
	}
	return &VelocityEstimator{scale: scale, rise: rise, fall: fall}
}

// Update 根据最新进度与帧间隔更新估计值。
// 原始速率 |Δp| / dt 的分母以 epsilon 为下限，绝不发生除零；
// 目标值上冲用快速率、回落用慢速率，因此估计值尖峰快、衰减缓。
func (v *VelocityEstimator) Update(progress, dt float64) float64 {
	if !v.hasPrev {
		v.prev = progress
		v.hasPrev = true
		return v.estimate
	}

	raw := math.Abs(progress-v.prev) / math.Max(dt, velocityEpsilon)
	v.prev = progress

	target := Clamp01(raw * v.scale)
	rate := v.fall
	if target > v.estimate {
		rate = v.rise
	}
	v.estimate = Damp(v.estimate, target, rate, dt)
	return v.estimate
}

// Estimate 返回最近一次计算的估计值。
func (v *VelocityEstimator) Estimate() float64 {
	return v.estimate
}
