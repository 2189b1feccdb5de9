package timeline

// Stop 进度轴上的离散停靠点。
// 停靠点序列是固定配置：Index 连续、Progress 严格递增。
type Stop struct {
	Index    int
	Progress float64
	Label    string
}

// StepperState 步进器状态。
type StepperState int

const (
	// StepperIdle 空闲，脉冲累积达到阈值即触发步进。
	StepperIdle StepperState = iota
	// StepperLocked 冷却中，到达的脉冲被整体丢弃。
	StepperLocked
)

// 步进器默认参数。
const (
	DefaultPulseThreshold = 3.0
	DefaultStepCooldown   = 0.6 // 秒
)

// SnapStepper 把离散的滚轮脉冲转换为"一次手势推进一个停靠点"。
//
// 脉冲按方向带符号累积，达到阈值（含等于）立即步进一格并进入
// LOCKED 冷却；冷却期间到达的脉冲被丢弃，冷却结束后累积器从零
// 重新起步。这样无论一次手势爆发多少脉冲，都只触发一次步进。
// 越过首末停靠点的步进是静默空操作。
type SnapStepper struct {
	stops     []Stop
	index     int
	state     StepperState
	accum     float64
	threshold float64
	cooldown  float64
	remaining float64
}

// NewSnapStepper 创建步进器，threshold/cooldown <= 0 时使用默认值。
func NewSnapStepper(stops []Stop, threshold, cooldown float64) *SnapStepper {
	if threshold <= 0 {
		threshold = DefaultPulseThreshold
	}
	if cooldown <= 0 {
		cooldown = DefaultStepCooldown
	}
	return &SnapStepper{stops: stops, threshold: threshold, cooldown: cooldown}
}

// Pulse 累积一次方向脉冲。direction 只取符号，幅度取绝对值。
// LOCKED 状态下直接返回，不累积也不触发。
func (s *SnapStepper) Pulse(magnitude float64, direction int) {
	if s.state == StepperLocked {
		return
	}
	if magnitude < 0 {
		magnitude = -magnitude
	}
	if direction > 0 {
		s.accum += magnitude
	} else if direction < 0 {
		s.accum -= magnitude
	}

	if s.accum >= s.threshold {
		s.step(1)
	} else if s.accum <= -s.threshold {
		s.step(-1)
	}
}

// step 执行一次步进并进入冷却。下标始终收拢在 [0, len-1]。
func (s *SnapStepper) step(delta int) {
	s.index = clampIndex(s.index+delta, len(s.stops))
	s.accum = 0
	s.state = StepperLocked
	s.remaining = s.cooldown
}

// Update 推进冷却计时，到期回到 IDLE 并清空累积器。
func (s *SnapStepper) Update(dt float64) {
	if s.state != StepperLocked {
		return
	}
	s.remaining -= dt
	if s.remaining <= 0 {
		s.state = StepperIdle
		s.accum = 0
		s.remaining = 0
	}
}

// SetIndex 直接跳转到指定停靠点，绕过脉冲累积。
// 越界下标收拢到边界；累积器清零，避免残留脉冲在跳转后误触发。
func (s *SnapStepper) SetIndex(i int) {
	s.index = clampIndex(i, len(s.stops))
	s.accum = 0
}

// Index 返回当前停靠点下标。
func (s *SnapStepper) Index() int {
	return s.index
}

// Current 返回当前停靠点。
func (s *SnapStepper) Current() Stop {
	return s.stops[s.index]
}

// State 返回步进器状态。
func (s *SnapStepper) State() StepperState {
	return s.state
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
