package timeline

import (
	"fmt"
	"log"
	"sync"
)

// Tuning 序列器的数值调参。零值字段在构造时回落到默认值。
type Tuning struct {
	ProgressRate   float64 // 进度阻尼速率
	EdgeBand       float64 // 分区淡入淡出边带宽度（进度单位）
	PulseThreshold float64 // 步进触发的脉冲累积阈值
	StepCooldown   float64 // 步进冷却时长（秒）
	VelocityScale  float64 // 速度估计的原始速率映射系数
	VelocityRise   float64 // 速度估计上冲阻尼速率
	VelocityFall   float64 // 速度估计衰减阻尼速率
	FOVKick        float64 // 速度为 1 时叠加的视场角增量（度）
	DistortionMax  float64 // 速度为 1 时的畸变强度
}

// DefaultTuning 返回默认调参。
func DefaultTuning() Tuning {
	return Tuning{
		ProgressRate:   6.0,
		EdgeBand:       DefaultEdgeBand,
		PulseThreshold: DefaultPulseThreshold,
		StepCooldown:   DefaultStepCooldown,
		VelocityScale:  DefaultVelocityScale,
		VelocityRise:   DefaultVelocityRise,
		VelocityFall:   DefaultVelocityFall,
		FOVKick:        8.0,
		DistortionMax:  1.0,
	}
}

// Config 序列器的全部静态配置，构造后不再变化。
type Config struct {
	Stops   []Stop
	Path    []Keyframe
	Windows []PhaseWindow
	Tuning  Tuning
}

// Snapshot 每帧输出的参数快照，展示层只读。
//
// FOVKick 与 Distortion 是速度驱动的次级效果强度，作为显式字段
// 交给消费方叠加；Camera.FOV 始终是关键帧插值的基础值，
// 不存在任何跨包共享的环境变量。
type Snapshot struct {
	Progress   float64
	StopIndex  int
	Camera     CameraPose
	Sections   []PhaseState
	Velocity   float64
	FOVKick    float64
	Distortion float64
}

// CheckpointFunc 检查点跨越事件回调。
// 只在某分区的计数发生变化的那一帧调用一次，不逐帧重发。
type CheckpointFunc func(section int, label string, count int)

type inputKind int

const (
	inputPulse inputKind = iota
	inputJump
)

type inputEvent struct {
	kind      inputKind
	magnitude float64
	direction int
	index     int
}

// Sequencer 时间线序列器：滚动驱动编排的唯一入口。
//
// 数据流：输入事件更新目标停靠点 → 当前进度向停靠点进度阻尼逼近 →
// 关键帧轨道、分区门控、速度估计器派生出每帧快照。
//
// 所有可变状态只在 Tick 内部变化。OnWheelPulse 与 JumpToStop 仅把
// 意图入队，在下一次 Tick 开始时一次性取出，因此输入可以安全地
// 来自渲染循环之外的 goroutine。
type Sequencer struct {
	cfg    Config
	tuning Tuning

	track    *Track
	gates    []*Gate
	stepper  *SnapStepper
	velocity *VelocityEstimator

	progress float64

	mu      sync.Mutex
	pending []inputEvent
	last    Snapshot

	onCheckpoint CheckpointFunc
	onStop       func(index int)
}

// NewSequencer 校验配置并构造序列器。
// 配置非法时返回 *ConfigError：系统拒绝以无效配置启动，
// 而不是静默收拢。构造成功后每帧操作不再产生错误。
func NewSequencer(cfg Config) (*Sequencer, error) {
	if len(cfg.Stops) == 0 {
		return nil, &ConfigError{Field: "stops", Reason: "至少需要 1 个停靠点"}
	}
	for i, st := range cfg.Stops {
		if st.Progress < 0 || st.Progress > 1 {
			return nil, &ConfigError{
				Field:  fmt.Sprintf("stops[%d]", i),
				Reason: "进度必须在 [0,1] 内",
			}
		}
		if i > 0 && st.Progress <= cfg.Stops[i-1].Progress {
			return nil, &ConfigError{
				Field:  fmt.Sprintf("stops[%d]", i),
				Reason: "停靠点进度必须严格递增",
			}
		}
	}

	track, err := NewTrack(cfg.Path)
	if err != nil {
		return nil, err
	}

	for i, w := range cfg.Windows {
		if w.Enter < 0 || w.Exit > 1 || w.Enter >= w.Exit {
			return nil, &ConfigError{
				Field:  fmt.Sprintf("sections[%d]", i),
				Reason: "窗口必须满足 0 <= enter < exit <= 1",
			}
		}
		for j, cp := range w.Checkpoints {
			if cp < 0 || cp > 1 {
				return nil, &ConfigError{
					Field:  fmt.Sprintf("sections[%d].checkpoints[%d]", i, j),
					Reason: "检查点必须在 [0,1] 内",
				}
			}
			if j > 0 && cp < w.Checkpoints[j-1] {
				return nil, &ConfigError{
					Field:  fmt.Sprintf("sections[%d].checkpoints[%d]", i, j),
					Reason: "检查点必须非递减",
				}
			}
		}
	}

	tuning := fillTuning(cfg.Tuning)

	s := &Sequencer{
		cfg:      cfg,
		tuning:   tuning,
		track:    track,
		stepper:  NewSnapStepper(cfg.Stops, tuning.PulseThreshold, tuning.StepCooldown),
		velocity: NewVelocityEstimator(tuning.VelocityScale, tuning.VelocityRise, tuning.VelocityFall),
		progress: cfg.Stops[0].Progress,
	}
	s.gates = make([]*Gate, len(cfg.Windows))
	for i, w := range cfg.Windows {
		s.gates[i] = NewGate(w, tuning.EdgeBand)
	}

	// 初始快照：尚未注册回调，门控初始化不触发事件
	snap := Snapshot{
		Progress:  s.progress,
		StopIndex: s.stepper.Index(),
		Camera:    s.track.Locate(s.progress).Pose(),
		Sections:  make([]PhaseState, len(s.gates)),
	}
	for i, g := range s.gates {
		snap.Sections[i], _ = g.Update(s.progress)
	}
	s.last = snap

	log.Printf("[Sequencer] Configured: %d stops, %d keyframes, %d sections",
		len(cfg.Stops), track.Len(), len(cfg.Windows))

	return s, nil
}

// fillTuning 把零值字段替换为默认值。
func fillTuning(t Tuning) Tuning {
	def := DefaultTuning()
	if t.ProgressRate <= 0 {
		t.ProgressRate = def.ProgressRate
	}
	if t.EdgeBand <= 0 {
		t.EdgeBand = def.EdgeBand
	}
	if t.PulseThreshold <= 0 {
		t.PulseThreshold = def.PulseThreshold
	}
	if t.StepCooldown <= 0 {
		t.StepCooldown = def.StepCooldown
	}
	if t.VelocityScale <= 0 {
		t.VelocityScale = def.VelocityScale
	}
	if t.VelocityRise <= 0 {
		t.VelocityRise = def.VelocityRise
	}
	if t.VelocityFall <= 0 {
		t.VelocityFall = def.VelocityFall
	}
	if t.FOVKick < 0 {
		t.FOVKick = def.FOVKick
	}
	if t.DistortionMax < 0 {
		t.DistortionMax = def.DistortionMax
	}
	return t
}

// OnWheelPulse 入队一次滚轮脉冲。direction 只取符号。
// 本方法不同步修改任何序列器状态，可跨 goroutine 调用。
func (s *Sequencer) OnWheelPulse(magnitude float64, direction int) {
	s.mu.Lock()
	s.pending = append(s.pending, inputEvent{kind: inputPulse, magnitude: magnitude, direction: direction})
	s.mu.Unlock()
}

// JumpToStop 入队一次直达跳转（如点击进度条标记）。
// 跳转绕过脉冲累积，但进度仍然向新目标阻尼过渡，不会瞬移。
func (s *Sequencer) JumpToStop(index int) {
	s.mu.Lock()
	s.pending = append(s.pending, inputEvent{kind: inputJump, index: index})
	s.mu.Unlock()
}

// SetOnCheckpoint 注册检查点跨越事件回调，在 Tick 内同步调用。
func (s *Sequencer) SetOnCheckpoint(fn CheckpointFunc) {
	s.onCheckpoint = fn
}

// SetOnStopChange 注册停靠点变化回调，在 Tick 内同步调用。
func (s *Sequencer) SetOnStopChange(fn func(index int)) {
	s.onStop = fn
}

// SetProgressRate 调整进度阻尼速率（减少动态效果模式会调高它）。
// rate <= 0 被忽略。
func (s *Sequencer) SetProgressRate(rate float64) {
	if rate > 0 {
		s.tuning.ProgressRate = rate
	}
}

// ProgressRate 返回当前进度阻尼速率。
func (s *Sequencer) ProgressRate() float64 {
	return s.tuning.ProgressRate
}

// Stops 返回停靠点配置的副本。
func (s *Sequencer) Stops() []Stop {
	stops := make([]Stop, len(s.cfg.Stops))
	copy(stops, s.cfg.Stops)
	return stops
}

// Tick 推进一帧并返回新的参数快照。
// dt 可以是任意非均匀的帧间隔；dt <= 0 时状态保持不变（仍处理输入队列）。
func (s *Sequencer) Tick(dt float64) Snapshot {
	s.mu.Lock()
	queue := s.pending
	s.pending = nil
	s.mu.Unlock()

	prevIndex := s.stepper.Index()
	for _, ev := range queue {
		switch ev.kind {
		case inputPulse:
			s.stepper.Pulse(ev.magnitude, ev.direction)
		case inputJump:
			s.stepper.SetIndex(ev.index)
		}
	}
	s.stepper.Update(dt)

	target := s.stepper.Current().Progress
	s.progress = Clamp01(Damp(s.progress, target, s.tuning.ProgressRate, dt))
	vel := s.velocity.Update(s.progress, dt)

	snap := Snapshot{
		Progress:   s.progress,
		StopIndex:  s.stepper.Index(),
		Camera:     s.track.Locate(s.progress).Pose(),
		Sections:   make([]PhaseState, len(s.gates)),
		Velocity:   vel,
		FOVKick:    vel * s.tuning.FOVKick,
		Distortion: vel * s.tuning.DistortionMax,
	}
	for i, g := range s.gates {
		state, changed := g.Update(s.progress)
		snap.Sections[i] = state
		if changed && s.onCheckpoint != nil {
			s.onCheckpoint(i, state.Label, state.ActiveCheckpoints)
		}
	}
	if s.onStop != nil && snap.StopIndex != prevIndex {
		s.onStop(snap.StopIndex)
	}

	s.mu.Lock()
	s.last = snap
	s.mu.Unlock()
	return snap
}

// Snapshot 返回最近一次 Tick 的快照，供晚到的观察者读取。
func (s *Sequencer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
