package timeline

// Keyframe 锚定在特定进度值上的相机关键帧。
type Keyframe struct {
	Progress float64
	Position Vec3
	LookAt   Vec3
	FOV      float64 // 视场角（度）
	Roll     float64 // 绕视轴滚转（度）
}

// CameraPose 插值后的相机位姿。
type CameraPose struct {
	Position Vec3
	LookAt   Vec3
	FOV      float64
	Roll     float64
}

// Segment 当前进度所在的关键帧区间。
// Fraction 是未缓动的局部线性比例，取值 [0, 1]。
type Segment struct {
	Start    *Keyframe
	End      *Keyframe
	Fraction float64
}

// Track 关键帧路径。
// 不变量：进度严格递增，首帧进度 0.0，末帧进度 1.0。
type Track struct {
	keys []Keyframe
}

// NewTrack 构造关键帧轨道，不变量被破坏时返回 *ConfigError。
func NewTrack(keys []Keyframe) (*Track, error) {
	if len(keys) < 2 {
		return nil, &ConfigError{Field: "path", Reason: "至少需要 2 个关键帧"}
	}
	if keys[0].Progress != 0 {
		return nil, &ConfigError{Field: "path[0]", Reason: "首帧进度必须是 0.0"}
	}
	if keys[len(keys)-1].Progress != 1 {
		return nil, &ConfigError{Field: "path[last]", Reason: "末帧进度必须是 1.0"}
	}
	for i := 1; i < len(keys); i++ {
		if keys[i].Progress <= keys[i-1].Progress {
			return nil, &ConfigError{
				Field:  "path",
				Reason: "关键帧进度必须严格递增",
			}
		}
	}
	t := &Track{keys: make([]Keyframe, len(keys))}
	copy(t.keys, keys)
	return t, nil
}

// Len 返回关键帧数量。
func (t *Track) Len() int {
	return len(t.keys)
}

// Locate 定位进度所在的关键帧区间。
// 进度低于首帧时返回首区间（Fraction=0），
// 高于末帧时返回末区间（Fraction=1）。
func (t *Track) Locate(p float64) Segment {
	keys := t.keys
	last := len(keys) - 1

	if p <= keys[0].Progress {
		return Segment{Start: &keys[0], End: &keys[1], Fraction: 0}
	}
	if p >= keys[last].Progress {
		return Segment{Start: &keys[last-1], End: &keys[last], Fraction: 1}
	}

	for i := 1; i <= last; i++ {
		if p <= keys[i].Progress {
			start, end := &keys[i-1], &keys[i]
			span := end.Progress - start.Progress
			if span <= 0 {
				// 进度重合的退化区间，强制取 1 避免除零
				return Segment{Start: start, End: end, Fraction: 1}
			}
			return Segment{Start: start, End: end, Fraction: (p - start.Progress) / span}
		}
	}

	return Segment{Start: &keys[last-1], End: &keys[last], Fraction: 1}
}

// Pose 返回该区间按平滑阶梯缓动插值后的相机位姿。
// 进度恰好落在关键帧上时，输出与该关键帧的字段完全一致。
func (s Segment) Pose() CameraPose {
	t := SmoothStep(s.Fraction)
	return CameraPose{
		Position: s.Start.Position.Lerp(s.End.Position, t),
		LookAt:   s.Start.LookAt.Lerp(s.End.LookAt, t),
		FOV:      s.Start.FOV + (s.End.FOV-s.Start.FOV)*t,
		Roll:     s.Start.Roll + (s.End.Roll-s.Start.Roll)*t,
	}
}
