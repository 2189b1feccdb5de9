// Package config 提供巡游定义与调参覆盖的 YAML 加载。
package config

import (
	"fmt"
	"log"
	"os"

	"github.com/decker502/scrollrig/pkg/timeline"
	"gopkg.in/yaml.v3"
)

// TourFile 定义巡游 YAML 文件结构。
type TourFile struct {
	Version  string          `yaml:"version"`
	Title    string          `yaml:"title"`
	Stops    []StopEntry     `yaml:"stops"`
	Path     []KeyframeEntry `yaml:"path"`
	Sections []SectionEntry  `yaml:"sections"`
	Tuning   *TuningEntry    `yaml:"tuning"`
}

// StopEntry 定义单个停靠点。
type StopEntry struct {
	Progress float64 `yaml:"progress"`
	Label    string  `yaml:"label"`
}

// KeyframeEntry 定义单个相机关键帧。
type KeyframeEntry struct {
	Progress float64       `yaml:"progress"`
	Position timeline.Vec3 `yaml:"position"`
	LookAt   timeline.Vec3 `yaml:"look_at"`
	FOV      float64       `yaml:"fov"`
	Roll     float64       `yaml:"roll"`
}

// SectionEntry 定义单个叙事分区窗口。
type SectionEntry struct {
	Label       string    `yaml:"label"`
	Enter       float64   `yaml:"enter"`
	Exit        float64   `yaml:"exit"`
	Checkpoints []float64 `yaml:"checkpoints"`
}

// TuningEntry 定义可选的调参字段，nil 表示使用默认值。
type TuningEntry struct {
	ProgressRate   *float64 `yaml:"progress_rate"`
	EdgeBand       *float64 `yaml:"edge_band"`
	PulseThreshold *float64 `yaml:"pulse_threshold"`
	StepCooldown   *float64 `yaml:"step_cooldown"`
	VelocityScale  *float64 `yaml:"velocity_scale"`
	VelocityRise   *float64 `yaml:"velocity_rise"`
	VelocityFall   *float64 `yaml:"velocity_fall"`
	FOVKick        *float64 `yaml:"fov_kick"`
	DistortionMax  *float64 `yaml:"distortion_max"`
}

// LoadTour 从 YAML 文件加载巡游定义。
// 返回的配置只做了结构转换；数值合法性由 timeline.NewSequencer 统一校验。
func LoadTour(path string) (*timeline.Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read tour file: %w", err)
	}

	file := &TourFile{}
	if err := yaml.Unmarshal(data, file); err != nil {
		return nil, "", fmt.Errorf("failed to parse tour file '%s': %w", path, err)
	}

	if file.Version == "" {
		log.Printf("[TourConfig] Warning: tour file '%s' has no version field", path)
	}

	cfg := file.ToConfig()
	log.Printf("[TourConfig] Loaded tour '%s' (%d stops, %d keyframes, %d sections)",
		file.Title, len(cfg.Stops), len(cfg.Path), len(cfg.Windows))
	return cfg, file.Title, nil
}

// ToConfig 把文件结构转换为时间线配置。
func (f *TourFile) ToConfig() *timeline.Config {
	cfg := &timeline.Config{Tuning: timeline.DefaultTuning()}

	for i, st := range f.Stops {
		cfg.Stops = append(cfg.Stops, timeline.Stop{
			Index:    i,
			Progress: st.Progress,
			Label:    st.Label,
		})
	}
	for _, k := range f.Path {
		cfg.Path = append(cfg.Path, timeline.Keyframe{
			Progress: k.Progress,
			Position: k.Position,
			LookAt:   k.LookAt,
			FOV:      k.FOV,
			Roll:     k.Roll,
		})
	}
	for _, sec := range f.Sections {
		cfg.Windows = append(cfg.Windows, timeline.PhaseWindow{
			Label:       sec.Label,
			Enter:       sec.Enter,
			Exit:        sec.Exit,
			Checkpoints: sec.Checkpoints,
		})
	}
	if f.Tuning != nil {
		f.Tuning.apply(&cfg.Tuning)
	}
	return cfg
}

func (t *TuningEntry) apply(dst *timeline.Tuning) {
	if t.ProgressRate != nil {
		dst.ProgressRate = *t.ProgressRate
	}
	if t.EdgeBand != nil {
		dst.EdgeBand = *t.EdgeBand
	}
	if t.PulseThreshold != nil {
		dst.PulseThreshold = *t.PulseThreshold
	}
	if t.StepCooldown != nil {
		dst.StepCooldown = *t.StepCooldown
	}
	if t.VelocityScale != nil {
		dst.VelocityScale = *t.VelocityScale
	}
	if t.VelocityRise != nil {
		dst.VelocityRise = *t.VelocityRise
	}
	if t.VelocityFall != nil {
		dst.VelocityFall = *t.VelocityFall
	}
	if t.FOVKick != nil {
		dst.FOVKick = *t.FOVKick
	}
	if t.DistortionMax != nil {
		dst.DistortionMax = *t.DistortionMax
	}
}

// DefaultTour 返回内置演示巡游：hero / ethos / projects / bio 四个分区。
// 没有指定 --tour 参数时查看器使用它。
func DefaultTour() *timeline.Config {
	return &timeline.Config{
		Stops: []timeline.Stop{
			{Index: 0, Progress: 0.00, Label: "hero"},
			{Index: 1, Progress: 0.34, Label: "ethos"},
			{Index: 2, Progress: 0.68, Label: "projects"},
			{Index: 3, Progress: 1.00, Label: "bio"},
		},
		Path: []timeline.Keyframe{
			{Progress: 0.00, Position: timeline.Vec3{X: 0, Y: 2, Z: 12}, LookAt: timeline.Vec3{Y: 1.5}, FOV: 70, Roll: 0},
			{Progress: 0.25, Position: timeline.Vec3{X: -4, Y: 3, Z: 8}, LookAt: timeline.Vec3{X: -1, Y: 1}, FOV: 65, Roll: -3},
			{Progress: 0.50, Position: timeline.Vec3{X: 0, Y: 5, Z: 4}, LookAt: timeline.Vec3{Y: 2}, FOV: 60, Roll: 0},
			{Progress: 0.75, Position: timeline.Vec3{X: 5, Y: 3, Z: 6}, LookAt: timeline.Vec3{X: 2, Y: 1}, FOV: 55, Roll: 4},
			{Progress: 1.00, Position: timeline.Vec3{X: 0, Y: 1.5, Z: 3}, LookAt: timeline.Vec3{Y: 1.2}, FOV: 50, Roll: 0},
		},
		Windows: []timeline.PhaseWindow{
			{Label: "hero", Enter: 0.00, Exit: 0.30},
			{Label: "ethos", Enter: 0.26, Exit: 0.60, Checkpoints: []float64{0.20, 0.50, 0.80}},
			{Label: "projects", Enter: 0.56, Exit: 0.88, Checkpoints: []float64{0.25, 0.50, 0.75}},
			{Label: "bio", Enter: 0.85, Exit: 1.00, Checkpoints: []float64{0.40}},
		},
		Tuning: timeline.DefaultTuning(),
	}
}
