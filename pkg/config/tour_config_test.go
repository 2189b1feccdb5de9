package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/decker502/scrollrig/pkg/timeline"
)

const sampleTourYAML = `version: "1.0"
title: "测试巡游"
stops:
  - progress: 0.0
    label: hero
  - progress: 0.5
    label: projects
  - progress: 1.0
    label: bio
path:
  - progress: 0.0
    position: {x: 0, y: 2, z: 10}
    look_at: {y: 1}
    fov: 70
  - progress: 1.0
    position: {x: 5, y: 1, z: 3}
    look_at: {y: 1.2}
    fov: 50
    roll: -2
sections:
  - label: hero
    enter: 0.0
    exit: 0.4
  - label: bio
    enter: 0.6
    exit: 1.0
    checkpoints: [0.3, 0.7]
tuning:
  progress_rate: 9.0
  fov_kick: 12.0
`

func writeTempYAML(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写入临时文件失败: %v", err)
	}
	return path
}

// TestLoadTour 测试巡游定义文件的加载与结构转换
func TestLoadTour(t *testing.T) {
	path := writeTempYAML(t, "tour.yaml", sampleTourYAML)

	cfg, title, err := LoadTour(path)
	if err != nil {
		t.Fatalf("加载巡游失败: %v", err)
	}
	if title != "测试巡游" {
		t.Errorf("标题 = %q, 期望 %q", title, "测试巡游")
	}
	if len(cfg.Stops) != 3 || len(cfg.Path) != 2 || len(cfg.Windows) != 2 {
		t.Fatalf("结构数量不符: stops=%d path=%d sections=%d",
			len(cfg.Stops), len(cfg.Path), len(cfg.Windows))
	}
	if cfg.Stops[1].Index != 1 || cfg.Stops[1].Label != "projects" {
		t.Errorf("停靠点转换错误: %+v", cfg.Stops[1])
	}
	if cfg.Path[1].Position.X != 5 || cfg.Path[1].Roll != -2 {
		t.Errorf("关键帧转换错误: %+v", cfg.Path[1])
	}
	if cfg.Windows[1].Checkpoints[1] != 0.7 {
		t.Errorf("检查点转换错误: %+v", cfg.Windows[1])
	}

	// 调参覆盖生效，未指定的字段保持默认
	if cfg.Tuning.ProgressRate != 9.0 || cfg.Tuning.FOVKick != 12.0 {
		t.Errorf("调参未生效: %+v", cfg.Tuning)
	}
	if cfg.Tuning.StepCooldown != timeline.DefaultStepCooldown {
		t.Errorf("未指定的调参字段被改动: %v", cfg.Tuning.StepCooldown)
	}

	// 加载结果必须能构造序列器
	if _, err := timeline.NewSequencer(*cfg); err != nil {
		t.Errorf("加载的配置无法构造序列器: %v", err)
	}
}

// TestLoadTourMissingFile 测试文件缺失返回错误
func TestLoadTourMissingFile(t *testing.T) {
	if _, _, err := LoadTour(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("期望文件缺失错误，实际为 nil")
	}
}

// TestLoadTourInvalidYAML 测试解析失败返回错误
func TestLoadTourInvalidYAML(t *testing.T) {
	path := writeTempYAML(t, "bad.yaml", "stops: [}")
	if _, _, err := LoadTour(path); err == nil {
		t.Error("期望解析错误，实际为 nil")
	}
}

// TestDefaultTour 测试内置演示巡游是合法配置
func TestDefaultTour(t *testing.T) {
	cfg := DefaultTour()
	if _, err := timeline.NewSequencer(*cfg); err != nil {
		t.Fatalf("内置巡游配置非法: %v", err)
	}
	if len(cfg.Windows) != 4 {
		t.Errorf("内置巡游分区数量 = %d, 期望 4", len(cfg.Windows))
	}
}

// TestLoadTuningOverrides 测试调参覆盖文件的合并
func TestLoadTuningOverrides(t *testing.T) {
	cfg := DefaultTour()
	path := writeTempYAML(t, "tuning.yaml", "progress_rate: 15.0\nunknown_knob: 3.0\n")

	if err := LoadTuningOverrides(cfg, path); err != nil {
		t.Fatalf("合并调参覆盖失败: %v", err)
	}
	if cfg.Tuning.ProgressRate != 15.0 {
		t.Errorf("progress_rate = %v, 期望 15.0", cfg.Tuning.ProgressRate)
	}
}

// TestLoadTuningOverridesMissingFile 测试覆盖文件缺失不是错误
func TestLoadTuningOverridesMissingFile(t *testing.T) {
	cfg := DefaultTour()
	before := cfg.Tuning
	if err := LoadTuningOverrides(cfg, filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
		t.Errorf("覆盖文件缺失返回错误: %v", err)
	}
	if cfg.Tuning != before {
		t.Error("覆盖文件缺失时调参被改动")
	}
}
