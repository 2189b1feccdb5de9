package config

import (
	"fmt"
	"log"
	"os"

	"github.com/decker502/scrollrig/pkg/timeline"
	"gopkg.in/yaml.v3"
)

// LoadTuningOverrides 读取调参覆盖文件并合并进巡游配置。
//
// 覆盖文件是一个扁平的键值映射（如 progress_rate: 9.0），对应
// 创作期调试面板里的数值滑杆：序列逻辑本身不关心它，只在启动时
// 合并一次。文件不存在不是错误；未知键只告警不失败。
func LoadTuningOverrides(cfg *timeline.Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read tuning overrides: %w", err)
	}

	overrides := map[string]float64{}
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("failed to parse tuning overrides '%s': %w", path, err)
	}

	applied := 0
	for key, value := range overrides {
		if applyOverride(&cfg.Tuning, key, value) {
			applied++
		} else {
			log.Printf("[TourConfig] Warning: unknown tuning key '%s' ignored", key)
		}
	}
	log.Printf("[TourConfig] Applied %d/%d tuning overrides from %s", applied, len(overrides), path)
	return nil
}

func applyOverride(t *timeline.Tuning, key string, value float64) bool {
	switch key {
	case "progress_rate":
		t.ProgressRate = value
	case "edge_band":
		t.EdgeBand = value
	case "pulse_threshold":
		t.PulseThreshold = value
	case "step_cooldown":
		t.StepCooldown = value
	case "velocity_scale":
		t.VelocityScale = value
	case "velocity_rise":
		t.VelocityRise = value
	case "velocity_fall":
		t.VelocityFall = value
	case "fov_kick":
		t.FOVKick = value
	case "distortion_max":
		t.DistortionMax = value
	default:
		return false
	}
	return true
}
