package show

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ViewerSettings 查看器全局设置，不绑定具体巡游。
type ViewerSettings struct {
	// 输入设置
	WheelSensitivity float64 `yaml:"wheelSensitivity"` // 滚轮灵敏度 0.1 ~ 3.0
	InvertWheel      bool    `yaml:"invertWheel"`      // 反转滚轮方向

	// 无障碍设置
	ReducedMotion bool `yaml:"reducedMotion"` // 减少动态效果：过渡几乎立即完成
}

// DefaultViewerSettings 返回默认设置。
func DefaultViewerSettings() *ViewerSettings {
	return &ViewerSettings{
		WheelSensitivity: 1.0,
		InvertWheel:      false,
		ReducedMotion:    false,
	}
}

// SettingsManager 设置管理器。
// 负责查看器设置的加载、保存和内存管理。
type SettingsManager struct {
	gdataManager *gdata.Manager  // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *ViewerSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "viewer"
)

// NewSettingsManager 创建设置管理器。
//
// gdataManager 可为 nil（降级模式，仅内存设置）。
// 加载已保存设置失败不是致命错误，会回落到默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultViewerSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[Settings] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置。
// gdataManager 为 nil 或数据不存在时使用默认设置。
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultViewerSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultViewerSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultViewerSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loaded ViewerSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.settings = DefaultViewerSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = &loaded
	log.Printf("[Settings] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata。
// gdataManager 为 nil 时返回 nil（降级模式，不报错）。
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[Settings] Settings saved successfully")
	return nil
}

// GetSettings 返回当前设置实例。
func (sm *SettingsManager) GetSettings() *ViewerSettings {
	return sm.settings
}

// SetWheelSensitivity 设置滚轮灵敏度，限制在 0.1 ~ 3.0。
// 仅修改内存中的设置，需调用 Save() 持久化。
func (sm *SettingsManager) SetWheelSensitivity(v float64) {
	sm.settings.WheelSensitivity = clampSensitivity(v)
}

// SetInvertWheel 设置滚轮方向反转。
// 仅修改内存中的设置，需调用 Save() 持久化。
func (sm *SettingsManager) SetInvertWheel(enabled bool) {
	sm.settings.InvertWheel = enabled
}

// SetReducedMotion 设置减少动态效果模式。
// 仅修改内存中的设置，需调用 Save() 持久化。
func (sm *SettingsManager) SetReducedMotion(enabled bool) {
	sm.settings.ReducedMotion = enabled
}

// clampSensitivity 将灵敏度限制在 0.1 ~ 3.0 范围内。
func clampSensitivity(v float64) float64 {
	if v < 0.1 {
		return 0.1
	}
	if v > 3.0 {
		return 3.0
	}
	return v
}
