package show

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
)

// createTestGdataManager 创建用于测试的 gdata Manager
// HOME 指向临时目录，避免污染真实存储
func createTestGdataManager(t *testing.T, testName string) *gdata.Manager {
	t.Helper()

	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	appName := fmt.Sprintf("scrollrig_test_%s_%d", testName, time.Now().UnixNano())
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return manager
}

// TestDefaultViewerSettings 测试默认设置
func TestDefaultViewerSettings(t *testing.T) {
	s := DefaultViewerSettings()
	if s.WheelSensitivity != 1.0 {
		t.Errorf("默认灵敏度 = %v, 期望 1.0", s.WheelSensitivity)
	}
	if s.InvertWheel || s.ReducedMotion {
		t.Error("默认开关应全部关闭")
	}
}

// TestSettingsManagerNilGdata 测试降级模式（无持久化）
func TestSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("创建设置管理器失败: %v", err)
	}
	if sm.GetSettings().WheelSensitivity != 1.0 {
		t.Error("降级模式应使用默认设置")
	}
	if err := sm.Save(); err != nil {
		t.Errorf("降级模式 Save 不应报错: %v", err)
	}
}

// TestSettingsManagerClamp 测试灵敏度收拢
func TestSettingsManagerClamp(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	tests := []struct {
		input    float64
		expected float64
	}{
		{0.0, 0.1},
		{-1.0, 0.1},
		{1.5, 1.5},
		{10.0, 3.0},
	}
	for _, tt := range tests {
		sm.SetWheelSensitivity(tt.input)
		if got := sm.GetSettings().WheelSensitivity; got != tt.expected {
			t.Errorf("SetWheelSensitivity(%v) 后灵敏度 = %v, 期望 %v", tt.input, got, tt.expected)
		}
	}
}

// TestSettingsManagerSaveLoad 测试设置的保存与加载往返
func TestSettingsManagerSaveLoad(t *testing.T) {
	manager := createTestGdataManager(t, "settings_save_load")

	sm, err := NewSettingsManager(manager)
	if err != nil {
		t.Fatalf("创建设置管理器失败: %v", err)
	}

	sm.SetWheelSensitivity(2.5)
	sm.SetInvertWheel(true)
	sm.SetReducedMotion(true)
	if err := sm.Save(); err != nil {
		t.Fatalf("保存设置失败: %v", err)
	}

	// 新管理器从同一存储加载
	sm2, err := NewSettingsManager(manager)
	if err != nil {
		t.Fatalf("重新创建设置管理器失败: %v", err)
	}
	got := sm2.GetSettings()
	if got.WheelSensitivity != 2.5 || !got.InvertWheel || !got.ReducedMotion {
		t.Errorf("加载的设置 = %+v, 与保存的不一致", got)
	}
}
