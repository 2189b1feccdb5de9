package show

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// TourProgress 巡游进度存档：记录最后到达的停靠点，
// 下次打开时从这里继续。
type TourProgress struct {
	LastStop int `yaml:"lastStop"`
}

// ProgressManager 巡游进度管理器。
type ProgressManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，进度不持久化）
	progress     *TourProgress
}

// 存储路径常量
const (
	progressObject   = "progress"
	progressProperty = "tour"
)

// NewProgressManager 创建进度管理器并尝试加载已有进度。
func NewProgressManager(gdataManager *gdata.Manager) (*ProgressManager, error) {
	pm := &ProgressManager{
		gdataManager: gdataManager,
		progress:     &TourProgress{},
	}

	if err := pm.Load(); err != nil {
		log.Printf("[Progress] Warning: Failed to load tour progress: %v (starting fresh)", err)
	}

	return pm, nil
}

// Load 从 gdata 加载进度。数据不存在时从头开始。
func (pm *ProgressManager) Load() error {
	if pm.gdataManager == nil {
		pm.progress = &TourProgress{}
		return nil
	}

	if !pm.gdataManager.ObjectPropExists(progressObject, progressProperty) {
		pm.progress = &TourProgress{}
		return nil
	}

	data, err := pm.gdataManager.LoadObjectProp(progressObject, progressProperty)
	if err != nil {
		pm.progress = &TourProgress{}
		return fmt.Errorf("failed to load tour progress: %w", err)
	}

	var loaded TourProgress
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		pm.progress = &TourProgress{}
		return fmt.Errorf("failed to unmarshal tour progress: %w", err)
	}

	pm.progress = &loaded
	log.Printf("[Progress] Resuming tour at stop %d", loaded.LastStop)
	return nil
}

// Save 保存进度到 gdata。gdataManager 为 nil 时不报错。
func (pm *ProgressManager) Save() error {
	if pm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(pm.progress)
	if err != nil {
		return fmt.Errorf("failed to marshal tour progress: %w", err)
	}

	if err := pm.gdataManager.SaveObjectProp(progressObject, progressProperty, data); err != nil {
		return fmt.Errorf("failed to save tour progress: %w", err)
	}

	log.Printf("[Progress] Tour progress saved (stop %d)", pm.progress.LastStop)
	return nil
}

// LastStop 返回最后到达的停靠点下标。
func (pm *ProgressManager) LastStop() int {
	return pm.progress.LastStop
}

// SetLastStop 更新最后到达的停靠点下标（负值收拢为 0）。
// 仅修改内存，需调用 Save() 持久化。
func (pm *ProgressManager) SetLastStop(index int) {
	if index < 0 {
		index = 0
	}
	pm.progress.LastStop = index
}
