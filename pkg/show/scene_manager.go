package show

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager 控制哪个场景处于活动状态。
// 任意时刻只有一个场景的 Update 和 Draw 会被调用。
type SceneManager struct {
	currentScene Scene
}

// NewSceneManager 创建场景管理器。
// 初始没有活动场景，需调用 SwitchTo 设置。
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo 切换到给定场景。
// 从下一次循环开始调用新场景的 Update 和 Draw。
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动场景，没有则返回 nil。
// 用于查看器关闭时检查当前场景是否需要保存状态。
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Update 更新当前活动场景；没有活动场景时什么都不做。
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 渲染当前活动场景；没有活动场景时什么都不做。
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
