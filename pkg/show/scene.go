// Package show 提供查看器的场景管理与持久化设置。
package show

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 表示查看器的一个场景（加载页、巡游页）。
// 每个场景拥有自己的更新与渲染逻辑。
type Scene interface {
	// Update 根据帧间隔推进场景逻辑。
	// deltaTime 是距上一次更新经过的秒数。
	Update(deltaTime float64)

	// Draw 把场景渲染到给定屏幕。
	Draw(screen *ebiten.Image)
}

// Saveable 是一个可选接口，用于支持场景在退出时保存状态。
//
// 实现此接口的场景会在查看器窗口关闭时被调用 SaveOnExit()，
// 例如巡游场景保存最后到达的停靠点。
type Saveable interface {
	// SaveOnExit 在场景退出时保存状态。
	// 返回 true 表示保存成功或无需保存；
	// 返回 false 表示保存失败（但程序仍会正常退出）。
	SaveOnExit() bool
}
