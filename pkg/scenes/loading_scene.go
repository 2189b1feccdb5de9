package scenes

import (
	"image/color"
	"log"
	"math"

	"github.com/decker502/scrollrig/pkg/config"
	"github.com/decker502/scrollrig/pkg/show"
	"github.com/decker502/scrollrig/pkg/timeline"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// 启动过场时长（秒）
const loadingDuration = 0.8

// LoadingScene represents the boot screen shown when the viewer starts.
// It validates the tour configuration and then hands off to the tour scene.
type LoadingScene struct {
	sceneManager *show.SceneManager
	settings     *show.SettingsManager
	progressMgr  *show.ProgressManager

	tourCfg   *timeline.Config
	tourTitle string

	progress float64 // Boot progress (0.0 - 1.0)
	failure  string  // Non-empty when the tour could not be started
}

// NewLoadingScene creates a new boot scene.
func NewLoadingScene(sm *show.SceneManager, settings *show.SettingsManager, progressMgr *show.ProgressManager, tourCfg *timeline.Config, title string) *LoadingScene {
	return &LoadingScene{
		sceneManager: sm,
		settings:     settings,
		progressMgr:  progressMgr,
		tourCfg:      tourCfg,
		tourTitle:    title,
	}
}

// Update updates the boot scene logic.
func (s *LoadingScene) Update(deltaTime float64) {
	if s.failure != "" {
		return
	}

	s.progress = math.Min(s.progress+deltaTime/loadingDuration, 1.0)
	if s.progress < 1.0 {
		return
	}

	tourScene, err := NewTourScene(s.sceneManager, s.settings, s.progressMgr, s.tourCfg, s.tourTitle)
	if err != nil {
		// 配置非法时停留在启动画面并展示原因，不降级进入巡游
		s.failure = err.Error()
		log.Printf("[LoadingScene] Tour rejected: %v", err)
		return
	}
	s.sceneManager.SwitchTo(tourScene)
}

// Draw renders the boot scene to the screen.
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{16, 18, 26, 255})

	if s.failure != "" {
		ebitenutil.DebugPrintAt(screen, "Tour configuration error:", 40, config.WindowHeight/2-20)
		ebitenutil.DebugPrintAt(screen, s.failure, 40, config.WindowHeight/2)
		return
	}

	// 进度条
	barWidth := 320.0
	barHeight := 8.0
	barX := (float64(config.WindowWidth) - barWidth) / 2.0
	barY := float64(config.WindowHeight)/2.0 + 20

	ebitenutil.DrawRect(screen, barX, barY, barWidth, barHeight, color.RGBA{50, 54, 66, 255})
	ebitenutil.DrawRect(screen, barX, barY, barWidth*s.progress, barHeight, color.RGBA{120, 180, 255, 255})

	ebitenutil.DebugPrintAt(screen, s.tourTitle, int(barX), int(barY)-24)
}
