// Package app 提供查看器应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：打开持久化存储、
// 加载巡游定义与调参覆盖、搭建场景管理器。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/scrollrig/pkg/config"
	"github.com/decker502/scrollrig/pkg/scenes"
	"github.com/decker502/scrollrig/pkg/show"
	"github.com/decker502/scrollrig/pkg/timeline"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// TourPath 巡游 YAML 文件路径，为空则使用内置演示巡游
	TourPath string
	// TuningPath 调参覆盖文件路径，为空则不覆盖
	TuningPath string
}

// App 是查看器应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *show.SceneManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化查看器应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 打开持久化存储，失败时降级为纯内存模式
	gdataManager, err := gdata.Open(gdata.Config{AppName: "scrollrig"})
	if err != nil {
		log.Printf("[App] Warning: persistent storage unavailable: %v", err)
		gdataManager = nil
	}

	settingsManager, err := show.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置管理器初始化失败: %w", err)
	}
	progressManager, err := show.NewProgressManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("进度管理器初始化失败: %w", err)
	}

	// 加载巡游定义
	var tourCfg *timeline.Config
	title := "scrollrig demo tour"
	if cfg.TourPath != "" {
		tourCfg, title, err = config.LoadTour(cfg.TourPath)
		if err != nil {
			return nil, fmt.Errorf("巡游配置加载失败: %w", err)
		}
	} else {
		tourCfg = config.DefaultTour()
		log.Printf("[App] No tour file given, using built-in demo tour")
	}

	// 叠加调参覆盖
	if err := config.LoadTuningOverrides(tourCfg, cfg.TuningPath); err != nil {
		return nil, fmt.Errorf("调参覆盖加载失败: %w", err)
	}

	// 创建场景管理器并进入启动场景
	sceneManager := show.NewSceneManager()
	loadingScene := scenes.NewLoadingScene(sceneManager, settingsManager, progressManager, tourCfg, title)
	sceneManager.SwitchTo(loadingScene)

	return &App{
		sceneManager: sceneManager,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新应用逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.WindowWidth, config.WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// Esc 退出（RunGame 返回后由 main 触发退出保存）
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		isFullscreen := ebiten.IsFullscreen()
		if isFullscreen {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	// 使用线性滤波绘制画面，提高缩放质量
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// GetSceneManager 返回场景管理器
// 用于在应用关闭时保存状态
func (a *App) GetSceneManager() *show.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
