package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/scrollrig/pkg/config"
	"github.com/decker502/scrollrig/pkg/show"
	"github.com/decker502/scrollrig/pkg/timeline"
	"github.com/decker502/scrollrig/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 减少动态效果模式下的进度阻尼速率：过渡几乎立即完成
const reducedMotionRate = 60.0

// 检查点点亮动画时长（秒）
const checkpointFlashDuration = 0.8

// 进度导轨几何
const (
	railMarginX = 60.0
	railY       = float64(config.WindowHeight) - 48.0
	railHeight  = 6.0
)

// checkpointFlash 记录一次检查点跨越，用于点亮动画
type checkpointFlash struct {
	section int
	count   int
	age     float64
}

// TourScene 巡游查看器的主场景。
//
// 每帧把输入（滚轮、拖拽、键盘、导轨点击）喂给序列器，
// 推进一个 Tick，然后只读地渲染快照。
type TourScene struct {
	sceneManager *show.SceneManager
	settings     *show.SettingsManager
	progressMgr  *show.ProgressManager

	seq    *timeline.Sequencer
	pulses *utils.PulseSource
	title  string

	stops    []timeline.Stop
	baseRate float64
	snapshot timeline.Snapshot

	flashes []checkpointFlash
}

// NewTourScene 构造巡游场景。配置非法时返回 *timeline.ConfigError。
func NewTourScene(sm *show.SceneManager, settings *show.SettingsManager, progressMgr *show.ProgressManager, cfg *timeline.Config, title string) (*TourScene, error) {
	seq, err := timeline.NewSequencer(*cfg)
	if err != nil {
		return nil, err
	}

	scene := &TourScene{
		sceneManager: sm,
		settings:     settings,
		progressMgr:  progressMgr,
		seq:          seq,
		pulses:       utils.NewPulseSource(),
		title:        title,
		stops:        seq.Stops(),
		baseRate:     seq.ProgressRate(),
		snapshot:     seq.Snapshot(),
	}

	seq.SetOnCheckpoint(func(section int, label string, count int) {
		log.Printf("[TourScene] Checkpoint: section=%s count=%d", label, count)
		scene.flashes = append(scene.flashes, checkpointFlash{section: section, count: count})
	})
	seq.SetOnStopChange(func(index int) {
		progressMgr.SetLastStop(index)
		if err := progressMgr.Save(); err != nil {
			log.Printf("[TourScene] Failed to persist stop %d: %v", index, err)
		}
	})

	// 应用减少动态效果设置
	if settings.GetSettings().ReducedMotion {
		seq.SetProgressRate(reducedMotionRate)
	}

	// 从上次停靠点继续
	if last := progressMgr.LastStop(); last > 0 {
		seq.JumpToStop(last)
		log.Printf("[TourScene] Resuming at stop %d", last)
	}

	return scene, nil
}

// Update 处理输入并推进序列器一帧。
func (ts *TourScene) Update(deltaTime float64) {
	ts.handleKeys()
	ts.handleRailClick()
	ts.handlePulses()

	ts.snapshot = ts.seq.Tick(deltaTime)

	// 推进检查点点亮动画，过期的丢弃
	alive := ts.flashes[:0]
	for _, f := range ts.flashes {
		f.age += deltaTime
		if f.age < checkpointFlashDuration {
			alive = append(alive, f)
		}
	}
	ts.flashes = alive
}

// handleKeys 处理键盘导航。
func (ts *TourScene) handleKeys() {
	// 数字键直达对应停靠点
	for i := 0; i < 10 && i < len(ts.stops); i++ {
		if inpututil.IsKeyJustPressed(ebiten.KeyDigit0 + ebiten.Key(i)) {
			ts.seq.JumpToStop(i)
		}
	}

	// 方向键逐站移动（越界由序列器收拢）
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		ts.seq.JumpToStop(ts.snapshot.StopIndex + 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) || inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		ts.seq.JumpToStop(ts.snapshot.StopIndex - 1)
	}

	// R 切换减少动态效果
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		reduced := !ts.settings.GetSettings().ReducedMotion
		ts.settings.SetReducedMotion(reduced)
		if reduced {
			ts.seq.SetProgressRate(reducedMotionRate)
		} else {
			ts.seq.SetProgressRate(ts.baseRate)
		}
		if err := ts.settings.Save(); err != nil {
			log.Printf("[TourScene] Failed to save settings: %v", err)
		}
		log.Printf("[TourScene] Reduced motion: %v", reduced)
	}
}

// handleRailClick 点击导轨上的停靠点标记直达该站。
func (ts *TourScene) handleRailClick() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mouseX, mouseY := ebiten.CursorPosition()

	// 只响应导轨附近的点击
	if float64(mouseY) < railY-16 || float64(mouseY) > railY+railHeight+16 {
		return
	}

	railWidth := float64(config.WindowWidth) - 2*railMarginX
	clicked := (float64(mouseX) - railMarginX) / railWidth
	if clicked < 0 || clicked > 1 {
		return
	}

	// 找最近的停靠点
	best := 0
	bestDist := 2.0
	for i, st := range ts.stops {
		dist := st.Progress - clicked
		if dist < 0 {
			dist = -dist
		}
		if dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	ts.seq.JumpToStop(best)
}

// handlePulses 把滚轮和拖拽脉冲按设置换算后入队。
func (ts *TourScene) handlePulses() {
	settings := ts.settings.GetSettings()
	for _, p := range ts.pulses.Poll() {
		direction := p.Direction
		if settings.InvertWheel {
			direction = -direction
		}
		ts.seq.OnWheelPulse(p.Magnitude*settings.WheelSensitivity, direction)
	}
}

// Draw 渲染快照。
func (ts *TourScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{16, 18, 26, 255})

	ts.drawSections(screen)
	ts.drawRail(screen)
	ts.drawVelocity(screen)
	ts.drawCameraReadout(screen)
}

// drawSections 绘制分区面板：透明度来自门控，检查点以刻度条展示。
func (ts *TourScene) drawSections(screen *ebiten.Image) {
	const (
		panelX      = 40.0
		panelWidth  = 280.0
		panelHeight = 64.0
		panelGap    = 16.0
	)

	for i, sec := range ts.snapshot.Sections {
		y := 60.0 + float64(i)*(panelHeight+panelGap)

		// ebitenutil.DrawRect 需要预乘透明度
		alpha := sec.Opacity
		panelColor := color.RGBA{
			R: uint8(40 * alpha),
			G: uint8(80 * alpha),
			B: uint8(140 * alpha),
			A: uint8(255 * alpha),
		}
		ebitenutil.DrawRect(screen, panelX, y, panelWidth, panelHeight, panelColor)

		if sec.Opacity > 0.05 {
			ebitenutil.DebugPrintAt(screen, sec.Label, int(panelX)+8, int(y)+6)
		}

		ts.drawCheckpoints(screen, i, sec, panelX, y+panelHeight-18)
	}
}

// drawCheckpoints 绘制某分区已跨越的检查点刻度。
// 最新跨越的刻度用指数缓出做一个点亮放大动画。
func (ts *TourScene) drawCheckpoints(screen *ebiten.Image, section int, sec timeline.PhaseState, x, y float64) {
	const (
		tickWidth  = 20.0
		tickHeight = 6.0
		tickGap    = 6.0
	)

	for c := 0; c < sec.ActiveCheckpoints; c++ {
		scale := 1.0
		if f, ok := ts.latestFlash(section); ok && c == f.count-1 {
			scale = utils.EaseOutExpo(f.age / checkpointFlashDuration)
		}
		w := tickWidth * scale
		h := tickHeight * scale
		tickX := x + 8 + float64(c)*(tickWidth+tickGap) + (tickWidth-w)/2
		tickY := y + (tickHeight-h)/2
		ebitenutil.DrawRect(screen, tickX, tickY, w, h, color.RGBA{255, 210, 90, 255})
	}
}

// latestFlash 返回某分区最近的点亮动画（若有）。
func (ts *TourScene) latestFlash(section int) (checkpointFlash, bool) {
	for i := len(ts.flashes) - 1; i >= 0; i-- {
		if ts.flashes[i].section == section {
			return ts.flashes[i], true
		}
	}
	return checkpointFlash{}, false
}

// drawRail 绘制底部进度导轨、停靠点标记和进度游标。
func (ts *TourScene) drawRail(screen *ebiten.Image) {
	railWidth := float64(config.WindowWidth) - 2*railMarginX

	ebitenutil.DrawRect(screen, railMarginX, railY, railWidth, railHeight, color.RGBA{50, 54, 66, 255})

	// 已走过的部分
	ebitenutil.DrawRect(screen, railMarginX, railY, railWidth*ts.snapshot.Progress, railHeight, color.RGBA{120, 180, 255, 255})

	// 停靠点标记
	for i, st := range ts.stops {
		markerX := railMarginX + railWidth*st.Progress
		size := 10.0
		markerColor := color.RGBA{150, 155, 170, 255}
		if i == ts.snapshot.StopIndex {
			size = 14.0
			markerColor = color.RGBA{255, 210, 90, 255}
		}
		ebitenutil.DrawRect(screen, markerX-size/2, railY+railHeight/2-size/2, size, size, markerColor)
		ebitenutil.DebugPrintAt(screen, st.Label, int(markerX)-len(st.Label)*3, int(railY)+14)
	}

	// 进度游标
	cursorX := railMarginX + railWidth*ts.snapshot.Progress
	ebitenutil.DrawRect(screen, cursorX-2, railY-6, 4, railHeight+12, color.RGBA{255, 255, 255, 255})
}

// drawVelocity 绘制右上角的速度条与次级效果强度。
func (ts *TourScene) drawVelocity(screen *ebiten.Image) {
	const (
		barWidth  = 160.0
		barHeight = 8.0
	)
	barX := float64(config.WindowWidth) - barWidth - 40
	barY := 24.0

	ebitenutil.DrawRect(screen, barX, barY, barWidth, barHeight, color.RGBA{50, 54, 66, 255})
	ebitenutil.DrawRect(screen, barX, barY, barWidth*ts.snapshot.Velocity, barHeight, color.RGBA{240, 120, 90, 255})

	effects := fmt.Sprintf("vel %.2f  kick %+.1f  dist %.2f",
		ts.snapshot.Velocity, ts.snapshot.FOVKick, ts.snapshot.Distortion)
	ebitenutil.DebugPrintAt(screen, effects, int(barX), int(barY)+12)
}

// drawCameraReadout 绘制左上角的相机位姿读数。
func (ts *TourScene) drawCameraReadout(screen *ebiten.Image) {
	cam := ts.snapshot.Camera
	lines := []string{
		ts.title,
		fmt.Sprintf("progress %.3f  stop %d/%d", ts.snapshot.Progress, ts.snapshot.StopIndex, len(ts.stops)-1),
		fmt.Sprintf("pos  (%.2f, %.2f, %.2f)", cam.Position.X, cam.Position.Y, cam.Position.Z),
		fmt.Sprintf("look (%.2f, %.2f, %.2f)", cam.LookAt.X, cam.LookAt.Y, cam.LookAt.Z),
		fmt.Sprintf("fov %.1f  roll %.2f", cam.FOV, cam.Roll),
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 12, 6+i*14)
	}
}

// SaveOnExit 退出时持久化设置与巡游进度。
func (ts *TourScene) SaveOnExit() bool {
	if err := ts.settings.Save(); err != nil {
		log.Printf("[TourScene] Failed to save settings on exit: %v", err)
	}
	ts.progressMgr.SetLastStop(ts.snapshot.StopIndex)
	if err := ts.progressMgr.Save(); err != nil {
		log.Printf("[TourScene] Failed to save progress on exit: %v", err)
		return false
	}
	return true
}
