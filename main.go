package main

import (
	"flag"
	"log"

	"github.com/decker502/scrollrig/pkg/app"
	"github.com/decker502/scrollrig/pkg/config"
	"github.com/decker502/scrollrig/pkg/show"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	tourPath := flag.String("tour", "", "巡游 YAML 文件路径（为空使用内置演示巡游）")
	tuningPath := flag.String("tuning", "", "调参覆盖文件路径")
	flag.Parse()

	viewer, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		TourPath:   *tourPath,
		TuningPath: *tuningPath,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("scrollrig - 滚动巡游查看器")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal(err)
	}

	// 窗口关闭后给当前场景一次保存状态的机会
	if scene := viewer.GetSceneManager().GetCurrentScene(); scene != nil {
		if saveable, ok := scene.(show.Saveable); ok {
			if !saveable.SaveOnExit() {
				log.Printf("[Main] Scene state could not be saved on exit")
			}
		}
	}
}
