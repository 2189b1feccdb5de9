// inspect_tour 巡游配置检查工具：加载并校验 YAML 巡游定义，
// 打印解析后的停靠点、相机路径、分区窗口和调参表。
//
// 用法:
//
//	go run ./cmd/inspect_tour -tour path/to/tour.yaml
//	go run ./cmd/inspect_tour            # 检查内置演示巡游
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decker502/scrollrig/pkg/config"
	"github.com/decker502/scrollrig/pkg/timeline"
)

var (
	tourPath   = flag.String("tour", "", "巡游 YAML 文件路径（为空使用内置演示巡游）")
	tuningPath = flag.String("tuning", "", "调参覆盖文件路径")
	samples    = flag.Int("samples", 11, "相机路径采样点数量")
)

func main() {
	flag.Parse()

	var cfg *timeline.Config
	title := "built-in demo tour"
	if *tourPath != "" {
		loaded, loadedTitle, err := config.LoadTour(*tourPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "加载失败: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
		title = loadedTitle
	} else {
		cfg = config.DefaultTour()
	}

	if err := config.LoadTuningOverrides(cfg, *tuningPath); err != nil {
		fmt.Fprintf(os.Stderr, "调参覆盖加载失败: %v\n", err)
		os.Exit(1)
	}

	// 构造序列器做一次完整校验
	if _, err := timeline.NewSequencer(*cfg); err != nil {
		fmt.Fprintf(os.Stderr, "配置校验失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("=== %s ===\n\n", title)

	fmt.Printf("停靠点 (%d):\n", len(cfg.Stops))
	for _, st := range cfg.Stops {
		fmt.Printf("  [%d] %-12s progress=%.3f\n", st.Index, st.Label, st.Progress)
	}

	fmt.Printf("\n相机关键帧 (%d):\n", len(cfg.Path))
	for i, k := range cfg.Path {
		fmt.Printf("  [%d] p=%.3f pos=(%.1f, %.1f, %.1f) look=(%.1f, %.1f, %.1f) fov=%.1f roll=%.1f\n",
			i, k.Progress,
			k.Position.X, k.Position.Y, k.Position.Z,
			k.LookAt.X, k.LookAt.Y, k.LookAt.Z,
			k.FOV, k.Roll)
	}

	fmt.Printf("\n分区窗口 (%d):\n", len(cfg.Windows))
	for i, w := range cfg.Windows {
		fmt.Printf("  [%d] %-12s [%.3f, %.3f] checkpoints=%v\n",
			i, w.Label, w.Enter, w.Exit, w.Checkpoints)
	}

	t := cfg.Tuning
	fmt.Printf("\n调参:\n")
	fmt.Printf("  progress_rate=%.2f edge_band=%.4f\n", t.ProgressRate, t.EdgeBand)
	fmt.Printf("  pulse_threshold=%.2f step_cooldown=%.2f\n", t.PulseThreshold, t.StepCooldown)
	fmt.Printf("  velocity scale=%.2f rise=%.1f fall=%.1f\n", t.VelocityScale, t.VelocityRise, t.VelocityFall)
	fmt.Printf("  fov_kick=%.1f distortion_max=%.2f\n", t.FOVKick, t.DistortionMax)

	// 沿路径均匀采样，直观查看插值结果
	track, err := timeline.NewTrack(cfg.Path)
	if err != nil {
		// NewSequencer 已校验过，正常不可达
		fmt.Fprintf(os.Stderr, "路径构造失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\n路径采样 (%d):\n", *samples)
	for i := 0; i < *samples; i++ {
		p := float64(i) / float64(*samples-1)
		pose := track.Locate(p).Pose()
		fmt.Printf("  p=%.2f pos=(%6.2f, %5.2f, %6.2f) fov=%5.1f roll=%5.1f\n",
			p, pose.Position.X, pose.Position.Y, pose.Position.Z, pose.FOV, pose.Roll)
	}
}
