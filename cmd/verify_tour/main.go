// verify_tour 无头验证程序：加载巡游配置，跑一段确定性的
// 推进序列，检查进度收敛、相机插值和检查点事件是否符合预期。
//
// 用法:
//
//	go run ./cmd/verify_tour [-tour path/to/tour.yaml] [-ticks 600]
//
// 全部检查通过时退出码为 0，否则为 1。
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decker502/scrollrig/pkg/config"
	"github.com/decker502/scrollrig/pkg/timeline"
)

var (
	tourPath = flag.String("tour", "", "巡游 YAML 文件路径（为空使用内置演示巡游）")
	ticks    = flag.Int("ticks", 600, "模拟的帧数")
)

func main() {
	flag.Parse()

	var cfg *timeline.Config
	title := "built-in demo tour"
	if *tourPath != "" {
		loaded, loadedTitle, err := config.LoadTour(*tourPath)
		if err != nil {
			fmt.Printf("FAIL: 巡游配置加载失败: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
		title = loadedTitle
	} else {
		cfg = config.DefaultTour()
	}

	seq, err := timeline.NewSequencer(*cfg)
	if err != nil {
		fmt.Printf("FAIL: 序列器构造失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("=== verify_tour: %s ===\n", title)
	fmt.Printf("停靠点 %d 个，关键帧 %d 个，分区 %d 个\n\n",
		len(cfg.Stops), len(cfg.Path), len(cfg.Windows))

	failures := 0
	check := func(ok bool, format string, args ...interface{}) {
		if ok {
			fmt.Printf("PASS: "+format+"\n", args...)
		} else {
			fmt.Printf("FAIL: "+format+"\n", args...)
			failures++
		}
	}

	// 检查点事件按分区只增不减且不重发
	eventsOrdered := true
	eventCount := 0
	lastCounts := map[int]int{}
	seq.SetOnCheckpoint(func(section int, label string, count int) {
		eventCount++
		if count <= lastCounts[section] {
			eventsOrdered = false
		}
		lastCounts[section] = count
		fmt.Printf("  event: section=%s count=%d\n", label, count)
	})

	// 跳到最后一站，模拟推进
	lastIndex := len(cfg.Stops) - 1
	seq.JumpToStop(lastIndex)

	const dt = 1.0 / 60.0
	prevProgress := seq.Snapshot().Progress
	monotone := true
	var snap timeline.Snapshot
	for i := 0; i < *ticks; i++ {
		snap = seq.Tick(dt)
		if snap.Progress < prevProgress-1e-9 {
			monotone = false
		}
		prevProgress = snap.Progress
	}

	target := cfg.Stops[lastIndex].Progress
	fmt.Printf("\n最终快照: progress=%.4f stop=%d fov=%.2f vel=%.4f\n\n",
		snap.Progress, snap.StopIndex, snap.Camera.FOV, snap.Velocity)

	check(monotone, "单向推进时进度单调不回退")
	check(snap.StopIndex == lastIndex, "停靠点到达 %d（实际 %d）", lastIndex, snap.StopIndex)
	check(target-snap.Progress < 0.01, "进度收敛到目标 %.2f（实际 %.4f）", target, snap.Progress)
	check(snap.Velocity < 0.05, "静止后速度估计衰减（实际 %.4f）", snap.Velocity)
	check(snap.Progress >= 0 && snap.Progress <= 1, "进度保持在 [0,1]")

	check(eventsOrdered, "检查点事件共 %d 次，各分区计数递增无重发", eventCount)

	// 配置校验路径：非法配置必须被拒绝
	bad := *cfg
	bad.Stops = nil
	if _, err := timeline.NewSequencer(bad); err == nil {
		check(false, "空停靠点配置被拒绝")
	} else {
		check(true, "空停靠点配置被拒绝: %v", err)
	}

	fmt.Println()
	if failures > 0 {
		fmt.Printf("=== %d 项检查失败 ===\n", failures)
		os.Exit(1)
	}
	fmt.Println("=== 全部检查通过 ===")
}
