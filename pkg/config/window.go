package config

// 查看器窗口的逻辑尺寸。
// 实际窗口大小由 Ebitengine 自动缩放处理。
const (
	WindowWidth  = 960
	WindowHeight = 600
)
