package timeline

import (
	"math"
	"testing"
)

// TestDamp 测试指数阻尼的基本行为
func TestDamp(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		target   float64
		rate     float64
		dt       float64
		expected float64
	}{
		{"dt为零返回当前值", 5.0, 10.0, 3.0, 0.0, 5.0},
		{"dt为负返回当前值", 5.0, 10.0, 3.0, -0.1, 5.0},
		{"速率为零直接到达目标", 5.0, 10.0, 0.0, 0.1, 10.0},
		{"速率为负直接到达目标", 5.0, 10.0, -1.0, 0.1, 10.0},
		{"已在目标处保持不动", 10.0, 10.0, 3.0, 0.1, 10.0},
		{"一个时间常数后剩余 1/e", 0.0, 1.0, 1.0, 1.0, 1.0 - 1.0/math.E},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Damp(tt.current, tt.target, tt.rate, tt.dt)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("Damp(%v, %v, %v, %v) = %v, 期望 %v",
					tt.current, tt.target, tt.rate, tt.dt, result, tt.expected)
			}
		})
	}
}

// TestDampFrameRateIndependence 测试帧率无关性：
// 总时长相同时，一次大步长与 N 次小步长的结果必须一致（1e-4 以内）
func TestDampFrameRateIndependence(t *testing.T) {
	const (
		current = 3.0
		target  = 42.0
		rate    = 5.0
		total   = 1.5
	)

	oneShot := Damp(current, target, rate, total)

	for _, n := range []int{2, 10, 60, 250, 1000} {
		stepped := current
		dt := total / float64(n)
		for i := 0; i < n; i++ {
			stepped = Damp(stepped, target, rate, dt)
		}
		if math.Abs(stepped-oneShot) > 1e-4 {
			t.Errorf("N=%d: 分步结果 %v 与单步结果 %v 偏差超过 1e-4", n, stepped, oneShot)
		}
	}
}

// TestDampNeverOvershoots 测试阻尼逼近永不越过目标
func TestDampNeverOvershoots(t *testing.T) {
	value := 0.0
	const target = 1.0
	for i := 0; i < 300; i++ {
		next := Damp(value, target, 8.0, 1.0/60.0)
		if next < value {
			t.Fatalf("第 %d 帧出现回退: %v -> %v", i, value, next)
		}
		if next > target {
			t.Fatalf("第 %d 帧越过目标: %v", i, next)
		}
		value = next
	}
}

// TestSmoothStep 测试平滑阶梯缓动
func TestSmoothStep(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"终点", 1.0, 1.0},
		{"中点", 0.5, 0.5},
		{"四分之一", 0.25, 0.15625}, // 0.25² * (3 - 0.5)
		{"低于零被收拢", -0.5, 0.0},
		{"高于一被收拢", 1.5, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SmoothStep(tt.input)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("SmoothStep(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

// TestClamp01 测试范围收拢
func TestClamp01(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{-1.0, 0.0},
		{0.0, 0.0},
		{0.3, 0.3},
		{1.0, 1.0},
		{2.5, 1.0},
	}

	for _, tt := range tests {
		if got := Clamp01(tt.input); got != tt.expected {
			t.Errorf("Clamp01(%v) = %v, 期望 %v", tt.input, got, tt.expected)
		}
	}
}
