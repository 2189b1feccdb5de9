package timeline

import "testing"

func testStops() []Stop {
	return []Stop{
		{Index: 0, Progress: 0.0, Label: "hero"},
		{Index: 1, Progress: 0.3, Label: "ethos"},
		{Index: 2, Progress: 0.6, Label: "projects"},
		{Index: 3, Progress: 1.0, Label: "bio"},
	}
}

// TestStepperSingleStepPerBurst 测试一次脉冲爆发只推进一个停靠点：
// 冷却窗口内到达的 50 个脉冲被丢弃
func TestStepperSingleStepPerBurst(t *testing.T) {
	s := NewSnapStepper(testStops(), 3.0, 0.6)

	for i := 0; i < 50; i++ {
		s.Pulse(1.0, +1)
	}

	if s.Index() != 1 {
		t.Errorf("50 个脉冲后下标 = %d, 期望恰好推进到 1", s.Index())
	}
	if s.State() != StepperLocked {
		t.Error("步进后应处于 LOCKED 状态")
	}
}

// TestStepperCooldownUnlock 测试冷却到期后可以再次步进
func TestStepperCooldownUnlock(t *testing.T) {
	s := NewSnapStepper(testStops(), 3.0, 0.6)

	s.Pulse(3.0, +1)
	if s.Index() != 1 {
		t.Fatalf("首次步进后下标 = %d, 期望 1", s.Index())
	}

	// 冷却未结束，脉冲无效
	s.Update(0.3)
	s.Pulse(10.0, +1)
	if s.Index() != 1 {
		t.Errorf("冷却期间下标变为 %d, 期望保持 1", s.Index())
	}

	// 冷却结束，新手势再推进一格
	s.Update(0.31)
	if s.State() != StepperIdle {
		t.Fatal("冷却到期后应回到 IDLE")
	}
	s.Pulse(3.0, +1)
	if s.Index() != 2 {
		t.Errorf("解锁后步进下标 = %d, 期望 2", s.Index())
	}
}

// TestStepperThresholdBoundary 测试恰好等于阈值的脉冲触发步进（>= 而非 >）
func TestStepperThresholdBoundary(t *testing.T) {
	s := NewSnapStepper(testStops(), 3.0, 0.6)

	s.Pulse(2.9999, +1)
	if s.Index() != 0 {
		t.Fatal("未达阈值不应步进")
	}
	s.Pulse(0.0001, +1)
	if s.Index() != 1 {
		t.Errorf("累积恰好等于阈值时下标 = %d, 期望 1", s.Index())
	}
}

// TestStepperNegativeDirection 测试负方向步进与下界收拢
func TestStepperNegativeDirection(t *testing.T) {
	s := NewSnapStepper(testStops(), 3.0, 0.6)
	s.SetIndex(2)

	s.Pulse(3.0, -1)
	if s.Index() != 1 {
		t.Errorf("负方向步进后下标 = %d, 期望 1", s.Index())
	}

	// 在下标 0 处继续后退是静默空操作
	s.SetIndex(0)
	s.Update(1.0)
	s.Pulse(5.0, -1)
	if s.Index() != 0 {
		t.Errorf("下界后退后下标 = %d, 期望保持 0", s.Index())
	}
}

// TestStepperUpperBoundary 测试越过末尾停靠点是静默空操作
func TestStepperUpperBoundary(t *testing.T) {
	s := NewSnapStepper(testStops(), 3.0, 0.6)
	s.SetIndex(3)

	s.Pulse(10.0, +1)
	if s.Index() != 3 {
		t.Errorf("末尾前进后下标 = %d, 期望保持 3", s.Index())
	}
}

// TestStepperMixedPulses 测试正负脉冲的带符号累积
func TestStepperMixedPulses(t *testing.T) {
	s := NewSnapStepper(testStops(), 3.0, 0.6)

	s.Pulse(2.0, +1)
	s.Pulse(1.5, -1) // 累积 0.5
	s.Pulse(2.0, +1) // 累积 2.5
	if s.Index() != 0 {
		t.Fatal("累积未达阈值不应步进")
	}
	s.Pulse(0.5, +1) // 累积 3.0
	if s.Index() != 1 {
		t.Errorf("带符号累积达到阈值后下标 = %d, 期望 1", s.Index())
	}
}

// TestStepperSetIndexClamps 测试直接跳转的越界收拢
func TestStepperSetIndexClamps(t *testing.T) {
	s := NewSnapStepper(testStops(), 3.0, 0.6)

	s.SetIndex(99)
	if s.Index() != 3 {
		t.Errorf("SetIndex(99) 后下标 = %d, 期望 3", s.Index())
	}
	s.SetIndex(-5)
	if s.Index() != 0 {
		t.Errorf("SetIndex(-5) 后下标 = %d, 期望 0", s.Index())
	}
}

// TestStepperDiscardDuringLock 测试冷却期间的脉冲被丢弃：
// 解锁后累积器从零起步，不会带着残留幅度立即触发
func TestStepperDiscardDuringLock(t *testing.T) {
	s := NewSnapStepper(testStops(), 3.0, 0.6)

	s.Pulse(3.0, +1) // 步进并锁定
	s.Pulse(2.9, +1) // 冷却期间，丢弃
	s.Update(0.7)    // 解锁

	s.Pulse(0.2, +1)
	if s.Index() != 1 {
		t.Errorf("解锁后的小脉冲触发了步进, 下标 = %d", s.Index())
	}
}
