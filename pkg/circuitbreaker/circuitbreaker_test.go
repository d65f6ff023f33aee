package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

var errDownstream = errors.New("downstream failed")

// TestCircuitBreaker_ClosedState 测试关闭状态正常放行
func TestCircuitBreaker_ClosedState(t *testing.T) {
	cb := NewCircuitBreaker("test", Config{})

	// 成功调用不改变状态
	for i := 0; i < 10; i++ {
		if err := cb.Execute(func() error { return nil }); err != nil {
			t.Fatalf("成功调用不应返回错误: %v", err)
		}
	}

	if cb.State() != StateClosed {
		t.Errorf("期望状态CLOSED，实际%s", cb.State())
	}
}

// TestCircuitBreaker_TripsAfterConsecutiveFailures 测试连续失败触发熔断
func TestCircuitBreaker_TripsAfterConsecutiveFailures(t *testing.T) {
	cb := NewCircuitBreaker("test", Config{
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	// 前3次失败会被放行
	for i := 0; i < 3; i++ {
		err := cb.Execute(func() error { return errDownstream })
		if !errors.Is(err, errDownstream) {
			t.Fatalf("第%d次调用期望下游错误，实际: %v", i+1, err)
		}
	}

	if cb.State() != StateOpen {
		t.Fatalf("连续失败3次后期望状态OPEN，实际%s", cb.State())
	}

	// 熔断中的调用快速失败，不触碰下游
	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrOpenState) {
		t.Errorf("熔断中期望ErrOpenState，实际: %v", err)
	}
	if called {
		t.Error("熔断中不应调用下游")
	}
}

// TestCircuitBreaker_HalfOpenRecovery 测试半开探测成功后恢复
func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb := NewCircuitBreaker("test", Config{
		Timeout: 50 * time.Millisecond,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 1
		},
	})

	// 触发熔断
	cb.Execute(func() error { return errDownstream })
	if cb.State() != StateOpen {
		t.Fatalf("期望状态OPEN，实际%s", cb.State())
	}

	// 等待超时进入半开
	time.Sleep(80 * time.Millisecond)
	if cb.State() != StateHalfOpen {
		t.Fatalf("超时后期望状态HALF_OPEN，实际%s", cb.State())
	}

	// 探测成功，恢复关闭
	if err := cb.Execute(func() error { return nil }); err != nil {
		t.Fatalf("探测调用失败: %v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("探测成功后期望状态CLOSED，实际%s", cb.State())
	}
}

// TestCircuitBreaker_HalfOpenFailureReopens 测试半开探测失败后继续熔断
func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker("test", Config{
		Timeout: 50 * time.Millisecond,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 1
		},
	})

	cb.Execute(func() error { return errDownstream })
	time.Sleep(80 * time.Millisecond)

	// 探测失败，回到打开状态
	cb.Execute(func() error { return errDownstream })
	if cb.State() != StateOpen {
		t.Errorf("探测失败后期望状态OPEN，实际%s", cb.State())
	}
}

// TestCircuitBreaker_HalfOpenLimitsProbes 测试半开状态限制探测数量
func TestCircuitBreaker_HalfOpenLimitsProbes(t *testing.T) {
	cb := NewCircuitBreaker("test", Config{
		MaxRequests: 1,
		Timeout:     50 * time.Millisecond,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 1
		},
	})

	cb.Execute(func() error { return errDownstream })
	time.Sleep(80 * time.Millisecond)

	// 第一个探测占住名额不返回时，第二个请求被拒绝
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		cb.Execute(func() error {
			<-release
			return nil
		})
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	err := cb.Execute(func() error { return nil })
	if !errors.Is(err, ErrTooManyRequests) {
		t.Errorf("超出探测名额期望ErrTooManyRequests，实际: %v", err)
	}

	close(release)
	<-done
}
