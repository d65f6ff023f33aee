// Package circuitbreaker 实现熔断器模式（Circuit Breaker Pattern）
//
// 使用场景：保护写路径不被外部元数据服务拖垮
// 1. 元数据服务连续失败时快速失败，不再发起真实调用
// 2. 过一段时间后进入半开状态，放行少量探测请求
// 3. 探测成功则恢复，失败则继续熔断
//
// 状态转换：
//
//	CLOSED --连续失败达到阈值--> OPEN --超时--> HALF_OPEN --成功--> CLOSED
//	                                              └--失败--> OPEN
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	// StateClosed 关闭状态（正常放行所有请求）
	StateClosed State = iota

	// StateOpen 打开状态（快速失败，不调用下游）
	StateOpen

	// StateHalfOpen 半开状态（放行有限的探测请求）
	StateHalfOpen
)

// String 状态转字符串（便于日志）
func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// ErrOpenState 熔断器打开时拒绝请求
var ErrOpenState = errors.New("circuit breaker is open")

// ErrTooManyRequests 半开状态下探测名额已满
var ErrTooManyRequests = errors.New("too many requests in half-open state")

// Counts 调用统计
type Counts struct {
	Requests            uint32 // 当前窗口请求总数
	TotalSuccesses      uint32 // 成功总数
	TotalFailures       uint32 // 失败总数
	ConsecutiveFailures uint32 // 连续失败次数
}

// Config 熔断器配置
type Config struct {
	// MaxRequests 半开状态下允许的最大探测请求数
	MaxRequests uint32

	// Interval 关闭状态下统计窗口的重置周期（0表示不重置）
	Interval time.Duration

	// Timeout 打开状态持续多久后转为半开
	Timeout time.Duration

	// ReadyToTrip 根据统计判断是否应该熔断
	// 为nil时默认：连续失败>=5次
	ReadyToTrip func(counts Counts) bool
}

// CircuitBreaker 熔断器
type CircuitBreaker struct {
	name   string
	config Config

	mu          sync.Mutex
	state       State
	counts      Counts
	expiry      time.Time // 当前状态的到期时间（OPEN→HALF_OPEN、CLOSED窗口重置）
	halfOpenReq uint32    // 半开状态已放行的探测请求数
}

// NewCircuitBreaker 创建熔断器
func NewCircuitBreaker(name string, config Config) *CircuitBreaker {
	if config.MaxRequests == 0 {
		config.MaxRequests = 1
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.ReadyToTrip == nil {
		config.ReadyToTrip = func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 5
		}
	}

	cb := &CircuitBreaker{
		name:   name,
		config: config,
		state:  StateClosed,
	}
	cb.resetWindow(time.Now())
	return cb
}

// Execute 执行被保护的调用
// 返回ErrOpenState表示熔断中，调用方应视为下游不可用
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if err := cb.beforeRequest(); err != nil {
		return err
	}

	err := fn()
	cb.afterRequest(err == nil)
	return err
}

// State 返回当前状态
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.refreshState(time.Now())
	return cb.state
}

// Counts 返回当前统计
func (cb *CircuitBreaker) Counts() Counts {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.counts
}

func (cb *CircuitBreaker) beforeRequest() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := time.Now()
	cb.refreshState(now)

	switch cb.state {
	case StateOpen:
		return ErrOpenState
	case StateHalfOpen:
		if cb.halfOpenReq >= cb.config.MaxRequests {
			return ErrTooManyRequests
		}
		cb.halfOpenReq++
	}

	cb.counts.Requests++
	return nil
}

func (cb *CircuitBreaker) afterRequest(success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := time.Now()

	if success {
		cb.counts.TotalSuccesses++
		cb.counts.ConsecutiveFailures = 0
		if cb.state == StateHalfOpen {
			// 探测成功，恢复正常
			cb.setState(StateClosed, now)
		}
		return
	}

	cb.counts.TotalFailures++
	cb.counts.ConsecutiveFailures++

	switch cb.state {
	case StateClosed:
		if cb.config.ReadyToTrip(cb.counts) {
			cb.setState(StateOpen, now)
		}
	case StateHalfOpen:
		// 探测失败，继续熔断
		cb.setState(StateOpen, now)
	}
}

// refreshState 处理基于时间的状态迁移，调用方必须持有锁
func (cb *CircuitBreaker) refreshState(now time.Time) {
	switch cb.state {
	case StateOpen:
		if now.After(cb.expiry) {
			cb.setState(StateHalfOpen, now)
		}
	case StateClosed:
		if cb.config.Interval > 0 && now.After(cb.expiry) {
			cb.resetWindow(now)
		}
	}
}

// setState 状态迁移，调用方必须持有锁
func (cb *CircuitBreaker) setState(state State, now time.Time) {
	cb.state = state
	cb.counts = Counts{}
	cb.halfOpenReq = 0

	switch state {
	case StateOpen:
		cb.expiry = now.Add(cb.config.Timeout)
	case StateClosed:
		cb.resetWindow(now)
	default:
		cb.expiry = time.Time{}
	}
}

// resetWindow 重置关闭状态的统计窗口，调用方必须持有锁
func (cb *CircuitBreaker) resetWindow(now time.Time) {
	cb.counts = Counts{}
	if cb.config.Interval > 0 {
		cb.expiry = now.Add(cb.config.Interval)
	} else {
		cb.expiry = time.Time{}
	}
}
