package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	InitMetrics()

	if HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal未初始化")
	}
	if HTTPRequestDuration == nil {
		t.Error("HTTPRequestDuration未初始化")
	}
	if HTTPRequestsInProgress == nil {
		t.Error("HTTPRequestsInProgress未初始化")
	}
	if StorageOperationsTotal == nil {
		t.Error("StorageOperationsTotal未初始化")
	}
	if BooksCreatedTotal == nil {
		t.Error("BooksCreatedTotal未初始化")
	}

	// 重复调用不应panic（sync.Once保护重复注册）
	InitMetrics()
}

// TestObserveStorageOperation 测试存储操作打点
func TestObserveStorageOperation(t *testing.T) {
	InitMetrics()

	before := getCounterVecValue(t, StorageOperationsTotal, "memory", "get_data", "ok")
	ObserveStorageOperation("memory", "get_data", nil)
	after := getCounterVecValue(t, StorageOperationsTotal, "memory", "get_data", "ok")
	if after != before+1 {
		t.Errorf("成功操作计数错误: before=%f, after=%f", before, after)
	}

	before = getCounterVecValue(t, StorageOperationsTotal, "file", "save_data", "error")
	ObserveStorageOperation("file", "save_data", errors.New("disk full"))
	after = getCounterVecValue(t, StorageOperationsTotal, "file", "save_data", "error")
	if after != before+1 {
		t.Errorf("失败操作计数错误: before=%f, after=%f", before, after)
	}
}

// TestBooksCreatedCounter 测试图书创建计数器
func TestBooksCreatedCounter(t *testing.T) {
	InitMetrics()

	before := getCounterValue(t, BooksCreatedTotal)
	BooksCreatedTotal.Inc()
	BooksCreatedTotal.Inc()
	after := getCounterValue(t, BooksCreatedTotal)

	if after != before+2 {
		t.Errorf("计数器值错误: before=%f, after=%f", before, after)
	}
}

// getCounterValue 读取Counter当前值
func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	if err := counter.Write(m); err != nil {
		t.Fatalf("读取Counter失败: %v", err)
	}
	return m.GetCounter().GetValue()
}

// getCounterVecValue 读取CounterVec指定标签组合的当前值
func getCounterVecValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	counter, err := vec.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("获取指标失败: %v", err)
	}
	return getCounterValue(t, counter)
}
