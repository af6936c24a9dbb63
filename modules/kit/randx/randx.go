package randx

import (
	"math/rand"
	"sync"
	"time"
)

// Source 是可注入的随机源。
//
// 约束：
// - 引擎只依赖本接口，不直接触碰全局随机数
// - 测试可以注入固定种子或脚本化的实现来复现任意分支
type Source interface {
	// Int 返回 [min, max] 闭区间内的整数。min > max 时返回 min。
	Int(min, max int) int
	// Float 返回 [min, max) 区间内的浮点数。
	Float(min, max float64) float64
	// Chance 按百分比概率返回 true（percent 取 0~100）。
	Chance(percent float64) bool
}

// LockedSource 是默认实现：math/rand + 互斥锁，支持指定种子复现。
type LockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New 创建时间种子的随机源。
func New() *LockedSource {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded 创建固定种子的随机源（可复现实验/测试）。
func NewSeeded(seed int64) *LockedSource {
	return &LockedSource{r: rand.New(rand.NewSource(seed))}
}

func (s *LockedSource) Int(min, max int) int {
	if min > max {
		return min
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.r.Intn(max-min+1)
}

func (s *LockedSource) Float(min, max float64) float64 {
	if min >= max {
		return min
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.r.Float64()*(max-min)
}

func (s *LockedSource) Chance(percent float64) bool {
	if percent <= 0 {
		return false
	}
	if percent >= 100 {
		return true
	}
	return s.Float(0, 100) < percent
}

// Choice 从切片中等概率取一个元素。空切片返回零值。
func Choice[T any](src Source, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[src.Int(0, len(items)-1)]
}

// Shuffle 返回打乱后的拷贝（Fisher-Yates），不修改原切片。
func Shuffle[T any](src Source, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := src.Int(0, i)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// WeightedChoice 按权重取一个元素。权重和 <= 0 时退化为等概率。
func WeightedChoice[T any](src Source, items []T, weights []int) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	if len(weights) != len(items) {
		return Choice(src, items)
	}
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return Choice(src, items)
	}
	roll := src.Int(1, total)
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		roll -= w
		if roll <= 0 {
			return items[i]
		}
	}
	return items[len(items)-1]
}
