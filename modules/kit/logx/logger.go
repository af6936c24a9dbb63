package logx

import (
	"context"

	"go.uber.org/zap"
)

// Logger 是各组件依赖的最小日志接口。
//
// 约束：
// - 只有四个级别加 ctx 透传，不往上加能力
// - 实现方负责把 ctx 里的 trace/span 落到字段里
type Logger interface {
	Info(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Debug(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	WithContext(ctx context.Context) Logger
}
