package transport

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int

// 客户端可见业务码。0 表示成功，1-99 为通用错误，1000+ 为游戏语义错误。
const (
	OK           = 0
	InvalidParam = 1
	Unauthorized = 2

	SystemError        = 500
	StorageUnavailable = 501

	GameNotFound   = 1001
	TacticsInvalid = 1002
	SeasonOver     = 1003
	DayFailed      = 1004
)
