package app

import (
	"errors"

	"FootballManager/modules/kit/errx"
)

// Code 表示应用层错误码（通常更贴近“业务语义/对外协议”）。
type Code = errx.Code

const (
	CodeGameNotFound    Code = "GAME_NOT_FOUND"
	CodeSaveNotFound    Code = "SAVE_NOT_FOUND"
	CodeInvalidTactics  Code = "INVALID_TACTICS"
	CodeSeasonFinished  Code = "SEASON_FINISHED"
	CodeLeagueDayFailed Code = "LEAGUE_DAY_FAILED"
	// CodeInternalServer 复用 kit 的统一系统码（跨服务一致，便于告警/排障）。
	CodeInternalServer Code = errx.CodeInternal
	// CodeUnavailable 复用 kit 的统一系统码（跨服务一致，便于告警/排障）。
	CodeUnavailable Code = errx.CodeUnavailable
)

// Error 复用通用错误模型：对外语义(code/msg)、上下文(data)、溯源链(cause)、系统错误一次栈(stack)。
type Error = errx.Error

// 常用错误定义（哨兵错误）：禁止直接修改其 data/cause（通过 WithData/WithCause 派生新对象）。
var (
	ErrGameNotFound    = errx.NewBiz(CodeGameNotFound, "存档不存在")
	ErrSaveNotFound    = errx.NewBiz(CodeSaveNotFound, "没有可恢复的存档")
	ErrInvalidTactics  = errx.NewBiz(CodeInvalidTactics, "战术取值非法")
	ErrSeasonFinished  = errx.NewBiz(CodeSeasonFinished, "赛季已结束")
	ErrLeagueDayFailed = errx.NewSys(CodeLeagueDayFailed, "比赛日结算失败")
	ErrInternalServer  = errx.ErrInternal
	ErrUnavailable     = errx.ErrUnavailable
)

// GetErrorReasonCode 从错误链中提取 reason code；没有则返回空串。
func GetErrorReasonCode(err error) string {
	var rp interface{ Reason() string }
	if !errors.As(err, &rp) {
		return ""
	}
	return rp.Reason()
}

// GetErrorMessage 从错误链中提取对外 msg；没有则返回空串。
func GetErrorMessage(err error) string {
	var mp interface{ Msg() string }
	if !errors.As(err, &mp) {
		return ""
	}
	return mp.Msg()
}
