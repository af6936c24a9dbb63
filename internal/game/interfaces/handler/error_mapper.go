package handler

import (
	"context"
	"errors"

	"FootballManager/internal/game/app"
	"FootballManager/internal/shared/transport"
)

func mapToClientCode(err error) int {
	switch {
	case errors.Is(err, app.ErrGameNotFound), errors.Is(err, app.ErrSaveNotFound):
		return transport.GameNotFound
	case errors.Is(err, app.ErrInvalidTactics):
		return transport.TacticsInvalid
	case errors.Is(err, app.ErrSeasonFinished):
		return transport.SeasonOver
	case errors.Is(err, app.ErrLeagueDayFailed):
		return transport.DayFailed
	case errors.Is(err, app.ErrUnavailable):
		return transport.StorageUnavailable
	default:
		return transport.SystemError
	}
}

// HandleError 把应用层错误映射成客户端业务码与提示文案，
// 同时把 reason 写入 access 日志上下文。
func HandleError(ctx context.Context, err error) (int, string) {
	reason := app.GetErrorReasonCode(err)
	if reason != "" {
		transport.SetErrorReason(ctx, reason)
	}

	code := mapToClientCode(err)
	if code == transport.SystemError || code == transport.StorageUnavailable {
		return code, "システムが混み合っています。しばらくしてからもう一度お試しください"
	}
	if msg := app.GetErrorMessage(err); msg != "" {
		return code, msg
	}
	return code, "リクエストを処理できませんでした"
}
