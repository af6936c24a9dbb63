package app

type Reason struct {
	Code    string
	Message string
}

func (r Reason) ReasonCode() string {
	return r.Code
}

func NewReason(c, m string) Reason {
	return Reason{
		Code:    c,
		Message: m,
	}
}

var (
	// 业务拒绝 reason（服务内枚举）。
	ReasonGameNotFound   = NewReason("GAME_NOT_FOUND", "存档不存在")
	ReasonTacticsInvalid = NewReason("TACTICS_INVALID", "战术取值非法")
	ReasonSeasonOver     = NewReason("SEASON_OVER", "赛季已结束")
)

var (
	// 技术错误 reason（服务内枚举），用于日志与排障。
	ReasonSaveRepoUnavailable = NewReason("SAVE_REPO_UNAVAILABLE", "存档仓储不可用")
	ReasonFixtureTeamMissing  = NewReason("FIXTURE_TEAM_MISSING", "赛程引用的球队不存在")
	ReasonTokenIssue          = NewReason("TOKEN_ISSUE", "令牌签发失败")
)
