package interfaces

import (
	"FootballManager/internal/game/app"
	"FootballManager/internal/game/interfaces/handler"
	"FootballManager/modules/kit/logx"
	"FootballManager/modules/kit/randx"

	"github.com/gin-gonic/gin"
)

// Module 组装 game 上下文：引擎、应用服务与 HTTP 入口。
type Module struct {
	Service *app.GameService
	Handler *handler.Game
}

func New(repo app.SaveRepo, src randx.Source, log logx.Logger) *Module {
	builder := app.NewTeamBuilder(src, log)
	matches := app.NewMatchEngine(src, log)
	growth := app.NewGrowthEngine(src, log)
	league := app.NewLeagueService(src, log, builder, matches, growth)
	service := app.NewGameService(repo, src, log, builder, league, growth)

	return &Module{
		Service: service,
		Handler: handler.NewGame(service, log),
	}
}

func (m *Module) Register(group *gin.RouterGroup) {
	m.Handler.RegisterRoutes(group)
}
