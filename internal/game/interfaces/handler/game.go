package handler

import (
	"context"
	nethttp "net/http"

	"FootballManager/internal/game/app"
	"FootballManager/internal/game/domain"
	"FootballManager/internal/game/dto"
	"FootballManager/internal/shared/transport"
	"FootballManager/modules/kit/logx"

	"github.com/gin-gonic/gin"
)

// Game 是对浏览器客户端的 HTTP 入口。
type Game struct {
	service *app.GameService
	log     logx.Logger
}

func NewGame(service *app.GameService, log logx.Logger) *Game {
	return &Game{service: service, log: log}
}

func (h *Game) RegisterRoutes(group *gin.RouterGroup) {
	games := group.Group("/api/v1/games")
	games.POST("", h.NewGameHandler)

	authed := games.Group("", SaveAuth())
	authed.POST("/advance", h.AdvanceDay)
	authed.GET("/team", h.Team)
	authed.PUT("/tactics", h.SetTactics)
	authed.GET("/standings", h.Standings)
	authed.GET("/schedule", h.Schedule)
	authed.GET("/league", h.League)
	authed.POST("/save", h.SaveGame)
	authed.POST("/load", h.LoadGame)
	authed.DELETE("", h.DeleteGame)
}

func (h *Game) NewGameHandler(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.NewGameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}

	result, err := h.service.NewGame(ctx, req.ManagerName, req.TeamName, domain.TeamType(req.TeamType))
	if err != nil {
		ReportError("game new game", err)
		h.error(ctx, c, err)
		return
	}
	h.ok(c, dto.NewGameResp{
		SaveId:   result.SaveId,
		Token:    result.Token,
		Season:   result.League.Season,
		Day:      result.League.Day,
		MaxDay:   result.League.MaxDay,
		TeamName: result.League.PlayerTeam().Name,
	})
}

func (h *Game) AdvanceDay(c *gin.Context) {
	ctx := c.Request.Context()

	result, err := h.service.AdvanceDay(ctx, SaveIdFrom(c))
	if err != nil {
		ReportError("game advance day", err)
		h.error(ctx, c, err)
		return
	}
	h.ok(c, dto.FromAdvance(result))
}

func (h *Game) Team(c *gin.Context) {
	ctx := c.Request.Context()

	team, err := h.service.PlayerTeam(ctx, SaveIdFrom(c))
	if err != nil {
		ReportError("game query team", err)
		h.error(ctx, c, err)
		return
	}
	h.ok(c, dto.FromTeam(team))
}

func (h *Game) SetTactics(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.TacticsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}

	tactics := domain.Tactics{Formation: req.Formation, Attack: req.Attack, Defense: req.Defense}
	if err := h.service.SetTactics(ctx, SaveIdFrom(c), tactics); err != nil {
		ReportError("game set tactics", err)
		h.error(ctx, c, err)
		return
	}
	h.ok(c, dto.FromTactics(tactics))
}

func (h *Game) Standings(c *gin.Context) {
	ctx := c.Request.Context()

	standings, err := h.service.Standings(ctx, SaveIdFrom(c))
	if err != nil {
		ReportError("game query standings", err)
		h.error(ctx, c, err)
		return
	}
	h.ok(c, dto.FromStandings(standings))
}

func (h *Game) Schedule(c *gin.Context) {
	ctx := c.Request.Context()

	schedule, err := h.service.Schedule(ctx, SaveIdFrom(c))
	if err != nil {
		ReportError("game query schedule", err)
		h.error(ctx, c, err)
		return
	}
	h.ok(c, dto.FromSchedule(schedule))
}

func (h *Game) League(c *gin.Context) {
	ctx := c.Request.Context()

	league, err := h.service.LeagueState(ctx, SaveIdFrom(c))
	if err != nil {
		ReportError("game query league", err)
		h.error(ctx, c, err)
		return
	}
	h.ok(c, dto.FromLeague(league))
}

func (h *Game) SaveGame(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.service.SaveGame(ctx, SaveIdFrom(c)); err != nil {
		ReportError("game manual save", err)
		h.error(ctx, c, err)
		return
	}
	h.ok(c, nil)
}

func (h *Game) LoadGame(c *gin.Context) {
	ctx := c.Request.Context()

	snap, err := h.service.LoadGame(ctx, SaveIdFrom(c))
	if err != nil {
		ReportError("game load save", err)
		h.error(ctx, c, err)
		return
	}

	resp := dto.LoadResp{
		SaveId:      snap.SaveId,
		ManagerName: snap.ManagerName,
		TeamName:    snap.TeamName,
		SavedAt:     snap.SavedAt.Format("2006-01-02T15:04:05Z07:00"),
		League:      dto.FromLeague(snap.League),
	}
	if team := snap.League.PlayerTeam(); team != nil {
		tv := dto.FromTeam(team)
		resp.Team = &tv
	}
	h.ok(c, resp)
}

func (h *Game) DeleteGame(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.service.DeleteGame(ctx, SaveIdFrom(c)); err != nil {
		ReportError("game delete save", err)
		h.error(ctx, c, err)
		return
	}
	h.ok(c, nil)
}

func (h *Game) ok(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, dto.Success(transport.OK, data))
}

func (h *Game) fail(c *gin.Context, code int, msg string) {
	c.JSON(nethttp.StatusOK, dto.Error(code, msg))
}

func (h *Game) error(ctx context.Context, c *gin.Context, err error) {
	code, msg := HandleError(ctx, err)
	h.fail(c, code, msg)
}
