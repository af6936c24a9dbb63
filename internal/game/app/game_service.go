package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"FootballManager/internal/game/domain"
	"FootballManager/internal/shared/security"
	"FootballManager/modules/kit/logx"
	"FootballManager/modules/kit/randx"

	"go.uber.org/zap"
)

// 开局预算：28 亿 KR。
const InitialBudget int64 = 2800000000

// 每 4 个比赛日做一次月次成长结算。
const growthInterval = 4

// GameService 是对外的游戏应用服务：开档、推进、战术、查询、存读档。
//
// 并发约束：同一存档的全部写操作按 saveId 串行化（每档一把锁），
// 不同存档互不阻塞。
type GameService struct {
	repo    SaveRepo
	src     randx.Source
	log     logx.Logger
	builder *TeamBuilder
	league  *LeagueService
	growth  *GrowthEngine

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewGameService(repo SaveRepo, src randx.Source, log logx.Logger, builder *TeamBuilder, league *LeagueService, growth *GrowthEngine) *GameService {
	return &GameService{
		repo:    repo,
		src:     src,
		log:     log,
		builder: builder,
		league:  league,
		growth:  growth,
		locks:   make(map[string]*sync.Mutex),
	}
}

func (s *GameService) lockOf(saveId string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.locks[saveId]; ok {
		return l
	}
	l := &sync.Mutex{}
	s.locks[saveId] = l
	return l
}

// NewGameResult 是开档结果。
type NewGameResult struct {
	SaveId string
	Token  string
	League *domain.League
}

// NewGame 开一局新档：自动编队、初始化联赛、落第一份存档并签发存档令牌。
func (s *GameService) NewGame(ctx context.Context, managerName, teamName string, teamType domain.TeamType) (*NewGameResult, error) {
	if managerName == "" {
		managerName = "プレイヤー"
	}
	if teamName == "" {
		teamName = "マイチーム"
	}
	if teamType == "" {
		teamType = domain.TeamBalanced
	}

	team := s.builder.BuildAutoTeam(InitialBudget, teamType)
	team.Id = "player_team"
	team.Name = teamName
	team.IsPlayer = true

	league := s.league.InitializeLeague(team, 1)

	saveId := fmt.Sprintf("save_%d_%d", time.Now().UnixMilli(), s.src.Int(1000, 9999))
	snap := &SaveSnapshot{
		SaveId:        saveId,
		ManagerName:   managerName,
		TeamName:      teamName,
		League:        league,
		Settings:      GameSettings{AutoSave: true},
		SchemaVersion: SchemaVersion,
		SavedAt:       time.Now(),
	}
	if err := s.repo.Save(ctx, snap); err != nil {
		return nil, ErrUnavailable.WithReason(ReasonSaveRepoUnavailable).WithCause(err)
	}

	token, err := security.Award(saveId)
	if err != nil {
		return nil, ErrInternalServer.WithReason(ReasonTokenIssue).WithCause(err)
	}

	s.log.WithContext(ctx).Info("新档创建完成",
		zap.String("save_id", saveId),
		zap.String("team", teamName),
		zap.String("team_type", string(teamType)),
	)
	return &NewGameResult{SaveId: saveId, Token: token, League: league}, nil
}

// AdvanceDayResult 是单日推进结果。
type AdvanceDayResult struct {
	Report    *MatchDayReport
	Growth    *GrowthReport
	Recovered []*domain.Player
}

// AdvanceDay 推进一个比赛日。
//
// 流程：比赛日结算 → （每 4 日）玩家队月次成长 → 全联盟伤停消化 → 自动保存。
// 比赛日结算失败时联赛状态保持原样，错误原样上抛，不落盘。
func (s *GameService) AdvanceDay(ctx context.Context, saveId string) (*AdvanceDayResult, error) {
	lock := s.lockOf(saveId)
	lock.Lock()
	defer lock.Unlock()

	snap, err := s.loadSnapshot(ctx, saveId)
	if err != nil {
		return nil, err
	}
	league := snap.League

	if league.Phase == domain.PhaseFinished || league.Day > league.MaxDay {
		return nil, ErrSeasonFinished.WithReason(ReasonSeasonOver).WithData("season", league.Season)
	}

	report, err := s.league.ProcessMatchDay(league, league.Day)
	if err != nil {
		return nil, err
	}

	result := &AdvanceDayResult{Report: report}

	if league.Day%growthInterval == 0 {
		if playerTeam := league.PlayerTeam(); playerTeam != nil {
			result.Growth = s.growth.ProcessMonthlyGrowth(playerTeam, playerTeam.Coach)
		}
	}

	// 一个比赛日按一周计，伤停每次推进扣 7 天
	for _, team := range league.Teams {
		result.Recovered = append(result.Recovered, s.growth.ProcessInjuryRecovery(team.Players)...)
	}

	if snap.Settings.AutoSave {
		snap.SavedAt = time.Now()
		if err := s.repo.Save(ctx, snap); err != nil {
			return nil, ErrUnavailable.WithReason(ReasonSaveRepoUnavailable).WithCause(err)
		}
	}

	s.log.WithContext(ctx).Info("比赛日推进完成",
		zap.String("save_id", saveId),
		zap.Int("day", report.Day),
		zap.String("phase", league.Phase),
	)
	return result, nil
}

// SetTactics 更新玩家球队战术。
func (s *GameService) SetTactics(ctx context.Context, saveId string, tactics domain.Tactics) error {
	if !tactics.Valid() {
		return ErrInvalidTactics.WithReason(ReasonTacticsInvalid).
			WithData("formation", tactics.Formation).
			WithData("attack", tactics.Attack).
			WithData("defense", tactics.Defense)
	}

	lock := s.lockOf(saveId)
	lock.Lock()
	defer lock.Unlock()

	snap, err := s.loadSnapshot(ctx, saveId)
	if err != nil {
		return err
	}
	playerTeam := snap.League.PlayerTeam()
	if playerTeam == nil {
		return ErrGameNotFound.WithReason(ReasonGameNotFound).WithData("save_id", saveId)
	}
	playerTeam.Tactics = tactics

	snap.SavedAt = time.Now()
	if err := s.repo.Save(ctx, snap); err != nil {
		return ErrUnavailable.WithReason(ReasonSaveRepoUnavailable).WithCause(err)
	}
	return nil
}

// PlayerTeam 返回玩家球队。
func (s *GameService) PlayerTeam(ctx context.Context, saveId string) (*domain.Team, error) {
	snap, err := s.loadSnapshot(ctx, saveId)
	if err != nil {
		return nil, err
	}
	team := snap.League.PlayerTeam()
	if team == nil {
		return nil, ErrGameNotFound.WithReason(ReasonGameNotFound).WithData("save_id", saveId)
	}
	return team, nil
}

// Standings 返回当前积分榜。
func (s *GameService) Standings(ctx context.Context, saveId string) ([]*domain.Standing, error) {
	snap, err := s.loadSnapshot(ctx, saveId)
	if err != nil {
		return nil, err
	}
	return snap.League.Standings, nil
}

// Schedule 返回全部赛程。
func (s *GameService) Schedule(ctx context.Context, saveId string) ([]*domain.MatchDay, error) {
	snap, err := s.loadSnapshot(ctx, saveId)
	if err != nil {
		return nil, err
	}
	return snap.League.Schedule, nil
}

// LeagueState 返回完整联赛状态。
func (s *GameService) LeagueState(ctx context.Context, saveId string) (*domain.League, error) {
	snap, err := s.loadSnapshot(ctx, saveId)
	if err != nil {
		return nil, err
	}
	return snap.League, nil
}

// SaveGame 手动落一份存档。
func (s *GameService) SaveGame(ctx context.Context, saveId string) error {
	lock := s.lockOf(saveId)
	lock.Lock()
	defer lock.Unlock()

	snap, err := s.loadSnapshot(ctx, saveId)
	if err != nil {
		return err
	}
	snap.SavedAt = time.Now()
	if err := s.repo.Save(ctx, snap); err != nil {
		return ErrUnavailable.WithReason(ReasonSaveRepoUnavailable).WithCause(err)
	}
	return nil
}

// LoadGame 读档；主档缺失或损坏时回退最近一份备份。
func (s *GameService) LoadGame(ctx context.Context, saveId string) (*SaveSnapshot, error) {
	snap, err := s.loadSnapshot(ctx, saveId)
	if err == nil {
		return snap, nil
	}
	if !errors.Is(err, ErrGameNotFound) && !errors.Is(err, ErrSaveNotFound) {
		return nil, err
	}

	backup, berr := s.repo.LoadBackup(ctx, saveId)
	if berr != nil {
		return nil, err
	}
	s.log.WithContext(ctx).Warn("主档不可用，使用备份恢复", zap.String("save_id", saveId))
	return backup, nil
}

// DeleteGame 删除存档及其备份。
func (s *GameService) DeleteGame(ctx context.Context, saveId string) error {
	lock := s.lockOf(saveId)
	lock.Lock()
	defer lock.Unlock()

	if err := s.repo.Delete(ctx, saveId); err != nil {
		return ErrUnavailable.WithReason(ReasonSaveRepoUnavailable).WithCause(err)
	}
	s.log.WithContext(ctx).Info("存档已删除", zap.String("save_id", saveId))
	return nil
}

func (s *GameService) loadSnapshot(ctx context.Context, saveId string) (*SaveSnapshot, error) {
	snap, err := s.repo.Load(ctx, saveId)
	if err != nil {
		if errors.Is(err, ErrSaveNotFound) {
			return nil, ErrGameNotFound.WithReason(ReasonGameNotFound).WithData("save_id", saveId)
		}
		return nil, ErrUnavailable.WithReason(ReasonSaveRepoUnavailable).WithCause(err)
	}
	if snap == nil || snap.League == nil {
		return nil, ErrGameNotFound.WithReason(ReasonGameNotFound).WithData("save_id", saveId)
	}
	return snap, nil
}
