package app

import (
	"fmt"

	"FootballManager/internal/game/domain"
	"FootballManager/modules/kit/logx"
	"FootballManager/modules/kit/randx"

	"go.uber.org/zap"
)

// LeagueService 驱动赛季生命周期：初始化、逐日推进、积分榜、赛季收官。
type LeagueService struct {
	src     randx.Source
	log     logx.Logger
	builder *TeamBuilder
	matches *MatchEngine
	growth  *GrowthEngine
}

func NewLeagueService(src randx.Source, log logx.Logger, builder *TeamBuilder, matches *MatchEngine, growth *GrowthEngine) *LeagueService {
	return &LeagueService{
		src:     src,
		log:     log,
		builder: builder,
		matches: matches,
		growth:  growth,
	}
}

// 联赛规模固定 12 队，双循环 22 轮。
const (
	LeagueTeamCount = 12
	npcTeamCount    = LeagueTeamCount - 1
)

var npcTeamNames = []string{
	"東京フェニックス",
	"横浜マリナーズ",
	"大阪サンダー",
	"名古屋ドラゴンズ",
	"福岡ホークス",
	"仙台イーグルス",
	"神戸ヴィクトリー",
	"埼玉ライオンズ",
	"千葉ジェッツ",
	"広島カープス",
	"札幌ファイターズ",
}

// InitializeLeague 创建新赛季：挂上玩家球队，生成 11 支 NPC，铺赛程、出初始积分榜。
func (s *LeagueService) InitializeLeague(playerTeam *domain.Team, season int) *domain.League {
	teams := make([]*domain.Team, 0, LeagueTeamCount)
	teams = append(teams, playerTeam)
	teams = append(teams, s.generateNPCTeams(npcTeamCount)...)

	league := &domain.League{
		Season:       season,
		Day:          1,
		MaxDay:       (LeagueTeamCount - 1) * 2,
		Phase:        domain.PhaseRegular,
		Teams:        teams,
		PlayerTeamId: playerTeam.Id,
		Matches:      []*domain.MatchResult{},
	}
	league.Schedule = GenerateSchedule(teams)
	league.Standings = domain.CalculateStandings(teams)

	s.log.Info("联赛初始化完成",
		zap.Int("season", season),
		zap.Int("teams", len(teams)),
		zap.Int("max_day", league.MaxDay),
	)
	return league
}

func (s *LeagueService) generateNPCTeams(count int) []*domain.Team {
	teamTypes := []domain.TeamType{
		domain.TeamBalanced,
		domain.TeamOffensive,
		domain.TeamDefensive,
		domain.TeamYouth,
		domain.TeamExperienced,
	}

	npcTeams := make([]*domain.Team, 0, count)
	for i := 0; i < count; i++ {
		teamType := randx.Choice(s.src, teamTypes)
		team := s.builder.BuildAutoTeam(s.generateNPCBudget(), teamType)

		team.Id = fmt.Sprintf("npc_team_%d", i+1)
		if i < len(npcTeamNames) {
			team.Name = npcTeamNames[i]
		} else {
			team.Name = fmt.Sprintf("NPCチーム%d", i+1)
		}
		team.IsPlayer = false
		team.TeamType = teamType
		team.AiLevel = s.generateAILevel()
		team.Reputation = s.src.Int(30, 90)
		team.Characteristics = s.generateCharacteristics(teamType)

		npcTeams = append(npcTeams, team)
	}
	return npcTeams
}

// generateNPCBudget 按弱小/中坚/强豪 3:4:3 加权抽预算档（20 亿～35 亿 KR）。
func (s *LeagueService) generateNPCBudget() int64 {
	type budgetTier struct {
		min, max int64
	}
	tiers := []budgetTier{
		{min: 2000000000, max: 2500000000},
		{min: 2500000000, max: 3000000000},
		{min: 3000000000, max: 3500000000},
	}
	tier := randx.WeightedChoice(s.src, tiers, []int{3, 4, 3})
	return int64(s.src.Int(int(tier.min), int(tier.max)))
}

// generateAILevel 按 3:4:3 加权抽 AI 等级（高等级会做战术应变）。
func (s *LeagueService) generateAILevel() int {
	levels := []int{
		s.src.Int(3, 5),
		s.src.Int(5, 7),
		s.src.Int(7, 10),
	}
	return randx.WeightedChoice(s.src, levels, []int{3, 4, 3})
}

func (s *LeagueService) generateCharacteristics(teamType domain.TeamType) *domain.Characteristics {
	c := &domain.Characteristics{
		Aggression:  s.src.Int(40, 80),
		Discipline:  s.src.Int(40, 80),
		Consistency: s.src.Int(40, 80),
		Morale:      s.src.Int(60, 100),
		FanSupport:  s.src.Int(30, 90),
		MarketValue: s.src.Int(50, 120),
	}

	switch teamType {
	case domain.TeamOffensive:
		c.Aggression += 15
		c.Discipline -= 10
	case domain.TeamDefensive:
		c.Discipline += 15
		c.Aggression -= 10
	case domain.TeamYouth:
		c.Morale += 10
		c.Consistency -= 15
	case domain.TeamExperienced:
		c.Consistency += 15
		c.Morale -= 5
	}

	c.Clamp()
	return c
}

// MatchDayReport 是一轮比赛日的推进结果。
type MatchDayReport struct {
	Day       int
	Matches   []*domain.MatchResult
	Standings []*domain.Standing
	Phase     string
	SeasonEnd bool
}

// ProcessMatchDay 结算一轮比赛日。
//
// 失败语义：任何赛程数据问题（如对阵引用了不存在的球队）返回
// LEAGUE_DAY_FAILED，联赛状态保持原样不动；调用方可以原地重试或排障。
// 结算分两段：先把当日所有对阵全部模拟完，再统一应用到球队状态。
func (s *LeagueService) ProcessMatchDay(league *domain.League, day int) (*MatchDayReport, error) {
	daySchedule := league.ScheduleOf(day)
	if daySchedule == nil {
		// 空轮次合法，直接推进
		s.log.Warn("当日无赛程", zap.Int("day", day))
		return s.advanceDay(league, day, nil), nil
	}

	type pendingMatch struct {
		fixture *domain.Fixture
		home    *domain.Team
		away    *domain.Team
		result  *domain.MatchResult
	}

	// 先整轮校验，避免打到一半才发现数据坏了
	pending := make([]*pendingMatch, 0, len(daySchedule.Fixtures))
	for _, fixture := range daySchedule.Fixtures {
		if fixture.Played {
			continue
		}
		home := league.TeamById(fixture.Home.Id)
		away := league.TeamById(fixture.Away.Id)
		if home == nil || away == nil {
			return nil, ErrLeagueDayFailed.
				WithReason(ReasonFixtureTeamMissing).
				WithData("fixture", fixture.Id).
				WithData("day", day)
		}
		pending = append(pending, &pendingMatch{fixture: fixture, home: home, away: away})
	}

	for _, m := range pending {
		s.adjustNPCTactics(m.home, m.away, league)

		result := s.matches.Simulate(m.home, m.away, day)
		result.Id = m.fixture.Id
		m.result = result
	}

	// 统一应用
	results := make([]*domain.MatchResult, 0, len(pending))
	for _, m := range pending {
		s.matches.ApplyResult(m.result, m.home, m.away)
		s.simulateNPCReactions(m.home, m.away, m.result)
		m.fixture.Played = true
		league.Matches = append(league.Matches, m.result)
		results = append(results, m.result)
	}

	report := s.advanceDay(league, day, results)
	s.log.Info("比赛日结算完成", zap.Int("day", day), zap.Int("matches", len(results)))
	return report, nil
}

// advanceDay 更新积分榜与联赛统计并推进日历，赛季打满则收官。
func (s *LeagueService) advanceDay(league *domain.League, day int, results []*domain.MatchResult) *MatchDayReport {
	league.Standings = domain.CalculateStandings(league.Teams)

	for _, r := range results {
		league.Stats.TotalGoals += r.HomeScore + r.AwayScore
		league.Stats.TotalMatches++
	}
	if league.Stats.TotalMatches > 0 {
		league.Stats.AvgGoalsPerMatch = float64(league.Stats.TotalGoals) / float64(league.Stats.TotalMatches)
	}

	next := day + 1
	if next > league.MaxDay+1 {
		next = league.MaxDay + 1
	}
	league.Day = next

	report := &MatchDayReport{
		Day:       day,
		Matches:   results,
		Standings: league.Standings,
		Phase:     league.Phase,
	}
	if league.Day > league.MaxDay && league.Phase != domain.PhaseFinished {
		league.Phase = domain.PhaseFinished
		s.processSeasonEnd(league)
		report.Phase = league.Phase
		report.SeasonEnd = true
	}
	return report
}

// adjustNPCTactics 比赛前让 NPC 按 AI 等级与特性微调战术。
func (s *LeagueService) adjustNPCTactics(home, away *domain.Team, league *domain.League) {
	for _, team := range []*domain.Team{home, away} {
		if team.IsPlayer || team.AiLevel == 0 {
			continue
		}
		s.adjustTeamTactics(team, league)
	}
}

func (s *LeagueService) adjustTeamTactics(team *domain.Team, league *domain.League) {
	rank := domain.RankOf(team.Id, league.Standings)

	// 高等级 AI 有 30% 概率按排名调攻守
	if team.AiLevel >= 7 && s.src.Int(1, 100) <= 30 {
		if rank <= 3 {
			if team.Tactics.Defense < domain.DefenseRetreat {
				team.Tactics.Defense++
			}
		} else if rank >= 10 {
			if team.Tactics.Attack < domain.AttackPossession {
				team.Tactics.Attack++
			}
		}
	}

	if team.Characteristics == nil {
		return
	}
	if team.Characteristics.Aggression > 70 && s.src.Int(1, 100) <= 20 {
		if team.Tactics.Attack < domain.AttackPossession {
			team.Tactics.Attack++
		}
	}
	if team.Characteristics.Discipline > 70 && s.src.Int(1, 100) <= 20 {
		if team.Tactics.Defense < domain.DefenseRetreat {
			team.Tactics.Defense++
		}
	}
}

// simulateNPCReactions 赛后更新 NPC 的士气与球迷支持。
func (s *LeagueService) simulateNPCReactions(home, away *domain.Team, result *domain.MatchResult) {
	for i, team := range []*domain.Team{home, away} {
		if team.IsPlayer || team.Characteristics == nil {
			continue
		}

		isWin := (i == 0 && result.HomeScore > result.AwayScore) ||
			(i == 1 && result.AwayScore > result.HomeScore)
		isDraw := result.HomeScore == result.AwayScore

		switch {
		case isWin:
			team.Characteristics.Morale += s.src.Int(3, 7)
		case isDraw:
			team.Characteristics.Morale += s.src.Int(-2, 2)
		default:
			team.Characteristics.Morale -= s.src.Int(3, 7)
		}

		if isWin && result.HomeScore+result.AwayScore >= 3 {
			team.Characteristics.FanSupport++
		} else if !isWin && !isDraw {
			team.Characteristics.FanSupport--
		}
		team.Characteristics.Clamp()
	}
}

// processSeasonEnd 赛季收官：定最终排名、季后赛名额、赛季统计，再给 NPC 做休赛期处理。
func (s *LeagueService) processSeasonEnd(league *domain.League) {
	s.log.Info("赛季结束", zap.Int("season", league.Season))

	league.FinalStandings = domain.CalculateStandings(league.Teams)

	playoffCount := 3
	if len(league.FinalStandings) < playoffCount {
		playoffCount = len(league.FinalStandings)
	}
	league.PlayoffTeams = league.FinalStandings[:playoffCount]

	league.SeasonStats = s.calculateSeasonStats(league)

	s.processNPCDrift(league)
	s.prepareNextSeason(league)
}

func (s *LeagueService) calculateSeasonStats(league *domain.League) *domain.SeasonStats {
	stats := &domain.SeasonStats{}
	if len(league.FinalStandings) > 0 {
		stats.Champion = league.FinalStandings[0]
	}
	stats.TopScorer = findTopScorer(league)

	for i, t := range league.Teams {
		if i == 0 || t.Stats.GoalsFor > stats.MostGoals {
			stats.MostGoals = t.Stats.GoalsFor
		}
		if i == 0 || t.Stats.GoalsAgainst < stats.BestDefense {
			stats.BestDefense = t.Stats.GoalsAgainst
		}
	}
	return stats
}

func findTopScorer(league *domain.League) *domain.TopScorer {
	var top *domain.TopScorer
	maxGoals := 0
	for _, team := range league.Teams {
		for _, p := range team.Players {
			if p.TotalGoals > maxGoals {
				maxGoals = p.TotalGoals
				top = &domain.TopScorer{Name: p.Name, Team: team.Name, Goals: p.TotalGoals}
			}
		}
	}
	return top
}

// processNPCDrift 休赛期 NPC 特性自然漂移，成绩驱动声望升降。
func (s *LeagueService) processNPCDrift(league *domain.League) {
	for _, team := range league.NPCTeams() {
		if team.Characteristics != nil {
			c := team.Characteristics
			c.Aggression += s.src.Int(-2, 2)
			c.Discipline += s.src.Int(-2, 2)
			c.Consistency += s.src.Int(-2, 2)
			c.Morale += s.src.Int(-2, 2)
			c.FanSupport += s.src.Int(-2, 2)
			c.MarketValue += s.src.Int(-2, 2)
			c.Clamp()
		}

		rank := domain.RankOf(team.Id, league.FinalStandings)
		if rank <= 3 {
			team.Reputation = clampInt(team.Reputation+s.src.Int(2, 5), 0, 100)
		} else if rank >= 10 {
			team.Reputation = clampInt(team.Reputation-s.src.Int(2, 5), 0, 100)
		}
	}
}

// prepareNextSeason 给 NPC 阵容做一次成长结算和约 10% 的换血。
func (s *LeagueService) prepareNextSeason(league *domain.League) {
	for _, team := range league.NPCTeams() {
		if len(team.Players) == 0 {
			continue
		}
		s.growth.ProcessMonthlyGrowth(team, team.Coach)
		s.simulateNPCTransfers(team)
	}
}

// simulateNPCTransfers 清退引退选手，再随机替换约 10%（保底 11 人）。
func (s *LeagueService) simulateNPCTransfers(team *domain.Team) {
	active := make([]*domain.Player, 0, len(team.Players))
	for _, p := range team.Players {
		if !p.Retired {
			active = append(active, p)
		}
	}
	team.Players = active

	transferCount := len(team.Players) / 10
	for i := 0; i < transferCount; i++ {
		if len(team.Players) <= 11 {
			break
		}
		idx := s.src.Int(0, len(team.Players)-1)
		old := team.Players[idx]
		team.Players[idx] = s.builder.GeneratePlayer(domain.TierRegular, old.Position)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
