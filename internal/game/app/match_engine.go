package app

import (
	"fmt"
	"math"
	"sort"
	"time"

	"FootballManager/internal/game/domain"
	coachcfg "FootballManager/internal/shared/gameconfig/coach"
	"FootballManager/modules/kit/logx"
	"FootballManager/modules/kit/randx"

	"go.uber.org/zap"
)

// MatchEngine 负责单场比赛模拟。
//
// 约束：
// - Simulate 是只读计算，不改动任何球队/选手状态
// - 落库与统计更新由 ApplyResult 单独执行，联赛引擎在整个比赛日
//   全部模拟成功后才批量应用，保证失败时状态不被污染
type MatchEngine struct {
	src randx.Source
	log logx.Logger
}

func NewMatchEngine(src randx.Source, log logx.Logger) *MatchEngine {
	return &MatchEngine{src: src, log: log}
}

// 主场加成。
const homeAdvantage = 1.1

// sideData 是单侧参赛数据快照。
type sideData struct {
	team    *domain.Team
	tactics domain.Tactics
	players []*domain.Player
	coach   *domain.Coach
}

// Simulate 模拟一场比赛并返回结果。内部异常退化为随机结果（Fallback 标记）。
func (e *MatchEngine) Simulate(home, away *domain.Team, day int) (result *domain.MatchResult) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn("比赛模拟失败，使用随机结果兜底",
				zap.Any("panic", r),
				zap.String("home", home.Name),
				zap.String("away", away.Name),
			)
			result = e.fallbackResult(home, away, day)
		}
	}()

	homeData := sideData{team: home, tactics: home.Tactics, players: home.HealthyPlayers(), coach: home.Coach}
	awayData := sideData{team: away, tactics: away.Tactics, players: away.HealthyPlayers(), coach: away.Coach}

	homePower := e.teamPower(homeData)
	awayPower := e.teamPower(awayData)

	// 战术相性：阵型相性 + 攻守相性，合成 1.0±0.1×advantage
	fHome, fAway := domain.FormationAdvantage(homeData.tactics.Formation, awayData.tactics.Formation)
	adHome, adAway := domain.AttackDefenseAdvantage(
		homeData.tactics.Attack, awayData.tactics.Defense,
		homeData.tactics.Defense, awayData.tactics.Attack,
	)
	homeTotal := homePower * (1.0 + (fHome+adHome)*0.1) * homeAdvantage
	awayTotal := awayPower * (1.0 + (fAway+adAway)*0.1)

	events := e.simulateEvents(homeTotal, awayTotal, homeData, awayData)

	homeScore, awayScore := 0, 0
	for _, ev := range events {
		if ev.Type != domain.EventGoal {
			continue
		}
		if ev.Side == domain.SideHome {
			homeScore++
		} else {
			awayScore++
		}
	}

	return &domain.MatchResult{
		Id:              fmt.Sprintf("result_%d_%d", day, time.Now().UnixMilli()),
		Day:             day,
		Home:            domain.TeamRef{Id: home.Id, Name: home.Name},
		Away:            domain.TeamRef{Id: away.Id, Name: away.Name},
		HomeScore:       homeScore,
		AwayScore:       awayScore,
		Events:          events,
		Stats:           statsFromEvents(events),
		PowerDifference: homeTotal - awayTotal,
		Played:          true,
	}
}

// ApplyResult 把比赛结果落到两队状态：胜负积分、进失球、选手出场与进球数。
func (e *MatchEngine) ApplyResult(result *domain.MatchResult, home, away *domain.Team) {
	home.Stats.Record(result.HomeScore, result.AwayScore)
	away.Stats.Record(result.AwayScore, result.HomeScore)

	for _, ev := range result.Events {
		if ev.Type != domain.EventGoal || ev.Player == "" {
			continue
		}
		team := home
		if ev.Side == domain.SideAway {
			team = away
		}
		if p := team.FindPlayer(ev.Player); p != nil {
			p.TotalGoals++
		}
	}

	for _, p := range home.Players {
		p.TotalGames++
	}
	for _, p := range away.Players {
		p.TotalGames++
	}
}

// teamPower 计算单侧综合战力，clamp [30,95]。
func (e *MatchEngine) teamPower(side sideData) float64 {
	if len(side.players) == 0 {
		return 50
	}

	lineup := selectStartingEleven(side.players, side.tactics.Formation)
	if len(lineup) == 0 {
		return 50
	}

	sum := 0
	for _, p := range lineup {
		sum += p.Power()
	}
	avgPower := float64(sum) / float64(len(lineup))

	coachBonus := 1.0
	if side.coach != nil {
		coachBonus = e.coachBonus(side.coach, side.tactics)
	}
	tacticalBonus := tacticalBonus(side.tactics, lineup)
	chemistry := teamChemistry(lineup, side.coach)

	return clampFloat64(avgPower*coachBonus*tacticalBonus*chemistry, 30, 95)
}

// selectStartingEleven 按阵型的位置名额选战力最高的首发。
// 名额不够时有多少上多少，不报错。
func selectStartingEleven(players []*domain.Player, formation int) []*domain.Player {
	slots := domain.FormationSlotsOf(formation)
	lineup := make([]*domain.Player, 0, 11)

	for _, entry := range []struct {
		position domain.Position
		count    int
	}{
		{domain.PositionGK, slots.GK},
		{domain.PositionDF, slots.DF},
		{domain.PositionMF, slots.MF},
		{domain.PositionFW, slots.FW},
	} {
		candidates := make([]*domain.Player, 0, len(players))
		for _, p := range players {
			if p.Position == entry.position {
				candidates = append(candidates, p)
			}
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Power() > candidates[j].Power()
		})
		if len(candidates) > entry.count {
			candidates = candidates[:entry.count]
		}
		lineup = append(lineup, candidates...)
	}
	return lineup
}

// coachBonus 由监督四维合计与战术相性得出，clamp [0.8,1.3]。
func (e *MatchEngine) coachBonus(coach *domain.Coach, tactics domain.Tactics) float64 {
	bonus := 1.0 + float64(coach.AbilitySum()-24)*0.01

	compatible := coachcfg.Catalog.TacticsOf(coach.Type)
	if containsIndex(compatible.Formations, tactics.Formation) {
		bonus += 0.05
	}
	if containsIndex(compatible.Attacks, tactics.Attack) {
		bonus += 0.03
	}
	if containsIndex(compatible.Defenses, tactics.Defense) {
		bonus += 0.03
	}
	return clampFloat64(bonus, 0.8, 1.3)
}

// tacticalBonus 由攻守风格和首发均值匹配度得出，clamp [0.9,1.2]。
func tacticalBonus(tactics domain.Tactics, lineup []*domain.Player) float64 {
	bonus := 1.0

	var speedSum, powerSum, techSum int
	for _, p := range lineup {
		speedSum += p.Abilities[domain.AbilitySpeed]
		powerSum += p.Abilities[domain.AbilityPower]
		techSum += p.Abilities[domain.AbilityTechnique]
	}
	n := float64(len(lineup))
	avgSpeed := float64(speedSum) / n
	avgPower := float64(powerSum) / n
	avgTechnique := float64(techSum) / n

	switch tactics.Attack {
	case domain.AttackFast:
		bonus += (avgSpeed - 70) * 0.002
	case domain.AttackBalanced:
		bonus += ((avgSpeed+avgTechnique)/2 - 70) * 0.001
	case domain.AttackPossession:
		bonus += (avgTechnique - 70) * 0.002
	}

	switch tactics.Defense {
	case domain.DefensePress:
		bonus += (avgSpeed - 70) * 0.001
	case domain.DefenseBalanced:
		bonus += 0.02
	case domain.DefenseRetreat:
		bonus += (avgPower - 70) * 0.001
	}

	return clampFloat64(bonus, 0.9, 1.2)
}

// teamChemistry 由经验均值、监督共情、年龄偏差得出，clamp [0.85,1.15]。
func teamChemistry(lineup []*domain.Player, coach *domain.Coach) float64 {
	chemistry := 1.0

	var expSum int
	var ageSum float64
	for _, p := range lineup {
		exp := p.Experience
		if exp == 0 {
			exp = 50
		}
		expSum += exp
		ageSum += p.Age
	}
	n := float64(len(lineup))
	chemistry += (float64(expSum)/n - 50) * 0.003

	if coach != nil {
		chemistry += float64(coach.Abilities[domain.CoachEmpathy]) * 0.005
	}

	chemistry -= math.Abs(ageSum/n-26) * 0.01
	return clampFloat64(chemistry, 0.85, 1.15)
}

// simulateEvents 每 10 分钟一次攻防判定，90 分钟共 9 轮。
func (e *MatchEngine) simulateEvents(homePower, awayPower float64, homeData, awayData sideData) []domain.MatchEvent {
	events := make([]domain.MatchEvent, 0, 16)
	totalPower := homePower + awayPower

	for minute := 10; minute <= 90; minute += 10 {
		homeChance := homePower / totalPower * 100
		awayChance := awayPower / totalPower * 100

		if float64(e.src.Int(1, 100)) <= homeChance*0.3 {
			if ev, ok := e.attackEvent(domain.SideHome, minute, homeData, awayData); ok {
				events = append(events, ev)
			}
		}
		if float64(e.src.Int(1, 100)) <= awayChance*0.3 {
			if ev, ok := e.attackEvent(domain.SideAway, minute, awayData, homeData); ok {
				events = append(events, ev)
			}
		}

		// 其他事件（黄牌、角球等）
		if e.src.Int(1, 100) <= 15 {
			if ev, ok := e.miscEvent(minute, homeData, awayData); ok {
				events = append(events, ev)
			}
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Minute < events[j].Minute
	})
	return events
}

// attackEvent 进行一次攻防对抗：进球、射偏或无事发生。
func (e *MatchEngine) attackEvent(side string, minute int, attacker, defender sideData) (domain.MatchEvent, bool) {
	attackPower := attackPowerOf(attacker)
	defensePower := defensePowerOf(defender)

	successRate := clampFloat64(attackPower/defensePower*20, 5, 40)
	if float64(e.src.Int(1, 100)) <= successRate {
		scorer := e.selectScorer(attacker.players)
		name := "Unknown"
		if scorer != nil {
			name = scorer.Name
		}
		return domain.MatchEvent{
			Type:        domain.EventGoal,
			Side:        side,
			Minute:      minute,
			Player:      name,
			Description: e.goalDescription(attacker.tactics),
		}, true
	}
	if e.src.Int(1, 100) <= 60 {
		return domain.MatchEvent{
			Type:        domain.EventShot,
			Side:        side,
			Minute:      minute,
			Description: "シュートを放つもゴールならず",
		}, true
	}
	return domain.MatchEvent{}, false
}

// attackPowerOf 是 FW/MF 的（速度+技术）/2 均值加攻击战术加成。
func attackPowerOf(side sideData) float64 {
	sum, count := 0.0, 0
	for _, p := range side.players {
		if p.Position == domain.PositionFW || p.Position == domain.PositionMF {
			sum += float64(p.Abilities[domain.AbilitySpeed]+p.Abilities[domain.AbilityTechnique]) / 2
			count++
		}
	}
	if count == 0 {
		return 50
	}
	avg := sum / float64(count)

	switch side.tactics.Attack {
	case domain.AttackFast:
		avg *= 1.1
	case domain.AttackPossession:
		avg *= 1.05
	}
	return avg
}

// defensePowerOf 是 DF/GK 的（力量+耐力）/2 均值加防守战术加成。
func defensePowerOf(side sideData) float64 {
	sum, count := 0.0, 0
	for _, p := range side.players {
		if p.Position == domain.PositionDF || p.Position == domain.PositionGK {
			sum += float64(p.Abilities[domain.AbilityPower]+p.Abilities[domain.AbilityStamina]) / 2
			count++
		}
	}
	if count == 0 {
		return 50
	}
	avg := sum / float64(count)

	switch side.tactics.Defense {
	case domain.DefensePress:
		avg *= 1.05
	case domain.DefenseRetreat:
		avg *= 1.1
	}
	return avg
}

// selectScorer 按 FW 60% / MF 35% / 任意 5% 的权重选进球者。
func (e *MatchEngine) selectScorer(players []*domain.Player) *domain.Player {
	if len(players) == 0 {
		return nil
	}
	forwards := make([]*domain.Player, 0, len(players))
	midfielders := make([]*domain.Player, 0, len(players))
	for _, p := range players {
		switch p.Position {
		case domain.PositionFW:
			forwards = append(forwards, p)
		case domain.PositionMF:
			midfielders = append(midfielders, p)
		}
	}

	roll := e.src.Int(1, 100)
	if roll <= 60 && len(forwards) != 0 {
		return randx.Choice(e.src, forwards)
	}
	if roll <= 95 && len(midfielders) != 0 {
		return randx.Choice(e.src, midfielders)
	}
	return randx.Choice(e.src, players)
}

var goalPhrases = map[int][]string{
	domain.AttackFast:       {"カウンターアタックから", "スピードを活かして", "素早い攻撃で"},
	domain.AttackBalanced:   {"チャンスをうかがい", "バランスよく攻め", "着実に攻撃を重ね"},
	domain.AttackPossession: {"丁寧なパス回しから", "ボールをキープして", "じっくりと攻め"},
}

var goalActions = []string{"ゴールを決める！", "ネットを揺らす！", "見事なゴール！", "決定的なシュート！"}

func (e *MatchEngine) goalDescription(tactics domain.Tactics) string {
	phrases, ok := goalPhrases[tactics.Attack]
	if !ok {
		phrases = goalPhrases[domain.AttackBalanced]
	}
	return randx.Choice(e.src, phrases) + randx.Choice(e.src, goalActions)
}

// miscEvent 随机产生黄牌/角球，任意球和越位不落事件。
func (e *MatchEngine) miscEvent(minute int, homeData, awayData sideData) (domain.MatchEvent, bool) {
	eventType := randx.Choice(e.src, []string{domain.EventYellowCard, domain.EventCorner, "free_kick", "offside"})
	side := randx.Choice(e.src, []string{domain.SideHome, domain.SideAway})

	switch eventType {
	case domain.EventYellowCard:
		players := homeData.players
		if side == domain.SideAway {
			players = awayData.players
		}
		p := randx.Choice(e.src, players)
		name := ""
		if p != nil {
			name = p.Name
		}
		return domain.MatchEvent{
			Type:        domain.EventYellowCard,
			Side:        side,
			Minute:      minute,
			Player:      name,
			Description: "イエローカードが出される",
		}, true
	case domain.EventCorner:
		return domain.MatchEvent{
			Type:        domain.EventCorner,
			Side:        side,
			Minute:      minute,
			Description: "コーナーキックを獲得",
		}, true
	default:
		return domain.MatchEvent{}, false
	}
}

func statsFromEvents(events []domain.MatchEvent) domain.MatchStats {
	var stats domain.MatchStats
	stats.Possession = domain.SideStats{Home: 50, Away: 50}
	for _, ev := range events {
		home := ev.Side == domain.SideHome
		switch ev.Type {
		case domain.EventGoal, domain.EventShot:
			if home {
				stats.Shots.Home++
			} else {
				stats.Shots.Away++
			}
		case domain.EventYellowCard:
			if home {
				stats.Cards.Home++
			} else {
				stats.Cards.Away++
			}
		case domain.EventCorner:
			if home {
				stats.Corners.Home++
			} else {
				stats.Corners.Away++
			}
		}
	}
	return stats
}

// fallbackResult 生成随机兜底结果，比分 0-4。
func (e *MatchEngine) fallbackResult(home, away *domain.Team, day int) *domain.MatchResult {
	homeScore := e.src.Int(0, 4)
	awayScore := e.src.Int(0, 4)

	return &domain.MatchResult{
		Id:        fmt.Sprintf("result_%d_%d", day, time.Now().UnixMilli()),
		Day:       day,
		Home:      domain.TeamRef{Id: home.Id, Name: home.Name},
		Away:      domain.TeamRef{Id: away.Id, Name: away.Name},
		HomeScore: homeScore,
		AwayScore: awayScore,
		Events:    []domain.MatchEvent{},
		Stats: domain.MatchStats{
			Shots:      domain.SideStats{Home: homeScore + e.src.Int(2, 8), Away: awayScore + e.src.Int(2, 8)},
			Cards:      domain.SideStats{Home: e.src.Int(0, 3), Away: e.src.Int(0, 3)},
			Possession: domain.SideStats{Home: e.src.Int(40, 60), Away: e.src.Int(40, 60)},
			Corners:    domain.SideStats{Home: e.src.Int(2, 8), Away: e.src.Int(2, 8)},
		},
		Played:   true,
		Fallback: true,
	}
}

func clampFloat64(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
