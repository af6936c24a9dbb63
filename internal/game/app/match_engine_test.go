package app

import (
	"fmt"
	"testing"

	"FootballManager/internal/game/domain"
	"FootballManager/modules/kit/randx"
)

func newMatchTeams(t *testing.T) (*domain.Team, *domain.Team) {
	t.Helper()
	builder := newTestBuilder(21)
	home := builder.BuildAutoTeam(InitialBudget, domain.TeamOffensive)
	home.Id = "home"
	home.Name = "ホームFC"
	away := builder.BuildAutoTeam(InitialBudget, domain.TeamDefensive)
	away.Id = "away"
	away.Name = "アウェイFC"
	return home, away
}

func TestSimulate_不改动球队状态(t *testing.T) {
	home, away := newMatchTeams(t)
	engine := NewMatchEngine(randx.NewSeeded(8), nopLogger())

	statsBefore := home.Stats
	gamesBefore := home.Players[0].TotalGames
	goalsBefore := map[string]int{}
	for _, p := range append(append([]*domain.Player{}, home.Players...), away.Players...) {
		goalsBefore[p.Id] = p.TotalGoals
	}

	result := engine.Simulate(home, away, 1)

	if !result.Played {
		t.Fatalf("期望结果标记已进行")
	}
	if home.Stats != statsBefore {
		t.Fatalf("期望 Simulate 不改动积分统计, got=%+v", home.Stats)
	}
	if home.Players[0].TotalGames != gamesBefore {
		t.Fatalf("期望 Simulate 不改动出场数")
	}
	for _, p := range append(append([]*domain.Player{}, home.Players...), away.Players...) {
		if p.TotalGoals != goalsBefore[p.Id] {
			t.Fatalf("期望 Simulate 不改动进球数: %s", p.Name)
		}
	}
}

func TestSimulate_比分与事件自洽(t *testing.T) {
	home, away := newMatchTeams(t)
	engine := NewMatchEngine(randx.NewSeeded(13), nopLogger())

	for i := 0; i < 20; i++ {
		result := engine.Simulate(home, away, i+1)

		homeGoals, awayGoals := 0, 0
		lastMinute := 0
		for _, ev := range result.Events {
			if ev.Minute < lastMinute {
				t.Fatalf("期望事件按时间排序, %d 在 %d 之后", ev.Minute, lastMinute)
			}
			lastMinute = ev.Minute
			if ev.Type == domain.EventGoal {
				if ev.Side == domain.SideHome {
					homeGoals++
				} else {
					awayGoals++
				}
				if ev.Player == "" {
					t.Fatalf("期望进球事件带进球者")
				}
			}
		}
		if homeGoals != result.HomeScore || awayGoals != result.AwayScore {
			t.Fatalf("期望比分与进球事件一致, 事件 %d-%d 比分 %d-%d",
				homeGoals, awayGoals, result.HomeScore, result.AwayScore)
		}
		// 每 10 分钟各一次攻击判定，单侧最多 9 球
		if result.HomeScore > 9 || result.AwayScore > 9 {
			t.Fatalf("比分超出事件轮次上限: %d-%d", result.HomeScore, result.AwayScore)
		}
	}
}

// makeUniformTeam 构造一支全员同能力的球队，用于对称性验证。
func makeUniformTeam(id, name string) *domain.Team {
	team := &domain.Team{
		Id:   id,
		Name: name,
		Tactics: domain.Tactics{
			Formation: 1,
			Attack:    domain.AttackBalanced,
			Defense:   domain.DefenseBalanced,
		},
	}
	layout := []struct {
		position domain.Position
		count    int
	}{
		{domain.PositionGK, 2},
		{domain.PositionDF, 6},
		{domain.PositionMF, 8},
		{domain.PositionFW, 4},
	}
	n := 0
	for _, entry := range layout {
		for i := 0; i < entry.count; i++ {
			n++
			team.Players = append(team.Players, &domain.Player{
				Id:               fmt.Sprintf("%s_p%d", id, n),
				Name:             fmt.Sprintf("%s選手%d", name, n),
				Position:         entry.position,
				Age:              26,
				Abilities:        [domain.AbilityCount]int{70, 70, 70, 70, 70, 70},
				Form:             100,
				Morale:           100,
				Experience:       50,
				InjuryResistance: 1.0,
			})
		}
	}
	return team
}

func TestSimulate_同战力镜像对称(t *testing.T) {
	x := makeUniformTeam("x", "イレブンX")
	y := makeUniformTeam("y", "イレブンY")

	// 两个引擎用同一种子：主客互换后每场的比分序列应完全一致，
	// 唯一的不对称只来自主场加成
	forward := NewMatchEngine(randx.NewSeeded(31), nopLogger())
	mirror := NewMatchEngine(randx.NewSeeded(31), nopLogger())

	for day := 1; day <= 50; day++ {
		a := forward.Simulate(x, y, day)
		b := mirror.Simulate(y, x, day)

		if a.HomeScore != b.HomeScore || a.AwayScore != b.AwayScore {
			t.Fatalf("第 %d 场主客互换后分布不对称: %d-%d vs %d-%d",
				day, a.HomeScore, a.AwayScore, b.HomeScore, b.AwayScore)
		}
		if a.PowerDifference != b.PowerDifference {
			t.Fatalf("第 %d 场主客互换后战力差不对称: %v vs %v",
				day, a.PowerDifference, b.PowerDifference)
		}
		if a.PowerDifference <= 0 {
			t.Fatalf("期望同战力下只剩主场加成的优势, got=%v", a.PowerDifference)
		}
	}
}

func TestApplyResult_只记账一次(t *testing.T) {
	home, away := newMatchTeams(t)
	engine := NewMatchEngine(randx.NewSeeded(3), nopLogger())

	result := engine.Simulate(home, away, 1)
	engine.ApplyResult(result, home, away)

	if home.Stats.Played() != 1 || away.Stats.Played() != 1 {
		t.Fatalf("期望双方各记一场, home=%d away=%d", home.Stats.Played(), away.Stats.Played())
	}
	if home.Stats.GoalsFor != result.HomeScore || away.Stats.GoalsFor != result.AwayScore {
		t.Fatalf("期望进球数与比分一致")
	}

	totalGoals := 0
	for _, p := range append(append([]*domain.Player{}, home.Players...), away.Players...) {
		totalGoals += p.TotalGoals
		if p.TotalGames != 1 {
			t.Fatalf("期望全员出场数 +1, %s got=%d", p.Name, p.TotalGames)
		}
	}
	// 进球者可能是 Unknown（理论分支），所以只验不超过总比分
	if totalGoals > result.HomeScore+result.AwayScore {
		t.Fatalf("选手进球合计 %d 超过总比分 %d", totalGoals, result.HomeScore+result.AwayScore)
	}
}

func TestTeamPower_收敛区间与空阵容(t *testing.T) {
	engine := NewMatchEngine(randx.NewSeeded(2), nopLogger())

	empty := sideData{team: &domain.Team{}, tactics: domain.Tactics{Formation: 1}}
	if got := engine.teamPower(empty); got != 50 {
		t.Fatalf("期望空阵容战力 50, got=%v", got)
	}

	home, _ := newMatchTeams(t)
	side := sideData{team: home, tactics: home.Tactics, players: home.HealthyPlayers(), coach: home.Coach}
	power := engine.teamPower(side)
	if power < 30 || power > 95 {
		t.Fatalf("期望战力收敛到 [30,95], got=%v", power)
	}
}

func TestFallbackResult_随机兜底标记(t *testing.T) {
	home, away := newMatchTeams(t)
	engine := NewMatchEngine(randx.NewSeeded(6), nopLogger())

	result := engine.fallbackResult(home, away, 3)
	if !result.Fallback || !result.Played {
		t.Fatalf("期望兜底结果打 Fallback 标记")
	}
	if result.HomeScore < 0 || result.HomeScore > 4 || result.AwayScore < 0 || result.AwayScore > 4 {
		t.Fatalf("期望兜底比分落在 [0,4], got=%d-%d", result.HomeScore, result.AwayScore)
	}
	if len(result.Events) != 0 {
		t.Fatalf("期望兜底结果无事件明细")
	}
}

func TestSelectStartingEleven_按名额与战力截断(t *testing.T) {
	players := make([]*domain.Player, 0, 4)
	for i, power := range []int{60, 80, 70} {
		players = append(players, &domain.Player{
			Name:      string(rune('A' + i)),
			Position:  domain.PositionGK,
			Abilities: [domain.AbilityCount]int{power, power, power, power, power, power},
		})
	}
	players = append(players, &domain.Player{
		Position:  domain.PositionFW,
		Abilities: [domain.AbilityCount]int{50, 50, 50, 50, 50, 50},
	})

	lineup := selectStartingEleven(players, 1)
	gkCount := 0
	for _, p := range lineup {
		if p.Position == domain.PositionGK {
			gkCount++
			if p.Power() != 80 {
				t.Fatalf("期望 GK 名额留给战力最高者, got=%d", p.Power())
			}
		}
	}
	if gkCount != 1 {
		t.Fatalf("期望只上 1 名 GK, got=%d", gkCount)
	}
}
