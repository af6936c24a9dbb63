package domain

import "testing"

func teamWithStats(id string, wins, draws, losses, gf, ga int) *Team {
	t := &Team{Id: id, Name: id}
	t.Stats = TeamStats{Wins: wins, Draws: draws, Losses: losses, GoalsFor: gf, GoalsAgainst: ga}
	t.Stats.Points = wins*3 + draws
	return t
}

func TestCalculateStandings_按勝点净胜球总进球排序(t *testing.T) {
	teams := []*Team{
		teamWithStats("a", 1, 0, 1, 3, 3), // 3 分, GD 0
		teamWithStats("b", 2, 0, 0, 4, 1), // 6 分
		teamWithStats("c", 1, 0, 1, 5, 3), // 3 分, GD +2
	}
	standings := CalculateStandings(teams)

	wantOrder := []string{"b", "c", "a"}
	for i, want := range wantOrder {
		if standings[i].TeamId != want {
			t.Fatalf("第 %d 名期望 %s, got=%s", i+1, want, standings[i].TeamId)
		}
		if standings[i].Rank != i+1 {
			t.Fatalf("期望名次从 1 连续编号, got=%d", standings[i].Rank)
		}
	}
}

func TestCalculateStandings_完全同分按队名升序(t *testing.T) {
	teams := []*Team{
		teamWithStats("zebra", 1, 0, 0, 2, 0),
		teamWithStats("alpha", 1, 0, 0, 2, 0),
	}
	standings := CalculateStandings(teams)
	if standings[0].TeamId != "alpha" {
		t.Fatalf("期望同成绩按队名升序, got=%s", standings[0].TeamId)
	}
}

func TestTeamStats_Record(t *testing.T) {
	var s TeamStats
	s.Record(2, 1)
	s.Record(1, 1)
	s.Record(0, 3)
	if s.Wins != 1 || s.Draws != 1 || s.Losses != 1 {
		t.Fatalf("期望 1 胜 1 平 1 负, got=%+v", s)
	}
	if s.Points != 4 {
		t.Fatalf("期望勝点 4, got=%d", s.Points)
	}
	if s.Played() != 3 {
		t.Fatalf("期望出场 3, got=%d", s.Played())
	}
	if s.GoalDifference() != -2 {
		t.Fatalf("期望净胜球 -2, got=%d", s.GoalDifference())
	}
}

func TestRankOf_不在榜上视为垫底(t *testing.T) {
	standings := []*Standing{
		{TeamId: "a", Rank: 1},
		{TeamId: "b", Rank: 2},
	}
	if got := RankOf("b", standings); got != 2 {
		t.Fatalf("期望返回实际名次, got=%d", got)
	}
	if got := RankOf("ghost", standings); got != 2 {
		t.Fatalf("期望查不到时按垫底处理, got=%d", got)
	}
}

func TestLeague_查询辅助方法(t *testing.T) {
	player := &Team{Id: "player_team", IsPlayer: true}
	npc := &Team{Id: "npc_team_1"}
	l := &League{Teams: []*Team{player, npc}}

	if l.TeamById("npc_team_1") != npc {
		t.Fatalf("期望按 id 命中 NPC 球队")
	}
	if l.TeamById("missing") != nil {
		t.Fatalf("期望未命中返回 nil")
	}
	if l.PlayerTeam() != player {
		t.Fatalf("期望返回玩家球队")
	}
	if got := len(l.NPCTeams()); got != 1 {
		t.Fatalf("期望 1 支 NPC 球队, got=%d", got)
	}
}
