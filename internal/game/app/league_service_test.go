package app

import (
	"errors"
	"fmt"
	"testing"

	"FootballManager/internal/game/domain"
)

func TestInitializeLeague_规模与NPC(t *testing.T) {
	svc := newTestLeagueService(7)
	league := svc.InitializeLeague(newPlayerTeam(t, 7), 1)

	if len(league.Teams) != LeagueTeamCount {
		t.Fatalf("期望 %d 支球队, got=%d", LeagueTeamCount, len(league.Teams))
	}
	if league.MaxDay != 22 || league.Day != 1 {
		t.Fatalf("期望 22 轮从第 1 日开始, max=%d day=%d", league.MaxDay, league.Day)
	}
	if league.Phase != domain.PhaseRegular {
		t.Fatalf("期望常规赛阶段, got=%s", league.Phase)
	}
	if len(league.Schedule) != 22 {
		t.Fatalf("期望 22 轮赛程, got=%d", len(league.Schedule))
	}
	if len(league.Standings) != LeagueTeamCount {
		t.Fatalf("期望初始积分榜 %d 行, got=%d", LeagueTeamCount, len(league.Standings))
	}
	if league.PlayerTeamId != "player_team" || league.PlayerTeam() == nil {
		t.Fatalf("期望玩家球队挂入联赛")
	}

	for i, team := range league.NPCTeams() {
		wantId := fmt.Sprintf("npc_team_%d", i+1)
		if team.Id != wantId {
			t.Fatalf("期望 NPC id %s, got=%s", wantId, team.Id)
		}
		if team.Name == "" || team.IsPlayer {
			t.Fatalf("期望 NPC 有队名且非玩家队: %+v", team)
		}
		if team.Characteristics == nil {
			t.Fatalf("期望 NPC 持有隐性特征: %s", team.Id)
		}
		if team.AiLevel < 3 || team.AiLevel > 10 {
			t.Fatalf("期望 AI 等级落在 [3,10], got=%d", team.AiLevel)
		}
		if team.Reputation < 30 || team.Reputation > 90 {
			t.Fatalf("期望声望落在 [30,90], got=%d", team.Reputation)
		}
	}
}

func TestProcessMatchDay_单轮结算(t *testing.T) {
	svc := newTestLeagueService(9)
	league := svc.InitializeLeague(newPlayerTeam(t, 9), 1)

	report, err := svc.ProcessMatchDay(league, 1)
	if err != nil {
		t.Fatalf("期望第 1 日结算成功, got=%v", err)
	}

	if report.Day != 1 || len(report.Matches) != 6 {
		t.Fatalf("期望第 1 日 6 场, got day=%d matches=%d", report.Day, len(report.Matches))
	}
	if league.Day != 2 {
		t.Fatalf("期望日历推进到 2, got=%d", league.Day)
	}
	if len(league.Matches) != 6 {
		t.Fatalf("期望战绩记录 6 场, got=%d", len(league.Matches))
	}
	for _, f := range league.ScheduleOf(1).Fixtures {
		if !f.Played {
			t.Fatalf("期望当日对阵全部标记已打: %s", f.Id)
		}
	}
	for _, s := range league.Standings {
		if s.Played != 1 {
			t.Fatalf("期望全队各打 1 场, %s got=%d", s.TeamId, s.Played)
		}
	}
	if league.Stats.TotalMatches != 6 {
		t.Fatalf("期望联赛统计记 6 场, got=%d", league.Stats.TotalMatches)
	}
}

func TestProcessMatchDay_赛程异常不动状态(t *testing.T) {
	svc := newTestLeagueService(4)
	league := svc.InitializeLeague(newPlayerTeam(t, 4), 1)

	league.ScheduleOf(1).Fixtures[3].Home.Id = "ghost_team"

	_, err := svc.ProcessMatchDay(league, 1)
	if !errors.Is(err, ErrLeagueDayFailed) {
		t.Fatalf("期望 LEAGUE_DAY_FAILED, got=%v", err)
	}

	if league.Day != 1 {
		t.Fatalf("期望失败后日历不动, got=%d", league.Day)
	}
	if len(league.Matches) != 0 {
		t.Fatalf("期望失败后无战绩落库, got=%d", len(league.Matches))
	}
	for _, f := range league.ScheduleOf(1).Fixtures {
		if f.Played {
			t.Fatalf("期望失败后对阵不标记已打: %s", f.Id)
		}
	}
	for _, team := range league.Teams {
		if team.Stats.Played() != 0 {
			t.Fatalf("期望失败后积分统计不动: %s", team.Id)
		}
	}
}

func TestProcessMatchDay_打满整季收官(t *testing.T) {
	svc := newTestLeagueService(12)
	league := svc.InitializeLeague(newPlayerTeam(t, 12), 1)

	var last *MatchDayReport
	for league.Phase != domain.PhaseFinished {
		report, err := svc.ProcessMatchDay(league, league.Day)
		if err != nil {
			t.Fatalf("第 %d 日结算失败: %v", league.Day, err)
		}
		last = report
		if league.Day > league.MaxDay+1 {
			t.Fatalf("日历越过收官日: %d", league.Day)
		}
	}

	if !last.SeasonEnd || last.Phase != domain.PhaseFinished {
		t.Fatalf("期望最后一轮报告赛季结束, got=%+v", last)
	}
	if league.Day != league.MaxDay+1 {
		t.Fatalf("期望收官后日历停在 %d, got=%d", league.MaxDay+1, league.Day)
	}
	if len(league.FinalStandings) != LeagueTeamCount {
		t.Fatalf("期望最终排名 %d 行, got=%d", LeagueTeamCount, len(league.FinalStandings))
	}
	if len(league.PlayoffTeams) != 3 {
		t.Fatalf("期望季后赛 3 个名额, got=%d", len(league.PlayoffTeams))
	}
	if league.SeasonStats == nil || league.SeasonStats.Champion == nil {
		t.Fatalf("期望赛季统计带冠军记录")
	}
	if league.SeasonStats.Champion.Rank != 1 {
		t.Fatalf("期望冠军名次 1, got=%d", league.SeasonStats.Champion.Rank)
	}

	total := 0
	for _, s := range league.FinalStandings {
		total += s.Played
	}
	// 12 队双循环每队 22 场
	if total != LeagueTeamCount*22 {
		t.Fatalf("期望总出场 %d, got=%d", LeagueTeamCount*22, total)
	}
	if league.Stats.TotalMatches != 132 {
		t.Fatalf("期望总场次 132, got=%d", league.Stats.TotalMatches)
	}
}

func TestProcessMatchDay_空轮次直接推进(t *testing.T) {
	svc := newTestLeagueService(5)
	league := svc.InitializeLeague(newPlayerTeam(t, 5), 1)
	league.Schedule = league.Schedule[1:] // 去掉第 1 轮

	report, err := svc.ProcessMatchDay(league, 1)
	if err != nil {
		t.Fatalf("期望空轮次合法, got=%v", err)
	}
	if len(report.Matches) != 0 || league.Day != 2 {
		t.Fatalf("期望空轮次无比赛且日历推进, matches=%d day=%d", len(report.Matches), league.Day)
	}
}
