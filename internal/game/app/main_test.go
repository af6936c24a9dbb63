package app

import (
	"os"
	"testing"

	"FootballManager/internal/game/domain"
	coachcfg "FootballManager/internal/shared/gameconfig/coach"
	playercfg "FootballManager/internal/shared/gameconfig/player"
	"FootballManager/modules/kit/logx"
	"FootballManager/modules/kit/randx"
)

func TestMain(m *testing.M) {
	playercfg.Load()
	coachcfg.Load()
	os.Exit(m.Run())
}

func nopLogger() logx.Logger {
	return logx.NewZapLogger(nil)
}

func newTestBuilder(seed int64) *TeamBuilder {
	return NewTeamBuilder(randx.NewSeeded(seed), nopLogger())
}

func newTestLeagueService(seed int64) *LeagueService {
	src := randx.NewSeeded(seed)
	log := nopLogger()
	builder := NewTeamBuilder(src, log)
	matches := NewMatchEngine(src, log)
	growth := NewGrowthEngine(src, log)
	return NewLeagueService(src, log, builder, matches, growth)
}

func newPlayerTeam(t *testing.T, seed int64) *domain.Team {
	t.Helper()
	team := newTestBuilder(seed).BuildAutoTeam(InitialBudget, domain.TeamBalanced)
	team.Id = "player_team"
	team.Name = "テストイレブン"
	team.IsPlayer = true
	return team
}

// minSource 所有掷骰都取区间下界，用于强制命中概率分支。
type minSource struct{}

func (minSource) Int(min, max int) int           { return min }
func (minSource) Float(min, max float64) float64 { return min }
func (minSource) Chance(percent float64) bool    { return percent > 0 }

// maxSource 所有掷骰都取区间上界，用于强制绕过概率分支。
type maxSource struct{}

func (maxSource) Int(min, max int) int {
	if min > max {
		return min
	}
	return max
}
func (maxSource) Float(min, max float64) float64 { return max }
func (maxSource) Chance(percent float64) bool    { return percent >= 100 }
