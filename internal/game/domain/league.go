package domain

import "sort"

// 联赛阶段。
const (
	PhaseRegular  = "regular"
	PhaseFinished = "finished"
)

// Fixture 是赛程里一场未打/已打的对阵。
type Fixture struct {
	Id     string
	Day    int
	Home   TeamRef
	Away   TeamRef
	Played bool
}

// MatchDay 是一轮赛程。
type MatchDay struct {
	Day      int
	Fixtures []*Fixture
}

// Standing 是积分榜上的一行。
type Standing struct {
	Rank           int
	TeamId         string
	TeamName       string
	IsPlayer       bool
	Played         int
	Wins           int
	Draws          int
	Losses         int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}

// LeagueStats 是联赛累计统计。
type LeagueStats struct {
	TotalGoals       int
	TotalMatches     int
	AvgGoalsPerMatch float64
}

// TopScorer 是得点王记录。
type TopScorer struct {
	Name  string
	Team  string
	Goals int
}

// SeasonStats 是赛季收官统计。
type SeasonStats struct {
	Champion    *Standing
	TopScorer   *TopScorer
	MostGoals   int
	BestDefense int
}

// League 是联赛聚合：12 支球队的双循环赛季。
type League struct {
	Season         int
	Day            int
	MaxDay         int
	Phase          string
	Teams          []*Team
	PlayerTeamId   string
	Schedule       []*MatchDay
	Matches        []*MatchResult
	Standings      []*Standing
	FinalStandings []*Standing
	PlayoffTeams   []*Standing
	SeasonStats    *SeasonStats
	Stats          LeagueStats
}

// TeamById 按 id 找球队。
func (l *League) TeamById(id string) *Team {
	for _, t := range l.Teams {
		if t.Id == id {
			return t
		}
	}
	return nil
}

// PlayerTeam 返回玩家球队。
func (l *League) PlayerTeam() *Team {
	for _, t := range l.Teams {
		if t.IsPlayer {
			return t
		}
	}
	return nil
}

// ScheduleOf 返回指定轮次的赛程。
func (l *League) ScheduleOf(day int) *MatchDay {
	for _, md := range l.Schedule {
		if md.Day == day {
			return md
		}
	}
	return nil
}

// NPCTeams 返回全部 NPC 球队。
func (l *League) NPCTeams() []*Team {
	out := make([]*Team, 0, len(l.Teams))
	for _, t := range l.Teams {
		if !t.IsPlayer {
			out = append(out, t)
		}
	}
	return out
}

// CalculateStandings 生成积分榜。
// 排序：勝点 > 净胜球 > 总进球 > 队名升序；名次从 1 起。
func CalculateStandings(teams []*Team) []*Standing {
	standings := make([]*Standing, 0, len(teams))
	for _, t := range teams {
		standings = append(standings, &Standing{
			TeamId:         t.Id,
			TeamName:       t.Name,
			IsPlayer:       t.IsPlayer,
			Played:         t.Stats.Played(),
			Wins:           t.Stats.Wins,
			Draws:          t.Stats.Draws,
			Losses:         t.Stats.Losses,
			GoalsFor:       t.Stats.GoalsFor,
			GoalsAgainst:   t.Stats.GoalsAgainst,
			GoalDifference: t.Stats.GoalDifference(),
			Points:         t.Stats.Points,
		})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.TeamName < b.TeamName
	})
	for i, s := range standings {
		s.Rank = i + 1
	}
	return standings
}

// RankOf 查球队名次；不在榜上视为垫底。
func RankOf(teamId string, standings []*Standing) int {
	for _, s := range standings {
		if s.TeamId == teamId {
			return s.Rank
		}
	}
	return len(standings)
}
