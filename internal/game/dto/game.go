package dto

import (
	"FootballManager/internal/game/app"
	"FootballManager/internal/game/domain"
)

type NewGameReq struct {
	ManagerName string `json:"manager_name"`
	TeamName    string `json:"team_name"`
	TeamType    string `json:"team_type"`
}

type NewGameResp struct {
	SaveId   string `json:"save_id"`
	Token    string `json:"token"`
	Season   int    `json:"season"`
	Day      int    `json:"day"`
	MaxDay   int    `json:"max_day"`
	TeamName string `json:"team_name"`
}

type TacticsReq struct {
	Formation int `json:"formation"`
	Attack    int `json:"attack"`
	Defense   int `json:"defense"`
}

type PlayerView struct {
	Id          string   `json:"id"`
	Name        string   `json:"name"`
	Position    string   `json:"position"`
	Age         int      `json:"age"`
	Abilities   []int    `json:"abilities"`
	Power       int      `json:"power"`
	Cost        int64    `json:"cost"`
	Tier        string   `json:"tier"`
	Personality string   `json:"personality"`
	Skills      []string `json:"skills,omitempty"`
	Injured     bool     `json:"injured"`
	InjuryName  string   `json:"injury_name,omitempty"`
	InjuryDays  int      `json:"injury_days,omitempty"`
	Form        int      `json:"form"`
	Morale      int      `json:"morale"`
	TotalGames  int      `json:"total_games"`
	TotalGoals  int      `json:"total_goals"`
	Retired     bool     `json:"retired,omitempty"`
}

type CoachView struct {
	Id        int    `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Abilities []int  `json:"abilities"`
	Cost      int64  `json:"cost"`
}

type TacticsView struct {
	Formation     int    `json:"formation"`
	FormationName string `json:"formation_name"`
	Attack        int    `json:"attack"`
	Defense       int    `json:"defense"`
}

type TeamView struct {
	Id            string       `json:"id"`
	Name          string       `json:"name"`
	TeamType      string       `json:"team_type"`
	Players       []PlayerView `json:"players"`
	Coach         *CoachView   `json:"coach,omitempty"`
	Tactics       TacticsView  `json:"tactics"`
	TotalCost     int64        `json:"total_cost"`
	Strength      int          `json:"strength"`
	FallbackBuild bool         `json:"fallback_build,omitempty"`
}

type StandingView struct {
	Rank           int    `json:"rank"`
	TeamId         string `json:"team_id"`
	TeamName       string `json:"team_name"`
	IsPlayer       bool   `json:"is_player"`
	Played         int    `json:"played"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
}

type MatchEventView struct {
	Type        string `json:"type"`
	Side        string `json:"side"`
	Minute      int    `json:"minute"`
	Player      string `json:"player,omitempty"`
	Description string `json:"description,omitempty"`
}

type MatchResultView struct {
	Id        string           `json:"id"`
	Day       int              `json:"day"`
	HomeId    string           `json:"home_id"`
	HomeName  string           `json:"home_name"`
	AwayId    string           `json:"away_id"`
	AwayName  string           `json:"away_name"`
	HomeScore int              `json:"home_score"`
	AwayScore int              `json:"away_score"`
	Events    []MatchEventView `json:"events"`
	Fallback  bool             `json:"fallback,omitempty"`
}

type FixtureView struct {
	Id       string `json:"id"`
	Day      int    `json:"day"`
	HomeId   string `json:"home_id"`
	HomeName string `json:"home_name"`
	AwayId   string `json:"away_id"`
	AwayName string `json:"away_name"`
	Played   bool   `json:"played"`
}

type MatchDayView struct {
	Day      int           `json:"day"`
	Fixtures []FixtureView `json:"fixtures"`
}

type AdvanceResp struct {
	Day       int               `json:"day"`
	Phase     string            `json:"phase"`
	SeasonEnd bool              `json:"season_end"`
	Matches   []MatchResultView `json:"matches"`
	Standings []StandingView    `json:"standings"`
	Growth    *GrowthView       `json:"growth,omitempty"`
	Recovered []string          `json:"recovered,omitempty"`
}

type GrowthView struct {
	GrownPlayers    int      `json:"grown_players"`
	AwakenedPlayers int      `json:"awakened_players"`
	InjuredPlayers  int      `json:"injured_players"`
	RetiredPlayers  int      `json:"retired_players"`
	Events          []string `json:"events,omitempty"`
}

type LeagueView struct {
	Season           int             `json:"season"`
	Day              int             `json:"day"`
	MaxDay           int             `json:"max_day"`
	Phase            string          `json:"phase"`
	Standings        []StandingView  `json:"standings"`
	TotalGoals       int             `json:"total_goals"`
	TotalMatches     int             `json:"total_matches"`
	AvgGoalsPerMatch float64         `json:"avg_goals_per_match"`
	FinalStandings   []StandingView  `json:"final_standings,omitempty"`
	PlayoffTeams     []StandingView  `json:"playoff_teams,omitempty"`
	SeasonStats      *SeasonStatView `json:"season_stats,omitempty"`
}

type SeasonStatView struct {
	Champion    string `json:"champion,omitempty"`
	TopScorer   string `json:"top_scorer,omitempty"`
	TopGoals    int    `json:"top_goals,omitempty"`
	MostGoals   int    `json:"most_goals"`
	BestDefense int    `json:"best_defense"`
}

type LoadResp struct {
	SaveId      string     `json:"save_id"`
	ManagerName string     `json:"manager_name"`
	TeamName    string     `json:"team_name"`
	SavedAt     string     `json:"saved_at"`
	League      LeagueView `json:"league"`
	Team        *TeamView  `json:"team,omitempty"`
}

// FromPlayer 把选手聚合投影成视图。
func FromPlayer(p *domain.Player) PlayerView {
	return PlayerView{
		Id:          p.Id,
		Name:        p.Name,
		Position:    string(p.Position),
		Age:         p.AgeYears(),
		Abilities:   p.Abilities[:],
		Power:       p.Power(),
		Cost:        p.Cost,
		Tier:        string(p.Tier),
		Personality: p.Personality,
		Skills:      p.SpecialSkills,
		Injured:     p.Injured,
		InjuryName:  p.InjuryName,
		InjuryDays:  p.InjuryDays,
		Form:        p.Form,
		Morale:      p.Morale,
		TotalGames:  p.TotalGames,
		TotalGoals:  p.TotalGoals,
		Retired:     p.Retired,
	}
}

func FromTeam(t *domain.Team) TeamView {
	view := TeamView{
		Id:            t.Id,
		Name:          t.Name,
		TeamType:      string(t.TeamType),
		Players:       make([]PlayerView, 0, len(t.Players)),
		Tactics:       FromTactics(t.Tactics),
		TotalCost:     t.TotalCost,
		Strength:      t.Strength,
		FallbackBuild: t.FallbackBuild,
	}
	for _, p := range t.Players {
		view.Players = append(view.Players, FromPlayer(p))
	}
	if t.Coach != nil {
		view.Coach = &CoachView{
			Id:        t.Coach.Id,
			Name:      t.Coach.Name,
			Type:      t.Coach.Type,
			Abilities: t.Coach.Abilities[:],
			Cost:      t.Coach.Cost,
		}
	}
	return view
}

func FromTactics(t domain.Tactics) TacticsView {
	return TacticsView{
		Formation:     t.Formation,
		FormationName: domain.FormationNameOf(t.Formation),
		Attack:        t.Attack,
		Defense:       t.Defense,
	}
}

func FromStandings(standings []*domain.Standing) []StandingView {
	out := make([]StandingView, 0, len(standings))
	for _, s := range standings {
		out = append(out, StandingView{
			Rank:           s.Rank,
			TeamId:         s.TeamId,
			TeamName:       s.TeamName,
			IsPlayer:       s.IsPlayer,
			Played:         s.Played,
			Wins:           s.Wins,
			Draws:          s.Draws,
			Losses:         s.Losses,
			GoalsFor:       s.GoalsFor,
			GoalsAgainst:   s.GoalsAgainst,
			GoalDifference: s.GoalDifference,
			Points:         s.Points,
		})
	}
	return out
}

func FromMatchResult(r *domain.MatchResult) MatchResultView {
	view := MatchResultView{
		Id:        r.Id,
		Day:       r.Day,
		HomeId:    r.Home.Id,
		HomeName:  r.Home.Name,
		AwayId:    r.Away.Id,
		AwayName:  r.Away.Name,
		HomeScore: r.HomeScore,
		AwayScore: r.AwayScore,
		Events:    make([]MatchEventView, 0, len(r.Events)),
		Fallback:  r.Fallback,
	}
	for _, ev := range r.Events {
		view.Events = append(view.Events, MatchEventView{
			Type:        ev.Type,
			Side:        ev.Side,
			Minute:      ev.Minute,
			Player:      ev.Player,
			Description: ev.Description,
		})
	}
	return view
}

func FromSchedule(schedule []*domain.MatchDay) []MatchDayView {
	out := make([]MatchDayView, 0, len(schedule))
	for _, md := range schedule {
		view := MatchDayView{Day: md.Day, Fixtures: make([]FixtureView, 0, len(md.Fixtures))}
		for _, f := range md.Fixtures {
			view.Fixtures = append(view.Fixtures, FixtureView{
				Id:       f.Id,
				Day:      f.Day,
				HomeId:   f.Home.Id,
				HomeName: f.Home.Name,
				AwayId:   f.Away.Id,
				AwayName: f.Away.Name,
				Played:   f.Played,
			})
		}
		out = append(out, view)
	}
	return out
}

func FromLeague(l *domain.League) LeagueView {
	view := LeagueView{
		Season:           l.Season,
		Day:              l.Day,
		MaxDay:           l.MaxDay,
		Phase:            l.Phase,
		Standings:        FromStandings(l.Standings),
		TotalGoals:       l.Stats.TotalGoals,
		TotalMatches:     l.Stats.TotalMatches,
		AvgGoalsPerMatch: l.Stats.AvgGoalsPerMatch,
	}
	if len(l.FinalStandings) != 0 {
		view.FinalStandings = FromStandings(l.FinalStandings)
	}
	if len(l.PlayoffTeams) != 0 {
		view.PlayoffTeams = FromStandings(l.PlayoffTeams)
	}
	if l.SeasonStats != nil {
		sv := &SeasonStatView{
			MostGoals:   l.SeasonStats.MostGoals,
			BestDefense: l.SeasonStats.BestDefense,
		}
		if l.SeasonStats.Champion != nil {
			sv.Champion = l.SeasonStats.Champion.TeamName
		}
		if l.SeasonStats.TopScorer != nil {
			sv.TopScorer = l.SeasonStats.TopScorer.Name
			sv.TopGoals = l.SeasonStats.TopScorer.Goals
		}
		view.SeasonStats = sv
	}
	return view
}

// FromAdvance 把一次推进结果打平成响应。
func FromAdvance(result *app.AdvanceDayResult) AdvanceResp {
	resp := AdvanceResp{
		Matches:   []MatchResultView{},
		Standings: []StandingView{},
	}
	if result.Report != nil {
		resp.SeasonEnd = result.Report.SeasonEnd
		resp.Phase = result.Report.Phase
		resp.Day = result.Report.Day
		for _, m := range result.Report.Matches {
			resp.Matches = append(resp.Matches, FromMatchResult(m))
		}
		resp.Standings = FromStandings(result.Report.Standings)
	}
	if result.Growth != nil {
		gv := &GrowthView{
			GrownPlayers:    result.Growth.Summary.GrownPlayers,
			AwakenedPlayers: result.Growth.Summary.AwakenedPlayers,
			InjuredPlayers:  result.Growth.Summary.InjuredPlayers,
			RetiredPlayers:  result.Growth.Summary.RetiredPlayers,
		}
		for _, r := range result.Growth.PlayerGrowth {
			gv.Events = append(gv.Events, r.Player.Name+": "+joinEvents(r.Events))
		}
		resp.Growth = gv
	}
	for _, p := range result.Recovered {
		resp.Recovered = append(resp.Recovered, p.Name)
	}
	return resp
}

func joinEvents(events []string) string {
	out := ""
	for i, ev := range events {
		if i > 0 {
			out += "、"
		}
		out += ev
	}
	return out
}
