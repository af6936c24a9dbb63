package domain

// 比赛事件类型。
const (
	EventGoal       = "goal"
	EventShot       = "shot"
	EventYellowCard = "yellow_card"
	EventCorner     = "corner"
)

// 事件归属方。
const (
	SideHome = "home"
	SideAway = "away"
)

// MatchEvent 是按分钟记录的比赛事件。
type MatchEvent struct {
	Type        string
	Side        string
	Minute      int
	Player      string
	Description string
}

// SideStats 是主客各自的统计值。
type SideStats struct {
	Home int
	Away int
}

// MatchStats 是单场比赛统计。
type MatchStats struct {
	Shots      SideStats
	Cards      SideStats
	Possession SideStats
	Corners    SideStats
}

// TeamRef 是比赛记录里的球队引用。
type TeamRef struct {
	Id   string
	Name string
}

// MatchResult 是一场比赛的完整结果记录。
//
// Fallback 为 true 表示模拟失败后的随机兜底结果，事件列表为空。
type MatchResult struct {
	Id              string
	Day             int
	Home            TeamRef
	Away            TeamRef
	HomeScore       int
	AwayScore       int
	Events          []MatchEvent
	Stats           MatchStats
	PowerDifference float64
	Played          bool
	Fallback        bool
}

// Winner 返回胜方引用；平局返回 nil。
func (r *MatchResult) Winner() *TeamRef {
	switch {
	case r.HomeScore > r.AwayScore:
		return &r.Home
	case r.AwayScore > r.HomeScore:
		return &r.Away
	default:
		return nil
	}
}
