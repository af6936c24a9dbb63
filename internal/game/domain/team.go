package domain

// TeamType 是编队风格，决定位置分布、预算占比与默认战术。
type TeamType string

const (
	TeamBalanced    TeamType = "balanced"
	TeamDefensive   TeamType = "defensive"
	TeamOffensive   TeamType = "offensive"
	TeamYouth       TeamType = "youth"
	TeamExperienced TeamType = "experienced"
)

// TeamStats 是联赛积分统计。
type TeamStats struct {
	Wins         int
	Draws        int
	Losses       int
	GoalsFor     int
	GoalsAgainst int
	Points       int
}

func (s *TeamStats) Played() int {
	return s.Wins + s.Draws + s.Losses
}

func (s *TeamStats) GoalDifference() int {
	return s.GoalsFor - s.GoalsAgainst
}

// Record 按比分记录一场比赛（胜 3 分，平 1 分）。
func (s *TeamStats) Record(goalsFor, goalsAgainst int) {
	s.GoalsFor += goalsFor
	s.GoalsAgainst += goalsAgainst
	switch {
	case goalsFor > goalsAgainst:
		s.Wins++
		s.Points += 3
	case goalsFor == goalsAgainst:
		s.Draws++
		s.Points++
	default:
		s.Losses++
	}
}

// Characteristics 是 NPC 球队的隐性特征，[0,100]。
type Characteristics struct {
	Aggression  int // 攻击性
	Discipline  int // 纪律
	Consistency int // 稳定性
	Morale      int // 全队士气
	FanSupport  int // 球迷支持
	MarketValue int // 市场价值指数
}

// Clamp 把全部特征收敛到 [0,100]。
func (c *Characteristics) Clamp() {
	c.Aggression = clampInt(c.Aggression, 0, 100)
	c.Discipline = clampInt(c.Discipline, 0, 100)
	c.Consistency = clampInt(c.Consistency, 0, 100)
	c.Morale = clampInt(c.Morale, 0, 100)
	c.FanSupport = clampInt(c.FanSupport, 0, 100)
	c.MarketValue = clampInt(c.MarketValue, 0, 100)
}

// Team 是球队聚合。
//
// 约束：
// - FallbackBuild 标记该队是简化编队的产物（编队失败兜底）
// - Characteristics 仅 NPC 球队持有
type Team struct {
	Id              string
	Name            string
	IsPlayer        bool
	TeamType        TeamType
	Players         []*Player
	Coach           *Coach
	Tactics         Tactics
	Stats           TeamStats
	TotalCost       int64
	Strength        int
	AiLevel         int
	Reputation      int
	Characteristics *Characteristics
	FallbackBuild   bool
}

// FindPlayer 按姓名找选手（比赛事件里以姓名记录进球者）。
func (t *Team) FindPlayer(name string) *Player {
	for _, p := range t.Players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// HealthyPlayers 返回未受伤的选手。
func (t *Team) HealthyPlayers() []*Player {
	out := make([]*Player, 0, len(t.Players))
	for _, p := range t.Players {
		if !p.Injured {
			out = append(out, p)
		}
	}
	return out
}

// PlayersCost 是全队选手身价合计。
func (t *Team) PlayersCost() int64 {
	var sum int64
	for _, p := range t.Players {
		sum += p.Cost
	}
	return sum
}
