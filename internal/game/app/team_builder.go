package app

import (
	"fmt"
	"math"
	"time"

	"FootballManager/internal/game/domain"
	coachcfg "FootballManager/internal/shared/gameconfig/coach"
	playercfg "FootballManager/internal/shared/gameconfig/player"
	"FootballManager/modules/kit/logx"
	"FootballManager/modules/kit/randx"

	"go.uber.org/zap"
)

// TeamBuilder 负责自动编队：预算拆分、选监督、按位置分档生成选手、定战术。
type TeamBuilder struct {
	src randx.Source
	log logx.Logger
}

func NewTeamBuilder(src randx.Source, log logx.Logger) *TeamBuilder {
	return &TeamBuilder{src: src, log: log}
}

// 位置人数分布（共 20 人）。
var positionDistributions = map[domain.TeamType]map[domain.Position]int{
	domain.TeamBalanced:    {domain.PositionGK: 2, domain.PositionDF: 6, domain.PositionMF: 8, domain.PositionFW: 4},
	domain.TeamDefensive:   {domain.PositionGK: 2, domain.PositionDF: 8, domain.PositionMF: 6, domain.PositionFW: 4},
	domain.TeamOffensive:   {domain.PositionGK: 2, domain.PositionDF: 5, domain.PositionMF: 7, domain.PositionFW: 6},
	domain.TeamYouth:       {domain.PositionGK: 2, domain.PositionDF: 6, domain.PositionMF: 8, domain.PositionFW: 4},
	domain.TeamExperienced: {domain.PositionGK: 2, domain.PositionDF: 6, domain.PositionMF: 8, domain.PositionFW: 4},
}

// 位置预算占比。
var budgetRatios = map[domain.TeamType]map[domain.Position]float64{
	domain.TeamBalanced:    {domain.PositionGK: 0.15, domain.PositionDF: 0.35, domain.PositionMF: 0.35, domain.PositionFW: 0.15},
	domain.TeamDefensive:   {domain.PositionGK: 0.20, domain.PositionDF: 0.45, domain.PositionMF: 0.25, domain.PositionFW: 0.10},
	domain.TeamOffensive:   {domain.PositionGK: 0.10, domain.PositionDF: 0.20, domain.PositionMF: 0.30, domain.PositionFW: 0.40},
	domain.TeamYouth:       {domain.PositionGK: 0.12, domain.PositionDF: 0.30, domain.PositionMF: 0.33, domain.PositionFW: 0.25},
	domain.TeamExperienced: {domain.PositionGK: 0.18, domain.PositionDF: 0.38, domain.PositionMF: 0.32, domain.PositionFW: 0.12},
}

// BuildAutoTeam 按预算与风格自动编成一支球队。
// 任何内部异常都退化为简化编队并打上 FallbackBuild 标记，不向外抛出。
func (b *TeamBuilder) BuildAutoTeam(budget int64, teamType domain.TeamType) (team *domain.Team) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Warn("自动编队失败，使用简化编队兜底", zap.Any("panic", r), zap.Int64("budget", budget))
			team = b.buildFallbackTeam(budget)
		}
	}()

	coachBudget := int64(math.Floor(float64(budget) * 0.2))
	playerBudget := budget - coachBudget

	coach := b.selectCoach(coachBudget, teamType)
	players := b.selectPlayers(playerBudget, teamType)
	tactics := b.selectTactics(teamType, coach)

	team = &domain.Team{
		TeamType: teamType,
		Coach:    coach,
		Players:  players,
		Tactics:  tactics,
	}
	team.TotalCost = totalCost(coach, players)
	team.Strength = teamStrength(players, coach, tactics)

	b.log.Info("自动编队完成",
		zap.Int("players", len(players)),
		zap.Int("strength", team.Strength),
		zap.Int64("total_cost", team.TotalCost),
	)
	return team
}

// selectCoach 在预算内按风格挑监督。
func (b *TeamBuilder) selectCoach(budget int64, teamType domain.TeamType) *domain.Coach {
	available := coachcfg.Catalog.ByBudget(budget)
	if len(available) == 0 {
		return nil
	}

	pool := available
	switch teamType {
	case domain.TeamBalanced:
		// 四维能力差不超过 3 的均衡型监督
		balanced := make([]coachcfg.Detail, 0, len(available))
		for _, c := range available {
			lo, hi := c.Abilities[0], c.Abilities[0]
			for _, a := range c.Abilities {
				if a < lo {
					lo = a
				}
				if a > hi {
					hi = a
				}
			}
			if hi-lo <= 3 {
				balanced = append(balanced, c)
			}
		}
		if len(balanced) != 0 {
			pool = balanced
		}
	case domain.TeamOffensive:
		offensive := make([]coachcfg.Detail, 0, len(available))
		for _, c := range available {
			switch c.Type {
			case "passionate", "young", "free", "innovative":
				offensive = append(offensive, c)
			}
		}
		if len(offensive) != 0 {
			pool = offensive
		}
	}

	detail := randx.Choice(b.src, pool)
	return &domain.Coach{
		Id:             detail.Id,
		Name:           detail.Name,
		Type:           detail.Type,
		Abilities:      detail.Abilities,
		Cost:           detail.Cost,
		Personality:    detail.Personality,
		Specialties:    append([]string(nil), detail.Specialties...),
		GrowthBonus:    detail.GrowthBonus,
		InjuryRisk:     detail.InjuryRisk,
		AwakeningBonus: detail.AwakeningBonus,
	}
}

// selectPlayers 按位置拆预算并分档生成选手。
func (b *TeamBuilder) selectPlayers(budget int64, teamType domain.TeamType) []*domain.Player {
	distribution, ok := positionDistributions[teamType]
	if !ok {
		distribution = positionDistributions[domain.TeamBalanced]
	}
	ratios, ok := budgetRatios[teamType]
	if !ok {
		ratios = budgetRatios[domain.TeamBalanced]
	}

	players := make([]*domain.Player, 0, 20)
	for _, position := range []domain.Position{domain.PositionGK, domain.PositionDF, domain.PositionMF, domain.PositionFW} {
		count := distribution[position]
		positionBudget := int64(math.Floor(float64(budget) * ratios[position]))
		players = append(players, b.selectPositionPlayers(position, count, positionBudget)...)
	}

	b.adjustPlayerBudgets(players, budget)
	return players
}

// selectPositionPlayers 生成单一位置的选手：
// 身价超出人均预算 1.5 倍时最多重摇 5 次，仍超 1.3 倍则直接压价。
func (b *TeamBuilder) selectPositionPlayers(position domain.Position, count int, budget int64) []*domain.Player {
	avgBudget := budget / int64(count)
	dist := tierDistributionOf(avgBudget)

	players := make([]*domain.Player, 0, count)
	for i := 0; i < count; i++ {
		tier := b.selectPlayerTier(dist, i)

		var p *domain.Player
		for attempts := 0; attempts < 5; attempts++ {
			p = b.GeneratePlayer(tier, position)
			if p.Cost <= avgBudget*3/2 {
				break
			}
		}
		if float64(p.Cost) > float64(avgBudget)*1.3 {
			p.Cost = int64(math.Floor(float64(avgBudget) * b.src.Float(0.8, 1.2)))
		}
		players = append(players, p)
	}
	return players
}

type tierDistribution struct {
	star      float64
	excellent float64
	regular   float64
}

func tierDistributionOf(avgBudget int64) tierDistribution {
	switch {
	case avgBudget >= 300000000:
		return tierDistribution{star: 0.4, excellent: 0.4, regular: 0.2}
	case avgBudget >= 150000000:
		return tierDistribution{star: 0.2, excellent: 0.6, regular: 0.2}
	default:
		return tierDistribution{star: 0.1, excellent: 0.3, regular: 0.6}
	}
}

// selectPlayerTier 按分布摇档位；每个位置第一个名额偏向高档。
func (b *TeamBuilder) selectPlayerTier(dist tierDistribution, playerIndex int) domain.Tier {
	roll := b.src.Float(0, 1)

	if playerIndex == 0 {
		if roll < dist.star*1.5 {
			return domain.TierStar
		}
		if roll < (dist.star+dist.excellent)*1.2 {
			return domain.TierExcellent
		}
	}

	if roll < dist.star {
		return domain.TierStar
	}
	if roll < dist.star+dist.excellent {
		return domain.TierExcellent
	}
	return domain.TierRegular
}

// GeneratePlayer 按档位与位置从模板目录生成一名选手。
func (b *TeamBuilder) GeneratePlayer(tier domain.Tier, position domain.Position) *domain.Player {
	templates := playercfg.Catalog.TemplatesByTier(string(tier))

	matched := make([]playercfg.Template, 0, len(templates))
	for _, t := range templates {
		if t.Position == string(position) {
			matched = append(matched, t)
		}
	}
	template := randx.Choice(b.src, templates)
	if len(matched) != 0 {
		template = randx.Choice(b.src, matched)
	}

	return b.createPlayerFromTemplate(template, tier)
}

func (b *TeamBuilder) createPlayerFromTemplate(template playercfg.Template, tier domain.Tier) *domain.Player {
	firstName := randx.Choice(b.src, playercfg.Catalog.Names.First)
	lastName := randx.Choice(b.src, playercfg.Catalog.Names.Last)
	age := b.src.Int(template.AgeRange[0], template.AgeRange[1])
	cost := int64(b.src.Int(int(template.CostRange[0]), int(template.CostRange[1])))

	// 能力值加浮动：档位越低浮动越大
	variation := 10
	switch tier {
	case domain.TierStar:
		variation = 5
	case domain.TierExcellent:
		variation = 8
	}
	var abilities [domain.AbilityCount]int
	for i, base := range template.BaseAbilities {
		v := base + b.src.Int(-variation, variation)
		if v < 30 {
			v = 30
		}
		if v > 99 {
			v = 99
		}
		abilities[i] = v
	}

	personality := template.Personality
	if !playercfg.Catalog.HasPersonality(personality) {
		personality = randx.Choice(b.src, playercfg.Catalog.PersonalityNames())
	}

	return &domain.Player{
		Id:               fmt.Sprintf("player_%d_%d", time.Now().UnixMilli(), b.src.Int(1000, 9999)),
		Name:             lastName + " " + firstName,
		Position:         domain.Position(template.Position),
		Age:              float64(age),
		Abilities:        abilities,
		Cost:             cost,
		Tier:             tier,
		Personality:      personality,
		SpecialSkills:    append([]string(nil), template.SpecialSkills...),
		Weaknesses:       append([]string(nil), template.Weaknesses...),
		GrowthPotential:  b.growthPotential(age, tier),
		Form:             100,
		Morale:           100,
		Experience:       b.experienceOf(age),
		InjuryResistance: 1.0,
	}
}

// growthPotential 按档位与年龄估算成长潜力，clamp [40,99]。
func (b *TeamBuilder) growthPotential(age int, tier domain.Tier) int {
	base := 60
	switch tier {
	case domain.TierStar:
		base = 85
	case domain.TierExcellent:
		base = 70
	}

	switch {
	case age <= 20:
		base += 15
	case age <= 23:
		base += 10
	case age <= 26:
		base += 5
	case age <= 29:
		base += 0
	case age <= 32:
		base -= 10
	default:
		base -= 20
	}

	base += b.src.Int(-5, 5)
	if base < 40 {
		base = 40
	}
	if base > 99 {
		base = 99
	}
	return base
}

func (b *TeamBuilder) experienceOf(age int) int {
	switch {
	case age <= 18:
		return b.src.Int(0, 20)
	case age <= 22:
		return b.src.Int(10, 40)
	case age <= 26:
		return b.src.Int(30, 70)
	case age <= 30:
		return b.src.Int(50, 90)
	default:
		return b.src.Int(70, 99)
	}
}

// adjustPlayerBudgets 总身价超预算时整体等比压缩。
func (b *TeamBuilder) adjustPlayerBudgets(players []*domain.Player, maxBudget int64) {
	var total int64
	for _, p := range players {
		total += p.Cost
	}
	if total <= maxBudget {
		return
	}
	ratio := float64(maxBudget) / float64(total)
	for _, p := range players {
		p.Cost = int64(math.Floor(float64(p.Cost) * ratio))
	}
}

// selectTactics 按风格定基础战术，再按监督相性覆盖。
func (b *TeamBuilder) selectTactics(teamType domain.TeamType, coach *domain.Coach) domain.Tactics {
	tactics := domain.Tactics{Formation: 1, Attack: domain.AttackBalanced, Defense: domain.DefenseBalanced}

	switch teamType {
	case domain.TeamOffensive:
		tactics = domain.Tactics{
			Formation: randx.Choice(b.src, []int{2, 6, 11}),
			Attack:    randx.Choice(b.src, []int{domain.AttackFast, domain.AttackPossession}),
			Defense:   domain.DefensePress,
		}
	case domain.TeamDefensive:
		tactics = domain.Tactics{
			Formation: randx.Choice(b.src, []int{4, 8, 9}),
			Attack:    domain.AttackBalanced,
			Defense:   domain.DefenseRetreat,
		}
	case domain.TeamBalanced:
		tactics = domain.Tactics{
			Formation: randx.Choice(b.src, []int{1, 5, 7}),
			Attack:    domain.AttackBalanced,
			Defense:   domain.DefenseBalanced,
		}
	case domain.TeamYouth:
		tactics = domain.Tactics{
			Formation: randx.Choice(b.src, []int{2, 3, 6}),
			Attack:    domain.AttackFast,
			Defense:   domain.DefensePress,
		}
	case domain.TeamExperienced:
		tactics = domain.Tactics{
			Formation: randx.Choice(b.src, []int{1, 4, 5}),
			Attack:    domain.AttackPossession,
			Defense:   domain.DefenseBalanced,
		}
	}

	if coach != nil {
		compatible := coachcfg.Catalog.TacticsOf(coach.Type)
		if len(compatible.Formations) != 0 {
			tactics.Formation = randx.Choice(b.src, compatible.Formations)
		}
		if len(compatible.Attacks) != 0 {
			tactics.Attack = randx.Choice(b.src, compatible.Attacks)
		}
		if len(compatible.Defenses) != 0 {
			tactics.Defense = randx.Choice(b.src, compatible.Defenses)
		}
	}

	return tactics
}

// buildFallbackTeam 是编队失败的兜底：均衡分布直接生成，不做重摇与压价。
func (b *TeamBuilder) buildFallbackTeam(budget int64) *domain.Team {
	playerBudget := int64(math.Floor(float64(budget) * 0.8))
	distribution := positionDistributions[domain.TeamBalanced]
	ratios := budgetRatios[domain.TeamBalanced]

	players := make([]*domain.Player, 0, 20)
	for _, position := range []domain.Position{domain.PositionGK, domain.PositionDF, domain.PositionMF, domain.PositionFW} {
		count := distribution[position]
		positionBudget := int64(float64(playerBudget) * ratios[position])
		avgCost := positionBudget / int64(count)
		for i := 0; i < count; i++ {
			tier := domain.TierRegular
			if avgCost >= 300000000 {
				tier = domain.TierStar
			} else if avgCost >= 100000000 {
				tier = domain.TierExcellent
			}
			p := b.GeneratePlayer(tier, position)
			if limit := int64(float64(positionBudget) * 0.8); p.Cost > limit {
				p.Cost = limit
			}
			players = append(players, p)
		}
	}
	b.adjustPlayerBudgets(players, playerBudget)

	coach := b.selectCoach(int64(math.Floor(float64(budget)*0.2)), domain.TeamBalanced)
	team := &domain.Team{
		TeamType:      domain.TeamBalanced,
		Coach:         coach,
		Players:       players,
		Tactics:       domain.Tactics{Formation: 1, Attack: domain.AttackBalanced, Defense: domain.DefenseBalanced},
		FallbackBuild: true,
	}
	team.TotalCost = totalCost(coach, players)
	team.Strength = teamStrength(players, coach, team.Tactics)
	return team
}

func totalCost(coach *domain.Coach, players []*domain.Player) int64 {
	var sum int64
	if coach != nil {
		sum += coach.Cost
	}
	for _, p := range players {
		sum += p.Cost
	}
	return sum
}

// teamStrength 是编队完成时的静态总评。
func teamStrength(players []*domain.Player, coach *domain.Coach, tactics domain.Tactics) int {
	if len(players) == 0 {
		return 50
	}
	sum := 0
	for _, p := range players {
		sum += p.Power()
	}
	avgPower := float64(sum) / float64(len(players))

	coachBonus := 1.0
	if coach != nil {
		coachBonus = 1.0 + float64(coach.AbilitySum()-24)*0.01
	}

	tacticalBonus := 1.01
	if tactics.Formation <= 6 {
		tacticalBonus = 1.02
	}

	return int(math.Round(avgPower * coachBonus * tacticalBonus))
}
