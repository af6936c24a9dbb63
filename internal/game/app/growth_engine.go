package app

import (
	"fmt"
	"math"

	"FootballManager/internal/game/domain"
	playercfg "FootballManager/internal/shared/gameconfig/player"
	"FootballManager/modules/kit/logx"
	"FootballManager/modules/kit/randx"

	"go.uber.org/zap"
)

// GrowthEngine 负责月次成长结算：
// 年龄效果 → 基础成长 → 觉醒 → 伤病 → 引退 → 状态调整，按固定顺序逐人处理。
type GrowthEngine struct {
	src randx.Source
	log logx.Logger
}

func NewGrowthEngine(src randx.Source, log logx.Logger) *GrowthEngine {
	return &GrowthEngine{src: src, log: log}
}

// PlayerGrowthResult 是单人结算明细。
type PlayerGrowthResult struct {
	Player        *domain.Player
	OldAbilities  [domain.AbilityCount]int
	NewAbilities  [domain.AbilityCount]int
	AbilityChange int
	Awakening     bool
	AwakeningName string
	Injury        bool
	Retirement    bool
	Events        []string
}

// GrowthReport 是整队结算汇总。
type GrowthReport struct {
	PlayerGrowth []*PlayerGrowthResult
	Awakenings   []*PlayerGrowthResult
	Injuries     []*PlayerGrowthResult
	Retirements  []*PlayerGrowthResult
	Summary      GrowthSummary
}

type GrowthSummary struct {
	GrownPlayers    int
	AwakenedPlayers int
	InjuredPlayers  int
	RetiredPlayers  int
	AverageGrowth   float64
}

var abilityNames = [domain.AbilityCount]string{"スピード", "パワー", "テクニック", "スタミナ", "IQ", "運"}

// ProcessMonthlyGrowth 对整队执行一次月次结算。
func (e *GrowthEngine) ProcessMonthlyGrowth(team *domain.Team, coach *domain.Coach) *GrowthReport {
	report := &GrowthReport{
		PlayerGrowth: []*PlayerGrowthResult{},
		Awakenings:   []*PlayerGrowthResult{},
		Injuries:     []*PlayerGrowthResult{},
		Retirements:  []*PlayerGrowthResult{},
	}

	for _, p := range team.Players {
		result := e.processPlayer(p, coach)
		if result.AbilityChange > 0 {
			report.PlayerGrowth = append(report.PlayerGrowth, result)
		}
		if result.Awakening {
			report.Awakenings = append(report.Awakenings, result)
		}
		if result.Injury {
			report.Injuries = append(report.Injuries, result)
		}
		if result.Retirement {
			report.Retirements = append(report.Retirements, result)
		}
	}

	report.Summary = summarize(report)
	e.log.Info("月次成长结算完成",
		zap.String("team", team.Name),
		zap.Int("grown", report.Summary.GrownPlayers),
		zap.Int("awakened", report.Summary.AwakenedPlayers),
		zap.Int("injured", report.Summary.InjuredPlayers),
		zap.Int("retired", report.Summary.RetiredPlayers),
	)
	return report
}

// processPlayer 按固定顺序执行单人结算管线。
// 各阶段改写的是 result.NewAbilities 快照，最后一次性落回选手。
func (e *GrowthEngine) processPlayer(p *domain.Player, coach *domain.Coach) *PlayerGrowthResult {
	result := &PlayerGrowthResult{
		Player:       p,
		OldAbilities: p.Abilities,
		NewAbilities: p.Abilities,
		Events:       []string{},
	}

	e.applyAgeEffects(p, result)
	e.applyBasicGrowth(p, coach, result)
	e.checkAwakening(p, coach, result)
	e.checkInjury(p, coach, result)
	e.checkRetirement(p, result)
	e.adjustCondition(p, result)

	p.Abilities = result.NewAbilities
	return result
}

// applyAgeEffects 加 1/12 岁；30 岁起按 (年龄-30)×5% 概率随机一项能力衰退 1-2。
func (e *GrowthEngine) applyAgeEffects(p *domain.Player, result *PlayerGrowthResult) {
	p.Age += 1.0 / 12

	age := p.AgeYears()
	if age < 30 {
		return
	}
	declineChance := (age - 30) * 5
	if e.src.Int(1, 100) > declineChance {
		return
	}

	idx := e.src.Int(0, domain.AbilityCount-1)
	decline := e.src.Int(1, 2)
	if v := result.NewAbilities[idx] - decline; v >= 30 {
		result.NewAbilities[idx] = v
	} else {
		result.NewAbilities[idx] = 30
	}
	result.AbilityChange -= decline
	result.Events = append(result.Events, fmt.Sprintf("年齢による能力低下: %s -%d", abilityNames[idx], decline))
}

func (e *GrowthEngine) applyBasicGrowth(p *domain.Player, coach *domain.Coach, result *PlayerGrowthResult) {
	chance := e.growthChance(p, coach)
	if e.src.Int(1, 100) > chance {
		return
	}

	for _, idx := range e.selectGrowthAbilities(p) {
		amount := e.growthAmount(p, idx)
		if amount <= 0 {
			continue
		}
		if v := result.NewAbilities[idx] + amount; v <= 99 {
			result.NewAbilities[idx] = v
		} else {
			result.NewAbilities[idx] = 99
		}
		result.AbilityChange += amount
		result.Events = append(result.Events, fmt.Sprintf("成長: %s +%d", abilityNames[idx], amount))
	}
}

// growthChance 计算本次成长概率，clamp [5,80]。
// 觉醒挂起的 GrowthBoost 在这里消费并清零，因此同一次结算里
// 新触发的觉醒会把加成留给下一次结算。
func (e *GrowthEngine) growthChance(p *domain.Player, coach *domain.Coach) int {
	chance := 30.0 * domain.AgeGrowthRate(p.AgeYears())
	chance += float64(p.GrowthPotential-60) * 0.5

	personality := playercfg.Catalog.PersonalityOf(p.Personality)
	chance *= personality.GrowthRate

	if coach != nil && coach.GrowthBonus > 0 {
		chance *= coach.GrowthBonus
	}

	if p.GrowthBoost > 0 {
		chance *= p.GrowthBoost
		p.GrowthBoost = 0
	}

	chance += float64(p.Form+p.Morale-200) * 0.1
	return clampInt(int(math.Round(chance)), 5, 80)
}

// selectGrowthAbilities 选 1-3 个偏向位置特长的能力（去重）。
func (e *GrowthEngine) selectGrowthAbilities(p *domain.Player) []int {
	pools := map[domain.Position][]int{
		domain.PositionGK: {domain.AbilityTechnique, domain.AbilityIQ, domain.AbilityLuck},
		domain.PositionDF: {domain.AbilityPower, domain.AbilityStamina, domain.AbilityIQ},
		domain.PositionMF: {domain.AbilitySpeed, domain.AbilityTechnique, domain.AbilityStamina, domain.AbilityIQ},
		domain.PositionFW: {domain.AbilitySpeed, domain.AbilityPower, domain.AbilityTechnique},
	}

	count := e.src.Int(1, 3)
	picked := make([]int, 0, count)
	for i := 0; i < count; i++ {
		var idx int
		if pool, ok := pools[p.Position]; ok {
			idx = randx.Choice(e.src, pool)
		} else {
			idx = e.src.Int(0, domain.AbilityCount-1)
		}
		if !containsIndex(picked, idx) {
			picked = append(picked, idx)
		}
	}
	return picked
}

// growthAmount 计算单项成长量，上限 3；90 以上的高能力值 80% 概率不再成长。
func (e *GrowthEngine) growthAmount(p *domain.Player, abilityIndex int) int {
	amount := 1
	if domain.AgeGrowthRate(p.AgeYears()) > 1.0 {
		amount += e.src.Int(0, 1)
	}
	if p.GrowthPotential > 80 && e.src.Int(1, 100) <= 20 {
		amount++
	}
	if p.Abilities[abilityIndex] >= 90 && e.src.Int(1, 100) > 20 {
		return 0
	}
	if amount > 3 {
		amount = 3
	}
	return amount
}

// 觉醒类型。rare 类型有 70% 概率不进入候选。
type awakeningType struct {
	name   string
	effect string
	rare   bool
}

var awakeningTypes = []awakeningType{
	{name: "能力大幅向上", effect: "ability_boost"},
	{name: "特殊能力習得", effect: "skill_acquisition", rare: true},
	{name: "ポテンシャル開花", effect: "potential_unlock", rare: true},
	{name: "成長率向上", effect: "growth_boost"},
	{name: "怪我耐性向上", effect: "injury_resistance"},
}

func (e *GrowthEngine) checkAwakening(p *domain.Player, coach *domain.Coach, result *PlayerGrowthResult) {
	personality := playercfg.Catalog.PersonalityOf(p.Personality)
	coachAwakening := 0.0
	if coach != nil {
		coachAwakening = coach.AwakeningBonus
	}
	chance := p.AwakeningChance(personality.AwakeningChance, coachAwakening)
	if e.src.Int(1, 100) > chance {
		return
	}

	available := make([]awakeningType, 0, len(awakeningTypes))
	for _, t := range awakeningTypes {
		if t.rare && e.src.Int(1, 100) > 30 {
			continue
		}
		available = append(available, t)
	}
	if len(available) == 0 {
		return
	}
	chosen := randx.Choice(e.src, available)

	result.Awakening = true
	result.AwakeningName = chosen.name
	e.applyAwakening(p, chosen, result)
	result.Events = append(result.Events, "覚醒発生: "+chosen.name)
	e.log.Info("选手觉醒", zap.String("player", p.Name), zap.String("type", chosen.name))
}

func (e *GrowthEngine) applyAwakening(p *domain.Player, t awakeningType, result *PlayerGrowthResult) {
	switch t.effect {
	case "ability_boost":
		for i := range result.NewAbilities {
			boost := e.src.Int(2, 4)
			if v := result.NewAbilities[i] + boost; v <= 99 {
				result.NewAbilities[i] = v
			} else {
				result.NewAbilities[i] = 99
			}
			result.AbilityChange += boost
		}
	case "skill_acquisition":
		skill := e.specialSkill(p.Position)
		if !containsString(p.SpecialSkills, skill) {
			p.SpecialSkills = append(p.SpecialSkills, skill)
		}
	case "potential_unlock":
		if v := p.GrowthPotential + e.src.Int(5, 10); v <= 99 {
			p.GrowthPotential = v
		} else {
			p.GrowthPotential = 99
		}
	case "growth_boost":
		p.GrowthBoost = 1.5
	case "injury_resistance":
		if p.InjuryResistance <= 0 {
			p.InjuryResistance = 1.0
		}
		p.InjuryResistance *= 0.7
	}
}

var skillsByPosition = map[domain.Position][]string{
	domain.PositionGK: {"神セーブ", "パンチング", "キック精度", "冷静さ"},
	domain.PositionDF: {"完璧マーク", "空中戦", "危険察知", "タックル"},
	domain.PositionMF: {"パス王", "運動量", "試合読み", "ロングシュート"},
	domain.PositionFW: {"得点感覚", "裏抜け", "ヘディング", "ドリブル"},
}

func (e *GrowthEngine) specialSkill(position domain.Position) string {
	skills, ok := skillsByPosition[position]
	if !ok {
		skills = skillsByPosition[domain.PositionMF]
	}
	return randx.Choice(e.src, skills)
}

type injuryEntry struct {
	name     string
	minDays  int
	maxDays  int
	severity string
}

var injuryTable = []injuryEntry{
	{name: "軽傷", minDays: 7, maxDays: 14, severity: "minor"},
	{name: "筋肉痛", minDays: 3, maxDays: 7, severity: "minor"},
	{name: "捻挫", minDays: 14, maxDays: 21, severity: "moderate"},
	{name: "打撲", minDays: 7, maxDays: 14, severity: "moderate"},
	{name: "肉離れ", minDays: 21, maxDays: 35, severity: "severe"},
	{name: "骨折", minDays: 60, maxDays: 90, severity: "severe"},
}

func (e *GrowthEngine) checkInjury(p *domain.Player, coach *domain.Coach, result *PlayerGrowthResult) {
	if p.Injured {
		return
	}

	personality := playercfg.Catalog.PersonalityOf(p.Personality)
	coachRisk := 0.0
	if coach != nil {
		coachRisk = coach.InjuryRisk
	}
	risk := float64(p.InjuryRisk(personality.InjuryRisk, coachRisk))
	if p.InjuryResistance > 0 {
		risk *= p.InjuryResistance
	}
	if float64(e.src.Int(1, 100)) > risk {
		return
	}

	entry := e.pickInjury(p)
	days := e.src.Int(entry.minDays, entry.maxDays)

	p.Injured = true
	p.InjuryName = entry.name
	p.InjuryDays = days
	p.TotalInjuryDays += days

	result.Injury = true
	result.Events = append(result.Events, fmt.Sprintf("怪我: %s (%d日間)", entry.name, days))
	e.log.Info("选手受伤", zap.String("player", p.Name), zap.String("injury", entry.name), zap.Int("days", days))
}

// pickInjury 按年龄调整伤情候选：25 岁以下 70% 排除重伤，30 岁以上 30% 只剩重伤。
func (e *GrowthEngine) pickInjury(p *domain.Player) injuryEntry {
	available := injuryTable

	if p.Age < 25 && e.src.Int(1, 100) <= 70 {
		filtered := make([]injuryEntry, 0, len(injuryTable))
		for _, entry := range injuryTable {
			if entry.severity != "severe" {
				filtered = append(filtered, entry)
			}
		}
		available = filtered
	} else if p.Age >= 30 && e.src.Int(1, 100) <= 30 {
		filtered := make([]injuryEntry, 0, 2)
		for _, entry := range injuryTable {
			if entry.severity == "severe" {
				filtered = append(filtered, entry)
			}
		}
		available = filtered
	}

	return randx.Choice(e.src, available)
}

func (e *GrowthEngine) checkRetirement(p *domain.Player, result *PlayerGrowthResult) {
	if p.Age < 32 {
		return
	}

	chance := 0
	switch {
	case p.Age >= 38:
		chance = 50
	case p.Age >= 36:
		chance = 20
	case p.Age >= 34:
		chance = 8
	default:
		chance = 2
	}

	avg := p.AverageAbility()
	if avg < 50 {
		chance += 15
	} else if avg < 60 {
		chance += 5
	}
	if p.Injured && p.InjuryDays > 60 {
		chance += 10
	}

	if e.src.Int(1, 100) <= chance {
		p.Retired = true
		result.Retirement = true
		result.Events = append(result.Events, "引退を発表")
		e.log.Info("选手引退", zap.String("player", p.Name), zap.Int("age", p.AgeYears()))
	}
}

// adjustCondition 结算末尾的调子/士气波动。
func (e *GrowthEngine) adjustCondition(p *domain.Player, result *PlayerGrowthResult) {
	p.Form += e.src.Int(-10, 10)
	p.ClampForm()

	moraleChange := e.src.Int(-5, 5)
	if result.AbilityChange > 0 {
		moraleChange += result.AbilityChange * 2
	}
	if result.Awakening {
		moraleChange += 20
	}
	if result.Injury {
		moraleChange -= 15
	}
	p.Morale += moraleChange
	p.ClampMorale()
}

// ProcessInjuryRecovery 每个推进日扣 7 天伤停，痊愈时小幅掉调子和士气。
func (e *GrowthEngine) ProcessInjuryRecovery(players []*domain.Player) []*domain.Player {
	recovered := make([]*domain.Player, 0)
	for _, p := range players {
		if !p.Injured || p.InjuryDays <= 0 {
			continue
		}
		p.InjuryDays -= 7
		if p.InjuryDays > 0 {
			continue
		}

		p.Injured = false
		p.InjuryDays = 0
		p.InjuryName = ""
		p.Form -= 10
		p.ClampForm()
		p.Morale -= 5
		p.ClampMorale()

		recovered = append(recovered, p)
		e.log.Info("选手伤愈复出", zap.String("player", p.Name))
	}
	return recovered
}

func summarize(report *GrowthReport) GrowthSummary {
	s := GrowthSummary{
		GrownPlayers:    len(report.PlayerGrowth),
		AwakenedPlayers: len(report.Awakenings),
		InjuredPlayers:  len(report.Injuries),
		RetiredPlayers:  len(report.Retirements),
	}
	if len(report.PlayerGrowth) > 0 {
		total := 0
		for _, r := range report.PlayerGrowth {
			total += r.AbilityChange
		}
		s.AverageGrowth = float64(total) / float64(len(report.PlayerGrowth))
	}
	return s
}

func containsIndex(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func containsString(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
