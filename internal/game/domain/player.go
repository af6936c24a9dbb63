package domain

import "math"

// Position 是选手场上位置。
type Position string

const (
	PositionGK Position = "GK"
	PositionDF Position = "DF"
	PositionMF Position = "MF"
	PositionFW Position = "FW"
)

// 能力向量下标：[速度, 力量, 技术, 耐力, IQ, 运气]。
const (
	AbilitySpeed = iota
	AbilityPower
	AbilityTechnique
	AbilityStamina
	AbilityIQ
	AbilityLuck
	AbilityCount
)

// Tier 是选手身价档位。
type Tier string

const (
	TierStar      Tier = "star"
	TierExcellent Tier = "excellent"
	TierRegular   Tier = "regular"
)

// Player 是选手聚合。
//
// 约束：
// - Age 以年为单位，成长结算每次 +1/12，年龄分段判断一律用 AgeYears()
// - GrowthBoost 是觉醒挂起的成长倍率，由下一次成长结算消费后清零
// - InjuryResistance 是觉醒累积的伤病倍率（<1 表示更抗伤）
type Player struct {
	Id               string
	Name             string
	Position         Position
	Age              float64
	Abilities        [AbilityCount]int
	Cost             int64
	Tier             Tier
	Personality      string
	SpecialSkills    []string
	Weaknesses       []string
	Injured          bool
	InjuryName       string
	InjuryDays       int
	TotalInjuryDays  int
	GrowthPotential  int
	Form             int // 调子 [50,150]
	Morale           int // 士气 [0,200]
	Experience       int
	TotalGames       int
	TotalGoals       int
	GrowthBoost      float64
	InjuryResistance float64
	Retired          bool
}

// AgeYears 返回整数年龄（向下取整）。
func (p *Player) AgeYears() int {
	return int(math.Floor(p.Age))
}

// positionWeights 是各位置的能力加权。
var positionWeights = map[Position][AbilityCount]float64{
	PositionGK: {0.5, 1.2, 2.0, 1.0, 1.5, 1.0},
	PositionDF: {1.0, 1.5, 1.0, 1.2, 1.3, 1.0},
	PositionMF: {1.2, 1.0, 1.3, 1.5, 1.2, 1.0},
	PositionFW: {1.5, 1.3, 1.3, 1.0, 1.2, 1.2},
}

// Power 按位置加权计算选手综合力。
func (p *Player) Power() int {
	weights, ok := positionWeights[p.Position]
	if !ok {
		weights = [AbilityCount]float64{1, 1, 1, 1, 1, 1}
	}
	weightedSum := 0.0
	weightTotal := 0.0
	for i, a := range p.Abilities {
		weightedSum += float64(a) * weights[i]
		weightTotal += weights[i]
	}
	return int(math.Round(weightedSum / weightTotal))
}

// AgeGrowthRate 返回年龄段成长系数。
func AgeGrowthRate(age int) float64 {
	switch {
	case age <= 18:
		return 1.5
	case age <= 22:
		return 1.2
	case age <= 26:
		return 1.0
	case age <= 29:
		return 0.8
	case age <= 32:
		return 0.5
	default:
		return 0.2
	}
}

var tierMultipliers = map[Tier]float64{
	TierStar:      1.5,
	TierExcellent: 1.2,
	TierRegular:   1.0,
}

// MarketValue 估算市场价值（百万 KR 单位换算后的 KR 金额）。
func (p *Player) MarketValue() int64 {
	tm, ok := tierMultipliers[p.Tier]
	if !ok {
		tm = 1.0
	}
	base := float64(p.Power()) * AgeGrowthRate(p.AgeYears()) * tm
	return int64(math.Round(base)) * 1000000
}

// InjuryRisk 计算单次成长结算的受伤概率（百分比，[1,20]）。
// personalityRisk/coachRisk 是性格与监督的倍率；
// 觉醒累积的 InjuryResistance 在结算处 clamp 之后叠乘。
func (p *Player) InjuryRisk(personalityRisk, coachRisk float64) int {
	risk := 5.0
	if p.AgeYears() >= 30 {
		risk += 2
	}
	if p.AgeYears() >= 33 {
		risk += 3
	}
	if personalityRisk > 0 {
		risk *= personalityRisk
	}
	if coachRisk > 0 {
		risk *= coachRisk
	}
	return clampInt(int(math.Round(risk)), 1, 20)
}

// AwakeningChance 计算觉醒概率（百分比，[1,25]）。
func (p *Player) AwakeningChance(personalityAwakening, coachAwakening float64) int {
	chance := 10.0
	if p.AgeYears() <= 22 {
		chance += 5
	}
	if p.AgeYears() >= 30 {
		chance -= 5
	}
	chance += math.Floor(float64(p.GrowthPotential-60) / 5)
	if personalityAwakening > 0 {
		chance *= personalityAwakening
	}
	if coachAwakening > 0 {
		chance *= coachAwakening
	}
	return clampInt(int(math.Round(chance)), 1, 25)
}

// AverageAbility 返回六维能力均值。
func (p *Player) AverageAbility() float64 {
	sum := 0
	for _, a := range p.Abilities {
		sum += a
	}
	return float64(sum) / AbilityCount
}

// ClampForm 收敛调子到合法区间。
func (p *Player) ClampForm() {
	p.Form = clampInt(p.Form, 50, 150)
}

// ClampMorale 收敛士气到合法区间。
func (p *Player) ClampMorale() {
	p.Morale = clampInt(p.Morale, 0, 200)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
