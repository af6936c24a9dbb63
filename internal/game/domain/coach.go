package domain

// 监督能力向量下标：[魅力, 共情, 指导力, 运气]。
const (
	CoachCharisma = iota
	CoachEmpathy
	CoachCoaching
	CoachLuck
	CoachAbilityCount
)

// Coach 是球队监督。倍率字段直接取自监督目录。
type Coach struct {
	Id             int
	Name           string
	Type           string
	Abilities      [CoachAbilityCount]int
	Cost           int64
	Personality    string
	Specialties    []string
	GrowthBonus    float64
	InjuryRisk     float64
	AwakeningBonus float64
}

// AbilitySum 是监督四维能力合计（平均值为 24）。
func (c *Coach) AbilitySum() int {
	sum := 0
	for _, a := range c.Abilities {
		sum += a
	}
	return sum
}
