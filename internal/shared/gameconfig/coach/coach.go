package coach

import (
	"path/filepath"
	"runtime"

	"FootballManager/internal/shared/config"
)

type catalog struct {
	Title             string             `json:"title" mapstructure:"title"`
	CList             []Detail           `json:"list" mapstructure:"list"`
	CompatibleTactics map[string]Tactics `json:"compatible_tactics" mapstructure:"compatible_tactics"`
	CMap              map[int]Detail
}

// Detail 是监督（教练）的静态数据。
type Detail struct {
	Id             int      `json:"id" mapstructure:"id"`
	Name           string   `json:"name" mapstructure:"name"`
	Type           string   `json:"type" mapstructure:"type"`
	Description    string   `json:"description" mapstructure:"description"`
	Abilities      [4]int   `json:"abilities" mapstructure:"abilities"` // [魅力, 共情, 指导力, 运气]
	Cost           int64    `json:"cost" mapstructure:"cost"`
	Personality    string   `json:"personality" mapstructure:"personality"`
	Specialties    []string `json:"specialties" mapstructure:"specialties"`
	GrowthBonus    float64  `json:"growth_bonus" mapstructure:"growth_bonus"`
	InjuryRisk     float64  `json:"injury_risk" mapstructure:"injury_risk"`
	AwakeningBonus float64  `json:"awakening_bonus" mapstructure:"awakening_bonus"`
}

// Tactics 是监督类型对应的相性战术集合。
type Tactics struct {
	Formations []int `json:"formations" mapstructure:"formations"`
	Attacks    []int `json:"attacks" mapstructure:"attacks"`
	Defenses   []int `json:"defenses" mapstructure:"defenses"`
}

var Catalog = &catalog{}

func Load() {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("load basic config failed: runtime.Caller(0) error")
	}
	configPath := filepath.Join(filepath.Dir(file), "basic.json")
	config.Load(configPath, &Catalog)
	Catalog.CMap = make(map[int]Detail, len(Catalog.CList))
	for _, c := range Catalog.CList {
		Catalog.CMap[c.Id] = c
	}
}

// ById 按 id 查监督。
func (c *catalog) ById(id int) (Detail, bool) {
	d, ok := c.CMap[id]
	return d, ok
}

// ByBudget 返回薪资不超过预算的监督列表。
func (c *catalog) ByBudget(maxBudget int64) []Detail {
	out := make([]Detail, 0, len(c.CList))
	for _, d := range c.CList {
		if d.Cost <= maxBudget {
			out = append(out, d)
		}
	}
	return out
}

// TacticsOf 返回监督类型的相性战术；未知类型按 analytical 处理。
func (c *catalog) TacticsOf(coachType string) Tactics {
	if t, ok := c.CompatibleTactics[coachType]; ok {
		return t
	}
	return c.CompatibleTactics["analytical"]
}

// AbilitySum 是监督四维能力合计。
func (d Detail) AbilitySum() int {
	sum := 0
	for _, a := range d.Abilities {
		sum += a
	}
	return sum
}
