package player

import (
	"path/filepath"
	"runtime"

	"FootballManager/internal/shared/config"
)

type catalog struct {
	Title         string                  `json:"title" mapstructure:"title"`
	Templates     map[string][]Template   `json:"templates" mapstructure:"templates"`
	Names         NamePool                `json:"names" mapstructure:"names"`
	Personalities []Personality           `json:"personalities" mapstructure:"personalities"`
	PMap          map[string]Personality
}

// Template 是按身价档位划分的选手模板。
type Template struct {
	Id            string   `json:"id" mapstructure:"id"`
	Name          string   `json:"name" mapstructure:"name"`
	Position      string   `json:"position" mapstructure:"position"`
	AgeRange      [2]int   `json:"age_range" mapstructure:"age_range"`
	BaseAbilities [6]int   `json:"base_abilities" mapstructure:"base_abilities"` // [速度, 力量, 技术, 耐力, IQ, 运气]
	CostRange     [2]int64 `json:"cost_range" mapstructure:"cost_range"`
	Personality   string   `json:"personality" mapstructure:"personality"`
	SpecialSkills []string `json:"special_skills" mapstructure:"special_skills"`
	Weaknesses    []string `json:"weaknesses" mapstructure:"weaknesses"`
}

type NamePool struct {
	First []string `json:"first" mapstructure:"first"`
	Last  []string `json:"last" mapstructure:"last"`
}

// Personality 是性格特质对成长/觉醒/伤病的倍率。
type Personality struct {
	Name            string  `json:"name" mapstructure:"name"`
	GrowthRate      float64 `json:"growth_rate" mapstructure:"growth_rate"`
	AwakeningChance float64 `json:"awakening_chance" mapstructure:"awakening_chance"`
	InjuryRisk      float64 `json:"injury_risk" mapstructure:"injury_risk"`
	Description     string  `json:"description" mapstructure:"description"`
}

var Catalog = &catalog{}

func Load() {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("load basic config failed: runtime.Caller(0) error")
	}
	configPath := filepath.Join(filepath.Dir(file), "basic.json")
	config.Load(configPath, &Catalog)
	Catalog.PMap = make(map[string]Personality, len(Catalog.Personalities))
	for _, p := range Catalog.Personalities {
		Catalog.PMap[p.Name] = p
	}
}

// TemplatesByTier 返回指定档位的模板；未知档位退回 regular。
func (c *catalog) TemplatesByTier(tier string) []Template {
	if list, ok := c.Templates[tier]; ok && len(list) != 0 {
		return list
	}
	return c.Templates["regular"]
}

// PersonalityOf 返回指定性格特质；查不到时返回中性倍率。
func (c *catalog) PersonalityOf(name string) Personality {
	if p, ok := c.PMap[name]; ok {
		return p
	}
	return Personality{Name: name, GrowthRate: 1.0, AwakeningChance: 1.0, InjuryRisk: 1.0}
}

// HasPersonality 判断性格特质是否在目录中定义。
func (c *catalog) HasPersonality(name string) bool {
	_, ok := c.PMap[name]
	return ok
}

// PersonalityNames 返回全部性格特质名（按目录顺序）。
func (c *catalog) PersonalityNames() []string {
	out := make([]string, 0, len(c.Personalities))
	for _, p := range c.Personalities {
		out = append(out, p.Name)
	}
	return out
}
