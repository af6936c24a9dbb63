package app

import (
	"testing"

	"FootballManager/internal/game/domain"
	"FootballManager/modules/kit/randx"
)

// scriptSource 按脚本顺序出骰，耗尽后回落到下界。
type scriptSource struct {
	rolls []int
	i     int
}

func (s *scriptSource) Int(min, max int) int {
	if s.i >= len(s.rolls) {
		return min
	}
	v := s.rolls[s.i]
	s.i++
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func (s *scriptSource) Float(min, max float64) float64 { return min }
func (s *scriptSource) Chance(percent float64) bool    { return percent > 0 }

func TestGrowthChance_消费觉醒加成后清零(t *testing.T) {
	engine := NewGrowthEngine(minSource{}, nopLogger())
	p := &domain.Player{
		Age:             20,
		GrowthPotential: 60,
		Form:            100,
		Morale:          100,
		GrowthBoost:     1.5,
	}

	// 30×1.2=36，加成 ×1.5=54
	if got := engine.growthChance(p, nil); got != 54 {
		t.Fatalf("期望带加成概率 54, got=%d", got)
	}
	if p.GrowthBoost != 0 {
		t.Fatalf("期望加成被消费清零, got=%v", p.GrowthBoost)
	}
	if got := engine.growthChance(p, nil); got != 36 {
		t.Fatalf("期望加成只生效一次, got=%d", got)
	}
}

func TestGrowthChance_收敛区间(t *testing.T) {
	engine := NewGrowthEngine(minSource{}, nopLogger())

	high := &domain.Player{
		Age:             16,
		GrowthPotential: 99,
		Form:            150,
		Morale:          200,
		GrowthBoost:     1.5,
	}
	if got := engine.growthChance(high, nil); got != 80 {
		t.Fatalf("期望上限 80, got=%d", got)
	}

	low := &domain.Player{
		Age:             40,
		GrowthPotential: 40,
		Form:            50,
		Morale:          0,
	}
	if got := engine.growthChance(low, nil); got != 5 {
		t.Fatalf("期望下限 5, got=%d", got)
	}
}

func TestProcessMonthlyGrowth_能力与年龄不变量(t *testing.T) {
	team := newPlayerTeam(t, 17)
	engine := NewGrowthEngine(randx.NewSeeded(17), nopLogger())

	agesBefore := make(map[string]float64, len(team.Players))
	for _, p := range team.Players {
		agesBefore[p.Id] = p.Age
	}

	report := engine.ProcessMonthlyGrowth(team, team.Coach)
	if report == nil {
		t.Fatalf("期望返回结算汇总")
	}

	for _, p := range team.Players {
		if p.Age != agesBefore[p.Id]+1.0/12 {
			t.Fatalf("期望年龄 +1/12, %s: %v -> %v", p.Name, agesBefore[p.Id], p.Age)
		}
		for i, a := range p.Abilities {
			if a < 30 || a > 99 {
				t.Fatalf("结算后能力越界 [30,99]: %s 能力 %d=%d", p.Name, i, a)
			}
		}
		if p.Form < 50 || p.Form > 150 {
			t.Fatalf("结算后调子越界: %d", p.Form)
		}
		if p.Morale < 0 || p.Morale > 200 {
			t.Fatalf("结算后士气越界: %d", p.Morale)
		}
	}
}

func TestCheckRetirement_年龄分段(t *testing.T) {
	engine := NewGrowthEngine(minSource{}, nopLogger())

	veteran := &domain.Player{Age: 38, Abilities: [domain.AbilityCount]int{70, 70, 70, 70, 70, 70}}
	result := &PlayerGrowthResult{Player: veteran}
	engine.checkRetirement(veteran, result)
	if !veteran.Retired || !result.Retirement {
		t.Fatalf("期望 38 岁在最低掷骰下引退")
	}

	young := &domain.Player{Age: 31, Abilities: [domain.AbilityCount]int{40, 40, 40, 40, 40, 40}}
	result = &PlayerGrowthResult{Player: young}
	engine.checkRetirement(young, result)
	if young.Retired {
		t.Fatalf("期望 32 岁以下不进入引退判定")
	}

	// 最高掷骰下即使引退概率叠满也不会触发
	lucky := &domain.Player{
		Age:        38,
		Abilities:  [domain.AbilityCount]int{40, 40, 40, 40, 40, 40},
		Injured:    true,
		InjuryDays: 70,
	}
	unlucky := NewGrowthEngine(maxSource{}, nopLogger())
	result = &PlayerGrowthResult{Player: lucky}
	unlucky.checkRetirement(lucky, result)
	if lucky.Retired {
		t.Fatalf("期望掷骰 100 时不引退")
	}
}

func TestCheckRetirement_概率叠加边界(t *testing.T) {
	// 32 岁基础 2，平均能力 40 再加 15，长期伤停 70 天再加 10，合计 27
	newVeteran := func() *domain.Player {
		return &domain.Player{
			Age:        32,
			Abilities:  [domain.AbilityCount]int{40, 40, 40, 40, 40, 40},
			Injured:    true,
			InjuryDays: 70,
		}
	}

	hit := NewGrowthEngine(&scriptSource{rolls: []int{27}}, nopLogger())
	p := newVeteran()
	result := &PlayerGrowthResult{Player: p}
	hit.checkRetirement(p, result)
	if !p.Retired || !result.Retirement {
		t.Fatalf("期望掷骰 27 恰好命中 27%% 引退概率")
	}

	miss := NewGrowthEngine(&scriptSource{rolls: []int{28}}, nopLogger())
	p = newVeteran()
	result = &PlayerGrowthResult{Player: p}
	miss.checkRetirement(p, result)
	if p.Retired || result.Retirement {
		t.Fatalf("期望掷骰 28 越过 27%% 边界不引退")
	}
}

func TestCheckInjury_伤病倍率在收敛后叠乘(t *testing.T) {
	// 35 岁基础风险 5+2+3=10；耐性 0.7 后降到 7，掷骰 8 就躲过
	resistant := &domain.Player{
		Age:              35,
		InjuryResistance: 0.7,
		Abilities:        [domain.AbilityCount]int{70, 70, 70, 70, 70, 70},
	}
	engine := NewGrowthEngine(&scriptSource{rolls: []int{8}}, nopLogger())
	result := &PlayerGrowthResult{Player: resistant}
	engine.checkInjury(resistant, nil, result)
	if resistant.Injured || result.Injury {
		t.Fatalf("期望耐性 0.7 时掷骰 8 不受伤")
	}

	// 同样的掷骰，无耐性时风险 10，8 ≤ 10 命中
	normal := &domain.Player{
		Age:              35,
		InjuryResistance: 1.0,
		Abilities:        [domain.AbilityCount]int{70, 70, 70, 70, 70, 70},
	}
	engine = NewGrowthEngine(&scriptSource{rolls: []int{8, 100, 0, 7}}, nopLogger())
	result = &PlayerGrowthResult{Player: normal}
	engine.checkInjury(normal, nil, result)
	if !normal.Injured || !result.Injury {
		t.Fatalf("期望无耐性时掷骰 8 受伤")
	}
	if normal.InjuryName == "" || normal.InjuryDays <= 0 {
		t.Fatalf("期望写入伤情与伤停天数, got=%q %d", normal.InjuryName, normal.InjuryDays)
	}
	if normal.TotalInjuryDays != normal.InjuryDays {
		t.Fatalf("期望累计伤停同步, got=%d", normal.TotalInjuryDays)
	}
}

func TestProcessInjuryRecovery_每次扣七天(t *testing.T) {
	engine := NewGrowthEngine(minSource{}, nopLogger())
	p := &domain.Player{
		Name:       "怪我人",
		Injured:    true,
		InjuryName: "捻挫",
		InjuryDays: 14,
		Form:       100,
		Morale:     100,
	}
	healthy := &domain.Player{Name: "元気", Form: 100, Morale: 100}

	recovered := engine.ProcessInjuryRecovery([]*domain.Player{p, healthy})
	if len(recovered) != 0 {
		t.Fatalf("期望 14 天伤停第一次推进后还没好")
	}
	if p.InjuryDays != 7 || !p.Injured {
		t.Fatalf("期望剩余 7 天, got=%d", p.InjuryDays)
	}

	recovered = engine.ProcessInjuryRecovery([]*domain.Player{p, healthy})
	if len(recovered) != 1 || recovered[0] != p {
		t.Fatalf("期望第二次推进后复出")
	}
	if p.Injured || p.InjuryDays != 0 || p.InjuryName != "" {
		t.Fatalf("期望复出后伤情清空, got=%+v", p)
	}
	if p.Form != 90 || p.Morale != 95 {
		t.Fatalf("期望复出掉 10 调子 5 士气, got form=%d morale=%d", p.Form, p.Morale)
	}
	if healthy.Form != 100 || healthy.Morale != 100 {
		t.Fatalf("期望健康选手不受影响")
	}
}

func TestApplyAgeEffects_能力下限30(t *testing.T) {
	engine := NewGrowthEngine(minSource{}, nopLogger())
	p := &domain.Player{Age: 40, Abilities: [domain.AbilityCount]int{30, 30, 30, 30, 30, 30}}
	result := &PlayerGrowthResult{Player: p, OldAbilities: p.Abilities, NewAbilities: p.Abilities}

	engine.applyAgeEffects(p, result)

	for i, a := range result.NewAbilities {
		if a < 30 {
			t.Fatalf("期望衰退不跌破 30, 能力 %d=%d", i, a)
		}
	}
}

func TestAdjustCondition_状态收敛(t *testing.T) {
	up := NewGrowthEngine(maxSource{}, nopLogger())
	p := &domain.Player{Form: 150, Morale: 200}
	up.adjustCondition(p, &PlayerGrowthResult{Player: p, Awakening: true, AbilityChange: 5})
	if p.Form != 150 || p.Morale != 200 {
		t.Fatalf("期望上界收敛, got form=%d morale=%d", p.Form, p.Morale)
	}

	down := NewGrowthEngine(minSource{}, nopLogger())
	p = &domain.Player{Form: 50, Morale: 0}
	down.adjustCondition(p, &PlayerGrowthResult{Player: p, Injury: true})
	if p.Form != 50 || p.Morale != 0 {
		t.Fatalf("期望下界收敛, got form=%d morale=%d", p.Form, p.Morale)
	}
}
