package domain

import "testing"

func TestPlayer_Power_均一能力时等于能力值(t *testing.T) {
	p := &Player{Position: PositionMF, Abilities: [AbilityCount]int{70, 70, 70, 70, 70, 70}}
	if got := p.Power(); got != 70 {
		t.Fatalf("期望均一能力的加权综合力为 70, got=%d", got)
	}
}

func TestPlayer_Power_位置权重生效(t *testing.T) {
	// FW 速度权重最高：只有速度高的前锋应比只有力量高的前锋强
	fast := &Player{Position: PositionFW, Abilities: [AbilityCount]int{90, 50, 50, 50, 50, 50}}
	strong := &Player{Position: PositionFW, Abilities: [AbilityCount]int{50, 90, 50, 50, 50, 50}}
	if fast.Power() <= strong.Power() {
		t.Fatalf("期望速度型前锋综合力更高, fast=%d strong=%d", fast.Power(), strong.Power())
	}
}

func TestAgeGrowthRate_年龄分段(t *testing.T) {
	cases := []struct {
		age  int
		want float64
	}{
		{16, 1.5}, {18, 1.5}, {19, 1.2}, {22, 1.2},
		{26, 1.0}, {29, 0.8}, {32, 0.5}, {33, 0.2}, {40, 0.2},
	}
	for _, c := range cases {
		if got := AgeGrowthRate(c.age); got != c.want {
			t.Fatalf("AgeGrowthRate(%d)=%v, 期望 %v", c.age, got, c.want)
		}
	}
}

func TestPlayer_AgeYears_向下取整(t *testing.T) {
	p := &Player{Age: 24.9}
	if got := p.AgeYears(); got != 24 {
		t.Fatalf("期望 24.9 岁取整为 24, got=%d", got)
	}
}

func TestPlayer_InjuryRisk_收敛到区间(t *testing.T) {
	young := &Player{Age: 20}
	if got := young.InjuryRisk(0.1, 0.1); got < 1 || got > 20 {
		t.Fatalf("期望受伤概率落在 [1,20], got=%d", got)
	}
	old := &Player{Age: 35}
	if got := old.InjuryRisk(3.0, 3.0); got != 20 {
		t.Fatalf("期望高风险被压到上限 20, got=%d", got)
	}
	if young.InjuryRisk(1.0, 1.0) >= old.InjuryRisk(1.0, 1.0) {
		t.Fatalf("期望高龄选手受伤概率更高")
	}
}

func TestPlayer_AwakeningChance_收敛到区间(t *testing.T) {
	p := &Player{Age: 20, GrowthPotential: 95}
	if got := p.AwakeningChance(2.0, 2.0); got != 25 {
		t.Fatalf("期望觉醒概率压到上限 25, got=%d", got)
	}
	low := &Player{Age: 35, GrowthPotential: 40}
	if got := low.AwakeningChance(0.1, 0.1); got != 1 {
		t.Fatalf("期望觉醒概率保底 1, got=%d", got)
	}
}

func TestPlayer_ClampFormMorale(t *testing.T) {
	p := &Player{Form: 200, Morale: -10}
	p.ClampForm()
	p.ClampMorale()
	if p.Form != 150 {
		t.Fatalf("期望调子上限 150, got=%d", p.Form)
	}
	if p.Morale != 0 {
		t.Fatalf("期望士气下限 0, got=%d", p.Morale)
	}
}

func TestPlayer_MarketValue_档位倍率生效(t *testing.T) {
	star := &Player{Position: PositionFW, Age: 24, Tier: TierStar,
		Abilities: [AbilityCount]int{80, 80, 80, 80, 80, 80}}
	regular := &Player{Position: PositionFW, Age: 24, Tier: TierRegular,
		Abilities: [AbilityCount]int{80, 80, 80, 80, 80, 80}}
	if star.MarketValue() <= regular.MarketValue() {
		t.Fatalf("期望星级选手市值更高, star=%d regular=%d", star.MarketValue(), regular.MarketValue())
	}
}
