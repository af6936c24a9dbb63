package domain

import "testing"

func TestTactics_Valid(t *testing.T) {
	ok := Tactics{Formation: 1, Attack: AttackFast, Defense: DefenseRetreat}
	if !ok.Valid() {
		t.Fatalf("期望合法战术通过校验")
	}

	invalid := []Tactics{
		{Formation: 0, Attack: 1, Defense: 1},
		{Formation: 13, Attack: 1, Defense: 1},
		{Formation: 1, Attack: 0, Defense: 1},
		{Formation: 1, Attack: 4, Defense: 1},
		{Formation: 1, Attack: 1, Defense: 0},
		{Formation: 1, Attack: 1, Defense: 4},
	}
	for _, tc := range invalid {
		if tc.Valid() {
			t.Fatalf("期望非法战术被拒绝: %+v", tc)
		}
	}
}

func TestFormationSlotsOf_未知阵型退回442(t *testing.T) {
	s := FormationSlotsOf(999)
	if s.GK != 1 || s.DF != 4 || s.MF != 4 || s.FW != 2 {
		t.Fatalf("期望未知阵型退回 4-4-2, got=%+v", s)
	}
	if got := s.GK + s.DF + s.MF + s.FW; got != 11 {
		t.Fatalf("期望首发 11 人, got=%d", got)
	}
}

func TestFormationSlots_全部阵型都是11人(t *testing.T) {
	for f := 1; f <= FormationCount; f++ {
		s := FormationSlotsOf(f)
		if got := s.GK + s.DF + s.MF + s.FW; got != 11 {
			t.Fatalf("阵型 %d 首发人数=%d, 期望 11", f, got)
		}
	}
}

func TestFormationAdvantage_相克关系(t *testing.T) {
	// 阵型 1 克 3；阵型 3 怕 1
	home, away := FormationAdvantage(1, 3)
	if home != 0.5 {
		t.Fatalf("期望主队相性 +0.5, got=%v", home)
	}
	if away != -0.5 {
		t.Fatalf("期望客队相性 -0.5, got=%v", away)
	}

	// 同阵型互不相克
	home, away = FormationAdvantage(1, 1)
	if home != 0 || away != 0 {
		t.Fatalf("期望同阵型无相性, home=%v away=%v", home, away)
	}
}

func TestAttackDefenseAdvantage_攻守相克(t *testing.T) {
	// 主队速攻克客队收缩；客队控球克主队逼抢
	home, away := AttackDefenseAdvantage(AttackFast, DefenseRetreat, DefensePress, AttackPossession)
	if home != 0.3 {
		t.Fatalf("期望主队 +0.3, got=%v", home)
	}
	if away != 0.3 {
		t.Fatalf("期望客队 +0.3, got=%v", away)
	}

	// 速攻怕逼抢
	home, _ = AttackDefenseAdvantage(AttackFast, DefensePress, DefenseBalanced, AttackBalanced)
	if home != -0.3 {
		t.Fatalf("期望速攻遇逼抢 -0.3, got=%v", home)
	}
}

func TestTeam_选手查询(t *testing.T) {
	healthy := &Player{Name: "山田 太郎"}
	injured := &Player{Name: "佐藤 次郎", Injured: true}
	team := &Team{Players: []*Player{healthy, injured}}

	if team.FindPlayer("山田 太郎") != healthy {
		t.Fatalf("期望按姓名命中选手")
	}
	if team.FindPlayer("不在籍") != nil {
		t.Fatalf("期望未命中返回 nil")
	}
	hp := team.HealthyPlayers()
	if len(hp) != 1 || hp[0] != healthy {
		t.Fatalf("期望只返回健康选手, got=%d", len(hp))
	}
}
