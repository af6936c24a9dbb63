package domain

// 进攻战术。
const (
	AttackFast       = 1 // 速攻
	AttackBalanced   = 2 // 均衡
	AttackPossession = 3 // 控球
)

// 防守战术。
const (
	DefensePress    = 1 // 逼抢
	DefenseBalanced = 2 // 均衡
	DefenseRetreat  = 3 // 收缩
)

// Tactics 是球队战术设定。
type Tactics struct {
	Formation int // 阵型 1..12
	Attack    int // 进攻战术 1..3
	Defense   int // 防守战术 1..3
}

// Valid 校验战术取值范围。
func (t Tactics) Valid() bool {
	if t.Formation < 1 || t.Formation > FormationCount {
		return false
	}
	if t.Attack < AttackFast || t.Attack > AttackPossession {
		return false
	}
	if t.Defense < DefensePress || t.Defense > DefenseRetreat {
		return false
	}
	return true
}

const FormationCount = 12

// FormationSlots 是阵型的首发人数配置。
type FormationSlots struct {
	GK int
	DF int
	MF int
	FW int
}

var formationTable = map[int]FormationSlots{
	1:  {GK: 1, DF: 4, MF: 4, FW: 2}, // 4-4-2
	2:  {GK: 1, DF: 4, MF: 3, FW: 3}, // 4-3-3
	3:  {GK: 1, DF: 3, MF: 5, FW: 2}, // 3-5-2
	4:  {GK: 1, DF: 5, MF: 3, FW: 2}, // 5-3-2
	5:  {GK: 1, DF: 4, MF: 5, FW: 1}, // 4-5-1
	6:  {GK: 1, DF: 3, MF: 4, FW: 3}, // 3-4-3
	7:  {GK: 1, DF: 4, MF: 2, FW: 4}, // 4-2-3-1
	8:  {GK: 1, DF: 3, MF: 6, FW: 1}, // 3-6-1
	9:  {GK: 1, DF: 5, MF: 4, FW: 1}, // 5-4-1
	10: {GK: 1, DF: 4, MF: 1, FW: 5}, // 4-1-4-1
	11: {GK: 1, DF: 3, MF: 3, FW: 4}, // 3-3-4
	12: {GK: 1, DF: 5, MF: 2, FW: 3}, // 5-2-3
}

var formationNames = map[int]string{
	1:  "4-4-2",
	2:  "4-3-3",
	3:  "3-5-2",
	4:  "5-3-2",
	5:  "4-5-1",
	6:  "3-4-3",
	7:  "4-2-3-1",
	8:  "3-6-1",
	9:  "5-4-1",
	10: "4-1-4-1",
	11: "3-3-4",
	12: "5-2-3",
}

// FormationSlotsOf 返回阵型首发配置；未知阵型退回 4-4-2。
func FormationSlotsOf(formation int) FormationSlots {
	if s, ok := formationTable[formation]; ok {
		return s
	}
	return formationTable[1]
}

// FormationNameOf 返回阵型名。
func FormationNameOf(formation int) string {
	if n, ok := formationNames[formation]; ok {
		return n
	}
	return formationNames[1]
}

// 阵型相克表。表中的不对称是刻意保留的数据特性。
type formationMatchup struct {
	strong []int
	weak   []int
}

var formationMatchups = map[int]formationMatchup{
	1:  {strong: []int{3, 6}, weak: []int{4, 9}},
	2:  {strong: []int{1, 5}, weak: []int{3, 8}},
	3:  {strong: []int{4, 7}, weak: []int{1, 2}},
	4:  {strong: []int{1, 2}, weak: []int{6, 11}},
	5:  {strong: []int{8, 9}, weak: []int{2, 6}},
	6:  {strong: []int{4, 5}, weak: []int{1, 9}},
	7:  {strong: []int{3, 8}, weak: []int{4, 5}},
	8:  {strong: []int{2, 6}, weak: []int{7, 11}},
	9:  {strong: []int{6, 11}, weak: []int{1, 5}},
	10: {strong: []int{5, 8}, weak: []int{3, 7}},
	11: {strong: []int{8, 9}, weak: []int{4, 12}},
	12: {strong: []int{11, 7}, weak: []int{2, 6}},
}

// FormationAdvantage 返回双方阵型相性得分（±0.5）。
func FormationAdvantage(homeFormation, awayFormation int) (home, away float64) {
	homeData := formationMatchups[homeFormation]
	awayData := formationMatchups[awayFormation]

	if containsInt(homeData.strong, awayFormation) {
		home += 0.5
	}
	if containsInt(homeData.weak, awayFormation) {
		home -= 0.5
	}
	if containsInt(awayData.strong, homeFormation) {
		away += 0.5
	}
	if containsInt(awayData.weak, homeFormation) {
		away -= 0.5
	}
	return home, away
}

// 攻守相克：速攻克收缩怕逼抢；控球克逼抢怕收缩；均衡小克两头。
var attackMatchups = map[int]formationMatchup{
	AttackFast:       {strong: []int{DefenseRetreat}, weak: []int{DefensePress}},
	AttackBalanced:   {strong: []int{DefensePress, DefenseRetreat}, weak: []int{}},
	AttackPossession: {strong: []int{DefensePress}, weak: []int{DefenseRetreat}},
}

// AttackDefenseAdvantage 返回攻守战术相性得分（±0.3）。
func AttackDefenseAdvantage(homeAttack, awayDefense, homeDefense, awayAttack int) (home, away float64) {
	homeData := attackMatchups[homeAttack]
	if containsInt(homeData.strong, awayDefense) {
		home += 0.3
	}
	if containsInt(homeData.weak, awayDefense) {
		home -= 0.3
	}

	awayData := attackMatchups[awayAttack]
	if containsInt(awayData.strong, homeDefense) {
		away += 0.3
	}
	if containsInt(awayData.weak, homeDefense) {
		away -= 0.3
	}
	return home, away
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
