package app

import (
	"fmt"

	"FootballManager/internal/game/domain"
)

// GenerateSchedule 用圆桌法生成双循环赛程。
//
// 约束：
// - 每队每天至多一场
// - 任意两队主客各交手一次
// - 奇数队伍补一个轮空位，轮空场次不进赛程
func GenerateSchedule(teams []*domain.Team) []*domain.MatchDay {
	refs := make([]domain.TeamRef, 0, len(teams)+1)
	for _, t := range teams {
		refs = append(refs, domain.TeamRef{Id: t.Id, Name: t.Name})
	}

	// 轮空占位
	if len(refs)%2 != 0 {
		refs = append(refs, domain.TeamRef{})
	}
	n := len(refs)
	if n < 2 {
		return nil
	}

	// 圆桌法：0 号固定，其余 n-1 队轮转。
	rotation := make([]int, n-1)
	for i := range rotation {
		rotation[i] = i + 1
	}

	type pairing struct{ home, away int }
	rounds := make([][]pairing, 0, n-1)
	for r := 0; r < n-1; r++ {
		pairs := make([]pairing, 0, n/2)
		// 固定位主客随轮次交替，避免 0 号全程坐庄主场
		if r%2 == 0 {
			pairs = append(pairs, pairing{home: 0, away: rotation[0]})
		} else {
			pairs = append(pairs, pairing{home: rotation[0], away: 0})
		}
		for i := 1; i < n/2; i++ {
			pairs = append(pairs, pairing{home: rotation[i], away: rotation[n-1-i]})
		}
		rounds = append(rounds, pairs)

		head := rotation[0]
		copy(rotation, rotation[1:])
		rotation[n-2] = head
	}

	totalRounds := (n - 1) * 2
	schedule := make([]*domain.MatchDay, 0, totalRounds)
	for day := 1; day <= totalRounds; day++ {
		secondLeg := day > n-1
		roundIdx := day - 1
		if secondLeg {
			roundIdx = day - n
		}

		fixtures := make([]*domain.Fixture, 0, n/2)
		for i, p := range rounds[roundIdx] {
			home, away := refs[p.home], refs[p.away]
			if secondLeg {
				home, away = away, home
			}
			if home.Id == "" || away.Id == "" {
				continue
			}
			fixtures = append(fixtures, &domain.Fixture{
				Id:   fmt.Sprintf("match_%d_%d", day, i),
				Day:  day,
				Home: home,
				Away: away,
			})
		}

		schedule = append(schedule, &domain.MatchDay{Day: day, Fixtures: fixtures})
	}

	return schedule
}
