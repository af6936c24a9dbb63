package randx

import "testing"

func TestLockedSource_Int_区间为闭区间(t *testing.T) {
	src := NewSeeded(1)
	for i := 0; i < 1000; i++ {
		got := src.Int(3, 5)
		if got < 3 || got > 5 {
			t.Fatalf("期望 Int(3,5) 落在 [3,5]，got=%d", got)
		}
	}
	if got := src.Int(7, 7); got != 7 {
		t.Fatalf("期望单点区间返回自身，got=%d", got)
	}
}

func TestLockedSource_相同种子序列可复现(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)
	for i := 0; i < 100; i++ {
		if a.Int(0, 1000) != b.Int(0, 1000) {
			t.Fatalf("期望相同种子产生相同序列，第 %d 次不一致", i)
		}
	}
}

func TestLockedSource_Chance_边界(t *testing.T) {
	src := NewSeeded(1)
	if src.Chance(0) {
		t.Fatal("期望 0% 永远 false")
	}
	if !src.Chance(100) {
		t.Fatal("期望 100% 永远 true")
	}
}

func TestShuffle_不修改原切片且保持元素(t *testing.T) {
	src := NewSeeded(7)
	in := []int{1, 2, 3, 4, 5}
	out := Shuffle(src, in)
	if len(out) != len(in) {
		t.Fatalf("期望长度不变，got=%d", len(out))
	}
	for i, v := range []int{1, 2, 3, 4, 5} {
		if in[i] != v {
			t.Fatalf("期望原切片不被修改，in=%v", in)
		}
	}
	seen := map[int]bool{}
	for _, v := range out {
		seen[v] = true
	}
	for _, v := range in {
		if !seen[v] {
			t.Fatalf("期望元素集合不变，缺少 %d", v)
		}
	}
}

func TestWeightedChoice_零权重元素不会被选中(t *testing.T) {
	src := NewSeeded(9)
	items := []string{"a", "b", "c"}
	weights := []int{0, 5, 0}
	for i := 0; i < 200; i++ {
		if got := WeightedChoice(src, items, weights); got != "b" {
			t.Fatalf("期望只会选中权重非零的元素，got=%s", got)
		}
	}
}

func TestWeightedChoice_权重不匹配时退化为等概率(t *testing.T) {
	src := NewSeeded(3)
	items := []int{1, 2, 3}
	got := WeightedChoice(src, items, []int{1})
	if got != 1 && got != 2 && got != 3 {
		t.Fatalf("期望仍返回合法元素，got=%d", got)
	}
}
