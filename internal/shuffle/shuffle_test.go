package shuffle

import (
	"sort"
	"testing"
)

// fixedSource replays a scripted sequence of picks.
type fixedSource struct {
	picks []int
	calls []int
}

func (s *fixedSource) Intn(n int) int {
	s.calls = append(s.calls, n)
	if len(s.picks) == 0 {
		return 0
	}
	p := s.picks[0]
	s.picks = s.picks[1:]
	return p
}

func TestShuffleIsPermutation(t *testing.T) {
	src := NewSource(42)
	input := []string{"a", "b", "c", "d", "e", "b"}
	for i := 0; i < 200; i++ {
		out := Shuffle(src, input)
		if len(out) != len(input) {
			t.Fatalf("expected length %d, got %d", len(input), len(out))
		}
		got := append([]string(nil), out...)
		want := append([]string(nil), input...)
		sort.Strings(got)
		sort.Strings(want)
		for k := range want {
			if got[k] != want[k] {
				t.Fatalf("multiset changed: got %v want %v", out, input)
			}
		}
	}
}

func TestShuffleDoesNotMutateInput(t *testing.T) {
	input := []int{1, 2, 3, 4}
	_ = Shuffle(&fixedSource{picks: []int{0, 0, 0}}, input)
	for i, v := range []int{1, 2, 3, 4} {
		if input[i] != v {
			t.Fatalf("input mutated: %v", input)
		}
	}
}

func TestShuffleFisherYatesOrder(t *testing.T) {
	src := &fixedSource{picks: []int{0, 0, 0}}
	out := Shuffle(src, []string{"a", "b", "c", "d"})

	wantCalls := []int{4, 3, 2}
	if len(src.calls) != len(wantCalls) {
		t.Fatalf("expected %d picks, got %v", len(wantCalls), src.calls)
	}
	for i := range wantCalls {
		if src.calls[i] != wantCalls[i] {
			t.Fatalf("pick %d bound = %d, want %d", i, src.calls[i], wantCalls[i])
		}
	}
	// i=3 swaps with 0: d b c a; i=2 swaps with 0: c b d a; i=1 swaps with 0: b c d a
	want := []string{"b", "c", "d", "a"}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("got %v, want %v", out, want)
		}
	}
}

func TestShuffleEmptyAndSingle(t *testing.T) {
	src := &fixedSource{}
	if out := Shuffle(src, []string{}); len(out) != 0 {
		t.Fatalf("expected empty output, got %v", out)
	}
	out := Shuffle(src, []string{"only"})
	if len(out) != 1 || out[0] != "only" {
		t.Fatalf("expected singleton unchanged, got %v", out)
	}
	if len(src.calls) != 0 {
		t.Fatalf("expected no random picks, got %v", src.calls)
	}
}
