package input

import "testing"

func TestArrow(t *testing.T) {
	cases := map[rune]rune{
		'A': KeyArrowUp,
		'B': KeyArrowDown,
		'C': KeyArrowRight,
		'D': KeyArrowLeft,
		'H': ignoreKey,
		'3': ignoreKey,
	}
	for in, want := range cases {
		if got := arrow(in); got != want {
			t.Errorf("%q: got %q, want %q", in, got, want)
		}
	}
}
