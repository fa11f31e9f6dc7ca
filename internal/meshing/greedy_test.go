package meshing

import (
	"math/rand"
	"testing"
)

type rect struct {
	j, k, w, h int
	val        int16
	ao         uint16
}

func TestGreedyRectsSoundness(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for iter := 0; iter < 200; iter++ {
		s := 1 + rng.Intn(12)
		mask := make([]int16, s*s)
		aomask := make([]uint16, s*s)
		for n := range mask {
			// Few distinct values so that rectangles actually grow.
			mask[n] = int16(rng.Intn(3) - 1)
			aomask[n] = uint16(rng.Intn(2))
		}
		orig := append([]int16(nil), mask...)
		origAO := append([]uint16(nil), aomask...)

		covered := make([]bool, s*s)
		greedyRects(mask, aomask, s, sameMaskAndAO, func(j, k, w, h int, val int16, ao uint16) {
			if val == 0 {
				t.Fatalf("emitted a rectangle for an empty cell")
			}
			for y := k; y < k+h; y++ {
				for x := j; x < j+w; x++ {
					n := y*s + x
					if orig[n] != val || origAO[n] != ao {
						t.Fatalf("rect %+v includes mismatching cell (%d,%d)", rect{j, k, w, h, val, ao}, x, y)
					}
					if covered[n] {
						t.Fatalf("cell (%d,%d) covered twice", x, y)
					}
					covered[n] = true
				}
			}
			// Width is maximal: the next cell in the seed row does not match.
			if j+w < s {
				n := k*s + j + w
				if mask[n] == val && aomask[n] == ao {
					t.Fatalf("rect %+v stopped before matching cell (%d,%d)", rect{j, k, w, h, val, ao}, j+w, k)
				}
			}
			// Height is maximal: the next row is not fully matching.
			if k+h < s {
				full := true
				for x := j; x < j+w; x++ {
					n := (k+h)*s + x
					if mask[n] != val || aomask[n] != ao {
						full = false
						break
					}
				}
				if full {
					t.Fatalf("rect %+v stopped before a matching row", rect{j, k, w, h, val, ao})
				}
			}
		})

		for n := range orig {
			if (orig[n] != 0) != covered[n] {
				t.Fatalf("cell %d: value %d, covered %v", n, orig[n], covered[n])
			}
			if mask[n] != 0 {
				t.Fatalf("cell %d not cleared", n)
			}
		}
	}
}

func TestGreedyRectsIgnoresAOWithoutAO(t *testing.T) {
	const s = 3
	mask := []int16{
		5, 5, 5,
		5, 5, 5,
		0, 0, 0,
	}
	aomask := []uint16{
		1, 2, 3,
		4, 5, 6,
		0, 0, 0,
	}
	var got []rect
	emit := func(j, k, w, h int, val int16, ao uint16) { got = append(got, rect{j, k, w, h, val, ao}) }

	greedyRects(append([]int16(nil), mask...), aomask, s, sameMask, emit)
	if len(got) != 1 || got[0].w != 3 || got[0].h != 2 {
		t.Fatalf("without AO: got %+v, want one 3x2 rectangle", got)
	}

	got = nil
	greedyRects(append([]int16(nil), mask...), aomask, s, sameMaskAndAO, emit)
	if len(got) != 6 {
		t.Fatalf("with AO: got %d rectangles, want 6", len(got))
	}
}

func TestGreedyRectsRowThenColumn(t *testing.T) {
	const s = 3
	// An L shape: the top row grows first, so the stem becomes its own quad.
	mask := []int16{
		1, 0, 0,
		1, 0, 0,
		1, 1, 1,
	}
	var got []rect
	greedyRects(mask, make([]uint16, s*s), s, sameMask, func(j, k, w, h int, val int16, ao uint16) {
		got = append(got, rect{j, k, w, h, val, ao})
	})
	want := []rect{{0, 0, 1, 3, 1, 0}, {1, 2, 2, 1, 1, 0}}
	if len(got) != len(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rect %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}
