package meshing

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPackUnpackAO(t *testing.T) {
	for a00 := 0; a00 < 4; a00++ {
		for a01 := 0; a01 < 4; a01++ {
			for a10 := 0; a10 < 4; a10++ {
				for a11 := 0; a11 < 4; a11++ {
					ao := packAO(a00, a01, a10, a11)
					got := [4]int{
						unpackAO(ao, false, false),
						unpackAO(ao, false, true),
						unpackAO(ao, true, false),
						unpackAO(ao, true, true),
					}
					if want := [4]int{a00, a01, a10, a11}; got != want {
						t.Fatalf("packAO%v: unpacked %v", want, got)
					}
				}
			}
		}
	}
}

func TestTriangleSplit(t *testing.T) {
	tests := []struct {
		ao00, ao01, ao10, ao11 int
		want                   bool
	}{
		{1, 1, 1, 1, false},
		{2, 2, 2, 2, true},
		{1, 2, 3, 1, true},  // 00 == 11, 01 != 10
		{1, 2, 2, 3, false}, // 00 != 11, 01 == 10
		{3, 1, 2, 2, true},  // 5 > 3
		{1, 3, 2, 2, false}, // 3 < 5
		{0, 1, 1, 0, false},
	}
	for _, tt := range tests {
		if got := triangleSplit(tt.ao00, tt.ao01, tt.ao10, tt.ao11); got != tt.want {
			t.Fatalf("triangleSplit(%d,%d,%d,%d): got %v, want %v", tt.ao00, tt.ao01, tt.ao10, tt.ao11, got, tt.want)
		}
	}
}

func TestAOColorPusher(t *testing.T) {
	push := aoColorPusher([3]float32{0.9, 0.6, 0.3}, 1.2)
	base := mgl32.Vec3{1, 0.5, 0.25}
	// corners 00=0, 01=3, 10=1, 11=2, pushed in order 00, 10, 11, 01
	colors, _ := push(nil, base, packAO(0, 3, 1, 2))
	want := []float32{1.2, 0.9, 0.6, 0.3}
	if len(colors) != 16 {
		t.Fatalf("got %d color floats, want 16", len(colors))
	}
	for v, mult := range want {
		if got := colors[v*4]; got != base[0]*mult {
			t.Fatalf("vertex %d: got %v, want %v", v, got, base[0]*mult)
		}
		if got := colors[v*4+3]; got != 1 {
			t.Fatalf("vertex %d: got alpha %v, want 1", v, got)
		}
	}

	flat, split := pushFlatColors(nil, base, 0xff)
	if !split || len(flat) != 16 || flat[4] != 1 || flat[5] != 0.5 {
		t.Fatalf("flat colors: got %v (split %v)", flat, split)
	}
}
