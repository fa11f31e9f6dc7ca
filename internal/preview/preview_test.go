package preview

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"voxmesh/internal/meshing"
	"voxmesh/internal/registry"
	"voxmesh/internal/world"
)

func countNot(img *image.RGBA, bg color.RGBA) int {
	n := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != bg.R || img.Pix[i+1] != bg.G || img.Pix[i+2] != bg.B {
			n++
		}
	}
	return n
}

func meshCube(t *testing.T) *meshing.Surface {
	t.Helper()
	reg := registry.Default()
	stone, _ := reg.BlockID("stone")
	c := world.NewChunk(world.ChunkCoord{X: 1}, 4)
	c.Fill(stone)
	s := meshing.NewTerrainMesher(reg, nil).MeshChunk(c, nil, meshing.DefaultParams())
	if s == nil {
		t.Fatal("cube produced no surface")
	}
	return s
}

func TestRenderDrawsSurface(t *testing.T) {
	opt := DefaultOptions(64)
	img := Render([]*meshing.Surface{meshCube(t)}, opt)
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Fatalf("got %v image", img.Bounds())
	}
	drawn := countNot(img, opt.Background)
	if drawn < 64*64/10 {
		t.Fatalf("only %d pixels drawn", drawn)
	}
	if drawn == 64*64 {
		t.Fatal("surface covers the whole image, camera framing is off")
	}
}

func TestRenderEmpty(t *testing.T) {
	opt := DefaultOptions(16)
	img := Render(nil, opt)
	if n := countNot(img, opt.Background); n != 0 {
		t.Fatalf("empty render drew %d pixels", n)
	}
	opt.Caption = "x"
	if n := countNot(Render([]*meshing.Surface{nil}, opt), opt.Background); n == 0 {
		t.Fatal("caption not drawn")
	}
}

func TestRenderDeterministic(t *testing.T) {
	s := meshCube(t)
	a := Render([]*meshing.Surface{s}, DefaultOptions(32))
	b := Render([]*meshing.Surface{s}, DefaultOptions(32))
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("pixel byte %d differs", i)
		}
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := WritePNG(path, Render(nil, DefaultOptions(8))); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil || format != "png" || cfg.Width != 8 {
		t.Fatalf("decoded %v %q: %v", cfg, format, err)
	}
}
