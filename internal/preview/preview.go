// Package preview draws meshed surfaces into an image with a fixed
// orthographic camera. It exists for debugging mesher output without a GPU.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"sort"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"voxmesh/internal/meshing"
)

// Options controls the rendered view.
type Options struct {
	Width, Height int
	Background    color.RGBA
	// ViewDir points from the scene towards the camera.
	ViewDir mgl32.Vec3
	// Light points towards the light source.
	Light   mgl32.Vec3
	Ambient float32
	Caption string
}

// DefaultOptions returns a square isometric-style view.
func DefaultOptions(size int) Options {
	return Options{
		Width:      size,
		Height:     size,
		Background: color.RGBA{R: 24, G: 26, B: 32, A: 255},
		ViewDir:    mgl32.Vec3{1, 1.2, 0.8},
		Light:      mgl32.Vec3{0.4, 1, 0.25},
		Ambient:    0.45,
	}
}

type triangle struct {
	pts   [3][2]float32
	depth float32
	fill  color.NRGBA
}

// Render draws all surfaces, far triangles first.
func Render(surfaces []*meshing.Surface, opt Options) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, opt.Width, opt.Height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = opt.Background.R, opt.Background.G, opt.Background.B, opt.Background.A
	}

	cam, ok := newCamera(surfaces, opt)
	if ok {
		tris := cam.collect(surfaces, opt)
		sort.SliceStable(tris, func(i, j int) bool { return tris[i].depth > tris[j].depth })

		r := vector.NewRasterizer(opt.Width, opt.Height)
		for _, t := range tris {
			r.Reset(opt.Width, opt.Height)
			r.MoveTo(t.pts[0][0], t.pts[0][1])
			r.LineTo(t.pts[1][0], t.pts[1][1])
			r.LineTo(t.pts[2][0], t.pts[2][1])
			r.ClosePath()
			r.Draw(img, img.Bounds(), image.NewUniform(t.fill), image.Point{})
		}
	}

	if opt.Caption != "" {
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(color.White),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(4, 14),
		}
		d.DrawString(opt.Caption)
	}
	return img
}

type camera struct {
	view, proj mgl32.Mat4
	toCamera   mgl32.Vec3
	light      mgl32.Vec3
	w, h       int
}

func newCamera(surfaces []*meshing.Surface, opt Options) (*camera, bool) {
	var lo, hi mgl32.Vec3
	found := false
	for _, s := range surfaces {
		if s == nil || s.VertexCount() == 0 {
			continue
		}
		b := s.WorldBounds()
		if !found {
			lo, hi, found = b.Min(), b.Max(), true
			continue
		}
		for c := 0; c < 3; c++ {
			lo[c] = math32.Min(lo[c], b.Min()[c])
			hi[c] = math32.Max(hi[c], b.Max()[c])
		}
	}
	if !found {
		return nil, false
	}

	center := lo.Add(hi).Mul(0.5)
	radius := math32.Max(hi.Sub(lo).Len()/2, 1)
	toCamera := opt.ViewDir.Normalize()
	eye := center.Add(toCamera.Mul(radius * 2))
	aspect := float32(opt.Width) / float32(max(opt.Height, 1))

	return &camera{
		view:     mgl32.LookAtV(eye, center, mgl32.Vec3{0, 1, 0}),
		proj:     mgl32.Ortho(-radius*aspect, radius*aspect, -radius, radius, 0.01, radius*4),
		toCamera: toCamera,
		light:    opt.Light.Normalize(),
		w:        opt.Width,
		h:        opt.Height,
	}, true
}

func (c *camera) collect(surfaces []*meshing.Surface, opt Options) []triangle {
	var tris []triangle
	for _, s := range surfaces {
		if s == nil {
			continue
		}
		for _, r := range s.Ranges() {
			alpha := float32(1)
			if r.Appearance != nil && r.Appearance.Alpha > 0 {
				alpha = r.Appearance.Alpha
			}
			for i := r.IndexStart; i+2 < r.IndexStart+r.IndexCount; i += 3 {
				if t, ok := c.triangle(s, s.Indices[i:i+3], alpha, opt.Ambient); ok {
					tris = append(tris, t)
				}
			}
		}
	}
	return tris
}

func (c *camera) triangle(s *meshing.Surface, idx []uint32, alpha, ambient float32) (triangle, bool) {
	v0 := idx[0]
	n := mgl32.Vec3{float32(s.Normals[v0*3]), float32(s.Normals[v0*3+1]), float32(s.Normals[v0*3+2])}
	if n.Dot(c.toCamera) <= 0 {
		return triangle{}, false
	}

	var t triangle
	var rgb mgl32.Vec3
	for k, vi := range idx {
		p := mgl32.Vec3{s.Positions[vi*3], s.Positions[vi*3+1], s.Positions[vi*3+2]}.Add(s.Origin)
		win := mgl32.Project(p, c.view, c.proj, 0, 0, c.w, c.h)
		t.pts[k] = [2]float32{win.X(), float32(c.h) - win.Y()}
		t.depth += win.Z() / 3
		rgb = rgb.Add(mgl32.Vec3{s.Colors[vi*4], s.Colors[vi*4+1], s.Colors[vi*4+2]}.Mul(1.0 / 3))
	}

	shade := ambient + (1-ambient)*math32.Max(0, n.Dot(c.light))
	t.fill = color.NRGBA{
		R: channel(rgb[0] * shade),
		G: channel(rgb[1] * shade),
		B: channel(rgb[2] * shade),
		A: channel(alpha),
	}
	return t, true
}

func channel(v float32) uint8 {
	return uint8(math32.Floor(math32.Min(math32.Max(v, 0), 1)*255 + 0.5))
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create preview file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode preview: %w", err)
	}
	return f.Close()
}
