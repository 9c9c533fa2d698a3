package guish

import (
	"cmp"
	"image/color"
	"slices"
	"time"

	"cogentcore.org/core/math32"
	"github.com/hajimehoshi/ebiten/v2"
)

// maxBatchVertices is the most vertices one DrawTriangles call may take.
const maxBatchVertices = 65535 / 3 * 3

// ambient is the light level of faces turned away from the light.
const ambient = 0.35

// lightDir points from the surface towards the light.
var lightDir = math32.Vec3(0.4, 0.8, 0.6).Normal()

// triangle is one projected, shaded triangle awaiting submission.
type triangle struct {
	v     [3]ebiten.Vertex
	depth float32
}

// whitePixelImage is a shared 1x1 white image used as the source texture
// for every triangle.
var whitePixelImage *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// Draw renders the scene onto screen: meshes as flat-shaded triangles
// sorted back to front, then the HUD. Back faces are culled.
func (s *Scene) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	screen.Fill(s.ClearColor.toRGBA())

	eye := s.camera.Position()
	s.tris = s.collectTriangles(s.root, eye, s.tris[:0])
	slices.SortStableFunc(s.tris, func(a, b triangle) int {
		return cmp.Compare(b.depth, a.depth)
	})
	s.submitTriangles(screen)
	s.hud.draw(screen)

	if s.debug {
		s.lastDraw.drawTime = time.Since(t0)
		s.lastDraw.triangles = len(s.tris)
		s.debugLog(s.lastDraw)
	}
}

// collectTriangles walks the visible tree and appends the front-facing,
// on-screen triangles of every mesh node. World matrices are the ones
// cached by the last Update.
func (s *Scene) collectTriangles(n *Node, eye math32.Vector3, buf []triangle) []triangle {
	if !n.Visible {
		return buf
	}
	if m := n.Mesh; m != nil {
		for i := 0; i < m.TriangleCount(); i++ {
			a, b, c := m.Triangle(i)
			a = transformPoint(&n.worldMatrix, a)
			b = transformPoint(&n.worldMatrix, b)
			c = transformPoint(&n.worldMatrix, c)
			normal := math32.Normal(a, b, c)
			if normal.Dot(a.Sub(eye)) >= 0 {
				continue
			}
			tri, ok := s.projectTriangle(a, b, c, shade(n.Color, normal))
			if ok {
				buf = append(buf, tri)
			}
		}
	}
	for _, child := range n.children {
		buf = s.collectTriangles(child, eye, buf)
	}
	return buf
}

func (s *Scene) projectTriangle(a, b, c math32.Vector3, col Color) (triangle, bool) {
	var tri triangle
	for i, p := range [3]math32.Vector3{a, b, c} {
		sx, sy, depth, ok := s.camera.Project(p)
		if !ok {
			return triangle{}, false
		}
		tri.v[i] = ebiten.Vertex{
			DstX:   float32(sx),
			DstY:   float32(sy),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: col.R * col.A,
			ColorG: col.G * col.A,
			ColorB: col.B * col.A,
			ColorA: col.A,
		}
		tri.depth += depth / 3
	}
	return tri, true
}

// shade applies a single directional light to c.
func shade(c Color, normal math32.Vector3) Color {
	diffuse := max(normal.Dot(lightDir), 0)
	k := ambient + (1-ambient)*diffuse
	return Color{
		R: clamp01(c.R * k),
		G: clamp01(c.G * k),
		B: clamp01(c.B * k),
		A: clamp01(c.A),
	}
}

// submitTriangles draws s.tris in order, batching up to maxBatchVertices
// per DrawTriangles call.
func (s *Scene) submitTriangles(dst *ebiten.Image) {
	img := ensureWhitePixel()
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
	flush := func() {
		if len(s.vertices) == 0 {
			return
		}
		dst.DrawTriangles(s.vertices, s.indices, img, &ebiten.DrawTrianglesOptions{})
		s.vertices = s.vertices[:0]
		s.indices = s.indices[:0]
	}
	for i := range s.tris {
		if len(s.vertices)+3 > maxBatchVertices {
			flush()
		}
		base := uint16(len(s.vertices))
		s.vertices = append(s.vertices, s.tris[i].v[:]...)
		s.indices = append(s.indices, base, base+1, base+2)
	}
	flush()
}
