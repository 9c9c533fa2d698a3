package guish

import (
	"cogentcore.org/core/math32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// cameraNear is the near clip distance used by Project.
const cameraNear = 0.01

// maxPitch keeps the orbit away from the poles, where the view basis
// degenerates.
var maxPitch = math32.DegToRad(89)

var worldUp = math32.Vec3(0, 1, 0)

// orbitAnim holds active tweens for the orbit angles and distance.
type orbitAnim struct {
	yaw, pitch, dist *gween.Tween
	done             [3]bool
}

// focusAnim holds active tweens for the orbit target.
type focusAnim struct {
	x, y, z *gween.Tween
	done    [3]bool
}

// Camera is a perspective camera orbiting a target point.
type Camera struct {
	// Target is the world-space point the camera looks at.
	Target math32.Vector3
	// Distance from Target to the eye.
	Distance float32
	// Yaw rotates around the world Y axis, in radians. Zero looks down -Z.
	Yaw float32
	// Pitch raises the eye above the target plane, in radians. It is
	// clamped to ±89° on every update.
	Pitch float32
	// FOV is the vertical field of view in degrees.
	FOV float32
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	orbit *orbitAnim
	focus *focusAnim
}

// newCamera creates a Camera with default values and the given viewport.
func newCamera(viewport Rect) *Camera {
	return &Camera{
		Distance: 6,
		FOV:      60,
		Viewport: viewport,
	}
}

// Position returns the eye position in world space.
func (c *Camera) Position() math32.Vector3 {
	cp := math32.Cos(c.Pitch)
	off := math32.Vec3(cp*math32.Sin(c.Yaw), math32.Sin(c.Pitch), cp*math32.Cos(c.Yaw))
	return c.Target.Add(off.MulScalar(c.Distance))
}

// Basis returns the camera's forward, right and up unit vectors.
func (c *Camera) Basis() (forward, right, up math32.Vector3) {
	forward = c.Target.Sub(c.Position()).Normal()
	right = forward.Cross(worldUp).Normal()
	up = right.Cross(forward)
	return forward, right, up
}

func (c *Camera) aspect() float32 {
	if c.Viewport.Height == 0 {
		return 1
	}
	return float32(c.Viewport.Width / c.Viewport.Height)
}

// PointerRay returns the world-space ray through the normalized viewport
// position (x, y in [-1, 1], y up). The direction is unit length.
func (c *Camera) PointerRay(x, y float32) Ray {
	forward, right, up := c.Basis()
	tanHalf := math32.Tan(math32.DegToRad(c.FOV) / 2)
	dir := forward.
		Add(right.MulScalar(x * tanHalf * c.aspect())).
		Add(up.MulScalar(y * tanHalf))
	return Ray{Origin: c.Position(), Dir: dir.Normal()}
}

// Project maps a world point to screen coordinates inside Viewport. depth
// is the distance along the view axis. ok is false for points behind the
// near plane.
func (c *Camera) Project(p math32.Vector3) (sx, sy float64, depth float32, ok bool) {
	forward, right, up := c.Basis()
	d := p.Sub(c.Position())
	depth = d.Dot(forward)
	if depth < cameraNear {
		return 0, 0, depth, false
	}
	tanHalf := math32.Tan(math32.DegToRad(c.FOV) / 2)
	nx := d.Dot(right) / (depth * tanHalf * c.aspect())
	ny := d.Dot(up) / (depth * tanHalf)
	sx = c.Viewport.X + float64(nx+1)/2*c.Viewport.Width
	sy = c.Viewport.Y + float64(1-ny)/2*c.Viewport.Height
	return sx, sy, depth, true
}

// ScreenToNormalized converts screen coordinates to the normalized viewport
// coordinates used by InputEvent.
func (c *Camera) ScreenToNormalized(sx, sy float64) (x, y float32) {
	if c.Viewport.Width == 0 || c.Viewport.Height == 0 {
		return 0, 0
	}
	x = float32((sx-c.Viewport.X)/c.Viewport.Width*2 - 1)
	y = float32(1 - (sy-c.Viewport.Y)/c.Viewport.Height*2)
	return x, y
}

// OrbitTo animates yaw, pitch and distance over duration seconds.
func (c *Camera) OrbitTo(yaw, pitch, distance float32, duration float32, easeFn ease.TweenFunc) {
	c.orbit = &orbitAnim{
		yaw:   gween.New(c.Yaw, yaw, duration, easeFn),
		pitch: gween.New(c.Pitch, pitch, duration, easeFn),
		dist:  gween.New(c.Distance, distance, duration, easeFn),
	}
}

// FocusOn animates the orbit target to p over duration seconds.
func (c *Camera) FocusOn(p math32.Vector3, duration float32, easeFn ease.TweenFunc) {
	c.focus = &focusAnim{
		x: gween.New(c.Target.X, p.X, duration, easeFn),
		y: gween.New(c.Target.Y, p.Y, duration, easeFn),
		z: gween.New(c.Target.Z, p.Z, duration, easeFn),
	}
}

// Animating reports whether an OrbitTo or FocusOn is in progress.
func (c *Camera) Animating() bool {
	return c.orbit != nil || c.focus != nil
}

// update advances camera tweens. Called from Scene.Update().
func (c *Camera) update(dt float32) {
	if a := c.orbit; a != nil {
		stepTween(a.yaw, &a.done[0], &c.Yaw, dt)
		stepTween(a.pitch, &a.done[1], &c.Pitch, dt)
		stepTween(a.dist, &a.done[2], &c.Distance, dt)
		if a.done[0] && a.done[1] && a.done[2] {
			c.orbit = nil
		}
	}
	if a := c.focus; a != nil {
		stepTween(a.x, &a.done[0], &c.Target.X, dt)
		stepTween(a.y, &a.done[1], &c.Target.Y, dt)
		stepTween(a.z, &a.done[2], &c.Target.Z, dt)
		if a.done[0] && a.done[1] && a.done[2] {
			c.focus = nil
		}
	}
	c.Pitch = math32.Clamp(c.Pitch, -maxPitch, maxPitch)
	if c.Distance < cameraNear {
		c.Distance = cameraNear
	}
}

func stepTween(tw *gween.Tween, done *bool, dst *float32, dt float32) {
	if *done {
		return
	}
	*dst, *done = tw.Update(dt)
}
