// Package camera provides the orbit camera used by the volume viewer.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Orbit circles a target point. Yaw, Pitch and Roll are radians applied in
// Y-X-Z order; Distance is the eye-to-target length.
type Orbit struct {
	Target   mgl32.Vec3
	Distance float32
	Yaw      float32
	Pitch    float32
	Roll     float32

	MinDistance float32
	MaxDistance float32
	FOV         float32 // vertical field of view, radians

	home pose
}

// pose is the part of an Orbit restored by Reset.
type pose struct {
	Target   mgl32.Vec3
	Distance float32
	Yaw      float32
	Pitch    float32
	Roll     float32
}

// NewOrbit returns a camera looking at the origin from slightly above.
func NewOrbit() *Orbit {
	c := &Orbit{
		Distance:    10,
		Yaw:         0.6,
		Pitch:       -0.5,
		MinDistance: 0.5,
		MaxDistance: 10000,
		FOV:         mgl32.DegToRad(45),
	}
	c.SetHome()
	return c
}

// SetHome records the current pose as the one Reset returns to.
func (c *Orbit) SetHome() {
	c.home = pose{Target: c.Target, Distance: c.Distance, Yaw: c.Yaw, Pitch: c.Pitch, Roll: c.Roll}
}

// Reset restores the home pose.
func (c *Orbit) Reset() {
	c.Target = c.home.Target
	c.Distance = c.home.Distance
	c.Yaw = c.home.Yaw
	c.Pitch = c.home.Pitch
	c.Roll = c.home.Roll
}

func (c *Orbit) rotation() mgl32.Quat {
	return mgl32.AnglesToQuat(c.Yaw, c.Pitch, c.Roll, mgl32.YXZ)
}

// Eye returns the camera position.
func (c *Orbit) Eye() mgl32.Vec3 {
	return c.Target.Add(c.rotation().Rotate(mgl32.Vec3{0, 0, c.Distance}))
}

// Up returns the camera up vector.
func (c *Orbit) Up() mgl32.Vec3 {
	return c.rotation().Rotate(mgl32.Vec3{0, 1, 0})
}

// View returns the view matrix.
func (c *Orbit) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), c.Target, c.Up())
}

// Projection returns a perspective matrix for the given aspect ratio with
// clip planes scaled to the orbit distance.
func (c *Orbit) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	near := c.Distance / 1000
	far := c.Distance * 10
	return mgl32.Perspective(c.FOV, aspect, near, far)
}

// Rotate adds to yaw, pitch and roll. Angles wrap to [-pi, pi).
func (c *Orbit) Rotate(yaw, pitch, roll float32) {
	c.Yaw = wrap(c.Yaw + yaw)
	c.Pitch = wrap(c.Pitch + pitch)
	c.Roll = wrap(c.Roll + roll)
}

// Zoom scales the distance by factor, clamped to the distance limits.
func (c *Orbit) Zoom(factor float32) {
	c.Distance = mgl32.Clamp(c.Distance*factor, c.MinDistance, c.MaxDistance)
}

// FitToBounds centers the camera on the box and backs off far enough to see
// it whole. The result becomes the home pose.
func (c *Orbit) FitToBounds(min, max mgl32.Vec3) {
	c.Target = min.Add(max).Mul(0.5)
	radius := max.Sub(min).Len() / 2
	if radius <= 0 {
		radius = 1
	}
	c.Distance = radius / float32(math.Sin(float64(c.FOV)/2))
	c.MaxDistance = max32(c.MaxDistance, c.Distance*20)
	c.SetHome()
}

func wrap(a float32) float32 {
	const twoPi = 2 * math.Pi
	r := math.Mod(float64(a)+math.Pi, twoPi)
	if r < 0 {
		r += twoPi
	}
	return float32(r - math.Pi)
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
