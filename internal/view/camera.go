package view

import (
	"math"

	"flightmap/internal/geo"
	"flightmap/pkg/types"
)

const (
	MIN_SCALE = 0.5
	MAX_SCALE = 16.0
	ZOOM_STEP = 1.1
)

// Camera maps world pixels to screen pixels with a pan offset and a zoom.
type Camera struct {
	X, Y                 float64
	PanStartX, PanStartY int
	Scale                float64
}

func NewCamera() *Camera {
	return &Camera{Scale: 1.0}
}

func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	wx = sx/c.Scale + c.X
	wy = sy/c.Scale + c.Y
	return
}

func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	sx = (wx - c.X) * c.Scale
	sy = (wy - c.Y) * c.Scale
	return
}

// ZoomAt zooms in (wheel > 0) or out around the screen point (sx, sy),
// keeping the world point under it fixed.
func (c *Camera) ZoomAt(sx, sy, wheel float64) {
	if wheel == 0 {
		return
	}
	worldX, worldY := c.ScreenToWorld(sx, sy)

	scale := c.Scale
	if wheel > 0 {
		scale *= ZOOM_STEP
	} else {
		scale /= ZOOM_STEP
	}
	c.Scale = math.Max(MIN_SCALE, math.Min(MAX_SCALE, scale))

	newWorldX, newWorldY := c.ScreenToWorld(sx, sy)
	c.X -= newWorldX - worldX
	c.Y -= newWorldY - worldY
}

func (c *Camera) StartPan(x, y int) {
	c.PanStartX, c.PanStartY = x, y
}

func (c *Camera) PanTo(x, y int) {
	c.X -= float64(x-c.PanStartX) / c.Scale
	c.Y -= float64(y-c.PanStartY) / c.Scale
	c.PanStartX, c.PanStartY = x, y
}

// Projector places geographic points on a square Web Mercator world of
// Size pixels and then through the camera.
type Projector struct {
	Size   float64
	Camera *Camera
}

func NewProjector(size float64, cam *Camera) *Projector {
	return &Projector{Size: size, Camera: cam}
}

func (p *Projector) World(pt types.GeoPoint) types.Vec2 {
	u := geo.MercatorUnit(pt)
	return types.NewVec2(u.X*p.Size, u.Y*p.Size)
}

func (p *Projector) Screen(pt types.GeoPoint) types.Vec2 {
	w := p.World(pt)
	x, y := p.Camera.WorldToScreen(w.X, w.Y)
	return types.NewVec2(x, y)
}

// Polyline projects a path to screen space, splitting it where it crosses
// the antimeridian so no segment spans the whole map.
func (p *Projector) Polyline(path geo.Path) [][]types.Vec2 {
	var (
		lines [][]types.Vec2
		cur   []types.Vec2
	)
	for i := 0; i < path.Len(); i++ {
		pt := path.At(i)
		if i > 0 && math.Abs(pt.Lon-path.At(i-1).Lon) > 180 {
			if len(cur) > 1 {
				lines = append(lines, cur)
			}
			cur = nil
		}
		cur = append(cur, p.Screen(pt))
	}
	if len(cur) > 1 {
		lines = append(lines, cur)
	}
	return lines
}

// Center pans the camera so pt is at the middle of a width x height screen.
func (p *Projector) Center(pt types.GeoPoint, width, height int) {
	w := p.World(pt)
	p.Camera.X = w.X - float64(width)/2/p.Camera.Scale
	p.Camera.Y = w.Y - float64(height)/2/p.Camera.Scale
}
