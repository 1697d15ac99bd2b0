package render

import (
	"math"
	"runtime"
	"sync"

	"github.com/lumen3d/lumen/pkg/math3d"
)

// Vertex carries the attributes the fragment shader needs, already in
// world space. Local is the pre-transform rest position that drives the
// zone coloring.
type Vertex struct {
	Position     math3d.Vec3
	Normal       math3d.Vec3
	Local        math3d.Vec3
	Displacement float64
}

// Triangle is a triangle to be rasterized.
type Triangle struct {
	V [3]Vertex
}

// Fragment is the interpolated surface sample handed to the shader.
type Fragment struct {
	Normal       math3d.Vec3
	World        math3d.Vec3
	Local        math3d.Vec3
	Displacement float64
}

// FragmentShader converts one fragment into a final tone-mapped color in
// [0,1] per channel. Must be pure: fragments are shaded concurrently.
type FragmentShader func(Fragment) math3d.Vec3

// Rasterizer handles software triangle rasterization with a z-buffer.
type Rasterizer struct {
	camera *Camera
	fb     *Framebuffer
	depth  []float64
	width  int
	height int
}

// NewRasterizer creates a rasterizer bound to a camera and framebuffer.
func NewRasterizer(camera *Camera, fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{camera: camera, fb: fb}
	r.Resize()
	return r
}

// Resize resizes the rasterizer's depth buffer to match the framebuffer.
func (r *Rasterizer) Resize() {
	r.width = r.fb.Width
	r.height = r.fb.Height
	r.depth = make([]float64, r.width*r.height)
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int { return r.width }

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int { return r.height }

// ClearDepth clears the Z-buffer (call before each frame).
func (r *Rasterizer) ClearDepth() {
	for i := range r.depth {
		r.depth[i] = math.Inf(1)
	}
}

func (r *Rasterizer) getDepth(x, y int) float64 {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return math.Inf(-1)
	}
	return r.depth[y*r.width+x]
}

func (r *Rasterizer) setDepth(x, y int, z float64) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	r.depth[y*r.width+x] = z
}

// screenVertex holds a vertex transformed to screen space.
type screenVertex struct {
	X, Y float64 // Screen coordinates
	Z    float64 // Depth (for Z-buffer)
	W    float64 // W coordinate (for perspective-correct interpolation)

	Normal       math3d.Vec3
	World        math3d.Vec3
	Local        math3d.Vec3
	Displacement float64
}

// screenTriangle is a triangle that survived projection and culling.
type screenTriangle struct {
	sv   [3]screenVertex
	invW [3]float64

	// Screen-space bounding box, clipped to the framebuffer.
	minX, maxX, minY, maxY int
}

// project transforms one triangle to screen space and culls it. Returns
// false when the triangle cannot contribute any fragment.
func (r *Rasterizer) project(tri Triangle) (screenTriangle, bool) {
	var st screenTriangle
	allBehind := true

	viewProj := r.camera.ViewProjectionMatrix()

	for i := range 3 {
		clipPos := viewProj.MulVec4(math3d.V4FromV3(tri.V[i].Position, 1))

		if clipPos.W > 0 {
			allBehind = false
		}

		// Perspective divide
		if clipPos.W != 0 {
			st.sv[i].X = clipPos.X / clipPos.W
			st.sv[i].Y = clipPos.Y / clipPos.W
			st.sv[i].Z = clipPos.Z / clipPos.W
		}
		st.sv[i].W = clipPos.W

		// NDC to screen coordinates
		st.sv[i].X = (st.sv[i].X + 1) * 0.5 * float64(r.width)
		st.sv[i].Y = (1 - st.sv[i].Y) * 0.5 * float64(r.height) // Y flipped

		st.sv[i].Normal = tri.V[i].Normal
		st.sv[i].World = tri.V[i].Position
		st.sv[i].Local = tri.V[i].Local
		st.sv[i].Displacement = tri.V[i].Displacement
	}

	if allBehind {
		return st, false
	}

	// Backface culling using screen-space winding. Front faces are CCW
	// viewed from the camera, which after the Y flip makes their signed
	// area negative in pixel coordinates.
	e1x, e1y := st.sv[1].X-st.sv[0].X, st.sv[1].Y-st.sv[0].Y
	e2x, e2y := st.sv[2].X-st.sv[0].X, st.sv[2].Y-st.sv[0].Y
	if e1x*e2y-e1y*e2x > 0 {
		return st, false
	}

	st.minX = int(math.Max(0, math.Floor(min3(st.sv[0].X, st.sv[1].X, st.sv[2].X))))
	st.maxX = int(math.Min(float64(r.width-1), math.Ceil(max3(st.sv[0].X, st.sv[1].X, st.sv[2].X))))
	st.minY = int(math.Max(0, math.Floor(min3(st.sv[0].Y, st.sv[1].Y, st.sv[2].Y))))
	st.maxY = int(math.Min(float64(r.height-1), math.Ceil(max3(st.sv[0].Y, st.sv[1].Y, st.sv[2].Y))))
	if st.minX > st.maxX || st.minY > st.maxY {
		return st, false
	}

	for i := range 3 {
		if st.sv[i].W != 0 {
			st.invW[i] = 1.0 / st.sv[i].W
		}
	}

	return st, true
}

// rasterizeRows fills the triangle's fragments within rows [y0, y1).
// Callers partition the screen into disjoint row bands, so the depth and
// color writes for a row belong to exactly one goroutine.
func (r *Rasterizer) rasterizeRows(st screenTriangle, y0, y1 int, shade FragmentShader) {
	minY := st.minY
	if minY < y0 {
		minY = y0
	}
	maxY := st.maxY
	if maxY >= y1 {
		maxY = y1 - 1
	}

	for y := minY; y <= maxY; y++ {
		for x := st.minX; x <= st.maxX; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5

			bc := barycentric(
				st.sv[0].X, st.sv[0].Y,
				st.sv[1].X, st.sv[1].Y,
				st.sv[2].X, st.sv[2].Y,
				px, py,
			)

			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}

			z := bc.X*st.sv[0].Z + bc.Y*st.sv[1].Z + bc.Z*st.sv[2].Z

			if z >= r.getDepth(x, y) {
				continue
			}

			// Perspective-correct attribute interpolation via 1/w
			w0, w1, w2 := bc.X*st.invW[0], bc.Y*st.invW[1], bc.Z*st.invW[2]
			oneOverW := w0 + w1 + w2
			if oneOverW == 0 {
				continue
			}

			frag := Fragment{
				Normal: st.sv[0].Normal.Scale(w0).
					Add(st.sv[1].Normal.Scale(w1)).
					Add(st.sv[2].Normal.Scale(w2)).
					Scale(1 / oneOverW).
					NormalizeOr(st.sv[0].Normal),
				World: st.sv[0].World.Scale(w0).
					Add(st.sv[1].World.Scale(w1)).
					Add(st.sv[2].World.Scale(w2)).
					Scale(1 / oneOverW),
				Local: st.sv[0].Local.Scale(w0).
					Add(st.sv[1].Local.Scale(w1)).
					Add(st.sv[2].Local.Scale(w2)).
					Scale(1 / oneOverW),
				Displacement: (w0*st.sv[0].Displacement +
					w1*st.sv[1].Displacement +
					w2*st.sv[2].Displacement) / oneOverW,
			}

			r.setDepth(x, y, z)
			r.fb.SetLinear(x, y, shade(frag))
		}
	}
}

// DrawTriangle rasterizes a single triangle with the given shader.
func (r *Rasterizer) DrawTriangle(tri Triangle, shade FragmentShader) {
	st, ok := r.project(tri)
	if !ok {
		return
	}
	r.rasterizeRows(st, 0, r.height, shade)
}

// DrawTriangles projects every triangle once, then fans the fill out over
// disjoint row bands. Each pixel is owned by exactly one band, so the
// z-buffer needs no locking.
func (r *Rasterizer) DrawTriangles(tris []Triangle, shade FragmentShader) {
	projected := make([]screenTriangle, 0, len(tris))
	for _, tri := range tris {
		if st, ok := r.project(tri); ok {
			projected = append(projected, st)
		}
	}
	if len(projected) == 0 {
		return
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > r.height {
		workers = 1
	}
	band := (r.height + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		y0 := w * band
		y1 := y0 + band
		if y1 > r.height {
			y1 = r.height
		}
		if y0 >= y1 {
			break
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			for _, st := range projected {
				r.rasterizeRows(st, y0, y1, shade)
			}
		}(y0, y1)
	}
	wg.Wait()
}

func barycentric(x0, y0, x1, y1, x2, y2, px, py float64) math3d.Vec3 {
	v0x, v0y := x2-x0, y2-y0
	v1x, v1y := x1-x0, y1-y0
	v2x, v2y := px-x0, py-y0

	dot00 := v0x*v0x + v0y*v0y
	dot01 := v0x*v1x + v0y*v1y
	dot02 := v0x*v2x + v0y*v2y
	dot11 := v1x*v1x + v1y*v1y
	dot12 := v1x*v2x + v1y*v2y

	invDenom := 1.0 / (dot00*dot11 - dot01*dot01)
	u := (dot11*dot02 - dot01*dot12) * invDenom
	v := (dot00*dot12 - dot01*dot02) * invDenom

	return math3d.V3(1-u-v, v, u)
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
