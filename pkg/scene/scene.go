// Package scene composes a frame: starfield background, noise-deformed
// body, analytic shading, then post-process passes. A Scene is stateless
// with respect to time; every frame is recomputed from the clock value the
// caller threads in.
package scene

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/lumen3d/lumen/pkg/deform"
	"github.com/lumen3d/lumen/pkg/math3d"
	"github.com/lumen3d/lumen/pkg/mesh"
	"github.com/lumen3d/lumen/pkg/render"
	"github.com/lumen3d/lumen/pkg/shading"
)

// Scene owns the rest geometry, camera, and configuration needed to render
// frames.
type Scene struct {
	Mesh   *mesh.Mesh
	Camera *render.Camera

	cfg    Config
	nebula *shading.Nebula

	rast   *render.Rasterizer
	lastFB *render.Framebuffer
}

// New builds a scene: loads the model (or generates the sphere), normalizes
// it to the unit cube, and places the camera.
func New(cfg Config) (*Scene, error) {
	var m *mesh.Mesh
	if cfg.ModelPath != "" {
		loaded, err := mesh.LoadGLB(cfg.ModelPath)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		m = loaded
	} else {
		m = mesh.NewSphere(1, cfg.SphereLatSegments, cfg.SphereLonSegments)
	}
	m.NormalizeToUnit()

	cam := render.NewCamera()
	cam.SetFOV(cfg.CameraFOV)
	cam.SetClipPlanes(0.1, 100)
	cam.SetPosition(math3d.V3(0, 0, cfg.CameraDistance))
	cam.LookAt(math3d.Zero3())

	return &Scene{
		Mesh:   m,
		Camera: cam,
		cfg:    cfg,
		nebula: shading.NewNebula(cfg.Nebula),
	}, nil
}

// Config returns the scene configuration.
func (s *Scene) Config() Config { return s.cfg }

// RenderFrame renders the complete frame at time t into fb.
func (s *Scene) RenderFrame(fb *render.Framebuffer, t float64) {
	if s.rast == nil || s.lastFB != fb {
		s.rast = render.NewRasterizer(s.Camera, fb)
		s.lastFB = fb
		s.Camera.SetAspectRatio(float64(fb.Width) / float64(fb.Height))
	}

	s.drawBackground(fb, t)

	displaced, normals := deform.Apply(s.Mesh, t, s.cfg.Deform)
	tris := s.buildTriangles(displaced, normals)

	viewPos := s.Camera.Position
	shade := func(f render.Fragment) math3d.Vec3 {
		return shading.Shade(shading.Context{
			Normal:       f.Normal,
			World:        f.World,
			Local:        f.Local,
			ViewPos:      viewPos,
			Time:         t,
			Displacement: f.Displacement,
		}, s.cfg.Shading)
	}

	s.rast.ClearDepth()
	s.rast.DrawTriangles(tris, shade)

	render.ApplyPost(fb, s.cfg.Post)
}

// drawBackground fills the framebuffer with the nebula wash and starfield.
// Rows are fanned out; each row is written by exactly one goroutine.
func (s *Scene) drawBackground(fb *render.Framebuffer, t float64) {
	workers := runtime.GOMAXPROCS(0)
	if workers > fb.Height {
		workers = 1
	}
	band := (fb.Height + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		y0 := w * band
		y1 := y0 + band
		if y1 > fb.Height {
			y1 = fb.Height
		}
		if y0 >= y1 {
			break
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			for y := y0; y < y1; y++ {
				v := float64(y) / float64(fb.Height)
				for x := 0; x < fb.Width; x++ {
					u := float64(x) / float64(fb.Width)

					c := s.nebula.Sample(u, v, t)
					if star := shading.StarField(float64(x), float64(y), t, s.cfg.Stars); star > 0 {
						c = c.Add(s.cfg.Stars.Tint.Scale(star))
					}
					fb.SetLinear(x, y, c.Clamp01())
				}
			}
		}(y0, y1)
	}
	wg.Wait()
}

// buildTriangles assembles rasterizer input from the deformed vertices.
// Local positions stay at rest so the zone coloring does not swim with the
// motion.
func (s *Scene) buildTriangles(displaced []deform.Displaced, normals []math3d.Vec3) []render.Triangle {
	tris := make([]render.Triangle, 0, len(s.Mesh.Faces))
	for _, face := range s.Mesh.Faces {
		var tri render.Triangle
		for i, idx := range face {
			tri.V[i] = render.Vertex{
				Position:     displaced[idx].Position,
				Normal:       normals[idx],
				Local:        s.Mesh.Vertices[idx].Position,
				Displacement: displaced[idx].Displacement,
			}
		}
		tris = append(tris, tri)
	}
	return tris
}
