package software

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/envlight/internal/engine/envmap"
	"github.com/Faultbox/envlight/internal/engine/ibl"
	"github.com/Faultbox/envlight/internal/engine/skybox"
	"github.com/Faultbox/envlight/pkg/geometry"
)

// nearW rejects geometry at or behind the eye before the perspective divide.
const nearW = 1e-5

// clipVertex is a vertex in clip space with the attributes the shader needs.
type clipVertex struct {
	clip   mgl32.Vec4
	world  mgl32.Vec3
	normal mgl32.Vec3
}

func lerpVertex(a, b clipVertex, t float32) clipVertex {
	return clipVertex{
		clip:   a.clip.Add(b.clip.Sub(a.clip).Mul(t)),
		world:  a.world.Add(b.world.Sub(a.world).Mul(t)),
		normal: a.normal.Add(b.normal.Sub(a.normal).Mul(t)),
	}
}

// clipNear clips a polygon against w >= nearW.
func clipNear(in []clipVertex) []clipVertex {
	out := make([]clipVertex, 0, len(in)+1)
	for i, cur := range in {
		prev := in[(i+len(in)-1)%len(in)]
		curIn, prevIn := cur.clip[3] >= nearW, prev.clip[3] >= nearW
		if curIn != prevIn {
			t := (nearW - prev.clip[3]) / (cur.clip[3] - prev.clip[3])
			out = append(out, lerpVertex(prev, cur, t))
		}
		if curIn {
			out = append(out, cur)
		}
	}
	return out
}

// screenVertex is a vertex after the perspective divide.
type screenVertex struct {
	x, y, z float32
	invW    float32
	world   mgl32.Vec3 // divided by w
	normal  mgl32.Vec3 // divided by w
}

func (t *Target) toScreen(v clipVertex) screenVertex {
	invW := 1 / v.clip[3]
	return screenVertex{
		x:      (v.clip[0]*invW + 1) * 0.5 * float32(t.Width()),
		y:      (v.clip[1]*invW + 1) * 0.5 * float32(t.Height()),
		z:      v.clip[2] * invW,
		invW:   invW,
		world:  v.world.Mul(invW),
		normal: v.normal.Mul(invW),
	}
}

// drawMesh rasterizes every triangle of mesh with back-face culling and depth
// testing, shading each covered pixel with the lighting model.
func (t *Target) drawMesh(mesh *geometry.Mesh, u *ibl.Uniforms, env envmap.Environment) {
	verts := make([]clipVertex, mesh.VertexCount())
	for i := range verts {
		p := mesh.Position(i).Vec4(1)
		verts[i] = clipVertex{
			clip:   u.MVP.Mul4x1(p),
			world:  u.ModelMatrix.Mul4x1(p).Vec3(),
			normal: u.NormalMat.Mul4x1(mesh.Normal(i).Vec4(0)).Vec3(),
		}
	}

	poly := make([]clipVertex, 3)
	for tri := 0; tri < mesh.TriangleCount(); tri++ {
		idx := mesh.Triangle(tri)
		poly = poly[:3]
		poly[0], poly[1], poly[2] = verts[idx[0]], verts[idx[1]], verts[idx[2]]

		clipped := poly
		if poly[0].clip[3] < nearW || poly[1].clip[3] < nearW || poly[2].clip[3] < nearW {
			clipped = clipNear(poly)
		}
		if len(clipped) < 3 {
			continue
		}
		a := t.toScreen(clipped[0])
		for i := 1; i+1 < len(clipped); i++ {
			t.rasterize(a, t.toScreen(clipped[i]), t.toScreen(clipped[i+1]), u, env)
		}
	}
}

func (t *Target) rasterize(a, b, c screenVertex, u *ibl.Uniforms, env envmap.Environment) {
	area := edge(a, b, c.x, c.y)
	if area <= 0 {
		return
	}

	w, h := t.Width(), t.Height()
	minX := max(0, int(math.Floor(float64(min(a.x, b.x, c.x)))))
	maxX := min(w-1, int(math.Ceil(float64(max(a.x, b.x, c.x)))))
	minY := max(0, int(math.Floor(float64(min(a.y, b.y, c.y)))))
	maxY := min(h-1, int(math.Ceil(float64(max(a.y, b.y, c.y)))))

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			w0 := edge(b, c, px, py) / area
			w1 := edge(c, a, px, py) / area
			w2 := edge(a, b, px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*a.z + w1*b.z + w2*c.z
			if z < -1 || z > 1 {
				continue
			}
			di := y*w + x
			if z >= t.Depth[di] {
				continue
			}

			invW := w0*a.invW + w1*b.invW + w2*c.invW
			world := a.world.Mul(w0).Add(b.world.Mul(w1)).Add(c.world.Mul(w2)).Mul(1 / invW)
			normal := a.normal.Mul(w0).Add(b.normal.Mul(w1)).Add(c.normal.Mul(w2))

			t.Depth[di] = z
			t.set(x, y, ibl.Shade(env, ibl.Surface{Position: world, Normal: normal}, u))
		}
	}
}

// edge returns twice the signed area of (a, b, p); positive when p is to the
// left of a->b.
func edge(a, b screenVertex, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

// drawSkybox fills every pixel with the environment seen through pass.
// Depth is left untouched.
func (t *Target) drawSkybox(pass skybox.Pass, env envmap.Environment) {
	w, h := t.Width(), t.Height()
	// Ray is linear in clip-space xy, so walk it incrementally per row.
	dx := pass.Ray(mgl32.Vec2{2 / float32(w), 0}).Sub(pass.Ray(mgl32.Vec2{}))
	for y := 0; y < h; y++ {
		ny := 2*(float32(y)+0.5)/float32(h) - 1
		ray := pass.Ray(mgl32.Vec2{1/float32(w) - 1, ny})
		for x := 0; x < w; x++ {
			t.set(x, y, env.Sample(ray.Normalize(), 0))
			ray = ray.Add(dx)
		}
	}
}
