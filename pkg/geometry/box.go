package geometry

import "fmt"

// boxFace describes one tessellated side of a box. at maps a grid corner
// (col, row) to a position; the column/row directions are chosen per face so
// that quads come out counter-clockwise seen from outside.
type boxFace struct {
	normal     [3]float64
	cols, rows int
	at         func(col, row int) [3]float64
}

// CreateBox builds an axis-aligned box centered at the origin. Each face is an
// independent grid with its own vertices and a constant face normal, so edges
// stay flat shaded. Every segment count must be at least 1.
func CreateBox(xSize, ySize, zSize float64, xSegments, ySegments, zSegments int) (*Mesh, error) {
	for _, s := range []struct {
		name string
		v    float64
	}{{"box x size", xSize}, {"box y size", ySize}, {"box z size", zSize}} {
		if err := checkSize(s.name, s.v); err != nil {
			return nil, err
		}
	}
	for _, s := range []struct {
		name string
		v    int
	}{{"box x segments", xSegments}, {"box y segments", ySegments}, {"box z segments", zSegments}} {
		if err := checkSegments(s.name, s.v, 1); err != nil {
			return nil, err
		}
	}

	xs, ys, zs := int64(xSegments), int64(ySegments), int64(zSegments)
	vertexCount := 2 * ((xs+1)*(ys+1) + (ys+1)*(zs+1) + (zs+1)*(xs+1))
	if err := checkVertexCount(vertexCount); err != nil {
		return nil, fmt.Errorf("box: %w", err)
	}
	indexCount := 12 * (xSegments*ySegments + ySegments*zSegments + zSegments*xSegments)

	xStep := xSize / float64(xSegments)
	yStep := ySize / float64(ySegments)
	zStep := zSize / float64(zSegments)
	hx, hy, hz := 0.5*xSize, 0.5*ySize, 0.5*zSize
	x := func(i int) float64 { return float64(i)*xStep - hx }
	y := func(i int) float64 { return float64(i)*yStep - hy }
	z := func(i int) float64 { return float64(i)*zStep - hz }

	faces := []boxFace{
		{normal: [3]float64{0, 0, 1}, cols: xSegments, rows: ySegments,
			at: func(c, r int) [3]float64 { return [3]float64{x(c), y(r), hz} }},
		{normal: [3]float64{1, 0, 0}, cols: zSegments, rows: ySegments,
			at: func(c, r int) [3]float64 { return [3]float64{hx, y(r), z(zSegments - c)} }},
		{normal: [3]float64{0, 0, -1}, cols: xSegments, rows: ySegments,
			at: func(c, r int) [3]float64 { return [3]float64{x(xSegments - c), y(r), -hz} }},
		{normal: [3]float64{-1, 0, 0}, cols: zSegments, rows: ySegments,
			at: func(c, r int) [3]float64 { return [3]float64{-hx, y(r), z(c)} }},
		{normal: [3]float64{0, 1, 0}, cols: xSegments, rows: zSegments,
			at: func(c, r int) [3]float64 { return [3]float64{x(c), hy, z(zSegments - r)} }},
		{normal: [3]float64{0, -1, 0}, cols: xSegments, rows: zSegments,
			at: func(c, r int) [3]float64 { return [3]float64{x(c), -hy, z(r)} }},
	}

	b := newBuilder(int(vertexCount), indexCount)
	for _, f := range faces {
		base := uint32(len(b.mesh.Positions) / 3)
		for r := 0; r <= f.rows; r++ {
			for c := 0; c <= f.cols; c++ {
				b.vertex(f.at(c, r), f.normal)
			}
		}
		stride := uint32(f.cols + 1)
		for r := uint32(0); r < uint32(f.rows); r++ {
			for c := uint32(0); c < uint32(f.cols); c++ {
				v00 := base + c + r*stride
				b.quad(v00, v00+1, v00+stride, v00+stride+1)
			}
		}
	}

	return &b.mesh, nil
}
