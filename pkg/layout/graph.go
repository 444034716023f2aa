package layout

import (
	"math"
	"math/rand/v2"
)

// Circular places ids evenly around a circle centered in the content box,
// starting at twelve o'clock. The radius is min(cx, cy) − padding, where cx
// and cy are the half-extents of the drawable area.
func Circular(ids []string, f Frame) map[string]Point {
	out := make(map[string]Point, len(ids))
	if len(ids) == 0 {
		return out
	}
	center := f.Center()
	if len(ids) == 1 {
		out[ids[0]] = center
		return out
	}
	halfW := f.Width / 2
	halfH := (f.Height - f.Top - f.Bottom) / 2
	radius := max(0, math.Min(halfW, halfH)-f.Padding)

	step := 2 * math.Pi / float64(len(ids))
	for i, id := range ids {
		angle := -math.Pi/2 + float64(i)*step
		out[id] = Point{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
	}
	return out
}

// Grid places ids row by row on a ceil(√n) × ceil(n/cols) lattice, each id at
// the center of its cell.
func Grid(ids []string, f Frame) map[string]Point {
	out := make(map[string]Point, len(ids))
	n := len(ids)
	if n == 0 {
		return out
	}
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := int(math.Ceil(float64(n) / float64(cols)))
	c := f.Content()
	cellW, cellH := c.W/float64(cols), c.H/float64(rows)
	for i, id := range ids {
		r, col := i/cols, i%cols
		out[id] = Point{
			X: c.X + cellW*(float64(col)+0.5),
			Y: c.Y + cellH*(float64(r)+0.5),
		}
	}
	return out
}

// ForceOptions configures [Force].
type ForceOptions struct {
	Iterations int    // default 100
	Seed       uint64 // initial placement seed
}

// Force runs a Fruchterman-Reingold style simulation. With k = √(area/n),
// every pair repels with k²/d and every edge attracts with d²/k. Each
// iteration's displacement is capped at a temperature that starts at k and
// cools linearly to zero, and positions are clamped to the content box.
//
// Initial positions come from a PRNG seeded with opts.Seed, so a given seed,
// input and frame always produce the same layout.
func Force(ids []string, edges [][2]string, f Frame, opts ForceOptions) map[string]Point {
	out := make(map[string]Point, len(ids))
	n := len(ids)
	if n == 0 {
		return out
	}
	c := f.Content()
	if n == 1 || c.W <= 0 || c.H <= 0 {
		for _, id := range ids {
			out[id] = f.Center()
		}
		return out
	}
	iters := opts.Iterations
	if iters <= 0 {
		iters = 100
	}

	index := make(map[string]int, n)
	for i, id := range ids {
		index[id] = i
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	pos := make([]Point, n)
	for i := range pos {
		pos[i] = Point{X: c.X + rng.Float64()*c.W, Y: c.Y + rng.Float64()*c.H}
	}

	k := math.Sqrt(c.W * c.H / float64(n))
	disp := make([]Point, n)
	for it := 0; it < iters; it++ {
		clear(disp)

		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx, dy := pos[i].X-pos[j].X, pos[i].Y-pos[j].Y
				d := math.Hypot(dx, dy)
				if d < 0.01 {
					// Coincident nodes: push apart along a fixed axis.
					dx, dy, d = 0.01*float64(j-i), 0.01, 0.01
				}
				force := k * k / d
				fx, fy := dx/d*force, dy/d*force
				disp[i].X += fx
				disp[i].Y += fy
				disp[j].X -= fx
				disp[j].Y -= fy
			}
		}

		for _, e := range edges {
			a, okA := index[e[0]]
			b, okB := index[e[1]]
			if !okA || !okB || a == b {
				continue
			}
			dx, dy := pos[a].X-pos[b].X, pos[a].Y-pos[b].Y
			d := math.Hypot(dx, dy)
			if d < 0.01 {
				continue
			}
			force := d * d / k
			fx, fy := dx/d*force, dy/d*force
			disp[a].X -= fx
			disp[a].Y -= fy
			disp[b].X += fx
			disp[b].Y += fy
		}

		temp := k * (1 - float64(it)/float64(iters))
		for i := range pos {
			d := math.Hypot(disp[i].X, disp[i].Y)
			if d > 0 {
				step := math.Min(d, temp)
				pos[i].X += disp[i].X / d * step
				pos[i].Y += disp[i].Y / d * step
			}
			pos[i].X = clamp(pos[i].X, c.X, c.X+c.W)
			pos[i].Y = clamp(pos[i].Y, c.Y, c.Y+c.H)
		}
	}

	for i, id := range ids {
		out[id] = pos[i]
	}
	return out
}

// NodeRadius picks a node radius that keeps n nodes legible in f.
func NodeRadius(n int, f Frame) float64 {
	c := f.Content()
	if n <= 0 {
		return 20
	}
	r := math.Sqrt(c.W*c.H/float64(n)) / 5
	return clamp(r, 10, 28)
}
