package swarm

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewRanges(t *testing.T) {
	for _, count := range []int{0, 1, 7, 2000} {
		s, err := New(count, rand.New(rand.NewSource(1)))
		if err != nil {
			t.Fatalf("New(%d): unexpected error %v", count, err)
		}
		if s.Len() != count {
			t.Errorf("New(%d): got %d particles", count, s.Len())
		}

		for i, p := range s.Particles() {
			if p.Factor < 20 || p.Factor >= 120 {
				t.Errorf("particle %d: factor %f out of [20,120)", i, p.Factor)
			}
			if p.Speed < 0.01 || p.Speed >= 0.015 {
				t.Errorf("particle %d: speed %f out of [0.01,0.015)", i, p.Speed)
			}
			for _, f := range []float64{p.XFactor, p.YFactor, p.ZFactor} {
				if f < -50 || f >= 50 {
					t.Errorf("particle %d: axis factor %f out of [-50,50)", i, f)
				}
			}
			if p.T < 0 || p.T >= 100 {
				t.Errorf("particle %d: phase %f out of [0,100)", i, p.T)
			}
			if p.MX != 0 || p.MY != 0 {
				t.Errorf("particle %d: drift should start at zero, got (%f, %f)", i, p.MX, p.MY)
			}
		}
	}
}

func TestNewNegativeCount(t *testing.T) {
	s, err := New(-1, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrInvalidCount) {
		t.Fatalf("expected ErrInvalidCount, got %v", err)
	}
	if s != nil {
		t.Error("expected nil swarm on error")
	}
}

func TestAdvanceEmpty(t *testing.T) {
	s, err := New(0, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	out := s.Advance(Input{MouseX: 0.5, MouseY: 0.5, ViewportW: 100, ViewportH: 60}, nil)
	if len(out) != 0 {
		t.Errorf("expected no transforms, got %d", len(out))
	}
}

func TestAdvanceDeterministic(t *testing.T) {
	a, err := New(500, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}
	b := a.Clone()

	inputs := []Input{
		{MouseX: 0, MouseY: 0, ViewportW: 90, ViewportH: 50},
		{MouseX: 0.3, MouseY: -0.7, ViewportW: 90, ViewportH: 50},
		{MouseX: -1, MouseY: 1, ViewportW: 120, ViewportH: 70},
	}

	var outA, outB []Transform
	for frame, in := range inputs {
		outA = a.Advance(in, outA)
		outB = b.Advance(in, outB)
		for i := range outA {
			if outA[i] != outB[i] {
				t.Fatalf("frame %d particle %d: transforms diverged: %+v vs %+v", frame, i, outA[i], outB[i])
			}
		}
	}
}

func TestAdvanceSameSeedSameSwarm(t *testing.T) {
	a, _ := New(100, rand.New(rand.NewSource(7)))
	b, _ := New(100, rand.New(rand.NewSource(7)))
	for i := range a.Particles() {
		if a.Particles()[i] != b.Particles()[i] {
			t.Fatalf("particle %d differs for identical seeds", i)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a, _ := New(10, rand.New(rand.NewSource(3)))
	b := a.Clone()
	a.Advance(Input{ViewportW: 10, ViewportH: 10}, nil)

	if a.Particles()[0].T == b.Particles()[0].T {
		t.Error("advancing the source should not move the clone")
	}
}

func TestAdvancePhaseStep(t *testing.T) {
	s, _ := New(50, rand.New(rand.NewSource(9)))
	before := make([]float64, s.Len())
	for i, p := range s.Particles() {
		before[i] = p.T
	}

	s.Advance(Input{ViewportW: 100, ViewportH: 60}, nil)

	for i, p := range s.Particles() {
		want := before[i] + p.Speed/2
		if p.T != want {
			t.Errorf("particle %d: phase %f, want %f", i, p.T, want)
		}
	}
}

func TestAdvanceFormula(t *testing.T) {
	s := &Swarm{particles: []Particle{{
		T: 1.25, Factor: 40, Speed: 0.012,
		XFactor: 3, YFactor: -4, ZFactor: 5,
		MX: 2, MY: -3,
	}}}
	in := Input{MouseX: 0.5, MouseY: -0.25, ViewportW: 80, ViewportH: 40}

	out := s.Advance(in, nil)

	tt := 1.25 + 0.012/2
	a := math.Cos(tt) + math.Sin(tt)/10
	b := math.Sin(tt) + math.Cos(tt*2)/10
	sc := math.Cos(tt)
	mx := 2 + 0.5*80*2*0.01
	my := -3 + -0.25*40*-3*0.01

	wantX := (mx/10)*a + 3 + math.Cos((tt/10)*40) + math.Sin(tt)*40/10
	wantY := (my/10)*b - 4 + math.Sin((tt/10)*40) + math.Cos(tt*2)*40/10
	wantZ := (my/10)*b + 5 + math.Cos((tt/10)*40) + math.Sin(tt*3)*40/10

	got := out[0]
	checks := []struct {
		name      string
		got, want float64
	}{
		{"x", got.Position.X, wantX},
		{"y", got.Position.Y, wantY},
		{"z", got.Position.Z, wantZ},
		{"scale", got.Scale.X, sc},
		{"rotation", got.Rotation.X, sc * 5},
		{"mx", s.particles[0].MX, mx},
		{"my", s.particles[0].MY, my},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-12 {
			t.Errorf("%s: got %.15f, want %.15f", c.name, c.got, c.want)
		}
	}
}

func TestZFollowsYDrift(t *testing.T) {
	// Two particles that differ only in MX must agree on z; differing MY must not.
	base := Particle{T: 2, Factor: 30, Speed: 0.01, MX: 1, MY: 1}
	onlyX := base
	onlyX.MX = 50
	onlyY := base
	onlyY.MY = 50

	s := &Swarm{particles: []Particle{base, onlyX, onlyY}}
	out := s.Advance(Input{MouseX: 0.2, MouseY: 0.2, ViewportW: 10, ViewportH: 10}, nil)

	if out[0].Position.Z != out[1].Position.Z {
		t.Errorf("z should ignore the x drift: %f vs %f", out[0].Position.Z, out[1].Position.Z)
	}
	if out[0].Position.Z == out[2].Position.Z {
		t.Error("z should follow the y drift")
	}
}

func TestDriftIsPathDependent(t *testing.T) {
	const steps = 10
	in := Input{MouseX: 0.8, MouseY: -0.6, ViewportW: 100, ViewportH: 60}

	start := Particle{T: 0, Factor: 50, Speed: 0.01, MX: 1, MY: 1}
	stepped := &Swarm{particles: []Particle{start}}
	for i := 0; i < steps; i++ {
		stepped.Advance(in, nil)
	}

	// Shortcut: one linear jump covering all steps.
	kx := in.MouseX * in.ViewportW * 0.01
	ky := in.MouseY * in.ViewportH * 0.01
	naiveMX := start.MX * (1 + steps*kx)
	naiveMY := start.MY * (1 + steps*ky)

	got := stepped.particles[0]
	if math.Abs(got.MX-naiveMX) < 1e-6 {
		t.Errorf("stepped MX %f should differ from the big-step shortcut %f", got.MX, naiveMX)
	}
	if math.Abs(got.MY-naiveMY) < 1e-6 {
		t.Errorf("stepped MY %f should differ from the big-step shortcut %f", got.MY, naiveMY)
	}

	// The recurrence compounds: mx_n = mx_0 * (1+k)^n.
	wantMX := start.MX * math.Pow(1+kx, steps)
	if math.Abs(got.MX-wantMX) > 1e-9*math.Abs(wantMX) {
		t.Errorf("stepped MX %f, want compounded %f", got.MX, wantMX)
	}
}

func TestDriftStaysZeroFromRest(t *testing.T) {
	s, _ := New(20, rand.New(rand.NewSource(5)))
	in := Input{MouseX: 1, MouseY: 1, ViewportW: 100, ViewportH: 60}
	for i := 0; i < 30; i++ {
		s.Advance(in, nil)
	}
	for i, p := range s.Particles() {
		if p.MX != 0 || p.MY != 0 {
			t.Errorf("particle %d: drift left zero without a seed value: (%f, %f)", i, p.MX, p.MY)
		}
	}
}

func TestScaleRotationInvariant(t *testing.T) {
	s, _ := New(300, rand.New(rand.NewSource(11)))
	var out []Transform
	for frame := 0; frame < 20; frame++ {
		in := Input{
			MouseX:    math.Sin(float64(frame)),
			MouseY:    math.Cos(float64(frame)),
			ViewportW: 100,
			ViewportH: 60,
		}
		out = s.Advance(in, out)
		for i, tr := range out {
			if tr.Scale.X != tr.Scale.Y || tr.Scale.Y != tr.Scale.Z {
				t.Fatalf("frame %d particle %d: non-uniform scale %+v", frame, i, tr.Scale)
			}
			want := 5 * tr.Scale.X
			if tr.Rotation.X != want || tr.Rotation.Y != want || tr.Rotation.Z != want {
				t.Fatalf("frame %d particle %d: rotation %+v, want all %f", frame, i, tr.Rotation, want)
			}
		}
	}
}

func TestAdvanceReusesBuffer(t *testing.T) {
	s, _ := New(64, rand.New(rand.NewSource(2)))
	buf := make([]Transform, 0, 64)
	out := s.Advance(Input{ViewportW: 1, ViewportH: 1}, buf)
	if len(out) != 64 {
		t.Fatalf("expected 64 transforms, got %d", len(out))
	}
	if &out[0] != &buf[:1][0] {
		t.Error("expected Advance to write into the provided buffer")
	}

	allocs := testing.AllocsPerRun(10, func() {
		out = s.Advance(Input{ViewportW: 1, ViewportH: 1}, out)
	})
	if allocs != 0 {
		t.Errorf("expected no allocations with a reused buffer, got %f", allocs)
	}
}

func TestLightPosition(t *testing.T) {
	tests := []struct {
		in      Input
		x, y, z float64
	}{
		{Input{MouseX: 1, MouseY: 1, ViewportW: 100, ViewportH: 60}, 50, 30, 0},
		{Input{MouseX: -1, MouseY: 0, ViewportW: 100, ViewportH: 60}, -50, 0, 0},
		{Input{MouseX: 0, MouseY: 0, ViewportW: 10, ViewportH: 10}, 0, 0, 0},
	}
	for _, tc := range tests {
		got := LightPosition(tc.in)
		if got.X != tc.x || got.Y != tc.y || got.Z != tc.z {
			t.Errorf("LightPosition(%+v) = %+v, want (%v, %v, %v)", tc.in, got, tc.x, tc.y, tc.z)
		}
	}
}

func TestReplaceKeepsSwarmOnInvalidCount(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	cur, _ := New(10, rng)

	got, err := Replace(cur, -3, rng)
	if !errors.Is(err, ErrInvalidCount) {
		t.Fatalf("expected ErrInvalidCount, got %v", err)
	}
	if got != cur {
		t.Error("expected the current swarm back on an invalid count")
	}

	got, err = Replace(cur, 25, rng)
	if err != nil {
		t.Fatalf("Replace(25): %v", err)
	}
	if got == cur || got.Len() != 25 {
		t.Errorf("expected a fresh swarm of 25, got %d particles (same=%v)", got.Len(), got == cur)
	}

	// Refilling into a truncated buffer yields one transform per new particle
	buf := make([]Transform, 10)
	out := got.Advance(Input{ViewportW: 1, ViewportH: 1}, buf[:0])
	if len(out) != 25 {
		t.Errorf("expected 25 transforms after refill, got %d", len(out))
	}
}

// applyMatrix transforms p by the column-major matrix m.
func applyMatrix(m [16]float64, p r3.Vec) r3.Vec {
	return r3.Vec{
		X: m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12],
		Y: m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13],
		Z: m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14],
	}
}

func TestMatrixEulerOrder(t *testing.T) {
	tr := Transform{
		Position: r3.Vec{X: 3, Y: -2, Z: 7},
		Scale:    r3.Vec{X: 0.5, Y: 0.5, Z: 0.5},
		Rotation: r3.Vec{X: 0.3, Y: -1.1, Z: 2.4},
	}
	m := tr.Matrix()

	rx := r3.NewRotation(tr.Rotation.X, r3.Vec{X: 1})
	ry := r3.NewRotation(tr.Rotation.Y, r3.Vec{Y: 1})
	rz := r3.NewRotation(tr.Rotation.Z, r3.Vec{Z: 1})

	points := []r3.Vec{{X: 1}, {Y: 1}, {Z: 1}, {X: 1, Y: -2, Z: 0.5}}
	for _, p := range points {
		// Scale, then Z, Y, X, then translate
		want := rx.Rotate(ry.Rotate(rz.Rotate(r3.Scale(0.5, p))))
		want = r3.Add(want, tr.Position)

		got := applyMatrix(m, p)
		if r3.Norm(r3.Sub(got, want)) > 1e-9 {
			t.Errorf("point %+v: got %+v, want %+v", p, got, want)
		}
	}

	if m[3] != 0 || m[7] != 0 || m[11] != 0 || m[15] != 1 {
		t.Errorf("expected affine bottom row, got %v %v %v %v", m[3], m[7], m[11], m[15])
	}
}

func TestMatrixNegativeScale(t *testing.T) {
	tr := Transform{Scale: r3.Vec{X: -1, Y: -1, Z: -1}}
	got := applyMatrix(tr.Matrix(), r3.Vec{X: 1, Y: 2, Z: 3})
	if got != (r3.Vec{X: -1, Y: -2, Z: -3}) {
		t.Errorf("expected point mirrored through origin, got %+v", got)
	}
}
