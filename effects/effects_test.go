package effects

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/swarm/config"
)

func defaultEffects() config.EffectsConfig {
	return config.EffectsConfig{
		WaterFactor:    2,
		WaterTimeStep:  0.05,
		BloomStrength:  1.5,
		BloomRadius:    1,
		BloomThreshold: 0,
	}
}

func TestNewChainOrder(t *testing.T) {
	c := NewChain(defaultEffects())

	want := []string{NameRender, NameWater, NameBloom}
	got := c.Names()
	if len(got) != len(want) {
		t.Fatalf("expected %d passes, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pass %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	if err := c.Validate(); err != nil {
		t.Errorf("default chain should validate: %v", err)
	}
}

func TestNewChainParams(t *testing.T) {
	c := NewChain(defaultEffects())

	w := c.Water()
	if w == nil || w.Factor != 2 {
		t.Fatalf("expected water factor 2, got %+v", w)
	}
	b := c.Bloom()
	if b == nil || b.Strength != 1.5 || b.Radius != 1 || b.Threshold != 0 {
		t.Fatalf("unexpected bloom pass %+v", b)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		chain Chain
		want  error
	}{
		{"empty", Chain{}, ErrEmptyChain},
		{"no render", Chain{Passes: []Pass{&WaterPass{Factor: 1}}}, ErrNoRenderPass},
		{"render twice", Chain{Passes: []Pass{RenderPass{}, RenderPass{}}}, ErrDuplicateRender},
		{"negative water", Chain{Passes: []Pass{RenderPass{}, &WaterPass{Factor: -1}}}, ErrInvalidParam},
		{"negative bloom", Chain{Passes: []Pass{RenderPass{}, &BloomPass{Strength: -0.5}}}, ErrInvalidParam},
		{"render only", Chain{Passes: []Pass{RenderPass{}}}, nil},
	}

	for _, tc := range tests {
		err := tc.chain.Validate()
		if tc.want == nil {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tc.name, err)
			}
			continue
		}
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestAdvanceWaterClock(t *testing.T) {
	c := NewChain(defaultEffects())
	for i := 0; i < 20; i++ {
		c.Advance()
	}
	if got := c.Water().Time; math.Abs(got-1.0) > 1e-9 {
		t.Errorf("expected water clock 1.0 after 20 frames, got %f", got)
	}
}

func TestAccessorsMissing(t *testing.T) {
	c := &Chain{Passes: []Pass{RenderPass{}}}
	if c.Water() != nil || c.Bloom() != nil {
		t.Error("expected nil accessors for a render-only chain")
	}
}
