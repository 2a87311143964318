// Package effects declares the post-processing chain applied after the scene render.
//
// Passes are plain values in an explicit ordered list. The renderer maps each
// pass type to a shader stage; nothing here touches the GPU.
package effects

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/swarm/config"
)

// Pass names.
const (
	NameRender = "render"
	NameWater  = "water"
	NameBloom  = "bloom"
)

// Errors returned by Validate.
var (
	ErrEmptyChain      = errors.New("effects: empty chain")
	ErrNoRenderPass    = errors.New("effects: chain must start with a render pass")
	ErrInvalidParam    = errors.New("effects: invalid pass parameter")
	ErrDuplicateRender = errors.New("effects: render pass may only appear first")
)

// Pass is one post-processing stage.
type Pass interface {
	Name() string
}

// RenderPass draws the base scene into the chain's first buffer.
type RenderPass struct{}

func (RenderPass) Name() string { return NameRender }

// WaterPass distorts the image with a moving sine field.
type WaterPass struct {
	Factor   float64 // distortion amplitude multiplier
	Time     float64 // shader clock
	TimeStep float64 // clock advance per frame
}

func (*WaterPass) Name() string { return NameWater }

// BloomPass adds a blurred bright-pass over the image.
type BloomPass struct {
	Strength  float64
	Radius    float64
	Threshold float64 // luminance cut-off for the bright-pass
}

func (*BloomPass) Name() string { return NameBloom }

// Chain is an ordered list of passes.
type Chain struct {
	Passes []Pass
}

// NewChain builds render → water → bloom from the effects config.
func NewChain(cfg config.EffectsConfig) *Chain {
	return &Chain{Passes: []Pass{
		RenderPass{},
		&WaterPass{Factor: cfg.WaterFactor, TimeStep: cfg.WaterTimeStep},
		&BloomPass{Strength: cfg.BloomStrength, Radius: cfg.BloomRadius, Threshold: cfg.BloomThreshold},
	}}
}

// Validate checks pass ordering and parameters.
func (c *Chain) Validate() error {
	if len(c.Passes) == 0 {
		return ErrEmptyChain
	}
	if _, ok := c.Passes[0].(RenderPass); !ok {
		return ErrNoRenderPass
	}
	for i, p := range c.Passes[1:] {
		switch p := p.(type) {
		case RenderPass:
			return fmt.Errorf("%w: index %d", ErrDuplicateRender, i+1)
		case *WaterPass:
			if p.Factor < 0 || p.TimeStep < 0 {
				return fmt.Errorf("%w: water factor=%f time_step=%f", ErrInvalidParam, p.Factor, p.TimeStep)
			}
		case *BloomPass:
			if p.Strength < 0 || p.Radius < 0 || p.Threshold < 0 {
				return fmt.Errorf("%w: bloom strength=%f radius=%f threshold=%f",
					ErrInvalidParam, p.Strength, p.Radius, p.Threshold)
			}
		}
	}
	return nil
}

// Advance moves time-dependent passes forward by one frame.
func (c *Chain) Advance() {
	for _, p := range c.Passes {
		if w, ok := p.(*WaterPass); ok {
			w.Time += w.TimeStep
		}
	}
}

// Names returns the pass names in order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.Passes))
	for i, p := range c.Passes {
		names[i] = p.Name()
	}
	return names
}

// Water returns the first water pass, or nil.
func (c *Chain) Water() *WaterPass {
	for _, p := range c.Passes {
		if w, ok := p.(*WaterPass); ok {
			return w
		}
	}
	return nil
}

// Bloom returns the first bloom pass, or nil.
func (c *Chain) Bloom() *BloomPass {
	for _, p := range c.Passes {
		if b, ok := p.(*BloomPass); ok {
			return b
		}
	}
	return nil
}
