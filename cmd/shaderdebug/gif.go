package main

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// gifRecorder collects composited frames into an animated GIF.
type gifRecorder struct {
	out   gif.GIF
	delay int // hundredths of a second per frame
}

func newGIFRecorder(fps int) *gifRecorder {
	return &gifRecorder{delay: frameDelay(fps)}
}

// frameDelay converts a frame rate to a GIF delay, clamped to at least one
// hundredth of a second. A non-positive rate falls back to 60 fps.
func frameDelay(fps int) int {
	if fps <= 0 {
		fps = 60
	}
	delay := 100 / fps
	if delay < 1 {
		delay = 1
	}
	return delay
}

// Capture reads tex back from the GPU and appends it as a paletted frame.
func (r *gifRecorder) Capture(tex rl.Texture2D) {
	img := rl.LoadImageFromTexture(tex)
	rl.ImageFlipVertical(img)
	src := img.ToImage()
	rl.UnloadImage(img)

	// Quantize to paletted for GIF
	pimg := image.NewPaletted(src.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(pimg, pimg.Bounds(), src, image.Point{})

	r.out.Image = append(r.out.Image, pimg)
	r.out.Delay = append(r.out.Delay, r.delay)
}

// Frames returns the number of captured frames.
func (r *gifRecorder) Frames() int {
	return len(r.out.Image)
}

// Save writes the animation to path.
func (r *gifRecorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &r.out)
}
