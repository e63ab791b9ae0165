package antjump

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
)

const (
	ViewportW float64 = 300
	ViewportH float64 = 600

	// Scale is the number of pixels per metre of height
	Scale float64 = 200

	groundY    float64 = ViewportH - 40
	torsoX     float64 = ViewportW / 2
	torsoSize  float64 = 18
	lineMargin float64 = 30
)

var (
	skyShade    = color.RGBA{R: 236, G: 240, B: 245, A: 255}
	groundShade = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	torsoShade  = color.RGBA{R: 204, G: 120, B: 50, A: 255}
	maxShade    = color.RGBA{R: 60, G: 110, B: 200, A: 255}
	goalShade   = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	fallShade   = color.RGBA{R: 150, G: 150, B: 150, A: 255}
)

// heightToPixel converts a height in metres to a y pixel coordinate
func heightToPixel(height float64) float64 {
	return groundY - height*Scale
}

// Render draws a side view of the latest step, showing the current
// torso height, the highest torso height of the episode, the fall
// height, and the goal height when the task uses context. The frame
// is saved as a PNG to filename.
func (a *AntJump) Render(filename string) error {
	dc := gg.NewContext(int(ViewportW), int(ViewportH))
	dc.SetColor(skyShade)
	dc.Clear()

	// Ground
	dc.SetColor(groundShade)
	dc.DrawRectangle(0, groundY, ViewportW, ViewportH-groundY)
	dc.Fill()

	// Fall height
	dc.SetColor(fallShade)
	dc.SetLineWidth(1.0)
	dc.SetDash(4, 4)
	y := heightToPixel(FallHeight)
	dc.DrawLine(lineMargin, y, ViewportW-lineMargin, y)
	dc.Stroke()

	// Goal height
	if a.task.Context() {
		dc.SetColor(goalShade)
		dc.SetLineWidth(2.0)
		dc.SetDash(8, 4)
		y = heightToPixel(a.info.Goal)
		dc.DrawLine(lineMargin, y, ViewportW-lineMargin, y)
		dc.Stroke()
		dc.DrawStringAnchored(fmt.Sprintf("goal %.2f", a.info.Goal),
			ViewportW-lineMargin, y-4, 1, 0)
	}

	// Episode max height
	dc.SetColor(maxShade)
	dc.SetLineWidth(2.0)
	dc.SetDash()
	y = heightToPixel(a.info.MaxHeight)
	dc.DrawLine(lineMargin, y, ViewportW-lineMargin, y)
	dc.Stroke()
	dc.DrawStringAnchored(fmt.Sprintf("max %.2f", a.info.MaxHeight),
		lineMargin, y-4, 0, 0)

	// Torso, with its support to the ground
	y = heightToPixel(a.info.Height)
	dc.SetColor(torsoShade)
	dc.SetLineWidth(3.0)
	dc.DrawLine(torsoX, y, torsoX, groundY)
	dc.Stroke()
	dc.DrawCircle(torsoX, y, torsoSize)
	dc.Fill()

	dc.SetColor(color.Black)
	dc.DrawString(fmt.Sprintf("step %v  height %.2f", a.episode.Step,
		a.info.Height), 10, 20)

	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("render: could not save frame: %v", err)
	}
	return nil
}
