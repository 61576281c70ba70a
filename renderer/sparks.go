package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lightcycle/camera"
	"github.com/pthm-cable/lightcycle/systems"
	"github.com/pthm-cable/lightcycle/ui"
)

// SparkRenderer renders crash sparks.
type SparkRenderer struct{}

// NewSparkRenderer creates a new spark renderer.
func NewSparkRenderer() *SparkRenderer {
	return &SparkRenderer{}
}

// Draw renders all sparks, fading and shrinking with age.
func (r *SparkRenderer) Draw(cam *camera.Camera, sparks []systems.Spark) {
	for i := range sparks {
		p := &sparks[i]
		if !cam.IsVisible(p.X, p.Y, p.Size) {
			continue
		}

		lifeRatio := float32(p.Life) / float32(p.MaxLife)
		color := ui.Faded(ui.CycleColor(p.Slot), uint8(lifeRatio*220))

		size := max(p.Size*lifeRatio*cam.Scale(), 0.5)
		rl.DrawCircleV(toScreen(cam, p.X, p.Y), size, color)
	}
}
