// Command modelview spins a prop model in front of the camera so its parts
// can be checked without starting the game.
package main

import (
	"math"
	"os"

	"github.com/alecthomas/kong"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/fpsdemo/ecs"
	"github.com/milk9111/fpsdemo/ecs/component"
	"github.com/milk9111/fpsdemo/physics"
	"github.com/milk9111/fpsdemo/prefabs"
	"github.com/milk9111/fpsdemo/render"
	"github.com/milk9111/fpsdemo/scene"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var cli struct {
	Model    string  `help:"Model file on disk. Defaults to the embedded model.yaml." type:"existingfile"`
	Size     int     `help:"Window size in pixels." default:"512"`
	Distance float64 `help:"Orbit distance from the model origin." default:"7"`
	Speed    float64 `help:"Orbit speed in radians per second." default:"0.6"`
}

type viewer struct {
	world    *ecs.World
	cam      *render.Camera
	renderer *render.Renderer
	sky      *render.Sky

	angle    float64
	distance float64
	speed    float64
	height   float64
}

func (v *viewer) Update() error {
	v.angle += v.speed / float64(ebiten.TPS())
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	v.cam.Width, v.cam.Height = b.Dx(), b.Dy()
	v.cam.Position = mgl64.Vec3{math.Sin(v.angle) * v.distance, v.height * 1.5, math.Cos(v.angle) * v.distance}
	v.cam.Yaw = v.angle
	v.cam.Pitch = -math.Atan2(0.5*v.height, v.distance)
	v.cam.Update()

	v.sky.Draw(screen, v.cam)
	v.renderer.Begin()
	for _, e := range v.world.Query(component.MeshComponent.Kind(), component.TransformComponent.Kind()) {
		mesh, _ := ecs.Get(v.world, e, component.MeshComponent)
		t, _ := ecs.Get(v.world, e, component.TransformComponent)
		v.renderer.Submit(v.cam, render.Instance{Geometry: mesh.Geometry, Position: t.Position, Rotation: t.Rotation, Color: mesh.Color})
	}
	v.renderer.Flush(screen)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func main() {
	kong.Parse(&cli, kong.Description("Preview a prop model."))
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var model prefabs.ModelSpec
	var err error
	if cli.Model == "" {
		model, err = prefabs.LoadSpec[prefabs.ModelSpec]("model.yaml")
	} else {
		var data []byte
		if data, err = os.ReadFile(cli.Model); err == nil {
			model, err = prefabs.DecodeSpec[prefabs.ModelSpec](cli.Model, data)
		}
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load model")
	}

	w := ecs.NewWorld()
	pw := physics.NewWorld(physics.DefaultConfig())
	ents, err := scene.MergeModel(w, pw, model, prefabs.ModelRefSpec{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build model")
	}

	top := 0.0
	for _, e := range ents {
		if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok {
			top = math.Max(top, pb.Body.Top())
		}
	}

	v := &viewer{
		world:    w,
		cam:      render.NewCamera(60, cli.Size, cli.Size),
		renderer: render.NewRenderer(),
		sky:      render.NewSky(),
		distance: cli.Distance,
		speed:    cli.Speed,
		height:   math.Max(top/2, 0.5),
	}
	ebiten.SetWindowSize(cli.Size, cli.Size)
	ebiten.SetWindowTitle("modelview: " + model.Name)
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal().Err(err).Msg("modelview exited")
	}
}
